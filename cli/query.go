package cli

import (
	"io"

	"github.com/spf13/cobra"
)

// NewReachCommand creates the reach command.
func NewReachCommand(rootOpts *RootOptions) *cobra.Command {
	src := &sourceOptions{}
	cmd := &cobra.Command{
		Use:   "reach",
		Short: "List the regions and locations a player can reach",
		Long: `Run reachability for the items given with --item and report every
reachable region and location, plus whether the goal is met.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := src.load(rootOpts.Logger())
			if err != nil {
				return err
			}
			s, err := src.state(l.World)
			if err != nil {
				return err
			}
			rep := buildReach(l.World, s)
			return rootOpts.formatter(cmd).Success(rep, func(w io.Writer) { writeReach(w, rep) })
		},
	}
	src.bind(cmd, true)
	return cmd
}

// NewMissingCommand creates the missing command.
func NewMissingCommand(rootOpts *RootOptions) *cobra.Command {
	src := &sourceOptions{}
	cmd := &cobra.Command{
		Use:   "missing",
		Short: "Show reachable locations not yet checked",
		Long: `Classify every location against the items given with --item and the
locations given with --checked: missing, out of logic, or checked.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := src.load(rootOpts.Logger())
			if err != nil {
				return err
			}
			s, err := src.state(l.World)
			if err != nil {
				return err
			}
			rep := buildMissing(l.World, s, src.Checked)
			return rootOpts.formatter(cmd).Success(rep, func(w io.Writer) { writeMissing(w, rep) })
		},
	}
	src.bind(cmd, true)
	return cmd
}
