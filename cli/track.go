package cli

import (
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nathoo/questlogic/engine/save"
)

type trackOptions struct {
	Session  string
	Sessions string
	Redis    string
	TTL      time.Duration
	Echo     bool
}

// NewTrackCommand creates the track command.
func NewTrackCommand(rootOpts *RootOptions) *cobra.Command {
	src := &sourceOptions{}
	opts := &trackOptions{}
	cmd := &cobra.Command{
		Use:   "track",
		Short: "Track a run interactively",
		Long: `Start an interactive tracker reading commands from stdin. Sessions are
saved as JSON files under --sessions, or in Redis when --redis is set.
--session resumes a saved session.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := rootOpts.Logger()
			l, err := src.load(logger)
			if err != nil {
				return err
			}
			s, err := src.state(l.World)
			if err != nil {
				return err
			}

			store, err := openStore(cmd, opts, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			t := NewTracker(l.World, store, uuid.NewString())
			t.State = s
			for _, name := range src.Checked {
				if err := t.Check(name); err != nil {
					return NewExitError(ExitCommandError, err.Error())
				}
			}
			if opts.Session != "" {
				if err := t.Resume(cmd.Context(), opts.Session); err != nil {
					return WrapExitError(ExitCommandError, "resuming session", err)
				}
			}
			t.In = cmd.InOrStdin()
			t.Out = cmd.OutOrStdout()
			t.EchoInput = opts.Echo

			logger.Debug("tracker started",
				zap.String("session", t.Session),
				zap.String("game", l.World.Def.Game.Title),
				zap.Int("player", l.World.Player))
			return t.Run(cmd.Context())
		},
	}
	src.bind(cmd, true)
	cmd.Flags().StringVar(&opts.Session, "session", "", "resume a saved session by id")
	cmd.Flags().StringVar(&opts.Sessions, "sessions", defaultSessionDir(), "directory for session files")
	cmd.Flags().StringVar(&opts.Redis, "redis", "", "store sessions in Redis at this URL (redis://host:port/db)")
	cmd.Flags().DurationVar(&opts.TTL, "ttl", 0, "expiry of Redis sessions (0 keeps them)")
	cmd.Flags().BoolVar(&opts.Echo, "echo", false, "echo each input line (for script playback)")
	return cmd
}

func openStore(cmd *cobra.Command, opts *trackOptions, logger *zap.Logger) (save.Store, error) {
	if opts.Redis == "" {
		return save.NewFileStore(opts.Sessions), nil
	}
	rs, err := save.NewRedisStore(opts.Redis, opts.TTL, logger)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "opening session store", err)
	}
	if err := rs.Ping(cmd.Context()); err != nil {
		_ = rs.Close()
		return nil, WrapExitError(ExitCommandError, "opening session store", err)
	}
	return rs, nil
}

func defaultSessionDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".questlogic", "sessions")
	}
	return filepath.Join(home, ".questlogic", "sessions")
}
