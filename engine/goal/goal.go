// Package goal evaluates a catalog's completion condition.
//
// Two strategies exist in this lineage and neither is a default: run_tokens
// counts copies of a single token item, distinct_wins counts distinct group
// members held. Every goal must also say whether it reads the explicitly
// held state or the state augmented by reachability, since event-derived
// tokens only exist in the latter.
package goal

import (
	"errors"
	"fmt"

	"github.com/nathoo/questlogic/engine/graph"
	"github.com/nathoo/questlogic/engine/reach"
	"github.com/nathoo/questlogic/engine/rules"
	"github.com/nathoo/questlogic/engine/state"
	"github.com/nathoo/questlogic/types"
)

// Evaluator answers whether a player's completion condition is met.
type Evaluator struct {
	def    types.GoalDef
	player int
	pred   types.Predicate
}

// New validates def and returns an evaluator for player.
func New(def types.GoalDef, player int) (*Evaluator, error) {
	var errs []error

	switch def.Source {
	case types.Explicit, types.Augmented:
	case "":
		errs = append(errs, errors.New("goal source must be set explicitly (explicit or augmented)"))
	default:
		errs = append(errs, fmt.Errorf("unknown goal source %q", def.Source))
	}

	var pred types.Predicate
	switch def.Strategy {
	case types.RunTokens:
		if def.Token == "" {
			errs = append(errs, errors.New("run_tokens goal needs a token item"))
		}
		if def.Required < 1 {
			errs = append(errs, fmt.Errorf("run_tokens goal needs required >= 1, got %d", def.Required))
		}
		pred = rules.HasItem(def.Token, def.Required)
	case types.DistinctWins:
		if len(def.Group) == 0 {
			errs = append(errs, errors.New("distinct_wins goal needs a non-empty group"))
		}
		if def.Required < 1 || def.Required > len(def.Group) {
			errs = append(errs, fmt.Errorf("distinct_wins goal needs 1 <= required <= %d, got %d",
				len(def.Group), def.Required))
		}
		pred = rules.HasCountFromGroup(def.Group, def.Required)
	case types.CustomGoal:
		if def.Rule == nil {
			errs = append(errs, errors.New("custom goal needs a rule"))
		} else {
			pred = *def.Rule
		}
	case "":
		errs = append(errs, errors.New("goal strategy must be set explicitly (run_tokens, distinct_wins or custom)"))
	default:
		errs = append(errs, fmt.Errorf("unknown goal strategy %q", def.Strategy))
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid goal: %w", errors.Join(errs...))
	}
	return &Evaluator{def: def, player: player, pred: pred}, nil
}

// Def returns the goal definition.
func (e *Evaluator) Def() types.GoalDef { return e.def }

// Predicate returns the completion predicate.
func (e *Evaluator) Predicate() types.Predicate { return e.pred }

// IsComplete evaluates the condition against s exactly as given. Which
// state variant s is, is the caller's choice; Evaluate picks it from the
// goal's Source.
func (e *Evaluator) IsComplete(s *state.CollectionState) bool {
	return rules.Eval(e.pred, s, e.player)
}

// Evaluate checks completion for g and the explicitly held state s, running
// reachability first when the goal reads the augmented state. The
// reachability result is returned when it was computed.
func (e *Evaluator) Evaluate(g *graph.Graph, s *state.CollectionState) (bool, *reach.Result) {
	if e.def.Source == types.Explicit {
		return e.IsComplete(s), nil
	}
	res := reach.Reachable(g, s)
	return e.IsComplete(res.State), res
}

// Progress returns how many wins count toward the goal and how many are
// required. Custom goals report 1/1 when met and 0/1 otherwise.
func (e *Evaluator) Progress(s *state.CollectionState) (have, need int) {
	switch e.def.Strategy {
	case types.RunTokens:
		return s.Count(e.player, e.def.Token), e.def.Required
	case types.DistinctWins:
		seen := map[string]bool{}
		for _, item := range e.def.Group {
			if !seen[item] && s.Has(e.player, item) {
				have++
			}
			seen[item] = true
		}
		return have, e.def.Required
	default:
		if e.IsComplete(s) {
			return 1, 1
		}
		return 0, 1
	}
}
