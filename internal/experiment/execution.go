package experiment

import (
	"context"
	"errors"
	"fmt"

	"gevo/internal/evo"
)

// State is the lifecycle of one execution.
type State string

const (
	StateNotStarted State = "not_started"
	StateRunning    State = "running"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
	StateCancelled  State = "cancelled"
)

// EndConditions define when an execution stops. At least one of
// MaxGeneration or MaxScore must be set; MinGeneration keeps the loop
// running even when a score condition is already met.
type EndConditions struct {
	MaxGeneration int
	MinGeneration int
	MaxScore      *float64
	MinScore      *float64
}

func (c EndConditions) validate() error {
	if c.MaxGeneration < 0 || c.MinGeneration < 0 {
		return fmt.Errorf("generation bounds must be >= 0")
	}
	if c.MaxGeneration == 0 && c.MaxScore == nil {
		return fmt.Errorf("at least one of max generation or max score is required")
	}
	return nil
}

// Completed evaluates the stop predicate against the execution statistics.
func (c EndConditions) Completed(exec *Execution) bool {
	if c.MinGeneration > 0 && exec.Generation < c.MinGeneration {
		return false
	}
	if c.MaxScore != nil {
		if best := exec.BestScore(); best != nil && *best >= *c.MaxScore {
			return true
		}
	}
	if c.MinScore != nil {
		if worst := exec.WorseScore(); worst != nil && *worst >= *c.MinScore {
			return true
		}
	}
	if c.MaxGeneration > 0 && exec.Generation >= c.MaxGeneration {
		return true
	}
	return false
}

// Execution accumulates the statistics of one run: the generation counter,
// the latest ranked pool, and the hall of fame of best genotypes ever
// scored. It is returned to the caller in every terminal state.
type Execution struct {
	HallOfFame *evo.HallOfFame
	Pool       *evo.Pool
	Generation int
	State      State
}

// BestScore is the highest archived score, nil before the first
// evaluation.
func (e *Execution) BestScore() *float64 {
	if e.HallOfFame == nil || e.HallOfFame.Len() == 0 {
		return nil
	}
	score := e.HallOfFame.At(0).Score
	return &score
}

// WorseScore is the lowest archived score, nil before the first
// evaluation.
func (e *Execution) WorseScore() *float64 {
	if e.HallOfFame == nil || e.HallOfFame.Len() == 0 {
		return nil
	}
	score := e.HallOfFame.At(-1).Score
	return &score
}

// Report renders the run statistics as text.
func (e *Execution) Report() string {
	best := "n/a"
	bestID := "n/a"
	if e.HallOfFame != nil && e.HallOfFame.Len() > 0 {
		entry := e.HallOfFame.At(0)
		best = fmt.Sprintf("%g", entry.Score)
		bestID = entry.Genotype.Meta().ID.String()
	}
	return fmt.Sprintf(
		"Evolutionary algorithm execution report:\n"+
			"  Executed generations: %d\n"+
			"  Best genotype: %s\n"+
			"  Best score: %s\n",
		e.Generation, bestID, best,
	)
}

// RunConfig parameterizes Session.Run.
type RunConfig struct {
	End      EndConditions
	HallSize int
}

// Run executes the evolution loop until an end condition is met, the
// context is cancelled, or an error occurs. Cancellation is only observed
// between generations and yields the statistics accumulated so far with
// State Cancelled and no error; any evaluation, algorithm or persistence
// error yields State Failed and the error.
func (s *Session) Run(ctx context.Context, cfg RunConfig) (*Execution, error) {
	if err := cfg.End.validate(); err != nil {
		return nil, err
	}
	hallSize := cfg.HallSize
	if hallSize <= 0 {
		hallSize = 3
	}
	hall, err := evo.NewHallOfFame(hallSize)
	if err != nil {
		return nil, err
	}
	if len(s.population) == 0 {
		return nil, fmt.Errorf("session population is empty")
	}

	exec := &Execution{HallOfFame: hall, State: StateNotStarted}
	exec.State = StateRunning

	if err := s.runCycleTail(ctx, exec); err != nil {
		return s.finishErr(ctx, exec, err)
	}

	for !cfg.End.Completed(exec) {
		if err := ctx.Err(); err != nil {
			exec.State = StateCancelled
			return exec, nil
		}

		exec.Generation++
		offspring, err := s.algorithm.RunCycle(s.rng, exec.Pool)
		if err != nil {
			return s.finishErr(ctx, exec, err)
		}
		s.population = offspring

		if err := s.runCycleTail(ctx, exec); err != nil {
			return s.finishErr(ctx, exec, err)
		}
	}

	exec.State = StateCompleted
	return exec, nil
}

// runCycleTail is the fixed per-generation sequence after the population
// is in place: evaluate, archive, persist.
func (s *Session) runCycleTail(ctx context.Context, exec *Execution) error {
	pool, err := s.evaluator.Evaluate(ctx, s.population)
	if err != nil {
		return fmt.Errorf("evaluate generation %d: %w", exec.Generation, err)
	}
	exec.Pool = pool
	if err := exec.HallOfFame.Update(pool, exec.Generation); err != nil {
		return err
	}
	if err := s.save(ctx, pool.Genotypes()); err != nil {
		return err
	}
	return nil
}

func (s *Session) finishErr(ctx context.Context, exec *Execution, err error) (*Execution, error) {
	// A context cancellation surfacing from inside a cycle still counts
	// as user cancellation, observed late.
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		exec.State = StateCancelled
		return exec, nil
	}
	exec.State = StateFailed
	return exec, err
}
