// Package fitness scores populations. Evaluation is the only concurrent
// part of the engine: genotypes are scored independently under a
// configurable scheduler, with an optional id-keyed score cache.
package fitness

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"gevo/internal/evo"
	"gevo/internal/genetics"
)

// Scheduler selects how a population's scores are computed.
type Scheduler string

const (
	// SchedulerSynchronous scores genotypes one by one on the caller's
	// goroutine.
	SchedulerSynchronous Scheduler = "synchronous"
	// SchedulerThreads scores genotypes on a shared-memory worker pool.
	SchedulerThreads Scheduler = "threads"
	// SchedulerProcesses scores isolated replicas: each genotype is
	// round-tripped through its serialized record before scoring, so the
	// function can only depend on transferable state.
	SchedulerProcesses Scheduler = "processes"
)

// ParseScheduler maps a configuration string to a scheduler mode.
func ParseScheduler(mode string) (Scheduler, error) {
	switch Scheduler(mode) {
	case SchedulerSynchronous, SchedulerThreads, SchedulerProcesses:
		return Scheduler(mode), nil
	default:
		return "", fmt.Errorf("unknown scheduler mode: %s", mode)
	}
}

// Function computes the score of one genotype. Implementations must be
// pure with respect to the genotype for scheduler modes to agree.
type Function interface {
	Score(ctx context.Context, g genetics.Genotype) (float64, error)
}

// Preparer is an optional hook run once per evaluation, before any
// individual scoring.
type Preparer interface {
	Setup(genotypes []genetics.Genotype) error
}

// FunctionFunc adapts a plain function to the Function interface.
type FunctionFunc func(ctx context.Context, g genetics.Genotype) (float64, error)

func (f FunctionFunc) Score(ctx context.Context, g genetics.Genotype) (float64, error) {
	return f(ctx, g)
}

// Config assembles an evaluator. Prototype is only needed for the
// processes scheduler, where genotypes are rebuilt from their records.
type Config struct {
	Function  Function
	Scheduler Scheduler
	Workers   int
	Cache     bool
	Prototype func() genetics.Genotype
}

// Evaluator scores whole populations and builds ranked pools from the
// results. A scoring error on any genotype fails the whole batch; no
// partially scored population ever escapes.
type Evaluator struct {
	fn        Function
	scheduler Scheduler
	workers   int
	prototype func() genetics.Genotype

	mu    sync.Mutex
	cache map[uuid.UUID]float64 // nil when disabled
}

func NewEvaluator(cfg Config) (*Evaluator, error) {
	if cfg.Function == nil {
		return nil, fmt.Errorf("fitness function is required")
	}
	scheduler := cfg.Scheduler
	if scheduler == "" {
		scheduler = SchedulerThreads
	}
	if _, err := ParseScheduler(string(scheduler)); err != nil {
		return nil, err
	}
	if scheduler == SchedulerProcesses && cfg.Prototype == nil {
		return nil, fmt.Errorf("processes scheduler requires a genotype prototype")
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	e := &Evaluator{
		fn:        cfg.Function,
		scheduler: scheduler,
		workers:   workers,
		prototype: cfg.Prototype,
	}
	if cfg.Cache {
		e.cache = make(map[uuid.UUID]float64)
	}
	return e, nil
}

// Scheduler returns the configured scheduling mode.
func (e *Evaluator) Scheduler() Scheduler { return e.scheduler }

// SetCache enables or disables the score cache. Disabling drops all cached
// scores.
func (e *Evaluator) SetCache(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if enabled && e.cache == nil {
		e.cache = make(map[uuid.UUID]float64)
	}
	if !enabled {
		e.cache = nil
	}
}

// InvalidateCache drops all cached scores. Callers must invalidate between
// runs where genotype content can change without identity changing;
// otherwise the stale cached score is reused.
func (e *Evaluator) InvalidateCache() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cache != nil {
		e.cache = make(map[uuid.UUID]float64)
	}
}

// Evaluate scores every genotype, assigns the scores, and returns the
// ranked pool. The optional Setup hook of the fitness function runs once
// before any scoring.
func (e *Evaluator) Evaluate(ctx context.Context, genotypes []genetics.Genotype) (*evo.Pool, error) {
	if preparer, ok := e.fn.(Preparer); ok {
		if err := preparer.Setup(genotypes); err != nil {
			return nil, fmt.Errorf("fitness setup: %w", err)
		}
	}

	scores := make([]float64, len(genotypes))
	var err error
	switch e.scheduler {
	case SchedulerSynchronous:
		err = e.evaluateSequential(ctx, genotypes, scores)
	default:
		err = e.evaluateWorkers(ctx, genotypes, scores)
	}
	if err != nil {
		return nil, err
	}

	items := make([]evo.Item, len(genotypes))
	for i, g := range genotypes {
		score := scores[i]
		g.Meta().Score = &score
		items[i] = evo.Item{Score: score, Genotype: g}
	}
	e.storeScores(items)
	return evo.NewPoolFromItems(items)
}

func (e *Evaluator) evaluateSequential(ctx context.Context, genotypes []genetics.Genotype, scores []float64) error {
	for i, g := range genotypes {
		if err := ctx.Err(); err != nil {
			return err
		}
		score, err := e.scoreOne(ctx, g)
		if err != nil {
			return err
		}
		scores[i] = score
	}
	return nil
}

func (e *Evaluator) evaluateWorkers(ctx context.Context, genotypes []genetics.Genotype, scores []float64) error {
	type job struct {
		idx      int
		genotype genetics.Genotype
	}
	type result struct {
		idx   int
		score float64
		err   error
	}

	jobs := make(chan job)
	results := make(chan result, len(genotypes))

	workerCount := e.workers
	if workerCount > len(genotypes) {
		workerCount = len(genotypes)
	}
	if workerCount < 1 {
		workerCount = 1
	}

	var wg sync.WaitGroup
	wg.Add(workerCount)
	for w := 0; w < workerCount; w++ {
		go func() {
			defer wg.Done()
			for j := range jobs {
				if err := ctx.Err(); err != nil {
					results <- result{idx: j.idx, err: err}
					continue
				}
				score, err := e.scoreOne(ctx, j.genotype)
				results <- result{idx: j.idx, score: score, err: err}
			}
		}()
	}

	for i := range genotypes {
		jobs <- job{idx: i, genotype: genotypes[i]}
	}
	close(jobs)

	wg.Wait()
	close(results)

	for res := range results {
		if res.err != nil {
			return res.err
		}
		scores[res.idx] = res.score
	}
	return nil
}

func (e *Evaluator) scoreOne(ctx context.Context, g genetics.Genotype) (float64, error) {
	if score, ok := e.cachedScore(g.Meta().ID); ok {
		return score, nil
	}

	candidate := g
	if e.scheduler == SchedulerProcesses {
		isolated, err := genetics.FromRecord(genetics.ToRecord(g), e.prototype)
		if err != nil {
			return 0, fmt.Errorf("isolate genotype %s: %w", g.Meta().ID, err)
		}
		candidate = isolated
	}
	score, err := e.fn.Score(ctx, candidate)
	if err != nil {
		return 0, fmt.Errorf("score genotype %s: %w", g.Meta().ID, err)
	}
	return score, nil
}

func (e *Evaluator) cachedScore(id uuid.UUID) (float64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cache == nil {
		return 0, false
	}
	score, ok := e.cache[id]
	return score, ok
}

func (e *Evaluator) storeScores(items []evo.Item) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cache == nil {
		return
	}
	for _, item := range items {
		e.cache[item.Genotype.Meta().ID] = item.Score
	}
}
