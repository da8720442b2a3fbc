// Package gevo is the embedding surface of the evolution engine: a client
// owning a store plus request/summary types for running experiments.
package gevo

import (
	"context"
	"fmt"
	"math/rand"

	"gevo/internal/evo"
	"gevo/internal/experiment"
	"gevo/internal/fitness"
	"gevo/internal/genetics"
	"gevo/internal/model"
	"gevo/internal/storage"
)

const defaultDBPath = "gevo.db"

type Options struct {
	StoreKind string
	DBPath    string
}

type Client struct {
	store storage.Store
}

func NewClient(ctx context.Context, opts Options) (*Client, error) {
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	store, err := storage.NewStore(opts.StoreKind, dbPath)
	if err != nil {
		return nil, err
	}
	if err := store.Init(ctx); err != nil {
		return nil, err
	}
	return &Client{store: store}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

func (c *Client) Store() storage.Store { return c.store }

// RunRequest describes one evolution run. Population and Fitness are
// required; a nil Algorithm falls back to the default preset. Exactly one
// of MaxGeneration or MaxScore (or both) must be set.
type RunRequest struct {
	Experiment    string
	Population    []genetics.Genotype
	Fitness       fitness.Function
	Algorithm     evo.Algorithm
	Scheduler     string
	Workers       int
	Cache         bool
	Prototype     func() genetics.Genotype
	Seed          int64
	HallSize      int
	MaxGeneration int
	MinGeneration int
	MaxScore      *float64
	MinScore      *float64
}

// RunSummary is the condensed outcome of a run.
type RunSummary struct {
	Experiment  string
	State       experiment.State
	Generations int
	Evaluations int
	BestID      string
	BestScore   *float64
	WorstScore  *float64
	Report      string
}

// DefaultAlgorithm is the stock generational preset: ponderated plus
// uniform parent selection, one-point crossover, single-point mutation at
// 0.1, survival rate 0.2.
func DefaultAlgorithm() (evo.Algorithm, error) {
	mutation, err := evo.NewSinglePoint(0.1)
	if err != nil {
		return nil, err
	}
	return evo.NewStandard(evo.StandardConfig{
		Selection1:   evo.PonderatedSelection{},
		Selection2:   evo.UniformSelection{},
		Crossover:    evo.NewOnePoint(),
		Mutation:     mutation,
		SurvivalRate: 0.2,
	})
}

// RunExperiment drives a full evolution run and returns its summary along
// with the raw execution statistics.
func (c *Client) RunExperiment(ctx context.Context, req RunRequest) (*RunSummary, *experiment.Execution, error) {
	if len(req.Population) == 0 {
		return nil, nil, fmt.Errorf("population is required")
	}
	if req.Fitness == nil {
		return nil, nil, fmt.Errorf("fitness function is required")
	}

	algorithm := req.Algorithm
	if algorithm == nil {
		var err error
		algorithm, err = DefaultAlgorithm()
		if err != nil {
			return nil, nil, err
		}
	}

	scheduler := fitness.Scheduler(req.Scheduler)
	if req.Scheduler == "" {
		scheduler = fitness.SchedulerThreads
	}
	evaluator, err := fitness.NewEvaluator(fitness.Config{
		Function:  req.Fitness,
		Scheduler: scheduler,
		Workers:   req.Workers,
		Cache:     req.Cache,
		Prototype: req.Prototype,
	})
	if err != nil {
		return nil, nil, err
	}

	exp, err := experiment.New(req.Experiment, c.store)
	if err != nil {
		return nil, nil, err
	}
	session, err := exp.Session(algorithm, evaluator, rand.New(rand.NewSource(req.Seed)))
	if err != nil {
		return nil, nil, err
	}
	if err := session.AddGenotypes(ctx, req.Population); err != nil {
		return nil, nil, err
	}

	exec, err := session.Run(ctx, experiment.RunConfig{
		End: experiment.EndConditions{
			MaxGeneration: req.MaxGeneration,
			MinGeneration: req.MinGeneration,
			MaxScore:      req.MaxScore,
			MinScore:      req.MinScore,
		},
		HallSize: req.HallSize,
	})
	if err != nil {
		return nil, exec, err
	}

	summary := &RunSummary{
		Experiment:  exp.Name(),
		State:       exec.State,
		Generations: exec.Generation,
		Evaluations: (exec.Generation + 1) * len(req.Population),
		BestScore:   exec.BestScore(),
		WorstScore:  exec.WorseScore(),
		Report:      exec.Report(),
	}
	if exec.HallOfFame.Len() > 0 {
		summary.BestID = exec.HallOfFame.At(0).Genotype.Meta().ID.String()
	}
	return summary, exec, nil
}

// DeleteExperiment cascade-deletes every stored genotype of the named
// experiment.
func (c *Client) DeleteExperiment(ctx context.Context, name string) error {
	return c.store.DeleteExperiment(ctx, name)
}

// LoadGenotypes fetches stored genotype records by id, in input order
// where found.
func (c *Client) LoadGenotypes(ctx context.Context, ids []string) ([]model.Record, error) {
	return c.store.LoadGenotypes(ctx, ids)
}
