package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"gevo/internal/genetics"
	"gevo/internal/storage"
	gevoapi "gevo/pkg/gevo"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "init":
		return runInit(ctx, args[1:])
	case "run":
		return runRun(ctx, args[1:])
	case "population":
		return runPopulation(ctx, args[1:])
	case "delete":
		return runDelete(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func runInit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "gevo.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := gevoapi.NewClient(ctx, gevoapi.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	fmt.Printf("initialized store=%s\n", *storeKind)
	return nil
}

func runRun(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	configPath := fs.String("config", "", "optional experiment profile INI path")
	experimentName := fs.String("experiment", "", "experiment name (fresh uuid when empty)")
	seed := fs.Int64("seed", 1, "rng seed")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "gevo.db", "sqlite database path")
	speciesName := fs.String("species", "bacteria", "genotype species: bacteria|jackjumper|eukaryote")
	population := fs.Int("pop", 50, "population size")
	chromosomeSize := fs.Int("chromosome-size", 32, "loci per chromosome")
	pairs := fs.Int("pairs", 2, "chromosome pairs for species=eukaryote")
	selection1 := fs.String("selection1", "ponderated", "survivor selection: uniform|ponderated|best|worst|tournaments")
	selection2 := fs.String("selection2", "uniform", "mate selection: uniform|ponderated|best|worst|tournaments")
	tournamentSize := fs.Int("tournament-size", 0, "tournament size for selection=tournaments (0 uses floor(sqrt(n)))")
	crossoverName := fs.String("crossover", "one_point", "crossover: uniform|one_point|two_point|multi_point")
	crossoverPoints := fs.Int("crossover-points", 1, "cut points for crossover=multi_point")
	crossoverProb := fs.Float64("crossover-prob", 0.5, "per-locus swap probability for crossover=uniform")
	mutationName := fs.String("mutation", "single_point", "mutation: single_point")
	mutationProb := fs.Float64("mutation-prob", 0.1, "per-locus mutation probability")
	survivalRate := fs.Float64("survival-rate", 0.2, "fraction of the pool kept unchanged each cycle")
	fitnessName := fs.String("fitness", "zero_count", "fitness function: zero_count")
	schedulerName := fs.String("scheduler", "threads", "fitness scheduler: synchronous|threads|processes")
	workers := fs.Int("workers", 4, "worker count for scheduler=threads|processes")
	cache := fs.Bool("cache", false, "reuse scores of already-evaluated genotype ids")
	hallSize := fs.Int("hall-size", 3, "hall of fame size")
	maxGeneration := fs.Int("gens", 100, "stop at this generation (0 disables, requires max-score)")
	minGeneration := fs.Int("min-gens", 0, "generations to run before score conditions apply")
	maxScore := fs.Float64("max-score", 0, "stop when the best score reaches this value")
	minScore := fs.Float64("min-score", 0, "stop when every archived score reaches this value")
	if err := fs.Parse(args); err != nil {
		return err
	}
	setFlags := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		setFlags[f.Name] = true
	})

	profile := defaultProfile()
	if *configPath != "" {
		var err error
		profile, err = LoadProfile(*configPath)
		if err != nil {
			return err
		}
	}
	applyFlagOverrides(&profile, setFlags, flagValues{
		experiment:      *experimentName,
		seed:            *seed,
		store:           *storeKind,
		dbPath:          *dbPath,
		species:         *speciesName,
		population:      *population,
		chromosomeSize:  *chromosomeSize,
		pairs:           *pairs,
		selection1:      *selection1,
		selection2:      *selection2,
		tournamentSize:  *tournamentSize,
		crossover:       *crossoverName,
		crossoverPoints: *crossoverPoints,
		crossoverProb:   *crossoverProb,
		mutation:        *mutationName,
		mutationProb:    *mutationProb,
		survivalRate:    *survivalRate,
		fitness:         *fitnessName,
		scheduler:       *schedulerName,
		workers:         *workers,
		cache:           *cache,
		hallSize:        *hallSize,
		maxGeneration:   *maxGeneration,
		minGeneration:   *minGeneration,
		maxScore:        *maxScore,
		minScore:        *minScore,
	})
	if err := profile.validate(); err != nil {
		return err
	}

	req, err := buildRunRequest(profile)
	if err != nil {
		return err
	}

	client, err := gevoapi.NewClient(ctx, gevoapi.Options{
		StoreKind: profile.Experiment.Store,
		DBPath:    profile.Experiment.DBPath,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	summary, _, err := client.RunExperiment(ctx, req)
	if err != nil {
		return err
	}

	fmt.Printf("run finished experiment=%s state=%s generations=%d evaluations=%d\n",
		summary.Experiment, summary.State, summary.Generations, summary.Evaluations)
	fmt.Println(summary.Report)
	return nil
}

// flagValues carries run flag values so overrides stay in one place.
type flagValues struct {
	experiment      string
	seed            int64
	store           string
	dbPath          string
	species         string
	population      int
	chromosomeSize  int
	pairs           int
	selection1      string
	selection2      string
	tournamentSize  int
	crossover       string
	crossoverPoints int
	crossoverProb   float64
	mutation        string
	mutationProb    float64
	survivalRate    float64
	fitness         string
	scheduler       string
	workers         int
	cache           bool
	hallSize        int
	maxGeneration   int
	minGeneration   int
	maxScore        float64
	minScore        float64
}

func applyFlagOverrides(p *Profile, set map[string]bool, v flagValues) {
	if set["experiment"] {
		p.Experiment.Name = v.experiment
	}
	if set["seed"] {
		p.Experiment.Seed = v.seed
	}
	if set["store"] || p.Experiment.Store == "" {
		p.Experiment.Store = v.store
	}
	if set["db-path"] {
		p.Experiment.DBPath = v.dbPath
	}
	if set["species"] {
		p.Population.Species = v.species
	}
	if set["pop"] {
		p.Population.Size = v.population
	}
	if set["chromosome-size"] {
		p.Population.ChromosomeSize = v.chromosomeSize
	}
	if set["pairs"] {
		p.Population.Pairs = v.pairs
	}
	if set["selection1"] {
		p.Algorithm.Selection1 = v.selection1
	}
	if set["selection2"] {
		p.Algorithm.Selection2 = v.selection2
	}
	if set["tournament-size"] {
		p.Algorithm.TournamentSize = v.tournamentSize
	}
	if set["crossover"] {
		p.Algorithm.Crossover = v.crossover
	}
	if set["crossover-points"] {
		p.Algorithm.CrossoverPoints = v.crossoverPoints
	}
	if set["crossover-prob"] {
		p.Algorithm.CrossoverProbability = v.crossoverProb
	}
	if set["mutation"] {
		p.Algorithm.Mutation = v.mutation
	}
	if set["mutation-prob"] {
		p.Algorithm.MutationProbability = v.mutationProb
	}
	if set["survival-rate"] {
		p.Algorithm.SurvivalRate = v.survivalRate
	}
	if set["fitness"] {
		p.Fitness.Function = v.fitness
	}
	if set["scheduler"] {
		p.Fitness.Scheduler = v.scheduler
	}
	if set["workers"] {
		p.Fitness.Workers = v.workers
	}
	if set["cache"] {
		p.Fitness.Cache = v.cache
	}
	if set["hall-size"] {
		p.Fitness.HallSize = v.hallSize
	}
	if set["gens"] {
		p.End.MaxGeneration = v.maxGeneration
	}
	if set["min-gens"] {
		p.End.MinGeneration = v.minGeneration
	}
	if set["max-score"] {
		score := v.maxScore
		p.End.MaxScore = &score
	}
	if set["min-score"] {
		score := v.minScore
		p.End.MinScore = &score
	}
}

func buildRunRequest(profile Profile) (gevoapi.RunRequest, error) {
	var req gevoapi.RunRequest

	generate, prototype, err := speciesFromName(
		profile.Population.Species,
		profile.Population.ChromosomeSize,
		profile.Population.Pairs,
	)
	if err != nil {
		return req, err
	}

	sel1, err := selectionFromName(profile.Algorithm.Selection1, profile.Algorithm.TournamentSize)
	if err != nil {
		return req, err
	}
	sel2, err := selectionFromName(profile.Algorithm.Selection2, profile.Algorithm.TournamentSize)
	if err != nil {
		return req, err
	}
	crossover, err := crossoverFromName(
		profile.Algorithm.Crossover,
		profile.Algorithm.CrossoverPoints,
		profile.Algorithm.CrossoverProbability,
	)
	if err != nil {
		return req, err
	}
	mutation, err := mutationFromName(profile.Algorithm.Mutation, profile.Algorithm.MutationProbability)
	if err != nil {
		return req, err
	}
	algorithm, err := newStandardAlgorithm(sel1, sel2, crossover, mutation, profile.Algorithm.SurvivalRate)
	if err != nil {
		return req, err
	}

	fitnessFn, err := fitnessFromName(profile.Fitness.Function)
	if err != nil {
		return req, err
	}

	rng := rand.New(rand.NewSource(profile.Experiment.Seed))
	genotypes := make([]genetics.Genotype, 0, profile.Population.Size)
	for i := 0; i < profile.Population.Size; i++ {
		genotypes = append(genotypes, generate(rng))
	}

	req = gevoapi.RunRequest{
		Experiment:    profile.Experiment.Name,
		Population:    genotypes,
		Fitness:       fitnessFn,
		Algorithm:     algorithm,
		Scheduler:     profile.Fitness.Scheduler,
		Workers:       profile.Fitness.Workers,
		Cache:         profile.Fitness.Cache,
		Prototype:     prototype,
		Seed:          profile.Experiment.Seed,
		HallSize:      profile.Fitness.HallSize,
		MaxGeneration: profile.End.MaxGeneration,
		MinGeneration: profile.End.MinGeneration,
		MaxScore:      profile.End.MaxScore,
		MinScore:      profile.End.MinScore,
	}
	return req, nil
}

func runPopulation(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("population requires a subcommand: show|delete")
	}
	switch args[0] {
	case "show":
		fs := flag.NewFlagSet("population show", flag.ContinueOnError)
		ids := fs.String("ids", "", "comma-separated genotype ids")
		storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
		dbPath := fs.String("db-path", "gevo.db", "sqlite database path")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		idList := splitIDs(*ids)
		if len(idList) == 0 {
			return errors.New("population show requires --ids")
		}

		client, err := gevoapi.NewClient(ctx, gevoapi.Options{StoreKind: *storeKind, DBPath: *dbPath})
		if err != nil {
			return err
		}
		defer func() {
			_ = client.Close()
		}()

		records, err := client.LoadGenotypes(ctx, idList)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("no genotypes found")
			return nil
		}
		for _, rec := range records {
			score := "unscored"
			if rec.Score != nil {
				score = fmt.Sprintf("%.6f", *rec.Score)
			}
			fmt.Printf("id=%s experiment=%s generation=%d score=%s parents=%d\n",
				rec.ID, rec.Experiment, rec.Generation, score, len(rec.Parents))
		}
		return nil
	case "delete":
		fs := flag.NewFlagSet("population delete", flag.ContinueOnError)
		ids := fs.String("ids", "", "comma-separated genotype ids")
		storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
		dbPath := fs.String("db-path", "gevo.db", "sqlite database path")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		idList := splitIDs(*ids)
		if len(idList) == 0 {
			return errors.New("population delete requires --ids")
		}

		client, err := gevoapi.NewClient(ctx, gevoapi.Options{StoreKind: *storeKind, DBPath: *dbPath})
		if err != nil {
			return err
		}
		defer func() {
			_ = client.Close()
		}()

		deleted, err := client.Store().DeleteGenotypes(ctx, idList)
		if err != nil {
			return err
		}
		fmt.Printf("deleted %d of %d genotypes\n", len(deleted), len(idList))
		return nil
	default:
		return fmt.Errorf("unknown population subcommand: %s", args[0])
	}
}

func runDelete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	experimentName := fs.String("experiment", "", "experiment name")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "gevo.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *experimentName == "" {
		return errors.New("delete requires --experiment")
	}

	client, err := gevoapi.NewClient(ctx, gevoapi.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.DeleteExperiment(ctx, *experimentName); err != nil {
		return err
	}
	fmt.Printf("deleted experiment=%s\n", *experimentName)
	return nil
}

func splitIDs(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: gevoctl <init|run|population|delete> [flags]", msg)
}
