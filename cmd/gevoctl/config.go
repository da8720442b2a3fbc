package main

import (
	"fmt"
	"strings"

	"gopkg.in/ini.v1"
)

// Profile collects every run parameter an experiment profile can set.
// Flags parsed after loading override individual fields.
type Profile struct {
	Experiment ExperimentProfile
	Population PopulationProfile
	Algorithm  AlgorithmProfile
	Fitness    FitnessProfile
	End        EndProfile
}

type ExperimentProfile struct {
	Name   string `ini:"name"`
	Seed   int64  `ini:"seed"`
	Store  string `ini:"store"`
	DBPath string `ini:"db_path"`
}

type PopulationProfile struct {
	Species        string `ini:"species"`
	Size           int    `ini:"size"`
	ChromosomeSize int    `ini:"chromosome_size"`
	Pairs          int    `ini:"pairs"`
}

type AlgorithmProfile struct {
	Selection1           string  `ini:"selection1"`
	Selection2           string  `ini:"selection2"`
	TournamentSize       int     `ini:"tournament_size"`
	Crossover            string  `ini:"crossover"`
	CrossoverPoints      int     `ini:"crossover_points"`
	CrossoverProbability float64 `ini:"crossover_probability"`
	Mutation             string  `ini:"mutation"`
	MutationProbability  float64 `ini:"mutation_probability"`
	SurvivalRate         float64 `ini:"survival_rate"`
}

type FitnessProfile struct {
	Function  string `ini:"function"`
	Scheduler string `ini:"scheduler"`
	Workers   int    `ini:"workers"`
	Cache     bool   `ini:"cache"`
	HallSize  int    `ini:"hall_size"`
}

type EndProfile struct {
	MaxGeneration int `ini:"max_generation"`
	MinGeneration int `ini:"min_generation"`

	// Score bounds are optional; nil means the condition is disabled.
	MaxScore *float64
	MinScore *float64
}

// defaultProfile mirrors the stock algorithm preset so a bare `gevoctl run`
// works without a profile file.
func defaultProfile() Profile {
	return Profile{
		Experiment: ExperimentProfile{
			Seed:   1,
			DBPath: "gevo.db",
		},
		Population: PopulationProfile{
			Species:        "bacteria",
			Size:           50,
			ChromosomeSize: 32,
			Pairs:          2,
		},
		Algorithm: AlgorithmProfile{
			Selection1:           "ponderated",
			Selection2:           "uniform",
			Crossover:            "one_point",
			CrossoverPoints:      1,
			CrossoverProbability: 0.5,
			Mutation:             "single_point",
			MutationProbability:  0.1,
			SurvivalRate:         0.2,
		},
		Fitness: FitnessProfile{
			Function:  "zero_count",
			Scheduler: "threads",
			Workers:   4,
			HallSize:  3,
		},
		End: EndProfile{
			MaxGeneration: 100,
		},
	}
}

// LoadProfile reads an INI experiment profile on top of the defaults.
func LoadProfile(path string) (Profile, error) {
	profile := defaultProfile()

	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:         true,
		UnescapeValueCommentSymbols: true,
	}, path)
	if err != nil {
		return profile, fmt.Errorf("load profile %q: %w", path, err)
	}

	if err := cfg.Section("experiment").MapTo(&profile.Experiment); err != nil {
		return profile, fmt.Errorf("map [experiment] section: %w", err)
	}
	if err := cfg.Section("population").MapTo(&profile.Population); err != nil {
		return profile, fmt.Errorf("map [population] section: %w", err)
	}
	if err := cfg.Section("algorithm").MapTo(&profile.Algorithm); err != nil {
		return profile, fmt.Errorf("map [algorithm] section: %w", err)
	}
	if err := cfg.Section("fitness").MapTo(&profile.Fitness); err != nil {
		return profile, fmt.Errorf("map [fitness] section: %w", err)
	}

	endSection := cfg.Section("end")
	if err := endSection.MapTo(&profile.End); err != nil {
		return profile, fmt.Errorf("map [end] section: %w", err)
	}
	if endSection.HasKey("max_score") {
		v, err := endSection.Key("max_score").Float64()
		if err != nil {
			return profile, fmt.Errorf("parse max_score: %w", err)
		}
		profile.End.MaxScore = &v
	}
	if endSection.HasKey("min_score") {
		v, err := endSection.Key("min_score").Float64()
		if err != nil {
			return profile, fmt.Errorf("parse min_score: %w", err)
		}
		profile.End.MinScore = &v
	}

	profile.Experiment.Store = strings.TrimSpace(profile.Experiment.Store)
	profile.Population.Species = strings.TrimSpace(profile.Population.Species)

	return profile, nil
}

func (p Profile) validate() error {
	if p.Population.Size <= 0 {
		return fmt.Errorf("population size must be > 0, got %d", p.Population.Size)
	}
	if p.Population.ChromosomeSize <= 0 {
		return fmt.Errorf("chromosome size must be > 0, got %d", p.Population.ChromosomeSize)
	}
	if p.Algorithm.SurvivalRate < 0 || p.Algorithm.SurvivalRate > 1 {
		return fmt.Errorf("survival rate must be in [0,1], got %g", p.Algorithm.SurvivalRate)
	}
	if p.End.MaxGeneration <= 0 && p.End.MaxScore == nil {
		return fmt.Errorf("profile needs max_generation > 0 or max_score")
	}
	return nil
}
