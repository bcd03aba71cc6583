package scatter

import "runtime"

type Config struct {
	MaxDepth              int
	MinBucketSize         int
	MaxCandidatesPerRound int
	MaxRounds             int
	BatchSize             int
	Threads               int
	Seed                  int64
}

func ConfigDefault() Config {
	return Config{
		MaxDepth:              10,
		MinBucketSize:         32,
		MaxCandidatesPerRound: 100_000,
		MaxRounds:             32,
		BatchSize:             256,
		Threads:               runtime.GOMAXPROCS(-1),
		Seed:                  1,
	}
}

// withDefaults fills unset fields from ConfigDefault.
func (cfg Config) withDefaults() Config {
	def := ConfigDefault()
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = def.MaxDepth
	}
	if cfg.MinBucketSize <= 0 {
		cfg.MinBucketSize = def.MinBucketSize
	}
	if cfg.MaxCandidatesPerRound <= 0 {
		cfg.MaxCandidatesPerRound = def.MaxCandidatesPerRound
	}
	if cfg.MaxRounds <= 0 {
		cfg.MaxRounds = def.MaxRounds
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = def.BatchSize
	}
	if cfg.Threads <= 0 {
		cfg.Threads = def.Threads
	}
	return cfg
}
