// Package config defines environment configuration structs and loaders.
package config

import (
	"github.com/caarlos0/env/v11"
)

// MetricsEnvConfig configures a metrics run: output locations, the scoring
// seed, and nearest-neighbor query parallelism.
type MetricsEnvConfig struct {
	OutputDir   string `env:"GEN_DATA_DIR" envDefault:"gen_data"`
	PlotsDir    string `env:"PLOTS_DIR" envDefault:"gen_data/plots"`
	Seed        uint64 `env:"SCORING_SEED" envDefault:"1234"`
	Workers     int    `env:"SCORING_WORKERS" envDefault:"0"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
}

// LoadMetricsEnv parses the metrics configuration from the environment.
func LoadMetricsEnv() (*MetricsEnvConfig, error) {
	cfg := &MetricsEnvConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
