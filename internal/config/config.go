// Package config defines the data structures related to configuration and
// includes functions for loading and normalizing the config.
package config

import (
	"fmt"
	"io"
	"time"

	"github.com/finaly55/opti-credit/internal/simulation"
	"github.com/finaly55/opti-credit/pkg/constants"
	"github.com/finaly55/opti-credit/pkg/expenses"
	"github.com/finaly55/opti-credit/pkg/mathutil"
	"github.com/finaly55/opti-credit/pkg/validation"
	"github.com/google/uuid"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for opti-credit.
type Configuration struct {
	Logging    LoggingConfig    `yaml:"logging,omitempty" mapstructure:"logging"`
	Output     OutputConfig     `yaml:"output,omitempty" mapstructure:"output"`
	Cache      CacheConfig      `yaml:"cache,omitempty" mapstructure:"cache"`
	Simulation SimulationConfig `yaml:"simulation" mapstructure:"simulation"`
	Optimizer  *OptimizerConfig `yaml:"optimizer,omitempty" mapstructure:"optimizer"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" mapstructure:"level"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" mapstructure:"format"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" mapstructure:"outputFile"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" mapstructure:"format"` // pretty, csv, pdf
	File   string `yaml:"file,omitempty" mapstructure:"file"`     // destination of the pdf report
}

// CacheConfig selects where simulation results are memoized.
type CacheConfig struct {
	Backend    string        `yaml:"backend,omitempty" mapstructure:"backend"` // memory, redis, none
	Address    string        `yaml:"address,omitempty" mapstructure:"address"`
	Password   string        `yaml:"password,omitempty" mapstructure:"password"`
	DB         int           `yaml:"db,omitempty" mapstructure:"db"`
	TTL        time.Duration `yaml:"ttl,omitempty" mapstructure:"ttl"`
	MaxEntries int           `yaml:"maxEntries,omitempty" mapstructure:"maxEntries"` // memory backend only
}

// SimulationConfig holds the inputs of the buy versus rent comparison.
type SimulationConfig struct {
	TargetYear     int                      `yaml:"targetYear,omitempty" mapstructure:"targetYear"`
	Params         simulation.Params        `yaml:"params" mapstructure:"params"`
	CustomExpenses []expenses.CustomExpense `yaml:"customExpenses,omitempty" mapstructure:"customExpenses"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix("OPTICREDIT")
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.Normalize()
	return &configuration, nil
}

// Normalize fills in identifiers and derived values left out of the file.
func (conf *Configuration) Normalize() {
	sim := &conf.Simulation

	if sim.TargetYear == 0 {
		sim.TargetYear = constants.DefaultTargetYear
	}

	if sim.Params.NotaryFees == 0 && sim.Params.NotaryFeesPercent > 0 {
		sim.Params.NotaryFees = mathutil.RoundUnit(mathutil.ApplyPercentage(sim.Params.PurchasePrice, sim.Params.NotaryFeesPercent))
	}

	for i := range sim.Params.Loans {
		if sim.Params.Loans[i].ID == "" {
			sim.Params.Loans[i].ID = uuid.NewString()
		}
	}
	for i := range sim.CustomExpenses {
		if sim.CustomExpenses[i].ID == "" {
			sim.CustomExpenses[i].ID = uuid.NewString()
		}
	}

	conf.Cache.Normalize()

	conf.Optimizer.Normalize()
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Warnings never prevent a simulation from running.
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string
	sim := conf.Simulation
	params := sim.Params

	if warning := validation.ValidateTargetYear(sim.TargetYear); warning != "" {
		warnings = append(warnings, warning)
	}

	for _, loan := range params.Loans {
		warnings = append(warnings, validation.ValidateLoan(loan)...)
	}

	warnings = append(warnings, validation.ValidateCustomExpenses(sim.CustomExpenses)...)

	totals := expenses.Aggregate(params.ExpenseBase(), sim.CustomExpenses)
	upfront := params.PurchasePrice + params.NotaryFees + totals.Initial
	if warning := validation.ValidateFinancing(upfront, params.PersonalContribution, params.TotalBorrowed()); warning != "" {
		warnings = append(warnings, warning)
	}

	if err := conf.Cache.Validate(); err != nil {
		warnings = append(warnings, fmt.Sprintf("Cache disabled: %v", err))
	}

	if conf.Optimizer != nil {
		if err := conf.Optimizer.Validate(); err != nil {
			warnings = append(warnings, fmt.Sprintf("Optimizer disabled: %v", err))
		}
	}

	return warnings
}
