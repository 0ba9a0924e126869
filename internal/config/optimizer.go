package config

import (
	"fmt"
	"strings"
)

const (
	OptimizerFieldAppreciationRate = "appreciationRate"
	OptimizerFieldMonthlyRent      = "monthlyRent"

	defaultToleranceRate   = 0.01
	defaultToleranceAmount = 1
	defaultMaxIterations   = 50
)

// OptimizerConfig defines a single-parameter break-even search.
type OptimizerConfig struct {
	Field         string   `yaml:"field,omitempty" mapstructure:"field"`
	Min           *float64 `yaml:"min,omitempty" mapstructure:"min"`
	Max           *float64 `yaml:"max,omitempty" mapstructure:"max"`
	Tolerance     float64  `yaml:"tolerance,omitempty" mapstructure:"tolerance"`
	MaxIterations int      `yaml:"maxIterations,omitempty" mapstructure:"maxIterations"`
}

// CanonicalOptimizerField returns the canonical identifier for an optimizer field.
func CanonicalOptimizerField(value string) string {
	trimmed := strings.TrimSpace(value)
	switch strings.ToLower(trimmed) {
	case "", "appreciationrate", "appreciation_rate", "appreciation-rate", "appreciation":
		return OptimizerFieldAppreciationRate
	case "monthlyrent", "monthly_rent", "monthly-rent", "rent":
		return OptimizerFieldMonthlyRent
	default:
		return trimmed
	}
}

// Normalize ensures defaults and canonical values are applied before validation.
func (o *OptimizerConfig) Normalize() {
	if o == nil {
		return
	}
	o.Field = CanonicalOptimizerField(o.Field)

	if o.Tolerance <= 0 {
		switch o.Field {
		case OptimizerFieldMonthlyRent:
			o.Tolerance = defaultToleranceAmount
		default:
			o.Tolerance = defaultToleranceRate
		}
	}

	if o.MaxIterations <= 0 {
		o.MaxIterations = defaultMaxIterations
	}
}

// Validate checks the directive can be executed.
func (o *OptimizerConfig) Validate() error {
	if o == nil {
		return nil
	}

	switch o.Field {
	case OptimizerFieldAppreciationRate, OptimizerFieldMonthlyRent:
	default:
		return fmt.Errorf("unsupported optimizer field %q", o.Field)
	}

	if o.Min == nil || o.Max == nil {
		return fmt.Errorf("optimizer field %s requires min and max bounds", o.Field)
	}
	if *o.Min > *o.Max {
		return fmt.Errorf("optimizer min %.2f exceeds max %.2f", *o.Min, *o.Max)
	}
	if o.Field == OptimizerFieldMonthlyRent && *o.Min < 0 {
		return fmt.Errorf("optimizer rent bounds must not be negative")
	}

	return nil
}
