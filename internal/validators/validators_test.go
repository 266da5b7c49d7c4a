package validators

import (
	"errors"
	"math"
	"testing"

	"github.com/semiekhin/rizalta-bot-dev/internal/calculations"
	"github.com/semiekhin/rizalta-bot-dev/internal/config"
)

func TestValidators(t *testing.T) {
	cfg, _ := config.LoadConfig()

	tests := []struct {
		name      string
		validator func(*config.Config) error
		wantError bool
	}{
		{"valid area", func(c *config.Config) error { return CheckArea(c, 35.5) }, false},
		{"zero area", func(c *config.Config) error { return CheckArea(c, 0) }, true},
		{"negative area", func(c *config.Config) error { return CheckArea(c, -1) }, true},
		{"NaN area", func(c *config.Config) error { return CheckArea(c, math.NaN()) }, true},
		{"huge area", func(c *config.Config) error { return CheckArea(c, 100000) }, true},
		{"tiny area", func(c *config.Config) error { return CheckArea(c, 1e-12) }, true},
		{"minimum area", func(c *config.Config) error { return CheckArea(c, calculations.MinArea) }, false},
		{"valid cost", func(c *config.Config) error { return CheckCost(c, 15300000) }, false},
		{"zero cost", func(c *config.Config) error { return CheckCost(c, 0) }, true},
		{"valid price per m2", func(c *config.Config) error { return CheckPricePerM2(c, 612000) }, false},
		{"negative price per m2", func(c *config.Config) error { return CheckPricePerM2(c, -5) }, true},
		{"installment at service fee", func(c *config.Config) error { return CheckInstallmentPrice(c, 150000) }, false},
		{"installment below service fee", func(c *config.Config) error { return CheckInstallmentPrice(c, 149999) }, true},
		{"valid area range", func(c *config.Config) error { return CheckAreaRange(c, 22, 35.5) }, false},
		{"inverted area range", func(c *config.Config) error { return CheckAreaRange(c, 40, 22) }, true},
		{"valid budget range", func(c *config.Config) error { return CheckBudgetRange(c, 15000000, 20000000) }, false},
		{"inverted budget range", func(c *config.Config) error { return CheckBudgetRange(c, 2, 1) }, true},
		{"nil config uses defaults", func(*config.Config) error { return CheckCost(nil, 15300000) }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.validator(cfg)
			if (err != nil) != tt.wantError {
				t.Errorf("validator error = %v, wantError %v", err, tt.wantError)
			}
			if err != nil && !errors.Is(err, calculations.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestValidatePositiveNumber(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		min       float64
		max       float64
		wantError bool
	}{
		{"valid", 100.0, 0.0, 1000.0, false},
		{"zero allowed", 0.0, 0.0, 1000.0, false},
		{"below min", -1.0, 0.0, 1000.0, true},
		{"above max", 1001.0, 0.0, 1000.0, true},
		{"infinity", math.Inf(1), 0.0, 1000.0, true},
		{"NaN", math.NaN(), 0.0, 1000.0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePositiveNumber("test", tt.value, tt.min, tt.max)
			if (err != nil) != tt.wantError {
				t.Errorf("ValidatePositiveNumber() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}
