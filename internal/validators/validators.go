package validators

import (
	"fmt"

	"github.com/semiekhin/rizalta-bot-dev/internal/calculations"
	"github.com/semiekhin/rizalta-bot-dev/internal/config"
	"github.com/semiekhin/rizalta-bot-dev/pkg/utils"
)

// Значения по умолчанию, если конфигурация не передана
const (
	defaultMaxArea  = 1000.0
	defaultMaxPrice = 1e10
)

func invalid(name, format string, args ...interface{}) error {
	return &calculations.InvalidInputError{Field: name, Reason: fmt.Sprintf(format, args...)}
}

// ValidatePositiveNumber проверяет, что число положительное и в допустимом диапазоне
func ValidatePositiveNumber(name string, value float64, minInclusive, maxInclusive float64) error {
	if !utils.IsFinite(value) {
		return invalid(name, "значение не является конечным числом")
	}
	if value < minInclusive {
		return invalid(name, "значение должно быть ≥ %g", minInclusive)
	}
	if value > maxInclusive {
		return invalid(name, "значение слишком велико (>%.0f)", maxInclusive)
	}
	return nil
}

// ValidateIntRange проверяет, что целое число в допустимом диапазоне
func ValidateIntRange(name string, value int64, minInclusive, maxInclusive int64) error {
	if value < minInclusive || value > maxInclusive {
		return invalid(name, "значение должно быть в диапазоне [%d; %d]", minInclusive, maxInclusive)
	}
	return nil
}

func maxArea(cfg *config.Config) float64 {
	if cfg == nil || cfg.MaxArea <= 0 {
		return defaultMaxArea
	}
	return cfg.MaxArea
}

func maxPrice(cfg *config.Config) int64 {
	if cfg == nil || cfg.MaxPrice <= 0 {
		return int64(defaultMaxPrice)
	}
	return int64(cfg.MaxPrice)
}

// CheckArea проверяет площадь лота, м²
func CheckArea(cfg *config.Config, area float64) error {
	return ValidatePositiveNumber("area", area, calculations.MinArea, maxArea(cfg))
}

// CheckCost проверяет полную стоимость лота
func CheckCost(cfg *config.Config, cost int64) error {
	return ValidateIntRange("price", cost, 1, maxPrice(cfg))
}

// CheckPricePerM2 проверяет цену за м²
func CheckPricePerM2(cfg *config.Config, pricePerM2 int64) error {
	return ValidateIntRange("price_per_m2", pricePerM2, 1, maxPrice(cfg))
}

// CheckInstallmentPrice проверяет цену для рассрочки: не меньше сервисного сбора
func CheckInstallmentPrice(cfg *config.Config, price int64) error {
	return ValidateIntRange("price", price, calculations.ServiceFee, maxPrice(cfg))
}

// CheckAreaRange проверяет диапазон площадей для подбора лотов
func CheckAreaRange(cfg *config.Config, minArea, maxAreaValue float64) error {
	if err := ValidatePositiveNumber("min_area", minArea, 0, maxArea(cfg)); err != nil {
		return err
	}
	if err := ValidatePositiveNumber("max_area", maxAreaValue, 0, maxArea(cfg)); err != nil {
		return err
	}
	if minArea > maxAreaValue {
		return invalid("min_area", "нижняя граница %g больше верхней %g", minArea, maxAreaValue)
	}
	return nil
}

// CheckBudgetRange проверяет диапазон бюджета для подбора лотов
func CheckBudgetRange(cfg *config.Config, minBudget, maxBudget int64) error {
	if err := ValidateIntRange("min_budget", minBudget, 0, maxPrice(cfg)); err != nil {
		return err
	}
	if err := ValidateIntRange("max_budget", maxBudget, 0, maxPrice(cfg)); err != nil {
		return err
	}
	if minBudget > maxBudget {
		return invalid("min_budget", "нижняя граница %d больше верхней %d", minBudget, maxBudget)
	}
	return nil
}
