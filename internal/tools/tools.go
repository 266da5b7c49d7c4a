package tools

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/semiekhin/rizalta-bot-dev/internal/calculations"
	"github.com/semiekhin/rizalta-bot-dev/internal/config"
	"github.com/semiekhin/rizalta-bot-dev/internal/metrics"
	"github.com/semiekhin/rizalta-bot-dev/internal/service"
	"github.com/semiekhin/rizalta-bot-dev/internal/validators"
)

// Имена инструментов
const (
	InvestmentProjection = "investment_projection"
	Installment12        = "installment_12"
	Installment24        = "installment_24"
	LotLookup            = "lot_lookup"
)

// ErrUnknownTool возвращается для незарегистрированного инструмента
var ErrUnknownTool = errors.New("unknown tool")

// ToolHandler представляет обработчик инструмента
type ToolHandler func(ctx context.Context, params map[string]interface{}) (interface{}, error)

func numberParam(params map[string]interface{}, name string) (float64, bool, error) {
	raw, present := params[name]
	if !present || raw == nil {
		return 0, false, nil
	}
	value, ok := raw.(float64)
	if !ok {
		return 0, true, &calculations.InvalidInputError{Field: name, Reason: "ожидается число"}
	}
	return value, true, nil
}

func rublesParam(params map[string]interface{}, name string) (int64, bool, error) {
	value, present, err := numberParam(params, name)
	if err != nil || !present {
		return 0, present, err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) || value != math.Trunc(value) {
		return 0, true, &calculations.InvalidInputError{Field: name, Reason: "ожидается целое число рублей"}
	}
	return int64(value), true, nil
}

func requireParam(name string) error {
	return &calculations.InvalidInputError{Field: name, Reason: "параметр обязателен"}
}

// failValidation отмечает ошибку валидации в спане и метриках
func failValidation(span trace.Span, toolName string, err error) error {
	span.SetAttributes(attribute.String("error", "validation_error"))
	metrics.ToolCalls.WithLabelValues(toolName, "validation_error").Inc()
	metrics.CalculationErrors.WithLabelValues(toolName, "validation").Inc()
	metrics.APICalls.WithLabelValues("tools", toolName, "error").Inc()
	return fmt.Errorf("неверные параметры: %w", err)
}

// failCalculation отмечает ошибку расчёта в спане и метриках
func failCalculation(span trace.Span, toolName, errorType string, err error) error {
	span.SetAttributes(attribute.String("error", errorType+"_error"))
	metrics.ToolCalls.WithLabelValues(toolName, "error").Inc()
	metrics.CalculationErrors.WithLabelValues(toolName, errorType).Inc()
	metrics.APICalls.WithLabelValues("tools", toolName, "error").Inc()
	return fmt.Errorf("ошибка при выполнении расчета: %w", err)
}

func succeed(span trace.Span, toolName string) {
	span.SetAttributes(attribute.Bool("success", true))
	metrics.ToolCalls.WithLabelValues(toolName, "success").Inc()
	metrics.APICalls.WithLabelValues("tools", toolName, "success").Inc()
}

// InvestmentProjectionHandler обрабатывает запрос на 11-летний прогноз доходности.
// Принимает area и либо price_per_m2, либо price
func InvestmentProjectionHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := InvestmentProjection

		ctx, span := tracer.Start(ctx, toolName)
		defer span.End()

		metrics.APICalls.WithLabelValues("tools", toolName, "started").Inc()

		area, ok, err := numberParam(params, "area")
		if err == nil && !ok {
			err = requireParam("area")
		}
		if err != nil {
			return nil, failValidation(span, toolName, err)
		}
		pricePerM2, hasPerM2, err := rublesParam(params, "price_per_m2")
		if err != nil {
			return nil, failValidation(span, toolName, err)
		}
		price, hasPrice, err := rublesParam(params, "price")
		if err != nil {
			return nil, failValidation(span, toolName, err)
		}
		if !hasPerM2 && !hasPrice {
			return nil, failValidation(span, toolName, requireParam("price_per_m2"))
		}

		span.SetAttributes(
			attribute.Float64("area", area),
			attribute.Int64("price_per_m2", pricePerM2),
			attribute.Int64("price", price),
		)

		// Валидация
		if err := validators.CheckArea(cfg, area); err != nil {
			return nil, failValidation(span, toolName, err)
		}

		var result *calculations.Projection
		if hasPerM2 {
			if err := validators.CheckPricePerM2(cfg, pricePerM2); err != nil {
				return nil, failValidation(span, toolName, err)
			}
			result, err = calculations.ProjectPerM2(area, pricePerM2)
		} else {
			if err := validators.CheckCost(cfg, price); err != nil {
				return nil, failValidation(span, toolName, err)
			}
			result, err = calculations.Project(area, price)
		}
		if err != nil {
			return nil, failCalculation(span, toolName, "calculation", err)
		}

		span.SetAttributes(
			attribute.Int64("cost", result.Summary.Cost),
			attribute.Int64("total_profit", result.Summary.TotalProfit),
			attribute.Float64("roi_pct", result.Summary.ROIPct),
		)
		succeed(span, toolName)

		return result, nil
	}
}

func priceFromParams(cfg *config.Config, params map[string]interface{}) (int64, error) {
	price, ok, err := rublesParam(params, "price")
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, requireParam("price")
	}
	if err := validators.CheckInstallmentPrice(cfg, price); err != nil {
		return 0, err
	}
	return price, nil
}

// Installment12Handler обрабатывает запрос на рассрочку 0% на 12 месяцев
func Installment12Handler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := Installment12

		ctx, span := tracer.Start(ctx, toolName)
		defer span.End()

		metrics.APICalls.WithLabelValues("tools", toolName, "started").Inc()

		price, err := priceFromParams(cfg, params)
		if err != nil {
			return nil, failValidation(span, toolName, err)
		}
		span.SetAttributes(attribute.Int64("price", price))

		result, err := calculations.Calculate12(price)
		if err != nil {
			return nil, failCalculation(span, toolName, "calculation", err)
		}

		span.SetAttributes(attribute.Int64("base", result.Base))
		succeed(span, toolName)

		return result, nil
	}
}

// Installment24Handler обрабатывает запрос на рассрочку на 24 месяца
func Installment24Handler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := Installment24

		ctx, span := tracer.Start(ctx, toolName)
		defer span.End()

		metrics.APICalls.WithLabelValues("tools", toolName, "started").Inc()

		price, err := priceFromParams(cfg, params)
		if err != nil {
			return nil, failValidation(span, toolName, err)
		}
		span.SetAttributes(attribute.Int64("price", price))

		result, err := calculations.Calculate24(price)
		if err != nil {
			return nil, failCalculation(span, toolName, "calculation", err)
		}

		span.SetAttributes(
			attribute.Int64("base", result.Base),
			attribute.Int64("milestone_payment", result.MilestonePayment),
		)
		succeed(span, toolName)

		return result, nil
	}
}

// LotLookupHandler находит лот по коду или площади
func LotLookupHandler(cfg *config.Config, tracer trace.Tracer, svc *service.Service) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := LotLookup

		ctx, span := tracer.Start(ctx, toolName)
		defer span.End()

		metrics.APICalls.WithLabelValues("tools", toolName, "started").Inc()

		var ref service.LotRef
		if code, ok := params["code"].(string); ok {
			ref.Code = code
		}
		area, hasArea, err := numberParam(params, "area")
		if err != nil {
			return nil, failValidation(span, toolName, err)
		}
		if ref.Code == "" && hasArea {
			if err := validators.CheckArea(cfg, area); err != nil {
				return nil, failValidation(span, toolName, err)
			}
			ref.Area = area
		}

		span.SetAttributes(
			attribute.String("code", ref.Code),
			attribute.Float64("area", ref.Area),
		)

		lot, err := svc.ResolveLot(ctx, ref)
		if errors.Is(err, calculations.ErrInvalidInput) {
			return nil, failValidation(span, toolName, err)
		}
		if err != nil {
			return nil, failCalculation(span, toolName, "lookup", err)
		}

		span.SetAttributes(attribute.String("lot", lot.Code))
		succeed(span, toolName)

		return lot, nil
	}
}

// Registry сопоставляет имена инструментов обработчикам
type Registry map[string]ToolHandler

// NewRegistry регистрирует все инструменты сервиса
func NewRegistry(cfg *config.Config, tracer trace.Tracer, svc *service.Service) Registry {
	return Registry{
		InvestmentProjection: InvestmentProjectionHandler(cfg, tracer),
		Installment12:        Installment12Handler(cfg, tracer),
		Installment24:        Installment24Handler(cfg, tracer),
		LotLookup:            LotLookupHandler(cfg, tracer, svc),
	}
}

// Call вызывает инструмент по имени
func (r Registry) Call(ctx context.Context, name string, params map[string]interface{}) (interface{}, error) {
	handler, ok := r[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	if params == nil {
		params = map[string]interface{}{}
	}
	return handler(ctx, params)
}

// Names возвращает имена зарегистрированных инструментов по алфавиту
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
