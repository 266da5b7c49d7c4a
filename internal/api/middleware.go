package api

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/semiekhin/rizalta-bot-dev/internal/api/response"
	"github.com/semiekhin/rizalta-bot-dev/internal/calculations"
	"github.com/semiekhin/rizalta-bot-dev/internal/lots"
	"github.com/semiekhin/rizalta-bot-dev/internal/metrics"
	"github.com/semiekhin/rizalta-bot-dev/internal/pdf"
	"github.com/semiekhin/rizalta-bot-dev/internal/tools"
)

const (
	traceIDHeader   = "X-Trace-Id"
	traceIDLocal    = "trace_id"
	sessionIDHeader = "X-Session-Id"
)

// Tracing добавляет trace id к запросу и ответу
func Tracing() fiber.Handler {
	return func(c *fiber.Ctx) error {
		traceID := uuid.New().String()
		c.Locals(traceIDLocal, traceID)
		c.Set(traceIDHeader, traceID)
		return c.Next()
	}
}

// GetTraceID возвращает trace id текущего запроса
func GetTraceID(c *fiber.Ctx) string {
	if id, ok := c.Locals(traceIDLocal).(string); ok {
		return id
	}
	return ""
}

// SessionID возвращает идентификатор сессии клиента из заголовка X-Session-Id
func SessionID(c *fiber.Ctx) string {
	return c.Get(sessionIDHeader)
}

// RouteLogger логирует вход и выход запроса с длительностью и trace id
func RouteLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		traceID := GetTraceID(c)
		if traceID == "" {
			traceID = "no-trace-id"
		}
		start := time.Now()
		log.Info().Str("trace_id", traceID).Str("method", c.Method()).Str("path", c.Path()).Msg("Entering request")
		err := c.Next()
		ms := time.Since(start).Milliseconds()
		log.Info().Str("trace_id", traceID).Str("method", c.Method()).Str("path", c.Path()).Int64("ms", ms).Msg("Exiting request")
		return err
	}
}

// Metrics считает запросы по шаблону маршрута и коду ответа
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			status = statusFor(err)
		}
		metrics.APICalls.WithLabelValues("http", c.Route().Path, strconv.Itoa(status)).Inc()
		return err
	}
}

// statusFor сопоставляет ошибке HTTP-код
func statusFor(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, calculations.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, lots.ErrLotNotFound), errors.Is(err, tools.ErrUnknownTool):
		return fiber.StatusNotFound
	case errors.Is(err, pdf.ErrConverterUnavailable):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, pdf.ErrConversionTimeout):
		return fiber.StatusGatewayTimeout
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler - глобальный обработчик ошибок в стандартном формате
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := statusFor(err)
	message := err.Error()
	details := map[string]interface{}{}

	var invalid *calculations.InvalidInputError
	if errors.As(err, &invalid) {
		details["field"] = invalid.Field
	}
	if code >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("trace_id", GetTraceID(c)).Str("path", c.Path()).Msg("request failed")
		if code == fiber.StatusInternalServerError {
			message = "Internal Server Error"
		}
	}

	return response.Error(c, message, code, details)
}
