package api

import (
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/semiekhin/rizalta-bot-dev/internal/api/response"
	"github.com/semiekhin/rizalta-bot-dev/internal/calculations"
	"github.com/semiekhin/rizalta-bot-dev/internal/config"
	"github.com/semiekhin/rizalta-bot-dev/internal/lots"
	"github.com/semiekhin/rizalta-bot-dev/internal/service"
	"github.com/semiekhin/rizalta-bot-dev/internal/tools"
	"github.com/semiekhin/rizalta-bot-dev/internal/validators"
	"github.com/semiekhin/rizalta-bot-dev/pkg/utils"
)

// Pinger проверяет доступность хранилища
type Pinger interface {
	Ping() error
}

// Handlers обслуживает HTTP-маршруты расчётов
type Handlers struct {
	Service *service.Service
	Tools   tools.Registry
	Config  *config.Config
	DB      Pinger
}

const formatText = "text"

var million = decimal.NewFromInt(1_000_000)

// GET /health
func (h *Handlers) Health(c *fiber.Ctx) error {
	status := fiber.Map{"database": "skipped"}
	if h.DB != nil {
		if err := h.DB.Ping(); err != nil {
			return response.Error(c, "database unavailable", fiber.StatusServiceUnavailable, fiber.Map{"database": err.Error()})
		}
		status["database"] = "ok"
	}
	return response.Success(c, "ok", status, nil)
}

// queryFloat читает необязательный числовой параметр запроса
func queryFloat(c *fiber.Ctx, name string) (float64, bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || !utils.IsFinite(value) {
		return 0, true, &calculations.InvalidInputError{Field: name, Reason: "ожидается число"}
	}
	return value, true, nil
}

// millionsToRub переводит бюджет в миллионах в рубли
func millionsToRub(value float64) int64 {
	return utils.RoundRub(decimal.NewFromFloat(value).Mul(million))
}

// GET /api/v1/lots?min_area=&max_area= | ?min_budget=&max_budget= (млн ₽)
func (h *Handlers) ListLots(c *fiber.Ctx) error {
	ctx := c.UserContext()

	minArea, hasMinArea, err := queryFloat(c, "min_area")
	if err != nil {
		return err
	}
	maxArea, hasMaxArea, err := queryFloat(c, "max_area")
	if err != nil {
		return err
	}
	minBudget, hasMinBudget, err := queryFloat(c, "min_budget")
	if err != nil {
		return err
	}
	maxBudget, hasMaxBudget, err := queryFloat(c, "max_budget")
	if err != nil {
		return err
	}

	var result []lots.Lot
	switch {
	case hasMinArea || hasMaxArea:
		if !hasMaxArea {
			maxArea = h.Config.MaxArea
		}
		if err := validators.CheckAreaRange(h.Config, minArea, maxArea); err != nil {
			return err
		}
		result, err = h.Service.ByAreaRange(ctx, minArea, maxArea)
	case hasMinBudget || hasMaxBudget:
		if !hasMaxBudget {
			maxBudget = h.Config.MaxPrice / 1_000_000
		}
		low, high := millionsToRub(minBudget), millionsToRub(maxBudget)
		if err := validators.CheckBudgetRange(h.Config, low, high); err != nil {
			return err
		}
		result, err = h.Service.ByBudgetRange(ctx, low, high)
	default:
		result, err = h.Service.UniqueLots(ctx)
	}
	if err != nil {
		return err
	}
	if result == nil {
		result = []lots.Lot{}
	}

	return response.Success(c, "Lots fetched successfully", result, fiber.Map{"count": len(result)})
}

// GET /api/v1/lots/stats
func (h *Handlers) LotStats(c *fiber.Ctx) error {
	stats, err := h.Service.Stats(c.UserContext())
	if err != nil {
		return err
	}
	return response.Success(c, "Catalogue stats", stats, nil)
}

// GET /api/v1/lots/:code
func (h *Handlers) GetLot(c *fiber.Ctx) error {
	lot, err := h.Service.ResolveLot(c.UserContext(), service.LotRef{Code: c.Params("code")})
	if err != nil {
		return err
	}
	return response.Success(c, "Lot found", fiber.Map{
		"lot":          lot,
		"price_per_m2": lot.PricePerM2(),
	}, nil)
}

func (h *Handlers) sendInvestment(c *fiber.Ctx, ref service.LotRef) error {
	result, err := h.Service.Investment(c.UserContext(), ref)
	if err != nil {
		return err
	}
	if c.Query("format") == formatText {
		return c.SendString(result.Text + "\n\n" + result.Table)
	}
	return response.Success(c, "Investment projection", result, nil)
}

// GET /api/v1/lots/:code/investment
func (h *Handlers) LotInvestment(c *fiber.Ctx) error {
	return h.sendInvestment(c, service.LotRef{Code: c.Params("code")})
}

// GET /api/v1/areas/:area/investment - площадь в м², например 35.5
func (h *Handlers) AreaInvestment(c *fiber.Ctx) error {
	area, err := strconv.ParseFloat(c.Params("area"), 64)
	if err != nil {
		return &calculations.InvalidInputError{Field: "area", Reason: "ожидается число"}
	}
	if err := validators.CheckArea(h.Config, area); err != nil {
		return err
	}
	return h.sendInvestment(c, service.LotRef{Area: area})
}

// GET /api/v1/lots/:code/investment.xlsx
func (h *Handlers) LotWorkbook(c *fiber.Ctx) error {
	artifact, err := h.Service.Workbook(c.UserContext(), SessionID(c), service.LotRef{Code: c.Params("code")})
	if err != nil {
		return err
	}
	return response.File(c, artifact.Name, artifact.ContentType, artifact.Data)
}

// GET /api/v1/lots/:code/installments
func (h *Handlers) LotInstallments(c *fiber.Ctx) error {
	result, err := h.Service.Installments(c.UserContext(), service.LotRef{Code: c.Params("code")})
	if err != nil {
		return err
	}
	if c.Query("format") == formatText {
		return c.SendString(result.Text)
	}
	return response.Success(c, "Installment plans", result, nil)
}

// GET /api/v1/lots/:code/proposal?format=pdf|html&include24=true
func (h *Handlers) LotProposal(c *fiber.Ctx) error {
	asPDF := true
	switch c.Query("format", "pdf") {
	case "pdf":
	case "html":
		asPDF = false
	default:
		return &calculations.InvalidInputError{Field: "format", Reason: "допустимо pdf или html"}
	}

	artifact, err := h.Service.Proposal(
		c.UserContext(), SessionID(c), service.LotRef{Code: c.Params("code")},
		c.QueryBool("include24", true), asPDF,
	)
	if err != nil {
		return err
	}
	return response.File(c, artifact.Name, artifact.ContentType, artifact.Data)
}

// GET /api/v1/tools
func (h *Handlers) ListTools(c *fiber.Ctx) error {
	return response.Success(c, "Available tools", h.Tools.Names(), nil)
}

// POST /api/v1/tools/:name - параметры инструмента в теле JSON
func (h *Handlers) CallTool(c *fiber.Ctx) error {
	params := map[string]interface{}{}
	if body := c.Body(); len(body) > 0 {
		if err := json.Unmarshal(body, &params); err != nil {
			return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
		}
	}

	name := c.Params("name")
	result, err := h.Tools.Call(c.UserContext(), name, params)
	if err != nil {
		return err
	}
	return response.Success(c, name, result, nil)
}

// DELETE /api/v1/sessions/:id/cache
func (h *Handlers) ForgetSession(c *fiber.Ctx) error {
	if err := h.Service.ForgetSession(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return response.Success(c, "Session cache cleared", nil, nil)
}
