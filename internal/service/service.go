package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/semiekhin/rizalta-bot-dev/internal/cache"
	"github.com/semiekhin/rizalta-bot-dev/internal/calculations"
	"github.com/semiekhin/rizalta-bot-dev/internal/format"
	"github.com/semiekhin/rizalta-bot-dev/internal/lots"
	"github.com/semiekhin/rizalta-bot-dev/internal/metrics"
	"github.com/semiekhin/rizalta-bot-dev/internal/pdf"
)

// LotStore - источник лотов
type LotStore interface {
	FindByCode(ctx context.Context, code string) (*lots.Lot, error)
	FindByArea(ctx context.Context, area float64) (*lots.Lot, error)
	UniqueLots(ctx context.Context) ([]lots.Lot, error)
	ByAreaRange(ctx context.Context, minArea, maxArea float64) ([]lots.Lot, error)
	ByBudgetRange(ctx context.Context, minBudget, maxBudget int64) ([]lots.Lot, error)
	All(ctx context.Context) ([]lots.Lot, error)
	Stats(ctx context.Context) (*lots.Stats, error)
}

// PDFConverter превращает HTML в PDF
type PDFConverter interface {
	Convert(ctx context.Context, html string) ([]byte, error)
}

// Виды артефактов в кэше
const (
	KindWorkbook     = "xlsx"
	KindProposalHTML = "kp-html"
	KindProposalPDF  = "kp-pdf"
)

// Service связывает каталог лотов, расчёты, форматирование и кэш файлов
type Service struct {
	Lots     LotStore
	Cache    cache.Cache
	PDF      PDFConverter
	CacheTTL time.Duration
	Logger   zerolog.Logger
}

// LotRef указывает лот по коду или по площади; код приоритетнее
type LotRef struct {
	Code string  `json:"code,omitempty"`
	Area float64 `json:"area,omitempty"`
}

// InvestmentResult - расчёт доходности лота вместе с текстом для чата
type InvestmentResult struct {
	Lot        *lots.Lot                `json:"lot"`
	Projection *calculations.Projection `json:"projection"`
	Text       string                   `json:"text"`
	Table      string                   `json:"table"`
}

// InstallmentResult - варианты рассрочки лота
type InstallmentResult struct {
	Lot    *lots.Lot                   `json:"lot"`
	Plan12 *calculations.Installment12 `json:"plan_12"`
	Plan24 *calculations.Installment24 `json:"plan_24"`
	Text   string                      `json:"text"`
}

// Artifact - сгенерированный файл для отправки пользователю
type Artifact struct {
	Name        string
	ContentType string
	Data        []byte
}

// ResolveLot находит лот по коду, а если код не задан, по площади
func (s *Service) ResolveLot(ctx context.Context, ref LotRef) (*lots.Lot, error) {
	switch {
	case ref.Code != "":
		lot, err := s.Lots.FindByCode(ctx, ref.Code)
		countLookup("code", err)
		return lot, err
	case ref.Area > 0:
		lot, err := s.Lots.FindByArea(ctx, ref.Area)
		countLookup("area", err)
		return lot, err
	default:
		return nil, &calculations.InvalidInputError{Field: "lot", Reason: "нужен код лота или площадь"}
	}
}

func countLookup(by string, err error) {
	switch {
	case err == nil:
		metrics.LotLookups.WithLabelValues(by, "found").Inc()
	case errors.Is(err, lots.ErrLotNotFound):
		metrics.LotLookups.WithLabelValues(by, "not_found").Inc()
	default:
		metrics.LotLookups.WithLabelValues(by, "error").Inc()
	}
}

// Investment считает 11-летний прогноз по цене за м² лота
func (s *Service) Investment(ctx context.Context, ref LotRef) (*InvestmentResult, error) {
	lot, err := s.ResolveLot(ctx, ref)
	if err != nil {
		return nil, err
	}

	projection, err := calculations.ProjectPerM2(lot.AreaM2, lot.PricePerM2())
	if err != nil {
		return nil, fmt.Errorf("investment for %s: %w", lot.Code, err)
	}

	s.Logger.Info().
		Str("lot", lot.Code).
		Int64("cost", projection.Summary.Cost).
		Int64("total_profit", projection.Summary.TotalProfit).
		Msg("investment calculated")

	return &InvestmentResult{
		Lot:        lot,
		Projection: projection,
		Text:       format.RenderInvestmentText(lot.Code, projection),
		Table:      format.RenderYearTable(projection),
	}, nil
}

// Installments считает рассрочку на 12 и 24 месяца по цене лота
func (s *Service) Installments(ctx context.Context, ref LotRef) (*InstallmentResult, error) {
	lot, err := s.ResolveLot(ctx, ref)
	if err != nil {
		return nil, err
	}

	plan12, plan24, err := installments(lot)
	if err != nil {
		return nil, err
	}

	s.Logger.Info().Str("lot", lot.Code).Int64("price", lot.PriceRub).Msg("installments calculated")

	return &InstallmentResult{
		Lot:    lot,
		Plan12: plan12,
		Plan24: plan24,
		Text:   format.RenderInstallmentText(lot, plan12, plan24),
	}, nil
}

func installments(lot *lots.Lot) (*calculations.Installment12, *calculations.Installment24, error) {
	plan12, err := calculations.Calculate12(lot.PriceRub)
	if err != nil {
		return nil, nil, fmt.Errorf("installment 12 for %s: %w", lot.Code, err)
	}
	plan24, err := calculations.Calculate24(lot.PriceRub)
	if err != nil {
		return nil, nil, fmt.Errorf("installment 24 for %s: %w", lot.Code, err)
	}
	return plan12, plan24, nil
}

// Workbook возвращает xlsx с расчётом прибыли, кэшируя его в рамках сессии
func (s *Service) Workbook(ctx context.Context, session string, ref LotRef) (*Artifact, error) {
	if err := checkSession(session); err != nil {
		return nil, err
	}
	lot, err := s.ResolveLot(ctx, ref)
	if err != nil {
		return nil, err
	}

	artifact := &Artifact{
		Name:        fmt.Sprintf("ROI_%s.xlsx", lot.Code),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	}

	artifact.Data, err = s.cached(ctx, cache.Key(session, KindWorkbook, lot.Code), KindWorkbook, func() ([]byte, error) {
		projection, err := calculations.ProjectPerM2(lot.AreaM2, lot.PricePerM2())
		if err != nil {
			return nil, fmt.Errorf("workbook for %s: %w", lot.Code, err)
		}
		var buf bytes.Buffer
		if err := format.WriteWorkbook(&buf, projection); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	})
	if err != nil {
		return nil, err
	}
	return artifact, nil
}

// Proposal возвращает коммерческое предложение в HTML или PDF.
// include24 добавляет блок рассрочки на 24 месяца
func (s *Service) Proposal(ctx context.Context, session string, ref LotRef, include24, asPDF bool) (*Artifact, error) {
	if err := checkSession(session); err != nil {
		return nil, err
	}
	lot, err := s.ResolveLot(ctx, ref)
	if err != nil {
		return nil, err
	}

	suffix := "_12m"
	if include24 {
		suffix = "_12m_24m"
	}
	kind, ext, contentType := KindProposalHTML, "html", "text/html; charset=utf-8"
	if asPDF {
		kind, ext, contentType = KindProposalPDF, "pdf", "application/pdf"
	}

	artifact := &Artifact{
		Name:        fmt.Sprintf("KP_%s%s.%s", lot.Code, suffix, ext),
		ContentType: contentType,
	}

	key := cache.Key(session, kind+suffix, lot.Code)
	artifact.Data, err = s.cached(ctx, key, kind, func() ([]byte, error) {
		plan12, plan24, err := installments(lot)
		if err != nil {
			return nil, err
		}
		if !include24 {
			plan24 = nil
		}
		html, err := format.RenderDocument(lot, plan12, plan24)
		if err != nil {
			return nil, err
		}
		if !asPDF {
			return []byte(html), nil
		}
		if s.PDF == nil {
			return nil, pdf.ErrConverterUnavailable
		}
		return s.PDF.Convert(ctx, html)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Info().Str("lot", lot.Code).Str("file", artifact.Name).Int("bytes", len(artifact.Data)).Msg("proposal ready")
	return artifact, nil
}

// ForgetSession удаляет все файлы сессии из кэша
func (s *Service) ForgetSession(ctx context.Context, session string) error {
	if err := checkSession(session); err != nil {
		return err
	}
	if s.Cache == nil {
		return nil
	}
	if err := s.Cache.DeletePrefix(ctx, cache.SessionPrefix(session)+":"); err != nil {
		return fmt.Errorf("failed to forget session %s: %w", session, err)
	}
	return nil
}

func checkSession(session string) error {
	if !cache.ValidSession(session) {
		return &calculations.InvalidInputError{Field: "session", Reason: "допустимы латинские буквы, цифры и символы _ . - (до 128)"}
	}
	return nil
}

// cached отдаёт файл из кэша или строит его через build и сохраняет.
// Ошибки кэша не прерывают генерацию
func (s *Service) cached(ctx context.Context, key, kind string, build func() ([]byte, error)) ([]byte, error) {
	if s.Cache != nil {
		data, ok, err := s.Cache.Get(ctx, key)
		switch {
		case err != nil:
			s.Logger.Warn().Err(err).Str("key", key).Msg("cache read failed")
		case ok:
			metrics.ArtifactCache.WithLabelValues(kind, "hit").Inc()
			return data, nil
		}
		metrics.ArtifactCache.WithLabelValues(kind, "miss").Inc()
	}

	data, err := build()
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, key, data, s.CacheTTL); err != nil {
			s.Logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
		}
	}
	return data, nil
}

// UniqueLots возвращает по одному лоту на каждую площадь
func (s *Service) UniqueLots(ctx context.Context) ([]lots.Lot, error) {
	return s.Lots.UniqueLots(ctx)
}

// ByAreaRange подбирает лоты по площади
func (s *Service) ByAreaRange(ctx context.Context, minArea, maxArea float64) ([]lots.Lot, error) {
	return s.Lots.ByAreaRange(ctx, minArea, maxArea)
}

// ByBudgetRange подбирает лоты по бюджету
func (s *Service) ByBudgetRange(ctx context.Context, minBudget, maxBudget int64) ([]lots.Lot, error) {
	return s.Lots.ByBudgetRange(ctx, minBudget, maxBudget)
}

// AllLots возвращает весь каталог
func (s *Service) AllLots(ctx context.Context) ([]lots.Lot, error) {
	return s.Lots.All(ctx)
}

// Stats возвращает сводку по каталогу
func (s *Service) Stats(ctx context.Context) (*lots.Stats, error) {
	return s.Lots.Stats(ctx)
}
