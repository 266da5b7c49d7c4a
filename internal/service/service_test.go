package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semiekhin/rizalta-bot-dev/internal/cache"
	"github.com/semiekhin/rizalta-bot-dev/internal/calculations"
	"github.com/semiekhin/rizalta-bot-dev/internal/lots"
	"github.com/semiekhin/rizalta-bot-dev/internal/pdf"
)

type fakeConverter struct {
	calls int
	err   error
}

func (f *fakeConverter) Convert(_ context.Context, html string) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-" + html[:15]), nil
}

func setupService(t *testing.T) (*Service, *fakeConverter) {
	t.Helper()
	db, err := lots.Open(":memory:")
	require.NoError(t, err)
	require.NoError(t, lots.AutoMigrate(db))

	repo := lots.NewRepository(db)
	require.NoError(t, repo.Upsert(context.Background(),
		lots.Lot{Code: "A101", Building: 1, Floor: 1, Rooms: 1, AreaM2: 22.0, PriceRub: 15300000},
		lots.Lot{Code: "B205", Building: 2, Floor: 2, Rooms: 1, AreaM2: 35.5, PriceRub: 21726000},
	))

	conv := &fakeConverter{}
	return &Service{
		Lots:     repo,
		Cache:    cache.NewMemory(),
		PDF:      conv,
		CacheTTL: time.Minute,
		Logger:   zerolog.Nop(),
	}, conv
}

func TestResolveLot(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	lot, err := svc.ResolveLot(ctx, LotRef{Code: "в205"})
	require.NoError(t, err)
	assert.Equal(t, "B205", lot.Code)

	lot, err = svc.ResolveLot(ctx, LotRef{Area: 22.02})
	require.NoError(t, err)
	assert.Equal(t, "A101", lot.Code)

	_, err = svc.ResolveLot(ctx, LotRef{Code: "Z1"})
	assert.True(t, errors.Is(err, lots.ErrLotNotFound))

	_, err = svc.ResolveLot(ctx, LotRef{})
	assert.True(t, errors.Is(err, calculations.ErrInvalidInput))
}

func TestInvestment(t *testing.T) {
	svc, _ := setupService(t)

	result, err := svc.Investment(context.Background(), LotRef{Code: "B205"})
	require.NoError(t, err)

	s := result.Projection.Summary
	assert.Equal(t, int64(612000), s.PricePerM2)
	assert.Equal(t, int64(21726000), s.Cost)
	assert.Equal(t, int64(75187697), s.TotalProfit)
	assert.Equal(t, int64(73285698), s.FinalValue)
	assert.Contains(t, result.Text, "B205")
	assert.Contains(t, result.Table, "2035")
}

func TestInstallments(t *testing.T) {
	svc, _ := setupService(t)

	result, err := svc.Installments(context.Background(), LotRef{Code: "A101"})
	require.NoError(t, err)
	assert.Equal(t, int64(15150000), result.Plan12.Base)
	assert.Equal(t, int64(4545000), result.Plan12.Tiers[0].DownPayment)
	assert.Equal(t, int64(1515000), result.Plan24.MilestonePayment)
	assert.Contains(t, result.Text, "Рассрочка на 24 месяца")
}

func TestWorkbookIsCachedPerSession(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	first, err := svc.Workbook(ctx, "s1", LotRef{Code: "B205"})
	require.NoError(t, err)
	assert.Equal(t, "ROI_B205.xlsx", first.Name)
	assert.NotEmpty(t, first.Data)

	cached, ok, err := svc.Cache.Get(ctx, cache.Key("s1", KindWorkbook, "B205"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, first.Data, cached)

	require.NoError(t, svc.ForgetSession(ctx, "s1"))
	_, ok, _ = svc.Cache.Get(ctx, cache.Key("s1", KindWorkbook, "B205"))
	assert.False(t, ok)
}

func TestSessionIDIsValidated(t *testing.T) {
	svc, conv := setupService(t)
	ctx := context.Background()

	_, err := svc.Workbook(ctx, "alice", LotRef{Code: "B205"})
	require.NoError(t, err)

	for _, session := range []string{"*", "1:x", "al?ce"} {
		err := svc.ForgetSession(ctx, session)
		assert.True(t, errors.Is(err, calculations.ErrInvalidInput), session)

		_, err = svc.Workbook(ctx, session, LotRef{Code: "B205"})
		assert.True(t, errors.Is(err, calculations.ErrInvalidInput), session)

		_, err = svc.Proposal(ctx, session, LotRef{Code: "B205"}, true, true)
		assert.True(t, errors.Is(err, calculations.ErrInvalidInput), session)
	}
	assert.Equal(t, 0, conv.calls)

	_, ok, _ := svc.Cache.Get(ctx, cache.Key("alice", KindWorkbook, "B205"))
	assert.True(t, ok, "rejected session ids must not evict other sessions")
}

func TestProposal(t *testing.T) {
	svc, conv := setupService(t)
	ctx := context.Background()

	html, err := svc.Proposal(ctx, "s1", LotRef{Code: "A101"}, false, false)
	require.NoError(t, err)
	assert.Equal(t, "KP_A101_12m.html", html.Name)
	assert.True(t, strings.HasPrefix(html.ContentType, "text/html"))
	assert.NotContains(t, string(html.Data), "Рассрочка на 24 месяца")
	assert.Equal(t, 0, conv.calls)

	doc, err := svc.Proposal(ctx, "s1", LotRef{Code: "A101"}, true, true)
	require.NoError(t, err)
	assert.Equal(t, "KP_A101_12m_24m.pdf", doc.Name)
	assert.Equal(t, "application/pdf", doc.ContentType)
	assert.True(t, strings.HasPrefix(string(doc.Data), "%PDF-"))

	_, err = svc.Proposal(ctx, "s1", LotRef{Code: "A101"}, true, true)
	require.NoError(t, err)
	assert.Equal(t, 1, conv.calls, "second request must be served from cache")

	_, err = svc.Proposal(ctx, "s2", LotRef{Code: "A101"}, true, true)
	require.NoError(t, err)
	assert.Equal(t, 2, conv.calls, "cache is scoped to the session")
}

func TestProposalWithoutConverter(t *testing.T) {
	svc, _ := setupService(t)
	svc.PDF = nil

	_, err := svc.Proposal(context.Background(), "s1", LotRef{Code: "A101"}, true, true)
	assert.True(t, errors.Is(err, pdf.ErrConverterUnavailable))

	svc.PDF = &fakeConverter{err: pdf.ErrConversionTimeout}
	_, err = svc.Proposal(context.Background(), "s1", LotRef{Code: "A101"}, true, true)
	assert.True(t, errors.Is(err, pdf.ErrConversionTimeout))
}

func TestWithoutCache(t *testing.T) {
	svc, conv := setupService(t)
	svc.Cache = nil

	for i := 0; i < 2; i++ {
		_, err := svc.Proposal(context.Background(), "s1", LotRef{Code: "B205"}, false, true)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, conv.calls)
	assert.NoError(t, svc.ForgetSession(context.Background(), "s1"))
}
