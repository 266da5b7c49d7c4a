package lots

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogue() []Lot {
	return []Lot{
		{Code: "A101", Building: 1, Floor: 1, Rooms: 1, AreaM2: 22.0, PriceRub: 15300000, BlockSection: 1, Status: "free"},
		{Code: "A102", Building: 1, Floor: 1, Rooms: 1, AreaM2: 22.0, PriceRub: 15600000, BlockSection: 1, Status: "free"},
		{Code: "A310", Building: 1, Floor: 3, Rooms: 1, AreaM2: 26.8, PriceRub: 17000000, BlockSection: 2, Status: "free"},
		{Code: "B205", Building: 2, Floor: 2, Rooms: 2, AreaM2: 35.5, PriceRub: 21726000, BlockSection: 3, Status: "free"},
		{Code: "B412", Building: 2, Floor: 4, Rooms: 2, AreaM2: 44.1, PriceRub: 28500000, BlockSection: 4, Status: "reserved"},
	}
}

func setupRepository(t *testing.T) *Repository {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	repo := NewRepository(db)
	require.NoError(t, repo.Upsert(context.Background(), catalogue()...))
	return repo
}

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a101", "A101"},
		{"  В205 ", "B205"},
		{"АВЕКМНОРСТУХ", "ABEKMHOPSTYX"},
		{"b412", "B412"},
		{"", ""},
	}

	for _, tt := range tests {
		got := NormalizeCode(tt.in)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, got, NormalizeCode(got), "normalization must be idempotent")
	}
}

func TestPricePerM2(t *testing.T) {
	assert.Equal(t, int64(695454), Lot{AreaM2: 22.0, PriceRub: 15300000}.PricePerM2())
	assert.Equal(t, int64(612000), Lot{AreaM2: 35.5, PriceRub: 21726000}.PricePerM2())
	assert.Equal(t, int64(0), Lot{PriceRub: 100}.PricePerM2())
}

func TestFindByCode(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	lot, err := repo.FindByCode(ctx, "b205")
	require.NoError(t, err)
	assert.Equal(t, "B205", lot.Code)
	assert.Equal(t, 35.5, lot.AreaM2)

	// Кириллическая «В» в коде
	lot, err = repo.FindByCode(ctx, "В205")
	require.NoError(t, err)
	assert.Equal(t, "B205", lot.Code)

	_, err = repo.FindByCode(ctx, "Z999")
	assert.True(t, errors.Is(err, ErrLotNotFound))

	_, err = repo.FindByCode(ctx, "   ")
	assert.True(t, errors.Is(err, ErrLotNotFound))
}

func TestFindByArea(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	lot, err := repo.FindByArea(ctx, 22.0)
	require.NoError(t, err)
	assert.Equal(t, "A101", lot.Code, "cheapest lot of the area wins")

	lot, err = repo.FindByArea(ctx, 35.46)
	require.NoError(t, err)
	assert.Equal(t, "B205", lot.Code)

	_, err = repo.FindByArea(ctx, 35.56)
	assert.True(t, errors.Is(err, ErrLotNotFound))
}

func TestUniqueLotsAndRanges(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	unique, err := repo.UniqueLots(ctx)
	require.NoError(t, err)
	codes := make([]string, 0, len(unique))
	for _, l := range unique {
		codes = append(codes, l.Code)
	}
	assert.Equal(t, []string{"A101", "A310", "B205", "B412"}, codes)

	byArea, err := repo.ByAreaRange(ctx, 26.8, 35.5)
	require.NoError(t, err)
	require.Len(t, byArea, 2)
	assert.Equal(t, "A310", byArea[0].Code)
	assert.Equal(t, "B205", byArea[1].Code)

	byBudget, err := repo.ByBudgetRange(ctx, 15000000, 17000000)
	require.NoError(t, err)
	require.Len(t, byBudget, 2)
	assert.Equal(t, "A101", byBudget[0].Code)

	none, err := repo.ByBudgetRange(ctx, 1, 2)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestAllAndStats(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, "A101", all[0].Code)
	assert.Equal(t, "B412", all[4].Code)

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), stats.TotalLots)
	assert.Equal(t, int64(4), stats.UniqueAreas)
	assert.Equal(t, int64(15300000), stats.MinPrice)
	assert.Equal(t, int64(28500000), stats.MaxPrice)
	assert.Equal(t, 22.0, stats.MinArea)
	assert.Equal(t, 44.1, stats.MaxArea)
}

func TestUpsertUpdatesExisting(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, Lot{Code: "а101", Building: 1, Floor: 1, AreaM2: 22.0, PriceRub: 14900000}))

	lot, err := repo.FindByCode(ctx, "A101")
	require.NoError(t, err)
	assert.Equal(t, int64(14900000), lot.PriceRub)

	all, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestStatsEmptyCatalogue(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	stats, err := NewRepository(db).Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalLots)
	assert.Equal(t, int64(0), stats.MaxPrice)
}
