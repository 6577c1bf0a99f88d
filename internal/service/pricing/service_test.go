package pricing

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/VH-BookingService/internal/config"
	"github.com/m04kA/VH-BookingService/internal/domain"
	"github.com/m04kA/VH-BookingService/internal/infra/storage/catalog"
)

type fakeFurnitureCatalog struct {
	items map[int64]*domain.Furniture
}

func (f *fakeFurnitureCatalog) GetFurniture(_ context.Context, id int64) (*domain.Furniture, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: id=%d", catalog.ErrFurnitureNotFound, id)
	}
	return item, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testPricingConfig() config.PricingConfig {
	return config.PricingConfig{
		FeeRate:        0.10,
		DepositShare:   0.30,
		ChairsPerTable: 10,
	}
}

func testCatalog() *fakeFurnitureCatalog {
	return &fakeFurnitureCatalog{items: map[int64]*domain.Furniture{
		1: {ID: 1, Name: "Round table", Price: 16000, Type: domain.FurnitureTable},
		2: {ID: 2, Name: "Long table", Price: 20000, Type: domain.FurnitureTable},
		3: {ID: 3, Name: "Banquet chair", Price: 400, Type: domain.FurnitureChair},
	}}
}

func TestComputeAccessories_ChairsScaleWithTables(t *testing.T) {
	calc := NewCalculator(testCatalog(), testPricingConfig(), nopLogger{})

	cost, err := calc.ComputeAccessories(context.Background(), domain.AccessorySelection{
		Tables: []domain.TableSelection{
			{FurnitureID: 1, Quantity: 3},
			{FurnitureID: 2, Quantity: 2},
		},
		ChairID: 3,
	})
	require.NoError(t, err)

	assert.Equal(t, 5, cost.TotalTables)
	assert.Equal(t, float64(3*16000+2*20000), cost.TableSubtotal)

	// 5 столов по 10 стульев
	assert.Equal(t, 50, cost.Breakdown.Chair.Quantity)
	assert.Equal(t, float64(50*400), cost.ChairSubtotal)

	assert.Equal(t, cost.TableSubtotal+cost.ChairSubtotal, cost.AccessoryTotal)
	assert.Equal(t, cost.AccessoryTotal, cost.Breakdown.TotalPrice)
	require.Len(t, cost.Breakdown.Tables, 2)
	assert.Equal(t, "Round table", cost.Breakdown.Tables[0].Name)
	assert.Equal(t, float64(3*16000), cost.Breakdown.Tables[0].LineTotal)
}

func TestComputeAccessories_EmptyTablesIsLegal(t *testing.T) {
	calc := NewCalculator(testCatalog(), testPricingConfig(), nopLogger{})

	cost, err := calc.ComputeAccessories(context.Background(), domain.AccessorySelection{
		Tables:  nil,
		ChairID: 3,
	})
	require.NoError(t, err)

	assert.Equal(t, 0, cost.TotalTables)
	assert.Equal(t, 0, cost.Breakdown.Chair.Quantity)
	assert.Equal(t, float64(0), cost.AccessoryTotal)
	assert.Empty(t, cost.Breakdown.Tables)
}

func TestComputeAccessories_UnknownFurniture(t *testing.T) {
	calc := NewCalculator(testCatalog(), testPricingConfig(), nopLogger{})

	_, err := calc.ComputeAccessories(context.Background(), domain.AccessorySelection{
		Tables:  []domain.TableSelection{{FurnitureID: 99, Quantity: 1}},
		ChairID: 3,
	})
	assert.ErrorIs(t, err, ErrFurnitureNotFound)

	_, err = calc.ComputeAccessories(context.Background(), domain.AccessorySelection{
		ChairID: 77,
	})
	assert.ErrorIs(t, err, ErrFurnitureNotFound)
}

func TestComputeAccessories_InvalidSelection(t *testing.T) {
	calc := NewCalculator(testCatalog(), testPricingConfig(), nopLogger{})

	_, err := calc.ComputeAccessories(context.Background(), domain.AccessorySelection{
		Tables:  []domain.TableSelection{{FurnitureID: 1, Quantity: 0}},
		ChairID: 3,
	})
	assert.ErrorIs(t, err, ErrInvalidSelection)

	_, err = calc.ComputeAccessories(context.Background(), domain.AccessorySelection{
		Tables: []domain.TableSelection{{FurnitureID: 1, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestSplitFee_KnownValues(t *testing.T) {
	calc := NewCalculator(testCatalog(), testPricingConfig(), nopLogger{})

	split := calc.SplitFee(350000)

	assert.Equal(t, 0.10, split.FeeRate)
	assert.Equal(t, float64(35000), split.FeeAmount)
	assert.Equal(t, float64(385000), split.TotalWithFee)
	assert.Equal(t, float64(115500), split.DepositAmount)
	assert.Equal(t, float64(269500), split.BalanceAmount)
}

func TestSplitFee_IndependentRoundingDrift(t *testing.T) {
	cfg := testPricingConfig()
	cfg.FeeRate = 0
	calc := NewCalculator(testCatalog(), cfg, nopLogger{})

	// 115 * 0.30 = 34.5 и 115 * 0.70 = 80.5 округляются вверх независимо
	split := calc.SplitFee(115)

	assert.Equal(t, float64(35), split.DepositAmount)
	assert.Equal(t, float64(81), split.BalanceAmount)

	drift := math.Abs(split.DepositAmount + split.BalanceAmount - split.TotalWithFee)
	assert.LessOrEqual(t, drift, float64(1))
}

func TestSplitFee_ZeroBase(t *testing.T) {
	calc := NewCalculator(testCatalog(), testPricingConfig(), nopLogger{})

	split := calc.SplitFee(0)

	assert.Equal(t, float64(0), split.FeeAmount)
	assert.Equal(t, float64(0), split.TotalWithFee)
	assert.Equal(t, float64(0), split.DepositAmount)
	assert.Equal(t, float64(0), split.BalanceAmount)
}
