package pricing

import (
	"context"
	"errors"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/VH-BookingService/internal/config"
	"github.com/m04kA/VH-BookingService/internal/domain"
	"github.com/m04kA/VH-BookingService/internal/infra/storage/catalog"
)

// Calculator считает стоимость аксессуаров и применяет сервисный сбор.
// Ставки берутся из конфигурации, а не из констант: тарифы меняются
// без правки логики расчета.
type Calculator struct {
	catalog        FurnitureCatalog
	chairsPerTable int
	feeRate        float64
	depositShare   float64
	logger         Logger
}

// NewCalculator создает новый калькулятор стоимости
func NewCalculator(furnitureCatalog FurnitureCatalog, cfg config.PricingConfig, logger Logger) *Calculator {
	return &Calculator{
		catalog:        furnitureCatalog,
		chairsPerTable: cfg.ChairsPerTable,
		feeRate:        cfg.FeeRate,
		depositShare:   cfg.DepositShare,
		logger:         logger,
	}
}

// ComputeAccessories разрешает выбор аксессуаров по каталогу и строит
// денормализованную разбивку.
//
// Строки столов независимы друг от друга и от строки стульев, поэтому
// все позиции каталога читаются конкурентно; первая ошибка прерывает
// расчет, частичные результаты не используются.
// Количество стульев клиент не передает - оно фиксировано как
// chairsPerTable * суммарное количество столов. Пустой список столов
// допустим и дает ноль столов, ноль стульев и нулевую стоимость.
func (c *Calculator) ComputeAccessories(ctx context.Context, selection domain.AccessorySelection) (*AccessoryCost, error) {
	if selection.ChairID <= 0 {
		return nil, fmt.Errorf("%w: chair furniture id is required", ErrInvalidSelection)
	}
	for _, table := range selection.Tables {
		if table.FurnitureID <= 0 {
			return nil, fmt.Errorf("%w: table furniture id is required", ErrInvalidSelection)
		}
		if table.Quantity <= 0 {
			return nil, fmt.Errorf("%w: table quantity must be positive", ErrInvalidSelection)
		}
	}

	tableItems := make([]*domain.Furniture, len(selection.Tables))
	var chairItem *domain.Furniture

	g, gCtx := errgroup.WithContext(ctx)

	for i, table := range selection.Tables {
		i, table := i, table
		g.Go(func() error {
			item, err := c.catalog.GetFurniture(gCtx, table.FurnitureID)
			if err != nil {
				if errors.Is(err, catalog.ErrFurnitureNotFound) {
					return fmt.Errorf("%w: table id=%d", ErrFurnitureNotFound, table.FurnitureID)
				}
				return fmt.Errorf("%w: get table id=%d: %v", ErrInternal, table.FurnitureID, err)
			}
			tableItems[i] = item
			return nil
		})
	}

	g.Go(func() error {
		item, err := c.catalog.GetFurniture(gCtx, selection.ChairID)
		if err != nil {
			if errors.Is(err, catalog.ErrFurnitureNotFound) {
				return fmt.Errorf("%w: chair id=%d", ErrFurnitureNotFound, selection.ChairID)
			}
			return fmt.Errorf("%w: get chair id=%d: %v", ErrInternal, selection.ChairID, err)
		}
		chairItem = item
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	cost := &AccessoryCost{
		Breakdown: domain.AccessoryBreakdown{
			Tables: make([]domain.AccessoryLine, 0, len(selection.Tables)),
		},
	}

	for i, table := range selection.Tables {
		item := tableItems[i]
		lineTotal := item.Price * float64(table.Quantity)

		cost.TableSubtotal += lineTotal
		cost.TotalTables += table.Quantity
		cost.Breakdown.Tables = append(cost.Breakdown.Tables, domain.AccessoryLine{
			FurnitureID:      item.ID,
			Name:             item.Name,
			UnitPrice:        item.Price,
			Quantity:         table.Quantity,
			LineTotal:        lineTotal,
			Description:      item.Description,
			ShortDescription: item.ShortDescription,
			Images:           item.Images,
			Type:             item.Type,
		})
	}

	chairQuantity := cost.TotalTables * c.chairsPerTable
	cost.ChairSubtotal = chairItem.Price * float64(chairQuantity)
	cost.Breakdown.Chair = domain.AccessoryLine{
		FurnitureID:      chairItem.ID,
		Name:             chairItem.Name,
		UnitPrice:        chairItem.Price,
		Quantity:         chairQuantity,
		LineTotal:        cost.ChairSubtotal,
		Description:      chairItem.Description,
		ShortDescription: chairItem.ShortDescription,
		Images:           chairItem.Images,
		Type:             chairItem.Type,
	}

	cost.AccessoryTotal = cost.TableSubtotal + cost.ChairSubtotal
	cost.Breakdown.TotalPrice = cost.AccessoryTotal

	c.logger.Info("ComputeAccessories: tables=%d, chairs=%d, table_subtotal=%.0f, chair_subtotal=%.0f, total=%.0f",
		cost.TotalTables, chairQuantity, cost.TableSubtotal, cost.ChairSubtotal, cost.AccessoryTotal)

	return cost, nil
}

// SplitFee применяет сервисный сбор к базовой стоимости и делит
// результат на депозит и остаток.
//
// Депозит и остаток округляются независимо до целой денежной единицы,
// поэтому их сумма может отличаться от TotalWithFee на +-1 единицу.
// Это поведение сохранено намеренно, сверка не выполняется.
func (c *Calculator) SplitFee(baseTotal float64) FeeSplit {
	feeAmount := baseTotal * c.feeRate
	totalWithFee := baseTotal + feeAmount

	return FeeSplit{
		FeeRate:       c.feeRate,
		FeeAmount:     feeAmount,
		TotalWithFee:  totalWithFee,
		DepositAmount: math.Round(totalWithFee * c.depositShare),
		BalanceAmount: math.Round(totalWithFee * (1 - c.depositShare)),
	}
}
