package pricing

import "github.com/m04kA/VH-BookingService/internal/domain"

// AccessoryCost результат расчета стоимости аксессуаров
type AccessoryCost struct {
	// AccessoryTotal суммарная стоимость столов и стульев
	AccessoryTotal float64
	// TableSubtotal стоимость всех строк столов
	TableSubtotal float64
	// TotalTables суммарное количество столов
	TotalTables int
	// ChairSubtotal стоимость стульев (количество выводится из столов)
	ChairSubtotal float64
	// Breakdown аннотированная разбивка для персистирования в бронировании
	Breakdown domain.AccessoryBreakdown
}

// FeeSplit результат применения сервисного сбора и разделения на
// депозит и остаток
type FeeSplit struct {
	// FeeRate примененная ставка сбора
	FeeRate float64
	// FeeAmount сумма сбора
	FeeAmount float64
	// TotalWithFee базовая стоимость плюс сбор
	TotalWithFee float64
	// DepositAmount депозит, округленный до целой денежной единицы
	DepositAmount float64
	// BalanceAmount остаток к оплате, округленный до целой денежной единицы
	BalanceAmount float64
}
