package domain

// FurnitureType тип позиции каталога мебели
type FurnitureType string

const (
	FurnitureTable FurnitureType = "table"
	FurnitureChair FurnitureType = "chair"
)

// TableSelection запрошенная позиция столов: id позиции каталога и количество
type TableSelection struct {
	FurnitureID int64
	Quantity    int
}

// AccessorySelection входной выбор аксессуаров.
// Количество стульев клиент не передает - оно выводится из числа столов.
type AccessorySelection struct {
	Tables  []TableSelection
	ChairID int64
}

// AccessoryLine денормализованная строка разбивки аксессуаров.
// Снимок каталога на момент бронирования, а не ссылка: историческое
// бронирование не должно меняться при смене цен каталога.
type AccessoryLine struct {
	FurnitureID      int64         `json:"id"`
	Name             string        `json:"name"`
	UnitPrice        float64       `json:"amount"`
	Quantity         int           `json:"quantity"`
	LineTotal        float64       `json:"total_price"`
	Description      string        `json:"description"`
	ShortDescription string        `json:"short_description"`
	Images           []string      `json:"images"`
	Type             FurnitureType `json:"type"`
}

// AccessoryBreakdown персистируемая разбивка аксессуаров бронирования.
// Пересчитывается целиком на каждом create/update, никогда не патчится.
type AccessoryBreakdown struct {
	Tables     []AccessoryLine `json:"table"`
	Chair      AccessoryLine   `json:"chair"`
	TotalPrice float64         `json:"total_price"`
}

// TotalTables суммарное количество столов в разбивке
func (b *AccessoryBreakdown) TotalTables() int {
	total := 0
	for _, line := range b.Tables {
		total += line.Quantity
	}
	return total
}
