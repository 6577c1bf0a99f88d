package pricing

import "errors"

var (
	// ErrFurnitureNotFound возвращается, когда позиция каталога не найдена
	ErrFurnitureNotFound = errors.New("pricing: furniture not found")

	// ErrInvalidSelection возвращается при некорректном выборе аксессуаров
	ErrInvalidSelection = errors.New("pricing: invalid accessory selection")

	// ErrInternal возвращается при внутренних ошибках расчета
	ErrInternal = errors.New("pricing: internal error")
)
