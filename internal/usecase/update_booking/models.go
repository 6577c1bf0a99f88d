package update_booking

import (
	"time"

	"github.com/m04kA/VH-BookingService/internal/domain"
)

// TableLine строка выбора столов в запросе
type TableLine struct {
	FurnitureID int64 // ID позиции каталога мебели
	Quantity    int   // Количество столов этой позиции
}

// Request модель запроса на обновление бронирования.
// Обновление полное: запрос несет все поля брони, а не дельту.
type Request struct {
	UserID  int64 // ID пользователя-заказчика
	VenueID int64 // ID зала
	SpaceID int64 // ID пространства
	StageID int64 // ID сцены
	DecorID int64 // ID пакета декора
	MenuID  int64 // ID пакета меню

	Name             string       // Название мероприятия
	OrganizationDate time.Time    // Целевая дата проведения (без времени)
	Shift            domain.Shift // Смена (morning | evening)

	Tables  []TableLine // Выбранные столы
	ChairID int64       // ID позиции стульев в каталоге

	Amount float64 // Заявленная клиентом базовая стоимость (для сверки)
}

// toSelection конвертирует запрос в domain выбор аксессуаров
func (r *Request) toSelection() domain.AccessorySelection {
	selection := domain.AccessorySelection{
		Tables:  make([]domain.TableSelection, 0, len(r.Tables)),
		ChairID: r.ChairID,
	}
	for _, line := range r.Tables {
		selection.Tables = append(selection.Tables, domain.TableSelection{
			FurnitureID: line.FurnitureID,
			Quantity:    line.Quantity,
		})
	}
	return selection
}
