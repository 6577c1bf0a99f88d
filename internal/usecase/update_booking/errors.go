package update_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("update_booking: booking not found")

	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("update_booking: user not found")

	// ErrVenueNotFound возвращается, когда зал не найден
	ErrVenueNotFound = errors.New("update_booking: venue not found")

	// ErrSpaceNotFound возвращается, когда пространство не найдено
	ErrSpaceNotFound = errors.New("update_booking: space not found")

	// ErrStageNotFound возвращается, когда сцена не найдена
	ErrStageNotFound = errors.New("update_booking: stage not found")

	// ErrDecorNotFound возвращается, когда пакет декора не найден
	ErrDecorNotFound = errors.New("update_booking: decor package not found")

	// ErrMenuNotFound возвращается, когда пакет меню не найден
	ErrMenuNotFound = errors.New("update_booking: menu package not found")

	// ErrFurnitureNotFound возвращается, когда позиция каталога мебели не найдена
	ErrFurnitureNotFound = errors.New("update_booking: furniture not found")

	// ErrSlotTaken возвращается, когда слот (дата, смена) уже занят другим бронированием
	ErrSlotTaken = errors.New("update_booking: slot is already booked")

	// ErrTooSoonToBook возвращается, когда целевая дата ближе минимального срока
	ErrTooSoonToBook = errors.New("update_booking: organization date is too soon")

	// ErrTooSoonToEdit возвращается, когда до мероприятия осталось меньше окна заморозки
	ErrTooSoonToEdit = errors.New("update_booking: too close to the event to edit")

	// ErrCapacityExceeded возвращается, когда количество столов превышает вместимость сцены
	ErrCapacityExceeded = errors.New("update_booking: stage capacity exceeded")

	// ErrAmountMismatch возвращается, когда сумма клиента не совпадает с расчетной
	ErrAmountMismatch = errors.New("update_booking: declared amount does not match computed total")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking: internal error")
)
