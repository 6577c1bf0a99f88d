package create_booking

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("create_booking: user not found")

	// ErrVenueNotFound возвращается, когда зал не найден
	ErrVenueNotFound = errors.New("create_booking: venue not found")

	// ErrSpaceNotFound возвращается, когда пространство не найдено
	ErrSpaceNotFound = errors.New("create_booking: space not found")

	// ErrStageNotFound возвращается, когда сцена не найдена
	ErrStageNotFound = errors.New("create_booking: stage not found")

	// ErrDecorNotFound возвращается, когда пакет декора не найден
	ErrDecorNotFound = errors.New("create_booking: decor package not found")

	// ErrMenuNotFound возвращается, когда пакет меню не найден
	ErrMenuNotFound = errors.New("create_booking: menu package not found")

	// ErrFurnitureNotFound возвращается, когда позиция каталога мебели не найдена
	ErrFurnitureNotFound = errors.New("create_booking: furniture not found")

	// ErrSlotTaken возвращается, когда слот (дата, смена) уже занят
	ErrSlotTaken = errors.New("create_booking: slot is already booked")

	// ErrCapacityExceeded возвращается, когда количество столов превышает вместимость сцены
	ErrCapacityExceeded = errors.New("create_booking: stage capacity exceeded")

	// ErrAmountMismatch возвращается, когда сумма клиента не совпадает с расчетной
	ErrAmountMismatch = errors.New("create_booking: declared amount does not match computed total")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
