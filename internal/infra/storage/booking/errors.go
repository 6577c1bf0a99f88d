package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotTaken возвращается, когда слот (дата, смена) уже занят.
	// Маппится как с предварительной проверки, так и с уникального
	// индекса на insert/update - индекс является источником истины.
	ErrSlotTaken = errors.New("booking.repository: slot already taken")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")

	// ErrEncodeAccessories возвращается при ошибке сериализации разбивки аксессуаров
	ErrEncodeAccessories = errors.New("booking.repository: failed to encode accessories")

	// ErrDecodeAccessories возвращается при ошибке десериализации разбивки аксессуаров
	ErrDecodeAccessories = errors.New("booking.repository: failed to decode accessories")
)
