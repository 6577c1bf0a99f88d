package availability

import "errors"

var (
	// ErrSlotTaken возвращается, когда слот (дата, смена) уже занят
	ErrSlotTaken = errors.New("availability: slot already taken")

	// ErrTooSoonToBook возвращается, когда дата мероприятия ближе
	// минимального срока бронирования
	ErrTooSoonToBook = errors.New("availability: organization date is too soon")

	// ErrTooSoonToEdit возвращается, когда до мероприятия осталось
	// меньше окна редактирования
	ErrTooSoonToEdit = errors.New("availability: too close to the event to edit")

	// ErrInternal возвращается при внутренних ошибках проверки
	ErrInternal = errors.New("availability: internal error")
)
