package domain

import "time"

// ScheduleSlot элемент календаря занятости: слот (дата, смена)
// с признаком занятости и данными бронирования, если оно есть
type ScheduleSlot struct {
	Date     time.Time
	Shift    Shift
	Occupied bool

	BookingID   *int64
	BookingName *string
}
