package get_schedule

import (
	"github.com/m04kA/VH-BookingService/internal/domain"
)

// SlotEntry один слот календаря занятости
type SlotEntry struct {
	Date        string  `json:"date"` // "2025-10-15"
	Shift       string  `json:"shift"`
	ShiftTime   string  `json:"shiftTime"` // "08:00"
	Occupied    bool    `json:"occupied"`
	BookingID   *int64  `json:"bookingId"`
	BookingName *string `json:"bookingName"`
}

// Response календарь занятости на ближайшее окно бронирования
type Response struct {
	Slots []SlotEntry `json:"slots"`
}

// fromDomainSlot конвертирует domain слот в DTO
func fromDomainSlot(slot domain.ScheduleSlot) SlotEntry {
	return SlotEntry{
		Date:        slot.Date.Format(domain.DateFormat),
		Shift:       string(slot.Shift),
		ShiftTime:   slot.Shift.StartTime().String(),
		Occupied:    slot.Occupied,
		BookingID:   slot.BookingID,
		BookingName: slot.BookingName,
	}
}
