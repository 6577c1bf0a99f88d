package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/VH-BookingService/pkg/types"
)

// Shift смена занятости зала: утренняя или вечерняя.
// Закрытый enum - любое другое значение отклоняется на валидации.
type Shift string

const (
	ShiftMorning Shift = "morning"
	ShiftEvening Shift = "evening"
)

// AllShifts порядок смен внутри дня: утро раньше вечера
var AllShifts = []Shift{ShiftMorning, ShiftEvening}

// ParseShift валидирует строку и возвращает Shift
func ParseShift(s string) (Shift, error) {
	switch Shift(s) {
	case ShiftMorning:
		return ShiftMorning, nil
	case ShiftEvening:
		return ShiftEvening, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidShift, s)
	}
}

// StartTime каноническое время начала смены.
// Guard и слой хранения используют одно и то же отображение смена->время,
// иначе сравнение слотов на равенство перестает быть точным.
func (s Shift) StartTime() types.TimeString {
	switch s {
	case ShiftEvening:
		return EveningStartTime
	default:
		return MorningStartTime
	}
}

// MergeWithDate совмещает календарную дату с каноническим временем смены.
// Результат - timestamp, который хранится в organization_date.
func (s Shift) MergeWithDate(date time.Time) time.Time {
	hour, minute, _ := s.StartTime().Clock()
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, time.UTC)
}

// IsSameCalendarDay сравнивает две даты без учета времени
func IsSameCalendarDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// TruncateToDay обнуляет время, оставляя календарную дату
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay возвращает последний момент календарного дня.
// Фильтры по датам включают весь указанный день целиком.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
