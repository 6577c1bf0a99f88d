package domain

import (
	"errors"

	"github.com/m04kA/VH-BookingService/pkg/types"
)

// Канонические времена начала смен
const (
	MorningStartTime types.TimeString = "08:00"
	EveningStartTime types.TimeString = "18:00"
)

// Форматы даты и времени
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
	TimeFormat = "15:04"      // HH:MM
)

// Значения по умолчанию
const (
	DefaultItemsPerPage = 10
	MaxEventNameLength  = 255
)

// ErrInvalidShift возвращается при неизвестном значении смены
var ErrInvalidShift = errors.New("domain: invalid shift")
