package create_booking

import (
	"context"

	bookingModels "github.com/m04kA/VH-BookingService/internal/service/bookings/models"
	createBooking "github.com/m04kA/VH-BookingService/internal/usecase/create_booking"
)

type CreateBookingUseCase interface {
	Execute(ctx context.Context, req *createBooking.Request) (*bookingModels.EnrichedBookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
