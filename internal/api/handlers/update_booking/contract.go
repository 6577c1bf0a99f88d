package update_booking

import (
	"context"

	bookingModels "github.com/m04kA/VH-BookingService/internal/service/bookings/models"
	updateBooking "github.com/m04kA/VH-BookingService/internal/usecase/update_booking"
)

type UpdateBookingUseCase interface {
	Execute(ctx context.Context, id int64, req *updateBooking.Request) (*bookingModels.EnrichedBookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
