package delete_booking

import (
	"context"
)

type BookingService interface {
	SoftDelete(ctx context.Context, id int64, deletedBy int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
