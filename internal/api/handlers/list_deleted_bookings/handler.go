package list_deleted_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/VH-BookingService/internal/api/handlers"
	listBookings "github.com/m04kA/VH-BookingService/internal/api/handlers/list_bookings"
	bookingsService "github.com/m04kA/VH-BookingService/internal/service/bookings"
)

const (
	msgInvalidQueryParams = "некорректные параметры фильтрации"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/deleted
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := listBookings.ParseListRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /bookings/deleted - Invalid query params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQueryParams)
		return
	}

	result, err := h.service.ListDeleted(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrInvalidInput):
			h.logger.Warn("GET /bookings/deleted - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQueryParams)

		default:
			h.logger.Error("GET /bookings/deleted - Failed to list bookings: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
