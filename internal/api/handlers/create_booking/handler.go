package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/VH-BookingService/internal/api/handlers"
	createBooking "github.com/m04kA/VH-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrShift = "некорректная дата мероприятия или смена, ожидается YYYY-MM-DD и morning|evening"
	msgSlotTaken          = "выбранные дата и смена уже заняты"
	msgUserNotFound       = "пользователь не найден"
	msgVenueNotFound      = "зал не найден"
	msgSpaceNotFound      = "пространство не найдено"
	msgStageNotFound      = "сцена не найдена"
	msgDecorNotFound      = "пакет декора не найден"
	msgMenuNotFound       = "пакет меню не найден"
	msgFurnitureNotFound  = "позиция каталога мебели не найдена"
	msgCapacityExceeded   = "количество столов превышает вместимость сцены"
	msgAmountMismatch     = "заявленная сумма не совпадает с расчетной"
	msgInvalidInput       = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrShift)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotTaken):
			h.logger.Warn("POST /bookings - Slot taken: user_id=%d, date=%s, shift=%s",
				req.UserID, req.OrganizationDate, req.Shift)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		case errors.Is(err, createBooking.ErrUserNotFound):
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, createBooking.ErrVenueNotFound):
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, createBooking.ErrSpaceNotFound):
			handlers.RespondNotFound(w, msgSpaceNotFound)

		case errors.Is(err, createBooking.ErrStageNotFound):
			handlers.RespondNotFound(w, msgStageNotFound)

		case errors.Is(err, createBooking.ErrDecorNotFound):
			handlers.RespondNotFound(w, msgDecorNotFound)

		case errors.Is(err, createBooking.ErrMenuNotFound):
			handlers.RespondNotFound(w, msgMenuNotFound)

		case errors.Is(err, createBooking.ErrFurnitureNotFound):
			handlers.RespondNotFound(w, msgFurnitureNotFound)

		case errors.Is(err, createBooking.ErrCapacityExceeded):
			h.logger.Warn("POST /bookings - Capacity exceeded: user_id=%d", req.UserID)
			handlers.RespondBadRequest(w, msgCapacityExceeded)

		case errors.Is(err, createBooking.ErrAmountMismatch):
			h.logger.Warn("POST /bookings - Amount mismatch: user_id=%d, declared=%.2f",
				req.UserID, req.Amount)
			handlers.RespondBadRequest(w, msgAmountMismatch)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, error=%v",
				req.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d",
		result.ID, req.UserID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
