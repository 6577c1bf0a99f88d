package update_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/VH-BookingService/internal/api/handlers"
	updateBooking "github.com/m04kA/VH-BookingService/internal/usecase/update_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBookingID   = "некорректный идентификатор бронирования"
	msgInvalidDateOrShift = "некорректная дата мероприятия или смена, ожидается YYYY-MM-DD и morning|evening"
	msgBookingNotFound    = "бронирование не найдено"
	msgSlotTaken          = "выбранные дата и смена уже заняты"
	msgTooSoonToBook      = "дата мероприятия ближе минимального срока бронирования"
	msgTooSoonToEdit      = "до мероприятия осталось слишком мало времени, правки запрещены"
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
	useCase UpdateBookingUseCase
	logger  Logger
}

func NewHandler(useCase UpdateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil || bookingID <= 0 {
		h.logger.Warn("PUT /bookings/{id} - Invalid booking id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req UpdateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/%d - Invalid request body: %v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("PUT /bookings/%d - Failed to parse request: %v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidDateOrShift)
		return
	}

	result, err := h.useCase.Execute(r.Context(), bookingID, useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateBooking.ErrBookingNotFound):
			h.logger.Warn("PUT /bookings/%d - Booking not found", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, updateBooking.ErrSlotTaken):
			h.logger.Warn("PUT /bookings/%d - Slot taken: date=%s, shift=%s",
				bookingID, req.OrganizationDate, req.Shift)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		case errors.Is(err, updateBooking.ErrTooSoonToBook):
			h.logger.Warn("PUT /bookings/%d - Too soon to book: date=%s", bookingID, req.OrganizationDate)
			handlers.RespondBadRequest(w, msgTooSoonToBook)

		case errors.Is(err, updateBooking.ErrTooSoonToEdit):
			h.logger.Warn("PUT /bookings/%d - Too soon to edit: date=%s", bookingID, req.OrganizationDate)
			handlers.RespondBadRequest(w, msgTooSoonToEdit)

		case errors.Is(err, updateBooking.ErrUserNotFound):
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, updateBooking.ErrVenueNotFound):
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, updateBooking.ErrSpaceNotFound):
			handlers.RespondNotFound(w, msgSpaceNotFound)

		case errors.Is(err, updateBooking.ErrStageNotFound):
			handlers.RespondNotFound(w, msgStageNotFound)

		case errors.Is(err, updateBooking.ErrDecorNotFound):
			handlers.RespondNotFound(w, msgDecorNotFound)

		case errors.Is(err, updateBooking.ErrMenuNotFound):
			handlers.RespondNotFound(w, msgMenuNotFound)

		case errors.Is(err, updateBooking.ErrFurnitureNotFound):
			handlers.RespondNotFound(w, msgFurnitureNotFound)

		case errors.Is(err, updateBooking.ErrCapacityExceeded):
			h.logger.Warn("PUT /bookings/%d - Capacity exceeded", bookingID)
			handlers.RespondBadRequest(w, msgCapacityExceeded)

		case errors.Is(err, updateBooking.ErrAmountMismatch):
			h.logger.Warn("PUT /bookings/%d - Amount mismatch: declared=%.2f", bookingID, req.Amount)
			handlers.RespondBadRequest(w, msgAmountMismatch)

		case errors.Is(err, updateBooking.ErrInvalidInput):
			h.logger.Warn("PUT /bookings/%d - Invalid input: %v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /bookings/%d - Failed to update booking: %v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /bookings/%d - Booking updated successfully", bookingID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
