package get_schedule

import (
	"context"
	"fmt"

	"github.com/m04kA/VH-BookingService/internal/config"
	"github.com/m04kA/VH-BookingService/internal/domain"
)

// UseCase use case для построения календаря занятости.
// Окно фиксированное: от "сегодня + start" до "сегодня + end"
// включительно, обе смены на каждый день, утро раньше вечера.
type UseCase struct {
	bookingRepo  BookingRepository
	windowStart  int
	windowEnd    int
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, cfg config.BookingConfig, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		windowStart:  cfg.ScheduleWindowStartDays,
		windowEnd:    cfg.ScheduleWindowEndDays,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет провайдер времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute строит календарь занятости одним запросом к хранилищу:
// все неудаленные брони окна читаются разом, сопоставление слотов идет
// в памяти по календарной дате и смене.
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	today := domain.TruncateToDay(uc.timeProvider.Now())

	from := today.AddDate(0, 0, uc.windowStart)
	// Конец диапазона покрывает вечернюю смену последнего дня
	to := today.AddDate(0, 0, uc.windowEnd+1)

	bookings, err := uc.bookingRepo.ListByOrganizationDateRange(ctx, from, to)
	if err != nil {
		uc.logger.Error("GetSchedule: failed to list bookings: %v", err)
		return nil, fmt.Errorf("%w: list bookings: %v", ErrInternal, err)
	}

	days := uc.windowEnd - uc.windowStart + 1
	slots := make([]SlotEntry, 0, days*len(domain.AllShifts))

	occupied := 0
	for offset := 0; offset < days; offset++ {
		date := from.AddDate(0, 0, offset)

		for _, shift := range domain.AllShifts {
			slot := domain.ScheduleSlot{
				Date:  date,
				Shift: shift,
			}

			for _, booking := range bookings {
				if booking.OccupiesSlot(date, shift) {
					slot.Occupied = true
					slot.BookingID = &booking.ID
					slot.BookingName = &booking.Name
					occupied++
					break
				}
			}

			slots = append(slots, fromDomainSlot(slot))
		}
	}

	uc.logger.Info("GetSchedule: window %s..%s, %d slots, %d occupied",
		from.Format(domain.DateFormat), from.AddDate(0, 0, days-1).Format(domain.DateFormat),
		len(slots), occupied)

	return &Response{Slots: slots}, nil
}
