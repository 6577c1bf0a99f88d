package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/VH-BookingService/internal/config"
	"github.com/m04kA/VH-BookingService/internal/domain"
)

// Guard следит за инвариантом "не больше одного бронирования на слот
// (дата, смена)" и за политикой сроков бронирования и редактирования.
type Guard struct {
	bookingRepo  BookingRepository
	leadTimeDays int
	editFreeze   int
	timeProvider TimeProvider
	logger       Logger
}

// NewGuard создает новый guard доступности
func NewGuard(bookingRepo BookingRepository, cfg config.BookingConfig, logger Logger) *Guard {
	return &Guard{
		bookingRepo:  bookingRepo,
		leadTimeDays: cfg.MinLeadTimeDays,
		editFreeze:   cfg.EditFreezeDays,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет провайдер времени (для тестов)
func (g *Guard) WithTimeProvider(tp TimeProvider) *Guard {
	g.timeProvider = tp
	return g
}

// CheckSlotFree проверяет, что слот (дата, смена) свободен среди
// неудаленных бронирований. excludeID исключает обновляемое бронирование.
//
// Проверка не атомарна со вставкой: конкурентный запрос на тот же слот
// может пройти её до фиксации первой брони. Источник истины - уникальный
// индекс в хранилище, эта проверка лишь дает быстрый дружелюбный отказ.
func (g *Guard) CheckSlotFree(ctx context.Context, organizationDate time.Time, shift domain.Shift, excludeID *int64) error {
	taken, err := g.bookingRepo.ExistsBySlot(ctx, organizationDate, shift, excludeID)
	if err != nil {
		g.logger.Error("CheckSlotFree: repository error for date=%s shift=%s: %v",
			organizationDate.Format(domain.DateFormat), shift, err)
		return fmt.Errorf("%w: check slot: %v", ErrInternal, err)
	}

	if taken {
		g.logger.Warn("CheckSlotFree: slot taken, date=%s shift=%s",
			organizationDate.Format(domain.DateFormat), shift)
		return ErrSlotTaken
	}

	return nil
}

// CheckEditWindow проверяет политику сроков для пути обновления.
// Обе проверки идут от целевой даты мероприятия из запроса, не от
// исходной даты бронирования:
//   - целевая дата должна отстоять от "сегодня" минимум на leadTimeDays
//     (ровно leadTimeDays дней - проходит);
//   - в пределах editFreeze дней до мероприятия правки запрещены
//     (ровно editFreeze дней - уже запрещено).
func (g *Guard) CheckEditWindow(targetDate time.Time) error {
	now := domain.TruncateToDay(g.timeProvider.Now())
	target := domain.TruncateToDay(targetDate)

	// Окно заморозки включительное: ровно editFreeze дней до мероприятия
	// правка уже запрещена
	freezeDate := now.AddDate(0, 0, g.editFreeze)
	if !target.After(freezeDate) {
		g.logger.Warn("CheckEditWindow: inside edit freeze, target=%s now=%s",
			target.Format(domain.DateFormat), now.Format(domain.DateFormat))
		return ErrTooSoonToEdit
	}

	// Минимальный срок: ровно leadTimeDays дней - проходит
	minBookDate := now.AddDate(0, 0, g.leadTimeDays)
	if target.Before(minBookDate) {
		g.logger.Warn("CheckEditWindow: lead time violated, target=%s now=%s",
			target.Format(domain.DateFormat), now.Format(domain.DateFormat))
		return ErrTooSoonToBook
	}

	return nil
}

// Now текущее время guard'а; календарь занятости использует ту же базу
func (g *Guard) Now() time.Time {
	return g.timeProvider.Now()
}
