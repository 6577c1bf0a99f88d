package update_booking

import (
	"context"
	"errors"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/VH-BookingService/internal/domain"
	storageBooking "github.com/m04kA/VH-BookingService/internal/infra/storage/booking"
	storageCatalog "github.com/m04kA/VH-BookingService/internal/infra/storage/catalog"
	"github.com/m04kA/VH-BookingService/internal/service/availability"
	bookingModels "github.com/m04kA/VH-BookingService/internal/service/bookings/models"
	"github.com/m04kA/VH-BookingService/internal/service/pricing"
)

// amountTolerance допустимое расхождение при сверке заявленной клиентом
// суммы с расчетной (погрешность представления float)
const amountTolerance = 0.01

// UseCase use case для обновления бронирования
type UseCase struct {
	bookingRepo BookingRepository
	depositRepo DepositRepository
	catalogRepo CatalogRepository
	calculator  PricingCalculator
	guard       AvailabilityGuard
	reader      BookingReader
	txManager   TransactionManager
	refGen      TransactionRefGenerator
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	depositRepo DepositRepository,
	catalogRepo CatalogRepository,
	calculator PricingCalculator,
	guard AvailabilityGuard,
	reader BookingReader,
	txManager TransactionManager,
	refGen TransactionRefGenerator,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		depositRepo: depositRepo,
		catalogRepo: catalogRepo,
		calculator:  calculator,
		guard:       guard,
		reader:      reader,
		txManager:   txManager,
		refGen:      refGen,
		logger:      logger,
	}
}

// resolvedRefs связанные сущности, разрешенные перед обновлением брони
type resolvedRefs struct {
	user  *domain.User
	venue *domain.Venue
	space *domain.Space
	stage *domain.Stage
	decor *domain.DecorPackage
	menu  *domain.MenuPackage
}

// Execute выполняет use case обновления бронирования.
// Политика сроков проверяется по целевой дате из запроса, не по дате
// существующей брони. На каждое обновление создается свежий депозит;
// прежний остается в хранилище как исторический.
func (uc *UseCase) Execute(ctx context.Context, id int64, req *Request) (*bookingModels.EnrichedBookingResponse, error) {
	uc.logger.Info("UpdateBooking: id=%d, user=%d, venue=%d, date=%s, shift=%s",
		id, req.UserID, req.VenueID, req.OrganizationDate.Format(domain.DateFormat), req.Shift)

	// 1. Валидация входных данных
	if err := validateRequest(id, req); err != nil {
		uc.logger.Warn("UpdateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Политика сроков: минимальный срок до мероприятия и окно
	// заморозки правок
	if err := uc.guard.CheckEditWindow(req.OrganizationDate); err != nil {
		return nil, uc.mapGuardError(err)
	}

	// 3. Бронирование должно существовать и не быть удаленным
	existing, err := uc.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storageBooking.ErrBookingNotFound) {
			uc.logger.Warn("UpdateBooking: booking id=%d not found", id)
			return nil, fmt.Errorf("%w: id=%d", ErrBookingNotFound, id)
		}
		uc.logger.Error("UpdateBooking: failed to get booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: get booking: %v", ErrInternal, err)
	}
	if existing.IsDeleted() {
		uc.logger.Warn("UpdateBooking: booking id=%d is deleted", id)
		return nil, fmt.Errorf("%w: id=%d", ErrBookingNotFound, id)
	}

	// 4. Каноническая дата-время слота
	organizationDate := req.Shift.MergeWithDate(req.OrganizationDate)

	// 5. Слот должен быть свободен, сама бронь исключается из проверки
	if err := uc.guard.CheckSlotFree(ctx, organizationDate, req.Shift, &id); err != nil {
		return nil, uc.mapGuardError(err)
	}

	// 6. Конкурентно разрешаем связанные сущности
	refs, err := uc.resolveRefs(ctx, req)
	if err != nil {
		return nil, err
	}

	// 7. Считаем стоимость аксессуаров
	cost, err := uc.calculator.ComputeAccessories(ctx, req.toSelection())
	if err != nil {
		return nil, uc.mapPricingError(err)
	}

	// 8. Количество столов ограничено вместимостью сцены
	if cost.TotalTables > refs.stage.Capacity {
		uc.logger.Warn("UpdateBooking: capacity exceeded, tables=%d, capacity=%d",
			cost.TotalTables, refs.stage.Capacity)
		return nil, fmt.Errorf("%w: %d tables requested, stage capacity is %d",
			ErrCapacityExceeded, cost.TotalTables, refs.stage.Capacity)
	}

	// 9. Сверка с заявленной клиентом суммой
	baseTotal := refs.decor.Price + refs.menu.Price + cost.AccessoryTotal
	if math.Abs(baseTotal-req.Amount) > amountTolerance {
		uc.logger.Warn("UpdateBooking: amount mismatch, declared=%.2f, computed=%.2f",
			req.Amount, baseTotal)
		return nil, fmt.Errorf("%w: declared=%.2f, computed=%.2f", ErrAmountMismatch, req.Amount, baseTotal)
	}

	// 10. Применяем сервисный сбор и делим на депозит и остаток
	split := uc.calculator.SplitFee(baseTotal)

	// 11. Свежий депозит и перезапись брони в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		deposit, err := uc.depositRepo.Create(txCtx, &domain.Deposit{
			TransactionID: uc.refGen.NewRef(),
			Name:          refs.user.Username,
			Phone:         refs.user.Phone,
			Email:         refs.user.Email,
			Amount:        split.DepositAmount,
		})
		if err != nil {
			uc.logger.Error("UpdateBooking: failed to create deposit: %v", err)
			return fmt.Errorf("%w: create deposit: %v", ErrInternal, err)
		}

		booking := &domain.Booking{
			ID:               id,
			UserID:           req.UserID,
			VenueID:          req.VenueID,
			SpaceID:          req.SpaceID,
			StageID:          req.StageID,
			DecorID:          req.DecorID,
			MenuID:           req.MenuID,
			DepositID:        deposit.ID,
			Name:             req.Name,
			OrganizationDate: organizationDate,
			Shift:            req.Shift,
			Accessories:      cost.Breakdown,
			Fee:              split.FeeRate,
			TotalAmount:      split.TotalWithFee,
			Amount:           split.BalanceAmount,
		}

		if err := uc.bookingRepo.Update(txCtx, booking); err != nil {
			switch {
			case errors.Is(err, storageBooking.ErrSlotTaken):
				uc.logger.Warn("UpdateBooking: slot taken on write, date=%s, shift=%s",
					organizationDate.Format(domain.DateFormat), req.Shift)
				return ErrSlotTaken
			case errors.Is(err, storageBooking.ErrBookingNotFound):
				uc.logger.Warn("UpdateBooking: booking id=%d disappeared during update", id)
				return fmt.Errorf("%w: id=%d", ErrBookingNotFound, id)
			default:
				uc.logger.Error("UpdateBooking: failed to update booking id=%d: %v", id, err)
				return fmt.Errorf("%w: update booking: %v", ErrInternal, err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateBooking: successfully updated booking id=%d", id)

	// 12. Отдаем бронирование со связями
	enriched, err := uc.reader.GetByID(ctx, id)
	if err != nil {
		uc.logger.Error("UpdateBooking: failed to re-fetch booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: fetch updated booking: %v", ErrInternal, err)
	}

	return enriched, nil
}

// resolveRefs конкурентно загружает связанные сущности; первая ошибка
// прерывает остальные запросы
func (uc *UseCase) resolveRefs(ctx context.Context, req *Request) (*resolvedRefs, error) {
	refs := &resolvedRefs{}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		user, err := uc.catalogRepo.GetUser(gCtx, req.UserID)
		if err != nil {
			return uc.mapCatalogError(err, storageCatalog.ErrUserNotFound, ErrUserNotFound, "user", req.UserID)
		}
		refs.user = user
		return nil
	})

	g.Go(func() error {
		venue, err := uc.catalogRepo.GetVenue(gCtx, req.VenueID)
		if err != nil {
			return uc.mapCatalogError(err, storageCatalog.ErrVenueNotFound, ErrVenueNotFound, "venue", req.VenueID)
		}
		refs.venue = venue
		return nil
	})

	g.Go(func() error {
		space, err := uc.catalogRepo.GetSpace(gCtx, req.SpaceID)
		if err != nil {
			return uc.mapCatalogError(err, storageCatalog.ErrSpaceNotFound, ErrSpaceNotFound, "space", req.SpaceID)
		}
		refs.space = space
		return nil
	})

	g.Go(func() error {
		stage, err := uc.catalogRepo.GetStage(gCtx, req.StageID)
		if err != nil {
			return uc.mapCatalogError(err, storageCatalog.ErrStageNotFound, ErrStageNotFound, "stage", req.StageID)
		}
		refs.stage = stage
		return nil
	})

	g.Go(func() error {
		decor, err := uc.catalogRepo.GetDecor(gCtx, req.DecorID)
		if err != nil {
			return uc.mapCatalogError(err, storageCatalog.ErrDecorNotFound, ErrDecorNotFound, "decor", req.DecorID)
		}
		refs.decor = decor
		return nil
	})

	g.Go(func() error {
		menu, err := uc.catalogRepo.GetMenu(gCtx, req.MenuID)
		if err != nil {
			return uc.mapCatalogError(err, storageCatalog.ErrMenuNotFound, ErrMenuNotFound, "menu", req.MenuID)
		}
		refs.menu = menu
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return refs, nil
}

// mapCatalogError приводит ошибку справочного репозитория к ошибке usecase
func (uc *UseCase) mapCatalogError(err, storageNotFound, ucNotFound error, entity string, id int64) error {
	if errors.Is(err, storageNotFound) {
		uc.logger.Warn("UpdateBooking: %s id=%d not found", entity, id)
		return fmt.Errorf("%w: id=%d", ucNotFound, id)
	}
	uc.logger.Error("UpdateBooking: failed to get %s id=%d: %v", entity, id, err)
	return fmt.Errorf("%w: get %s: %v", ErrInternal, entity, err)
}

// mapGuardError приводит ошибку guard'а к ошибке usecase
func (uc *UseCase) mapGuardError(err error) error {
	switch {
	case errors.Is(err, availability.ErrSlotTaken):
		return ErrSlotTaken
	case errors.Is(err, availability.ErrTooSoonToBook):
		return ErrTooSoonToBook
	case errors.Is(err, availability.ErrTooSoonToEdit):
		return ErrTooSoonToEdit
	default:
		return fmt.Errorf("%w: availability check: %v", ErrInternal, err)
	}
}

// mapPricingError приводит ошибку калькулятора к ошибке usecase
func (uc *UseCase) mapPricingError(err error) error {
	switch {
	case errors.Is(err, pricing.ErrFurnitureNotFound):
		return fmt.Errorf("%w: %v", ErrFurnitureNotFound, err)
	case errors.Is(err, pricing.ErrInvalidSelection):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		return fmt.Errorf("%w: compute accessories: %v", ErrInternal, err)
	}
}
