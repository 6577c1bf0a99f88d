package create_booking

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

// UseCase use case для создания бронирования
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

// resolvedRefs связанные сущности, разрешенные перед созданием брони
type resolvedRefs struct {
	user  *domain.User
	venue *domain.Venue
	space *domain.Space
	stage *domain.Stage
	decor *domain.DecorPackage
	menu  *domain.MenuPackage
}

// Execute выполняет use case создания бронирования.
// Депозит и бронь пишутся в одной сериализуемой транзакции: либо
// фиксируются обе записи, либо ни одной.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*bookingModels.EnrichedBookingResponse, error) {
	uc.logger.Info("CreateBooking: user=%d, venue=%d, date=%s, shift=%s",
		req.UserID, req.VenueID, req.OrganizationDate.Format(domain.DateFormat), req.Shift)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Каноническая дата-время слота: дата мероприятия плюс время смены
	organizationDate := req.Shift.MergeWithDate(req.OrganizationDate)

	// 3. Быстрая проверка занятости слота. Гонку с конкурентной вставкой
	// закрывает уникальный индекс на шаге записи.
	if err := uc.guard.CheckSlotFree(ctx, organizationDate, req.Shift, nil); err != nil {
		return nil, uc.mapGuardError(err)
	}

	// 4. Конкурентно разрешаем связанные сущности
	refs, err := uc.resolveRefs(ctx, req)
	if err != nil {
		return nil, err
	}

	// 5. Считаем стоимость аксессуаров
	cost, err := uc.calculator.ComputeAccessories(ctx, req.toSelection())
	if err != nil {
		return nil, uc.mapPricingError(err)
	}

	// 6. Количество столов ограничено вместимостью сцены
	if cost.TotalTables > refs.stage.Capacity {
		uc.logger.Warn("CreateBooking: capacity exceeded, tables=%d, capacity=%d",
			cost.TotalTables, refs.stage.Capacity)
		return nil, fmt.Errorf("%w: %d tables requested, stage capacity is %d",
			ErrCapacityExceeded, cost.TotalTables, refs.stage.Capacity)
	}

	// 7. Сверка с заявленной клиентом суммой. Сервер считает цену сам,
	// клиентская сумма лишь защита от устаревших данных на клиенте.
	baseTotal := refs.decor.Price + refs.menu.Price + cost.AccessoryTotal
	if math.Abs(baseTotal-req.Amount) > amountTolerance {
		uc.logger.Warn("CreateBooking: amount mismatch, declared=%.2f, computed=%.2f",
			req.Amount, baseTotal)
		return nil, fmt.Errorf("%w: declared=%.2f, computed=%.2f", ErrAmountMismatch, req.Amount, baseTotal)
	}

	// 8. Применяем сервисный сбор и делим на депозит и остаток
	split := uc.calculator.SplitFee(baseTotal)

	// 9. Депозит и бронь в одной транзакции
	var created *domain.Booking

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		deposit, err := uc.depositRepo.Create(txCtx, &domain.Deposit{
			TransactionID: uc.refGen.NewRef(),
			Name:          refs.user.Username,
			Phone:         refs.user.Phone,
			Email:         refs.user.Email,
			Amount:        split.DepositAmount,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create deposit: %v", err)
			return fmt.Errorf("%w: create deposit: %v", ErrInternal, err)
		}

		booking := &domain.Booking{
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

		created, err = uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			// Нарушение уникальности слота при вставке - авторитетный
			// конфликт, не внутренняя ошибка
			if errors.Is(err, storageBooking.ErrSlotTaken) {
				uc.logger.Warn("CreateBooking: slot taken on insert, date=%s, shift=%s",
					organizationDate.Format(domain.DateFormat), req.Shift)
				return ErrSlotTaken
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: create booking: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, deposit id=%d",
		created.ID, created.DepositID)

	// 10. Отдаем бронирование со связями
	enriched, err := uc.reader.GetByID(ctx, created.ID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to re-fetch booking id=%d: %v", created.ID, err)
		return nil, fmt.Errorf("%w: fetch created booking: %v", ErrInternal, err)
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
		uc.logger.Warn("CreateBooking: %s id=%d not found", entity, id)
		return fmt.Errorf("%w: id=%d", ucNotFound, id)
	}
	uc.logger.Error("CreateBooking: failed to get %s id=%d: %v", entity, id, err)
	return fmt.Errorf("%w: get %s: %v", ErrInternal, entity, err)
}

// mapGuardError приводит ошибку guard'а к ошибке usecase
func (uc *UseCase) mapGuardError(err error) error {
	if errors.Is(err, availability.ErrSlotTaken) {
		return ErrSlotTaken
	}
	return fmt.Errorf("%w: check slot: %v", ErrInternal, err)
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
