package bookings

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/VH-BookingService/internal/domain"
	storageBooking "github.com/m04kA/VH-BookingService/internal/infra/storage/booking"
	storageCatalog "github.com/m04kA/VH-BookingService/internal/infra/storage/catalog"
	storageDeposit "github.com/m04kA/VH-BookingService/internal/infra/storage/deposit"
	"github.com/m04kA/VH-BookingService/internal/service/bookings/models"
)

// Service сервис чтения и удаления бронирований
type Service struct {
	bookingRepo BookingRepository
	catalogRepo CatalogRepository
	depositRepo DepositRepository
	logger      Logger
}

func NewService(bookingRepo BookingRepository, catalogRepo CatalogRepository, depositRepo DepositRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		catalogRepo: catalogRepo,
		depositRepo: depositRepo,
		logger:      logger,
	}
}

// GetByID возвращает бронирование вместе со связанными сущностями
func (s *Service) GetByID(ctx context.Context, id int64) (*models.EnrichedBookingResponse, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storageBooking.ErrBookingNotFound) {
			s.logger.Warn("GetByID - booking not found: id=%d", id)
			return nil, fmt.Errorf("%w: GetByID - booking id=%d", ErrBookingNotFound, id)
		}
		s.logger.Error("GetByID - failed to get booking: id=%d, error=%v", id, err)
		return nil, fmt.Errorf("%w: GetByID - get booking: %v", ErrInternal, err)
	}

	return s.enrich(ctx, booking)
}

// List возвращает страницу активных бронирований
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	return s.list(ctx, req, false)
}

// ListDeleted возвращает страницу мягко удалённых бронирований
func (s *Service) ListDeleted(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	return s.list(ctx, req, true)
}

// SoftDelete помечает бронирование удалённым, сохраняя запись и депозит
func (s *Service) SoftDelete(ctx context.Context, id int64, deletedBy int64) error {
	err := s.bookingRepo.SoftDelete(ctx, id, deletedBy)
	if err != nil {
		if errors.Is(err, storageBooking.ErrBookingNotFound) {
			s.logger.Warn("SoftDelete - booking not found: id=%d", id)
			return fmt.Errorf("%w: SoftDelete - booking id=%d", ErrBookingNotFound, id)
		}
		s.logger.Error("SoftDelete - failed to delete booking: id=%d, error=%v", id, err)
		return fmt.Errorf("%w: SoftDelete - delete booking: %v", ErrInternal, err)
	}

	s.logger.Info("SoftDelete - booking marked as deleted: id=%d, deletedBy=%d", id, deletedBy)
	return nil
}

func (s *Service) list(ctx context.Context, req *models.ListBookingsRequest, deleted bool) (*models.BookingListResponse, error) {
	filter, err := req.ToDomainFilter(deleted)
	if err != nil {
		s.logger.Warn("List - invalid filter: %v", err)
		return nil, fmt.Errorf("%w: List - build filter: %v", ErrInvalidInput, err)
	}

	bookings, total, err := s.bookingRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List - failed to list bookings: %v", err)
		return nil, fmt.Errorf("%w: List - list bookings: %v", ErrInternal, err)
	}

	pagination := domain.NewPagination(filter.Page, filter.ItemsPerPage, total)
	return models.FromDomainBookingList(bookings, pagination), nil
}

// enrich собирает связанные сущности параллельно. Отсутствующая связь
// не считается ошибкой чтения: бронирование отдаётся без неё.
func (s *Service) enrich(ctx context.Context, booking *domain.Booking) (*models.EnrichedBookingResponse, error) {
	resp := &models.EnrichedBookingResponse{
		BookingResponse: *models.FromDomainBooking(booking),
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		user, err := s.catalogRepo.GetUser(gCtx, booking.UserID)
		if err != nil {
			return s.tolerateNotFound(err, storageCatalog.ErrUserNotFound, "user", booking.UserID)
		}
		resp.User = models.FromDomainUser(user)
		return nil
	})

	g.Go(func() error {
		venue, err := s.catalogRepo.GetVenue(gCtx, booking.VenueID)
		if err != nil {
			return s.tolerateNotFound(err, storageCatalog.ErrVenueNotFound, "venue", booking.VenueID)
		}
		resp.Venue = models.FromDomainVenue(venue)
		return nil
	})

	g.Go(func() error {
		space, err := s.catalogRepo.GetSpace(gCtx, booking.SpaceID)
		if err != nil {
			return s.tolerateNotFound(err, storageCatalog.ErrSpaceNotFound, "space", booking.SpaceID)
		}
		resp.Space = &models.SpaceResponse{ID: space.ID, Name: space.Name}
		return nil
	})

	g.Go(func() error {
		stage, err := s.catalogRepo.GetStage(gCtx, booking.StageID)
		if err != nil {
			return s.tolerateNotFound(err, storageCatalog.ErrStageNotFound, "stage", booking.StageID)
		}
		resp.Stage = &models.StageResponse{ID: stage.ID, Name: stage.Name, Capacity: stage.Capacity}
		return nil
	})

	g.Go(func() error {
		decor, err := s.catalogRepo.GetDecor(gCtx, booking.DecorID)
		if err != nil {
			return s.tolerateNotFound(err, storageCatalog.ErrDecorNotFound, "decor", booking.DecorID)
		}
		resp.Decor = &models.PackageResponse{ID: decor.ID, Name: decor.Name, Price: decor.Price}
		return nil
	})

	g.Go(func() error {
		menu, err := s.catalogRepo.GetMenu(gCtx, booking.MenuID)
		if err != nil {
			return s.tolerateNotFound(err, storageCatalog.ErrMenuNotFound, "menu", booking.MenuID)
		}
		resp.Menu = &models.PackageResponse{ID: menu.ID, Name: menu.Name, Price: menu.Price}
		return nil
	})

	g.Go(func() error {
		deposit, err := s.depositRepo.GetByID(gCtx, booking.DepositID)
		if err != nil {
			return s.tolerateNotFound(err, storageDeposit.ErrDepositNotFound, "deposit", booking.DepositID)
		}
		resp.Deposit = models.FromDomainDeposit(deposit)
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("enrich - failed to load relations: bookingID=%d, error=%v", booking.ID, err)
		return nil, fmt.Errorf("%w: enrich - load relations: %v", ErrInternal, err)
	}

	return resp, nil
}

func (s *Service) tolerateNotFound(err error, notFound error, entity string, id int64) error {
	if errors.Is(err, notFound) {
		s.logger.Warn("enrich - %s not found: id=%d", entity, id)
		return nil
	}
	return fmt.Errorf("get %s id=%d: %w", entity, id, err)
}
