package update_booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/VH-BookingService/internal/config"
	"github.com/m04kA/VH-BookingService/internal/domain"
	storageBooking "github.com/m04kA/VH-BookingService/internal/infra/storage/booking"
	storageCatalog "github.com/m04kA/VH-BookingService/internal/infra/storage/catalog"
	"github.com/m04kA/VH-BookingService/internal/service/availability"
	bookingModels "github.com/m04kA/VH-BookingService/internal/service/bookings/models"
	"github.com/m04kA/VH-BookingService/internal/service/pricing"
	"github.com/m04kA/VH-BookingService/pkg/ptr"
	"github.com/m04kA/VH-BookingService/pkg/txref"
)

// Фейки зависимостей

type fakeBookingRepo struct {
	existing    *domain.Booking
	getErr      error
	updateErr   error
	updated     *domain.Booking
	slotTaken   bool
	gotExcluded *int64
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.existing == nil || f.existing.ID != id {
		return nil, fmt.Errorf("%w: id=%d", storageBooking.ErrBookingNotFound, id)
	}
	return f.existing, nil
}

func (f *fakeBookingRepo) Update(_ context.Context, booking *domain.Booking) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = booking
	return nil
}

func (f *fakeBookingRepo) ExistsBySlot(_ context.Context, _ time.Time, _ domain.Shift, excludeID *int64) (bool, error) {
	f.gotExcluded = excludeID
	return f.slotTaken, nil
}

type fakeDepositRepo struct {
	created *domain.Deposit
}

func (f *fakeDepositRepo) Create(_ context.Context, deposit *domain.Deposit) (*domain.Deposit, error) {
	deposit.ID = 77
	deposit.CreatedAt = time.Now()
	f.created = deposit
	return deposit, nil
}

type fakeCatalog struct {
	users  map[int64]*domain.User
	venues map[int64]*domain.Venue
	spaces map[int64]*domain.Space
	stages map[int64]*domain.Stage
	decors map[int64]*domain.DecorPackage
	menus  map[int64]*domain.MenuPackage
	items  map[int64]*domain.Furniture
}

func (f *fakeCatalog) GetUser(_ context.Context, id int64) (*domain.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("%w: id=%d", storageCatalog.ErrUserNotFound, id)
}

func (f *fakeCatalog) GetVenue(_ context.Context, id int64) (*domain.Venue, error) {
	if v, ok := f.venues[id]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("%w: id=%d", storageCatalog.ErrVenueNotFound, id)
}

func (f *fakeCatalog) GetSpace(_ context.Context, id int64) (*domain.Space, error) {
	if s, ok := f.spaces[id]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("%w: id=%d", storageCatalog.ErrSpaceNotFound, id)
}

func (f *fakeCatalog) GetStage(_ context.Context, id int64) (*domain.Stage, error) {
	if s, ok := f.stages[id]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("%w: id=%d", storageCatalog.ErrStageNotFound, id)
}

func (f *fakeCatalog) GetDecor(_ context.Context, id int64) (*domain.DecorPackage, error) {
	if d, ok := f.decors[id]; ok {
		return d, nil
	}
	return nil, fmt.Errorf("%w: id=%d", storageCatalog.ErrDecorNotFound, id)
}

func (f *fakeCatalog) GetMenu(_ context.Context, id int64) (*domain.MenuPackage, error) {
	if m, ok := f.menus[id]; ok {
		return m, nil
	}
	return nil, fmt.Errorf("%w: id=%d", storageCatalog.ErrMenuNotFound, id)
}

func (f *fakeCatalog) GetFurniture(_ context.Context, id int64) (*domain.Furniture, error) {
	if i, ok := f.items[id]; ok {
		return i, nil
	}
	return nil, fmt.Errorf("%w: id=%d", storageCatalog.ErrFurnitureNotFound, id)
}

type fakeReader struct {
	lastID int64
}

func (f *fakeReader) GetByID(_ context.Context, id int64) (*bookingModels.EnrichedBookingResponse, error) {
	f.lastID = id
	return &bookingModels.EnrichedBookingResponse{
		BookingResponse: bookingModels.BookingResponse{ID: id},
	}, nil
}

type passthroughTxManager struct {
	calls int
}

func (m *passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Сборка окружения

var testNow = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

type env struct {
	uc          *UseCase
	bookingRepo *fakeBookingRepo
	depositRepo *fakeDepositRepo
	reader      *fakeReader
	txManager   *passthroughTxManager
}

func newEnv() *env {
	catalog := &fakeCatalog{
		users: map[int64]*domain.User{
			1: {ID: 1, Username: "nguyen", Email: "nguyen@example.com", Phone: "+84901234567", Role: "user"},
		},
		venues: map[int64]*domain.Venue{2: {ID: 2, Name: "Grand Hall", Slug: "grand-hall"}},
		spaces: map[int64]*domain.Space{3: {ID: 3, Name: "Main floor"}},
		stages: map[int64]*domain.Stage{4: {ID: 4, Name: "Center stage", Capacity: 10}},
		decors: map[int64]*domain.DecorPackage{5: {ID: 5, Name: "Classic", Price: 100000}},
		menus:  map[int64]*domain.MenuPackage{6: {ID: 6, Name: "Banquet", Price: 150000}},
		items: map[int64]*domain.Furniture{
			10: {ID: 10, Name: "Round table", Price: 16000, Type: domain.FurnitureTable},
			11: {ID: 11, Name: "Banquet chair", Price: 400, Type: domain.FurnitureChair},
		},
	}

	bookingRepo := &fakeBookingRepo{
		existing: &domain.Booking{
			ID:               42,
			UserID:           1,
			VenueID:          2,
			DepositID:        50,
			Name:             "Old event",
			OrganizationDate: testNow.AddDate(0, 0, 20),
			Shift:            domain.ShiftMorning,
		},
	}
	depositRepo := &fakeDepositRepo{}
	reader := &fakeReader{}
	txManager := &passthroughTxManager{}

	pricingCfg := config.PricingConfig{FeeRate: 0.10, DepositShare: 0.30, ChairsPerTable: 10}
	bookingCfg := config.BookingConfig{MinLeadTimeDays: 7, EditFreezeDays: 3}

	calculator := pricing.NewCalculator(catalog, pricingCfg, nopLogger{})
	guard := availability.NewGuard(bookingRepo, bookingCfg, nopLogger{}).
		WithTimeProvider(fixedTime{now: testNow})

	uc := NewUseCase(
		bookingRepo,
		depositRepo,
		catalog,
		calculator,
		guard,
		reader,
		txManager,
		txref.New(),
		nopLogger{},
	)

	return &env{
		uc:          uc,
		bookingRepo: bookingRepo,
		depositRepo: depositRepo,
		reader:      reader,
		txManager:   txManager,
	}
}

func validRequest() *Request {
	return &Request{
		UserID:           1,
		VenueID:          2,
		SpaceID:          3,
		StageID:          4,
		DecorID:          5,
		MenuID:           6,
		Name:             "Rescheduled wedding",
		OrganizationDate: testNow.AddDate(0, 0, 14),
		Shift:            domain.ShiftEvening,
		Tables:           []TableLine{{FurnitureID: 10, Quantity: 5}},
		ChairID:          11,
		Amount:           350000,
	}
}

func TestExecute_Success(t *testing.T) {
	e := newEnv()

	resp, err := e.uc.Execute(context.Background(), 42, validRequest())
	require.NoError(t, err)
	require.NotNil(t, resp)

	// Сама бронь исключается из проверки слота
	require.NotNil(t, e.bookingRepo.gotExcluded)
	assert.Equal(t, int64(42), *e.bookingRepo.gotExcluded)

	// Каждое обновление создает свежий депозит
	require.NotNil(t, e.depositRepo.created)
	assert.Equal(t, float64(115500), e.depositRepo.created.Amount)

	require.NotNil(t, e.bookingRepo.updated)
	updated := e.bookingRepo.updated
	assert.Equal(t, int64(42), updated.ID)
	assert.Equal(t, int64(77), updated.DepositID)
	assert.Equal(t, 0.10, updated.Fee)
	assert.Equal(t, float64(385000), updated.TotalAmount)
	assert.Equal(t, float64(269500), updated.Amount)
	assert.Equal(t, 18, updated.OrganizationDate.Hour())

	assert.Equal(t, 1, e.txManager.calls)
	assert.Equal(t, int64(42), e.reader.lastID)
}

func TestExecute_EditWindowPolicy(t *testing.T) {
	tests := []struct {
		name     string
		daysOut  int
		expected error
	}{
		{"exactly lead time passes", 7, nil},
		{"inside lead time", 6, ErrTooSoonToBook},
		{"exactly freeze window", 3, ErrTooSoonToEdit},
		{"inside freeze window", 1, ErrTooSoonToEdit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv()
			req := validRequest()
			req.OrganizationDate = testNow.AddDate(0, 0, tt.daysOut)

			_, err := e.uc.Execute(context.Background(), 42, req)
			if tt.expected == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.expected)
				assert.Nil(t, e.depositRepo.created)
			}
		})
	}
}

func TestExecute_BookingNotFound(t *testing.T) {
	e := newEnv()
	e.bookingRepo.existing = nil

	_, err := e.uc.Execute(context.Background(), 42, validRequest())
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_DeletedBooking(t *testing.T) {
	e := newEnv()
	e.bookingRepo.existing.Deleted = true
	e.bookingRepo.existing.DeletedAt = ptr.Ptr(testNow)

	_, err := e.uc.Execute(context.Background(), 42, validRequest())
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_SlotTaken(t *testing.T) {
	e := newEnv()
	e.bookingRepo.slotTaken = true

	_, err := e.uc.Execute(context.Background(), 42, validRequest())
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Equal(t, 0, e.txManager.calls)
}

func TestExecute_SlotTakenOnWrite(t *testing.T) {
	e := newEnv()
	e.bookingRepo.updateErr = storageBooking.ErrSlotTaken

	_, err := e.uc.Execute(context.Background(), 42, validRequest())
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecute_AmountMismatch(t *testing.T) {
	e := newEnv()
	req := validRequest()
	req.Amount = 349999

	_, err := e.uc.Execute(context.Background(), 42, req)
	assert.ErrorIs(t, err, ErrAmountMismatch)
}

func TestExecute_InvalidID(t *testing.T) {
	e := newEnv()

	_, err := e.uc.Execute(context.Background(), 0, validRequest())
	assert.ErrorIs(t, err, ErrInvalidInput)
}
