package create_booking

import (
	"context"
	"fmt"
	"regexp"
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
	"github.com/m04kA/VH-BookingService/pkg/txref"
)

// Фейки зависимостей

type fakeBookingRepo struct {
	createErr   error
	created     *domain.Booking
	slotTaken   bool
	gotExcluded *int64
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	booking.ID = 101
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt
	f.created = booking
	return booking, nil
}

func (f *fakeBookingRepo) ExistsBySlot(_ context.Context, _ time.Time, _ domain.Shift, excludeID *int64) (bool, error) {
	f.gotExcluded = excludeID
	return f.slotTaken, nil
}

type fakeDepositRepo struct {
	created *domain.Deposit
}

func (f *fakeDepositRepo) Create(_ context.Context, deposit *domain.Deposit) (*domain.Deposit, error) {
	deposit.ID = 55
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

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Сборка окружения

type env struct {
	uc          *UseCase
	bookingRepo *fakeBookingRepo
	depositRepo *fakeDepositRepo
	catalog     *fakeCatalog
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

	bookingRepo := &fakeBookingRepo{}
	depositRepo := &fakeDepositRepo{}
	reader := &fakeReader{}
	txManager := &passthroughTxManager{}

	pricingCfg := config.PricingConfig{FeeRate: 0.10, DepositShare: 0.30, ChairsPerTable: 10}
	bookingCfg := config.BookingConfig{MinLeadTimeDays: 7, EditFreezeDays: 3}

	calculator := pricing.NewCalculator(catalog, pricingCfg, nopLogger{})
	guard := availability.NewGuard(bookingRepo, bookingCfg, nopLogger{})

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
		catalog:     catalog,
		reader:      reader,
		txManager:   txManager,
	}
}

// 5 столов по 16000 + 50 стульев по 400 = 100000 аксессуары,
// плюс декор 100000 и меню 150000 = базовая стоимость 350000
func validRequest() *Request {
	return &Request{
		UserID:           1,
		VenueID:          2,
		SpaceID:          3,
		StageID:          4,
		DecorID:          5,
		MenuID:           6,
		Name:             "Wedding reception",
		OrganizationDate: time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
		Shift:            domain.ShiftEvening,
		Tables:           []TableLine{{FurnitureID: 10, Quantity: 5}},
		ChairID:          11,
		Amount:           350000,
	}
}

func TestExecute_Success(t *testing.T) {
	e := newEnv()

	resp, err := e.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	require.NotNil(t, resp)

	// Депозит и бронь создаются в одной транзакции
	assert.Equal(t, 1, e.txManager.calls)

	require.NotNil(t, e.depositRepo.created)
	deposit := e.depositRepo.created
	assert.Equal(t, "nguyen", deposit.Name)
	assert.Equal(t, "+84901234567", deposit.Phone)
	assert.Equal(t, "nguyen@example.com", deposit.Email)
	// 350000 * 1.1 * 0.3 = 115500
	assert.Equal(t, float64(115500), deposit.Amount)
	assert.Regexp(t, regexp.MustCompile(`^[0-9A-F]{32}$`), deposit.TransactionID)

	require.NotNil(t, e.bookingRepo.created)
	booking := e.bookingRepo.created
	assert.Equal(t, int64(55), booking.DepositID)
	assert.Equal(t, 0.10, booking.Fee)
	assert.Equal(t, float64(385000), booking.TotalAmount)
	assert.Equal(t, float64(269500), booking.Amount)
	assert.Equal(t, domain.ShiftEvening, booking.Shift)
	// Дата мероприятия несет каноническое время вечерней смены
	assert.Equal(t, 18, booking.OrganizationDate.Hour())
	assert.Equal(t, float64(100000), booking.Accessories.TotalPrice)

	// Ответ пришел через повторное чтение со связями
	assert.Equal(t, int64(101), e.reader.lastID)
	assert.Equal(t, int64(101), resp.ID)
}

func TestExecute_SlotTakenOnPrecheck(t *testing.T) {
	e := newEnv()
	e.bookingRepo.slotTaken = true

	_, err := e.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Equal(t, 0, e.txManager.calls)
}

func TestExecute_SlotTakenOnInsert(t *testing.T) {
	e := newEnv()
	e.bookingRepo.createErr = storageBooking.ErrSlotTaken

	_, err := e.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecute_CapacityExceeded(t *testing.T) {
	e := newEnv()

	req := validRequest()
	req.Tables = []TableLine{{FurnitureID: 10, Quantity: 11}} // вместимость сцены 10
	req.Amount = 100000 + 150000 + 11*16000 + 110*400

	_, err := e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Nil(t, e.depositRepo.created)
}

func TestExecute_AmountMismatch(t *testing.T) {
	e := newEnv()

	req := validRequest()
	req.Amount = 349999

	_, err := e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAmountMismatch)
	assert.Nil(t, e.depositRepo.created)
}

func TestExecute_MissingReferences(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(req *Request)
		expected error
	}{
		{"user", func(r *Request) { r.UserID = 99 }, ErrUserNotFound},
		{"venue", func(r *Request) { r.VenueID = 99 }, ErrVenueNotFound},
		{"space", func(r *Request) { r.SpaceID = 99 }, ErrSpaceNotFound},
		{"stage", func(r *Request) { r.StageID = 99 }, ErrStageNotFound},
		{"decor", func(r *Request) { r.DecorID = 99 }, ErrDecorNotFound},
		{"menu", func(r *Request) { r.MenuID = 99 }, ErrMenuNotFound},
		{"furniture", func(r *Request) { r.ChairID = 99 }, ErrFurnitureNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv()
			req := validRequest()
			tt.mutate(req)

			_, err := e.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.expected)
			assert.Nil(t, e.depositRepo.created)
		})
	}
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{"missing user", func(r *Request) { r.UserID = 0 }},
		{"missing name", func(r *Request) { r.Name = "  " }},
		{"missing date", func(r *Request) { r.OrganizationDate = time.Time{} }},
		{"bad shift", func(r *Request) { r.Shift = "afternoon" }},
		{"missing chair", func(r *Request) { r.ChairID = 0 }},
		{"zero quantity", func(r *Request) { r.Tables = []TableLine{{FurnitureID: 10, Quantity: 0}} }},
		{"negative amount", func(r *Request) { r.Amount = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv()
			req := validRequest()
			tt.mutate(req)

			_, err := e.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
