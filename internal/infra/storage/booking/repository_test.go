package booking

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/VH-BookingService/internal/domain"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db), mock
}

func sampleBooking() *domain.Booking {
	return &domain.Booking{
		UserID:           1,
		VenueID:          2,
		SpaceID:          3,
		StageID:          4,
		DecorID:          5,
		MenuID:           6,
		DepositID:        7,
		Name:             "Wedding reception",
		OrganizationDate: time.Date(2026, 10, 15, 18, 0, 0, 0, time.UTC),
		Shift:            domain.ShiftEvening,
		Fee:              0.10,
		TotalAmount:      385000,
		Amount:           269500,
	}
}

func TestCreate_Success(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	mock.ExpectQuery("INSERT INTO bookings").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(101), now, now))

	created, err := repo.Create(context.Background(), sampleBooking())
	require.NoError(t, err)
	assert.Equal(t, int64(101), created.ID)
	assert.Equal(t, now, created.CreatedAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_SlotUniqueViolation(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("INSERT INTO bookings").
		WillReturnError(&pq.Error{
			Code:       "23505",
			Constraint: "bookings_slot_unique_idx",
		})

	_, err := repo.Create(context.Background(), sampleBooking())
	assert.ErrorIs(t, err, ErrSlotTaken)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_SlotUniqueViolation(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE bookings").
		WillReturnError(&pq.Error{
			Code:       "23505",
			Constraint: "bookings_slot_unique_idx",
		})

	booking := sampleBooking()
	booking.ID = 42

	err := repo.Update(context.Background(), booking)
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE bookings").
		WillReturnResult(sqlmock.NewResult(0, 0))

	booking := sampleBooking()
	booking.ID = 42

	err := repo.Update(context.Background(), booking)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExistsBySlot(t *testing.T) {
	repo, mock := newMockRepo(t)

	date := time.Date(2026, 10, 15, 18, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT 1 FROM bookings").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	taken, err := repo.ExistsBySlot(context.Background(), date, domain.ShiftEvening, nil)
	require.NoError(t, err)
	assert.True(t, taken)

	mock.ExpectQuery("SELECT 1 FROM bookings").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	taken, err = repo.ExistsBySlot(context.Background(), date, domain.ShiftEvening, nil)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestSoftDelete(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE bookings").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SoftDelete(context.Background(), 42, 9)
	require.NoError(t, err)
}

func TestSoftDelete_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE bookings").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SoftDelete(context.Background(), 42, 9)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetByID_RestoresAccessoryBreakdown(t *testing.T) {
	repo, mock := newMockRepo(t)

	breakdown := domain.AccessoryBreakdown{
		Tables: []domain.AccessoryLine{
			{
				FurnitureID: 301,
				Name:        "Round table",
				UnitPrice:   16000,
				Quantity:    5,
				LineTotal:   80000,
				Images:      []string{"tables/round.jpg"},
				Type:        domain.FurnitureTable,
			},
		},
		Chair: domain.AccessoryLine{
			FurnitureID: 401,
			Name:        "Banquet chair",
			UnitPrice:   400,
			Quantity:    50,
			LineTotal:   20000,
			Images:      []string{},
			Type:        domain.FurnitureChair,
		},
		TotalPrice: 100000,
	}
	accessories, err := json.Marshal(breakdown)
	require.NoError(t, err)

	now := time.Now()
	orgDate := time.Date(2026, 10, 15, 18, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT .+ FROM bookings").
		WillReturnRows(sqlmock.NewRows(bookingColumns).
			AddRow(
				int64(42), int64(1), int64(2), int64(3), int64(4), int64(5), int64(6), int64(7),
				"Wedding reception", orgDate, string(domain.ShiftEvening), accessories,
				0.10, float64(385000), float64(269500),
				false, nil, nil, now, now,
			))

	booking, err := repo.GetByID(context.Background(), 42)
	require.NoError(t, err)

	// Разбивка аксессуаров должна возвращаться из хранилища строка в строку
	assert.Equal(t, breakdown, booking.Accessories)
	assert.Equal(t, 5, booking.Accessories.TotalTables())
	assert.Equal(t, float64(100000), booking.Accessories.TotalPrice)
	assert.Equal(t, 0.10, booking.Fee)
	assert.Equal(t, domain.ShiftEvening, booking.Shift)
	assert.Nil(t, booking.DeletedAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT .+ FROM bookings").
		WillReturnRows(sqlmock.NewRows(bookingColumns))

	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
