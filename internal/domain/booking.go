package domain

import "time"

// Booking бронирование зала на дату и смену.
// Денормализованная разбивка аксессуаров хранится вместе с бронированием,
// чтобы историческая стоимость не менялась при смене цен каталога.
type Booking struct {
	ID        int64
	UserID    int64
	VenueID   int64
	SpaceID   int64
	StageID   int64
	DecorID   int64
	MenuID    int64
	DepositID int64

	// Name название мероприятия
	Name string

	// OrganizationDate дата мероприятия с каноническим временем смены
	OrganizationDate time.Time
	Shift            Shift

	Accessories AccessoryBreakdown

	// Fee ставка сервисного сбора на момент бронирования (0.10 = 10%)
	Fee float64
	// TotalAmount полная стоимость с учетом сбора
	TotalAmount float64
	// Amount остаток к оплате после депозита
	Amount float64

	// Soft delete
	Deleted   bool
	DeletedAt *time.Time
	DeletedBy *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsDeleted возвращает true для мягко удаленного бронирования
func (b *Booking) IsDeleted() bool {
	return b.Deleted
}

// OccupiesSlot возвращает true, если бронирование занимает слот (дата, смена)
func (b *Booking) OccupiesSlot(date time.Time, shift Shift) bool {
	return !b.Deleted && b.Shift == shift && IsSameCalendarDay(b.OrganizationDate, date)
}

// PriceSort направление сортировки по цене
type PriceSort string

const (
	PriceSortAsc  PriceSort = "asc"
	PriceSortDesc PriceSort = "desc"
)

// BookingsFilter фильтр списка бронирований
type BookingsFilter struct {
	// Deleted выбирает между обычным списком и архивом удаленных
	Deleted bool

	Page         int
	ItemsPerPage int

	// Search поиск по названию мероприятия, зала или меню (без учета регистра)
	Search string

	MinPrice *float64
	MaxPrice *float64

	// PriceSort опциональная сортировка по остатку к оплате
	PriceSort *PriceSort

	// StartDate / EndDate период по дате создания брони
	StartDate *time.Time
	EndDate   *time.Time
}

// Normalize подставляет значения пагинации по умолчанию
func (f *BookingsFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.ItemsPerPage < 1 {
		f.ItemsPerPage = DefaultItemsPerPage
	}
}

// Offset возвращает смещение для пагинации
func (f *BookingsFilter) Offset() int {
	return (f.Page - 1) * f.ItemsPerPage
}

// Pagination сводка пагинации для списочных ответов
type Pagination struct {
	CurrentPage  int
	ItemsPerPage int
	Total        int
	LastPage     int
	NextPage     *int
	PrevPage     *int
}

// NewPagination вычисляет сводку пагинации
func NewPagination(page, itemsPerPage, total int) Pagination {
	lastPage := 0
	if itemsPerPage > 0 {
		lastPage = (total + itemsPerPage - 1) / itemsPerPage
	}

	p := Pagination{
		CurrentPage:  page,
		ItemsPerPage: itemsPerPage,
		Total:        total,
		LastPage:     lastPage,
	}

	if page+1 <= lastPage {
		next := page + 1
		p.NextPage = &next
	}
	if page-1 >= 1 {
		prev := page - 1
		p.PrevPage = &prev
	}

	return p
}
