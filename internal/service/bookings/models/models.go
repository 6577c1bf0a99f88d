package models

import (
	"time"

	"github.com/m04kA/VH-BookingService/internal/domain"
)

// Request модели

// ListBookingsRequest запрос списка бронирований с фильтрацией
type ListBookingsRequest struct {
	Page         int
	ItemsPerPage int
	Search       string
	MinPrice     *float64
	MaxPrice     *float64
	PriceSort    *string
	StartDate    *time.Time
	EndDate      *time.Time
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter(deleted bool) (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		Deleted:      deleted,
		Page:         r.Page,
		ItemsPerPage: r.ItemsPerPage,
		Search:       r.Search,
		MinPrice:     r.MinPrice,
		MaxPrice:     r.MaxPrice,
		StartDate:    r.StartDate,
	}

	// endDate приходит без времени (полночь), фильтр должен включать
	// бронирования, созданные в течение всего последнего дня
	if r.EndDate != nil {
		endOfDay := domain.EndOfDay(*r.EndDate)
		filter.EndDate = &endOfDay
	}

	if r.PriceSort != nil {
		sort := domain.PriceSort(*r.PriceSort)
		if sort != domain.PriceSortAsc && sort != domain.PriceSortDesc {
			return filter, ErrInvalidPriceSort
		}
		filter.PriceSort = &sort
	}

	filter.Normalize()
	return filter, nil
}

// Response модели

// UserSummary проекция пользователя без чувствительных полей
type UserSummary struct {
	ID           int64   `json:"id"`
	Username     string  `json:"username"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	Avatar       *string `json:"avatar,omitempty"`
	MembershipID *int64  `json:"membershipsId,omitempty"`
	Role         string  `json:"role"`
}

// VenueDetailResponse детали зала
type VenueDetailResponse struct {
	ID          int64  `json:"id"`
	Address     string `json:"address"`
	Description string `json:"description"`
	MaxGuests   int    `json:"maxGuests"`
}

// VenueResponse зал с деталями
type VenueResponse struct {
	ID     int64                `json:"id"`
	Name   string               `json:"name"`
	Slug   string               `json:"slug"`
	Detail *VenueDetailResponse `json:"detail,omitempty"`
}

// SpaceResponse пространство зала
type SpaceResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// StageResponse сцена с вместимостью
type StageResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

// PackageResponse пакет декора или меню
type PackageResponse struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// DepositResponse депозит бронирования
type DepositResponse struct {
	ID            int64   `json:"id"`
	TransactionID string  `json:"transactionId"`
	Name          string  `json:"name"`
	Phone         string  `json:"phone"`
	Email         string  `json:"email"`
	Amount        float64 `json:"amount"`
	CreatedAt     string  `json:"createdAt"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID        int64 `json:"id"`
	UserID    int64 `json:"userId"`
	VenueID   int64 `json:"venueId"`
	SpaceID   int64 `json:"spaceId"`
	StageID   int64 `json:"stageId"`
	DecorID   int64 `json:"decorId"`
	MenuID    int64 `json:"menuId"`
	DepositID int64 `json:"depositId"`

	Name             string `json:"name"`
	OrganizationDate string `json:"organizationDate"` // "2025-10-15"
	ShiftTime        string `json:"shiftTime"`        // "08:00"
	Shift            string `json:"shift"`

	Accessories domain.AccessoryBreakdown `json:"accessories"`

	Fee         float64 `json:"fee"`
	TotalAmount float64 `json:"totalAmount"`
	Amount      float64 `json:"amount"`

	Deleted   bool    `json:"deleted"`
	DeletedAt *string `json:"deletedAt,omitempty"` // ISO 8601
	DeletedBy *int64  `json:"deletedBy,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EnrichedBookingResponse бронирование вместе со связанными сущностями
type EnrichedBookingResponse struct {
	BookingResponse

	User    *UserSummary     `json:"user,omitempty"`
	Venue   *VenueResponse   `json:"venue,omitempty"`
	Space   *SpaceResponse   `json:"space,omitempty"`
	Stage   *StageResponse   `json:"stage,omitempty"`
	Decor   *PackageResponse `json:"decor,omitempty"`
	Menu    *PackageResponse `json:"menu,omitempty"`
	Deposit *DepositResponse `json:"deposit,omitempty"`
}

// PaginationResponse сводка пагинации
type PaginationResponse struct {
	CurrentPage  int  `json:"currentPage"`
	ItemsPerPage int  `json:"itemsPerPage"`
	Total        int  `json:"total"`
	LastPage     int  `json:"lastPage"`
	NextPage     *int `json:"nextPage"`
	PrevPage     *int `json:"prevPage"`
}

// BookingListResponse страница бронирований
type BookingListResponse struct {
	Bookings   []BookingResponse  `json:"bookings"`
	Pagination PaginationResponse `json:"pagination"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:               b.ID,
		UserID:           b.UserID,
		VenueID:          b.VenueID,
		SpaceID:          b.SpaceID,
		StageID:          b.StageID,
		DecorID:          b.DecorID,
		MenuID:           b.MenuID,
		DepositID:        b.DepositID,
		Name:             b.Name,
		OrganizationDate: b.OrganizationDate.Format(domain.DateFormat),
		ShiftTime:        b.Shift.StartTime().String(),
		Shift:            string(b.Shift),
		Accessories:      b.Accessories,
		Fee:              b.Fee,
		TotalAmount:      b.TotalAmount,
		Amount:           b.Amount,
		Deleted:          b.Deleted,
		DeletedBy:        b.DeletedBy,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}

	if b.DeletedAt != nil {
		deletedStr := b.DeletedAt.Format(time.RFC3339)
		resp.DeletedAt = &deletedStr
	}

	return resp
}

// FromDomainUser строит проекцию пользователя
func FromDomainUser(u *domain.User) *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		Phone:        u.Phone,
		Avatar:       u.Avatar,
		MembershipID: u.MembershipID,
		Role:         u.Role,
	}
}

// FromDomainVenue конвертирует зал с деталями
func FromDomainVenue(v *domain.Venue) *VenueResponse {
	if v == nil {
		return nil
	}
	resp := &VenueResponse{
		ID:   v.ID,
		Name: v.Name,
		Slug: v.Slug,
	}
	if v.Detail != nil {
		resp.Detail = &VenueDetailResponse{
			ID:          v.Detail.ID,
			Address:     v.Detail.Address,
			Description: v.Detail.Description,
			MaxGuests:   v.Detail.MaxGuests,
		}
	}
	return resp
}

// FromDomainDeposit конвертирует депозит
func FromDomainDeposit(d *domain.Deposit) *DepositResponse {
	if d == nil {
		return nil
	}
	return &DepositResponse{
		ID:            d.ID,
		TransactionID: d.TransactionID,
		Name:          d.Name,
		Phone:         d.Phone,
		Email:         d.Email,
		Amount:        d.Amount,
		CreatedAt:     d.CreatedAt.Format(time.RFC3339),
	}
}

// FromDomainBookingList конвертирует страницу бронирований
func FromDomainBookingList(bookings []*domain.Booking, pagination domain.Pagination) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
		Pagination: PaginationResponse{
			CurrentPage:  pagination.CurrentPage,
			ItemsPerPage: pagination.ItemsPerPage,
			Total:        pagination.Total,
			LastPage:     pagination.LastPage,
			NextPage:     pagination.NextPage,
			PrevPage:     pagination.PrevPage,
		},
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
