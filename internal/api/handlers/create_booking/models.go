package create_booking

import (
	"time"

	"github.com/m04kA/VH-BookingService/internal/domain"
	createBooking "github.com/m04kA/VH-BookingService/internal/usecase/create_booking"
)

// TableLineRequest строка выбора столов
type TableLineRequest struct {
	ID       int64 `json:"id"`
	Quantity int   `json:"quantity"`
}

// ChairRequest выбор позиции стульев
type ChairRequest struct {
	ID int64 `json:"id"`
}

// AccessoriesRequest выбор аксессуаров
type AccessoriesRequest struct {
	Tables []TableLineRequest `json:"tables"`
	Chair  ChairRequest       `json:"chair"`
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	UserID  int64 `json:"userId"`
	VenueID int64 `json:"venueId"`
	SpaceID int64 `json:"spaceId"`
	StageID int64 `json:"stageId"`
	DecorID int64 `json:"decorId"`
	MenuID  int64 `json:"menuId"`

	Name             string `json:"name"`
	OrganizationDate string `json:"organizationDate"` // "2025-10-15"
	Shift            string `json:"shift"`            // "morning" | "evening"

	Accessories AccessoriesRequest `json:"accessories"`

	Amount float64 `json:"amount"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	organizationDate, err := time.Parse(domain.DateFormat, r.OrganizationDate)
	if err != nil {
		return nil, err
	}

	shift, err := domain.ParseShift(r.Shift)
	if err != nil {
		return nil, err
	}

	req := &createBooking.Request{
		UserID:           r.UserID,
		VenueID:          r.VenueID,
		SpaceID:          r.SpaceID,
		StageID:          r.StageID,
		DecorID:          r.DecorID,
		MenuID:           r.MenuID,
		Name:             r.Name,
		OrganizationDate: organizationDate,
		Shift:            shift,
		ChairID:          r.Accessories.Chair.ID,
		Amount:           r.Amount,
	}

	for _, table := range r.Accessories.Tables {
		req.Tables = append(req.Tables, createBooking.TableLine{
			FurnitureID: table.ID,
			Quantity:    table.Quantity,
		})
	}

	return req, nil
}
