package update_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/VH-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(id int64, req *Request) error {
	if id <= 0 {
		return fmt.Errorf("%w: booking id must be positive", ErrInvalidInput)
	}

	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.VenueID <= 0 {
		return fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}

	if req.SpaceID <= 0 {
		return fmt.Errorf("%w: spaceID must be positive", ErrInvalidInput)
	}

	if req.StageID <= 0 {
		return fmt.Errorf("%w: stageID must be positive", ErrInvalidInput)
	}

	if req.DecorID <= 0 {
		return fmt.Errorf("%w: decorID must be positive", ErrInvalidInput)
	}

	if req.MenuID <= 0 {
		return fmt.Errorf("%w: menuID must be positive", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxEventNameLength {
		return fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, domain.MaxEventNameLength)
	}

	if req.OrganizationDate.IsZero() {
		return fmt.Errorf("%w: organizationDate is required", ErrInvalidInput)
	}

	if _, err := domain.ParseShift(string(req.Shift)); err != nil {
		return fmt.Errorf("%w: invalid shift %q", ErrInvalidInput, req.Shift)
	}

	if req.ChairID <= 0 {
		return fmt.Errorf("%w: chair furniture id is required", ErrInvalidInput)
	}

	for _, line := range req.Tables {
		if line.FurnitureID <= 0 {
			return fmt.Errorf("%w: table furniture id must be positive", ErrInvalidInput)
		}
		if line.Quantity <= 0 {
			return fmt.Errorf("%w: table quantity must be positive", ErrInvalidInput)
		}
	}

	if req.Amount < 0 {
		return fmt.Errorf("%w: amount must not be negative", ErrInvalidInput)
	}

	return nil
}
