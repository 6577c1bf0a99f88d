package list_bookings

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/VH-BookingService/internal/domain"
	bookingModels "github.com/m04kA/VH-BookingService/internal/service/bookings/models"
	"github.com/m04kA/VH-BookingService/pkg/ptr"
)

// ParseListRequest читает параметры фильтрации из query string.
// Отсутствующие параметры получают дефолты на уровне сервиса.
func ParseListRequest(query url.Values) (*bookingModels.ListBookingsRequest, error) {
	req := &bookingModels.ListBookingsRequest{
		Search: query.Get("search"),
	}

	if raw := query.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page <= 0 {
			return nil, fmt.Errorf("invalid page %q", raw)
		}
		req.Page = page
	}

	if raw := query.Get("itemsPerPage"); raw != "" {
		itemsPerPage, err := strconv.Atoi(raw)
		if err != nil || itemsPerPage <= 0 {
			return nil, fmt.Errorf("invalid itemsPerPage %q", raw)
		}
		req.ItemsPerPage = itemsPerPage
	}

	if raw := query.Get("minPrice"); raw != "" {
		minPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil || minPrice < 0 {
			return nil, fmt.Errorf("invalid minPrice %q", raw)
		}
		req.MinPrice = ptr.Ptr(minPrice)
	}

	if raw := query.Get("maxPrice"); raw != "" {
		maxPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil || maxPrice < 0 {
			return nil, fmt.Errorf("invalid maxPrice %q", raw)
		}
		req.MaxPrice = ptr.Ptr(maxPrice)
	}

	if raw := query.Get("priceSort"); raw != "" {
		req.PriceSort = ptr.Ptr(raw)
	}

	if raw := query.Get("startDate"); raw != "" {
		startDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid startDate %q", raw)
		}
		req.StartDate = ptr.Ptr(startDate)
	}

	if raw := query.Get("endDate"); raw != "" {
		endDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid endDate %q", raw)
		}
		req.EndDate = ptr.Ptr(endDate)
	}

	return req, nil
}
