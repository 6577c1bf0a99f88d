package models

import "errors"

var (
	ErrInvalidPriceSort = errors.New("models: invalid price sort value, expected asc or desc")
)
