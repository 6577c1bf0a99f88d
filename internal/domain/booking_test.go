package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingsFilterNormalize(t *testing.T) {
	filter := BookingsFilter{}
	filter.Normalize()

	assert.Equal(t, 1, filter.Page)
	assert.Equal(t, DefaultItemsPerPage, filter.ItemsPerPage)

	filter = BookingsFilter{Page: 3, ItemsPerPage: 25}
	filter.Normalize()

	assert.Equal(t, 3, filter.Page)
	assert.Equal(t, 25, filter.ItemsPerPage)
	assert.Equal(t, 50, filter.Offset())
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(1, 10, 35)
	assert.Equal(t, 4, p.LastPage)
	require.NotNil(t, p.NextPage)
	assert.Equal(t, 2, *p.NextPage)
	assert.Nil(t, p.PrevPage)

	p = NewPagination(4, 10, 35)
	assert.Nil(t, p.NextPage)
	require.NotNil(t, p.PrevPage)
	assert.Equal(t, 3, *p.PrevPage)

	p = NewPagination(1, 10, 0)
	assert.Equal(t, 0, p.LastPage)
	assert.Nil(t, p.NextPage)
	assert.Nil(t, p.PrevPage)
}
