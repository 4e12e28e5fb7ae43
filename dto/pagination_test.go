package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageRequest_Normalized(t *testing.T) {
	assert.Equal(t, PageRequest{Page: 1, Limit: 10}, PageRequest{}.Normalized())
	assert.Equal(t, PageRequest{Page: 1, Limit: 10}, PageRequest{Page: -3, Limit: 0}.Normalized())
	assert.Equal(t, PageRequest{Page: 4, Limit: 25}, PageRequest{Page: 4, Limit: 25}.Normalized())
}

func TestPageRequest_Offset(t *testing.T) {
	assert.Equal(t, 0, PageRequest{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 20, PageRequest{Page: 3, Limit: 10}.Offset())
}

func TestNewListMeta(t *testing.T) {
	t.Run("middle page has a next page", func(t *testing.T) {
		meta := NewListMeta(PageRequest{Page: 2, Limit: 10}, 10, 25)

		assert.EqualValues(t, 25, meta.TotalItems)
		assert.Equal(t, 10, meta.ItemCount)
		assert.Equal(t, 3, meta.TotalPages)
		assert.Equal(t, 2, meta.CurrentPage)
		require.NotNil(t, meta.NextPage)
		assert.Equal(t, 3, *meta.NextPage)
	})

	t.Run("last page has no next page", func(t *testing.T) {
		meta := NewListMeta(PageRequest{Page: 3, Limit: 10}, 5, 25)
		assert.Nil(t, meta.NextPage)
	})

	t.Run("empty result", func(t *testing.T) {
		meta := NewListMeta(PageRequest{Page: 1, Limit: 10}, 0, 0)
		assert.Equal(t, 0, meta.TotalPages)
		assert.Nil(t, meta.NextPage)
	})

	t.Run("unnormalized request is normalized, not a panic", func(t *testing.T) {
		meta := NewListMeta(PageRequest{}, 10, 25)

		assert.Equal(t, 10, meta.ItemsPerPage)
		assert.Equal(t, 1, meta.CurrentPage)
		assert.Equal(t, 3, meta.TotalPages)
		require.NotNil(t, meta.NextPage)
		assert.Equal(t, 2, *meta.NextPage)
	})
}
