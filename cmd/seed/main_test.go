package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcatalog/internal/book"
)

func TestSeed_StoresWholeCatalog(t *testing.T) {
	ctx := context.Background()
	service := book.NewService(book.NewMemoryRepo())

	n, err := seed(ctx, service)
	require.NoError(t, err)
	assert.Equal(t, len(catalog), n)

	books, err := service.List(ctx, book.Page{Limit: 100})
	require.NoError(t, err)
	assert.Len(t, books, len(catalog))
}

func TestCatalog_FitsColumnLimits(t *testing.T) {
	for _, in := range catalog {
		assert.LessOrEqual(t, len(in.Title), 50, in.Title)
		assert.LessOrEqual(t, len(in.Author), 50, in.Author)
		assert.NotEmpty(t, in.Title)
		assert.NotEmpty(t, in.Author)
	}
}
