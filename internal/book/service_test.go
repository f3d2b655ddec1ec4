package book

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	store := NewMockStore(ctrl)
	service := NewService(store)
	ctx := context.Background()

	want := []Book{{ID: 5, Title: "Dune", Author: "Frank Herbert"}}
	store.EXPECT().
		Scan(ctx, Scan{Where: GreaterThan(FieldID, int64(4)), Limit: 1}).
		Return(want, nil)

	got, err := service.List(ctx, Page{Cursor: int64Ptr(4), Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestService_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("builds predicate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		store := NewMockStore(ctrl)

		f := Filter{Author: strPtr("Herbert")}
		store.EXPECT().
			Scan(ctx, Scan{Where: Contains(FieldAuthor, "Herbert"), Limit: DefaultLimit}).
			Return([]Book{}, nil)

		got, err := NewService(store).Search(ctx, f, Page{})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("empty filter", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		store := NewMockStore(ctrl)

		_, err := NewService(store).Search(ctx, Filter{Title: strPtr("")}, Page{})
		assert.ErrorIs(t, err, ErrEmptyFilter)

		_, err = NewService(store).Search(ctx, Filter{Title: strPtr("   ")}, Page{})
		assert.ErrorIs(t, err, ErrEmptyFilter)
	})

	t.Run("store error passes through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		store := NewMockStore(ctrl)

		boom := errors.New("connection reset")
		store.EXPECT().Scan(gomock.Any(), gomock.Any()).Return(nil, boom)

		_, err := NewService(store).Search(ctx, Filter{Year: intPtr(1965)}, Page{})
		assert.ErrorIs(t, err, boom)
	})
}

func TestService_NonPositiveIDs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	service := NewService(NewMockStore(ctrl))
	ctx := context.Background()

	for _, id := range []int64{0, -1} {
		_, err := service.Get(ctx, id)
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = service.Update(ctx, id, Input{Title: "T", Author: "A"})
		assert.ErrorIs(t, err, ErrNotFound)

		assert.ErrorIs(t, service.Delete(ctx, id), ErrNotFound)
	}
}

func TestService_Writes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	store := NewMockStore(ctrl)
	service := NewService(store)
	ctx := context.Background()

	in := Input{Title: "Dune", Author: "Frank Herbert", Year: intPtr(1965)}
	created := Book{ID: 1, Title: in.Title, Author: in.Author, Year: in.Year}

	store.EXPECT().Insert(ctx, in).Return(created, nil)
	got, err := service.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	store.EXPECT().GetByID(ctx, int64(1)).Return(created, nil)
	got, err = service.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	store.EXPECT().UpdateByID(ctx, int64(2), in).Return(Book{}, ErrNotFound)
	_, err = service.Update(ctx, 2, in)
	assert.ErrorIs(t, err, ErrNotFound)

	store.EXPECT().DeleteByID(ctx, int64(1)).Return(nil)
	assert.NoError(t, service.Delete(ctx, 1))
}
