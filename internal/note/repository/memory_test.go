package repository

import (
	"context"
	"testing"
	"time"

	"github.com/studyhub/studyhub/backend/go-services/internal/apperr"
	"github.com/studyhub/studyhub/backend/go-services/internal/note"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepoCRUD(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepo()
	n := &note.Note{Title: "Kinematics", Content: "v = u + at", Tags: []string{"physics"}}
	require.NoError(t, r.Create(ctx, n))
	require.False(t, n.ID.IsZero())
	require.False(t, n.CreatedAt.IsZero())

	got, err := r.Get(ctx, n.ID.Hex())
	require.NoError(t, err)
	require.Equal(t, "v = u + at", got.Content)

	updated, err := r.Update(ctx, n.ID.Hex(), note.Patch{Content: "s = ut + at^2/2"})
	require.NoError(t, err)
	require.Equal(t, "Kinematics", updated.Title)
	require.Equal(t, "s = ut + at^2/2", updated.Content)
	require.Equal(t, []string{"physics"}, updated.Tags)

	require.NoError(t, r.Delete(ctx, n.ID.Hex()))
	_, err = r.Get(ctx, n.ID.Hex())
	require.ErrorIs(t, err, apperr.ErrNotFound)
	require.ErrorIs(t, r.Delete(ctx, n.ID.Hex()), apperr.ErrNotFound)
}

func TestMemoryRepoMalformedID(t *testing.T) {
	r := NewMemoryRepo()
	_, err := r.Get(context.Background(), "not-an-object-id")
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestMemoryRepoListOrdersByUpdatedAt(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepo()
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	first := &note.Note{Title: "first", Content: "a"}
	second := &note.Note{Title: "second", Content: "b"}
	require.NoError(t, r.Create(ctx, first))
	require.NoError(t, r.Create(ctx, second))

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"second", "first"}, []string{list[0].Title, list[1].Title})

	// touching the older note moves it to the front
	_, err = r.Update(ctx, first.ID.Hex(), note.Patch{Title: "first again"})
	require.NoError(t, err)
	list, err = r.List(ctx)
	require.NoError(t, err)
	require.Equal(t, "first again", list[0].Title)
}

func TestMemoryRepoReturnsCopies(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepo()
	n := &note.Note{Title: "t", Content: "c", Tags: []string{"x"}}
	require.NoError(t, r.Create(ctx, n))

	got, err := r.Get(ctx, n.ID.Hex())
	require.NoError(t, err)
	got.Tags[0] = "mutated"

	again, err := r.Get(ctx, n.ID.Hex())
	require.NoError(t, err)
	require.Equal(t, []string{"x"}, again.Tags)
}
