package favorite

import (
	"context"
	"testing"

	"cowork/database/repository/memstore"
	"cowork/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavorites(t *testing.T) {
	store := memstore.New()
	svc, err := NewDefaultFavoriteService(store.Favorites(), store.Spaces())
	require.NoError(t, err)
	ctx := context.Background()

	sp := &models.CoworkingSpace{Name: "Hub", Address: "1 Main St"}
	require.NoError(t, store.Spaces().Create(ctx, sp))

	_, err = svc.Add(ctx, "u1", "missing")
	assert.ErrorIs(t, err, ErrSpaceNotFound)

	_, err = svc.Add(ctx, "u1", sp.ID)
	require.NoError(t, err)
	_, err = svc.Add(ctx, "u1", sp.ID)
	assert.ErrorIs(t, err, ErrDuplicate)

	list, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Hub", list[0].CoworkingSpace.(*models.SpaceSummary).Name)

	require.NoError(t, svc.Remove(ctx, "u1", sp.ID))
	assert.ErrorIs(t, svc.Remove(ctx, "u1", sp.ID), ErrNotFound)
}
