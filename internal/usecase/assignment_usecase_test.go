package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignmentSeed_SkipsExisting(t *testing.T) {
	store := newFakeAssignmentStore()
	uc := NewAssignmentUsecase(store)
	ctx := context.Background()

	created, skipped, err := uc.Seed(ctx, DefaultAssignments)
	require.NoError(t, err)
	assert.Equal(t, len(DefaultAssignments), created)
	assert.Zero(t, skipped)

	created, skipped, err = uc.Seed(ctx, DefaultAssignments)
	require.NoError(t, err)
	assert.Zero(t, created)
	assert.Equal(t, len(DefaultAssignments), skipped)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, len(DefaultAssignments))

	a, err := uc.Get(ctx, list[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "9-6", a.Code)
}
