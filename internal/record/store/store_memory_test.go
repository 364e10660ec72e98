package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elsaedy55/Revo-backend/internal/record"
	"github.com/elsaedy55/Revo-backend/pkg/platform/sentinel"
)

func sampleRow(ownerID string) record.StorageRow {
	return record.StorageRow{
		OwnerID:      ownerID,
		PhoneNumber:  "+201001234567",
		DateOfBirth:  "1990-04-12",
		Address:      "12 Tahrir Square, Cairo",
		HasDiseases:  true,
		DiseaseNames: []string{"Asthma"},
		DiseaseDates: []string{"2020-01-01"},
	}
}

func TestInMemoryStoreCreate(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	created, err := s.Create(ctx, sampleRow("u1"))

	require.NoError(t, err)
	assert.NoError(t, uuid.Validate(created.ID))
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	found, err := s.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, found)
}

func TestInMemoryStoreUpdate(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()
	created, err := s.Create(ctx, sampleRow("u1"))
	require.NoError(t, err)

	next := sampleRow("someone-else")
	next.PhoneNumber = "+201007654321"

	updated, err := s.Update(ctx, created.ID, next)

	require.NoError(t, err)
	assert.Equal(t, "+201007654321", updated.PhoneNumber)
	// Identity and provenance are immutable on update.
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "u1", updated.OwnerID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestInMemoryStoreUpdateMissing(t *testing.T) {
	s := NewInMemoryStore()

	_, err := s.Update(context.Background(), uuid.NewString(), sampleRow("u1"))

	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestInMemoryStoreDelete(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()
	created, err := s.Create(ctx, sampleRow("u1"))
	require.NoError(t, err)

	deleted, err := s.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	_, err = s.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	_, err = s.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestInMemoryStoreFindByOwner(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()
	_, err := s.Create(ctx, sampleRow("u1"))
	require.NoError(t, err)
	_, err = s.Create(ctx, sampleRow("u1"))
	require.NoError(t, err)
	_, err = s.Create(ctx, sampleRow("u2"))
	require.NoError(t, err)

	rows, err := s.FindByOwner(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = s.FindByOwner(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestInMemoryStoreGetOwner(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()
	created, err := s.Create(ctx, sampleRow("u1"))
	require.NoError(t, err)

	owner, err := s.GetOwner(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "u1", owner)

	_, err = s.GetOwner(ctx, uuid.NewString())
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}
