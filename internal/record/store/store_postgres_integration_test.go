//go:build integration

package store_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/elsaedy55/Revo-backend/internal/record"
	"github.com/elsaedy55/Revo-backend/internal/record/store"
	"github.com/elsaedy55/Revo-backend/pkg/platform/sentinel"
	"github.com/elsaedy55/Revo-backend/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T(), store.Schema)
	s.store = store.NewPostgresStore(s.postgres.Pool)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "medical_history"))
}

func testRow(ownerID string) record.StorageRow {
	return record.StorageRow{
		OwnerID:      ownerID,
		PhoneNumber:  "+201001234567",
		DateOfBirth:  "1990-04-12",
		Address:      "12 Tahrir Square, Cairo",
		HasDiseases:  true,
		DiseaseNames: []string{"Asthma", "Diabetes"},
		// Empty string marks an item without a date.
		DiseaseDates:    []string{"2020-01-01", ""},
		MedicationNames: []string{},
		MedicationDates: []string{},
		SurgeryNames:    []string{},
		SurgeryDates:    []string{},
	}
}

func (s *PostgresStoreSuite) TestCreateAndFind() {
	ctx := context.Background()

	created, err := s.store.Create(ctx, testRow("u1"))
	s.Require().NoError(err)
	s.NoError(uuid.Validate(created.ID))
	s.False(created.CreatedAt.IsZero())

	found, err := s.store.FindByID(ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(created.ID, found.ID)
	s.Equal("u1", found.OwnerID)
	s.Equal([]string{"Asthma", "Diabetes"}, found.DiseaseNames)
	// The empty-string placeholder must survive the TEXT[] round trip.
	s.Equal([]string{"2020-01-01", ""}, found.DiseaseDates)
}

func (s *PostgresStoreSuite) TestFindMissing() {
	_, err := s.store.FindByID(context.Background(), uuid.NewString())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestUpdate() {
	ctx := context.Background()
	created, err := s.store.Create(ctx, testRow("u1"))
	s.Require().NoError(err)

	next := testRow("u1")
	next.PhoneNumber = "+201007654321"
	next.HasDiseases = false
	next.DiseaseNames = []string{}
	next.DiseaseDates = []string{}

	updated, err := s.store.Update(ctx, created.ID, next)
	s.Require().NoError(err)
	s.Equal(created.ID, updated.ID)
	s.Equal("u1", updated.OwnerID)
	s.Equal("+201007654321", updated.PhoneNumber)
	s.False(updated.HasDiseases)
	s.Empty(updated.DiseaseNames)
	s.Equal(created.CreatedAt, updated.CreatedAt)
	s.True(updated.UpdatedAt.After(created.UpdatedAt) || updated.UpdatedAt.Equal(created.UpdatedAt))
}

func (s *PostgresStoreSuite) TestUpdateMissing() {
	_, err := s.store.Update(context.Background(), uuid.NewString(), testRow("u1"))
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestDelete() {
	ctx := context.Background()
	created, err := s.store.Create(ctx, testRow("u1"))
	s.Require().NoError(err)

	deleted, err := s.store.Delete(ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(created.ID, deleted.ID)

	_, err = s.store.FindByID(ctx, created.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)

	_, err = s.store.Delete(ctx, created.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestFindByOwner() {
	ctx := context.Background()
	first, err := s.store.Create(ctx, testRow("u1"))
	s.Require().NoError(err)
	second, err := s.store.Create(ctx, testRow("u1"))
	s.Require().NoError(err)
	_, err = s.store.Create(ctx, testRow("u2"))
	s.Require().NoError(err)

	rows, err := s.store.FindByOwner(ctx, "u1")
	s.Require().NoError(err)
	s.Require().Len(rows, 2)
	// Ordered by creation time.
	s.Equal(first.ID, rows[0].ID)
	s.Equal(second.ID, rows[1].ID)

	rows, err = s.store.FindByOwner(ctx, "nobody")
	s.Require().NoError(err)
	s.Empty(rows)
}

func (s *PostgresStoreSuite) TestGetOwner() {
	ctx := context.Background()
	created, err := s.store.Create(ctx, testRow("u1"))
	s.Require().NoError(err)

	owner, err := s.store.GetOwner(ctx, created.ID)
	s.Require().NoError(err)
	s.Equal("u1", owner)

	_, err = s.store.GetOwner(ctx, uuid.NewString())
	s.ErrorIs(err, sentinel.ErrNotFound)
}
