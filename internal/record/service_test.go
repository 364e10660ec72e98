package record

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elsaedy55/Revo-backend/internal/audit"
	dErrors "github.com/elsaedy55/Revo-backend/pkg/domain-errors"
	"github.com/elsaedy55/Revo-backend/pkg/platform/sentinel"
	"github.com/elsaedy55/Revo-backend/pkg/requestcontext"
)

// fakeStore records which mutating calls reached the store so tests can prove
// the pipeline stopped where it should have.
type fakeStore struct {
	rows    map[string]StorageRow
	writes  []string
	lastRow StorageRow
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: make(map[string]StorageRow)}
}

func (s *fakeStore) Create(_ context.Context, row StorageRow) (StorageRow, error) {
	s.writes = append(s.writes, "create")
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	row.CreatedAt = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	row.UpdatedAt = row.CreatedAt
	s.rows[row.ID] = row
	s.lastRow = row
	return row, nil
}

func (s *fakeStore) Update(_ context.Context, id string, row StorageRow) (StorageRow, error) {
	s.writes = append(s.writes, "update")
	existing, ok := s.rows[id]
	if !ok {
		return StorageRow{}, sentinel.ErrNotFound
	}
	row.ID = existing.ID
	row.OwnerID = existing.OwnerID
	row.CreatedAt = existing.CreatedAt
	s.rows[id] = row
	s.lastRow = row
	return row, nil
}

func (s *fakeStore) Delete(_ context.Context, id string) (StorageRow, error) {
	s.writes = append(s.writes, "delete")
	row, ok := s.rows[id]
	if !ok {
		return StorageRow{}, sentinel.ErrNotFound
	}
	delete(s.rows, id)
	return row, nil
}

func (s *fakeStore) FindByID(_ context.Context, id string) (StorageRow, error) {
	row, ok := s.rows[id]
	if !ok {
		return StorageRow{}, sentinel.ErrNotFound
	}
	return row, nil
}

func (s *fakeStore) FindByOwner(_ context.Context, ownerID string) ([]StorageRow, error) {
	var rows []StorageRow
	for _, row := range s.rows {
		if row.OwnerID == ownerID {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (s *fakeStore) GetOwner(_ context.Context, id string) (string, error) {
	row, ok := s.rows[id]
	if !ok {
		return "", sentinel.ErrNotFound
	}
	return row.OwnerID, nil
}

type fakeAuditor struct {
	events []audit.Event
}

func (a *fakeAuditor) Emit(_ context.Context, event audit.Event) {
	a.events = append(a.events, event)
}

func newTestService(store *fakeStore) (*Service, *fakeAuditor) {
	log := discardLogger()
	auditor := &fakeAuditor{}
	guard := NewOwnershipGuard(store, nil, log)
	svc := NewService(store, guard, NewTransformer(log), auditor, nil, log)
	return svc, auditor
}

func authedContext(subjectID string) context.Context {
	ctx := requestcontext.WithSubjectID(context.Background(), subjectID)
	return requestcontext.WithTime(ctx, fixedNow())
}

func seedRecord(t *testing.T, svc *Service, ownerID string) MedicalRecord {
	t.Helper()
	created, err := svc.Create(authedContext(ownerID), validInput())
	require.NoError(t, err)
	return created
}

func TestServiceCreate(t *testing.T) {
	store := newFakeStore()
	svc, auditor := newTestService(store)
	ctx := authedContext("u1")

	created, err := svc.Create(ctx, validInput())

	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "u1", created.OwnerID)
	assert.True(t, created.DiseaseFlag)
	require.Len(t, created.Diseases, 1)
	assert.Equal(t, "Asthma", created.Diseases[0].Name)

	require.Len(t, auditor.events, 1)
	assert.Equal(t, "create", auditor.events[0].Action)
	assert.Equal(t, "u1", auditor.events[0].SubjectID)
	assert.Equal(t, created.ID, auditor.events[0].RecordID)
}

func TestServiceCreateRejectsInvalidInput(t *testing.T) {
	store := newFakeStore()
	svc, auditor := newTestService(store)

	_, err := svc.Create(authedContext("u1"), RecordInput{})

	var ve ValidationError
	require.ErrorAs(t, err, &ve)
	assert.False(t, ve.Result.OK)
	assert.NotEmpty(t, ve.Result.Errors)
	assert.Empty(t, store.writes, "invalid input must never reach the store")
	assert.Empty(t, auditor.events)
}

func TestServiceCreateDropsGateFalseLists(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestService(store)

	input := validInput()
	input.MedicationFlag = boolPtr(false)
	input.Medications = []ConditionEntry{{Name: "Ventolin"}}

	created, err := svc.Create(authedContext("u1"), input)

	require.NoError(t, err)
	assert.False(t, created.MedicationFlag)
	assert.Empty(t, created.Medications)
	assert.Equal(t, []string{}, store.lastRow.MedicationNames)
}

func TestServiceList(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestService(store)
	seedRecord(t, svc, "u1")
	seedRecord(t, svc, "u1")
	seedRecord(t, svc, "u2")

	records, err := svc.List(authedContext("u1"))

	require.NoError(t, err)
	assert.Len(t, records, 2)
	for _, rec := range records {
		assert.Equal(t, "u1", rec.OwnerID)
	}
}

func TestServiceGet(t *testing.T) {
	store := newFakeStore()
	svc, auditor := newTestService(store)
	created := seedRecord(t, svc, "u1")

	t.Run("owner reads own record", func(t *testing.T) {
		got, err := svc.Get(authedContext("u1"), created.ID)

		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
	})

	t.Run("other subject gets forbidden", func(t *testing.T) {
		_, err := svc.Get(authedContext("u2"), created.ID)

		assert.Equal(t, dErrors.CodeForbidden, dErrors.CodeOf(err))
	})

	t.Run("unknown id gets not found", func(t *testing.T) {
		_, err := svc.Get(authedContext("u1"), uuid.NewString())

		assert.Equal(t, dErrors.CodeNotFound, dErrors.CodeOf(err))
	})

	t.Run("malformed id gets not found", func(t *testing.T) {
		_, err := svc.Get(authedContext("u1"), "not-a-uuid")

		assert.Equal(t, dErrors.CodeNotFound, dErrors.CodeOf(err))
	})

	t.Run("reads are audited", func(t *testing.T) {
		var actions []string
		for _, e := range auditor.events {
			actions = append(actions, e.Action)
		}
		assert.Contains(t, actions, "read")
	})
}

func TestServiceUpdateChecksOwnershipBeforeValidation(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestService(store)
	created := seedRecord(t, svc, "u1")
	writesBefore := len(store.writes)

	// The payload is invalid on every field. Ownership must still decide the
	// outcome: a non-owner sees 403, never a validation response.
	_, err := svc.Update(authedContext("u2"), created.ID, RecordInput{})

	assert.Equal(t, dErrors.CodeForbidden, dErrors.CodeOf(err))
	var ve ValidationError
	assert.False(t, errors.As(err, &ve))
	assert.Len(t, store.writes, writesBefore, "denied update must not touch the store")
}

func TestServiceUpdate(t *testing.T) {
	store := newFakeStore()
	svc, auditor := newTestService(store)
	created := seedRecord(t, svc, "u1")

	input := validInput()
	input.PhoneNumber = "+20 100 765 4321"

	updated, err := svc.Update(authedContext("u1"), created.ID, input)

	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "+20 100 765 4321", updated.PhoneNumber)
	// Owner identity survives every update.
	assert.Equal(t, "u1", updated.OwnerID)

	last := auditor.events[len(auditor.events)-1]
	assert.Equal(t, "update", last.Action)
	assert.Equal(t, created.ID, last.RecordID)
}

func TestServiceUpdateRejectsInvalidInput(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestService(store)
	created := seedRecord(t, svc, "u1")
	writesBefore := len(store.writes)

	_, err := svc.Update(authedContext("u1"), created.ID, RecordInput{})

	var ve ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, store.writes, writesBefore)
}

func TestServiceDelete(t *testing.T) {
	store := newFakeStore()
	svc, auditor := newTestService(store)
	created := seedRecord(t, svc, "u1")

	t.Run("non-owner cannot delete", func(t *testing.T) {
		_, err := svc.Delete(authedContext("u2"), created.ID)

		assert.Equal(t, dErrors.CodeForbidden, dErrors.CodeOf(err))
	})

	t.Run("owner deletes and gets the record back", func(t *testing.T) {
		deleted, err := svc.Delete(authedContext("u1"), created.ID)

		require.NoError(t, err)
		assert.Equal(t, created.ID, deleted.ID)

		_, err = svc.Get(authedContext("u1"), created.ID)
		assert.Equal(t, dErrors.CodeNotFound, dErrors.CodeOf(err))

		last := auditor.events[len(auditor.events)-1]
		assert.Equal(t, "delete", last.Action)
	})
}

func TestServicePipelineRoundTrip(t *testing.T) {
	// Full pipeline: submit, flatten to storage, read back, and compare the
	// wire shape against what was submitted.
	store := newFakeStore()
	svc, _ := newTestService(store)

	input := validInput()
	input.SurgeryFlag = boolPtr(true)
	input.Surgeries = []SurgeryEntry{
		{Name: "Appendectomy", Date: strPtr("2015-07-20")},
		{Name: "Tonsillectomy"},
	}

	created, err := svc.Create(authedContext("u1"), input)
	require.NoError(t, err)

	got, err := svc.Get(authedContext("u1"), created.ID)
	require.NoError(t, err)

	assert.Equal(t, created, got)
	require.Len(t, got.Surgeries, 2)
	require.NotNil(t, got.Surgeries[0].Date)
	assert.Equal(t, "2015-07-20", *got.Surgeries[0].Date)
	assert.Nil(t, got.Surgeries[1].Date)
	assert.Equal(t, []string{"Appendectomy", "Tonsillectomy"}, store.lastRow.SurgeryNames)
	assert.Equal(t, []string{"2015-07-20", ""}, store.lastRow.SurgeryDates)
}
