package record

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTransformer() *Transformer {
	return NewTransformer(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func sampleRecord() MedicalRecord {
	return MedicalRecord{
		ID:          "rec-1",
		OwnerID:     "user-1",
		PhoneNumber: "+201001234567",
		DateOfBirth: "1990-04-12",
		Address:     "12 Tahrir Square, Cairo",
		DiseaseFlag: true,
		Diseases: []ConditionEntry{
			{Name: "Asthma", StartDate: strPtr("2020-01-01")},
			{Name: "Diabetes", StartDate: nil},
		},
		MedicationFlag: true,
		Medications: []ConditionEntry{
			{Name: "Ventolin", StartDate: strPtr("2020-02-01")},
		},
		SurgeryFlag: true,
		Surgeries: []SurgeryEntry{
			{Name: "Appendectomy", Date: strPtr("2015-07-20")},
		},
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
	}
}

func TestToStorageFlattensParallelArrays(t *testing.T) {
	row := newTestTransformer().ToStorage(sampleRecord())

	assert.Equal(t, []string{"Asthma", "Diabetes"}, row.DiseaseNames)
	// Absent per-item dates are stored as the empty-string placeholder.
	assert.Equal(t, []string{"2020-01-01", ""}, row.DiseaseDates)
	assert.Equal(t, []string{"Ventolin"}, row.MedicationNames)
	assert.Equal(t, []string{"Appendectomy"}, row.SurgeryNames)
	assert.Equal(t, []string{"2015-07-20"}, row.SurgeryDates)
	assert.True(t, row.HasDiseases)
	assert.True(t, row.TakesMedications)
	assert.True(t, row.HadSurgeries)
}

func TestToStorageFalseGateEmptiesCategory(t *testing.T) {
	rec := sampleRecord()
	rec.DiseaseFlag = false
	// Stray list content alongside a false gate must not survive.

	row := newTestTransformer().ToStorage(rec)

	assert.False(t, row.HasDiseases)
	assert.Equal(t, []string{}, row.DiseaseNames)
	assert.Equal(t, []string{}, row.DiseaseDates)
	assert.Equal(t, []string{"Ventolin"}, row.MedicationNames)
}

func TestRoundTrip(t *testing.T) {
	tr := newTestTransformer()
	rec := sampleRecord()

	got := tr.ToWire(tr.ToStorage(rec))

	assert.Equal(t, rec, got)
}

func TestToWireMismatchedLengths(t *testing.T) {
	tr := newTestTransformer()

	t.Run("extra names get a null date", func(t *testing.T) {
		row := StorageRow{
			ID:           "rec-2",
			HasDiseases:  true,
			DiseaseNames: []string{"Asthma", "Diabetes"},
			DiseaseDates: []string{"2020-01-01"},
		}

		rec := tr.ToWire(row)

		require.Len(t, rec.Diseases, 2)
		require.NotNil(t, rec.Diseases[0].StartDate)
		assert.Equal(t, "2020-01-01", *rec.Diseases[0].StartDate)
		assert.Nil(t, rec.Diseases[1].StartDate)
	})

	t.Run("extra dates are dropped", func(t *testing.T) {
		row := StorageRow{
			ID:           "rec-3",
			HadSurgeries: true,
			SurgeryNames: []string{"Appendectomy"},
			SurgeryDates: []string{"2015-07-20", "2016-01-01"},
		}

		rec := tr.ToWire(row)

		require.Len(t, rec.Surgeries, 1)
		require.NotNil(t, rec.Surgeries[0].Date)
		assert.Equal(t, "2015-07-20", *rec.Surgeries[0].Date)
	})
}

func TestToWireEmptyPlaceholderBecomesNil(t *testing.T) {
	row := StorageRow{
		ID:               "rec-4",
		TakesMedications: true,
		MedicationNames:  []string{"Ventolin"},
		MedicationDates:  []string{""},
	}

	rec := newTestTransformer().ToWire(row)

	require.Len(t, rec.Medications, 1)
	assert.Nil(t, rec.Medications[0].StartDate)
}
