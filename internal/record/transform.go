package record

import "log/slog"

// Transformer converts between the wire representation (lists of name/date
// objects) and the parallel-array storage row. Both directions are pure and
// total; for any record that passed Validate, ToWire(ToStorage(r)) is
// structurally equal to r.
type Transformer struct {
	log *slog.Logger
}

func NewTransformer(log *slog.Logger) *Transformer {
	return &Transformer{log: log}
}

// ToStorage flattens a record into the parallel-array row. When a gate flag
// is false the category's arrays come out empty regardless of any stray list
// content submitted alongside it.
func (t *Transformer) ToStorage(rec MedicalRecord) StorageRow {
	row := StorageRow{
		ID:               rec.ID,
		OwnerID:          rec.OwnerID,
		PhoneNumber:      rec.PhoneNumber,
		DateOfBirth:      rec.DateOfBirth,
		Address:          rec.Address,
		HasDiseases:      rec.DiseaseFlag,
		TakesMedications: rec.MedicationFlag,
		HadSurgeries:     rec.SurgeryFlag,
		CreatedAt:        rec.CreatedAt,
		UpdatedAt:        rec.UpdatedAt,
	}

	row.DiseaseNames, row.DiseaseDates = flattenConditions(rec.DiseaseFlag, rec.Diseases)
	row.MedicationNames, row.MedicationDates = flattenConditions(rec.MedicationFlag, rec.Medications)
	row.SurgeryNames, row.SurgeryDates = flattenSurgeries(rec.SurgeryFlag, rec.Surgeries)

	return row
}

// ToWire zips the parallel arrays back into lists pairwise by index. Rows
// with mismatched array lengths are legacy corruption: extra names get a
// null date, extra dates are dropped, and the condition is logged rather
// than failing the read.
func (t *Transformer) ToWire(row StorageRow) MedicalRecord {
	rec := MedicalRecord{
		ID:             row.ID,
		OwnerID:        row.OwnerID,
		PhoneNumber:    row.PhoneNumber,
		DateOfBirth:    row.DateOfBirth,
		Address:        row.Address,
		DiseaseFlag:    row.HasDiseases,
		MedicationFlag: row.TakesMedications,
		SurgeryFlag:    row.HadSurgeries,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}

	rec.Diseases = zipConditions(t.checkLengths(row.ID, "diseases", row.DiseaseNames, row.DiseaseDates))
	rec.Medications = zipConditions(t.checkLengths(row.ID, "medications", row.MedicationNames, row.MedicationDates))
	names, dates := t.checkLengths(row.ID, "surgeries", row.SurgeryNames, row.SurgeryDates)
	rec.Surgeries = zipSurgeries(names, dates)

	return rec
}

func (t *Transformer) checkLengths(recordID, category string, names, dates []string) ([]string, []string) {
	if len(names) != len(dates) {
		t.log.Warn("storage row has mismatched array lengths",
			"record_id", recordID,
			"category", category,
			"names", len(names),
			"dates", len(dates),
		)
	}
	return names, dates
}

func flattenConditions(gate bool, entries []ConditionEntry) ([]string, []string) {
	if !gate {
		return []string{}, []string{}
	}
	names := make([]string, len(entries))
	dates := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
		if e.StartDate != nil {
			dates[i] = *e.StartDate
		}
	}
	return names, dates
}

func flattenSurgeries(gate bool, entries []SurgeryEntry) ([]string, []string) {
	if !gate {
		return []string{}, []string{}
	}
	names := make([]string, len(entries))
	dates := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
		if e.Date != nil {
			dates[i] = *e.Date
		}
	}
	return names, dates
}

func zipConditions(names, dates []string) []ConditionEntry {
	entries := make([]ConditionEntry, len(names))
	for i, name := range names {
		entries[i] = ConditionEntry{Name: name, StartDate: dateAt(dates, i)}
	}
	return entries
}

func zipSurgeries(names, dates []string) []SurgeryEntry {
	entries := make([]SurgeryEntry, len(names))
	for i, name := range names {
		entries[i] = SurgeryEntry{Name: name, Date: dateAt(dates, i)}
	}
	return entries
}

// dateAt returns a pointer to the date at i, nil when the slot is out of
// range (length mismatch) or holds the empty-string placeholder.
func dateAt(dates []string, i int) *string {
	if i >= len(dates) || dates[i] == "" {
		return nil
	}
	d := dates[i]
	return &d
}
