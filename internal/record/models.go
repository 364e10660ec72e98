// Package record implements the medical-history core: validation of
// submitted records, conversion between the wire and storage
// representations, ownership checks and the orchestrating service.
package record

import "time"

// ConditionEntry is one disease or medication item in the wire
// representation.
type ConditionEntry struct {
	Name      string  `json:"name"`
	StartDate *string `json:"startDate"`
}

// SurgeryEntry is one surgery item. Surgeries carry "date" on the wire where
// the other categories carry "startDate".
type SurgeryEntry struct {
	Name string  `json:"name"`
	Date *string `json:"date"`
}

// MedicalRecord is the structured wire representation of one user's medical
// history. OwnerID is bound at creation from the authenticated identity and
// never changes.
type MedicalRecord struct {
	ID          string `json:"id"`
	OwnerID     string `json:"ownerId"`
	PhoneNumber string `json:"phoneNumber"`
	DateOfBirth string `json:"dateOfBirth"`
	Address     string `json:"address"`

	DiseaseFlag bool             `json:"diseaseFlag"`
	Diseases    []ConditionEntry `json:"diseases"`

	MedicationFlag bool             `json:"medicationFlag"`
	Medications    []ConditionEntry `json:"medications"`

	SurgeryFlag bool           `json:"surgeryFlag"`
	Surgeries   []SurgeryEntry `json:"surgeries"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StorageRow is the denormalized parallel-array form the store persists: per
// category two same-length arrays (names, dates) plus the boolean gate. An
// absent per-item date is stored as the empty string. This is a legacy
// encoding kept as a versioned storage schema; the transformer is the only
// code that builds or interprets it.
type StorageRow struct {
	ID          string
	OwnerID     string
	PhoneNumber string
	DateOfBirth string
	Address     string

	HasDiseases  bool
	DiseaseNames []string
	DiseaseDates []string

	TakesMedications bool
	MedicationNames  []string
	MedicationDates  []string

	HadSurgeries bool
	SurgeryNames []string
	SurgeryDates []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecordInput is a candidate record payload as submitted by a client. The
// gate flags are pointers so a missing field is distinguishable from false.
type RecordInput struct {
	PhoneNumber   string  `json:"phoneNumber"`
	DateOfBirth   string  `json:"dateOfBirth"`
	Address       string  `json:"address"`
	DiagnosisDate *string `json:"diagnosisDate,omitempty"`

	DiseaseFlag *bool            `json:"diseaseFlag"`
	Diseases    []ConditionEntry `json:"diseases"`

	MedicationFlag *bool            `json:"medicationFlag"`
	Medications    []ConditionEntry `json:"medications"`

	SurgeryFlag *bool          `json:"surgeryFlag"`
	Surgeries   []SurgeryEntry `json:"surgeries"`
}

// FieldError names one invalid field with a human-readable message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult aggregates every rule violation in a submission. It is
// always exhaustive; validation never stops at the first error.
type ValidationResult struct {
	OK     bool         `json:"ok"`
	Errors []FieldError `json:"errors"`
}

// ValidationError carries a failed ValidationResult across the service
// boundary so the handler can render the aggregated error envelope.
type ValidationError struct {
	Result ValidationResult
}

func (e ValidationError) Error() string {
	if n := len(e.Result.Errors); n == 1 {
		return "validation failed: " + e.Result.Errors[0].Field
	}
	return "validation failed"
}
