package record

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/elsaedy55/Revo-backend/internal/audit"
	"github.com/elsaedy55/Revo-backend/internal/record/metrics"
	dErrors "github.com/elsaedy55/Revo-backend/pkg/domain-errors"
	"github.com/elsaedy55/Revo-backend/pkg/platform/sentinel"
	"github.com/elsaedy55/Revo-backend/pkg/requestcontext"
)

// Store is the persistence contract the service consumes. Atomicity of
// create/update is the store's responsibility; this layer never retries and
// never observes partial writes.
type Store interface {
	Create(ctx context.Context, row StorageRow) (StorageRow, error)
	Update(ctx context.Context, id string, row StorageRow) (StorageRow, error)
	Delete(ctx context.Context, id string) (StorageRow, error)
	FindByID(ctx context.Context, id string) (StorageRow, error)
	FindByOwner(ctx context.Context, ownerID string) ([]StorageRow, error)
	GetOwner(ctx context.Context, recordID string) (string, error)
}

// AuditPublisher receives access/mutation events. Best-effort; never blocks
// or fails the operation that produced the event.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event)
}

// Service runs the per-request pipeline: ownership check (for record-scoped
// operations), exhaustive validation, transformation, then the store call.
// The ownership check strictly precedes validation and transformation on
// mutating paths so attacker-submitted data is never processed for a record
// the caller does not own.
type Service struct {
	store       Store
	guard       *OwnershipGuard
	transformer *Transformer
	auditor     AuditPublisher
	metrics     *metrics.Metrics
	tracer      trace.Tracer
	log         *slog.Logger
}

func NewService(store Store, guard *OwnershipGuard, transformer *Transformer, auditor AuditPublisher, m *metrics.Metrics, log *slog.Logger) *Service {
	return &Service{
		store:       store,
		guard:       guard,
		transformer: transformer,
		auditor:     auditor,
		metrics:     m,
		tracer:      otel.Tracer("record"),
		log:         log,
	}
}

// Create validates the submission, binds ownership to the authenticated
// subject, and persists the flattened row.
func (s *Service) Create(ctx context.Context, input RecordInput) (MedicalRecord, error) {
	ctx, span := s.tracer.Start(ctx, "record.create")
	defer span.End()

	subjectID := requestcontext.SubjectID(ctx)

	if err := s.validate(ctx, "create", input); err != nil {
		return MedicalRecord{}, err
	}

	row := s.transformer.ToStorage(s.fromInput(input, subjectID))

	start := time.Now()
	created, err := s.store.Create(ctx, row)
	s.metrics.ObserveStoreLatency("create", time.Since(start))
	if err != nil {
		s.metrics.IncrementOperation("create", "error")
		return MedicalRecord{}, dErrors.Wrap(dErrors.CodeInternal, "create medical record failed", err)
	}

	s.metrics.IncrementOperation("create", "ok")
	s.emit(ctx, "create", created.ID)
	return s.transformer.ToWire(created), nil
}

// List returns every record owned by the authenticated subject.
func (s *Service) List(ctx context.Context) ([]MedicalRecord, error) {
	ctx, span := s.tracer.Start(ctx, "record.list")
	defer span.End()

	subjectID := requestcontext.SubjectID(ctx)

	start := time.Now()
	rows, err := s.store.FindByOwner(ctx, subjectID)
	s.metrics.ObserveStoreLatency("list", time.Since(start))
	if err != nil {
		s.metrics.IncrementOperation("list", "error")
		return nil, dErrors.Wrap(dErrors.CodeInternal, "list medical records failed", err)
	}

	records := make([]MedicalRecord, len(rows))
	for i, row := range rows {
		records[i] = s.transformer.ToWire(row)
	}

	s.metrics.IncrementOperation("list", "ok")
	s.emit(ctx, "list", "")
	return records, nil
}

// Get fetches one record after proving the caller owns it.
func (s *Service) Get(ctx context.Context, id string) (MedicalRecord, error) {
	ctx, span := s.tracer.Start(ctx, "record.get")
	defer span.End()

	if err := s.requireOwner(ctx, "get", id); err != nil {
		return MedicalRecord{}, err
	}

	start := time.Now()
	row, err := s.store.FindByID(ctx, id)
	s.metrics.ObserveStoreLatency("get", time.Since(start))
	if err != nil {
		return MedicalRecord{}, s.storeFailure(ctx, "get", "read medical record failed", err)
	}

	s.metrics.IncrementOperation("get", "ok")
	s.emit(ctx, "read", id)
	return s.transformer.ToWire(row), nil
}

// Update re-checks ownership, then validates and persists the new content.
// The owner id is immutable: the stored value survives every update.
func (s *Service) Update(ctx context.Context, id string, input RecordInput) (MedicalRecord, error) {
	ctx, span := s.tracer.Start(ctx, "record.update")
	defer span.End()

	// Ownership first. Validation and transformation of the submitted
	// payload must not run for records the caller does not own.
	if err := s.requireOwner(ctx, "update", id); err != nil {
		return MedicalRecord{}, err
	}

	if err := s.validate(ctx, "update", input); err != nil {
		return MedicalRecord{}, err
	}

	subjectID := requestcontext.SubjectID(ctx)
	row := s.transformer.ToStorage(s.fromInput(input, subjectID))

	start := time.Now()
	updated, err := s.store.Update(ctx, id, row)
	s.metrics.ObserveStoreLatency("update", time.Since(start))
	if err != nil {
		return MedicalRecord{}, s.storeFailure(ctx, "update", "update medical record failed", err)
	}

	s.metrics.IncrementOperation("update", "ok")
	s.emit(ctx, "update", id)
	return s.transformer.ToWire(updated), nil
}

// Delete removes a record after proving ownership and drops the cached owner.
func (s *Service) Delete(ctx context.Context, id string) (MedicalRecord, error) {
	ctx, span := s.tracer.Start(ctx, "record.delete")
	defer span.End()

	if err := s.requireOwner(ctx, "delete", id); err != nil {
		return MedicalRecord{}, err
	}

	start := time.Now()
	deleted, err := s.store.Delete(ctx, id)
	s.metrics.ObserveStoreLatency("delete", time.Since(start))
	if err != nil {
		return MedicalRecord{}, s.storeFailure(ctx, "delete", "delete medical record failed", err)
	}

	s.guard.Invalidate(ctx, id)
	s.metrics.IncrementOperation("delete", "ok")
	s.emit(ctx, "delete", id)
	return s.transformer.ToWire(deleted), nil
}

func (s *Service) validate(ctx context.Context, operation string, input RecordInput) error {
	result := Validate(input, requestcontext.Now(ctx))
	if result.OK {
		return nil
	}
	for _, fe := range result.Errors {
		s.metrics.IncrementValidationFailure(fe.Field)
	}
	s.metrics.IncrementOperation(operation, "invalid")
	return ValidationError{Result: result}
}

func (s *Service) requireOwner(ctx context.Context, operation, id string) error {
	// Garbage ids can't match any stored record; treat them as absent
	// rather than letting the store reject the key format.
	if uuid.Validate(id) != nil {
		s.metrics.IncrementOperation(operation, "denied")
		return dErrors.New(dErrors.CodeNotFound, "medical record not found")
	}

	subjectID := requestcontext.SubjectID(ctx)
	if err := s.guard.Require(ctx, id, subjectID); err != nil {
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			s.metrics.IncrementOperation(operation, "denied")
			return dErrors.New(dErrors.CodeNotFound, "medical record not found")
		case errors.Is(err, sentinel.ErrForbidden):
			s.metrics.IncrementOperation(operation, "denied")
			return dErrors.New(dErrors.CodeForbidden, "medical record belongs to another user")
		default:
			s.metrics.IncrementOperation(operation, "error")
			return dErrors.Wrap(dErrors.CodeInternal, "ownership check failed", err)
		}
	}
	return nil
}

func (s *Service) storeFailure(ctx context.Context, operation, message string, err error) error {
	// The guard already proved the record existed; a NotFound here means it
	// vanished between the check and the call.
	if errors.Is(err, sentinel.ErrNotFound) {
		s.metrics.IncrementOperation(operation, "denied")
		return dErrors.New(dErrors.CodeNotFound, "medical record not found")
	}
	s.metrics.IncrementOperation(operation, "error")
	s.log.ErrorContext(ctx, message, "error", err)
	return dErrors.Wrap(dErrors.CodeInternal, message, err)
}

// fromInput builds the wire record from a validated submission. Gate-false
// lists are dropped here and again in the transformer.
func (s *Service) fromInput(input RecordInput, ownerID string) MedicalRecord {
	rec := MedicalRecord{
		OwnerID:     ownerID,
		PhoneNumber: input.PhoneNumber,
		DateOfBirth: input.DateOfBirth,
		Address:     input.Address,
	}
	if input.DiseaseFlag != nil && *input.DiseaseFlag {
		rec.DiseaseFlag = true
		rec.Diseases = input.Diseases
	}
	if input.MedicationFlag != nil && *input.MedicationFlag {
		rec.MedicationFlag = true
		rec.Medications = input.Medications
	}
	if input.SurgeryFlag != nil && *input.SurgeryFlag {
		rec.SurgeryFlag = true
		rec.Surgeries = input.Surgeries
	}
	return rec
}

func (s *Service) emit(ctx context.Context, action, recordID string) {
	if s.auditor == nil {
		return
	}
	s.auditor.Emit(ctx, audit.Event{
		SubjectID: requestcontext.SubjectID(ctx),
		Action:    action,
		RecordID:  recordID,
		ClientIP:  requestcontext.ClientIP(ctx),
		Device:    requestcontext.DeviceName(ctx),
		RequestID: requestcontext.RequestID(ctx),
	})
}
