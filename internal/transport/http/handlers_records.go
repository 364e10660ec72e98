package httptransport

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/elsaedy55/Revo-backend/internal/record"
	dErrors "github.com/elsaedy55/Revo-backend/pkg/domain-errors"
)

//go:generate mockgen -source=handlers_records.go -destination=mocks/record_mocks.go -package=mocks RecordService

// RecordService is the medical-history surface the record handler delegates
// to. Ownership and validation happen inside the service, in that order.
type RecordService interface {
	Create(ctx context.Context, input record.RecordInput) (record.MedicalRecord, error)
	List(ctx context.Context) ([]record.MedicalRecord, error)
	Get(ctx context.Context, id string) (record.MedicalRecord, error)
	Update(ctx context.Context, id string, input record.RecordInput) (record.MedicalRecord, error)
	Delete(ctx context.Context, id string) (record.MedicalRecord, error)
}

type RecordHandler struct {
	records RecordService
	devMode bool
}

func NewRecordHandler(records RecordService, devMode bool) *RecordHandler {
	return &RecordHandler{records: records, devMode: devMode}
}

func (h *RecordHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var input record.RecordInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeServiceError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"), h.devMode)
		return
	}

	created, err := h.records.Create(r.Context(), input)
	if err != nil {
		writeServiceError(w, err, h.devMode)
		return
	}

	writeSuccess(w, http.StatusCreated, "medical record saved", created)
}

func (h *RecordHandler) handleList(w http.ResponseWriter, r *http.Request) {
	records, err := h.records.List(r.Context())
	if err != nil {
		writeServiceError(w, err, h.devMode)
		return
	}

	if records == nil {
		records = []record.MedicalRecord{}
	}
	writeSuccess(w, http.StatusOK, "", records)
}

func (h *RecordHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := h.records.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, h.devMode)
		return
	}

	writeSuccess(w, http.StatusOK, "", rec)
}

func (h *RecordHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var input record.RecordInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeServiceError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"), h.devMode)
		return
	}

	updated, err := h.records.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeServiceError(w, err, h.devMode)
		return
	}

	writeSuccess(w, http.StatusOK, "medical record updated", updated)
}

func (h *RecordHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.records.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, h.devMode)
		return
	}

	writeSuccess(w, http.StatusOK, "medical record deleted", deleted)
}
