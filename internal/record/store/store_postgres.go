package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/elsaedy55/Revo-backend/internal/record"
	"github.com/elsaedy55/Revo-backend/pkg/platform/sentinel"
)

// Schema is the medical_history table in its parallel-array form. Kept here
// so migrations and integration tests share one definition.
const Schema = `
CREATE TABLE IF NOT EXISTS medical_history (
    id                     UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    owner_id               TEXT NOT NULL,
    phone_number           TEXT NOT NULL,
    date_of_birth          TEXT NOT NULL,
    address                TEXT NOT NULL,
    has_diseases           BOOLEAN NOT NULL DEFAULT FALSE,
    diseases               TEXT[] NOT NULL DEFAULT '{}',
    disease_start_dates    TEXT[] NOT NULL DEFAULT '{}',
    takes_medications      BOOLEAN NOT NULL DEFAULT FALSE,
    medications            TEXT[] NOT NULL DEFAULT '{}',
    medication_start_dates TEXT[] NOT NULL DEFAULT '{}',
    had_surgeries          BOOLEAN NOT NULL DEFAULT FALSE,
    surgeries              TEXT[] NOT NULL DEFAULT '{}',
    surgery_dates          TEXT[] NOT NULL DEFAULT '{}',
    created_at             TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at             TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS medical_history_owner_idx ON medical_history (owner_id);
`

const rowColumns = `id, owner_id, phone_number, date_of_birth, address,
	has_diseases, diseases, disease_start_dates,
	takes_medications, medications, medication_start_dates,
	had_surgeries, surgeries, surgery_dates,
	created_at, updated_at`

// PostgresStore persists storage rows in PostgreSQL through a pgx pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Create(ctx context.Context, row record.StorageRow) (record.StorageRow, error) {
	query := `
		INSERT INTO medical_history (
			owner_id, phone_number, date_of_birth, address,
			has_diseases, diseases, disease_start_dates,
			takes_medications, medications, medication_start_dates,
			had_surgeries, surgeries, surgery_dates
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + rowColumns

	created, err := scanRow(s.pool.QueryRow(ctx, query,
		row.OwnerID, row.PhoneNumber, row.DateOfBirth, row.Address,
		row.HasDiseases, row.DiseaseNames, row.DiseaseDates,
		row.TakesMedications, row.MedicationNames, row.MedicationDates,
		row.HadSurgeries, row.SurgeryNames, row.SurgeryDates,
	))
	if err != nil {
		return record.StorageRow{}, fmt.Errorf("create medical record: %w", err)
	}
	return created, nil
}

func (s *PostgresStore) Update(ctx context.Context, id string, row record.StorageRow) (record.StorageRow, error) {
	query := `
		UPDATE medical_history SET
			phone_number = $1, date_of_birth = $2, address = $3,
			has_diseases = $4, diseases = $5, disease_start_dates = $6,
			takes_medications = $7, medications = $8, medication_start_dates = $9,
			had_surgeries = $10, surgeries = $11, surgery_dates = $12,
			updated_at = NOW()
		WHERE id = $13
		RETURNING ` + rowColumns

	updated, err := scanRow(s.pool.QueryRow(ctx, query,
		row.PhoneNumber, row.DateOfBirth, row.Address,
		row.HasDiseases, row.DiseaseNames, row.DiseaseDates,
		row.TakesMedications, row.MedicationNames, row.MedicationDates,
		row.HadSurgeries, row.SurgeryNames, row.SurgeryDates,
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return record.StorageRow{}, sentinel.ErrNotFound
		}
		return record.StorageRow{}, fmt.Errorf("update medical record: %w", err)
	}
	return updated, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) (record.StorageRow, error) {
	query := `DELETE FROM medical_history WHERE id = $1 RETURNING ` + rowColumns

	deleted, err := scanRow(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return record.StorageRow{}, sentinel.ErrNotFound
		}
		return record.StorageRow{}, fmt.Errorf("delete medical record: %w", err)
	}
	return deleted, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (record.StorageRow, error) {
	query := `SELECT ` + rowColumns + ` FROM medical_history WHERE id = $1`

	row, err := scanRow(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return record.StorageRow{}, sentinel.ErrNotFound
		}
		return record.StorageRow{}, fmt.Errorf("find medical record: %w", err)
	}
	return row, nil
}

func (s *PostgresStore) FindByOwner(ctx context.Context, ownerID string) ([]record.StorageRow, error) {
	query := `SELECT ` + rowColumns + ` FROM medical_history WHERE owner_id = $1 ORDER BY created_at`

	rows, err := s.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list medical records by owner: %w", err)
	}
	defer rows.Close()

	var out []record.StorageRow
	for rows.Next() {
		row, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan medical record: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list medical records by owner: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) GetOwner(ctx context.Context, id string) (string, error) {
	var ownerID string
	err := s.pool.QueryRow(ctx, `SELECT owner_id FROM medical_history WHERE id = $1`, id).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", sentinel.ErrNotFound
		}
		return "", fmt.Errorf("get medical record owner: %w", err)
	}
	return ownerID, nil
}

func scanRow(row pgx.Row) (record.StorageRow, error) {
	var r record.StorageRow
	err := row.Scan(
		&r.ID, &r.OwnerID, &r.PhoneNumber, &r.DateOfBirth, &r.Address,
		&r.HasDiseases, &r.DiseaseNames, &r.DiseaseDates,
		&r.TakesMedications, &r.MedicationNames, &r.MedicationDates,
		&r.HadSurgeries, &r.SurgeryNames, &r.SurgeryDates,
		&r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}
