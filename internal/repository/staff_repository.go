package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/staff-directory/internal/domain"
)

// StaffRepository handles persistence for staff records.
type StaffRepository interface {
	RosterSource
	Replace(ctx context.Context, records []domain.StaffRecord) error
	Count(ctx context.Context) (int, error)
}

type staffRepository struct {
	pool *pgxpool.Pool
}

// NewStaffRepository instantiates the repository.
func NewStaffRepository(pool *pgxpool.Pool) StaffRepository {
	return &staffRepository{pool: pool}
}

func (r *staffRepository) List(ctx context.Context) ([]domain.StaffRecord, error) {
	const query = `
        SELECT name, position, school, department, email, phone, office, photo
        FROM staff_records
        ORDER BY sort_order, id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list staff records: %w", err)
	}
	defer rows.Close()

	var result []domain.StaffRecord
	for rows.Next() {
		var rec domain.StaffRecord
		if err := rows.Scan(
			&rec.Name,
			&rec.Position,
			&rec.School,
			&rec.Department,
			&rec.Email,
			&rec.Phone,
			&rec.Office,
			&rec.Photo,
		); err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

// Replace swaps the stored roster for records, keeping their order.
func (r *staffRepository) Replace(ctx context.Context, records []domain.StaffRecord) error {
	const insert = `
        INSERT INTO staff_records (name, position, school, department, email, phone, office, photo, sort_order)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM staff_records`); err != nil {
		return fmt.Errorf("clear staff records: %w", err)
	}

	batch := &pgx.Batch{}
	for i, rec := range records {
		batch.Queue(insert,
			rec.Name,
			rec.Position,
			rec.School,
			rec.Department,
			rec.Email,
			rec.Phone,
			rec.Office,
			rec.Photo,
			i,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert staff records: %w", err)
	}
	return tx.Commit(ctx)
}

// Count returns the number of stored records.
func (r *staffRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM staff_records`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
