package sqlite

import (
	"context"
	"fmt"

	"github.com/sakif/alumni-search/internal/model"
	"github.com/sakif/alumni-search/internal/repository"
)

// COMPILE-TIME INTERFACE CHECK:
// If *DB stops satisfying repository.AlumniRepository the build fails here,
// not at the place where the server wires it in.
var _ repository.AlumniRepository = (*DB)(nil)

// Load returns the whole collection in position order.
// An empty table is an empty (non-nil) slice.
func (db *DB) Load(ctx context.Context) ([]model.Alumni, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, department, year, email, phone, address, job, company, cgpa
		 FROM alumni
		 ORDER BY position`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: loading alumni: %w", err)
	}
	defer rows.Close()

	list := make([]model.Alumni, 0)
	for rows.Next() {
		var a model.Alumni
		if err := rows.Scan(
			&a.ID, &a.Name, &a.Department, &a.Year, &a.Email,
			&a.Phone, &a.Address, &a.Job, &a.Company, &a.CGPA,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning alumni row: %w", err)
		}
		list = append(list, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating alumni: %w", err)
	}

	return list, nil
}

// Save replaces the whole collection in one transaction.
//
// TRANSACTIONS:
// BeginTx opens a transaction; nothing is visible to other readers until
// Commit. The deferred Rollback is a no-op after a successful Commit, and
// undoes the DELETE if any INSERT fails, so a failed Save leaves the old
// collection intact.
func (db *DB) Save(ctx context.Context, list []model.Alumni) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM alumni`); err != nil {
		return fmt.Errorf("sqlite: clearing alumni: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO alumni (position, id, name, department, year, email, phone, address, job, company, cgpa)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("sqlite: preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, a := range list {
		if _, err := stmt.ExecContext(ctx,
			i, a.ID, a.Name, a.Department, a.Year, a.Email,
			a.Phone, a.Address, a.Job, a.Company, a.CGPA,
		); err != nil {
			return fmt.Errorf("sqlite: inserting alumni at position %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing save: %w", err)
	}
	return nil
}
