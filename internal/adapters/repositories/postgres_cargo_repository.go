package repositories

import (
	"cargo-route-service/internal/domain"
	"cargo-route-service/internal/platform/obs"
	"cargo-route-service/internal/ports"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Postgres-backed implementation of the CargoRepository port.
type PostgresCargoRepository struct{ DB *sql.DB }

func NewPostgresCargoRepository(db *sql.DB) *PostgresCargoRepository {
	return &PostgresCargoRepository{DB: db}
}

const selectCargo = `
	SELECT cargo_id, station_name, weight, quantity, sender_id, sender_name, status, target_date
	FROM cargo
	`

// ListPendingCargo returns the pending cargo scheduled for date, oldest first.
func (r *PostgresCargoRepository) ListPendingCargo(ctx context.Context, date time.Time) (_ []domain.Cargo, err error) {
	defer obs.Time(ctx, "cargo.ListPending")(&err)

	if r.DB == nil {
		return nil, errors.New("postgres cargo repository: DB is nil")
	}

	rows, err := r.DB.QueryContext(ctx, selectCargo+`
	WHERE status = $1 AND target_date = $2::date
	ORDER BY cargo_id;
	`, string(domain.CargoPending), date.Format(time.DateOnly))
	if err != nil {
		return nil, fmt.Errorf("list pending cargo: query cargo table: %w", err)
	}
	defer rows.Close()

	cargo, err := scanCargo(rows)
	if err != nil {
		return nil, fmt.Errorf("list pending cargo: %w", err)
	}
	return cargo, nil
}

func (r *PostgresCargoRepository) ListCargo(ctx context.Context, status domain.CargoStatus) (_ []domain.Cargo, err error) {
	defer obs.Time(ctx, "cargo.List")(&err)

	if r.DB == nil {
		return nil, errors.New("postgres cargo repository: DB is nil")
	}

	var rows *sql.Rows
	if status == "" {
		rows, err = r.DB.QueryContext(ctx, selectCargo+`ORDER BY cargo_id DESC;`)
	} else {
		rows, err = r.DB.QueryContext(ctx, selectCargo+`WHERE status = $1 ORDER BY cargo_id DESC;`, string(status))
	}
	if err != nil {
		return nil, fmt.Errorf("list cargo: query cargo table: %w", err)
	}
	defer rows.Close()

	cargo, err := scanCargo(rows)
	if err != nil {
		return nil, fmt.Errorf("list cargo: %w", err)
	}
	return cargo, nil
}

func (r *PostgresCargoRepository) UpdateStatus(ctx context.Context, cargoID int, status domain.CargoStatus) error {
	if r.DB == nil {
		return errors.New("postgres cargo repository: DB is nil")
	}

	res, err := r.DB.ExecContext(ctx, `UPDATE cargo SET status = $1 WHERE cargo_id = $2;`, string(status), cargoID)
	if err != nil {
		return fmt.Errorf("update cargo status: cargo_id=%d: %w", cargoID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update cargo status: cargo_id=%d: rows affected: %w", cargoID, err)
	}
	if n == 0 {
		return fmt.Errorf("update cargo status: cargo_id=%d: %w", cargoID, ports.ErrNotFound)
	}

	return nil
}

func scanCargo(rows *sql.Rows) ([]domain.Cargo, error) {
	out := make([]domain.Cargo, 0, 64)
	for rows.Next() {
		var (
			c      domain.Cargo
			status string
			target sql.NullTime
		)
		if err := rows.Scan(
			&c.CargoID, &c.StationName, &c.Weight, &c.Quantity,
			&c.SenderID, &c.SenderName, &status, &target,
		); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		c.Status = domain.CargoStatus(status)
		if target.Valid {
			d := target.Time
			c.TargetDate = &d
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration: %w", err)
	}
	return out, nil
}
