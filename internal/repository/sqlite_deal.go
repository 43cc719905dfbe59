package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avelinecarr/dealsense/internal/db"
	"github.com/avelinecarr/dealsense/internal/domain"
)

const dealColumns = `id, name, stage, value, status, risk_score, risk_level,
	last_activity_at, created_at, updated_at, archived_at`

// SQLiteDealRepo implements DealRepo on SQLite. It accepts a db.DBTX so the
// same repository runs against the database or inside a transaction.
type SQLiteDealRepo struct {
	db db.DBTX
}

func NewSQLiteDealRepo(dbtx db.DBTX) *SQLiteDealRepo {
	return &SQLiteDealRepo{db: dbtx}
}

func (r *SQLiteDealRepo) Create(ctx context.Context, d *domain.Deal) error {
	query := `INSERT INTO deals (` + dealColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		d.ID,
		d.Name,
		string(d.Stage),
		d.Value,
		string(d.Status),
		d.RiskScore,
		string(d.RiskLevel),
		fmtTime(d.LastActivityAt),
		fmtTime(d.CreatedAt),
		fmtTime(d.UpdatedAt),
		fmtTimePtr(d.ArchivedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting deal: %w", err)
	}
	return nil
}

func (r *SQLiteDealRepo) GetByID(ctx context.Context, id string) (*domain.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals WHERE id = ?`
	return r.scanDeal(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteDealRepo) GetByPrefix(ctx context.Context, prefix string) (*domain.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals WHERE id LIKE ? || '%' LIMIT 2`
	rows, err := r.db.QueryContext(ctx, query, prefix)
	if err != nil {
		return nil, fmt.Errorf("looking up deal by prefix: %w", err)
	}
	defer rows.Close()

	var deals []*domain.Deal
	for rows.Next() {
		d, err := r.scanDealFromRows(rows)
		if err != nil {
			return nil, err
		}
		deals = append(deals, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating deals: %w", err)
	}
	switch len(deals) {
	case 0:
		return nil, fmt.Errorf("deal %q: %w", prefix, ErrNotFound)
	case 1:
		return deals[0], nil
	default:
		return nil, fmt.Errorf("deal prefix %q is ambiguous", prefix)
	}
}

func (r *SQLiteDealRepo) List(ctx context.Context, includeArchived bool) ([]*domain.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals`
	if !includeArchived {
		query += ` WHERE archived_at IS NULL`
	}
	query += ` ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing deals: %w", err)
	}
	defer rows.Close()

	var deals []*domain.Deal
	for rows.Next() {
		d, err := r.scanDealFromRows(rows)
		if err != nil {
			return nil, err
		}
		deals = append(deals, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating deals: %w", err)
	}
	return deals, nil
}

func (r *SQLiteDealRepo) Update(ctx context.Context, d *domain.Deal) error {
	query := `UPDATE deals SET name = ?, stage = ?, value = ?, status = ?,
		risk_score = ?, risk_level = ?, last_activity_at = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		d.Name,
		string(d.Stage),
		d.Value,
		string(d.Status),
		d.RiskScore,
		string(d.RiskLevel),
		fmtTime(d.LastActivityAt),
		fmtTime(d.UpdatedAt),
		d.ID,
	)
	if err != nil {
		return fmt.Errorf("updating deal: %w", err)
	}
	return requireRow(res, d.ID)
}

func (r *SQLiteDealRepo) UpdateSignalCache(ctx context.Context, d *domain.Deal) error {
	query := `UPDATE deals SET status = ?, risk_score = ?, risk_level = ?,
		last_activity_at = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		string(d.Status),
		d.RiskScore,
		string(d.RiskLevel),
		fmtTime(d.LastActivityAt),
		fmtTime(d.UpdatedAt),
		d.ID,
	)
	if err != nil {
		return fmt.Errorf("updating deal signal cache: %w", err)
	}
	return requireRow(res, d.ID)
}

func (r *SQLiteDealRepo) Archive(ctx context.Context, id string) error {
	now := fmtTime(time.Now())
	res, err := r.db.ExecContext(ctx,
		`UPDATE deals SET archived_at = ?, updated_at = ? WHERE id = ?`, now, now, id)
	if err != nil {
		return fmt.Errorf("archiving deal: %w", err)
	}
	return requireRow(res, id)
}

func (r *SQLiteDealRepo) Unarchive(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE deals SET archived_at = NULL, updated_at = ? WHERE id = ?`, fmtTime(time.Now()), id)
	if err != nil {
		return fmt.Errorf("unarchiving deal: %w", err)
	}
	return requireRow(res, id)
}

func (r *SQLiteDealRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM deals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting deal: %w", err)
	}
	return nil
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("deal %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteDealRepo) scanDeal(row *sql.Row) (*domain.Deal, error) {
	var d domain.Deal
	var stageStr, statusStr, levelStr string
	var lastActivityStr, createdStr, updatedStr string
	var archivedStr sql.NullString

	err := row.Scan(
		&d.ID, &d.Name, &stageStr, &d.Value, &statusStr,
		&d.RiskScore, &levelStr,
		&lastActivityStr, &createdStr, &updatedStr, &archivedStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("deal: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning deal: %w", err)
	}
	return fillDeal(&d, stageStr, statusStr, levelStr, lastActivityStr, createdStr, updatedStr, archivedStr)
}

func (r *SQLiteDealRepo) scanDealFromRows(rows *sql.Rows) (*domain.Deal, error) {
	var d domain.Deal
	var stageStr, statusStr, levelStr string
	var lastActivityStr, createdStr, updatedStr string
	var archivedStr sql.NullString

	err := rows.Scan(
		&d.ID, &d.Name, &stageStr, &d.Value, &statusStr,
		&d.RiskScore, &levelStr,
		&lastActivityStr, &createdStr, &updatedStr, &archivedStr,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning deal: %w", err)
	}
	return fillDeal(&d, stageStr, statusStr, levelStr, lastActivityStr, createdStr, updatedStr, archivedStr)
}

func fillDeal(d *domain.Deal, stage, status, level, lastActivity, created, updated string, archived sql.NullString) (*domain.Deal, error) {
	d.Stage = domain.Stage(stage)
	d.Status = domain.DealStatus(status)
	d.RiskLevel = domain.RiskLevel(level)

	var err error
	if d.LastActivityAt, err = time.Parse(time.RFC3339, lastActivity); err != nil {
		return nil, fmt.Errorf("parsing last_activity_at: %w", err)
	}
	if d.CreatedAt, err = time.Parse(time.RFC3339, created); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if d.UpdatedAt, err = time.Parse(time.RFC3339, updated); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	d.ArchivedAt = parseTimePtr(archived)
	return d, nil
}
