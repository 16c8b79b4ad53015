package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"leavedesk/internal/leave/models"
	"leavedesk/pkg/platform/sentinel"
)

// PostgresLeaveStore persists leave requests in the leave_requests table.
// Owner names come from an explicit join against users.
type PostgresLeaveStore struct {
	db *sql.DB
}

func NewPostgresLeaveStore(db *sql.DB) *PostgresLeaveStore {
	return &PostgresLeaveStore{db: db}
}

const selectWithOwner = `
	SELECT l.id, l.user_id, u.name, l.start_date, l.end_date, l.reason, l.status, l.created_at
	FROM leave_requests l
	JOIN users u ON u.id = l.user_id
`

func (s *PostgresLeaveStore) Create(ctx context.Context, leave models.LeaveRequest) error {
	const query = `
		INSERT INTO leave_requests (id, user_id, start_date, end_date, reason, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		leave.ID, leave.UserID, leave.StartDate, leave.EndDate, leave.Reason, string(leave.Status), leave.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert leave request: %w", err)
	}
	return nil
}

func (s *PostgresLeaveStore) FindByID(ctx context.Context, id uuid.UUID) (models.WithOwner, error) {
	row := s.db.QueryRowContext(ctx, selectWithOwner+` WHERE l.id = $1`, id)
	record, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.WithOwner{}, sentinel.ErrNotFound
		}
		return models.WithOwner{}, fmt.Errorf("find leave request: %w", err)
	}
	return record, nil
}

func (s *PostgresLeaveStore) ListAll(ctx context.Context) ([]models.WithOwner, error) {
	rows, err := s.db.QueryContext(ctx, selectWithOwner+` ORDER BY l.created_at, l.id`)
	if err != nil {
		return nil, fmt.Errorf("list leave requests: %w", err)
	}
	return collectRecords(rows)
}

func (s *PostgresLeaveStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.WithOwner, error) {
	rows, err := s.db.QueryContext(ctx, selectWithOwner+` WHERE l.user_id = $1 ORDER BY l.created_at, l.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list leave requests by user: %w", err)
	}
	return collectRecords(rows)
}

// Decide applies the status only while the request is still pending; the WHERE
// clause makes validate-then-mutate a single atomic statement.
func (s *PostgresLeaveStore) Decide(ctx context.Context, id uuid.UUID, status models.Status) (models.WithOwner, error) {
	const query = `
		UPDATE leave_requests SET status = $2
		WHERE id = $1 AND status = 'pending'
	`
	res, err := s.db.ExecContext(ctx, query, id, string(status))
	if err != nil {
		return models.WithOwner{}, fmt.Errorf("update leave status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.WithOwner{}, fmt.Errorf("update leave status: %w", err)
	}
	if affected == 0 {
		// Distinguish a missing request from one that is already decided.
		if _, err := s.FindByID(ctx, id); err != nil {
			return models.WithOwner{}, err
		}
		return models.WithOwner{}, sentinel.ErrInvalidState
	}
	return s.FindByID(ctx, id)
}

func scanRecord(row *sql.Row) (models.WithOwner, error) {
	var record models.WithOwner
	var status string
	err := row.Scan(&record.ID, &record.UserID, &record.OwnerName,
		&record.StartDate, &record.EndDate, &record.Reason, &status, &record.CreatedAt)
	if err != nil {
		return models.WithOwner{}, err
	}
	record.Status = models.Status(status)
	return record, nil
}

func collectRecords(rows *sql.Rows) ([]models.WithOwner, error) {
	defer rows.Close()
	records := make([]models.WithOwner, 0)
	for rows.Next() {
		var record models.WithOwner
		var status string
		err := rows.Scan(&record.ID, &record.UserID, &record.OwnerName,
			&record.StartDate, &record.EndDate, &record.Reason, &status, &record.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan leave request: %w", err)
		}
		record.Status = models.Status(status)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leave requests: %w", err)
	}
	return records, nil
}
