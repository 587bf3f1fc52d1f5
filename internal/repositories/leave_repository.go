package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"leave-manager/internal/models"
)

// LeaveRepositoryInterface defines storage operations on leave applications
type LeaveRepositoryInterface interface {
	List(ctx context.Context, filter models.LeaveFilter) ([]models.LeaveApplication, error)
	FindByID(ctx context.Context, id int64) (*models.LeaveApplication, error)
	Create(ctx context.Context, leave *models.LeaveApplication) error
	Update(ctx context.Context, leave *models.LeaveApplication) error
	Delete(ctx context.Context, id int64) (*models.LeaveApplication, error)
}

// LeaveRepository implements LeaveRepositoryInterface on database/sql
type LeaveRepository struct {
	db *sql.DB
}

// NewLeaveRepository creates a new LeaveRepository
func NewLeaveRepository(db *sql.DB) *LeaveRepository {
	return &LeaveRepository{db: db}
}

const selectLeave = `SELECT id, date_from, date_to, reason, status, user_id FROM leave_applications`

func scanLeave(row rowScanner) (*models.LeaveApplication, error) {
	leave := &models.LeaveApplication{}
	err := row.Scan(&leave.ID, &leave.DateFrom, &leave.DateTo, &leave.Reason, &leave.Status, &leave.UserID)
	if err != nil {
		return nil, err
	}
	return leave, nil
}

// List returns leave applications matching the filter in storage order.
func (r *LeaveRepository) List(ctx context.Context, filter models.LeaveFilter) ([]models.LeaveApplication, error) {
	var (
		where []string
		args  []interface{}
	)
	if filter.UserID != 0 {
		where = append(where, "user_id = ?")
		args = append(args, filter.UserID)
	}
	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, filter.Status)
	}

	query := selectLeave
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying leave applications: %w", err)
	}
	defer rows.Close()

	leaves := make([]models.LeaveApplication, 0)
	for rows.Next() {
		leave, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning leave application: %w", err)
		}
		leaves = append(leaves, *leave)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating leave applications: %w", err)
	}
	return leaves, nil
}

// FindByID returns ErrNotFound when no leave application has the given id.
func (r *LeaveRepository) FindByID(ctx context.Context, id int64) (*models.LeaveApplication, error) {
	return findLeave(ctx, r.db, id)
}

func findLeave(ctx context.Context, q querier, id int64) (*models.LeaveApplication, error) {
	leave, err := scanLeave(q.QueryRowContext(ctx, selectLeave+` WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading leave application %d: %w", id, err)
	}
	return leave, nil
}

// Create inserts the leave application and fills in its ID.
// date_from is not checked against date_to.
func (r *LeaveRepository) Create(ctx context.Context, leave *models.LeaveApplication) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO leave_applications (date_from, date_to, reason, status, user_id) VALUES (?, ?, ?, ?, ?)`,
			leave.DateFrom, leave.DateTo, leave.Reason, leave.Status, leave.UserID)
		if err != nil {
			return leaveWriteError(err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("reading new leave application id: %w", err)
		}
		leave.ID = id
		log.Printf("[Repo CreateLeave] created leave application %d for user %d", id, leave.UserID)
		return nil
	})
}

// Update overwrites every column of an existing leave application.
func (r *LeaveRepository) Update(ctx context.Context, leave *models.LeaveApplication) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := findLeave(ctx, tx, leave.ID); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`UPDATE leave_applications SET date_from = ?, date_to = ?, reason = ?, status = ?, user_id = ? WHERE id = ?`,
			leave.DateFrom, leave.DateTo, leave.Reason, leave.Status, leave.UserID, leave.ID)
		if err != nil {
			return leaveWriteError(err)
		}
		return nil
	})
}

// Delete removes a leave application and returns the deleted row.
func (r *LeaveRepository) Delete(ctx context.Context, id int64) (*models.LeaveApplication, error) {
	var deleted *models.LeaveApplication
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		leave, err := findLeave(ctx, tx, id)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM leave_applications WHERE id = ?`, id); err != nil {
			return fmt.Errorf("deleting leave application %d: %w", id, err)
		}
		deleted = leave
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[Repo DeleteLeave] deleted leave application %d", id)
	return deleted, nil
}

func leaveWriteError(err error) error {
	switch classify(err) {
	case violationCheck:
		return ErrInvalidStatus
	case violationForeignKey:
		return ErrUnknownUser
	}
	return fmt.Errorf("writing leave application: %w", err)
}
