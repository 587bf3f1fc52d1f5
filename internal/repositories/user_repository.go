package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"leave-manager/internal/models"
)

// UserRepositoryInterface defines storage operations on users
type UserRepositoryInterface interface {
	List(ctx context.Context) ([]models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) (*models.User, error)
}

// UserRepository implements UserRepositoryInterface on database/sql
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const selectUser = `SELECT id, email, password, name, role FROM users`

func scanUser(row rowScanner) (*models.User, error) {
	user := &models.User{}
	if err := row.Scan(&user.ID, &user.Email, &user.Password, &user.Name, &user.Role); err != nil {
		return nil, err
	}
	return user, nil
}

// List returns all users in storage order.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, selectUser+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}
	return users, nil
}

// FindByID returns ErrNotFound when no user has the given id.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return findUser(ctx, r.db, id)
}

func findUser(ctx context.Context, q querier, id int64) (*models.User, error) {
	user, err := scanUser(q.QueryRowContext(ctx, selectUser+` WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading user %d: %w", id, err)
	}
	return user, nil
}

// Create inserts the user and fills in its ID.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO users (email, password, name, role) VALUES (?, ?, ?, ?)`,
			user.Email, user.Password, user.Name, user.Role)
		if err != nil {
			return userWriteError(err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("reading new user id: %w", err)
		}
		user.ID = id
		log.Printf("[Repo CreateUser] created user %d", id)
		return nil
	})
}

// Update overwrites every column of an existing user.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := findUser(ctx, tx, user.ID); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`UPDATE users SET email = ?, password = ?, name = ?, role = ? WHERE id = ?`,
			user.Email, user.Password, user.Name, user.Role, user.ID)
		if err != nil {
			return userWriteError(err)
		}
		return nil
	})
}

// Delete removes a user and returns the deleted row. Users that still own
// leave applications are not deleted (ErrUserHasLeaves).
func (r *UserRepository) Delete(ctx context.Context, id int64) (*models.User, error) {
	var deleted *models.User
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		user, err := findUser(ctx, tx, id)
		if err != nil {
			return err
		}

		var leaves int
		if err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM leave_applications WHERE user_id = ?`, id).Scan(&leaves); err != nil {
			return fmt.Errorf("counting leave applications of user %d: %w", id, err)
		}
		if leaves > 0 {
			return ErrUserHasLeaves
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id); err != nil {
			if classify(err) == violationForeignKey {
				return ErrUserHasLeaves
			}
			return fmt.Errorf("deleting user %d: %w", id, err)
		}
		deleted = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[Repo DeleteUser] deleted user %d", id)
	return deleted, nil
}

func userWriteError(err error) error {
	switch classify(err) {
	case violationUnique:
		return ErrDuplicateEmail
	case violationCheck:
		return ErrInvalidRole
	}
	return fmt.Errorf("writing user: %w", err)
}
