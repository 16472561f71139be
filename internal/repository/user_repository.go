package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/twitter-api/internal/database"
	"github.com/iliyamo/twitter-api/internal/model"
)

const userColumns = "user_id, username, first_name, last_name, email, birth_date, hashed_password, created_at"

// UserRepo runs queries against the users table.
type UserRepo struct {
	db database.DBTX
}

func NewUserRepo(db database.DBTX) *UserRepo { return &UserRepo{db: db} }

// WithDB returns a copy of the repo bound to db, typically a transaction.
func (r *UserRepo) WithDB(db database.DBTX) *UserRepo { return &UserRepo{db: db} }

// Create inserts u as is; the caller assigns UserID and CreatedAt.  A taken
// username or email comes back as a *DuplicateError.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	q := r.db.Rebind(`INSERT INTO users (` + userColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, q,
		u.UserID, u.Username, u.FirstName, u.LastName, u.Email, u.BirthDate, u.PasswordHash, u.CreatedAt)
	return uniqueViolation(err)
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.getBy(ctx, "user_id", id)
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getBy(ctx, "username", username)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getBy(ctx, "email", email)
}

// getBy loads one user by a unique column.  column is never user input.
func (r *UserRepo) getBy(ctx context.Context, column, value string) (*model.User, error) {
	var u model.User
	q := r.db.Rebind(`SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = ?`)
	if err := r.db.GetContext(ctx, &u, q, value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// List returns users oldest first, skipping page.Skip rows and returning at
// most page.Limit.
func (r *UserRepo) List(ctx context.Context, page model.Page) ([]model.User, error) {
	users := []model.User{}
	if page.Limit == 0 {
		return users, nil
	}
	q := r.db.Rebind(`SELECT ` + userColumns + ` FROM users ORDER BY created_at, user_id LIMIT ? OFFSET ?`)
	if err := r.db.SelectContext(ctx, &users, q, page.Limit, page.Skip); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUsername renames the user.  ErrUserNotFound when id matches no row.
func (r *UserRepo) UpdateUsername(ctx context.Context, id, username string) error {
	q := r.db.Rebind(`UPDATE users SET username = ? WHERE user_id = ?`)
	res, err := r.db.ExecContext(ctx, q, username, id)
	if err != nil {
		return uniqueViolation(err)
	}
	return expectRow(res, ErrUserNotFound)
}

// Delete removes the user row.  Tweets go with it through the foreign key,
// but the service deletes them explicitly as well so the outcome does not
// depend on the store enforcing cascades.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	q := r.db.Rebind(`DELETE FROM users WHERE user_id = ?`)
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	return expectRow(res, ErrUserNotFound)
}

// expectRow returns notFound when res affected no rows.
func expectRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
