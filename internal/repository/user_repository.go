package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/jiahongggg/Skyworld-UserAPI/internal/model"
	"github.com/jiahongggg/Skyworld-UserAPI/internal/utils"
)

const userColumns = "UserUUID, Username, Password, Role, RefreshToken, Remark, CreatedBy, DateCreated, ModifiedBy, DateModified, Deleted"

// UserRepo persists application users. The RefreshToken column holds the
// single currently active refresh JWT per user; any token that no longer
// equals the stored value is stale, even if its signature still verifies.
type UserRepo struct{ DB DBTX }

func NewUserRepo(db DBTX) *UserRepo { return &UserRepo{DB: db} }

// Create hashes the password and inserts the user row.
func (r *UserRepo) Create(ctx context.Context, u *model.User, plainPassword string, cost int) error {
	u.Username = strings.TrimSpace(u.Username)
	hash, err := utils.HashPassword(plainPassword, cost)
	if err != nil {
		return err
	}
	u.Password = hash
	_, err = r.DB.ExecContext(ctx,
		"INSERT INTO users ("+userColumns+") VALUES (?,?,?,?,?,?,?,?,?,?,?)",
		u.UserUUID, u.Username, u.Password, u.Role, u.RefreshToken, u.Remark,
		u.CreatedBy, u.DateCreated, u.ModifiedBy, u.DateModified, u.Deleted)
	if isDuplicate(err) {
		return ErrConflict
	}
	return err
}

func (r *UserRepo) scanOne(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.UserUUID, &u.Username, &u.Password, &u.Role, &u.RefreshToken, &u.Remark,
		&u.CreatedBy, &u.DateCreated, &u.ModifiedBy, &u.DateModified, &u.Deleted)
	if err == sql.ErrNoRows {
		return u, ErrNotFound
	}
	return u, err
}

// GetByUsername fetches an active user by username. Soft-deleted users
// cannot authenticate.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE Username = ? AND Deleted = 0 LIMIT 1",
		strings.TrimSpace(username)))
}

// GetByID fetches an active user by UUID.
func (r *UserRepo) GetByID(ctx context.Context, userUUID string) (model.User, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE UserUUID = ? AND Deleted = 0 LIMIT 1", userUUID))
}

// UpdateRefreshToken stores the newly issued refresh token, superseding any
// prior one. Pass nil to revoke (logout).
func (r *UserRepo) UpdateRefreshToken(ctx context.Context, userUUID string, token *string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET RefreshToken = ? WHERE UserUUID = ? AND Deleted = 0", token, userUUID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// UserFilterable and UserSortable whitelist list-query fields.
var (
	UserFilterable = map[string]string{
		"Role": "Role",
	}
	UserSortable = map[string]string{
		"Username":    "Username",
		"DateCreated": "DateCreated",
	}
)

// userUpdatable whitelists the columns a user update may touch.
var userUpdatable = map[string]bool{
	"Username": true,
	"Password": true,
	"Role":     true,
	"Remark":   true,
}

// Update applies a partial column update. cols keys are matched against the
// whitelist; anything else is ignored. Password values must arrive already
// hashed.
func (r *UserRepo) Update(ctx context.Context, userUUID string, cols map[string]any, actor string) error {
	set, args := buildSet(cols, userUpdatable, actor)
	if set == "" {
		return ErrEmptyUpdate
	}
	args = append(args, userUUID)
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET "+set+" WHERE UserUUID = ? AND Deleted = 0", args...)
	if isDuplicate(err) {
		return ErrConflict
	}
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SoftDelete flags the user as deleted and clears the refresh token so the
// session dies with the account.
func (r *UserRepo) SoftDelete(ctx context.Context, userUUID, actor string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET Deleted = 1, RefreshToken = NULL, ModifiedBy = ?, DateModified = ? WHERE UserUUID = ? AND Deleted = 0",
		actor, time.Now().UTC(), userUUID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns a page of active users.
func (r *UserRepo) List(ctx context.Context, q ListQuery) ([]model.User, error) {
	tail, args := q.clauses()
	rows, err := r.DB.QueryContext(ctx, "SELECT "+userColumns+" FROM users"+tail, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.User, 0, q.PageSize)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.UserUUID, &u.Username, &u.Password, &u.Role, &u.RefreshToken, &u.Remark,
			&u.CreatedBy, &u.DateCreated, &u.ModifiedBy, &u.DateModified, &u.Deleted); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
