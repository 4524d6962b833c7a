package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jiahongggg/Skyworld-UserAPI/internal/model"
)

const emergencyColumns = "EmergencyID, EmergencyName, EmergencyContactNo, EmergencyEmail, Remark, " +
	"CreatedBy, DateCreated, ModifiedBy, DateModified, Deleted"

var emergencyUpdatable = map[string]bool{
	"EmergencyName": true, "EmergencyContactNo": true, "EmergencyEmail": true, "Remark": true,
}

// EmergencyRepo persists customer emergency contacts.
type EmergencyRepo struct{ DB DBTX }

func NewEmergencyRepo(db DBTX) *EmergencyRepo { return &EmergencyRepo{DB: db} }

func (r *EmergencyRepo) Create(ctx context.Context, e *model.EmergencyContact) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO customer_emergency (EmergencyName, EmergencyContactNo, EmergencyEmail, Remark, CreatedBy, DateCreated, ModifiedBy, DateModified, Deleted) VALUES (?,?,?,?,?,?,?,?,?)",
		e.EmergencyName, e.EmergencyContactNo, e.EmergencyEmail, e.Remark,
		e.CreatedBy, e.DateCreated, e.ModifiedBy, e.DateModified, e.Deleted)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *EmergencyRepo) Get(ctx context.Context, emergencyID int64) (model.EmergencyContact, error) {
	var e model.EmergencyContact
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+emergencyColumns+" FROM customer_emergency WHERE EmergencyID = ? AND Deleted = 0 LIMIT 1",
		emergencyID).
		Scan(&e.EmergencyID, &e.EmergencyName, &e.EmergencyContactNo, &e.EmergencyEmail, &e.Remark,
			&e.CreatedBy, &e.DateCreated, &e.ModifiedBy, &e.DateModified, &e.Deleted)
	if err == sql.ErrNoRows {
		return e, ErrNotFound
	}
	return e, err
}

func (r *EmergencyRepo) Update(ctx context.Context, emergencyID int64, cols map[string]any, actor string) error {
	set, args := buildSet(cols, emergencyUpdatable, actor)
	if set == "" {
		return ErrEmptyUpdate
	}
	args = append(args, emergencyID)
	res, err := r.DB.ExecContext(ctx,
		"UPDATE customer_emergency SET "+set+" WHERE EmergencyID = ? AND Deleted = 0", args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *EmergencyRepo) List(ctx context.Context, q ListQuery) ([]model.EmergencyContact, error) {
	tail, args := q.clauses()
	rows, err := r.DB.QueryContext(ctx, "SELECT "+emergencyColumns+" FROM customer_emergency"+tail, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.EmergencyContact, 0, q.PageSize)
	for rows.Next() {
		var e model.EmergencyContact
		if err := rows.Scan(&e.EmergencyID, &e.EmergencyName, &e.EmergencyContactNo, &e.EmergencyEmail, &e.Remark,
			&e.CreatedBy, &e.DateCreated, &e.ModifiedBy, &e.DateModified, &e.Deleted); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *EmergencyRepo) SoftDelete(ctx context.Context, emergencyID int64, actor string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE customer_emergency SET Deleted = 1, ModifiedBy = ?, DateModified = ? WHERE EmergencyID = ? AND Deleted = 0",
		actor, time.Now().UTC(), emergencyID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
