package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jiahongggg/Skyworld-UserAPI/internal/model"
)

const leadColumns = "LeadUUID, LeadName, LeadEmail, LeadContactNo, LeadICPassportNo, " +
	"LeadGender, LeadSalutation, LeadOccupation, LeadNationality, LeadAddress, " +
	"LeadStatus, LeadDateOfBirth, LeadIncome, LeadMaritalStatus, LeadRace, " +
	"LeadIsBumi, LeadInterestedType1, LeadInterestedType2, LeadIsExistingBuyer, LeadTag, Remark, " +
	"CreatedBy, DateCreated, ModifiedBy, DateModified, Deleted"

var (
	LeadFilterable = map[string]string{
		"LeadGender": "LeadGender",
		"LeadStatus": "LeadStatus",
		"LeadTag":    "LeadTag",
	}
	LeadSortable = map[string]string{
		"LeadName":    "LeadName",
		"DateCreated": "DateCreated",
	}
)

var leadUpdatable = map[string]bool{
	"LeadName": true, "LeadEmail": true, "LeadContactNo": true, "LeadICPassportNo": true,
	"LeadGender": true, "LeadSalutation": true, "LeadOccupation": true, "LeadNationality": true,
	"LeadAddress": true, "LeadStatus": true, "LeadDateOfBirth": true, "LeadIncome": true,
	"LeadMaritalStatus": true, "LeadRace": true, "LeadIsBumi": true,
	"LeadInterestedType1": true, "LeadInterestedType2": true, "LeadIsExistingBuyer": true,
	"LeadTag": true, "Remark": true,
}

// LeadRepo persists rows of the `leads` table.
type LeadRepo struct{ DB DBTX }

func NewLeadRepo(db DBTX) *LeadRepo { return &LeadRepo{DB: db} }

func (r *LeadRepo) Insert(ctx context.Context, l *model.Lead) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO leads ("+leadColumns+") VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)",
		l.LeadUUID, l.LeadName, l.LeadEmail, l.LeadContactNo, l.LeadICPassportNo,
		l.LeadGender, l.LeadSalutation, l.LeadOccupation, l.LeadNationality, l.LeadAddress,
		l.LeadStatus, l.LeadDateOfBirth, l.LeadIncome, l.LeadMaritalStatus, l.LeadRace,
		l.LeadIsBumi, l.LeadInterestedType1, l.LeadInterestedType2, l.LeadIsExistingBuyer, l.LeadTag, l.Remark,
		l.CreatedBy, l.DateCreated, l.ModifiedBy, l.DateModified, l.Deleted)
	if isDuplicate(err) {
		return ErrConflict
	}
	return err
}

func scanLead(scan func(...any) error) (model.Lead, error) {
	var l model.Lead
	err := scan(&l.LeadUUID, &l.LeadName, &l.LeadEmail, &l.LeadContactNo, &l.LeadICPassportNo,
		&l.LeadGender, &l.LeadSalutation, &l.LeadOccupation, &l.LeadNationality, &l.LeadAddress,
		&l.LeadStatus, &l.LeadDateOfBirth, &l.LeadIncome, &l.LeadMaritalStatus, &l.LeadRace,
		&l.LeadIsBumi, &l.LeadInterestedType1, &l.LeadInterestedType2, &l.LeadIsExistingBuyer, &l.LeadTag, &l.Remark,
		&l.CreatedBy, &l.DateCreated, &l.ModifiedBy, &l.DateModified, &l.Deleted)
	return l, err
}

func (r *LeadRepo) Get(ctx context.Context, leadUUID string) (model.Lead, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+leadColumns+" FROM leads WHERE LeadUUID = ? AND Deleted = 0 LIMIT 1", leadUUID)
	l, err := scanLead(row.Scan)
	if err == sql.ErrNoRows {
		return l, ErrNotFound
	}
	return l, err
}

func (r *LeadRepo) Update(ctx context.Context, leadUUID string, cols map[string]any, actor string) error {
	set, args := buildSet(cols, leadUpdatable, actor)
	if set == "" {
		return ErrEmptyUpdate
	}
	args = append(args, leadUUID)
	res, err := r.DB.ExecContext(ctx,
		"UPDATE leads SET "+set+" WHERE LeadUUID = ? AND Deleted = 0", args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *LeadRepo) SoftDelete(ctx context.Context, leadUUID, actor string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE leads SET Deleted = 1, ModifiedBy = ?, DateModified = ? WHERE LeadUUID = ? AND Deleted = 0",
		actor, time.Now().UTC(), leadUUID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *LeadRepo) List(ctx context.Context, q ListQuery) ([]model.Lead, error) {
	tail, args := q.clauses()
	rows, err := r.DB.QueryContext(ctx, "SELECT "+leadColumns+" FROM leads"+tail, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Lead, 0, q.PageSize)
	for rows.Next() {
		l, err := scanLead(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
