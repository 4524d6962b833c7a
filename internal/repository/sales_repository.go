package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jiahongggg/Skyworld-UserAPI/internal/model"
)

const salesColumns = "SalesAgentID, AgentName, AgentAge, AgentGender, AgentEmail, AgentICPassportNo, " +
	"AgentSalutation, AgentNationality, AgentContactNo, AgentAddress, " +
	"SalesGroupingID, SalesTeamID, SalesTypeID, Remark, " +
	"CreatedBy, DateCreated, ModifiedBy, DateModified, Deleted"

var (
	SalesFilterable = map[string]string{
		"AgentGender": "AgentGender",
		"SalesTeamID": "SalesTeamID",
		"SalesTypeID": "SalesTypeID",
	}
	SalesSortable = map[string]string{
		"AgentName":   "AgentName",
		"DateCreated": "DateCreated",
	}
)

var salesUpdatable = map[string]bool{
	"AgentName": true, "AgentAge": true, "AgentGender": true, "AgentEmail": true,
	"AgentICPassportNo": true, "AgentSalutation": true, "AgentNationality": true,
	"AgentContactNo": true, "AgentAddress": true,
	"SalesGroupingID": true, "SalesTeamID": true, "SalesTypeID": true, "Remark": true,
}

// SalesRepo persists rows of the `sales` table.
type SalesRepo struct{ DB DBTX }

func NewSalesRepo(db DBTX) *SalesRepo { return &SalesRepo{DB: db} }

func (r *SalesRepo) Insert(ctx context.Context, s *model.SalesAgent) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO sales ("+salesColumns+") VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)",
		s.SalesAgentID, s.AgentName, s.AgentAge, s.AgentGender, s.AgentEmail, s.AgentICPassportNo,
		s.AgentSalutation, s.AgentNationality, s.AgentContactNo, s.AgentAddress,
		s.SalesGroupingID, s.SalesTeamID, s.SalesTypeID, s.Remark,
		s.CreatedBy, s.DateCreated, s.ModifiedBy, s.DateModified, s.Deleted)
	if isDuplicate(err) {
		return ErrConflict
	}
	return err
}

func scanSalesAgent(scan func(...any) error) (model.SalesAgent, error) {
	var s model.SalesAgent
	err := scan(&s.SalesAgentID, &s.AgentName, &s.AgentAge, &s.AgentGender, &s.AgentEmail, &s.AgentICPassportNo,
		&s.AgentSalutation, &s.AgentNationality, &s.AgentContactNo, &s.AgentAddress,
		&s.SalesGroupingID, &s.SalesTeamID, &s.SalesTypeID, &s.Remark,
		&s.CreatedBy, &s.DateCreated, &s.ModifiedBy, &s.DateModified, &s.Deleted)
	return s, err
}

func (r *SalesRepo) Get(ctx context.Context, salesAgentID string) (model.SalesAgent, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+salesColumns+" FROM sales WHERE SalesAgentID = ? AND Deleted = 0 LIMIT 1", salesAgentID)
	s, err := scanSalesAgent(row.Scan)
	if err == sql.ErrNoRows {
		return s, ErrNotFound
	}
	return s, err
}

func (r *SalesRepo) Update(ctx context.Context, salesAgentID string, cols map[string]any, actor string) error {
	set, args := buildSet(cols, salesUpdatable, actor)
	if set == "" {
		return ErrEmptyUpdate
	}
	args = append(args, salesAgentID)
	res, err := r.DB.ExecContext(ctx,
		"UPDATE sales SET "+set+" WHERE SalesAgentID = ? AND Deleted = 0", args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SalesRepo) SoftDelete(ctx context.Context, salesAgentID, actor string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE sales SET Deleted = 1, ModifiedBy = ?, DateModified = ? WHERE SalesAgentID = ? AND Deleted = 0",
		actor, time.Now().UTC(), salesAgentID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SalesRepo) List(ctx context.Context, q ListQuery) ([]model.SalesAgent, error) {
	tail, args := q.clauses()
	rows, err := r.DB.QueryContext(ctx, "SELECT "+salesColumns+" FROM sales"+tail, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.SalesAgent, 0, q.PageSize)
	for rows.Next() {
		s, err := scanSalesAgent(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
