package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jiahongggg/Skyworld-UserAPI/internal/model"
)

const customerColumns = "CustomerUUID, CustomerName, CustomerEmail, CustomerContactNo, CustomerICPassportNo, " +
	"CustomerGender, CustomerSalutation, CustomerOccupation, CustomerNationality, CustomerAddress, " +
	"CustomerStatus, CustomerDateOfBirth, CustomerIncome, CustomerMaritalStatus, CustomerRace, " +
	"CustomerIsBumi, CustomerLanguage, CustomerTag, Remark, " +
	"CreatedBy, DateCreated, ModifiedBy, DateModified, Deleted"

// CustomerFilterable and CustomerSortable whitelist list-query fields.
var (
	CustomerFilterable = map[string]string{
		"CustomerGender": "CustomerGender",
		"CustomerStatus": "CustomerStatus",
		"CustomerRace":   "CustomerRace",
	}
	CustomerSortable = map[string]string{
		"CustomerName": "CustomerName",
		"DateCreated":  "DateCreated",
	}
)

var customerUpdatable = map[string]bool{
	"CustomerName": true, "CustomerEmail": true, "CustomerContactNo": true,
	"CustomerICPassportNo": true, "CustomerGender": true, "CustomerSalutation": true,
	"CustomerOccupation": true, "CustomerNationality": true, "CustomerAddress": true,
	"CustomerStatus": true, "CustomerDateOfBirth": true, "CustomerIncome": true,
	"CustomerMaritalStatus": true, "CustomerRace": true, "CustomerIsBumi": true,
	"CustomerLanguage": true, "CustomerTag": true, "Remark": true,
}

// CustomerRepo persists rows of the `customers` table.
type CustomerRepo struct{ DB DBTX }

func NewCustomerRepo(db DBTX) *CustomerRepo { return &CustomerRepo{DB: db} }

func (r *CustomerRepo) Insert(ctx context.Context, c *model.Customer) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO customers ("+customerColumns+") VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)",
		c.CustomerUUID, c.CustomerName, c.CustomerEmail, c.CustomerContactNo, c.CustomerICPassportNo,
		c.CustomerGender, c.CustomerSalutation, c.CustomerOccupation, c.CustomerNationality, c.CustomerAddress,
		c.CustomerStatus, c.CustomerDateOfBirth, c.CustomerIncome, c.CustomerMaritalStatus, c.CustomerRace,
		c.CustomerIsBumi, c.CustomerLanguage, c.CustomerTag, c.Remark,
		c.CreatedBy, c.DateCreated, c.ModifiedBy, c.DateModified, c.Deleted)
	if isDuplicate(err) {
		return ErrConflict
	}
	return err
}

func scanCustomer(scan func(...any) error) (model.Customer, error) {
	var c model.Customer
	err := scan(&c.CustomerUUID, &c.CustomerName, &c.CustomerEmail, &c.CustomerContactNo, &c.CustomerICPassportNo,
		&c.CustomerGender, &c.CustomerSalutation, &c.CustomerOccupation, &c.CustomerNationality, &c.CustomerAddress,
		&c.CustomerStatus, &c.CustomerDateOfBirth, &c.CustomerIncome, &c.CustomerMaritalStatus, &c.CustomerRace,
		&c.CustomerIsBumi, &c.CustomerLanguage, &c.CustomerTag, &c.Remark,
		&c.CreatedBy, &c.DateCreated, &c.ModifiedBy, &c.DateModified, &c.Deleted)
	return c, err
}

func (r *CustomerRepo) Get(ctx context.Context, customerUUID string) (model.Customer, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+customerColumns+" FROM customers WHERE CustomerUUID = ? AND Deleted = 0 LIMIT 1", customerUUID)
	c, err := scanCustomer(row.Scan)
	if err == sql.ErrNoRows {
		return c, ErrNotFound
	}
	return c, err
}

func (r *CustomerRepo) Update(ctx context.Context, customerUUID string, cols map[string]any, actor string) error {
	set, args := buildSet(cols, customerUpdatable, actor)
	if set == "" {
		return ErrEmptyUpdate
	}
	args = append(args, customerUUID)
	res, err := r.DB.ExecContext(ctx,
		"UPDATE customers SET "+set+" WHERE CustomerUUID = ? AND Deleted = 0", args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SoftDelete flags the customer row only. Shared reference rows (address,
// contact, email) stay untouched: other entities may reference them.
func (r *CustomerRepo) SoftDelete(ctx context.Context, customerUUID, actor string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE customers SET Deleted = 1, ModifiedBy = ?, DateModified = ? WHERE CustomerUUID = ? AND Deleted = 0",
		actor, time.Now().UTC(), customerUUID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CustomerRepo) List(ctx context.Context, q ListQuery) ([]model.Customer, error) {
	tail, args := q.clauses()
	rows, err := r.DB.QueryContext(ctx, "SELECT "+customerColumns+" FROM customers"+tail, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Customer, 0, q.PageSize)
	for rows.Next() {
		c, err := scanCustomer(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
