package repository

import (
	"context"
	"database/sql"

	"github.com/jiahongggg/Skyworld-UserAPI/internal/model"
)

// ReferenceRepo persists the shared reference rows (address, contact, email,
// country). Rows are looked up by natural key and created at most once; the
// resolver in the service layer drives the create-if-absent sequence. A
// unique primary key on each natural key acts as the backstop for
// concurrent check-then-insert races: the duplicate insert surfaces as
// ErrConflict and the caller treats the row as already resolved.
type ReferenceRepo struct{ DB DBTX }

func NewReferenceRepo(db DBTX) *ReferenceRepo { return &ReferenceRepo{DB: db} }

const addressColumns = "AddressUUID, Address, Postcode, City, State, Country, Remark, CreatedBy, DateCreated, ModifiedBy, DateModified, Deleted"

func (r *ReferenceRepo) GetAddress(ctx context.Context, addressUUID string) (model.Address, error) {
	var a model.Address
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+addressColumns+" FROM global_address WHERE AddressUUID = ? LIMIT 1", addressUUID).
		Scan(&a.AddressUUID, &a.Address, &a.Postcode, &a.City, &a.State, &a.Country, &a.Remark,
			&a.CreatedBy, &a.DateCreated, &a.ModifiedBy, &a.DateModified, &a.Deleted)
	if err == sql.ErrNoRows {
		return a, ErrNotFound
	}
	return a, err
}

func (r *ReferenceRepo) CreateAddress(ctx context.Context, a *model.Address) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO global_address ("+addressColumns+") VALUES (?,?,?,?,?,?,?,?,?,?,?,?)",
		a.AddressUUID, a.Address, a.Postcode, a.City, a.State, a.Country, a.Remark,
		a.CreatedBy, a.DateCreated, a.ModifiedBy, a.DateModified, a.Deleted)
	if isDuplicate(err) {
		return ErrConflict
	}
	return err
}

func (r *ReferenceRepo) GetContact(ctx context.Context, contact string) (model.Contact, error) {
	var c model.Contact
	err := r.DB.QueryRowContext(ctx,
		"SELECT Contact, Remark, CreatedBy, DateCreated, ModifiedBy, DateModified, Deleted FROM global_contact WHERE Contact = ? LIMIT 1",
		contact).
		Scan(&c.Contact, &c.Remark, &c.CreatedBy, &c.DateCreated, &c.ModifiedBy, &c.DateModified, &c.Deleted)
	if err == sql.ErrNoRows {
		return c, ErrNotFound
	}
	return c, err
}

func (r *ReferenceRepo) CreateContact(ctx context.Context, c *model.Contact) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO global_contact (Contact, Remark, CreatedBy, DateCreated, ModifiedBy, DateModified, Deleted) VALUES (?,?,?,?,?,?,?)",
		c.Contact, c.Remark, c.CreatedBy, c.DateCreated, c.ModifiedBy, c.DateModified, c.Deleted)
	if isDuplicate(err) {
		return ErrConflict
	}
	return err
}

func (r *ReferenceRepo) GetEmail(ctx context.Context, email string) (model.Email, error) {
	var e model.Email
	err := r.DB.QueryRowContext(ctx,
		"SELECT Email, Remark, CreatedBy, DateCreated, ModifiedBy, DateModified, Deleted FROM global_email WHERE Email = ? LIMIT 1",
		email).
		Scan(&e.Email, &e.Remark, &e.CreatedBy, &e.DateCreated, &e.ModifiedBy, &e.DateModified, &e.Deleted)
	if err == sql.ErrNoRows {
		return e, ErrNotFound
	}
	return e, err
}

func (r *ReferenceRepo) CreateEmail(ctx context.Context, e *model.Email) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO global_email (Email, Remark, CreatedBy, DateCreated, ModifiedBy, DateModified, Deleted) VALUES (?,?,?,?,?,?,?)",
		e.Email, e.Remark, e.CreatedBy, e.DateCreated, e.ModifiedBy, e.DateModified, e.Deleted)
	if isDuplicate(err) {
		return ErrConflict
	}
	return err
}

func (r *ReferenceRepo) GetCountry(ctx context.Context, country string) (model.Country, error) {
	var c model.Country
	err := r.DB.QueryRowContext(ctx,
		"SELECT Country, Remark, CreatedBy, DateCreated, ModifiedBy, DateModified, Deleted FROM global_country WHERE Country = ? LIMIT 1",
		country).
		Scan(&c.Country, &c.Remark, &c.CreatedBy, &c.DateCreated, &c.ModifiedBy, &c.DateModified, &c.Deleted)
	if err == sql.ErrNoRows {
		return c, ErrNotFound
	}
	return c, err
}

func (r *ReferenceRepo) CreateCountry(ctx context.Context, c *model.Country) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO global_country (Country, Remark, CreatedBy, DateCreated, ModifiedBy, DateModified, Deleted) VALUES (?,?,?,?,?,?,?)",
		c.Country, c.Remark, c.CreatedBy, c.DateCreated, c.ModifiedBy, c.DateModified, c.Deleted)
	if isDuplicate(err) {
		return ErrConflict
	}
	return err
}
