package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/jiahongggg/Skyworld-UserAPI/internal/model"
	"github.com/jiahongggg/Skyworld-UserAPI/internal/queue"
	"github.com/jiahongggg/Skyworld-UserAPI/internal/repository"
)

// fakeTx runs the function directly; committed reports whether the
// function returned nil (i.e. the transaction would have committed).
type fakeTx struct {
	committed bool
	calls     int
}

func (f *fakeTx) RunInTx(ctx context.Context, fn func(q repository.DBTX) error) error {
	f.calls++
	err := fn(nil)
	f.committed = err == nil
	return err
}

// fakeLookups answers Exists from a table -> value-set map.
type fakeLookups struct {
	rows map[string]map[string]bool
	err  error
}

func (f *fakeLookups) Exists(_ context.Context, table string, value any) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.rows[table][fmt.Sprint(value)], nil
}

// fakeRefs is an in-memory ReferenceStore tracking created rows.
type fakeRefs struct {
	addresses map[string]model.Address
	contacts  map[string]bool
	emails    map[string]bool
	countries map[string]bool

	createdContacts  []string
	createdEmails    []string
	createdCountries []string
	createdAddresses []model.Address
}

func newFakeRefs() *fakeRefs {
	return &fakeRefs{
		addresses: map[string]model.Address{},
		contacts:  map[string]bool{},
		emails:    map[string]bool{},
		countries: map[string]bool{},
	}
}

func (f *fakeRefs) GetAddress(_ context.Context, id string) (model.Address, error) {
	a, ok := f.addresses[id]
	if !ok {
		return a, repository.ErrNotFound
	}
	return a, nil
}

func (f *fakeRefs) CreateAddress(_ context.Context, a *model.Address) error {
	if _, ok := f.addresses[a.AddressUUID]; ok {
		return repository.ErrConflict
	}
	f.addresses[a.AddressUUID] = *a
	f.createdAddresses = append(f.createdAddresses, *a)
	return nil
}

func (f *fakeRefs) GetContact(_ context.Context, c string) (model.Contact, error) {
	if !f.contacts[c] {
		return model.Contact{}, repository.ErrNotFound
	}
	return model.Contact{Contact: c}, nil
}

func (f *fakeRefs) CreateContact(_ context.Context, c *model.Contact) error {
	if f.contacts[c.Contact] {
		return repository.ErrConflict
	}
	f.contacts[c.Contact] = true
	f.createdContacts = append(f.createdContacts, c.Contact)
	return nil
}

func (f *fakeRefs) GetEmail(_ context.Context, e string) (model.Email, error) {
	if !f.emails[e] {
		return model.Email{}, repository.ErrNotFound
	}
	return model.Email{Email: e}, nil
}

func (f *fakeRefs) CreateEmail(_ context.Context, e *model.Email) error {
	if f.emails[e.Email] {
		return repository.ErrConflict
	}
	f.emails[e.Email] = true
	f.createdEmails = append(f.createdEmails, e.Email)
	return nil
}

func (f *fakeRefs) GetCountry(_ context.Context, c string) (model.Country, error) {
	if !f.countries[c] {
		return model.Country{}, repository.ErrNotFound
	}
	return model.Country{Country: c}, nil
}

func (f *fakeRefs) CreateCountry(_ context.Context, c *model.Country) error {
	if f.countries[c.Country] {
		return repository.ErrConflict
	}
	f.countries[c.Country] = true
	f.createdCountries = append(f.createdCountries, c.Country)
	return nil
}

type fakeCustomers struct {
	inserted []model.Customer
	updated  []string
	deleted  []string
	err      error
}

func (f *fakeCustomers) Insert(_ context.Context, c *model.Customer) error {
	if f.err != nil {
		return f.err
	}
	f.inserted = append(f.inserted, *c)
	return nil
}

func (f *fakeCustomers) Update(_ context.Context, id string, _ map[string]any, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.updated = append(f.updated, id)
	return nil
}

func (f *fakeCustomers) SoftDelete(_ context.Context, id, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeEmergency struct {
	created []model.EmergencyContact
	nextID  int64
}

func (f *fakeEmergency) Create(_ context.Context, e *model.EmergencyContact) (int64, error) {
	f.nextID++
	f.created = append(f.created, *e)
	return f.nextID, nil
}

func (f *fakeEmergency) Update(_ context.Context, _ int64, _ map[string]any, _ string) error {
	return nil
}

func (f *fakeEmergency) SoftDelete(_ context.Context, _ int64, _ string) error { return nil }

type fakeInvalidator struct {
	entities []string
	keys     []string
}

func (f *fakeInvalidator) Invalidate(_ context.Context, entity string) {
	f.entities = append(f.entities, entity)
}

func (f *fakeInvalidator) InvalidateKey(_ context.Context, entity, suffix string) {
	f.keys = append(f.keys, entity+"/"+suffix)
}

type fakeAudit struct{ events []queue.AuditEvent }

func (f *fakeAudit) PublishAudit(_ context.Context, ev queue.AuditEvent) error {
	f.events = append(f.events, ev)
	return nil
}

type writerFixture struct {
	tx        *fakeTx
	lookups   *fakeLookups
	refs      *fakeRefs
	customers *fakeCustomers
	emergency *fakeEmergency
	inval     *fakeInvalidator
	audit     *fakeAudit
	writer    *Writer
}

func newWriterFixture() *writerFixture {
	fx := &writerFixture{
		tx: &fakeTx{},
		lookups: &fakeLookups{rows: map[string]map[string]bool{
			"global_gender":   {"Male": true, "Female": true},
			"customer_status": {"1": true},
			"global_race":     {"Malay": true},
			"global_contact":  {"0123456789": true},
			"global_email":    {"known@example.com": true},
		}},
		refs:      newFakeRefs(),
		customers: &fakeCustomers{},
		emergency: &fakeEmergency{},
		inval:     &fakeInvalidator{},
		audit:     &fakeAudit{},
	}
	stores := func(repository.DBTX) Stores {
		return Stores{
			Lookups:   fx.lookups,
			Refs:      fx.refs,
			Customers: fx.customers,
			Emergency: fx.emergency,
		}
	}
	fx.writer = NewWriter(fx.tx, stores, fx.inval, fx.audit, zerolog.Nop())
	return fx
}

func strptr(s string) *string { return &s }
func intptr(i int) *int       { return &i }

func TestCreateCustomerResolvesReferencesAndStamps(t *testing.T) {
	fx := newWriterFixture()

	c := &model.Customer{
		CustomerName:        "Alice Tan",
		CustomerGender:      strptr("Female"),
		CustomerStatus:      intptr(1),
		CustomerNationality: strptr("Malaysia"),
		CustomerContactNo:   strptr("0199999999"),
		CustomerEmail:       strptr("alice@example.com"),
	}
	addr := &model.AddressInput{Address: "1 Jalan Test", Country: strptr("Malaysia")}

	if err := fx.writer.CreateCustomer(context.Background(), "tester", c, addr); err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}

	if c.CustomerUUID == "" {
		t.Error("expected a generated CustomerUUID")
	}
	if c.CreatedBy != "tester" || c.ModifiedBy != "tester" {
		t.Errorf("audit stamp: CreatedBy=%q ModifiedBy=%q", c.CreatedBy, c.ModifiedBy)
	}
	if len(fx.refs.createdCountries) != 1 || fx.refs.createdCountries[0] != "Malaysia" {
		t.Errorf("countries created = %v, want [Malaysia]", fx.refs.createdCountries)
	}
	if len(fx.refs.createdContacts) != 1 || len(fx.refs.createdEmails) != 1 {
		t.Errorf("contacts=%v emails=%v, want one each", fx.refs.createdContacts, fx.refs.createdEmails)
	}
	if len(fx.refs.createdAddresses) != 1 {
		t.Fatalf("addresses created = %d, want 1", len(fx.refs.createdAddresses))
	}
	if c.CustomerAddress == nil || *c.CustomerAddress != fx.refs.createdAddresses[0].AddressUUID {
		t.Error("customer not linked to the resolved address")
	}
	if len(fx.customers.inserted) != 1 {
		t.Fatalf("inserted = %d, want 1", len(fx.customers.inserted))
	}
	if fx.inval.entities[0] != EntityCustomer {
		t.Errorf("invalidated %v, want customers first", fx.inval.entities)
	}
	if len(fx.audit.events) != 1 || fx.audit.events[0].Action != "create" {
		t.Errorf("audit events = %+v", fx.audit.events)
	}
}

func TestCreateCustomerExistingReferencesNotDuplicated(t *testing.T) {
	fx := newWriterFixture()
	fx.refs.countries["Malaysia"] = true
	fx.refs.contacts["0123456789"] = true

	c := &model.Customer{
		CustomerName:        "Bob",
		CustomerNationality: strptr("Malaysia"),
		CustomerContactNo:   strptr("0123456789"),
	}
	if err := fx.writer.CreateCustomer(context.Background(), "tester", c, nil); err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}
	if len(fx.refs.createdCountries) != 0 || len(fx.refs.createdContacts) != 0 {
		t.Errorf("existing references recreated: countries=%v contacts=%v",
			fx.refs.createdCountries, fx.refs.createdContacts)
	}
}

func TestCreateCustomerBadLookupRollsBack(t *testing.T) {
	fx := newWriterFixture()

	c := &model.Customer{
		CustomerName:   "Carol",
		CustomerGender: strptr("Unknown"),
	}
	err := fx.writer.CreateCustomer(context.Background(), "tester", c, nil)
	var fkErr *ForeignKeyError
	if !errors.As(err, &fkErr) {
		t.Fatalf("want ForeignKeyError, got %v", err)
	}
	if fkErr.Field != "CustomerGender" {
		t.Errorf("Field = %q, want CustomerGender", fkErr.Field)
	}
	if fx.tx.committed {
		t.Error("transaction committed despite validation failure")
	}
	if len(fx.customers.inserted) != 0 {
		t.Error("row inserted despite validation failure")
	}
	if len(fx.inval.entities) != 0 || len(fx.audit.events) != 0 {
		t.Error("side effects fired for a failed write")
	}
}

func TestCreateCustomerBareAddressUUIDMustExist(t *testing.T) {
	fx := newWriterFixture()

	c := &model.Customer{
		CustomerName:    "Dan",
		CustomerAddress: strptr("no-such-address"),
	}
	err := fx.writer.CreateCustomer(context.Background(), "tester", c, nil)
	var fkErr *ForeignKeyError
	if !errors.As(err, &fkErr) {
		t.Fatalf("want ForeignKeyError, got %v", err)
	}
}

func TestUpdateCustomerValidatesDynamicRefs(t *testing.T) {
	fx := newWriterFixture()

	// contact exists in the lookup fixture, so this passes
	err := fx.writer.UpdateCustomer(context.Background(), "tester", "c-1",
		map[string]any{"CustomerContactNo": "0123456789"})
	if err != nil {
		t.Fatalf("UpdateCustomer: %v", err)
	}

	// unknown contact is rejected: updates never create reference rows
	err = fx.writer.UpdateCustomer(context.Background(), "tester", "c-1",
		map[string]any{"CustomerContactNo": "0000000000"})
	var fkErr *ForeignKeyError
	if !errors.As(err, &fkErr) {
		t.Fatalf("want ForeignKeyError, got %v", err)
	}
	if len(fx.customers.updated) != 1 {
		t.Errorf("updates applied = %d, want 1", len(fx.customers.updated))
	}
}

func TestUpdateCustomerEmptyPayloadRejected(t *testing.T) {
	fx := newWriterFixture()

	err := fx.writer.UpdateCustomer(context.Background(), "tester", "c-1", map[string]any{})
	if err != repository.ErrEmptyUpdate {
		t.Fatalf("err = %v, want ErrEmptyUpdate", err)
	}
	if fx.tx.calls != 0 {
		t.Error("transaction opened for an empty update")
	}
	if len(fx.inval.entities) != 0 || len(fx.inval.keys) != 0 || len(fx.audit.events) != 0 {
		t.Error("side effects fired for an empty update")
	}
}

func TestDeleteCustomerInvalidatesAndAudits(t *testing.T) {
	fx := newWriterFixture()

	if err := fx.writer.DeleteCustomer(context.Background(), "tester", "c-9"); err != nil {
		t.Fatalf("DeleteCustomer: %v", err)
	}
	if len(fx.customers.deleted) != 1 || fx.customers.deleted[0] != "c-9" {
		t.Errorf("deleted = %v", fx.customers.deleted)
	}
	if len(fx.inval.entities) != 1 || fx.inval.entities[0] != EntityCustomer {
		t.Errorf("invalidated = %v", fx.inval.entities)
	}
	if len(fx.inval.keys) != 1 || fx.inval.keys[0] != EntityCustomer+"/id:c-9" {
		t.Errorf("id keys invalidated = %v, want the deleted row's key", fx.inval.keys)
	}
	if len(fx.audit.events) != 1 || fx.audit.events[0].Action != "delete" {
		t.Errorf("audit = %+v", fx.audit.events)
	}
}

func TestDeleteCustomerNotFoundNoSideEffects(t *testing.T) {
	fx := newWriterFixture()
	fx.customers.err = repository.ErrNotFound

	err := fx.writer.DeleteCustomer(context.Background(), "tester", "missing")
	if err != repository.ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if len(fx.inval.entities) != 0 || len(fx.audit.events) != 0 {
		t.Error("side effects fired for a failed delete")
	}
}

func TestCreateEmergencyRequiresKnownContact(t *testing.T) {
	fx := newWriterFixture()

	e := &model.EmergencyContact{
		EmergencyName:      "Next of kin",
		EmergencyContactNo: strptr("0123456789"),
	}
	id, err := fx.writer.CreateEmergency(context.Background(), "tester", e)
	if err != nil {
		t.Fatalf("CreateEmergency: %v", err)
	}
	if id != 1 || e.EmergencyID != 1 {
		t.Errorf("id = %d, EmergencyID = %d", id, e.EmergencyID)
	}

	bad := &model.EmergencyContact{
		EmergencyName:  "Stranger",
		EmergencyEmail: strptr("nobody@example.com"),
	}
	_, err = fx.writer.CreateEmergency(context.Background(), "tester", bad)
	var fkErr *ForeignKeyError
	if !errors.As(err, &fkErr) {
		t.Fatalf("want ForeignKeyError, got %v", err)
	}
	if fkErr.Field != "EmergencyEmail" {
		t.Errorf("Field = %q", fkErr.Field)
	}
}
