// Package service coordinates entity writes: foreign-key validation,
// shared reference resolution and the row mutation run inside one
// transaction; cache invalidation and audit publishing happen after
// commit.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jiahongggg/Skyworld-UserAPI/internal/model"
	"github.com/jiahongggg/Skyworld-UserAPI/internal/queue"
	"github.com/jiahongggg/Skyworld-UserAPI/internal/repository"
)

// Cache entity names, shared with the read path.
const (
	EntityCustomer  = "customers"
	EntityLead      = "leads"
	EntitySales     = "sales"
	EntityUser      = "users"
	EntityEmergency = "emergency"
)

// TxRunner executes a function inside a database transaction.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(q repository.DBTX) error) error
}

// LookupStore checks existence of a value in a whitelisted lookup table.
type LookupStore interface {
	Exists(ctx context.Context, table string, value any) (bool, error)
}

// ReferenceStore reads and creates shared reference rows.
type ReferenceStore interface {
	GetAddress(ctx context.Context, addressUUID string) (model.Address, error)
	CreateAddress(ctx context.Context, a *model.Address) error
	GetContact(ctx context.Context, contact string) (model.Contact, error)
	CreateContact(ctx context.Context, c *model.Contact) error
	GetEmail(ctx context.Context, email string) (model.Email, error)
	CreateEmail(ctx context.Context, e *model.Email) error
	GetCountry(ctx context.Context, country string) (model.Country, error)
	CreateCountry(ctx context.Context, c *model.Country) error
}

type CustomerStore interface {
	Insert(ctx context.Context, c *model.Customer) error
	Update(ctx context.Context, customerUUID string, cols map[string]any, actor string) error
	SoftDelete(ctx context.Context, customerUUID, actor string) error
}

type LeadStore interface {
	Insert(ctx context.Context, l *model.Lead) error
	Update(ctx context.Context, leadUUID string, cols map[string]any, actor string) error
	SoftDelete(ctx context.Context, leadUUID, actor string) error
}

type SalesStore interface {
	Insert(ctx context.Context, s *model.SalesAgent) error
	Update(ctx context.Context, salesAgentID string, cols map[string]any, actor string) error
	SoftDelete(ctx context.Context, salesAgentID, actor string) error
}

type EmergencyStore interface {
	Create(ctx context.Context, e *model.EmergencyContact) (int64, error)
	Update(ctx context.Context, emergencyID int64, cols map[string]any, actor string) error
	SoftDelete(ctx context.Context, emergencyID int64, actor string) error
}

// Stores bundles every store the writer touches, all bound to the same
// DBTX so a transaction covers them together.
type Stores struct {
	Lookups   LookupStore
	Refs      ReferenceStore
	Customers CustomerStore
	Leads     LeadStore
	Sales     SalesStore
	Emergency EmergencyStore
}

// StoreFactory binds the stores to a DBTX, usually a live transaction.
type StoreFactory func(q repository.DBTX) Stores

// Invalidator drops cached reads for an entity after a committed write.
// InvalidateKey deletes one key directly; Invalidate sweeps every key
// recorded in the entity's index set.
type Invalidator interface {
	Invalidate(ctx context.Context, entity string)
	InvalidateKey(ctx context.Context, entity, suffix string)
}

// AuditPublisher emits an audit event for a committed write.
type AuditPublisher interface {
	PublishAudit(ctx context.Context, ev queue.AuditEvent) error
}

// Writer is the write coordinator for customers, leads, sales agents and
// emergency contacts.
type Writer struct {
	tx     TxRunner
	stores StoreFactory
	cache  Invalidator
	audit  AuditPublisher
	log    zerolog.Logger
	now    func() time.Time
	newID  func() string
}

func NewWriter(tx TxRunner, stores StoreFactory, cache Invalidator, audit AuditPublisher, log zerolog.Logger) *Writer {
	return &Writer{
		tx:     tx,
		stores: stores,
		cache:  cache,
		audit:  audit,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  func() string { return uuid.NewString() },
	}
}

// afterCommit invalidates the entity's cached reads and publishes the
// audit event. Both are best-effort: the write already committed. The
// written row's id key is deleted directly so it dies even if the
// index-set sweep fails partway; the sweep then clears list caches.
func (w *Writer) afterCommit(ctx context.Context, entity, action, id, actor string) {
	if w.cache != nil {
		w.cache.InvalidateKey(ctx, entity, "id:"+id)
		w.cache.Invalidate(ctx, entity)
	}
	if w.audit != nil {
		ev := queue.AuditEvent{
			Entity:     entity,
			Action:     action,
			EntityID:   id,
			Actor:      actor,
			OccurredAt: w.now(),
		}
		if err := w.audit.PublishAudit(ctx, ev); err != nil {
			w.log.Warn().Err(err).Str("entity", entity).Str("action", action).Msg("audit publish failed")
		}
	}
}

// resolveRefs creates any missing shared reference rows pointed at by the
// dynamic fields. nationality, contact and email are ensured in place;
// the address input, when present, resolves to a UUID stored via setAddr.
func (w *Writer) resolveRefs(ctx context.Context, r *resolver, nationality, contact, email, addrUUID *string, addr *model.AddressInput, setAddr func(string)) error {
	if nationality != nil {
		if err := r.ensureCountry(ctx, *nationality); err != nil {
			return err
		}
	}
	if contact != nil {
		if err := r.ensureContact(ctx, *contact); err != nil {
			return err
		}
	}
	if email != nil {
		if err := r.ensureEmail(ctx, *email); err != nil {
			return err
		}
	}
	switch {
	case addr != nil:
		id, err := r.ensureAddress(ctx, addr, w.newID)
		if err != nil {
			return err
		}
		setAddr(id)
	case addrUUID != nil:
		// bare UUID without an address object must already exist
		if _, err := r.refs.GetAddress(ctx, *addrUUID); err != nil {
			if err == repository.ErrNotFound {
				return &ForeignKeyError{Field: "Address", Table: "global_address"}
			}
			return err
		}
	}
	return nil
}

// CreateCustomer validates lookups, resolves shared references, stamps
// audit fields and inserts the row, all in one transaction.
func (w *Writer) CreateCustomer(ctx context.Context, actor string, c *model.Customer, addr *model.AddressInput) error {
	if c.CustomerUUID == "" {
		c.CustomerUUID = w.newID()
	}
	c.StampCreate(actor, w.now())

	err := w.tx.RunInTx(ctx, func(q repository.DBTX) error {
		st := w.stores(q)
		if err := validateFK(ctx, st.Lookups, customerRules, customerFKValues(c), false); err != nil {
			return err
		}
		r := &resolver{refs: st.Refs, actor: actor, now: c.DateCreated}
		err := w.resolveRefs(ctx, r, c.CustomerNationality, c.CustomerContactNo, c.CustomerEmail,
			c.CustomerAddress, addr, func(id string) { c.CustomerAddress = &id })
		if err != nil {
			return err
		}
		return st.Customers.Insert(ctx, c)
	})
	if err != nil {
		return err
	}
	w.afterCommit(ctx, EntityCustomer, "create", c.CustomerUUID, actor)
	return nil
}

func (w *Writer) UpdateCustomer(ctx context.Context, actor, customerUUID string, cols map[string]any) error {
	if len(cols) == 0 {
		return repository.ErrEmptyUpdate
	}
	err := w.tx.RunInTx(ctx, func(q repository.DBTX) error {
		st := w.stores(q)
		if err := validateFK(ctx, st.Lookups, customerRules, cols, true); err != nil {
			return err
		}
		return st.Customers.Update(ctx, customerUUID, cols, actor)
	})
	if err != nil {
		return err
	}
	w.afterCommit(ctx, EntityCustomer, "update", customerUUID, actor)
	return nil
}

// DeleteCustomer soft-deletes the row. Shared reference rows are left
// alone: other entities may point at them.
func (w *Writer) DeleteCustomer(ctx context.Context, actor, customerUUID string) error {
	err := w.tx.RunInTx(ctx, func(q repository.DBTX) error {
		return w.stores(q).Customers.SoftDelete(ctx, customerUUID, actor)
	})
	if err != nil {
		return err
	}
	w.afterCommit(ctx, EntityCustomer, "delete", customerUUID, actor)
	return nil
}

func (w *Writer) CreateLead(ctx context.Context, actor string, l *model.Lead, addr *model.AddressInput) error {
	if l.LeadUUID == "" {
		l.LeadUUID = w.newID()
	}
	l.StampCreate(actor, w.now())

	err := w.tx.RunInTx(ctx, func(q repository.DBTX) error {
		st := w.stores(q)
		if err := validateFK(ctx, st.Lookups, leadRules, leadFKValues(l), false); err != nil {
			return err
		}
		r := &resolver{refs: st.Refs, actor: actor, now: l.DateCreated}
		err := w.resolveRefs(ctx, r, l.LeadNationality, l.LeadContactNo, l.LeadEmail,
			l.LeadAddress, addr, func(id string) { l.LeadAddress = &id })
		if err != nil {
			return err
		}
		return st.Leads.Insert(ctx, l)
	})
	if err != nil {
		return err
	}
	w.afterCommit(ctx, EntityLead, "create", l.LeadUUID, actor)
	return nil
}

func (w *Writer) UpdateLead(ctx context.Context, actor, leadUUID string, cols map[string]any) error {
	if len(cols) == 0 {
		return repository.ErrEmptyUpdate
	}
	err := w.tx.RunInTx(ctx, func(q repository.DBTX) error {
		st := w.stores(q)
		if err := validateFK(ctx, st.Lookups, leadRules, cols, true); err != nil {
			return err
		}
		return st.Leads.Update(ctx, leadUUID, cols, actor)
	})
	if err != nil {
		return err
	}
	w.afterCommit(ctx, EntityLead, "update", leadUUID, actor)
	return nil
}

func (w *Writer) DeleteLead(ctx context.Context, actor, leadUUID string) error {
	err := w.tx.RunInTx(ctx, func(q repository.DBTX) error {
		return w.stores(q).Leads.SoftDelete(ctx, leadUUID, actor)
	})
	if err != nil {
		return err
	}
	w.afterCommit(ctx, EntityLead, "delete", leadUUID, actor)
	return nil
}

func (w *Writer) CreateSalesAgent(ctx context.Context, actor string, s *model.SalesAgent, addr *model.AddressInput) error {
	if s.SalesAgentID == "" {
		s.SalesAgentID = w.newID()
	}
	s.StampCreate(actor, w.now())

	err := w.tx.RunInTx(ctx, func(q repository.DBTX) error {
		st := w.stores(q)
		if err := validateFK(ctx, st.Lookups, salesRules, salesFKValues(s), false); err != nil {
			return err
		}
		r := &resolver{refs: st.Refs, actor: actor, now: s.DateCreated}
		err := w.resolveRefs(ctx, r, s.AgentNationality, s.AgentContactNo, s.AgentEmail,
			s.AgentAddress, addr, func(id string) { s.AgentAddress = &id })
		if err != nil {
			return err
		}
		return st.Sales.Insert(ctx, s)
	})
	if err != nil {
		return err
	}
	w.afterCommit(ctx, EntitySales, "create", s.SalesAgentID, actor)
	return nil
}

func (w *Writer) UpdateSalesAgent(ctx context.Context, actor, salesAgentID string, cols map[string]any) error {
	if len(cols) == 0 {
		return repository.ErrEmptyUpdate
	}
	err := w.tx.RunInTx(ctx, func(q repository.DBTX) error {
		st := w.stores(q)
		if err := validateFK(ctx, st.Lookups, salesRules, cols, true); err != nil {
			return err
		}
		return st.Sales.Update(ctx, salesAgentID, cols, actor)
	})
	if err != nil {
		return err
	}
	w.afterCommit(ctx, EntitySales, "update", salesAgentID, actor)
	return nil
}

func (w *Writer) DeleteSalesAgent(ctx context.Context, actor, salesAgentID string) error {
	err := w.tx.RunInTx(ctx, func(q repository.DBTX) error {
		return w.stores(q).Sales.SoftDelete(ctx, salesAgentID, actor)
	})
	if err != nil {
		return err
	}
	w.afterCommit(ctx, EntitySales, "delete", salesAgentID, actor)
	return nil
}

// CreateEmergency requires the contact number or email, when given, to
// already exist in its global reference table; emergency contacts never
// create reference rows themselves.
func (w *Writer) CreateEmergency(ctx context.Context, actor string, e *model.EmergencyContact) (int64, error) {
	e.StampCreate(actor, w.now())

	var id int64
	err := w.tx.RunInTx(ctx, func(q repository.DBTX) error {
		st := w.stores(q)
		if e.EmergencyContactNo != nil {
			ok, err := st.Lookups.Exists(ctx, "global_contact", *e.EmergencyContactNo)
			if err != nil {
				return err
			}
			if !ok {
				return &ForeignKeyError{Field: "EmergencyContactNo", Table: "global_contact"}
			}
		}
		if e.EmergencyEmail != nil {
			ok, err := st.Lookups.Exists(ctx, "global_email", *e.EmergencyEmail)
			if err != nil {
				return err
			}
			if !ok {
				return &ForeignKeyError{Field: "EmergencyEmail", Table: "global_email"}
			}
		}
		var err error
		id, err = st.Emergency.Create(ctx, e)
		return err
	})
	if err != nil {
		return 0, err
	}
	e.EmergencyID = id
	w.afterCommit(ctx, EntityEmergency, "create", formatID(id), actor)
	return id, nil
}

func (w *Writer) UpdateEmergency(ctx context.Context, actor string, emergencyID int64, cols map[string]any) error {
	if len(cols) == 0 {
		return repository.ErrEmptyUpdate
	}
	err := w.tx.RunInTx(ctx, func(q repository.DBTX) error {
		return w.stores(q).Emergency.Update(ctx, emergencyID, cols, actor)
	})
	if err != nil {
		return err
	}
	w.afterCommit(ctx, EntityEmergency, "update", formatID(emergencyID), actor)
	return nil
}

func (w *Writer) DeleteEmergency(ctx context.Context, actor string, emergencyID int64) error {
	err := w.tx.RunInTx(ctx, func(q repository.DBTX) error {
		return w.stores(q).Emergency.SoftDelete(ctx, emergencyID, actor)
	})
	if err != nil {
		return err
	}
	w.afterCommit(ctx, EntityEmergency, "delete", formatID(emergencyID), actor)
	return nil
}
