package service

import (
	"context"
	"time"

	"github.com/jiahongggg/Skyworld-UserAPI/internal/model"
	"github.com/jiahongggg/Skyworld-UserAPI/internal/repository"
)

// resolver creates shared reference rows on demand. Each ensure method is
// idempotent: an existing row is reused, a missing row is inserted, and a
// duplicate-key conflict from a concurrent insert is treated as resolved.
type resolver struct {
	refs  ReferenceStore
	actor string
	now   time.Time
}

func (r *resolver) ensureCountry(ctx context.Context, name string) error {
	_, err := r.refs.GetCountry(ctx, name)
	if err == nil {
		return nil
	}
	if err != repository.ErrNotFound {
		return err
	}
	c := model.Country{Country: name}
	c.StampCreate(r.actor, r.now)
	if err := r.refs.CreateCountry(ctx, &c); err != nil && err != repository.ErrConflict {
		return err
	}
	return nil
}

func (r *resolver) ensureContact(ctx context.Context, contact string) error {
	_, err := r.refs.GetContact(ctx, contact)
	if err == nil {
		return nil
	}
	if err != repository.ErrNotFound {
		return err
	}
	c := model.Contact{Contact: contact}
	c.StampCreate(r.actor, r.now)
	if err := r.refs.CreateContact(ctx, &c); err != nil && err != repository.ErrConflict {
		return err
	}
	return nil
}

func (r *resolver) ensureEmail(ctx context.Context, email string) error {
	_, err := r.refs.GetEmail(ctx, email)
	if err == nil {
		return nil
	}
	if err != repository.ErrNotFound {
		return err
	}
	e := model.Email{Email: email}
	e.StampCreate(r.actor, r.now)
	if err := r.refs.CreateEmail(ctx, &e); err != nil && err != repository.ErrConflict {
		return err
	}
	return nil
}

// ensureAddress resolves an embedded address input to an AddressUUID.
// A provided UUID must reference an existing row; an empty UUID creates
// a new row (resolving its nested country first) under newID.
func (r *resolver) ensureAddress(ctx context.Context, in *model.AddressInput, newID func() string) (string, error) {
	if in.AddressUUID != "" {
		if _, err := r.refs.GetAddress(ctx, in.AddressUUID); err != nil {
			if err == repository.ErrNotFound {
				return "", &ForeignKeyError{Field: "AddressUUID", Table: "global_address"}
			}
			return "", err
		}
		return in.AddressUUID, nil
	}

	if in.Country != nil {
		if err := r.ensureCountry(ctx, *in.Country); err != nil {
			return "", err
		}
	}

	a := model.Address{
		AddressUUID: newID(),
		Address:     in.Address,
		Postcode:    in.Postcode,
		City:        in.City,
		State:       in.State,
		Country:     in.Country,
	}
	a.StampCreate(r.actor, r.now)
	if err := r.refs.CreateAddress(ctx, &a); err != nil && err != repository.ErrConflict {
		return "", err
	}
	return a.AddressUUID, nil
}
