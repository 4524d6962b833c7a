package service

import (
	"strconv"

	"github.com/jiahongggg/Skyworld-UserAPI/internal/repository"
)

// NewStores is the production StoreFactory: real repositories bound to
// the given DBTX.
func NewStores(q repository.DBTX) Stores {
	return Stores{
		Lookups:   repository.NewLookupRepo(q),
		Refs:      repository.NewReferenceRepo(q),
		Customers: repository.NewCustomerRepo(q),
		Leads:     repository.NewLeadRepo(q),
		Sales:     repository.NewSalesRepo(q),
		Emergency: repository.NewEmergencyRepo(q),
	}
}

func formatID(id int64) string { return strconv.FormatInt(id, 10) }
