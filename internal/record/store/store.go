// Package store persists medical-history storage rows. Implementations must
// return sentinel.ErrNotFound for absent ids and keep create/update atomic;
// the core never observes partial writes.
package store

import "github.com/elsaedy55/Revo-backend/internal/record"

// Both implementations satisfy the service-side contract.
var (
	_ record.Store = (*InMemoryStore)(nil)
	_ record.Store = (*PostgresStore)(nil)
)
