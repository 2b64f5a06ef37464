// Package gateway is the narrow query/mutation interface to the hosted
// relational store. The resource caches never touch the database directly;
// everything goes through Select/Insert/Update/Delete so tests can swap in
// a scripted fake.
package gateway

import "context"

// Order is one ordering key of a Select.
type Order struct {
	Column string
	Desc   bool
}

// Gateway is the remote data gateway contract.
//
// Select fills dest (a *[]T) with the rows of table matching filters, in
// the given order. Insert persists row (a *T), assigning its identifier and
// filling server-side timestamps in place. Update applies the named columns
// to one row; Delete removes it. model carries the row type so the
// implementation can resolve the schema; it is never read or written.
//
// Errors are passed through verbatim; there is no retry layer.
type Gateway interface {
	Select(ctx context.Context, table string, filters map[string]any, orders []Order, dest any) error
	Insert(ctx context.Context, table string, row any) error
	Update(ctx context.Context, table string, id string, cols map[string]any, model any) error
	Delete(ctx context.Context, table string, id string, model any) error
}
