package ports

import (
	"context"

	"github.com/academia-alliance/academia/core"
)

// RecordStore is a single flat collection of schema-less records.
// Every method is atomic for one record only.
type RecordStore interface {
	Insert(ctx context.Context, doc core.Document) (core.InsertResult, error)
	// InsertWithID inserts doc under a caller chosen id. Returns core.ErrDuplicateID
	// if a record with that id already exists.
	InsertWithID(ctx context.Context, id core.ID, doc core.Document) (core.InsertResult, error)
	Find(ctx context.Context, filter core.Filter, page core.Page) ([]core.Document, error)
	Count(ctx context.Context, filter core.Filter) (int64, error)
	// FindByID reports absence with ok == false rather than an error.
	FindByID(ctx context.Context, id core.ID) (doc core.Document, ok bool, err error)
	// SetFields overwrites the given fields of an existing record, leaving the rest untouched.
	SetFields(ctx context.Context, id core.ID, fields core.Document) (core.UpdateResult, error)
	DeleteByID(ctx context.Context, id core.ID) (core.DeleteResult, error)
	Ping(ctx context.Context) error
}
