package service

import (
	"context"
	"errors"

	"github.com/academia-alliance/academia/core"
	"github.com/academia-alliance/academia/ports"
)

// upsert inserts fields under id when no record exists, otherwise overwrites
// exactly those fields of the existing record. Concurrent upserts on one id
// are last-writer-wins.
func upsert(ctx context.Context, store ports.RecordStore, id core.ID, fields core.Document) (core.UpdateResult, error) {
	fields = fields.WithoutID()

	_, exists, err := store.FindByID(ctx, id)
	if err != nil {
		return core.UpdateResult{}, err
	}

	if !exists {
		_, err := store.InsertWithID(ctx, id, fields)
		switch {
		case err == nil:
			return core.UpdateResult{Acknowledged: true, UpsertedCount: 1, UpsertedID: &id}, nil
		case !errors.Is(err, core.ErrDuplicateID):
			return core.UpdateResult{}, err
		}
		// another writer inserted it first; merge into theirs
	}

	return store.SetFields(ctx, id, fields)
}
