package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/academia-alliance/academia/core"
	"github.com/academia-alliance/academia/ports"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore is a MongoDB implementation of the RecordStore interface,
// backed by one collection.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore creates a new MongoDB store over coll
func NewMongoStore(coll *mongo.Collection) ports.RecordStore {
	return &MongoStore{coll: coll}
}

// Insert stores doc under a freshly minted id
func (s *MongoStore) Insert(ctx context.Context, doc core.Document) (core.InsertResult, error) {
	return s.InsertWithID(ctx, core.NewID(), doc)
}

// InsertWithID stores doc under id
func (s *MongoStore) InsertWithID(ctx context.Context, id core.ID, doc core.Document) (core.InsertResult, error) {
	rec := doc.WithoutID()
	rec[core.FieldID] = id

	if _, err := s.coll.InsertOne(ctx, bson.M(rec)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return core.InsertResult{}, core.ErrDuplicateID
		}
		return core.InsertResult{}, storeError("insert record", err)
	}

	return core.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

// Find returns the matching records inside page, in the collection's natural order
func (s *MongoStore) Find(ctx context.Context, filter core.Filter, page core.Page) ([]core.Document, error) {
	opts := options.Find()
	if page.Skip > 0 {
		opts.SetSkip(page.Skip)
	}
	if page.Limit > 0 {
		opts.SetLimit(page.Limit)
	}

	cursor, err := s.coll.Find(ctx, filterToBSON(filter), opts)
	if err != nil {
		return nil, storeError("find records", err)
	}

	var docs []core.Document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, storeError("decode records", err)
	}
	if docs == nil {
		docs = []core.Document{}
	}

	return docs, nil
}

// Count returns the number of matching records
func (s *MongoStore) Count(ctx context.Context, filter core.Filter) (int64, error) {
	n, err := s.coll.CountDocuments(ctx, filterToBSON(filter))
	if err != nil {
		return 0, storeError("count records", err)
	}
	return n, nil
}

// FindByID retrieves a record by id
func (s *MongoStore) FindByID(ctx context.Context, id core.ID) (core.Document, bool, error) {
	var doc core.Document
	err := s.coll.FindOne(ctx, bson.M{core.FieldID: id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, storeError("find record", err)
	}
	return doc, true, nil
}

// SetFields overwrites fields of an existing record with $set. It never upserts.
func (s *MongoStore) SetFields(ctx context.Context, id core.ID, fields core.Document) (core.UpdateResult, error) {
	set := fields.WithoutID()
	if len(set) == 0 {
		// $set rejects an empty document
		n, err := s.coll.CountDocuments(ctx, bson.M{core.FieldID: id})
		if err != nil {
			return core.UpdateResult{}, storeError("match record", err)
		}
		return core.UpdateResult{Acknowledged: true, MatchedCount: n}, nil
	}

	res, err := s.coll.UpdateOne(ctx, bson.M{core.FieldID: id}, bson.M{"$set": bson.M(set)})
	if err != nil {
		return core.UpdateResult{}, storeError("update record", err)
	}

	return core.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	}, nil
}

// DeleteByID removes a record if present
func (s *MongoStore) DeleteByID(ctx context.Context, id core.ID) (core.DeleteResult, error) {
	res, err := s.coll.DeleteOne(ctx, bson.M{core.FieldID: id})
	if err != nil {
		return core.DeleteResult{}, storeError("delete record", err)
	}
	return core.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}

// Ping checks the connection behind the collection
func (s *MongoStore) Ping(ctx context.Context) error {
	if err := s.coll.Database().Client().Ping(ctx, nil); err != nil {
		return storeError("ping", err)
	}
	return nil
}

func filterToBSON(filter core.Filter) bson.M {
	out := bson.M{}
	for k, v := range filter {
		out[k] = v
	}
	return out
}

func storeError(op string, err error) error {
	return fmt.Errorf("failed to %s: %w: %w", op, core.ErrStoreOperationFailed, err)
}
