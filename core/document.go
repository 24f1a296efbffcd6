package core

import (
	"maps"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Field names shared by the assignment and submission collections.
const (
	FieldID                = "_id"
	FieldAssignmentCreator = "assignment_creator"
	FieldDifficulty        = "difficulty"
	FieldExamineeEmail     = "examineeEmail"
	FieldStatus            = "status"
	FieldObtainedMarks     = "obtainedMarks"
	FieldFeedback          = "feedback"
)

// Submission statuses. Status is caller supplied and matched literally, so
// these are the values the workflow itself produces, not a closed set.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// ID identifies a stored record
type ID = primitive.ObjectID

// NewID mints a fresh record identifier
func NewID() ID {
	return primitive.NewObjectID()
}

// ParseID parses the hex form of a record identifier
func ParseID(s string) (ID, error) {
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return id, nil
}

// Document is a schema-less record. Only the fields named above carry meaning
// to the workflow; everything else is stored and returned as given.
type Document map[string]any

// String returns the field as a string, or "" when absent or of another type.
func (d Document) String(field string) string {
	s, _ := d[field].(string)
	return s
}

// ID returns the record identifier, if the document carries one.
func (d Document) ID() (ID, bool) {
	id, ok := d[FieldID].(ID)
	return id, ok
}

// Clone returns a shallow copy of the document.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	return maps.Clone(d)
}

// WithoutID returns a copy with any caller supplied identifier removed.
func (d Document) WithoutID() Document {
	out := d.Clone()
	if out == nil {
		out = Document{}
	}
	delete(out, FieldID)
	return out
}

// Filter is an exact-match equality predicate over top level fields.
// A string value matches that exact string; a nil value matches a field
// that is absent or null. An empty filter matches every record.
type Filter map[string]any

// Matches reports whether every filter field matches the document's field.
func (f Filter) Matches(d Document) bool {
	for k, want := range f {
		got, present := d[k]
		switch want := want.(type) {
		case nil:
			if present && got != nil {
				return false
			}
		case string:
			if s, ok := got.(string); !ok || s != want {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// Page selects a window of a result set. Limit 0 means no limit.
type Page struct {
	Skip  int64
	Limit int64
}

// PageOf converts page-number pagination into an offset window.
func PageOf(page, size int64) Page {
	return Page{Skip: page * size, Limit: size}
}

// InsertResult acknowledges an insert
type InsertResult struct {
	Acknowledged bool `json:"acknowledged"`
	InsertedID   ID   `json:"insertedId"`
}

// UpdateResult acknowledges an update or upsert
type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
	UpsertedCount int64 `json:"upsertedCount"`
	UpsertedID    *ID   `json:"upsertedId"`
}

// DeleteResult acknowledges a delete
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}
