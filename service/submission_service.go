package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/academia-alliance/academia/core"
	"github.com/academia-alliance/academia/internal/logger"
	"github.com/academia-alliance/academia/internal/metrics"
	"github.com/academia-alliance/academia/ports"
	"github.com/shopspring/decimal"
)

// Grade is the grading update applied to a submission. Values are stored
// exactly as submitted; an absent field is written as null.
type Grade struct {
	ObtainedMarks any `json:"obtainedMarks"`
	Feedback      any `json:"feedback"`
	Status        any `json:"status"`
}

// Fields returns exactly the three graded fields.
func (g Grade) Fields() core.Document {
	return core.Document{
		core.FieldObtainedMarks: g.ObtainedMarks,
		core.FieldFeedback:      g.Feedback,
		core.FieldStatus:        g.Status,
	}
}

// numericMarks reads marks sent either as a JSON number or a numeric string.
// Letter grades and other values report false.
func numericMarks(v any) (decimal.Decimal, bool) {
	switch m := v.(type) {
	case float64:
		return decimal.NewFromFloat(m), true
	case int:
		return decimal.NewFromInt(int64(m)), true
	case int64:
		return decimal.NewFromInt(m), true
	case json.Number:
		d, err := decimal.NewFromString(m.String())
		return d, err == nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(m))
		return d, err == nil
	}
	return decimal.Decimal{}, false
}

// SubmissionService is the submission workflow
type SubmissionService struct {
	store   ports.RecordStore
	events  notifier
	log     logger.Logger
	metrics *metrics.Metrics
}

// NewSubmissionService creates a new submission workflow over store
func NewSubmissionService(
	store ports.RecordStore,
	eventPub ports.EventPublisher,
	log logger.Logger,
	m *metrics.Metrics,
) *SubmissionService {
	log = log.Named("submissions")
	return &SubmissionService{
		store:   store,
		events:  newNotifier(eventPub, log),
		log:     log,
		metrics: m,
	}
}

// Create inserts a submission made by the authenticated identity.
// The initial status is whatever the caller sends.
func (s *SubmissionService) Create(ctx context.Context, identity core.Identity, doc core.Document) (core.InsertResult, error) {
	if err := core.Authorize(identity, doc.String(core.FieldExamineeEmail)); err != nil {
		s.metrics.AuthRejected("forbidden")
		s.log.Debug(ctx, "examinee does not match session",
			logger.String("email", identity.Email),
			logger.String("examinee", doc.String(core.FieldExamineeEmail)))
		return core.InsertResult{}, err
	}

	res, err := s.store.Insert(ctx, doc.WithoutID())
	if err != nil {
		return core.InsertResult{}, fmt.Errorf("failed to create submission: %w", err)
	}

	s.metrics.SubmissionCreated()
	s.events.emit(ctx, core.EventSubmissionCreated, res.InsertedID, identity.Email)
	return res, nil
}

// ListMine returns the submissions of email, which must be the caller's own
func (s *SubmissionService) ListMine(ctx context.Context, identity core.Identity, email string) ([]core.Document, error) {
	if err := core.Authorize(identity, email); err != nil {
		s.metrics.AuthRejected("forbidden")
		return nil, err
	}

	docs, err := s.store.Find(ctx, core.Filter{core.FieldExamineeEmail: email}, core.Page{})
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return docs, nil
}

// ListByStatus returns the submissions whose status equals status literally.
// A nil status selects submissions that carry no status at all.
func (s *SubmissionService) ListByStatus(ctx context.Context, status *string) ([]core.Document, error) {
	filter := core.Filter{core.FieldStatus: nil}
	if status != nil {
		filter[core.FieldStatus] = *status
	}

	docs, err := s.store.Find(ctx, filter, core.Page{})
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions by status: %w", err)
	}
	return docs, nil
}

// ListAll returns every submission
func (s *SubmissionService) ListAll(ctx context.Context) ([]core.Document, error) {
	docs, err := s.store.Find(ctx, nil, core.Page{})
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return docs, nil
}

// Grade records marks, feedback and status on the submission with id,
// inserting a record if none exists. Regrading overwrites the previous grade.
func (s *SubmissionService) Grade(ctx context.Context, id core.ID, grade Grade) (core.UpdateResult, error) {
	res, err := upsert(ctx, s.store, id, grade.Fields())
	if err != nil {
		return core.UpdateResult{}, fmt.Errorf("failed to grade submission: %w", err)
	}

	s.metrics.GradeRecorded()
	if marks, ok := numericMarks(grade.ObtainedMarks); ok {
		s.metrics.ObserveMarks(marks.InexactFloat64())
	}
	s.events.emit(ctx, core.EventSubmissionGraded, id, "")
	return res, nil
}
