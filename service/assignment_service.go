package service

import (
	"context"
	"fmt"

	"github.com/academia-alliance/academia/core"
	"github.com/academia-alliance/academia/internal/logger"
	"github.com/academia-alliance/academia/internal/metrics"
	"github.com/academia-alliance/academia/ports"
)

// AssignmentService is the assignment catalog
type AssignmentService struct {
	store   ports.RecordStore
	events  notifier
	log     logger.Logger
	metrics *metrics.Metrics
}

// NewAssignmentService creates a new assignment catalog over store
func NewAssignmentService(
	store ports.RecordStore,
	eventPub ports.EventPublisher,
	log logger.Logger,
	m *metrics.Metrics,
) *AssignmentService {
	log = log.Named("assignments")
	return &AssignmentService{
		store:   store,
		events:  newNotifier(eventPub, log),
		log:     log,
		metrics: m,
	}
}

// Create inserts an assignment owned by the authenticated identity
func (s *AssignmentService) Create(ctx context.Context, identity core.Identity, doc core.Document) (core.InsertResult, error) {
	if err := core.Authorize(identity, doc.String(core.FieldAssignmentCreator)); err != nil {
		s.metrics.AuthRejected("forbidden")
		s.log.Debug(ctx, "assignment creator does not match session",
			logger.String("email", identity.Email),
			logger.String("creator", doc.String(core.FieldAssignmentCreator)))
		return core.InsertResult{}, err
	}

	res, err := s.store.Insert(ctx, doc.WithoutID())
	if err != nil {
		return core.InsertResult{}, fmt.Errorf("failed to create assignment: %w", err)
	}

	s.metrics.AssignmentCreated()
	s.events.emit(ctx, core.EventAssignmentCreated, res.InsertedID, identity.Email)
	return res, nil
}

// List returns one page of assignments, optionally restricted to a difficulty
func (s *AssignmentService) List(ctx context.Context, page core.Page, difficulty string) ([]core.Document, error) {
	docs, err := s.store.Find(ctx, difficultyFilter(difficulty), page)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return docs, nil
}

// Count returns how many assignments List would page over for the same difficulty
func (s *AssignmentService) Count(ctx context.Context, difficulty string) (int64, error) {
	n, err := s.store.Count(ctx, difficultyFilter(difficulty))
	if err != nil {
		return 0, fmt.Errorf("failed to count assignments: %w", err)
	}
	return n, nil
}

// Get returns the assignment with id; ok is false when there is none
func (s *AssignmentService) Get(ctx context.Context, id core.ID) (core.Document, bool, error) {
	doc, ok, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get assignment: %w", err)
	}
	return doc, ok, nil
}

// Delete removes the assignment with id. Submissions referencing it are left alone.
func (s *AssignmentService) Delete(ctx context.Context, id core.ID) (core.DeleteResult, error) {
	res, err := s.store.DeleteByID(ctx, id)
	if err != nil {
		return core.DeleteResult{}, fmt.Errorf("failed to delete assignment: %w", err)
	}

	if res.DeletedCount > 0 {
		s.events.emit(ctx, core.EventAssignmentDeleted, id, "")
	}
	return res, nil
}

// Update merges doc into the assignment with id, inserting it if absent.
// Any authenticated caller may update any assignment.
func (s *AssignmentService) Update(ctx context.Context, identity core.Identity, id core.ID, doc core.Document) (core.UpdateResult, error) {
	res, err := upsert(ctx, s.store, id, doc)
	if err != nil {
		return core.UpdateResult{}, fmt.Errorf("failed to update assignment: %w", err)
	}

	s.events.emit(ctx, core.EventAssignmentUpdated, id, identity.Email)
	return res, nil
}

func difficultyFilter(difficulty string) core.Filter {
	if difficulty == "" {
		return nil
	}
	return core.Filter{core.FieldDifficulty: difficulty}
}
