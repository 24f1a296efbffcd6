package service

import (
	"context"
	"errors"
	"sync"

	"github.com/academia-alliance/academia/adapters/store"
	"github.com/academia-alliance/academia/core"
	"github.com/academia-alliance/academia/internal/logger"
	"github.com/academia-alliance/academia/internal/metrics"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []core.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e core.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) types() []core.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]core.EventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

var errPublish = errors.New("stream unavailable")

func newAssignments() (*AssignmentService, *store.MemoryStore, *recordingPublisher) {
	st := store.NewMemoryStore().(*store.MemoryStore)
	pub := &recordingPublisher{}
	return NewAssignmentService(st, pub, logger.Nop(), metrics.New()), st, pub
}

func newSubmissions() (*SubmissionService, *store.MemoryStore, *recordingPublisher) {
	st := store.NewMemoryStore().(*store.MemoryStore)
	pub := &recordingPublisher{}
	return NewSubmissionService(st, pub, logger.Nop(), metrics.New()), st, pub
}
