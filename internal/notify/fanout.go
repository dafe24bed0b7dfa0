package notify

import (
	"sync"

	"github.com/tastebook/backend/internal/models"
	"github.com/tastebook/backend/internal/repositories"
	"go.uber.org/zap"
)

// Event describes a notification to be fanned out after an interaction.
// Callers must suppress self-notification (recipient == sender) before
// emitting.
type Event struct {
	RecipientID uint
	SenderID    uint
	Type        string
	TargetID    string
	TargetType  string
	Message     string
}

// Fanout is a best-effort notification dispatcher. Emit never blocks the
// caller and never reports failure; a single worker drains the queue and
// persists each event, logging and swallowing errors. There is no retry and
// no ordering guarantee relative to the caller's response.
type Fanout struct {
	events chan Event
	repo   repositories.NotificationRepository
	log    *zap.Logger
	wg     sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewFanout starts the worker goroutine. buffer bounds the queue; events
// arriving while it is full are dropped with a log line.
func NewFanout(repo repositories.NotificationRepository, log *zap.Logger, buffer int) *Fanout {
	f := &Fanout{
		events: make(chan Event, buffer),
		repo:   repo,
		log:    log,
	}
	f.wg.Add(1)
	go f.run()
	return f
}

// Emit enqueues the event and returns immediately. Events emitted after Close
// or while the queue is full are dropped with a log line.
func (f *Fanout) Emit(e Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		f.log.Warn("notification fanout closed, dropping event",
			zap.String("type", e.Type),
			zap.Uint("recipient_id", e.RecipientID),
		)
		return
	}
	select {
	case f.events <- e:
	default:
		f.log.Warn("notification queue full, dropping event",
			zap.String("type", e.Type),
			zap.Uint("recipient_id", e.RecipientID),
		)
	}
}

// Close stops accepting events and waits for the queue to drain. Safe to call
// more than once; in-flight handlers that emit during shutdown lose the event
// instead of panicking.
func (f *Fanout) Close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	close(f.events)
	f.mu.Unlock()
	f.wg.Wait()
}

func (f *Fanout) run() {
	defer f.wg.Done()
	for e := range f.events {
		notification := &models.Notification{
			Type:        e.Type,
			ActorID:     e.SenderID,
			RecipientID: e.RecipientID,
			TargetID:    e.TargetID,
			TargetType:  e.TargetType,
			Message:     e.Message,
		}
		if err := f.repo.CreateNotification(notification); err != nil {
			f.log.Error("failed to persist notification",
				zap.String("type", e.Type),
				zap.Uint("recipient_id", e.RecipientID),
				zap.Error(err),
			)
		}
	}
}
