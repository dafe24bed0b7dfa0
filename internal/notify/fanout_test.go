package notify

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tastebook/backend/internal/models"
	"go.uber.org/zap"
)

type stubNotificationRepo struct {
	mu      sync.Mutex
	created []models.Notification
	fail    bool
}

func (s *stubNotificationRepo) CreateNotification(n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("db down")
	}
	s.created = append(s.created, *n)
	return nil
}

func (s *stubNotificationRepo) GetByRecipientID(uint, int, int) ([]models.Notification, int64, error) {
	return nil, 0, nil
}
func (s *stubNotificationRepo) GetUnreadCount(uint) (int64, error) { return 0, nil }
func (s *stubNotificationRepo) MarkAsRead(uint, uint) error        { return nil }
func (s *stubNotificationRepo) MarkAllAsRead(uint) error           { return nil }

func TestFanoutPersistsEvents(t *testing.T) {
	repo := &stubNotificationRepo{}
	f := NewFanout(repo, zap.NewNop(), 8)

	f.Emit(Event{
		RecipientID: 2,
		SenderID:    1,
		Type:        models.NotificationLikeRecipe,
		TargetID:    "abc",
		TargetType:  "recipe",
		Message:     "Alice liked your recipe",
	})
	f.Close()

	assert.Len(t, repo.created, 1)
	assert.Equal(t, models.NotificationLikeRecipe, repo.created[0].Type)
	assert.Equal(t, uint(2), repo.created[0].RecipientID)
	assert.Equal(t, uint(1), repo.created[0].ActorID)
}

func TestFanoutCloseDrainsQueue(t *testing.T) {
	repo := &stubNotificationRepo{}
	f := NewFanout(repo, zap.NewNop(), 64)

	for i := 0; i < 50; i++ {
		f.Emit(Event{RecipientID: uint(i), Type: models.NotificationFollow})
	}
	f.Close()

	assert.Len(t, repo.created, 50)
}

func TestFanoutEmitAfterCloseDropsEvent(t *testing.T) {
	repo := &stubNotificationRepo{}
	f := NewFanout(repo, zap.NewNop(), 8)
	f.Close()

	// A handler still in flight during shutdown loses its event, it must
	// not bring the process down.
	assert.NotPanics(t, func() {
		f.Emit(Event{RecipientID: 1, Type: models.NotificationSystem})
	})
	assert.Empty(t, repo.created)
}

func TestFanoutCloseIdempotent(t *testing.T) {
	f := NewFanout(&stubNotificationRepo{}, zap.NewNop(), 8)
	f.Close()
	assert.NotPanics(t, f.Close)
}

func TestFanoutSwallowsPersistErrors(t *testing.T) {
	repo := &stubNotificationRepo{fail: true}
	f := NewFanout(repo, zap.NewNop(), 8)

	// Emit never reports the failure back, the worker just logs it.
	f.Emit(Event{RecipientID: 1, Type: models.NotificationSystem})
	f.Close()

	assert.Empty(t, repo.created)
}
