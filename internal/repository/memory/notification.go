package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-agenda/internal/model"
	"github.com/jwalitptl/clinic-agenda/internal/repository"
)

type notificationRepository struct {
	mu    sync.RWMutex
	items []*model.Notification
}

func NewNotificationRepository() repository.NotificationRepository {
	return &notificationRepository{}
}

func (r *notificationRepository) Prepend(ctx context.Context, notification *model.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *notification
	r.items = append([]*model.Notification{&stored}, r.items...)
	return nil
}

func (r *notificationRepository) List(ctx context.Context) ([]*model.Notification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.Notification, 0, len(r.items))
	for _, n := range r.items {
		c := *n
		out = append(out, &c)
	}
	return out, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id uuid.UUID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, n := range r.items {
		if n.ID == id {
			n.Read = true
			return true, nil
		}
	}
	return false, nil
}

func (r *notificationRepository) Remove(ctx context.Context, id uuid.UUID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, n := range r.items {
		if n.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *notificationRepository) UnreadCount(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, n := range r.items {
		if !n.Read {
			count++
		}
	}
	return count, nil
}
