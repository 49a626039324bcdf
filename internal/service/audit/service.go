package audit

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-agenda/internal/model"
	"github.com/jwalitptl/clinic-agenda/pkg/logger"
)

const defaultMaxEntries = 500

type Service struct {
	mu         sync.Mutex
	entries    []*model.AuditLog
	maxEntries int
	logger     *logger.Logger
	now        func() time.Time
}

// NewService keeps at most maxEntries entries in memory, dropping the
// oldest first. maxEntries <= 0 selects the default.
func NewService(log *logger.Logger, maxEntries int) *Service {
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}
	return &Service{
		maxEntries: maxEntries,
		logger:     log.With("audit"),
		now:        time.Now,
	}
}

type LogOptions struct {
	Changes  interface{}
	Metadata interface{}
}

// Log creates an audit log entry
func (s *Service) Log(ctx context.Context, action, entityType, entityID string, opts *LogOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var changes, metadata json.RawMessage
	var err error

	if opts != nil {
		if opts.Changes != nil {
			changes, err = json.Marshal(opts.Changes)
			if err != nil {
				return err
			}
		}
		if opts.Metadata != nil {
			metadata, err = json.Marshal(opts.Metadata)
			if err != nil {
				return err
			}
		}
	}

	entry := &model.AuditLog{
		ID:         uuid.New(),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Changes:    changes,
		Metadata:   metadata,
		CreatedAt:  s.now(),
	}

	s.mu.Lock()
	s.entries = append(s.entries, entry)
	if over := len(s.entries) - s.maxEntries; over > 0 {
		s.entries = append([]*model.AuditLog(nil), s.entries[over:]...)
	}
	s.mu.Unlock()

	s.logger.Info("audit",
		"audit_id", entry.ID.String(),
		"action", action,
		"entity_type", entityType,
		"entity_id", entityID,
	)

	return nil
}

// Entries returns the retained trail, oldest first.
func (s *Service) Entries() []*model.AuditLog {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*model.AuditLog, len(s.entries))
	copy(out, s.entries)
	return out
}
