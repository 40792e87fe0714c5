package activity_log

import (
	"context"
	"fmt"

	"github.com/estimatepro/estimatepro/internal/event_bus"
	"github.com/estimatepro/estimatepro/pkg/user"
	log "github.com/sirupsen/logrus"
)

const defaultLimit = 10

type Service interface {
	GetRecent(ctx context.Context, limit int) ([]ActivityLog, error)
}

// ServiceImpl records a log entry for every project and estimation lifecycle
// event published on the bus, and serves the recent feed.
type ServiceImpl struct {
	repo Repo
}

func NewActivityLogService(repo Repo, bus *event_bus.EventBus) *ServiceImpl {
	s := &ServiceImpl{repo: repo}
	if bus != nil {
		s.subscribe(bus)
	}
	return s
}

func (s *ServiceImpl) subscribe(bus *event_bus.EventBus) {
	projectEvents := map[event_bus.EventType]string{
		event_bus.ProjectCreated: "created project",
		event_bus.ProjectUpdated: "updated project",
		event_bus.ProjectDeleted: "deleted project",
	}
	for eventType, verb := range projectEvents {
		event_bus.SubscribeTyped(bus, eventType, func(e event_bus.EventT[event_bus.ProjectEvent]) error {
			return s.record(e.Context(), ActivityLog{
				Type:        string(e.Type),
				Description: fmt.Sprintf("%s %q", verb, e.Data.ProjectName),
				EntityType:  "project",
				EntityID:    e.Data.ProjectID,
				CreatedAt:   e.Timestamp,
			})
		})
	}

	estimationEvents := map[event_bus.EventType]string{
		event_bus.EstimationCreated: "created estimation",
		event_bus.EstimationUpdated: "updated estimation",
		event_bus.EstimationDeleted: "deleted estimation",
	}
	for eventType, verb := range estimationEvents {
		event_bus.SubscribeTyped(bus, eventType, func(e event_bus.EventT[event_bus.EstimationEvent]) error {
			return s.record(e.Context(), ActivityLog{
				Type:        string(e.Type),
				Description: fmt.Sprintf("%s for %q", verb, e.Data.ProjectName),
				EntityType:  "estimation",
				EntityID:    e.Data.EstimationID,
				CreatedAt:   e.Timestamp,
			})
		})
	}
}

func (s *ServiceImpl) record(ctx context.Context, entry ActivityLog) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		// Events published outside a request have no user; nothing to attribute
		// the entry to, so it is dropped.
		log.Debugf("activity log entry not recorded, no user in event context: %v", err)
		return nil
	}
	if _, err := s.repo.Store(ctx, userId, entry); err != nil {
		return fmt.Errorf("could not record activity log entry: %w", err)
	}
	return nil
}

func (s *ServiceImpl) GetRecent(ctx context.Context, limit int) ([]ActivityLog, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	return s.repo.GetRecent(ctx, userId, limit)
}
