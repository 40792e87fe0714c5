package estimation

import (
	"context"
	"errors"
	"fmt"

	"github.com/estimatepro/estimatepro/internal/event_bus"
	"github.com/estimatepro/estimatepro/pkg/user"
	log "github.com/sirupsen/logrus"
)

var (
	ErrEstimationNotFound      = errors.New("estimation not found")
	ErrContingencyOutOfRange   = errors.New("contingency percent must be between 0 and 100")
	ErrEstimationDataInvalid   = errors.New("estimation data is invalid")
	ErrEstimationStatusUnknown = errors.New("unknown estimation status")
)

type Service interface {
	Create(ctx context.Context, estimation Estimation) (Estimation, error)
	GetAll(ctx context.Context) ([]Estimation, error)
	GetById(ctx context.Context, id int) (Estimation, error)
	Update(ctx context.Context, estimation Estimation) (Estimation, error)
	UpdateStatus(ctx context.Context, id int, status Status) error
	Delete(ctx context.Context, id int) error
}

type ServiceImpl struct {
	repo Repo
	bus  *event_bus.EventBus
}

func NewEstimationService(repo Repo, bus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, bus: bus}
}

// recompute refreshes every derived field from the current breakdown and
// timeline. Called on every write; inputs are tens of items, so there is no
// dirty tracking.
func recompute(estimation *Estimation) {
	totals := ComputeTotals(estimation.Categories, estimation.ContingencyPercent)
	estimation.Subtotal = totals.Subtotal
	estimation.ContingencyAmount = totals.ContingencyAmount
	estimation.FinalCost = totals.FinalCost
	estimation.Progress = ComputeProgress(estimation.Timeline.Phases)
}

func validate(estimation Estimation) error {
	if estimation.ProjectID == 0 || estimation.ProjectName == "" {
		return fmt.Errorf("%w: project reference is required", ErrEstimationDataInvalid)
	}
	if estimation.ContingencyPercent < 0 || estimation.ContingencyPercent > 100 {
		return ErrContingencyOutOfRange
	}
	return nil
}

func (s *ServiceImpl) Create(ctx context.Context, estimation Estimation) (Estimation, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Estimation{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := validate(estimation); err != nil {
		return Estimation{}, err
	}
	if estimation.Status == "" {
		estimation.Status = StatusDraft
	}
	if !estimation.Status.IsValid() {
		return Estimation{}, ErrEstimationStatusUnknown
	}
	if estimation.RiskLevel == "" {
		estimation.RiskLevel = RiskMedium
	}
	recompute(&estimation)

	id, err := s.repo.Store(ctx, userId, estimation)
	if err != nil {
		return Estimation{}, err
	}
	estimation.ID = id

	s.publish(ctx, event_bus.EstimationCreated, estimation)
	return estimation, nil
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]Estimation, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAll(ctx, userId)
}

func (s *ServiceImpl) GetById(ctx context.Context, id int) (Estimation, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Estimation{}, fmt.Errorf("failed to get current user: %w", err)
	}
	found, err := s.repo.FindById(ctx, userId, id)
	if err != nil {
		return Estimation{}, err
	}
	if found == nil {
		return Estimation{}, ErrEstimationNotFound
	}
	return *found, nil
}

// Update replaces the estimation and recomputes all derived fields.
// Concurrent edits are not coordinated: the last write wins.
func (s *ServiceImpl) Update(ctx context.Context, estimation Estimation) (Estimation, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Estimation{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := validate(estimation); err != nil {
		return Estimation{}, err
	}
	if !estimation.Status.IsValid() {
		return Estimation{}, ErrEstimationStatusUnknown
	}
	recompute(&estimation)

	updated, err := s.repo.Update(ctx, userId, estimation)
	if err != nil {
		return Estimation{}, err
	}
	if !updated {
		log.Warnf("estimation not updated, probably because it does not exist (%d) or the user (%d) is not the owner", estimation.ID, userId)
		return Estimation{}, ErrEstimationNotFound
	}

	s.publish(ctx, event_bus.EstimationUpdated, estimation)
	return estimation, nil
}

func (s *ServiceImpl) UpdateStatus(ctx context.Context, id int, status Status) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	if !status.IsValid() {
		return ErrEstimationStatusUnknown
	}
	updated, err := s.repo.UpdateStatus(ctx, userId, id, status)
	if err != nil {
		return err
	}
	if !updated {
		return ErrEstimationNotFound
	}
	return nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	found, err := s.repo.FindById(ctx, userId, id)
	if err != nil {
		return err
	}
	if found == nil {
		return ErrEstimationNotFound
	}

	deleted, err := s.repo.Delete(ctx, userId, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrEstimationNotFound
	}

	s.publish(ctx, event_bus.EstimationDeleted, *found)
	return nil
}

func (s *ServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, estimation Estimation) {
	if s.bus == nil {
		return
	}
	event := event_bus.NewEvent(ctx, eventType, event_bus.EstimationEvent{
		EstimationID: estimation.ID,
		ProjectID:    estimation.ProjectID,
		ProjectName:  estimation.ProjectName,
		FinalCost:    estimation.FinalCost,
		Status:       string(estimation.Status),
	})
	if err := s.bus.Publish(event); err != nil {
		log.Warnf("failed to publish %s event: %v", eventType, err)
	}
}
