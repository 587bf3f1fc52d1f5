package services

import (
	"context"

	"leave-manager/internal/models"
	"leave-manager/internal/repositories"
)

// LeaveServiceInterface defines leave application operations
type LeaveServiceInterface interface {
	ListLeaves(ctx context.Context, filter models.LeaveFilter) ([]models.LeaveApplication, error)
	GetLeave(ctx context.Context, id int64) (*models.LeaveApplication, error)
	CreateLeave(ctx context.Context, input models.LeaveInput) (*models.LeaveApplication, error)
	UpdateLeave(ctx context.Context, id int64, input models.LeaveInput) (*models.LeaveApplication, error)
	DeleteLeave(ctx context.Context, id int64) (*models.LeaveApplication, error)
}

// LeaveService implements LeaveServiceInterface
type LeaveService struct {
	leaveRepo repositories.LeaveRepositoryInterface
}

// NewLeaveService creates a new LeaveService
func NewLeaveService(leaveRepo repositories.LeaveRepositoryInterface) *LeaveService {
	return &LeaveService{leaveRepo: leaveRepo}
}

func (s *LeaveService) ListLeaves(ctx context.Context, filter models.LeaveFilter) ([]models.LeaveApplication, error) {
	return s.leaveRepo.List(ctx, filter)
}

func (s *LeaveService) GetLeave(ctx context.Context, id int64) (*models.LeaveApplication, error) {
	return s.leaveRepo.FindByID(ctx, id)
}

// CreateLeave stores a new leave application with status Pending unless one is given.
// An end date before the start date is accepted.
func (s *LeaveService) CreateLeave(ctx context.Context, input models.LeaveInput) (*models.LeaveApplication, error) {
	leave, err := leaveFromInput(input)
	if err != nil {
		return nil, err
	}
	if err := s.leaveRepo.Create(ctx, leave); err != nil {
		return nil, err
	}
	return leave, nil
}

// UpdateLeave replaces every field; an omitted status resets to Pending.
func (s *LeaveService) UpdateLeave(ctx context.Context, id int64, input models.LeaveInput) (*models.LeaveApplication, error) {
	leave, err := leaveFromInput(input)
	if err != nil {
		return nil, err
	}
	leave.ID = id
	if err := s.leaveRepo.Update(ctx, leave); err != nil {
		return nil, err
	}
	return leave, nil
}

func (s *LeaveService) DeleteLeave(ctx context.Context, id int64) (*models.LeaveApplication, error) {
	return s.leaveRepo.Delete(ctx, id)
}

func leaveFromInput(input models.LeaveInput) (*models.LeaveApplication, error) {
	verr := &ValidationError{}
	from, err := models.ParseDate(input.DateFrom)
	if err != nil {
		verr.add("date_from", MsgInvalidDate)
	}
	to, err := models.ParseDate(input.DateTo)
	if err != nil {
		verr.add("date_to", MsgInvalidDate)
	}
	if len(verr.Fields) > 0 {
		return nil, verr
	}

	status := input.Status
	if status == "" {
		status = models.StatusPending
	}
	return &models.LeaveApplication{
		DateFrom: from,
		DateTo:   to,
		Reason:   input.Reason,
		Status:   status,
		UserID:   input.UserID,
	}, nil
}
