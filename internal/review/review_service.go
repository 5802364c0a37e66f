package review

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nikile1123/hris-backend/internal/events"
	"github.com/nikile1123/hris-backend/internal/messaging/rabbit"
	reviewerrors "github.com/nikile1123/hris-backend/internal/review/errors"
	"github.com/nikile1123/hris-backend/internal/shared/apperror"
)

const reviewDateLayout = "2006-01-02"

type Service interface {
	Create(ctx context.Context, req CreateReviewRequest) (ReviewResponse, error)
	GetAll(ctx context.Context) ([]ReviewResponse, error)
	GetByID(ctx context.Context, id string) (ReviewResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]ReviewResponse, error)
	Update(ctx context.Context, id string, req UpdateReviewRequest) (ReviewResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *gorm.DB
	repo   Repository
	outbox rabbit.OutboxRepository
	logger *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	outboxRepo rabbit.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("review.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("review.service")
	}
	return &service{db: db, repo: repo, outbox: outboxRepo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateReviewRequest) (ReviewResponse, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return ReviewResponse{}, reviewerrors.ErrInvalidEmployeeID
	}
	teamID, err := uuid.Parse(req.TeamID)
	if err != nil {
		return ReviewResponse{}, reviewerrors.ErrInvalidEmployeeID
	}
	reviewDate, err := time.Parse(reviewDateLayout, req.ReviewDate)
	if err != nil {
		return ReviewResponse{}, reviewerrors.ErrInvalidReviewDate
	}

	rev := &PerformanceReview{
		ID:                  uuid.New(),
		EmployeeID:          employeeID,
		TeamID:              teamID,
		ReviewDate:          reviewDate,
		Performance:         req.Performance,
		SoftSkills:          req.SoftSkills,
		Independence:        req.Independence,
		AspirationForGrowth: req.AspirationForGrowth,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, rev); err != nil {
			return err
		}
		return s.emitEvent(ctx, tx, events.ReviewCreated, rev, scoresMessage("Review created", rev))
	})
	if err != nil {
		s.logger.Error("create review failed", zap.Error(err))
		return ReviewResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create review success", zap.String("review_id", rev.ID.String()))
	return mapToResponse(*rev), nil
}

func (s *service) GetAll(ctx context.Context) ([]ReviewResponse, error) {
	revs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(revs), nil
}

func (s *service) GetByID(ctx context.Context, id string) (ReviewResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ReviewResponse{}, reviewerrors.ErrInvalidReviewID
	}
	rev, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ReviewResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*rev), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]ReviewResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, reviewerrors.ErrInvalidEmployeeID
	}
	revs, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(revs), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateReviewRequest) (ReviewResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ReviewResponse{}, reviewerrors.ErrInvalidReviewID
	}
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return ReviewResponse{}, reviewerrors.ErrInvalidEmployeeID
	}
	teamID, err := uuid.Parse(req.TeamID)
	if err != nil {
		return ReviewResponse{}, reviewerrors.ErrInvalidEmployeeID
	}
	reviewDate, err := time.Parse(reviewDateLayout, req.ReviewDate)
	if err != nil {
		return ReviewResponse{}, reviewerrors.ErrInvalidReviewDate
	}

	var rev *PerformanceReview
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		rev, err = qtx.FindByID(ctx, id)
		if err != nil {
			return err
		}

		rev.EmployeeID = employeeID
		rev.TeamID = teamID
		rev.ReviewDate = reviewDate
		rev.Performance = req.Performance
		rev.SoftSkills = req.SoftSkills
		rev.Independence = req.Independence
		rev.AspirationForGrowth = req.AspirationForGrowth

		if err := qtx.Save(ctx, rev); err != nil {
			return err
		}
		return s.emitEvent(ctx, tx, events.ReviewUpdated, rev, scoresMessage("Review updated", rev))
	})
	if err != nil {
		s.logger.Error("update review failed", zap.String("review_id", id), zap.Error(err))
		return ReviewResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("update review success", zap.String("review_id", id))
	return mapToResponse(*rev), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return reviewerrors.ErrInvalidReviewID
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		rev, err := qtx.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := qtx.Delete(ctx, id); err != nil {
			return err
		}

		message := fmt.Sprintf("Review deleted which was created on %s", rev.ReviewDate.Format(reviewDateLayout))
		return s.emitEvent(ctx, tx, events.ReviewDeleted, rev, message)
	})
	if err != nil {
		s.logger.Error("delete review failed", zap.String("review_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	s.logger.Info("delete review success", zap.String("review_id", id))
	return nil
}

func (s *service) emitEvent(ctx context.Context, tx *gorm.DB, eventType string, rev *PerformanceReview, message string) error {
	return s.outbox.WithTx(tx).Create(ctx, rabbit.OutboxEvent{
		EventType:  eventType,
		EmployeeID: rev.EmployeeID,
		TeamID:     rev.TeamID,
		Message:    message,
	})
}

func scoresMessage(prefix string, rev *PerformanceReview) string {
	return fmt.Sprintf(
		"%s on %s, Performance: %d, Soft skills: %d, Independence: %d, Aspiration for growth: %d",
		prefix,
		rev.ReviewDate.Format(reviewDateLayout),
		rev.Performance,
		rev.SoftSkills,
		rev.Independence,
		rev.AspirationForGrowth,
	)
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return reviewerrors.ErrReviewNotFound
	}
	return err
}

func mapToResponse(rev PerformanceReview) ReviewResponse {
	return ReviewResponse{
		ID:                  rev.ID.String(),
		EmployeeID:          rev.EmployeeID.String(),
		TeamID:              rev.TeamID.String(),
		ReviewDate:          rev.ReviewDate.Format(reviewDateLayout),
		Performance:         rev.Performance,
		SoftSkills:          rev.SoftSkills,
		Independence:        rev.Independence,
		AspirationForGrowth: rev.AspirationForGrowth,
	}
}

func mapToListResponse(revs []PerformanceReview) []ReviewResponse {
	res := make([]ReviewResponse, len(revs))
	for i, r := range revs {
		res[i] = mapToResponse(r)
	}
	return res
}
