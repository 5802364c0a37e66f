package team

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	teamerrors "github.com/nikile1123/hris-backend/internal/team/errors"
)

type Service interface {
	Create(ctx context.Context, req CreateTeamRequest) (TeamResponse, error)
	GetAll(ctx context.Context) ([]TeamResponse, error)
	GetByID(ctx context.Context, id string) (TeamResponse, error)
	Update(ctx context.Context, id string, req UpdateTeamRequest) (TeamResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("team.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("team.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateTeamRequest) (TeamResponse, error) {
	t := &Team{
		ID:   uuid.New(),
		Name: req.Name,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		s.logger.Error("create team failed", zap.Error(err))
		return TeamResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create team success", zap.String("team_id", t.ID.String()))
	return mapToResponse(*t), nil
}

func (s *service) GetAll(ctx context.Context) ([]TeamResponse, error) {
	teams, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	res := make([]TeamResponse, len(teams))
	for i, t := range teams {
		res[i] = mapToResponse(t)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (TeamResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return TeamResponse{}, teamerrors.ErrInvalidTeamID
	}
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return TeamResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*t), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateTeamRequest) (TeamResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return TeamResponse{}, teamerrors.ErrInvalidTeamID
	}

	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return TeamResponse{}, mapRepositoryError(err)
	}

	t.Name = req.Name
	if err := s.repo.Save(ctx, t); err != nil {
		s.logger.Error("update team failed", zap.String("team_id", id), zap.Error(err))
		return TeamResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("update team success", zap.String("team_id", id))
	return mapToResponse(*t), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return teamerrors.ErrInvalidTeamID
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("delete team failed", zap.String("team_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}
	if deleted == 0 {
		return teamerrors.ErrTeamNotFound
	}

	s.logger.Info("delete team success", zap.String("team_id", id))
	return nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return teamerrors.ErrTeamNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return teamerrors.ErrTeamAlreadyExists
	}
	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_team_name") {
		return teamerrors.ErrTeamAlreadyExists
	}
	return err
}

func mapToResponse(t Team) TeamResponse {
	return TeamResponse{
		ID:        t.ID.String(),
		Name:      t.Name,
		CreatedAt: t.CreatedAt.UTC().Format(time.RFC3339),
	}
}
