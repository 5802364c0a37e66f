package employee

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	employeeerrors "github.com/nikile1123/hris-backend/internal/employee/errors"
	"github.com/nikile1123/hris-backend/internal/events"
	"github.com/nikile1123/hris-backend/internal/messaging/rabbit"
	"github.com/nikile1123/hris-backend/internal/shared/contextutil"
)

const EmployeeOptionsKey = "employees:options"

// maxAncestorDepth bounds the supervisor walk. Acyclicity should make a
// loop impossible, but a pre-existing corruption must not hang the walk.
const maxAncestorDepth = 128

type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, page, limit int, sortBy, order string) ([]EmployeeResponse, int64, error)
	GetOptions(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	GetHierarchy(ctx context.Context, id string) (HierarchyResponse, error)
	IsAncestor(ctx context.Context, candidateID, employeeID string) (bool, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *gorm.DB
	repo   Repository
	outbox rabbit.OutboxRepository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	outboxRepo rabbit.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("team_id", req.TeamID),
		zap.String("email", req.Email),
	)

	teamID, err := uuid.Parse(req.TeamID)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidTeamID
	}
	supervisorID, err := parseOptionalUUID(req.SupervisorID)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidSupervisorID
	}

	empl := &Employee{
		ID:           uuid.New(),
		TeamID:       teamID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Position:     req.Position,
		SupervisorID: supervisorID,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		if supervisorID != nil {
			if _, err := qtx.SupervisorOf(ctx, supervisorID.String()); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return employeeerrors.ErrSupervisorNotFound
				}
				return err
			}
		}

		if err := qtx.Create(ctx, empl); err != nil {
			return err
		}
		if supervisorID != nil {
			if err := qtx.AdjustSubordinates(ctx, supervisorID.String(), 1); err != nil {
				return err
			}
		}

		message := fmt.Sprintf("Employee %s %s created.", empl.FirstName, empl.LastName)
		return s.emitEvent(ctx, tx, events.EmployeeCreated, empl, message)
	})
	if err != nil {
		s.logger.Error("create employee failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.invalidateOptions(ctx)

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
	)
	return mapToResponse(*empl), nil
}

// IsAncestor walks supervisor pointers starting at candidateID and
// reports whether employeeID is reached before the chain terminates.
func (s *service) IsAncestor(ctx context.Context, candidateID, employeeID string) (bool, error) {
	return isAncestor(ctx, s.repo, candidateID, employeeID)
}

func isAncestor(ctx context.Context, repo Repository, candidateID, employeeID string) (bool, error) {
	current := candidateID
	for depth := 0; depth < maxAncestorDepth; depth++ {
		if current == employeeID {
			return true, nil
		}
		supervisorID, err := repo.SupervisorOf(ctx, current)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Dangling pointer terminates the walk.
			return false, nil
		}
		if err != nil {
			return false, err
		}
		if supervisorID == nil {
			return false, nil
		}
		current = supervisorID.String()
	}
	return false, employeeerrors.ErrHierarchyTooDeep
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update employee requested",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)

	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	teamID, err := uuid.Parse(req.TeamID)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidTeamID
	}
	newSupervisorID, err := parseOptionalUUID(req.SupervisorID)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidSupervisorID
	}

	var empl *Employee
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		empl, err = qtx.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if !uuidPtrEqual(empl.SupervisorID, newSupervisorID) && newSupervisorID != nil {
			if _, err := qtx.SupervisorOf(ctx, newSupervisorID.String()); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return employeeerrors.ErrSupervisorNotFound
				}
				return err
			}

			cycle, err := isAncestor(ctx, qtx, newSupervisorID.String(), id)
			if err != nil {
				return err
			}
			if cycle {
				return employeeerrors.ErrCycleDetected
			}
		}

		if !uuidPtrEqual(empl.SupervisorID, newSupervisorID) {
			if empl.SupervisorID != nil {
				if err := qtx.AdjustSubordinates(ctx, empl.SupervisorID.String(), -1); err != nil {
					return err
				}
			}
			if newSupervisorID != nil {
				if err := qtx.AdjustSubordinates(ctx, newSupervisorID.String(), 1); err != nil {
					return err
				}
			}
		}

		empl.TeamID = teamID
		empl.FirstName = req.FirstName
		empl.LastName = req.LastName
		empl.Email = req.Email
		empl.Position = req.Position
		empl.SupervisorID = newSupervisorID

		if err := qtx.Save(ctx, empl); err != nil {
			return err
		}

		// The event is recorded even when only scalar fields changed.
		message := fmt.Sprintf("Employee %s %s updated with id %s.", empl.FirstName, empl.LastName, empl.ID)
		return s.emitEvent(ctx, tx, events.EmployeeUpdated, empl, message)
	})
	if err != nil {
		s.logger.Error("update employee failed",
			zap.String("request_id", rid),
			zap.String("employee_id", id),
			zap.Error(err),
		)
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.invalidateOptions(ctx)

	s.logger.Info("update employee success", zap.String("employee_id", id))
	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete employee requested",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)

	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		empl, err := qtx.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		subordinates := empl.SubordinatesCount
		grandparent := empl.SupervisorID

		// Cascading reparent: direct subordinates are promoted to the
		// deleted employee's own supervisor.
		if subordinates > 0 {
			if err := qtx.ReassignSubordinates(ctx, id, grandparent); err != nil {
				return err
			}
			if grandparent != nil {
				if err := qtx.AdjustSubordinates(ctx, grandparent.String(), subordinates); err != nil {
					return err
				}
			}
		}
		if grandparent != nil {
			if err := qtx.AdjustSubordinates(ctx, grandparent.String(), -1); err != nil {
				return err
			}
		}

		if err := qtx.Delete(ctx, id); err != nil {
			return err
		}

		message := fmt.Sprintf("Employee %s %s deleted.", empl.FirstName, empl.LastName)
		return s.emitEvent(ctx, tx, events.EmployeeDeleted, empl, message)
	})
	if err != nil {
		s.logger.Error("delete employee failed",
			zap.String("request_id", rid),
			zap.String("employee_id", id),
			zap.Error(err),
		)
		return mapRepositoryError(err)
	}

	s.invalidateOptions(ctx)

	s.logger.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

func (s *service) GetHierarchy(ctx context.Context, id string) (HierarchyResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return HierarchyResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return HierarchyResponse{}, mapRepositoryError(err)
	}

	var manager *EmployeeResponse
	if empl.SupervisorID != nil {
		m, err := s.repo.FindByID(ctx, empl.SupervisorID.String())
		switch {
		case err == nil:
			resp := mapToResponse(*m)
			manager = &resp
		case errors.Is(err, gorm.ErrRecordNotFound):
			// dangling supervisor pointer, report no manager
		default:
			return HierarchyResponse{}, mapRepositoryError(err)
		}
	}

	subordinates, err := s.repo.FindBySupervisor(ctx, id)
	if err != nil {
		return HierarchyResponse{}, mapRepositoryError(err)
	}
	colleagues, err := s.repo.FindColleagues(ctx, empl.TeamID.String(), id)
	if err != nil {
		return HierarchyResponse{}, mapRepositoryError(err)
	}

	return HierarchyResponse{
		Manager:      manager,
		Subordinates: mapToListResponse(subordinates),
		Colleagues:   mapToListResponse(colleagues),
	}, nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*empl), nil
}

var sortableColumns = map[string]bool{
	"first_name": true,
	"last_name":  true,
	"email":      true,
	"position":   true,
	"created_at": true,
}

func (s *service) GetAll(ctx context.Context, page, limit int, sortBy, order string) ([]EmployeeResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if !sortableColumns[sortBy] {
		sortBy = "created_at"
	}
	if order != "desc" {
		order = "asc"
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, mapRepositoryError(err)
	}
	empls, err := s.repo.FindPage(ctx, (page-1)*limit, limit, sortBy, order)
	if err != nil {
		return nil, 0, mapRepositoryError(err)
	}
	return mapToListResponse(empls), total, nil
}

func (s *service) GetOptions(ctx context.Context) ([]EmployeeResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, EmployeeOptionsKey).Result(); err == nil {
			var resp []EmployeeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(EmployeeOptionsKey, func() (interface{}, error) {
		empls, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(empls)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, EmployeeOptionsKey, jsonData, 1*time.Hour)
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]EmployeeResponse), nil
}

func (s *service) emitEvent(ctx context.Context, tx *gorm.DB, eventType string, empl *Employee, message string) error {
	return s.outbox.WithTx(tx).Create(ctx, rabbit.OutboxEvent{
		EventType:  eventType,
		EmployeeID: empl.ID,
		TeamID:     empl.TeamID,
		Message:    message,
	})
}

func (s *service) invalidateOptions(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, EmployeeOptionsKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", EmployeeOptionsKey),
		)
	}
}

func mapToResponse(empl Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:                empl.ID.String(),
		TeamID:            empl.TeamID.String(),
		FirstName:         empl.FirstName,
		LastName:          empl.LastName,
		Email:             empl.Email,
		Position:          empl.Position,
		SupervisorID:      uuidToString(empl.SupervisorID),
		SubordinatesCount: empl.SubordinatesCount,
	}
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}

func parseOptionalUUID(v string) (*uuid.UUID, error) {
	if v == "" {
		return nil, nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func uuidPtrEqual(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func uuidToString(v *uuid.UUID) string {
	if v == nil {
		return ""
	}
	return v.String()
}
