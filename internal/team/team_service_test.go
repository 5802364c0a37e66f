package team_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nikile1123/hris-backend/internal/team"
	teamerrors "github.com/nikile1123/hris-backend/internal/team/errors"
)

func setupTeamService(t *testing.T) team.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&team.Team{}))
	return team.NewService(team.NewRepository(db), zap.NewNop())
}

func TestTeamService_Create(t *testing.T) {
	ctx := context.Background()
	svc := setupTeamService(t)

	t.Run("success", func(t *testing.T) {
		resp, err := svc.Create(ctx, team.CreateTeamRequest{Name: "Platform"})
		require.NoError(t, err)

		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, "Platform", resp.Name)
		assert.NotEmpty(t, resp.CreatedAt)
	})

	t.Run("duplicate name is a conflict", func(t *testing.T) {
		_, err := svc.Create(ctx, team.CreateTeamRequest{Name: "Platform"})
		assert.ErrorIs(t, err, teamerrors.ErrTeamAlreadyExists)
	})
}

func TestTeamService_GetByID(t *testing.T) {
	ctx := context.Background()
	svc := setupTeamService(t)

	created, err := svc.Create(ctx, team.CreateTeamRequest{Name: "Search"})
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		got, err := svc.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, got)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		_, err := svc.GetByID(ctx, uuid.New().String())
		assert.ErrorIs(t, err, teamerrors.ErrTeamNotFound)
	})

	t.Run("malformed id is invalid input", func(t *testing.T) {
		_, err := svc.GetByID(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, teamerrors.ErrInvalidTeamID)
	})
}

func TestTeamService_Update(t *testing.T) {
	ctx := context.Background()
	svc := setupTeamService(t)

	created, err := svc.Create(ctx, team.CreateTeamRequest{Name: "Search"})
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		got, err := svc.Update(ctx, created.ID, team.UpdateTeamRequest{Name: "Discovery"})
		require.NoError(t, err)
		assert.Equal(t, "Discovery", got.Name)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		_, err := svc.Update(ctx, uuid.New().String(), team.UpdateTeamRequest{Name: "Nope"})
		assert.ErrorIs(t, err, teamerrors.ErrTeamNotFound)
	})
}

func TestTeamService_Delete(t *testing.T) {
	ctx := context.Background()
	svc := setupTeamService(t)

	created, err := svc.Create(ctx, team.CreateTeamRequest{Name: "Search"})
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		assert.NoError(t, svc.Delete(ctx, created.ID))

		_, err := svc.GetByID(ctx, created.ID)
		assert.ErrorIs(t, err, teamerrors.ErrTeamNotFound)
	})

	t.Run("deleting a missing team is not found", func(t *testing.T) {
		assert.ErrorIs(t, svc.Delete(ctx, created.ID), teamerrors.ErrTeamNotFound)
	})
}
