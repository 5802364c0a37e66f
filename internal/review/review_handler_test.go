package review_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/nikile1123/hris-backend/internal/review"
	reviewerrors "github.com/nikile1123/hris-backend/internal/review/errors"
	"github.com/nikile1123/hris-backend/internal/shared/apperror"
)

type fakeReviewService struct {
	CreateFn        func(ctx context.Context, req review.CreateReviewRequest) (review.ReviewResponse, error)
	GetAllFn        func(ctx context.Context) ([]review.ReviewResponse, error)
	GetByIDFn       func(ctx context.Context, id string) (review.ReviewResponse, error)
	GetByEmployeeFn func(ctx context.Context, employeeID string) ([]review.ReviewResponse, error)
	UpdateFn        func(ctx context.Context, id string, req review.UpdateReviewRequest) (review.ReviewResponse, error)
	DeleteFn        func(ctx context.Context, id string) error
}

func (f *fakeReviewService) Create(ctx context.Context, req review.CreateReviewRequest) (review.ReviewResponse, error) {
	return f.CreateFn(ctx, req)
}
func (f *fakeReviewService) GetAll(ctx context.Context) ([]review.ReviewResponse, error) {
	return f.GetAllFn(ctx)
}
func (f *fakeReviewService) GetByID(ctx context.Context, id string) (review.ReviewResponse, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeReviewService) GetByEmployee(ctx context.Context, employeeID string) ([]review.ReviewResponse, error) {
	return f.GetByEmployeeFn(ctx, employeeID)
}
func (f *fakeReviewService) Update(ctx context.Context, id string, req review.UpdateReviewRequest) (review.ReviewResponse, error) {
	return f.UpdateFn(ctx, id, req)
}
func (f *fakeReviewService) Delete(ctx context.Context, id string) error {
	return f.DeleteFn(ctx, id)
}

func setupReviewRouter(svc review.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	apperror.Init()

	r := gin.New()
	api := r.Group("/api/v1")
	review.RegisterRoutes(api, review.NewHandler(svc, zap.NewNop()), zap.NewNop())
	return r
}

func TestReviewHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeReviewService{
			CreateFn: func(_ context.Context, req review.CreateReviewRequest) (review.ReviewResponse, error) {
				assert.Equal(t, 8, req.Performance)
				return review.ReviewResponse{ID: uuid.New().String()}, nil
			},
		}
		router := setupReviewRouter(svc)

		body := `{"employee_id":"` + uuid.New().String() + `","team_id":"` + uuid.New().String() +
			`","review_date":"2026-03-01","performance":8,"soft_skills":7,"independence":9,"aspiration_for_growth":6}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("invalid payload is a 400", func(t *testing.T) {
		svc := &fakeReviewService{
			CreateFn: func(context.Context, review.CreateReviewRequest) (review.ReviewResponse, error) {
				t.Fatal("service must not be called")
				return review.ReviewResponse{}, nil
			},
		}
		router := setupReviewRouter(svc)

		body := `{"employee_id":"not-a-uuid","team_id":"also-not","review_date":""}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestReviewHandler_GetAll(t *testing.T) {
	t.Run("without filter lists everything", func(t *testing.T) {
		svc := &fakeReviewService{
			GetAllFn: func(context.Context) ([]review.ReviewResponse, error) {
				return []review.ReviewResponse{{ID: uuid.New().String()}, {ID: uuid.New().String()}}, nil
			},
		}
		router := setupReviewRouter(svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/reviews", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("employee_id filter narrows the listing", func(t *testing.T) {
		employeeID := uuid.New().String()
		svc := &fakeReviewService{
			GetByEmployeeFn: func(_ context.Context, got string) ([]review.ReviewResponse, error) {
				assert.Equal(t, employeeID, got)
				return []review.ReviewResponse{{ID: uuid.New().String(), EmployeeID: employeeID}}, nil
			},
		}
		router := setupReviewRouter(svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/reviews?employee_id="+employeeID, nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestReviewHandler_Delete(t *testing.T) {
	t.Run("unknown review is a 404", func(t *testing.T) {
		svc := &fakeReviewService{
			DeleteFn: func(context.Context, string) error {
				return reviewerrors.ErrReviewNotFound
			},
		}
		router := setupReviewRouter(svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/reviews/"+uuid.New().String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
