package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/locagest-api/internal/models/shared"
	"github.com/locagest-api/internal/repository"
)

func newTenantRouter(t *testing.T, tenantID uuid.UUID) (*gin.Engine, pgxmock.PgxPoolIface) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mockPool, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mockPool.Close() })

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("tenant_id", tenantID.String())
	})
	router.Use(TenantMiddleware(
		repository.NewTenantRepository(mockPool),
		repository.NewPlanRepository(mockPool),
		zap.NewNop(),
	))
	router.POST("/subscriptions/:id/confirm-payment", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	return router, mockPool
}

func tenantStatusRow(id uuid.UUID, status shared.TenantStatus) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows([]string{
		"id", "name", "slug", "plan_id", "status", "is_active", "onboarding_completed", "created_at", "updated_at",
	}).AddRow(id, "Location Atlas", "location-atlas", nil, status, status == shared.TenantActive, true, now, now)
}

func newOnboardingRouter(t *testing.T, tenantID uuid.UUID) (*gin.Engine, pgxmock.PgxPoolIface) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mockPool, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mockPool.Close() })

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("tenant_id", tenantID.String())
	})
	router.Use(TenantOnboardingMiddleware(repository.NewTenantRepository(mockPool)))
	router.POST("/subscription/change", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	return router, mockPool
}

// Une agence active qui a une demande de changement de plan en cours
// doit toujours atteindre la route de confirmation de paiement.
func TestTenantMiddlewareLetsActiveTenantConfirm(t *testing.T) {
	tenantID := uuid.New()
	router, mock := newTenantRouter(t, tenantID)

	mock.ExpectQuery(`SELECT .+ FROM tenants WHERE id`).
		WithArgs(tenantID).
		WillReturnRows(tenantStatusRow(tenantID, shared.TenantActive))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/subscriptions/"+uuid.NewString()+"/confirm-payment", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

// Le parcours d'abonnement reste ouvert aux agences en cours
// d'inscription ou de paiement.
func TestOnboardingMiddlewareLetsPendingTenantThrough(t *testing.T) {
	for _, status := range []shared.TenantStatus{
		shared.TenantPendingSelection,
		shared.TenantPendingPayment,
		shared.TenantActive,
	} {
		t.Run(string(status), func(t *testing.T) {
			tenantID := uuid.New()
			router, mock := newOnboardingRouter(t, tenantID)

			mock.ExpectQuery(`SELECT .+ FROM tenants WHERE id`).
				WithArgs(tenantID).
				WillReturnRows(tenantStatusRow(tenantID, status))

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/subscription/change", nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestOnboardingMiddlewareBlocksSuspendedAndRejected(t *testing.T) {
	for _, status := range []shared.TenantStatus{
		shared.TenantSuspended,
		shared.TenantRejected,
	} {
		t.Run(string(status), func(t *testing.T) {
			tenantID := uuid.New()
			router, mock := newOnboardingRouter(t, tenantID)

			mock.ExpectQuery(`SELECT .+ FROM tenants WHERE id`).
				WithArgs(tenantID).
				WillReturnRows(tenantStatusRow(tenantID, status))

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/subscription/change", nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusForbidden, w.Code)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTenantMiddlewareRefusesNonActiveTenant(t *testing.T) {
	for _, status := range []shared.TenantStatus{
		shared.TenantPendingPayment,
		shared.TenantRejected,
		shared.TenantSuspended,
	} {
		t.Run(string(status), func(t *testing.T) {
			tenantID := uuid.New()
			router, mock := newTenantRouter(t, tenantID)

			mock.ExpectQuery(`SELECT .+ FROM tenants WHERE id`).
				WithArgs(tenantID).
				WillReturnRows(tenantStatusRow(tenantID, status))

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/subscriptions/"+uuid.NewString()+"/confirm-payment", nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusForbidden, w.Code)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
