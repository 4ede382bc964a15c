package tenant

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/locagest-api/internal/models/shared"
	tenantModels "github.com/locagest-api/internal/models/tenant"
	"github.com/locagest-api/internal/repository"
)

func newSubscriptionServiceWithMock(t *testing.T) (*SubscriptionService, pgxmock.PgxPoolIface) {
	t.Helper()

	mockPool, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mockPool.Close() })

	service := NewSubscriptionService(
		mockPool,
		repository.NewTenantRepository(mockPool),
		repository.NewPlanRepository(mockPool),
		repository.NewSubscriptionRepository(mockPool),
		repository.NewUsageRepository(mockPool),
		zap.NewNop(),
	)
	return service, mockPool
}

func tenantRow(id uuid.UUID) *pgxmock.Rows {
	return tenantRowWithStatus(id, shared.TenantActive)
}

func tenantRowWithStatus(id uuid.UUID, status shared.TenantStatus) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows([]string{
		"id", "name", "slug", "plan_id", "status", "is_active", "onboarding_completed", "created_at", "updated_at",
	}).AddRow(id, "Location Atlas", "location-atlas", nil, status, status == shared.TenantActive, true, now, now)
}

func planRow(id uuid.UUID, maxVehicles, maxUsers, maxContracts, maxClients int, active bool) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows([]string{
		"id", "name", "description", "max_vehicles", "max_users", "max_contracts", "max_clients",
		"module_assistance", "price_6_months", "price_12_months", "discount_6_months", "discount_12_months",
		"is_active", "created_at", "updated_at",
	}).AddRow(id, "Essentiel", "", maxVehicles, maxUsers, maxContracts, maxClients,
		false, 400.0, 700.0, 0.0, 10.0, active, now, now)
}

func usageRow(vehicles, users, contracts, clients int) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"vehicles", "users", "contracts", "clients"}).
		AddRow(vehicles, users, contracts, clients)
}

func TestChangePlanBlockedOnQuotaWithoutRecourse(t *testing.T) {
	service, mock := newSubscriptionServiceWithMock(t)

	tenantID := uuid.New()
	planID := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM tenants WHERE id`).
		WithArgs(tenantID).
		WillReturnRows(tenantRow(tenantID))
	mock.ExpectQuery(`FROM plans WHERE id`).
		WithArgs(planID).
		WillReturnRows(planRow(planID, 10, 5, 100, 50, true))
	mock.ExpectQuery(`SELECT COUNT`).
		WithArgs(tenantID).
		WillReturnRows(usageRow(12, 3, 50, 40))

	result, err := service.ChangePlan(context.Background(), tenantID, tenantModels.ChangePlanRequest{
		PlanID:         planID,
		DurationMonths: shared.DurationSixMonths,
	})

	require.NoError(t, err)
	assert.False(t, result.Requested)
	assert.True(t, result.QuotaExceeded)
	assert.Equal(t, []string{"véhicules (12/10)"}, result.Violations)
	assert.Contains(t, result.Message, "Réduisez votre consommation")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestChangePlanCreatesPendingRequest(t *testing.T) {
	service, mock := newSubscriptionServiceWithMock(t)

	tenantID := uuid.New()
	planID := uuid.New()
	subID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT .+ FROM tenants WHERE id`).
		WithArgs(tenantID).
		WillReturnRows(tenantRow(tenantID))
	mock.ExpectQuery(`FROM plans WHERE id`).
		WithArgs(planID).
		WillReturnRows(planRow(planID, 50, 10, 0, 0, true))
	mock.ExpectQuery(`SELECT COUNT`).
		WithArgs(tenantID).
		WillReturnRows(usageRow(12, 3, 50, 40))

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO subscriptions`).
		WithArgs(tenantID, planID, shared.DurationSixMonths, shared.SubscriptionAwaitingPayment).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "tenant_id", "plan_id", "duration_months", "start_date", "end_date", "status", "is_active", "created_at", "updated_at",
		}).AddRow(subID, tenantID, planID, shared.DurationSixMonths, nil, nil, shared.SubscriptionAwaitingPayment, false, now, now))
	mock.ExpectCommit()

	result, err := service.ChangePlan(context.Background(), tenantID, tenantModels.ChangePlanRequest{
		PlanID:         planID,
		DurationMonths: shared.DurationSixMonths,
	})

	require.NoError(t, err)
	assert.True(t, result.Requested)
	require.NotNil(t, result.Subscription)
	assert.Equal(t, shared.SubscriptionAwaitingPayment, result.Subscription.Status)
	// Aucun UPDATE tenants attendu : l'agence active garde son statut
	// pour pouvoir confirmer le paiement ensuite
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestChangePlanAtSignupSetsPendingPayment(t *testing.T) {
	service, mock := newSubscriptionServiceWithMock(t)

	tenantID := uuid.New()
	planID := uuid.New()
	subID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT .+ FROM tenants WHERE id`).
		WithArgs(tenantID).
		WillReturnRows(tenantRowWithStatus(tenantID, shared.TenantPendingSelection))
	mock.ExpectQuery(`FROM plans WHERE id`).
		WithArgs(planID).
		WillReturnRows(planRow(planID, 50, 10, 0, 0, true))
	mock.ExpectQuery(`SELECT COUNT`).
		WithArgs(tenantID).
		WillReturnRows(usageRow(0, 1, 0, 0))

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO subscriptions`).
		WithArgs(tenantID, planID, shared.DurationTwelveMonths, shared.SubscriptionAwaitingPayment).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "tenant_id", "plan_id", "duration_months", "start_date", "end_date", "status", "is_active", "created_at", "updated_at",
		}).AddRow(subID, tenantID, planID, shared.DurationTwelveMonths, nil, nil, shared.SubscriptionAwaitingPayment, false, now, now))
	mock.ExpectExec(`UPDATE tenants`).
		WithArgs(tenantID, shared.TenantPendingPayment).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	result, err := service.ChangePlan(context.Background(), tenantID, tenantModels.ChangePlanRequest{
		PlanID:         planID,
		DurationMonths: shared.DurationTwelveMonths,
	})

	require.NoError(t, err)
	assert.True(t, result.Requested)
	require.NoError(t, mock.ExpectationsWereMet())
}

// Une agence active doit pouvoir dérouler demande puis confirmation
// de paiement sans perdre l'accès à l'API entre les deux.
func TestChangePlanThenConfirmPaymentForActiveTenant(t *testing.T) {
	service, mock := newSubscriptionServiceWithMock(t)

	tenantID := uuid.New()
	planID := uuid.New()
	subID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT .+ FROM tenants WHERE id`).
		WithArgs(tenantID).
		WillReturnRows(tenantRow(tenantID))
	mock.ExpectQuery(`FROM plans WHERE id`).
		WithArgs(planID).
		WillReturnRows(planRow(planID, 50, 10, 0, 0, true))
	mock.ExpectQuery(`SELECT COUNT`).
		WithArgs(tenantID).
		WillReturnRows(usageRow(3, 2, 5, 4))

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO subscriptions`).
		WithArgs(tenantID, planID, shared.DurationSixMonths, shared.SubscriptionAwaitingPayment).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "tenant_id", "plan_id", "duration_months", "start_date", "end_date", "status", "is_active", "created_at", "updated_at",
		}).AddRow(subID, tenantID, planID, shared.DurationSixMonths, nil, nil, shared.SubscriptionAwaitingPayment, false, now, now))
	mock.ExpectCommit()

	result, err := service.ChangePlan(context.Background(), tenantID, tenantModels.ChangePlanRequest{
		PlanID:         planID,
		DurationMonths: shared.DurationSixMonths,
	})
	require.NoError(t, err)
	require.True(t, result.Requested)

	// L'agence revient confirmer : son statut n'a pas bougé, la garde
	// d'accès la laisse passer et la confirmation aboutit
	mock.ExpectQuery(`SELECT .+ FROM subscriptions WHERE id`).
		WithArgs(subID).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "tenant_id", "plan_id", "duration_months", "start_date", "end_date", "status", "is_active", "created_at", "updated_at",
		}).AddRow(subID, tenantID, planID, shared.DurationSixMonths, nil, nil, shared.SubscriptionAwaitingPayment, false, now, now))
	mock.ExpectExec(`UPDATE subscriptions`).
		WithArgs(subID, shared.SubscriptionAwaitingVerification).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = service.ConfirmPayment(context.Background(), tenantID, result.Subscription.ID)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestChangePlanRefusesClosedPlan(t *testing.T) {
	service, mock := newSubscriptionServiceWithMock(t)

	tenantID := uuid.New()
	planID := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM tenants WHERE id`).
		WithArgs(tenantID).
		WillReturnRows(tenantRow(tenantID))
	mock.ExpectQuery(`FROM plans WHERE id`).
		WithArgs(planID).
		WillReturnRows(planRow(planID, 50, 10, 0, 0, false))

	_, err := service.ChangePlan(context.Background(), tenantID, tenantModels.ChangePlanRequest{
		PlanID:         planID,
		DurationMonths: shared.DurationTwelveMonths,
	})
	assert.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmPaymentMovesToVerification(t *testing.T) {
	service, mock := newSubscriptionServiceWithMock(t)

	tenantID := uuid.New()
	subID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT .+ FROM subscriptions WHERE id`).
		WithArgs(subID).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "tenant_id", "plan_id", "duration_months", "start_date", "end_date", "status", "is_active", "created_at", "updated_at",
		}).AddRow(subID, tenantID, uuid.New(), shared.DurationSixMonths, nil, nil, shared.SubscriptionAwaitingPayment, false, now, now))
	mock.ExpectExec(`UPDATE subscriptions`).
		WithArgs(subID, shared.SubscriptionAwaitingVerification).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := service.ConfirmPayment(context.Background(), tenantID, subID)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmPaymentRefusesForeignSubscription(t *testing.T) {
	service, mock := newSubscriptionServiceWithMock(t)

	subID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT .+ FROM subscriptions WHERE id`).
		WithArgs(subID).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "tenant_id", "plan_id", "duration_months", "start_date", "end_date", "status", "is_active", "created_at", "updated_at",
		}).AddRow(subID, uuid.New(), uuid.New(), shared.DurationSixMonths, nil, nil, shared.SubscriptionAwaitingPayment, false, now, now))

	err := service.ConfirmPayment(context.Background(), uuid.New(), subID)
	assert.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCurrentSubscriptionReturnsActiveOne(t *testing.T) {
	service, mock := newSubscriptionServiceWithMock(t)

	tenantID := uuid.New()
	subID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT .+ FROM subscriptions WHERE tenant_id = \$1 AND is_active`).
		WithArgs(tenantID).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "tenant_id", "plan_id", "duration_months", "start_date", "end_date", "status", "is_active", "created_at", "updated_at",
		}).AddRow(subID, tenantID, uuid.New(), shared.DurationTwelveMonths, &now, &now, shared.SubscriptionActive, true, now, now))

	sub, err := service.CurrentSubscription(context.Background(), tenantID)
	require.NoError(t, err)
	assert.Equal(t, subID, sub.ID)
	assert.True(t, sub.IsActive)
	require.NoError(t, mock.ExpectationsWereMet())
}
