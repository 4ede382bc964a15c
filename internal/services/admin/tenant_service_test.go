package admin

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	adminModels "github.com/locagest-api/internal/models/admin"
	"github.com/locagest-api/internal/models/shared"
	"github.com/locagest-api/internal/repository"
)

func newTenantServiceWithMock(t *testing.T) (*TenantService, pgxmock.PgxPoolIface) {
	t.Helper()

	mockPool, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mockPool.Close() })

	service := NewTenantService(
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
	}).AddRow(id, "Garage Centrale", "garage-centrale", nil, status, status == shared.TenantActive, true, now, now)
}

func planRow(id uuid.UUID, maxVehicles, maxUsers, maxContracts, maxClients int) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows([]string{
		"id", "name", "description", "max_vehicles", "max_users", "max_contracts", "max_clients",
		"module_assistance", "price_6_months", "price_12_months", "discount_6_months", "discount_12_months",
		"is_active", "created_at", "updated_at",
	}).AddRow(id, "Standard", "", maxVehicles, maxUsers, maxContracts, maxClients,
		false, 600.0, 1000.0, 0.0, 20.0, true, now, now)
}

func usageRow(vehicles, users, contracts, clients int) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"vehicles", "users", "contracts", "clients"}).
		AddRow(vehicles, users, contracts, clients)
}

func TestAssignPlanBlockedOnQuotaWithoutForce(t *testing.T) {
	service, mock := newTenantServiceWithMock(t)

	tenantID := uuid.New()
	planID := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM tenants WHERE id`).
		WithArgs(tenantID).
		WillReturnRows(tenantRow(tenantID))
	mock.ExpectQuery(`FROM plans WHERE id`).
		WithArgs(planID).
		WillReturnRows(planRow(planID, 10, 5, 100, 50))
	mock.ExpectQuery(`SELECT COUNT`).
		WithArgs(tenantID).
		WillReturnRows(usageRow(12, 3, 50, 40))

	result, err := service.AssignPlan(context.Background(), tenantID, adminModels.AssignPlanRequest{
		PlanID:         planID,
		DurationMonths: shared.DurationTwelveMonths,
		Force:          false,
	})

	require.NoError(t, err)
	assert.False(t, result.Assigned)
	assert.True(t, result.QuotaExceeded)
	assert.Equal(t, []string{"véhicules (12/10)"}, result.Violations)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignPlanForcedProceedsWithWarning(t *testing.T) {
	service, mock := newTenantServiceWithMock(t)

	tenantID := uuid.New()
	planID := uuid.New()
	subID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT .+ FROM tenants WHERE id`).
		WithArgs(tenantID).
		WillReturnRows(tenantRow(tenantID))
	mock.ExpectQuery(`FROM plans WHERE id`).
		WithArgs(planID).
		WillReturnRows(planRow(planID, 10, 5, 100, 50))
	mock.ExpectQuery(`SELECT COUNT`).
		WithArgs(tenantID).
		WillReturnRows(usageRow(12, 3, 50, 40))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE subscriptions`).
		WithArgs(tenantID, shared.SubscriptionCancelled).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery(`INSERT INTO subscriptions`).
		WithArgs(tenantID, planID, shared.DurationTwelveMonths, shared.SubscriptionActive,
			pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "tenant_id", "plan_id", "duration_months", "start_date", "end_date", "status", "is_active", "created_at", "updated_at",
		}).AddRow(subID, tenantID, planID, shared.DurationTwelveMonths, &now, &now, shared.SubscriptionActive, true, now, now))
	mock.ExpectExec(`UPDATE tenants`).
		WithArgs(tenantID, planID, shared.TenantActive).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	result, err := service.AssignPlan(context.Background(), tenantID, adminModels.AssignPlanRequest{
		PlanID:         planID,
		DurationMonths: shared.DurationTwelveMonths,
		Force:          true,
	})

	require.NoError(t, err)
	assert.True(t, result.Assigned)
	assert.True(t, result.Forced)
	assert.True(t, result.QuotaExceeded)
	assert.Contains(t, result.Message, "quotas dépassés")
	assert.Contains(t, result.Message, "véhicules (12/10)")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignPlanWithoutViolationsAssignsCleanly(t *testing.T) {
	service, mock := newTenantServiceWithMock(t)

	tenantID := uuid.New()
	planID := uuid.New()
	subID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT .+ FROM tenants WHERE id`).
		WithArgs(tenantID).
		WillReturnRows(tenantRow(tenantID))
	mock.ExpectQuery(`FROM plans WHERE id`).
		WithArgs(planID).
		WillReturnRows(planRow(planID, 0, 0, 0, 0))
	mock.ExpectQuery(`SELECT COUNT`).
		WithArgs(tenantID).
		WillReturnRows(usageRow(500, 500, 500, 500))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE subscriptions`).
		WithArgs(tenantID, shared.SubscriptionCancelled).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectQuery(`INSERT INTO subscriptions`).
		WithArgs(tenantID, planID, shared.DurationSixMonths, shared.SubscriptionActive,
			pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "tenant_id", "plan_id", "duration_months", "start_date", "end_date", "status", "is_active", "created_at", "updated_at",
		}).AddRow(subID, tenantID, planID, shared.DurationSixMonths, &now, &now, shared.SubscriptionActive, true, now, now))
	mock.ExpectExec(`UPDATE tenants`).
		WithArgs(tenantID, planID, shared.TenantActive).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	result, err := service.AssignPlan(context.Background(), tenantID, adminModels.AssignPlanRequest{
		PlanID:         planID,
		DurationMonths: shared.DurationSixMonths,
	})

	require.NoError(t, err)
	assert.True(t, result.Assigned)
	assert.False(t, result.Forced)
	assert.False(t, result.QuotaExceeded)
	assert.Empty(t, result.Violations)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignPlanRejectsInvalidDuration(t *testing.T) {
	service, _ := newTenantServiceWithMock(t)

	_, err := service.AssignPlan(context.Background(), uuid.New(), adminModels.AssignPlanRequest{
		PlanID:         uuid.New(),
		DurationMonths: 3,
	})
	assert.Error(t, err)
}

func TestSuspendCutsTenantAccess(t *testing.T) {
	service, mock := newTenantServiceWithMock(t)

	tenantID := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM tenants WHERE id`).
		WithArgs(tenantID).
		WillReturnRows(tenantRow(tenantID))
	mock.ExpectExec(`UPDATE tenants`).
		WithArgs(tenantID, shared.TenantSuspended, false).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := service.Suspend(context.Background(), tenantID)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSuspendRefusesAlreadySuspended(t *testing.T) {
	service, mock := newTenantServiceWithMock(t)

	tenantID := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM tenants WHERE id`).
		WithArgs(tenantID).
		WillReturnRows(tenantRowWithStatus(tenantID, shared.TenantSuspended))

	err := service.Suspend(context.Background(), tenantID)
	assert.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReactivateRestoresSuspendedTenant(t *testing.T) {
	service, mock := newTenantServiceWithMock(t)

	tenantID := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM tenants WHERE id`).
		WithArgs(tenantID).
		WillReturnRows(tenantRowWithStatus(tenantID, shared.TenantSuspended))
	mock.ExpectExec(`UPDATE tenants`).
		WithArgs(tenantID, shared.TenantActive, true).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := service.Reactivate(context.Background(), tenantID)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReactivateRefusesNonSuspendedTenant(t *testing.T) {
	service, mock := newTenantServiceWithMock(t)

	tenantID := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM tenants WHERE id`).
		WithArgs(tenantID).
		WillReturnRows(tenantRow(tenantID))

	err := service.Reactivate(context.Background(), tenantID)
	assert.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
