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

	"github.com/locagest-api/internal/models/shared"
	"github.com/locagest-api/internal/repository"
)

func newSubscriptionServiceWithMock(t *testing.T) (*SubscriptionService, pgxmock.PgxPoolIface) {
	t.Helper()

	mockPool, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mockPool.Close() })

	service := NewSubscriptionService(
		mockPool,
		repository.NewSubscriptionRepository(mockPool),
		repository.NewTenantRepository(mockPool),
		zap.NewNop(),
	)
	return service, mockPool
}

func subscriptionRow(id, tenantID, planID uuid.UUID, status shared.SubscriptionStatus, isActive bool) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows([]string{
		"id", "tenant_id", "plan_id", "duration_months", "start_date", "end_date", "status", "is_active", "created_at", "updated_at",
	}).AddRow(id, tenantID, planID, shared.DurationTwelveMonths, nil, nil, status, isActive, now, now)
}

func TestApproveActivatesSubscriptionAndTenantInOneTransaction(t *testing.T) {
	service, mock := newSubscriptionServiceWithMock(t)

	subID := uuid.New()
	tenantID := uuid.New()
	planID := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM subscriptions WHERE id`).
		WithArgs(subID).
		WillReturnRows(subscriptionRow(subID, tenantID, planID, shared.SubscriptionAwaitingVerification, false))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE subscriptions`).
		WithArgs(tenantID, shared.SubscriptionCancelled).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE subscriptions`).
		WithArgs(subID, shared.SubscriptionActive, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE tenants`).
		WithArgs(tenantID, planID, shared.TenantActive).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	mock.ExpectQuery(`SELECT .+ FROM subscriptions WHERE id`).
		WithArgs(subID).
		WillReturnRows(subscriptionRow(subID, tenantID, planID, shared.SubscriptionActive, true))

	sub, err := service.Approve(context.Background(), subID)
	require.NoError(t, err)
	assert.Equal(t, shared.SubscriptionActive, sub.Status)
	assert.True(t, sub.IsActive)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveRefusesWrongStatus(t *testing.T) {
	service, mock := newSubscriptionServiceWithMock(t)

	subID := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM subscriptions WHERE id`).
		WithArgs(subID).
		WillReturnRows(subscriptionRow(subID, uuid.New(), uuid.New(), shared.SubscriptionAwaitingPayment, false))

	_, err := service.Approve(context.Background(), subID)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), string(shared.SubscriptionAwaitingPayment))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRejectCancelsSubscriptionAndRejectsTenant(t *testing.T) {
	service, mock := newSubscriptionServiceWithMock(t)

	subID := uuid.New()
	tenantID := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM subscriptions WHERE id`).
		WithArgs(subID).
		WillReturnRows(subscriptionRow(subID, tenantID, uuid.New(), shared.SubscriptionAwaitingVerification, false))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE subscriptions`).
		WithArgs(subID, shared.SubscriptionCancelled).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE tenants`).
		WithArgs(tenantID, shared.TenantRejected).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	err := service.Reject(context.Background(), subID)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRejectRefusesAlreadyActiveSubscription(t *testing.T) {
	service, mock := newSubscriptionServiceWithMock(t)

	subID := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM subscriptions WHERE id`).
		WithArgs(subID).
		WillReturnRows(subscriptionRow(subID, uuid.New(), uuid.New(), shared.SubscriptionActive, true))

	err := service.Reject(context.Background(), subID)
	assert.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
