package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locagest-api/internal/quota"
)

func TestGetUsageCountsAllFourResources(t *testing.T) {
	mockPool, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer mockPool.Close()

	repo := NewUsageRepository(mockPool)

	tenantID := uuid.New()
	mockPool.ExpectQuery(`SELECT COUNT`).
		WithArgs(tenantID).
		WillReturnRows(pgxmock.NewRows([]string{"vehicles", "users", "contracts", "clients"}).
			AddRow(12, 3, 50, 40))

	usage, err := repo.GetUsage(context.Background(), tenantID)
	require.NoError(t, err)
	assert.Equal(t, quota.Usage{Vehicles: 12, Users: 3, Contracts: 50, Clients: 40}, usage)
	require.NoError(t, mockPool.ExpectationsWereMet())
}
