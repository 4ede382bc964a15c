package tenant

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locagest-api/internal/models/shared"
	tenantModels "github.com/locagest-api/internal/models/tenant"
)

func newContractRepoWithMock(t *testing.T) (*ContractRepository, pgxmock.PgxPoolIface) {
	t.Helper()

	mockPool, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mockPool.Close() })

	return NewContractRepository(mockPool), mockPool
}

func TestNextSequenceCountsPerYearUnderLock(t *testing.T) {
	repo, mock := newContractRepoWithMock(t)

	tenantID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`pg_advisory_xact_lock`).
		WithArgs(tenantID.String()).
		WillReturnResult(pgxmock.NewResult("SELECT", 1))
	mock.ExpectQuery(`SELECT COUNT`).
		WithArgs(tenantID, "CT-2026-%").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(41))
	mock.ExpectCommit()

	ctx := context.Background()
	tx, err := mock.Begin(ctx)
	require.NoError(t, err)

	seq, err := repo.NextSequenceTx(ctx, tx, tenantID, 2026)
	require.NoError(t, err)
	assert.Equal(t, 42, seq)

	require.NoError(t, tx.Commit(ctx))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListBuildsFiltersIntoQuery(t *testing.T) {
	repo, mock := newContractRepoWithMock(t)

	tenantID := uuid.New()
	clientID := uuid.New()
	now := time.Now()
	contractID := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM contracts WHERE tenant_id = \$1 AND status = \$2 AND client_id = \$3`).
		WithArgs(tenantID, "active", clientID).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "tenant_id", "reference", "client_id", "vehicle_id",
			"start_date", "end_date", "daily_rate", "status", "created_at", "updated_at",
		}).AddRow(contractID, tenantID, "CT-2026-000001", clientID, uuid.New(),
			now, now.AddDate(0, 0, 7), 50.0, shared.ContractActive, now, now))

	contracts, err := repo.List(context.Background(), tenantID, tenantModels.ContractFilter{
		Status:   "active",
		ClientID: &clientID,
	})
	require.NoError(t, err)
	require.Len(t, contracts, 1)
	assert.Equal(t, "CT-2026-000001", contracts[0].Reference)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestChangeVehicleTxInsertsSegmentAndAlignsContract(t *testing.T) {
	repo, mock := newContractRepoWithMock(t)

	tenantID := uuid.New()
	contractID := uuid.New()
	vehicleID := uuid.New()
	startsOn := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO contract_segments`).
		WithArgs(tenantID, contractID, vehicleID, startsOn, 70.0).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`UPDATE contracts SET vehicle_id`).
		WithArgs(tenantID, contractID, vehicleID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	ctx := context.Background()
	tx, err := mock.Begin(ctx)
	require.NoError(t, err)

	err = repo.ChangeVehicleTx(ctx, tx, tenantID, contractID, &tenantModels.ChangeVehicleRequest{
		VehicleID: vehicleID,
		StartsOn:  startsOn,
		DailyRate: 70,
	})
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestChangeVehicleTxFailsOnUnknownContract(t *testing.T) {
	repo, mock := newContractRepoWithMock(t)

	tenantID := uuid.New()
	contractID := uuid.New()
	vehicleID := uuid.New()
	startsOn := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO contract_segments`).
		WithArgs(tenantID, contractID, vehicleID, startsOn, 70.0).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`UPDATE contracts SET vehicle_id`).
		WithArgs(tenantID, contractID, vehicleID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	ctx := context.Background()
	tx, err := mock.Begin(ctx)
	require.NoError(t, err)

	err = repo.ChangeVehicleTx(ctx, tx, tenantID, contractID, &tenantModels.ChangeVehicleRequest{
		VehicleID: vehicleID,
		StartsOn:  startsOn,
		DailyRate: 70,
	})
	assert.Error(t, err)
	require.NoError(t, tx.Rollback(ctx))
	require.NoError(t, mock.ExpectationsWereMet())
}
