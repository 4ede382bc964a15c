package tenant

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/locagest-api/internal/database"
	tenantModels "github.com/locagest-api/internal/models/tenant"
	"github.com/locagest-api/internal/repository"
	tenantRepo "github.com/locagest-api/internal/repository/tenant"
	"github.com/locagest-api/internal/utils"
)

type ContractService struct {
	db           repository.DB
	contractRepo *tenantRepo.ContractRepository
	vehicleRepo  *tenantRepo.VehicleRepository
	clientRepo   *tenantRepo.ClientRepository
	logger       *zap.Logger
}

func NewContractService(
	db repository.DB,
	contractRepo *tenantRepo.ContractRepository,
	vehicleRepo *tenantRepo.VehicleRepository,
	clientRepo *tenantRepo.ClientRepository,
	logger *zap.Logger,
) *ContractService {
	return &ContractService{
		db:           db,
		contractRepo: contractRepo,
		vehicleRepo:  vehicleRepo,
		clientRepo:   clientRepo,
		logger:       logger,
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(dateOnly(to).Sub(dateOnly(from)).Hours() / 24)
}

func round2(f float64) float64 {
	return math.Floor(f*100+0.5) / 100
}

// ProRatedTotal calcule le montant d'un contrat au prorata de ses
// segments d'affectation véhicule. Chaque segment est facturé de sa
// date de début (incluse) au début du segment suivant (exclu) ; le
// dernier segment court jusqu'à la fin du contrat, jour de fin inclus.
// Fonction pure : les segments doivent être ordonnés par date.
func ProRatedTotal(contract *tenantModels.Contract, segments []tenantModels.ContractSegment) float64 {
	if len(segments) == 0 {
		// Contrat sans segment : tarif unique sur toute la période
		days := daysBetween(contract.StartDate, contract.EndDate) + 1
		return round2(float64(days) * contract.DailyRate)
	}

	var total float64
	for i, seg := range segments {
		var segEnd time.Time
		if i+1 < len(segments) {
			segEnd = segments[i+1].StartsOn
		} else {
			// Dernier segment : jusqu'au lendemain de la fin pour
			// inclure le jour de fin
			segEnd = dateOnly(contract.EndDate).AddDate(0, 0, 1)
		}

		days := daysBetween(seg.StartsOn, segEnd)
		if days < 0 {
			days = 0
		}
		total += float64(days) * seg.DailyRate
	}

	return round2(total)
}

// CreateContract ouvre un contrat : référence générée par agence et
// par année, premier segment créé dans la même transaction
func (s *ContractService) CreateContract(ctx context.Context, tenantID uuid.UUID, req *tenantModels.CreateContractRequest) (*tenantModels.Contract, error) {
	if req.EndDate.Before(req.StartDate) {
		return nil, fmt.Errorf("la date de fin précède la date de début")
	}

	if _, err := s.clientRepo.GetByID(ctx, tenantID, req.ClientID); err != nil {
		return nil, fmt.Errorf("client not found: %w", err)
	}
	if _, err := s.vehicleRepo.GetByID(ctx, tenantID, req.VehicleID); err != nil {
		return nil, fmt.Errorf("vehicle not found: %w", err)
	}

	year := req.StartDate.Year()

	// Le numéro est tiré dans la même transaction que l'insertion,
	// sous verrou : deux créations simultanées ne peuvent pas se
	// partager la même référence
	var contract *tenantModels.Contract
	err := database.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		seq, err := s.contractRepo.NextSequenceTx(ctx, tx, tenantID, year)
		if err != nil {
			return err
		}

		created, err := s.contractRepo.CreateTx(ctx, tx, tenantID, utils.ContractReference(year, seq), req)
		if err != nil {
			return err
		}
		contract = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("contract created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("reference", contract.Reference),
	)

	return contract, nil
}

// ChangeVehicle remplace le véhicule d'un contrat en cours à une date
// donnée. Le montant total sera recalculé au prorata des segments.
func (s *ContractService) ChangeVehicle(ctx context.Context, tenantID, contractID uuid.UUID, req *tenantModels.ChangeVehicleRequest) error {
	contract, err := s.contractRepo.GetByID(ctx, tenantID, contractID)
	if err != nil {
		return err
	}

	if req.StartsOn.Before(dateOnly(contract.StartDate)) || req.StartsOn.After(dateOnly(contract.EndDate)) {
		return fmt.Errorf("la date de changement doit tomber dans la période du contrat")
	}

	if _, err := s.vehicleRepo.GetByID(ctx, tenantID, req.VehicleID); err != nil {
		return fmt.Errorf("vehicle not found: %w", err)
	}

	err = database.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		return s.contractRepo.ChangeVehicleTx(ctx, tx, tenantID, contractID, req)
	})
	if err != nil {
		return err
	}

	s.logger.Info("contract vehicle changed",
		zap.String("tenant_id", tenantID.String()),
		zap.String("contract_id", contractID.String()),
		zap.String("vehicle_id", req.VehicleID.String()),
	)

	return nil
}

// ComputeTotal retourne le montant du contrat au prorata de ses
// segments, avec le détail en toutes lettres pour la facture
func (s *ContractService) ComputeTotal(ctx context.Context, tenantID, contractID uuid.UUID) (float64, string, error) {
	contract, err := s.contractRepo.GetByID(ctx, tenantID, contractID)
	if err != nil {
		return 0, "", err
	}

	segments, err := s.contractRepo.GetSegments(ctx, tenantID, contractID)
	if err != nil {
		return 0, "", err
	}

	total := ProRatedTotal(contract, segments)
	return total, utils.MontantEnLettres(total), nil
}
