package shared

// SubscriptionStatus représente le cycle de vie d'un abonnement
type SubscriptionStatus string

// Un rejet ne produit pas de statut propre : l'abonnement passe à
// cancelled et c'est l'agence qui porte le statut rejected.
const (
	SubscriptionAwaitingPayment      SubscriptionStatus = "awaiting_payment"
	SubscriptionAwaitingVerification SubscriptionStatus = "awaiting_verification"
	SubscriptionActive               SubscriptionStatus = "active"
	SubscriptionCancelled            SubscriptionStatus = "cancelled"
)

// TenantStatus représente les statuts possibles d'une agence
type TenantStatus string

const (
	TenantPendingSelection TenantStatus = "pending_selection"
	TenantPendingPayment   TenantStatus = "pending_payment"
	TenantActive           TenantStatus = "active"
	TenantRejected         TenantStatus = "rejected"
	TenantSuspended        TenantStatus = "suspended"
)

// Duration représente la durée d'un abonnement en mois.
// Seules deux durées sont commercialisées.
type Duration int

const (
	DurationSixMonths    Duration = 6
	DurationTwelveMonths Duration = 12
)

// Valid indique si la durée fait partie des durées commercialisées
func (d Duration) Valid() bool {
	return d == DurationSixMonths || d == DurationTwelveMonths
}

// VehicleStatus représente l'état d'un véhicule du parc
type VehicleStatus string

const (
	VehicleAvailable   VehicleStatus = "available"
	VehicleRented      VehicleStatus = "rented"
	VehicleMaintenance VehicleStatus = "maintenance"
)

// ContractStatus représente l'état d'un contrat de location
type ContractStatus string

const (
	ContractDraft     ContractStatus = "draft"
	ContractActive    ContractStatus = "active"
	ContractClosed    ContractStatus = "closed"
	ContractCancelled ContractStatus = "cancelled"
)

// AssistanceStatus représente l'état d'un dossier d'assistance
type AssistanceStatus string

const (
	AssistanceOpen     AssistanceStatus = "open"
	AssistanceInReview AssistanceStatus = "in_review"
	AssistanceClosed   AssistanceStatus = "closed"
)

// InfractionStatus représente le traitement d'une infraction
type InfractionStatus string

const (
	InfractionReceived   InfractionStatus = "received"
	InfractionDesignated InfractionStatus = "designated"
	InfractionContested  InfractionStatus = "contested"
	InfractionPaid       InfractionStatus = "paid"
)
