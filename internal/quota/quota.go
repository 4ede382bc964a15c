// Package quota décide si une agence peut être placée sur un plan
// compte tenu de sa consommation courante. Calcul pur, sans effet
// de bord : la persistance appartient aux services appelants.
package quota

import "fmt"

// Limit représente le plafond d'une ressource : borné ou illimité.
// Le schéma stocke la convention historique « 0 = illimité » ;
// LimitFromMax fait la conversion à la frontière.
type Limit struct {
	max       int
	unlimited bool
}

// Unlimited est le plafond sans limite
var Unlimited = Limit{unlimited: true}

// Bounded construit un plafond à n unités
func Bounded(n int) Limit {
	return Limit{max: n}
}

// LimitFromMax convertit la valeur stockée en Limit.
// Toute valeur <= 0 signifie illimité.
func LimitFromMax(max int) Limit {
	if max <= 0 {
		return Unlimited
	}
	return Bounded(max)
}

// Exceeded indique si usage dépasse le plafond.
// L'égalité usage == max ne constitue jamais un dépassement.
func (l Limit) Exceeded(usage int) bool {
	return !l.unlimited && usage > l.max
}

// Max retourne la valeur bornée et true, ou 0 et false si illimité
func (l Limit) Max() (int, bool) {
	if l.unlimited {
		return 0, false
	}
	return l.max, true
}

// Usage est une photographie instantanée de la consommation d'une
// agence. Recalculée à chaque décision, jamais mise en cache.
type Usage struct {
	Vehicles  int
	Users     int
	Contracts int
	Clients   int
}

// Limits porte les quatre plafonds d'un plan
type Limits struct {
	Vehicles  Limit
	Users     Limit
	Contracts Limit
	Clients   Limit
}

// LimitsFromPlan convertit les maxima stockés d'un plan
func LimitsFromPlan(maxVehicles, maxUsers, maxContracts, maxClients int) Limits {
	return Limits{
		Vehicles:  LimitFromMax(maxVehicles),
		Users:     LimitFromMax(maxUsers),
		Contracts: LimitFromMax(maxContracts),
		Clients:   LimitFromMax(maxClients),
	}
}

// Violation décrit une ressource en dépassement
type Violation struct {
	Resource string
	Usage    int
	Max      int
}

// String rend le libellé affiché à l'utilisateur : "véhicules (12/10)"
func (v Violation) String() string {
	return fmt.Sprintf("%s (%d/%d)", v.Resource, v.Usage, v.Max)
}

// Libellés affichés, dans l'ordre fixe d'évaluation
const (
	resourceVehicles  = "véhicules"
	resourceUsers     = "utilisateurs"
	resourceContracts = "contrats"
	resourceClients   = "clients"
)

// Evaluate compare la consommation aux plafonds et retourne la liste
// ordonnée des dépassements : véhicules, utilisateurs, contrats,
// clients. Liste vide = plan compatible.
func Evaluate(usage Usage, limits Limits) []Violation {
	var violations []Violation

	check := func(resource string, used int, limit Limit) {
		if limit.Exceeded(used) {
			max, _ := limit.Max()
			violations = append(violations, Violation{Resource: resource, Usage: used, Max: max})
		}
	}

	check(resourceVehicles, usage.Vehicles, limits.Vehicles)
	check(resourceUsers, usage.Users, limits.Users)
	check(resourceContracts, usage.Contracts, limits.Contracts)
	check(resourceClients, usage.Clients, limits.Clients)

	return violations
}

// Messages rend les dépassements sous forme de libellés
func Messages(violations []Violation) []string {
	if len(violations) == 0 {
		return nil
	}
	messages := make([]string, len(violations))
	for i, v := range violations {
		messages[i] = v.String()
	}
	return messages
}
