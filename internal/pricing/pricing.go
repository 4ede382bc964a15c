// Package pricing calcule les prix affichés et facturés des plans.
package pricing

import (
	"fmt"
	"math"

	"github.com/locagest-api/internal/models/shared"
)

// PriceFor applique la remise au prix de base et arrondit à l'unité
// (arrondi commercial, demi vers le haut). La remise est bornée dans
// [0,100] : le comportement hors plage n'était pas défini, on le fige.
func PriceFor(base, discountPct float64) float64 {
	if discountPct < 0 {
		discountPct = 0
	}
	if discountPct > 100 {
		discountPct = 100
	}
	return math.Floor(base*(1-discountPct/100) + 0.5)
}

// PlanPricing porte les prix et remises par durée d'un plan
type PlanPricing struct {
	Price6Months     float64
	Price12Months    float64
	Discount6Months  float64
	Discount12Months float64
}

// FinalPrice retourne le prix final pour une durée commercialisée
func (p PlanPricing) FinalPrice(duration shared.Duration) (float64, error) {
	switch duration {
	case shared.DurationSixMonths:
		return PriceFor(p.Price6Months, p.Discount6Months), nil
	case shared.DurationTwelveMonths:
		return PriceFor(p.Price12Months, p.Discount12Months), nil
	default:
		return 0, fmt.Errorf("durée invalide: %d mois", duration)
	}
}
