package quota

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimitFromMax(t *testing.T) {
	tests := []struct {
		name      string
		max       int
		unlimited bool
	}{
		{"zéro signifie illimité", 0, true},
		{"négatif signifie illimité", -1, true},
		{"positif est borné", 10, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit := LimitFromMax(tt.max)
			_, bounded := limit.Max()
			assert.Equal(t, tt.unlimited, !bounded)
		})
	}
}

func TestLimitExceeded(t *testing.T) {
	limit := Bounded(10)

	assert.False(t, limit.Exceeded(9))
	assert.False(t, limit.Exceeded(10), "l'égalité ne doit jamais être un dépassement")
	assert.True(t, limit.Exceeded(11))

	assert.False(t, Unlimited.Exceeded(500))
	assert.False(t, Unlimited.Exceeded(0))
}

func TestEvaluateFullyUnlimitedPlanNeverViolated(t *testing.T) {
	limits := LimitsFromPlan(0, 0, 0, 0)
	usage := Usage{Vehicles: 9999, Users: 9999, Contracts: 9999, Clients: 9999}

	assert.Empty(t, Evaluate(usage, limits))
}

func TestEvaluateBoundaryNeverViolates(t *testing.T) {
	limits := LimitsFromPlan(5, 5, 5, 5)
	usage := Usage{Vehicles: 5, Users: 5, Contracts: 5, Clients: 5}

	assert.Empty(t, Evaluate(usage, limits))
}

func TestEvaluateSingleVehicleOverrun(t *testing.T) {
	usage := Usage{Vehicles: 12, Users: 3, Contracts: 50, Clients: 40}
	limits := LimitsFromPlan(10, 5, 100, 50)

	violations := Evaluate(usage, limits)
	require.Len(t, violations, 1)
	assert.Equal(t, "véhicules (12/10)", violations[0].String())
	assert.Equal(t, []string{"véhicules (12/10)"}, Messages(violations))
}

func TestEvaluateUnlimitedVehiclesWithHeavyUsage(t *testing.T) {
	usage := Usage{Vehicles: 500}
	limits := LimitsFromPlan(0, 10, 10, 10)

	assert.Empty(t, Evaluate(usage, limits))
}

func TestEvaluateFixedOrder(t *testing.T) {
	usage := Usage{Vehicles: 11, Users: 11, Contracts: 11, Clients: 11}
	limits := LimitsFromPlan(10, 10, 10, 10)

	violations := Evaluate(usage, limits)
	require.Len(t, violations, 4)
	assert.Equal(t, []string{
		"véhicules (11/10)",
		"utilisateurs (11/10)",
		"contrats (11/10)",
		"clients (11/10)",
	}, Messages(violations))
}

func TestEvaluateIsPure(t *testing.T) {
	usage := Usage{Vehicles: 12}
	limits := LimitsFromPlan(10, 0, 0, 0)

	first := Evaluate(usage, limits)
	second := Evaluate(usage, limits)
	assert.Equal(t, first, second)
	assert.Equal(t, Usage{Vehicles: 12}, usage)
}

func TestMessagesEmpty(t *testing.T) {
	assert.Nil(t, Messages(nil))
	assert.Nil(t, Messages([]Violation{}))
}
