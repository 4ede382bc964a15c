package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNombreEnLettres(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "zéro"},
		{1, "un"},
		{16, "seize"},
		{17, "dix-sept"},
		{21, "vingt et un"},
		{42, "quarante-deux"},
		{61, "soixante et un"},
		{70, "soixante-dix"},
		{71, "soixante et onze"},
		{72, "soixante-douze"},
		{80, "quatre-vingts"},
		{81, "quatre-vingt-un"},
		{91, "quatre-vingt-onze"},
		{99, "quatre-vingt-dix-neuf"},
		{100, "cent"},
		{101, "cent un"},
		{200, "deux cents"},
		{203, "deux cent trois"},
		{880, "huit cent quatre-vingts"},
		{1000, "mille"},
		{1001, "mille un"},
		{2000, "deux mille"},
		{80000, "quatre-vingt mille"},
		{200000, "deux cent mille"},
		{1234, "mille deux cent trente-quatre"},
		{1_000_000, "un million"},
		{2_000_000, "deux millions"},
		{1_000_000_000, "un milliard"},
		{1_234_567, "un million deux cent trente-quatre mille cinq cent soixante-sept"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, NombreEnLettres(tt.n))
		})
	}
}

func TestMontantEnLettres(t *testing.T) {
	tests := []struct {
		montant float64
		want    string
	}{
		{0, "zéro euro"},
		{1, "un euro"},
		{0.01, "zéro euro et un centime"},
		{0.50, "zéro euro et cinquante centimes"},
		{800, "huit cents euros"},
		{80, "quatre-vingts euros"},
		{1234.56, "mille deux cent trente-quatre euros et cinquante-six centimes"},
		{21.01, "vingt et un euros et un centime"},
		{1000, "mille euros"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, MontantEnLettres(tt.montant))
		})
	}
}

func TestMontantEnLettresNegatifTraiteEnValeurAbsolue(t *testing.T) {
	assert.Equal(t, MontantEnLettres(12.34), MontantEnLettres(-12.34))
}

func TestMontantEnLettresArrondiCentimes(t *testing.T) {
	// 10.006 s'arrondit au centime le plus proche
	assert.Equal(t, "dix euros et un centime", MontantEnLettres(10.006))
}
