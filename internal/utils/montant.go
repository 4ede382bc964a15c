package utils

import (
	"math"
	"strings"
)

// Conversion des montants de facture en toutes lettres, exigée sur les
// documents de facturation. Orthographe traditionnelle : traits d'union
// dans les dizaines composées, « et » pour 21, 31, 41, 51, 61 et 71.

var unites = []string{
	"zéro", "un", "deux", "trois", "quatre", "cinq", "six", "sept",
	"huit", "neuf", "dix", "onze", "douze", "treize", "quatorze",
	"quinze", "seize",
}

var dizaines = map[int]string{
	10: "dix",
	20: "vingt",
	30: "trente",
	40: "quarante",
	50: "cinquante",
	60: "soixante",
}

func moinsDeVingt(n int) string {
	if n < 17 {
		return unites[n]
	}
	return "dix-" + unites[n-10]
}

func moinsDeCent(n int, final bool) string {
	if n < 20 {
		return moinsDeVingt(n)
	}

	switch {
	case n < 70:
		d := (n / 10) * 10
		r := n % 10
		if r == 0 {
			return dizaines[d]
		}
		if r == 1 {
			return dizaines[d] + " et un"
		}
		return dizaines[d] + "-" + unites[r]
	case n < 80:
		// 70-79 se construisent sur soixante
		if n == 71 {
			return "soixante et onze"
		}
		return "soixante-" + moinsDeVingt(n-60)
	default:
		// 80-99 se construisent sur quatre-vingt, sans « et ».
		// « vingts » perd son s quand un autre numéral suit.
		if n == 80 {
			if final {
				return "quatre-vingts"
			}
			return "quatre-vingt"
		}
		return "quatre-vingt-" + moinsDeVingt(n-80)
	}
}

func moinsDeMille(n int, final bool) string {
	c := n / 100
	r := n % 100

	if c == 0 {
		return moinsDeCent(r, final)
	}

	var cent string
	switch {
	case c == 1:
		cent = "cent"
	case r == 0 && final:
		// « cents » prend le s uniquement en fin de nombre
		cent = unites[c] + " cents"
	default:
		cent = unites[c] + " cent"
	}

	if r == 0 {
		return cent
	}
	return cent + " " + moinsDeCent(r, final)
}

// NombreEnLettres écrit un entier positif en toutes lettres.
// Couvre jusqu'aux milliards, largement au-delà des montants facturés.
func NombreEnLettres(n int64) string {
	if n == 0 {
		return "zéro"
	}

	var parts []string

	appendGroup := func(count int64, singular, plural string) {
		if count == 0 {
			return
		}
		if count == 1 {
			parts = append(parts, "un "+singular)
			return
		}
		parts = append(parts, moinsDeMille(int(count), false)+" "+plural)
	}

	appendGroup(n/1_000_000_000, "milliard", "milliards")
	n %= 1_000_000_000
	appendGroup(n/1_000_000, "million", "millions")
	n %= 1_000_000

	if k := n / 1000; k > 0 {
		// « mille » est invariable
		if k == 1 {
			parts = append(parts, "mille")
		} else {
			parts = append(parts, moinsDeMille(int(k), false)+" mille")
		}
	}
	n %= 1000

	if n > 0 {
		parts = append(parts, moinsDeMille(int(n), true))
	}

	return strings.Join(parts, " ")
}

// MontantEnLettres écrit un montant en euros en toutes lettres,
// centimes compris. Exemples :
//
//	800      -> « huit cents euros »
//	1234.56  -> « mille deux cent trente-quatre euros et cinquante-six centimes »
func MontantEnLettres(montant float64) string {
	if montant < 0 {
		montant = -montant
	}

	total := int64(math.Floor(montant*100 + 0.5))
	euros := total / 100
	centimes := total % 100

	var b strings.Builder
	b.WriteString(NombreEnLettres(euros))
	if euros > 1 {
		b.WriteString(" euros")
	} else {
		b.WriteString(" euro")
	}

	if centimes > 0 {
		b.WriteString(" et ")
		b.WriteString(NombreEnLettres(centimes))
		if centimes > 1 {
			b.WriteString(" centimes")
		} else {
			b.WriteString(" centime")
		}
	}

	return b.String()
}
