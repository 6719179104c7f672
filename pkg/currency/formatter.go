package currency

import (
	"fmt"
	"math"
)

// Format renders an amount with "." thousands separators in the style used
// for the given ISO code. EUR is written with a trailing symbol.
func Format(amount float64, code string) string {
	switch code {
	case "EUR", "":
		return FormatEUR(amount)
	default:
		return code + " " + formatInt(amount)
	}
}

func FormatEUR(amount float64) string {
	return formatInt(amount) + " €"
}

func formatInt(amount float64) string {
	rounded := math.Round(amount)

	negative := rounded < 0
	if negative {
		rounded = -rounded
	}

	intStr := fmt.Sprintf("%.0f", rounded)
	formatted := addThousandsSeparator(intStr, ".")

	if negative {
		return "-" + formatted
	}
	return formatted
}

func addThousandsSeparator(s string, sep string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	numSeps := (n - 1) / 3
	result := make([]byte, n+numSeps)

	j := len(result) - 1
	for i := n - 1; i >= 0; i-- {
		result[j] = s[i]
		j--

		pos := n - i
		if pos%3 == 0 && i > 0 {
			result[j] = sep[0]
			j--
		}
	}

	return string(result)
}
