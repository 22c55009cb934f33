package items

import (
	"regexp"
	"strconv"
	"strings"
)

// priceFormat acepta enteros y hasta dos decimales ("10", "10.5", "10.50").
// numeric(10,2) en DB; acá solo validamos forma, nunca pasamos por float.
var priceFormat = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

// validPrice valida formato de precio ya trimmeado.
func validPrice(price string) bool {
	return priceFormat.MatchString(price)
}

// toCents convierte un precio ya validado a centavos.
// numeric(10,2) entra cómodo en int64, no hay riesgo de overflow.
func toCents(price string) int64 {
	whole, fraction, _ := strings.Cut(price, ".")
	// Normalizamos la parte decimal a dos dígitos ("5" => "50").
	for len(fraction) < 2 {
		fraction += "0"
	}
	units, _ := strconv.ParseInt(whole, 10, 64)
	cents, _ := strconv.ParseInt(fraction, 10, 64)
	return units*100 + cents
}

// comparePrices devuelve -1, 0 o 1 comparando dos precios válidos.
func comparePrices(a, b string) int {
	centsA, centsB := toCents(a), toCents(b)
	switch {
	case centsA < centsB:
		return -1
	case centsA > centsB:
		return 1
	default:
		return 0
	}
}
