package financeiro

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Centavos is a monetary amount in integer minor units (cents of BRL).
// All arithmetic inside the service is done on this type; decimal floats
// exist only at the API boundary.
type Centavos int64

// DeDecimal converts a decimal currency amount (as received in JSON) to cents,
// rounding half away from zero.
func DeDecimal(valor float64) Centavos {
	if math.IsNaN(valor) || math.IsInf(valor, 0) {
		return 0
	}
	return Centavos(math.Round(valor * 100))
}

// Decimal returns the amount as a decimal float for JSON responses.
func (c Centavos) Decimal() float64 {
	return float64(c) / 100
}

// String formats the amount with two decimal places and a dot separator.
func (c Centavos) String() string {
	neg := c < 0
	v := int64(c)
	if neg {
		v = -v
	}
	s := fmt.Sprintf("%d.%02d", v/100, v%100)
	if neg {
		return "-" + s
	}
	return s
}

// ParseDecimal parses a decimal string ("266.68", "266,68" or "266") into cents.
func ParseDecimal(s string) (Centavos, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("valor monetário inválido %q: %w", s, err)
	}
	return DeDecimal(v), nil
}
