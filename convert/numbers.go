package convert

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

func TwoDecimals(number float64) float64 {
	return RoundFloat64(number, 2)
}

func RoundFloat64(number float64, decimals int) float64 {
	return math.Round(number*math.Pow10(int(decimals))) / math.Pow10(int(decimals))
}

// ParseDecimal parses a numeric cell from a tabular extract. Italian
// exports commonly use a comma as decimal separator, so a comma is
// normalized to a period before parsing.
func ParseDecimal(str string) (float64, error) {
	str = strings.TrimSpace(str)
	if str == "" {
		return 0, fmt.Errorf("empty numeric cell")
	}
	str = strings.ReplaceAll(str, ",", ".")
	v, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable number %q", str)
	}
	return v, nil
}

// MWhToKWh converts a EUR/MWh price to the EUR/kWh view. Presentation
// only, the EUR/MWh value stays the canonical unit.
func MWhToKWh(pricePerMWh float64) float64 {
	return pricePerMWh / 1000.0
}
