package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Количество знаков после запятой для денежных сумм и множителей
const places = 2

// Round2 округляет значение до копеек
func Round2(x float64) float64 {
	return decimal.NewFromFloat(x).Round(places).InexactFloat64()
}

// Floor2 округляет значение вниз до двух знаков
func Floor2(x float64) float64 {
	return decimal.NewFromFloat(x).RoundFloor(places).InexactFloat64()
}

// Encode кодирует сумму в строку вида "12.30"
func Encode(x float64) string {
	return decimal.NewFromFloat(x).StringFixed(places)
}

// Decode разбирает денежную строку и округляет до двух знаков
func Decode(s string) (float64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d.Round(places).InexactFloat64(), nil
}
