// Package money реализует денежные суммы с фиксированной точностью.
//
// Сумма хранится как целое число копеек, что исключает ошибки накопления
// при сложении. В базе данных суммы лежат в колонках NUMERIC(10,2),
// наружу сериализуются числом с двумя знаками после запятой.
package money

import (
	"database/sql/driver"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Amount денежная сумма в копейках.
type Amount int64

// FromFloat переводит сумму в рублях в копейки с округлением до копейки.
func FromFloat(v float64) Amount {
	return Amount(math.Round(v * 100))
}

// Parse разбирает десятичную строку вида "351.50" или "120".
// Более двух знаков после точки не допускается.
func Parse(s string) (Amount, error) {
	const op = "money.Parse"

	whole, frac, found := strings.Cut(strings.TrimSpace(s), ".")
	if found && len(frac) > 2 {
		return 0, fmt.Errorf("%s: too many fraction digits in %q", op, s)
	}

	negative := strings.HasPrefix(whole, "-")

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var cents int64
	if found && frac != "" {
		for len(frac) < 2 {
			frac += "0"
		}
		cents, err = strconv.ParseInt(frac, 10, 64)
		if err != nil || cents < 0 {
			return 0, fmt.Errorf("%s: invalid fraction in %q", op, s)
		}
	}

	if negative {
		return Amount(units*100 - cents), nil
	}
	return Amount(units*100 + cents), nil
}

// Float64 возвращает сумму в рублях. Используется только на границе API.
func (a Amount) Float64() float64 {
	return float64(a) / 100
}

// String форматирует сумму с двумя знаками после точки.
func (a Amount) String() string {
	sign := ""
	v := int64(a)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// MarshalJSON сериализует сумму десятичным числом, не строкой.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON принимает как число, так и строку с десятичной суммой.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Scan реализует sql.Scanner для чтения NUMERIC(10,2).
func (a *Amount) Scan(src any) error {
	const op = "money.Scan"
	switch v := src.(type) {
	case nil:
		*a = 0
		return nil
	case int64:
		*a = Amount(v * 100)
		return nil
	case float64:
		*a = FromFloat(v)
		return nil
	case []byte:
		parsed, err := Parse(string(v))
		if err != nil {
			return err
		}
		*a = parsed
		return nil
	case string:
		parsed, err := Parse(v)
		if err != nil {
			return err
		}
		*a = parsed
		return nil
	default:
		return fmt.Errorf("%s: unsupported type %T", op, src)
	}
}

// Value реализует driver.Valuer для записи в NUMERIC(10,2).
func (a Amount) Value() (driver.Value, error) {
	return a.String(), nil
}
