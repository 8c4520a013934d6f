// Package month содержит функции для работы с ключом месяца в формате "YYYY-MM".
package month

import (
	"fmt"
	"time"
)

// Layout формат ключа месяца, например "2024-03".
const Layout = "2006-01"

// Parse разбирает ключ месяца и возвращает год и номер месяца (1-12).
func Parse(key string) (year int, monthNumber int, err error) {
	const op = "month.Parse"
	t, err := time.Parse(Layout, key)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", op, err)
	}
	return t.Year(), int(t.Month()), nil
}

// CurrentKey возвращает ключ текущего календарного месяца.
func CurrentKey() string {
	return time.Now().UTC().Format(Layout)
}
