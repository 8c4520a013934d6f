// Package health реализует проверку работоспособности сервиса.
package health

import (
	"net/http"
	"time"

	"github.com/go-chi/render"
)

// New возвращает обработчик health-check.
func New() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]any{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
