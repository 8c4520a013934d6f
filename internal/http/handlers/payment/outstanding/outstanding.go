// Package outstanding реализует HTTP-обработчик списка должников за месяц.
package outstanding

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/dues-ledger/internal/http/response"
	"github.com/magabrotheeeer/dues-ledger/internal/lib/month"
	"github.com/magabrotheeeer/dues-ledger/internal/lib/sl"
	"github.com/magabrotheeeer/dues-ledger/internal/models"
)

// Handler управляет HTTP-запросами на получение списка должников.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики платёжного реестра.
type Service interface {
	Outstanding(ctx context.Context, monthKey string) ([]*models.OutstandingRecord, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.outstanding"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	monthKey := chi.URLParam(r, "month")
	if _, _, err := month.Parse(monthKey); err != nil {
		log.Error("invalid month", slog.String("month", monthKey), sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("month must be in format YYYY-MM"))
		return
	}

	records, err := h.service.Outstanding(r.Context(), monthKey)
	if err != nil {
		log.Error("failed to list outstanding payments", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list outstanding payments"))
		return
	}

	log.Info("outstanding listed", slog.String("month", monthKey), slog.Int("count", len(records)))
	render.JSON(w, r, response.OKWithData(records))
}
