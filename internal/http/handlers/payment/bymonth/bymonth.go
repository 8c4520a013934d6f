// Package bymonth реализует HTTP-обработчик получения платежей за месяц.
package bymonth

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

// Handler управляет HTTP-запросами на получение платежей за месяц.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики платёжного реестра.
type Service interface {
	ByMonth(ctx context.Context, monthKey string) ([]*models.PaymentRecord, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.bymonth"
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

	payments, err := h.service.ByMonth(r.Context(), monthKey)
	if err != nil {
		log.Error("failed to list payments", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list payments"))
		return
	}

	log.Info("payments listed", slog.String("month", monthKey), slog.Int("count", len(payments)))
	render.JSON(w, r, response.OKWithData(payments))
}
