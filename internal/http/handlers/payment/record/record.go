// Package record реализует HTTP-обработчик записи платежа за месяц.
//
// Одна запись на пару участник+месяц: повторная запись отклоняется с 409.
package record

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/dues-ledger/internal/http/middlewarectx"
	"github.com/magabrotheeeer/dues-ledger/internal/http/response"
	"github.com/magabrotheeeer/dues-ledger/internal/lib/sl"
	"github.com/magabrotheeeer/dues-ledger/internal/lib/validate"
	"github.com/magabrotheeeer/dues-ledger/internal/models"
	"github.com/magabrotheeeer/dues-ledger/internal/storage/repository"
)

// Handler управляет HTTP-запросами на запись платежа.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики платёжного реестра.
type Service interface {
	Record(ctx context.Context, adminID int, req models.DummyRecordPayment) (*models.PaymentRecord, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validate.New(),
	}
}

// ServeHTTP godoc
// @Summary Записать платёж
// @Description Создает платёжную запись участника за месяц. Повторная запись за тот же месяц отклоняется.
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.DummyRecordPayment true "Данные платежа"
// @Success 200 {object} response.Response "Созданная запись"
// @Failure 404 {object} response.ErrorResponse "Участник не найден"
// @Failure 409 {object} response.ErrorResponse "Платёж за месяц уже записан"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /payments [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.record"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	adminID, ok := r.Context().Value(middlewarectx.UserID).(int)
	if !ok {
		log.Error("user id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	var req models.DummyRecordPayment
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	payment, err := h.service.Record(r.Context(), adminID, req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrMemberNotFound):
			log.Error("member not found", slog.Int("member_id", req.MemberID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("member not found"))
		case errors.Is(err, repository.ErrDuplicatePayment):
			log.Error("payment already recorded",
				slog.Int("member_id", req.MemberID),
				slog.String("month", req.Month))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("payment for this month already recorded"))
		default:
			log.Error("failed to record payment", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not record payment"))
		}
		return
	}

	log.Info("payment recorded",
		slog.Int("id", payment.ID),
		slog.Int("member_id", payment.MemberID),
		slog.String("month", payment.Month))
	render.JSON(w, r, response.OKWithData(payment))
}
