// Package duesledger предоставляет маршруты основного приложения.
package duesledger

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/dues-ledger/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/dues-ledger/internal/http/handlers/auth/me"
	dashboardadmin "github.com/magabrotheeeer/dues-ledger/internal/http/handlers/dashboard/admin"
	dashboardmember "github.com/magabrotheeeer/dues-ledger/internal/http/handlers/dashboard/member"
	"github.com/magabrotheeeer/dues-ledger/internal/http/handlers/health"
	"github.com/magabrotheeeer/dues-ledger/internal/http/handlers/member/byuser"
	"github.com/magabrotheeeer/dues-ledger/internal/http/handlers/member/create"
	"github.com/magabrotheeeer/dues-ledger/internal/http/handlers/member/list"
	"github.com/magabrotheeeer/dues-ledger/internal/http/handlers/member/read"
	"github.com/magabrotheeeer/dues-ledger/internal/http/handlers/member/remove"
	"github.com/magabrotheeeer/dues-ledger/internal/http/handlers/member/update"
	notificationhistory "github.com/magabrotheeeer/dues-ledger/internal/http/handlers/notification/history"
	notificationmember "github.com/magabrotheeeer/dues-ledger/internal/http/handlers/notification/member"
	"github.com/magabrotheeeer/dues-ledger/internal/http/handlers/notification/send"
	"github.com/magabrotheeeer/dues-ledger/internal/http/handlers/payment/bymonth"
	"github.com/magabrotheeeer/dues-ledger/internal/http/handlers/payment/current"
	paymenthistory "github.com/magabrotheeeer/dues-ledger/internal/http/handlers/payment/history"
	"github.com/magabrotheeeer/dues-ledger/internal/http/handlers/payment/outstanding"
	"github.com/magabrotheeeer/dues-ledger/internal/http/handlers/payment/record"
	paymentupdate "github.com/magabrotheeeer/dues-ledger/internal/http/handlers/payment/update"
	"github.com/magabrotheeeer/dues-ledger/internal/http/middlewarectx"
	"github.com/magabrotheeeer/dues-ledger/internal/lib/jwt"
	authservice "github.com/magabrotheeeer/dues-ledger/internal/services/auth"
	dashboardservice "github.com/magabrotheeeer/dues-ledger/internal/services/dashboard"
	memberservice "github.com/magabrotheeeer/dues-ledger/internal/services/member"
	notificationservice "github.com/magabrotheeeer/dues-ledger/internal/services/notification"
	paymentservice "github.com/magabrotheeeer/dues-ledger/internal/services/payment"
)

// Services собирает сервисы приложения для регистрации маршрутов.
type Services struct {
	Auth         *authservice.Service
	Member       *memberservice.Service
	Payment      *paymentservice.Service
	Notification *notificationservice.Service
	Dashboard    *dashboardservice.Service
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, jwtMaker jwt.Maker, s Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Get("/health", health.New())
		r.Post("/login", login.New(logger, s.Auth).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/me", me.New(logger, s.Auth).ServeHTTP)
			r.Get("/members/me", byuser.New(logger, s.Member).ServeHTTP)
			r.Get("/members/{id}", read.New(logger, s.Member).ServeHTTP)
			r.Get("/members/{id}/payments", paymenthistory.New(logger, s.Payment).ServeHTTP)
			r.Get("/members/{id}/payments/current", current.New(logger, s.Payment).ServeHTTP)
			r.Get("/members/{id}/notifications", notificationmember.New(logger, s.Notification).ServeHTTP)
			r.Get("/members/{id}/dashboard", dashboardmember.New(logger, s.Dashboard).ServeHTTP)

			// Операции, доступные только администратору
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireAdmin(logger))

				r.Get("/members", list.New(logger, s.Member).ServeHTTP)
				r.Post("/members", create.New(logger, s.Member).ServeHTTP)
				r.Put("/members/{id}", update.New(logger, s.Member).ServeHTTP)
				r.Delete("/members/{id}", remove.New(logger, s.Member).ServeHTTP)

				r.Post("/payments", record.New(logger, s.Payment).ServeHTTP)
				r.Put("/payments/{id}", paymentupdate.New(logger, s.Payment).ServeHTTP)
				r.Get("/payments/month/{month}", bymonth.New(logger, s.Payment).ServeHTTP)
				r.Get("/payments/outstanding/{month}", outstanding.New(logger, s.Payment).ServeHTTP)

				r.Post("/notifications/send", send.New(logger, s.Notification).ServeHTTP)
				r.Get("/notifications", notificationhistory.New(logger, s.Notification).ServeHTTP)

				r.Get("/dashboard/admin", dashboardadmin.New(logger, s.Dashboard).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
