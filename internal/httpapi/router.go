package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"styledecor/internal/api"
	"styledecor/internal/booking"
	"styledecor/internal/decorator"
	"styledecor/internal/payment"
	"styledecor/internal/tracking"
	"styledecor/internal/user"
	"styledecor/pkg/checkout"
	"styledecor/pkg/config"
)

type Dependencies struct {
	Cfg config.Config
	DB  *pgxpool.Pool
}

func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	usersRepo := user.NewRepository(deps.DB)
	userHandlers := user.Handlers{Repo: usersRepo}
	bookingsRepo := booking.NewRepository(deps.DB)
	decoratorsRepo := decorator.NewRepository(deps.DB)
	decoratorHandlers := decorator.Handlers{Repo: decoratorsRepo}
	bookingHandlers := booking.Handlers{
		DB:         deps.DB,
		Bookings:   bookingsRepo,
		Decorators: decoratorsRepo,
	}
	trackingHandlers := tracking.Handlers{DB: deps.DB}
	paymentHandlers := payment.Handlers{
		Cfg:      deps.Cfg,
		DB:       deps.DB,
		Bookings: bookingsRepo,
		Checkout: checkout.Client{
			BaseURL:   deps.Cfg.Checkout.BaseURL,
			SecretKey: deps.Cfg.Checkout.SecretKey,
		},
	}

	// v1
	r.Route("/v1", func(r chi.Router) {
		// Browser-facing endpoints live on a separate frontend domain.
		r.Use(api.CORSMiddleware(api.CORSOptions{
			AllowedOrigins: deps.Cfg.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "Authorization"},
			MaxAgeSeconds:  600,
		}))

		// Public: sign-in registration, track-by-id, payment redirect target.
		r.Post("/users", userHandlers.Register)
		r.Get("/bookings/track/{trackingId}", trackingHandlers.Track)
		r.Patch("/payment-success", paymentHandlers.ConfirmSuccess)

		// Customer
		r.Group(func(r chi.Router) {
			r.Use(api.AuthRequired(deps.Cfg, usersRepo))

			r.Post("/bookings", bookingHandlers.Create)
			r.Get("/bookings/my", bookingHandlers.Mine)
			r.Post("/payment-checkout-session", paymentHandlers.CreateCheckoutSession)
		})

		// Admin
		r.Group(func(r chi.Router) {
			r.Use(api.AuthRequired(deps.Cfg, usersRepo))
			r.Use(api.RequireRole(user.RoleAdmin))

			r.Get("/bookings-assign", bookingHandlers.ListForAssignment)
			r.Get("/decorators/available", decoratorHandlers.ListAvailable)
			r.Patch("/bookings/status/{id}", bookingHandlers.PatchStatus)
		})

		// Decorator
		r.Group(func(r chi.Router) {
			r.Use(api.AuthRequired(deps.Cfg, usersRepo))
			r.Use(api.RequireRole(user.RoleDecorator))

			r.Get("/bookings/assigned", bookingHandlers.Assigned)
			r.Patch("/bookings/decorator-status/{id}", bookingHandlers.PatchDecoratorStatus)
		})
	})

	return r
}
