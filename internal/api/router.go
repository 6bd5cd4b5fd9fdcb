package api

import (
	"net/http"

	"github.com/dissom/Train-Station-API-Service/internal/api/middleware"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

func NewRouter(h *Handlers, redisClient *redis.Client) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/stations", func(r chi.Router) {
			r.Get("/", h.ListStations)
			r.Post("/", h.CreateStation)
			r.Get("/{id}", h.GetStation)
			r.Put("/{id}", h.UpdateStation)
			r.Delete("/{id}", h.DeleteStation)
		})

		r.Route("/routes", func(r chi.Router) {
			r.Get("/", h.ListRoutes)
			r.Post("/", h.CreateRoute)
			r.Get("/{id}", h.GetRoute)
			r.Put("/{id}", h.UpdateRoute)
			r.Delete("/{id}", h.DeleteRoute)
		})

		r.Route("/train-types", func(r chi.Router) {
			r.Get("/", h.ListTrainTypes)
			r.Post("/", h.CreateTrainType)
			r.Get("/{id}", h.GetTrainType)
			r.Put("/{id}", h.UpdateTrainType)
			r.Delete("/{id}", h.DeleteTrainType)
		})

		r.Route("/trains", func(r chi.Router) {
			r.Get("/", h.ListTrains)
			r.Post("/", h.CreateTrain)
			r.Get("/{id}", h.GetTrain)
			r.Put("/{id}", h.UpdateTrain)
			r.Delete("/{id}", h.DeleteTrain)
		})

		r.Route("/journeys", func(r chi.Router) {
			r.Get("/", h.ListJourneys)
			r.Post("/", h.CreateJourney)
			r.Get("/{id}", h.GetJourney)
			r.Put("/{id}", h.UpdateJourney)
			r.Delete("/{id}", h.DeleteJourney)
		})

		r.Route("/crew", func(r chi.Router) {
			r.Get("/", h.ListCrew)
			r.Post("/", h.CreateCrewMember)
			r.Get("/{id}", h.GetCrewMember)
			r.Put("/{id}", h.UpdateCrewMember)
			r.Delete("/{id}", h.DeleteCrewMember)
		})

		// Orders are owner-scoped; creation is idempotency-guarded.
		r.Route("/orders", func(r chi.Router) {
			r.Use(middleware.RequireUser)
			r.With(middleware.Idempotency(redisClient)).Post("/", h.CreateOrder)
			r.Get("/", h.ListOrders)
			r.Get("/{id}", h.GetOrder)
			r.Delete("/{id}", h.DeleteOrder)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
