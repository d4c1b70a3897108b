package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/voyageyou/voyage-backend/api/controllers"
	"github.com/voyageyou/voyage-backend/api/middleware"
	bookingsvc "github.com/voyageyou/voyage-backend/internal/booking"
	itinerarysvc "github.com/voyageyou/voyage-backend/internal/itinerary"
	schedulesvc "github.com/voyageyou/voyage-backend/internal/schedules"
	"github.com/voyageyou/voyage-backend/internal/wizard"
	"github.com/voyageyou/voyage-backend/pkg/config"
	"github.com/voyageyou/voyage-backend/pkg/logger"
	"github.com/voyageyou/voyage-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisClient *redis.Client,
	itineraryService itinerarysvc.Service,
	wizardService wizard.Service,
	bookingService bookingsvc.Service,
	scheduleService schedulesvc.Service,
	metricsHandler http.Handler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler)
	} else {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
		r.Post("/validate", controllers.ValidateField(logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Route("/itineraries", func(r chi.Router) {
			r.Post("/", controllers.StageItinerary(itineraryService, logg))
			r.Get("/{itineraryID}", controllers.GetItinerary(itineraryService, logg))
			r.Delete("/{itineraryID}", controllers.ClearItinerary(itineraryService, logg))
		})

		r.Route("/checkout/sessions", func(r chi.Router) {
			r.Post("/", controllers.StartCheckoutSession(wizardService, logg))
			r.Route("/{sessionID}", func(r chi.Router) {
				r.Get("/", controllers.GetCheckoutSession(wizardService, logg))
				r.Delete("/", controllers.DiscardCheckoutSession(wizardService, logg))
				r.Post("/next", controllers.AdvanceCheckoutStep(wizardService, logg))
				r.Post("/previous", controllers.RetreatCheckoutStep(wizardService, logg))
				r.Patch("/fields", controllers.SetCheckoutField(wizardService, logg))
				r.Post("/travelers", controllers.AddCheckoutTraveler(wizardService, logg))
				r.Delete("/travelers/{index}", controllers.RemoveCheckoutTraveler(wizardService, logg))
				r.Post("/submit", controllers.SubmitCheckout(bookingService, logg))
			})
		})

		r.Route("/schedules", func(r chi.Router) {
			r.Post("/", controllers.SaveSchedule(scheduleService, logg))
			r.Get("/", controllers.ListSchedules(scheduleService, logg))
			r.Get("/{scheduleID}", controllers.GetSchedule(scheduleService, logg))
			r.Delete("/{scheduleID}", controllers.DeleteSchedule(scheduleService, logg))
		})
	})

	return r
}
