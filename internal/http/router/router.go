// Package router define las rutas HTTP del servicio.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dropDatabas3/eventeye/internal/cache"
	"github.com/dropDatabas3/eventeye/internal/delivery"
	"github.com/dropDatabas3/eventeye/internal/events"
	"github.com/dropDatabas3/eventeye/internal/http/controllers"
	"github.com/dropDatabas3/eventeye/internal/metrics"
	"github.com/dropDatabas3/eventeye/internal/observability/logger"
	"github.com/dropDatabas3/eventeye/internal/store"
)

// Deps contiene las dependencias del router.
type Deps struct {
	Store     store.Store
	Events    *events.Service
	Delivery  *delivery.Service
	Artifacts *cache.ArtifactCache
	Registry  *prometheus.Registry // opcional, default prometheus.DefaultRegisterer
}

// New construye el router completo del servicio.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(requestLogger)

	var reg prometheus.Registerer = prometheus.DefaultRegisterer
	metricsHandler := promhttp.Handler()
	if deps.Registry != nil {
		reg = deps.Registry
		metricsHandler = promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})
	}
	_ = metrics.Register(reg)

	health := controllers.NewHealthController(deps.Store)
	parse := controllers.NewParseController()
	ev := controllers.NewEventsController(deps.Events)
	dl := controllers.NewDeliveryController(deps.Events, deps.Delivery, deps.Artifacts)

	r.Get("/readyz", health.Ready)
	r.Handle("/metrics", metricsHandler)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/parse", parse.Parse)

		r.Route("/events", func(r chi.Router) {
			r.Post("/", ev.Create)
			r.Get("/", ev.List)

			r.Route("/{eventID}", func(r chi.Router) {
				r.Get("/", ev.Get)
				r.Delete("/", ev.Delete)

				r.Post("/certificates", dl.Generate)
				r.Post("/send", dl.SendIndividual)
				r.Post("/send-to-owner", dl.SendToOwner)
				r.Get("/participants/{participantID}/certificate", dl.Certificate)
			})
		})
	})

	return r
}

// requestLogger inyecta un logger scoped al request en el contexto y
// loguea cada request completado.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		reqID := chimw.GetReqID(r.Context())
		log := logger.L().With(
			logger.RequestID(reqID),
			logger.Method(r.Method),
			logger.Path(r.URL.Path),
		)
		ctx := logger.ToContext(r.Context(), log)

		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))

		log.Info("request completed",
			logger.Status(ww.Status()),
			logger.Duration(time.Since(start)),
		)
	})
}
