package tallyhttp

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/google/wire"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/weegigs/tally-go/tally"
)

type HandlerOption func(service *httpService)

func Logger(log *zerolog.Logger) HandlerOption {
	return func(service *httpService) {
		service.log = log
	}
}

type route struct {
	path        string
	description string
	operation   tally.Operation
}

var counterRoutes = []route{
	{path: "/counter-read", description: "Read current counter value", operation: tally.Read},
	{path: "/counter-increase", description: "Increase counter by one", operation: tally.Increase},
	{path: "/counter-reset", description: "Reset counter to zero", operation: tally.Reset},
}

func NewHandler(counter tally.Service, options ...HandlerOption) http.Handler {
	service := &httpService{counter: counter}
	for _, option := range options {
		option(service)
	}
	if service.log == nil {
		service.log = &log.Logger
	}

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(withRequestID(service.log))
	r.Use(withLogging)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	r.Get("/", service.getInfo())
	for _, rt := range counterRoutes {
		r.Get(rt.path, service.counterOperation(rt))
	}

	return otelhttp.NewHandler(r, "tally-http", otelhttp.WithSpanNameFormatter(spanName))
}

func spanName(_ string, r *http.Request) string {
	return r.Method + " " + r.URL.Path
}

// Provide adapts NewHandler for injection.
func Provide(counter tally.Service, log *zerolog.Logger) http.Handler {
	return NewHandler(counter, Logger(log))
}

var Set = wire.NewSet(Provide)

type httpService struct {
	log     *zerolog.Logger
	counter tally.Service
}

// logger prefers the request scoped logger carrying the request id.
func (service *httpService) logger(r *http.Request) *zerolog.Logger {
	if l := zerolog.Ctx(r.Context()); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return service.log
}

func (service *httpService) getInfo() http.HandlerFunc {
	endpoints := map[string]string{"GET /": "API information"}
	for _, rt := range counterRoutes {
		endpoints[http.MethodGet+" "+rt.path] = rt.description
	}
	info := Info{Name: tally.Name, Version: tally.Version, Endpoints: endpoints}

	return func(w http.ResponseWriter, r *http.Request) {
		service.logger(r).Info().Str("method", r.Method).Str("route", "/").Msg("endpoint")
		encode(w, r, service.logger(r), info)
	}
}

func (service *httpService) counterOperation(rt route) http.HandlerFunc {
	var apply func(r *http.Request) int
	switch rt.operation {
	case tally.Read:
		apply = func(r *http.Request) int { return service.counter.Read(r.Context()) }
	case tally.Increase:
		apply = func(r *http.Request) int { return service.counter.Increase(r.Context()) }
	case tally.Reset:
		apply = func(r *http.Request) int { return service.counter.Reset(r.Context()) }
	default:
		panic("unknown counter operation " + rt.operation.String())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		service.logger(r).Info().Str("method", r.Method).Str("route", rt.path).Msg("endpoint")
		encode(w, r, service.logger(r), Count{Count: apply(r)})
	}
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNotFound)
}
