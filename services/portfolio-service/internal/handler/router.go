package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/portfolio-api/services/portfolio-service/internal/model"
	"github.com/vasapolrittideah/portfolio-api/services/portfolio-service/internal/payload"
	"github.com/vasapolrittideah/portfolio-api/services/portfolio-service/internal/usecase"
	"github.com/vasapolrittideah/portfolio-api/shared/metrics"
	"github.com/vasapolrittideah/portfolio-api/shared/middleware"
	"github.com/vasapolrittideah/portfolio-api/shared/respond"
	"github.com/vasapolrittideah/portfolio-api/shared/validation"
)

const (
	skillDefaultLimit    = 12
	resourceDefaultLimit = 100
)

// Dependencies are the collaborators the router is built from. Metrics and Health are optional.
type Dependencies struct {
	Logger    *zerolog.Logger
	Validator *validation.Validator
	Metrics   *metrics.HTTPMetrics
	Health    http.Handler

	Identity    usecase.IdentityUsecase
	Auth        usecase.AuthUsecase
	Customers   usecase.CustomerUsecase
	Experiences usecase.ResourceUsecase[model.Experience, payload.ExperienceInput]
	Projects    usecase.ResourceUsecase[model.Project, payload.ProjectInput]
	Skills      usecase.ResourceUsecase[model.Skill, payload.SkillInput]
	Socials     usecase.ResourceUsecase[model.Social, payload.SocialInput]
}

type resourceRoutes interface {
	Routes(r chi.Router, bearer, apiKey func(http.Handler) http.Handler)
}

func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logging(deps.Logger)...)
	r.Use(chimiddleware.Recoverer)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}
	if deps.Health != nil {
		r.Method(http.MethodGet, "/healthz", deps.Health)
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respond.Message(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respond.Message(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	bearer := middleware.RequireBearer(deps.Identity.ResolveToken)
	apiKey := middleware.RequireAPIKey(deps.Identity.ResolveAPIKey)

	resources := []resourceRoutes{
		NewResourceHandler("experience", resourceDefaultLimit, deps.Experiences, deps.Validator),
		NewResourceHandler("project", resourceDefaultLimit, deps.Projects, deps.Validator),
		NewResourceHandler("skill", skillDefaultLimit, deps.Skills, deps.Validator),
		NewResourceHandler("social", resourceDefaultLimit, deps.Socials, deps.Validator),
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
			respond.Message(w, http.StatusOK, "portfolio api")
		})

		NewAuthHandler(deps.Auth, deps.Validator).Routes(r)
		NewCustomerHandler(deps.Customers, deps.Validator).Routes(r, bearer, apiKey)
		for _, h := range resources {
			h.Routes(r, bearer, apiKey)
		}
	})

	return r
}
