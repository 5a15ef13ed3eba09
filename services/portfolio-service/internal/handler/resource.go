package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vasapolrittideah/portfolio-api/services/portfolio-service/internal/payload"
	"github.com/vasapolrittideah/portfolio-api/services/portfolio-service/internal/repository"
	"github.com/vasapolrittideah/portfolio-api/services/portfolio-service/internal/usecase"
	"github.com/vasapolrittideah/portfolio-api/shared/respond"
	"github.com/vasapolrittideah/portfolio-api/shared/validation"
)

// ResourceHandler serves the routes of one kind of customer-owned resource under "/{name}".
type ResourceHandler[T any, I repository.Fields] struct {
	name         string
	defaultLimit int64
	resources    usecase.ResourceUsecase[T, I]
	validator    *validation.Validator
}

func NewResourceHandler[T any, I repository.Fields](
	name string,
	defaultLimit int64,
	resources usecase.ResourceUsecase[T, I],
	validator *validation.Validator,
) *ResourceHandler[T, I] {
	return &ResourceHandler[T, I]{
		name:         name,
		defaultLimit: defaultLimit,
		resources:    resources,
		validator:    validator,
	}
}

func (h *ResourceHandler[T, I]) Routes(r chi.Router, bearer, apiKey func(http.Handler) http.Handler) {
	r.Route("/"+h.name, func(r chi.Router) {
		r.Get("/", h.List)
		r.With(bearer).Get("/me", h.ListOwn)
		r.With(apiKey).Get("/public", h.ListOwn)
		r.Get("/email/{email}", h.ListByEmail)
		r.Get("/{id}", h.Get)
		r.With(bearer).Post("/", h.Create)
		r.With(bearer).Patch("/", h.UpdateMany)
		r.With(bearer).Patch("/{id}", h.Update)
		r.With(bearer).Delete("/{id}", h.Delete)
	})
}

func (h *ResourceHandler[T, I]) List(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromQuery(r, h.defaultLimit)
	if err != nil {
		writeError(w, r, err)
		return
	}

	items, err := h.resources.List(r.Context(), page)
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, items)
}

// ListOwn lists the resources of the authenticated customer, whichever scheme authenticated it.
func (h *ResourceHandler[T, I]) ListOwn(w http.ResponseWriter, r *http.Request) {
	customerID, err := subject(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	page, err := pageFromQuery(r, h.defaultLimit)
	if err != nil {
		writeError(w, r, err)
		return
	}

	items, err := h.resources.ListByCustomer(r.Context(), customerID, page)
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, items)
}

func (h *ResourceHandler[T, I]) ListByEmail(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromQuery(r, h.defaultLimit)
	if err != nil {
		writeError(w, r, err)
		return
	}

	items, err := h.resources.ListByEmail(r.Context(), chi.URLParam(r, "email"), page)
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, items)
}

func (h *ResourceHandler[T, I]) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.resources.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, item)
}

func (h *ResourceHandler[T, I]) Create(w http.ResponseWriter, r *http.Request) {
	customerID, err := subject(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var input I
	if err := decode(w, r, &input, h.validator); err != nil {
		writeError(w, r, err)
		return
	}

	id, err := h.resources.Create(r.Context(), customerID, input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, id.Hex())
}

func (h *ResourceHandler[T, I]) Update(w http.ResponseWriter, r *http.Request) {
	customerID, err := subject(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var input I
	if err := decode(w, r, &input, h.validator); err != nil {
		writeError(w, r, err)
		return
	}

	item, err := h.resources.Update(r.Context(), customerID, chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, item)
}

func (h *ResourceHandler[T, I]) UpdateMany(w http.ResponseWriter, r *http.Request) {
	customerID, err := subject(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var batch []payload.BatchItem[I]
	if err := decode(w, r, &batch, nil); err != nil {
		writeError(w, r, err)
		return
	}

	updates := make([]repository.Update[I], 0, len(batch))
	for _, item := range batch {
		if err := h.validator.Struct(item.Input); err != nil {
			writeError(w, r, err)
			return
		}
		updates = append(updates, repository.Update[I]{ID: item.ID, Input: item.Input})
	}

	items, err := h.resources.UpdateMany(r.Context(), customerID, updates)
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, items)
}

func (h *ResourceHandler[T, I]) Delete(w http.ResponseWriter, r *http.Request) {
	customerID, err := subject(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	item, err := h.resources.Delete(r.Context(), customerID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, item)
}
