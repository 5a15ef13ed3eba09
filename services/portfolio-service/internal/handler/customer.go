package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vasapolrittideah/portfolio-api/services/portfolio-service/internal/payload"
	"github.com/vasapolrittideah/portfolio-api/services/portfolio-service/internal/usecase"
	"github.com/vasapolrittideah/portfolio-api/shared/respond"
	"github.com/vasapolrittideah/portfolio-api/shared/validation"
)

const customerDefaultLimit = 100

type CustomerHandler struct {
	customers usecase.CustomerUsecase
	validator *validation.Validator
}

func NewCustomerHandler(customers usecase.CustomerUsecase, validator *validation.Validator) *CustomerHandler {
	return &CustomerHandler{customers: customers, validator: validator}
}

func (h *CustomerHandler) Routes(r chi.Router, bearer, apiKey func(http.Handler) http.Handler) {
	r.Route("/customer", func(r chi.Router) {
		r.With(bearer).Get("/", h.List)
		r.With(bearer).Get("/me", h.GetMe)
		r.With(bearer).Patch("/me", h.UpdateMe)
		r.With(bearer).Delete("/me", h.DeleteMe)
		r.With(apiKey).Get("/public", h.GetPublic)
		r.Get("/email/{email}", h.GetByEmail)
		r.With(bearer).Get("/{id}", h.Get)
	})
}

func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromQuery(r, customerDefaultLimit)
	if err != nil {
		writeError(w, r, err)
		return
	}

	customers, err := h.customers.ListCustomers(r.Context(), page)
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, customers)
}

func (h *CustomerHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	id, err := subject(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	customer, err := h.customers.GetProfile(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	id, err := subject(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req payload.CustomerUpdateRequest
	if err := decode(w, r, &req, h.validator); err != nil {
		writeError(w, r, err)
		return
	}

	customer, err := h.customers.UpdateProfile(r.Context(), id, usecase.UpdateProfileParams{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		WaLink:         req.WaLink,
		Intro:          req.Intro,
		About:          req.About,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	id, err := subject(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	customer, err := h.customers.DeleteProfile(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) GetPublic(w http.ResponseWriter, r *http.Request) {
	id, err := subject(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.writeCustomer(w, r, id)
}

func (h *CustomerHandler) GetByEmail(w http.ResponseWriter, r *http.Request) {
	customer, err := h.customers.GetPublicProfileByEmail(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.writeCustomer(w, r, chi.URLParam(r, "id"))
}

func (h *CustomerHandler) writeCustomer(w http.ResponseWriter, r *http.Request, id string) {
	customer, err := h.customers.GetCustomer(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, customer)
}
