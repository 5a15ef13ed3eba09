package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/hlog"

	"github.com/vasapolrittideah/portfolio-api/services/portfolio-service/internal/payload"
	"github.com/vasapolrittideah/portfolio-api/services/portfolio-service/internal/repository"
	"github.com/vasapolrittideah/portfolio-api/services/portfolio-service/internal/usecase"
	"github.com/vasapolrittideah/portfolio-api/shared/middleware"
	"github.com/vasapolrittideah/portfolio-api/shared/respond"
	"github.com/vasapolrittideah/portfolio-api/shared/validation"
)

const maxBodyBytes = 1 << 20

var errInvalidBody = errors.New("invalid request body")

// decode reads a JSON body into v and, given a validator, validates it.
func decode(w http.ResponseWriter, r *http.Request, v any, validator *validation.Validator) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errInvalidBody, err)
	}

	if validator == nil {
		return nil
	}
	return validator.Struct(v)
}

// pageFromQuery reads the "page" and "limit" query parameters. Range checks are left to the use case.
func pageFromQuery(r *http.Request, defaultLimit int64) (repository.Page, error) {
	page := repository.Page{Number: 1, Limit: defaultLimit}

	if v := r.URL.Query().Get("page"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return page, fmt.Errorf("%w: page must be an integer", usecase.ErrInvalidPagination)
		}
		page.Number = n
	}

	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return page, fmt.Errorf("%w: limit must be an integer", usecase.ErrInvalidPagination)
		}
		page.Limit = n
	}

	return page, nil
}

// subject returns the customer id put in the context by the auth middleware.
func subject(r *http.Request) (string, error) {
	id, ok := middleware.SubjectFromContext(r.Context())
	if !ok {
		return "", usecase.ErrUnauthenticated
	}
	return id, nil
}

// writeError maps an error to its status code. Client errors echo the error text,
// anything unrecognized is logged and hidden behind a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *validation.Error

	switch {
	case errors.Is(err, usecase.ErrUnauthenticated):
		respond.Message(w, http.StatusUnauthorized, middleware.UnauthorizedMessage)
	case errors.Is(err, usecase.ErrGoogleLoginDisabled):
		respond.Message(w, http.StatusNotFound, err.Error())
	case errors.As(err, &validationErr),
		errors.Is(err, errInvalidBody),
		errors.Is(err, payload.ErrEndBeforeStart),
		errors.Is(err, usecase.ErrInvalidInput),
		errors.Is(err, usecase.ErrInvalidPagination),
		errors.Is(err, usecase.ErrInvalidCredentials),
		errors.Is(err, usecase.ErrCustomerAlreadyExists),
		errors.Is(err, usecase.ErrCustomerNotFound),
		errors.Is(err, repository.ErrInvalidID),
		errors.Is(err, repository.ErrNotFound),
		errors.Is(err, repository.ErrNoUpdates):
		respond.Message(w, http.StatusBadRequest, err.Error())
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("request failed")
		respond.Message(w, http.StatusInternalServerError, "something went wrong")
	}
}
