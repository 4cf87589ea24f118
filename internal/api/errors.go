// PlayNext - Video Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/playnext/internal/catalog"
	"github.com/tomtom215/playnext/internal/models"
	"github.com/tomtom215/playnext/internal/recommend"
	"github.com/tomtom215/playnext/internal/validation"
)

// Error codes returned by the API.
const (
	CodeInvalidParameter   = "INVALID_PARAMETER"
	CodeInvalidBody        = "INVALID_BODY"
	CodeCatalogUnavailable = "CATALOG_UNAVAILABLE"
	CodeTimeout            = "TIMEOUT"
	CodeCancelled          = "REQUEST_CANCELLED"
	CodeInternal           = "INTERNAL_ERROR"
	CodeNotFound           = "NOT_FOUND"
	CodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
)

// classifyError maps an engine error to an HTTP status and API error.
// Struct validation failures keep their field details.
func classifyError(err error) (int, *models.APIError) {
	var verr *validation.RequestValidationError
	switch {
	case errors.As(err, &verr):
		apiErr := verr.ToAPIError()
		return http.StatusBadRequest, &models.APIError{
			Code:    CodeInvalidParameter,
			Message: apiErr.Message,
			Details: apiErr.Details,
		}
	case errors.Is(err, recommend.ErrInvalidParameter):
		return http.StatusBadRequest, &models.APIError{Code: CodeInvalidParameter, Message: err.Error()}
	case errors.Is(err, recommend.ErrNoCatalog), errors.Is(err, catalog.ErrData):
		return http.StatusServiceUnavailable, &models.APIError{Code: CodeCatalogUnavailable, Message: "Game catalog is not available"}
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, &models.APIError{Code: CodeTimeout, Message: "Request timed out"}
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout, &models.APIError{Code: CodeCancelled, Message: "Request cancelled"}
	default:
		return http.StatusInternalServerError, &models.APIError{Code: CodeInternal, Message: "Internal server error"}
	}
}

// respondEngineError writes the envelope for an engine error.
func respondEngineError(w http.ResponseWriter, r *http.Request, err error) {
	status, apiErr := classifyError(err)
	respondAPIError(w, r, status, apiErr, err)
}
