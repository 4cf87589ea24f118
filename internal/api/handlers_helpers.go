// PlayNext - Video Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/goccy/go-json"

	"github.com/tomtom215/playnext/internal/logging"
	"github.com/tomtom215/playnext/internal/middleware"
	"github.com/tomtom215/playnext/internal/models"
)

// maxBodyBytes bounds request bodies; filter payloads are small.
const maxBodyBytes = 1 << 20

// sanitizeLogValue removes control characters from strings to prevent log injection attacks.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&result, "\\x%02x", r)
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// newMetadata stamps the response envelope metadata for r.
func newMetadata(r *http.Request, queryTime time.Duration) models.Metadata {
	return models.Metadata{
		Timestamp:   time.Now(),
		RequestID:   middleware.GetRequestID(r.Context()),
		QueryTimeMS: queryTime.Milliseconds(),
	}
}

// respondSuccess wraps data in a success envelope.
func respondSuccess(w http.ResponseWriter, r *http.Request, data any, queryTime time.Duration) {
	respondJSON(w, r, http.StatusOK, &models.APIResponse{
		Status:   models.StatusSuccess,
		Data:     data,
		Metadata: newMetadata(r, queryTime),
	})
}

// respondJSON sends a JSON response with an ETag over the body. A matching
// If-None-Match on a GET yields 304 Not Modified.
func respondJSON(w http.ResponseWriter, r *http.Request, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Vary", "Accept-Encoding")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	// Timestamps differ per response, so the ETag covers the payload only.
	etag, err := generateETag(response.Data)
	if err == nil {
		w.Header().Set("ETag", etag)
		if r.Method == http.MethodGet && status == http.StatusOK && r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// generateETag returns a strong ETag over the JSON encoding of data.
func generateETag(data any) (string, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	return `"` + strconv.FormatUint(xxhash.Sum64(b), 16) + `"`, nil
}

// respondError sends an error response
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, err error) {
	respondAPIError(w, r, status, &models.APIError{Code: code, Message: message}, err)
}

func respondAPIError(w http.ResponseWriter, r *http.Request, status int, apiErr *models.APIError, err error) {
	if err != nil {
		logger := logging.Ctx(r.Context())
		event := logger.Warn()
		if status >= http.StatusInternalServerError {
			event = logger.Error()
		}
		event.Str("code", sanitizeLogValue(apiErr.Code)).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("API Error")
	}

	respondJSON(w, r, status, &models.APIResponse{
		Status:   models.StatusError,
		Data:     nil,
		Metadata: newMetadata(r, 0),
		Error:    apiErr,
	})
}

// decodeBody decodes an optional JSON body into dst. An empty body leaves
// dst at its zero value; unknown fields are rejected.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}

// getIntParam extracts an integer query parameter. A missing parameter
// returns defaultValue; a malformed one is an error.
func getIntParam(r *http.Request, key string, defaultValue int) (int, error) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, value)
	}
	return n, nil
}

// getFloatParam extracts a float query parameter like getIntParam.
func getFloatParam(r *http.Request, key string, defaultValue float64) (float64, error) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number, got %q", key, value)
	}
	return f, nil
}

// parseMultiValue collects a query parameter given either repeated
// (?genres=a&genres=b) or pipe-separated (?genres=a|b). Commas are not
// separators; they are part of the dataset's label text.
func parseMultiValue(r *http.Request, key string) []string {
	var result []string
	for _, value := range r.URL.Query()[key] {
		for _, part := range strings.Split(value, "|") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
	}
	return result
}
