// Package handler translates HTTP requests into service calls and service
// outcomes into the uniform response envelope.
//
// Two envelope shapes exist: most resources answer {message, data[, count]};
// product and category routes answer {status, message, data[, count]}. Both
// are kept as-is since clients depend on them.
package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	errs "inventra/internal/errors"
)

const msgInvalidJSON = "Invalid JSON format"

// Response is the {message, data[, count]} envelope.
type Response struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
	Count   *int        `json:"count,omitempty"`
}

// DeleteResponse carries only a message, mirroring the delete endpoints.
type DeleteResponse struct {
	Message string `json:"message"`
}

// StatusResponse is the {status, message, data[, count]} envelope used by
// product and category routes.
type StatusResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Count   *int        `json:"count,omitempty"`
}

func respond(c echo.Context, code int, message string, data interface{}) error {
	return c.JSON(code, Response{Message: message, Data: data})
}

func respondList(c echo.Context, code int, message string, data interface{}, count int) error {
	return c.JSON(code, Response{Message: message, Data: data, Count: &count})
}

func respondStatus(c echo.Context, code int, status, message string, data interface{}) error {
	return c.JSON(code, StatusResponse{Status: status, Message: message, Data: data})
}

func respondStatusList(c echo.Context, code int, status, message string, data interface{}, count int) error {
	return c.JSON(code, StatusResponse{Status: status, Message: message, Data: data, Count: &count})
}

// readBody returns the raw request body and whether it is a JSON array.
// A false second return with a nil body means the body was not valid JSON.
func readBody(c echo.Context) (raw []byte, isArray bool, ok bool) {
	raw, err := io.ReadAll(c.Request().Body)
	if err != nil || !json.Valid(raw) {
		return nil, false, false
	}
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return raw, len(trimmed) > 0 && trimmed[0] == '[', true
}

// missingFields returns the required keys absent from the JSON object, in the
// order given. Presence counts, not value: an explicit null satisfies it.
func missingFields(raw []byte, required []string) []string {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return required
	}
	missing := []string{}
	for _, f := range required {
		if _, ok := obj[f]; !ok {
			missing = append(missing, f)
		}
	}
	return missing
}

func missingFieldsMessage(missing []string) string {
	return "Missing required fields: " + strings.Join(missing, ", ")
}

// failureStatus maps a service error to 404 or 500. Identifier-shaped input
// is validated before any service call, so by this point an invalid id means
// the record cannot exist.
func failureStatus(err error) int {
	if errs.IsNotFound(err) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func logServerError(c echo.Context, err error) {
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Request().URL.Path).
		Msg("request failed")
}
