package httputil

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/matzehuels/structviz/pkg/errors"
)

// MaxBodyBytes bounds request bodies read by [Decode].
const MaxBodyBytes = 1 << 20

// ErrorBody is the JSON shape of an error response.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the code and user-facing message of an error.
type ErrorDetail struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes err as an [ErrorBody] with the status from [StatusFor].
func Error(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	JSON(w, StatusFor(err), ErrorBody{Error: ErrorDetail{Code: code, Message: errors.UserMessage(err)}})
}

// StatusFor maps an error code to an HTTP status.
func StatusFor(err error) int {
	switch code := errors.GetCode(err); {
	case code == errors.ErrCodeNotFound:
		return http.StatusNotFound
	case code == errors.ErrCodeBackendUnavailable:
		return http.StatusServiceUnavailable
	case code == errors.ErrCodeInvalidInput, code == errors.ErrCodeInvalidFormat,
		code == errors.ErrCodeInvalidStructure, code == errors.ErrCodeInvalidAlgorithm:
		return http.StatusBadRequest
	case errors.IsUserError(err):
		return http.StatusUnprocessableEntity
	case code == errors.ErrCodeMalformedSnapshot, code == errors.ErrCodeBackendContract:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// Decode reads a JSON body into v. Unknown fields and trailing data are
// rejected.
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
	}
	if dec.More() {
		return errors.New(errors.ErrCodeInvalidInput, "invalid request body: trailing data")
	}
	return nil
}
