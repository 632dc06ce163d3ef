package server

import (
	"encoding/json"
	"net/http"

	"github.com/lingqianapp/lingqian/pkg/errors"
)

// errorBody is the JSON error payload.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps an error to its HTTP status and writes the JSON error
// payload. Internal errors expose only a generic message.
func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)

	var body errorBody
	body.Error.Code = string(code)
	body.Error.Message = errors.UserMessage(err)

	writeJSON(w, statusFor(code), body)
}

// statusFor maps error codes to HTTP status codes.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidLanguage,
		errors.ErrCodeInvalidSign,
		errors.ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound,
		errors.ErrCodeSignNotFound,
		errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
