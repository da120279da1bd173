package common

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, ErrorResponse{Error: message})
}

// RespondWithAppError renders err with its mapped status. Internal failures are
// logged and replaced by the generic message.
func RespondWithAppError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatusFromError(err)
	message, public := PublicMessage(err)
	if !public || status == http.StatusInternalServerError {
		log.Printf("ERROR: %s %s: %v", r.Method, r.URL.Path, err)
		if status == http.StatusInternalServerError {
			message = MsgInternal
		}
	}
	RespondWithError(w, status, message)
}

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	w.Write(response)
}

// ParseJSON decodes the request body into v. An empty body leaves v untouched.
func ParseJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
