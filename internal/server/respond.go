package server

import (
	"encoding/json"
	"net/http"

	stderrors "loandesk/internal/common/errors"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// errorBody is the wire shape of a failed request.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func writeError(w http.ResponseWriter, err error) {
	status := stderrors.HTTPStatus(err)

	if stdErr, ok := stderrors.AsStandardError(err); ok {
		writeJSON(w, status, errorBody{
			Code:    string(stdErr.Code),
			Message: stdErr.Message,
			Details: stdErr.Details,
		})
		return
	}

	writeJSON(w, status, errorBody{Code: "INTERNAL", Message: err.Error()})
}
