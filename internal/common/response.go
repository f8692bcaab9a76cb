package common

import (
	"encoding/json"
	"net/http"
)

// Envelope is the tri-field wrapper every endpoint responds with.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Error   *string     `json:"error"`
}

func RespondWithData(w http.ResponseWriter, code int, payload interface{}) {
	writeJSON(w, code, Envelope{Success: true, Data: payload})
}

func RespondWithError(w http.ResponseWriter, err error) {
	code := CodeFromError(err)
	writeJSON(w, HTTPStatusFromError(err), Envelope{Success: false, Error: &code})
}

func writeJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"data":null,"error":"INTERNAL_ERROR"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
