package xhttp

import (
	"bytes"
	"net/http"

	go_json "github.com/goccy/go-json"
)

var internalErrorBody = []byte(`{"message":"internal server error"}` + "\n")

// WriteJSON encodes data before committing the status, so a value that cannot
// be encoded becomes a 500 rather than a half-written success.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	var buf bytes.Buffer
	if err := go_json.NewEncoder(&buf).Encode(data); err != nil {
		SetHeaderContentTypeApplicationJSON(w)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write(internalErrorBody)
		return
	}
	SetHeaderContentTypeApplicationJSON(w)
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func WriteOK(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, data)
}

func WriteSVG(w http.ResponseWriter, status int, svg []byte) {
	SetHeaderContentTypeImageSVG(w)
	w.WriteHeader(status)
	_, _ = w.Write(svg)
}
