// Package helpers agrupa utilidades de respuesta de la capa HTTP.
package helpers

import (
	"encoding/json"
	"net/http"
)

// WriteJSON escribe una respuesta JSON estándar.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// NoStore marca la respuesta como no cacheable. Se usa en los endpoints
// que navegan con tokens para que el resultado nunca quede en el
// historial de caches.
func NoStore(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}
