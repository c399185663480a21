package stub

import (
	"math/rand/v2"
	"net/http"
	"strings"

	"github.com/google/uuid"
	json "github.com/json-iterator/go"
)

func writeStub(w http.ResponseWriter, status int, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeStubError(w http.ResponseWriter, correlationId, message string) {
	writeStub(w, http.StatusServiceUnavailable, map[string]any{
		"error":         message,
		"correlationId": correlationId,
	})
}

func healthHandler(service, system string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeStub(w, http.StatusOK, map[string]any{
			"status":  "UP",
			"service": service,
			"system":  system,
		})
	}
}

func stubRefID(prefix string) string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return prefix + id[:12]
}

func pickStub(options ...string) string {
	return options[rand.IntN(len(options))]
}

func roundStub(v float64) float64 {
	return float64(int(v*100)) / 100
}
