// Package correlation carries the per-request identifier across call
// boundaries using the X-Correlation-ID header, alongside the W3C
// traceparent header when one is present on the inbound request.
package correlation

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const (
	HeaderCorrelationId = "X-Correlation-ID"
	HeaderTraceParent   = "traceparent"
)

// Ensure returns the incoming id when present, otherwise mints a new one.
func Ensure(incoming string) string {
	if incoming != "" {
		return incoming
	}
	return uuid.NewString()
}

// Inject writes the correlation id (and the forwarded traceparent, if any)
// into the outbound headers. Keys it does not own are left untouched.
func Inject(h http.Header, id string, traceparent string) {
	h.Set(HeaderCorrelationId, id)
	if traceparent != "" && ValidTraceParent(traceparent) {
		h.Set(HeaderTraceParent, traceparent)
	}
}

// Extract reads the correlation id on the receiving side. Missing or
// malformed carriers yield "" rather than an error.
func Extract(h http.Header) string {
	if h == nil {
		return ""
	}
	return strings.TrimSpace(h.Get(HeaderCorrelationId))
}

// ExtractTraceParent returns the inbound traceparent, or "" when absent
// or not in the version-traceid-spanid-flags shape.
func ExtractTraceParent(h http.Header) string {
	if h == nil {
		return ""
	}
	tp := strings.TrimSpace(h.Get(HeaderTraceParent))
	if !ValidTraceParent(tp) {
		return ""
	}
	return tp
}

// ValidTraceParent checks the 00-<32 hex>-<16 hex>-<2 hex> layout.
func ValidTraceParent(tp string) bool {
	parts := strings.Split(tp, "-")
	if len(parts) != 4 {
		return false
	}
	if len(parts[0]) != 2 || len(parts[1]) != 32 || len(parts[2]) != 16 || len(parts[3]) != 2 {
		return false
	}
	for _, p := range parts {
		for _, c := range p {
			if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
				return false
			}
		}
	}
	return true
}
