// Package portal is the front door: one operation per integration flow.
// It assigns or forwards the correlation id, hands the caller's payload to
// the integration layer unmodified and relays the result unaltered.
package portal

import (
	"io"
	"net/http"

	json "github.com/json-iterator/go"

	"github.com/fnbdemo/go-fnb-integration/internal/core"
	"github.com/fnbdemo/go-fnb-integration/internal/correlation"
	"github.com/fnbdemo/go-fnb-integration/internal/domain"
	"github.com/fnbdemo/go-fnb-integration/internal/telemetry"
)

const (
	ROUTE_PORTAL_WIRE   = "POST /portal/payments/wire"
	ROUTE_PORTAL_ACH    = "POST /portal/payments/ach"
	ROUTE_PORTAL_360    = "GET /portal/customers/{customerId}/360"
	ROUTE_PORTAL_OPEN   = "POST /portal/accounts/open"
	ROUTE_PORTAL_RECON  = "GET /portal/reconciliation/status"
	ROUTE_PORTAL_HEALTH = "GET /health"
	ROUTE_PORTAL_UI     = "GET /"
)

type portalHandler struct {
	invoker        core.BackendInvokerInterface
	tel            *telemetry.Telemetry
	integrationURL string
}

func NewPortalHandler(invoker core.BackendInvokerInterface, tel *telemetry.Telemetry, integrationURL string) *portalHandler {
	return &portalHandler{invoker: invoker, tel: tel, integrationURL: integrationURL}
}

func Routes(h *portalHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc(ROUTE_PORTAL_WIRE, h.forward("wire_transfer", "POST", "/api/payments/wire"))
	mux.HandleFunc(ROUTE_PORTAL_ACH, h.forward("ach_payment", "POST", "/api/payments/ach"))
	mux.HandleFunc(ROUTE_PORTAL_360, func(w http.ResponseWriter, r *http.Request) {
		path := "/api/customers/" + r.PathValue("customerId") + "/360"
		h.relay(w, r, "customer_360", "GET", path)
	})
	mux.HandleFunc(ROUTE_PORTAL_OPEN, h.forward("account_opening", "POST", "/api/accounts/open"))
	mux.HandleFunc(ROUTE_PORTAL_RECON, h.forward("reconciliation_status", "GET", "/api/reconciliation/status"))
	mux.HandleFunc(ROUTE_PORTAL_HEALTH, h.HealthCheck)
	mux.HandleFunc(ROUTE_PORTAL_UI, h.StatusPage)
	return mux
}

func (h *portalHandler) forward(operation, method, path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.relay(w, r, operation, method, path)
	}
}

// relay forwards the request body as-is and writes back whatever status
// and body the integration layer produced. Only a transport failure is
// translated, into a 502.
func (h *portalHandler) relay(w http.ResponseWriter, r *http.Request, operation, method, path string) {
	correlationId := correlation.Ensure(correlation.Extract(r.Header))
	h.tel.Count("portal.requests.total", 1, "operation="+operation)

	var payload any
	if method == "POST" {
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			h.tel.Count("portal.errors.total", 1, "operation="+operation)
			http.Error(w, "Failed to read request body", http.StatusBadRequest)
			return
		}
		if len(raw) > 0 {
			payload = json.RawMessage(raw)
		}
	}

	result := h.invoker.Invoke(r.Context(), &domain.BackendRequest{
		Backend:       "integration/" + operation,
		Method:        method,
		URL:           h.integrationURL + path,
		Payload:       payload,
		CorrelationId: correlationId,
		TraceParent:   correlation.ExtractTraceParent(r.Header),
	})

	h.tel.Observe("portal.operation.duration", float64(result.LatencyMs), "operation="+operation)

	if result.Kind == domain.CallTransportFailure {
		h.tel.Count("portal.errors.total", 1, "operation="+operation)
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set(correlation.HeaderCorrelationId, correlationId)
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]string{
			"error":         "Integration layer unavailable",
			"correlationId": correlationId,
		})
		return
	}

	if result.StatusCode >= 400 {
		h.tel.Count("portal.errors.total", 1, "operation="+operation)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(correlation.HeaderCorrelationId, correlationId)
	w.WriteHeader(result.StatusCode)
	w.Write(result.Payload)
}

func (h *portalHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "UP", "service": "fnb-portal"})
}

const statusPage = `<!DOCTYPE html>
<html>
<head><title>First National Bank - Internal Portal</title></head>
<body>
  <h1>First National Bank - Internal Operations Portal</h1>
  <p>All operations route through the integration layer. See /health for liveness.</p>
  <ul>
    <li>POST /portal/payments/wire</li>
    <li>POST /portal/payments/ach</li>
    <li>GET  /portal/customers/{id}/360</li>
    <li>POST /portal/accounts/open</li>
    <li>GET  /portal/reconciliation/status</li>
  </ul>
</body>
</html>`

func (h *portalHandler) StatusPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	w.Write([]byte(statusPage))
}
