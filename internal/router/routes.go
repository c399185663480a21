package router

import (
	"net/http"
	"time"

	json "github.com/json-iterator/go"

	"github.com/fnbdemo/go-fnb-integration/internal/correlation"
	"github.com/fnbdemo/go-fnb-integration/internal/domain"
	"github.com/fnbdemo/go-fnb-integration/internal/service"
	"github.com/fnbdemo/go-fnb-integration/internal/telemetry"
)

const (
	ROUTE_PAYMENT_WIRE = "POST /api/payments/wire"
	ROUTE_PAYMENT_ACH  = "POST /api/payments/ach"
	ROUTE_CUSTOMER_360 = "GET /api/customers/{customerId}/360"
	ROUTE_ACCOUNT_OPEN = "POST /api/accounts/open"
	ROUTE_RECON_STATUS = "GET /api/reconciliation/status"
	ROUTE_FLOW_SUMMARY = "GET /api/flows/summary"
	ROUTE_METRICS      = "GET /metrics"
	ROUTE_HEALTH       = "GET /health"
)

type integrationHandler struct {
	Svc *service.IntegrationService
	Tel *telemetry.Telemetry
}

func NewIntegrationHandler(svc *service.IntegrationService, tel *telemetry.Telemetry) *integrationHandler {
	return &integrationHandler{Svc: svc, Tel: tel}
}

func Routes(handler *integrationHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc(ROUTE_PAYMENT_WIRE, handler.ProcessPayment("WIRE"))
	mux.HandleFunc(ROUTE_PAYMENT_ACH, handler.ProcessPayment("ACH"))
	mux.HandleFunc(ROUTE_CUSTOMER_360, handler.Customer360)
	mux.HandleFunc(ROUTE_ACCOUNT_OPEN, handler.OpenAccount)
	mux.HandleFunc(ROUTE_RECON_STATUS, handler.ReconciliationStatus)
	mux.HandleFunc(ROUTE_FLOW_SUMMARY, handler.GetSummary)
	mux.HandleFunc(ROUTE_METRICS, handler.Metrics)
	mux.HandleFunc(ROUTE_HEALTH, handler.HealthCheck)
	return mux
}

func callContext(r *http.Request) service.CallContext {
	return service.CallContext{
		CorrelationId: correlation.Ensure(correlation.Extract(r.Header)),
		TraceParent:   correlation.ExtractTraceParent(r.Header),
	}
}

func writeJSON(w http.ResponseWriter, correlationId string, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(correlation.HeaderCorrelationId, correlationId)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, correlationId string, status int, message string) {
	writeJSON(w, correlationId, status, map[string]string{
		"error":         message,
		"correlationId": correlationId,
	})
}

func (h *integrationHandler) ProcessPayment(paymentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cc := callContext(r)

		var req domain.PaymentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, cc.CorrelationId, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.PaymentType == "" {
			req.PaymentType = paymentType
		}

		resp, inv, err := h.Svc.ProcessPayment(r.Context(), cc, &req)
		if err != nil {
			writeError(w, cc.CorrelationId, http.StatusBadRequest, err.Error())
			return
		}
		if inv.Outcome == domain.OutcomeFailed {
			writeError(w, cc.CorrelationId, http.StatusBadGateway, "Payment processing failed")
			return
		}
		writeJSON(w, cc.CorrelationId, http.StatusOK, resp)
	}
}

func (h *integrationHandler) Customer360(w http.ResponseWriter, r *http.Request) {
	cc := callContext(r)
	req := domain.CustomerLookupRequest{CustomerId: r.PathValue("customerId")}

	resp, inv, err := h.Svc.Customer360(r.Context(), cc, &req)
	if err != nil {
		writeError(w, cc.CorrelationId, http.StatusBadRequest, err.Error())
		return
	}
	if inv.Outcome == domain.OutcomeFailed {
		writeError(w, cc.CorrelationId, http.StatusBadGateway, "Customer lookup failed, all sources unavailable")
		return
	}
	writeJSON(w, cc.CorrelationId, http.StatusOK, resp)
}

func (h *integrationHandler) OpenAccount(w http.ResponseWriter, r *http.Request) {
	cc := callContext(r)

	var req domain.AccountOpeningRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, cc.CorrelationId, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, inv, err := h.Svc.OpenAccount(r.Context(), cc, &req)
	if err != nil {
		writeError(w, cc.CorrelationId, http.StatusBadRequest, err.Error())
		return
	}
	switch inv.Outcome {
	case domain.OutcomeRejected:
		writeJSON(w, cc.CorrelationId, http.StatusUnprocessableEntity, resp)
	case domain.OutcomeFailed:
		writeError(w, cc.CorrelationId, http.StatusBadGateway, "Account opening failed")
	default:
		writeJSON(w, cc.CorrelationId, http.StatusCreated, resp)
	}
}

func (h *integrationHandler) ReconciliationStatus(w http.ResponseWriter, r *http.Request) {
	cc := callContext(r)

	resp, inv, err := h.Svc.ReconciliationStatus(r.Context(), cc)
	if err != nil {
		writeError(w, cc.CorrelationId, http.StatusBadRequest, err.Error())
		return
	}
	if inv.Outcome == domain.OutcomeFailed {
		writeError(w, cc.CorrelationId, http.StatusBadGateway, "Reconciliation status unavailable")
		return
	}
	writeJSON(w, cc.CorrelationId, http.StatusOK, resp)
}

func (h *integrationHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	from := time.Unix(0, 0).UTC()
	if fromQuery := r.URL.Query().Get("from"); fromQuery != "" {
		if f, err := time.Parse(time.RFC3339, fromQuery); err == nil {
			from = f
		}
	}
	to := time.Now().UTC()
	if toQuery := r.URL.Query().Get("to"); toQuery != "" {
		if t, err := time.Parse(time.RFC3339, toQuery); err == nil {
			to = t
		}
	}

	summary, err := h.Svc.GetSummary(r.Context(), from, to)
	if err != nil {
		http.Error(w, "Failed to get summary", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(summary)
}

func (h *integrationHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(h.Tel.Snapshot())
}

func (h *integrationHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "UP",
		"service": "fnb-integration",
	})
}
