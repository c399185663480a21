package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	json "github.com/json-iterator/go"

	"github.com/fnbdemo/go-fnb-integration/internal/correlation"
	"github.com/fnbdemo/go-fnb-integration/internal/domain"
	"github.com/fnbdemo/go-fnb-integration/internal/service"
	"github.com/fnbdemo/go-fnb-integration/internal/telemetry"
)

type stubResponse struct {
	kind   domain.CallKind
	status int
	body   string
}

type fakeInvoker struct {
	responses map[string]stubResponse
}

func (f *fakeInvoker) Invoke(ctx context.Context, req *domain.BackendRequest) *domain.BackendCallResult {
	r, ok := f.responses[req.Backend]
	if !ok {
		r = stubResponse{kind: domain.CallSuccess, status: 200, body: "{}"}
	}
	return &domain.BackendCallResult{
		Backend:       req.Backend,
		CorrelationId: req.CorrelationId,
		Kind:          r.kind,
		StatusCode:    r.status,
		Payload:       []byte(r.body),
	}
}

type fakeNotifier struct{}

func (fakeNotifier) Enqueue(domain.NotificationJob) bool { return true }

type fakeFlowRepo struct{}

func (fakeFlowRepo) SaveFlowRecord(context.Context, *domain.FlowInvocation) error { return nil }
func (fakeFlowRepo) ResetState(context.Context) error                             { return nil }
func (fakeFlowRepo) GetSummaryByFlow(_ context.Context, flow domain.FlowName, _, _ time.Time) (*domain.FlowSummaryItem, error) {
	return &domain.FlowSummaryItem{Executions: 7, Completed: 5, Rejected: 1, Failed: 1, AvgElapsedMs: 42}, nil
}

func newTestMux(responses map[string]stubResponse) *http.ServeMux {
	tel := telemetry.New("test")
	svc := service.NewIntegrationService(&fakeInvoker{responses: responses}, fakeNotifier{}, fakeFlowRepo{}, tel, service.BackendURLs{
		CoreBanking:  "http://core-banking",
		Fraud:        "http://fraud",
		AML:          "http://aml",
		CRM:          "http://crm",
		Notification: "http://notification",
	}, 16)
	return Routes(NewIntegrationHandler(svc, tel))
}

func doRequest(mux *http.ServeMux, method, target, body string, header http.Header) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	for k, vals := range header {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestPaymentWireCompleted(t *testing.T) {
	mux := newTestMux(map[string]stubResponse{
		domain.BackendCoreBankingDebit: {domain.CallSuccess, 200, `{"transactionId":"TXN88"}`},
	})

	header := http.Header{}
	header.Set(correlation.HeaderCorrelationId, "corr-route-1")
	rec := doRequest(mux, "POST", "/api/payments/wire",
		`{"sourceAccount":"ACC00000001","destinationAccount":"ACC00000002","amount":100.0}`, header)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body = %s", rec.Code, rec.Body)
	}
	if got := rec.Header().Get(correlation.HeaderCorrelationId); got != "corr-route-1" {
		t.Errorf("correlation header echo = %q", got)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("body not json: %v", err)
	}
	if resp["transactionId"] != "TXN88" || resp["paymentType"] != "WIRE" {
		t.Errorf("body = %v", resp)
	}
}

func TestPaymentACHDefaultsType(t *testing.T) {
	mux := newTestMux(map[string]stubResponse{
		domain.BackendCoreBankingDebit: {domain.CallSuccess, 200, `{"transactionId":"TXN89"}`},
	})

	rec := doRequest(mux, "POST", "/api/payments/ach",
		`{"sourceAccount":"ACC00000001","amount":55}`, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; body = %s", rec.Code, rec.Body)
	}
	var resp map[string]any
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["paymentType"] != "ACH" {
		t.Errorf("paymentType = %v, want ACH", resp["paymentType"])
	}
}

func TestPaymentInvalidBody(t *testing.T) {
	mux := newTestMux(nil)
	rec := doRequest(mux, "POST", "/api/payments/wire", `{not json`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestPaymentValidationFailure(t *testing.T) {
	mux := newTestMux(nil)
	rec := doRequest(mux, "POST", "/api/payments/wire", `{"amount":10}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestPaymentGatingFailureMapsTo502(t *testing.T) {
	mux := newTestMux(map[string]stubResponse{
		domain.BackendCoreBankingBalance: {domain.CallBackendError, 503, `{"error":"down"}`},
	})
	rec := doRequest(mux, "POST", "/api/payments/wire",
		`{"sourceAccount":"ACC00000001","amount":10}`, nil)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	if rec.Header().Get(correlation.HeaderCorrelationId) == "" {
		t.Error("error response missing correlation header")
	}
}

func TestCustomer360Route(t *testing.T) {
	mux := newTestMux(map[string]stubResponse{
		domain.BackendCRMProfile: {domain.CallSuccess, 200, `{"customerId":"CUST000042"}`},
	})
	rec := doRequest(mux, "GET", "/api/customers/CUST000042/360", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; body = %s", rec.Code, rec.Body)
	}
	var resp map[string]any
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["customerId"] != "CUST000042" {
		t.Errorf("body = %v", resp)
	}
}

func TestCustomer360AllSourcesDownMapsTo502(t *testing.T) {
	down := stubResponse{domain.CallTransportFailure, 0, ""}
	mux := newTestMux(map[string]stubResponse{
		domain.BackendCRMProfile:              down,
		domain.BackendCRMInteractions:         down,
		domain.BackendCoreBankingBalance:      down,
		domain.BackendCoreBankingTransactions: down,
	})
	rec := doRequest(mux, "GET", "/api/customers/CUST000042/360", "", nil)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
}

func TestAccountOpenApprovedMapsTo201(t *testing.T) {
	mux := newTestMux(map[string]stubResponse{
		domain.BackendAMLScreenKYC:      {domain.CallSuccess, 200, `{"status":"CLEAR"}`},
		domain.BackendCRMCreate:         {domain.CallSuccess, 201, `{"customerId":"CUST000500"}`},
		domain.BackendCoreBankingCreate: {domain.CallSuccess, 201, `{"accountNumber":"ACC00000500"}`},
	})
	rec := doRequest(mux, "POST", "/api/accounts/open",
		`{"firstName":"Ana","lastName":"Silva","dateOfBirth":"1990-01-15"}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body = %s", rec.Code, rec.Body)
	}
}

func TestAccountOpenKYCMatchMapsTo422(t *testing.T) {
	mux := newTestMux(map[string]stubResponse{
		domain.BackendAMLScreenKYC: {domain.CallSuccess, 200, `{"status":"MATCH"}`},
	})
	rec := doRequest(mux, "POST", "/api/accounts/open",
		`{"firstName":"Ana","lastName":"Silva","dateOfBirth":"1990-01-15"}`, nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422; body = %s", rec.Code, rec.Body)
	}
	var resp map[string]any
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["status"] != "REJECTED" {
		t.Errorf("body = %v", resp)
	}
}

func TestAccountOpenScreeningDownMapsTo502(t *testing.T) {
	mux := newTestMux(map[string]stubResponse{
		domain.BackendAMLScreenKYC: {domain.CallTransportFailure, 0, ""},
	})
	rec := doRequest(mux, "POST", "/api/accounts/open",
		`{"firstName":"Ana","lastName":"Silva","dateOfBirth":"1990-01-15"}`, nil)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
}

func TestReconciliationStatusRoute(t *testing.T) {
	mux := newTestMux(map[string]stubResponse{
		domain.BackendCoreBankingPositions: {domain.CallSuccess, 200, `{"count":120}`},
	})
	rec := doRequest(mux, "GET", "/api/reconciliation/status", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; body = %s", rec.Code, rec.Body)
	}
}

func TestFlowSummaryRoute(t *testing.T) {
	mux := newTestMux(nil)
	rec := doRequest(mux, "GET", "/api/flows/summary?from=2026-08-01T00:00:00Z", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var summary domain.FlowSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("summary not json: %v", err)
	}
	if summary.Payments.Executions != 7 {
		t.Errorf("payments executions = %d", summary.Payments.Executions)
	}
}

func TestMetricsAndHealthRoutes(t *testing.T) {
	mux := newTestMux(nil)

	rec := doRequest(mux, "GET", "/metrics", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", rec.Code)
	}
	var snap telemetry.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("metrics not json: %v", err)
	}

	rec = doRequest(mux, "GET", "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("health status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"UP"`) {
		t.Errorf("health body = %s", rec.Body)
	}
}

func TestMintedCorrelationIdOnMissingHeader(t *testing.T) {
	mux := newTestMux(map[string]stubResponse{
		domain.BackendCoreBankingDebit: {domain.CallSuccess, 200, `{"transactionId":"TXN1"}`},
	})
	rec := doRequest(mux, "POST", "/api/payments/wire",
		`{"sourceAccount":"ACC00000001","amount":10}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get(correlation.HeaderCorrelationId) == "" {
		t.Error("no correlation id minted for bare request")
	}
}
