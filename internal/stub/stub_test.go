package stub

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	json "github.com/json-iterator/go"
)

func decodeStub(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("stub body not json: %v (%s)", err, rec.Body)
	}
	return body
}

func TestStaticPolicy(t *testing.T) {
	p := StaticPolicy{FixedDelay: 7 * time.Millisecond, AlwaysFault: true}
	if p.Delay() != 7*time.Millisecond {
		t.Errorf("delay = %v", p.Delay())
	}
	if !p.Fault() {
		t.Error("fault = false, want true")
	}
	if (StaticPolicy{}).Fault() {
		t.Error("zero policy faulted")
	}
}

func TestRandomFaultPolicyRates(t *testing.T) {
	never := RandomFaultPolicy{FaultRate: 0, Base: time.Millisecond}
	always := RandomFaultPolicy{FaultRate: 1, Base: time.Millisecond}
	for i := 0; i < 200; i++ {
		if never.Fault() {
			t.Fatal("FaultRate 0 injected a fault")
		}
		if !always.Fault() {
			t.Fatal("FaultRate 1 skipped a fault")
		}
	}
}

func TestRandomFaultPolicyDegradedBand(t *testing.T) {
	p := RandomFaultPolicy{
		DegradedRate: 1,
		DegradedMin:  100 * time.Millisecond,
		DegradedMax:  200 * time.Millisecond,
		Base:         time.Millisecond,
	}
	for i := 0; i < 100; i++ {
		d := p.Delay()
		if d < 100*time.Millisecond || d >= 200*time.Millisecond {
			t.Fatalf("degraded delay %v outside [100ms,200ms)", d)
		}
	}
}

func TestCoreBankingBalance(t *testing.T) {
	mux := CoreBankingRoutes(&CoreBanking{Policy: StaticPolicy{}})

	req := httptest.NewRequest("GET", "/accounts/ACC00000042/balance", nil)
	req.Header.Set("X-Correlation-ID", "corr-stub-1")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decodeStub(t, rec)
	if body["accountNumber"] != "ACC00000042" {
		t.Errorf("account = %v", body["accountNumber"])
	}
	if body["correlationId"] != "corr-stub-1" {
		t.Errorf("correlation not echoed: %v", body["correlationId"])
	}
	if body["slowQuery"] != false {
		t.Errorf("slowQuery = %v with zero delay", body["slowQuery"])
	}
}

func TestCoreBankingBalanceFault(t *testing.T) {
	mux := CoreBankingRoutes(&CoreBanking{Policy: StaticPolicy{AlwaysFault: true}})

	req := httptest.NewRequest("GET", "/accounts/ACC1/balance", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	body := decodeStub(t, rec)
	if body["error"] == "" || body["correlationId"] == "" {
		t.Errorf("error body = %v", body)
	}
}

func TestCoreBankingCreateAccount(t *testing.T) {
	mux := CoreBankingRoutes(&CoreBanking{Policy: StaticPolicy{}})

	req := httptest.NewRequest("POST", "/accounts",
		strings.NewReader(`{"customerId":"CUST000042","accountType":"CHECKING","branchCode":"BR001"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	body := decodeStub(t, rec)
	acct, _ := body["accountNumber"].(string)
	if !strings.HasPrefix(acct, "ACC") || len(acct) != 11 {
		t.Errorf("account number = %q", acct)
	}
	if body["customerId"] != "CUST000042" {
		t.Errorf("customer id = %v", body["customerId"])
	}
}

func TestCoreBankingTradePositions(t *testing.T) {
	mux := CoreBankingRoutes(&CoreBanking{Policy: StaticPolicy{}})

	req := httptest.NewRequest("GET", "/trade-positions", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	body := decodeStub(t, rec)
	count, _ := body["count"].(float64)
	if count < 200 || count >= 800 {
		t.Errorf("position count = %v outside [200,800)", count)
	}
}

func TestAMLScreenDeterministicRates(t *testing.T) {
	payload := `{"fullName":"Ana Silva","nationality":"US","customerType":"INDIVIDUAL"}`

	clear := AMLRoutes(&AMLScreening{Policy: StaticPolicy{}, MatchRate: 0})
	req := httptest.NewRequest("POST", "/aml/screen/kyc", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	clear.ServeHTTP(rec, req)
	if body := decodeStub(t, rec); body["status"] != "CLEAR" || body["watchlistClear"] != true {
		t.Errorf("MatchRate 0 body = %v", body)
	}

	match := AMLRoutes(&AMLScreening{Policy: StaticPolicy{}, MatchRate: 1})
	req = httptest.NewRequest("POST", "/aml/screen/kyc", strings.NewReader(payload))
	rec = httptest.NewRecorder()
	match.ServeHTTP(rec, req)
	if body := decodeStub(t, rec); body["status"] != "MATCH" || body["watchlistClear"] != false {
		t.Errorf("MatchRate 1 body = %v", body)
	}
}

func TestFraudScoreBounds(t *testing.T) {
	s := &FraudDetection{Policy: StaticPolicy{}, FlagRate: 0.5}
	for i := 0; i < 500; i++ {
		score := s.score(250000, "IR")
		if score < 0 || score > 100 {
			t.Fatalf("score %v outside [0,100]", score)
		}
	}
}

func TestFraudCheckRiskFields(t *testing.T) {
	mux := FraudRoutes(&FraudDetection{Policy: StaticPolicy{}})

	req := httptest.NewRequest("POST", "/fraud/check",
		strings.NewReader(`{"amount":125000,"destinationCountry":"KP","accountNumber":"ACC1"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	body := decodeStub(t, rec)
	score, _ := body["fraudScore"].(float64)
	if score < 0 || score > 100 {
		t.Errorf("score = %v", score)
	}
	switch body["riskLevel"] {
	case "LOW", "MEDIUM", "HIGH":
	default:
		t.Errorf("risk level = %v", body["riskLevel"])
	}
	switch body["recommendation"] {
	case "APPROVE", "REVIEW", "BLOCK":
	default:
		t.Errorf("recommendation = %v", body["recommendation"])
	}
}

func TestCRMProfileDeterministic(t *testing.T) {
	mux := CRMRoutes(&CRM{Policy: StaticPolicy{}})

	fetch := func() map[string]any {
		req := httptest.NewRequest("GET", "/customers/CUST000042/profile", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		return decodeStub(t, rec)
	}

	first := fetch()
	second := fetch()
	if first["segment"] != second["segment"] || first["firstName"] != second["firstName"] ||
		first["lastName"] != second["lastName"] {
		t.Errorf("profile not stable for one customer: %v vs %v", first, second)
	}
	if first["customerId"] != "CUST000042" {
		t.Errorf("customer id = %v", first["customerId"])
	}
}

func TestCRMCreateCustomer(t *testing.T) {
	mux := CRMRoutes(&CRM{Policy: StaticPolicy{}})

	req := httptest.NewRequest("POST", "/customers",
		strings.NewReader(`{"firstName":"Ana","lastName":"Silva","email":"ana@example.com"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	body := decodeStub(t, rec)
	id, _ := body["customerId"].(string)
	if !strings.HasPrefix(id, "CUST") || len(id) != 10 {
		t.Errorf("customer id = %q", id)
	}
}

func TestNotificationDeliveryAndFault(t *testing.T) {
	mux := NotificationRoutes(&Notification{Policy: StaticPolicy{}})

	req := httptest.NewRequest("POST", "/notify/transaction",
		strings.NewReader(`{"transactionId":"TXN1","amount":10}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body := decodeStub(t, rec); body["status"] != "DELIVERED" || body["type"] != "TRANSACTION" {
		t.Errorf("body = %v", body)
	}

	faulty := NotificationRoutes(&Notification{Policy: StaticPolicy{AlwaysFault: true}})
	req = httptest.NewRequest("POST", "/notify/account-opened", strings.NewReader(`{}`))
	rec = httptest.NewRecorder()
	faulty.ServeHTTP(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("fault status = %d, want 503", rec.Code)
	}
}

func TestHealthEndpoints(t *testing.T) {
	mux := CoreBankingRoutes(&CoreBanking{Policy: StaticPolicy{}})

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decodeStub(t, rec)
	if body["status"] != "UP" || body["service"] != "core-banking-svc" {
		t.Errorf("health body = %v", body)
	}
}
