package stub

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"

	json "github.com/json-iterator/go"

	"github.com/fnbdemo/go-fnb-integration/internal/correlation"
)

// CoreBanking simulates a Temenos-style core banking system. The balance
// path is the demo's primary failure point: its policy injects slow
// queries and occasional errors that back up the payment flow.
type CoreBanking struct {
	Policy FaultPolicy
}

func CoreBankingRoutes(s *CoreBanking) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /accounts/{accountId}/balance", s.GetBalance)
	mux.HandleFunc("POST /accounts/{accountId}/debit", s.DebitAccount)
	mux.HandleFunc("POST /accounts", s.CreateAccount)
	mux.HandleFunc("GET /accounts/{accountId}/transactions", s.GetTransactions)
	mux.HandleFunc("GET /trade-positions", s.GetTradePositions)
	mux.HandleFunc("GET /health", healthHandler("core-banking-svc", "Temenos T24 8.4.2"))
	return mux
}

func (s *CoreBanking) GetBalance(w http.ResponseWriter, r *http.Request) {
	accountId := r.PathValue("accountId")
	correlationId := correlation.Ensure(correlation.Extract(r.Header))

	delay := s.Policy.Delay()
	time.Sleep(delay)
	if delay > time.Second {
		slog.Warn("[Stub:CoreBanking:GetBalance] - Slow query detected",
			"table", "accounts_ledger",
			"duration_ms", delay.Milliseconds(),
			"account", accountId,
			"correlation_id", correlationId)
	}

	if s.Policy.Fault() {
		writeStubError(w, correlationId, "accounts_ledger unavailable")
		return
	}

	balance := roundStub(1000 + rand.Float64()*499000)
	writeStub(w, http.StatusOK, map[string]any{
		"accountNumber":    accountId,
		"balance":          balance,
		"availableBalance": roundStub(balance * 0.98),
		"currency":         "USD",
		"status":           "ACTIVE",
		"asOf":             time.Now().UTC().Format(time.RFC3339),
		"slowQuery":        delay > time.Second,
		"correlationId":    correlationId,
	})
}

func (s *CoreBanking) DebitAccount(w http.ResponseWriter, r *http.Request) {
	accountId := r.PathValue("accountId")
	correlationId := correlation.Ensure(correlation.Extract(r.Header))

	var body struct {
		Amount    float64 `json:"amount"`
		Currency  string  `json:"currency"`
		Reference string  `json:"reference"`
	}
	json.NewDecoder(r.Body).Decode(&body)

	time.Sleep(s.Policy.Delay())
	if s.Policy.Fault() {
		writeStubError(w, correlationId, "debit posting failed")
		return
	}

	txnId := stubRefID("TXN")
	slog.Info("[Stub:CoreBanking:DebitAccount] - Debit posted",
		"account", accountId, "amount", body.Amount, "txn_id", txnId, "correlation_id", correlationId)

	writeStub(w, http.StatusOK, map[string]any{
		"transactionId": txnId,
		"accountNumber": accountId,
		"amount":        body.Amount,
		"currency":      body.Currency,
		"type":          "DEBIT",
		"status":        "POSTED",
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
		"reference":     body.Reference,
	})
}

func (s *CoreBanking) CreateAccount(w http.ResponseWriter, r *http.Request) {
	correlationId := correlation.Ensure(correlation.Extract(r.Header))

	var body struct {
		CustomerId  string `json:"customerId"`
		AccountType string `json:"accountType"`
		BranchCode  string `json:"branchCode"`
	}
	json.NewDecoder(r.Body).Decode(&body)

	time.Sleep(s.Policy.Delay())
	if s.Policy.Fault() {
		writeStubError(w, correlationId, "account provisioning failed")
		return
	}

	writeStub(w, http.StatusCreated, map[string]any{
		"accountNumber": fmt.Sprintf("ACC%08d", 10000000+rand.IntN(90000000)),
		"customerId":    body.CustomerId,
		"accountType":   body.AccountType,
		"status":        "ACTIVE",
		"openDate":      time.Now().UTC().Format("2006-01-02"),
		"branchCode":    body.BranchCode,
		"routingNumber": "021000021",
	})
}

func (s *CoreBanking) GetTransactions(w http.ResponseWriter, r *http.Request) {
	accountId := r.PathValue("accountId")
	correlationId := correlation.Ensure(correlation.Extract(r.Header))

	time.Sleep(s.Policy.Delay())
	if s.Policy.Fault() {
		writeStubError(w, correlationId, "transactions query failed")
		return
	}

	count := 5 + rand.IntN(20)
	transactions := make([]map[string]any, 0, count)
	for i := 0; i < count; i++ {
		transactions = append(transactions, map[string]any{
			"transactionId": stubRefID("TXN"),
			"date":          time.Now().UTC().AddDate(0, 0, -rand.IntN(30)).Format(time.RFC3339),
			"amount":        roundStub(10 + rand.Float64()*4990),
			"type":          pickStub("DEBIT", "CREDIT", "WIRE_IN", "WIRE_OUT", "ACH"),
			"description":   pickStub("WIRE TRANSFER", "ACH PAYMENT", "POS PURCHASE", "ATM WITHDRAWAL", "DIRECT DEPOSIT"),
		})
	}

	writeStub(w, http.StatusOK, map[string]any{
		"accountNumber": accountId,
		"transactions":  transactions,
		"count":         count,
	})
}

func (s *CoreBanking) GetTradePositions(w http.ResponseWriter, r *http.Request) {
	correlationId := correlation.Ensure(correlation.Extract(r.Header))

	time.Sleep(s.Policy.Delay())
	if s.Policy.Fault() {
		writeStubError(w, correlationId, "trade positions unavailable")
		return
	}

	count := 200 + rand.IntN(600)
	writeStub(w, http.StatusOK, map[string]any{
		"count": count,
		"asOf":  time.Now().UTC().Format(time.RFC3339),
	})
}
