package stub

import (
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"

	json "github.com/json-iterator/go"

	"github.com/fnbdemo/go-fnb-integration/internal/correlation"
)

var highRiskCountries = map[string]bool{
	"IR": true, "KP": true, "SY": true, "CU": true, "VE": true, "MM": true,
}

var elevatedRiskCountries = map[string]bool{
	"NG": true, "PK": true, "AF": true, "IQ": true, "LY": true, "YE": true,
}

// FraudDetection simulates a Falcon-style real-time scoring engine.
// FlagRate adds a random spike to roughly that share of transactions.
type FraudDetection struct {
	Policy   FaultPolicy
	FlagRate float64
}

func FraudRoutes(s *FraudDetection) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /fraud/check", s.Check)
	mux.HandleFunc("GET /health", healthHandler("fraud-detection-svc", "FICO Falcon 3.1"))
	return mux
}

func (s *FraudDetection) Check(w http.ResponseWriter, r *http.Request) {
	correlationId := correlation.Ensure(correlation.Extract(r.Header))

	var body struct {
		Amount             float64 `json:"amount"`
		DestinationCountry string  `json:"destinationCountry"`
		AccountNumber      string  `json:"accountNumber"`
	}
	json.NewDecoder(r.Body).Decode(&body)

	time.Sleep(s.Policy.Delay())
	if s.Policy.Fault() {
		writeStubError(w, correlationId, "scoring engine unavailable")
		return
	}

	score := s.score(body.Amount, body.DestinationCountry)
	riskLevel := "LOW"
	if score >= 60 {
		riskLevel = "HIGH"
	} else if score >= 30 {
		riskLevel = "MEDIUM"
	}
	flagged := score >= 70

	if flagged {
		slog.Warn("[Stub:Fraud:Check] - Transaction flagged",
			"score", score,
			"risk_level", riskLevel,
			"amount", body.Amount,
			"country", body.DestinationCountry,
			"correlation_id", correlationId)
	}

	recommendation := "APPROVE"
	if score >= 85 {
		recommendation = "BLOCK"
	} else if flagged {
		recommendation = "REVIEW"
	}

	writeStub(w, http.StatusOK, map[string]any{
		"fraudScore":     score,
		"riskLevel":      riskLevel,
		"flagged":        flagged,
		"recommendation": recommendation,
		"modelVersion":   "falcon-v3.1",
		"correlationId":  correlationId,
	})
}

func (s *FraudDetection) score(amount float64, country string) float64 {
	score := rand.NormFloat64()*8 + 15

	switch {
	case amount > 100000:
		score += 20 + rand.Float64()*15
	case amount > 50000:
		score += 10 + rand.Float64()*10
	case amount > 10000:
		score += 5 + rand.Float64()*5
	}

	if highRiskCountries[country] {
		score += 30 + rand.Float64()*20
	} else if elevatedRiskCountries[country] {
		score += 15 + rand.Float64()*10
	}

	if s.FlagRate > 0 && rand.Float64() < s.FlagRate {
		score += 25 + rand.Float64()*15
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return roundStub(score)
}
