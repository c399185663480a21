package stub

import (
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"

	json "github.com/json-iterator/go"

	"github.com/fnbdemo/go-fnb-integration/internal/correlation"
)

// AMLScreening simulates sanctions/watchlist screening. MatchRate is the
// probability a KYC screen comes back as a MATCH; set it to 0 or 1 for
// deterministic behavior in tests.
type AMLScreening struct {
	Policy    FaultPolicy
	MatchRate float64
}

func AMLRoutes(s *AMLScreening) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /aml/screen/kyc", s.ScreenKYC)
	mux.HandleFunc("GET /health", healthHandler("aml-screening-svc", "Dow Jones RC 2.8"))
	return mux
}

func (s *AMLScreening) ScreenKYC(w http.ResponseWriter, r *http.Request) {
	correlationId := correlation.Ensure(correlation.Extract(r.Header))

	var body struct {
		FullName     string `json:"fullName"`
		Nationality  string `json:"nationality"`
		CustomerType string `json:"customerType"`
	}
	json.NewDecoder(r.Body).Decode(&body)

	time.Sleep(s.Policy.Delay())
	if s.Policy.Fault() {
		writeStubError(w, correlationId, "screening provider unavailable")
		return
	}

	matched := s.MatchRate > 0 && rand.Float64() < s.MatchRate
	pepMatch := matched && rand.Float64() < 0.5

	status := "CLEAR"
	if matched {
		status = "MATCH"
		slog.Warn("[Stub:AML:ScreenKYC] - KYC screening matched",
			"applicant", body.FullName,
			"pep_match", pepMatch,
			"correlation_id", correlationId)
	}

	writeStub(w, http.StatusOK, map[string]any{
		"status":           status,
		"pepMatch":         pepMatch,
		"adverseMediaHits": 0,
		"watchlistClear":   !matched,
		"correlationId":    correlationId,
	})
}
