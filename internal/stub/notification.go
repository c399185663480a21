package stub

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/fnbdemo/go-fnb-integration/internal/correlation"
)

// Notification simulates the outbound notification gateway.
type Notification struct {
	Policy FaultPolicy
}

func NotificationRoutes(s *Notification) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /notify/transaction", s.notify("TRANSACTION", []string{"SMS", "EMAIL"}))
	mux.HandleFunc("POST /notify/account-opened", s.notify("ACCOUNT_OPENED", []string{"EMAIL"}))
	mux.HandleFunc("POST /notify/fraud-alert", s.notify("FRAUD_ALERT", []string{"SMS", "EMAIL", "PUSH"}))
	mux.HandleFunc("GET /health", healthHandler("notification-svc", "FNB Notification Gateway 1.5"))
	return mux
}

func (s *Notification) notify(kind string, channels []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		correlationId := correlation.Ensure(correlation.Extract(r.Header))

		time.Sleep(s.Policy.Delay())
		if s.Policy.Fault() {
			writeStubError(w, correlationId, "delivery gateway unavailable")
			return
		}

		slog.Info("[Stub:Notification:notify] - Notification delivered",
			"type", kind,
			"channels", channels,
			"correlation_id", correlationId)

		writeStub(w, http.StatusOK, map[string]any{
			"notificationId": stubRefID("NTF"),
			"type":           kind,
			"channels":       channels,
			"status":         "DELIVERED",
			"timestamp":      time.Now().UTC().Format(time.RFC3339),
			"correlationId":  correlationId,
		})
	}
}
