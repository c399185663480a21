package portal

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/fnbdemo/go-fnb-integration/internal/core"
	"github.com/fnbdemo/go-fnb-integration/internal/correlation"
	"github.com/fnbdemo/go-fnb-integration/internal/domain"
	"github.com/fnbdemo/go-fnb-integration/internal/telemetry"
)

// TrafficGenerator is the burst-pattern synthetic load source. It drives
// the same integration operations a teller would, at a rate shaped by the
// time of day: low overnight, high during business hours with bursts at
// open and close, medium after hours. Load-shape policy only, not part of
// the orchestration core.
type TrafficGenerator struct {
	invoker core.BackendInvokerInterface
	tel     *telemetry.Telemetry
	baseURL string
}

func NewTrafficGenerator(invoker core.BackendInvokerInterface, tel *telemetry.Telemetry, integrationURL string) *TrafficGenerator {
	return &TrafficGenerator{invoker: invoker, tel: tel, baseURL: integrationURL}
}

func (g *TrafficGenerator) Run(ctx context.Context) {
	g.tel.Logger().Info("[Portal:TrafficGen:Run] - Load generator starting", "pattern", "business-hours-burst")

	for {
		hour := time.Now().Hour()
		g.fire(ctx, pickOperation(hour))

		select {
		case <-ctx.Done():
			g.tel.Logger().Info("[Portal:TrafficGen:Run] - Load generator stopped")
			return
		case <-time.After(Interval(hour)):
		}
	}
}

// Interval returns the pause before the next synthetic request for the
// given hour. Bursts at the 09h and 16h boundaries.
func Interval(hour int) time.Duration {
	switch {
	case hour >= 9 && hour < 17:
		if hour == 9 || hour == 16 {
			return randomDuration(300, 800)
		}
		return randomDuration(1000, 3000)
	case hour >= 0 && hour < 8:
		return randomDuration(15000, 30000)
	default:
		return randomDuration(5000, 12000)
	}
}

type operation int

const (
	opWireTransfer operation = iota
	opACHPayment
	opCustomer360
	opAccountOpening
)

// pickOperation draws a weighted operation: 35% wire, 30% ACH, 25%
// customer-360, 10% account opening. Account opening only runs during
// business hours.
func pickOperation(hour int) operation {
	businessHours := hour >= 9 && hour < 17
	roll := rand.Float64()
	if !businessHours {
		// Renormalize over the first three ops.
		roll *= 0.90
	}
	switch {
	case roll < 0.35:
		return opWireTransfer
	case roll < 0.65:
		return opACHPayment
	case roll < 0.90:
		return opCustomer360
	default:
		return opAccountOpening
	}
}

func (g *TrafficGenerator) fire(ctx context.Context, op operation) {
	var (
		method, path string
		payload      any
	)

	switch op {
	case opWireTransfer:
		method, path = "POST", "/api/payments/wire"
		payload = map[string]any{
			"sourceAccount":      randomAccount(),
			"destinationAccount": fmt.Sprintf("EXT%08d", rand.IntN(90000000)+10000000),
			"amount":             roundCents(1000 + rand.Float64()*249000),
			"currency":           "USD",
			"paymentType":        "WIRE",
			"destinationCountry": pick("US", "GB", "DE", "SG", "JP", "CA"),
			"purpose":            pick("TRADE", "INVESTMENT", "PERSONAL", "PAYROLL"),
		}
	case opACHPayment:
		method, path = "POST", "/api/payments/ach"
		payload = map[string]any{
			"sourceAccount":      randomAccount(),
			"destinationAccount": fmt.Sprintf("%08d", rand.IntN(90000000)+10000000),
			"amount":             roundCents(50 + rand.Float64()*9950),
			"currency":           "USD",
			"paymentType":        "ACH",
		}
	case opCustomer360:
		method, path = "GET", "/api/customers/"+randomCustomer()+"/360"
	case opAccountOpening:
		method, path = "POST", "/api/accounts/open"
		payload = map[string]any{
			"firstName":      pick("James", "Sarah", "Michael", "Emily"),
			"lastName":       pick("Smith", "Johnson", "Williams", "Brown"),
			"dateOfBirth":    fmt.Sprintf("%d-%02d-%02d", 1950+rand.IntN(51), 1+rand.IntN(12), 1+rand.IntN(28)),
			"ssn":            fmt.Sprintf("%03d-%02d-%04d", 100+rand.IntN(900), 10+rand.IntN(90), 1000+rand.IntN(9000)),
			"accountType":    pick("CHECKING", "SAVINGS"),
			"initialDeposit": roundCents(500 + rand.Float64()*9500),
			"branchCode":     fmt.Sprintf("BR%03d", 1+rand.IntN(50)),
			"customerType":   "INDIVIDUAL",
		}
	}

	result := g.invoker.Invoke(ctx, &domain.BackendRequest{
		Backend:       "integration/synthetic",
		Method:        method,
		URL:           g.baseURL + path,
		Payload:       payload,
		CorrelationId: correlation.Ensure(""),
	})

	g.tel.Count("portal.synthetic.requests", 1, "kind="+string(result.Kind))
}

func randomDuration(minMs, maxMs int) time.Duration {
	return time.Duration(minMs+rand.IntN(maxMs-minMs)) * time.Millisecond
}

func randomAccount() string {
	return fmt.Sprintf("ACC%08d", 1+rand.IntN(100))
}

func randomCustomer() string {
	return fmt.Sprintf("CUST%06d", 1+rand.IntN(100))
}

func pick(options ...string) string {
	return options[rand.IntN(len(options))]
}

func roundCents(v float64) float64 {
	return float64(int(v*100)) / 100
}
