package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/fnbdemo/go-fnb-integration/internal/config/env"
	"github.com/fnbdemo/go-fnb-integration/internal/stub"
	"github.com/fnbdemo/go-fnb-integration/libs"
)

func main() {
	env.Load()
	env.ShowEnvValues()

	// Core banking is the demo's primary failure point: its policy injects
	// slow queries. The other subsystems fail at lower rates.
	coreBankingPolicy := stub.RandomFaultPolicy{
		FaultRate:    env.Values.SLOW_QUERY_RATE / 2,
		DegradedRate: env.Values.SLOW_QUERY_RATE,
		Base:         150 * time.Millisecond,
		Jitter:       60 * time.Millisecond,
		DegradedMin:  4 * time.Second,
		DegradedMax:  5500 * time.Millisecond,
	}
	fastPolicy := stub.RandomFaultPolicy{
		FaultRate: 0.02,
		Base:      30 * time.Millisecond,
		Jitter:    50 * time.Millisecond,
	}

	muxes := []*http.ServeMux{
		stub.CoreBankingRoutes(&stub.CoreBanking{Policy: coreBankingPolicy}),
		stub.FraudRoutes(&stub.FraudDetection{Policy: fastPolicy, FlagRate: env.Values.FRAUD_FLAG_RATE}),
		stub.AMLRoutes(&stub.AMLScreening{Policy: fastPolicy, MatchRate: env.Values.KYC_MATCH_RATE}),
		stub.CRMRoutes(&stub.CRM{Policy: fastPolicy}),
		stub.NotificationRoutes(&stub.Notification{Policy: fastPolicy}),
	}

	servers := make([]*http.Server, 0, len(muxes))
	for i, mux := range muxes {
		servers = append(servers, &http.Server{
			Addr:         fmt.Sprintf(":%d", env.Values.BACKEND_BASE_PORT+i),
			Handler:      mux,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		})
	}

	log.Printf("Backend stubs starting on ports %d-%d", env.Values.BACKEND_BASE_PORT, env.Values.BACKEND_BASE_PORT+len(muxes)-1)
	libs.GracefulShutdownAll(servers, time.Second*10)
}
