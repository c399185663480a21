package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/fnbdemo/go-fnb-integration/internal/config/env"
	"github.com/fnbdemo/go-fnb-integration/internal/invoker"
	"github.com/fnbdemo/go-fnb-integration/internal/portal"
	"github.com/fnbdemo/go-fnb-integration/internal/telemetry"
	"github.com/fnbdemo/go-fnb-integration/libs"
)

func main() {
	env.Load()
	env.ShowEnvValues()

	tel := telemetry.New("fnb-portal")
	timeout := time.Duration(env.Values.BACKEND_TIMEOUT_MS+3000) * time.Millisecond
	backendInvoker := invoker.NewBackendInvoker(tel, timeout)

	handler := portal.NewPortalHandler(backendInvoker, tel, env.Values.INTEGRATION_URL)
	routes := portal.Routes(handler)

	if env.Values.TRAFFIC_GEN_ENABLED {
		gen := portal.NewTrafficGenerator(backendInvoker, tel, env.Values.INTEGRATION_URL)
		go gen.Run(context.Background())
	}

	addr := env.Values.PORTAL_ADDR + ":" + fmt.Sprint(env.Values.PORTAL_PORT)
	server := &http.Server{
		Addr:         addr,
		Handler:      routes,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Portal started on %s", addr)
	libs.GracefulShutdown(server, time.Second*10, tel.Flush)
}
