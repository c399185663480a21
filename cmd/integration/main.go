package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/fnbdemo/go-fnb-integration/internal/config/env"
	"github.com/fnbdemo/go-fnb-integration/internal/database"
	"github.com/fnbdemo/go-fnb-integration/internal/invoker"
	redisrepo "github.com/fnbdemo/go-fnb-integration/internal/repository/redis"
	"github.com/fnbdemo/go-fnb-integration/internal/router"
	"github.com/fnbdemo/go-fnb-integration/internal/service"
	"github.com/fnbdemo/go-fnb-integration/internal/telemetry"
	"github.com/fnbdemo/go-fnb-integration/internal/worker"
	"github.com/fnbdemo/go-fnb-integration/libs"
)

func main() {
	env.Load()
	env.ShowEnvValues()

	rds, err := database.ConnectToRedisClient(env.Values.REDIS_ADDR)
	if err != nil {
		log.Fatalf("Failed to get Redis client: %v", err)
	}
	defer database.CloseRedisClient()

	tel := telemetry.New("fnb-integration")
	timeout := time.Duration(env.Values.BACKEND_TIMEOUT_MS) * time.Millisecond
	backendInvoker := invoker.NewBackendInvoker(tel, timeout)

	// Fire-and-forget notification path, detached from flow results.
	notifier := worker.NewNotificationDispatcher(backendInvoker, tel,
		env.Values.NOTIFICATION_URL, env.Values.NOTIFY_WORKER_POOL, env.Values.NOTIFY_QUEUE_SIZE)
	go notifier.Run(context.Background())

	flowRepo := redisrepo.NewFlowsRepository(rds)
	svc := service.NewIntegrationService(backendInvoker, notifier, flowRepo, tel, service.BackendURLs{
		CoreBanking:  env.Values.CORE_BANKING_URL,
		Fraud:        env.Values.FRAUD_URL,
		AML:          env.Values.AML_URL,
		CRM:          env.Values.CRM_URL,
		Notification: env.Values.NOTIFICATION_URL,
	}, env.Values.RECORD_QUEUE_SIZE)

	recordWorker := worker.NewFlowRecordWorker(flowRepo, svc.Records(), 2)
	go recordWorker.Run(context.Background())

	healthRepo := redisrepo.NewHealthRepository(rds)
	healthWorker := worker.NewBackendHealthWorker(healthRepo, map[string]string{
		"core-banking": env.Values.CORE_BANKING_URL,
		"fraud":        env.Values.FRAUD_URL,
		"aml":          env.Values.AML_URL,
		"crm":          env.Values.CRM_URL,
		"notification": env.Values.NOTIFICATION_URL,
	}, time.Duration(env.Values.HEALTH_INTERVAL_MS)*time.Millisecond)
	go healthWorker.Run(context.Background())

	handler := router.NewIntegrationHandler(svc, tel)
	routes := router.Routes(handler)

	routes.HandleFunc("/debug/pprof/", pprof.Index)
	routes.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	routes.HandleFunc("/debug/pprof/profile", pprof.Profile)
	routes.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	routes.HandleFunc("/debug/pprof/trace", pprof.Trace)

	addr := env.Values.SERVER_ADDR + ":" + fmt.Sprint(env.Values.SERVER_PORT)
	server := &http.Server{
		Addr:           addr,
		Handler:        routes,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 256 << 10, // 256 KB
	}

	log.Printf("Integration service started on %s", addr)
	libs.GracefulShutdown(server, time.Second*10, tel.Flush)
}
