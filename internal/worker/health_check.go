package worker

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	json "github.com/json-iterator/go"

	"github.com/fnbdemo/go-fnb-integration/internal/core"
)

type backendHealthStatus struct {
	Status string `json:"status"`
}

// BackendHealthWorker periodically polls every backend's /health endpoint
// and records the result so dashboards and the /health handler can report
// subsystem status without probing on the request path.
type BackendHealthWorker struct {
	repo     core.HealthRepositoryInterface
	backends map[string]string // name -> base URL
	interval time.Duration
	client   *http.Client
}

func NewBackendHealthWorker(repo core.HealthRepositoryInterface, backends map[string]string, interval time.Duration) *BackendHealthWorker {
	return &BackendHealthWorker{
		repo:     repo,
		backends: backends,
		interval: interval,
		client:   &http.Client{Timeout: 3 * time.Second},
	}
}

func (w *BackendHealthWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			slog.Info("[Worker:BackendHealth:Run] - Health worker stopped")
			return
		case <-ticker.C:
			w.PerformHealthCheck(ctx)
		}
	}
}

func (w *BackendHealthWorker) PerformHealthCheck(ctx context.Context) {
	w.repo.Lock(ctx)
	defer w.repo.Unlock(ctx)

	for name, baseURL := range w.backends {
		healthy := w.probe(ctx, baseURL)
		if err := w.repo.SaveBackendHealth(ctx, name, healthy); err != nil {
			slog.Warn("[Worker:BackendHealth:PerformHealthCheck] - Failed to save backend health",
				"backend", name, "error", err)
		}
		if !healthy {
			slog.Warn("[Worker:BackendHealth:PerformHealthCheck] - Backend unhealthy", "backend", name)
		}
	}
}

func (w *BackendHealthWorker) probe(ctx context.Context, baseURL string) bool {
	req, err := http.NewRequestWithContext(ctx, "GET", baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := w.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	var status backendHealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return false
	}
	return status.Status == "UP"
}
