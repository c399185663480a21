package worker

import (
	"context"
	"log/slog"

	"github.com/fnbdemo/go-fnb-integration/internal/core"
	"github.com/fnbdemo/go-fnb-integration/internal/domain"
	"github.com/fnbdemo/go-fnb-integration/internal/telemetry"
)

// NotificationDispatcher delivers fire-and-forget notifications on its own
// goroutine pool. Enqueue never blocks a flow, and delivery failures stay
// here: they are logged and counted, never surfaced to the caller.
type NotificationDispatcher struct {
	invoker core.BackendInvokerInterface
	tel     *telemetry.Telemetry
	baseURL string
	jobs    chan domain.NotificationJob
	WORKERS int
}

func NewNotificationDispatcher(invoker core.BackendInvokerInterface, tel *telemetry.Telemetry, baseURL string, workers, queueSize int) *NotificationDispatcher {
	return &NotificationDispatcher{
		invoker: invoker,
		tel:     tel,
		baseURL: baseURL,
		jobs:    make(chan domain.NotificationJob, queueSize),
		WORKERS: workers,
	}
}

func (d *NotificationDispatcher) Enqueue(job domain.NotificationJob) bool {
	select {
	case d.jobs <- job:
		return true
	default:
		d.tel.Count("notifications.dropped", 1, "kind="+job.Kind)
		d.tel.Logger().Warn("[Worker:Notify:Enqueue] - Notification queue full, dropping job",
			"kind", job.Kind, "correlation_id", job.CorrelationId)
		return false
	}
}

func (d *NotificationDispatcher) Run(ctx context.Context) {
	for i := 0; i < d.WORKERS; i++ {
		go d.dispatch(ctx)
	}
}

func (d *NotificationDispatcher) dispatch(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("[Worker:Notify:dispatch] - Recovered from panic, restarting", "panic", r)
			go d.dispatch(ctx)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case job := <-d.jobs:
			d.deliver(ctx, job)
		}
	}
}

func (d *NotificationDispatcher) deliver(ctx context.Context, job domain.NotificationJob) {
	path := "/notify/transaction"
	if job.Kind == "account-opened" {
		path = "/notify/account-opened"
	}

	result := d.invoker.Invoke(ctx, &domain.BackendRequest{
		Backend:       domain.BackendNotification,
		Method:        "POST",
		URL:           d.baseURL + path,
		Payload:       job.Payload,
		CorrelationId: job.CorrelationId,
		TraceParent:   job.TraceParent,
	})

	if result.OK() {
		d.tel.Count("notifications.sent", 1, "kind="+job.Kind)
		return
	}
	d.tel.Count("notifications.failed", 1, "kind="+job.Kind)
	d.tel.Logger().Warn("[Worker:Notify:deliver] - Notification delivery failed",
		"kind", job.Kind,
		"result", string(result.Kind),
		"correlation_id", job.CorrelationId)
}
