package core

import (
	"context"
	"time"

	"github.com/fnbdemo/go-fnb-integration/internal/domain"
)

// BackendInvokerInterface performs one outbound backend call. It always
// returns a result; transport errors are classified, never raised.
type BackendInvokerInterface interface {
	Invoke(ctx context.Context, req *domain.BackendRequest) *domain.BackendCallResult
}

type FlowRepositoryInterface interface {
	SaveFlowRecord(ctx context.Context, inv *domain.FlowInvocation) error
	GetSummaryByFlow(ctx context.Context, flow domain.FlowName, from, to time.Time) (*domain.FlowSummaryItem, error)
	ResetState(ctx context.Context) error
}

type HealthRepositoryInterface interface {
	Lock(ctx context.Context) error
	Unlock(ctx context.Context) error
	SaveBackendHealth(ctx context.Context, backend string, healthy bool) error
	GetBackendHealth(ctx context.Context, backend string) (bool, error)
}

// NotifierInterface accepts fire-and-forget notification jobs. Enqueue
// never blocks the flow that calls it; delivery failures stay with the
// dispatcher.
type NotifierInterface interface {
	Enqueue(job domain.NotificationJob) bool
}
