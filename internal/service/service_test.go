package service

import (
	"context"
	"sync"
	"testing"

	"github.com/fnbdemo/go-fnb-integration/internal/domain"
	"github.com/fnbdemo/go-fnb-integration/internal/telemetry"
)

type stubResponse struct {
	kind   domain.CallKind
	status int
	body   string
}

// fakeInvoker answers from a map keyed by backend name. Backends without
// an entry succeed with an empty object.
type fakeInvoker struct {
	mu        sync.Mutex
	responses map[string]stubResponse
	calls     []*domain.BackendRequest
}

func (f *fakeInvoker) Invoke(ctx context.Context, req *domain.BackendRequest) *domain.BackendCallResult {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()

	r, ok := f.responses[req.Backend]
	if !ok {
		r = stubResponse{kind: domain.CallSuccess, status: 200, body: "{}"}
	}
	return &domain.BackendCallResult{
		Backend:       req.Backend,
		CorrelationId: req.CorrelationId,
		Kind:          r.kind,
		StatusCode:    r.status,
		LatencyMs:     1,
		Payload:       []byte(r.body),
	}
}

func (f *fakeInvoker) called(backend string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, call := range f.calls {
		if call.Backend == backend {
			return true
		}
	}
	return false
}

type fakeNotifier struct {
	mu     sync.Mutex
	jobs   []domain.NotificationJob
	reject bool
}

func (f *fakeNotifier) Enqueue(job domain.NotificationJob) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.reject {
		return false
	}
	f.jobs = append(f.jobs, job)
	return true
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.jobs)
}

func newTestService(responses map[string]stubResponse) (*IntegrationService, *fakeInvoker, *fakeNotifier) {
	inv := &fakeInvoker{responses: responses}
	not := &fakeNotifier{}
	svc := NewIntegrationService(inv, not, nil, telemetry.New("test"), BackendURLs{
		CoreBanking:  "http://core-banking",
		Fraud:        "http://fraud",
		AML:          "http://aml",
		CRM:          "http://crm",
		Notification: "http://notification",
	}, 64)
	return svc, inv, not
}

func testCC() CallContext {
	return CallContext{CorrelationId: "corr-test-0001"}
}

// Every backend call and the invocation itself must carry the inbound
// correlation id unchanged.
func assertCorrelation(t *testing.T, inv *domain.FlowInvocation, want string) {
	t.Helper()
	if inv.CorrelationId != want {
		t.Fatalf("invocation correlation id = %q, want %q", inv.CorrelationId, want)
	}
	for _, call := range inv.Calls {
		if call.CorrelationId != want {
			t.Fatalf("call %s correlation id = %q, want %q", call.Backend, call.CorrelationId, want)
		}
	}
}
