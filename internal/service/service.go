// Package service implements the integration flows: each flow composes
// backend invoker calls with flow-specific control logic and finalizes a
// FlowInvocation with exactly one terminal outcome.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fnbdemo/go-fnb-integration/internal/core"
	"github.com/fnbdemo/go-fnb-integration/internal/domain"
	"github.com/fnbdemo/go-fnb-integration/internal/telemetry"
)

// BackendURLs holds the base URL of every simulated subsystem.
type BackendURLs struct {
	CoreBanking  string
	Fraud        string
	AML          string
	CRM          string
	Notification string
}

// CallContext carries the correlation identifier (and forwarded trace
// context) assigned at the front door through every backend hop.
type CallContext struct {
	CorrelationId string
	TraceParent   string
}

type IntegrationService struct {
	invoker  core.BackendInvokerInterface
	notifier core.NotifierInterface
	repoFlow core.FlowRepositoryInterface
	tel      *telemetry.Telemetry
	urls     BackendURLs

	records chan *domain.FlowInvocation
}

func NewIntegrationService(
	invoker core.BackendInvokerInterface,
	notifier core.NotifierInterface,
	repoFlow core.FlowRepositoryInterface,
	tel *telemetry.Telemetry,
	urls BackendURLs,
	recordQueueSize int,
) *IntegrationService {
	return &IntegrationService{
		invoker:  invoker,
		notifier: notifier,
		repoFlow: repoFlow,
		tel:      tel,
		urls:     urls,
		records:  make(chan *domain.FlowInvocation, recordQueueSize),
	}
}

// Records exposes finalized flow invocations for the record-saver worker.
func (s *IntegrationService) Records() <-chan *domain.FlowInvocation {
	return s.records
}

func (s *IntegrationService) begin(flow domain.FlowName, cc CallContext) *domain.FlowInvocation {
	s.tel.Count("mule.flow.executions", 1, "flow="+string(flow))
	s.tel.Count("mule.messages.processed", 1, "flow="+string(flow))
	s.tel.Logger().Info("[Service:Flow:Begin] - Flow started",
		"flow", string(flow),
		"correlation_id", cc.CorrelationId)
	return domain.NewFlowInvocation(flow, cc.CorrelationId)
}

// finish finalizes the invocation, emits the duration sample and hands the
// record to the saver queue. errorStep tags the failing stage for FAILED
// outcomes; the record queue never blocks a flow.
func (s *IntegrationService) finish(inv *domain.FlowInvocation, outcome domain.Outcome, errorStep string) {
	inv.Finalize(outcome)
	s.tel.Observe("mule.flow.duration", float64(inv.ElapsedMs), "flow="+string(inv.Flow))

	if outcome == domain.OutcomeFailed {
		s.tel.Count("mule.flow.errors", 1, "flow="+string(inv.Flow), "error.step="+errorStep)
		s.tel.Logger().Warn("[Service:Flow:Finish] - Flow failed",
			"flow", string(inv.Flow),
			"error_step", errorStep,
			"duration_ms", inv.ElapsedMs,
			"correlation_id", inv.CorrelationId)
	} else {
		s.tel.Logger().Info("[Service:Flow:Finish] - Flow completed",
			"flow", string(inv.Flow),
			"outcome", string(outcome),
			"duration_ms", inv.ElapsedMs,
			"correlation_id", inv.CorrelationId)
	}

	select {
	case s.records <- inv:
	default:
		s.tel.Count("flow.records.dropped", 1)
	}
}

func (s *IntegrationService) invoke(ctx context.Context, inv *domain.FlowInvocation, cc CallContext,
	backend, method, url string, payload any) *domain.BackendCallResult {

	result := s.invoker.Invoke(ctx, &domain.BackendRequest{
		Backend:       backend,
		Method:        method,
		URL:           url,
		Payload:       payload,
		CorrelationId: cc.CorrelationId,
		TraceParent:   cc.TraceParent,
	})
	inv.Record(result)
	return result
}

// GetSummary aggregates stored flow records per flow over a time window.
func (s *IntegrationService) GetSummary(ctx context.Context, from, to time.Time) (*domain.FlowSummary, error) {
	summary := &domain.FlowSummary{}

	targets := []struct {
		flow domain.FlowName
		item *domain.FlowSummaryItem
	}{
		{domain.FlowPaymentProcessing, &summary.Payments},
		{domain.FlowCustomer360, &summary.Customer360},
		{domain.FlowAccountOpeningKYC, &summary.AccountOpening},
		{domain.FlowTradeReconciliation, &summary.TradeReconciliation},
	}

	for _, target := range targets {
		item, err := s.repoFlow.GetSummaryByFlow(ctx, target.flow, from, to)
		if err != nil {
			return nil, err
		}
		*target.item = *item
	}
	return summary, nil
}

func (s *IntegrationService) ResetState(ctx context.Context) error {
	return s.repoFlow.ResetState(ctx)
}

func refID(prefix string) string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return prefix + id[:12]
}
