package domain

import (
	"time"

	json "github.com/json-iterator/go"
)

type FlowName string

const (
	FlowPaymentProcessing   FlowName = "payment-processing-flow"
	FlowCustomer360         FlowName = "customer-360-flow"
	FlowAccountOpeningKYC   FlowName = "account-opening-kyc-flow"
	FlowTradeReconciliation FlowName = "trade-reconciliation-batch"
)

type Outcome string

const (
	OutcomeCompleted Outcome = "COMPLETED"
	OutcomeRejected  Outcome = "REJECTED"
	OutcomeFailed    Outcome = "FAILED"
)

// CallKind classifies one backend call. BACKEND_ERROR and TRANSPORT_FAILURE
// are equivalent for flow control but tagged distinctly for observability.
type CallKind string

const (
	CallSuccess          CallKind = "SUCCESS"
	CallBackendError     CallKind = "BACKEND_ERROR"
	CallTransportFailure CallKind = "TRANSPORT_FAILURE"
)

type BackendCallResult struct {
	Backend       string   `msgpack:"backend"`
	CorrelationId string   `msgpack:"correlation_id"`
	Kind          CallKind `msgpack:"kind"`
	StatusCode    int      `msgpack:"status_code"`
	LatencyMs     int64    `msgpack:"latency_ms"`
	Payload       []byte   `msgpack:"-"`
}

func (r *BackendCallResult) OK() bool {
	return r.Kind == CallSuccess
}

// Decode unmarshals the response payload into v. Only meaningful for
// SUCCESS results; error bodies are kept raw.
func (r *BackendCallResult) Decode(v any) error {
	return json.Unmarshal(r.Payload, v)
}

// FlowInvocation is one execution of a named flow. It is owned exclusively
// by the orchestrator invocation that created it and finalized exactly once.
type FlowInvocation struct {
	Flow          FlowName             `msgpack:"flow"`
	CorrelationId string               `msgpack:"correlation_id"`
	StartedAt     time.Time            `msgpack:"started_at"`
	ElapsedMs     int64                `msgpack:"elapsed_ms"`
	Outcome       Outcome              `msgpack:"outcome"`
	Calls         []*BackendCallResult `msgpack:"calls"`

	finalized bool
}

func NewFlowInvocation(flow FlowName, correlationId string) *FlowInvocation {
	return &FlowInvocation{
		Flow:          flow,
		CorrelationId: correlationId,
		StartedAt:     time.Now().UTC(),
	}
}

func (f *FlowInvocation) Record(call *BackendCallResult) {
	f.Calls = append(f.Calls, call)
}

// Finalize sets the terminal outcome. The first call wins; later calls are
// ignored so a flow can never flip its outcome after returning.
func (f *FlowInvocation) Finalize(outcome Outcome) {
	if f.finalized {
		return
	}
	f.finalized = true
	f.Outcome = outcome
	f.ElapsedMs = time.Since(f.StartedAt).Milliseconds()
}

func (f *FlowInvocation) Finalized() bool {
	return f.finalized
}
