// Package invoker wraps one outbound call to a named backend with timing
// capture, outcome classification and telemetry emission.
package invoker

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	json "github.com/json-iterator/go"

	"github.com/fnbdemo/go-fnb-integration/internal/correlation"
	"github.com/fnbdemo/go-fnb-integration/internal/domain"
	"github.com/fnbdemo/go-fnb-integration/internal/telemetry"
)

var bufferPool = sync.Pool{
	New: func() interface{} { return &bytes.Buffer{} },
}

type BackendInvoker struct {
	httpClient *http.Client
	timeout    time.Duration
	tel        *telemetry.Telemetry
}

func NewBackendInvoker(tel *telemetry.Telemetry, timeout time.Duration) *BackendInvoker {
	tr := &http.Transport{
		IdleConnTimeout:     60 * time.Second,
		MaxIdleConns:        64,
		MaxIdleConnsPerHost: 64,
		DisableKeepAlives:   false,
		DisableCompression:  true,
		ForceAttemptHTTP2:   false,
	}
	return &BackendInvoker{
		httpClient: &http.Client{Transport: tr, Timeout: timeout},
		timeout:    timeout,
		tel:        tel,
	}
}

// Invoke performs the call and classifies the outcome. It never returns an
// error: a transport failure or timeout yields a TRANSPORT_FAILURE result,
// an HTTP error status a BACKEND_ERROR. The flow decides what is fatal.
// One latency sample, one counter increment and one log line are emitted
// per call, success or not.
func (bi *BackendInvoker) Invoke(ctx context.Context, req *domain.BackendRequest) *domain.BackendCallResult {
	result := &domain.BackendCallResult{
		Backend:       req.Backend,
		CorrelationId: req.CorrelationId,
	}

	start := time.Now()
	defer func() {
		result.LatencyMs = time.Since(start).Milliseconds()
		bi.emit(result)
	}()

	bi.tel.Count("mule.http.requests", 1, "backend="+req.Backend)

	var body io.Reader
	if req.Payload != nil {
		buf := bufferPool.Get().(*bytes.Buffer)
		buf.Reset()
		defer bufferPool.Put(buf)

		if err := json.NewEncoder(buf).Encode(req.Payload); err != nil {
			result.Kind = domain.CallTransportFailure
			return result
		}
		body = buf
	}

	callCtx, cancel := context.WithTimeout(ctx, bi.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(callCtx, req.Method, req.URL, body)
	if err != nil {
		result.Kind = domain.CallTransportFailure
		return result
	}
	httpReq.Header.Set("Content-Type", "application/json")
	correlation.Inject(httpReq.Header, req.CorrelationId, req.TraceParent)

	resp, err := bi.httpClient.Do(httpReq)
	if err != nil {
		result.Kind = domain.CallTransportFailure
		return result
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		result.Kind = domain.CallTransportFailure
		return result
	}

	result.StatusCode = resp.StatusCode
	result.Payload = raw
	if resp.StatusCode >= 400 {
		result.Kind = domain.CallBackendError
		return result
	}

	result.Kind = domain.CallSuccess
	return result
}

func (bi *BackendInvoker) emit(result *domain.BackendCallResult) {
	bi.tel.Observe("mule.backend.latency", float64(result.LatencyMs), "backend="+result.Backend)
	bi.tel.Count("mule.backend.calls", 1, "backend="+result.Backend, "kind="+string(result.Kind))

	switch result.Kind {
	case domain.CallSuccess:
		bi.tel.Logger().Info("[Invoker:Backend:Invoke] - Backend call completed",
			"backend", result.Backend,
			"status", result.StatusCode,
			"latency_ms", result.LatencyMs,
			"correlation_id", result.CorrelationId)
	case domain.CallBackendError:
		bi.tel.Logger().Warn("[Invoker:Backend:Invoke] - Backend returned error status",
			"backend", result.Backend,
			"status", result.StatusCode,
			"latency_ms", result.LatencyMs,
			"correlation_id", result.CorrelationId)
	default:
		bi.tel.Logger().Error("[Invoker:Backend:Invoke] - Backend call failed",
			"backend", result.Backend,
			"kind", string(result.Kind),
			"latency_ms", result.LatencyMs,
			"correlation_id", result.CorrelationId)
	}
}
