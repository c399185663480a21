package domain

// NotificationJob is a detached best-effort side effect. Its outcome never
// feeds back into the flow that enqueued it.
type NotificationJob struct {
	Kind          string // "transaction" or "account-opened"
	CorrelationId string
	TraceParent   string
	Payload       map[string]any
}
