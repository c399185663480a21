package domain

import "fmt"

// ValidationError rejects a malformed inbound request before any backend call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request: %s %s", e.Field, e.Reason)
}

// RejectionReason distinguishes a deliberate business outcome (KYC match)
// from a system fault. It is client-facing and never conflated with 5xx.
type RejectionReason string

const (
	RejectionKYCScreening RejectionReason = "KYC screening flagged"
)
