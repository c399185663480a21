// Package stub simulates the five banking subsystems. Every handler sleeps
// for a policy-drawn duration, occasionally injects a fault, and answers
// with a plausible JSON body. No real business logic lives here.
package stub

import (
	"math/rand/v2"
	"time"
)

// FaultPolicy decides, per request, how long the simulated work takes and
// whether to inject an error response. Injectable so tests can swap in
// deterministic policies without touching handler code.
type FaultPolicy interface {
	Delay() time.Duration
	Fault() bool
}

// RandomFaultPolicy injects a degraded latency for DegradedRate of
// requests (the simulated table lock) and an error status for FaultRate.
type RandomFaultPolicy struct {
	FaultRate    float64
	DegradedRate float64
	Base         time.Duration
	Jitter       time.Duration
	DegradedMin  time.Duration
	DegradedMax  time.Duration
}

func (p RandomFaultPolicy) Delay() time.Duration {
	if p.DegradedRate > 0 && rand.Float64() < p.DegradedRate {
		spread := p.DegradedMax - p.DegradedMin
		if spread <= 0 {
			return p.DegradedMin
		}
		return p.DegradedMin + time.Duration(rand.Int64N(int64(spread)))
	}
	if p.Jitter <= 0 {
		return p.Base
	}
	return p.Base + time.Duration(rand.Int64N(int64(p.Jitter)))
}

func (p RandomFaultPolicy) Fault() bool {
	return p.FaultRate > 0 && rand.Float64() < p.FaultRate
}

// StaticPolicy is for tests: fixed delay, fixed fault decision.
type StaticPolicy struct {
	FixedDelay  time.Duration
	AlwaysFault bool
}

func (p StaticPolicy) Delay() time.Duration { return p.FixedDelay }
func (p StaticPolicy) Fault() bool          { return p.AlwaysFault }
