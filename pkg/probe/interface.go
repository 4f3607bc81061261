// Package probe checks whether a downstream HTTP service answers, and reports
// why it did not.
package probe

import (
	"context"
	"time"
)

// Outcome classifies the result of a single probe.
type Outcome string

const (
	// OutcomeSuccess means the service answered with a status below 400.
	OutcomeSuccess Outcome = "success"
	// OutcomeBadStatus means the service answered with a status of 400 or above.
	OutcomeBadStatus Outcome = "bad_status"
	// OutcomeTimeout means no answer arrived before the deadline.
	OutcomeTimeout Outcome = "timeout"
	// OutcomeConnection means the service could not be reached (DNS, refused, reset).
	OutcomeConnection Outcome = "connection"
	// OutcomeInvalid means the target URL could not be turned into a request.
	OutcomeInvalid Outcome = "invalid"
)

// Result describes a finished probe.
type Result struct {
	URL        string        // URL is the probed target.
	Outcome    Outcome       // Outcome classifies the result.
	StatusCode int           // StatusCode is set whenever a response was received.
	Duration   time.Duration // Duration is the wall time of the probe.
	Err        error         // Err is nil on success and carries a serrors kind otherwise.
}

// OK reports whether the probe succeeded.
func (r Result) OK() bool {
	return r.Outcome == OutcomeSuccess
}

// Prober issues a single GET against a URL.
//
//go:generate mockgen -package mockprobe -source=interface.go -destination=mock/mockprobe.go *
type Prober interface {
	Probe(ctx context.Context, URL string) Result
}
