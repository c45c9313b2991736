package candycheck

import "time"

// Metrics defines the interface for tracking verification calls against the
// vendor servers.
type Metrics interface {
	// RecordVerification records one verification attempt against a vendor
	// server. Outcome is a short stable label such as "ok", "invalid_receipt"
	// or "transport_error".
	RecordVerification(vendor, environment, outcome string, duration time.Duration)

	// RecordSandboxRedirect records a verification that had to be replayed
	// against the opposite App Store environment.
	RecordSandboxRedirect()
}

// NoopMetrics is a no-op implementation of the Metrics interface.
type NoopMetrics struct{}

func (n *NoopMetrics) RecordVerification(vendor, environment, outcome string, duration time.Duration) {
}
func (n *NoopMetrics) RecordSandboxRedirect() {}
