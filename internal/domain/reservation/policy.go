package reservation

import "time"

// CancellationPolicy is the minimum lead time before a slot starts after
// which members can no longer cancel. The cutoff is configuration, not a
// constant; product history has carried both 1h and 3h values.
type CancellationPolicy struct {
	Cutoff time.Duration
}

func NewCancellationPolicy(cutoff time.Duration) CancellationPolicy {
	if cutoff < 0 {
		cutoff = 0
	}
	return CancellationPolicy{Cutoff: cutoff}
}

// WindowOpen reports whether a reservation for a slot starting at slotStart
// can still be cancelled at the given instant.
func (p CancellationPolicy) WindowOpen(now, slotStart time.Time) bool {
	return now.Before(slotStart.Add(-p.Cutoff))
}
