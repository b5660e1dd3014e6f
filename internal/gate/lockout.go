package gate

import (
	"fmt"
	"time"
)

// freeAttempts is how many consecutive failures are tolerated before the
// backoff window starts growing.
const freeAttempts = 3

// LockedOutError reports that PIN entry is temporarily refused. The wait is
// how long until the next attempt is accepted.
type LockedOutError struct {
	Wait time.Duration
}

func (e *LockedOutError) Error() string {
	return fmt.Sprintf("too many failed attempts, retry in %s", e.Wait.Round(time.Second))
}

// LockoutPolicy is an optional brute-force guard wrapped around PIN
// verification. It counts consecutive failures and, past freeAttempts,
// imposes an exponentially growing wait window. It does not change the
// verification contract itself: the PIN comparison stays pure, the policy
// only decides whether an attempt is accepted right now.
//
// The policy is in-memory only; a process restart clears it, like the
// session itself.
type LockoutPolicy struct {
	base time.Duration
	max  time.Duration

	failures int
	until    time.Time

	// now is a test seam.
	now func() time.Time
}

// NewLockoutPolicy builds a policy with the given initial and maximum wait
// windows. base must be positive.
func NewLockoutPolicy(base, max time.Duration) *LockoutPolicy {
	return &LockoutPolicy{base: base, max: max, now: time.Now}
}

// RemainingWait returns how long until the next attempt is accepted, or
// zero when attempts are currently allowed.
func (p *LockoutPolicy) RemainingWait() time.Duration {
	if wait := p.until.Sub(p.now()); wait > 0 {
		return wait
	}
	return 0
}

// Fail records a failed attempt and, once the free attempts are exhausted,
// arms the next wait window: base doubled per additional failure, capped
// at max.
func (p *LockoutPolicy) Fail() {
	p.failures++
	if p.failures < freeAttempts {
		return
	}

	wait := p.base << uint(p.failures-freeAttempts)
	if wait > p.max || wait <= 0 {
		wait = p.max
	}
	p.until = p.now().Add(wait)
}

// Reset clears the failure history after a successful verification.
func (p *LockoutPolicy) Reset() {
	p.failures = 0
	p.until = time.Time{}
}
