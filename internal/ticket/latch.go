package ticket

import (
	"sync"
	"time"
)

// CloseGraceWindow is how long a close request stays cancellable before the
// channel is deleted.
const CloseGraceWindow = 5 * time.Second

// Latch is a single-fire gate. Exactly one caller of TryFire wins; the loser
// sees false and must treat its action as a no-op. It resolves the race
// between close-cancel and grace-window expiry.
type Latch struct {
	mu    sync.Mutex
	fired bool
}

func (l *Latch) TryFire() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fired {
		return false
	}
	l.fired = true
	return true
}

// CloseRequest is one pending ticket closure. Cancel is usable only by the
// original requester.
type CloseRequest struct {
	ChannelID   string
	RequestedBy string // user ID of the requester
	Window      time.Duration

	latch     Latch
	prevState State
}

// Cancel aborts the closure. It reports false when the caller is not the
// requester or the window already expired.
func (r *CloseRequest) Cancel(userID string) bool {
	if userID != r.RequestedBy {
		return false
	}
	return r.latch.TryFire()
}

// Expire claims the deletion side of the race. It reports true exactly once,
// and never after a successful Cancel.
func (r *CloseRequest) Expire() bool {
	return r.latch.TryFire()
}
