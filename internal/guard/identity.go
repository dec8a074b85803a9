package guard

import (
	"errors"
	"sync"
)

// ErrIdentityChangePending signals that an email change was intercepted and
// must be resubmitted unchanged to take effect.
var ErrIdentityChangePending = errors.New("identity change pending: submit again to confirm the new email")

// IdentityGuard implements the double-confirmation rule for email changes.
// The first save attempt that changes a user's email is intercepted; saving
// again with the same new email confirms it. Editing the email back to the
// stored value clears the pending state, as does submitting a different
// new email (which starts a fresh confirmation round).
type IdentityGuard struct {
	mu      sync.Mutex
	pending map[string]string // user id -> email awaiting confirmation
}

func NewIdentityGuard() *IdentityGuard {
	return &IdentityGuard{pending: make(map[string]string)}
}

// Confirm evaluates a profile save. It returns nil when the save may proceed
// and ErrIdentityChangePending when the email change needs a second submit.
func (g *IdentityGuard) Confirm(userID, storedEmail, submittedEmail string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if submittedEmail == storedEmail {
		delete(g.pending, userID)
		return nil
	}
	if g.pending[userID] == submittedEmail {
		delete(g.pending, userID)
		return nil
	}
	g.pending[userID] = submittedEmail
	return ErrIdentityChangePending
}

// Reset drops any pending confirmation for the user, e.g. when the edit
// form is closed.
func (g *IdentityGuard) Reset(userID string) {
	g.mu.Lock()
	delete(g.pending, userID)
	g.mu.Unlock()
}
