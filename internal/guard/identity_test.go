package guard

import (
	"errors"
	"testing"
)

func TestIdentityGuardUnchangedEmail(t *testing.T) {
	g := NewIdentityGuard()
	if err := g.Confirm("u1", "a@x.com", "a@x.com"); err != nil {
		t.Errorf("unchanged email should pass, got %v", err)
	}
}

func TestIdentityGuardDoubleConfirmation(t *testing.T) {
	g := NewIdentityGuard()

	// First submit with a new email is intercepted.
	if err := g.Confirm("u1", "a@x.com", "b@x.com"); !errors.Is(err, ErrIdentityChangePending) {
		t.Fatalf("first submit: err = %v, want ErrIdentityChangePending", err)
	}
	// Resubmitting the same new email confirms.
	if err := g.Confirm("u1", "a@x.com", "b@x.com"); err != nil {
		t.Fatalf("second submit: err = %v, want nil", err)
	}
	// The pending state was consumed; a fresh change is intercepted again.
	if err := g.Confirm("u1", "b@x.com", "c@x.com"); !errors.Is(err, ErrIdentityChangePending) {
		t.Errorf("third submit: err = %v, want ErrIdentityChangePending", err)
	}
}

func TestIdentityGuardRevertClearsPending(t *testing.T) {
	g := NewIdentityGuard()

	if err := g.Confirm("u1", "a@x.com", "b@x.com"); !errors.Is(err, ErrIdentityChangePending) {
		t.Fatal("expected interception")
	}
	// Reverting to the stored email clears the pending change.
	if err := g.Confirm("u1", "a@x.com", "a@x.com"); err != nil {
		t.Fatalf("revert: err = %v, want nil", err)
	}
	// The earlier candidate must need a fresh round again.
	if err := g.Confirm("u1", "a@x.com", "b@x.com"); !errors.Is(err, ErrIdentityChangePending) {
		t.Errorf("after revert: err = %v, want ErrIdentityChangePending", err)
	}
}

func TestIdentityGuardDifferentCandidateRestarts(t *testing.T) {
	g := NewIdentityGuard()

	if err := g.Confirm("u1", "a@x.com", "b@x.com"); !errors.Is(err, ErrIdentityChangePending) {
		t.Fatal("expected interception")
	}
	// A different candidate starts a fresh confirmation round.
	if err := g.Confirm("u1", "a@x.com", "c@x.com"); !errors.Is(err, ErrIdentityChangePending) {
		t.Fatalf("new candidate: err = %v, want ErrIdentityChangePending", err)
	}
	if err := g.Confirm("u1", "a@x.com", "c@x.com"); err != nil {
		t.Errorf("confirming new candidate: err = %v, want nil", err)
	}
}

func TestIdentityGuardReset(t *testing.T) {
	g := NewIdentityGuard()

	if err := g.Confirm("u1", "a@x.com", "b@x.com"); !errors.Is(err, ErrIdentityChangePending) {
		t.Fatal("expected interception")
	}
	g.Reset("u1")
	// After a reset the same candidate is intercepted again.
	if err := g.Confirm("u1", "a@x.com", "b@x.com"); !errors.Is(err, ErrIdentityChangePending) {
		t.Errorf("after reset: err = %v, want ErrIdentityChangePending", err)
	}
}

func TestIdentityGuardPerUserState(t *testing.T) {
	g := NewIdentityGuard()

	if err := g.Confirm("u1", "a@x.com", "b@x.com"); !errors.Is(err, ErrIdentityChangePending) {
		t.Fatal("expected interception for u1")
	}
	// Another user's pending state is independent.
	if err := g.Confirm("u2", "a@x.com", "b@x.com"); !errors.Is(err, ErrIdentityChangePending) {
		t.Errorf("u2 first submit: err = %v, want ErrIdentityChangePending", err)
	}
	if err := g.Confirm("u1", "a@x.com", "b@x.com"); err != nil {
		t.Errorf("u1 second submit: err = %v, want nil", err)
	}
}
