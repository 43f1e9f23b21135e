package economy

import (
	"errors"
	"fmt"
	"time"
)

// Errors shared by the economy engines. Callers branch with errors.Is /
// errors.As; the presentation layer turns these into user-facing messages.
var (
	ErrNotFound          = errors.New("not found")
	ErrLocked            = errors.New("character is locked")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAlreadyRedeemed   = errors.New("code already redeemed")
	ErrExpired           = errors.New("code expired")
	ErrMaxUsesReached    = errors.New("code max uses reached")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrUnsupported       = errors.New("unsupported reward type")
	ErrSelfTransfer      = errors.New("cannot transfer to yourself")
)

// CooldownActiveError is returned when an action is throttled. Remaining is
// how long the caller has to wait.
type CooldownActiveError struct {
	Action    string
	Remaining time.Duration
}

func (e *CooldownActiveError) Error() string {
	return fmt.Sprintf("cooldown active for %s: %s remaining", e.Action, e.Remaining.Round(time.Second))
}

// StorageError marks a multi-step operation that failed after its first
// mutating call. Compensated reports whether the best-effort rollback
// succeeded; when false the operation may be partially applied and the error
// has already been logged for operator follow-up.
type StorageError struct {
	Op          string
	Compensated bool
	Err         error
}

func (e *StorageError) Error() string {
	if e.Compensated {
		return fmt.Sprintf("%s: %v (rolled back)", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v (may be partially applied)", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
