package farm

import (
	"errors"
	"fmt"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrPrecondition = errors.New("precondition failed")
	ErrNetwork      = errors.New("network error")

	ErrNoPriceFeed           = errors.New("no price feed")
	ErrUnknownRewardType     = errors.New("unknown reward coin type")
	ErrUnbalancedTransaction = errors.New("unbalanced transaction")
	// ErrSuperseded is returned by a resolution whose key changed while it was running
	ErrSuperseded = errors.New("resolution superseded by a newer key")
)

var (
	ErrWalletNotConnected  = &PreconditionError{Reason: "Wallet not connected"}
	ErrNoAccount           = &PreconditionError{Reason: "No farm account found"}
	ErrOperationInProgress = &PreconditionError{Reason: "Another operation is in progress"}
	ErrFarmNotLoaded       = &PreconditionError{Reason: "Farm not loaded"}
)

// ValidationError is returned before any network call when user input is unusable
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string {
	return e.Reason
}

func (e *PreconditionError) Is(target error) bool {
	return target == ErrPrecondition
}

// NetworkError wraps a failure of a collaborator call, Op names the operation that was running
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}
