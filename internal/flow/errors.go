package flow

import "fmt"

// ErrDuplicateFlow indicates a flow id is already registered
type ErrDuplicateFlow struct {
	FlowID string
}

func (e *ErrDuplicateFlow) Error() string {
	return fmt.Sprintf("flow already exists: %s", e.FlowID)
}

// ErrFlowNotFound indicates no flow is registered under the id
type ErrFlowNotFound struct {
	FlowID string
}

func (e *ErrFlowNotFound) Error() string {
	return fmt.Sprintf("flow not found: %s", e.FlowID)
}

// ErrInvalidState indicates an operation is not valid for the flow's
// current status, e.g. resuming a flow that is not paused.
type ErrInvalidState struct {
	FlowID string
	Status Status
}

func (e *ErrInvalidState) Error() string {
	return fmt.Sprintf("flow %s is not paused (status: %s)", e.FlowID, e.Status)
}
