package primary

import "context"

// TransitionService defines the primary port for sprint status transitions.
type TransitionService interface {
	// Transition validates status and writes it together with the derived role.
	Transition(ctx context.Context, status string) (*TransitionResponse, error)

	// ListTransitions returns every valid status with its derived role.
	ListTransitions() []StatusRole
}

// TransitionResponse contains the before and after field values.
type TransitionResponse struct {
	PreviousStatus string
	PreviousRole   string
	Status         string
	Role           string
}

// StatusRole pairs a status with the role it dispatches.
type StatusRole struct {
	Status string
	Role   string
}
