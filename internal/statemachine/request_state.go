package statemachine

import (
	"fmt"
	"strings"

	"foodbridge/internal/models/db_models"
)

// Transition is one allowed status change. Only the addressed counterparty
// of a request ever performs it.
type Transition struct {
	From db_models.RequestStatus
	To   db_models.RequestStatus
}

// validTransitions is the whole lifecycle: pending is the only entry point,
// rejected and completed are terminal.
var validTransitions = []Transition{
	{From: db_models.StatusPending, To: db_models.StatusAccepted},
	{From: db_models.StatusPending, To: db_models.StatusRejected},
	{From: db_models.StatusAccepted, To: db_models.StatusCompleted},
}

var transitionSet = func() map[Transition]bool {
	m := make(map[Transition]bool, len(validTransitions))
	for _, t := range validTransitions {
		m[t] = true
	}
	return m
}()

// ParseStatus normalizes a status coming from a client. "approved" is an
// alias for accepted.
func ParseStatus(s string) (db_models.RequestStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return db_models.StatusPending, true
	case "accepted", "approved":
		return db_models.StatusAccepted, true
	case "rejected":
		return db_models.StatusRejected, true
	case "completed":
		return db_models.StatusCompleted, true
	}
	return "", false
}

// ValidTransitionsFrom returns the statuses reachable from status.
func ValidTransitionsFrom(status db_models.RequestStatus) []db_models.RequestStatus {
	var next []db_models.RequestStatus
	for _, t := range validTransitions {
		if t.From == status {
			next = append(next, t.To)
		}
	}
	return next
}

func IsTerminal(status db_models.RequestStatus) bool {
	return len(ValidTransitionsFrom(status)) == 0
}

// CanTransition returns nil when from → to is allowed.
func CanTransition(from, to db_models.RequestStatus) error {
	if transitionSet[Transition{From: from, To: to}] {
		return nil
	}
	return fmt.Errorf("%s → %s is not allowed, valid transitions from %s: %s",
		from, to, from, describeValidFrom(from))
}

func describeValidFrom(status db_models.RequestStatus) string {
	next := ValidTransitionsFrom(status)
	if len(next) == 0 {
		return "none (terminal state)"
	}
	parts := make([]string, len(next))
	for i, s := range next {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}

// GetAllTransitions returns a copy of every allowed transition.
func GetAllTransitions() []Transition {
	out := make([]Transition, len(validTransitions))
	copy(out, validTransitions)
	return out
}
