package statemachine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"foodbridge/internal/models/db_models"
)

func TestCanTransition(t *testing.T) {
	statuses := []db_models.RequestStatus{
		db_models.StatusPending,
		db_models.StatusAccepted,
		db_models.StatusRejected,
		db_models.StatusCompleted,
	}
	allowed := map[Transition]bool{
		{From: db_models.StatusPending, To: db_models.StatusAccepted}:   true,
		{From: db_models.StatusPending, To: db_models.StatusRejected}:   true,
		{From: db_models.StatusAccepted, To: db_models.StatusCompleted}: true,
	}

	for _, from := range statuses {
		for _, to := range statuses {
			err := CanTransition(from, to)
			if allowed[Transition{From: from, To: to}] {
				assert.NoError(t, err, "%s → %s", from, to)
			} else {
				assert.Error(t, err, "%s → %s", from, to)
			}
		}
	}
}

func TestNothingLeadsBackToPending(t *testing.T) {
	for _, tr := range GetAllTransitions() {
		assert.NotEqual(t, db_models.StatusPending, tr.To)
	}
}

func TestTerminalStates(t *testing.T) {
	assert.True(t, IsTerminal(db_models.StatusRejected))
	assert.True(t, IsTerminal(db_models.StatusCompleted))
	assert.False(t, IsTerminal(db_models.StatusPending))
	assert.False(t, IsTerminal(db_models.StatusAccepted))

	err := CanTransition(db_models.StatusCompleted, db_models.StatusPending)
	assert.ErrorContains(t, err, "terminal state")
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want db_models.RequestStatus
		ok   bool
	}{
		{"pending", db_models.StatusPending, true},
		{"Approved", db_models.StatusAccepted, true},
		{" accepted ", db_models.StatusAccepted, true},
		{"REJECTED", db_models.StatusRejected, true},
		{"completed", db_models.StatusCompleted, true},
		{"cancelled", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseStatus(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
