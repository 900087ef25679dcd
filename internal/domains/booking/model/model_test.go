package model_test

import (
	"roamalto/internal/domains/booking/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allStatuses := []string{
		model.StatusNew,
		model.StatusConsulting,
		model.StatusDocs,
		model.StatusBooked,
		model.StatusClosed,
	}

	allowed := map[[2]string]bool{
		{model.StatusNew, model.StatusConsulting}:  true,
		{model.StatusConsulting, model.StatusDocs}: true,
		{model.StatusDocs, model.StatusBooked}:     true,
		{model.StatusDocs, model.StatusClosed}:     true,
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			got := model.CanTransition(from, to)
			want := allowed[[2]string{from, to}]

			assert.Equalf(t, want, got, "transition %s -> %s", from, to)
		}
	}
}

func TestCanTransition_TerminalStates(t *testing.T) {
	for _, terminal := range []string{model.StatusBooked, model.StatusClosed} {
		assert.Empty(t, model.AllowedTransitions[terminal], "terminal status %s must have no outgoing edges", terminal)
	}
}

func TestCanTransition_UnknownStatus(t *testing.T) {
	assert.False(t, model.CanTransition("cancelled", model.StatusNew))
	assert.False(t, model.CanTransition(model.StatusNew, "cancelled"))
}
