package airlockrequest_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/enclaveworks/enclave-sdk/modules/airlock/domain/airlockrequest"
)

func TestIsLegalTransition_Exhaustive(t *testing.T) {
	legal := map[[2]airlockrequest.Status]bool{
		{airlockrequest.StatusDraft, airlockrequest.StatusSubmitted}:                       true,
		{airlockrequest.StatusDraft, airlockrequest.StatusCancelled}:                       true,
		{airlockrequest.StatusSubmitted, airlockrequest.StatusInReview}:                    true,
		{airlockrequest.StatusSubmitted, airlockrequest.StatusCancelled}:                   true,
		{airlockrequest.StatusInReview, airlockrequest.StatusApprovalInProgress}:           true,
		{airlockrequest.StatusInReview, airlockrequest.StatusRejectionInProgress}:          true,
		{airlockrequest.StatusInReview, airlockrequest.StatusCancelled}:                    true,
		{airlockrequest.StatusInReview, airlockrequest.StatusBlocked}:                      true,
		{airlockrequest.StatusApprovalInProgress, airlockrequest.StatusApproved}:           true,
		{airlockrequest.StatusRejectionInProgress, airlockrequest.StatusRejected}:          true,
	}

	for _, from := range airlockrequest.AllStatuses() {
		for _, to := range airlockrequest.AllStatuses() {
			want := legal[[2]airlockrequest.Status{from, to}]
			t.Run(fmt.Sprintf("%s_to_%s", from, to), func(t *testing.T) {
				assert.Equal(t, want, airlockrequest.IsLegalTransition(from, to))
			})
		}
	}
}

func TestIsLegalTransition_TerminalStatesHaveNoExits(t *testing.T) {
	terminal := []airlockrequest.Status{
		airlockrequest.StatusApproved,
		airlockrequest.StatusRejected,
		airlockrequest.StatusCancelled,
		airlockrequest.StatusBlocked,
	}
	for _, from := range terminal {
		for _, to := range airlockrequest.AllStatuses() {
			assert.False(t, airlockrequest.IsLegalTransition(from, to),
				"expected %s to be terminal, but %s -> %s is legal", from, from, to)
		}
	}
}

func TestIsLegalTransition_NoSelfTransitions(t *testing.T) {
	for _, status := range airlockrequest.AllStatuses() {
		assert.False(t, airlockrequest.IsLegalTransition(status, status))
	}
}

func TestIsLegalTransition_UnknownStatus(t *testing.T) {
	assert.False(t, airlockrequest.IsLegalTransition(airlockrequest.Status("bogus"), airlockrequest.StatusDraft))
	assert.False(t, airlockrequest.IsLegalTransition(airlockrequest.StatusDraft, airlockrequest.Status("bogus")))
}
