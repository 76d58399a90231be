package domain_test

import (
	"testing"

	"github.com/straye-as/calltracker-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestParseCallStatus(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected domain.CallStatus
	}{
		{"scheduled token", "scheduled", domain.CallStatusScheduled},
		{"in_progress token", "in_progress", domain.CallStatusInProgress},
		{"completed token", "completed", domain.CallStatusCompleted},
		{"cancelled token", "cancelled", domain.CallStatusCancelled},
		{"failed token", "failed", domain.CallStatusFailed},
		{"display value is kept", "In Progress", domain.CallStatusInProgress},
		{"display value without space", "inprogress", domain.CallStatusInProgress},
		{"uppercase token", "COMPLETED", domain.CallStatusCompleted},
		{"surrounding whitespace", "  failed ", domain.CallStatusFailed},
		{"unknown falls back to scheduled", "bogus", domain.CallStatusScheduled},
		{"empty falls back to scheduled", "", domain.CallStatusScheduled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, domain.ParseCallStatus(tt.input))
		})
	}
}

func TestParseCallStatus_Idempotent(t *testing.T) {
	for _, status := range domain.CallStatuses {
		once := domain.ParseCallStatus(string(status))
		twice := domain.ParseCallStatus(string(once))
		assert.Equal(t, status, once)
		assert.Equal(t, once, twice)
	}
}

func TestCallStatus_TokenRoundTrip(t *testing.T) {
	for _, status := range domain.CallStatuses {
		t.Run(string(status), func(t *testing.T) {
			assert.Equal(t, status, domain.ParseCallStatus(status.Token()))
			assert.True(t, status.IsValid())
		})
	}
	assert.False(t, domain.CallStatus("Bogus").IsValid())
	assert.False(t, domain.CallStatus("").IsValid())
}

func TestLookupCallStatus(t *testing.T) {
	status, ok := domain.LookupCallStatus("cancelled")
	assert.True(t, ok)
	assert.Equal(t, domain.CallStatusCancelled, status)

	_, ok = domain.LookupCallStatus("postponed")
	assert.False(t, ok)
}

func TestParseCallOutcome(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected domain.CallOutcome
	}{
		{"success token", "success", domain.CallOutcomeSuccess},
		{"need_followup token", "need_followup", domain.CallOutcomeNeedFollowUp},
		{"no_answer token", "no_answer", domain.CallOutcomeNoAnswer},
		{"not_interested token", "not_interested", domain.CallOutcomeNotInterested},
		{"other token", "other", domain.CallOutcomeOther},
		{"display value is kept", "Need Follow-up", domain.CallOutcomeNeedFollowUp},
		{"unknown is unset", "maybe", domain.CallOutcomeNone},
		{"empty is unset", "", domain.CallOutcomeNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, domain.ParseCallOutcome(tt.input))
		})
	}
}

func TestCallOutcome_TokenRoundTrip(t *testing.T) {
	for _, outcome := range domain.CallOutcomes {
		assert.Equal(t, outcome, domain.ParseCallOutcome(outcome.Token()))
		assert.True(t, outcome.IsSet())
	}
	assert.False(t, domain.CallOutcomeNone.IsSet())
	assert.Equal(t, "", domain.CallOutcomeNone.Token())
}

func TestStatusKey(t *testing.T) {
	assert.Equal(t, "inprogress", domain.StatusKey("In Progress"))
	assert.Equal(t, "scheduled", domain.StatusKey("Scheduled"))
	assert.Equal(t, "needfollow-up", domain.StatusKey("Need Follow-up"))
}

func TestCallStatus_Categories(t *testing.T) {
	tests := []struct {
		status    domain.CallStatus
		scheduled bool
		active    bool
	}{
		{domain.CallStatusScheduled, true, true},
		{domain.CallStatusInProgress, false, true},
		{domain.CallStatusCompleted, false, false},
		{domain.CallStatusCancelled, false, false},
		{domain.CallStatusFailed, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.scheduled, tt.status.IsScheduled())
			assert.Equal(t, tt.active, tt.status.IsActive())
		})
	}
}
