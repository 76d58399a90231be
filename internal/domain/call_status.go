package domain

import "strings"

// CallStatus is the display-case status stored on a call
type CallStatus string

const (
	CallStatusScheduled  CallStatus = "Scheduled"
	CallStatusInProgress CallStatus = "In Progress"
	CallStatusCompleted  CallStatus = "Completed"
	CallStatusCancelled  CallStatus = "Cancelled"
	CallStatusFailed     CallStatus = "Failed"
)

// CallOutcome is the display-case outcome of a call. The empty value means unset.
type CallOutcome string

const (
	CallOutcomeNone          CallOutcome = ""
	CallOutcomeSuccess       CallOutcome = "Success"
	CallOutcomeNeedFollowUp  CallOutcome = "Need Follow-up"
	CallOutcomeNoAnswer      CallOutcome = "No Answer"
	CallOutcomeNotInterested CallOutcome = "Not Interested"
	CallOutcomeOther         CallOutcome = "Other"
)

// Status tokens as submitted by clients
var callStatusByToken = map[string]CallStatus{
	"scheduled":   CallStatusScheduled,
	"in_progress": CallStatusInProgress,
	"completed":   CallStatusCompleted,
	"cancelled":   CallStatusCancelled,
	"failed":      CallStatusFailed,
}

var callOutcomeByToken = map[string]CallOutcome{
	"success":        CallOutcomeSuccess,
	"need_followup":  CallOutcomeNeedFollowUp,
	"no_answer":      CallOutcomeNoAnswer,
	"not_interested": CallOutcomeNotInterested,
	"other":          CallOutcomeOther,
}

// CallStatuses lists every status in workflow order
var CallStatuses = []CallStatus{
	CallStatusScheduled,
	CallStatusInProgress,
	CallStatusCompleted,
	CallStatusCancelled,
	CallStatusFailed,
}

// CallOutcomes lists every settable outcome
var CallOutcomes = []CallOutcome{
	CallOutcomeSuccess,
	CallOutcomeNeedFollowUp,
	CallOutcomeNoAnswer,
	CallOutcomeNotInterested,
	CallOutcomeOther,
}

// StatusKey lowercases s and removes spaces, so "In Progress" becomes "inprogress".
// It is the comparison form used for category checks.
func StatusKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "")
}

// ParseCallStatus maps a submitted token or display value to a CallStatus.
// Unknown or empty input falls back to Scheduled.
func ParseCallStatus(input string) CallStatus {
	if status, ok := LookupCallStatus(input); ok {
		return status
	}
	return CallStatusScheduled
}

// LookupCallStatus is ParseCallStatus without the fallback
func LookupCallStatus(input string) (CallStatus, bool) {
	trimmed := strings.TrimSpace(input)
	if status, ok := callStatusByToken[strings.ToLower(trimmed)]; ok {
		return status, true
	}
	key := StatusKey(trimmed)
	for _, status := range CallStatuses {
		if StatusKey(string(status)) == key {
			return status, true
		}
	}
	return "", false
}

// ParseCallOutcome maps a submitted token or display value to a CallOutcome.
// Unknown or empty input yields CallOutcomeNone.
func ParseCallOutcome(input string) CallOutcome {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return CallOutcomeNone
	}
	if outcome, ok := callOutcomeByToken[strings.ToLower(trimmed)]; ok {
		return outcome
	}
	key := StatusKey(trimmed)
	for _, outcome := range CallOutcomes {
		if StatusKey(string(outcome)) == key {
			return outcome
		}
	}
	return CallOutcomeNone
}

// Token returns the lowercase token form of the status ("In Progress" -> "in_progress")
func (s CallStatus) Token() string {
	for token, status := range callStatusByToken {
		if status == s {
			return token
		}
	}
	return ""
}

// IsValid checks if the status is one of the known values
func (s CallStatus) IsValid() bool {
	_, ok := callStatusByToken[s.Token()]
	return ok && s != ""
}

// IsScheduled reports whether the status compares equal to "scheduled"
func (s CallStatus) IsScheduled() bool {
	return StatusKey(string(s)) == "scheduled"
}

// IsActive reports whether the call still awaits action (scheduled or in progress)
func (s CallStatus) IsActive() bool {
	key := StatusKey(string(s))
	return key == "scheduled" || key == "inprogress"
}

// Token returns the lowercase token form of the outcome, or "" when unset
func (o CallOutcome) Token() string {
	for token, outcome := range callOutcomeByToken {
		if outcome == o {
			return token
		}
	}
	return ""
}

// IsSet reports whether an outcome has been recorded
func (o CallOutcome) IsSet() bool {
	return o != CallOutcomeNone
}
