// Package match models the lifecycle of a live match: the status enum the
// league records and the state machine the scorer console mirrors.
package match

// Status is the phase of a match. The single-letter codes are the league
// API's wire representation.
type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusFirstHalf  Status = "first_half"
	StatusHalfTime   Status = "half_time"
	StatusSecondHalf Status = "second_half"
	// StatusTerminated means regulation play has ended but the record is not
	// closed yet; a penalty shootout may still be registered.
	StatusTerminated Status = "terminated"
	StatusFinished   Status = "finished"
	StatusSuspended  Status = "suspended"
	StatusPostponed  Status = "postponed"
	// StatusUnknown is the defensive catch-all for statuses this client does
	// not recognize.
	StatusUnknown Status = "unknown"
)

var statusCodes = map[Status]string{
	StatusScheduled:  "P",
	StatusFirstHalf:  "C1",
	StatusHalfTime:   "E",
	StatusSecondHalf: "C2",
	StatusTerminated: "T",
	StatusFinished:   "F",
	StatusSuspended:  "S",
	StatusPostponed:  "A",
	StatusUnknown:    "I",
}

// Code returns the league API wire code for the status.
func (s Status) Code() string {
	if code, ok := statusCodes[s]; ok {
		return code
	}
	return statusCodes[StatusUnknown]
}

// StatusFromCode maps a league API wire code to a Status. Unrecognized codes
// map to StatusUnknown rather than failing.
func StatusFromCode(code string) Status {
	for status, c := range statusCodes {
		if c == code {
			return status
		}
	}
	return StatusUnknown
}

// IsRunningHalf reports whether the clock is expected to be ticking.
func (s Status) IsRunningHalf() bool {
	return s == StatusFirstHalf || s == StatusSecondHalf
}

// Terminal reports whether no further clock activity is possible.
func (s Status) Terminal() bool {
	return s == StatusFinished || s == StatusSuspended || s == StatusPostponed
}

// AllowsIncidentEdits reports whether incidents may be created, edited or
// deleted while the match is in this status.
func (s Status) AllowsIncidentEdits() bool {
	switch s {
	case StatusFirstHalf, StatusHalfTime, StatusSecondHalf, StatusTerminated:
		return true
	}
	return false
}

// AllowsShootout reports whether a penalty shootout may be registered in this
// status. The tied-score and competition-format checks are the caller's.
func (s Status) AllowsShootout() bool {
	return s == StatusTerminated
}
