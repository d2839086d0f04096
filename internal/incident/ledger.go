package incident

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateID = errors.New("incident id already in ledger")
	ErrNotFound    = errors.New("incident not found")
)

// Ledger is the ordered collection of incidents for one match. Insertion
// order is preserved; it breaks ties when display groups share a minute.
type Ledger struct {
	entries []Incident
}

// NewLedger builds a ledger from entries in the given order. Entries with a
// duplicate id are rejected.
func NewLedger(entries ...Incident) (*Ledger, error) {
	l := &Ledger{}
	for _, in := range entries {
		if err := l.Insert(in); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Insert appends an incident. The id must not already be present.
func (l *Ledger) Insert(in Incident) error {
	id := in.Common().ID
	if id == "" {
		return fmt.Errorf("incident has no id")
	}
	if _, ok := l.indexOf(id); ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}
	l.entries = append(l.entries, in)
	return nil
}

// Replace swaps the incident with the given id in place, keeping its ledger
// position. The replacement may carry a different id (a confirmed server id
// taking over a temporary one).
func (l *Ledger) Replace(id string, in Incident) error {
	i, ok := l.indexOf(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	l.entries[i] = in
	return nil
}

// Remove deletes the incident with the given id.
func (l *Ledger) Remove(id string) error {
	i, ok := l.indexOf(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	l.entries = append(l.entries[:i], l.entries[i+1:]...)
	return nil
}

// Get returns the incident with the given id.
func (l *Ledger) Get(id string) (Incident, bool) {
	i, ok := l.indexOf(id)
	if !ok {
		return nil, false
	}
	return l.entries[i], true
}

// Incidents returns the entries in insertion order. The slice is a copy; the
// incident values themselves are immutable value types.
func (l *Ledger) Incidents() []Incident {
	out := make([]Incident, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries.
func (l *Ledger) Len() int { return len(l.entries) }

// Clone returns an independent copy of the ledger. Because every incident
// variant is a value type, the copy shares no mutable state with the
// original; restoring a clone restores the exact prior contents.
func (l *Ledger) Clone() *Ledger {
	return &Ledger{entries: l.Incidents()}
}

func (l *Ledger) indexOf(id string) (int, bool) {
	for i, in := range l.entries {
		if in.Common().ID == id {
			return i, true
		}
	}
	return 0, false
}
