package signal

import (
	"errors"
	"fmt"
	"time"
)

// EventKind identifies the user activity that triggered an evaluation.
type EventKind string

const (
	KindContentCreated EventKind = "content_created"
	KindReactionGiven  EventKind = "reaction_given"
	KindCommentCreated EventKind = "comment_created"
	KindLogin          EventKind = "login"
	KindProfileUpdated EventKind = "profile_updated"

	// KindOther is the label used for kinds this service does not know about.
	KindOther EventKind = "other"
)

var knownKinds = map[EventKind]struct{}{
	KindContentCreated: {},
	KindReactionGiven:  {},
	KindCommentCreated: {},
	KindLogin:          {},
	KindProfileUpdated: {},
}

// ErrInvalidEvent is returned for activity events that cannot be evaluated.
var ErrInvalidEvent = errors.New("invalid activity event")

// Known reports whether k is one of the predefined kinds.
func (k EventKind) Known() bool {
	_, ok := knownKinds[k]
	return ok
}

// Label returns the kind, or KindOther for unknown kinds. Used as a metrics label.
func (k EventKind) Label() string {
	if k.Known() {
		return string(k)
	}
	return string(KindOther)
}

// ActivityEvent is a committed user action reported by the CRUD layer.
// The kind does not change what gets evaluated; any activity may move any counter.
type ActivityEvent struct {
	UserID    string    `json:"userId"`
	Kind      EventKind `json:"kind"`
	Timestamp time.Time `json:"timestamp"`
}

// NewActivityEvent creates an event. A zero timestamp is replaced with the current time.
func NewActivityEvent(userID string, kind EventKind, timestamp time.Time) ActivityEvent {
	e := ActivityEvent{
		UserID:    userID,
		Kind:      kind,
		Timestamp: timestamp,
	}
	return e.Normalize(time.Now())
}

// Normalize fills a zero timestamp with now.
func (e ActivityEvent) Normalize(now time.Time) ActivityEvent {
	if e.Timestamp.IsZero() {
		e.Timestamp = now
	}
	return e
}

// Validate rejects events without a user.
func (e ActivityEvent) Validate() error {
	if e.UserID == "" {
		return fmt.Errorf("%w: user ID is empty", ErrInvalidEvent)
	}
	return nil
}
