package models

// ScoreStatus is the reported state of the external event
type ScoreStatus string

const (
	// ScoreStatusPre indicates the event has not started
	ScoreStatusPre ScoreStatus = "pre"

	// ScoreStatusIn indicates the event is in progress
	ScoreStatusIn ScoreStatus = "in"

	// ScoreStatusPost indicates the event has finished
	ScoreStatusPost ScoreStatus = "post"
)

// ScoreUpdate is the tuple pushed in by the live-score collaborator or typed
// in by the host. The core only consumes these; it never polls for them.
type ScoreUpdate struct {
	// TeamAScore is team A's score; never negative
	TeamAScore int

	// TeamBScore is team B's score; never negative
	TeamBScore int

	// Period is the current game period
	Period int

	// Status is the reported event state
	Status ScoreStatus
}
