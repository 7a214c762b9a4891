package models

import "time"

// Stage is the per-user conversational state the presentation layer drives.
type Stage int

const (
	StageAwaitingRequest Stage = iota
	StageAwaitingRating
	StageAwaitingExplanation
	StageCompleted
)

func (s Stage) String() string {
	switch s {
	case StageAwaitingRequest:
		return "awaiting_request"
	case StageAwaitingRating:
		return "awaiting_rating"
	case StageAwaitingExplanation:
		return "awaiting_explanation"
	case StageCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Session is one user's active conversation.
type Session struct {
	UserID       string
	Stage        Stage
	RequestID    string
	RequestText  string
	LastResult   *RecommendationResult
	PendingScore int
	UpdatedAt    time.Time
}
