package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Job struct {
	ID           uuid.UUID       `json:"id"`
	UserID       uuid.UUID       `json:"user_id"`
	Type         string          `json:"type"` // "deck-generation"
	ReferenceID  uuid.UUID       `json:"reference_id"`
	ConfigJSON   json.RawMessage `json:"config"`
	Status       string          `json:"status"` // "pending" | "processing" | "completed" | "failed"
	RetryCount   int             `json:"retry_count"`
	MaxRetries   int             `json:"max_retries"`
	ErrorMessage *string         `json:"error_message"`
	CreatedAt    time.Time       `json:"created_at"`
	CompletedAt  *time.Time      `json:"completed_at"`
}

// WebSocket message types

type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// StatusUpdate reports which pipeline stage a generation job is in.
// Stages follow the attempt state machine:
// normalizing, analyzing, composing, generating, validating, assembled.
type StatusUpdate struct {
	JobID                     uuid.UUID `json:"job_id"`
	Stage                     string    `json:"stage"`
	EstimatedSecondsRemaining int       `json:"estimated_seconds_remaining,omitempty"`
}

type CompletedEvent struct {
	JobID  uuid.UUID `json:"job_id"`
	DeckID uuid.UUID `json:"deck_id"`
	// Saved is false when the deck was generated but persistence failed;
	// the deck payload still lets the client show the result.
	Saved bool  `json:"saved"`
	Deck  *Deck `json:"deck,omitempty"`
}

type ErrorEvent struct {
	JobID        uuid.UUID `json:"job_id"`
	ErrorCode    string    `json:"error_code"`
	ErrorMessage string    `json:"error_message"`
}

// API error envelope

type APIError struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id"`
}

type ErrorResponse struct {
	Error APIError `json:"error"`
}
