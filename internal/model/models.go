package model

import (
	"encoding/json"
	"time"
)

// Answer values with a dedicated display label. Validation does not
// enumerate answers: any non-empty value is accepted and rendered as-is.
const (
	AnswerYes  = "yes"
	AnswerNo   = "no"
	AnswerExit = "exit"
)

// Dispatch statuses recorded for every email attempt
const (
	StatusSent    = "sent"
	StatusSkipped = "skipped"
	StatusFailed  = "failed"
)

// Expected, non-fatal dispatch outcomes
const (
	ErrMissingRecipient  = "missing_recipient"
	ErrSMTPNotConfigured = "smtp_not_configured"
)

// Reason texts applied when the caller supplies none
const (
	ReasonDefaultExit   = "Parti sans répondre"
	ReasonDefaultAnswer = "Réponse donnée par l'utilisateur"
)

// ResponseRecord represents a single recorded survey response
type ResponseRecord struct {
	ID        string          `json:"id"`
	To        string          `json:"to"`
	FromEmail string          `json:"fromEmail,omitempty"`
	Answer    string          `json:"answer"`
	NoCompt   json.RawMessage `json:"noCompt,omitempty"`
	Reason    string          `json:"reason,omitempty"`
	Date      string          `json:"date"`
	Migrated  bool            `json:"migrated,omitempty"`
}

// EmailArchiveRecord records a single email dispatch attempt and its outcome
type EmailArchiveRecord struct {
	ID         string  `json:"id"`
	ResponseID string  `json:"responseId"`
	To         *string `json:"to"`
	Subject    string  `json:"subject"`
	Status     string  `json:"status"`
	Error      *string `json:"error"`
	MessageID  *string `json:"messageId"`
	Date       string  `json:"date"`
}

// Archive is the root persisted document. Both sequences are append-only
// and keep insertion order.
type Archive struct {
	Responses    []ResponseRecord     `json:"responses"`
	EmailArchive []EmailArchiveRecord `json:"emailArchive"`
}

// NewArchive returns an empty canonical archive
func NewArchive() Archive {
	return Archive{
		Responses:    []ResponseRecord{},
		EmailArchive: []EmailArchiveRecord{},
	}
}

// SubmitRequest represents the request body for POST /api/respond
type SubmitRequest struct {
	To        string          `json:"to"`
	FromEmail string          `json:"fromEmail"`
	Answer    string          `json:"answer"`
	NoCompt   json.RawMessage `json:"noCompt"`
	Reason    string          `json:"reason"`
}

// SubmitResponse represents the success response for POST /api/respond.
// Email carries the dispatch status, which can be "skipped" or "failed"
// even when the submission itself was persisted.
type SubmitResponse struct {
	Success bool   `json:"success"`
	Email   string `json:"email"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	SMTP      string    `json:"smtp"`
	Responses int       `json:"responses"`
	Emails    int       `json:"emails"`
}
