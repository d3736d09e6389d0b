package service

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"survey-response-service/internal/idgen"
	"survey-response-service/internal/mailer"
	"survey-response-service/internal/metrics"
	"survey-response-service/internal/model"
	"survey-response-service/internal/store"
)

// ErrInvalidData reports a submission missing a required field
var ErrInvalidData = errors.New("invalid data")

// Notifier dispatches a notification email for a response entry
type Notifier interface {
	Notify(entry model.ResponseRecord) mailer.Outcome
}

// ResponseService orchestrates validation, notification and persistence
// of survey submissions
type ResponseService struct {
	store    store.Store
	notifier Notifier
	metrics  *metrics.Metrics

	// serializes the read-modify-write cycle over the shared archive
	mu sync.Mutex
}

// NewResponseService creates the submission orchestrator
func NewResponseService(s store.Store, n Notifier, m *metrics.Metrics) *ResponseService {
	return &ResponseService{store: s, notifier: n, metrics: m}
}

// Submit records a survey response and attempts to notify the respondent.
// It returns the dispatch status; persistence succeeding is independent of
// email succeeding, so "skipped" and "failed" still mean the submission
// was recorded.
func (s *ResponseService) Submit(req model.SubmitRequest) (string, error) {
	start := time.Now()
	defer func() {
		s.metrics.SubmitDuration.Observe(time.Since(start).Seconds())
	}()

	if strings.TrimSpace(req.To) == "" || strings.TrimSpace(req.Answer) == "" {
		s.metrics.SubmissionsRejected.Inc()
		return "", ErrInvalidData
	}

	entry := model.ResponseRecord{
		ID:        idgen.CreateID(),
		To:        req.To,
		FromEmail: req.FromEmail,
		Answer:    req.Answer,
		NoCompt:   req.NoCompt,
		Reason:    req.Reason,
		Date:      time.Now().UTC().Format(time.RFC3339),
	}
	if entry.Reason == "" {
		if entry.Answer == model.AnswerExit {
			entry.Reason = model.ReasonDefaultExit
		} else {
			entry.Reason = model.ReasonDefaultAnswer
		}
	}

	// The dispatch attempt completes before anything reaches durable
	// storage, so every persisted response carries its outcome.
	outcome := s.notifier.Notify(entry)
	emailRecord := model.EmailArchiveRecord{
		ID:         idgen.CreateID(),
		ResponseID: entry.ID,
		To:         optional(entry.FromEmail),
		Subject:    outcome.Subject,
		Status:     outcome.Status,
		Error:      optional(outcome.Error),
		MessageID:  optional(outcome.MessageID),
		Date:       time.Now().UTC().Format(time.RFC3339),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	archive := s.store.Read()
	archive.Responses = append(archive.Responses, entry)
	archive.EmailArchive = append(archive.EmailArchive, emailRecord)
	if err := s.store.Write(archive); err != nil {
		return outcome.Status, fmt.Errorf("failed to persist archive: %w", err)
	}

	s.metrics.SubmissionsReceived.Inc()
	s.metrics.EmailDispatches.WithLabelValues(outcome.Status).Inc()
	logrus.WithFields(logrus.Fields{
		"id":    entry.ID,
		"to":    entry.To,
		"email": outcome.Status,
	}).Info("Recorded survey response")

	return outcome.Status, nil
}

// List returns the full canonical archive
func (s *ResponseService) List() model.Archive {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Read()
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
