package service

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"survey-response-service/internal/mailer"
	"survey-response-service/internal/metrics"
	"survey-response-service/internal/model"
	"survey-response-service/internal/store"
)

// stubNotifier returns a fixed outcome and records what it was asked to send
type stubNotifier struct {
	outcome mailer.Outcome
	calls   int
	last    model.ResponseRecord
}

func (s *stubNotifier) Notify(entry model.ResponseRecord) mailer.Outcome {
	s.calls++
	s.last = entry
	return s.outcome
}

// failingStore reads fine but refuses every write
type failingStore struct {
	archive model.Archive
}

func (s *failingStore) Read() model.Archive { return s.archive }

func (s *failingStore) Write(archive model.Archive) error { return errors.New("disk full") }

func newTestService(n Notifier) (*ResponseService, *store.MemoryStore) {
	st := store.NewMemoryStore()
	m := metrics.NewMetrics(prometheus.NewRegistry())
	return NewResponseService(st, n, m), st
}

func TestSubmitPersistsResponseAndEmailRecord(t *testing.T) {
	notifier := &stubNotifier{outcome: mailer.Outcome{
		Status:    model.StatusSent,
		MessageID: "<id@smtp.example.com>",
		Subject:   "Sondage : réponse de Alice",
	}}
	svc, st := newTestService(notifier)

	status, err := svc.Submit(model.SubmitRequest{
		To:        "Alice",
		FromEmail: "a@example.com",
		Answer:    "yes",
		NoCompt:   json.RawMessage("2"),
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusSent, status)
	assert.Equal(t, 1, notifier.calls)

	archive := st.Read()
	require.Len(t, archive.Responses, 1)
	require.Len(t, archive.EmailArchive, 1)

	entry := archive.Responses[0]
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "Alice", entry.To)
	assert.Equal(t, "a@example.com", entry.FromEmail)
	assert.Equal(t, "yes", entry.Answer)
	assert.Equal(t, json.RawMessage("2"), entry.NoCompt)
	assert.Equal(t, model.ReasonDefaultAnswer, entry.Reason)
	assert.NotEmpty(t, entry.Date)
	assert.False(t, entry.Migrated)

	email := archive.EmailArchive[0]
	assert.NotEmpty(t, email.ID)
	assert.NotEqual(t, entry.ID, email.ID)
	assert.Equal(t, entry.ID, email.ResponseID)
	require.NotNil(t, email.To)
	assert.Equal(t, "a@example.com", *email.To)
	assert.Equal(t, model.StatusSent, email.Status)
	assert.Nil(t, email.Error)
	require.NotNil(t, email.MessageID)
	assert.Equal(t, "<id@smtp.example.com>", *email.MessageID)
	assert.Equal(t, "Sondage : réponse de Alice", email.Subject)
}

func TestSubmitSkippedDispatchStillPersists(t *testing.T) {
	notifier := &stubNotifier{outcome: mailer.Outcome{
		Status:  model.StatusSkipped,
		Error:   model.ErrMissingRecipient,
		Subject: "Sondage : aucune réponse",
	}}
	svc, st := newTestService(notifier)

	status, err := svc.Submit(model.SubmitRequest{To: "Bob", Answer: "exit"})
	require.NoError(t, err)
	assert.Equal(t, model.StatusSkipped, status)

	archive := st.Read()
	require.Len(t, archive.Responses, 1)
	assert.Equal(t, model.ReasonDefaultExit, archive.Responses[0].Reason)

	require.Len(t, archive.EmailArchive, 1)
	email := archive.EmailArchive[0]
	assert.Equal(t, model.StatusSkipped, email.Status)
	require.NotNil(t, email.Error)
	assert.Equal(t, model.ErrMissingRecipient, *email.Error)
	assert.Nil(t, email.To)
	assert.Nil(t, email.MessageID)
}

func TestSubmitKeepsCallerReason(t *testing.T) {
	notifier := &stubNotifier{outcome: mailer.Outcome{Status: model.StatusSkipped}}
	svc, st := newTestService(notifier)

	_, err := svc.Submit(model.SubmitRequest{To: "Alice", Answer: "no", Reason: "pas intéressé"})
	require.NoError(t, err)

	archive := st.Read()
	require.Len(t, archive.Responses, 1)
	assert.Equal(t, "pas intéressé", archive.Responses[0].Reason)
}

func TestSubmitRejectsMissingFields(t *testing.T) {
	cases := []model.SubmitRequest{
		{},
		{To: "Alice"},
		{Answer: "yes"},
		{To: "  ", Answer: "yes"},
		{To: "Alice", Answer: ""},
	}

	for _, req := range cases {
		notifier := &stubNotifier{outcome: mailer.Outcome{Status: model.StatusSent}}
		svc, st := newTestService(notifier)

		_, err := svc.Submit(req)
		assert.ErrorIs(t, err, ErrInvalidData, "request %+v", req)
		assert.Zero(t, notifier.calls, "request %+v", req)
		assert.Empty(t, st.Read().Responses, "request %+v", req)
		assert.Empty(t, st.Read().EmailArchive, "request %+v", req)
	}
}

func TestSubmitWriteFailure(t *testing.T) {
	notifier := &stubNotifier{outcome: mailer.Outcome{Status: model.StatusSent}}
	m := metrics.NewMetrics(prometheus.NewRegistry())
	svc := NewResponseService(&failingStore{archive: model.NewArchive()}, notifier, m)

	_, err := svc.Submit(model.SubmitRequest{To: "Alice", FromEmail: "a@example.com", Answer: "yes"})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidData)
}

func TestSubmitAppendsInOrder(t *testing.T) {
	notifier := &stubNotifier{outcome: mailer.Outcome{Status: model.StatusSkipped}}
	svc, st := newTestService(notifier)

	for _, to := range []string{"Alice", "Bob", "Carol"} {
		_, err := svc.Submit(model.SubmitRequest{To: to, Answer: "yes"})
		require.NoError(t, err)
	}

	archive := st.Read()
	require.Len(t, archive.Responses, 3)
	require.Len(t, archive.EmailArchive, 3)
	assert.Equal(t, "Alice", archive.Responses[0].To)
	assert.Equal(t, "Bob", archive.Responses[1].To)
	assert.Equal(t, "Carol", archive.Responses[2].To)

	for i, email := range archive.EmailArchive {
		assert.Equal(t, archive.Responses[i].ID, email.ResponseID)
	}
}

func TestListReturnsArchive(t *testing.T) {
	notifier := &stubNotifier{outcome: mailer.Outcome{Status: model.StatusSkipped}}
	svc, _ := newTestService(notifier)

	_, err := svc.Submit(model.SubmitRequest{To: "Alice", Answer: "yes"})
	require.NoError(t, err)

	archive := svc.List()
	assert.Len(t, archive.Responses, 1)
	assert.Len(t, archive.EmailArchive, 1)
}
