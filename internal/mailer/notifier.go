package mailer

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"survey-response-service/internal/config"
	"survey-response-service/internal/idgen"
	"survey-response-service/internal/model"
)

// Outcome is the structured result of a dispatch attempt
type Outcome struct {
	Status    string
	Error     string
	MessageID string
	Subject   string
}

// Notifier dispatches notification emails over SMTP
type Notifier struct {
	cfg  *config.SMTPConfig
	send func(m *gomail.Message) error
}

// NewNotifier creates a notifier for the given transport configuration
func NewNotifier(cfg *config.SMTPConfig) *Notifier {
	n := &Notifier{cfg: cfg}
	n.send = func(m *gomail.Message) error {
		d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
		d.SSL = cfg.Secure
		return d.DialAndSend(m)
	}
	return n
}

// Notify attempts to email the respondent. Every outcome, including a
// transport failure, comes back as data: Notify never returns an error.
// Without a recipient or a configured transport the dispatch is skipped
// and no transport call is attempted.
func (n *Notifier) Notify(entry model.ResponseRecord) Outcome {
	outcome := Outcome{Subject: Subject(entry)}

	if entry.FromEmail == "" {
		outcome.Status = model.StatusSkipped
		outcome.Error = model.ErrMissingRecipient
		return outcome
	}
	if !n.cfg.Configured() {
		outcome.Status = model.StatusSkipped
		outcome.Error = model.ErrSMTPNotConfigured
		return outcome
	}

	content := Compose(entry)
	messageID := fmt.Sprintf("<%s@%s>", idgen.CreateID(), n.cfg.Host)

	m := gomail.NewMessage()
	m.SetHeader("From", n.cfg.Sender())
	m.SetHeader("To", entry.FromEmail)
	m.SetHeader("Subject", outcome.Subject)
	m.SetHeader("Message-Id", messageID)
	m.SetBody("text/plain", content.Text)
	m.AddAlternative("text/html", content.HTML)

	if err := n.send(m); err != nil {
		logrus.Warnf("Failed to send notification to %s: %v", entry.FromEmail, err)
		outcome.Status = model.StatusFailed
		outcome.Error = err.Error()
		return outcome
	}

	logrus.Infof("Notification sent to %s (%s)", entry.FromEmail, messageID)
	outcome.Status = model.StatusSent
	outcome.MessageID = messageID
	return outcome
}
