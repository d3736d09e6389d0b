package mailer

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"survey-response-service/internal/model"
)

// Content is the rendered notification body
type Content struct {
	Text string
	HTML string
}

// Placeholders rendered when an optional field is absent
const (
	placeholderEmail   = "non renseigné"
	placeholderCounter = "n/a"
	placeholderReason  = "non précisée"
)

// AnswerLabel maps an answer value to its display label. Values outside
// the known set are rendered as-is.
func AnswerLabel(answer string) string {
	switch answer {
	case model.AnswerYes:
		return "Oui"
	case model.AnswerNo:
		return "Non"
	case model.AnswerExit:
		return "Aucune réponse"
	case "":
		return "Inconnu"
	}
	return answer
}

// Subject returns the notification subject for an entry
func Subject(entry model.ResponseRecord) string {
	if entry.Answer == model.AnswerExit {
		return "Sondage : aucune réponse"
	}
	return fmt.Sprintf("Sondage : réponse de %s", entry.To)
}

// Compose renders the plain-text and HTML notification bodies for an
// entry. Pure and deterministic given the entry.
func Compose(entry model.ResponseRecord) Content {
	rows := []struct {
		name  string
		value string
	}{
		{"Réponse", AnswerLabel(entry.Answer)},
		{"Destinataire", entry.To},
		{"Email", orPlaceholder(entry.FromEmail, placeholderEmail)},
		{"Date", entry.Date},
		{"Compteur", counterValue(entry.NoCompt)},
		{"Motif", orPlaceholder(entry.Reason, placeholderReason)},
	}

	var text strings.Builder
	for _, row := range rows {
		text.WriteString(fmt.Sprintf("%s : %s\n", row.name, row.value))
	}

	var table strings.Builder
	table.WriteString("<table border=\"1\" cellpadding=\"6\" cellspacing=\"0\">\n")
	for _, row := range rows {
		table.WriteString(fmt.Sprintf("<tr><td><strong>%s</strong></td><td>%s</td></tr>\n",
			row.name, html.EscapeString(row.value)))
	}
	table.WriteString("</table>\n")

	return Content{Text: text.String(), HTML: table.String()}
}

func orPlaceholder(value, placeholder string) string {
	if value == "" {
		return placeholder
	}
	return value
}

// counterValue renders the pass-through counter. JSON strings lose their
// quotes; any other value keeps its raw form.
func counterValue(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return placeholderCounter
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return placeholderCounter
		}
		return s
	}
	return string(raw)
}
