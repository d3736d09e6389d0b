package store

import (
	"encoding/json"
	"sort"

	"survey-response-service/internal/idgen"
	"survey-response-service/internal/model"
)

// Shapes detected on the raw archive content
const (
	SourceCurrent = "current"
	SourceLegacy  = "legacy"
	SourceEmpty   = "empty"
	SourceCorrupt = "corrupt"
)

// Result carries the canonical archive together with what was found in
// the raw content, so callers can tell a corrupt file from a migrated one.
type Result struct {
	Archive  model.Archive
	Source   string
	Migrated int
}

// legacyEntry is the pre-split archive value: a single answer object keyed
// directly by the survey target.
type legacyEntry struct {
	From    string          `json:"from"`
	Answer  string          `json:"answer"`
	NoCompt json.RawMessage `json:"noCompt"`
	Reason  string          `json:"reason"`
	Date    string          `json:"date"`
}

// Normalize converts any raw archive content into the canonical shape.
// Non-object content (including arrays) yields an empty archive. Content
// that already exposes sequence-typed "responses" or "emailArchive" fields
// is treated as current shape, with malformed fields coerced to empty
// sequences, which makes normalization idempotent. Anything else is the
// legacy keyed-object shape and is migrated upward: each entry becomes a
// ResponseRecord with a fresh id and migrated set.
func Normalize(raw []byte) Result {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil || probe == nil {
		return Result{Archive: model.NewArchive(), Source: SourceCorrupt}
	}
	if len(probe) == 0 {
		return Result{Archive: model.NewArchive(), Source: SourceEmpty}
	}

	if isArray(probe["responses"]) || isArray(probe["emailArchive"]) {
		archive := model.NewArchive()
		if isArray(probe["responses"]) {
			if err := json.Unmarshal(probe["responses"], &archive.Responses); err != nil {
				archive.Responses = []model.ResponseRecord{}
			}
		}
		if isArray(probe["emailArchive"]) {
			if err := json.Unmarshal(probe["emailArchive"], &archive.EmailArchive); err != nil {
				archive.EmailArchive = []model.EmailArchiveRecord{}
			}
		}
		if archive.Responses == nil {
			archive.Responses = []model.ResponseRecord{}
		}
		if archive.EmailArchive == nil {
			archive.EmailArchive = []model.EmailArchiveRecord{}
		}
		return Result{Archive: archive, Source: SourceCurrent}
	}

	// Legacy shape: target identifier -> single entry object. The keyed
	// object carries no ordering, so targets are sorted for a stable
	// migration output. Email dispatches were not archived back then.
	archive := model.NewArchive()
	targets := make([]string, 0, len(probe))
	for to := range probe {
		targets = append(targets, to)
	}
	sort.Strings(targets)

	for _, to := range targets {
		var entry legacyEntry
		if err := json.Unmarshal(probe[to], &entry); err != nil {
			continue
		}
		archive.Responses = append(archive.Responses, model.ResponseRecord{
			ID:        idgen.CreateID(),
			To:        to,
			FromEmail: entry.From,
			Answer:    entry.Answer,
			NoCompt:   entry.NoCompt,
			Reason:    entry.Reason,
			Date:      entry.Date,
			Migrated:  true,
		})
	}

	return Result{Archive: archive, Source: SourceLegacy, Migrated: len(archive.Responses)}
}

func isArray(raw json.RawMessage) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return b == '['
		}
	}
	return false
}
