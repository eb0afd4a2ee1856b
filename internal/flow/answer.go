// Package flow implements the conversation state machine that walks a user
// through a document type's question flow, gathers answers, and hands a
// formatted requirements bundle to the document generator.
package flow

import (
	"strconv"
	"strings"

	"github.com/Samuelreve/deal-flow-australia-hq-sub000/internal/catalog"
	"github.com/Samuelreve/deal-flow-australia-hq-sub000/internal/models"
)

// ResolveAnswer matches a free-text reply against a question's options.
// Attempts, first hit wins: containment of an option's label or value (or the
// value equalling the whole reply), a 1-indexed numeric selection, and finally
// the verbatim reply when the question allows custom answers. It returns nil
// when nothing matches; the caller re-prompts with the same question.
func ResolveAnswer(q *catalog.Question, raw string) *models.Answer {
	reply := strings.ToLower(strings.TrimSpace(raw))
	if reply == "" {
		return nil
	}

	for i := range q.Options {
		opt := &q.Options[i]
		label := strings.ToLower(opt.Label)
		value := strings.ToLower(opt.Value)
		if strings.Contains(reply, label) || strings.Contains(reply, value) || reply == value {
			return &models.Answer{Value: opt.Value}
		}
	}

	if opt := optionByIndex(q, reply); opt != nil {
		return &models.Answer{Value: opt.Value}
	}

	if q.AllowCustom {
		return &models.Answer{Value: strings.TrimSpace(raw), Custom: true}
	}

	return nil
}

// optionByIndex interprets a bare integer reply, optionally followed by a
// period, as a 1-indexed selection. Out-of-range numbers do not match.
func optionByIndex(q *catalog.Question, reply string) *catalog.Option {
	reply = strings.TrimSuffix(reply, ".")
	n, err := strconv.Atoi(reply)
	if err != nil || n < 1 || n > len(q.Options) {
		return nil
	}
	return &q.Options[n-1]
}
