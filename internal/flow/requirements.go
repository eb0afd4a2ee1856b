package flow

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Samuelreve/deal-flow-australia-hq-sub000/internal/catalog"
	"github.com/Samuelreve/deal-flow-australia-hq-sub000/internal/models"
)

// IsReady reports whether every required question of the flow has a recorded
// answer. Optional answers only enrich the formatted bundle.
func IsReady(dt *catalog.DocumentType, answers map[string]models.Answer) bool {
	for _, id := range dt.Required {
		if _, ok := answers[id]; !ok {
			return false
		}
	}
	return true
}

// FormatRequirements serializes the gathered answers, in flow order, into the
// text bundle handed to the document generator. Each answered question emits
// its prompt and the resolved option label (with description when present) or
// the raw custom value, blank-line separated. Deal context is appended as a
// sorted key-value block so output is deterministic.
func FormatRequirements(dt *catalog.DocumentType, answers map[string]models.Answer, dealCtx models.DealContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Document type: %s\n", dt.DisplayName)
	if dt.Description != "" {
		b.WriteString(dt.Description)
		b.WriteString("\n")
	}

	for i := range dt.Questions {
		q := &dt.Questions[i]
		ans, ok := answers[q.ID]
		if !ok {
			continue
		}
		b.WriteString("\n")
		b.WriteString(q.Prompt)
		b.WriteString("\n")
		b.WriteString(renderAnswer(q, ans))
		b.WriteString("\n")
	}

	if len(dealCtx) > 0 {
		b.WriteString("\nDeal context:\n")
		keys := make([]string, 0, len(dealCtx))
		for k := range dealCtx {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "- %s: %s\n", k, dealCtx[k])
		}
	}

	return b.String()
}

// renderAnswer produces the human-readable form of a stored answer: the
// option label (plus description) for option-derived values, or the raw text
// for custom answers.
func renderAnswer(q *catalog.Question, ans models.Answer) string {
	if !ans.Custom {
		if opt := catalog.OptionByValue(q, ans.Value); opt != nil {
			if opt.Description != "" {
				return fmt.Sprintf("%s (%s)", opt.Label, opt.Description)
			}
			return opt.Label
		}
	}
	return ans.Value
}
