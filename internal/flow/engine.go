package flow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Samuelreve/deal-flow-australia-hq-sub000/internal/catalog"
	"github.com/Samuelreve/deal-flow-australia-hq-sub000/internal/models"
)

// Generator produces the final document text from a formatted requirements
// bundle. It is the engine's only external collaborator and its only source
// of I/O.
type Generator interface {
	GenerateDocument(ctx context.Context, documentType, requirements string, dealCtx models.DealContext) (*models.GeneratedContent, error)
}

// Turn is the engine's per-message response: what to say, which options to
// offer, and the successor state the caller must persist for the next turn.
type Turn struct {
	Message    string                   `json:"message"`
	Options    []catalog.Option         `json:"options,omitempty"`
	State      models.ConversationState `json:"state"`
	Complete   bool                     `json:"complete"`
	Document   string                   `json:"document,omitempty"`
	Disclaimer string                   `json:"disclaimer,omitempty"`
	Error      string                   `json:"error,omitempty"`
}

// Engine drives document-requirements conversations. It holds no per-session
// state: callers pass the prior ConversationState into Advance and persist the
// state returned in the Turn. One Engine value serves any number of concurrent
// conversations.
type Engine struct {
	catalog   *catalog.Catalog
	generator Generator
}

// NewEngine creates an engine over the given catalog and generator.
func NewEngine(c *catalog.Catalog, g Generator) *Engine {
	return &Engine{catalog: c, generator: g}
}

// Greeting returns the opening turn of a fresh conversation: the list of
// available document types attached to a brand-new state.
func (e *Engine) Greeting() Turn {
	return Turn{
		Message: "Which document would you like to prepare? You can reply with a name or a common acronym.",
		Options: e.typeOptions(),
		State:   models.NewConversationState(),
	}
}

// Advance consumes one user message and produces the next turn. The incoming
// state is never mutated; the successor state is carried in the returned Turn.
// A non-nil error means the incoming state was malformed and the conversation
// cannot continue; user-recoverable problems travel in Turn.Error instead.
func (e *Engine) Advance(ctx context.Context, state models.ConversationState, message string, dealCtx models.DealContext) (Turn, error) {
	if !models.IsValidPhase(state.Phase) {
		return Turn{}, fmt.Errorf("advance conversation: %w: unknown phase %q", models.ErrInvalidConversationState, state.Phase)
	}
	st := state.Clone()

	switch st.Phase {
	case models.PhaseSelectingType:
		return e.selectType(st, message), nil
	case models.PhaseGathering:
		return e.gather(st, message)
	case models.PhaseConfirming, models.PhaseGenerating:
		// An interrupted generation leaves the state in Generating; treat it
		// as a Confirming retry so the user can say "generate" again.
		st.Phase = models.PhaseConfirming
		return e.confirm(ctx, st, message, dealCtx)
	case models.PhaseComplete:
		return Turn{
			Message:  "This conversation is complete. Start a new session to prepare another document.",
			State:    st,
			Complete: true,
		}, nil
	default:
		return Turn{}, fmt.Errorf("advance conversation: %w: unhandled phase %q", models.ErrInvalidConversationState, st.Phase)
	}
}

// selectType interprets the opening message via the type resolver. On success
// the turn both acknowledges the selection and asks the flow's first question,
// collapsing two exchanges into one.
func (e *Engine) selectType(st models.ConversationState, message string) Turn {
	dt := e.catalog.Resolve(message)
	if dt == nil {
		slog.Debug("Engine.selectType: unresolved document type", "message", message)
		return Turn{
			Message: "I couldn't match that to a document I can prepare. Please pick one of the following:",
			Options: e.typeOptions(),
			State:   st,
		}
	}

	slog.Debug("Engine.selectType: resolved document type", "type", dt.Name)
	st.DocumentType = dt.Name
	st.Phase = models.PhaseGathering
	st.QuestionIndex = nextAskable(dt, st.Answers, 0)

	if st.QuestionIndex >= len(dt.Questions) {
		// A flow whose every question is skippable from empty answers goes
		// straight to confirmation.
		return e.enterConfirming(st, dt)
	}

	q := &dt.Questions[st.QuestionIndex]
	return Turn{
		Message: fmt.Sprintf("Great, let's prepare a %s.\n\n%s", dt.DisplayName, questionText(q)),
		Options: q.Options,
		State:   st,
	}
}

// gather matches the message against the current question. An unmatched reply
// re-emits the identical question without touching the state.
func (e *Engine) gather(st models.ConversationState, message string) (Turn, error) {
	dt := e.catalog.Get(st.DocumentType)
	if dt == nil {
		return e.unknownTypeTurn(st), nil
	}
	if st.QuestionIndex < 0 || st.QuestionIndex >= len(dt.Questions) {
		return Turn{}, fmt.Errorf("advance conversation: %w: question index %d out of range for %q",
			models.ErrInvalidConversationState, st.QuestionIndex, dt.Name)
	}

	q := &dt.Questions[st.QuestionIndex]
	ans := ResolveAnswer(q, message)
	if ans == nil {
		slog.Debug("Engine.gather: unresolved answer", "question", q.ID, "message", message)
		return Turn{
			Message: fmt.Sprintf("Sorry, I didn't catch that. %s", questionText(q)),
			Options: q.Options,
			State:   st,
		}, nil
	}

	st.Answers[q.ID] = *ans
	st.QuestionIndex = nextAskable(dt, st.Answers, st.QuestionIndex+1)
	slog.Debug("Engine.gather: answer recorded", "question", q.ID, "custom", ans.Custom, "next_index", st.QuestionIndex)

	if st.QuestionIndex >= len(dt.Questions) {
		if !IsReady(dt, st.Answers) {
			// A skip predicate bypassed a required question; reopen it rather
			// than confirm an incomplete bundle.
			st.QuestionIndex = firstMissingRequired(dt, st.Answers)
			next := &dt.Questions[st.QuestionIndex]
			return Turn{
				Message: questionText(next),
				Options: next.Options,
				State:   st,
			}, nil
		}
		return e.enterConfirming(st, dt), nil
	}

	next := &dt.Questions[st.QuestionIndex]
	return Turn{
		Message: questionText(next),
		Options: next.Options,
		State:   st,
	}, nil
}

// confirm interprets the generate/modify choice with coarse substring intents.
func (e *Engine) confirm(ctx context.Context, st models.ConversationState, message string, dealCtx models.DealContext) (Turn, error) {
	dt := e.catalog.Get(st.DocumentType)
	if dt == nil {
		return e.unknownTypeTurn(st), nil
	}

	reply := strings.ToLower(message)
	switch {
	case strings.Contains(reply, "generate") || strings.Contains(reply, "yes") || strings.Contains(reply, "create"):
		return e.generate(ctx, st, dt, dealCtx)
	case strings.Contains(reply, "modify") || strings.Contains(reply, "change") || strings.Contains(reply, "back"):
		return e.restartGathering(st, dt), nil
	default:
		return Turn{
			Message: fmt.Sprintf("%s\n\nReply \"generate\" to create the document, or \"modify\" to change your answers.", recap(dt, st.Answers)),
			Options: confirmOptions(),
			State:   st,
		}, nil
	}
}

// generate formats the requirements bundle and invokes the generator. On
// failure the state stays in Confirming so the user can retry without
// re-answering anything.
func (e *Engine) generate(ctx context.Context, st models.ConversationState, dt *catalog.DocumentType, dealCtx models.DealContext) (Turn, error) {
	st.Phase = models.PhaseGenerating
	requirements := FormatRequirements(dt, st.Answers, dealCtx)

	slog.Info("Engine.generate: invoking generator", "type", dt.Name, "answers", len(st.Answers))
	content, err := e.generator.GenerateDocument(ctx, dt.Name, requirements, dealCtx)
	if err != nil {
		slog.Error("Engine.generate: generation failed", "type", dt.Name, "error", err)
		st.Phase = models.PhaseConfirming
		return Turn{
			Message: "Something went wrong while generating the document. Reply \"generate\" to try again, or \"modify\" to change your answers.",
			Options: confirmOptions(),
			State:   st,
			Error:   "document generation failed",
		}, nil
	}

	st.Phase = models.PhaseComplete
	return Turn{
		Message:    fmt.Sprintf("Your %s is ready.", dt.DisplayName),
		State:      st,
		Complete:   true,
		Document:   content.Content,
		Disclaimer: content.Disclaimer,
	}, nil
}

// restartGathering is the one designed cycle in the state graph: answers are
// cleared, the cursor returns to the first question.
func (e *Engine) restartGathering(st models.ConversationState, dt *catalog.DocumentType) Turn {
	slog.Debug("Engine.restartGathering: answers cleared", "type", dt.Name)
	st.Phase = models.PhaseGathering
	st.Answers = make(map[string]models.Answer)
	st.QuestionIndex = nextAskable(dt, st.Answers, 0)
	if st.QuestionIndex >= len(dt.Questions) {
		return e.enterConfirming(st, dt)
	}

	q := &dt.Questions[st.QuestionIndex]
	return Turn{
		Message: fmt.Sprintf("No problem, let's go through the questions again.\n\n%s", questionText(q)),
		Options: q.Options,
		State:   st,
	}
}

// enterConfirming builds the recap turn that closes the gathering phase.
func (e *Engine) enterConfirming(st models.ConversationState, dt *catalog.DocumentType) Turn {
	st.Phase = models.PhaseConfirming
	st.QuestionIndex = len(dt.Questions)
	return Turn{
		Message: fmt.Sprintf("%s\n\nReply \"generate\" to create the document, or \"modify\" to change your answers.", recap(dt, st.Answers)),
		Options: confirmOptions(),
		State:   st,
	}
}

// unknownTypeTurn reports a state that references a document type missing from
// the catalog. The conversation does not advance; this is user-facing, not a
// programmer error, because catalogs change between deployments.
func (e *Engine) unknownTypeTurn(st models.ConversationState) Turn {
	slog.Warn("Engine: state references unknown document type", "type", st.DocumentType)
	return Turn{
		State: st,
		Error: fmt.Sprintf("the document type %q is no longer available; please start a new session", st.DocumentType),
	}
}

// recap renders the gathered answers in flow order for the confirmation turn.
func recap(dt *catalog.DocumentType, answers map[string]models.Answer) string {
	var b strings.Builder
	b.WriteString("Here's what I have so far:\n")
	for i := range dt.Questions {
		q := &dt.Questions[i]
		ans, ok := answers[q.ID]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "- %s: %s\n", q.Prompt, renderAnswer(q, ans))
	}
	return strings.TrimRight(b.String(), "\n")
}

// nextAskable returns the first index at or after from whose question is not
// skipped given the current answers. It may return len(dt.Questions).
func nextAskable(dt *catalog.DocumentType, answers map[string]models.Answer, from int) int {
	i := from
	for i < len(dt.Questions) {
		q := &dt.Questions[i]
		if q.Skip == nil || !q.Skip(answers) {
			break
		}
		i++
	}
	return i
}

// firstMissingRequired returns the index of the first required question with
// no recorded answer. Callers only invoke it when IsReady is false.
func firstMissingRequired(dt *catalog.DocumentType, answers map[string]models.Answer) int {
	for i := range dt.Questions {
		q := &dt.Questions[i]
		if _, ok := answers[q.ID]; !ok && dt.IsRequired(q.ID) {
			return i
		}
	}
	return 0
}

// questionText renders a question's prompt plus its help line when present.
func questionText(q *catalog.Question) string {
	if q.Help != "" {
		return q.Prompt + "\n" + q.Help
	}
	return q.Prompt
}

// confirmOptions are the two intents offered during Confirming.
func confirmOptions() []catalog.Option {
	return []catalog.Option{
		{Label: "Generate the document", Value: "generate"},
		{Label: "Modify my answers", Value: "modify"},
	}
}

// typeOptions renders the catalog as a selectable option list.
func (e *Engine) typeOptions() []catalog.Option {
	types := e.catalog.Types()
	opts := make([]catalog.Option, 0, len(types))
	for i := range types {
		opts = append(opts, catalog.Option{
			Label:       types[i].DisplayName,
			Value:       types[i].Name,
			Description: types[i].Description,
		})
	}
	return opts
}
