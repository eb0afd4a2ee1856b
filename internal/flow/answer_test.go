package flow

import (
	"testing"

	"github.com/Samuelreve/deal-flow-australia-hq-sub000/internal/catalog"
)

func optionQuestion(allowCustom bool) *catalog.Question {
	return &catalog.Question{
		ID:     "duration",
		Prompt: "How long should the obligations last?",
		Options: []catalog.Option{
			{Label: "1 year", Value: "1_year"},
			{Label: "2 years", Value: "2_years"},
			{Label: "3 years", Value: "3_years"},
			{Label: "Indefinitely", Value: "indefinite"},
		},
		AllowCustom: allowCustom,
	}
}

func TestResolveAnswerByLabel(t *testing.T) {
	q := optionQuestion(false)

	tests := []struct {
		in   string
		want string
	}{
		{"2 years", "2_years"},
		{"2 years please", "2_years"},
		{"let's make it 3 years", "3_years"},
		{"Indefinitely", "indefinite"},
		{"INDEFINITELY", "indefinite"},
	}
	for _, tc := range tests {
		ans := ResolveAnswer(q, tc.in)
		if ans == nil {
			t.Errorf("ResolveAnswer(%q) = nil, want %s", tc.in, tc.want)
			continue
		}
		if ans.Value != tc.want || ans.Custom {
			t.Errorf("ResolveAnswer(%q) = %+v, want value %s", tc.in, ans, tc.want)
		}
	}
}

func TestResolveAnswerByValue(t *testing.T) {
	q := optionQuestion(false)

	for _, opt := range q.Options {
		ans := ResolveAnswer(q, opt.Value)
		if ans == nil || ans.Value != opt.Value {
			t.Errorf("ResolveAnswer(%q) = %+v, want value %s", opt.Value, ans, opt.Value)
		}
		ans = ResolveAnswer(q, opt.Label)
		if ans == nil || ans.Value != opt.Value {
			t.Errorf("ResolveAnswer(%q) = %+v, want value %s", opt.Label, ans, opt.Value)
		}
	}
}

func TestResolveAnswerByIndex(t *testing.T) {
	q := optionQuestion(false)

	tests := []struct {
		in   string
		want string
	}{
		{"1", "1_year"},
		{"2", "2_years"},
		{"2.", "2_years"},
		{" 4 ", "indefinite"},
	}
	for _, tc := range tests {
		ans := ResolveAnswer(q, tc.in)
		if ans == nil || ans.Value != tc.want {
			t.Errorf("ResolveAnswer(%q) = %+v, want value %s", tc.in, ans, tc.want)
		}
	}

	for _, in := range []string{"0", "5", "-1", "99."} {
		if ans := ResolveAnswer(q, in); ans != nil {
			t.Errorf("ResolveAnswer(%q) = %+v, want nil for out-of-range index", in, ans)
		}
	}
}

func TestResolveAnswerCustomPassthrough(t *testing.T) {
	q := optionQuestion(true)

	ans := ResolveAnswer(q, "  10 years with carve-outs  ")
	if ans == nil {
		t.Fatal("expected custom answer, got nil")
	}
	if !ans.Custom {
		t.Error("expected Custom flag on free-text answer")
	}
	if ans.Value != "10 years with carve-outs" {
		t.Errorf("custom answer should be trimmed verbatim text, got %q", ans.Value)
	}
}

func TestResolveAnswerNoMatch(t *testing.T) {
	q := optionQuestion(false)

	for _, in := range []string{"", "   ", "whatever suits", "ten"} {
		if ans := ResolveAnswer(q, in); ans != nil {
			t.Errorf("ResolveAnswer(%q) = %+v, want nil", in, ans)
		}
	}
}

func TestResolveAnswerEmptyNeverCustom(t *testing.T) {
	q := optionQuestion(true)

	if ans := ResolveAnswer(q, "   "); ans != nil {
		t.Errorf("blank reply should not become a custom answer, got %+v", ans)
	}
}

func TestResolveAnswerEveryOption(t *testing.T) {
	for _, dt := range catalog.Default().Types() {
		for i := range dt.Questions {
			q := &dt.Questions[i]
			for _, opt := range q.Options {
				for _, in := range []string{opt.Label, opt.Value} {
					ans := ResolveAnswer(q, in)
					if ans == nil {
						t.Errorf("%s/%s: ResolveAnswer(%q) = nil", dt.Name, q.ID, in)
						continue
					}
					if ans.Custom || ans.Value != opt.Value {
						t.Errorf("%s/%s: ResolveAnswer(%q) = %+v, want value %q", dt.Name, q.ID, in, ans, opt.Value)
					}
				}
			}
		}
	}
}
