package catalog

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Heads   of Agreement ", "heads of agreement"},
		{"M&A due diligence", "m and a due diligence"},
		{"NDA", "nda"},
		{"\tterm\nsheet", "term sheet"},
		{"N.D.A.!", "nda"},
		{"non-disclosure", "nondisclosure"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestResolveByAlias(t *testing.T) {
	c := Default()

	tests := []struct {
		in   string
		want string
	}{
		{"nda", "Non-Disclosure Agreement"},
		{"NDA", "Non-Disclosure Agreement"},
		{"I need an nda please", "Non-Disclosure Agreement"},
		{"confidentiality agreement", "Non-Disclosure Agreement"},
		{"loi", "Letter of Intent"},
		{"we want a letter of intent for the deal", "Letter of Intent"},
		{"term sheet", "Term Sheet"},
		{"heads of terms", "Term Sheet"},
		{"mou", "Heads of Agreement"},
		{"memorandum of understanding", "Heads of Agreement"},
		{"spa", "Share Purchase Agreement"},
		{"share sale agreement", "Share Purchase Agreement"},
		{"consulting agreement", "Consultancy Agreement"},
	}
	for _, tc := range tests {
		dt := c.Resolve(tc.in)
		if dt == nil {
			t.Errorf("Resolve(%q) = nil, want %s", tc.in, tc.want)
			continue
		}
		if dt.Name != tc.want {
			t.Errorf("Resolve(%q) = %s, want %s", tc.in, dt.Name, tc.want)
		}
	}
}

func TestResolveByName(t *testing.T) {
	c := Default()

	if dt := c.Resolve("Share Purchase Agreement"); dt == nil || dt.Name != "Share Purchase Agreement" {
		t.Errorf("full name should resolve, got %v", dt)
	}
	if dt := c.Resolve("draft me a non-disclosure agreement (nda)"); dt == nil || dt.Name != "Non-Disclosure Agreement" {
		t.Errorf("display name should resolve, got %v", dt)
	}
}

func TestResolvePrefersExactAlias(t *testing.T) {
	c := Default()

	// "term sheet" is an exact alias and must not be shadowed by any
	// containment match earlier in the table.
	if dt := c.Resolve("term sheet"); dt == nil || dt.Name != "Term Sheet" {
		t.Errorf("exact alias should win, got %v", dt)
	}
}

func TestResolveNoMatch(t *testing.T) {
	c := Default()

	for _, in := range []string{"", "   ", "employment contract", "lease", "the quick brown fox"} {
		if dt := c.Resolve(in); dt != nil {
			t.Errorf("Resolve(%q) = %s, want nil", in, dt.Name)
		}
	}
}

func TestResolveWordBoundaries(t *testing.T) {
	c := Default()

	// "nda" inside "standard" must not match.
	if dt := c.Resolve("a standard employment contract"); dt != nil {
		t.Errorf("expected nil, got %s", dt.Name)
	}
}

func TestParentheticalAcronym(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Non-Disclosure Agreement (NDA)", "nda"},
		{"Term Sheet", ""},
		{"Weird (two words)", ""},
		{"Unbalanced )(", ""},
	}
	for _, tc := range tests {
		if got := parentheticalAcronym(tc.in); got != tc.want {
			t.Errorf("parentheticalAcronym(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestResolveEveryAlias(t *testing.T) {
	c := Default()

	for _, a := range c.aliases {
		dt := c.Resolve(a.Text)
		if dt == nil {
			t.Errorf("Resolve(%q) = nil, want %s", a.Text, a.Name)
			continue
		}
		if dt.Name != a.Name {
			t.Errorf("Resolve(%q) = %s, want %s", a.Text, dt.Name, a.Name)
		}
	}
}
