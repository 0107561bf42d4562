package mode

import "testing"

func TestIsValid(t *testing.T) {
	valid := []Mode{Relevance, Popularity, Latest}
	for _, m := range valid {
		if !m.IsValid() {
			t.Errorf("%q.IsValid() = false, want true", m)
		}
	}

	invalid := []Mode{Unset, "relevance", "NEWEST", "score"}
	for _, m := range invalid {
		if m.IsValid() {
			t.Errorf("%q.IsValid() = true, want false", m)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in     string
		want   Mode
		wantOK bool
	}{
		{"", Unset, true},
		{"latest", Latest, true},
		{" Popularity ", Popularity, true},
		{"RELEVANCE", Relevance, true},
		{"newest", Unset, false},
	}
	for _, tc := range tests {
		got, ok := Parse(tc.in)
		if got != tc.want || ok != tc.wantOK {
			t.Errorf("Parse(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		explicit  Mode
		suggested Mode
		want      Mode
	}{
		{"explicit popularity beats suggested latest", Popularity, Latest, Popularity},
		{"explicit latest beats suggested popularity", Latest, Popularity, Latest},
		{"explicit relevance defers to suggestion", Relevance, Latest, Latest},
		{"unset defers to suggestion", Unset, Popularity, Popularity},
		{"nothing set", Unset, Unset, Relevance},
		{"explicit relevance, no suggestion", Relevance, Unset, Relevance},
		{"invalid suggestion ignored", Unset, "RANDOM", Relevance},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Resolve(tc.explicit, tc.suggested); got != tc.want {
				t.Errorf("Resolve(%q, %q) = %q, want %q", tc.explicit, tc.suggested, got, tc.want)
			}
		})
	}
}
