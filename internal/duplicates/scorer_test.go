package duplicates

import "testing"

func TestFuzzyScorer(t *testing.T) {
	s := NewFuzzyScorer()

	tests := []struct {
		name      string
		candidate string
		pattern   string
		wantMatch bool
		minScore  int
	}{
		{"Identical", "report.pdf", "report.pdf", true, 90},
		{"Inserted suffix", "report_copy.pdf", "report.pdf", true, 90},
		{"Case difference", "a.txt", "A.TXT", true, 90},
		{"Punctuation inserted", "my-photo (1).jpg", "my-photo.jpg", true, 90},
		{"Unrelated", "notes.txt", "report.pdf", false, 0},
		{"Pattern longer than candidate", "a.txt", "a.txt.bak", false, 0},
		{"Empty pattern", "a.txt", "", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, ok := s.Score(tt.candidate, tt.pattern)
			if ok != tt.wantMatch {
				t.Fatalf("Score(%q, %q) ok = %v, want %v", tt.candidate, tt.pattern, ok, tt.wantMatch)
			}
			if ok && score < tt.minScore {
				t.Errorf("Score(%q, %q) = %v, want >= %v", tt.candidate, tt.pattern, score, tt.minScore)
			}
		})
	}
}

func TestFuzzyScorer_ExactScoresHighest(t *testing.T) {
	s := NewFuzzyScorer()

	exact, ok := s.Score("report.pdf", "report.pdf")
	if !ok {
		t.Fatal("Score() of identical names did not match")
	}
	partial, ok := s.Score("report_copy.pdf", "report.pdf")
	if !ok {
		t.Fatal("Score() of report_copy.pdf did not match")
	}
	if exact <= partial {
		t.Errorf("Exact score %v is not above partial score %v", exact, partial)
	}
}

func TestExactScorer(t *testing.T) {
	tests := []struct {
		candidate string
		pattern   string
		wantScore int
		wantMatch bool
	}{
		{"a.txt", "a.txt", ExactScore, true},
		{"a.txt", "A.TXT", ExactScore, true},
		{"a_copy.txt", "a.txt", 0, false},
		{"", "", 0, false},
	}

	for _, tt := range tests {
		score, ok := ExactScorer{}.Score(tt.candidate, tt.pattern)
		if ok != tt.wantMatch || score != tt.wantScore {
			t.Errorf("Score(%q, %q) = %v, %v, want %v, %v", tt.candidate, tt.pattern, score, ok, tt.wantScore, tt.wantMatch)
		}
	}
}

func TestPolicyFor(t *testing.T) {
	tests := []struct {
		useHash   bool
		matchSize bool
		want      MatchPolicy
	}{
		{true, false, MatchContent},
		{true, true, MatchContent},
		{false, true, MatchSize},
		{false, false, MatchName},
	}

	for _, tt := range tests {
		if got := PolicyFor(tt.useHash, tt.matchSize); got != tt.want {
			t.Errorf("PolicyFor(%v, %v) = %v, want %v", tt.useHash, tt.matchSize, got, tt.want)
		}
	}
}

// fzf scores grow with the number of matched characters, so identical names
// that are very short stay below the default threshold.
func TestFuzzyScorer_ShortIdenticalNames(t *testing.T) {
	s := NewFuzzyScorer()

	tests := []struct {
		name string
		want int
	}{
		{"ab", 62},
		{"x.c", 88},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, ok := s.Score(tt.name, tt.name)
			if !ok {
				t.Fatalf("Score(%q, %q) did not match", tt.name, tt.name)
			}
			if score != tt.want {
				t.Errorf("Score(%q, %q) = %v, want %v", tt.name, tt.name, score, tt.want)
			}
			if score >= DefaultThreshold {
				t.Errorf("Score(%q, %q) = %v, want below %v", tt.name, tt.name, score, DefaultThreshold)
			}
		})
	}

	exact := ExactScorer{}
	if score, ok := exact.Score("x.c", "X.C"); !ok || score < DefaultThreshold {
		t.Errorf("ExactScorer.Score(%q, %q) = %v, %v, want >= %v", "x.c", "X.C", score, ok, DefaultThreshold)
	}
}
