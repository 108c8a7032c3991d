package captions

import (
	"strings"
	"testing"
)

func segs(texts ...string) []Segment {
	out := make([]Segment, len(texts))
	for i, text := range texts {
		start := float64(i)
		out[i] = newSegment(start, start+1, text)
	}
	return out
}

func TestDeduplicate_ExactRepeats(t *testing.T) {
	kept, clean := Deduplicate(segs("hi", "hi", "bye"))

	if len(kept) != 2 {
		t.Fatalf("kept %d segments, want 2", len(kept))
	}
	if kept[0].Text != "hi" || kept[1].Text != "bye" {
		t.Errorf("kept texts = %q, %q", kept[0].Text, kept[1].Text)
	}
	if clean != "hi bye" {
		t.Errorf("clean text = %q, want %q", clean, "hi bye")
	}
}

func TestDeduplicate_RollingContinuations(t *testing.T) {
	// Auto-generated tracks re-emit the accumulating line each time a word
	// is appended. The clean text gets only the new suffix; the detailed
	// list keeps every snapshot with its full text.
	kept, clean := Deduplicate(segs("hello", "hello world", "hello world today"))

	if clean != "hello world today" {
		t.Errorf("clean text = %q, want %q", clean, "hello world today")
	}
	if len(kept) != 3 {
		t.Fatalf("kept %d segments, want 3", len(kept))
	}
	if kept[2].Text != "hello world today" {
		t.Errorf("kept[2].Text = %q, want the full snapshot", kept[2].Text)
	}
}

func TestDeduplicate_PrefixComparisonResets(t *testing.T) {
	// "hello" after "hello world" is not a continuation; it starts a new run.
	_, clean := Deduplicate(segs("hello world", "hello", "hello there"))

	if clean != "hello world hello there" {
		t.Errorf("clean text = %q, want %q", clean, "hello world hello there")
	}
}

func TestDeduplicate_NoFalsePositiveOnWordBoundary(t *testing.T) {
	// The comparison is a raw string prefix: "golang" continues "go" with
	// suffix "lang". Unrelated texts pass through whole.
	_, clean := Deduplicate(segs("go", "golang"))
	if clean != "go lang" {
		t.Errorf("clean text = %q, want %q", clean, "go lang")
	}

	_, clean = Deduplicate(segs("alpha", "beta"))
	if clean != "alpha beta" {
		t.Errorf("clean text = %q, want %q", clean, "alpha beta")
	}
}

func TestDeduplicate_Empty(t *testing.T) {
	kept, clean := Deduplicate(nil)
	if len(kept) != 0 || clean != "" {
		t.Errorf("Deduplicate(nil) = (%d segments, %q)", len(kept), clean)
	}
}

func TestDeduplicate_SingleSegment(t *testing.T) {
	kept, clean := Deduplicate(segs("only one"))
	if len(kept) != 1 || clean != "only one" {
		t.Errorf("got (%d segments, %q)", len(kept), clean)
	}
}

func TestDeduplicate_PreservesOrderAndTimes(t *testing.T) {
	input := segs("a", "b", "c", "c", "d")
	kept, _ := Deduplicate(input)

	for i := 1; i < len(kept); i++ {
		if kept[i].Start < kept[i-1].Start {
			t.Fatal("Deduplicate reordered segments")
		}
	}
	if len(kept) != 4 {
		t.Errorf("kept %d segments, want 4", len(kept))
	}
	// Surviving segments keep their original timing.
	if kept[2].Start != input[2].Start {
		t.Errorf("kept[2].Start = %f, want %f", kept[2].Start, input[2].Start)
	}
}

func TestDeduplicate_Idempotent(t *testing.T) {
	first, firstClean := Deduplicate(segs("one", "one two", "one two", "three"))
	second, secondClean := Deduplicate(first)

	if len(second) != len(first) {
		t.Errorf("second pass kept %d segments, first kept %d", len(second), len(first))
	}
	// The clean text is not comparable across passes because the detailed
	// segments keep full snapshot texts, but exact repeats stay collapsed.
	if firstClean != "one two three" {
		t.Errorf("first clean = %q", firstClean)
	}
	_ = secondClean
}

func TestDeduplicate_LongRun(t *testing.T) {
	// A long accumulating run collapses to a single clean sentence.
	words := []string{"the", "quick", "brown", "fox", "jumps"}
	var texts []string
	for i := range words {
		texts = append(texts, strings.Join(words[:i+1], " "))
	}

	kept, clean := Deduplicate(segs(texts...))
	if clean != "the quick brown fox jumps" {
		t.Errorf("clean text = %q", clean)
	}
	if len(kept) != len(words) {
		t.Errorf("kept %d segments, want %d", len(kept), len(words))
	}
}
