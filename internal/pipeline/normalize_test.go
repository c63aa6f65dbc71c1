package pipeline

import (
	"strings"
	"testing"
)

func TestNormalizeStripsMarkup(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "hello world", "hello world"},
		{"tags removed", "<p>hello <b>world</b></p>", "hello world"},
		{"script removed with payload", "before<script>var x = 1;</script>after", "before after"},
		{"script case-insensitive", "a<SCRIPT>alert(1)</SCRIPT>b", "a b"},
		{"script across lines", "a<script>\nline1\nline2\n</script>b", "a b"},
		{"style removed", "a<style>.x { color: red }</style>b", "a b"},
		{"entities decoded", "fish &amp; chips &lt;now&gt; &quot;cheap&quot; &#39;yes&#39;", `fish & chips <now> "cheap" 'yes'`},
		{"nbsp becomes space", "one&nbsp;two", "one two"},
		{"whitespace collapsed", "a  \t b\nc", "a b c"},
		{"empty input", "", ""},
		{"only markup", "<div><span></span></div>", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.input, 0)
			if got != tc.want {
				t.Errorf("Normalize(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestNormalizeKeepsParagraphBoundaries(t *testing.T) {
	input := "First   paragraph.\n\nSecond\tparagraph.\n\n\n\nThird."
	got := Normalize(input, 0)
	want := "First paragraph.\n\nSecond paragraph.\n\nThird."

	if got != want {
		t.Errorf("Normalize(%q) = %q, want %q", input, got, want)
	}

	if n := len(strings.Split(got, "\n\n")); n != 3 {
		t.Errorf("Expected 3 paragraphs, got %d", n)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"plain text",
		"<p>one</p>\n\n<p>two</p>",
		"a  b\r\n\r\nc   d",
		"fish &amp; chips",
	}

	for _, input := range inputs {
		once := Normalize(input, 0)
		twice := Normalize(once, 0)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}

// Entity decoding is deliberately single-pass: double-encoded input
// sheds exactly one encoding layer per call, and text that decoded to a
// literal entity stays escaped so it renders as written.
func TestNormalizeDecodesEntitiesOnce(t *testing.T) {
	input := "&amp;lt;b&amp;gt;bold&amp;lt;/b&amp;gt;"

	once := Normalize(input, 0)
	if once != "&lt;b&gt;bold&lt;/b&gt;" {
		t.Fatalf("First pass got %q", once)
	}

	// Tag stripping runs before entity decoding, so the markup revealed
	// by the second decode survives as literal text.
	twice := Normalize(once, 0)
	if twice != "<b>bold</b>" {
		t.Errorf("Second pass got %q", twice)
	}
}

func TestNormalizeTruncation(t *testing.T) {
	input := strings.Repeat("word ", 100)

	got := Normalize(input, 50)
	if len([]rune(got)) > 50 {
		t.Errorf("Expected at most 50 runes, got %d", len([]rune(got)))
	}

	full := Normalize(input, 0)
	if !strings.HasPrefix(full, got) {
		t.Errorf("Truncated output %q is not a prefix of %q", got, full)
	}
}

func TestNormalizeTruncationCountsRunes(t *testing.T) {
	input := strings.Repeat("日本語テキスト ", 20)

	got := Normalize(input, 10)
	if n := len([]rune(got)); n > 10 {
		t.Errorf("Expected at most 10 runes, got %d", n)
	}
}

func TestNormalizeNoTruncationWhenShort(t *testing.T) {
	got := Normalize("short text", 120000)
	if got != "short text" {
		t.Errorf("Expected input unchanged, got %q", got)
	}
}
