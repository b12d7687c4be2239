package extraction

import (
	"strings"

	prose "github.com/jdkato/prose/v2"
)

// PhraseDetector turns free text into an ordered token stream. The engine
// builds its candidate phrases (1..3 token windows) on top of that stream, so
// swapping the detector never changes the weighting contract.
type PhraseDetector interface {
	Tokens(text string) []string
}

// ProseDetector tokenizes with the prose NLP library. Tagging and entity
// extraction are disabled: tokenization and sentence segmentation are the only
// stages needed here and both are deterministic for identical input.
type ProseDetector struct{}

func NewProseDetector() ProseDetector {
	return ProseDetector{}
}

func (ProseDetector) Tokens(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	doc, err := prose.NewDocument(
		text,
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		// Malformed input must not abort extraction; fall back to the plain
		// scanner so the caller still gets whatever can be recovered.
		return ScanDetector{}.Tokens(text)
	}

	toks := doc.Tokens()
	out := make([]string, 0, len(toks))
	for _, t := range toks {
		w := trimTokenPunct(t.Text)
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

// ScanDetector is a dependency-free tokenizer: maximal runs of letters,
// digits, and the symbol characters that occur inside skill names
// ("c++", "ci/cd", "node.js"). Used as the prose fallback and in tests.
type ScanDetector struct{}

func (ScanDetector) Tokens(text string) []string {
	out := make([]string, 0, 64)
	var b strings.Builder
	flush := func() {
		if b.Len() == 0 {
			return
		}
		w := trimTokenPunct(b.String())
		if w != "" {
			out = append(out, w)
		}
		b.Reset()
	}

	for _, r := range text {
		if isTokenRune(r) {
			b.WriteRune(r)
			continue
		}
		flush()
	}
	flush()
	return out
}

func isTokenRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '+' || r == '#' || r == '.' || r == '/' || r == '-':
		return true
	}
	return r > 127 // keep non-ASCII letters intact
}

// trimTokenPunct strips sentence punctuation that clings to a word
// ("Python.", "-skills") while preserving interior symbols ("node.js") and
// meaningful suffixes ("c++", "c#").
func trimTokenPunct(w string) string {
	w = strings.Trim(w, "-/")
	w = strings.TrimRight(w, ".")
	if strings.EqualFold(w, ".net") {
		return w
	}
	return strings.TrimLeft(w, ".")
}
