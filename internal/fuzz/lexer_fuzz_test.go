package fuzztests

import (
	"bytes"
	"strings"
	"testing"

	"ember/internal/diag"
	"ember/internal/lexer"
	"ember/internal/source"
	"ember/internal/testkit"
)

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.em", input)
		file := fs.Get(fileID)
		if !bytes.Equal(file.Content, input) {
			t.Fatalf("virtual source was rewritten: %q -> %q", input, file.Content)
		}

		raw := lexer.Scan(file, lexer.Options{})
		if err := testkit.CheckRawTokens(raw, file); err != nil {
			t.Fatalf("raw scan: %v\ninput: %q", err, file.Content)
		}

		bag := diag.NewBag(4)
		toks, err := lexer.Validate(raw, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		if err != nil {
			de, ok := diag.AsError(err)
			if !ok || !strings.HasPrefix(de.Code().ID(), "LEX") {
				t.Fatalf("validate returned %v, want a LEX diagnostic", err)
			}
			if bag.Len() != 1 {
				t.Fatalf("reporter got %d diagnostics, want 1", bag.Len())
			}
			return
		}
		if err := testkit.CheckValidTokens(toks, file); err != nil {
			t.Fatalf("validated stream: %v\ninput: %q", err, file.Content)
		}

		again, err := lexer.Validate(toks, lexer.Options{})
		if err != nil || len(again) != len(toks) {
			t.Fatalf("validate is not idempotent: %v", err)
		}
	})
}
