package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"ember/internal/source"
	"ember/internal/token"
)

// TokenOutput is the serialisable form of one token.
type TokenOutput struct {
	Kind  string `json:"kind" msgpack:"kind"`
	Text  string `json:"text" msgpack:"text"`
	File  uint32 `json:"file" msgpack:"file"`
	Start uint32 `json:"start" msgpack:"start"`
	End   uint32 `json:"end" msgpack:"end"`
}

func tokenOutputs(tokens []token.Token) []TokenOutput {
	out := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, TokenOutput{
			Kind:  tok.Kind.String(),
			Text:  tok.Text,
			File:  uint32(tok.Span.File),
			Start: tok.Span.Start,
			End:   tok.Span.End,
		})
	}
	return out
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		if _, err := fmt.Fprintf(w, "%3d: %-12s %q at %s\n",
			i+1, tok.Kind.String(), tok.Text, formatSpan(tok.Span, fs)); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(tokenOutputs(tokens))
}

// FormatTokensMsgpack пишет токены одним msgpack-массивом.
func FormatTokensMsgpack(w io.Writer, tokens []token.Token) error {
	enc := msgpack.NewEncoder(w)
	enc.SetCustomStructTag("msgpack")
	return enc.Encode(tokenOutputs(tokens))
}

