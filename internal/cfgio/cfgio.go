// Package cfgio holds the external collaborators spec.md §1/§6 draws
// outside the grammar core: the grammar-file and input-file readers, an
// interactive (readline-backed) reader for a REPL-style session, and CLI
// output wrapping. None of this is part of the recognition/normalization
// algorithm; it exists only to get bytes in and readable text out.
package cfgio

import (
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/dekarrin/rosed"
)

// ReadGrammarFile reads the full contents of a grammar text file (spec §6's
// grammar text format) as a single string, suitable for grammar.New.
func ReadGrammarFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ReadInputFile reads a candidate-string file and tokenizes it by
// whitespace, one token sequence per call. Spec §6 leaves the tokenization
// scheme up to the surrounding I/O layer; whitespace-splitting is this
// layer's choice.
func ReadInputFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return strings.Fields(string(data)), nil
}

// InteractiveReader reads successive candidate strings from a terminal
// using GNU-readline-style editing and history, for the CLI's --repl mode.
// Grounded on the teacher's internal/input.InteractiveCommandReader.
type InteractiveReader struct {
	rl *readline.Instance
}

// NewInteractiveReader starts a readline session with the given prompt.
func NewInteractiveReader(prompt string) (*InteractiveReader, error) {
	rl, err := readline.NewEx(&readline.Config{Prompt: prompt})
	if err != nil {
		return nil, err
	}
	return &InteractiveReader{rl: rl}, nil
}

// ReadLine blocks for the next non-blank line of input, tokenized by
// whitespace. Returns io.EOF (via readline) when input ends.
func (r *InteractiveReader) ReadLine() ([]string, error) {
	for {
		line, err := r.rl.Readline()
		if err != nil {
			return nil, err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		return strings.Fields(line), nil
	}
}

// Close releases the underlying readline resources.
func (r *InteractiveReader) Close() error {
	return r.rl.Close()
}

// reportWidth is the column width CLI text reports are wrapped to.
const reportWidth = 78

// WrapReport wraps free-form CLI output text to a fixed width, as the
// teacher's engine.go does for console messages via rosed.Edit(...).Wrap.
// This is output formatting for the CLI surface, distinct from the (out of
// scope) grammar pretty-printer.
func WrapReport(text string) string {
	return rosed.Edit(text).Wrap(reportWidth).String()
}
