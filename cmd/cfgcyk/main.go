/*
Cfgcyk reads a context-free grammar and a candidate token sequence, decides
membership via CYK recognition, and prints a batch of random samples drawn
from the grammar's language.

Usage:

	cfgcyk [flags]

The flags are:

	-v, --version
		Give the current version of cfgcyk and then exit.

	-g, --grammar FILE
		Read the grammar definition from FILE. Defaults to "grammar.txt" in
		the current working directory.

	-i, --input FILE
		Read the candidate token sequence from FILE, tokenized by
		whitespace. Defaults to "input.txt" in the current working
		directory.

	-n, --samples COUNT
		Generate COUNT random samples from the grammar's language. Overrides
		the configured sample count.

	-s, --seed SEED
		Seed the sample generator's RNG. Zero (the default) keeps the
		configured seed; if that is also zero, an unpredictable seed is
		used.

	-c, --config FILE
		Read CLI defaults from the given TOML config file instead of the
		built-in defaults.

	-r, --repl
		After recognition and sampling, start an interactive session that
		reads additional candidate sequences from stdin via GNU-readline-
		style editing and reports membership for each.

Exit code 0 on success, non-zero on grammar-parse or I/O error.
*/
package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/dekarrin/cfgcyk/internal/cfgconfig"
	"github.com/dekarrin/cfgcyk/internal/cfgio"
	"github.com/dekarrin/cfgcyk/internal/grammar"
	"github.com/dekarrin/cfgcyk/internal/util"
	"github.com/dekarrin/cfgcyk/internal/version"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitUsageError indicates a problem with how the program was invoked.
	ExitUsageError

	// ExitParseError indicates the grammar text could not be parsed or
	// normalized into CNF.
	ExitParseError

	// ExitIOError indicates a problem reading the config, grammar or input
	// file, or starting the interactive session.
	ExitIOError
)

var (
	returnCode int

	flagVersion  = pflag.BoolP("version", "v", false, "Gives the version info")
	grammarFile  = pflag.StringP("grammar", "g", "grammar.txt", "The grammar definition file to read")
	inputFile    = pflag.StringP("input", "i", "input.txt", "The candidate token sequence file to read")
	sampleCount  = pflag.IntP("samples", "n", 0, "Number of random samples to generate (0: use config default)")
	seed         = pflag.Int64P("seed", "s", 0, "Seed for the sample generator's RNG (0: use config seed, unpredictable if that is 0)")
	configFile   = pflag.StringP("config", "c", "", "TOML config file carrying CLI defaults")
	replMode     = pflag.BoolP("repl", "r", false, "Start an interactive session after the initial run")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	cfg := cfgconfig.Default()
	if *configFile != "" {
		loaded, err := cfgconfig.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: reading config: %s\n", err.Error())
			returnCode = ExitIOError
			return
		}
		cfg = loaded
	}
	if *sampleCount > 0 {
		cfg.SampleCount = *sampleCount
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	grammarText, err := cfgio.ReadGrammarFile(*grammarFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: reading grammar file: %s\n", err.Error())
		returnCode = ExitIOError
		return
	}

	g, err := grammar.New(grammarText)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", reportMessage(err))
		returnCode = ExitParseError
		return
	}

	tokens, err := cfgio.ReadInputFile(*inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: reading input file: %s\n", err.Error())
		returnCode = ExitIOError
		return
	}

	fmt.Println(cfgio.WrapReport(fmt.Sprintf("recognition result for %q: %v", *inputFile, g.Recognize(tokens))))

	rngSeed := cfg.Seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(rngSeed))

	batchID := uuid.New()
	samples, sampleErr := g.SampleN(rng, cfg.SampleCount, cfg.MaxSampleSteps)
	fmt.Println(cfgio.WrapReport(fmt.Sprintf("sample batch %s (%d requested):", batchID, cfg.SampleCount)))
	for i, s := range samples {
		fmt.Printf("  %d: %q\n", i+1, s)
	}
	if len(samples) > 0 {
		quoted := make([]string, len(samples))
		for i, s := range samples {
			quoted[i] = fmt.Sprintf("%q", s)
		}
		fmt.Println(cfgio.WrapReport("in short, batch " + batchID.String() + " drew " + util.MakeTextList(quoted)))
	}
	if sampleErr != nil {
		fmt.Fprintf(os.Stderr, "WARNING: %s\n", sampleErr.Error())
	}

	if *replMode {
		runREPL(g)
	}
}

// runREPL starts an interactive loop that reads candidate sequences from
// stdin and reports membership for each, until EOF (Ctrl-D) or an error.
func runREPL(g *grammar.Grammar) {
	reader, err := cfgio.NewInteractiveReader("cfgcyk> ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: starting interactive session: %s\n", err.Error())
		returnCode = ExitIOError
		return
	}
	defer reader.Close()

	for {
		tokens, err := reader.ReadLine()
		if err != nil {
			return
		}
		fmt.Printf("%v\n", g.Recognize(tokens))
	}
}

// reportMessage extracts the human-readable message from an error returned
// by the grammar package, falling back to its technical message.
func reportMessage(err error) string {
	type reporter interface{ Report() string }
	if r, ok := err.(reporter); ok {
		return r.Report()
	}
	return err.Error()
}
