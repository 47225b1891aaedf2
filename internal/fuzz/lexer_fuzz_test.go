package fuzztests

import (
	"testing"

	"newick/internal/diag"
	"newick/internal/lexer"
	"newick/internal/source"
	"newick/internal/testkit"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = append([]byte(nil), input[:maxFuzzInput]...)
		} else {
			input = append([]byte(nil), input...)
		}

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.nwk", input)
		file := fs.Get(fileID)

		bag := diag.NewBag(64)
		tokens := lexer.Tokenize(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}, ReportSkipped: true})
		if err := testkit.CheckTokenInvariants(tokens, file); err != nil {
			t.Fatalf("input %q: %v", input, err)
		}
		if bag.HasErrors() {
			t.Fatalf("lexer must not report errors, got %d diagnostics", bag.Len())
		}
	})
}
