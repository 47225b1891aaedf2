package driver

import (
	"newick/internal/diag"
	"newick/internal/lexer"
	"newick/internal/source"
	"newick/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize загружает файл и возвращает все его токены (без EOF).
func Tokenize(path string, opts Options) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := loadTimed(fs, path, opts)
	if err != nil {
		return nil, err
	}
	return tokenizeFile(fs, fs.Get(fileID), opts), nil
}

// TokenizeSource tokenizes in-memory content, e.g. stdin.
func TokenizeSource(name string, content []byte, opts Options) *TokenizeResult {
	fs := source.NewFileSet()
	return tokenizeFile(fs, fs.Get(fs.AddVirtual(name, content)), opts)
}

func tokenizeFile(fs *source.FileSet, file *source.File, opts Options) *TokenizeResult {
	bag := diag.NewBag(opts.MaxDiagnostics)
	reporterAdapter := &lexer.ReporterAdapter{Bag: bag}

	var tokens []token.Token
	opts.Timer.Track("tokenize", func() {
		tokens = lexer.Tokenize(file, lexer.Options{
			Reporter:      reporterAdapter.Reporter(),
			ReportSkipped: opts.ReportSkipped,
		})
	})
	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}
}

func loadTimed(fs *source.FileSet, path string, opts Options) (id source.FileID, err error) {
	load := fs.Load
	if opts.NFC {
		load = fs.LoadNFC
	}
	opts.Timer.Track("load", func() { id, err = load(path) })
	return id, err
}
