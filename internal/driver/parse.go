package driver

import (
	"context"
	"time"

	"newick/internal/diag"
	"newick/internal/parser"
	"newick/internal/project"
	"newick/internal/source"
	"newick/internal/trace"
	"newick/internal/tree"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tree    tree.Tree // nil если разбор не удался
	Tokens  int
	Bag     *diag.Bag
	Err     error // *parser.MalformedInputError или ошибка контекста
	Cached  bool
}

// Parse loads path and parses it as one tree. The returned error is only
// set for I/O failures; malformed input is reported in ParseResult.Err.
func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := loadTimed(fs, path, opts)
	if err != nil {
		return nil, err
	}
	return parseFile(ctx, fs, fs.Get(fileID), opts), nil
}

// ParseSource parses in-memory content, e.g. stdin.
func ParseSource(ctx context.Context, name string, content []byte, opts Options) *ParseResult {
	fs := source.NewFileSet()
	return parseFile(ctx, fs, fs.Get(fs.AddVirtual(name, content)), opts)
}

func parseFile(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) *ParseResult {
	res := &ParseResult{
		FileSet: fs,
		File:    file,
		Bag:     diag.NewBag(opts.MaxDiagnostics),
	}

	key := project.Combine(file.Hash, opts.fingerprint())
	if opts.Cache != nil && !opts.ReportSkipped {
		if hit := lookupCache(ctx, opts.Cache, key, res); hit {
			return res
		}
	}

	start := time.Now()
	parsed := parser.ParseFile(ctx, file, parser.Options{
		Reporter:      &diag.BagReporter{Bag: res.Bag},
		Permissive:    opts.Permissive,
		MaxDepth:      opts.MaxDepth,
		ReportSkipped: opts.ReportSkipped,
	})
	opts.Timer.Add("parse", time.Since(start))

	res.Tree = parsed.Tree
	res.Tokens = len(parsed.Tokens)
	res.Err = parsed.Err

	// кешируем только чистые разборы: предупреждения не сохраняются
	if opts.Cache != nil && res.Err == nil && !res.Bag.HasWarnings() {
		if err := opts.Cache.Put(key, &DiskPayload{
			Path:        file.Path,
			ContentHash: file.Hash,
			Tokens:      res.Tokens,
			Tree:        tree.ToWire(res.Tree),
		}); err != nil {
			res.Bag.Add(diag.New(diag.SevWarning, diag.IOCacheError, source.Span{File: file.ID},
				"failed to write parse cache: "+err.Error()))
		}
	}
	return res
}

func lookupCache(ctx context.Context, cache *DiskCache, key project.Digest, res *ParseResult) bool {
	var payload DiskPayload
	ok, err := cache.Get(key, &payload)
	if err != nil {
		res.Bag.Add(diag.New(diag.SevWarning, diag.IOCacheError, source.Span{File: res.File.ID},
			"ignoring unreadable cache entry: "+err.Error()))
		return false
	}
	if !ok || payload.ContentHash != res.File.Hash {
		return false
	}
	t, err := tree.FromWire(payload.Tree)
	if err != nil || t == nil {
		return false
	}
	res.Tree = t
	res.Tokens = payload.Tokens
	res.Cached = true
	trace.Point(trace.FromContext(ctx), trace.ScopeFile, "cache-hit", res.File.Path, trace.CurrentSpan(ctx).SpanID)
	return true
}
