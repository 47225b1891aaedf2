package driver

import (
	"context"
	"errors"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"newick/internal/diag"
	"newick/internal/project"
	"newick/internal/source"
	"newick/internal/trace"
)

// ParseDirResult содержит результат разбора одного файла
type ParseDirResult struct {
	Path string // путь, как его вернул обход директории
	*ParseResult
	LoadErr error
}

// Failed reports whether the file did not produce a tree.
func (r ParseDirResult) Failed() bool {
	return r.LoadErr != nil || r.ParseResult == nil || r.Err != nil || r.Bag.HasErrors()
}

// ParseDir разбирает все файлы деревьев в dir параллельно.
// Результаты идут в лексикографическом порядке путей.
func ParseDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []ParseDirResult, error) {
	files, err := project.CollectFiles(dir, opts.extensions())
	if err != nil {
		return nil, nil, err
	}
	fs := source.NewFileSetWithBase(dir)
	results, err := ParseFiles(ctx, fs, files, opts)
	return fs, results, err
}

// ParseFiles разбирает paths параллельно, сохраняя их порядок.
// Файлы, которые не удалось прочитать, получают диагностику IO4001.
func ParseFiles(ctx context.Context, fs *source.FileSet, paths []string, opts Options) ([]ParseDirResult, error) {
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "parse-files")
	defer span.End("")
	span.WithExtra("files", itoa(len(paths)))

	results := make([]ParseDirResult, len(paths))
	if len(paths) == 0 {
		return results, nil
	}

	for _, path := range paths {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = parseOne(gctx, fs, path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func parseOne(ctx context.Context, fs *source.FileSet, path string, opts Options) ParseDirResult {
	started := time.Now()
	ctx, span := trace.Start(ctx, trace.ScopeFile, "file:"+path)

	emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusWorking})
	fileID, err := loadTimed(fs, path, opts)
	if err != nil {
		span.End("load failed")
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: err, Elapsed: time.Since(started)})
		return loadFailure(fs, path, err, opts)
	}

	emit(opts.Progress, Event{File: path, Stage: StageParse, Status: StatusWorking})
	res := parseFile(ctx, fs, fs.Get(fileID), opts)

	status := StatusDone
	detail := "ok"
	if res.Err != nil {
		status = StatusError
		detail = res.Err.Error()
	} else if res.Cached {
		detail = "cached"
	}
	span.End(detail)
	emit(opts.Progress, Event{File: path, Stage: StageParse, Status: status, Err: res.Err, Elapsed: time.Since(started)})
	return ParseDirResult{Path: path, ParseResult: res}
}

// loadFailure регистрирует пустой виртуальный файл, чтобы у диагностики
// был путь для вывода.
func loadFailure(fs *source.FileSet, path string, err error, opts Options) ParseDirResult {
	id := fs.Add(path, nil, source.FileVirtual)
	bag := diag.NewBag(opts.MaxDiagnostics)
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: id}, "failed to load file: "+describeLoadErr(err)))
	return ParseDirResult{
		Path: path,
		ParseResult: &ParseResult{
			FileSet: fs,
			File:    fs.Get(id),
			Bag:     bag,
			Err:     err,
		},
		LoadErr: err,
	}
}

func describeLoadErr(err error) string {
	var pathErr interface{ Unwrap() error }
	if errors.As(err, &pathErr) && pathErr.Unwrap() != nil {
		return pathErr.Unwrap().Error()
	}
	return err.Error()
}
