package driver

import (
	"context"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"ztc/internal/bundle"
	"ztc/internal/diag"
	"ztc/internal/source"
	"ztc/internal/trace"
)

// BundleResult holds a bundle built from several scripts.
// Bag carries the diagnostics of every input in argument order.
type BundleResult struct {
	FileSet *source.FileSet
	Bundle  *bundle.Bundle
	Bag     *diag.Bag
}

// BuildBundle compiles paths concurrently, at most jobs at a time, and
// collects the results in a bundle. A file that cannot be read becomes an
// IO4001 error in Bag and is left out of the bundle; the caller decides
// whether the bundle is still worth writing.
//
// Entries are named by path relative to the working directory.
func BuildBundle(ctx context.Context, paths []string, opts Options, jobs int) (*BundleResult, error) {
	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopeDriver, "bundle", trace.ParentSpan(ctx))
	defer span.End("")
	ctx = trace.WithParentSpan(ctx, span)

	// FileSet не потокобезопасен: загружаем всё до запуска горутин
	fs := source.NewFileSet()
	ids := make([]source.FileID, len(paths))
	loadErrs := make([]error, len(paths))
	for i, path := range paths {
		ids[i], loadErrs[i] = loadScript(ctx, fs, path, opts)
		if loadErrs[i] != nil {
			// пустой виртуальный файл, чтобы у диагностики был путь
			ids[i] = fs.AddVirtual(path, nil)
		}
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	outputs := make([][]byte, len(paths))
	bags := make([]*diag.Bag, len(paths))

	idx := opts.Timer.Begin("compile")
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(min(jobs, len(paths)), 1))
	for i := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			bag := diag.NewBag(opts.MaxDiagnostics)
			bags[i] = bag
			file := fs.Get(ids[i])
			if loadErrs[i] != nil {
				diag.ReportError(diag.BagReporter{Bag: bag}, diag.IOLoadFileError,
					source.Span{File: file.ID}, loadErrs[i].Error()).Emit()
				return nil
			}

			fileSpan := trace.Begin(tr, trace.ScopeFile, "file:"+file.Path, span.ID())
			outputs[i] = compileFile(file, bag, opts)
			bag.Sort()
			fileSpan.End("")
			return nil
		})
	}
	err := g.Wait()
	opts.Timer.End(idx, "")
	if err != nil {
		return nil, err
	}

	b := bundle.New(opts.Chat)
	merged := diag.NewBag(opts.MaxDiagnostics)
	for i, path := range paths {
		merged.Merge(bags[i])
		if outputs[i] == nil {
			continue
		}
		b.Add(bundle.Entry{
			Name:   entryName(path, fs.BaseDir()),
			Source: fs.Get(ids[i]).Hash,
			Data:   outputs[i],
		})
	}
	b.Sort()

	return &BundleResult{FileSet: fs, Bundle: b, Bag: merged}, nil
}

func entryName(path, baseDir string) string {
	if rel, err := source.RelativePath(path, baseDir); err == nil {
		return rel
	}
	return filepath.ToSlash(path)
}
