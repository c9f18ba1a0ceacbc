package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"ember/internal/diag"
	"ember/internal/pipeline"
	"ember/internal/project"
	"ember/internal/source"
	"ember/internal/trace"
)

// TokenizeFiles лексирует файлы параллельно.
func TokenizeFiles(ctx context.Context, paths []string, opts Options) (*Result, error) {
	return processFiles(ctx, paths, pipeline.StageLex, opts)
}

// ParseFiles лексирует и парсит файлы параллельно.
func ParseFiles(ctx context.Context, paths []string, opts Options) (*Result, error) {
	return processFiles(ctx, paths, pipeline.StageParse, opts)
}

// RunFiles прогоняет файлы через весь конвейер параллельно и печатает
// значения в opts.Out в порядке аргументов.
func RunFiles(ctx context.Context, paths []string, opts Options) (*Result, error) {
	res, err := processFiles(ctx, paths, pipeline.StageRun, opts)
	if err != nil {
		return res, err
	}
	return res, writeOutputs(res, opts)
}

// RunSource evaluates in-memory source registered under name.
func RunSource(ctx context.Context, name, src string, opts Options) (*Result, error) {
	fileSet := source.NewFileSetWithBase(opts.BaseDir)
	id := fileSet.AddVirtual(name, []byte(src))
	res := &Result{FileSet: fileSet, Files: make([]FileResult, 1)}
	res.Files[0].Path = name
	if err := runJobs(ctx, res, map[int]source.FileID{0: id}, nil, pipeline.StageRun, opts); err != nil {
		return res, err
	}
	return res, writeOutputs(res, opts)
}

func writeOutputs(res *Result, opts Options) error {
	if opts.Out == nil {
		return nil
	}
	for i := range res.Files {
		if len(res.Files[i].Output) == 0 {
			continue
		}
		if _, err := opts.Out.Write(res.Files[i].Output); err != nil {
			return fmt.Errorf("write output of %s: %w", res.Files[i].Path, err)
		}
	}
	return nil
}

// ExpandPaths заменяет каталоги отсортированным списком *.em файлов внутри.
func ExpandPaths(paths []string) ([]string, error) {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		st, err := os.Stat(p)
		if err != nil || !st.IsDir() {
			out = append(out, p)
			continue
		}
		files, err := listSourceFiles(p)
		if err != nil {
			return nil, err
		}
		out = append(out, files...)
	}
	return out, nil
}

// listSourceFiles возвращает отсортированный список всех *.em файлов в директории
func listSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, project.SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func processFiles(ctx context.Context, paths []string, upto pipeline.Stage, opts Options) (*Result, error) {
	fileSet := source.NewFileSetWithBase(opts.BaseDir)
	res := &Result{FileSet: fileSet, Files: make([]FileResult, len(paths))}
	if len(paths) == 0 {
		return res, nil
	}

	// FileSet не потокобезопасен: грузим всё до старта горутин
	fileIDs := make(map[int]source.FileID, len(paths))
	loadErrors := make(map[int]error)
	failedIDs := make(map[source.FileID]error)
	for i, path := range paths {
		res.Files[i].Path = path
		// повторный путь берёт уже загруженный файл
		if id, seen := fileSet.GetLatest(path); seen {
			fileIDs[i] = id
			if err, failed := failedIDs[id]; failed {
				loadErrors[i] = err
			}
			continue
		}
		id, err := fileSet.Load(path)
		if err != nil {
			// пустой виртуальный файл держит путь для диагностики
			id = fileSet.AddVirtual(path, nil)
			loadErrors[i] = err
			failedIDs[id] = err
		}
		fileIDs[i] = id
	}

	pipeline.EmitQueued(opts.Progress, paths)
	return res, runJobs(ctx, res, fileIDs, loadErrors, upto, opts)
}

func runJobs(ctx context.Context, res *Result, fileIDs map[int]source.FileID, loadErrors map[int]error, upto pipeline.Stage, opts Options) error {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, string(upto), trace.CurrentSpan(ctx))
	defer span.End(fmt.Sprintf("files=%d sources=%d", len(res.Files), res.FileSet.Len()))

	jobs := make([]*fileJob, len(res.Files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs(len(res.Files)))

	for i := range res.Files {
		fr := &res.Files[i]
		if loadErr, failed := loadErrors[i]; failed {
			de := diag.Errorf(diag.IOLoadFileError, source.At(fileIDs[i], 0), "failed to load file: %v", loadErr)
			fr.FileID = fileIDs[i]
			fr.Bag = diag.NewBag(opts.maxDiagnostics())
			fr.Bag.Add(de.Diag)
			fr.Err = de
			fr.Failed = pipeline.StageLex
			pipeline.Emit(opts.Progress, i, fr.Path, pipeline.StageLex, pipeline.StatusError, de, 0)
			continue
		}
		job := &fileJob{
			index:  i,
			fs:     res.FileSet,
			file:   res.FileSet.Get(fileIDs[i]),
			upto:   upto,
			opts:   opts,
			tracer: tracer,
			parent: span.ID(),
			res:    fr,
		}
		jobs[i] = job
		// индексы уникальны для каждой горутины, мьютекс не нужен
		g.Go(func() error {
			return job.run(gctx)
		})
	}

	err := g.Wait()
	for _, job := range jobs {
		if job == nil {
			continue
		}
		for _, stage := range pipeline.Stages {
			if job.stages.Has(stage) {
				res.Timings.Add(stage, job.stages.Duration(stage))
			}
		}
	}
	return err
}
