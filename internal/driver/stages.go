package driver

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"ember/internal/ast"
	"ember/internal/diag"
	"ember/internal/lexer"
	"ember/internal/observ"
	"ember/internal/parser"
	"ember/internal/pipeline"
	"ember/internal/sema"
	"ember/internal/source"
	"ember/internal/trace"
	"ember/internal/vm"
)

// fileJob прогоняет один файл через стадии до upto включительно.
type fileJob struct {
	index  int
	fs     *source.FileSet
	file   *source.File
	upto   pipeline.Stage
	opts   Options
	tracer trace.Tracer
	parent uint64
	timer  *observ.Timer
	res    *FileResult
	stages pipeline.Timings
}

func (j *fileJob) run(ctx context.Context) error {
	res := j.res
	res.FileID = j.file.ID
	res.Bag = diag.NewBag(j.opts.maxDiagnostics())
	if j.opts.Timings {
		j.timer = observ.NewTimer()
	}

	span := trace.Begin(j.tracer, trace.ScopeModule, "file:"+res.Path, j.parent)
	defer func() {
		detail := "ok"
		if res.Err != nil {
			detail = "failed at " + string(res.Failed)
		}
		span.End(detail)
	}()
	j.parent = span.ID()

	for _, stage := range pipeline.Stages {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := j.stage(ctx, stage)
		if err != nil {
			if _, ok := diag.AsError(err); !ok {
				return err
			}
			res.Err = err
			res.Failed = stage
			break
		}
		if stage == j.upto {
			break
		}
	}

	if j.timer != nil {
		report := j.timer.Report()
		res.Timing = &report
		d, err := timingDiagnostic(res.FileID, res.Path, j.upto, report)
		if err != nil {
			return err
		}
		// тайминги не должны теряться из-за лимита диагностик
		addPastCap(res.Bag, d)
	}
	return nil
}

// stage runs one stage with trace span, timer phase and progress events.
func (j *fileJob) stage(ctx context.Context, stage pipeline.Stage) error {
	pipeline.Emit(j.opts.Progress, j.index, j.res.Path, stage, pipeline.StatusWorking, nil, 0)
	span := trace.Begin(j.tracer, trace.ScopePass, string(stage), j.parent)
	idx := j.timer.Begin(string(stage))
	start := time.Now()

	var err error
	switch stage {
	case pipeline.StageLex:
		err = j.lex(span.ID())
	case pipeline.StageParse:
		err = j.parse(span.ID())
	case pipeline.StageAnalyze:
		err = j.analyze(span.ID())
	case pipeline.StageRun:
		err = j.eval(ctx, span.ID())
	default:
		err = fmt.Errorf("unknown stage %q", stage)
	}

	elapsed := time.Since(start)
	j.stages.Add(stage, elapsed)
	note := ""
	status := pipeline.StatusDone
	if err != nil {
		note = "failed"
		status = pipeline.StatusError
	}
	j.timer.End(idx, note)
	span.WithExtra("file", j.res.Path).End(note)
	if err != nil || stage == j.upto {
		// финальное событие несёт суммарное время файла
		pipeline.Emit(j.opts.Progress, j.index, j.res.Path, stage, status, err, j.stages.Sum(pipeline.Stages...))
	}
	return err
}

func (j *fileJob) reporter() diag.Reporter {
	return diag.BagReporter{Bag: j.res.Bag}
}

func (j *fileJob) lex(parent uint64) error {
	opts := lexer.Options{Tracer: j.tracer, Parent: parent, Reporter: j.reporter()}
	if j.opts.Raw {
		j.res.Tokens = lexer.Scan(j.file, opts)
		return nil
	}

	if toks, ok := j.opts.Cache.LoadTokens(j.file); ok {
		j.res.Tokens = toks
		j.res.CacheHit = true
		trace.Point(j.tracer, trace.ScopeModule, "cache", "hit", parent)
		return nil
	}

	toks, err := lexer.Lex(j.file, opts)
	if err != nil {
		return err
	}
	j.res.Tokens = toks
	if err := j.opts.Cache.StoreTokens(j.file, toks); err != nil {
		// кэш необязателен: сбой записи только трассируем
		trace.Point(j.tracer, trace.ScopeModule, "cache", "store failed: "+err.Error(), parent)
	}
	return nil
}

func (j *fileJob) parse(parent uint64) error {
	if j.opts.Raw {
		return fmt.Errorf("%s: cannot parse a raw token stream", j.res.Path)
	}
	b := ast.NewBuilder(ast.Hints{Items: uint(len(j.res.Tokens)/2 + 1), Exprs: uint(len(j.res.Tokens)/2 + 1)}, nil)
	prog, err := parser.Parse(j.res.Tokens, b, parser.Options{
		File:     j.file.ID,
		Tracer:   j.tracer,
		Parent:   parent,
		Reporter: j.reporter(),
	})
	if err != nil {
		return err
	}
	j.res.Builder = b
	j.res.Program = prog
	return nil
}

func (j *fileJob) analyze(parent uint64) error {
	res, err := sema.Analyze(j.res.Builder, j.res.Program, sema.Options{
		Reporter: j.reporter(),
		Tracer:   j.tracer,
		Parent:   parent,
	})
	if err != nil {
		return err
	}
	j.res.Sema = res
	return nil
}

func (j *fileJob) eval(ctx context.Context, parent uint64) error {
	var out bytes.Buffer
	values, err := vm.Eval(ctx, j.res.Builder, j.res.Program, vm.Options{
		Out:      &out,
		Reporter: j.reporter(),
		Tracer:   j.tracer,
		Parent:   parent,
	})
	j.res.Values = values
	j.res.Output = out.Bytes()
	return err
}
