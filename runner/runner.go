// Package runner executes configured catalog tasks: it resolves the project
// root, asks the staleness checker whether each output needs regenerating,
// builds and renders the document and atomically replaces the output file.
package runner

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/teranos/assetgen/am"
	"github.com/teranos/assetgen/am/geotime"
	"github.com/teranos/assetgen/assetgen"
	"github.com/teranos/assetgen/catalog"
	"github.com/teranos/assetgen/errors"
	"github.com/teranos/assetgen/logger"
	"github.com/teranos/assetgen/staleness"
)

var (
	// ErrProjectRootUnset means the project root environment variable is missing or empty
	ErrProjectRootUnset = errors.New("project root not set")

	// ErrCatalogMissing means a task's catalog directory does not exist
	ErrCatalogMissing = errors.New("catalog not found")
)

// Options injects the runner's side effects
type Options struct {
	// Fs is the filesystem catalogs are read from and outputs written to (default: OS)
	Fs afero.Fs

	// Now is the clock for the generated header (default: time.Now)
	Now func() time.Time

	// LookupEnv resolves the project root variable (default: os.LookupEnv)
	LookupEnv func(string) (string, bool)

	// OnWrite is called after each output file is replaced
	OnWrite func(path string)

	// Force skips the staleness check and regenerates every task
	Force bool
}

func (o Options) withDefaults() Options {
	if o.Fs == nil {
		o.Fs = afero.NewOsFs()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.LookupEnv == nil {
		o.LookupEnv = os.LookupEnv
	}
	return o
}

// Run executes every task in cfg and reports per-task outcomes.
// It never returns an error: failures are recorded in the report and the
// caller decides the exit status.
func Run(ctx context.Context, cfg *am.Config, opts Options) *Report {
	opts = opts.withDefaults()

	report := &Report{
		RunID:   uuid.NewString(),
		Results: make([]Result, len(cfg.Tasks)),
	}

	ctx = logger.WithRunID(ctx, report.RunID)
	ctx = logger.WithComponent(ctx, "runner")
	log := logger.LoggerFromContext(ctx)

	tasks := make([]am.TaskConfig, len(cfg.Tasks))
	for i, t := range cfg.Tasks {
		tasks[i] = t.Normalized()
	}

	root, err := projectRoot(cfg, opts.LookupEnv)
	if err != nil {
		log.Warnw("Project root not set, nothing to do",
			"env", rootEnv(cfg),
			logger.FieldReason, err.Error(),
		)
		for i, t := range tasks {
			report.Results[i] = Result{Task: t.Name, Kind: t.Kind, Output: t.Output}
			report.Results[i].skip(ErrProjectRootUnset.Error(), err)
			report.Results[i].Hint = errors.HintText(err)
		}
		return report
	}
	report.Root = root

	loc, err := geotime.Location(cfg.Generate.Timezone)
	if err != nil {
		for i, t := range tasks {
			report.Results[i] = Result{Task: t.Name, Kind: t.Kind, Output: t.Output}
			report.Results[i].fail(errors.Wrap(err, "generate.timezone"))
		}
		return report
	}
	now := opts.Now().In(loc)

	log.Debugw("Starting generation",
		logger.FieldRoot, root,
		"tasks", len(tasks),
		"parallel", cfg.Generate.Parallel,
		"force", opts.Force,
	)

	run := func(i int) {
		if err := ctx.Err(); err != nil {
			report.Results[i] = Result{Task: tasks[i].Name, Kind: tasks[i].Kind, Output: tasks[i].Output}
			report.Results[i].skip("cancelled", err)
			return
		}
		report.Results[i] = runTask(ctx, root, tasks[i], cfg.Generate, now, opts)
	}

	if cfg.Generate.Parallel {
		// Each goroutine owns one slot of report.Results
		var g errgroup.Group
		for i := range tasks {
			g.Go(func() error {
				run(i)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i := range tasks {
			run(i)
		}
	}

	c := report.Counts()
	log.Infow("Generation finished",
		"succeeded", c.Succeeded,
		"skipped", c.Skipped,
		"failed", c.Failed,
	)
	return report
}

// runTask executes one normalized task. Panics become failed results.
func runTask(ctx context.Context, root string, task am.TaskConfig, gen am.GenerateConfig, now time.Time, opts Options) (res Result) {
	start := time.Now()
	res = Result{Task: task.Name, Kind: task.Kind, Output: task.Output}

	log := logger.LoggerFromContext(ctx).With(
		logger.FieldTask, task.Name,
		logger.FieldCatalog, task.Catalog,
		logger.FieldOutput, task.Output,
	)

	defer func() {
		if r := recover(); r != nil {
			res.Reason = ""
			res.fail(errors.AssertionFailedf("task %s panicked: %v", task.Name, r))
		}
		res.Duration = time.Since(start)

		switch res.Status {
		case StatusFailed:
			log.Errorw("Task failed",
				logger.FieldError, res.Error,
				logger.FieldDurationMS, res.Duration.Milliseconds(),
			)
		case StatusSkipped:
			log.Infow("Task skipped", logger.FieldReason, res.Reason)
		default:
			log.Infow("Task generated",
				logger.FieldEntries, res.Entries,
				logger.FieldReason, res.Reason,
				logger.FieldDurationMS, res.Duration.Milliseconds(),
			)
		}
	}()

	p, err := newPlan(opts.Fs, root, task)
	if err != nil {
		if errors.Is(err, ErrCatalogMissing) {
			res.skip(ErrCatalogMissing.Error(), err)
			return res
		}
		res.fail(err)
		return res
	}
	res.Entries = len(p.entries)

	reason := "forced"
	if !opts.Force {
		decision := staleness.Check(opts.Fs, p.output, catalog.Paths(p.entries), gen.OptimizeByDate)
		log.Debugw("Staleness decision",
			"regenerate", decision.Regenerate,
			logger.FieldReason, decision.Reason,
			logger.FieldFolder, decision.Trigger,
		)
		if !decision.Regenerate {
			res.skip(decision.Reason, nil)
			if exists, _ := afero.Exists(opts.Fs, p.output); !exists {
				res.Hint = "run with --force to create the output"
			}
			return res
		}
		reason = decision.Reason
	}

	data, doc, err := p.render(opts.Fs, now)
	if err != nil {
		res.fail(err)
		if errors.IsDecodeError(err) {
			res.Hint = "fix or remove the malformed Contents.json; the previous output was kept"
		}
		return res
	}

	if err := writeAtomic(opts.Fs, p.output, data); err != nil {
		res.fail(err)
		return res
	}
	if opts.OnWrite != nil {
		opts.OnWrite(p.output)
	}

	res.Status = StatusSucceeded
	res.Reason = reason
	res.Entries = len(doc.Declarations)
	log.Debugw("Wrote output", logger.FieldBytes, len(data), "assets", doc.Names())
	return res
}

// plan is a task resolved against the project root with its entries scanned
type plan struct {
	task      am.TaskConfig
	kind      catalog.Kind
	strategy  assetgen.Strategy
	formatter assetgen.Formatter
	catalog   string
	output    string
	entries   []catalog.Entry
}

func newPlan(fs afero.Fs, root string, task am.TaskConfig) (*plan, error) {
	kind, err := catalog.ParseKind(task.Kind)
	if err != nil {
		return nil, err
	}
	strategy, err := assetgen.ParseStrategy(task.Strategy)
	if err != nil {
		return nil, err
	}
	formatter, err := NewFormatter(task.Format, task.Output)
	if err != nil {
		return nil, err
	}

	p := &plan{
		task:      task,
		kind:      kind,
		strategy:  strategy,
		formatter: formatter,
		catalog:   filepath.Join(root, task.Catalog),
		output:    filepath.Join(root, task.Output),
	}

	if !catalog.Exists(fs, p.catalog) {
		return nil, errors.Wrapf(ErrCatalogMissing, "%s", p.catalog)
	}

	p.entries, err = catalog.Scan(fs, p.catalog, kind)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// render builds the document and renders it without touching the output
func (p *plan) render(fs afero.Fs, now time.Time) ([]byte, *assetgen.Document, error) {
	doc, err := assetgen.Build(fs, p.entries, assetgen.Options{
		Kind:      p.kind,
		Strategy:  p.strategy,
		Container: p.task.Container,
		Package:   p.task.Package,
		Bundle:    p.task.Bundle,
		Now:       now,
	})
	if err != nil {
		return nil, nil, err
	}

	data, err := p.formatter.Render(doc)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to render %s", p.formatter.Language())
	}
	return data, doc, nil
}

func rootEnv(cfg *am.Config) string {
	if cfg.Project.RootEnv == "" {
		return am.DefaultRootEnv
	}
	return cfg.Project.RootEnv
}

// projectRoot resolves the project directory from the configured variable
func projectRoot(cfg *am.Config, lookup func(string) (string, bool)) (string, error) {
	name := rootEnv(cfg)
	root, ok := lookup(name)
	if !ok || root == "" {
		return "", errors.WithHintf(
			errors.Wrapf(ErrProjectRootUnset, "$%s", name),
			"export %s=/path/to/project, or set project.root_env in am.toml", name,
		)
	}
	return root, nil
}
