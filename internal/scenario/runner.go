package scenario

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/vango-dev/nsdom/internal/errors"
	"github.com/vango-dev/nsdom/pkg/dom/memdom"
	"github.com/vango-dev/nsdom/pkg/render"
)

// RunnerConfig configures a Runner.
type RunnerConfig struct {
	// Logger receives one line per scenario. Defaults to slog.Default().
	Logger *slog.Logger

	// Middleware wraps every render.
	Middleware []render.Middleware
}

// Runner executes scenarios. Each scenario gets a fresh document,
// container and renderer.
type Runner struct {
	logger     *slog.Logger
	middleware []render.Middleware
}

// NewRunner creates a Runner.
func NewRunner(config RunnerConfig) *Runner {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{logger: logger, middleware: config.Middleware}
}

// Failure is one unmet expectation.
type Failure struct {
	Step string `json:"step"`
	Expr string `json:"expr"`
	Want string `json:"want,omitempty"`
	Got  string `json:"got"`
}

func (f Failure) String() string {
	if f.Want == "" {
		return fmt.Sprintf("%s: %s is not truthy (got %s)", f.Step, f.Expr, f.Got)
	}
	return fmt.Sprintf("%s: %s = %s, want %s", f.Step, f.Expr, f.Got, f.Want)
}

// Result is the outcome of one scenario.
type Result struct {
	Name    string `json:"name"`
	Renders int    `json:"renders"`
	Checks  int    `json:"checks"`

	// Mutations totals the DOM mutations of every render, repetitions
	// included.
	Mutations int           `json:"mutations"`
	Failures  []Failure     `json:"failures,omitempty"`
	Duration  time.Duration `json:"duration"`

	// RenderErr is set when a render failed unexpectedly; later steps
	// did not run.
	RenderErr error `json:"-"`
}

// Passed reports whether every render and check succeeded.
func (r *Result) Passed() bool {
	return r.RenderErr == nil && len(r.Failures) == 0
}

// Err returns E145 for an unexpected render failure, E143 for failed
// checks, and nil otherwise.
func (r *Result) Err() error {
	if r.RenderErr != nil {
		return errors.New("E145").WithPath(r.Name).Wrap(r.RenderErr)
	}
	if len(r.Failures) == 0 {
		return nil
	}
	lines := make([]string, len(r.Failures))
	for i, f := range r.Failures {
		lines[i] = f.String()
	}
	return errors.New("E143").
		WithPath(r.Name).
		WithDetail(strings.Join(lines, "; "))
}

// Run executes sc. The returned error is reserved for problems that are
// not the scenario's own; check Result.Err for the verdict.
func (r *Runner) Run(ctx context.Context, sc *Scenario) (*Result, error) {
	start := time.Now()
	res := &Result{Name: sc.Name}

	doc := memdom.NewDocument()
	container, err := doc.CreateElement(sc.Container)
	if err != nil {
		return nil, errors.New("E142").
			WithPath(sc.Name).
			WithDetailf("container tag %q", sc.Container).
			Wrap(err)
	}
	renderer := render.NewRenderer(doc, render.RendererConfig{
		Logger:     r.logger,
		Middleware: r.middleware,
	})
	ev := newEvaluator(container)
	rec := doc.Record()
	defer rec.Stop()

	ctx = render.WithLabel(ctx, sc.Name)

steps:
	for i := range sc.Steps {
		step := &sc.Steps[i]
		label := step.Label(i)

		// last holds the mutation count of the step's final render, the one
		// the mutations expectation is checked against.
		last := 0
		for n := 0; n < step.repeat(); n++ {
			node, err := step.VNode()
			if err != nil {
				return nil, errors.New("E142").WithPath(sc.Name + " > " + label).Wrap(err)
			}
			rec.Reset()
			err = renderer.RenderContext(ctx, node, container)
			res.Renders++
			last = rec.Len()
			res.Mutations += last

			if step.Error != "" {
				if got := errors.Code(err); got != step.Error {
					res.Failures = append(res.Failures, Failure{
						Step: label,
						Expr: "render error",
						Want: step.Error,
						Got:  fmt.Sprintf("%q (%v)", got, err),
					})
				}
				continue
			}
			if err != nil {
				res.RenderErr = fmt.Errorf("%s: %w", label, err)
				break steps
			}
		}

		if step.Mutations != nil {
			res.Checks++
			if last != *step.Mutations {
				res.Failures = append(res.Failures, Failure{
					Step: label,
					Expr: "mutations",
					Want: fmt.Sprint(*step.Mutations),
					Got:  fmt.Sprint(last),
				})
			}
		}

		for j := range step.Expect {
			exp := &step.Expect[j]
			res.Checks++
			got, ok, err := ev.eval(exp)
			if err != nil {
				res.Failures = append(res.Failures, Failure{
					Step: label, Expr: exp.Expr, Want: string(exp.Equals), Got: "error: " + err.Error(),
				})
				continue
			}
			if !ok {
				res.Failures = append(res.Failures, Failure{
					Step: label, Expr: exp.Expr, Want: string(exp.Equals), Got: describe(got),
				})
			}
		}
	}

	if err := renderer.Unmount(container); err != nil {
		r.logger.Warn("scenario cleanup failed", "scenario", sc.Name, "error", err)
	}
	res.Duration = time.Since(start)

	if res.Passed() {
		r.logger.Info("scenario passed",
			"scenario", sc.Name,
			"renders", res.Renders,
			"checks", res.Checks)
	} else {
		r.logger.Warn("scenario failed",
			"scenario", sc.Name,
			"code", errors.Code(res.Err()),
			"failures", len(res.Failures))
	}
	return res, nil
}

func describe(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

// RunAll loads and runs scenarios from src. With no names every listed
// scenario runs. It stops at the first scenario that cannot be loaded.
func (r *Runner) RunAll(ctx context.Context, src Source, names ...string) ([]*Result, error) {
	if len(names) == 0 {
		listed, err := src.List(ctx)
		if err != nil {
			return nil, err
		}
		names = listed
	}

	results := make([]*Result, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		sc, err := src.Load(ctx, name)
		if err != nil {
			return results, err
		}
		res, err := r.Run(ctx, sc)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}
