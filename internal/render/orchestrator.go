package render

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/ivlev/shotmaster/internal/config"
	"github.com/ivlev/shotmaster/internal/resolver"
	"github.com/ivlev/shotmaster/internal/store"
)

// Outcome classifies one render job.
type Outcome string

const (
	// OutcomeSuccess: every pass rendered.
	OutcomeSuccess Outcome = "success"
	// OutcomePartial: at least one pass failed and at least one rendered.
	OutcomePartial Outcome = "partial"
	// OutcomeFailure: no pass rendered, or setup failed before any
	// render attempt.
	OutcomeFailure Outcome = "failure"
)

// PassResult records the fate of one pass within a job.
type PassResult struct {
	// Pass is the pass name, empty for the single anonymous render of a
	// camera with use_passes off.
	Pass      string
	OutputDir string
	Err       error
}

// Report is the outcome of one render job.
type Report struct {
	Camera   string
	Outcome  Outcome
	Passes   []PassResult
	Duration time.Duration

	// Degraded is set when a reference degraded silently during
	// resolution or apply (dangling group, unknown view layer).
	Degraded bool

	// RestoreErr is a restoration failure, surfaced separately from
	// pass errors: the shared environment may be left inconsistent.
	RestoreErr error
}

// Failed counts the passes that did not render.
func (r Report) Failed() int {
	n := 0
	for _, p := range r.Passes {
		if p.Err != nil {
			n++
		}
	}
	return n
}

// BatchReport aggregates the jobs of a multi-camera render.
type BatchReport struct {
	Reports   []Report
	Succeeded int
	Partial   int
	Failed    int
}

// Orchestrator owns the snapshot/apply/render/restore lifecycle over the
// shared render environment. The environment is process-wide mutable
// state, so at most one job is in flight at a time; concurrent calls
// block on an internal single-slot semaphore until the running job
// finishes or their context is done.
type Orchestrator struct {
	store  *store.Store
	env    Environment
	engine Engine
	jobs   *semaphore.Weighted

	// FallbackDir receives output when a pass directory cannot be
	// created.
	FallbackDir string
}

// NewOrchestrator wires an orchestrator to its collaborators.
func NewOrchestrator(st *store.Store, env Environment, engine Engine) *Orchestrator {
	return &Orchestrator{
		store:       st,
		env:         env,
		engine:      engine,
		jobs:        semaphore.NewWeighted(1),
		FallbackDir: "renders",
	}
}

// Render runs one job for the named camera. animate selects animation
// over still rendering; preview renders to a transient surface, writing
// nothing, but still goes through the snapshot/apply/restore lifecycle.
// The returned error covers job admission only (unknown camera,
// canceled context); render failures are reported per pass in the
// Report.
func (o *Orchestrator) Render(ctx context.Context, cameraName string, animate, preview bool) (Report, error) {
	if err := o.jobs.Acquire(ctx, 1); err != nil {
		return Report{}, err
	}
	defer o.jobs.Release(1)

	cam, err := o.store.Camera(cameraName)
	if err != nil {
		return Report{}, err
	}
	return o.render(ctx, cam, animate, preview), nil
}

// RenderAll runs one job per camera in declaration order.
func (o *Orchestrator) RenderAll(ctx context.Context, animate, preview bool) (BatchReport, error) {
	return o.renderBatch(ctx, o.store.Cameras(), animate, preview)
}

// RenderGroup runs one job per camera referencing the named group.
func (o *Orchestrator) RenderGroup(ctx context.Context, group string, animate, preview bool) (BatchReport, error) {
	cams := o.store.CamerasInGroup(group)
	if len(cams) == 0 {
		return BatchReport{}, fmt.Errorf("no cameras in group %q", group)
	}
	return o.renderBatch(ctx, cams, animate, preview)
}

func (o *Orchestrator) renderBatch(ctx context.Context, cams []config.Camera, animate, preview bool) (BatchReport, error) {
	if err := o.jobs.Acquire(ctx, 1); err != nil {
		return BatchReport{}, err
	}
	defer o.jobs.Release(1)

	var batch BatchReport
	for _, cam := range cams {
		if err := ctx.Err(); err != nil {
			return batch, err
		}
		report := o.render(ctx, cam, animate, preview)
		batch.Reports = append(batch.Reports, report)
		switch report.Outcome {
		case OutcomeSuccess:
			batch.Succeeded++
		case OutcomePartial:
			batch.Partial++
		default:
			batch.Failed++
		}
	}
	return batch, nil
}

// render executes one job. Callers hold the job semaphore. The
// environment snapshot taken first is written back in a defer, so
// restoration runs exactly once on every path out of this function,
// panics included.
func (o *Orchestrator) render(ctx context.Context, cam config.Camera, animate, preview bool) (report Report) {
	start := time.Now()
	report.Camera = cam.Name

	cfg := resolver.Resolve(cam, o.store)
	report.Degraded = cfg.Degraded

	snapshot := o.env.State()

	defer func() {
		report.RestoreErr = o.env.SetState(snapshot)
		if report.RestoreErr != nil {
			log.Printf("[!] environment restore failed after %s: %v", cam.Name, report.RestoreErr)
		}
		report.Duration = time.Since(start)
		if report.Outcome == OutcomeSuccess || report.Outcome == OutcomePartial {
			o.store.RecordRender(report.Duration)
		}
	}()

	applied := snapshot.Clone()
	applied.Engine = cfg.Engine
	applied.Width = cfg.Width
	applied.Height = cfg.Height
	applied.Percentage = cfg.Percentage
	applied.Samples[cfg.Engine] = cfg.Samples
	applied.ActiveCamera = cam.Name
	if cfg.ViewLayer != "" {
		applied.ActiveLayer = cfg.ViewLayer
	}
	applied.FrameStart = cfg.FrameStart
	applied.FrameEnd = cfg.FrameEnd
	if !preview {
		applied.FileFormat = cam.FileFormat
	}

	if err := o.env.SetState(applied); err != nil {
		report.Outcome = OutcomeFailure
		report.Passes = append(report.Passes, PassResult{Err: fmt.Errorf("apply environment: %w", err)})
		return report
	}

	// An overridden layer the environment does not know stays on the
	// previous layer; make that observable.
	if cfg.ViewLayer != "" && o.env.State().ActiveLayer != cfg.ViewLayer {
		report.Degraded = true
	}

	// With use_passes off, exactly one anonymous render happens no
	// matter what the pass list contains.
	passes := []string{""}
	if cam.UsePasses {
		passes = passes[:0]
		for _, p := range cam.EnabledPasses() {
			passes = append(passes, p.Name)
		}
	}

	for _, pass := range passes {
		report.Passes = append(report.Passes, o.renderPass(ctx, cam, cfg, pass, animate, preview))
	}

	rendered := len(report.Passes) - report.Failed()
	switch {
	case len(report.Passes) == 0 || rendered == 0:
		report.Outcome = OutcomeFailure
	case report.Failed() > 0:
		report.Outcome = OutcomePartial
	default:
		report.Outcome = OutcomeSuccess
	}
	return report
}

// renderPass renders one pass. Failures are returned in the result, not
// propagated: one pass failing never aborts the remaining passes.
func (o *Orchestrator) renderPass(ctx context.Context, cam config.Camera, cfg config.RenderConfig, pass string, animate, preview bool) PassResult {
	result := PassResult{Pass: pass}

	if preview {
		// Transient surface only: no directories, no files.
		if _, err := o.engine.RenderPreview(ctx, cfg); err != nil {
			result.Err = err
			log.Printf("[!] preview %s pass %q: %v", cam.Name, pass, err)
		}
		return result
	}

	dir := resolver.OutputDir(cam, o.store, animate, pass)
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Printf("[!] cannot create %s, falling back to %s: %v", dir, o.FallbackDir, err)
		dir = o.FallbackDir
		if err := os.MkdirAll(dir, 0755); err != nil {
			result.Err = fmt.Errorf("create output dir: %w", err)
			return result
		}
	}
	result.OutputDir = dir

	name := cfg.Filename + "_" + resolver.Sanitize(cam.Name)
	if pass != "" {
		name += "_" + pass
	}
	target := filepath.Join(dir, name)

	// Mirror the per-pass output path into the environment, the way a
	// host application points its render output at the pass target.
	state := o.env.State()
	state.OutputPath = target
	if err := o.env.SetState(state); err != nil {
		result.Err = fmt.Errorf("set output path: %w", err)
		return result
	}

	var err error
	if animate {
		err = o.engine.RenderAnimation(ctx, cfg, target)
	} else {
		err = o.engine.RenderStill(ctx, cfg, target)
	}
	if err != nil {
		result.Err = err
		log.Printf("[!] render %s pass %q: %v", cam.Name, pass, err)
	}
	return result
}
