package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/couchcryptid/weather-chart/internal/chart"
	"github.com/couchcryptid/weather-chart/internal/domain"
	"github.com/couchcryptid/weather-chart/internal/observability"
	"github.com/couchcryptid/weather-chart/internal/prompt"
)

// InvalidChoiceMessage is printed when the answer is neither view nor save.
const InvalidChoiceMessage = "\nInvalid input. The plot will not be displayed or saved."

// Source loads the raw CSV lines, header included.
type Source interface {
	ReadLines(ctx context.Context) ([]string, error)
}

// ChartRenderer lays out a chart for one station's series.
type ChartRenderer interface {
	Render(series domain.Series, station string) (*chart.Figure, error)
}

// Viewer displays a figure and returns when the operator is done with it.
type Viewer interface {
	View(ctx context.Context, title string, fig domain.Figure) error
}

// Saver persists a figure under filename.
type Saver interface {
	Save(fig domain.Figure, filename string) error
}

// Outcome records what happened to the chart.
type Outcome string

const (
	OutcomeViewed  Outcome = "viewed"
	OutcomeSaved   Outcome = "saved"
	OutcomeSkipped Outcome = "skipped"
)

// Options carries run settings that are not collaborators.
type Options struct {
	OutputPath string
	Debug      bool // log per-row diagnostics; never changes results

	In  io.Reader // operator answers; nil means no input stream
	Out io.Writer // prompt and confirmations

	Publisher domain.Publisher // optional observation export
}

// Pipeline runs one load-extract-render-dispatch pass.
type Pipeline struct {
	source   Source
	renderer ChartRenderer
	viewer   Viewer
	saver    Saver
	logger   *slog.Logger
	metrics  *observability.Metrics
	opts     Options
}

// New creates a Pipeline with the given stages and observability.
func New(src Source, renderer ChartRenderer, viewer Viewer, saver Saver, logger *slog.Logger, metrics *observability.Metrics, opts Options) *Pipeline {
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	return &Pipeline{
		source:   src,
		renderer: renderer,
		viewer:   viewer,
		saver:    saver,
		logger:   logger,
		metrics:  metrics,
		opts:     opts,
	}
}

// Run executes the pass. Rows with bad temperatures, a missing input stream at
// the prompt, and an invalid answer are all handled without error; anything
// else stops the run.
func (p *Pipeline) Run(ctx context.Context) (Outcome, error) {
	res, err := p.extract(ctx)
	if err != nil {
		return "", err
	}

	station, err := res.Stations.Name()
	if err != nil {
		return "", fmt.Errorf("resolve station: %w", err)
	}

	if p.opts.Publisher != nil {
		p.publish(ctx, res.Observations(station))
	}

	start := time.Now()
	fig, err := p.renderer.Render(res.Series, station)
	if err != nil {
		return "", fmt.Errorf("render chart: %w", err)
	}
	p.metrics.RenderDuration.Observe(time.Since(start).Seconds())
	p.logger.Info("chart ready", "station", station, "observations", res.Series.Len())

	choice, err := prompt.Ask(ctx, p.opts.In, p.opts.Out)
	if err != nil {
		return "", fmt.Errorf("ask choice: %w", err)
	}

	outcome, err := p.dispatch(ctx, choice, fig)
	if err != nil {
		return "", err
	}
	p.metrics.Outcomes.WithLabelValues(string(outcome)).Inc()
	return outcome, nil
}

func (p *Pipeline) extract(ctx context.Context) (domain.ExtractResult, error) {
	start := time.Now()

	lines, err := p.source.ReadLines(ctx)
	if err != nil {
		return domain.ExtractResult{}, fmt.Errorf("load input: %w", err)
	}

	res, err := domain.Extract(lines)
	if err != nil {
		return domain.ExtractResult{}, fmt.Errorf("extract: %w", err)
	}

	p.metrics.ExtractDuration.Observe(time.Since(start).Seconds())
	p.metrics.RowsRead.Add(float64(res.Rows))
	p.metrics.RowsSkipped.Add(float64(res.Skipped()))
	p.metrics.Observations.Set(float64(res.Series.Len()))

	if p.opts.Debug {
		p.reportDiagnostics(res)
	}
	return res, nil
}

// reportDiagnostics logs each skipped date, the stations seen, and the skip
// count.
func (p *Pipeline) reportDiagnostics(res domain.ExtractResult) {
	for _, d := range res.Errors {
		p.logger.Debug("missing data", "date", d.Format(domain.DateLayout))
	}
	p.logger.Debug("stations found", "stations", res.Stations.Sorted())
	if res.Skipped() > 0 {
		p.logger.Debug("skipped rows due to missing data", "count", res.Skipped(), "rows", res.Rows)
	}
}

// publish exports observations. Failures are logged and counted but never
// stop the chart.
func (p *Pipeline) publish(ctx context.Context, obs []domain.Observation) {
	if err := p.opts.Publisher.Publish(ctx, obs); err != nil {
		p.logger.Warn("publish observations failed", "error", err, "count", len(obs))
		p.metrics.PublishErrors.Inc()
		return
	}
	p.metrics.PublishedTotal.Add(float64(len(obs)))
}

func (p *Pipeline) dispatch(ctx context.Context, choice prompt.Choice, fig *chart.Figure) (Outcome, error) {
	switch choice {
	case prompt.ChoiceView:
		if err := p.viewer.View(ctx, fig.Title, fig); err != nil {
			return "", fmt.Errorf("view chart: %w", err)
		}
		return OutcomeViewed, nil
	case prompt.ChoiceSave:
		if err := p.saver.Save(fig, p.opts.OutputPath); err != nil {
			return "", fmt.Errorf("save chart: %w", err)
		}
		return OutcomeSaved, nil
	default:
		fmt.Fprintln(p.opts.Out, InvalidChoiceMessage)
		return OutcomeSkipped, nil
	}
}
