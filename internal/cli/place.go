package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hintlayout/pkg/debugview"
	"github.com/matzehuels/hintlayout/pkg/geom"
	"github.com/matzehuels/hintlayout/pkg/pipeline"
	"github.com/matzehuels/hintlayout/pkg/scenario"
)

// placeOpts holds the command-line flags for the place command.
type placeOpts struct {
	config   string // config file path
	debugSVG string // write debug rectangles to this SVG file
	noCache  bool   // disable the placement cache
	refresh  bool   // ignore cached placements but store the new one
	json     bool   // print the result as JSON
	anchor   int    // override the scenario's anchor line (0 keeps it)
}

// placeCommand creates the place command.
func (c *CLI) placeCommand() *cobra.Command {
	var opts placeOpts

	cmd := &cobra.Command{
		Use:   "place [scenario]",
		Short: "Plan a widget placement for a scenario file",
		Long: `Plan a widget placement for a scenario file.

The scenario (TOML or JSON, chosen by extension) freezes the document lines,
the viewport and the preview's size. The planner looks for the line nearest
the anchor whose surroundings leave enough room for the widget and falls
back to a fixed outline below the anchor when none does.

Placements are cached; --debug-svg always recomputes so every stage can be
drawn.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlace(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "config file (default ~/.config/hintlayout/config.toml)")
	cmd.Flags().StringVar(&opts.debugSVG, "debug-svg", "", "write the intermediate rectangles to an SVG file")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when a cached placement exists")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the result as JSON")
	cmd.Flags().IntVar(&opts.anchor, "anchor", 0, "override the scenario's anchor line")

	return cmd
}

// runPlace loads the scenario and plans it.
func (c *CLI) runPlace(ctx context.Context, w io.Writer, path string, opts placeOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	sc, err := scenario.Load(path)
	if err != nil {
		return fmt.Errorf("load scenario %s: %w", path, err)
	}
	if opts.anchor != 0 {
		sc = sc.WithAnchor(opts.anchor)
	}

	cfg, err := c.loadConfig(opts.config)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	var rec *debugview.Recorder
	popts := pipeline.Options{Scenario: sc, Planner: cfg.Planner, Refresh: opts.refresh}
	if opts.debugSVG != "" {
		rec = debugview.NewRecorder()
		popts.Debug = rec
	}

	res, err := runner.Place(ctx, popts)
	if err != nil {
		return fmt.Errorf("place: %w", err)
	}
	prog.done(fmt.Sprintf("Planned anchor line %d", sc.AnchorLine))

	if rec != nil {
		if err := writeDebugSVG(opts.debugSVG, sc, rec); err != nil {
			return err
		}
	}

	if opts.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	printPlacement(w, res)
	switch {
	case rec != nil:
		printFile(w, opts.debugSVG)
	case res.Placed && res.Placement.Fallback:
		printNextStep(w, "See why no line fit", fmt.Sprintf("%s place %s --debug-svg debug.svg", appName, path))
	}
	return nil
}

// printPlacement renders a placement result as a table.
func printPlacement(w io.Writer, res *pipeline.Result) {
	if !res.Placed {
		printWarning(w, "No placement: the preview has no size or the widget bands do not fit")
		return
	}
	p := res.Placement
	printSuccess(w, "Placed widget for anchor line %d", p.AnchorLine)
	printPlanStats(w, p.PlacedLine, p.Fallback, res.CacheHit)

	t := newTable("", "Value").Rows(
		[]string{"Widget", formatRect(p.WidgetRect)},
		[]string{"Editor", formatRect(p.EditorRect)},
		[]string{"Space before", formatRect(p.SpaceBeforeRect)},
		[]string{"Space after", formatRect(p.SpaceAfterRect)},
		[]string{"Outer size", p.OuterSize.String()},
		[]string{"Scroll left", fmt.Sprintf("%g", p.DesiredInternalScrollLeft)},
		[]string{"Window", p.Window.String()},
	)
	fmt.Fprintln(w, t.Render())
}

// writeDebugSVG draws the recorded stages over the scenario's viewport.
func writeDebugSVG(path string, sc *scenario.Scenario, rec *debugview.Recorder) error {
	vp := sc.Viewport
	doc := scenario.NewDocument(sc)
	viewport := geom.RectFromRanges(
		geom.OfStartAndLength(vp.ContentLeft, vp.ContentWidth),
		geom.OfStartAndLength(-vp.ScrollTop, doc.Height()),
	)
	svg := debugview.RenderSVG(rec.Stages(),
		debugview.WithViewport(viewport),
		debugview.WithTitle(fmt.Sprintf("anchor line %d", sc.AnchorLine)),
		debugview.WithLabels(),
	)
	if err := os.WriteFile(path, svg, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
