package cli

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/matzehuels/apg/pkg/graph"
	"github.com/matzehuels/apg/pkg/graphio"
	"github.com/matzehuels/apg/pkg/observability/metrics"
	"github.com/matzehuels/apg/pkg/program"
)

// runOpts holds the command-line flags for the run command.
type runOpts struct {
	watch   bool
	metrics bool
	output  string
	plug    string
}

func (c *CLI) runCommand() *cobra.Command {
	opts := runOpts{plug: "tile.graph"}
	cmd := &cobra.Command{
		Use:   "run [PROGRAM]",
		Short: "Run a program of boxes and report their status",
		Long: `Run a program file (TOML with [[boxes]] and [[wires]]) until every box is
idle, then print the status of each box. Without a file the built-in demo
program runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return c.runProgram(cmd.Context(), cmd.OutOrStdout(), path, opts)
		},
	}
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "show live box statuses while running")
	cmd.Flags().BoolVar(&opts.metrics, "metrics", false, "print program metrics after the run")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the graph on --plug to this file (.json or .toml)")
	cmd.Flags().StringVar(&opts.plug, "plug", opts.plug, "output plug written by --output, as BOX.PLUG")
	return cmd
}

func (c *CLI) runProgram(ctx context.Context, w io.Writer, path string, opts runOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	doc, err := loadProgramDoc(path)
	if err != nil {
		return err
	}

	popts := []program.Option{program.WithLogger(logger)}
	var reg *prometheus.Registry
	if opts.metrics {
		reg = prometheus.NewRegistry()
		popts = append(popts, program.WithHooks(metrics.New(reg)))
	}
	p := program.New(popts...)
	if err := buildProgram(p, doc); err != nil {
		return err
	}

	if opts.watch {
		err = runWatch(ctx, p, w)
	} else {
		err = p.Run(ctx)
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Ran %d boxes", len(p.Boxes())))

	statuses := p.Statuses()
	fmt.Fprintln(w, statusTable(statuses))

	if opts.output != "" {
		if err := writePlugGraph(p, opts.plug, opts.output); err != nil {
			return err
		}
		printFile(w, opts.output)
	}
	if reg != nil {
		if err := printMetrics(w, reg); err != nil {
			return err
		}
	}

	var failed int
	for _, st := range statuses {
		if st.State == program.Failed {
			failed++
			printError(w, "%s: %v", st.ID, st.Err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d boxes failed", failed, len(statuses))
	}
	printSuccess(w, "All %d boxes idle", len(statuses))
	return nil
}

func writePlugGraph(p *program.Program, ref, path string) error {
	boxID, plug, err := splitPlugRef(ref)
	if err != nil {
		return err
	}
	u, ok := p.Box(boxID)
	if !ok {
		return fmt.Errorf("--plug %s: %w", ref, program.ErrUnknownBox)
	}
	out, ok := u.Core().Output(plug)
	if !ok {
		return fmt.Errorf("--plug %s: no such output", ref)
	}
	g, ok := out.Value().(*graph.Graph)
	if !ok {
		return fmt.Errorf("--plug %s holds %T, not a graph", ref, out.Value())
	}
	return graphio.WriteFile(g, path)
}

// =============================================================================
// Status Table
// =============================================================================

func stateCell(st program.Status) string {
	switch {
	case st.Active:
		return iconPending + " active"
	case st.State == program.Completed:
		return iconSuccess + " completed"
	case st.State == program.Failed:
		return iconError + " failed"
	case st.State == program.Cancelled:
		return iconWarning + " cancelled"
	default:
		return st.State.String()
	}
}

const maxErrWidth = 60

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}

func statusTable(statuses []program.Status) string {
	rows := make([][]string, len(statuses))
	for i, st := range statuses {
		msg := ""
		if st.Err != nil {
			msg = truncate(st.Err.Error(), maxErrWidth)
		}
		rows[i] = []string{st.ID, st.Kind, stateCell(st), strconv.Itoa(st.Runs), msg}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Box", "Kind", "State", "Runs", "Error").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if row >= len(statuses) || col != 2 {
				return base
			}
			st := statuses[row]
			switch {
			case st.Active:
				return base.Foreground(colorCyan)
			case st.State == program.Completed:
				return base.Foreground(colorGreen)
			case st.State == program.Failed:
				return base.Foreground(colorRed)
			case st.State == program.Cancelled:
				return base.Foreground(colorYellow)
			}
			return base.Foreground(colorDim)
		}).
		Render()
}

// =============================================================================
// Metrics
// =============================================================================

// printMetrics prints every sample in reg, one per line, sorted by name.
func printMetrics(w io.Writer, reg prometheus.Gatherer) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	var lines []string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			name := mf.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}
			var val string
			switch {
			case m.GetCounter() != nil:
				val = strconv.FormatFloat(m.GetCounter().GetValue(), 'g', -1, 64)
			case m.GetGauge() != nil:
				val = strconv.FormatFloat(m.GetGauge().GetValue(), 'g', -1, 64)
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				val = fmt.Sprintf("count=%d sum=%.4g", h.GetSampleCount(), h.GetSampleSum())
			default:
				continue
			}
			lines = append(lines, name+" "+styleNumber.Render(val))
		}
	}
	sort.Strings(lines)
	fmt.Fprintln(w, styleTitle.Render("Metrics"))
	for _, l := range lines {
		printDetail(w, "%s", l)
	}
	return nil
}
