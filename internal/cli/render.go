package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/apg/pkg/cache"
	apgerrors "github.com/matzehuels/apg/pkg/errors"
	"github.com/matzehuels/apg/pkg/render/nodelink"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string
	format    string
	crossings bool
	labels    bool
	scale     float64
	noCache   bool
	redis     string
}

func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts
	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Render a graph document with Graphviz",
		Long: `Render a graph document as a node-link diagram. Nodes are pinned at their
coordinates; --crossings marks every edge intersection.

Rendered output is cached by DOT source and format.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyRenderConfig(cmd, &opts)
			if !slices.Contains(nodelink.Formats, opts.format) {
				return apgerrors.New(apgerrors.ErrCodeInvalidInput,
					"invalid format %q (must be one of %s)", opts.format, strings.Join(nodelink.Formats, ", "))
			}
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input name with the format's extension)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", nodelink.FormatSVG, "output format: "+strings.Join(nodelink.Formats, ", "))
	cmd.Flags().BoolVar(&opts.crossings, "crossings", false, "mark edge crossings")
	cmd.Flags().BoolVar(&opts.labels, "labels", true, "print node names")
	cmd.Flags().Float64Var(&opts.scale, "scale", nodelink.DefaultScale, "graph units per inch")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "use a Redis render cache at this URL")
	return cmd
}

// applyRenderConfig fills flags the user did not set from the config file.
func (c *CLI) applyRenderConfig(cmd *cobra.Command, opts *renderOpts) {
	flags, cfg := cmd.Flags(), c.config
	if !flags.Changed("format") && cfg.Render.Format != "" {
		opts.format = cfg.Render.Format
	}
	if !flags.Changed("crossings") {
		opts.crossings = cfg.Render.Crossings
	}
	if !flags.Changed("labels") {
		opts.labels = cfg.Render.Labels
	}
	if !flags.Changed("scale") && cfg.Render.Scale > 0 {
		opts.scale = cfg.Render.Scale
	}
	if !flags.Changed("redis") {
		opts.redis = cfg.Cache.Redis
	}
}

func (c *CLI) runRender(ctx context.Context, stdout, stderr io.Writer, input string, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	g, err := loadGraph(ctx, input)
	if err != nil {
		return err
	}
	output := opts.output
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + "." + opts.format
	}
	nopts := nodelink.Options{Labels: opts.labels, Crossings: opts.crossings, Scale: opts.scale}

	store, err := c.newCache(ctx, opts.noCache, opts.redis)
	if err != nil {
		return err
	}
	defer store.Close()
	ttl, err := c.config.Cache.ttl()
	if err != nil {
		return err
	}

	key := cache.RenderKey(nodelink.ToDOT(g, nopts), opts.format)
	data, cached, err := store.Get(ctx, key)
	if err != nil {
		logger.Warn("render cache read failed", "err", err)
		cached = false
	}
	if !cached {
		spin := newSpinner(ctx, stderr, fmt.Sprintf("Rendering %s...", filepath.Base(input)))
		spin.Start()
		data, err = nodelink.Render(ctx, g, nopts, opts.format)
		spin.Stop()
		if err != nil {
			return fmt.Errorf("render %s: %w", input, err)
		}
		if err := store.Set(ctx, key, data, ttl); err != nil {
			logger.Warn("render cache write failed", "err", err)
		}
	}

	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	prog.done("Rendered " + output)

	printSuccess(stdout, "Rendered %s", input)
	printStats(stdout, g.NodeCount(), g.EdgeCount(), cached)
	printFile(stdout, output)
	return nil
}
