package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/apg/pkg/graph"
	"github.com/matzehuels/apg/pkg/graphio"
)

// =============================================================================
// inspect
// =============================================================================

func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE",
		Short: "Show counts, bounds and crossings of a graph document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraph(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printInspect(cmd.OutOrStdout(), args[0], g)
			return nil
		},
	}
}

func printInspect(w io.Writer, path string, g *graph.Graph) {
	b := g.BoundingBox()
	fmt.Fprintln(w, styleTitle.Render(filepath.Base(path)))
	printKeyValue(w, "directed", strconv.FormatBool(g.Directed()))
	printKeyValue(w, "nodes", strconv.Itoa(g.NodeCount()))
	printKeyValue(w, "edges", strconv.Itoa(g.EdgeCount()))
	printKeyValue(w, "bounds", fmt.Sprintf("(%g, %g) to (%g, %g)", b.X1, b.Y1, b.X2, b.Y2))
	printKeyValue(w, "size", fmt.Sprintf("%g × %g", b.Width(), b.Height()))
	printKeyValue(w, "crossings", strconv.Itoa(len(g.EdgeIntersections())))
}

// =============================================================================
// intersect
// =============================================================================

type intersectResult struct {
	path    string
	crosses []graph.Intersection
}

func (c *CLI) intersectCommand() *cobra.Command {
	var list bool
	cmd := &cobra.Command{
		Use:   "intersect FILE...",
		Short: "Count edge crossings in one or more graph documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := intersectFiles(cmd.Context(), args)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, r := range results {
				printInfo(w, "%s: %s crossings", r.path, styleNumber.Render(strconv.Itoa(len(r.crosses))))
				if list {
					for _, x := range r.crosses {
						printDetail(w, "%s x %s at (%g, %g)", x.EdgeA, x.EdgeB, x.X, x.Y)
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&list, "list", "l", false, "list every crossing")
	return cmd
}

// intersectFiles loads and analyses files concurrently. Results keep the
// order of paths.
func intersectFiles(ctx context.Context, paths []string) ([]intersectResult, error) {
	results := make([]intersectResult, len(paths))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		eg.Go(func() error {
			g, err := loadGraph(ctx, path)
			if err != nil {
				return err
			}
			g.Freeze()
			results[i] = intersectResult{path: path, crosses: g.EdgeIntersections()}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// =============================================================================
// complement
// =============================================================================

func (c *CLI) complementCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "complement FILE",
		Short: "Write the complement of a graph document",
		Long:  "Write a graph with the same nodes and an edge between every pair of nodes not connected in the input.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraph(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if output == "" {
				output = derivedPath(args[0], "complement")
			}
			comp := g.Complemented()
			if err := graphio.WriteFile(comp, output); err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			printSuccess(w, "Complemented %s", args[0])
			printStats(w, comp.NodeCount(), comp.EdgeCount(), false)
			printFile(w, output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.json or .toml)")
	return cmd
}

// =============================================================================
// Helpers
// =============================================================================

func loadGraph(ctx context.Context, path string) (*graph.Graph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g, err := graphio.ReadFile(path)
	if err != nil {
		return nil, err
	}
	loggerFromContext(ctx).Debug("loaded graph", "file", path, "nodes", g.NodeCount(), "edges", g.EdgeCount())
	return g, nil
}

// derivedPath turns "dir/g.json" into "dir/g.<tag>.json".
func derivedPath(input, tag string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + "." + tag + ext
}
