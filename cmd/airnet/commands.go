package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vanshika/airnet/internal/config"
	"github.com/vanshika/airnet/internal/domain"
	"github.com/vanshika/airnet/internal/graph"
	"github.com/vanshika/airnet/internal/logging"
	"github.com/vanshika/airnet/internal/repository"
	"github.com/vanshika/airnet/internal/routegraph"
	"github.com/vanshika/airnet/internal/service"
)

var errUnknownAirport = errors.New("unknown airport")

type cli struct {
	stdout io.Writer
	stderr io.Writer

	dataDir string
	source  string
	limit   int
	country string

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	c := &cli{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "airnet",
		Short: "Query an airline route network",
		Long: `airnet builds the undirected route graph from the airports and routes
tables and answers point queries against it.`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVar(&c.dataDir, "data-dir", "", "directory holding the CSV tables (overrides DATA_DIR)")
	root.PersistentFlags().StringVar(&c.source, "source", "", "where tables are read from: csv or graph (overrides DATA_SOURCE)")

	pathCmd := &cobra.Command{
		Use:   "path FROM TO",
		Short: "Print a shortest route between two airports",
		Args:  cobra.ExactArgs(2),
		RunE:  c.runPath,
	}

	alternativesCmd := &cobra.Command{
		Use:   "alternatives FROM TO",
		Short: "Print equally short routes between two airports",
		Args:  cobra.ExactArgs(2),
		RunE:  c.runAlternatives,
	}
	alternativesCmd.Flags().IntVar(&c.limit, "limit", 0, "maximum number of routes (defaults to PATHS_LIMIT)")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Print airport and route counts of the network",
		Args:  cobra.NoArgs,
		RunE:  c.runStats,
	}

	efficiencyCmd := &cobra.Command{
		Use:   "efficiency FROM TO",
		Short: "Time breadth-first, Dijkstra and spanning tree computations",
		Args:  cobra.ExactArgs(2),
		RunE:  c.runEfficiency,
	}

	reachableCmd := &cobra.Command{
		Use:   "reachable AIRPORT",
		Short: "List airports connected to an airport, nearest first",
		Args:  cobra.ExactArgs(1),
		RunE:  c.runReachable,
	}

	airportsCmd := &cobra.Command{
		Use:   "airports",
		Short: "List airports sorted by country and name",
		Args:  cobra.NoArgs,
		RunE:  c.runAirports,
	}
	airportsCmd.Flags().StringVar(&c.country, "country", "", "only list airports in this country, with coordinates")

	root.AddCommand(pathCmd, alternativesCmd, statsCmd, efficiencyCmd, reachableCmd, airportsCmd)
	return root
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if c.dataDir != "" {
		cfg.Data.Dir = c.dataDir
	}
	if c.source != "" {
		source, err := config.ParseDataSource(c.source)
		if err != nil {
			return err
		}
		cfg.Data.Source = source
	}
	c.cfg = cfg
	c.logger = logging.NewWithWriter(cfg.Logging, c.stderr)
	return nil
}

// network loads the tables and builds the service. The returned func releases
// any database connection.
func (c *cli) network(ctx context.Context) (*service.NetworkService, func(), error) {
	cleanup := func() {}

	var reader service.RouteReader
	if c.cfg.Data.Source == config.DataSourceGraph {
		client, err := graph.Dial(ctx, c.cfg.Graph)
		if err != nil {
			return nil, cleanup, fmt.Errorf("create graph client: %w", err)
		}
		cleanup = func() {
			if err := client.Close(context.Background()); err != nil {
				c.logger.Warn("closing graph client failed", "error", err)
			}
		}
		reader = repository.New(client)
	}

	source, err := service.NewSource(c.cfg.Data, reader, c.logger)
	if err != nil {
		return nil, cleanup, err
	}
	snap, err := source.Load(ctx)
	if err != nil {
		return nil, cleanup, err
	}
	svc := service.NewNetworkService(snap, service.Options{
		PathsLimit: c.cfg.Data.PathsLimit,
		Logger:     c.logger,
	})
	return svc, cleanup, nil
}

func (c *cli) runPath(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := c.network(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	view, err := svc.FindRoute(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}
	switch view.Outcome {
	case routegraph.OutcomeUnknownVertex:
		return unknownAirports(view.Missing)
	case routegraph.OutcomeNoPath:
		fmt.Fprintf(c.stdout, "no route between %s and %s\n", args[0], args[1])
		return nil
	}

	fmt.Fprintf(c.stdout, "%s (%d %s)\n", joinPath(view.Path), view.Path.Hops(), plural(view.Path.Hops(), "flight", "flights"))
	tw := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STOP\tROLE\tAIRPORT\tCITY\tCOUNTRY\tLAT\tLON")
	for i, stop := range view.Stops {
		a := stop.Airport
		if !stop.Known {
			fmt.Fprintf(tw, "%d\t%s\t%s\t-\t-\t-\t-\n", i+1, stop.Role, a.Code)
			continue
		}
		fmt.Fprintf(tw, "%d\t%s\t%s %s\t%s\t%s\t%.4f\t%.4f\n", i+1, stop.Role, a.Code, a.Name, a.City, a.Country, a.Latitude, a.Longitude)
	}
	return tw.Flush()
}

func (c *cli) runAlternatives(cmd *cobra.Command, args []string) error {
	if c.limit < 0 {
		return fmt.Errorf("--limit must not be negative, got %d", c.limit)
	}
	svc, cleanup, err := c.network(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	view, err := svc.FindAlternatives(cmd.Context(), args[0], args[1], c.limit)
	if err != nil {
		return err
	}
	switch view.Outcome {
	case routegraph.OutcomeUnknownVertex:
		return unknownAirports(view.Missing)
	case routegraph.OutcomeNoPath:
		fmt.Fprintf(c.stdout, "no route between %s and %s\n", args[0], args[1])
		return nil
	}

	fmt.Fprintf(c.stdout, "shortest: %s\n", joinPath(view.Shortest))
	for i, p := range view.Paths {
		fmt.Fprintf(c.stdout, "%d. %s\n", i+1, joinPath(p))
	}
	return nil
}

func (c *cli) runStats(cmd *cobra.Command, _ []string) error {
	svc, cleanup, err := c.network(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	stats := svc.Stats()
	fmt.Fprintf(c.stdout, "airports: %d\nroutes: %d\n", stats.NodeCount, stats.EdgeCount)
	return nil
}

func (c *cli) runEfficiency(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := c.network(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	view, err := svc.AnalyzeEfficiency(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}
	if view.Outcome == routegraph.OutcomeUnknownVertex {
		return unknownAirports(view.Missing)
	}

	r := view.Report
	tw := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "airports\t%d\n", r.Nodes)
	fmt.Fprintf(tw, "routes\t%d\n", r.Edges)
	fmt.Fprintf(tw, "components\t%d\n", r.Components)
	fmt.Fprintf(tw, "bfs shortest path\t%s\t%s\n", r.BFSDuration, hops(r.BFSHops))
	fmt.Fprintf(tw, "dijkstra shortest path\t%s\t%s\n", r.DijkstraDuration, hops(r.DijkstraHops))
	fmt.Fprintf(tw, "spanning forest\t%s\t%d edges\n", r.SpanningTreeDuration, r.SpanningTreeEdges)
	return tw.Flush()
}

func (c *cli) runReachable(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := c.network(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	reach, err := svc.Reachable(args[0])
	if errors.Is(err, service.ErrNotFound) {
		return unknownAirports([]domain.AirportCode{domain.AirportCode(strings.TrimSpace(args[0]))})
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "%d %s\n", len(reach), plural(len(reach), "airport", "airports"))
	for _, code := range reach {
		fmt.Fprintln(c.stdout, code)
	}
	return nil
}

func (c *cli) runAirports(cmd *cobra.Command, _ []string) error {
	svc, cleanup, err := c.network(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	tw := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
	if c.country != "" {
		airports, err := svc.AirportsByCountry(c.country)
		if err != nil {
			return err
		}
		fmt.Fprintln(tw, "CODE\tNAME\tCITY\tLAT\tLON")
		for _, a := range airports {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%.4f\t%.4f\n", orDash(string(a.Code)), a.Name, a.City, a.Latitude, a.Longitude)
		}
		return tw.Flush()
	}

	fmt.Fprintln(tw, "CODE\tNAME\tCITY\tCOUNTRY")
	for page := 1; ; page++ {
		res := svc.ListAirports(service.ListAirportsParams{Page: page, PageSize: 200})
		for _, a := range res.Items {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", orDash(string(a.Code)), a.Name, a.City, a.Country)
		}
		if page >= res.Pagination.TotalPages {
			break
		}
	}
	return tw.Flush()
}

func unknownAirports(missing []domain.AirportCode) error {
	codes := make([]string, 0, len(missing))
	for _, m := range missing {
		codes = append(codes, string(m))
	}
	return fmt.Errorf("%w: %s", errUnknownAirport, strings.Join(codes, ", "))
}

func joinPath(p routegraph.Path) string {
	parts := make([]string, 0, len(p))
	for _, code := range p {
		parts = append(parts, string(code))
	}
	return strings.Join(parts, " -> ")
}

func hops(n int) string {
	if n < 0 {
		return "no path"
	}
	return fmt.Sprintf("%d %s", n, plural(n, "flight", "flights"))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
