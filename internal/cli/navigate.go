package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/morozRed/cratemap/internal/fileutil"
	"github.com/morozRed/cratemap/internal/graph"
	"github.com/morozRed/cratemap/internal/nav"
	"github.com/morozRed/cratemap/internal/rustdoc"
)

func RunSymbol(cmd *cobra.Command, args []string) error {
	asJSON, err := wantJSON(cmd)
	if err != nil {
		return err
	}
	fuzzy, err := OptionalBoolFlag(cmd, "fuzzy", false)
	if err != nil {
		return err
	}
	limit, err := OptionalIntFlag(cmd, "limit", 10)
	if err != nil {
		return err
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	matches := s.lookup.ResolveWithOptions(args[0], nav.ResolveOptions{Fuzzy: fuzzy, Limit: limit})
	if len(matches) == 0 {
		return fmt.Errorf("%w: %q", nav.ErrNotFound, args[0])
	}
	if len(matches) > limit && limit > 0 {
		matches = matches[:limit]
	}

	records := make([]nav.ItemRecord, 0, len(matches))
	for _, match := range matches {
		records = append(records, s.lookup.Record(match))
	}

	out := cmd.OutOrStdout()
	if asJSON {
		return fileutil.FprintJSON(out, map[string]any{
			"query":   args[0],
			"matches": records,
		})
	}

	fmt.Fprintf(out, "item matches for %q (%d)\n", args[0], len(records))
	for _, record := range records {
		fmt.Fprintf(out, "- %s\n", formatRecord(record))
	}
	return nil
}

func RunChildren(cmd *cobra.Command, args []string) error {
	return runNeighbours(cmd, args[0], "children", nav.CollectChildren)
}

func RunParents(cmd *cobra.Command, args []string) error {
	return runNeighbours(cmd, args[0], "parents", nav.CollectParents)
}

func runNeighbours(cmd *cobra.Command, query, kind string, collect func(*nav.Lookup, *graph.Graph, rustdoc.Id) []nav.EdgeRecord) error {
	asJSON, err := wantJSON(cmd)
	if err != nil {
		return err
	}
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	id, err := s.resolveItem(query)
	if err != nil {
		return err
	}

	records := collect(s.lookup, s.graph, id)
	out := cmd.OutOrStdout()
	if asJSON {
		return fileutil.FprintJSON(out, map[string]any{
			"query": query,
			"item":  s.lookup.Record(id),
			kind:    records,
		})
	}

	fmt.Fprintf(out, "%s of %s (%d)\n", kind, s.crate.DisplayName(id), len(records))
	if len(records) == 0 {
		fmt.Fprintf(out, "no %s found\n", kind)
		return nil
	}
	for _, record := range records {
		fmt.Fprintf(out, "- %s (%s)\n", formatRecord(record.Item), record.Label)
	}
	return nil
}

func RunTrace(cmd *cobra.Command, args []string) error {
	depth, err := cmd.Flags().GetInt("depth")
	if err != nil {
		return fmt.Errorf("failed to read --depth flag: %w", err)
	}
	if depth < 1 {
		return fmt.Errorf("--depth must be >= 1")
	}
	asJSON, err := wantJSON(cmd)
	if err != nil {
		return err
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	start, err := s.resolveItem(args[0])
	if err != nil {
		return err
	}

	hops := nav.Trace(s.lookup, s.graph, start, depth)
	out := cmd.OutOrStdout()
	if asJSON {
		return fileutil.FprintJSON(out, map[string]any{
			"query": args[0],
			"start": s.lookup.Record(start),
			"depth": depth,
			"hops":  hops,
		})
	}

	fmt.Fprintf(out, "trace from %s depth=%d hops=%d\n", s.crate.DisplayName(start), depth, len(hops))
	if len(hops) == 0 {
		fmt.Fprintln(out, "no outgoing hops found")
		return nil
	}
	for _, hop := range hops {
		fmt.Fprintf(out, "- d=%d %s -%s-> %s\n", hop.Depth, s.lookup.Name(hop.From.ID), hop.Label, s.lookup.Name(hop.To.ID))
	}
	return nil
}

func RunPath(cmd *cobra.Command, args []string) error {
	asJSON, err := wantJSON(cmd)
	if err != nil {
		return err
	}
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	from, err := s.resolveItem(args[0])
	if err != nil {
		return err
	}
	to, err := s.resolveItem(args[1])
	if err != nil {
		return err
	}

	steps := nav.Path(s.lookup, s.graph, from, to)
	if len(steps) == 0 && from != to {
		return fmt.Errorf("no path found between %s and %s", s.crate.DisplayName(from), s.crate.DisplayName(to))
	}

	out := cmd.OutOrStdout()
	if asJSON {
		return fileutil.FprintJSON(out, map[string]any{
			"from":   s.lookup.Record(from),
			"to":     s.lookup.Record(to),
			"length": len(steps),
			"steps":  steps,
		})
	}

	fmt.Fprintf(out, "path %s -> %s length=%d\n", s.crate.DisplayName(from), s.crate.DisplayName(to), len(steps))
	fmt.Fprintf(out, "1. %s\n", formatRecord(s.lookup.Record(from)))
	for i, step := range steps {
		fmt.Fprintf(out, "%d. %s (%s)\n", i+2, formatRecord(step.To), step.Label)
	}
	return nil
}
