package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/morozRed/cratemap/internal/fileutil"
	"github.com/morozRed/cratemap/internal/graph"
	"github.com/morozRed/cratemap/internal/modules"
	"github.com/morozRed/cratemap/internal/nav"
	"github.com/morozRed/cratemap/internal/rustdoc"
)

func RunRoots(cmd *cobra.Command, args []string) error {
	asJSON, err := wantJSON(cmd)
	if err != nil {
		return err
	}
	s, err := openSession(cmd)
	if err != nil {
		return err
	}

	roots := s.graph.FindRoots().Sorted()
	records := make([]nav.ItemRecord, 0, len(roots))
	for _, id := range roots {
		records = append(records, s.lookup.Record(id))
	}

	out := cmd.OutOrStdout()
	if asJSON {
		return fileutil.FprintJSON(out, map[string]any{"roots": records})
	}
	fmt.Fprintf(out, "roots (%d)\n", len(records))
	for _, record := range records {
		fmt.Fprintf(out, "- %s\n", formatRecord(record))
	}
	return nil
}

func RunLeaf(cmd *cobra.Command, args []string) error {
	asJSON, err := wantJSON(cmd)
	if err != nil {
		return err
	}
	asTree, err := OptionalBoolFlag(cmd, "tree", false)
	if err != nil {
		return err
	}
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	target, err := s.resolveItem(args[0])
	if err != nil {
		return err
	}

	sub := s.graph.FilterToLeaf(target)
	out := cmd.OutOrStdout()
	if asTree {
		return writeTree(out, s, sub, sub.FindRoots().Sorted(), s.cfg.MaxDepth, asJSON)
	}

	edges := sub.Edges()
	if asJSON {
		return fileutil.FprintJSON(out, map[string]any{
			"target": s.lookup.Record(target),
			"nodes":  sub.Nodes(),
			"edges":  edges,
		})
	}
	fmt.Fprintf(out, "items reaching %s: nodes=%d edges=%d\n", s.crate.DisplayName(target), len(sub.Nodes()), len(edges))
	for _, edge := range edges {
		fmt.Fprintf(out, "- %s -%s-> %s\n", s.lookup.Name(edge.Source), edge.Label, s.lookup.Name(edge.Target))
	}
	return nil
}

func RunDump(cmd *cobra.Command, args []string) error {
	asJSON, err := wantJSON(cmd)
	if err != nil {
		return err
	}
	maxDepth, err := OptionalIntFlag(cmd, "max-depth", -1)
	if err != nil {
		return err
	}
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	if maxDepth < 0 {
		maxDepth = s.cfg.MaxDepth
	}

	var roots []rustdoc.Id
	for _, query := range args {
		id, err := s.resolveItem(query)
		if err != nil {
			return err
		}
		roots = append(roots, id)
	}
	if len(args) == 0 {
		roots = s.graph.FindRoots().Sorted()
	}
	return writeTree(cmd.OutOrStdout(), s, s.graph, roots, maxDepth, asJSON)
}

func writeTree(out io.Writer, s *session, g *graph.Graph, roots []rustdoc.Id, maxDepth int, asJSON bool) error {
	if asJSON {
		return fileutil.FprintJSON(out, map[string]any{
			"max_depth": maxDepth,
			"trees":     nav.BuildTree(g, roots, maxDepth),
		})
	}
	return nav.Dump(out, g, roots, maxDepth, s.lookup.Name)
}

func RunEdges(cmd *cobra.Command, args []string) error {
	labelNames, err := OptionalStringSliceFlag(cmd, "label")
	if err != nil {
		return err
	}
	outPath, err := OptionalStringFlag(cmd, "out")
	if err != nil {
		return err
	}

	keep := make(map[graph.Label]bool, len(labelNames))
	for _, name := range labelNames {
		label, ok := graph.ParseLabel(name)
		if !ok {
			return fmt.Errorf("unknown edge label %q", name)
		}
		keep[label] = true
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}

	edges := s.graph.Edges()
	if len(keep) > 0 {
		filtered := edges[:0]
		for _, edge := range edges {
			if keep[edge.Label] {
				filtered = append(filtered, edge)
			}
		}
		edges = filtered
	}

	if outPath == "" {
		if _, err := fileutil.WriteJSONL(cmd.OutOrStdout(), edges); err != nil {
			return fmt.Errorf("failed to write edges: %w", err)
		}
		return nil
	}
	data, err := fileutil.EncodeJSONL(edges)
	if err != nil {
		return fmt.Errorf("failed to encode edges: %w", err)
	}
	if err := fileutil.WriteIfChanged(outPath, data); err != nil {
		return fmt.Errorf("failed to write edges: %w", err)
	}
	s.logger.Info("edges exported", "path", outPath, "edges", len(edges), "size", humanize.Bytes(uint64(len(data))))
	return nil
}

func RunRank(cmd *cobra.Command, args []string) error {
	asJSON, err := wantJSON(cmd)
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

	type rankedRecord struct {
		Item nav.ItemRecord `json:"item"`
		Rank float64        `json:"rank"`
	}
	ranked := s.graph.TopRanked(limit, 30, 0.85)
	records := make([]rankedRecord, 0, len(ranked))
	for _, r := range ranked {
		records = append(records, rankedRecord{Item: s.lookup.Record(r.ID), Rank: r.Rank})
	}

	out := cmd.OutOrStdout()
	if asJSON {
		return fileutil.FprintJSON(out, map[string]any{"ranked": records})
	}
	fmt.Fprintf(out, "most depended-upon items (%d)\n", len(records))
	for i, record := range records {
		fmt.Fprintf(out, "%d. %s rank=%.4f\n", i+1, formatRecord(record.Item), record.Rank)
	}
	return nil
}

func RunStats(cmd *cobra.Command, args []string) error {
	asJSON, err := wantJSON(cmd)
	if err != nil {
		return err
	}
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	start := time.Now()
	hash, err := fileutil.HashFile(s.cfg.Index)
	if err != nil {
		return fmt.Errorf("failed to hash index: %w", err)
	}

	summary := StatsSummary{
		Crate:       s.crateName,
		Version:     s.crate.CrateVersion,
		Format:      s.crate.FormatVersion,
		Index:       s.cfg.Index,
		IndexHash:   hash,
		IndexBytes:  s.indexSize,
		Items:       len(s.crate.Index),
		Paths:       len(s.crate.Paths),
		Modules:     len(modules.BuildIndex(s.crate, s.logger)),
		Edges:       s.graph.Len(),
		Dropped:     s.graph.Dropped(),
		Roots:       len(s.graph.FindRoots()),
		EdgesByKind: make(map[string]int),
	}
	for _, edge := range s.graph.Edges() {
		summary.EdgesByKind[edge.Label.String()]++
	}
	summary.DurationMS = (s.loadTime + time.Since(start)).Milliseconds()

	return PrintStatsSummary(cmd.OutOrStdout(), summary, asJSON)
}
