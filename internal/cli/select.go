package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/morozRed/cratemap/internal/fileutil"
	"github.com/morozRed/cratemap/internal/ignore"
	"github.com/morozRed/cratemap/internal/logging"
	"github.com/morozRed/cratemap/internal/modules"
	"github.com/morozRed/cratemap/internal/nav"
	"github.com/morozRed/cratemap/internal/rustdoc"
	"github.com/morozRed/cratemap/internal/selection"
	"github.com/morozRed/cratemap/internal/watch"
)

type SelectionReport struct {
	Crate    string           `json:"crate"`
	Filters  []string         `json:"filters"`
	Exclude  []string         `json:"exclude,omitempty"`
	Seeds    []rustdoc.Id     `json:"seeds"`
	Selected []nav.ItemRecord `json:"selected"`
	Edges    int              `json:"edges"`
	Warnings []string         `json:"warnings,omitempty"`
}

func RunSelect(cmd *cobra.Command, args []string) error {
	if err := runSelectOnce(cmd, args); err != nil {
		return err
	}
	watchIndex, err := OptionalBoolFlag(cmd, "watch", false)
	if err != nil || !watchIndex {
		return err
	}
	ctx := commandContext(cmd)
	return watch.File(ctx, commandConfig(cmd).Index, watch.Options{Logger: logging.FromContext(ctx)}, func(context.Context) error {
		return runSelectOnce(cmd, args)
	})
}

func runSelectOnce(cmd *cobra.Command, args []string) error {
	asJSON, err := wantJSON(cmd)
	if err != nil {
		return err
	}
	outPath, err := OptionalStringFlag(cmd, "out")
	if err != nil {
		return err
	}
	extraExclude, err := OptionalStringSliceFlag(cmd, "exclude")
	if err != nil {
		return err
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}

	filters := s.cfg.Filters
	if len(args) > 0 {
		filters = args
	}
	filters = fileutil.DedupeStrings(filters)

	matcher, err := ignore.LoadMatcher(ignore.FileName, append(append([]string(nil), s.cfg.Exclude...), extraExclude...))
	if err != nil {
		return err
	}

	mods := modules.BuildIndex(s.crate, s.logger)
	result, err := selection.Select(s.crate, filters, mods,
		selection.WithGraph(s.graph),
		selection.WithExclude(matcher),
		selection.WithLogger(s.logger),
	)
	if err != nil {
		return err
	}

	report := SelectionReport{
		Crate:    s.crateName,
		Filters:  filters,
		Exclude:  matcher.Rules(),
		Seeds:    result.Seeds.Sorted(),
		Selected: make([]nav.ItemRecord, 0, len(result.Selected)),
		Edges:    result.Graph.Len(),
		Warnings: result.Warnings,
	}
	for _, id := range result.Selected.Sorted() {
		report.Selected = append(report.Selected, s.lookup.Record(id))
	}

	out := cmd.OutOrStdout()
	if outPath != "" {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode selection: %w", err)
		}
		data = append(data, '\n')
		written, err := fileutil.WriteIfChangedTracked(filepath.Clean(outPath), data)
		if err != nil {
			return fmt.Errorf("failed to write selection: %w", err)
		}
		if !asJSON {
			state := "unchanged"
			if written {
				state = "written"
			}
			fmt.Fprintf(out, "output: %s (%s, %s)\n", outPath, state, humanize.Bytes(uint64(len(data))))
		}
	}

	if asJSON {
		return fileutil.FprintJSON(out, report)
	}

	fmt.Fprintf(out, "selected %s of %s items from %s seeds (%s edges)\n",
		humanize.Comma(int64(len(report.Selected))),
		humanize.Comma(int64(len(s.crate.Index))),
		humanize.Comma(int64(len(report.Seeds))),
		humanize.Comma(int64(report.Edges)),
	)
	PrintWarnings(out, report.Warnings)
	if outPath != "" {
		return nil
	}
	for _, record := range report.Selected {
		fmt.Fprintf(out, "- %s\n", formatRecord(record))
	}
	return nil
}

func RunModules(cmd *cobra.Command, args []string) error {
	asJSON, err := wantJSON(cmd)
	if err != nil {
		return err
	}
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	mods := modules.BuildIndex(s.crate, s.logger)
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		id, err := s.resolveItem(args[0])
		if err != nil {
			return err
		}
		resolved, ok := mods[id]
		if !ok {
			return fmt.Errorf("%s is a %s, not a module", s.crate.DisplayName(id), s.crate.Kind(id))
		}
		members := make([]nav.ItemRecord, 0, len(resolved.Items))
		for _, member := range resolved.Items.Sorted() {
			members = append(members, s.lookup.Record(member))
		}
		if asJSON {
			return fileutil.FprintJSON(out, map[string]any{
				"module":  s.lookup.Record(id),
				"members": members,
			})
		}
		fmt.Fprintf(out, "module %s exposes %d items\n", s.crate.DisplayName(id), len(members))
		for _, member := range members {
			fmt.Fprintf(out, "- %s\n", formatRecord(member))
		}
		return nil
	}

	type moduleSummary struct {
		Module  nav.ItemRecord `json:"module"`
		Members int            `json:"members"`
	}
	summaries := make([]moduleSummary, 0, len(mods))
	for _, id := range mods.SortedIDs() {
		summaries = append(summaries, moduleSummary{Module: s.lookup.Record(id), Members: len(mods[id].Items)})
	}
	if asJSON {
		return fileutil.FprintJSON(out, map[string]any{"modules": summaries})
	}
	fmt.Fprintf(out, "modules (%d)\n", len(summaries))
	for _, summary := range summaries {
		fmt.Fprintf(out, "- %s members=%d\n", formatRecord(summary.Module), summary.Members)
	}
	return nil
}

func formatRecord(record nav.ItemRecord) string {
	name := record.Path
	if name == "" {
		name = record.Name
	}
	if name == "" {
		return fmt.Sprintf("#%d [%s]", record.ID, record.Kind)
	}
	return fmt.Sprintf("#%d %s [%s]", record.ID, name, record.Kind)
}
