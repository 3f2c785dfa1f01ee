package ignore

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// FileName is the exclusion file read from the working directory.
const FileName = ".cratemapignore"

// Matcher applies gitignore-style rules to item paths. A path is written with
// "/" between segments and without the crate name, so "style/Color" names
// shapes::style::Color. Later rules win, and "!" re-includes.
type Matcher struct {
	rules []string
	gi    *gitignore.GitIgnore
}

// NewMatcher compiles rules. Blank lines and "#" comments are skipped.
func NewMatcher(rules []string) *Matcher {
	kept := make([]string, 0, len(rules))
	for _, line := range rules {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		kept = append(kept, line)
	}
	return &Matcher{
		rules: kept,
		gi:    gitignore.CompileIgnoreLines(kept...),
	}
}

// LoadMatcher reads rules from path and appends extra. A missing file is not
// an error.
func LoadMatcher(path string, extra []string) (*Matcher, error) {
	var rules []string
	f, err := os.Open(path)
	switch {
	case err == nil:
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			rules = append(rules, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return NewMatcher(append(rules, extra...)), nil
}

// Empty reports whether the matcher has no rules.
func (m *Matcher) Empty() bool {
	return m == nil || len(m.rules) == 0
}

// Rules returns the compiled rule lines.
func (m *Matcher) Rules() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.rules...)
}

// ShouldIgnore returns true when the slash-joined relPath is excluded.
func (m *Matcher) ShouldIgnore(relPath string) bool {
	if m.Empty() {
		return false
	}
	return m.gi.MatchesPath(strings.Trim(relPath, "/"))
}

// MatchesItem applies the rules to a canonical item path. The first segment
// is the crate name and is dropped; the crate root itself never matches.
func (m *Matcher) MatchesItem(path []string) bool {
	if m.Empty() || len(path) < 2 {
		return false
	}
	return m.ShouldIgnore(ItemPath(path))
}

// ItemPath renders a canonical path in the form rules are written against.
func ItemPath(path []string) string {
	if len(path) < 2 {
		return ""
	}
	return strings.Join(path[1:], "/")
}
