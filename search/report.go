package search

import (
	"fmt"
	"strings"
)

const previewLimit = 100

func (h Hit) location() string {
	if h.Kind == InTableCell {
		return fmt.Sprintf("in table %d at cell (%d,%d)", h.Table, h.Row, h.Col)
	}
	return fmt.Sprintf("index %d", h.Paragraph)
}

func truncate(s string) string {
	rs := []rune(s)
	if len(rs) <= previewLimit {
		return s
	}
	return string(rs[:previewLimit]) + "..."
}

// FormatHits renders the result of Search.
func FormatHits(keyword string, hits []Hit) string {
	if len(hits) == 0 {
		return fmt.Sprintf("Keyword '%s' not found", keyword)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d occurrences of '%s':\n\n", len(hits), keyword)
	for i, h := range hits {
		fmt.Fprintf(&sb, "%d. %s %s: %s\n", i+1, h.Kind, h.location(), truncate(h.Text))
	}
	return sb.String()
}

// FormatReplacements renders the result of SearchAndReplace.
func FormatReplacements(keyword, replacement string, reps []Replacement, preview bool) string {
	if len(reps) == 0 {
		return fmt.Sprintf("Keyword '%s' not found", keyword)
	}
	action, verb := "Replace", "replacing"
	if preview {
		action, verb = "Preview", "previewing"
	}

	total := 0
	for _, r := range reps {
		total += r.Count
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s '%s' with '%s', found %d locations, %d occurrences:\n\n", action, keyword, replacement, len(reps), total)
	for i, r := range reps {
		loc := r.location()
		if r.Kind == InTableCell {
			loc = strings.TrimPrefix(loc, "in ")
		}
		fmt.Fprintf(&sb, "%d. In %s %s %s %d times:\n", i+1, r.Kind, loc, verb, r.Count)
		orig, repl := Excerpt(r.Original, r.Replaced, keyword)
		fmt.Fprintf(&sb, "  Original: %s\n", orig)
		fmt.Fprintf(&sb, "  Replaced: %s\n\n", repl)
	}
	if preview {
		sb.WriteString("This is a preview of replacements. No actual changes were made. To execute replacements, set preview_only to false.")
	} else {
		sb.WriteString("Replacements completed successfully.")
	}
	return sb.String()
}

// FormatFindAndReplace renders the result of FindAndReplace.
func FormatFindAndReplace(find, replace string, count int) string {
	return fmt.Sprintf("Replaced '%s' with '%s', %d occurrences", find, replace, count)
}
