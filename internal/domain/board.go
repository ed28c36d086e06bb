package domain

import (
	"regexp"
	"strings"
)

// HeadingMarker starts a board heading line
const HeadingMarker = "##"

// Link pattern for aliased wiki links: [[key|label]]
var boardLinkPattern = regexp.MustCompile(`\[\[(.*?)\|(.*?)\]\]`)

// LineKind classifies a board line
type LineKind int

const (
	LineContent LineKind = iota
	LineHeading
)

// String returns the string representation of the kind
func (k LineKind) String() string {
	switch k {
	case LineHeading:
		return "heading"
	default:
		return "content"
	}
}

// Line is a single board line. Heading holds the trimmed heading text for
// heading lines; LinkKey holds the key of the first aliased link, if any.
type Line struct {
	Kind    LineKind
	Text    string
	Heading string
	LinkKey string
}

// Board is a board document as a typed line sequence
type Board struct {
	Lines []Line
}

// BoardEntry is a checklist link linking a category item
type BoardEntry struct {
	Category string
	Item     string
}

// FullKey returns the deduplication key "category/item"
func (e BoardEntry) FullKey() string {
	return e.Category + "/" + e.Item
}

// Line renders the checklist line inserted for the entry
func (e BoardEntry) Line() string {
	return "- [ ] [[" + e.FullKey() + "|" + e.Item + "]]"
}

// Link renders the wiki link token of the entry
func (e BoardEntry) Link() string {
	return "[[" + e.FullKey() + "|" + e.Item + "]]"
}

// MergeResult is the outcome of merging an AdditionBatch into a board
type MergeResult struct {
	Text     string
	Inserted []BoardEntry
	Dropped  []string // Categories without a matching heading
}

// Changed reports whether the merge inserted anything
func (r MergeResult) Changed() bool {
	return len(r.Inserted) > 0
}

// ClassifyLine classifies a raw board line
func ClassifyLine(text string) Line {
	line := Line{Kind: LineContent, Text: text}
	if strings.HasPrefix(text, HeadingMarker) {
		line.Kind = LineHeading
		line.Heading = strings.TrimSpace(text[len(HeadingMarker):])
	}
	if m := boardLinkPattern.FindStringSubmatch(text); m != nil {
		line.LinkKey = strings.TrimSpace(m[1])
	}
	return line
}

// ParseBoard splits board text on "\n" and classifies each line.
// String on the result reproduces the input exactly.
func ParseBoard(text string) Board {
	raw := strings.Split(text, "\n")
	lines := make([]Line, len(raw))
	for i, r := range raw {
		lines[i] = ClassifyLine(r)
	}
	return Board{Lines: lines}
}

// String rejoins the board lines
func (b Board) String() string {
	raw := make([]string, len(b.Lines))
	for i, l := range b.Lines {
		raw[i] = l.Text
	}
	return strings.Join(raw, "\n")
}

// LinkIndex returns the keys of every linked entry on the board
func (b Board) LinkIndex() map[string]struct{} {
	index := make(map[string]struct{})
	for _, l := range b.Lines {
		if l.LinkKey != "" {
			index[l.LinkKey] = struct{}{}
		}
	}
	return index
}

// MergeBoard inserts an unchecked link for every batch item under the heading
// matching its category. Items already linked anywhere on the board are
// skipped, as are categories without a heading. Untouched lines are kept
// byte-for-byte.
func MergeBoard(text string, batch AdditionBatch) MergeResult {
	board := ParseBoard(text)
	index := board.LinkIndex()
	matched := make(map[string]bool)

	var result MergeResult
	out := make([]Line, 0, len(board.Lines)+batch.Len())

	for _, line := range board.Lines {
		out = append(out, line)
		if line.Kind != LineHeading || !batch.Has(line.Heading) {
			continue
		}
		matched[line.Heading] = true

		for _, item := range batch.Items(line.Heading) {
			entry := BoardEntry{Category: line.Heading, Item: item}
			key := entry.FullKey()
			if _, ok := index[key]; ok {
				continue
			}
			out = append(out, ClassifyLine(entry.Line()))
			index[key] = struct{}{}
			result.Inserted = append(result.Inserted, entry)
		}
	}

	for _, category := range batch.Categories() {
		if !matched[category] {
			result.Dropped = append(result.Dropped, category)
		}
	}

	result.Text = Board{Lines: out}.String()
	return result
}

// Merge returns board text with the batch merged in
func Merge(text string, batch AdditionBatch) string {
	return MergeBoard(text, batch).Text
}
