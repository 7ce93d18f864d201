package profile

import (
	"fmt"

	"go.uber.org/zap"
)

// Default locus tags as they appear in the input stream.
const (
	DefaultMTTag = "mtDNA"
	DefaultYTag  = "Y chromosome"
)

// ParseError reports a payload line that appeared before any valid identifier.
type ParseError struct {
	Line int    // 1-based line number in the cleaned stream
	Text string // Offending line content
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("profile parse error at line %d: no identifier before %q", e.Line, e.Text)
}

// Extractor splits a cleaned line stream into mtDNA and Y collections.
type Extractor struct {
	identifiers map[string]bool
	mtTag       string
	yTag        string
	mtLocus     string
	yLocus      string
	logger      *zap.Logger
}

// NewExtractor creates an extractor that accepts the given identifiers.
// The collections are labeled with the tag strings until SetLoci is called.
func NewExtractor(identifiers []string, mtTag, yTag string) *Extractor {
	ids := make(map[string]bool, len(identifiers))
	for _, id := range identifiers {
		ids[id] = true
	}
	return &Extractor{
		identifiers: ids,
		mtTag:       mtTag,
		yTag:        yTag,
		mtLocus:     mtTag,
		yLocus:      yTag,
		logger:      zap.NewNop(),
	}
}

// SetLoci sets the locus names attached to the returned collections.
func (e *Extractor) SetLoci(mt, y string) {
	e.mtLocus = mt
	e.yLocus = y
}

// SetLogger sets the logger for warning and debug messages.
func (e *Extractor) SetLogger(l *zap.Logger) {
	e.logger = l
}

// IsIdentifier reports whether line is an allow-listed identifier.
func (e *Extractor) IsIdentifier(line string) bool {
	return e.identifiers[line]
}

func (e *Extractor) isTag(line string) bool {
	return line == e.mtTag || line == e.yTag
}

// Extract walks lines and pairs each locus tag with the line that follows it,
// labeled by the most recently seen identifier. Lines must already be trimmed
// and non-empty. A line that is neither an identifier nor ignorable free text
// under an active identifier yields a *ParseError.
func (e *Extractor) Extract(lines []string) (mt, y *Collection, err error) {
	mt = NewCollection(e.mtLocus)
	y = NewCollection(e.yLocus)

	current := ""
	for i := 0; i < len(lines); i++ {
		line := lines[i]

		if e.IsIdentifier(line) {
			current = line
			continue
		}

		if current == "" {
			return nil, nil, &ParseError{Line: i + 1, Text: line}
		}

		if !e.isTag(line) {
			e.logger.Debug("ignoring line",
				zap.Int("line", i+1),
				zap.String("label", current))
			continue
		}

		// The last line has no payload to look ahead to.
		if i+1 >= len(lines) {
			e.logger.Warn("locus tag on last line has no sequence",
				zap.Int("line", i+1),
				zap.String("label", current),
				zap.String("tag", line))
			break
		}

		next := lines[i+1]
		if e.IsIdentifier(next) || e.isTag(next) {
			e.logger.Warn("locus tag not followed by a sequence",
				zap.Int("line", i+1),
				zap.String("label", current),
				zap.String("tag", line))
			continue
		}

		if line == e.mtTag {
			mt.Add(current, next)
		} else {
			y.Add(current, next)
		}
		i++
	}

	return mt, y, nil
}
