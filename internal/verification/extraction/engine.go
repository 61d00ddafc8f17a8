// Package extraction turns raw OCR line text into identity fields using label
// anchors and positional heuristics. The engine is deterministic: identical
// input always yields an identical result.
package extraction

import (
	"regexp"
	"strings"

	"integrationhub/internal/verification/models"
)

var (
	documentNumberRe = regexp.MustCompile(`[A-Z]{5}[0-9]{4}[A-Z]`)
	numericOnlyRe    = regexp.MustCompile(`^[\d/\-.\s]+$`)
	dateRe           = regexp.MustCompile(`\d{2}[/.\-]\d{2}[/.\-]\d{4}`)
	nameShapeRe      = regexp.MustCompile(`^[A-Z]{2,}(\s+[A-Z]{2,}){1,4}$`)
	latinUpperRe     = regexp.MustCompile(`[A-Z]`)
)

// guardianLookahead is how many lines after the name are searched for a guardian.
const guardianLookahead = 4

// Engine extracts fields from OCR lines.
type Engine struct {
	tables Tables
}

// New creates an engine over the given tables.
func New(tables Tables) *Engine {
	return &Engine{tables: tables}
}

// NewDefault creates an engine over DefaultTables.
func NewDefault() *Engine {
	return New(DefaultTables())
}

// candidate is a line that looks like a person's name.
type candidate struct {
	line  string
	index int
}

// Extract recovers document number, name, date of birth and guardian name.
// Empty input yields zero fields.
func (e *Engine) Extract(lines []string) models.ExtractedFields {
	var out models.ExtractedFields
	if len(lines) == 0 {
		return out
	}

	original := make([]string, len(lines))
	upper := make([]string, len(lines))
	for i, l := range lines {
		original[i] = strings.TrimSpace(l)
		upper[i] = strings.ToUpper(original[i])
	}

	number := documentNumberRe.FindString(strings.Join(upper, " "))
	out.DocumentNumber.Offer(number, models.ProvenanceLabelMatched)

	guardianLabelLine := e.labelPass(original, upper, &out)

	if number != "" {
		e.positionalPass(original, upper, number, guardianLabelLine, &out)
		e.guardianAfterName(original, upper, &out)
	}

	out.Name.Value = cleanName(out.Name.Value)
	out.GuardianName.Value = cleanName(out.GuardianName.Value)
	if out.Name.Value == "" {
		out.Name = models.Field{}
	}
	if out.GuardianName.Value == "" {
		out.GuardianName = models.Field{}
	}
	return out
}

// labelPass fills fields that follow a recognised label. It returns the index
// of the first guardian label line, or -1.
func (e *Engine) labelPass(original, upper []string, out *models.ExtractedFields) int {
	guardianLabelLine := -1

	for i, line := range upper {
		if containsAny(line, e.tables.NameLabels) && !out.Name.IsSet() {
			if j := e.nextValueLine(upper, i); j >= 0 {
				out.Name.Offer(original[j], models.ProvenanceLabelMatched)
			}
		}

		if containsAny(line, e.tables.GuardianLabels) {
			if guardianLabelLine < 0 {
				guardianLabelLine = i
			}
			if !out.GuardianName.IsSet() {
				if j := e.nextValueLine(upper, i); j >= 0 {
					out.GuardianName.Offer(original[j], models.ProvenanceLabelMatched)
				}
			}
		}

		if containsAny(line, e.tables.DOBLabels) && !out.DateOfBirth.IsSet() {
			for _, next := range upper[i+1:] {
				if m := dateRe.FindString(next); m != "" {
					out.DateOfBirth.Offer(m, models.ProvenanceLabelMatched)
					break
				}
			}
		}
	}
	return guardianLabelLine
}

// nextValueLine returns the index of the first line after i that can hold a
// labelled value, or -1.
func (e *Engine) nextValueLine(upper []string, i int) int {
	for j := i + 1; j < len(upper); j++ {
		next := upper[j]
		if next == "" || numericOnlyRe.MatchString(next) || len(next) <= 2 {
			continue
		}
		if e.isLabelLine(next) || e.shouldSkip(next) {
			continue
		}
		return j
	}
	return -1
}

func (e *Engine) positionalPass(original, upper []string, number string, guardianLabelLine int, out *models.ExtractedFields) {
	if out.Name.IsSet() && out.GuardianName.IsSet() {
		return
	}

	numberLine := -1
	for i, l := range upper {
		if strings.Contains(l, number) {
			numberLine = i
			break
		}
	}

	var before []candidate
	for i, l := range upper {
		if i >= numberLine {
			break
		}
		if e.looksLikeName(l) && len(l) > 3 && len(l) < 50 && l != number {
			before = append(before, candidate{line: original[i], index: i})
		}
	}

	if len(before) > 0 {
		out.Name.Offer(before[len(before)-1].line, models.ProvenancePositionalGuess)
	}

	if out.GuardianName.IsSet() || len(before) < 2 {
		return
	}
	if guardianLabelLine >= 0 {
		for k := len(before) - 1; k >= 0; k-- {
			if before[k].index < guardianLabelLine && before[k].line != out.Name.Value {
				out.GuardianName.Offer(before[k].line, models.ProvenancePositionalGuess)
				return
			}
		}
		return
	}
	for _, c := range before {
		if c.line != out.Name.Value {
			out.GuardianName.Offer(c.line, models.ProvenancePositionalGuess)
			return
		}
	}
}

func (e *Engine) guardianAfterName(original, upper []string, out *models.ExtractedFields) {
	if out.GuardianName.IsSet() || !out.Name.IsSet() {
		return
	}

	name := strings.ToUpper(out.Name.Value)
	nameLine := -1
	for i, l := range upper {
		if strings.Contains(l, name) {
			nameLine = i
			break
		}
	}
	if nameLine < 0 {
		return
	}

	end := min(nameLine+1+guardianLookahead, len(upper))
	for i := nameLine + 1; i < end; i++ {
		if e.looksLikeName(upper[i]) && upper[i] != name {
			out.GuardianName.Offer(original[i], models.ProvenancePositionalGuess)
			return
		}
	}
}

func (e *Engine) looksLikeName(upperLine string) bool {
	return nameShapeRe.MatchString(upperLine) && !e.shouldSkip(upperLine)
}

func (e *Engine) isLabelLine(upperLine string) bool {
	return containsAny(upperLine, e.tables.NameLabels) ||
		containsAny(upperLine, e.tables.GuardianLabels) ||
		containsAny(upperLine, e.tables.DOBLabels)
}

// shouldSkip drops lines without a Latin letter and boilerplate lines.
func (e *Engine) shouldSkip(upperLine string) bool {
	if !latinUpperRe.MatchString(upperLine) {
		return true
	}
	return containsAny(upperLine, e.tables.SkipPhrases)
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(s, n) {
			return true
		}
	}
	return false
}

// cleanName keeps ASCII letters and whitespace.
func cleanName(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case r == ' ' || r == '\t':
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
