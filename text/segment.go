package text

import "golang.org/x/text/unicode/bidi"

// bidiRun is a maximal substring with one resolved direction.
type bidiRun struct {
	text string
	dir  Direction
}

// splitBidiRuns resolves the Unicode bidi algorithm over the text and
// groups consecutive runes of the same embedding direction into runs, in
// logical order. Shaping happens per run.
func splitBidiRuns(text string, base Direction) []bidiRun {
	if text == "" {
		return nil
	}

	defaultDir := bidi.Neutral
	if base == DirectionRTL {
		defaultDir = bidi.RightToLeft
	}
	p := bidi.Paragraph{}
	if _, err := p.SetString(text, bidi.DefaultDirection(defaultDir)); err != nil {
		return []bidiRun{{text: text, dir: base}}
	}
	ordering, err := p.Order()
	if err != nil {
		return []bidiRun{{text: text, dir: base}}
	}

	runes := []rune(text)
	levels := make([]Direction, len(runes))
	for i := range levels {
		levels[i] = base
	}
	// run.Pos() returns rune indices, start and end inclusive.
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		dir := DirectionLTR
		if run.Direction() == bidi.RightToLeft {
			dir = DirectionRTL
		}
		start, end := run.Pos()
		for j := start; j <= end && j < len(levels); j++ {
			levels[j] = dir
		}
	}

	var runs []bidiRun
	runStart := 0
	for i := 1; i <= len(runes); i++ {
		if i == len(runes) || levels[i] != levels[runStart] {
			runs = append(runs, bidiRun{
				text: string(runes[runStart:i]),
				dir:  levels[runStart],
			})
			runStart = i
		}
	}
	return runs
}
