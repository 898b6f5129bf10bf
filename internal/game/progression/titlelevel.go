// Package progression implements the build arithmetic: title levels, the
// improvement-point budget, raise costs, value caps, ability trickle-down,
// and the cumulative vitals formulas. Everything here is a pure function of
// a level/breed/profession and a ruleset.Tables.
package progression

// titleBreakpoints are the first levels of each title-level bracket.
var titleBreakpoints = [7]int{1, 15, 50, 100, 150, 190, 205}

// TitleLevel maps a character level to its title level 1..7.
//
// Precondition: level should be within the supported 1..220 range; values
// above the last breakpoint all map to title level 7.
func TitleLevel(level int) int {
	for i, bp := range titleBreakpoints {
		if bp > level {
			return i
		}
	}
	return 7
}

// PrevTitleMaxLevel returns the last level of the bracket before the one
// containing level: 0 for title level 1, 204 for title level 7.
func PrevTitleMaxLevel(level int) int {
	return titleBreakpoints[TitleLevel(level)-1] - 1
}

// Bracket is a title-level bracket slice of a character's level range.
type Bracket struct {
	TitleLevel int
	Levels     int
}

// Brackets splits levels 1..level into consecutive title-level brackets.
// Per-level gains change at every bracket boundary, so cumulative formulas
// must walk these rather than multiply a single gain by the level.
//
// Postcondition: the Levels fields sum to level; TitleLevel values are
// strictly increasing starting at 1.
func Brackets(level int) []Bracket {
	out := make([]Bracket, 0, 7)
	for tl := 1; tl <= 7; tl++ {
		start := titleBreakpoints[tl-1]
		if start > level {
			break
		}
		end := level
		if tl < 7 && titleBreakpoints[tl]-1 < end {
			end = titleBreakpoints[tl] - 1
		}
		out = append(out, Bracket{TitleLevel: tl, Levels: end - start + 1})
	}
	return out
}
