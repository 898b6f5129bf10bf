package progression

// IP budget tables indexed by title level, with index 0 reserved for
// level 1. Each row continues exactly where the previous bracket left off;
// the per-level rates encode deliberate step changes at bracket boundaries.
var (
	ipBase        = [8]int{1500, 1500, 53500, 403500, 1403500, 3403500, 6603500, 8853500}
	ipLevelAdjust = [8]int{1, 1, 14, 49, 99, 149, 189, 204}
	ipPerLevel    = [8]int{0, 4000, 10000, 20000, 40000, 80000, 150000, 600000}
)

// TotalIP returns the total improvement points earned by a character of
// the given level. Monotonic non-decreasing in level.
//
// Precondition: level must be >= 1.
func TotalIP(level int) int {
	tl := 0
	if level > 1 {
		tl = TitleLevel(level)
	}
	return ipBase[tl] + (level-ipLevelAdjust[tl])*ipPerLevel[tl]
}
