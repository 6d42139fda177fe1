package course

import (
	"sort"
	"strconv"
	"strings"
)

// seriesKey splits a series number like "CSG003" into its leading part
// and the trailing numeric group. ok is false when there is no trailing
// number.
func seriesKey(s string) (head string, num int, ok bool) {
	s = strings.TrimSpace(s)
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	if i == len(s) || s == "" {
		return s, 0, false
	}
	n, err := strconv.Atoi(s[i:])
	if err != nil {
		return s, 0, false
	}
	return s[:i], n, true
}

// SeriesLess orders series numbers naturally: entries with a trailing
// numeric group sort first by their alphabetic head, then numerically;
// entries without one sort last, alphabetically.
func SeriesLess(a, b string) bool {
	ha, na, oka := seriesKey(a)
	hb, nb, okb := seriesKey(b)
	if oka != okb {
		return oka
	}
	if !oka {
		return strings.ToUpper(strings.TrimSpace(a)) < strings.ToUpper(strings.TrimSpace(b))
	}
	if ua, ub := strings.ToUpper(ha), strings.ToUpper(hb); ua != ub {
		return ua < ub
	}
	return na < nb
}

// SortModulesBySeries sorts modules by natural series order with the
// module ID as the deterministic tie-break.
func SortModulesBySeries(mods []Module) {
	sort.SliceStable(mods, func(i, j int) bool {
		a, b := mods[i].SeriesNumber, mods[j].SeriesNumber
		if a == b {
			return mods[i].ID < mods[j].ID
		}
		if SeriesLess(a, b) {
			return true
		}
		if SeriesLess(b, a) {
			return false
		}
		return mods[i].ID < mods[j].ID
	})
}
