package launches

// Predicate selects rows of a table.
type Predicate func(Record) bool

// SiteEquals matches rows launched from site. AllSites and the empty string
// match every row.
func SiteEquals(site string) Predicate {
	if IsAllSites(site) {
		return func(Record) bool { return true }
	}
	return func(r Record) bool { return r.Site == site }
}

// PayloadWithin matches rows whose payload mass lies in the closed interval
// [low, high]. An inverted interval matches nothing.
func PayloadWithin(low, high float64) Predicate {
	return func(r Record) bool {
		// NaN bounds fail both comparisons
		return low <= r.PayloadMassKg && r.PayloadMassKg <= high
	}
}

// IsAllSites reports whether site selects the whole table.
func IsAllSites(site string) bool {
	return site == AllSites || site == ""
}
