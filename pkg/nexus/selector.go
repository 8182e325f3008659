package nexus

// Named matches facts whose Name equals name exactly.
func Named(name string) Selector {
	return func(d Datum) bool {
		return d.Name == name
	}
}

// Any matches every fact.
func Any() Selector {
	return func(Datum) bool {
		return true
	}
}

// AnyOf matches facts whose Name equals any of the given names.
func AnyOf(names ...string) Selector {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return func(d Datum) bool {
		_, ok := set[d.Name]
		return ok
	}
}

// Not inverts a selector.
func Not(sel Selector) Selector {
	return func(d Datum) bool {
		return !sel(d)
	}
}

// All matches when every given selector matches.
// With no selectors it matches everything.
func All(sels ...Selector) Selector {
	return func(d Datum) bool {
		for _, sel := range sels {
			if !sel(d) {
				return false
			}
		}
		return true
	}
}
