package gateway

// TotalRecords is the total-records hint a Context carries (spec §3): either
// a fixed count or Indeterminate. Channel does not read it; there is no
// batching and no Finalize call in this package, so every send is
// forwarded immediately whatever the hint says.
type TotalRecords struct {
	n         uint32
	specified bool
}

// Indeterminate is the zero value: total record count is not yet known.
func Indeterminate() TotalRecords {
	return TotalRecords{}
}

// Specified returns a TotalRecords fixed at n.
func Specified(n uint32) TotalRecords {
	return TotalRecords{n: n, specified: true}
}

// IsSpecified reports whether the total has been fixed.
func (t TotalRecords) IsSpecified() bool { return t.specified }

// Value returns the fixed total and true, or (0, false) if indeterminate.
func (t TotalRecords) Value() (uint32, bool) { return t.n, t.specified }
