package models

// RangeFilters carries the optional numeric bounds exactly as the caller
// supplied them (query string values). Unparsable bounds are ignored.
type RangeFilters struct {
	MinRevenue   string `json:"minRevenue,omitempty" form:"minRevenue"`
	MaxRevenue   string `json:"maxRevenue,omitempty" form:"maxRevenue"`
	MinEmployees string `json:"minEmployees,omitempty" form:"minEmployees"`
	MaxEmployees string `json:"maxEmployees,omitempty" form:"maxEmployees"`
}

// Active reports whether any bound was supplied.
func (f RangeFilters) Active() bool {
	return f.MinRevenue != "" || f.MaxRevenue != "" || f.MinEmployees != "" || f.MaxEmployees != ""
}
