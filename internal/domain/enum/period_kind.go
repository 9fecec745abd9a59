package enum

// PeriodKind represents a reporting window
type PeriodKind string

const (
	PeriodToday     PeriodKind = "today"
	PeriodThisMonth PeriodKind = "this_month"
	PeriodThisYear  PeriodKind = "this_year"
	PeriodMonth     PeriodKind = "month"
	PeriodYear      PeriodKind = "year"
	PeriodCustom    PeriodKind = "custom"
	PeriodAll       PeriodKind = "all"
)

func (k PeriodKind) String() string {
	return string(k)
}

// IsValid reports whether k is a known period kind
func (k PeriodKind) IsValid() bool {
	switch k {
	case PeriodToday, PeriodThisMonth, PeriodThisYear, PeriodMonth, PeriodYear, PeriodCustom, PeriodAll:
		return true
	}
	return false
}
