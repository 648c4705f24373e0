package date

// Range represents a range of dates.
type Range struct{ From, To Date }

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool { return (!date.Before(r.From) && !date.After(r.To)) }

// String returns the range as "from..to".
func (r Range) String() string { return r.From.String() + ".." + r.To.String() }
