package coverage

import "fmt"

// Status summarizes a counter or a line.
type Status int

const (
	// Empty means there is nothing to cover.
	Empty Status = iota
	// NotCovered means no item was covered.
	NotCovered
	// FullyCovered means every item was covered.
	FullyCovered
	// PartlyCovered means some but not all items were covered.
	PartlyCovered
)

var statusNames = map[Status]string{
	Empty:         "EMPTY",
	NotCovered:    "NOT_COVERED",
	FullyCovered:  "FULLY_COVERED",
	PartlyCovered: "PARTLY_COVERED",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Or combines two statuses; the bits of NotCovered and FullyCovered add up to PartlyCovered.
func (s Status) Or(other Status) Status {
	return s | other
}

// Counter is an immutable (missed, covered) pair.
type Counter struct {
	Missed  int
	Covered int
}

// Fixed counters used by the calculator.
var (
	Counter00 = Counter{}
	Counter10 = Counter{Missed: 1}
	Counter01 = Counter{Covered: 1}
)

// NewCounter returns a counter with the given figures.
func NewCounter(missed, covered int) Counter {
	return Counter{Missed: missed, Covered: covered}
}

// Total returns missed + covered.
func (c Counter) Total() int {
	return c.Missed + c.Covered
}

// Add returns the sum of c and other.
func (c Counter) Add(other Counter) Counter {
	return Counter{
		Missed:  c.Missed + other.Missed,
		Covered: c.Covered + other.Covered,
	}
}

// Ratio returns covered/total, or 0 for an empty counter.
func (c Counter) Ratio() float64 {
	if c.Total() == 0 {
		return 0
	}
	return float64(c.Covered) / float64(c.Total())
}

// Status derives the coverage status of c.
func (c Counter) Status() Status {
	s := Empty
	if c.Covered > 0 {
		s = s.Or(FullyCovered)
	}
	if c.Missed > 0 {
		s = s.Or(NotCovered)
	}
	return s
}

func (c Counter) String() string {
	return fmt.Sprintf("%d/%d", c.Covered, c.Total())
}
