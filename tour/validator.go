package tour

import (
	"strconv"
	"strings"
)

// The problem text is consumed by a three-state line machine:
//
//	stateSiteHeader    expects the exact header of the site section
//	stateSiteRecords   one site record per line, until the window header
//	stateWindowRecords one (site, day) opening window per line
//
// Blank lines are skipped in every state but still count for line numbers.
type parseState int

const (
	stateSiteHeader parseState = iota
	stateSiteRecords
	stateWindowRecords
)

var (
	siteHeader   = []string{"site", "avenue", "street", "desiredtime", "value"}
	windowHeader = []string{"site", "day", "beginhour", "endhour"}
)

// parser accumulates the raw records of a single ParseProblem call.
type parser struct {
	limits Limits
	state  parseState

	// maxSite and maxDay track the largest identifiers seen so far; the
	// dense-range invariant makes them the site and day counts once the
	// cross-checks pass.
	maxSite int
	maxDay  int

	sites     map[int]Site
	locations map[[2]int]bool
	windows   map[[2]int]Window // keyed by (site, day), both 1-based
}

// ParseProblem validates raw problem text and builds an immutable Problem.
// The returned error is always a *Error carrying the offending line number
// where one applies.
func ParseProblem(raw string, limits Limits) (*Problem, error) {
	p := &parser{
		limits:    limits,
		sites:     make(map[int]Site),
		locations: make(map[[2]int]bool),
		windows:   make(map[[2]int]Window),
	}
	for i, line := range strings.Split(raw, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		lnum := i + 1
		var err error
		switch p.state {
		case stateSiteHeader:
			err = p.readSiteHeader(lnum, fields)
		case stateSiteRecords:
			err = p.readSiteRecord(lnum, fields)
		case stateWindowRecords:
			err = p.readWindowRecord(lnum, fields)
		}
		if err != nil {
			return nil, err
		}
	}
	return p.finish()
}

func (p *parser) readSiteHeader(lnum int, fields []string) error {
	if !equalTokens(fields, siteHeader) {
		return errorf(FormatError, lnum, "invalid line %d", lnum)
	}
	p.state = stateSiteRecords
	return nil
}

func (p *parser) readSiteRecord(lnum int, fields []string) error {
	if !leadsWithDigit(fields[0]) {
		// Only the window-section header may end the site section.
		if !equalTokens(fields, windowHeader) {
			return errorf(FormatError, lnum, "invalid line %d", lnum)
		}
		if len(p.sites) != p.maxSite {
			return errorf(ConsistencyError, 0, "mismatched site count and first part of input")
		}
		p.state = stateWindowRecords
		return nil
	}

	if len(fields) != 5 {
		return errorf(FormatError, lnum, "invalid line %d", lnum)
	}
	nums, err := atois(fields[:4])
	if err != nil {
		return errorf(FormatError, lnum, "invalid line %d", lnum)
	}
	value, err := strconv.ParseFloat(fields[4], 64)
	if err != nil {
		return errorf(FormatError, lnum, "invalid line %d", lnum)
	}
	site, avenue, street, desired := nums[0], nums[1], nums[2], nums[3]

	if site > p.maxSite {
		p.maxSite = site
	}
	if p.maxSite > p.limits.MaxSites {
		return errorf(ConsistencyError, lnum, "too many sites (%d)", p.maxSite)
	}
	if site < 1 {
		return errorf(RangeError, lnum, "invalid site id at line %d", lnum)
	}
	if desired < 1 || desired > 1440 {
		return errorf(RangeError, lnum, "invalid desired time at line %d", lnum)
	}
	if !(value > 0) {
		return errorf(RangeError, lnum, "invalid value at line %d", lnum)
	}
	if _, ok := p.sites[site]; ok {
		return errorf(ConsistencyError, lnum, "duplicated site id at line %d", lnum)
	}
	loc := [2]int{avenue, street}
	if p.locations[loc] {
		return errorf(ConsistencyError, lnum, "duplicated site location at line %d", lnum)
	}
	p.locations[loc] = true
	p.sites[site] = Site{Avenue: avenue, Street: street, DesiredTime: desired, Value: value}
	return nil
}

func (p *parser) readWindowRecord(lnum int, fields []string) error {
	if len(fields) != 4 {
		return errorf(FormatError, lnum, "invalid line %d", lnum)
	}
	nums, err := atois(fields)
	if err != nil {
		return errorf(FormatError, lnum, "invalid line %d", lnum)
	}
	site, day, begin, end := nums[0], nums[1], nums[2], nums[3]

	if day > p.maxDay {
		p.maxDay = day
	}
	if p.maxDay > p.limits.MaxDays {
		return errorf(ConsistencyError, lnum, "too many days (%d)", p.maxDay)
	}
	if site < 1 || site > p.maxSite {
		return errorf(RangeError, lnum, "invalid site id at line %d", lnum)
	}
	if begin < 0 || begin > end || end > 23 {
		return errorf(RangeError, lnum, "invalid opening hours at line %d", lnum)
	}
	key := [2]int{site, day}
	if _, ok := p.windows[key]; ok {
		return errorf(ConsistencyError, lnum, "duplicated (site,day) pair at line %d", lnum)
	}
	p.windows[key] = Window{Begin: begin, End: end}
	return nil
}

// finish runs the post-scan cross-checks and assembles the Problem.
func (p *parser) finish() (*Problem, error) {
	if p.state != stateWindowRecords {
		return nil, errorf(FormatError, 0, "unexpected end of input")
	}
	if p.maxDay == 0 {
		return nil, errorf(ConsistencyError, 0, "no opening-window records")
	}
	if p.maxDay*p.maxSite != len(p.windows) {
		return nil, errorf(ConsistencyError, 0,
			"mismatched day and site counts in second part of input")
	}

	// Redundant with the count check above, but reports the first missing
	// identifier deterministically: sites ascending, then days ascending.
	for site := 1; site <= p.maxSite; site++ {
		if _, ok := p.sites[site]; !ok {
			return nil, errorf(ConsistencyError, 0, "missing site id %d", site)
		}
		for day := 1; day <= p.maxDay; day++ {
			if _, ok := p.windows[[2]int{site, day}]; !ok {
				return nil, errorf(ConsistencyError, 0, "missing day %d for site %d", day, site)
			}
		}
	}

	prob := &Problem{
		nSite:   p.maxSite,
		nDay:    p.maxDay,
		sites:   make([]Site, p.maxSite),
		windows: make([][]Window, p.maxDay),
	}
	for id, s := range p.sites {
		prob.sites[id-1] = s
	}
	for day := 0; day < p.maxDay; day++ {
		row := make([]Window, p.maxSite)
		for site := 1; site <= p.maxSite; site++ {
			row[site-1] = p.windows[[2]int{site, day + 1}]
		}
		prob.windows[day] = row
	}
	return prob, nil
}

func leadsWithDigit(tok string) bool {
	return tok[0] >= '0' && tok[0] <= '9'
}

func equalTokens(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func atois(fields []string) ([]int, error) {
	nums := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		nums[i] = n
	}
	return nums, nil
}
