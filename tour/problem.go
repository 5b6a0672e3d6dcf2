// Package tour implements the multi-day tour-planning problem format:
// parsing and validating problem texts, and replaying candidate tours to
// decide feasibility and total collected value.
package tour

import (
	"fmt"
	"strconv"
	"strings"
)

// Limits bounds the size of an accepted problem.
//
// The validator takes limits explicitly so that callers with different
// contest settings do not share process-wide state.
type Limits struct {
	MaxSites int
	MaxDays  int
}

// DefaultLimits returns the contest limits: at most 200 sites, at most 10 days.
func DefaultLimits() Limits { return Limits{MaxSites: 200, MaxDays: 10} }

// Site is a point of interest on the avenue/street grid.
type Site struct {
	Avenue int
	Street int

	// DesiredTime is the required visit duration in minutes, 1..1440.
	DesiredTime int

	// Value is the reward for visiting the site, always positive.
	Value float64
}

// Window is an inclusive opening range in whole hours, 0 <= Begin <= End <= 23.
// A visit must start and fully complete inside the window.
type Window struct {
	Begin int
	End   int
}

// Problem is a validated tour-planning problem. It is immutable after
// construction and safe to share across concurrent scoring calls.
type Problem struct {
	nSite int
	nDay  int
	sites []Site

	// windows[day][site]; every row is an independently owned slice.
	windows [][]Window
}

// NSite returns the number of sites.
func (p *Problem) NSite() int { return p.nSite }

// NDay returns the number of days.
func (p *Problem) NDay() int { return p.nDay }

// Site returns the site with the given zero-based index.
func (p *Problem) Site(i int) Site { return p.sites[i] }

// Window returns the opening window of a site on a day, both zero-based.
func (p *Problem) Window(day, site int) Window { return p.windows[day][site] }

// Serialize re-emits the problem in its canonical text form. Parsing the
// result yields a problem with identical fields.
func (p *Problem) Serialize() string {
	var b strings.Builder
	b.WriteString("site avenue street desiredtime value\n")
	for i, s := range p.sites {
		fmt.Fprintf(&b, "%d %d %d %d %s\n",
			i+1, s.Avenue, s.Street, s.DesiredTime, strconv.FormatFloat(s.Value, 'g', -1, 64))
	}
	b.WriteString("site day beginhour endhour\n")
	for site := 0; site < p.nSite; site++ {
		for day := 0; day < p.nDay; day++ {
			w := p.windows[day][site]
			fmt.Fprintf(&b, "%d %d %d %d\n", site+1, day+1, w.Begin, w.End)
		}
	}
	return b.String()
}
