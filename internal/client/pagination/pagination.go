// Package pagination turns the page token of the current location into
// navigation targets. The location is the only record of the current page.
package pagination

import (
	"strconv"
	"strings"

	"github.com/dmitrijs2005/portal/internal/client/router"
)

// ParsePage reads the leading decimal digits of token. Anything that does
// not yield a positive number means page 1.
func ParsePage(token string) int {
	token = strings.TrimSpace(token)
	token = strings.TrimPrefix(token, "+")

	end := 0
	for end < len(token) && token[end] >= '0' && token[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(token[:end])
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Target is one navigation control.
type Target struct {
	Page    int
	Enabled bool
}

// Controls is the rendered state of the pager for page p of n.
type Controls struct {
	Current int
	Total   int
	// Visible is false when there is at most one page; the pager is then
	// not shown at all.
	Visible bool
	First   Target
	Prev    Target
	Next    Target
	Last    Target
}

// Compute builds the controls for current page p of total pages n.
func Compute(p, n int) Controls {
	return Controls{
		Current: p,
		Total:   n,
		Visible: n > 1,
		First:   Target{Page: 1, Enabled: p > 1},
		Prev:    Target{Page: p - 1, Enabled: p > 1},
		Next:    Target{Page: p + 1, Enabled: p < n},
		Last:    Target{Page: n, Enabled: p < n},
	}
}

// Location is the part of the navigator the controller drives.
type Location interface {
	Current() string
	Push(loc string)
	Replace(loc string)
}

// Controller moves between catalog pages by rewriting the location.
type Controller struct {
	loc Location
}

func NewController(loc Location) *Controller {
	return &Controller{loc: loc}
}

// Current derives the page from the location.
func (c *Controller) Current() int {
	return ParsePage(router.Resolve(c.loc.Current()).PageToken)
}

// Controls returns the pager for the current location and total pages.
func (c *Controller) Controls(total int) Controls {
	return Compute(c.Current(), total)
}

// GoTo navigates to page if it lies in [1, total] and differs from the
// current one. Other requests are ignored.
func (c *Controller) GoTo(page, total int) bool {
	if page < 1 || page > total || page == c.Current() {
		return false
	}
	c.loc.Push(router.InformationPage(strconv.Itoa(page)))
	return true
}

func (c *Controller) First(total int) bool { return c.GoTo(1, total) }
func (c *Controller) Prev(total int) bool  { return c.GoTo(c.Current()-1, total) }
func (c *Controller) Next(total int) bool  { return c.GoTo(c.Current()+1, total) }
func (c *Controller) Last(total int) bool  { return c.GoTo(total, total) }

// Normalize rewrites a catalog location without a numeric page token to
// its canonical /information/{page} form. It reports whether the location
// changed.
func (c *Controller) Normalize() bool {
	r := router.Resolve(c.loc.Current())
	if r.View != router.ViewInformation {
		return false
	}
	want := router.InformationPage(strconv.Itoa(ParsePage(r.PageToken)))
	if r.Path == want {
		return false
	}
	c.loc.Replace(want)
	return true
}

// Clamp replaces the location with the last page when the current page
// lies beyond total. It returns the page now current and whether the
// location changed. A total below 1 is never clamped to.
func (c *Controller) Clamp(total int) (int, bool) {
	p := c.Current()
	if total < 1 || p <= total {
		return p, false
	}
	c.loc.Replace(router.InformationPage(strconv.Itoa(total)))
	return total, true
}
