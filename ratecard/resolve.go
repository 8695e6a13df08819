/*
Package ratecard resolves the pay agreement that applies to a shift and
parses rate-card and time-pattern configuration from JSON.

RESOLUTION:
  A timesheet references zero or one applicable rate card, matched by
  client name + role + date validity. Absent a match, the calculator's
  caller-supplied base rate and built-in premiums apply.
*/
package ratecard

import (
	"strings"

	"github.com/warp/timesheet-engine/payroll"
)

// Resolve picks the rate card applying to client+role on a given date.
// Name and role matching is case-insensitive. When several cards cover the
// date, the one with the latest EffectiveFrom wins (most recent agreement).
// Returns (nil, false) when no card applies.
func Resolve(cards []payroll.RateCard, clientName, role string, on payroll.Date) (*payroll.RateCard, bool) {
	var best *payroll.RateCard
	for i := range cards {
		c := &cards[i]
		if !strings.EqualFold(c.ClientName, clientName) {
			continue
		}
		if role != "" && !strings.EqualFold(c.Role, role) {
			continue
		}
		if !c.CoversDate(on) {
			continue
		}
		if best == nil || c.EffectiveFrom.After(best.EffectiveFrom) {
			best = c
		}
	}
	if best == nil {
		return nil, false
	}
	out := *best
	return &out, true
}
