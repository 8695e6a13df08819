/*
Package search implements the back-office query language: a whitespace and
quote aware tokenizer with linear filter application over timesheets.

QUERY SYNTAX:
  Tokens are separated by whitespace. Double quotes group a phrase into one
  token ("acme care"). A token of the form field:value filters on a named
  field; known fields are worker, client, and status. Quoting works on the
  value side too (client:"acme care"). Bare tokens match worker or client
  name by case-insensitive substring. All tokens must match (AND).

EXAMPLES:
  jane                      worker or client contains "jane"
  status:pending            status is exactly pending
  client:"acme care" night  client contains "acme care" AND free text "night"
*/
package search

import (
	"strings"

	"github.com/warp/timesheet-engine/payroll"
)

// Token is one parsed query term.
type Token struct {
	Field string // "" for free text
	Value string
}

// Tokenize splits a query into tokens, honoring double-quoted phrases.
// Quotes are stripped; an unterminated quote runs to the end of the query.
func Tokenize(query string) []Token {
	var tokens []Token
	var buf strings.Builder
	inQuote := false

	flush := func() {
		if buf.Len() == 0 {
			return
		}
		tokens = append(tokens, splitFieldToken(buf.String()))
		buf.Reset()
	}

	for _, r := range query {
		switch {
		case r == '"':
			inQuote = !inQuote
		case !inQuote && (r == ' ' || r == '\t' || r == '\n' || r == '\r'):
			flush()
		default:
			buf.WriteRune(r)
		}
	}
	flush()
	return tokens
}

// splitFieldToken recognizes field:value tokens for known fields. Unknown
// prefixes stay free text, so "12:30" is not mistaken for a filter.
func splitFieldToken(raw string) Token {
	if i := strings.IndexByte(raw, ':'); i > 0 {
		field := strings.ToLower(raw[:i])
		switch field {
		case "worker", "client", "status":
			return Token{Field: field, Value: raw[i+1:]}
		}
	}
	return Token{Value: raw}
}

// Filter returns the timesheets matching every token of the query, in input
// order. An empty query matches everything.
func Filter(timesheets []payroll.Timesheet, query string) []payroll.Timesheet {
	tokens := Tokenize(query)
	if len(tokens) == 0 {
		return timesheets
	}

	var out []payroll.Timesheet
	for _, ts := range timesheets {
		if matchesAll(ts, tokens) {
			out = append(out, ts)
		}
	}
	return out
}

func matchesAll(ts payroll.Timesheet, tokens []Token) bool {
	for _, tok := range tokens {
		if !matches(ts, tok) {
			return false
		}
	}
	return true
}

func matches(ts payroll.Timesheet, tok Token) bool {
	v := strings.ToLower(tok.Value)
	switch tok.Field {
	case "worker":
		return strings.Contains(strings.ToLower(ts.WorkerName), v)
	case "client":
		return strings.Contains(strings.ToLower(ts.ClientName), v)
	case "status":
		return strings.EqualFold(string(ts.Status), tok.Value)
	default:
		return strings.Contains(strings.ToLower(ts.WorkerName), v) ||
			strings.Contains(strings.ToLower(ts.ClientName), v)
	}
}
