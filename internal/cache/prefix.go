package cache

import (
	"fmt"
	"strings"
)

type Prefix string

const (
	// Outcomes counts relay results per operation and outcome.
	Outcomes Prefix = "textsms_outcomes"
	// Balance holds the last successful balance body.
	Balance Prefix = "textsms_balance"
)

// Key joins the prefix and the given parts with ':'.
func (p Prefix) Key(parts ...string) string {
	if len(parts) == 0 {
		return string(p)
	}
	return fmt.Sprintf("%s:%s", p, strings.Join(parts, ":"))
}
