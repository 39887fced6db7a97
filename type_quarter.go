package fundflow

import (
	"fmt"
	"strconv"
	"strings"
)

// Quarter is the fund's clock, counting quarters since the fund's first
// close. Quarter 1 is the first quarter of the fund's life, there is no
// quarter 0. Calendar dates never appear in fund records, every event is
// stamped with the quarter it settles in.
type Quarter int

// ParseQuarter parses "Q7", "q7" or plain "7".
func ParseQuarter(s string) (Quarter, error) {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "Q"), "q")
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("invalid quarter %q: %w", s, err)
	}
	if n < 1 {
		return 0, fmt.Errorf("invalid quarter %q: quarters are numbered from 1", s)
	}
	return Quarter(n), nil
}

// String returns the quarter in its usual "Q7" form.
func (q Quarter) String() string { return "Q" + strconv.Itoa(int(q)) }

// Years returns the end of the quarter in years since the fund's first
// close, the time basis for IRR compounding. Quarter 4 ends year one.
func (q Quarter) Years() float64 { return float64(q) / 4 }
