package renderer

import (
	"fmt"

	"github.com/openvc/fundflow"
)

// Flow renders a fund event to a string.
func Flow(ev fundflow.Event) string {
	switch v := ev.(type) {
	case fundflow.Terms:
		return fmt.Sprintf("Declared terms of %s in %s for %s", v.Waterfall.CarryPct, v.Quarter, v.Name)
	case fundflow.Contribution:
		return fmt.Sprintf("Called %s in %s", v.Amount, v.Quarter)
	case fundflow.Exit:
		return fmt.Sprintf("Exited for %s in %s", v.GrossProceeds, v.Quarter)
	default:
		return string(ev.What())
	}
}
