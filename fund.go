package fundflow

import (
	"fmt"
	"iter"
	"sort"
)

// DefaultCurrency is used when a fund record never declares one.
const DefaultCurrency = "USD"

// Fund represents a fund record: the declared terms and the ordered list of
// capital calls and exit events.
//
// In a Fund events are always in quarter order.
type Fund struct {
	events []Event
	file   string // record name, the file path relative to the fund directory

	// declared by the latest terms event.
	name      string
	currency  string
	waterfall WaterfallConfig
	fees      *FeeTerms
}

// NewFund creates an empty fund record.
func NewFund() *Fund {
	return &Fund{
		events: make([]Event, 0),
	}
}

// Name returns the fund's declared display name, falling back to the
// record name when the terms never declared one.
func (f *Fund) Name() string {
	if f.name == "" {
		return f.file
	}
	return f.name
}

// File returns the record name, the path of the fund file relative to the
// fund directory, without the .jsonl extension.
func (f *Fund) File() string { return f.file }

// Currency returns the fund's reporting currency, or DefaultCurrency when
// the record never declared one.
func (f *Fund) Currency() string {
	if f.currency == "" {
		return DefaultCurrency
	}
	return f.currency
}

// WaterfallTerms returns the declared distribution terms, defaults applied.
func (f *Fund) WaterfallTerms() WaterfallConfig { return f.waterfall.withDefaults() }

// FeeTerms returns the declared management fee terms, or nil when the fund
// charges none.
func (f *Fund) FeeTerms() *FeeTerms { return f.fees }

// Validate checks an event for correctness and applies quick fixes where
// applicable (e.g., filling in the fund currency). It returns the validated
// (and potentially modified) event or an error detailing any validation
// failures.
func (f *Fund) Validate(ev Event) (Event, error) {
	var err error
	switch v := ev.(type) {
	case Terms:
		ev, err = v.Validate(f)
	case Contribution:
		ev, err = v.Validate(f)
	case Exit:
		ev, err = v.Validate(f)
	default:
		return ev, fmt.Errorf("unsupported event type for validation: %T %v", ev, ev)
	}
	if err != nil {
		return ev, fmt.Errorf("invalid %s event in %v: %w", ev.What(), ev.When(), err)
	}
	return ev, nil
}

// Append appends events to this fund record and maintains the quarter order
// of events.
func (f *Fund) Append(events ...Event) {
	f.events = append(f.events, events...)
	// process terms declarations.
	f.processEvents(events...)
	f.stableSort() // Ensure the record remains sorted after appending
}

func (f *Fund) processEvents(events ...Event) {
	for _, ev := range events {
		if v, ok := ev.(Terms); ok {
			f.name = v.Name
			f.currency = v.Currency
			f.waterfall = v.Waterfall
			f.fees = v.Fees
		}
	}
}

// Events returns an iterator that yields each event in its record order.
// With no filter every event is yielded.
func (f *Fund) Events(filters ...func(Event) bool) iter.Seq2[int, Event] {
	return func(yield func(int, Event) bool) {
		for i, ev := range f.events {
			accept := len(filters) == 0
			for _, filter := range filters {
				if filter(ev) {
					accept = true
					break
				}
			}
			if !accept {
				continue
			}
			if !yield(i, ev) {
				return
			}
		}
	}
}

// ByCommand returns a predicate that filters events by command type.
func ByCommand(command FlowType) func(Event) bool {
	return func(ev Event) bool { return ev.What() == command }
}

// Contributions returns an iterator over the fund's capital calls, in
// quarter order.
func (f *Fund) Contributions() iter.Seq[Contribution] {
	return func(yield func(Contribution) bool) {
		for _, ev := range f.events {
			if c, ok := ev.(Contribution); ok {
				if !yield(c) {
					return
				}
			}
		}
	}
}

// Exits returns an iterator over the fund's exit events, in quarter order.
func (f *Fund) Exits() iter.Seq[Exit] {
	return func(yield func(Exit) bool) {
		for _, ev := range f.events {
			if e, ok := ev.(Exit); ok {
				if !yield(e) {
					return
				}
			}
		}
	}
}

// stableSort sorts the record by event quarter. The sort is stable, meaning
// events in the same quarter maintain their original relative order.
func (f *Fund) stableSort() {
	sort.SliceStable(f.events, func(i, j int) bool {
		return f.events[i].When() < f.events[j].When()
	})
}

// FirstQuarter returns the quarter of the earliest event in the record, or
// zero when the record is empty.
func (f *Fund) FirstQuarter() Quarter {
	if len(f.events) == 0 {
		return 0
	}
	return f.events[0].When()
}

// LastQuarter returns the quarter of the latest event in the record, or zero
// when the record is empty.
func (f *Fund) LastQuarter() Quarter {
	if len(f.events) == 0 {
		return 0
	}
	return f.events[len(f.events)-1].When()
}

// Committed returns the sum of all capital calls in the record, whatever
// their quarter. This is the base of the recycling cap.
func (f *Fund) Committed() Money {
	total := M(0, f.Currency())
	for c := range f.Contributions() {
		total = total.Add(c.Amount)
	}
	return total
}

// CalledThrough returns the sum of capital calls settled in or before the
// given quarter.
func (f *Fund) CalledThrough(q Quarter) Money {
	total := M(0, f.Currency())
	for c := range f.Contributions() {
		if c.When() <= q {
			total = total.Add(c.Amount)
		}
	}
	return total
}

// Fmt returns a canonical copy of the fund record: events validated in
// record order with quick fixes applied, then sorted in stable quarter
// order.
func (f *Fund) Fmt() (*Fund, error) {
	formatted := NewFund()
	formatted.file = f.file
	for _, ev := range f.Events() {
		v, err := formatted.Validate(ev)
		if err != nil {
			return nil, err
		}
		formatted.Append(v)
	}
	return formatted, nil
}

// Waterfall folds the fund's exit events into its distribution ledger,
// using the declared terms.
func (f *Fund) Waterfall() *Ledger {
	contributions := make([]Contribution, 0)
	for c := range f.Contributions() {
		contributions = append(contributions, c)
	}
	exits := make([]Exit, 0)
	for e := range f.Exits() {
		exits = append(exits, e)
	}
	return ComputeWaterfall(f.WaterfallTerms(), contributions, exits)
}
