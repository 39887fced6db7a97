package fundflow

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/PaesslerAG/jsonpath"
)

// this file contains functions to handle the planner exchange format.
// Upstream planning tools produce hypothetical contribution and exit
// schedules, this side turns them into fund events and back.

// PlanQueries selects the cash-flow series out of a planner export. Each
// query is a JSONPath expression yielding a list of [quarter, amount] pairs
// (objects with quarter/amount fields are accepted too, planners disagree
// on this).
type PlanQueries struct {
	Contributions string
	Exits         string
}

// DefaultPlanQueries matches the usual planner export layout.
func DefaultPlanQueries() PlanQueries {
	return PlanQueries{
		Contributions: "$.schedule.contributions",
		Exits:         "$.schedule.exits",
	}
}

// ImportPlan reads a planner export and converts its schedule into fund
// events, calls and exits in the given currency.
func ImportPlan(r io.Reader, currency string, queries PlanQueries) ([]Event, error) {
	var jobj any
	if err := json.NewDecoder(r).Decode(&jobj); err != nil {
		return nil, fmt.Errorf("cannot parse planner export: %w", err)
	}
	return planEvents(jobj, currency, queries)
}

// FetchPlan retrieves a planner export over HTTP, with a daily cache, and
// converts its schedule into fund events.
func FetchPlan(addr, currency string, queries PlanQueries) ([]Event, error) {
	var jobj any
	if err := jwget(daily(), addr, &jobj); err != nil {
		return nil, fmt.Errorf("error retrieving planner export %q: %w", addr, err)
	}
	return planEvents(jobj, currency, queries)
}

func planEvents(jobj any, currency string, queries PlanQueries) ([]Event, error) {
	var events []Event

	calls, err := planPairs(jobj, queries.Contributions, "amount")
	if err != nil {
		return nil, fmt.Errorf("cannot read contributions: %w", err)
	}
	for _, p := range calls {
		events = append(events, NewContribution(p.quarter, "imported from plan", M(p.amount, currency)))
	}

	exits, err := planPairs(jobj, queries.Exits, "grossProceeds")
	if err != nil {
		return nil, fmt.Errorf("cannot read exits: %w", err)
	}
	for _, p := range exits {
		events = append(events, NewExit(p.quarter, "imported from plan", M(p.amount, currency)))
	}

	return events, nil
}

type planPair struct {
	quarter Quarter
	amount  float64
}

// planPairs evaluates a JSONPath query and reads its result as a list of
// [quarter, amount] pairs or of {quarter, <amountKey>} objects.
func planPairs(jobj any, path, amountKey string) ([]planPair, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", path, err)
	}
	jlist, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("%q is not a list: %v", path, jval)
	}

	pairs := make([]planPair, 0, len(jlist))
	for i, item := range jlist {
		switch v := item.(type) {
		case []any:
			if len(v) != 2 {
				return nil, fmt.Errorf("%q item %d: want a [quarter, amount] pair, got %v", path, i, v)
			}
			q, qok := v[0].(float64)
			a, aok := v[1].(float64)
			if !qok || !aok {
				return nil, fmt.Errorf("%q item %d: pair values are not numbers: %v", path, i, v)
			}
			pairs = append(pairs, planPair{quarter: Quarter(int(q)), amount: a})
		case map[string]any:
			q, qok := v["quarter"].(float64)
			a, aok := v[amountKey].(float64)
			if !aok {
				// some planners always name the value "amount"
				a, aok = v["amount"].(float64)
			}
			if !qok || !aok {
				return nil, fmt.Errorf("%q item %d: want quarter and %s numbers, got %v", path, i, amountKey, v)
			}
			pairs = append(pairs, planPair{quarter: Quarter(int(q)), amount: a})
		default:
			return nil, fmt.Errorf("%q item %d: unsupported shape %T", path, i, item)
		}
	}
	return pairs, nil
}

// ExportPlan writes the fund's schedule to 'w' in the planner exchange
// format, a single JSON object the [DefaultPlanQueries] can read back.
func ExportPlan(w io.Writer, fund *Fund) error {
	calls := make([][]any, 0)
	for c := range fund.Contributions() {
		calls = append(calls, []any{int(c.When()), c.Amount.rounded()})
	}
	exits := make([][]any, 0)
	for e := range fund.Exits() {
		exits = append(exits, []any{int(e.When()), e.GrossProceeds.rounded()})
	}

	var schedule jsonObjectWriter
	schedule.Append("contributions", calls)
	schedule.Append("exits", exits)

	var root jsonObjectWriter
	root.Append("name", fund.Name())
	root.Append("currency", fund.Currency())
	root.Append("schedule", &schedule)

	data, err := json.Marshal(&root)
	if err != nil {
		return fmt.Errorf("cannot marshal plan for %q: %w", fund.Name(), err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("cannot write plan: %w", err)
	}
	return nil
}
