package fundflow

import (
	"strings"
	"testing"
)

// TestImportPlan creates a very basic check that planner imports work as
// expected, on both shapes planners emit.
func TestImportPlan(t *testing.T) {
	sample := `{
  "name": "Acme Ventures I",
  "currency": "USD",
  "schedule": {
    "contributions": [[1, 5000000], {"quarter": 3, "amount": 5000000}],
    "exits": [[2, 3000000], {"quarter": 10, "grossProceeds": 15000000}]
  }
}`

	events, err := ImportPlan(strings.NewReader(sample), "USD", DefaultPlanQueries())
	if err != nil {
		t.Fatalf("cannot import sample: %v", err)
	}
	if len(events) != 4 {
		t.Fatalf("ImportPlan() produced %d events, want 4", len(events))
	}

	want := []Event{
		NewContribution(1, "imported from plan", USD(5_000_000)),
		NewContribution(3, "imported from plan", USD(5_000_000)),
		NewExit(2, "imported from plan", USD(3_000_000)),
		NewExit(10, "imported from plan", USD(15_000_000)),
	}
	for i, ev := range events {
		if !ev.Equal(want[i]) {
			t.Errorf("events[%d] = %+v, want %+v", i, ev, want[i])
		}
	}
}

func TestImportPlan_BadShapes(t *testing.T) {
	testCases := []struct {
		name   string
		sample string
	}{
		{name: "not json", sample: `schedule: nope`},
		{name: "schedule is not a list", sample: `{"schedule":{"contributions":42,"exits":[]}}`},
		{name: "pair too short", sample: `{"schedule":{"contributions":[[1]],"exits":[]}}`},
		{name: "pair not numeric", sample: `{"schedule":{"contributions":[["Q1","a lot"]],"exits":[]}}`},
		{name: "object misses quarter", sample: `{"schedule":{"contributions":[{"amount":5}],"exits":[]}}`},
		{name: "unsupported item", sample: `{"schedule":{"contributions":["five"],"exits":[]}}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ImportPlan(strings.NewReader(tc.sample), "USD", DefaultPlanQueries()); err == nil {
				t.Error("ImportPlan() = nil, want an error")
			}
		})
	}
}

// TestExportImportPlan checks that an exported schedule reads back into the
// same events.
func TestExportImportPlan(t *testing.T) {
	fund := NewFund()
	fund.Append(
		NewTerms(1, "", "Acme Ventures I", "USD", carry20(), nil),
		call(1, 5_000_000),
		call(3, 5_000_000),
		sale(2, 3_000_000),
		sale(10, 15_000_000),
	)

	sb := strings.Builder{}
	if err := ExportPlan(&sb, fund); err != nil {
		t.Fatalf("ExportPlan() has error %v", err)
	}

	events, err := ImportPlan(strings.NewReader(sb.String()), fund.Currency(), DefaultPlanQueries())
	if err != nil {
		t.Fatalf("cannot import exported plan: %v", err)
	}

	imported := NewFund()
	imported.Append(events...)

	assertMoney(t, "Committed()", imported.Committed(), fund.Committed())
	exits := 0
	for range imported.Exits() {
		exits++
	}
	if exits != 2 {
		t.Errorf("imported %d exits, want 2", exits)
	}
}
