package renderer

import (
	"bytes"
	"fmt"

	"github.com/openvc/fundflow"
	md "github.com/nao1215/markdown"
)

// ScheduleMarkdown renders the fund's cash flow schedule, a table each for
// the capital calls and the exit events plus the raw record as a numbered
// list at the end.
func ScheduleMarkdown(fund *fundflow.Fund) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Cash Flow Schedule for %s", fund.Name()))

	committed := fund.Committed()
	called := fund.CalledThrough(fund.LastQuarter())
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{
			md.Bold("Committed Capital"),
			md.Bold(committed.String()),
		},
		Rows: [][]string{
			{"Called to Date", called.String()},
			{"Uncalled", committed.Sub(called).String()},
		},
	})

	var calls []fundflow.Contribution
	for c := range fund.Contributions() {
		calls = append(calls, c)
	}
	if len(calls) > 0 {
		doc.H2("Capital Calls")
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
			},
			Header: []string{"Quarter", "Amount", "Called to Date"},
			Rows:   [][]string{},
		}
		for _, c := range calls {
			table.Rows = append(table.Rows, []string{
				c.When().String(),
				c.Amount.String(),
				fund.CalledThrough(c.When()).String(),
			})
		}
		doc.Table(table)
	}

	var exits []fundflow.Exit
	for e := range fund.Exits() {
		exits = append(exits, e)
	}
	if len(exits) > 0 {
		doc.H2("Exit Events")
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignRight,
			},
			Header: []string{"Quarter", "Gross Proceeds"},
			Rows:   [][]string{},
		}
		for _, e := range exits {
			table.Rows = append(table.Rows, []string{
				e.When().String(),
				e.GrossProceeds.String(),
			})
		}
		doc.Table(table)
	}

	var flows []string
	for _, ev := range fund.Events() {
		flows = append(flows, Flow(ev))
	}
	if len(flows) > 0 {
		doc.H2("Record")
		doc.OrderedList(flows...)
	}

	return doc.String()
}
