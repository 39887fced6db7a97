package renderer

import (
	"bytes"
	"fmt"

	"github.com/openvc/fundflow"
	md "github.com/nao1215/markdown"
)

// FeesMarkdown renders the management fee report through the given quarter.
// It lists the accrual per quarter and closes with the fee impact on the LP
// multiples. A zero quarter means through the fund's last event.
func FeesMarkdown(fund *fundflow.Fund, through fundflow.Quarter) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Management Fees for %s", fund.Name()))

	terms := fund.FeeTerms()
	if terms == nil {
		doc.PlainText("This fund charges no management fee.")
		return doc.String()
	}
	if through == 0 {
		through = fund.LastQuarter()
	}

	line := fmt.Sprintf("%s per year on %s capital", terms.AnnualRate, terms.Basis)
	if terms.StepDownQuarter > 0 {
		line += fmt.Sprintf(", stepping down to %s from %s", terms.StepDownRate, terms.StepDownQuarter)
	}
	doc.PlainText(line + ".")

	accruals := fund.AccrueFees(through)
	total := fundflow.M(0, fund.Currency())
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Quarter", "Basis", "Rate", "Fee"},
		Rows:   [][]string{},
	}
	for _, a := range accruals {
		total = total.Add(a.Amount)
		table.Rows = append(table.Rows, []string{
			a.Quarter.String(),
			a.Basis.String(),
			a.Rate.String(),
			a.Amount.String(),
		})
	}
	table.Rows = append(table.Rows, []string{
		md.Bold("Total"),
		"",
		"",
		md.Bold(total.String()),
	})

	doc.H2("Accruals")
	doc.Table(table)

	impact := fund.FeeImpact(through)
	doc.H2("Fee Impact")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{
			md.Bold("Fees Accrued"),
			md.Bold(impact.FeesTotal.String()),
		},
		Rows: [][]string{
			{"Gross TVPI", impact.GrossTVPI.String()},
			{"Net TVPI", impact.NetTVPI.String()},
			{"Fee Drag", impact.FeeDrag.String()},
		},
	})

	return doc.String()
}
