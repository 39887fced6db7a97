package fundflow

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// amountFlow is a specialized struct to read a fund record amount in two fields.
type amountFlow struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

func (a amountFlow) Money() Money {
	return M(a.Amount, a.Currency)
}

// proceedsFlow is a specialized struct to read exit proceeds in two fields.
type proceedsFlow struct {
	GrossProceeds decimal.Decimal `json:"grossProceeds"`
	Currency      string          `json:"currency"`
}

func (a proceedsFlow) Money() Money {
	return M(a.GrossProceeds, a.Currency)
}

// DecodeFund decodes events from a stream of JSONL data from an io.Reader,
// decodes each line into the appropriate event struct, and returns a sorted Fund.
func DecodeFund(r io.Reader) (*Fund, error) {
	fund := NewFund()
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var identifier struct {
			Command FlowType `json:"command"`
		}
		if err := json.Unmarshal(lineBytes, &identifier); err != nil {
			return nil, fmt.Errorf("could not identify command in line %q: %w", string(lineBytes), err)
		}

		var decoded Event
		var err error

		switch identifier.Command {
		case CmdTerms:
			var ev Terms
			err = json.Unmarshal(lineBytes, &ev)
			decoded = ev
		case CmdCall:
			// Use a temporary type that has all possible fields.
			var temp struct {
				baseFlow
				amountFlow
			}
			if err := json.Unmarshal(lineBytes, &temp); err != nil {
				return nil, err
			}

			// Create the final event struct
			decoded = Contribution{
				baseFlow: temp.baseFlow,
				Amount:   temp.Money(),
			}
		case CmdExit:
			// Use a temporary type that has all possible fields.
			var temp struct {
				baseFlow
				proceedsFlow
			}
			if err := json.Unmarshal(lineBytes, &temp); err != nil {
				return nil, err
			}

			// Create the final event struct
			decoded = Exit{
				baseFlow:      temp.baseFlow,
				GrossProceeds: temp.Money(),
			}
		default:
			err = fmt.Errorf("unknown event command: %q", identifier.Command)
		}

		if err != nil {
			return nil, err
		}
		fund.Append(decoded)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}

	// Perform a stable sort on the fund record based on the event quarter.
	fund.stableSort()

	return fund, nil
}

// EncodeEvent marshals a single event to JSON and writes it to the writer,
// followed by a newline, in JSONL format.
func EncodeEvent(w io.Writer, ev Event) error {
	decimal.MarshalJSONWithoutQuotes = true
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// Write the JSON data followed by a newline to create the JSONL format.
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}
	return nil
}

// EncodeFund reorders events by quarter and persists them to an io.Writer in
// JSONL format. The sort is stable, meaning events in the same quarter
// maintain their original relative order. Key order within each line is
// fixed, so encoding the same record twice produces identical bytes.
func EncodeFund(w io.Writer, fund *Fund) error {
	decimal.MarshalJSONWithoutQuotes = true

	// Perform a stable sort on the record based on the event quarter.
	fund.stableSort()

	for _, ev := range fund.events {
		if err := EncodeEvent(w, ev); err != nil {
			return err
		}
	}

	return nil
}
