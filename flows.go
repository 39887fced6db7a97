package fundflow

import (
	"encoding/json"
	"fmt"
)

// FlowType is a typed string for identifying fund record commands.
type FlowType string

// Command types used for identifying fund events.
const (
	CmdTerms FlowType = "terms"
	CmdCall  FlowType = "call"
	CmdExit  FlowType = "exit"
)

// Event defines the common interface for all entries of a fund record: the
// terms declaration, capital calls and exit events.
type Event interface {
	What() FlowType // What returns the command type of the event (e.g., "call", "exit").
	When() Quarter  // When returns the quarter in which the event settles.
	Equal(Event) bool
	Validate(fund *Fund) (Event, error)
}

type baseFlow struct {
	Command FlowType `json:"command"`        // Command specifies the type of event (e.g., "call", "exit").
	Quarter Quarter  `json:"quarter"`        // Quarter is the fund quarter the event settles in.
	Memo    string   `json:"memo,omitempty"` // Memo provides an optional rationale or note for the event.
}

// What returns the command name for the event, which is used to identify the type of event.
func (t baseFlow) What() FlowType {
	return t.Command
}

// When returns the quarter of the event.
func (t baseFlow) When() Quarter {
	return t.Quarter
}

// Rationale returns the memo associated with the event.
func (t baseFlow) Rationale() string {
	return t.Memo
}

// MarshalJSON implements the json.Marshaler interface for baseFlow.
func (t baseFlow) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", t.Command)
	w.Append("quarter", t.Quarter)
	w.Optional("memo", t.Memo)
	return w.MarshalJSON()
}

// Validate checks the base event fields.
func (t *baseFlow) Validate() error {
	if t.Quarter < 1 {
		return fmt.Errorf("quarter must be 1 or later, got %d", t.Quarter)
	}
	return nil
}

// Terms declares the fund's identity and economics: its name, currency,
// waterfall terms and optional management fee terms. A record usually opens
// with one, later terms events supersede earlier ones.
type Terms struct {
	baseFlow
	Name      string          // Name is the fund's display name.
	Currency  string          // Currency is the fund's reporting currency.
	Waterfall WaterfallConfig // Waterfall carries the distribution terms.
	Fees      *FeeTerms       // Fees carries the management fee terms, nil when the fund charges none.
}

// NewTerms creates a new Terms event.
func NewTerms(quarter Quarter, memo, name, currency string, waterfall WaterfallConfig, fees *FeeTerms) Terms {
	return Terms{
		baseFlow:  baseFlow{Command: CmdTerms, Quarter: quarter, Memo: memo},
		Name:      name,
		Currency:  currency,
		Waterfall: waterfall,
		Fees:      fees,
	}
}

// MarshalJSON implements the json.Marshaler interface for Terms.
func (t Terms) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseFlow)
	w.Optional("name", t.Name)
	w.Optional("currency", t.Currency)
	w.EmbedFrom(t.Waterfall)
	if t.Fees != nil {
		w.Append("fees", t.Fees)
	}
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Terms.
func (t *Terms) UnmarshalJSON(data []byte) error {
	// Use a temporary type that has all possible fields.
	var temp struct {
		baseFlow
		Name     string    `json:"name,omitempty"`
		Currency string    `json:"currency,omitempty"`
		Fees     *FeeTerms `json:"fees,omitempty"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	var waterfall WaterfallConfig
	if err := json.Unmarshal(data, &waterfall); err != nil {
		return err
	}
	t.baseFlow = temp.baseFlow
	t.Name = temp.Name
	t.Currency = temp.Currency
	t.Waterfall = waterfall
	t.Fees = temp.Fees
	return nil
}

func (t Terms) Equal(other Event) bool {
	o, ok := other.(Terms)
	return ok && t.baseFlow == o.baseFlow && t.Name == o.Name && t.Currency == o.Currency &&
		t.Waterfall.Equal(o.Waterfall) && t.Fees.Equal(o.Fees)
}

// Validate checks the Terms event's fields.
func (t Terms) Validate(fund *Fund) (Event, error) {
	if err := t.baseFlow.Validate(); err != nil {
		return t, err
	}
	if t.Currency != "" {
		if err := ValidateCurrency(t.Currency); err != nil {
			return t, err
		}
	}
	if err := t.Waterfall.Validate(); err != nil {
		return t, err
	}
	if t.Fees != nil {
		if err := t.Fees.Validate(); err != nil {
			return t, err
		}
	}
	return t, nil
}

// Contribution represents a capital call: cash paid into the fund by its
// limited partners in a given quarter.
type Contribution struct {
	baseFlow
	Amount Money // Amount is the capital called, always positive.
}

// NewContribution creates a new Contribution event.
func NewContribution(quarter Quarter, memo string, amount Money) Contribution {
	return Contribution{
		baseFlow: baseFlow{Command: CmdCall, Quarter: quarter, Memo: memo},
		Amount:   amount,
	}
}

func (t Contribution) Currency() string { return t.Amount.Currency() }

// MarshalJSON implements the json.Marshaler interface for Contribution.
func (t Contribution) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseFlow)
	w.EmbedFrom(t.Amount)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Contribution.
func (t *Contribution) UnmarshalJSON(data []byte) error {
	// Use a temporary type that has all possible fields.
	var temp struct {
		baseFlow
		amountFlow
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.baseFlow = temp.baseFlow
	t.Amount = temp.Money()
	return nil
}

func (t Contribution) Equal(other Event) bool {
	o, ok := other.(Contribution)
	return ok && t.baseFlow == o.baseFlow && t.Amount.Equal(o.Amount)
}

// Validate checks the Contribution event's fields. Capital calls must be
// positive, the direction of the cash is carried by the command, not a sign.
func (t Contribution) Validate(fund *Fund) (Event, error) {
	if err := t.baseFlow.Validate(); err != nil {
		return t, err
	}
	if !t.Amount.IsPositive() {
		return t, fmt.Errorf("capital call amount must be positive, got %v", t.Amount)
	}
	if t.Amount.Currency() == "" {
		t.Amount = M(t.Amount.value, fund.Currency())
	} else if cur := fund.Currency(); cur != "" && t.Amount.Currency() != cur {
		return t, fmt.Errorf("capital call currency %s does not match fund currency %s", t.Amount.Currency(), cur)
	}
	return t, nil
}

// Exit represents a liquidity event: gross proceeds flowing back to the fund
// from selling a portfolio company in a given quarter.
type Exit struct {
	baseFlow
	GrossProceeds Money // GrossProceeds is the cash the sale produced, before any split.
}

// NewExit creates a new Exit event.
func NewExit(quarter Quarter, memo string, grossProceeds Money) Exit {
	return Exit{
		baseFlow:      baseFlow{Command: CmdExit, Quarter: quarter, Memo: memo},
		GrossProceeds: grossProceeds,
	}
}

func (t Exit) Currency() string { return t.GrossProceeds.Currency() }

// MarshalJSON implements the json.Marshaler interface for Exit.
func (t Exit) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseFlow)
	w.Optional("currency", t.GrossProceeds.Currency())
	w.Append("grossProceeds", t.GrossProceeds.rounded())
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Exit.
func (t *Exit) UnmarshalJSON(data []byte) error {
	// Use a temporary type that has all possible fields.
	var temp struct {
		baseFlow
		proceedsFlow
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.baseFlow = temp.baseFlow
	t.GrossProceeds = temp.Money()
	return nil
}

func (t Exit) Equal(other Event) bool {
	o, ok := other.(Exit)
	return ok && t.baseFlow == o.baseFlow && t.GrossProceeds.Equal(o.GrossProceeds)
}

// Validate checks the Exit event's fields. Negative proceeds are accepted,
// write-offs are recorded as they come and the engine clamps them to zero
// distributable cash.
func (t Exit) Validate(fund *Fund) (Event, error) {
	if err := t.baseFlow.Validate(); err != nil {
		return t, err
	}
	if t.GrossProceeds.Currency() == "" {
		t.GrossProceeds = M(t.GrossProceeds.value, fund.Currency())
	} else if cur := fund.Currency(); cur != "" && t.GrossProceeds.Currency() != cur {
		return t, fmt.Errorf("exit currency %s does not match fund currency %s", t.GrossProceeds.Currency(), cur)
	}
	return t, nil
}
