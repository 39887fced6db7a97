package fundflow

import (
	"fmt"

	"github.com/Rhymond/go-money"
)

// ValidateCurrency checks that the code names a known ISO 4217 currency.
func ValidateCurrency(code string) error {
	if money.GetCurrency(code) == nil {
		return fmt.Errorf("unknown currency code %q", code)
	}
	return nil
}
