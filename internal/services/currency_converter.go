package services

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/atmnet/backend/internal/models"
	"github.com/atmnet/backend/internal/rates"
)

// DefaultFeeRate is the cross-currency conversion fee.
const DefaultFeeRate = 0.02

type Conversion struct {
	From   string
	To     string
	Amount float64
	Rate   float64
	Result float64
}

type FeeBreakdown struct {
	Fee            float64
	TotalDeduction float64
}

// CurrencyConverter is a pure calculation layer over a RateTable.
type CurrencyConverter struct {
	feeRate float64
}

func NewCurrencyConverter(feeRate float64) *CurrencyConverter {
	if feeRate <= 0 {
		feeRate = DefaultFeeRate
	}
	return &CurrencyConverter{feeRate: feeRate}
}

func (c *CurrencyConverter) FeeRate() float64 {
	return c.feeRate
}

// Convert returns the identity conversion for equal currencies without
// touching the table, so same-currency operations work without rates loaded.
func (c *CurrencyConverter) Convert(table rates.RateTable, from, to string, amount float64) (*Conversion, error) {
	from, to = strings.ToUpper(from), strings.ToUpper(to)
	if from == to {
		return &Conversion{From: from, To: to, Amount: amount, Rate: 1, Result: amount}, nil
	}
	if table == nil {
		return nil, newError(models.CodeSystemError, "Exchange rates are not available")
	}

	rate, err := table.Rate(from, to)
	if err != nil {
		if errors.Is(err, rates.ErrUnsupportedPair) {
			return nil, wrapError(models.CodeUnsupportedCurrency, fmt.Sprintf("Unsupported currency pair %s/%s", from, to), err)
		}
		return nil, wrapError(models.CodeSystemError, "Exchange rate lookup failed", err)
	}
	return &Conversion{From: from, To: to, Amount: amount, Rate: rate, Result: amount * rate}, nil
}

// ApplyFee charges the fee rate on amount only when currencies differ.
func (c *CurrencyConverter) ApplyFee(amount float64, currenciesDiffer bool) FeeBreakdown {
	if !currenciesDiffer {
		return FeeBreakdown{Fee: 0, TotalDeduction: amount}
	}
	fee := amount * c.feeRate
	return FeeBreakdown{Fee: fee, TotalDeduction: amount + fee}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
