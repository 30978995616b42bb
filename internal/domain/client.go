package domain

import (
	"fmt"
	"time"
)

type Client struct {
	ID            string
	Name          string
	Company       string
	Email         string
	Phone         string
	ContractType  ContractType
	Status        ClientStatus
	Currency      string
	MonthlyFee    *float64
	MonthlyBudget *float64
	Notes         string

	// Billing schedule
	BillingCycle    BillingCycle
	BillingDay      int // 1-28, day of month invoices go out
	NextInvoiceDate *time.Time
	LastInvoicedAt  *time.Time

	// External invoicing system linkage
	HoldedContactID string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the fields a client cannot be stored without.
func (c *Client) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("client name is required")
	}
	if c.BillingDay < 0 || c.BillingDay > 28 {
		return fmt.Errorf("billing day %d out of range (1-28, or 0 for unset)", c.BillingDay)
	}
	return nil
}

// Advance returns the invoice date one billing period after from.
// One-time cycles do not recur and return from unchanged.
func (b BillingCycle) Advance(from time.Time) time.Time {
	switch b {
	case CycleMonthly:
		return from.AddDate(0, 1, 0)
	case CycleBimonthly:
		return from.AddDate(0, 2, 0)
	case CycleQuarterly:
		return from.AddDate(0, 3, 0)
	case CycleAnnual:
		return from.AddDate(1, 0, 0)
	default:
		return from
	}
}

// Recurs reports whether the cycle produces further invoices.
func (b BillingCycle) Recurs() bool {
	return b != CycleOneTime && b != ""
}
