// Package pricing holds the storefront money rules: conversion from the base
// currency into the display currency, shipping and tax, and localized
// formatting. All arithmetic is exact; rounding happens only in Format.
package pricing

import (
	"github.com/shopspring/decimal"
	"github.com/your-org/beauty-store/internal/config"
)

// divisionPrecision is the number of fractional digits kept when a display
// amount is converted back into the base currency.
const divisionPrecision = 16

// Convert returns amount expressed in the currency that rate points to.
func Convert(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate)
}

// Amounts is one currency's view of an order total.
type Amounts struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// Breakdown carries the same totals in both currencies.
type Breakdown struct {
	Base            Amounts `json:"base"`
	Display         Amounts `json:"display"`
	BaseCurrency    string  `json:"baseCurrency"`
	DisplayCurrency string  `json:"displayCurrency"`
}

// Calculator applies the configured pricing rules.
type Calculator struct {
	cfg config.PricingConfig
}

// NewCalculator creates a calculator for the given rules.
func NewCalculator(cfg config.PricingConfig) *Calculator {
	return &Calculator{cfg: cfg}
}

// Rate returns the base-to-display conversion rate.
func (c *Calculator) Rate() decimal.Decimal {
	return c.cfg.Rate
}

// DisplayCurrency returns the ISO code of the display currency.
func (c *Calculator) DisplayCurrency() string {
	return c.cfg.DisplayCurrency
}

// BaseCurrency returns the ISO code of the base currency.
func (c *Calculator) BaseCurrency() string {
	return c.cfg.BaseCurrency
}

// ToDisplay converts a base amount into the display currency.
func (c *Calculator) ToDisplay(base decimal.Decimal) decimal.Decimal {
	return Convert(base, c.cfg.Rate)
}

// ToBase converts a display amount back into the base currency.
func (c *Calculator) ToBase(display decimal.Decimal) decimal.Decimal {
	return display.DivRound(c.cfg.Rate, divisionPrecision)
}

// ShippingFee is free strictly above the threshold, flat otherwise. An empty
// cart still pays the flat fee.
func (c *Calculator) ShippingFee(subtotalDisplay decimal.Decimal) decimal.Decimal {
	if subtotalDisplay.GreaterThan(c.cfg.FreeShippingThreshold) {
		return decimal.Zero
	}
	return c.cfg.FlatShippingFee
}

// Tax returns the tax owed on a display subtotal.
func (c *Calculator) Tax(subtotalDisplay decimal.Decimal) decimal.Decimal {
	return subtotalDisplay.Mul(c.cfg.TaxRate)
}

// Breakdown derives the full dual-currency totals from a base subtotal.
// Thresholds are evaluated in the display currency.
func (c *Calculator) Breakdown(subtotalBase decimal.Decimal) Breakdown {
	subtotal := c.ToDisplay(subtotalBase)
	shipping := c.ShippingFee(subtotal)
	tax := c.Tax(subtotal)

	display := Amounts{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal.Add(shipping).Add(tax),
	}

	baseShipping := c.ToBase(shipping)
	baseTax := subtotalBase.Mul(c.cfg.TaxRate)
	base := Amounts{
		Subtotal: subtotalBase,
		Shipping: baseShipping,
		Tax:      baseTax,
		Total:    subtotalBase.Add(baseShipping).Add(baseTax),
	}

	return Breakdown{
		Base:            base,
		Display:         display,
		BaseCurrency:    c.cfg.BaseCurrency,
		DisplayCurrency: c.cfg.DisplayCurrency,
	}
}

// FormatDisplay formats an amount already in the display currency.
func (c *Calculator) FormatDisplay(amount decimal.Decimal) string {
	return Format(amount, c.cfg.Locale, c.cfg.DisplayCurrency)
}

// FormatBase converts a base amount and formats it in the display currency.
func (c *Calculator) FormatBase(amount decimal.Decimal) string {
	return c.FormatDisplay(c.ToDisplay(amount))
}
