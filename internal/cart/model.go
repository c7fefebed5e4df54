package cart

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-backend/pkg/types"
	"github.com/angelmondragon/storefront-backend/pkg/upstream"
)

// The functions in this file are pure: no I/O, no mutation of their inputs.
// They are the single source of cart arithmetic for both the optimistic store
// and server-side hydration.

// AddOrIncrement returns a cart with one more unit of the given variant. An
// existing line keeps its effective per-unit price even if the catalog price
// changed meanwhile; a new line is priced from the variant.
func AddOrIncrement(current Cart, variant upstream.ProductVariant, product upstream.Product) Cart {
	lines := make([]Item, 0, len(current.Lines)+1)
	found := false
	for _, line := range current.Lines {
		if line.Merchandise.ID == variant.ID {
			lines = append(lines, bumpItem(line, line.Quantity+1))
			found = true
			continue
		}
		lines = append(lines, line)
	}
	if !found {
		lines = append(lines, Item{
			Quantity: 1,
			Cost: ItemCost{TotalAmount: types.Money{
				Amount:       variant.Price.Amount,
				CurrencyCode: variant.Price.CurrencyCode,
			}},
			Merchandise: Merchandise{
				ID:              variant.ID,
				Title:           variant.Title,
				SelectedOptions: variant.SelectedOptions,
				Product:         snapshotOf(product),
			},
		})
	}
	return withLines(current, lines)
}

// ApplyUpdate applies plus, minus, or delete to the line for merchandiseID.
// Minus on a quantity of 1 removes the line; delete always removes it. An
// unknown merchandise id leaves the cart unchanged.
func ApplyUpdate(current Cart, merchandiseID string, update UpdateType) Cart {
	lines := make([]Item, 0, len(current.Lines))
	for _, line := range current.Lines {
		if line.Merchandise.ID != merchandiseID {
			lines = append(lines, line)
			continue
		}
		if update == UpdateDelete {
			continue
		}
		next := line.Quantity + 1
		if update == UpdateMinus {
			next = line.Quantity - 1
		}
		if next <= 0 {
			continue
		}
		lines = append(lines, bumpItem(line, next))
	}
	if len(lines) == 0 {
		return Empty()
	}
	return withLines(current, lines)
}

// RecomputeTotals derives the quantity and cost aggregates from the lines.
// The currency comes from the first line, falling back to USD for an empty
// cart.
func RecomputeTotals(lines []Item) (int, Cost) {
	totalQuantity := 0
	totalAmount := decimal.Zero
	currency := types.DefaultCurrency
	if len(lines) > 0 {
		currency = lines[0].Cost.TotalAmount.CurrencyCode
	}

	for _, line := range lines {
		totalQuantity += line.Quantity
		totalAmount = totalAmount.Add(line.Cost.TotalAmount.AmountDecimal())
	}

	total := types.MoneyFromDecimal(totalAmount, currency)
	return totalQuantity, Cost{
		SubtotalAmount: total,
		TotalAmount:    total,
		TotalTaxAmount: types.ZeroMoney(currency),
	}
}

// bumpItem rescales a line to a new quantity using the line's current
// per-unit amount, never a fresh catalog lookup. A line that somehow carries a
// non-positive quantity has its total treated as the per-unit amount rather
// than dividing by zero.
func bumpItem(line Item, quantity int) Item {
	total := line.Cost.TotalAmount.AmountDecimal()
	unit := total
	if line.Quantity > 0 {
		unit = total.Div(decimal.NewFromInt(int64(line.Quantity)))
	}
	next := unit.Mul(decimal.NewFromInt(int64(quantity)))
	next = keepScale(next, total)

	line.Quantity = quantity
	line.Cost.TotalAmount = types.MoneyFromDecimal(next, line.Cost.TotalAmount.CurrencyCode)
	return line
}

// keepScale rounds d back to the decimal places of ref so that line totals
// keep the representation they arrived with (e.g. "10.00" stays two-place).
func keepScale(d, ref decimal.Decimal) decimal.Decimal {
	if ref.Exponent() < 0 {
		return d.Round(-ref.Exponent())
	}
	return d
}

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

// moneyWithScale stringifies amount in the currency and decimal places of the
// reference price.
func moneyWithScale(amount decimal.Decimal, ref types.Money) types.Money {
	return types.MoneyFromDecimal(keepScale(amount, ref.AmountDecimal()), ref.CurrencyCode)
}

func withLines(current Cart, lines []Item) Cart {
	totalQuantity, cost := RecomputeTotals(lines)
	current.Lines = lines
	current.TotalQuantity = totalQuantity
	current.Cost = cost
	return current
}
