package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storefront-backend/pkg/types"
	"github.com/angelmondragon/storefront-backend/pkg/upstream"
)

func variantFixture(id, amount, currency string) upstream.ProductVariant {
	return upstream.ProductVariant{
		ID:    id,
		Title: "Variant " + id,
		Price: types.Money{Amount: amount, CurrencyCode: currency},
	}
}

func productFixture(id string) upstream.Product {
	return upstream.Product{
		ID:     "p-" + id,
		Handle: "handle-" + id,
		Title:  "Product " + id,
	}
}

func requireAmount(t *testing.T, want string, got types.Money) {
	t.Helper()
	require.True(t, got.AmountDecimal().Equal(decimal.RequireFromString(want)),
		"expected amount %s, got %s", want, got.Amount)
}

func TestAddThenUpdateScenario(t *testing.T) {
	t.Parallel()

	v1 := variantFixture("v1", "10.00", "USD")
	p1 := productFixture("v1")

	cart := AddOrIncrement(Empty(), v1, p1)
	require.Len(t, cart.Lines, 1)
	require.Equal(t, 1, cart.Lines[0].Quantity)
	require.Equal(t, "10.00", cart.Lines[0].Cost.TotalAmount.Amount)
	require.Equal(t, 1, cart.TotalQuantity)

	cart = AddOrIncrement(cart, v1, p1)
	require.Equal(t, 2, cart.Lines[0].Quantity)
	requireAmount(t, "20.00", cart.Lines[0].Cost.TotalAmount)
	require.Equal(t, 2, cart.TotalQuantity)

	cart = ApplyUpdate(cart, "v1", UpdateMinus)
	require.Equal(t, 1, cart.Lines[0].Quantity)
	requireAmount(t, "10.00", cart.Lines[0].Cost.TotalAmount)

	cart = ApplyUpdate(cart, "v1", UpdateDelete)
	require.Equal(t, Empty(), cart)
}

func TestIncrementUsesLinePriceNotCatalogPrice(t *testing.T) {
	t.Parallel()

	v1 := variantFixture("v1", "10.00", "USD")
	p1 := productFixture("v1")
	cart := AddOrIncrement(Empty(), v1, p1)

	// Catalog price moved after the line was created; the line's effective
	// per-unit price wins.
	repriced := variantFixture("v1", "12.00", "USD")
	cart = AddOrIncrement(cart, repriced, p1)

	require.Equal(t, 2, cart.Lines[0].Quantity)
	requireAmount(t, "20.00", cart.Lines[0].Cost.TotalAmount)
}

func TestIncrementThenDecrementRestoresPriorState(t *testing.T) {
	t.Parallel()

	v1 := variantFixture("v1", "7.35", "USD")
	p1 := productFixture("v1")
	cart := AddOrIncrement(Empty(), v1, p1)
	cart = AddOrIncrement(cart, v1, p1)

	before := cart.Lines[0]
	cart = ApplyUpdate(cart, "v1", UpdatePlus)
	cart = ApplyUpdate(cart, "v1", UpdateMinus)

	require.Equal(t, before.Quantity, cart.Lines[0].Quantity)
	requireAmount(t, before.Cost.TotalAmount.Amount, cart.Lines[0].Cost.TotalAmount)
}

func TestMinusToZeroRemovesLine(t *testing.T) {
	t.Parallel()

	v1 := variantFixture("v1", "10.00", "USD")
	v2 := variantFixture("v2", "5.00", "USD")
	p := productFixture("x")

	cart := AddOrIncrement(Empty(), v1, p)
	cart = AddOrIncrement(cart, v2, p)

	cart = ApplyUpdate(cart, "v2", UpdateMinus)
	require.Len(t, cart.Lines, 1)
	require.Equal(t, "v1", cart.Lines[0].Merchandise.ID)

	cart = ApplyUpdate(cart, "v1", UpdateMinus)
	require.Equal(t, Empty(), cart)
}

func TestUpdateUnknownMerchandiseIsNoOp(t *testing.T) {
	t.Parallel()

	v1 := variantFixture("v1", "10.00", "USD")
	cart := AddOrIncrement(Empty(), v1, productFixture("v1"))

	unchanged := ApplyUpdate(cart, "missing", UpdatePlus)
	require.Equal(t, cart, unchanged)

	unchanged = ApplyUpdate(cart, "missing", UpdateDelete)
	require.Equal(t, cart.Lines, unchanged.Lines)
}

func TestPlusOnZeroQuantityLineDoesNotDivideByZero(t *testing.T) {
	t.Parallel()

	// A zero-quantity line cannot be produced by the reducer, but external
	// data can hand one over. Plus must treat the line total as the per-unit
	// amount instead of dividing by the quantity.
	cart := withLines(Empty(), []Item{
		{
			Quantity: 0,
			Cost:     ItemCost{TotalAmount: types.Money{Amount: "10.00", CurrencyCode: "USD"}},
			Merchandise: Merchandise{
				ID:    "v1",
				Title: "Shirt S",
			},
		},
	})

	bumped := ApplyUpdate(cart, "v1", UpdatePlus)
	require.Len(t, bumped.Lines, 1)
	require.Equal(t, 1, bumped.Lines[0].Quantity)
	requireAmount(t, "10.00", bumped.Lines[0].Cost.TotalAmount)
	require.Equal(t, 1, bumped.TotalQuantity)
}

func TestTotalsInvariantAfterEveryOperation(t *testing.T) {
	t.Parallel()

	v1 := variantFixture("v1", "10.00", "USD")
	v2 := variantFixture("v2", "5.00", "USD")
	p := productFixture("x")

	carts := []Cart{Empty()}
	carts = append(carts, AddOrIncrement(carts[0], v1, p))
	carts = append(carts, AddOrIncrement(carts[1], v2, p))
	carts = append(carts, AddOrIncrement(carts[2], v1, p))
	carts = append(carts, ApplyUpdate(carts[3], "v2", UpdateMinus))
	carts = append(carts, ApplyUpdate(carts[4], "v1", UpdateDelete))

	for i, c := range carts {
		sumQty := 0
		sumAmount := decimal.Zero
		for _, line := range c.Lines {
			sumQty += line.Quantity
			sumAmount = sumAmount.Add(line.Cost.TotalAmount.AmountDecimal())
		}
		require.Equal(t, sumQty, c.TotalQuantity, "cart %d quantity invariant", i)
		require.True(t, sumAmount.Equal(c.Cost.TotalAmount.AmountDecimal()),
			"cart %d amount invariant: lines %s vs total %s", i, sumAmount, c.Cost.TotalAmount.Amount)
	}
}

func TestRecomputeTotalsTakesCurrencyFromFirstLine(t *testing.T) {
	t.Parallel()

	lines := []Item{
		{Quantity: 2, Cost: ItemCost{TotalAmount: types.Money{Amount: "20.00", CurrencyCode: "EUR"}}},
		{Quantity: 1, Cost: ItemCost{TotalAmount: types.Money{Amount: "5.00", CurrencyCode: "EUR"}}},
	}

	totalQuantity, cost := RecomputeTotals(lines)
	require.Equal(t, 3, totalQuantity)
	requireAmount(t, "25.00", cost.TotalAmount)
	require.Equal(t, "EUR", cost.TotalAmount.CurrencyCode)
	require.Equal(t, "EUR", cost.TotalTaxAmount.CurrencyCode)
	require.True(t, cost.TotalTaxAmount.IsZero())
}

func TestRecomputeTotalsEmptyFallsBackToUSD(t *testing.T) {
	t.Parallel()

	totalQuantity, cost := RecomputeTotals(nil)
	require.Zero(t, totalQuantity)
	require.Equal(t, types.DefaultCurrency, cost.TotalAmount.CurrencyCode)
	require.True(t, cost.TotalAmount.IsZero())
}

func TestModelOperationsDoNotMutateInput(t *testing.T) {
	t.Parallel()

	v1 := variantFixture("v1", "10.00", "USD")
	p1 := productFixture("v1")
	original := AddOrIncrement(Empty(), v1, p1)
	originalQty := original.Lines[0].Quantity

	_ = AddOrIncrement(original, v1, p1)
	_ = ApplyUpdate(original, "v1", UpdateDelete)

	require.Equal(t, originalQty, original.Lines[0].Quantity)
}
