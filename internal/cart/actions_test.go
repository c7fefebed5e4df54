package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storefront-backend/pkg/upstream"
)

func newTestActions(t *testing.T, api *stubAPI) *Actions {
	t.Helper()

	gateway, err := NewGateway(api, testLogger())
	require.NoError(t, err)
	actions, err := NewActions(gateway, testLogger())
	require.NoError(t, err)
	return actions
}

func TestAddItemMergesIntoExistingLines(t *testing.T) {
	t.Parallel()

	api := &stubAPI{snapshot: &upstream.CartSnapshot{
		ID:    "cart-1",
		Lines: []upstream.CartLine{{MerchandiseID: "v1", Quantity: 2}},
	}}
	actions := newTestActions(t, api)

	require.NoError(t, actions.AddItem(context.Background(), "v1"))
	require.Equal(t, []upstream.CartLine{{MerchandiseID: "v1", Quantity: 3}}, api.patched[0])

	require.NoError(t, actions.AddItem(context.Background(), "v2"))
	require.Equal(t, []upstream.CartLine{
		{MerchandiseID: "v1", Quantity: 3},
		{MerchandiseID: "v2", Quantity: 1},
	}, api.patched[1])
}

func TestAddItemStartsCartWhenNoneExists(t *testing.T) {
	t.Parallel()

	api := &stubAPI{}
	actions := newTestActions(t, api)

	require.NoError(t, actions.AddItem(context.Background(), "v1"))
	require.Equal(t, []upstream.CartLine{{MerchandiseID: "v1", Quantity: 1}}, api.patched[0])
}

func TestUpdateItemQuantitySetsAbsoluteValue(t *testing.T) {
	t.Parallel()

	api := &stubAPI{snapshot: &upstream.CartSnapshot{
		ID: "cart-1",
		Lines: []upstream.CartLine{
			{MerchandiseID: "v1", Quantity: 2},
			{MerchandiseID: "v2", Quantity: 1},
		},
	}}
	actions := newTestActions(t, api)

	require.NoError(t, actions.UpdateItemQuantity(context.Background(), "v1", 5))
	require.Equal(t, []upstream.CartLine{
		{MerchandiseID: "v1", Quantity: 5},
		{MerchandiseID: "v2", Quantity: 1},
	}, api.patched[0])
}

func TestUpdateItemQuantityZeroRemovesLine(t *testing.T) {
	t.Parallel()

	api := &stubAPI{snapshot: &upstream.CartSnapshot{
		ID:    "cart-1",
		Lines: []upstream.CartLine{{MerchandiseID: "v1", Quantity: 2}},
	}}
	actions := newTestActions(t, api)

	require.NoError(t, actions.UpdateItemQuantity(context.Background(), "v1", 0))
	require.Empty(t, api.patched[0])
}

func TestActionsAbortOnCartReadFailure(t *testing.T) {
	t.Parallel()

	api := &stubAPI{cartErr: errors.New("read failed")}
	actions := newTestActions(t, api)

	require.Error(t, actions.AddItem(context.Background(), "v1"))
	require.Error(t, actions.UpdateItemQuantity(context.Background(), "v1", 2))
	require.Zero(t, api.patchCalls, "a failed read must not trigger a write")
}
