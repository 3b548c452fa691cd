// Package cart holds the client's shopping cart: an in-memory snapshot with
// derived totals, persisted on every mutation and submitted at checkout.
package cart

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/gamestore/storefront/internal/client/storage"
	"github.com/gamestore/storefront/internal/models"
)

// OrderAPI defines the remote order-creation operation required at checkout.
type OrderAPI interface {
	CreateOrder(ctx context.Context, req models.CreateOrderRequest) (models.APIResponse, error)
}

// Cart is the authoritative in-memory shopping cart. Every mutation reads
// the current snapshot and publishes a wholly new one; totals are always
// recomputed from the items, never patched. One instance exists per process.
type Cart struct {
	api   OrderAPI
	store *storage.Store
	log   *zap.Logger

	mu      sync.Mutex
	state   models.Cart
	subs    map[int]func(models.Cart)
	nextSub int
}

// New constructs the cart holder. A previously persisted snapshot replaces
// the initial empty cart before any operation can run; a malformed stored
// value is treated as absence.
func New(api OrderAPI, store *storage.Store, log *zap.Logger) *Cart {
	c := &Cart{
		api:   api,
		store: store,
		log:   log,
		state: emptyCart(),
		subs:  make(map[int]func(models.Cart)),
	}
	if raw, ok := store.Get(storage.CartKey); ok {
		var saved models.Cart
		if err := json.Unmarshal([]byte(raw), &saved); err != nil {
			log.Debug("discarding malformed cart snapshot", zap.Error(err))
		} else {
			if saved.Items == nil {
				saved.Items = []models.CartItem{}
			}
			c.state = saved
		}
	}
	return c
}

func emptyCart() models.Cart {
	return models.Cart{Items: []models.CartItem{}}
}

// Snapshot returns a copy of the current cart state.
func (c *Cart) Snapshot() models.Cart {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyCart(c.state)
}

// AddItem puts one unit of product into the cart. An existing line item for
// the same product gains quantity instead of a duplicate line. The
// product's name, price, and image are captured as they are now.
func (c *Cart) AddItem(product models.Product) {
	c.mu.Lock()
	items := copyItems(c.state.Items)

	found := false
	for i := range items {
		if items[i].ProductID == product.ID {
			items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		price, err := strconv.ParseFloat(product.Price, 64)
		if err != nil {
			c.log.Warn("product has unparseable price, using 0",
				zap.String("product_id", product.ID), zap.String("precio", product.Price))
			price = 0
		}
		items = append(items, models.CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: price,
			ImageURL:  product.ImageURL,
			Quantity:  1,
		})
	}
	c.publishLocked(recalculate(items))
}

// UpdateQuantity sets a line item's quantity exactly. A non-positive
// quantity removes the line item; it is not an error.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	c.mu.Lock()
	var items []models.CartItem
	if quantity > 0 {
		items = copyItems(c.state.Items)
		for i := range items {
			if items[i].ProductID == productID {
				items[i].Quantity = quantity
			}
		}
	} else {
		items = without(c.state.Items, productID)
	}
	c.publishLocked(recalculate(items))
}

// RemoveItem drops the matching line item. An absent id is a no-op.
func (c *Cart) RemoveItem(productID string) {
	c.mu.Lock()
	c.publishLocked(recalculate(without(c.state.Items, productID)))
}

// Clear resets the cart to its empty initial snapshot.
func (c *Cart) Clear() {
	c.mu.Lock()
	c.publishLocked(emptyCart())
}

// Checkout builds an order payload from the current snapshot and submits
// it. Success clears the cart; a structured or transport failure leaves the
// cart untouched and is returned to the caller. No retry.
func (c *Cart) Checkout(ctx context.Context, shippingMethod string) (models.APIResponse, error) {
	snap := c.Snapshot()

	req := models.CreateOrderRequest{
		Products:       make([]models.OrderLine, 0, len(snap.Items)),
		ShippingMethod: shippingMethod,
	}
	for _, item := range snap.Items {
		req.Products = append(req.Products, models.OrderLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	resp, err := c.api.CreateOrder(ctx, req)
	if err != nil {
		c.log.Error("checkout request failed", zap.Error(err))
		return models.APIResponse{}, err
	}
	if resp.Success {
		c.Clear()
	}
	return resp, nil
}

// Subscribe registers fn to be called with every published cart snapshot.
// The returned function removes the subscription.
func (c *Cart) Subscribe(fn func(models.Cart)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

// publishLocked replaces the snapshot, persists it, and notifies
// subscribers. The caller holds the mutex; it is released here.
func (c *Cart) publishLocked(next models.Cart) {
	c.state = next
	fns := make([]func(models.Cart), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	if raw, err := json.Marshal(next); err == nil {
		c.store.Set(storage.CartKey, string(raw))
	}
	for _, fn := range fns {
		fn(copyCart(next))
	}
}

// recalculate derives a fresh snapshot from items. Totals are computed from
// scratch so repeated mutations cannot drift.
func recalculate(items []models.CartItem) models.Cart {
	totalItems := 0
	totalPrice := 0.0
	for _, item := range items {
		totalItems += item.Quantity
		totalPrice += float64(item.Quantity) * item.UnitPrice
	}
	return models.Cart{Items: items, TotalItems: totalItems, TotalPrice: totalPrice}
}

func without(items []models.CartItem, productID string) []models.CartItem {
	out := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		if item.ProductID != productID {
			out = append(out, item)
		}
	}
	return out
}

func copyItems(items []models.CartItem) []models.CartItem {
	out := make([]models.CartItem, len(items))
	copy(out, items)
	return out
}

func copyCart(c models.Cart) models.Cart {
	c.Items = copyItems(c.Items)
	return c
}
