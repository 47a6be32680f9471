package ports

import (
	"context"

	"foodorder/internal/core/domain/model/cart"
	"foodorder/internal/core/domain/model/kernel"
)

// CatalogItem is the catalog's current view of a menu item.
type CatalogItem struct {
	Item      cart.MenuItem
	Available bool
}

// MenuCatalog is the read-only menu service.
type MenuCatalog interface {
	// GetMenuItem returns *errs.ObjectNotFoundError for unknown items.
	GetMenuItem(ctx context.Context, itemID kernel.UUID) (CatalogItem, error)
}

// Address is a saved delivery address of a customer.
type Address struct {
	ID         kernel.UUID
	CustomerID kernel.UUID
	Label      string
	Line       string
}

// AddressBook is the read-only address service.
type AddressBook interface {
	// GetAddress returns *errs.ObjectNotFoundError when the address does not exist or
	// belongs to another customer.
	GetAddress(ctx context.Context, customerID, addressID kernel.UUID) (Address, error)
}
