// Package item defines the catalog entry shared by stores and suppliers.
package item

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrItemIsNotConstructed is returned for an Item that bypassed NewItem.
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")
	// ErrNameIsRequired is returned for an empty item name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
)

// Item is an immutable catalog entry. Besides its own identity it carries two
// location-scoped keys: the key a store's ledger uses for it and the key a
// supplier's ledger uses for it. Stores and suppliers never share naming, so
// procurement requests are translated from one key to the other.
type Item struct {
	id          kernel.UUID
	name        string
	price       decimal.Decimal
	storeKey    kernel.UUID
	supplierKey kernel.UUID
	guard       guard.ConstructorGuard
}

// NewItem validates and creates an Item.
//
// Example:
//
//	pen, err := item.NewItem(kernel.NewUUID(), "pen", decimal.NewFromInt(12),
//	    kernel.NewUUID(), kernel.NewUUID())
func NewItem(
	id kernel.UUID,
	name string,
	price decimal.Decimal,
	storeKey kernel.UUID,
	supplierKey kernel.UUID,
) (Item, error) {
	it := Item{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		it.setID(id),
		it.setName(name),
		it.setPrice(price),
		it.setStoreKey(storeKey),
		it.setSupplierKey(supplierKey),
	); err != nil {
		return Item{}, err
	}

	return it, nil
}

func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i Item) ID() kernel.UUID {
	return i.id
}

func (i Item) Name() string {
	return i.name
}

func (i Item) Price() decimal.Decimal {
	return i.price
}

// StoreKey is the item's key in a store ledger.
func (i Item) StoreKey() kernel.UUID {
	return i.storeKey
}

// SupplierKey is the item's key in a supplier ledger.
func (i Item) SupplierKey() kernel.UUID {
	return i.supplierKey
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	i.name = name
	return nil
}

func (i *Item) setPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is negative", price))
	}
	i.price = price
	return nil
}

func (i *Item) setStoreKey(key kernel.UUID) error {
	if err := key.Validate(); err != nil {
		return fmt.Errorf("store key: %w", err)
	}
	i.storeKey = key
	return nil
}

func (i *Item) setSupplierKey(key kernel.UUID) error {
	if err := key.Validate(); err != nil {
		return fmt.Errorf("supplier key: %w", err)
	}
	i.supplierKey = key
	return nil
}
