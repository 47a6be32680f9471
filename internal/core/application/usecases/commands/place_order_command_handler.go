package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/services"
	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/errs"

	"golang.org/x/sync/errgroup"
)

const DefaultSnapshotConcurrency = 4

// PlaceOrderCommandHandler turns the customer's cart into an order in Placed status.
//
// Steps:
//  1. return the existing order when the idempotency key was already used
//  2. assemble a draft from the cart (empty cart and missing address fail here)
//  3. check the address belongs to the customer
//  4. snapshot every line from the menu catalog concurrently and reprice the draft
//  5. persist the order; losing a duplicate-key race returns the winner's order
//  6. clear the cart once, then notify order.placed
//
// Catalog and address book calls happen outside the database transaction.
type PlaceOrderCommandHandler struct {
	uowFactory    OrderUoWFactory
	carts         ports.CartStore
	catalog       ports.MenuCatalog
	addresses     ports.AddressBook
	assembler     services.CheckoutAssembler
	notifier      ports.Notifier
	logger        *slog.Logger
	snapshotLimit int
}

func NewPlaceOrderCommandHandler(
	uowFactory OrderUoWFactory,
	carts ports.CartStore,
	catalog ports.MenuCatalog,
	addresses ports.AddressBook,
	assembler services.CheckoutAssembler,
	notifier ports.Notifier,
	logger *slog.Logger,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory:    uowFactory,
		carts:         carts,
		catalog:       catalog,
		addresses:     addresses,
		assembler:     assembler,
		notifier:      notifier,
		logger:        logger.With("component", "PlaceOrderCommandHandler"),
		snapshotLimit: DefaultSnapshotConcurrency,
	}
}

// Handle processes the checkout and returns the placed order.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	customerID := cmd.Customer().ID()

	existing, err := h.findByKey(ctx, customerID, cmd.IdempotencyKey())
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	c, err := h.carts.Get(ctx, cmd.Owner())
	if err != nil {
		return nil, err
	}
	draft, err := h.assembler.Assemble(c, cmd.AddressID(), cmd.DeliveryNote())
	if err != nil {
		return nil, err
	}

	if _, err = h.addresses.GetAddress(ctx, customerID, cmd.AddressID()); err != nil {
		return nil, err
	}

	snapshots, err := h.snapshot(ctx, draft)
	if err != nil {
		return nil, err
	}
	if draft, err = h.assembler.Reprice(draft, snapshots); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	placed, err := order.NewOrder(kernel.NewUUID(), customerID, draft, cmd.IdempotencyKey(), now)
	if err != nil {
		return nil, err
	}

	err = h.add(ctx, placed)
	if errors.Is(err, order.ErrDuplicateOrder) {
		winner, findErr := h.findByKey(ctx, customerID, cmd.IdempotencyKey())
		if findErr != nil {
			return nil, findErr
		}
		if winner != nil {
			return winner, nil
		}
	}
	if err != nil {
		return nil, err
	}

	if err = h.carts.Delete(ctx, cmd.Owner()); err != nil {
		h.logger.WarnContext(ctx, "cart was not cleared after checkout",
			"orderId", placed.ID().String(),
			"customerId", customerID.String(),
			"error", err,
		)
	}

	h.notifier.Notify(ctx, ports.NewOrderEvent(ports.EventOrderPlaced, placed, now))
	return placed, nil
}

func (h PlaceOrderCommandHandler) findByKey(ctx context.Context, customerID kernel.UUID, key string) (*order.Order, error) {
	o, err := h.uowFactory.Create().OrderRepository().GetByIdempotencyKey(ctx, customerID, key)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (h PlaceOrderCommandHandler) add(ctx context.Context, o *order.Order) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// snapshot reads the current catalog entry of every draft item. Any item that vanished,
// became unavailable or moved to another restaurant fails the checkout.
func (h PlaceOrderCommandHandler) snapshot(ctx context.Context, draft order.Draft) ([]order.Item, error) {
	items := draft.Items()
	snapshots := make([]order.Item, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.snapshotLimit)

	for i, it := range items {
		g.Go(func() error {
			entry, err := h.catalog.GetMenuItem(gctx, it.MenuItemID())
			if err != nil {
				return err
			}
			if !entry.Available {
				return fmt.Errorf("%w: %s", ErrMenuItemIsUnavailable, it.Name())
			}
			if !entry.Item.RestaurantID().IsEqual(draft.RestaurantID()) {
				return fmt.Errorf("%w: %s is no longer sold by this restaurant", ErrMenuItemIsUnavailable, it.Name())
			}

			s, err := order.NewItem(entry.Item.ID(), entry.Item.Name(), entry.Item.UnitPrice(), it.Quantity(), it.Note())
			if err != nil {
				return err
			}
			snapshots[i] = s
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snapshots, nil
}
