package http

import (
	"net/http"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/application/usecases/queries"
	"foodorder/internal/core/domain/model/cart"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// cartOwner builds the owner of the cart addressed by the request.
func cartOwner(c echo.Context) (cart.Owner, error) {
	actor, _ := actorFrom(c)
	return cart.NewOwner(actor.ID(), c.Request().Header.Get(HeaderDeviceID))
}

func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(c.Param(name))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

// respondCart reads the cart back with its quote so every cart route answers the same shape.
func (s *Server) respondCart(c echo.Context, owner cart.Owner, status int) error {
	q, err := queries.NewGetCartQuery(owner)
	if err != nil {
		return s.writeError(c, err)
	}
	resp, err := s.handlers.GetCart.Handle(c.Request().Context(), q)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(status, toCartResponse(resp.Cart, resp.Quote))
}

// GetCart handles GET /api/v1/cart.
func (s *Server) GetCart(c echo.Context) error {
	owner, err := cartOwner(c)
	if err != nil {
		return s.writeError(c, err)
	}
	return s.respondCart(c, owner, http.StatusOK)
}

// AddCartItem handles POST /api/v1/cart/items.
func (s *Server) AddCartItem(c echo.Context) error {
	owner, err := cartOwner(c)
	if err != nil {
		return s.writeError(c, err)
	}

	var req AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "request body is not valid JSON")
	}
	itemID, err := kernel.UUIDFromString(req.ItemID)
	if err != nil {
		return s.writeError(c, errs.NewValueIsInvalidErrorWithCause("itemId", err))
	}

	cmd, err := commands.NewAddCartItemCommand(owner, itemID, req.Quantity, req.Notes)
	if err != nil {
		return s.writeError(c, err)
	}
	if _, err := s.handlers.AddCartItem.Handle(c.Request().Context(), cmd); err != nil {
		return s.writeError(c, err)
	}
	return s.respondCart(c, owner, http.StatusOK)
}

// UpdateCartItem handles PATCH /api/v1/cart/items/:itemId. The body either moves the
// quantity by delta or replaces the notes.
func (s *Server) UpdateCartItem(c echo.Context) error {
	owner, err := cartOwner(c)
	if err != nil {
		return s.writeError(c, err)
	}
	itemID, err := pathUUID(c, "itemId")
	if err != nil {
		return s.writeError(c, err)
	}

	var req UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "request body is not valid JSON")
	}

	ctx := c.Request().Context()
	switch {
	case req.Delta != nil && req.Notes != nil:
		return badRequest(c, "send either delta or notes, not both")
	case req.Delta != nil:
		cmd, err := commands.NewChangeCartItemQuantityCommand(owner, itemID, *req.Delta)
		if err != nil {
			return s.writeError(c, err)
		}
		if _, err := s.handlers.ChangeCartQuantity.Handle(ctx, cmd); err != nil {
			return s.writeError(c, err)
		}
	case req.Notes != nil:
		cmd, err := commands.NewSetCartItemNotesCommand(owner, itemID, *req.Notes)
		if err != nil {
			return s.writeError(c, err)
		}
		if _, err := s.handlers.SetCartItemNotes.Handle(ctx, cmd); err != nil {
			return s.writeError(c, err)
		}
	default:
		return badRequest(c, "delta or notes is required")
	}
	return s.respondCart(c, owner, http.StatusOK)
}

// RemoveCartItem handles DELETE /api/v1/cart/items/:itemId.
func (s *Server) RemoveCartItem(c echo.Context) error {
	owner, err := cartOwner(c)
	if err != nil {
		return s.writeError(c, err)
	}
	itemID, err := pathUUID(c, "itemId")
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewRemoveCartItemCommand(owner, itemID)
	if err != nil {
		return s.writeError(c, err)
	}
	if _, err := s.handlers.RemoveCartItem.Handle(c.Request().Context(), cmd); err != nil {
		return s.writeError(c, err)
	}
	return s.respondCart(c, owner, http.StatusOK)
}

// ClearCart handles DELETE /api/v1/cart.
func (s *Server) ClearCart(c echo.Context) error {
	owner, err := cartOwner(c)
	if err != nil {
		return s.writeError(c, err)
	}
	cmd, err := commands.NewClearCartCommand(owner)
	if err != nil {
		return s.writeError(c, err)
	}
	if err := s.handlers.ClearCart.Handle(c.Request().Context(), cmd); err != nil {
		return s.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
