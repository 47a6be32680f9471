package http

import (
	"net/http"
	"strconv"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/application/usecases/queries"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/skip2/go-qrcode"
)

const pickupCodeSize = 256

// PlaceOrder handles POST /api/v1/orders.
func (s *Server) PlaceOrder(c echo.Context) error {
	actor, _ := actorFrom(c)

	key := c.Request().Header.Get(HeaderIdempotencyKey)
	if key == "" {
		return badRequest(c, HeaderIdempotencyKey+" header is required")
	}

	var req PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "request body is not valid JSON")
	}
	addressID, err := kernel.UUIDFromString(req.AddressID)
	if err != nil {
		return s.writeError(c, errs.NewValueIsInvalidErrorWithCause("addressId", err))
	}

	cmd, err := commands.NewPlaceOrderCommand(
		actor, c.Request().Header.Get(HeaderDeviceID), addressID, req.DeliveryNote, key,
	)
	if err != nil {
		return s.writeError(c, err)
	}
	o, err := s.handlers.PlaceOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}

	resp := toOrderResponse(o, actor.Role())
	resp.AllowedActions = statusNames(o.Status().AllowedTargets(actor.Role()))
	return c.JSON(http.StatusCreated, resp)
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	actor, _ := actorFrom(c)
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.writeError(c, err)
	}

	q, err := queries.NewGetOrderQuery(actor, id)
	if err != nil {
		return s.writeError(c, err)
	}
	res, err := s.handlers.GetOrder.Handle(c.Request().Context(), q)
	if err != nil {
		return s.writeError(c, err)
	}

	resp := toOrderResponse(res.Order, actor.Role())
	resp.StatusLabel = res.StatusLabel
	resp.AllowedActions = statusNames(res.AllowedTargets)
	resp.Review = toReviewResponse(res.Review)
	return c.JSON(http.StatusOK, resp)
}

// ListOrders handles GET /api/v1/orders?status=&limit=.
func (s *Server) ListOrders(c echo.Context) error {
	actor, _ := actorFrom(c)

	limit, err := queryLimit(c)
	if err != nil {
		return s.writeError(c, err)
	}
	var status *order.Status
	if raw := c.QueryParam("status"); raw != "" {
		st, err := order.ParseStatus(raw)
		if err != nil {
			return s.writeError(c, err)
		}
		status = &st
	}

	q, err := queries.NewListActorOrdersQuery(actor, status, limit)
	if err != nil {
		return s.writeError(c, err)
	}
	summaries, err := s.handlers.ListOrders.Handle(c.Request().Context(), q)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, toSummaryResponses(summaries))
}

// ListAvailableOrders handles GET /api/v1/orders/available.
func (s *Server) ListAvailableOrders(c echo.Context) error {
	actor, _ := actorFrom(c)

	limit, err := queryLimit(c)
	if err != nil {
		return s.writeError(c, err)
	}
	q, err := queries.NewListAvailableOrdersQuery(actor, limit)
	if err != nil {
		return s.writeError(c, err)
	}
	summaries, err := s.handlers.ListAvailable.Handle(c.Request().Context(), q)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, toSummaryResponses(summaries))
}

// ChangeOrderStatus handles POST /api/v1/orders/:id/status.
func (s *Server) ChangeOrderStatus(c echo.Context) error {
	actor, _ := actorFrom(c)
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.writeError(c, err)
	}

	var req ChangeStatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "request body is not valid JSON")
	}
	target, err := order.ParseStatus(req.Status)
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(actor, id, target)
	if err != nil {
		return s.writeError(c, err)
	}
	o, err := s.handlers.ChangeStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}
	return s.respondOrder(c, o, actor)
}

// ClaimOrder handles POST /api/v1/orders/:id/claim.
func (s *Server) ClaimOrder(c echo.Context) error {
	actor, _ := actorFrom(c)
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewClaimOrderCommand(actor, id)
	if err != nil {
		return s.writeError(c, err)
	}
	o, err := s.handlers.ClaimOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}
	return s.respondOrder(c, o, actor)
}

// ReleaseOrder handles POST /api/v1/orders/:id/release.
func (s *Server) ReleaseOrder(c echo.Context) error {
	actor, _ := actorFrom(c)
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewReleaseOrderCommand(actor, id)
	if err != nil {
		return s.writeError(c, err)
	}
	o, err := s.handlers.ReleaseOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}
	return s.respondOrder(c, o, actor)
}

// SubmitReview handles POST /api/v1/orders/:id/review.
func (s *Server) SubmitReview(c echo.Context) error {
	actor, _ := actorFrom(c)
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.writeError(c, err)
	}

	var req SubmitReviewRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "request body is not valid JSON")
	}

	cmd, err := commands.NewSubmitReviewCommand(actor, id, req.Rating, req.Comment)
	if err != nil {
		return s.writeError(c, err)
	}
	r, err := s.handlers.SubmitReview.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, toReviewResponse(r))
}

// PickupCode handles GET /api/v1/orders/:id/pickup-code. It renders a PNG QR code the
// driver scans at handoff; it exists only while the order waits for pickup.
func (s *Server) PickupCode(c echo.Context) error {
	actor, _ := actorFrom(c)
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.writeError(c, err)
	}

	q, err := queries.NewGetOrderQuery(actor, id)
	if err != nil {
		return s.writeError(c, err)
	}
	res, err := s.handlers.GetOrder.Handle(c.Request().Context(), q)
	if err != nil {
		return s.writeError(c, err)
	}
	if st := res.Order.Status(); st != order.Accepted && st != order.DriverAssigned {
		return s.writeError(c, ErrPickupNotReady)
	}

	png, err := qrcode.Encode(PickupPayload(res.Order.ID()), qrcode.Medium, pickupCodeSize)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.Blob(http.StatusOK, "image/png", png)
}

// PickupPayload is the text encoded in an order's pickup QR code.
func PickupPayload(orderID kernel.UUID) string {
	return "foodorder:pickup:" + orderID.String()
}

func (s *Server) respondOrder(c echo.Context, o *order.Order, actor kernel.Actor) error {
	resp := toOrderResponse(o, actor.Role())
	resp.AllowedActions = statusNames(o.Status().AllowedTargets(actor.Role()))
	return c.JSON(http.StatusOK, resp)
}

func queryLimit(c echo.Context) (int, error) {
	raw := c.QueryParam("limit")
	if raw == "" {
		return queries.DefaultListLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("limit", err)
	}
	return limit, nil
}

func statusNames(statuses []order.Status) []string {
	out := make([]string, 0, len(statuses))
	for _, st := range statuses {
		out = append(out, st.String())
	}
	return out
}
