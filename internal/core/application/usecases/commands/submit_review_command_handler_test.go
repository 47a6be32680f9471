package commands_test

import (
	"strings"
	"testing"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/model/review"
	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type reviewFixture struct {
	customer kernel.Actor

	orders   *MockOrderRepository
	reviews  *MockReviewRepository
	uow      *MockUoW
	factory  *MockUoWFactory
	notifier *MockNotifier
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()
	f := &reviewFixture{
		customer: newActor(t, kernel.RoleCustomer, nil),
		orders:   new(MockOrderRepository),
		reviews:  new(MockReviewRepository),
		uow:      new(MockUoW),
		factory:  new(MockUoWFactory),
		notifier: new(MockNotifier),
	}
	f.factory.On("Create").Return(f.uow).Once()
	return f
}

func (f *reviewFixture) handler() commands.SubmitReviewCommandHandler {
	return commands.NewSubmitReviewCommandHandler(f.factory, f.notifier)
}

func (f *reviewFixture) orderIn(t *testing.T, status order.Status) *order.Order {
	t.Helper()
	driverID := kernel.NewUUID()
	return restoreOrder(t, f.customer.ID(), kernel.NewUUID(), &driverID, status)
}

func TestNewSubmitReviewCommand(t *testing.T) {
	customer := newActor(t, kernel.RoleCustomer, nil)
	orderID := kernel.NewUUID()

	cmd, err := commands.NewSubmitReviewCommand(customer, orderID, 5, "hot and fast")
	require.NoError(t, err)
	assert.Equal(t, customer, cmd.Customer())
	assert.Equal(t, orderID, cmd.OrderID())
	assert.Equal(t, 5, cmd.Rating())
	assert.Equal(t, "hot and fast", cmd.Comment())

	// Content is checked by the handler after the already-reviewed check.
	cmd, err = commands.NewSubmitReviewCommand(customer, orderID, 9, "")
	require.NoError(t, err)
	assert.Equal(t, 9, cmd.Rating())

	_, err = commands.NewSubmitReviewCommand(customer, kernel.UUID{}, 5, "")
	assert.Error(t, err)

	assert.ErrorIs(t, commands.SubmitReviewCommand{}.Validate(), commands.ErrSubmitReviewCommandIsNotConstructed)
}

func TestSubmitReviewCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	f := newReviewFixture(t)
	o := f.orderIn(t, order.Delivered)

	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.orders).Once(),
		f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		f.uow.On("ReviewRepository").Return(f.reviews).Once(),
		f.reviews.On("ExistsForOrder", ctx, o.ID()).Return(false, nil).Once(),
		f.reviews.On("Add", ctx, mock.AnythingOfType("*review.Review")).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)
	f.notifier.On("Notify", ctx, mock.MatchedBy(func(e ports.Event) bool {
		return e.Type == ports.EventReviewSubmitted && e.Rating == 4 && e.OrderID == o.ID()
	})).Once()

	cmd, _ := commands.NewSubmitReviewCommand(f.customer, o.ID(), 4, "tasty")
	r, err := f.handler().Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, o.ID(), r.OrderID())
	assert.Equal(t, f.customer.ID(), r.CustomerID())
	assert.Equal(t, o.RestaurantID(), r.RestaurantID())
	assert.Equal(t, 4, r.Rating())

	f.orders.AssertExpectations(t)
	f.reviews.AssertExpectations(t)
	f.uow.AssertExpectations(t)
	f.factory.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
}

func TestSubmitReviewCommandHandler_Handle_Gate(t *testing.T) {
	tests := []struct {
		name    string
		status  order.Status
		author  func(f *reviewFixture) kernel.Actor
		wantErr error
	}{
		{
			name:    "order in transit",
			status:  order.InTransit,
			author:  func(f *reviewFixture) kernel.Actor { return f.customer },
			wantErr: review.ErrNotDelivered,
		},
		{
			name:    "canceled order can never be reviewed",
			status:  order.Canceled,
			author:  func(f *reviewFixture) kernel.Actor { return f.customer },
			wantErr: review.ErrNotDelivered,
		},
		{
			name:    "another customer",
			status:  order.Delivered,
			author:  func(f *reviewFixture) kernel.Actor { return newActor(t, kernel.RoleCustomer, nil) },
			wantErr: order.ErrNotParticipant,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			f := newReviewFixture(t)
			o := f.orderIn(t, tt.status)

			mock.InOrder(
				f.uow.On("Begin", ctx).Return(nil).Once(),
				f.uow.On("OrderRepository").Return(f.orders).Once(),
				f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once(),
				f.uow.On("Rollback", ctx).Return(nil).Once(),
			)

			cmd, err := commands.NewSubmitReviewCommand(tt.author(f), o.ID(), 5, "")
			require.NoError(t, err)
			_, err = f.handler().Handle(ctx, cmd)
			require.ErrorIs(t, err, tt.wantErr)
			f.uow.AssertNotCalled(t, "ReviewRepository")
			f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
			f.uow.AssertExpectations(t)
		})
	}
}

func TestSubmitReviewCommandHandler_Handle_AlreadyReviewed(t *testing.T) {
	t.Run("existing review", func(t *testing.T) {
		ctx := t.Context()
		f := newReviewFixture(t)
		o := f.orderIn(t, order.Delivered)

		mock.InOrder(
			f.uow.On("Begin", ctx).Return(nil).Once(),
			f.uow.On("OrderRepository").Return(f.orders).Once(),
			f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once(),
			f.uow.On("ReviewRepository").Return(f.reviews).Once(),
			f.reviews.On("ExistsForOrder", ctx, o.ID()).Return(true, nil).Once(),
			f.uow.On("Rollback", ctx).Return(nil).Once(),
		)

		cmd, _ := commands.NewSubmitReviewCommand(f.customer, o.ID(), 3, "")
		_, err := f.handler().Handle(ctx, cmd)
		require.ErrorIs(t, err, review.ErrAlreadyReviewed)
		f.reviews.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
		f.uow.AssertExpectations(t)
	})

	t.Run("concurrent submission hits the unique index", func(t *testing.T) {
		ctx := t.Context()
		f := newReviewFixture(t)
		o := f.orderIn(t, order.Delivered)

		mock.InOrder(
			f.uow.On("Begin", ctx).Return(nil).Once(),
			f.uow.On("OrderRepository").Return(f.orders).Once(),
			f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once(),
			f.uow.On("ReviewRepository").Return(f.reviews).Once(),
			f.reviews.On("ExistsForOrder", ctx, o.ID()).Return(false, nil).Once(),
			f.reviews.On("Add", ctx, mock.Anything).Return(review.ErrAlreadyReviewed).Once(),
			f.uow.On("Rollback", ctx).Return(nil).Once(),
		)

		cmd, _ := commands.NewSubmitReviewCommand(f.customer, o.ID(), 3, "")
		_, err := f.handler().Handle(ctx, cmd)
		require.ErrorIs(t, err, review.ErrAlreadyReviewed)
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
		f.uow.AssertExpectations(t)
	})
}

func TestSubmitReviewCommandHandler_Handle_AlreadyReviewedRegardlessOfContent(t *testing.T) {
	tests := []struct {
		name    string
		rating  int
		comment string
	}{
		{"rating above range", 9, ""},
		{"rating below range", 0, ""},
		{"oversized comment", 4, strings.Repeat("a", review.MaxCommentLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			f := newReviewFixture(t)
			o := f.orderIn(t, order.Delivered)

			mock.InOrder(
				f.uow.On("Begin", ctx).Return(nil).Once(),
				f.uow.On("OrderRepository").Return(f.orders).Once(),
				f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once(),
				f.uow.On("ReviewRepository").Return(f.reviews).Once(),
				f.reviews.On("ExistsForOrder", ctx, o.ID()).Return(true, nil).Once(),
				f.uow.On("Rollback", ctx).Return(nil).Once(),
			)

			cmd, err := commands.NewSubmitReviewCommand(f.customer, o.ID(), tt.rating, tt.comment)
			require.NoError(t, err)
			_, err = f.handler().Handle(ctx, cmd)
			require.ErrorIs(t, err, review.ErrAlreadyReviewed)
			assert.NotErrorIs(t, err, errs.ErrValueIsOutOfRange)
			f.reviews.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
		})
	}
}

func TestSubmitReviewCommandHandler_Handle_InvalidContentOnFirstReview(t *testing.T) {
	ctx := t.Context()
	f := newReviewFixture(t)
	o := f.orderIn(t, order.Delivered)

	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.orders).Once(),
		f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		f.uow.On("ReviewRepository").Return(f.reviews).Once(),
		f.reviews.On("ExistsForOrder", ctx, o.ID()).Return(false, nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	cmd, err := commands.NewSubmitReviewCommand(f.customer, o.ID(), 6, "")
	require.NoError(t, err)
	_, err = f.handler().Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	f.reviews.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestSubmitReviewCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	f := newReviewFixture(t)
	id := kernel.NewUUID()

	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.orders).Once(),
		f.orders.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("order", id.String())).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	cmd, _ := commands.NewSubmitReviewCommand(f.customer, id, 5, "")
	_, err := f.handler().Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}
