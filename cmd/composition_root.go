package cmd

import (
	"io"
	"log/slog"

	apihttp "foodorder/internal/adapters/in/http"
	"foodorder/internal/adapters/out/catalog"
	"foodorder/internal/adapters/out/kafka/notifier"
	"foodorder/internal/adapters/out/postgres"
	"foodorder/internal/adapters/out/redis/cartstore"
	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/application/usecases/queries"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/services"
	"foodorder/internal/core/ports"
	"foodorder/internal/jobs"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	carts      *cartstore.RedisCartStore
	catalog    *catalog.Client
	assembler  services.CheckoutAssembler
	notifier   ports.Notifier
	logger     *slog.Logger

	closers []io.Closer
}

func NewCompositionRoot(
	configs Config,
	gormDB *gorm.DB,
	redisClient *redis.Client,
	logger *slog.Logger,
) (*CompositionRoot, error) {
	catalogClient, err := catalog.NewClient(configs.CatalogURL, configs.CatalogToken, configs.CatalogTimeout)
	if err != nil {
		return nil, err
	}
	fee, err := kernel.NewMoney(configs.ShippingFee)
	if err != nil {
		return nil, err
	}

	root := &CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		carts:      cartstore.NewRedisCartStore(redisClient, configs.CartTTL),
		catalog:    catalogClient,
		assembler:  services.NewCheckoutAssembler(services.NewFlatShippingFee(fee)),
		logger:     logger,
	}

	if len(configs.KafkaBrokers) == 0 {
		logger.Warn("KAFKA_BROKERS is empty, order events are only logged")
		root.notifier = notifier.NewLogNotifier(logger)
	} else {
		writer := notifier.NewWriter(configs.KafkaBrokers, configs.KafkaOrderEventsTopic)
		kafkaNotifier := notifier.NewKafkaNotifier(writer, configs.KafkaPublishTimeout, logger)
		// The notifier drains its queue into the writer, so it closes first.
		root.closers = append(root.closers, kafkaNotifier, writer)
		root.notifier = kafkaNotifier
	}

	return root, nil
}

// Close releases the clients owned by the root.
func (c *CompositionRoot) Close() {
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil {
			c.logger.Warn("Failed to close client", "error", err)
		}
	}
}

func (c *CompositionRoot) CreateAddCartItemCommandHandler() commands.AddCartItemCommandHandler {
	return commands.NewAddCartItemCommandHandler(c.carts, c.catalog)
}

func (c *CompositionRoot) CreateChangeCartItemQuantityCommandHandler() commands.ChangeCartItemQuantityCommandHandler {
	return commands.NewChangeCartItemQuantityCommandHandler(c.carts)
}

func (c *CompositionRoot) CreateSetCartItemNotesCommandHandler() commands.SetCartItemNotesCommandHandler {
	return commands.NewSetCartItemNotesCommandHandler(c.carts)
}

func (c *CompositionRoot) CreateRemoveCartItemCommandHandler() commands.RemoveCartItemCommandHandler {
	return commands.NewRemoveCartItemCommandHandler(c.carts)
}

func (c *CompositionRoot) CreateClearCartCommandHandler() commands.ClearCartCommandHandler {
	return commands.NewClearCartCommandHandler(c.carts)
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	return commands.NewPlaceOrderCommandHandler(
		c.orderUoWFactory(), c.carts, c.catalog, c.catalog, c.assembler, c.notifier, c.logger,
	)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.orderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateClaimOrderCommandHandler() commands.ClaimOrderCommandHandler {
	return commands.NewClaimOrderCommandHandler(c.orderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateReleaseOrderCommandHandler() commands.ReleaseOrderCommandHandler {
	return commands.NewReleaseOrderCommandHandler(c.orderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateSubmitReviewCommandHandler() commands.SubmitReviewCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewSubmitReviewCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateGetCartQueryHandler() queries.GetCartQueryHandler {
	return queries.NewGetCartQueryHandler(c.carts, c.assembler)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateListActorOrdersQueryHandler() queries.ListActorOrdersQueryHandler {
	return queries.NewListActorOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListAvailableOrdersQueryHandler() queries.ListAvailableOrdersQueryHandler {
	return queries.NewListAvailableOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListAwaitingDriverQueryHandler() queries.ListAwaitingDriverQueryHandler {
	return queries.NewListAwaitingDriverQueryHandler(c.gormDB)
}

// CreateHTTPHandlers collects the use cases served by the HTTP API.
func (c *CompositionRoot) CreateHTTPHandlers() apihttp.Handlers {
	return apihttp.Handlers{
		GetCart:            c.CreateGetCartQueryHandler(),
		AddCartItem:        c.CreateAddCartItemCommandHandler(),
		ChangeCartQuantity: c.CreateChangeCartItemQuantityCommandHandler(),
		SetCartItemNotes:   c.CreateSetCartItemNotesCommandHandler(),
		RemoveCartItem:     c.CreateRemoveCartItemCommandHandler(),
		ClearCart:          c.CreateClearCartCommandHandler(),
		PlaceOrder:         c.CreatePlaceOrderCommandHandler(),
		GetOrder:           c.CreateGetOrderQueryHandler(),
		ListOrders:         c.CreateListActorOrdersQueryHandler(),
		ListAvailable:      c.CreateListAvailableOrdersQueryHandler(),
		ChangeStatus:       c.CreateChangeOrderStatusCommandHandler(),
		ClaimOrder:         c.CreateClaimOrderCommandHandler(),
		ReleaseOrder:       c.CreateReleaseOrderCommandHandler(),
		SubmitReview:       c.CreateSubmitReviewCommandHandler(),
	}
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(jobs.NewAwaitingDriverJob(
		c.CreateListAwaitingDriverQueryHandler(),
		c.notifier,
		c.configs.AwaitingDriverSchedule,
		c.configs.AwaitingDriverAfter,
		c.logger,
	))
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
