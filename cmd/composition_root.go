package cmd

import (
	"log/slog"
	"strconv"
	"time"

	httpin "orderflow/internal/adapters/in/http"
	kafkain "orderflow/internal/adapters/in/kafka"
	kafkaout "orderflow/internal/adapters/out/kafka"
	"orderflow/internal/adapters/out/postgres"
	"orderflow/internal/adapters/out/smtp"
	"orderflow/internal/adapters/out/themes"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/customer"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/shop"
	"orderflow/internal/jobs"
	"orderflow/internal/notifications"

	"gorm.io/gorm"
)

// Defaults applied when the corresponding config value is absent or invalid.
const (
	defaultPaymentTimeout = 30 * time.Minute
	defaultNotifyWorkers  = 4
	defaultNotifyQueue    = 1024
	defaultThemeCacheTTL  = 5 * time.Minute
	defaultThemeCacheSize = 256
)

// CompositionRoot wires adapters, use cases and background workers together.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	logger     *slog.Logger
	uowFactory postgres.GormUnitOfWorkFactory

	dispatcher    *notifications.Dispatcher
	orderNotifier commands.OrderNotifier
	regNotifier   commands.RegistrationNotifier
	publisher     *kafkaout.OrderEventPublisher
}

// NewCompositionRoot builds the full object graph.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	root := &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		logger:     logger,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
	}

	dispatcher, err := notifications.NewDispatcher(
		intOrDefault(config.NotifyWorkers, defaultNotifyWorkers),
		intOrDefault(config.NotifyQueueSize, defaultNotifyQueue),
		logger,
	)
	if err != nil {
		return nil, err
	}
	root.dispatcher = dispatcher

	composer, err := notifications.NewMailComposer(config.MailTemplatesDir)
	if err != nil {
		return nil, err
	}

	sender, err := smtp.NewSender(config.SMTPHost, config.SMTPPort, config.SMTPUser, config.SMTPPassword)
	if err != nil {
		return nil, err
	}

	resolver, err := themes.NewResolver(
		root.uowFactory.Create().ShopRepository(),
		minutesOrDefault(config.ThemeCacheTTLMinutes, defaultThemeCacheTTL),
		intOrDefault(config.ThemeCacheSize, defaultThemeCacheSize),
		logger,
	)
	if err != nil {
		return nil, err
	}

	mailNotifier, err := notifications.NewOrderMailNotifier(dispatcher, composer, resolver, sender, logger)
	if err != nil {
		return nil, err
	}

	regNotifier, err := notifications.NewRegistrationMailNotifier(dispatcher, composer, resolver, sender, logger)
	if err != nil {
		return nil, err
	}
	root.regNotifier = regNotifier

	writer := kafkaout.NewWriter([]string{config.KafkaHost}, config.KafkaOrderChangedTopic)
	publisher, err := kafkaout.NewOrderEventPublisher(writer, logger)
	if err != nil {
		return nil, err
	}
	root.publisher = publisher

	root.orderNotifier = compositeOrderNotifier{notifiers: []commands.OrderNotifier{mailNotifier, publisher}}

	return root, nil
}

// Start launches the notification dispatcher workers.
func (c *CompositionRoot) Start() {
	c.dispatcher.Start()
}

// Stop drains the dispatcher and closes the outbound kafka writer.
func (c *CompositionRoot) Stop() {
	c.dispatcher.Stop()
	if err := c.publisher.Close(); err != nil {
		c.logger.Error("Failed to close order event publisher", "error", err)
	}
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionOrderCommandHandler(f, c.orderNotifier, c.logger)
}

func (c *CompositionRoot) CreateRegisterCustomerCommandHandler() commands.RegisterCustomerCommandHandler {
	var f commands.RegistrationUoWFactory = FuncRegistrationUoWFactory(func() commands.RegistrationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterCustomerCommandHandler(f, c.regNotifier)
}

func (c *CompositionRoot) CreateResetPasswordCommandHandler() commands.ResetPasswordCommandHandler {
	var f commands.RegistrationUoWFactory = FuncRegistrationUoWFactory(func() commands.RegistrationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewResetPasswordCommandHandler(f, c.regNotifier)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStalePaymentOrdersQueryHandler() queries.GetStalePaymentOrdersQueryHandler {
	return queries.NewGetStalePaymentOrdersQueryHandler(c.gormDB)
}

// CreateHTTPServer wires the JSON API over the command and query handlers.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateTransitionOrderCommandHandler(),
		c.CreateRegisterCustomerCommandHandler(),
		c.CreateResetPasswordCommandHandler(),
		c.CreateGetOrderQueryHandler(),
	)
}

// CreateJobManager wires the payment timeout sweep.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateGetStalePaymentOrdersQueryHandler(),
		c.CreateTransitionOrderCommandHandler(),
		minutesOrDefault(c.config.PaymentTimeoutMinutes, defaultPaymentTimeout),
		c.logger,
	)
}

// CreatePaymentEventConsumer wires the inbound payment events topic to the
// transition engine.
func (c *CompositionRoot) CreatePaymentEventConsumer() (*kafkain.PaymentEventConsumer, error) {
	reader := kafkain.NewReader([]string{c.config.KafkaHost}, c.config.KafkaConsumerGroup, c.config.KafkaPaymentTopic)
	return kafkain.NewPaymentEventConsumer(reader, c.CreateTransitionOrderCommandHandler(), c.logger)
}

// compositeOrderNotifier fans a transition out to every configured notifier.
type compositeOrderNotifier struct {
	notifiers []commands.OrderNotifier
}

func (n compositeOrderNotifier) NotifyOrderTransition(
	aggregate *order.Order,
	recipient *customer.Customer,
	storefront *shop.Shop,
	event order.TransitionEvent,
) {
	for _, notifier := range n.notifiers {
		notifier.NotifyOrderTransition(aggregate, recipient, storefront, event)
	}
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncRegistrationUoWFactory func() commands.RegistrationUoW

func (f FuncRegistrationUoWFactory) Create() commands.RegistrationUoW {
	return f()
}

func intOrDefault(raw string, fallback int) int {
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func minutesOrDefault(raw string, fallback time.Duration) time.Duration {
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return time.Duration(value) * time.Minute
}
