package cmd

import (
	"log/slog"
	"strings"
	"time"

	httpin "logistics/internal/adapters/in/http"
	kafkain "logistics/internal/adapters/in/kafka"
	kafkaout "logistics/internal/adapters/out/kafka"
	"logistics/internal/adapters/out/postgres"
	"logistics/internal/adapters/out/redis"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/jobs"
	"logistics/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

// CompositionRoot owns the long-lived adapters and builds every handler.
type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	clock      kernel.Clock
	logger     *slog.Logger

	Registry *prometheus.Registry
	Metrics  *metrics.Metrics
	Producer *kafkaout.Producer
	Limiter  *redis.RateLimiter
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	reg := prometheus.NewRegistry()
	return &CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		clock:      kernel.SystemClock{},
		logger:     logger,
		Registry:   reg,
		Metrics:    metrics.New(reg),
		Producer:   kafkaout.NewProducer(kafkaBrokers(configs.KafkaHost)),
		Limiter:    redis.NewRateLimiter(configs.RedisAddr, configs.RateLimitPerMinute, time.Minute),
	}
}

func (c *CompositionRoot) deliveryUoWFactory() commands.UoWFactory {
	return commands.UoWFactoryFunc(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateDeliveryCommandHandler() commands.CreateDeliveryCommandHandler {
	return commands.NewCreateDeliveryCommandHandler(c.deliveryUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateEscrowCommandHandler() commands.EscrowCommandHandler {
	return commands.NewEscrowCommandHandler(c.deliveryUoWFactory(), c.clock, c.Metrics)
}

func (c *CompositionRoot) CreateAssignmentCommandHandler() commands.AssignmentCommandHandler {
	return commands.NewAssignmentCommandHandler(c.deliveryUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateCompletionCommandHandler() commands.CompletionCommandHandler {
	return commands.NewCompletionCommandHandler(c.deliveryUoWFactory(), c.clock, c.Metrics)
}

func (c *CompositionRoot) CreateTermsCommandHandler() commands.TermsCommandHandler {
	return commands.NewTermsCommandHandler(c.deliveryUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateDriverProfileCommandHandler() commands.DriverProfileCommandHandler {
	var f commands.ProfileUoWFactory = commands.ProfileUoWFactoryFunc(func() commands.ProfileUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDriverProfileCommandHandler(f)
}

func (c *CompositionRoot) CreateRecordCompletionCommandHandler() commands.RecordCompletionCommandHandler {
	var f commands.RecordsUoWFactory = commands.RecordsUoWFactoryFunc(func() commands.RecordsUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordCompletionCommandHandler(f)
}

func (c *CompositionRoot) CreateRelayOutboxCommandHandler() commands.RelayOutboxCommandHandler {
	var f commands.OutboxUoWFactory = commands.OutboxUoWFactoryFunc(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	topics := map[string]string{
		delivery.DeliveryCompletedEventName: c.configs.KafkaDeliveryCompletedTopic,
	}
	return commands.NewRelayOutboxCommandHandler(f, c.Producer, topics, c.clock, c.Metrics)
}

func (c *CompositionRoot) CreateGetDeliveryDetailsQueryHandler() queries.GetDeliveryDetailsQueryHandler {
	return queries.NewGetDeliveryDetailsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDriverProfileQueryHandler() queries.GetDriverProfileQueryHandler {
	return queries.NewGetDriverProfileQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDeliveryRecordQueryHandler() queries.GetDeliveryRecordQueryHandler {
	return queries.NewGetDeliveryRecordQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAccountBalanceQueryHandler() queries.GetAccountBalanceQueryHandler {
	return queries.NewGetAccountBalanceQueryHandler(c.gormDB)
}

// CreateServer wires every use case into the HTTP server.
func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateDelivery:  c.CreateCreateDeliveryCommandHandler(),
		Escrow:          c.CreateEscrowCommandHandler(),
		Assignment:      c.CreateAssignmentCommandHandler(),
		Completion:      c.CreateCompletionCommandHandler(),
		Terms:           c.CreateTermsCommandHandler(),
		Profiles:        c.CreateDriverProfileCommandHandler(),
		DeliveryDetails: c.CreateGetDeliveryDetailsQueryHandler(),
		DriverProfile:   c.CreateGetDriverProfileQueryHandler(),
		DeliveryRecord:  c.CreateGetDeliveryRecordQueryHandler(),
		AccountBalance:  c.CreateGetAccountBalanceQueryHandler(),
	})
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateRelayOutboxCommandHandler(), c.configs.OutboxBatchSize, c.logger)
}

func (c *CompositionRoot) CreateCompletionConsumer() *kafkain.CompletionConsumer {
	return kafkain.NewCompletionConsumer(
		kafkaBrokers(c.configs.KafkaHost),
		c.configs.KafkaDeliveryCompletedTopic,
		c.configs.KafkaConsumerGroup,
		c.CreateRecordCompletionCommandHandler(),
		c.logger,
	)
}

// Close releases the broker and cache connections.
func (c *CompositionRoot) Close() {
	if err := c.Producer.Close(); err != nil {
		c.logger.Error("close kafka producer", "error", err)
	}
	if err := c.Limiter.Close(); err != nil {
		c.logger.Error("close redis limiter", "error", err)
	}
}

// kafkaBrokers splits a comma separated broker list.
func kafkaBrokers(hosts string) []string {
	var brokers []string
	for _, h := range strings.Split(hosts, ",") {
		if h = strings.TrimSpace(h); h != "" {
			brokers = append(brokers, h)
		}
	}
	return brokers
}
