// Package http exposes the delivery marketplace over REST with echo. Every
// /api/v1 route requires the X-Caller-Address header and is rate limited per
// caller.
package http

import (
	"context"
	"log/slog"
	"net/http"

	_ "logistics/internal/adapters/in/http/openapi"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

type (
	CreateDeliveryHandler interface {
		Handle(ctx context.Context, cmd commands.CreateDeliveryCommand) error
	}

	EscrowHandler interface {
		Deposit(ctx context.Context, cmd commands.DepositToEscrowCommand) error
		Settle(ctx context.Context, cmd commands.SettleEscrowCommand) (delivery.Payout, error)
		Refund(ctx context.Context, cmd commands.RefundEscrowCommand) (delivery.Payout, error)
		Withdraw(ctx context.Context, cmd commands.WithdrawFromEscrowCommand) (delivery.Payout, error)
		PayTip(ctx context.Context, cmd commands.PayTipCommand) (delivery.Payout, error)
	}

	AssignmentHandler interface {
		Assign(ctx context.Context, cmd commands.AssignDriverCommand) error
		Unassign(ctx context.Context, cmd commands.UnassignDriverCommand) error
		Apply(ctx context.Context, cmd commands.ApplyForDeliveryCommand) error
	}

	CompletionHandler interface {
		MarkComplete(ctx context.Context, cmd commands.MarkCompleteCommand) error
		UploadProof(ctx context.Context, cmd commands.UploadProofCommand) (delivery.Payout, error)
		ReportIssues(ctx context.Context, cmd commands.ReportIssuesCommand) error
		ResolveIssues(ctx context.Context, cmd commands.ResolveIssuesCommand) error
	}

	TermsHandler interface {
		ExtendDueDate(ctx context.Context, cmd commands.ExtendDueDateCommand) error
		UpdatePrice(ctx context.Context, cmd commands.UpdatePriceCommand) error
	}

	ProfileHandler interface {
		Create(ctx context.Context, cmd commands.CreateDriverProfileCommand) error
		Rate(ctx context.Context, cmd commands.RateDriverCommand) error
	}

	DeliveryDetailsReader interface {
		Handle(ctx context.Context, q queries.GetDeliveryDetailsQuery) (queries.GetDeliveryDetailsQueryResponse, error)
	}

	DriverProfileReader interface {
		Handle(ctx context.Context, q queries.GetDriverProfileQuery) (queries.GetDriverProfileQueryResponse, error)
	}

	DeliveryRecordReader interface {
		Handle(ctx context.Context, q queries.GetDeliveryRecordQuery) (queries.GetDeliveryRecordQueryResponse, error)
	}

	AccountBalanceReader interface {
		Handle(ctx context.Context, q queries.GetAccountBalanceQuery) (queries.GetAccountBalanceQueryResponse, error)
	}
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateDelivery CreateDeliveryHandler
	Escrow         EscrowHandler
	Assignment     AssignmentHandler
	Completion     CompletionHandler
	Terms          TermsHandler
	Profiles       ProfileHandler

	DeliveryDetails DeliveryDetailsReader
	DriverProfile   DriverProfileReader
	DeliveryRecord  DeliveryRecordReader
	AccountBalance  AccountBalanceReader
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	h Handlers
}

func NewServer(h Handlers) *Server {
	return &Server{h: h}
}

// Register mounts every route on e. gatherer backs /metrics; the API
// document is browsable under /swagger/.
func (s *Server) Register(
	e *echo.Echo,
	limiter Limiter,
	m *metrics.Metrics,
	gatherer prometheus.Gatherer,
	logger *slog.Logger,
) {
	e.Use(Observability(m, logger))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1", RequireCaller(), RateLimit(limiter, m.RateLimitExceededTotal, logger))

	api.POST("/deliveries", s.CreateDelivery)
	api.GET("/deliveries/:id/details", s.GetDeliveryDetails)

	api.POST("/deliveries/:id/escrow/deposit", s.DepositToEscrow)
	api.POST("/deliveries/:id/escrow/settle", s.SettleEscrow)
	api.POST("/deliveries/:id/escrow/refund", s.RefundEscrow)
	api.POST("/deliveries/:id/escrow/withdraw", s.WithdrawFromEscrow)
	api.POST("/deliveries/:id/escrow/tip", s.PayTip)

	api.PUT("/deliveries/:id/driver", s.AssignDriver)
	api.DELETE("/deliveries/:id/driver", s.UnassignDriver)
	api.POST("/deliveries/:id/applications", s.ApplyForDelivery)

	api.POST("/deliveries/:id/completion", s.MarkComplete)
	api.POST("/deliveries/:id/proof", s.UploadProof)
	api.POST("/deliveries/:id/issues", s.ReportIssues)
	api.DELETE("/deliveries/:id/issues", s.ResolveIssues)

	api.PUT("/deliveries/:id/due-date", s.ExtendDueDate)
	api.PUT("/deliveries/:id/price", s.UpdatePrice)

	api.POST("/profiles", s.CreateProfile)
	api.GET("/profiles/:id", s.GetProfile)
	api.PUT("/profiles/:id/rating", s.SetRating)
	api.POST("/profiles/:id/rating", s.AddRating)

	api.GET("/records/:deliveryId", s.GetDeliveryRecord)
	api.GET("/accounts/:address", s.GetAccountBalance)
}
