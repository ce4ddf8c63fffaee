package http

import (
	"net/http"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// CreateDelivery handles POST /api/v1/deliveries. The caller becomes the
// owning company.
func (s *Server) CreateDelivery(c echo.Context) error {
	var req CreateDeliveryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateDeliveryCommand(id, callerFrom(c), req.metadata(), req.Cost, req.DueDate)
	if err != nil {
		return writeError(c, err)
	}

	if err = s.h.CreateDelivery.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, CreatedResponse{ID: id.String()})
}

// GetDeliveryDetails handles GET /api/v1/deliveries/:id/details.
func (s *Server) GetDeliveryDetails(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	query, err := queries.NewGetDeliveryDetailsQuery(id)
	if err != nil {
		return writeError(c, err)
	}

	details, err := s.h.DeliveryDetails.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, newDeliveryDetailsResponse(details))
}

func (s *Server) DepositToEscrow(c echo.Context) error {
	var req AmountRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	return s.run(c, func(id kernel.UUID, caller kernel.Address) error {
		cmd, err := commands.NewDepositToEscrowCommand(id, caller, req.Amount)
		if err != nil {
			return err
		}
		return s.h.Escrow.Deposit(c.Request().Context(), cmd)
	})
}

func (s *Server) SettleEscrow(c echo.Context) error {
	return s.pay(c, func(id kernel.UUID, caller kernel.Address) (delivery.Payout, error) {
		cmd, err := commands.NewSettleEscrowCommand(id, caller)
		if err != nil {
			return delivery.Payout{}, err
		}
		return s.h.Escrow.Settle(c.Request().Context(), cmd)
	})
}

func (s *Server) RefundEscrow(c echo.Context) error {
	return s.pay(c, func(id kernel.UUID, caller kernel.Address) (delivery.Payout, error) {
		cmd, err := commands.NewRefundEscrowCommand(id, caller)
		if err != nil {
			return delivery.Payout{}, err
		}
		return s.h.Escrow.Refund(c.Request().Context(), cmd)
	})
}

func (s *Server) WithdrawFromEscrow(c echo.Context) error {
	var req AmountRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	return s.pay(c, func(id kernel.UUID, caller kernel.Address) (delivery.Payout, error) {
		cmd, err := commands.NewWithdrawFromEscrowCommand(id, caller, req.Amount)
		if err != nil {
			return delivery.Payout{}, err
		}
		return s.h.Escrow.Withdraw(c.Request().Context(), cmd)
	})
}

func (s *Server) PayTip(c echo.Context) error {
	var req AmountRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	return s.pay(c, func(id kernel.UUID, caller kernel.Address) (delivery.Payout, error) {
		cmd, err := commands.NewPayTipCommand(id, caller, req.Amount)
		if err != nil {
			return delivery.Payout{}, err
		}
		return s.h.Escrow.PayTip(c.Request().Context(), cmd)
	})
}

func (s *Server) AssignDriver(c echo.Context) error {
	var req AssignDriverRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	return s.run(c, func(id kernel.UUID, caller kernel.Address) error {
		driver, err := kernel.NewAddress(req.Driver)
		if err != nil {
			return err
		}
		cmd, err := commands.NewAssignDriverCommand(id, caller, driver)
		if err != nil {
			return err
		}
		return s.h.Assignment.Assign(c.Request().Context(), cmd)
	})
}

func (s *Server) UnassignDriver(c echo.Context) error {
	return s.run(c, func(id kernel.UUID, caller kernel.Address) error {
		cmd, err := commands.NewUnassignDriverCommand(id, caller)
		if err != nil {
			return err
		}
		return s.h.Assignment.Unassign(c.Request().Context(), cmd)
	})
}

func (s *Server) ApplyForDelivery(c echo.Context) error {
	return s.run(c, func(id kernel.UUID, caller kernel.Address) error {
		cmd, err := commands.NewApplyForDeliveryCommand(id, caller)
		if err != nil {
			return err
		}
		return s.h.Assignment.Apply(c.Request().Context(), cmd)
	})
}

func (s *Server) MarkComplete(c echo.Context) error {
	return s.run(c, func(id kernel.UUID, caller kernel.Address) error {
		cmd, err := commands.NewMarkCompleteCommand(id, caller)
		if err != nil {
			return err
		}
		return s.h.Completion.MarkComplete(c.Request().Context(), cmd)
	})
}

// UploadProof answers with the settlement payout made to the driver.
func (s *Server) UploadProof(c echo.Context) error {
	var req UploadProofRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	return s.pay(c, func(id kernel.UUID, caller kernel.Address) (delivery.Payout, error) {
		cmd, err := commands.NewUploadProofCommand(id, caller, req.Proof)
		if err != nil {
			return delivery.Payout{}, err
		}
		return s.h.Completion.UploadProof(c.Request().Context(), cmd)
	})
}

func (s *Server) ReportIssues(c echo.Context) error {
	return s.run(c, func(id kernel.UUID, caller kernel.Address) error {
		cmd, err := commands.NewReportIssuesCommand(id, caller)
		if err != nil {
			return err
		}
		return s.h.Completion.ReportIssues(c.Request().Context(), cmd)
	})
}

func (s *Server) ResolveIssues(c echo.Context) error {
	return s.run(c, func(id kernel.UUID, caller kernel.Address) error {
		cmd, err := commands.NewResolveIssuesCommand(id, caller)
		if err != nil {
			return err
		}
		return s.h.Completion.ResolveIssues(c.Request().Context(), cmd)
	})
}

func (s *Server) ExtendDueDate(c echo.Context) error {
	var req DueDateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	return s.run(c, func(id kernel.UUID, caller kernel.Address) error {
		cmd, err := commands.NewExtendDueDateCommand(id, caller, req.DueDate)
		if err != nil {
			return err
		}
		return s.h.Terms.ExtendDueDate(c.Request().Context(), cmd)
	})
}

func (s *Server) UpdatePrice(c echo.Context) error {
	var req PriceRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	return s.run(c, func(id kernel.UUID, caller kernel.Address) error {
		cmd, err := commands.NewUpdatePriceCommand(id, caller, req.Cost)
		if err != nil {
			return err
		}
		return s.h.Terms.UpdatePrice(c.Request().Context(), cmd)
	})
}

// run executes a delivery command addressed by the :id path parameter and
// answers 204 on success.
func (s *Server) run(c echo.Context, op func(id kernel.UUID, caller kernel.Address) error) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	if err = op(id, callerFrom(c)); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// pay is run for commands that disburse escrow; it answers with the payout.
func (s *Server) pay(c echo.Context, op func(id kernel.UUID, caller kernel.Address) (delivery.Payout, error)) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	payout, err := op(id, callerFrom(c))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, newPayoutResponse(payout))
}
