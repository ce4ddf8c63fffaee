package http

import (
	"net/http"

	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// GetDeliveryRecord handles GET /api/v1/records/:deliveryId.
func (s *Server) GetDeliveryRecord(c echo.Context) error {
	id, err := pathUUID(c, "deliveryId")
	if err != nil {
		return writeError(c, err)
	}

	query, err := queries.NewGetDeliveryRecordQuery(id)
	if err != nil {
		return writeError(c, err)
	}

	r, err := s.h.DeliveryRecord.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, DeliveryRecordResponse{
		DeliveryID: r.DeliveryID.String(),
		Company:    r.Company.String(),
		Proof:      r.Proof,
	})
}

// GetAccountBalance handles GET /api/v1/accounts/:address.
func (s *Server) GetAccountBalance(c echo.Context) error {
	owner, err := kernel.NewAddress(c.Param("address"))
	if err != nil {
		return writeError(c, err)
	}

	query, err := queries.NewGetAccountBalanceQuery(owner)
	if err != nil {
		return writeError(c, err)
	}

	balance, err := s.h.AccountBalance.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, AccountBalanceResponse{
		Owner:   balance.Owner.String(),
		Balance: balance.Balance,
	})
}
