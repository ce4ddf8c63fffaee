package queries

import (
	"context"

	"gorm.io/gorm"
)

type GetAccountBalanceQueryHandler struct {
	db *gorm.DB
}

func NewGetAccountBalanceQueryHandler(db *gorm.DB) GetAccountBalanceQueryHandler {
	return GetAccountBalanceQueryHandler{db: db}
}

// Handle reports a zero balance for an address that was never credited:
// accounts are opened lazily on the first payout.
func (h GetAccountBalanceQueryHandler) Handle(
	ctx context.Context,
	query GetAccountBalanceQuery,
) (GetAccountBalanceQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetAccountBalanceQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT balance
		FROM accounts
		WHERE owner = ?
	`, query.Owner().String()).Rows()
	if err != nil {
		return GetAccountBalanceQueryResponse{}, err
	}
	defer rows.Close()

	response := GetAccountBalanceQueryResponse{Owner: query.Owner()}
	if rows.Next() {
		if err = rows.Scan(&response.Balance); err != nil {
			return GetAccountBalanceQueryResponse{}, err
		}
	}

	if err = rows.Err(); err != nil {
		return GetAccountBalanceQueryResponse{}, err
	}

	return response, nil
}
