// Package finance contains the financial aggregation engine: the join step,
// the statistics computation and the published snapshot lifecycle.
package finance

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestion-irrigation/backend/internal/domain/entity"
)

// MissingMarketObject is the placeholder description attached to contracts
// that have no linked market.
const MissingMarketObject = "Marché non référencé"

// BuildRevenueViews joins contracts and settlements into the derived
// per-contract revenue views. The function is pure: given the same inputs it
// always produces the same output and performs no store calls.
//
// For each contract, the settlements whose contract id matches are summed
// into PaidAmount and RemainingAmount is recomputed as TotalValue minus
// PaidAmount. RemainingAmount may be negative when a contract is overpaid;
// it is deliberately not clamped so overpayments stay auditable. Market
// fields come from the expanded market, falling back to the contract's own
// amount and a placeholder object when no market is linked.
func BuildRevenueViews(contracts []*entity.Contract, settlements []*entity.Settlement) []entity.RevenueView {
	paidByContract := make(map[uuid.UUID]decimal.Decimal, len(contracts))
	for _, s := range settlements {
		paidByContract[s.ContractID] = paidByContract[s.ContractID].Add(s.Amount)
	}

	views := make([]entity.RevenueView, 0, len(contracts))
	for _, c := range contracts {
		paid := paidByContract[c.ID]

		view := entity.RevenueView{
			ContractID:       c.ID,
			Reference:        c.Reference,
			Subject:          c.Subject,
			Awardee:          c.Awardee,
			StartDate:        c.StartDate,
			Deadline:         c.Deadline,
			TotalValue:       c.Amount,
			PaidAmount:       paid,
			RemainingAmount:  c.Amount.Sub(paid),
			PaymentStatus:    c.PaymentStatus,
			PartialAmount:    c.PartialAmount,
			TrackedRemaining: c.RemainingAmount,
		}

		if c.Market != nil {
			view.MarketEstimatedAmount = c.Market.EstimatedAmount
			view.MarketObject = c.Market.Object
		} else {
			view.MarketEstimatedAmount = c.Amount
			view.MarketObject = MissingMarketObject
		}

		views = append(views, view)
	}

	return views
}
