package aggregate

import (
	"budgetcast/core/types"
	"budgetcast/internal/errors"
)

func contractNilSubscriptions() error {
	return errors.Contract("nil subscription collection")
}

func contractInvertedPeriod(p types.PayPeriod) error {
	return errors.Contractf("period end %s precedes start %s",
		p.End.Format("2006-01-02"), p.Start.Format("2006-01-02"))
}
