package recur

import (
	"time"

	"github.com/jpfluger/recurschedule/bizday"
)

// adjust post-processes a date engine candidate with the spec's business-day
// adjustment policy. It never changes actual; only observed may move.
func adjust(actual time.Time, adj *BizDayAdjustment, oracle bizday.Oracle) (NextResult, error) {
	if adj == nil || adj.Kind == AdjustNA {
		return NewSingleResult(actual), nil
	}

	isBiz, err := oracle.IsBizDay(actual)
	if err != nil {
		return NextResult{}, NewCustomError("business-day check failed").wrap(err)
	}
	if isBiz {
		return NewSingleResult(actual), nil
	}

	switch adj.Kind {
	case AdjustWeekday:
		adjusted, err := bizday.NewWeekendSkipper().Find(actual, adj.Direction)
		if err != nil {
			return NextResult{}, NewCustomError("weekday adjustment failed").wrap(err)
		}
		return NewAdjustedResult(actual, adjusted), nil
	case AdjustBizDay:
		adjusted, err := oracle.Find(actual, adj.Direction)
		if err != nil {
			return NextResult{}, NewCustomError("business-day adjustment failed").wrap(err)
		}
		return NewAdjustedResult(actual, adjusted), nil
	case AdjustPrevN:
		adjusted, err := oracle.Sub(actual, uint(adj.N))
		if err != nil {
			return NextResult{}, NewCustomError("business-day adjustment failed").wrap(err)
		}
		return NextResult{Kind: AdjustedEarlier, Actual: actual, Observed: adjusted}, nil
	case AdjustNextN:
		adjusted, err := oracle.Add(actual, uint(adj.N))
		if err != nil {
			return NextResult{}, NewCustomError("business-day adjustment failed").wrap(err)
		}
		return NextResult{Kind: AdjustedLater, Actual: actual, Observed: adjusted}, nil
	default: // AdjustNA already handled above
		return NewSingleResult(actual), nil
	}
}
