package levy

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/marketpadi/backend/utils"
)

// ExportReport carries every field the CSV/Excel renderers need: aggregate
// totals, per-market detail rows, a payment-method revenue breakdown and
// monthly revenue rows. The renderers own the byte layout.
type ExportReport struct {
	GeneratedAt      time.Time       `json:"generatedAt"`
	Window           DateRange       `json:"window"`
	TotalRevenue     decimal.Decimal `json:"totalRevenue"`
	TransactionCount int             `json:"transactionCount"`
	MarketCount      int             `json:"marketCount"`
	Markets          []MarketStats   `json:"markets"`
	Methods          []MethodRevenue `json:"methods"`
	Monthly          []MonthBucket   `json:"monthly"`

	// AmountStats summarises the individual payment amounts in the window;
	// nil when the window holds no qualifying payments.
	AmountStats *utils.StatisticalSummary `json:"amountStats,omitempty"`
}

// BuildExportReport aggregates the filtered market set into the flat export
// DTO. Unlike the dashboard it keeps every market, not just the top three.
func (asm *Assembler) BuildExportReport(f DashboardFilter) (*ExportReport, error) {
	window := asm.resolveWindow(f)

	mf, err := asm.marketSet(f)
	if err != nil {
		return nil, err
	}
	markets, err := asm.store.ListMarkets(mf)
	if err != nil {
		return nil, err
	}

	report := &ExportReport{
		GeneratedAt:  asm.now(),
		Window:       window,
		TotalRevenue: decimal.Zero,
		MarketCount:  len(markets),
		Monthly:      BucketByMonth(nil, window.Start, window.End),
	}

	byMethod := make(map[string]*MethodRevenue)
	var methodOrder []string
	var amounts []float64

	for _, m := range markets {
		stats, err := asm.agg.ComputeMarketStats(m.ID, window.Start, window.End)
		if err != nil {
			return nil, err
		}
		report.Markets = append(report.Markets, *stats)
		report.TotalRevenue = report.TotalRevenue.Add(stats.TotalRevenue)
		report.TransactionCount += stats.TransactionCount

		methods, err := asm.agg.RevenueByMethod(m.ID, window.Start, window.End)
		if err != nil {
			return nil, err
		}
		for _, mr := range methods {
			key := string(mr.Method)
			agg, ok := byMethod[key]
			if !ok {
				agg = &MethodRevenue{Method: mr.Method, Revenue: decimal.Zero}
				byMethod[key] = agg
				methodOrder = append(methodOrder, key)
			}
			agg.Revenue = agg.Revenue.Add(mr.Revenue)
			agg.Count += mr.Count
		}

		buckets, err := asm.agg.MonthlyRevenue(m.ID, window.Start, window.End)
		if err != nil {
			return nil, err
		}
		for i, b := range buckets {
			if i < len(report.Monthly) {
				report.Monthly[i].Revenue = report.Monthly[i].Revenue.Add(b.Revenue)
			}
		}

		payments, err := asm.store.PaymentsInWindow(m.ID, window.Start, window.End)
		if err != nil {
			return nil, err
		}
		for _, p := range qualifying(payments) {
			amounts = append(amounts, p.Amount.InexactFloat64())
		}
	}

	for _, key := range methodOrder {
		report.Methods = append(report.Methods, *byMethod[key])
	}
	report.AmountStats = utils.CalculateStatistics(amounts)
	return report, nil
}
