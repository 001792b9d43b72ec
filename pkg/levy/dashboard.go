package levy

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marketpadi/backend/models"
	"github.com/marketpadi/backend/utils"
)

// topN is how many markets each dashboard breakdown shows.
const topN = 3

// Scope carries the caller's pre-authorized reach, resolved by the identity
// layer. The core applies it as a filter and performs no authorization of
// its own. A nil MarketID means every market is in reach.
type Scope struct {
	Role        string
	MarketID    *uuid.UUID
	ChairmanID  *uuid.UUID
	CaretakerID *uuid.UUID
	TraderID    *uuid.UUID
	GoodBoyID   *uuid.UUID
}

// DashboardFilter selects the market set and window a dashboard covers.
type DashboardFilter struct {
	LGAName     string
	MarketName  string
	TimeFrame   TimeFrame
	Year        *int // explicit calendar year; overrides TimeFrame
	CustomStart time.Time
	CustomEnd   time.Time
	Timezone    string
	Scope       Scope
}

// DashboardReport is the chart-ready dashboard DTO.
type DashboardReport struct {
	MarketCount     int                 `json:"marketCount"`
	TotalRevenue    RevenueSummary      `json:"totalRevenue"`
	LevyPayments    LevyPaymentSeries   `json:"levyPayments"`
	ComplianceRates ComplianceBreakdown `json:"complianceRates"`
	LevyCollection  CollectionBreakdown `json:"levyCollection"`
	GeneratedAt     time.Time           `json:"generatedAt"`
}

// RevenueSummary carries the in-window total plus its movement against the
// window of equal length immediately before it.
type RevenueSummary struct {
	Amount    decimal.Decimal   `json:"amount"`
	TimeFrame TimeFrame         `json:"timeFrame"`
	Label     string            `json:"label"`
	KPI       *utils.KPIMetrics `json:"kpi,omitempty"`
}

// LevyPaymentSeries is the monthly revenue chart, restricted to the top
// markets by in-window revenue.
type LevyPaymentSeries struct {
	Months     []string           `json:"months"`
	MarketData []MarketSeriesData `json:"marketData"`
}

type MarketSeriesData struct {
	MarketName string            `json:"marketName"`
	Color      string            `json:"color"`
	Values     []decimal.Decimal `json:"values"`
}

// ComplianceBreakdown is the compliance donut for the top markets by trader
// count.
type ComplianceBreakdown struct {
	Year             int                `json:"year"`
	MarketCompliance []MarketCompliance `json:"marketCompliance"`
}

type MarketCompliance struct {
	MarketName string  `json:"marketName"`
	Percentage float64 `json:"percentage"`
	Color      string  `json:"color"`
}

// CollectionBreakdown lists levy collection for the top markets by revenue,
// plus the grand total across every market in the filtered set.
type CollectionBreakdown struct {
	Year        int             `json:"year"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	MarketLevy  []MarketLevy    `json:"marketLevy"`
}

type MarketLevy struct {
	MarketName string          `json:"marketName"`
	Amount     decimal.Decimal `json:"amount"`
}

// Assembler composes aggregator output into time-windowed dashboard and
// export DTOs.
type Assembler struct {
	store Store
	agg   *Aggregator
	now   func() time.Time
}

func NewAssembler(store Store, agg *Aggregator) *Assembler {
	return &Assembler{store: store, agg: agg, now: time.Now}
}

// resolveWindow picks the concrete [start, end] for a filter: an explicit
// year wins over the named time frame.
func (asm *Assembler) resolveWindow(f DashboardFilter) DateRange {
	loc := utils.LoadLocation(f.Timezone)
	if f.Year != nil {
		return YearRange(*f.Year, loc)
	}
	return ResolveRange(f.TimeFrame, asm.now().In(loc), f.CustomStart, f.CustomEnd)
}

// priorWindow is the window of equal length immediately preceding w, used
// for period-over-period movement.
func priorWindow(w DateRange) DateRange {
	d := w.End.Sub(w.Start)
	return DateRange{Start: w.Start.Add(-d), End: w.Start.Add(-time.Nanosecond)}
}

// revenueInWindow sums qualifying revenue across the market set.
func (asm *Assembler) revenueInWindow(markets []models.Market, w DateRange) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, m := range markets {
		payments, err := asm.store.PaymentsInWindow(m.ID, w.Start, w.End)
		if err != nil {
			return decimal.Zero, err
		}
		for _, p := range qualifying(payments) {
			total = total.Add(p.Amount)
		}
	}
	return total, nil
}

// marketSet lists the markets the filter and scope reach.
func (asm *Assembler) marketSet(f DashboardFilter) (MarketFilter, error) {
	mf := MarketFilter{LGAName: f.LGAName, MarketName: f.MarketName}
	if f.Scope.MarketID != nil {
		mf.MarketID = f.Scope.MarketID
	}
	return mf, nil
}

// BuildDashboard assembles the dashboard for the filtered market set over
// the resolved window. As a side effect it refreshes each market's cached
// aggregate columns with the freshly computed stats.
func (asm *Assembler) BuildDashboard(f DashboardFilter) (*DashboardReport, error) {
	window := asm.resolveWindow(f)

	mf, err := asm.marketSet(f)
	if err != nil {
		return nil, err
	}
	markets, err := asm.store.ListMarkets(mf)
	if err != nil {
		return nil, err
	}

	now := asm.now()
	allStats := make([]MarketStats, 0, len(markets))
	totalRevenue := decimal.Zero
	for _, m := range markets {
		stats, err := asm.agg.ComputeMarketStats(m.ID, window.Start, window.End)
		if err != nil {
			return nil, err
		}
		allStats = append(allStats, *stats)
		totalRevenue = totalRevenue.Add(stats.TotalRevenue)

		if err := asm.store.UpdateMarketStats(m.ID, *stats, now); err != nil {
			return nil, err
		}
	}

	previousRevenue, err := asm.revenueInWindow(markets, priorWindow(window))
	if err != nil {
		return nil, err
	}

	report := &DashboardReport{
		MarketCount: len(markets),
		TotalRevenue: RevenueSummary{
			Amount:    totalRevenue,
			TimeFrame: f.TimeFrame,
			Label:     window.Label,
			KPI:       utils.CalculateKPI(totalRevenue.InexactFloat64(), previousRevenue.InexactFloat64()),
		},
		GeneratedAt: now,
	}

	// Monthly revenue series for the top markets by revenue.
	topRevenue := TopByRevenue(allStats, topN)
	months := BucketByMonth(nil, window.Start, window.End)
	report.LevyPayments.Months = make([]string, len(months))
	for i, b := range months {
		report.LevyPayments.Months[i] = b.Label
	}
	for i, stats := range topRevenue {
		buckets, err := asm.agg.MonthlyRevenue(stats.MarketID, window.Start, window.End)
		if err != nil {
			return nil, err
		}
		values := make([]decimal.Decimal, len(buckets))
		for j, b := range buckets {
			values[j] = b.Revenue
		}
		report.LevyPayments.MarketData = append(report.LevyPayments.MarketData, MarketSeriesData{
			MarketName: stats.MarketName,
			Color:      utils.PaletteColor(i),
			Values:     values,
		})
	}

	// Compliance donut for the top markets by trader count.
	report.ComplianceRates.Year = window.Start.Year()
	for i, stats := range TopByTraderCount(allStats, topN) {
		report.ComplianceRates.MarketCompliance = append(report.ComplianceRates.MarketCompliance, MarketCompliance{
			MarketName: stats.MarketName,
			Percentage: stats.ComplianceRate,
			Color:      utils.PaletteColor(i),
		})
	}

	// Collection block: top markets by revenue, grand total over all markets.
	report.LevyCollection.Year = window.Start.Year()
	report.LevyCollection.TotalAmount = totalRevenue
	for _, stats := range topRevenue {
		report.LevyCollection.MarketLevy = append(report.LevyCollection.MarketLevy, MarketLevy{
			MarketName: stats.MarketName,
			Amount:     stats.TotalRevenue,
		})
	}

	return report, nil
}
