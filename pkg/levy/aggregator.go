package levy

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marketpadi/backend/models"
	"github.com/marketpadi/backend/utils"
)

// MarketStats is the per-market compliance and revenue summary for a time
// window.
type MarketStats struct {
	MarketID            uuid.UUID       `json:"marketId"`
	MarketName          string          `json:"marketName"`
	TotalRevenue        decimal.Decimal `json:"totalRevenue"`
	TransactionCount    int             `json:"transactionCount"`
	TotalTraders        int             `json:"totalTraders"`
	CompliantTraders    int             `json:"compliantTraders"`
	NonCompliantTraders int             `json:"nonCompliantTraders"`
	ComplianceRate      float64         `json:"complianceRate"`
}

// MonthBucket is one month of a zero-filled monthly revenue series.
type MonthBucket struct {
	Year    int             `json:"year"`
	Month   time.Month      `json:"month"`
	Label   string          `json:"label"` // e.g. "Jan"
	Revenue decimal.Decimal `json:"revenue"`
}

// MethodRevenue is revenue grouped by payment method.
type MethodRevenue struct {
	Method  models.PaymentMethod `json:"method"`
	Revenue decimal.Decimal      `json:"revenue"`
	Count   int                  `json:"count"`
}

// Aggregator computes compliance and revenue figures from committed payment
// rows. Every aggregate here excludes setup-mirror rows and counts only
// Paid transactions, so configuration rows can never inflate revenue.
type Aggregator struct {
	store Store
}

func NewAggregator(store Store) *Aggregator {
	return &Aggregator{store: store}
}

// qualifying filters a window of rows down to countable collections.
func qualifying(payments []models.LevyPayment) []models.LevyPayment {
	out := payments[:0:0]
	for _, p := range payments {
		if p.IsSetupRecord || p.PaymentStatus != models.StatusPaid {
			continue
		}
		out = append(out, p)
	}
	return out
}

// ComputeMarketStats aggregates a market's revenue and compliance over
// [start, end]. A trader who paid at least once in the window counts as one
// compliant trader no matter how many payments they made. An empty market
// reports a compliance rate of zero rather than dividing by zero.
func (a *Aggregator) ComputeMarketStats(marketID uuid.UUID, start, end time.Time) (*MarketStats, error) {
	market, err := a.store.GetMarket(marketID)
	if err != nil {
		return nil, err
	}

	payments, err := a.store.PaymentsInWindow(marketID, start, end)
	if err != nil {
		return nil, err
	}

	totalTraders, err := a.store.CountTraders(marketID)
	if err != nil {
		return nil, err
	}

	stats := &MarketStats{
		MarketID:     marketID,
		MarketName:   market.Name,
		TotalTraders: int(totalTraders),
		TotalRevenue: decimal.Zero,
	}

	paidBy := make(map[uuid.UUID]struct{})
	for _, p := range qualifying(payments) {
		stats.TotalRevenue = stats.TotalRevenue.Add(p.Amount)
		stats.TransactionCount++
		if p.TraderID != nil {
			paidBy[*p.TraderID] = struct{}{}
		}
	}

	stats.CompliantTraders = len(paidBy)
	stats.NonCompliantTraders = stats.TotalTraders - stats.CompliantTraders
	if stats.NonCompliantTraders < 0 {
		stats.NonCompliantTraders = 0
	}
	if stats.TotalTraders > 0 {
		stats.ComplianceRate = utils.Round1(float64(stats.CompliantTraders) / float64(stats.TotalTraders) * 100)
	}
	return stats, nil
}

// MonthlyRevenue buckets a market's paid revenue by calendar month. Every
// month between start and end inclusive gets a bucket, explicitly zero when
// nothing was collected in it.
func (a *Aggregator) MonthlyRevenue(marketID uuid.UUID, start, end time.Time) ([]MonthBucket, error) {
	payments, err := a.store.PaymentsInWindow(marketID, start, end)
	if err != nil {
		return nil, err
	}
	return BucketByMonth(qualifying(payments), start, end), nil
}

// BucketByMonth zero-fills a monthly series over [start, end] and adds each
// payment's amount to its month.
func BucketByMonth(payments []models.LevyPayment, start, end time.Time) []MonthBucket {
	type ym struct {
		y int
		m time.Month
	}

	var buckets []MonthBucket
	index := make(map[ym]int)
	for cur := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location()); !cur.After(end); cur = cur.AddDate(0, 1, 0) {
		index[ym{cur.Year(), cur.Month()}] = len(buckets)
		buckets = append(buckets, MonthBucket{
			Year:    cur.Year(),
			Month:   cur.Month(),
			Label:   cur.Format("Jan"),
			Revenue: decimal.Zero,
		})
	}

	for _, p := range payments {
		if i, ok := index[ym{p.PaymentDate.Year(), p.PaymentDate.Month()}]; ok {
			buckets[i].Revenue = buckets[i].Revenue.Add(p.Amount)
		}
	}
	return buckets
}

// RevenueByMethod groups a market's paid revenue by payment method, largest
// first.
func (a *Aggregator) RevenueByMethod(marketID uuid.UUID, start, end time.Time) ([]MethodRevenue, error) {
	payments, err := a.store.PaymentsInWindow(marketID, start, end)
	if err != nil {
		return nil, err
	}

	byMethod := make(map[models.PaymentMethod]*MethodRevenue)
	var order []models.PaymentMethod
	for _, p := range qualifying(payments) {
		mr, ok := byMethod[p.PaymentMethod]
		if !ok {
			mr = &MethodRevenue{Method: p.PaymentMethod, Revenue: decimal.Zero}
			byMethod[p.PaymentMethod] = mr
			order = append(order, p.PaymentMethod)
		}
		mr.Revenue = mr.Revenue.Add(p.Amount)
		mr.Count++
	}

	out := make([]MethodRevenue, 0, len(order))
	for _, m := range order {
		out = append(out, *byMethod[m])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Revenue.GreaterThan(out[j].Revenue)
	})
	return out, nil
}

// TopByRevenue returns up to n stats entries ordered by revenue descending.
func TopByRevenue(stats []MarketStats, n int) []MarketStats {
	sorted := make([]MarketStats, len(stats))
	copy(sorted, stats)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalRevenue.GreaterThan(sorted[j].TotalRevenue)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// TopByTraderCount returns up to n stats entries ordered by trader count
// descending.
func TopByTraderCount(stats []MarketStats, n int) []MarketStats {
	sorted := make([]MarketStats, len(stats))
	copy(sorted, stats)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalTraders > sorted[j].TotalTraders
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
