package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/marketpadi/backend/config"
	"github.com/marketpadi/backend/middleware"
	"github.com/marketpadi/backend/pkg/levy"
	"github.com/marketpadi/backend/utils"
)

func levyAssembler() *levy.Assembler {
	store := levy.NewStore(config.DB)
	return levy.NewAssembler(store, levy.NewAggregator(store))
}

// dashboardFilterFromRequest reads the shared dashboard/report query params.
func dashboardFilterFromRequest(r *http.Request) (levy.DashboardFilter, error) {
	f := levy.DashboardFilter{
		LGAName:    r.URL.Query().Get("lga"),
		MarketName: r.URL.Query().Get("market"),
		TimeFrame:  levy.TimeFrame(r.URL.Query().Get("timeFrame")),
		Timezone:   config.Timezone(),
		Scope:      middleware.GetScope(r),
	}
	if f.TimeFrame == "" {
		f.TimeFrame = levy.TimeFrameThisYear
	}
	if y := r.URL.Query().Get("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			return f, err
		}
		f.Year = &year
	}
	if f.TimeFrame == levy.TimeFrameCustom {
		start, err := time.Parse("2006-01-02", r.URL.Query().Get("from"))
		if err != nil {
			return f, err
		}
		end, err := time.Parse("2006-01-02", r.URL.Query().Get("to"))
		if err != nil {
			return f, err
		}
		f.CustomStart = start
		f.CustomEnd = end.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return f, nil
}

// GetDashboard assembles the admin dashboard for the caller's scope.
func GetDashboard(w http.ResponseWriter, r *http.Request) {
	filter, err := dashboardFilterFromRequest(r)
	if err != nil {
		http.Error(w, "invalid dashboard filters", http.StatusBadRequest)
		return
	}
	report, err := levyAssembler().BuildDashboard(filter)
	if err != nil {
		writeLevyError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// GetMarketStats computes the compliance/revenue summary for one market
// over the requested window.
func GetMarketStats(w http.ResponseWriter, r *http.Request) {
	marketID, ok := pathID(w, r)
	if !ok {
		return
	}
	filter, err := dashboardFilterFromRequest(r)
	if err != nil {
		http.Error(w, "invalid filters", http.StatusBadRequest)
		return
	}

	loc := utils.LoadLocation(filter.Timezone)
	var window levy.DateRange
	if filter.Year != nil {
		window = levy.YearRange(*filter.Year, loc)
	} else {
		window = levy.ResolveRange(filter.TimeFrame, time.Now().In(loc), filter.CustomStart, filter.CustomEnd)
	}

	store := levy.NewStore(config.DB)
	stats, err := levy.NewAggregator(store).ComputeMarketStats(marketID, window.Start, window.End)
	if err != nil {
		writeLevyError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
