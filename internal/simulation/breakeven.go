package simulation

import (
	"github.com/finaly55/opti-credit/pkg/constants"
)

// FindWealthBreakEven returns the first month at which the owner's net
// wealth reaches the tenant's, or nil if buying never catches up.
func FindWealthBreakEven(monthly []DataPoint) *DataPoint {
	return findFirst(monthly, func(p DataPoint) bool {
		return p.OwnerWealth >= p.TenantWealth
	})
}

// FindMonthlyCostBreakEven returns the first month at which the owner's
// average monthly cost drops to the tenant's, or nil if it never does.
func FindMonthlyCostBreakEven(monthly []DataPoint) *DataPoint {
	return findFirst(monthly, func(p DataPoint) bool {
		return p.MonthlyCostOwner <= p.MonthlyCostTenant
	})
}

func findFirst(monthly []DataPoint, match func(DataPoint) bool) *DataPoint {
	for i := range monthly {
		if monthly[i].Month > 0 && match(monthly[i]) {
			point := monthly[i]
			return &point
		}
	}
	return nil
}

// PointAtYear returns the monthly point closing the given year, or the last
// point when the year lies outside the projection.
func PointAtYear(result Result, year int) DataPoint {
	if len(result.MonthlyData) == 0 {
		return DataPoint{}
	}
	index := year*constants.MonthsPerYear - 1
	if index < 0 || index >= len(result.MonthlyData) {
		return result.MonthlyData[len(result.MonthlyData)-1]
	}
	return result.MonthlyData[index]
}
