// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/finaly55/opti-credit/internal/simulation"
)

// FindMonth finds the point for month in the series.
// Returns a pointer to the point if found, nil otherwise.
func FindMonth(points []simulation.DataPoint, month int) *simulation.DataPoint {
	for i := range points {
		if points[i].Month == month {
			return &points[i]
		}
	}
	return nil
}
