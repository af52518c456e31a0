// Package stats produces the placeholder dashboard figures. The charts
// are intentionally fake sample data shown to signed-out visitors; there
// is no analytics pipeline behind them.
package stats

import (
	"math/rand"
	"time"
)

// ChartPoint is one day of dashboard figures.
type ChartPoint struct {
	PagesRead        int    `json:"Pages read"`
	StartDate        string `json:"startDate"`
	LongestStreak    int    `json:"Longest streak"`
	TimeSpentReading int    `json:"Time spent reading"`
}

// GenerateChartData returns numEntries days of random sample figures,
// oldest first, walking back from today.
func GenerateChartData(numEntries int) []ChartPoint {
	points := make([]ChartPoint, 0, numEntries)
	start := time.Now()

	for i := 0; i < numEntries; i++ {
		day := start.AddDate(0, 0, -i)
		points = append(points, ChartPoint{
			PagesRead:        rand.Intn(100) + 1,
			StartDate:        day.Format("2 Jan 2006"),
			LongestStreak:    rand.Intn(50) + 1,
			TimeSpentReading: rand.Intn(200) + 1,
		})
	}

	// Oldest entry first for charting.
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
	return points
}

// TotalPages sums the pages-read figure across points.
func TotalPages(points []ChartPoint) int {
	total := 0
	for _, p := range points {
		total += p.PagesRead
	}
	return total
}

// MaxStreak returns the largest streak figure across points.
func MaxStreak(points []ChartPoint) int {
	best := 0
	for _, p := range points {
		if p.LongestStreak > best {
			best = p.LongestStreak
		}
	}
	return best
}

// TotalMinutes sums the reading-time figure across points.
func TotalMinutes(points []ChartPoint) int {
	total := 0
	for _, p := range points {
		total += p.TimeSpentReading
	}
	return total
}
