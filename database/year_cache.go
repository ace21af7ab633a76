package database

import (
	"context"
	"fmt"
	"sync"

	"github.com/icodeforyou/fasce-go/types"
)

type yearData struct {
	prices []types.TimePoint
	energy []types.TimePoint
}

/** A memoized per-year view of the reference price and meter energy
datasets. Closed years never change, so entries live until a refresh
task explicitly invalidates the year it rewrote. */
type YearCache struct {
	mu    sync.RWMutex
	db    *Database
	years map[int]yearData
}

func NewYearCache(db *Database) *YearCache {
	return &YearCache{
		db:    db,
		years: make(map[int]yearData),
	}
}

// Prices returns the hourly reference price series (EUR/MWh) for a year,
// loading it from the database on first use.
func (c *YearCache) Prices(ctx context.Context, year int) ([]types.TimePoint, error) {
	data, err := c.load(ctx, year)
	if err != nil {
		return nil, err
	}
	return data.prices, nil
}

// Energy returns the hourly metered consumption series (kWh) for a year.
func (c *YearCache) Energy(ctx context.Context, year int) ([]types.TimePoint, error) {
	data, err := c.load(ctx, year)
	if err != nil {
		return nil, err
	}
	return data.energy, nil
}

// Invalidate drops a year from the cache after its stored dataset
// changed.
func (c *YearCache) Invalidate(year int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.years, year)
}

func (c *YearCache) load(ctx context.Context, year int) (yearData, error) {
	c.mu.RLock()
	data, ok := c.years[year]
	c.mu.RUnlock()
	if ok {
		return data, nil
	}

	priceRows, err := c.db.GetReferencePricesForYear(ctx, year)
	if err != nil {
		return yearData{}, fmt.Errorf("loading reference prices for %d: %w", year, err)
	}

	energyRows, err := c.db.GetMeterEnergyForYear(ctx, year)
	if err != nil {
		return yearData{}, fmt.Errorf("loading meter energy for %d: %w", year, err)
	}

	data = yearData{
		prices: make([]types.TimePoint, 0, len(priceRows)),
		energy: make([]types.TimePoint, 0, len(energyRows)),
	}
	for _, r := range priceRows {
		data.prices = append(data.prices, r.TimePoint())
	}
	for _, r := range energyRows {
		data.energy = append(data.energy, r.TimePoint())
	}

	c.mu.Lock()
	c.years[year] = data
	c.mu.Unlock()

	return data, nil
}
