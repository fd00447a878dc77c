package collector

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"pincheck/internal/models"
	"pincheck/internal/pkg/anjani"
	"pincheck/internal/store"
)

const (
	DefaultBatchSize = 20
	DefaultPause     = 20 * time.Second
)

// Summary reports what a collection run did.
type Summary struct {
	Processed int
	Found     int
	NotFound  int
	Errors    int
	Skipped   int
}

// Collector walks a pincode list sequentially, fetching each code once and
// appending the outcome to the store. After every BatchSize requests it
// pauses to stay gentle on the courier's site.
type Collector struct {
	client    *anjani.Client
	store     store.Store
	batchSize int
	pause     time.Duration
	sleep     func(time.Duration)
}

type Option func(*Collector)

func WithBatchSize(n int) Option {
	return func(c *Collector) {
		if n > 0 {
			c.batchSize = n
		}
	}
}

func WithPause(d time.Duration) Option {
	return func(c *Collector) {
		c.pause = d
	}
}

// WithSleeper replaces the pause function, so tests can observe pauses
// instead of waiting them out.
func WithSleeper(sleep func(time.Duration)) Option {
	return func(c *Collector) {
		c.sleep = sleep
	}
}

func New(client *anjani.Client, st store.Store, opts ...Option) *Collector {
	c := &Collector{
		client:    client,
		store:     st,
		batchSize: DefaultBatchSize,
		pause:     DefaultPause,
		sleep:     time.Sleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run processes codes in input order. Per-code network and parse failures
// become Error-status checks and never abort the run; only store failures
// do. Codes with a prior Found check are skipped.
func (c *Collector) Run(ctx context.Context, codes []string) (Summary, error) {
	var sum Summary
	requests := 0

	for i, code := range codes {
		log.Printf("Processing pincode %d/%d: %s", i+1, len(codes), code)

		done, err := c.store.HasSuccess(ctx, code)
		if err != nil {
			return sum, err
		}
		if done {
			log.Printf("Pincode %s already processed successfully, skipping", code)
			sum.Skipped++
			continue
		}

		details, fetchErr := c.client.FetchPincode(ctx, code)
		check := buildCheck(code, details, fetchErr)

		if check.Status == models.StatusFound {
			if err := c.store.AppendDetails(ctx, details); err != nil {
				return sum, err
			}
		}
		if err := c.store.AppendCheck(ctx, check); err != nil {
			return sum, err
		}

		sum.Processed++
		switch check.Status {
		case models.StatusFound:
			sum.Found++
		case models.StatusNotFound:
			sum.NotFound++
		case models.StatusError:
			log.Printf("Pincode %s failed: %s", code, check.Reason)
			sum.Errors++
		}

		requests++
		if requests%c.batchSize == 0 && i < len(codes)-1 {
			log.Printf("Processed %d requests, pausing for %s (%d pincodes remaining)",
				requests, c.pause, len(codes)-i-1)
			c.sleep(c.pause)
		}
	}

	return sum, nil
}

// buildCheck turns a fetch result into exactly one of the three outcomes.
// A missing report table counts as NotFound, matching how the courier
// renders unknown pincodes.
func buildCheck(code string, details []models.PincodeDetail, fetchErr error) models.PincodeCheck {
	check := models.PincodeCheck{
		Pincode:   code,
		CheckedAt: time.Now(),
	}

	switch {
	case fetchErr != nil && !errors.Is(fetchErr, anjani.ErrNoReportTable):
		check.Status = models.StatusError
		check.Reason = fetchErr.Error()
	case fetchErr != nil || len(details) == 0:
		check.Status = models.StatusNotFound
		check.Reason = "no records found"
	default:
		check.Status = models.StatusFound
		check.DeliveryZone = dominantZone(details)
		if fields, err := json.Marshal(details[0].Fields()); err == nil {
			check.RawFields = fields
		}
	}

	return check
}

// dominantZone picks the most frequent zone type across the parsed rows.
func dominantZone(details []models.PincodeDetail) string {
	counts := make(map[string]int, len(details))
	best := ""
	for _, d := range details {
		counts[d.ZoneType]++
		if best == "" || counts[d.ZoneType] > counts[best] {
			best = d.ZoneType
		}
	}
	return best
}
