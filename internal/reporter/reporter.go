package reporter

import (
	"context"
	"errors"
	"log"
	"sort"

	"pincheck/internal/models"
	"pincheck/internal/store"
)

// ErrReportLocked marks an output path that cannot be written, typically
// because the workbook is open in another program.
var ErrReportLocked = errors.New("report output is not writable")

const (
	deliveryZoneType      = "Delivery Zone"
	deliveryZoneThreshold = 0.8
)

// Report is the partitioned view of everything in the store. It is fully
// derived: building it twice over an unchanged store yields identical
// partitions.
type Report struct {
	Path string

	AllDetails      []models.PincodeDetail
	DeliveryDetails []models.PincodeDetail

	AllChecks []models.PincodeCheck
	Found     []models.PincodeCheck
	NotFound  []models.PincodeCheck
	Errors    []models.PincodeCheck

	PossibleDeliveryZones []string
}

// Build reads every stored record and partitions it by outcome. The store
// is never written to.
func Build(ctx context.Context, st store.Store) (*Report, error) {
	details, err := st.Details(ctx)
	if err != nil {
		return nil, err
	}
	checks, err := st.Checks(ctx)
	if err != nil {
		return nil, err
	}

	rep := &Report{}

	rep.AllDetails = append(rep.AllDetails, details...)
	sort.SliceStable(rep.AllDetails, func(i, j int) bool {
		return rep.AllDetails[i].Pincode < rep.AllDetails[j].Pincode
	})

	for _, d := range rep.AllDetails {
		if d.ZoneType == deliveryZoneType {
			rep.DeliveryDetails = append(rep.DeliveryDetails, d)
		}
	}

	rep.AllChecks = models.LatestChecks(checks)
	for _, check := range rep.AllChecks {
		switch check.Status {
		case models.StatusFound:
			rep.Found = append(rep.Found, check)
		case models.StatusNotFound:
			rep.NotFound = append(rep.NotFound, check)
		case models.StatusError:
			rep.Errors = append(rep.Errors, check)
		}
	}

	rep.PossibleDeliveryZones = possibleDeliveryZones(details)

	return rep, nil
}

// Run builds the report and renders the workbook at outPath.
func Run(ctx context.Context, st store.Store, outPath string) (*Report, error) {
	rep, err := Build(ctx, st)
	if err != nil {
		return nil, err
	}

	if err := writeWorkbook(rep, outPath); err != nil {
		return nil, err
	}
	rep.Path = outPath

	log.Printf("Report written to %s", outPath)
	log.Printf("Detail rows: %d, found: %d, not found: %d, errors: %d, possible delivery zones: %d",
		len(rep.AllDetails), len(rep.Found), len(rep.NotFound), len(rep.Errors), len(rep.PossibleDeliveryZones))

	return rep, nil
}

// possibleDeliveryZones lists the pincodes whose rows are at least 80%
// "Delivery Zone", sorted for stable output.
func possibleDeliveryZones(details []models.PincodeDetail) []string {
	total := map[string]int{}
	delivery := map[string]int{}
	for _, d := range details {
		total[d.Pincode]++
		if d.ZoneType == deliveryZoneType {
			delivery[d.Pincode]++
		}
	}

	var codes []string
	for code, n := range total {
		if float64(delivery[code])/float64(n) >= deliveryZoneThreshold {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	return codes
}
