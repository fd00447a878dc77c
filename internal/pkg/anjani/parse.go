package anjani

import (
	"bytes"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"pincheck/internal/models"
)

const unknownBranch = "Unknown"

// ParseReport extracts detail rows from the Rpt_PinCodeShow markup.
//
// The report table interleaves two row shapes: branch header rows, whose
// second cell reads "Contact To:", and data rows with exactly seven cells
// where the second cell is a serial number. Data rows belong to the most
// recent branch header above them.
func ParseReport(code string, body []byte) ([]models.PincodeDetail, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	table := doc.Find("table#ReportTbl")
	if table.Length() == 0 {
		return nil, ErrNoReportTable
	}

	now := time.Now()
	branch := unknownBranch
	var details []models.PincodeDetail

	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := cellTexts(row)
		if len(cells) == 0 {
			// spacer row
			return
		}

		if len(cells) >= 2 && strings.Contains(cells[1], "Contact To:") {
			if cells[0] != "" {
				branch = cells[0]
			}
			return
		}

		if len(cells) == 7 && isSerial(cells[1]) {
			details = append(details, models.PincodeDetail{
				Pincode:      code,
				BranchName:   branch,
				AreaName:     cells[2],
				ZoneType:     cells[3],
				DeliveryType: cells[5],
				TransitDays:  cells[6],
				InsertedAt:   now,
			})
		}
	})

	return details, nil
}

// cellTexts collects the trimmed text of each td in a row, falling back to
// direct text nodes for cells whose content hides behind non-text children.
func cellTexts(row *goquery.Selection) []string {
	var cells []string
	row.Children().Each(func(_ int, s *goquery.Selection) {
		if !strings.EqualFold(goquery.NodeName(s), "td") {
			return
		}

		text := strings.TrimSpace(s.Text())
		if text == "" {
			for _, node := range s.Nodes {
				for child := node.FirstChild; child != nil; child = child.NextSibling {
					if child.Type == html.TextNode {
						text += strings.TrimSpace(child.Data)
					}
				}
			}
		}
		cells = append(cells, text)
	})
	return cells
}

func isSerial(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
