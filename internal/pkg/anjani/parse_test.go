package anjani_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"pincheck/internal/pkg/anjani"
)

const reportWithTwoBranches = `<html><body>
<table id="ReportTbl">
  <tr></tr>
  <tr><td>KILLA PARDI, VALSAD</td><td>Contact To:</td><td>9900112233</td></tr>
  <tr><td></td><td>1</td><td>PARDI</td><td>Delivery Zone</td><td></td><td>Regular</td><td>1</td></tr>
  <tr><td></td><td>2</td><td>KILLA PARDI</td><td>Delivery Zone</td><td></td><td>Regular</td><td>1</td></tr>
  <tr><td>VAPI</td><td>Contact To:</td><td>9900445566</td></tr>
  <tr><td></td><td>3</td><td>VAPI GIDC</td><td>Out of Zone</td><td></td><td>On Demand</td><td>3</td></tr>
  <tr><td></td><td>note</td><td>not a data row</td><td></td><td></td><td></td><td></td></tr>
</table>
</body></html>`

const reportWithEmptyTable = `<html><body>
<table id="ReportTbl">
  <tr><td colspan="7">No record found for this pincode</td></tr>
</table>
</body></html>`

const pageWithoutTable = `<html><body><h1>Anjani Courier</h1><p>Welcome</p></body></html>`

var _ = Describe("ParseReport", func() {
	It("extracts data rows under their branch headers", func() {
		details, err := anjani.ParseReport("396125", []byte(reportWithTwoBranches))
		Expect(err).NotTo(HaveOccurred())
		Expect(details).To(HaveLen(3))

		Expect(details[0].Pincode).To(Equal("396125"))
		Expect(details[0].BranchName).To(Equal("KILLA PARDI, VALSAD"))
		Expect(details[0].AreaName).To(Equal("PARDI"))
		Expect(details[0].ZoneType).To(Equal("Delivery Zone"))
		Expect(details[0].DeliveryType).To(Equal("Regular"))
		Expect(details[0].TransitDays).To(Equal("1"))
		Expect(details[0].InsertedAt).NotTo(BeZero())

		Expect(details[1].BranchName).To(Equal("KILLA PARDI, VALSAD"))
		Expect(details[1].AreaName).To(Equal("KILLA PARDI"))

		Expect(details[2].BranchName).To(Equal("VAPI"))
		Expect(details[2].AreaName).To(Equal("VAPI GIDC"))
		Expect(details[2].ZoneType).To(Equal("Out of Zone"))
		Expect(details[2].DeliveryType).To(Equal("On Demand"))
		Expect(details[2].TransitDays).To(Equal("3"))
	})

	It("exposes the parsed columns as a field mapping", func() {
		details, err := anjani.ParseReport("396125", []byte(reportWithTwoBranches))
		Expect(err).NotTo(HaveOccurred())

		Expect(details[0].Fields()).To(Equal(map[string]string{
			"branch_name":   "KILLA PARDI, VALSAD",
			"area_name":     "PARDI",
			"zone_type":     "Delivery Zone",
			"delivery_type": "Regular",
			"transit_days":  "1",
		}))
	})

	It("returns no rows for a table without data rows", func() {
		details, err := anjani.ParseReport("999999", []byte(reportWithEmptyTable))
		Expect(err).NotTo(HaveOccurred())
		Expect(details).To(BeEmpty())
	})

	It("flags a page without the report table", func() {
		_, err := anjani.ParseReport("999999", []byte(pageWithoutTable))
		Expect(err).To(MatchError(anjani.ErrNoReportTable))
	})
})
