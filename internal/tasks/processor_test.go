package tasks_test

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/hibiken/asynq"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"

	"pincheck/internal/config"
	"pincheck/internal/models"
	"pincheck/internal/store"
	"pincheck/internal/tasks"
	"pincheck/internal/testhelpers"
)

const foundReport = `<html><body>
<table id="ReportTbl">
  <tr><td>VAPI</td><td>Contact To:</td><td>9900445566</td></tr>
  <tr><td></td><td>1</td><td>VAPI GIDC</td><td>Delivery Zone</td><td></td><td>Regular</td><td>1</td></tr>
</table>
</body></html>`

var _ = Describe("TaskProcessor", func() {
	var (
		fs        *store.FileStore
		processor *tasks.TaskProcessor
		cfg       *config.Config
		ctx       context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		fs = testhelpers.NewTempFileStore()
		cfg = &config.Config{
			CourierBaseURL:   "http://courier.test",
			CourierUser:      "ADR25",
			CourierPassword:  "ADR25",
			CollectBatchSize: 20,
			CollectPause:     0,
			ReportPath:       filepath.Join(GinkgoT().TempDir(), "report.xlsx"),
		}
		processor = tasks.NewTaskProcessor(fs, cfg)
		processor.GetCourierClient().UseDefaultClient()
		testhelpers.Activate()
	})

	AfterEach(func() {
		testhelpers.Deactivate()
	})

	writeInput := func(lines string) string {
		path := filepath.Join(GinkgoT().TempDir(), "pincodes.csv")
		Expect(os.WriteFile(path, []byte(lines), 0o644)).To(Succeed())
		return path
	}

	Describe("HandleCollectPincodesTask", func() {
		It("collects every code from the input file", func() {
			testhelpers.New("http://courier.test").
				Get("/Rpt_PinCodeShow.aspx?EC=2&PC=396125").
				Reply(200).BodyString(foundReport)

			inputPath := writeInput("PINCODE\n396125\n")
			task, err := tasks.NewCollectPincodesTask(inputPath)
			Expect(err).NotTo(HaveOccurred())

			Expect(processor.HandleCollectPincodesTask(ctx, task)).To(Succeed())
			Expect(testhelpers.IsDone()).To(BeTrue())

			checks, err := fs.Checks(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(checks).To(HaveLen(1))
			Expect(checks[0].Pincode).To(Equal("396125"))
			Expect(checks[0].Status).To(Equal(models.StatusFound))
		})

		It("skips retries on a malformed payload", func() {
			task := asynq.NewTask(tasks.TypeTaskCollectPincodes, []byte("not json"))

			err := processor.HandleCollectPincodesTask(ctx, task)
			Expect(err).To(MatchError(asynq.SkipRetry))
		})

		It("does not fail the task when the input file is missing", func() {
			task, err := tasks.NewCollectPincodesTask(filepath.Join(GinkgoT().TempDir(), "nope.csv"))
			Expect(err).NotTo(HaveOccurred())

			Expect(processor.HandleCollectPincodesTask(ctx, task)).To(Succeed())

			checks, err := fs.Checks(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(checks).To(BeEmpty())
		})
	})

	Describe("HandleExportReportTask", func() {
		It("writes the workbook to the configured path", func() {
			Expect(fs.AppendCheck(ctx, models.PincodeCheck{
				Pincode: "110001", Status: models.StatusFound, CheckedAt: time.Now(),
			})).To(Succeed())

			task, err := tasks.NewExportReportTask("")
			Expect(err).NotTo(HaveOccurred())

			Expect(processor.HandleExportReportTask(ctx, task)).To(Succeed())

			f, err := excelize.OpenFile(cfg.ReportPath)
			Expect(err).NotTo(HaveOccurred())
			defer f.Close()

			rows, err := f.GetRows("Found Pincode")
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(2))
			Expect(rows[1]).To(Equal([]string{"110001"}))
		})

		It("skips retries on a malformed payload", func() {
			task := asynq.NewTask(tasks.TypeTaskExportReport, []byte("not json"))

			err := processor.HandleExportReportTask(ctx, task)
			Expect(err).To(MatchError(asynq.SkipRetry))
		})
	})
})
