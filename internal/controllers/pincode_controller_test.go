package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"pincheck/internal/config"
	"pincheck/internal/models"
	"pincheck/internal/routes"
	"pincheck/internal/store"
	"pincheck/internal/testhelpers"
)

var _ = Describe("PincodeController", func() {
	var (
		fs     *store.FileStore
		router *gin.Engine
		ctx    context.Context
	)

	base := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

	doRequest := func(path string) *httptest.ResponseRecorder {
		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		router.ServeHTTP(recorder, req)
		return recorder
	}

	BeforeEach(func() {
		ctx = context.Background()
		fs = testhelpers.NewTempFileStore()
		router = routes.SetupRouter(fs, &config.Config{})

		Expect(fs.AppendCheck(ctx, models.PincodeCheck{Pincode: "110001", Status: models.StatusFound, DeliveryZone: "Delivery Zone", CheckedAt: base})).To(Succeed())
		Expect(fs.AppendCheck(ctx, models.PincodeCheck{Pincode: "999999", Status: models.StatusNotFound, Reason: "no records found", CheckedAt: base.Add(time.Minute)})).To(Succeed())
		Expect(fs.AppendDetails(ctx, []models.PincodeDetail{
			{Pincode: "110001", BranchName: "DELHI", AreaName: "CONNAUGHT PLACE", ZoneType: "Delivery Zone", DeliveryType: "Regular", TransitDays: "1", InsertedAt: base},
			{Pincode: "110001", BranchName: "DELHI", AreaName: "JANPATH", ZoneType: "Delivery Zone", DeliveryType: "Regular", TransitDays: "1", InsertedAt: base},
		})).To(Succeed())
	})

	Describe("GET /health", func() {
		It("returns UP", func() {
			recorder := doRequest("/health")
			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Body.String()).To(ContainSubstring("UP"))
		})
	})

	Describe("GET /api/v1/pincodes/", func() {
		It("returns the latest check per pincode", func() {
			recorder := doRequest("/api/v1/pincodes/")
			Expect(recorder.Code).To(Equal(http.StatusOK))

			var response struct {
				Pincodes []models.PincodeCheck `json:"pincodes"`
			}
			Expect(json.Unmarshal(recorder.Body.Bytes(), &response)).To(Succeed())
			Expect(response.Pincodes).To(HaveLen(2))
		})

		It("collapses repeated checks into the newest one", func() {
			Expect(fs.AppendCheck(ctx, models.PincodeCheck{
				Pincode: "110001", Status: models.StatusNotFound, Reason: "no records found",
				CheckedAt: base.Add(time.Hour),
			})).To(Succeed())

			recorder := doRequest("/api/v1/pincodes/")
			Expect(recorder.Code).To(Equal(http.StatusOK))

			var response struct {
				Pincodes []models.PincodeCheck `json:"pincodes"`
			}
			Expect(json.Unmarshal(recorder.Body.Bytes(), &response)).To(Succeed())
			Expect(response.Pincodes).To(HaveLen(2))

			for _, check := range response.Pincodes {
				if check.Pincode == "110001" {
					Expect(check.Status).To(Equal(models.StatusNotFound))
				}
			}
		})

		It("honors the limit parameter", func() {
			recorder := doRequest("/api/v1/pincodes/?limit=1")
			Expect(recorder.Code).To(Equal(http.StatusOK))

			var response struct {
				Pincodes []models.PincodeCheck `json:"pincodes"`
			}
			Expect(json.Unmarshal(recorder.Body.Bytes(), &response)).To(Succeed())
			Expect(response.Pincodes).To(HaveLen(1))
		})

		It("falls back to the default for a negative limit", func() {
			recorder := doRequest("/api/v1/pincodes/?limit=-1")
			Expect(recorder.Code).To(Equal(http.StatusOK))

			var response struct {
				Pincodes []models.PincodeCheck `json:"pincodes"`
			}
			Expect(json.Unmarshal(recorder.Body.Bytes(), &response)).To(Succeed())
			Expect(response.Pincodes).To(HaveLen(2))
		})

		It("falls back to the default for a non-numeric limit", func() {
			recorder := doRequest("/api/v1/pincodes/?limit=lots")
			Expect(recorder.Code).To(Equal(http.StatusOK))

			var response struct {
				Pincodes []models.PincodeCheck `json:"pincodes"`
			}
			Expect(json.Unmarshal(recorder.Body.Bytes(), &response)).To(Succeed())
			Expect(response.Pincodes).To(HaveLen(2))
		})
	})

	Describe("GET /api/v1/pincodes/:code", func() {
		It("returns the check and its detail rows", func() {
			recorder := doRequest("/api/v1/pincodes/110001")
			Expect(recorder.Code).To(Equal(http.StatusOK))

			var response struct {
				Check   models.PincodeCheck    `json:"check"`
				Details []models.PincodeDetail `json:"details"`
			}
			Expect(json.Unmarshal(recorder.Body.Bytes(), &response)).To(Succeed())
			Expect(response.Check.Status).To(Equal(models.StatusFound))
			Expect(response.Details).To(HaveLen(2))
			Expect(response.Details[0].BranchName).To(Equal("DELHI"))
		})

		It("returns 404 for an unknown code", func() {
			recorder := doRequest("/api/v1/pincodes/123456")
			Expect(recorder.Code).To(Equal(http.StatusNotFound))
			Expect(recorder.Body.String()).To(ContainSubstring("Pincode not found"))
		})
	})

	Describe("GET /api/v1/summary", func() {
		It("counts latest checks by status", func() {
			recorder := doRequest("/api/v1/summary")
			Expect(recorder.Code).To(Equal(http.StatusOK))

			var response struct {
				Found    int `json:"found"`
				NotFound int `json:"not_found"`
				Error    int `json:"error"`
			}
			Expect(json.Unmarshal(recorder.Body.Bytes(), &response)).To(Succeed())
			Expect(response.Found).To(Equal(1))
			Expect(response.NotFound).To(Equal(1))
			Expect(response.Error).To(BeZero())
		})
	})
})
