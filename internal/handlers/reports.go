package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/ashmitsharp/treasury-api/internal/data"
	"github.com/ashmitsharp/treasury-api/internal/logger"
	"github.com/ashmitsharp/treasury-api/internal/services"
	"github.com/ashmitsharp/treasury-api/internal/utils"
)

// DefaultReportURLExpiry is used when no expiry is configured
const DefaultReportURLExpiry = 15 * time.Minute

// ReportStorage defines the S3 operations needed to publish reports
type ReportStorage interface {
	GenerateReportKey(reportType string, now time.Time) (string, error)
	UploadFile(ctx context.Context, key, contentType string, body []byte) error
	GeneratePresignedDownloadURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// ReportHandler handles report generation requests
type ReportHandler struct {
	provider  data.Provider
	storage   ReportStorage
	urlExpiry time.Duration
	now       func() time.Time
}

// NewReportHandler creates a report handler. A nil storage streams the
// workbook in the response body instead of uploading it.
func NewReportHandler(provider data.Provider, storage ReportStorage, urlExpiry time.Duration) *ReportHandler {
	if urlExpiry <= 0 {
		urlExpiry = DefaultReportURLExpiry
	}
	return &ReportHandler{
		provider:  provider,
		storage:   storage,
		urlExpiry: urlExpiry,
		now:       time.Now,
	}
}

// ListReports returns the reports that can be generated
// GET /api/reports
func (h *ReportHandler) ListReports(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"reports": services.AvailableReports,
	})
}

// GetReport generates a report workbook
// GET /api/reports/:type
// Returns: url, key, expires_in when storage is configured; the xlsx file otherwise
func (h *ReportHandler) GetReport(c fiber.Ctx) error {
	ctx := c.Context()
	log := logger.FromContext(ctx)

	// 1. Validate report type
	reportType := services.ReportType(c.Params("type"))
	if !isKnownReport(reportType) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": fmt.Sprintf("unknown report type: %s", reportType),
		})
	}

	// 2. Load dashboard data
	snap, err := loadSnapshot(ctx, h.provider)
	if err != nil {
		return err
	}

	// 3. Build workbook
	body, err := services.BuildReport(reportType, snap)
	if err != nil {
		if errors.Is(err, services.ErrUnknownReport) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		if errors.Is(err, services.ErrMalformedWaterfall) {
			return utils.NewUnprocessableError("Waterfall data is malformed", err.Error())
		}
		log.Error().Err(err).Str("report", string(reportType)).Msg("failed to build report")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to build report",
		})
	}

	// 4. Stream directly when S3 is not configured
	if h.storage == nil {
		c.Attachment(fmt.Sprintf("%s-%s.xlsx", reportType, h.now().Format("2006-01-02")))
		c.Set(fiber.HeaderContentType, services.XLSXContentType)
		return c.Send(body)
	}

	// 5. Upload and presign
	key, err := h.storage.GenerateReportKey(string(reportType), h.now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "failed to generate report key",
			"details": err.Error(),
		})
	}

	if err := h.storage.UploadFile(ctx, key, services.XLSXContentType, body); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to upload report")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to upload report",
		})
	}

	url, err := h.storage.GeneratePresignedDownloadURL(ctx, key, h.urlExpiry)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to presign report")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to generate download URL",
		})
	}

	log.Info().Str("report", string(reportType)).Str("key", key).Msg("report published")

	return c.JSON(fiber.Map{
		"url":        url,
		"key":        key,
		"expires_in": int(h.urlExpiry.Seconds()),
	})
}

func isKnownReport(reportType services.ReportType) bool {
	for _, r := range services.AvailableReports {
		if r.Type == reportType {
			return true
		}
	}
	return false
}
