package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/mentron-app/mentron-api/internal/authz"
	"github.com/mentron-app/mentron-api/internal/models"
	appErrors "github.com/mentron-app/mentron-api/pkg/errors"
	"github.com/mentron-app/mentron-api/pkg/export"
)

type overviewProvider interface {
	Overview(ctx context.Context, actor models.Actor) (*models.AnalyticsOverview, bool, error)
}

// ExportService renders the weekly analytics overview as a downloadable
// document.
type ExportService struct {
	analytics overviewProvider
	pdf       *export.PDFExporter
	csv       *export.CSVExporter
	logger    *zap.Logger
	now       func() time.Time
}

// NewExportService constructs the service.
func NewExportService(analytics overviewProvider, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		analytics: analytics,
		pdf:       export.NewPDFExporter(),
		csv:       export.NewCSVExporter(),
		logger:    logger,
		now:       time.Now,
	}
}

// ExportFile carries the rendered document and its download metadata.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// WeeklyReport renders the rolling 7-day analytics as PDF or CSV. Format
// defaults to PDF when empty.
func (s *ExportService) WeeklyReport(ctx context.Context, actor models.Actor, format string) (*ExportFile, error) {
	decision := authz.Authorize(actor, authz.ActionExport, authz.ResourceRef{})
	if !decision.Allowed {
		return nil, appErrors.Clone(appErrors.ErrForbidden, decision.Reason)
	}

	overview, _, err := s.analytics.Overview(ctx, actor)
	if err != nil {
		return nil, err
	}

	dataset := weeklyDataset(s.now(), overview)
	stamp := s.now().Format("2006-01-02")

	switch format {
	case "", "pdf":
		body, err := s.pdf.Render(dataset, "Weekly Activity Report")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf report")
		}
		return &ExportFile{
			Filename:    fmt.Sprintf("weekly-report-%s.pdf", stamp),
			ContentType: "application/pdf",
			Body:        body,
		}, nil
	case "csv":
		body, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv report")
		}
		return &ExportFile{
			Filename:    fmt.Sprintf("weekly-report-%s.csv", stamp),
			ContentType: "text/csv",
			Body:        body,
		}, nil
	}
	return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
}

// weeklyDataset flattens the overview into one row per day plus a totals row.
func weeklyDataset(now time.Time, overview *models.AnalyticsOverview) export.Dataset {
	headers := []string{"Day", "Signups", "Materials", "Notifications", "Material Views"}
	rows := make([]map[string]string, 0, 8)

	today := midnight(now)
	for i := 0; i < 7; i++ {
		day := today.AddDate(0, 0, i-6)
		rows = append(rows, map[string]string{
			"Day":            day.Format("Mon Jan 02"),
			"Signups":        strconv.Itoa(overview.Signups.Daily[i]),
			"Materials":      strconv.Itoa(overview.Materials.Daily[i]),
			"Notifications":  strconv.Itoa(overview.Notifications.Daily[i]),
			"Material Views": strconv.Itoa(overview.MaterialViews[i]),
		})
	}
	rows = append(rows, map[string]string{
		"Day":            "Total",
		"Signups":        fmt.Sprintf("%d (%s)", overview.Signups.WeekTotal, overview.Signups.Growth),
		"Materials":      fmt.Sprintf("%d (%s)", overview.Materials.WeekTotal, overview.Materials.Growth),
		"Notifications":  fmt.Sprintf("%d (%s)", overview.Notifications.WeekTotal, overview.Notifications.Growth),
		"Material Views": strconv.Itoa(overview.MaterialViews.Total()),
	})

	return export.Dataset{Headers: headers, Rows: rows}
}
