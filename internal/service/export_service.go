package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	appErrors "github.com/cwdb/course-ratings-api/pkg/errors"
	"github.com/cwdb/course-ratings-api/pkg/export"
)

// ExportFormat names a supported report format.
type ExportFormat string

const (
	FormatCSV ExportFormat = "csv"
	FormatPDF ExportFormat = "pdf"
)

// ExportResult carries rendered report bytes and response metadata.
type ExportResult struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportService renders the professor overall-ratings table as a document.
type ExportService struct {
	ratings *RatingService
	logger  *zap.Logger
}

// NewExportService creates a service instance.
func NewExportService(ratings *RatingService, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{ratings: ratings, logger: logger}
}

// RatingsReport builds the overall ratings report in the requested format.
func (s *ExportService) RatingsReport(ctx context.Context, format ExportFormat) (*ExportResult, error) {
	ratings, err := s.ratings.ListProfessorOverallRatings(ctx)
	if err != nil {
		return nil, err
	}

	table := export.Table{
		Headers: []string{"Professor ID", "Professor Name", "Rating"},
		Rows:    make([][]string, 0, len(ratings)),
	}
	for _, r := range ratings {
		table.Rows = append(table.Rows, []string{r.ProfessorID, r.ProfessorName, r.Rating})
	}

	switch ExportFormat(strings.ToLower(string(format))) {
	case FormatCSV:
		content, err := export.RenderCSV(table)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportResult{Content: content, ContentType: "text/csv", Filename: "professor-ratings.csv"}, nil
	case FormatPDF:
		content, err := export.RenderPDF(table, "Professor Ratings")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportResult{Content: content, ContentType: "application/pdf", Filename: "professor-ratings.pdf"}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrInvalidArgument, fmt.Sprintf("unsupported export format %q", format))
	}
}
