package handler

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/classroom-report/internal/dto"
	"github.com/noah-isme/classroom-report/pkg/config"
	appErrors "github.com/noah-isme/classroom-report/pkg/errors"
	"github.com/noah-isme/classroom-report/pkg/export"
	"github.com/noah-isme/classroom-report/pkg/storage"
)

// ReportService is the report data source used by the handler.
type ReportService interface {
	RemainingRateLimit(ctx context.Context) (int, error)
	Submissions(ctx context.Context, req dto.SubmissionReportRequest) (*dto.SubmissionReport, error)
	ClassroomOverview(ctx context.Context) ([]dto.ClassroomOverview, error)
	CommitCounts(ctx context.Context, req dto.SubmissionReportRequest) ([]dto.CommitCountRow, error)
}

// ReportStore persists rendered report files.
type ReportStore interface {
	Save(filename string, data []byte) (string, error)
}

// StoreOpener opens the store for an output directory. It is called only when a
// file is written.
type StoreOpener func(dir string) (ReportStore, error)

// LocalStore opens a filesystem store.
func LocalStore(dir string) (ReportStore, error) {
	return storage.NewLocalStorage(dir)
}

// SubmissionsOptions selects the assignment and the output of the submissions report.
type SubmissionsOptions struct {
	ClassroomName  string
	AssignmentName string
	Format         string
	OutputDir      string
}

// ReportHandler writes reports to the console or to files.
type ReportHandler struct {
	reports ReportService
	open    StoreOpener
	out     io.Writer
	table   *export.TableExporter
	logger  *zap.Logger
}

// NewReportHandler constructs handler.
func NewReportHandler(reports ReportService, open StoreOpener, out io.Writer, logger *zap.Logger) *ReportHandler {
	if open == nil {
		open = LocalStore
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{
		reports: reports,
		open:    open,
		out:     out,
		table:   export.NewTableExporter(),
		logger:  logger,
	}
}

// RateLimit prints the remaining API quota.
func (h *ReportHandler) RateLimit(ctx context.Context) error {
	remaining, err := h.reports.RemainingRateLimit(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(h.out, "remaining %d\n", remaining)
	return nil
}

// Submissions prints the submissions of one assignment, framed by the rate limit
// before and after. csv and pdf reports are written to a file whose path is printed
// in place of the table.
func (h *ReportHandler) Submissions(ctx context.Context, opts SubmissionsOptions) error {
	format := strings.ToLower(opts.Format)
	if format == "" {
		format = config.FormatTable
	}
	fmt.Fprintf(h.out, "Determining submissions for: Classroom %s Assignment %s\n", opts.ClassroomName, opts.AssignmentName)
	if err := h.RateLimit(ctx); err != nil {
		return err
	}
	fmt.Fprintln(h.out)

	report, err := h.reports.Submissions(ctx, dto.SubmissionReportRequest{
		ClassroomName:  opts.ClassroomName,
		AssignmentName: opts.AssignmentName,
	})
	if err != nil {
		return err
	}

	title := fmt.Sprintf("Submissions for Classroom %s Assignment %s", opts.ClassroomName, opts.AssignmentName)
	fmt.Fprintf(h.out, "%s\n\n", title)

	exporter, err := export.ForFormat(format)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.ExitStatus, "invalid report format")
	}
	body, err := exporter.Render(report.Dataset(), title)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.ExitStatus, "render report")
	}
	if format == config.FormatTable {
		h.out.Write(body) //nolint:errcheck
	} else {
		path, err := h.saveReport(opts.OutputDir, fmt.Sprintf("submissions-%d.%s", report.AssignmentID, exporter.Extension()), body)
		if err != nil {
			return err
		}
		fmt.Fprintf(h.out, "report written to %s\n", path)
	}
	fmt.Fprintln(h.out)

	return h.RateLimit(ctx)
}

// Classrooms prints every classroom with its assignments followed by a summary
// table, framed by the rate limit.
func (h *ReportHandler) Classrooms(ctx context.Context) error {
	if err := h.RateLimit(ctx); err != nil {
		return err
	}
	overview, err := h.reports.ClassroomOverview(ctx)
	if err != nil {
		return err
	}
	for _, classroom := range overview {
		fmt.Fprintf(h.out, "Classroom: %s\n\n", classroom.Name)
		if err := h.writeTable(classroom.AssignmentDataset()); err != nil {
			return err
		}
		fmt.Fprintln(h.out)
	}
	fmt.Fprint(h.out, "Classrooms\n\n")
	if err := h.writeTable(dto.ClassroomsDataset(overview)); err != nil {
		return err
	}
	return h.RateLimit(ctx)
}

// Commits prints the commit count of every submission repository.
func (h *ReportHandler) Commits(ctx context.Context, req dto.SubmissionReportRequest) error {
	rows, err := h.reports.CommitCounts(ctx, req)
	if err != nil {
		return err
	}
	for _, row := range rows {
		fmt.Fprintf(h.out, "%s %s %s\n", row.Organization, row.RepositoryName, row.DefaultBranch)
		fmt.Fprintf(h.out, "number of commits: %d\n", row.Commits)
	}
	return nil
}

func (h *ReportHandler) writeTable(data export.Dataset) error {
	body, err := h.table.Render(data, "")
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.ExitStatus, "render table")
	}
	_, err = h.out.Write(body)
	return err
}

func (h *ReportHandler) saveReport(dir, filename string, body []byte) (string, error) {
	store, err := h.open(dir)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.ExitStatus, "open report storage")
	}
	path, err := store.Save(filename, body)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.ExitStatus, "save report")
	}
	h.logger.Info("report saved", zap.String("path", path))
	return path, nil
}
