package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/classroom-report/internal/dto"
	"github.com/noah-isme/classroom-report/internal/models"
	appErrors "github.com/noah-isme/classroom-report/pkg/errors"
)

type reportRepository interface {
	GetRateLimit(ctx context.Context) (*models.RateLimit, error)
	ListClassrooms(ctx context.Context) ([]models.Classroom, error)
	GetClassroom(ctx context.Context, classroomID int64) (*models.Classroom, error)
	ListAssignments(ctx context.Context, classroomID int64) ([]models.Assignment, error)
	ListAcceptedAssignments(ctx context.Context, assignmentID int64) ([]models.AcceptedAssignment, error)
	ListCommits(ctx context.Context, fullName string) ([]models.Commit, error)
}

type assignmentResolver interface {
	ResolveAssignment(ctx context.Context, classroomName, title string) (models.Assignment, bool, error)
}

type rateGauge interface {
	SetRateRemaining(remaining int)
}

// ReportConfig tunes report generation.
type ReportConfig struct {
	// Concurrency bounds the per-classroom fetches of the overview. 1 keeps every
	// call sequential.
	Concurrency int
}

// ReportService assembles report data from the classroom API.
type ReportService struct {
	repo      reportRepository
	resolver  assignmentResolver
	gauge     rateGauge
	validator *validator.Validate
	logger    *zap.Logger
	cfg       ReportConfig
}

// NewReportService constructs ReportService.
func NewReportService(repo reportRepository, resolver assignmentResolver, gauge rateGauge, validate *validator.Validate, cfg ReportConfig, logger *zap.Logger) *ReportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return &ReportService{repo: repo, resolver: resolver, gauge: gauge, validator: validate, logger: logger, cfg: cfg}
}

// RemainingRateLimit returns the remaining core API quota.
func (s *ReportService) RemainingRateLimit(ctx context.Context) (int, error) {
	limit, err := s.repo.GetRateLimit(ctx)
	if err != nil {
		return 0, err
	}
	if s.gauge != nil {
		s.gauge.SetRateRemaining(limit.Rate.Remaining)
	}
	return limit.Rate.Remaining, nil
}

// Submissions resolves the assignment by name and lists its accepted assignments.
// An unknown classroom or assignment is a NOT_FOUND error.
func (s *ReportService) Submissions(ctx context.Context, req dto.SubmissionReportRequest) (*dto.SubmissionReport, error) {
	assignment, err := s.resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	accepted, err := s.repo.ListAcceptedAssignments(ctx, assignment.ID)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("accepted assignments", zap.Int64("assignment_id", assignment.ID), zap.Any("accepted", accepted))

	report := &dto.SubmissionReport{
		ClassroomName:  req.ClassroomName,
		AssignmentName: req.AssignmentName,
		AssignmentID:   assignment.ID,
		Rows:           make([]dto.SubmissionRow, 0, len(accepted)),
	}
	for i, a := range accepted {
		report.Rows = append(report.Rows, dto.SubmissionRow{
			Index:          i,
			Users:          a.Logins(),
			Submitted:      a.Submitted,
			RepositoryName: a.Repository.Name,
			FullName:       a.Repository.FullName,
			DefaultBranch:  a.Repository.DefaultBranch,
		})
	}
	return report, nil
}

// ClassroomOverview lists every classroom with its organization and assignments,
// in API order.
func (s *ReportService) ClassroomOverview(ctx context.Context) ([]dto.ClassroomOverview, error) {
	classrooms, err := s.repo.ListClassrooms(ctx)
	if err != nil {
		return nil, err
	}

	overview := make([]dto.ClassroomOverview, len(classrooms))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)
	for i, item := range classrooms {
		i, id := i, item.ID
		g.Go(func() error {
			classroom, err := s.repo.GetClassroom(gctx, id)
			if err != nil {
				return err
			}
			assignments, err := s.repo.ListAssignments(gctx, id)
			if err != nil {
				return err
			}
			entry := dto.ClassroomOverview{
				ID:           classroom.ID,
				Name:         classroom.Name,
				Organization: classroom.OrganizationLogin(),
				Assignments:  make([]dto.AssignmentRow, 0, len(assignments)),
			}
			for _, a := range assignments {
				entry.Assignments = append(entry.Assignments, dto.AssignmentRow{Type: a.Type, Title: a.Title})
			}
			overview[i] = entry
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return overview, nil
}

// CommitCounts counts the commits of every submission repository of an assignment.
func (s *ReportService) CommitCounts(ctx context.Context, req dto.SubmissionReportRequest) ([]dto.CommitCountRow, error) {
	report, err := s.Submissions(ctx, req)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.CommitCountRow, 0, len(report.Rows))
	for _, sub := range report.Rows {
		commits, err := s.repo.ListCommits(ctx, sub.FullName)
		if err != nil {
			return nil, err
		}
		rows = append(rows, dto.CommitCountRow{
			Organization:   ownerOf(sub.FullName),
			RepositoryName: sub.RepositoryName,
			DefaultBranch:  sub.DefaultBranch,
			Commits:        len(commits),
		})
	}
	return rows, nil
}

func (s *ReportService) resolve(ctx context.Context, req dto.SubmissionReportRequest) (models.Assignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Assignment{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.ExitStatus, "classroom and assignment names are required")
	}
	assignment, ok, err := s.resolver.ResolveAssignment(ctx, req.ClassroomName, req.AssignmentName)
	if err != nil {
		return models.Assignment{}, err
	}
	if !ok {
		return models.Assignment{}, appErrors.Clone(appErrors.ErrNotFound,
			fmt.Sprintf("assignment %q not found in classroom %q", req.AssignmentName, req.ClassroomName))
	}
	return assignment, nil
}

func ownerOf(fullName string) string {
	owner, _, ok := strings.Cut(fullName, "/")
	if !ok {
		return ""
	}
	return owner
}
