package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/classroom-report/internal/models"
	"github.com/noah-isme/classroom-report/pkg/config"
	appErrors "github.com/noah-isme/classroom-report/pkg/errors"
	"github.com/noah-isme/classroom-report/pkg/executor"
	"github.com/noah-isme/classroom-report/pkg/metrics"
)

const (
	acceptHeader     = "Accept: application/vnd.github+json"
	apiVersionHeader = "X-GitHub-Api-Version: 2022-11-28"

	// DefaultPerPage is the page size requested from list endpoints.
	DefaultPerPage = 100
)

type callObserver interface {
	ObserveCall(endpoint, outcome string, d time.Duration)
}

// ClassroomRepository reads GitHub Classroom resources through `gh api`.
// It holds no state besides its immutable settings.
type ClassroomRepository struct {
	runner   executor.Runner
	binary   string
	token    string
	perPage  int
	observer callObserver
	logger   *zap.Logger
}

// NewClassroomRepository constructs ClassroomRepository.
func NewClassroomRepository(runner executor.Runner, cfg config.GitHubConfig, observer callObserver, logger *zap.Logger) *ClassroomRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	binary := cfg.Binary
	if binary == "" {
		binary = "gh"
	}
	perPage := cfg.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	return &ClassroomRepository{
		runner:   runner,
		binary:   binary,
		token:    cfg.Token,
		perPage:  perPage,
		observer: observer,
		logger:   logger,
	}
}

// GetRateLimit returns the rate limit status for the authenticated user.
func (r *ClassroomRepository) GetRateLimit(ctx context.Context) (*models.RateLimit, error) {
	var limit models.RateLimit
	if err := r.get(ctx, "/rate_limit", "/rate_limit", false, &limit); err != nil {
		return nil, err
	}
	return &limit, nil
}

// GetAssignment returns a single assignment.
func (r *ClassroomRepository) GetAssignment(ctx context.Context, assignmentID int64) (*models.Assignment, error) {
	var assignment models.Assignment
	path := fmt.Sprintf("/assignments/%d", assignmentID)
	if err := r.get(ctx, "/assignments/{id}", path, false, &assignment); err != nil {
		return nil, err
	}
	return &assignment, nil
}

// ListAcceptedAssignments returns every accepted assignment across all pages.
func (r *ClassroomRepository) ListAcceptedAssignments(ctx context.Context, assignmentID int64) ([]models.AcceptedAssignment, error) {
	var accepted []models.AcceptedAssignment
	path := fmt.Sprintf("/assignments/%d/accepted_assignments?per_page=%d", assignmentID, r.perPage)
	if err := r.get(ctx, "/assignments/{id}/accepted_assignments", path, true, &accepted); err != nil {
		return nil, err
	}
	return accepted, nil
}

// GetAssignmentGrades is not supported; it always fails with UNSUPPORTED.
func (r *ClassroomRepository) GetAssignmentGrades(ctx context.Context, assignmentID int64) ([]models.AssignmentGrade, error) {
	return nil, appErrors.Clone(appErrors.ErrUnsupported, fmt.Sprintf("grades for assignment %d: operation not supported", assignmentID))
}

// ListClassrooms returns every classroom the token can administer, in API order.
func (r *ClassroomRepository) ListClassrooms(ctx context.Context) ([]models.Classroom, error) {
	var classrooms []models.Classroom
	path := fmt.Sprintf("/classrooms?per_page=%d", r.perPage)
	if err := r.get(ctx, "/classrooms", path, true, &classrooms); err != nil {
		return nil, err
	}
	return classrooms, nil
}

// GetClassroom returns a classroom including its organization.
func (r *ClassroomRepository) GetClassroom(ctx context.Context, classroomID int64) (*models.Classroom, error) {
	var classroom models.Classroom
	path := fmt.Sprintf("/classrooms/%d", classroomID)
	if err := r.get(ctx, "/classrooms/{id}", path, false, &classroom); err != nil {
		return nil, err
	}
	return &classroom, nil
}

// ListAssignments returns every assignment of a classroom, in API order.
func (r *ClassroomRepository) ListAssignments(ctx context.Context, classroomID int64) ([]models.Assignment, error) {
	var assignments []models.Assignment
	path := fmt.Sprintf("/classrooms/%d/assignments?per_page=%d", classroomID, r.perPage)
	if err := r.get(ctx, "/classrooms/{id}/assignments", path, true, &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

// ListCommits returns the commits on the default branch of owner/repo.
func (r *ClassroomRepository) ListCommits(ctx context.Context, fullName string) ([]models.Commit, error) {
	owner, repo, ok := strings.Cut(fullName, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid repository name %q", fullName))
	}
	var commits []models.Commit
	path := fmt.Sprintf("/repos/%s/%s/commits?per_page=%d", owner, repo, r.perPage)
	if err := r.get(ctx, "/repos/{owner}/{repo}/commits", path, true, &commits); err != nil {
		return nil, err
	}
	return commits, nil
}

func (r *ClassroomRepository) command(path string, paginated bool) executor.Command {
	args := []string{r.binary, "api"}
	if paginated {
		args = append(args, "--paginate")
	}
	args = append(args, "-H", acceptHeader, "-H", apiVersionHeader, path)

	cmd := executor.Command{Args: args, DecodeJSON: true, Paginated: paginated}
	if r.token != "" {
		cmd.Env = map[string]string{"GH_TOKEN": r.token}
	}
	return cmd
}

func (r *ClassroomRepository) get(ctx context.Context, endpoint, path string, paginated bool, out interface{}) error {
	start := time.Now()
	res, err := r.runner.Run(ctx, r.command(path, paginated))
	if err != nil {
		r.observe(endpoint, outcomeOf(err), time.Since(start))
		r.logger.Debug("gh api call failed", zap.String("path", path), zap.Error(err))
		return err
	}
	if err := json.Unmarshal(res.JSON, out); err != nil {
		r.observe(endpoint, metrics.OutcomeDecode, time.Since(start))
		return appErrors.Wrap(err, appErrors.ErrDecode.Code, appErrors.StatusBadJSON, fmt.Sprintf("cannot decode %s response", endpoint))
	}
	r.observe(endpoint, metrics.OutcomeOK, time.Since(start))
	return nil
}

func (r *ClassroomRepository) observe(endpoint, outcome string, d time.Duration) {
	if r.observer != nil {
		r.observer.ObserveCall(endpoint, outcome, d)
	}
}

func outcomeOf(err error) string {
	if errors.Is(err, appErrors.ErrDecode) {
		return metrics.OutcomeDecode
	}
	return metrics.OutcomeExecError
}
