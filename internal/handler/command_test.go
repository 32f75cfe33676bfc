package handler

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classroom-report/internal/dto"
	"github.com/noah-isme/classroom-report/pkg/config"
	appErrors "github.com/noah-isme/classroom-report/pkg/errors"
)

func testConfig() *config.Config {
	return &config.Config{
		Env: config.EnvDevelopment,
		GitHub: config.GitHubConfig{
			Binary:      "gh",
			MinVersion:  "2.0.0",
			PerPage:     100,
			Concurrency: 1,
		},
		Report: config.ReportConfig{
			ClassroomName:  "CS101",
			AssignmentName: "HW1",
			Format:         config.FormatTable,
			OutputDir:      "./reports",
		},
		Log: config.LogConfig{Level: "warn", Format: "console"},
	}
}

func runCommand(t *testing.T, cfg *config.Config, svc *reportServiceMock, args ...string) (string, int, error) {
	t.Helper()
	out := &bytes.Buffer{}
	builds := 0
	build := func(c *config.Config) (*ReportHandler, error) {
		builds++
		return NewReportHandler(svc, nil, out, nil), nil
	}
	root := NewRootCommand(cfg, build, "1.2.3", out)
	root.SetArgs(args)
	root.SetErr(&bytes.Buffer{})
	err := root.Execute()
	return out.String(), builds, err
}

func TestRootCommandDefaultsToSubmissions(t *testing.T) {
	svc := &reportServiceMock{rate: []int{5, 4}, report: singleSubmission()}
	out, builds, err := runCommand(t, testConfig(), svc)
	require.NoError(t, err)
	assert.Equal(t, 1, builds)
	assert.Contains(t, out, "Submissions for Classroom CS101 Assignment HW1\n")
	assert.Equal(t, dto.SubmissionReportRequest{ClassroomName: "CS101", AssignmentName: "HW1"}, svc.submissionReq)
}

func TestSubmissionsFlagsOverrideConfig(t *testing.T) {
	cfg := testConfig()
	svc := &reportServiceMock{rate: []int{5, 4}, report: singleSubmission()}
	_, _, err := runCommand(t, cfg, svc, "submissions", "--classroom", "CS102", "--assignment", "Lab", "--concurrency", "3")
	require.NoError(t, err)
	assert.Equal(t, dto.SubmissionReportRequest{ClassroomName: "CS102", AssignmentName: "Lab"}, svc.submissionReq)
	assert.Equal(t, 3, cfg.GitHub.Concurrency)
}

func TestInvalidConfigurationStopsBeforeBuild(t *testing.T) {
	svc := &reportServiceMock{}
	_, builds, err := runCommand(t, testConfig(), svc, "submissions", "--format", "xml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
	assert.Zero(t, builds)

	_, builds, err = runCommand(t, testConfig(), svc, "classrooms", "--concurrency", "0")
	require.Error(t, err)
	assert.Zero(t, builds)
}

func TestFormatFlagIsCaseInsensitive(t *testing.T) {
	cfg := testConfig()
	svc := &reportServiceMock{rate: []int{5, 4}, report: singleSubmission()}
	_, _, err := runCommand(t, cfg, svc, "--format", "TABLE")
	require.NoError(t, err)
	assert.Equal(t, config.FormatTable, cfg.Report.Format)
}

func TestRateLimitCommand(t *testing.T) {
	out, _, err := runCommand(t, testConfig(), &reportServiceMock{rate: []int{4321}}, "rate-limit")
	require.NoError(t, err)
	assert.Equal(t, "remaining 4321\n", out)
}

func TestCommitsCommand(t *testing.T) {
	svc := &reportServiceMock{commits: []dto.CommitCountRow{{Organization: "org", RepositoryName: "r", DefaultBranch: "main", Commits: 2}}}
	out, _, err := runCommand(t, testConfig(), svc, "commits", "--assignment", "HW2")
	require.NoError(t, err)
	assert.Equal(t, "org r main\nnumber of commits: 2\n", out)
	assert.Equal(t, "HW2", svc.submissionReq.AssignmentName)
}

func TestVersionCommandSkipsValidation(t *testing.T) {
	cfg := testConfig()
	cfg.Report.Format = "xml"
	out, builds, err := runCommand(t, cfg, &reportServiceMock{}, "version")
	require.NoError(t, err)
	assert.Equal(t, "classroom-report 1.2.3\n", out)
	assert.Zero(t, builds)
}

func TestBuildErrorIsReturned(t *testing.T) {
	failure := appErrors.Clone(appErrors.ErrValidation, "this is gh version 1.9.0, but 2.0.0 or higher is required")
	root := NewRootCommand(testConfig(), func(*config.Config) (*ReportHandler, error) {
		return nil, failure
	}, "dev", &bytes.Buffer{})
	root.SetArgs([]string{"rate-limit"})
	assert.Same(t, failure, root.Execute())
}
