package service

import (
	"context"
	"fmt"
	"regexp"

	"github.com/blang/semver"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/classroom-report/pkg/errors"
	"github.com/noah-isme/classroom-report/pkg/executor"
)

var ghVersionPattern = regexp.MustCompile(`gh version (\d+\.\d+\.\d+)`)

// ToolchainService checks the installed gh program before any API call is made.
type ToolchainService struct {
	runner     executor.Runner
	binary     string
	minVersion string
	logger     *zap.Logger
}

// NewToolchainService constructs ToolchainService.
func NewToolchainService(runner executor.Runner, binary, minVersion string, logger *zap.Logger) *ToolchainService {
	if binary == "" {
		binary = "gh"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ToolchainService{runner: runner, binary: binary, minVersion: minVersion, logger: logger}
}

// Version runs `gh --version` and parses the reported release.
func (s *ToolchainService) Version(ctx context.Context) (semver.Version, error) {
	res, err := s.runner.Run(ctx, executor.Command{Args: []string{s.binary, "--version"}})
	if err != nil {
		return semver.Version{}, err
	}
	match := ghVersionPattern.FindStringSubmatch(res.Stdout)
	if match == nil {
		return semver.Version{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("cannot read version from %s output", s.binary))
	}
	v, err := semver.Parse(match[1])
	if err != nil {
		return semver.Version{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.ExitStatus, "invalid gh version")
	}
	return v, nil
}

// Check fails when the installed gh is older than the configured minimum.
func (s *ToolchainService) Check(ctx context.Context) error {
	if s.minVersion == "" {
		return nil
	}
	required, err := semver.Parse(s.minVersion)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.ExitStatus, "invalid GH_MIN_VERSION")
	}
	current, err := s.Version(ctx)
	if err != nil {
		return err
	}
	if required.GT(current) {
		return appErrors.Clone(appErrors.ErrValidation,
			fmt.Sprintf("this is gh version %s, but %s or higher is required", current, required))
	}
	s.logger.Debug("gh version ok", zap.String("version", current.String()), zap.String("required", required.String()))
	return nil
}
