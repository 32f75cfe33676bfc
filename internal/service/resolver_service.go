package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/classroom-report/internal/models"
)

type classroomLister interface {
	ListClassrooms(ctx context.Context) ([]models.Classroom, error)
	ListAssignments(ctx context.Context, classroomID int64) ([]models.Assignment, error)
}

// ResolverService turns display names into classroom API identifiers.
//
// Matching is exact and case-sensitive. When several entries share a name the
// first one in API order wins and the rest are ignored. A miss is reported through
// the boolean result, never as an error; errors come only from the API calls and
// are returned unchanged.
type ResolverService struct {
	repo   classroomLister
	logger *zap.Logger
}

// NewResolverService constructs ResolverService.
func NewResolverService(repo classroomLister, logger *zap.Logger) *ResolverService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResolverService{repo: repo, logger: logger}
}

// ResolveClassroom returns the first classroom named name.
func (s *ResolverService) ResolveClassroom(ctx context.Context, name string) (models.Classroom, bool, error) {
	classrooms, err := s.repo.ListClassrooms(ctx)
	if err != nil {
		return models.Classroom{}, false, err
	}
	for _, classroom := range classrooms {
		if classroom.Name == name {
			return classroom, true, nil
		}
	}
	s.logger.Info("classroom not found", zap.String("classroom", name), zap.Int("candidates", len(classrooms)))
	return models.Classroom{}, false, nil
}

// ResolveAssignment returns the first assignment titled title inside the first
// classroom named classroomName. Assignments are not fetched when the classroom
// is missing.
func (s *ResolverService) ResolveAssignment(ctx context.Context, classroomName, title string) (models.Assignment, bool, error) {
	classroom, ok, err := s.ResolveClassroom(ctx, classroomName)
	if err != nil || !ok {
		return models.Assignment{}, false, err
	}

	assignments, err := s.repo.ListAssignments(ctx, classroom.ID)
	if err != nil {
		return models.Assignment{}, false, err
	}
	for _, assignment := range assignments {
		if assignment.Title == title {
			return assignment, true, nil
		}
	}
	s.logger.Info("assignment not found",
		zap.String("classroom", classroomName),
		zap.Int64("classroom_id", classroom.ID),
		zap.String("assignment", title),
	)
	return models.Assignment{}, false, nil
}

// ResolveAssignmentID is ResolveAssignment reduced to the identifier.
func (s *ResolverService) ResolveAssignmentID(ctx context.Context, classroomName, title string) (int64, bool, error) {
	assignment, ok, err := s.ResolveAssignment(ctx, classroomName, title)
	if err != nil || !ok {
		return 0, false, err
	}
	return assignment.ID, true, nil
}
