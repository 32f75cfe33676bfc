package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/classroom-report/internal/models"
	appErrors "github.com/noah-isme/classroom-report/pkg/errors"
)

type mockClassroomRepo struct {
	mu               sync.Mutex
	classrooms       []models.Classroom
	classroomsErr    error
	assignments      map[int64][]models.Assignment
	assignmentsErr   error
	details          map[int64]*models.Classroom
	accepted         map[int64][]models.AcceptedAssignment
	acceptedErr      error
	commits          map[string][]models.Commit
	rate             []int
	rateErr          error
	listedClassrooms []int64
	listedAccepted   []int64
}

func (m *mockClassroomRepo) ListClassrooms(ctx context.Context) ([]models.Classroom, error) {
	return m.classrooms, m.classroomsErr
}

func (m *mockClassroomRepo) ListAssignments(ctx context.Context, classroomID int64) ([]models.Assignment, error) {
	m.mu.Lock()
	m.listedClassrooms = append(m.listedClassrooms, classroomID)
	m.mu.Unlock()
	if m.assignmentsErr != nil {
		return nil, m.assignmentsErr
	}
	return m.assignments[classroomID], nil
}

func (m *mockClassroomRepo) GetClassroom(ctx context.Context, classroomID int64) (*models.Classroom, error) {
	if c, ok := m.details[classroomID]; ok {
		return c, nil
	}
	return nil, appErrors.Clone(appErrors.ErrExecution, fmt.Sprintf("classroom %d: Not Found", classroomID))
}

func (m *mockClassroomRepo) ListAcceptedAssignments(ctx context.Context, assignmentID int64) ([]models.AcceptedAssignment, error) {
	m.listedAccepted = append(m.listedAccepted, assignmentID)
	if m.acceptedErr != nil {
		return nil, m.acceptedErr
	}
	return m.accepted[assignmentID], nil
}

func (m *mockClassroomRepo) ListCommits(ctx context.Context, fullName string) ([]models.Commit, error) {
	commits, ok := m.commits[fullName]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrExecution, "gh: Not Found (HTTP 404)")
	}
	return commits, nil
}

func (m *mockClassroomRepo) GetRateLimit(ctx context.Context) (*models.RateLimit, error) {
	if m.rateErr != nil {
		return nil, m.rateErr
	}
	remaining := 0
	if len(m.rate) > 0 {
		remaining, m.rate = m.rate[0], m.rate[1:]
	}
	return &models.RateLimit{Rate: models.RateBucket{Limit: 5000, Remaining: remaining}}, nil
}

func TestResolveAssignmentIDFirstClassroomWins(t *testing.T) {
	repo := &mockClassroomRepo{
		classrooms: []models.Classroom{{ID: 1, Name: "CS101"}, {ID: 2, Name: "CS101"}},
		assignments: map[int64][]models.Assignment{
			1: {{ID: 10, Title: "HW1"}},
			2: {{ID: 20, Title: "HW1"}},
		},
	}
	svc := NewResolverService(repo, zap.NewNop())

	id, ok, err := svc.ResolveAssignmentID(context.Background(), "CS101", "HW1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(10), id)
	assert.Equal(t, []int64{1}, repo.listedClassrooms)
}

func TestResolveAssignmentFirstTitleWins(t *testing.T) {
	repo := &mockClassroomRepo{
		classrooms: []models.Classroom{{ID: 3, Name: "Intro"}},
		assignments: map[int64][]models.Assignment{
			3: {{ID: 30, Title: "Lab"}, {ID: 31, Title: "HW1"}, {ID: 32, Title: "HW1"}},
		},
	}
	svc := NewResolverService(repo, nil)

	assignment, ok, err := svc.ResolveAssignment(context.Background(), "Intro", "HW1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(31), assignment.ID)
}

func TestResolveIsExactMatch(t *testing.T) {
	repo := &mockClassroomRepo{
		classrooms:  []models.Classroom{{ID: 1, Name: "cs101"}, {ID: 2, Name: "CS101 "}},
		assignments: map[int64][]models.Assignment{},
	}
	svc := NewResolverService(repo, nil)

	_, ok, err := svc.ResolveClassroom(context.Background(), "CS101")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResolveEmptyClassroomListShortCircuits(t *testing.T) {
	repo := &mockClassroomRepo{classrooms: []models.Classroom{}}
	svc := NewResolverService(repo, nil)

	id, ok, err := svc.ResolveAssignmentID(context.Background(), "CS101", "HW1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, id)
	assert.Empty(t, repo.listedClassrooms, "assignments must not be fetched")
}

func TestResolveMissingAssignment(t *testing.T) {
	repo := &mockClassroomRepo{
		classrooms:  []models.Classroom{{ID: 1, Name: "CS101"}},
		assignments: map[int64][]models.Assignment{1: {{ID: 10, Title: "HW1"}}},
	}
	svc := NewResolverService(repo, nil)

	id, ok, err := svc.ResolveAssignmentID(context.Background(), "CS101", "HW2")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, id)
}

func TestResolveFirstMatchProperty(t *testing.T) {
	names := []string{"A", "B", "A", "C", "B", "A"}
	classrooms := make([]models.Classroom, len(names))
	for i, name := range names {
		classrooms[i] = models.Classroom{ID: int64(100 + i), Name: name}
	}
	svc := NewResolverService(&mockClassroomRepo{classrooms: classrooms}, nil)

	for _, name := range []string{"A", "B", "C", "D"} {
		wantIdx := -1
		for i, n := range names {
			if n == name {
				wantIdx = i
				break
			}
		}
		classroom, ok, err := svc.ResolveClassroom(context.Background(), name)
		require.NoError(t, err)
		if wantIdx < 0 {
			assert.False(t, ok, name)
			continue
		}
		require.True(t, ok, name)
		assert.Equal(t, int64(100+wantIdx), classroom.ID, name)
	}
}

func TestResolvePropagatesClientErrors(t *testing.T) {
	failure := appErrors.Clone(appErrors.ErrExecution, "bad credentials")
	svc := NewResolverService(&mockClassroomRepo{classroomsErr: failure}, nil)

	_, ok, err := svc.ResolveAssignmentID(context.Background(), "CS101", "HW1")
	assert.False(t, ok)
	assert.Same(t, failure, err)

	decodeFailure := appErrors.Clone(appErrors.ErrDecode, "cannot decode JSON")
	repo := &mockClassroomRepo{
		classrooms:     []models.Classroom{{ID: 1, Name: "CS101"}},
		assignmentsErr: decodeFailure,
	}
	svc = NewResolverService(repo, nil)

	_, ok, err = svc.ResolveAssignmentID(context.Background(), "CS101", "HW1")
	assert.False(t, ok)
	assert.Same(t, decodeFailure, err)
}
