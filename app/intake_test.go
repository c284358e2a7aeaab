package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"regdash/domain/intake"
)

type mockRegistrationRepo struct {
	mock.Mock
}

func (m *mockRegistrationRepo) Create(ctx context.Context, reg *intake.Registration) error {
	args := m.Called(ctx, reg)
	return args.Error(0)
}

func (m *mockRegistrationRepo) Total(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockRegistrationRepo) CountByTeam(ctx context.Context) ([]intake.TeamCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]intake.TeamCount), args.Error(1)
}

type mockEmailSender struct {
	mock.Mock
}

func (m *mockEmailSender) SendConfirmation(ctx context.Context, reg *intake.Registration) error {
	args := m.Called(ctx, reg)
	return args.Error(0)
}

func TestRegisterDefaultsBlankFields(t *testing.T) {
	repo := new(mockRegistrationRepo)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := NewIntakeService(repo, nil, nil, nil, IntakeConfig{})

	reg, err := svc.Register(context.Background(), RegisterRequest{Name: "Ada"})
	require.NoError(t, err)

	assert.Equal(t, "Ada", reg.Name)
	assert.Equal(t, intake.DefaultFieldValue, reg.Email)
	assert.Equal(t, intake.DefaultFieldValue, reg.Team)
	assert.Equal(t, intake.DefaultFieldValue, reg.Event)
	assert.Equal(t, intake.DefaultFieldValue, reg.College)
	assert.False(t, reg.ID.IsEmpty())
	repo.AssertExpectations(t)
}

func TestRegisterSurvivesDatabaseFailure(t *testing.T) {
	repo := new(mockRegistrationRepo)
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	svc := NewIntakeService(repo, nil, nil, nil, IntakeConfig{})
	before := svc.Fallback().Total()

	reg, err := svc.Register(context.Background(), RegisterRequest{Name: "Ada", Team: "Team B"})
	require.NoError(t, err, "registration never fails on a store outage")
	assert.Equal(t, "Team B", reg.Team)

	assert.Equal(t, before+1, svc.Fallback().Total(), "rejected write lands in the demo counters")
}

func TestRegisterWithoutDatabaseCountsInMemory(t *testing.T) {
	svc := NewIntakeService(nil, nil, nil, nil, IntakeConfig{})
	before := svc.Fallback().Total()

	_, err := svc.Register(context.Background(), RegisterRequest{Name: "Ada", Team: "Team Z"})
	require.NoError(t, err)

	assert.Equal(t, before+1, svc.Fallback().Total())

	var teamZ int
	for _, tc := range svc.Fallback().Counts() {
		if tc.Team == "Team Z" {
			teamZ = tc.Count
		}
	}
	assert.Equal(t, 1, teamZ, "unknown team is added on first increment")
}

func TestRegisterAppendsToIntakeTab(t *testing.T) {
	repo := new(mockRegistrationRepo)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	source := newFakeSource()
	svc := NewIntakeService(repo, source, nil, nil, IntakeConfig{WriteToSheets: true, IntakeTab: "Sheet1"})

	rowsBefore := len(source.rows["Sheet1"])
	_, err := svc.Register(context.Background(), RegisterRequest{
		Name: "Ada", Email: "ada@example.com", Team: "Core", Event: "Hackathon", College: "MIT",
	})
	require.NoError(t, err)

	rows := source.rows["Sheet1"]
	require.Len(t, rows, rowsBefore+1)

	appended := rows[len(rows)-1]
	require.Len(t, appended, 6)
	assert.Equal(t, []string{"Ada", "ada@example.com", "Core", "Hackathon", "MIT"}, appended[:5])
	assert.NotEmpty(t, appended[5], "timestamp column is filled")
}

func TestRegisterSkipsSheetWhenDisabled(t *testing.T) {
	source := newFakeSource()
	svc := NewIntakeService(nil, source, nil, nil, IntakeConfig{WriteToSheets: false})

	rowsBefore := len(source.rows["Sheet1"])
	_, err := svc.Register(context.Background(), RegisterRequest{Name: "Ada"})
	require.NoError(t, err)

	assert.Len(t, source.rows["Sheet1"], rowsBefore)
}

func TestRegisterAbsorbsEmailFailure(t *testing.T) {
	sender := new(mockEmailSender)
	sender.On("SendConfirmation", mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	svc := NewIntakeService(nil, nil, sender, nil, IntakeConfig{})

	_, err := svc.Register(context.Background(), RegisterRequest{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)
	sender.AssertExpectations(t)
}
