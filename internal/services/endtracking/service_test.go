package endtracking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	clockMocks "github.com/archerylive/shootlive/internal/common/clock/mocks"
	"github.com/archerylive/shootlive/internal/models"
	"github.com/archerylive/shootlive/internal/notifier"
	shootRepo "github.com/archerylive/shootlive/internal/repositories/shoot"
)

type EndTrackingServiceTestSuite struct {
	suite.Suite
	mockCtrl  *gomock.Controller
	mockClock *clockMocks.MockClock
	repo      shootRepo.Repository
	recorder  *notifier.Memory
	svc       Service
	ctx       context.Context

	testNow time.Time
}

func (s *EndTrackingServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())

	s.testNow = time.Date(2025, 6, 14, 10, 0, 0, 0, time.UTC)
	s.ctx = context.Background()

	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.mockClock.EXPECT().Now().Return(s.testNow).AnyTimes()

	s.repo = shootRepo.NewMemory(&shootRepo.MemoryConfig{Clock: s.mockClock})
	s.recorder = notifier.NewMemory()

	var err error
	s.svc, err = New(&Config{
		ShootRepo: s.repo,
		Notifier:  s.recorder,
		Clock:     s.mockClock,
	})
	s.Require().NoError(err)
}

func TestEndTrackingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(EndTrackingServiceTestSuite))
}

// seedShoot stores a two-archer shoot where Alice leads after overtaking Bob
func (s *EndTrackingServiceTestSuite) seedShoot(code string) {
	stored := &models.Shoot{
		ID:          "shoot-" + code,
		Code:        code,
		CreatorName: "Alice",
		CreatedAt:   s.testNow,
		ExpiresAt:   s.testNow.Add(12 * time.Hour),
		LastUpdated: s.testNow,
		Participants: []*models.ShootParticipant{
			{
				ID:               "p1",
				ArcherName:       "Alice",
				TotalScore:       60,
				CurrentPosition:  1,
				PreviousPosition: 2,
				LastUpdated:      s.testNow,
			},
			{
				ID:               "p2",
				ArcherName:       "Bob",
				TotalScore:       50,
				CurrentPosition:  2,
				PreviousPosition: 1,
				LastUpdated:      s.testNow,
			},
		},
	}
	s.Require().NoError(s.repo.SaveShoot(s.ctx, &shootRepo.SaveShootInput{Shoot: stored}))
}

func (s *EndTrackingServiceTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{Notifier: s.recorder})
	s.ErrorIs(err, ErrNilShootRepo)

	_, err = New(&Config{ShootRepo: s.repo})
	s.ErrorIs(err, ErrNilNotifier)
}

func (s *EndTrackingServiceTestSuite) TestFirstEndDoesNotNotify() {
	s.seedShoot("4827")

	output, err := s.svc.TrackEndCompletion(s.ctx, &TrackEndCompletionInput{
		Code:       "4827",
		ArcherName: "Alice",
	})
	s.Require().NoError(err)

	s.Equal(1, output.EndsCompleted)
	s.False(output.Notified)
	s.Empty(s.recorder.Events("4827"))
}

func (s *EndTrackingServiceTestSuite) TestSecondEndNotifiesWithStanding() {
	s.seedShoot("4827")

	_, err := s.svc.TrackEndCompletion(s.ctx, &TrackEndCompletionInput{
		Code:       "4827",
		ArcherName: "Alice",
	})
	s.Require().NoError(err)

	output, err := s.svc.TrackEndCompletion(s.ctx, &TrackEndCompletionInput{
		Code:       "4827",
		ArcherName: "Alice",
	})
	s.Require().NoError(err)

	s.Equal(2, output.EndsCompleted)
	s.True(output.Notified)

	events := s.recorder.Events("4827")
	s.Require().Len(events, 1)
	event := events[0]
	s.Equal(models.NotificationEndComplete, event.Type)
	s.Equal("Alice", event.ArcherName)
	s.Equal(1, event.Position)
	s.Equal(2, event.PreviousPosition)
	s.Equal(2, event.TotalParticipants)

	// Alice moved from 2nd to 1st: delta is +1
	s.Require().NotNil(event.PositionDelta)
	s.Equal(1, *event.PositionDelta)
}

func (s *EndTrackingServiceTestSuite) TestCadenceRepeatsEveryOtherEnd() {
	s.seedShoot("4827")

	for end := 1; end <= 6; end++ {
		output, err := s.svc.TrackEndCompletion(s.ctx, &TrackEndCompletionInput{
			Code:       "4827",
			ArcherName: "Alice",
		})
		s.Require().NoError(err)
		s.Equal(end, output.EndsCompleted)
		s.Equal(end%2 == 0, output.Notified)
	}

	s.Len(s.recorder.Events("4827"), 3)
}

func (s *EndTrackingServiceTestSuite) TestCountsArePerArcher() {
	s.seedShoot("4827")

	_, err := s.svc.TrackEndCompletion(s.ctx, &TrackEndCompletionInput{
		Code:       "4827",
		ArcherName: "Alice",
	})
	s.Require().NoError(err)

	// Bob's first end does not ride on Alice's counter
	output, err := s.svc.TrackEndCompletion(s.ctx, &TrackEndCompletionInput{
		Code:       "4827",
		ArcherName: "Bob",
	})
	s.Require().NoError(err)
	s.Equal(1, output.EndsCompleted)
	s.False(output.Notified)
}

func (s *EndTrackingServiceTestSuite) TestNoDeltaWithoutAPreviousPosition() {
	stored := &models.Shoot{
		ID:          "shoot-1111",
		Code:        "1111",
		CreatorName: "Alice",
		CreatedAt:   s.testNow,
		ExpiresAt:   s.testNow.Add(12 * time.Hour),
		LastUpdated: s.testNow,
		Participants: []*models.ShootParticipant{
			{
				ID:              "p1",
				ArcherName:      "Alice",
				CurrentPosition: 1,
				LastUpdated:     s.testNow,
			},
		},
	}
	s.Require().NoError(s.repo.SaveShoot(s.ctx, &shootRepo.SaveShootInput{Shoot: stored}))

	for i := 0; i < 2; i++ {
		_, err := s.svc.TrackEndCompletion(s.ctx, &TrackEndCompletionInput{
			Code:       "1111",
			ArcherName: "Alice",
		})
		s.Require().NoError(err)
	}

	events := s.recorder.Events("1111")
	s.Require().Len(events, 1)
	s.Nil(events[0].PositionDelta)
	s.Zero(events[0].PreviousPosition)
}

func (s *EndTrackingServiceTestSuite) TestMissingShootSkipsNotification() {
	for i := 0; i < 2; i++ {
		output, err := s.svc.TrackEndCompletion(s.ctx, &TrackEndCompletionInput{
			Code:       "0000",
			ArcherName: "Alice",
		})
		s.Require().NoError(err)
		if i == 1 {
			s.Equal(2, output.EndsCompleted)
			s.False(output.Notified)
		}
	}

	s.Empty(s.recorder.Events("0000"))
}

func (s *EndTrackingServiceTestSuite) TestUnknownArcherSkipsNotification() {
	s.seedShoot("4827")

	for i := 0; i < 2; i++ {
		_, err := s.svc.TrackEndCompletion(s.ctx, &TrackEndCompletionInput{
			Code:       "4827",
			ArcherName: "Nobody",
		})
		s.Require().NoError(err)
	}

	s.Empty(s.recorder.Events("4827"))
}

func (s *EndTrackingServiceTestSuite) TestClearShootTrackingResetsCounters() {
	s.seedShoot("4827")

	_, err := s.svc.TrackEndCompletion(s.ctx, &TrackEndCompletionInput{
		Code:       "4827",
		ArcherName: "Alice",
	})
	s.Require().NoError(err)

	s.Require().NoError(s.svc.ClearShootTracking(s.ctx, &ClearShootTrackingInput{Code: "4827"}))

	// The next end counts as the first again
	output, err := s.svc.TrackEndCompletion(s.ctx, &TrackEndCompletionInput{
		Code:       "4827",
		ArcherName: "Alice",
	})
	s.Require().NoError(err)
	s.Equal(1, output.EndsCompleted)
	s.False(output.Notified)
}
