package shootcode

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	randomMocks "github.com/archerylive/shootlive/internal/common/random/mocks"
)

type ShootCodeTestSuite struct {
	suite.Suite
	mockCtrl   *gomock.Controller
	mockRandom *randomMocks.MockSource
}

func (s *ShootCodeTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRandom = randomMocks.NewMockSource(s.mockCtrl)
}

func TestShootCodeTestSuite(t *testing.T) {
	suite.Run(t, new(ShootCodeTestSuite))
}

func (s *ShootCodeTestSuite) TestGenerateLeftPadsSmallValues() {
	s.mockRandom.EXPECT().Intn(10000).Return(7)

	s.Equal("0007", Generate(s.mockRandom))
}

func (s *ShootCodeTestSuite) TestGenerateCoversTheFullSpace() {
	s.mockRandom.EXPECT().Intn(10000).Return(0)
	s.Equal("0000", Generate(s.mockRandom))

	s.mockRandom.EXPECT().Intn(10000).Return(9999)
	s.Equal("9999", Generate(s.mockRandom))
}

func (s *ShootCodeTestSuite) TestIsValid() {
	s.True(IsValid("0000"))
	s.True(IsValid("4827"))
	s.True(IsValid("9999"))

	s.False(IsValid(""))
	s.False(IsValid("123"))
	s.False(IsValid("12345"))
	s.False(IsValid("12a4"))
	s.False(IsValid(" 1234"))
	s.False(IsValid("1234 "))
	s.False(IsValid("١٢٣٤")) // digits must be ASCII
}

func (s *ShootCodeTestSuite) TestExpirationTimeIsEndOfDay() {
	loc := time.FixedZone("UTC+2", 2*60*60)
	now := time.Date(2025, 6, 14, 9, 30, 0, 0, loc)

	expiry := ExpirationTime(now)

	s.Equal(2025, expiry.Year())
	s.Equal(time.June, expiry.Month())
	s.Equal(14, expiry.Day())
	s.Equal(23, expiry.Hour())
	s.Equal(59, expiry.Minute())
	s.Equal(59, expiry.Second())
	s.Equal(999000000, expiry.Nanosecond())
	s.Equal(loc, expiry.Location())
}

func (s *ShootCodeTestSuite) TestExpirationTimeJustBeforeMidnight() {
	now := time.Date(2025, 12, 31, 23, 59, 59, 500000000, time.UTC)

	expiry := ExpirationTime(now)

	s.True(expiry.After(now))
	s.Equal(31, expiry.Day())
}
