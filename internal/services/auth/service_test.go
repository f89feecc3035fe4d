package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/tilescore/internal/dependencies/mocks"
	"github.com/mcoot/tilescore/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	clock   *mocks.MockClock
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	hash, err := HashPassword("hunter2")
	s.Require().NoError(err)

	s.clock = mocks.NewMockClock(testutil.FixedTime)
	cfg := DefaultConfig()
	cfg.PasswordHash = hash
	s.service = New(s.clock, cfg)
}

func (s *ServiceSuite) TestEnabled() {
	s.True(s.service.Enabled())
	s.False(New(s.clock, DefaultConfig()).Enabled())
}

func (s *ServiceSuite) TestVerify() {
	s.NoError(s.service.Verify("hunter2"))
	s.ErrorIs(s.service.Verify("hunter3"), ErrInvalidCredentials)
	s.ErrorIs(s.service.Verify(""), ErrInvalidCredentials)
}

func (s *ServiceSuite) TestVerifyWhenDisabled() {
	s.ErrorIs(New(s.clock, DefaultConfig()).Verify("anything"), ErrAuthDisabled)
}

// Login tests

func (s *ServiceSuite) TestLoginSucceeds() {
	session, err := s.service.Login("hunter2")
	s.Require().NoError(err)

	s.NotEmpty(session.Token)
	s.Equal(testutil.FixedTime, session.CreatedAt)
	s.Equal(testutil.FixedTime.Add(24*time.Hour), session.ExpiresAt)
}

func (s *ServiceSuite) TestLoginWrongPassword() {
	_, err := s.service.Login("wrong")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginTokensAreUnique() {
	a, _ := s.service.Login("hunter2")
	b, _ := s.service.Login("hunter2")

	s.NotEqual(a.Token, b.Token)
}

// Session tests

func (s *ServiceSuite) TestValidateSessionSucceeds() {
	session, _ := s.service.Login("hunter2")

	got, err := s.service.ValidateSession(session.Token)
	s.Require().NoError(err)
	s.Equal(session.Token, got.Token)
}

func (s *ServiceSuite) TestValidateSessionUnknownToken() {
	_, err := s.service.ValidateSession("sess_nope")
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestValidateSessionExpired() {
	session, _ := s.service.Login("hunter2")
	s.clock.Advance(25 * time.Hour)

	_, err := s.service.ValidateSession(session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestInvalidateSession() {
	session, _ := s.service.Login("hunter2")
	s.service.InvalidateSession(session.Token)

	_, err := s.service.ValidateSession(session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestCleanExpiredSessions() {
	old, _ := s.service.Login("hunter2")
	s.clock.Advance(23 * time.Hour)
	fresh, _ := s.service.Login("hunter2")
	s.clock.Advance(2 * time.Hour)

	s.service.CleanExpiredSessions()

	s.Len(s.service.sessions, 1)
	_, ok := s.service.sessions[fresh.Token]
	s.True(ok)
	_, ok = s.service.sessions[old.Token]
	s.False(ok)
}
