package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alchemorsel/recipebox/internal/domain/user"
	"github.com/alchemorsel/recipebox/internal/ports/inbound"
	"github.com/alchemorsel/recipebox/internal/ports/outbound"
	"github.com/alchemorsel/recipebox/internal/testutils"
	apperrors "github.com/alchemorsel/recipebox/pkg/errors"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"
)

type AccountServiceTestSuite struct {
	suite.Suite
	users       *testutils.MockUserRepository
	userRecipes *testutils.MockUserRecipeRepository
	hasher      *testutils.MockPasswordHasher
	tokens      *testutils.MockTokenIssuer
	service     *Service
	ctx         context.Context
}

func (s *AccountServiceTestSuite) SetupTest() {
	s.users = new(testutils.MockUserRepository)
	s.userRecipes = new(testutils.MockUserRecipeRepository)
	s.hasher = new(testutils.MockPasswordHasher)
	s.tokens = new(testutils.MockTokenIssuer)
	s.service = NewService(s.users, s.userRecipes, s.hasher, s.tokens, "", zaptest.NewLogger(s.T()))
	s.ctx = context.Background()
}

func (s *AccountServiceTestSuite) TearDownTest() {
	s.users.AssertExpectations(s.T())
	s.userRecipes.AssertExpectations(s.T())
	s.hasher.AssertExpectations(s.T())
	s.tokens.AssertExpectations(s.T())
}

func (s *AccountServiceTestSuite) TestLogin_Success() {
	u := testutils.NewUserBuilder().WithUsername("alice").WithPasswordHash("hash").Build()
	expires := time.Now().Add(time.Hour)

	s.users.On("FindByUsername", s.ctx, "alice").Return(u, nil)
	s.hasher.On("Compare", "hash", "secret").Return(nil)
	s.tokens.On("Issue", u).Return(&outbound.IssuedToken{Value: "signed", ExpiresAt: expires}, nil)

	got, err := s.service.Login(s.ctx, inbound.LoginCommand{Username: "alice", Password: "secret"})

	s.Require().NoError(err)
	s.Equal("signed", got.Token)
	s.Equal("User", got.Role)
	s.Equal(expires, got.ExpiresAt)
}

func (s *AccountServiceTestSuite) TestLogin_UnknownUserAndWrongPasswordLookAlike() {
	u := testutils.NewUserBuilder().WithUsername("alice").WithPasswordHash("hash").Build()

	s.users.On("FindByUsername", s.ctx, "ghost").Return(nil, user.ErrUserNotFound)
	s.users.On("FindByUsername", s.ctx, "alice").Return(u, nil)
	s.hasher.On("Compare", "hash", "wrong").Return(errors.New("mismatch"))

	_, unknownErr := s.service.Login(s.ctx, inbound.LoginCommand{Username: "ghost", Password: "x"})
	_, wrongErr := s.service.Login(s.ctx, inbound.LoginCommand{Username: "alice", Password: "wrong"})

	s.True(apperrors.Is(unknownErr, apperrors.CodeInvalidCredentials))
	s.True(apperrors.Is(wrongErr, apperrors.CodeInvalidCredentials))
	s.Equal(unknownErr.Error(), wrongErr.Error())
	s.tokens.AssertNotCalled(s.T(), "Issue", mock.Anything)
}

func (s *AccountServiceTestSuite) TestRegister_CreatesUserRole() {
	s.users.On("FindByUsername", s.ctx, "bob").Return(nil, user.ErrUserNotFound)
	s.hasher.On("Hash", "pw").Return("hashed", nil)
	s.users.On("Create", s.ctx, mock.MatchedBy(func(u *user.User) bool {
		return u.Username == "bob" && u.PasswordHash == "hashed" && u.Role == user.RoleUser
	})).Return(nil)

	s.NoError(s.service.Register(s.ctx, inbound.RegisterCommand{Username: "bob", Password: "pw"}))
}

func (s *AccountServiceTestSuite) TestRegister_Duplicate() {
	existing := testutils.NewUserBuilder().WithUsername("bob").Build()
	s.users.On("FindByUsername", s.ctx, "bob").Return(existing, nil)

	err := s.service.Register(s.ctx, inbound.RegisterCommand{Username: "bob", Password: "pw"})

	s.True(apperrors.Is(err, apperrors.CodeUsernameAlreadyExists))
	s.hasher.AssertNotCalled(s.T(), "Hash", mock.Anything)
}

func (s *AccountServiceTestSuite) TestRegister_RaceOnInsert() {
	s.users.On("FindByUsername", s.ctx, "bob").Return(nil, user.ErrUserNotFound)
	s.hasher.On("Hash", "pw").Return("hashed", nil)
	s.users.On("Create", s.ctx, mock.Anything).Return(user.ErrUsernameTaken)

	err := s.service.Register(s.ctx, inbound.RegisterCommand{Username: "bob", Password: "pw"})

	s.True(apperrors.Is(err, apperrors.CodeUsernameAlreadyExists))
}

func (s *AccountServiceTestSuite) TestDeleteUser_CascadesToAssociations() {
	u := testutils.NewUserBuilder().WithID("u1").WithUsername("bob").Build()
	s.users.On("FindByUsername", s.ctx, "bob").Return(u, nil)
	s.users.On("Delete", s.ctx, "u1").Return(nil)
	s.userRecipes.On("DeleteByUser", s.ctx, "u1").Return(int64(3), nil)

	s.NoError(s.service.DeleteUser(s.ctx, "bob"))
}

func (s *AccountServiceTestSuite) TestDeleteUser_NotFound() {
	s.users.On("FindByUsername", s.ctx, "ghost").Return(nil, user.ErrUserNotFound)

	err := s.service.DeleteUser(s.ctx, "ghost")

	s.True(apperrors.Is(err, apperrors.CodeUserNotFound))
}

func (s *AccountServiceTestSuite) TestListUsernames_NeverNil() {
	s.users.On("ListUsernames", s.ctx).Return(nil, nil)

	names, err := s.service.ListUsernames(s.ctx)

	s.Require().NoError(err)
	s.NotNil(names)
}

func (s *AccountServiceTestSuite) TestEnsureAdmin_CreatesOnce() {
	s.users.On("FindByUsername", s.ctx, user.AdminUsername).Return(nil, user.ErrUserNotFound).Once()
	s.hasher.On("Hash", DefaultAdminPassword).Return("hashed", nil)
	s.users.On("Create", s.ctx, mock.MatchedBy(func(u *user.User) bool {
		return u.Username == user.AdminUsername && u.Role == user.RoleAdmin
	})).Return(nil)

	created, err := s.service.EnsureAdmin(s.ctx)
	s.Require().NoError(err)
	s.True(created)

	admin := testutils.NewUserBuilder().WithUsername(user.AdminUsername).AsAdmin().Build()
	s.users.On("FindByUsername", s.ctx, user.AdminUsername).Return(admin, nil).Once()

	created, err = s.service.EnsureAdmin(s.ctx)
	s.Require().NoError(err)
	s.False(created)
}

func (s *AccountServiceTestSuite) TestEnsureAdmin_UsesConfiguredPassword() {
	service := NewService(s.users, s.userRecipes, s.hasher, s.tokens, "Sup3r-Secret", zaptest.NewLogger(s.T()))

	s.users.On("FindByUsername", s.ctx, user.AdminUsername).Return(nil, user.ErrUserNotFound)
	s.hasher.On("Hash", "Sup3r-Secret").Return("hashed", nil)
	s.users.On("Create", s.ctx, mock.Anything).Return(nil)

	created, err := service.EnsureAdmin(s.ctx)

	s.Require().NoError(err)
	s.True(created)
}

func (s *AccountServiceTestSuite) TestEnsureAdmin_LeavesDemotedAdminAlone() {
	demoted := testutils.NewUserBuilder().WithUsername(user.AdminUsername).Build()
	s.Require().False(demoted.IsAdmin())
	s.users.On("FindByUsername", s.ctx, user.AdminUsername).Return(demoted, nil)

	created, err := s.service.EnsureAdmin(s.ctx)

	s.Require().NoError(err)
	s.False(created)
	s.users.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
	s.hasher.AssertNotCalled(s.T(), "Hash", mock.Anything)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
