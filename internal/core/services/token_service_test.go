package services_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/hnv-dev/product_desc_app/internal/apperrors"
	"github.com/hnv-dev/product_desc_app/internal/core/services"
	"github.com/hnv-dev/product_desc_app/internal/utils"
)

type TokenServiceTestSuite struct {
	suite.Suite
	service *services.TokenService
	secret  string
}

func (suite *TokenServiceTestSuite) SetupTest() {
	suite.secret = "test-secret-key-for-token-tests"
	suite.service = services.NewTokenService(suite.secret, time.Hour, "descgen-test")
}

func (suite *TokenServiceTestSuite) TestRoundTrip() {
	subject := uuid.NewString()

	token, err := suite.service.GenerateAccessToken(subject)
	suite.Require().NoError(err)
	suite.Require().NotEmpty(token)

	parsedSubject, err := suite.service.ParseAccessToken(token)
	suite.Require().NoError(err)
	suite.Equal(subject, parsedSubject)
}

func (suite *TokenServiceTestSuite) TestExpiredTokenFailsClosed() {
	subject := uuid.NewString()
	expired, err := utils.GenerateJWT(subject, suite.secret, -time.Minute, "descgen-test")
	suite.Require().NoError(err)

	_, err = suite.service.ParseAccessToken(expired)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *TokenServiceTestSuite) TestTamperedTokenFailsClosed() {
	token, err := suite.service.GenerateAccessToken(uuid.NewString())
	suite.Require().NoError(err)

	tampered := token[:len(token)-2] + "xx"
	_, err = suite.service.ParseAccessToken(tampered)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *TokenServiceTestSuite) TestWrongSecretFailsClosed() {
	foreign, err := utils.GenerateJWT(uuid.NewString(), "some-other-secret", time.Hour, "descgen-test")
	suite.Require().NoError(err)

	_, err = suite.service.ParseAccessToken(foreign)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *TokenServiceTestSuite) TestGarbageTokenFailsClosed() {
	_, err := suite.service.ParseAccessToken("not-a-token")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func TestTokenServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}
