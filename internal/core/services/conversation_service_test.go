package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/hnv-dev/product_desc_app/internal/apperrors"
	"github.com/hnv-dev/product_desc_app/internal/core/domain"
	"github.com/hnv-dev/product_desc_app/internal/core/services"
)

type ConversationServiceTestSuite struct {
	suite.Suite
	mockConvRepo *MockConversationRepository
	mockDescRepo *MockDescriptionRepository
	service      *services.ConversationService
}

func (suite *ConversationServiceTestSuite) SetupTest() {
	suite.mockConvRepo = new(MockConversationRepository)
	suite.mockDescRepo = new(MockDescriptionRepository)
	suite.service = services.NewConversationService(suite.mockConvRepo, suite.mockDescRepo)
}

func (suite *ConversationServiceTestSuite) TestCreateConversation_DefaultTitle() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockConvRepo.On("SaveConversation", ctx, mock.MatchedBy(func(c domain.Conversation) bool {
		return c.UserID == userID && c.Title == "New conversation" && c.ConversationID != ""
	})).Return(nil).Once()

	conversation, err := suite.service.CreateConversation(ctx, userID, "")

	suite.Require().NoError(err)
	suite.Equal("New conversation", conversation.Title)
	suite.mockConvRepo.AssertExpectations(suite.T())
}

func (suite *ConversationServiceTestSuite) TestRenameConversation_NotOwned() {
	ctx := context.Background()
	userID := uuid.NewString()
	convID := uuid.NewString()

	suite.mockConvRepo.On("UpdateConversationTitle", ctx, convID, userID, "Renamed", mock.AnythingOfType("time.Time")).
		Return(false, nil).Once()

	conversation, err := suite.service.RenameConversation(ctx, userID, convID, "Renamed")

	suite.Require().Error(err)
	suite.Nil(conversation)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ConversationServiceTestSuite) TestDeleteConversation_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	convID := uuid.NewString()

	suite.mockConvRepo.On("DeleteConversation", ctx, convID, userID).Return(true, nil).Once()

	err := suite.service.DeleteConversation(ctx, userID, convID)

	suite.Require().NoError(err)
	suite.mockConvRepo.AssertExpectations(suite.T())
}

func (suite *ConversationServiceTestSuite) TestListMessages_ForeignConversationReadsAsMissing() {
	ctx := context.Background()
	userID := uuid.NewString()
	convID := uuid.NewString()

	suite.mockConvRepo.On("FindConversation", ctx, convID, userID).Return(nil, apperrors.ErrNotFound).Once()

	messages, err := suite.service.ListMessages(ctx, userID, convID)

	suite.Require().Error(err)
	suite.Nil(messages)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockDescRepo.AssertNotCalled(suite.T(), "FindDescriptionsByConversation", mock.Anything, mock.Anything, mock.Anything)
}

func TestConversationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ConversationServiceTestSuite))
}
