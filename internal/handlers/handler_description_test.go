package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/hnv-dev/product_desc_app/internal/apperrors"
	"github.com/hnv-dev/product_desc_app/internal/core/domain"
	portssvc "github.com/hnv-dev/product_desc_app/internal/core/ports/services"
	"github.com/hnv-dev/product_desc_app/internal/dto"
	"github.com/hnv-dev/product_desc_app/internal/handlers"
	"github.com/hnv-dev/product_desc_app/internal/platform/config"
	"github.com/hnv-dev/product_desc_app/internal/utils"
)

// --- Mock DescriptionService ---
type MockDescriptionService struct {
	mock.Mock
}

func (m *MockDescriptionService) GenerateFromText(ctx context.Context, userID *string, req dto.GenerateTextRequest) (*domain.Description, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Description), args.Error(1)
}
func (m *MockDescriptionService) GenerateFromImage(ctx context.Context, userID *string, in portssvc.GenerateImageInput) (*domain.Description, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Description), args.Error(1)
}
func (m *MockDescriptionService) Styles() []string {
	args := m.Called()
	return args.Get(0).([]string)
}
func (m *MockDescriptionService) ListHistory(ctx context.Context, userID string, limit int) ([]domain.Description, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Description), args.Error(1)
}
func (m *MockDescriptionService) DeleteHistoryItem(ctx context.Context, userID, descriptionID string) error {
	args := m.Called(ctx, userID, descriptionID)
	return args.Error(0)
}
func (m *MockDescriptionService) ClearHistory(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockDescriptionService) ListDescriptions(ctx context.Context, limit, offset int) ([]domain.Description, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Description), args.Error(1)
}
func (m *MockDescriptionService) ScoreSEO(req dto.SEOScoreRequest) dto.SEOScoreResponse {
	args := m.Called(req)
	return args.Get(0).(dto.SEOScoreResponse)
}

var _ portssvc.DescriptionSvcFacade = (*MockDescriptionService)(nil)

// --- Mock SpeechService ---
type MockSpeechService struct {
	mock.Mock
}

func (m *MockSpeechService) Synthesize(ctx context.Context, text, voice string) ([]byte, string, error) {
	args := m.Called(ctx, text, voice)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

var _ portssvc.SpeechSynthesizer = (*MockSpeechService)(nil)

// --- Test Suite ---
type DescriptionHandlerTestSuite struct {
	suite.Suite
	router                 *gin.Engine
	mockDescriptionService *MockDescriptionService
	mockSpeechService      *MockSpeechService
	jwtSecret              string
}

func (suite *DescriptionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockDescriptionService = new(MockDescriptionService)
	suite.mockSpeechService = new(MockSpeechService)

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		IsProduction: true,
	}
	services := &portssvc.ServiceContainer{
		Description: suite.mockDescriptionService,
		Speech:      suite.mockSpeechService,
	}
	handlers.RegisterRoutes(suite.router, cfg, services)
}

func (suite *DescriptionHandlerTestSuite) generateTestToken(userID string) string {
	token, err := utils.GenerateJWT(userID, suite.jwtSecret, time.Hour, "test")
	suite.Require().NoError(err)
	return token
}

func testDescription(userID *string) *domain.Description {
	d := &domain.Description{
		Timestamp: time.Now().UTC(),
		Source:    domain.SourceText,
		Style:     "marketing",
		Content:   "Fresh organic apples, hand picked.",
	}
	if userID != nil {
		d.DescriptionID = uuid.NewString()
		d.UserID = userID
	}
	return d
}

func (suite *DescriptionHandlerTestSuite) TestGenerateFromText_Anonymous() {
	req := dto.GenerateTextRequest{ProductInfo: "organic apples", Style: "marketing"}
	suite.mockDescriptionService.On("GenerateFromText", mock.Anything, (*string)(nil), req).
		Return(testDescription(nil), nil).Once()

	payload, _ := json.Marshal(req)
	httpReq, _ := http.NewRequest(http.MethodPost, "/api/descriptions/text", bytes.NewReader(payload))
	httpReq.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httpReq)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.DescriptionResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Empty(resp.HistoryID)
	suite.Equal("text", resp.Source)
	suite.mockDescriptionService.AssertExpectations(suite.T())
}

func (suite *DescriptionHandlerTestSuite) TestGenerateFromText_Authenticated() {
	userID := uuid.NewString()
	req := dto.GenerateTextRequest{ProductInfo: "organic apples", Style: "friendly"}
	suite.mockDescriptionService.On("GenerateFromText", mock.Anything, mock.MatchedBy(func(id *string) bool {
		return id != nil && *id == userID
	}), req).Return(testDescription(&userID), nil).Once()

	payload, _ := json.Marshal(req)
	httpReq, _ := http.NewRequest(http.MethodPost, "/api/descriptions/text", bytes.NewReader(payload))
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httpReq)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.DescriptionResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.NotEmpty(resp.HistoryID)
}

func (suite *DescriptionHandlerTestSuite) TestGenerateFromText_InvalidTokenIsAnonymous() {
	req := dto.GenerateTextRequest{ProductInfo: "organic apples", Style: "marketing"}
	suite.mockDescriptionService.On("GenerateFromText", mock.Anything, (*string)(nil), req).
		Return(testDescription(nil), nil).Once()

	payload, _ := json.Marshal(req)
	httpReq, _ := http.NewRequest(http.MethodPost, "/api/descriptions/text", bytes.NewReader(payload))
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer not-a-valid-jwt")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httpReq)

	// Undecodable tokens degrade to an anonymous generation, never a 401.
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.DescriptionResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Empty(resp.HistoryID)
	suite.mockDescriptionService.AssertExpectations(suite.T())
}

func (suite *DescriptionHandlerTestSuite) TestGenerateFromText_UpstreamFailureSurfaced() {
	req := dto.GenerateTextRequest{ProductInfo: "organic apples"}
	suite.mockDescriptionService.On("GenerateFromText", mock.Anything, (*string)(nil), req).
		Return(nil, fmt.Errorf("failed to generate description: model quota exceeded")).Once()

	payload, _ := json.Marshal(req)
	httpReq, _ := http.NewRequest(http.MethodPost, "/api/descriptions/text", bytes.NewReader(payload))
	httpReq.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httpReq)

	suite.Equal(http.StatusInternalServerError, w.Code)
	var resp map[string]string
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Contains(resp["error"], "model quota exceeded")
}

func (suite *DescriptionHandlerTestSuite) TestGenerateFromText_MissingProductInfo() {
	httpReq, _ := http.NewRequest(http.MethodPost, "/api/descriptions/text", bytes.NewReader([]byte(`{"style":"marketing"}`)))
	httpReq.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httpReq)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockDescriptionService.AssertNotCalled(suite.T(), "GenerateFromText")
}

func (suite *DescriptionHandlerTestSuite) TestGenerateFromImage_Anonymous() {
	suite.mockDescriptionService.On("GenerateFromImage", mock.Anything, (*string)(nil),
		mock.MatchedBy(func(in portssvc.GenerateImageInput) bool {
			return in.Style == "professional" && in.ImageFormat == "png" && len(in.ImageData) > 0
		})).Return(testDescription(nil), nil).Once()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="apple.png"`)
	header.Set("Content-Type", "image/png")
	part, err := writer.CreatePart(header)
	suite.Require().NoError(err)
	_, err = part.Write([]byte("not-really-a-png"))
	suite.Require().NoError(err)
	suite.Require().NoError(writer.WriteField("style", "professional"))
	suite.Require().NoError(writer.Close())

	httpReq, _ := http.NewRequest(http.MethodPost, "/api/descriptions/image", &body)
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httpReq)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockDescriptionService.AssertExpectations(suite.T())
}

func (suite *DescriptionHandlerTestSuite) TestGenerateFromImage_MissingFile() {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	suite.Require().NoError(writer.WriteField("style", "marketing"))
	suite.Require().NoError(writer.Close())

	httpReq, _ := http.NewRequest(http.MethodPost, "/api/descriptions/image", &body)
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httpReq)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockDescriptionService.AssertNotCalled(suite.T(), "GenerateFromImage")
}

func (suite *DescriptionHandlerTestSuite) TestListHistory_Success() {
	userID := uuid.NewString()
	suite.mockDescriptionService.On("ListHistory", mock.Anything, userID, 20).
		Return([]domain.Description{*testDescription(&userID)}, nil).Once()

	httpReq, _ := http.NewRequest(http.MethodGet, "/api/history", nil)
	httpReq.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httpReq)

	suite.Equal(http.StatusOK, w.Code)
	var items []dto.HistoryItem
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &items))
	suite.Len(items, 1)
	suite.Equal("Fresh organic apples, hand picked.", items[0].FullDescription)
}

func (suite *DescriptionHandlerTestSuite) TestListHistory_RequiresAuth() {
	httpReq, _ := http.NewRequest(http.MethodGet, "/api/history", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httpReq)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockDescriptionService.AssertNotCalled(suite.T(), "ListHistory")
}

func (suite *DescriptionHandlerTestSuite) TestDeleteHistoryItem_NotFound() {
	userID := uuid.NewString()
	itemID := uuid.NewString()
	suite.mockDescriptionService.On("DeleteHistoryItem", mock.Anything, userID, itemID).
		Return(apperrors.NewNotFoundError("history item not found")).Once()

	httpReq, _ := http.NewRequest(http.MethodDelete, "/api/history/"+itemID, nil)
	httpReq.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httpReq)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *DescriptionHandlerTestSuite) TestClearHistory_Success() {
	userID := uuid.NewString()
	suite.mockDescriptionService.On("ClearHistory", mock.Anything, userID).
		Return(int64(3), nil).Once()

	httpReq, _ := http.NewRequest(http.MethodDelete, "/api/history", nil)
	httpReq.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httpReq)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.MessageResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Deleted 3 history items", resp.Message)
}

func (suite *DescriptionHandlerTestSuite) TestListStyles_Public() {
	suite.mockDescriptionService.On("Styles").
		Return([]string{"friendly", "marketing", "professional", "storytelling"}).Once()

	httpReq, _ := http.NewRequest(http.MethodGet, "/api/styles", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httpReq)

	suite.Equal(http.StatusOK, w.Code)
	var styles []string
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &styles))
	suite.Equal([]string{"friendly", "marketing", "professional", "storytelling"}, styles)
}

func (suite *DescriptionHandlerTestSuite) TestTextToSpeech_Success() {
	audio := []byte{0xff, 0xfb, 0x90, 0x00}
	suite.mockSpeechService.On("Synthesize", mock.Anything, "Fresh apples", "").
		Return(audio, "audio/mpeg", nil).Once()

	payload, _ := json.Marshal(dto.TTSRequest{Text: "Fresh apples"})
	httpReq, _ := http.NewRequest(http.MethodPost, "/api/tts", bytes.NewReader(payload))
	httpReq.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httpReq)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("audio/mpeg", w.Header().Get("Content-Type"))
	suite.Equal(audio, w.Body.Bytes())
}

func (suite *DescriptionHandlerTestSuite) TestScoreSEO() {
	req := dto.SEOScoreRequest{Text: "Fresh organic apples #healthy"}
	suite.mockDescriptionService.On("ScoreSEO", req).
		Return(dto.SEOScoreResponse{Score: 40, Factors: []string{"keywords: 2/7"}}).Once()

	payload, _ := json.Marshal(req)
	httpReq, _ := http.NewRequest(http.MethodPost, "/api/seo-score", bytes.NewReader(payload))
	httpReq.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httpReq)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.SEOScoreResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(40, resp.Score)
}

func TestDescriptionHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(DescriptionHandlerTestSuite))
}
