package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/hnv-dev/product_desc_app/internal/core/domain"
	"github.com/hnv-dev/product_desc_app/internal/core/services"
)

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) CountUsers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReportingRepository) CountDescriptions(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReportingRepository) CountDescriptionsBySource(ctx context.Context, source domain.DescriptionSource) (int64, error) {
	args := m.Called(ctx, source)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReportingRepository) DescriptionsPerDay(ctx context.Context, since time.Time) ([]domain.DailyCount, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DailyCount), args.Error(1)
}

// --- Test Suite ---
type ReportingServiceTestSuite struct {
	suite.Suite
	mockRepo *MockReportingRepository
	service  *services.ReportingService
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReportingRepository)
	suite.service = services.NewReportingService(suite.mockRepo)
}

func (suite *ReportingServiceTestSuite) TestStats() {
	ctx := context.Background()

	suite.mockRepo.On("CountUsers", ctx).Return(int64(12), nil).Once()
	suite.mockRepo.On("CountDescriptions", ctx).Return(int64(40), nil).Once()
	suite.mockRepo.On("CountDescriptionsBySource", ctx, domain.SourceImage).Return(int64(15), nil).Once()
	suite.mockRepo.On("CountDescriptionsBySource", ctx, domain.SourceText).Return(int64(25), nil).Once()

	stats, err := suite.service.Stats(ctx)

	suite.Require().NoError(err)
	suite.Equal(int64(12), stats.TotalUsers)
	suite.Equal(int64(40), stats.TotalDescriptions)
	suite.Equal(int64(15), stats.ImageDescriptions)
	suite.Equal(int64(25), stats.TextDescriptions)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestTimeSeriesZeroFillsMissingDays() {
	ctx := context.Background()
	today := time.Now().UTC().Truncate(24 * time.Hour)

	// Only two of the last seven days saw any activity
	buckets := []domain.DailyCount{
		{Day: today.AddDate(0, 0, -4), Count: 3},
		{Day: today, Count: 1},
	}
	suite.mockRepo.On("DescriptionsPerDay", ctx, today.AddDate(0, 0, -6)).Return(buckets, nil).Once()

	series, err := suite.service.TimeSeries(ctx, 7)

	suite.Require().NoError(err)
	suite.Require().Len(series, 7)
	suite.Equal(today.AddDate(0, 0, -6), series[0].Day)
	suite.Equal(today, series[6].Day)
	suite.Equal(int64(3), series[2].Count)
	suite.Equal(int64(1), series[6].Count)
	suite.Equal(int64(0), series[1].Count)
}

func (suite *ReportingServiceTestSuite) TestTimeSeriesDefaultsDays() {
	ctx := context.Background()
	today := time.Now().UTC().Truncate(24 * time.Hour)

	suite.mockRepo.On("DescriptionsPerDay", ctx, today.AddDate(0, 0, -29)).Return([]domain.DailyCount{}, nil).Once()

	series, err := suite.service.TimeSeries(ctx, 0)

	suite.Require().NoError(err)
	suite.Len(series, 30)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
