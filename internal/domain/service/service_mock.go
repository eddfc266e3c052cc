package service

import (
	"testing"
	"time"

	"github.com/standup-bot/slack-standup-bot/mocks"
	"go.uber.org/mock/gomock"
)

type allMocks struct {
	mockDataManager  *mocks.MockDataManager
	mockDeliveryRepo *mocks.MockDeliveryRepo
	mockSlackClient  *mocks.MockSlackClient
}

func newServiceTestMock(t *testing.T) (m allMocks, ctrl *gomock.Controller) {
	t.Helper()

	ctrl = gomock.NewController(t)

	dm := mocks.NewMockDataManager(ctrl)

	deliveryRepo := mocks.NewMockDeliveryRepo(ctrl)
	dm.EXPECT().Delivery().Return(deliveryRepo).AnyTimes()

	slackClient := mocks.NewMockSlackClient(ctrl)

	m = allMocks{
		mockDataManager:  dm,
		mockDeliveryRepo: deliveryRepo,
		mockSlackClient:  slackClient,
	}

	return
}

// fakeClock returns a fixed instant, adjustable between ticks.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}
