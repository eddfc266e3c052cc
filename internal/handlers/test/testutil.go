package test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/standup-bot/slack-standup-bot/internal/handlers"
	"github.com/standup-bot/slack-standup-bot/mocks"
	"go.uber.org/mock/gomock"
)

const SigningSecret = "test-signing-secret"

type ServiceMocks struct {
	StandupServiceMock *mocks.MockStandupService
	SlackClientMock    *mocks.MockSlackClient
}

func GetHandlerTest(t *testing.T) (m ServiceMocks, handler *handlers.SlackHandler, ctrl *gomock.Controller) {
	t.Helper()

	ctrl = gomock.NewController(t)
	m = ServiceMocks{
		StandupServiceMock: mocks.NewMockStandupService(ctrl),
		SlackClientMock:    mocks.NewMockSlackClient(ctrl),
	}

	handler = handlers.New(m.SlackClientMock, m.StandupServiceMock, SigningSecret)

	return
}

// CreateSlashRequest creates a properly signed Slack slash command request
func CreateSlashRequest(t *testing.T, text, channelID, channelName, userID, teamID, triggerID, signingSecret string) *http.Request {
	t.Helper()

	form := url.Values{
		"token":        {"test-token"},
		"team_id":      {teamID},
		"team_domain":  {"test-team"},
		"channel_id":   {channelID},
		"channel_name": {channelName},
		"user_id":      {userID},
		"user_name":    {"test-user"},
		"command":      {"/standup"},
		"text":         {text},
		"trigger_id":   {triggerID},
		"response_url": {"https://hooks.slack.com/commands/test"},
	}

	return signedFormRequest(t, "/slack/commands", form, signingSecret)
}

// CreateInteractionRequest creates a properly signed interactive payload request
func CreateInteractionRequest(t *testing.T, payload, signingSecret string) *http.Request {
	t.Helper()

	form := url.Values{
		"payload": {payload},
	}

	return signedFormRequest(t, "/slack/interactive", form, signingSecret)
}

func signedFormRequest(t *testing.T, path string, form url.Values, signingSecret string) *http.Request {
	t.Helper()

	body := form.Encode()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	req.Header.Set("X-Slack-Request-Timestamp", timestamp)

	mac := hmac.New(sha256.New, []byte(signingSecret))
	mac.Write([]byte(fmt.Sprintf("v0:%s:%s", timestamp, body)))
	signature := "v0=" + hex.EncodeToString(mac.Sum(nil))
	req.Header.Set("X-Slack-Signature", signature)

	return req
}
