package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/slack-go/slack"
	"github.com/standup-bot/slack-standup-bot/internal/domain"
	"github.com/standup-bot/slack-standup-bot/internal/domain/contract"
	"github.com/standup-bot/slack-standup-bot/internal/domain/entity"
	"github.com/standup-bot/slack-standup-bot/internal/handlers/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func decodeMsg(t *testing.T, rec *httptest.ResponseRecorder) slack.Msg {
	t.Helper()

	var msg slack.Msg
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&msg))
	return msg
}

func TestHandleSlashCommand_InvalidSignature(t *testing.T) {
	_, handler, ctrl := test.GetHandlerTest(t)
	defer ctrl.Finish()

	req := test.CreateSlashRequest(t, "help", "C555", "general", "U999", "T123", "trigger123", "wrong-secret")
	rec := httptest.NewRecorder()

	handler.HandleSlashCommand(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleSlashCommand_Help(t *testing.T) {
	_, handler, ctrl := test.GetHandlerTest(t)
	defer ctrl.Finish()

	req := test.CreateSlashRequest(t, "help", "C555", "general", "U999", "T123", "trigger123", test.SigningSecret)
	rec := httptest.NewRecorder()

	handler.HandleSlashCommand(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	msg := decodeMsg(t, rec)
	assert.Equal(t, slack.ResponseTypeEphemeral, msg.ResponseType)
	assert.Contains(t, msg.Text, "/standup setup")
}

func TestHandleSlashCommand_UnknownCommand(t *testing.T) {
	_, handler, ctrl := test.GetHandlerTest(t)
	defer ctrl.Finish()

	req := test.CreateSlashRequest(t, "destroy", "C555", "general", "U999", "T123", "trigger123", test.SigningSecret)
	rec := httptest.NewRecorder()

	handler.HandleSlashCommand(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	msg := decodeMsg(t, rec)
	assert.Contains(t, msg.Text, "❌")
}

func TestHandleSlashCommand_Status(t *testing.T) {
	t.Run("Should report the configured standup", func(t *testing.T) {
		m, handler, ctrl := test.GetHandlerTest(t)
		defer ctrl.Finish()

		fireTime := time.Date(2024, 3, 15, 9, 0, 0, 0, time.Local)
		m.StandupServiceMock.EXPECT().GetSchedule("T123").Return(&entity.Schedule{
			TeamID:      "T123",
			ChannelID:   "C002",
			ChannelName: "general",
			FireTime:    fireTime,
			Description: "sync up",
			TeamLabel:   "Alpha",
		})
		m.StandupServiceMock.EXPECT().ReminderCount("T123").Return(int64(4), nil)

		req := test.CreateSlashRequest(t, "status", "C555", "general", "U999", "T123", "trigger123", test.SigningSecret)
		rec := httptest.NewRecorder()

		handler.HandleSlashCommand(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		msg := decodeMsg(t, rec)
		assert.Contains(t, msg.Text, `"Alpha"`)
		assert.Contains(t, msg.Text, "#general")
		assert.Contains(t, msg.Text, "Reminders sent: 4")
	})

	t.Run("Should tell the user when nothing is scheduled", func(t *testing.T) {
		m, handler, ctrl := test.GetHandlerTest(t)
		defer ctrl.Finish()

		m.StandupServiceMock.EXPECT().GetSchedule("T123").Return(nil)

		req := test.CreateSlashRequest(t, "status", "C555", "general", "U999", "T123", "trigger123", test.SigningSecret)
		rec := httptest.NewRecorder()

		handler.HandleSlashCommand(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		msg := decodeMsg(t, rec)
		assert.Contains(t, msg.Text, "No standup is scheduled yet")
	})

	t.Run("Should still answer when the reminder count fails", func(t *testing.T) {
		m, handler, ctrl := test.GetHandlerTest(t)
		defer ctrl.Finish()

		m.StandupServiceMock.EXPECT().GetSchedule("T123").Return(&entity.Schedule{
			TeamID:      "T123",
			ChannelName: "general",
			TeamLabel:   "Alpha",
			FireTime:    time.Now(),
		})
		m.StandupServiceMock.EXPECT().ReminderCount("T123").Return(int64(0), fmt.Errorf("db is down"))

		req := test.CreateSlashRequest(t, "status", "C555", "general", "U999", "T123", "trigger123", test.SigningSecret)
		rec := httptest.NewRecorder()

		handler.HandleSlashCommand(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		msg := decodeMsg(t, rec)
		assert.NotContains(t, msg.Text, "Reminders sent")
	})
}

func TestHandleSlashCommand_Setup(t *testing.T) {
	t.Run("Should open the setup modal with the origin channel attached", func(t *testing.T) {
		m, handler, ctrl := test.GetHandlerTest(t)
		defer ctrl.Finish()

		m.SlackClientMock.EXPECT().
			OpenViewContext(gomock.Any(), "trigger123", gomock.Any()).
			DoAndReturn(func(_ any, _ string, view slack.ModalViewRequest) (*slack.ViewResponse, error) {
				assert.Equal(t, "standup_setup", view.CallbackID)
				assert.Equal(t, "C555", view.PrivateMetadata)
				assert.True(t, view.NotifyOnClose)
				assert.Len(t, view.Blocks.BlockSet, 4)
				return &slack.ViewResponse{}, nil
			})

		req := test.CreateSlashRequest(t, "", "C555", "general", "U999", "T123", "trigger123", test.SigningSecret)
		rec := httptest.NewRecorder()

		handler.HandleSlashCommand(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Zero(t, rec.Body.Len())
	})

	t.Run("Should report a failure to open the modal", func(t *testing.T) {
		m, handler, ctrl := test.GetHandlerTest(t)
		defer ctrl.Finish()

		m.SlackClientMock.EXPECT().
			OpenViewContext(gomock.Any(), "trigger123", gomock.Any()).
			Return(nil, fmt.Errorf("trigger expired"))

		req := test.CreateSlashRequest(t, "setup", "C555", "general", "U999", "T123", "trigger123", test.SigningSecret)
		rec := httptest.NewRecorder()

		handler.HandleSlashCommand(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		msg := decodeMsg(t, rec)
		assert.Contains(t, msg.Text, "Could not open the setup form")
	})
}

func submissionPayload(channelName, standupTime string) string {
	return fmt.Sprintf(`{
		"type": "view_submission",
		"team": {"id": "T123"},
		"user": {"id": "U999"},
		"view": {
			"callback_id": "standup_setup",
			"private_metadata": "C555",
			"state": {
				"values": {
					"channel_name":    {"channel_name_input":    {"type": "plain_text_input", "value": %q}},
					"standup_time":    {"standup_time_input":    {"type": "plain_text_input", "value": %q}},
					"standup_details": {"standup_details_input": {"type": "plain_text_input", "value": "sync up"}},
					"team_name":       {"team_name_input":       {"type": "plain_text_input", "value": "Alpha"}}
				}
			}
		}
	}`, channelName, standupTime)
}

func decodeViewErrors(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()

	var resp struct {
		ResponseAction string            `json:"response_action"`
		Errors         map[string]string `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, "errors", resp.ResponseAction)
	return resp.Errors
}

func TestHandleInteraction_ViewSubmission(t *testing.T) {
	t.Run("Should create the standup and close the modal", func(t *testing.T) {
		m, handler, ctrl := test.GetHandlerTest(t)
		defer ctrl.Finish()

		wantInput := contract.SetupInput{
			TeamID:          "T123",
			RequesterID:     "U999",
			OriginChannelID: "C555",
			ChannelName:     "general",
			StandupTime:     "09:00",
			Details:         "sync up",
			TeamName:        "Alpha",
		}
		m.StandupServiceMock.EXPECT().
			SetupStandup(gomock.Any(), wantInput).
			Return(&entity.Schedule{TeamID: "T123"}, nil)

		req := test.CreateInteractionRequest(t, submissionPayload("general", "09:00"), test.SigningSecret)
		rec := httptest.NewRecorder()

		handler.HandleInteraction(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Zero(t, rec.Body.Len(), "an empty 200 is what closes the modal")
	})

	t.Run("Should surface an unknown channel on the channel field", func(t *testing.T) {
		m, handler, ctrl := test.GetHandlerTest(t)
		defer ctrl.Finish()

		m.StandupServiceMock.EXPECT().
			SetupStandup(gomock.Any(), gomock.Any()).
			Return(nil, &domain.TargetNotFoundError{Name: "nope"})

		req := test.CreateInteractionRequest(t, submissionPayload("nope", "09:00"), test.SigningSecret)
		rec := httptest.NewRecorder()

		handler.HandleInteraction(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		errs := decodeViewErrors(t, rec)
		assert.Contains(t, errs["channel_name"], `"nope"`)
	})

	t.Run("Should surface a bad time on the time field", func(t *testing.T) {
		m, handler, ctrl := test.GetHandlerTest(t)
		defer ctrl.Finish()

		m.StandupServiceMock.EXPECT().
			SetupStandup(gomock.Any(), gomock.Any()).
			Return(nil, domain.ErrInvalidTimeFormat)

		req := test.CreateInteractionRequest(t, submissionPayload("general", "25:99"), test.SigningSecret)
		rec := httptest.NewRecorder()

		handler.HandleInteraction(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		errs := decodeViewErrors(t, rec)
		assert.Contains(t, errs["standup_time"], "HH:MM")
	})

	t.Run("Should show a generic error on unexpected failures", func(t *testing.T) {
		m, handler, ctrl := test.GetHandlerTest(t)
		defer ctrl.Finish()

		m.StandupServiceMock.EXPECT().
			SetupStandup(gomock.Any(), gomock.Any()).
			Return(nil, fmt.Errorf("slack is down"))

		req := test.CreateInteractionRequest(t, submissionPayload("general", "09:00"), test.SigningSecret)
		rec := httptest.NewRecorder()

		handler.HandleInteraction(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		errs := decodeViewErrors(t, rec)
		assert.Contains(t, errs["channel_name"], "Something went wrong")
	})

	t.Run("Should ignore submissions from other modals", func(t *testing.T) {
		_, handler, ctrl := test.GetHandlerTest(t)
		defer ctrl.Finish()

		payload := `{
			"type": "view_submission",
			"team": {"id": "T123"},
			"user": {"id": "U999"},
			"view": {"callback_id": "something_else"}
		}`
		req := test.CreateInteractionRequest(t, payload, test.SigningSecret)
		rec := httptest.NewRecorder()

		handler.HandleInteraction(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Zero(t, rec.Body.Len())
	})
}

func TestHandleInteraction_ViewClosed(t *testing.T) {
	t.Run("Should tell the requester the setup was canceled", func(t *testing.T) {
		m, handler, ctrl := test.GetHandlerTest(t)
		defer ctrl.Finish()

		m.SlackClientMock.EXPECT().
			PostEphemeralContext(gomock.Any(), "C555", "U999", gomock.Any()).
			Return("", nil)

		payload := `{
			"type": "view_closed",
			"team": {"id": "T123"},
			"user": {"id": "U999"},
			"view": {"callback_id": "standup_setup", "private_metadata": "C555"}
		}`
		req := test.CreateInteractionRequest(t, payload, test.SigningSecret)
		rec := httptest.NewRecorder()

		handler.HandleInteraction(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Should swallow a failed cancel notice", func(t *testing.T) {
		m, handler, ctrl := test.GetHandlerTest(t)
		defer ctrl.Finish()

		m.SlackClientMock.EXPECT().
			PostEphemeralContext(gomock.Any(), "C555", "U999", gomock.Any()).
			Return("", fmt.Errorf("user left"))

		payload := `{
			"type": "view_closed",
			"team": {"id": "T123"},
			"user": {"id": "U999"},
			"view": {"callback_id": "standup_setup", "private_metadata": "C555"}
		}`
		req := test.CreateInteractionRequest(t, payload, test.SigningSecret)
		rec := httptest.NewRecorder()

		handler.HandleInteraction(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestHandleInteraction_InvalidSignature(t *testing.T) {
	_, handler, ctrl := test.GetHandlerTest(t)
	defer ctrl.Finish()

	req := test.CreateInteractionRequest(t, submissionPayload("general", "09:00"), "wrong-secret")
	rec := httptest.NewRecorder()

	handler.HandleInteraction(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
