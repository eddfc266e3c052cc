package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/slack-go/slack"
	"github.com/standup-bot/slack-standup-bot/internal/domain"
	"github.com/standup-bot/slack-standup-bot/internal/domain/contract"
	slackcmd "github.com/standup-bot/slack-standup-bot/internal/slack"
)

type SlackHandler struct {
	slackClient    contract.SlackClient
	standupService contract.StandupService
	signingSecret  string
}

func New(slackClient contract.SlackClient, standupService contract.StandupService, signingSecret string) *SlackHandler {
	return &SlackHandler{
		slackClient:    slackClient,
		standupService: standupService,
		signingSecret:  signingSecret,
	}
}

func (h *SlackHandler) HandleSlashCommand(w http.ResponseWriter, r *http.Request) {
	if !h.verifyRequest(w, r) {
		return
	}

	// Parse command
	s, err := slack.SlashCommandParse(r)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	// Parse our command
	cmd, err := slackcmd.ParseCommand(s.Text)
	if err != nil {
		h.respondWithError(w, err.Error())
		return
	}

	switch cmd.Type {
	case slackcmd.CmdSetup:
		h.handleSetup(w, r, &s)
	case slackcmd.CmdStatus:
		h.respondWithMsg(w, h.handleStatus(&s))
	case slackcmd.CmdHelp:
		h.respondWithMsg(w, h.handleHelp())
	default:
		h.respondWithError(w, "Unknown command")
	}
}

// handleSetup opens the standup setup modal. The origin channel travels in
// the view's private metadata so the confirmation can be sent back there.
func (h *SlackHandler) handleSetup(w http.ResponseWriter, r *http.Request, slashCmd *slack.SlashCommand) {
	view := buildSetupModal(slashCmd.ChannelID)

	if _, err := h.slackClient.OpenViewContext(r.Context(), slashCmd.TriggerID, view); err != nil {
		log.Printf("Failed to open setup modal: %v", err)
		h.respondWithError(w, "Could not open the setup form. Please try again.")
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *SlackHandler) handleStatus(slashCmd *slack.SlashCommand) *slack.Msg {
	schedule := h.standupService.GetSchedule(slashCmd.TeamID)
	if schedule == nil {
		return &slack.Msg{
			ResponseType: slack.ResponseTypeEphemeral,
			Text:         "No standup is scheduled yet. Use `/standup setup` to create one.",
		}
	}

	text := fmt.Sprintf("*Standup for team %q*\n• Channel: #%s\n• Time: %s\n• Details: %s",
		schedule.TeamLabel,
		schedule.ChannelName,
		schedule.FireTime.Format("Mon Jan 2 at 15:04"),
		schedule.Description,
	)

	if count, err := h.standupService.ReminderCount(slashCmd.TeamID); err == nil {
		text += fmt.Sprintf("\n• Reminders sent: %d", count)
	} else {
		log.Printf("Failed to count reminders for team %s: %v", slashCmd.TeamID, err)
	}

	return &slack.Msg{
		ResponseType: slack.ResponseTypeEphemeral,
		Text:         text,
	}
}

func (h *SlackHandler) handleHelp() *slack.Msg {
	return &slack.Msg{
		ResponseType: slack.ResponseTypeEphemeral,
		Text:         slackcmd.GetHelpText(),
	}
}

// HandleInteraction receives modal submissions and cancellations.
func (h *SlackHandler) HandleInteraction(w http.ResponseWriter, r *http.Request) {
	if !h.verifyRequest(w, r) {
		return
	}

	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var callback slack.InteractionCallback
	if err := json.Unmarshal([]byte(r.PostFormValue("payload")), &callback); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	switch callback.Type {
	case slack.InteractionTypeViewSubmission:
		h.handleViewSubmission(w, r, &callback)
	case slack.InteractionTypeViewClosed:
		h.handleViewClosed(r, &callback)
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusOK)
	}
}

func (h *SlackHandler) handleViewSubmission(w http.ResponseWriter, r *http.Request, callback *slack.InteractionCallback) {
	if callback.View.CallbackID != setupCallbackID {
		w.WriteHeader(http.StatusOK)
		return
	}

	input := contract.SetupInput{
		TeamID:          callback.Team.ID,
		RequesterID:     callback.User.ID,
		OriginChannelID: callback.View.PrivateMetadata,
		ChannelName:     blockValue(callback, blockChannelName, actionChannelName),
		StandupTime:     blockValue(callback, blockStandupTime, actionStandupTime),
		Details:         blockValue(callback, blockStandupDetails, actionStandupDetails),
		TeamName:        blockValue(callback, blockTeamName, actionTeamName),
	}

	_, err := h.standupService.SetupStandup(r.Context(), input)
	if err == nil {
		// Empty 200 closes the modal; the confirmation and the channel
		// notice were already sent by the service.
		w.WriteHeader(http.StatusOK)
		return
	}

	// User-correctable validation errors show up on the offending field.
	var targetNotFound *domain.TargetNotFoundError
	switch {
	case errors.As(err, &targetNotFound):
		h.respondWithViewErrors(w, map[string]string{
			blockChannelName: fmt.Sprintf("Channel %q not found. Please make sure the name is correct.", targetNotFound.Name),
		})
	case errors.Is(err, domain.ErrInvalidTimeFormat):
		h.respondWithViewErrors(w, map[string]string{
			blockStandupTime: "Invalid time format. Please use HH:MM.",
		})
	default:
		log.Printf("Standup setup failed for team %s: %v", input.TeamID, err)
		h.respondWithViewErrors(w, map[string]string{
			blockChannelName: "Something went wrong. Please try again.",
		})
	}
}

func (h *SlackHandler) handleViewClosed(r *http.Request, callback *slack.InteractionCallback) {
	if callback.View.CallbackID != setupCallbackID {
		return
	}

	if _, err := h.slackClient.PostEphemeralContext(r.Context(), callback.View.PrivateMetadata, callback.User.ID,
		slack.MsgOptionText("Standup setup has been canceled.", false)); err != nil {
		log.Printf("Failed to send cancel notice: %v", err)
	}
}

// verifyRequest checks the Slack signature, restoring the body for later
// parsing. Returns false after writing the error status.
func (h *SlackHandler) verifyRequest(w http.ResponseWriter, r *http.Request) bool {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return false
	}
	r.Body = io.NopCloser(bytes.NewBuffer(body))

	verifier, err := slack.NewSecretsVerifier(r.Header, h.signingSecret)
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return false
	}

	if _, err := verifier.Write(body); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return false
	}

	if err := verifier.Ensure(); err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return false
	}

	return true
}

func (h *SlackHandler) respondWithMsg(w http.ResponseWriter, msg *slack.Msg) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(msg)
}

func (h *SlackHandler) respondWithError(w http.ResponseWriter, message string) {
	h.respondWithMsg(w, &slack.Msg{
		ResponseType: slack.ResponseTypeEphemeral,
		Text:         fmt.Sprintf("❌ %s", message),
	})
}

func (h *SlackHandler) respondWithViewErrors(w http.ResponseWriter, viewErrors map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(slack.NewErrorsViewSubmissionResponse(viewErrors))
}

func blockValue(callback *slack.InteractionCallback, blockID, actionID string) string {
	return callback.View.State.Values[blockID][actionID].Value
}
