package handlers

import "github.com/slack-go/slack"

const setupCallbackID = "standup_setup"

// Block and action IDs of the setup modal fields
const (
	blockChannelName    = "channel_name"
	blockStandupTime    = "standup_time"
	blockStandupDetails = "standup_details"
	blockTeamName       = "team_name"

	actionChannelName    = "channel_name_input"
	actionStandupTime    = "standup_time_input"
	actionStandupDetails = "standup_details_input"
	actionTeamName       = "team_name_input"
)

// buildSetupModal builds the four-field standup setup form. The origin
// channel ID is stashed in PrivateMetadata for the confirmation message.
func buildSetupModal(originChannelID string) slack.ModalViewRequest {
	channelName := slack.NewInputBlock(blockChannelName,
		slack.NewTextBlockObject(slack.PlainTextType, "Channel Name", false, false),
		nil,
		slack.NewPlainTextInputBlockElement(
			slack.NewTextBlockObject(slack.PlainTextType, "Enter the channel name", false, false),
			actionChannelName,
		),
	)

	standupTime := slack.NewInputBlock(blockStandupTime,
		slack.NewTextBlockObject(slack.PlainTextType, "Standup Time", false, false),
		nil,
		slack.NewPlainTextInputBlockElement(
			slack.NewTextBlockObject(slack.PlainTextType, "HH:MM", false, false),
			actionStandupTime,
		),
	)

	detailsElement := slack.NewPlainTextInputBlockElement(
		slack.NewTextBlockObject(slack.PlainTextType, "Details for the standup", false, false),
		actionStandupDetails,
	)
	detailsElement.Multiline = true
	standupDetails := slack.NewInputBlock(blockStandupDetails,
		slack.NewTextBlockObject(slack.PlainTextType, "Standup Details", false, false),
		nil,
		detailsElement,
	)

	teamName := slack.NewInputBlock(blockTeamName,
		slack.NewTextBlockObject(slack.PlainTextType, "Team Name", false, false),
		nil,
		slack.NewPlainTextInputBlockElement(
			slack.NewTextBlockObject(slack.PlainTextType, "Enter the team name", false, false),
			actionTeamName,
		),
	)

	return slack.ModalViewRequest{
		Type:            slack.VTModal,
		Title:           slack.NewTextBlockObject(slack.PlainTextType, "Standup Setup", false, false),
		Submit:          slack.NewTextBlockObject(slack.PlainTextType, "Submit", false, false),
		Close:           slack.NewTextBlockObject(slack.PlainTextType, "Cancel", false, false),
		CallbackID:      setupCallbackID,
		PrivateMetadata: originChannelID,
		NotifyOnClose:   true,
		Blocks: slack.Blocks{
			BlockSet: []slack.Block{
				channelName,
				standupTime,
				standupDetails,
				teamName,
			},
		},
	}
}
