package slack

import (
	"fmt"
	"strings"
)

type CommandType string

const (
	CmdSetup  CommandType = "setup"
	CmdStatus CommandType = "status"
	CmdHelp   CommandType = "help"
)

type Command struct {
	Type CommandType
	Args []string
	Raw  string
}

func ParseCommand(text string) (*Command, error) {
	parts := strings.Fields(strings.TrimSpace(text))

	cmd := &Command{
		Raw: text,
	}

	// Bare /standup starts the setup flow.
	if len(parts) == 0 {
		cmd.Type = CmdSetup
		return cmd, nil
	}

	switch parts[0] {
	case "setup", "set":
		cmd.Type = CmdSetup
	case "status":
		cmd.Type = CmdStatus
	case "help":
		cmd.Type = CmdHelp
	default:
		return nil, fmt.Errorf("unknown command: %s", parts[0])
	}

	if len(parts) > 1 {
		cmd.Args = parts[1:]
	}

	return cmd, nil
}

func GetHelpText() string {
	return `*Available commands:*

• ` + "`/standup`" + ` or ` + "`/standup setup`" + ` - Open the standup setup form
• ` + "`/standup status`" + ` - Show the current standup schedule
• ` + "`/standup help`" + ` - Show this help

The setup form asks for the channel name, the standup time (HH:MM, 24h), the standup details and the team name. Reminders go out in the 15 minutes before the standup time.`
}
