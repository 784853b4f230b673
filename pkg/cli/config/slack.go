package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/caseflow/pkg/domain/interfaces"
	"github.com/secmon-lab/caseflow/pkg/service/slack"
	"github.com/secmon-lab/caseflow/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

type Slack struct {
	botToken  string
	channelID string
}

func (x *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack Bot User OAuth Token (for case notifications)",
			Category:    "Slack",
			Destination: &x.botToken,
			Sources:     cli.EnvVars("CASEFLOW_SLACK_BOT_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "slack-channel-id",
			Usage:       "Slack channel ID to post case notifications to",
			Category:    "Slack",
			Destination: &x.channelID,
			Sources:     cli.EnvVars("CASEFLOW_SLACK_CHANNEL_ID"),
		},
	}
}

func (x Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("bot-token.len", len(x.botToken)),
		slog.String("channel-id", x.channelID),
	)
}

// IsConfigured checks if both the token and the channel are set
func (x *Slack) IsConfigured() bool {
	return x.botToken != "" && x.channelID != ""
}

// Configure returns a Slack notifier, or nil when Slack is not configured.
// baseURL is used to link notifications back to the case.
func (x *Slack) Configure(baseURL string) (interfaces.Notifier, error) {
	if x.botToken == "" && x.channelID == "" {
		logging.Default().Info("Slack is not configured, case notifications are disabled")
		return nil, nil
	}
	if !x.IsConfigured() {
		return nil, goerr.Wrap(ErrInvalidConfig, "--slack-bot-token and --slack-channel-id must be set together")
	}

	svc, err := slack.New(x.botToken)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize slack service")
	}

	notifier, err := slack.NewNotifier(svc, x.channelID, slack.WithBaseURL(baseURL))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize slack notifier")
	}

	logging.Default().Info("Slack notifications enabled", "channel_id", x.channelID)
	return notifier, nil
}
