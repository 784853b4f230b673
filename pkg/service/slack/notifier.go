package slack

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/caseflow/pkg/domain/interfaces"
	"github.com/secmon-lab/caseflow/pkg/domain/model"
	"github.com/secmon-lab/caseflow/pkg/domain/types"
	"github.com/secmon-lab/caseflow/pkg/utils/logging"
	goslack "github.com/slack-go/slack"
)

// maxSectionTextBytes keeps section text under the Block Kit limit of 3000 characters
const maxSectionTextBytes = 2900

// Notifier posts case events to a single Slack channel
type Notifier struct {
	svc       Service
	channelID string
	baseURL   string
}

var _ interfaces.Notifier = &Notifier{}

// NotifierOption configures a Notifier
type NotifierOption func(*Notifier)

// WithBaseURL adds a link to the case page in every message
func WithBaseURL(baseURL string) NotifierOption {
	return func(n *Notifier) {
		n.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// NewNotifier creates a notifier posting to channelID
func NewNotifier(svc Service, channelID string, opts ...NotifierOption) (*Notifier, error) {
	if svc == nil {
		return nil, goerr.New("Slack service is required")
	}
	if channelID == "" {
		return nil, goerr.New("Slack notification channel is required")
	}

	n := &Notifier{
		svc:       svc,
		channelID: channelID,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n, nil
}

// Notify posts the event
func (n *Notifier) Notify(ctx context.Context, event *model.CaseEvent) error {
	if event == nil || event.Case == nil {
		return goerr.New("case event without case")
	}

	blocks, text := BuildCaseEventBlocks(event, n.caseURL(event.Case.ID))
	ts, err := n.svc.PostMessage(ctx, n.channelID, blocks, text)
	if err != nil {
		return goerr.Wrap(err, "failed to notify case event",
			goerr.V(model.CaseIDKey, event.Case.ID),
			goerr.V("event", event.Type))
	}

	logging.From(ctx).Debug("case event posted to Slack",
		"case_id", event.Case.ID,
		"event", event.Type,
		"ts", ts)
	return nil
}

func (n *Notifier) caseURL(id model.CaseID) string {
	if n.baseURL == "" {
		return ""
	}
	return fmt.Sprintf("%s/cases/%s", n.baseURL, id)
}

func statusEmoji(status types.CaseStatus) string {
	switch status {
	case types.CaseStatusPending:
		return ":hourglass_flowing_sand:"
	case types.CaseStatusWithOKW, types.CaseStatusWithCDD:
		return ":mag:"
	case types.CaseStatusApproved:
		return ":white_check_mark:"
	case types.CaseStatusRejected:
		return ":x:"
	default:
		return ":grey_question:"
	}
}

func eventTitle(event *model.CaseEvent) string {
	name := event.Case.ClientInfo.ClientName
	switch event.Type {
	case model.CaseEventSubmitted:
		return "New case: " + name
	case model.CaseEventCommented:
		return "New comment: " + name
	}

	switch event.Case.Status {
	case types.CaseStatusApproved:
		return "Case approved: " + name
	case types.CaseStatusRejected:
		return "Case rejected: " + name
	default:
		return "Case updated: " + name
	}
}

// BuildCaseEventBlocks renders an event as Block Kit blocks and a fallback text
func BuildCaseEventBlocks(event *model.CaseEvent, caseURL string) ([]goslack.Block, string) {
	c := event.Case
	title := eventTitle(event)

	blocks := []goslack.Block{
		goslack.NewHeaderBlock(
			goslack.NewTextBlockObject(goslack.PlainTextType, title, true, false),
		),
	}

	var body string
	switch event.Type {
	case model.CaseEventStatusChanged:
		body = fmt.Sprintf("%s `%s` → `%s`", statusEmoji(c.Status), event.PrevStatus, c.Status)
	case model.CaseEventCommented:
		if n := len(c.Comments); n > 0 {
			last := c.Comments[n-1]
			body = fmt.Sprintf("*%s*: %s", last.Author, last.Text)
		}
	default:
		changes := make([]string, 0, len(c.ChangeRequests))
		for _, cr := range c.ChangeRequests {
			changes = append(changes, fmt.Sprintf("• %s (%s, %s)", cr.TypeOfChange, cr.HDINumber, cr.Country))
		}
		body = strings.Join(changes, "\n")
		if missing := c.MissingRequiredDocuments(); len(missing) > 0 {
			body += "\n:warning: Missing documents: " + strings.Join(missing, ", ")
		}
	}
	if body = strings.TrimSpace(body); body != "" {
		blocks = append(blocks, goslack.NewSectionBlock(
			goslack.NewTextBlockObject(goslack.MarkdownType, truncateToMaxBytes(body, maxSectionTextBytes), false, false),
			nil, nil,
		))
	}

	contextParts := []string{
		fmt.Sprintf("Status: %s", c.Status),
		fmt.Sprintf("Assignee: %s", c.CurrentAssignee),
	}
	if event.Actor.Role != "" {
		contextParts = append(contextParts, fmt.Sprintf("By: %s", event.Actor.TeamLabel()))
	}
	if caseURL != "" {
		contextParts = append(contextParts, fmt.Sprintf(":link: <%s|Open case>", caseURL))
	}
	blocks = append(blocks, goslack.NewContextBlock("",
		goslack.NewTextBlockObject(goslack.MarkdownType, strings.Join(contextParts, "  |  "), false, false),
	))

	return blocks, title
}

// truncateToMaxBytes cuts s to at most maxBytes without splitting a UTF-8 sequence
func truncateToMaxBytes(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}
	cut := maxBytes
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "…"
}
