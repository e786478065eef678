package notification

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/slack-go/slack"
)

var (
	ErrNilProvisionModel = errors.New("provision model is nil")
	ErrNilWebhookPayload = errors.New("webhook payload is nil")
)

// Severity represents a notification urgency.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityMedium
	SeverityUrgent

	SeverityInfoColor   = "#4CAF50"
	SeverityMediumColor = "#FDEF19"
	SeverityUrgentColor = "#CC0000"
)

func (s Severity) Color() string {
	switch s {
	case SeverityMedium:
		return SeverityMediumColor
	case SeverityUrgent:
		return SeverityUrgentColor
	default:
		return SeverityInfoColor
	}
}

// Event is the lifecycle event a notification is about.
type Event string

const (
	EventNewSubscription    Event = "NewSubscription"
	EventUpdateSubscription Event = "UpdateSubscription"
	EventOperationFailure   Event = "OperationFailure"
	EventPlanChanged        Event = "ChangePlan"
	EventQuantityChanged    Event = "ChangeQuantity"
	EventReinstated         Event = "Reinstated"
	EventSuspended          Event = "Suspended"
	EventUnsubscribed       Event = "Unsubscribed"
)

func (e Event) Severity() Severity {
	switch e {
	case EventOperationFailure:
		return SeverityUrgent
	case EventSuspended, EventUnsubscribed:
		return SeverityMedium
	default:
		return SeverityInfo
	}
}

// Detail is a row of the details table attached to a message.
type Detail struct {
	Name  string
	Value string
}

// Message is a notification composed once and rendered by each sink.
// Paragraphs are markdown, values coming from the marketplace are escaped.
type Message struct {
	Event      Event
	Subject    string
	Paragraphs []string
	ActionLink string
	ActionText string
	Details    []Detail
}

// Markdown returns the paragraphs, the action link and the details table.
func (m *Message) Markdown() []string {
	paragraphs := make([]string, 0, len(m.Paragraphs)+3)
	paragraphs = append(paragraphs, m.Paragraphs...)

	if m.ActionLink != "" {
		paragraphs = append(paragraphs, fmt.Sprintf("[%s](%s)", m.ActionText, m.ActionLink))
	}

	if len(m.Details) > 0 {
		paragraphs = append(paragraphs, "Details are", detailsTable(m.Details))
	}

	return paragraphs
}

func detailsTable(details []Detail) string {
	var b strings.Builder

	b.WriteString("| Field | Value |\n| --- | --- |\n")

	for _, d := range details {
		fmt.Fprintf(&b, "| %s | %s |\n", escapeMarkdown(d.Name), escapeMarkdown(d.Value))
	}

	return b.String()
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"|", `\|`,
	"#", `\#`,
	"\n", " ",
	"\r", " ",
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

func toHTML(data []string) []string {
	var renderedData []string

	htmlFlags := html.CommonFlags | html.HrefTargetBlank | html.SkipHTML
	opts := html.RendererOptions{Flags: htmlFlags}
	renderer := html.NewRenderer(opts)

	for _, d := range data {
		html := markdown.ToHTML([]byte(d), nil, renderer)
		renderedData = append(renderedData, string(html))
	}

	return renderedData
}

func assembleEmail(data []string) string {
	var body string

	formatted := toHTML(data)

	for _, f := range formatted {
		body = fmt.Sprintf("%s%s", body, f)
	}

	return body
}

func assembleSlack(m *Message, environment string, ts int64) slack.Attachment {
	fields := []slack.AttachmentField{
		{
			Title: "Environment",
			Value: environment,
			Short: true,
		},
	}

	for _, p := range m.Paragraphs {
		fields = append(fields, slack.AttachmentField{Value: p})
	}

	if m.ActionLink != "" {
		fields = append(fields, slack.AttachmentField{Value: fmt.Sprintf("<%s|%s>", m.ActionLink, m.ActionText)})
	}

	for _, d := range m.Details {
		fields = append(fields, slack.AttachmentField{
			Title: d.Name,
			Value: d.Value,
			Short: true,
		})
	}

	return slack.Attachment{
		Color:      m.Event.Severity().Color(),
		Title:      m.Subject,
		TitleLink:  m.ActionLink,
		Fields:     fields,
		MarkdownIn: []string{"fields"},
		Ts:         json.Number(strconv.FormatInt(ts, 10)),
	}
}
