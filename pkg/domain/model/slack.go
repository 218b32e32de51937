package model

// SlackAction represents a Slack notification action
type SlackAction struct {
	WebhookURL string `yaml:"webhook_url"`
	Message    string `yaml:"message"`
	Color      string `yaml:"color,omitempty"`      // good, warning, danger, or #hex
	IconEmoji  string `yaml:"icon_emoji,omitempty"` // :emoji: format, needs webhook customization
	UserName   string `yaml:"username,omitempty"`   // sender name, needs webhook customization
}

// SlackPayload is the JSON body posted to a Slack incoming webhook
type SlackPayload struct {
	Text        string            `json:"text"`
	UserName    string            `json:"username,omitempty"`
	IconEmoji   string            `json:"icon_emoji,omitempty"`
	Attachments []SlackAttachment `json:"attachments,omitempty"`
}

// SlackAttachment colors the message when the action specifies a color
type SlackAttachment struct {
	Color     string `json:"color,omitempty"`
	Text      string `json:"text,omitempty"`
	Footer    string `json:"footer,omitempty"`
	Timestamp int64  `json:"ts,omitempty"`
}
