package deployment

import (
	"encoding/json"
	"fmt"
	"strings"

	"deploy-notifier/pkg/chat"
)

const (
	StatusSucceeded = "SUCCEEDED"
	StatusFailed    = "FAILED"
	StatusStopped   = "STOPPED"

	debugPrefix      = "[DEBUG]"
	consoleLinkFmt   = "https://console.aws.amazon.com/codedeploy/home?region=%s#/deployments/%s"
	consoleLinkLabel = "Codedeploy"
	appNameSeparator = "-"
)

// Notification is the message body CodeDeploy publishes to SNS for a
// deployment trigger.
type Notification struct {
	Region              string `json:"region"`
	AccountID           string `json:"accountId"`
	EventTriggerName    string `json:"eventTriggerName"`
	ApplicationName     string `json:"applicationName"`
	DeploymentID        string `json:"deploymentId"`
	DeploymentGroupName string `json:"deploymentGroupName"`
	CreateTime          string `json:"createTime"`
	CompleteTime        string `json:"completeTime"`
	Status              string `json:"status"`
}

func Parse(message string) (*Notification, error) {
	var n Notification
	if err := json.Unmarshal([]byte(message), &n); err != nil {
		return nil, err
	}
	if n.ApplicationName == "" {
		return nil, fmt.Errorf("notification has no application name")
	}
	return &n, nil
}

func (n *Notification) Severity() chat.Severity {
	switch n.Status {
	case StatusFailed:
		return chat.SeverityDanger
	case StatusStopped:
		return chat.SeverityWarning
	}
	return chat.SeverityGood
}

// AppName is the service part of names like "acme-users-api", uppercased.
func (n *Notification) AppName() string {
	parts := strings.Split(n.ApplicationName, appNameSeparator)
	if len(parts) > 1 {
		return strings.ToUpper(parts[1])
	}
	return strings.ToUpper(n.ApplicationName)
}

func (n *Notification) ConsoleLink() string {
	return fmt.Sprintf(consoleLinkFmt, n.Region, n.DeploymentID)
}

// IsDebug reports deployments triggered for debugging, which are not announced.
func (n *Notification) IsDebug() bool {
	return strings.HasPrefix(n.EventTriggerName, debugPrefix)
}

func (n *Notification) Succeeded() bool {
	return n.Status == StatusSucceeded
}

func (n *Notification) Message(stage string) chat.Message {
	return chat.Message{
		Severity: n.Severity(),
		Author:   fmt.Sprintf("DEPLOYMENT - %s", strings.ToUpper(stage)),
		Subject:  n.AppName(),
		Text:     n.EventTriggerName,
		Link: &chat.Link{
			URL:   n.ConsoleLink(),
			Label: consoleLinkLabel,
		},
	}
}

// AlertMessage reports a failure that happened after the deployment itself.
func AlertMessage(stage string, err error) chat.Message {
	return chat.Message{
		Severity: chat.SeverityDanger,
		Author:   fmt.Sprintf("POST_DEPLOYMENT - %s", strings.ToUpper(stage)),
		Text:     err.Error(),
	}
}
