package patterns

import (
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/slack-go/slack"
	"gopkg.in/gomail.v2"
)

const (
	defaultSlackChannel = "#alerts"
	defaultEmailTo      = "team@example.com"
	defaultSMTPPort     = 587
)

// sendSlack posts to an incoming webhook when webhook_url is given and
// only logs the message otherwise.
func sendSlack(message string, opts map[string]string) bool {

	channel := optionOrDefault(opts, "slack_channel", defaultSlackChannel)
	logger := logrus.WithFields(logrus.Fields{
		"channel": "slack",
		"target":  channel,
	})

	webhookURL := optionOrDefault(opts, "webhook_url", "")
	if len(webhookURL) == 0 {
		logger.Infof("[Slack -> %s] %s", channel, message)
		return true
	}

	err := slack.PostWebhook(webhookURL, &slack.WebhookMessage{
		Channel: channel,
		Text:    message,
	})
	if err != nil {
		logger.WithError(err).Errorln("Failed to post Slack webhook")
		return false
	}

	logger.Infoln("Posted Slack webhook")
	return true
}

// sendEmail delivers through SMTP when smtp_host is given and only logs
// the message otherwise.
func sendEmail(message string, opts map[string]string) bool {

	to := optionOrDefault(opts, "to", defaultEmailTo)
	logger := logrus.WithFields(logrus.Fields{
		"channel": "email",
		"target":  to,
	})

	host := optionOrDefault(opts, "smtp_host", "")
	if len(host) == 0 {
		logger.Infof("[Email -> %s] %s", to, message)
		return true
	}

	port := defaultSMTPPort
	if value, ok := opts["smtp_port"]; ok {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			logger.WithError(err).Errorln("Invalid smtp_port")
			return false
		}
		port = parsed
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", optionOrDefault(opts, "from", "opskit@localhost"), "")
	m.SetHeader("To", to)
	m.SetHeader("Subject", optionOrDefault(opts, "subject", "opskit notification"))
	m.SetBody("text/plain", message, gomail.SetPartEncoding(gomail.Unencoded))

	d := gomail.NewDialer(host, port, opts["smtp_user"], opts["smtp_pass"])

	if err := d.DialAndSend(m); err != nil {
		logger.WithError(err).Errorln("Failed to send email")
		return false
	}

	logger.Infoln("Sent email")
	return true
}
