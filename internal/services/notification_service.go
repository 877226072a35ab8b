package services

import (
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	twilio "github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/rentstead/rentals-service/internal/config"
	"github.com/rentstead/rentals-service/internal/models"
	"github.com/rentstead/rentals-service/internal/utils"
)

const decisionEmailHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Application update</title>
<style>
  body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif; line-height: 1.6; color: #333; background-color: #f8f9fa; margin: 0; padding: 20px; }
  .container { max-width: 500px; margin: auto; background: #ffffff; border: 1px solid #e9ecef; border-radius: 8px; overflow: hidden; }
  .header { background-color: #1f6f54; color: white; padding: 20px; text-align: center; }
  .header h1 { margin: 0; font-size: 24px; }
  .content { padding: 30px; text-align: left; }
  .footer { background-color: #f8f9fa; padding: 20px; text-align: center; font-size: 12px; color: #6c757d; }
  p { margin-bottom: 1em; }
</style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>Your application was %s</h1>
    </div>
    <div class="content">
      <p>Hello %s,</p>
      <p>Your rental application for <strong>%s</strong> has been %s.</p>
      <p>You can review the details any time from your applications page.</p>
    </div>
    <div class="footer">
      © %d Rentstead. All rights reserved.
    </div>
  </div>
</body>
</html>`

// Notifier delivers application-decision notices. Delivery is best
// effort and never blocks or fails the transition that triggered it.
type Notifier interface {
	NotifyApplicationDecision(app *models.Application, property *models.Property, status models.ApplicationStatus)
}

type notifier struct {
	cfg      *config.Config
	sgClient *sendgrid.Client
	twClient *twilio.RestClient
}

// NewNotifier wires SendGrid and Twilio from config. Either client may be
// absent; missing credentials downgrade that channel to a log line.
func NewNotifier(cfg *config.Config) Notifier {
	n := &notifier{cfg: cfg}
	if cfg.SendgridAPIKey != "" {
		n.sgClient = sendgrid.NewSendClient(cfg.SendgridAPIKey)
	}
	if cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" {
		n.twClient = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioAccountSID,
			Password: cfg.TwilioAuthToken,
		})
	}
	return n
}

func (n *notifier) NotifyApplicationDecision(app *models.Application, property *models.Property, status models.ApplicationStatus) {
	if !n.cfg.LDFlag_NotifyOnDecision {
		return
	}

	verb := "updated"
	switch status {
	case models.ApplicationApproved:
		verb = "approved"
	case models.ApplicationDenied:
		verb = "denied"
	}
	propertyName := "the property"
	if property != nil {
		propertyName = property.Name
	}

	// ---------- Twilio SMS ----------
	if n.twClient != nil && app.PhoneNumber != "" {
		params := &twilioApi.CreateMessageParams{}
		params.SetTo(app.PhoneNumber)
		params.SetFrom(n.cfg.TwilioFromNumber)
		params.SetBody(fmt.Sprintf("Rentstead: your application for %s was %s.", propertyName, verb))
		if _, err := n.twClient.Api.CreateMessage(params); err != nil {
			utils.Logger.WithError(err).Warnf("Failed to send decision SMS for application %d", app.ID)
		}
	} else {
		utils.Logger.Debugf("Twilio unavailable, skipping decision SMS for application %d", app.ID)
	}

	// ---------- SendGrid email ----------
	if n.sgClient != nil && app.Email != "" {
		from := mail.NewEmail(n.cfg.OrganizationName, n.cfg.SendgridFromEmail)
		to := mail.NewEmail(app.Name, app.Email)
		subject := fmt.Sprintf("Your application for %s was %s", propertyName, verb)
		plain := fmt.Sprintf("Hello %s,\n\nYour rental application for %s has been %s.\n\nThe Rentstead Team", app.Name, propertyName, verb)
		html := fmt.Sprintf(decisionEmailHTML, verb, app.Name, propertyName, verb, time.Now().Year())

		msg := mail.NewSingleEmail(from, subject, to, plain, html)
		if _, err := n.sgClient.Send(msg); err != nil {
			utils.Logger.WithError(err).Warnf("Failed to send decision email for application %d", app.ID)
		}
	} else {
		utils.Logger.Debugf("SendGrid unavailable, skipping decision email for application %d", app.ID)
	}
}
