package email

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"gopkg.in/gomail.v2"

	"servicedesk/internal/domain/servicerequest"
	"servicedesk/internal/domain/user"
	"servicedesk/internal/shared/config"
	"servicedesk/internal/shared/goroutine"
	"servicedesk/internal/shared/logger"
)

const sendTimeout = 30 * time.Second

type mailer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPNotifier mails support staff when a service request is assigned to
// them. Delivery happens in the background; failures are only logged.
type SMTPNotifier struct {
	config  config.EmailConfig
	baseURL string
	mailer  mailer
	logger  logger.Interface
}

func NewSMTPNotifier(cfg config.EmailConfig, baseURL string, log logger.Interface) *SMTPNotifier {
	return newSMTPNotifier(cfg, baseURL, gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword), log)
}

func newSMTPNotifier(cfg config.EmailConfig, baseURL string, m mailer, log logger.Interface) *SMTPNotifier {
	return &SMTPNotifier{
		config:  cfg,
		baseURL: strings.TrimRight(baseURL, "/"),
		mailer:  m,
		logger:  log,
	}
}

// NotifyAssigned queues the mail and returns at once.
func (n *SMTPNotifier) NotifyAssigned(ctx context.Context, staff user.StaffMember, event servicerequest.ServiceRequestAssignedEvent) error {
	if staff.Email == "" {
		return fmt.Errorf("staff member %d has no email address", staff.ID)
	}

	msg := n.assignmentMessage(staff, event)
	goroutine.SafeGo(n.logger, "assignment-mail", func() {
		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sendTimeout)
		defer cancel()

		if err := n.send(sendCtx, msg); err != nil {
			n.logger.Warnw("failed to send assignment email",
				"service_request_sid", event.SID,
				"staff_id", staff.ID,
				"error", err,
			)
			return
		}
		n.logger.Infow("assignment email sent",
			"service_request_sid", event.SID,
			"staff_id", staff.ID,
		)
	})
	return nil
}

func (n *SMTPNotifier) assignmentMessage(staff user.StaffMember, event servicerequest.ServiceRequestAssignedEvent) *gomail.Message {
	link := fmt.Sprintf("%s/service-requests/%s", n.baseURL, event.SID)
	subject := fmt.Sprintf("Service request assigned: %s", event.Title)

	plainBody := fmt.Sprintf(`Hello %s,

A new service request has been assigned to you.

Title: %s
Reference: %s

%s
`, staff.Name, event.Title, event.SID, link)

	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<p>Hello %s,</p>
			<p>A new service request has been assigned to you.</p>
			<p><strong>%s</strong> (%s)</p>
			<p><a href="%s">Open the request</a></p>
		</body>
		</html>
	`, html.EscapeString(staff.Name), html.EscapeString(event.Title), event.SID, link)

	m := gomail.NewMessage()
	m.SetAddressHeader("From", n.config.FromAddress, n.config.FromName)
	m.SetAddressHeader("To", staff.Email, staff.Name)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)
	return m
}

// send stops waiting once ctx is done; the dial itself cannot be aborted.
func (n *SMTPNotifier) send(ctx context.Context, m *gomail.Message) error {
	done := make(chan error, 1)
	go func() { done <- n.mailer.DialAndSend(m) }()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send email: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("failed to send email: %w", ctx.Err())
	}
}
