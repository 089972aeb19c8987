package notify

import (
	"context"
	"fmt"
	"log"
	"strings"

	"job-matcher/internal/repository"
)

type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers alert emails. Delivery transport lives outside this
// service; deployments plug in their provider, and the default just logs.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type LogSender struct {
	logger *log.Logger
}

func NewLogSender(logger *log.Logger) *LogSender {
	if logger == nil {
		logger = log.Default()
	}
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, msg Message) error {
	s.logger.Printf("email=alert_match to=%s subject=%q bytes=%d", msg.To, msg.Subject, len(msg.Body))
	return nil
}

// BuildAlertEmail assembles the notification for one matched (alert, job)
// pair.
func BuildAlertEmail(userName, userEmail, alertName string, job repository.Job) Message {
	name := strings.TrimSpace(userName)
	if name == "" {
		if at := strings.Index(userEmail, "@"); at > 0 {
			name = userEmail[:at]
		} else {
			name = "there"
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", name)
	fmt.Fprintf(&b, "We found a new job matching your %q alert:\n\n", alertName)
	fmt.Fprintf(&b, "%s at %s\n", job.Title, job.Company)
	fmt.Fprintf(&b, "Location: %s\n", job.Location)
	if job.Salary != "" {
		fmt.Fprintf(&b, "Salary: %s\n", job.Salary)
	}
	if job.PostedAt != nil {
		fmt.Fprintf(&b, "Posted: %s\n", job.PostedAt.Format("2006-01-02"))
	}
	b.WriteString("\n")
	b.WriteString(truncate(job.Description, 200))
	b.WriteString("\n\n")
	if job.URL != "" {
		fmt.Fprintf(&b, "View and apply: %s\n\n", job.URL)
	}
	b.WriteString("Happy job hunting!\n\nThe JobMatcher Team\n")

	return Message{
		To:      userEmail,
		Subject: fmt.Sprintf("New job match: %s at %s", job.Title, job.Company),
		Body:    b.String(),
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
