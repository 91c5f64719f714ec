// Package notify dispatches schedule reminder notifications over SES email
// and SNS SMS.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"loandesk/internal/common/config"
	"loandesk/internal/common/logger"
	"loandesk/internal/common/metrics"
	"loandesk/internal/widgets"
)

// Interfaces for mocking the AWS clients.
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// ScheduleSource yields the stored schedules the dispatcher scans.
type ScheduleSource interface {
	AllScheduleOwners(ctx context.Context) ([]string, error)
	Schedules(ctx context.Context, sessionID string) []widgets.ScheduleItem
}

// Reminder sends a notification for every schedule due on the current date.
// Failures are isolated per item; one broken send never stops the sweep.
type Reminder struct {
	cfg       config.NotificationConfig
	source    ScheduleSource
	sesClient SESService
	snsClient SNSService
	log       logger.Logger
	now       func() time.Time
}

// NewReminder builds a dispatcher with real AWS clients.
func NewReminder(ctx context.Context, cfg config.NotificationConfig, source ScheduleSource, log logger.Logger) (*Reminder, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return &Reminder{
		cfg:       cfg,
		source:    source,
		sesClient: ses.NewFromConfig(awsCfg),
		snsClient: sns.NewFromConfig(awsCfg),
		log:       log,
		now:       time.Now,
	}, nil
}

// NewReminderWithClients builds a dispatcher with injected clients for tests.
func NewReminderWithClients(cfg config.NotificationConfig, source ScheduleSource, sesClient SESService, snsClient SNSService, log logger.Logger) *Reminder {
	return &Reminder{
		cfg:       cfg,
		source:    source,
		sesClient: sesClient,
		snsClient: snsClient,
		log:       log,
		now:       time.Now,
	}
}

// DispatchDue sends reminders for every schedule dated today. Returns the
// number of reminders successfully delivered.
func (r *Reminder) DispatchDue(ctx context.Context) (int, error) {
	owners, err := r.source.AllScheduleOwners(ctx)
	if err != nil {
		return 0, err
	}

	today := r.now().Format("2006-01-02")
	sent := 0

	for _, owner := range owners {
		for _, item := range r.source.Schedules(ctx, owner) {
			if item.Date != today {
				continue
			}
			if r.dispatchOne(ctx, owner, item) {
				sent++
			}
		}
	}

	return sent, nil
}

func (r *Reminder) dispatchOne(ctx context.Context, owner string, item widgets.ScheduleItem) bool {
	subject := fmt.Sprintf("[일정 알림] %s", item.Title)
	body := fmt.Sprintf("오늘(%s) 예정된 일정이 있습니다: %s", item.Date, item.Title)

	delivered := false

	if r.cfg.Email.Enabled && r.cfg.Email.ToEmail != "" {
		if err := r.sendEmail(ctx, subject, body); err != nil {
			metrics.RemindersSentTotal.WithLabelValues("email", "failed").Inc()
			r.log.WithError(err).Error("reminder email send failed", map[string]interface{}{
				"session_id":  owner,
				"schedule_id": item.ID,
			})
		} else {
			metrics.RemindersSentTotal.WithLabelValues("email", "sent").Inc()
			delivered = true
		}
	}

	if r.cfg.SMS.Enabled && r.cfg.SMS.PhoneNumber != "" {
		if err := r.sendSMS(ctx, body); err != nil {
			metrics.RemindersSentTotal.WithLabelValues("sms", "failed").Inc()
			r.log.WithError(err).Error("reminder SMS send failed", map[string]interface{}{
				"session_id":  owner,
				"schedule_id": item.ID,
			})
		} else {
			metrics.RemindersSentTotal.WithLabelValues("sms", "sent").Inc()
			delivered = true
		}
	}

	return delivered
}

func (r *Reminder) sendEmail(ctx context.Context, subject, body string) error {
	_, err := r.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{r.cfg.Email.ToEmail},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(r.cfg.Email.FromEmail),
	})
	return err
}

func (r *Reminder) sendSMS(ctx context.Context, message string) error {
	_, err := r.snsClient.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(r.cfg.SMS.PhoneNumber),
		Message:     aws.String(message),
	})
	return err
}
