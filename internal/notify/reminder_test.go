package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loandesk/internal/common/config"
	"loandesk/internal/common/logger"
	"loandesk/internal/widgets"
)

type fakeSES struct {
	calls []ses.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(_ context.Context, params *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.calls = append(f.calls, *params)
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{}, nil
}

type fakeSNS struct {
	calls []sns.PublishInput
	err   error
}

func (f *fakeSNS) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.calls = append(f.calls, *params)
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{}, nil
}

type fakeSource struct {
	owners    []string
	ownersErr error
	schedules map[string][]widgets.ScheduleItem
}

func (f *fakeSource) AllScheduleOwners(context.Context) ([]string, error) {
	return f.owners, f.ownersErr
}

func (f *fakeSource) Schedules(_ context.Context, sessionID string) []widgets.ScheduleItem {
	return f.schedules[sessionID]
}

func emailConfig() config.NotificationConfig {
	var cfg config.NotificationConfig
	cfg.Email.Enabled = true
	cfg.Email.FromEmail = "loandesk@example.com"
	cfg.Email.ToEmail = "officer@example.com"
	return cfg
}

func fixedClock(r *Reminder, date string) {
	day, _ := time.Parse("2006-01-02", date)
	r.now = func() time.Time { return day }
}

func TestDispatchDue(t *testing.T) {
	t.Run("sends only for schedules dated today", func(t *testing.T) {
		sesClient := &fakeSES{}
		source := &fakeSource{
			owners: []string{"officer-1"},
			schedules: map[string][]widgets.ScheduleItem{
				"officer-1": {
					{ID: "1", Date: "2026-08-28", Title: "담보 실사"},
					{ID: "2", Date: "2026-08-29", Title: "내일 일정"},
				},
			},
		}

		r := NewReminderWithClients(emailConfig(), source, sesClient, &fakeSNS{}, logger.NewNoOpLogger())
		fixedClock(r, "2026-08-28")

		sent, err := r.DispatchDue(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, sent)
		require.Len(t, sesClient.calls, 1)
		assert.Contains(t, *sesClient.calls[0].Message.Subject.Data, "담보 실사")
	})

	t.Run("one failed send does not stop the sweep", func(t *testing.T) {
		sesClient := &fakeSES{err: errors.New("ses throttled")}
		snsClient := &fakeSNS{}

		cfg := emailConfig()
		cfg.SMS.Enabled = true
		cfg.SMS.PhoneNumber = "+821012345678"

		source := &fakeSource{
			owners: []string{"officer-1", "officer-2"},
			schedules: map[string][]widgets.ScheduleItem{
				"officer-1": {{ID: "1", Date: "2026-08-28", Title: "a"}},
				"officer-2": {{ID: "2", Date: "2026-08-28", Title: "b"}},
			},
		}

		r := NewReminderWithClients(cfg, source, sesClient, snsClient, logger.NewNoOpLogger())
		fixedClock(r, "2026-08-28")

		sent, err := r.DispatchDue(context.Background())
		require.NoError(t, err)
		// Email fails for both, SMS still delivers both.
		assert.Equal(t, 2, sent)
		assert.Len(t, sesClient.calls, 2)
		assert.Len(t, snsClient.calls, 2)
	})

	t.Run("disabled channels send nothing", func(t *testing.T) {
		sesClient := &fakeSES{}
		source := &fakeSource{
			owners: []string{"officer-1"},
			schedules: map[string][]widgets.ScheduleItem{
				"officer-1": {{ID: "1", Date: "2026-08-28", Title: "a"}},
			},
		}

		var cfg config.NotificationConfig
		r := NewReminderWithClients(cfg, source, sesClient, &fakeSNS{}, logger.NewNoOpLogger())
		fixedClock(r, "2026-08-28")

		sent, err := r.DispatchDue(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0, sent)
		assert.Empty(t, sesClient.calls)
	})

	t.Run("owner scan failure surfaces", func(t *testing.T) {
		source := &fakeSource{ownersErr: errors.New("redis down")}
		r := NewReminderWithClients(emailConfig(), source, &fakeSES{}, &fakeSNS{}, logger.NewNoOpLogger())

		_, err := r.DispatchDue(context.Background())
		assert.Error(t, err)
	})
}
