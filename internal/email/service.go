package email

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/smtp"
	"time"

	"turfbook/internal/logger"
	"turfbook/internal/metrics"

	"github.com/redis/go-redis/v9"
)

const (
	queueKey  = "emails"
	failedKey = "emails:failed"

	maxTries = 3
)

type EmailJob struct {
	To      string    `json:"to"`
	Kind    string    `json:"kind"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Tries   int       `json:"tries"`
	Created time.Time `json:"created"`
}

type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	Pass     string
	From     string
	FromName string
}

// sendFunc matches smtp.SendMail.
type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type Service struct {
	redis      *redis.Client
	smtp       SMTPConfig
	send       sendFunc
	retryDelay time.Duration
	now        func() time.Time
}

func New(rdb *redis.Client, cfg SMTPConfig) *Service {
	return &Service{
		redis:      rdb,
		smtp:       cfg,
		send:       smtp.SendMail,
		retryDelay: 5 * time.Second,
		now:        time.Now,
	}
}

// Send queues a message for the background worker.
func (s *Service) Send(ctx context.Context, to, kind, subject, body string) error {
	job := EmailJob{
		To:      to,
		Kind:    kind,
		Subject: subject,
		Body:    body,
		Created: s.now(),
	}

	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal email job: %w", err)
	}

	if err := s.redis.LPush(ctx, queueKey, string(data)).Err(); err != nil {
		logger.Errorf("Failed to queue email to %s: %v", to, err)
		return err
	}

	logger.Debug("email queued", "kind", kind, "to", to)
	return nil
}

// Start consumes the queue until ctx is cancelled.
func (s *Service) Start(ctx context.Context) {
	logger.Info("Email worker started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Email worker stopped")
			return
		default:
			s.processNext(ctx)
		}
	}
}

func (s *Service) processNext(ctx context.Context) {
	result, err := s.redis.BRPop(ctx, 2*time.Second, queueKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
			logger.WithError(err).Warn("email queue pop failed")
			time.Sleep(time.Second)
		}
		return
	}

	var job EmailJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Errorf("Bad email data: %v", err)
		return
	}

	s.deliver(ctx, job)
}

func (s *Service) deliver(ctx context.Context, job EmailJob) {
	job.Tries++
	if err := s.sendNow(job); err != nil {
		logger.WithError(err).Error("email delivery failed", "to", job.To, "attempt", job.Tries)
		metrics.RecordEmail(job.Kind, "failed")

		if job.Tries < maxTries {
			if s.retryDelay > 0 {
				time.Sleep(s.retryDelay)
			}
			data, _ := json.Marshal(job)
			s.redis.LPush(ctx, queueKey, string(data))
			return
		}

		s.saveFailed(ctx, job, err)
		return
	}

	metrics.RecordEmail(job.Kind, "success")
	logger.Info("email sent", "kind", job.Kind, "to", job.To)
}

func (s *Service) sendNow(job EmailJob) error {
	message := fmt.Sprintf("From: %s <%s>\r\n", s.smtp.FromName, s.smtp.From)
	message += fmt.Sprintf("To: %s\r\n", job.To)
	message += fmt.Sprintf("Subject: %s\r\n", job.Subject)
	message += "\r\n" + job.Body

	var auth smtp.Auth
	if s.smtp.User != "" && s.smtp.Pass != "" {
		auth = smtp.PlainAuth("", s.smtp.User, s.smtp.Pass, s.smtp.Host)
	}

	return s.send(s.smtp.Host+":"+s.smtp.Port, auth, s.smtp.From, []string{job.To}, []byte(message))
}

func (s *Service) saveFailed(ctx context.Context, job EmailJob, err error) {
	failed := map[string]interface{}{
		"job":   job,
		"error": err.Error(),
		"time":  s.now(),
	}
	data, _ := json.Marshal(failed)
	s.redis.LPush(ctx, failedKey, string(data))
	logger.Errorf("Email to %s moved to failed queue after %d attempts", job.To, job.Tries)
}

func (s *Service) QueueLength(ctx context.Context) int64 {
	length, _ := s.redis.LLen(ctx, queueKey).Result()
	metrics.EmailQueueLength.Set(float64(length))
	return length
}
