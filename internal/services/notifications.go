package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"stamina-backend/internal/repository"
)

const (
	reminderPollInterval = 1 * time.Hour
	// Re-send guard lives in Redis; shorter than a day so a reminder can
	// go out again the next evening if the streak is still at risk.
	reminderCooldown = 20 * time.Hour
)

// NotificationScheduler emails users whose streak is one missed day away
// from resetting.
type NotificationScheduler struct {
	stamina  *repository.StaminaRepo
	email    *EmailService
	redis    *redis.Client
	stopChan chan struct{}
}

func NewNotificationScheduler(stamina *repository.StaminaRepo, email *EmailService, redisClient *redis.Client) *NotificationScheduler {
	return &NotificationScheduler{
		stamina:  stamina,
		email:    email,
		redis:    redisClient,
		stopChan: make(chan struct{}),
	}
}

func (s *NotificationScheduler) Start() {
	if s.stamina == nil || s.email == nil {
		return
	}

	go s.loop()
	log.Printf("Streak reminder scheduler started")
}

func (s *NotificationScheduler) Stop() {
	select {
	case <-s.stopChan:
		return
	default:
		close(s.stopChan)
	}
}

func (s *NotificationScheduler) loop() {
	s.sendStreakReminders(context.Background(), time.Now().UTC())

	ticker := time.NewTicker(reminderPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.sendStreakReminders(context.Background(), time.Now().UTC())
		}
	}
}

func (s *NotificationScheduler) sendStreakReminders(ctx context.Context, now time.Time) {
	atRisk, err := s.stamina.ListStreaksAtRisk(ctx)
	if err != nil {
		log.Printf("streak reminders: failed to list at-risk users: %v", err)
		return
	}

	for _, u := range atRisk {
		if !StreakAtRisk(u.LastActivityDate, now) {
			continue
		}

		key := fmt.Sprintf("streak_reminder:%s", u.UserID)
		sent, err := s.redis.SetNX(ctx, key, "1", reminderCooldown).Result()
		if err != nil || !sent {
			continue
		}

		if err := s.email.SendStreakReminderEmail(u.Email, u.DisplayName, u.CurrentStreak); err != nil {
			log.Printf("streak reminders: failed to send to %s: %v", u.Email, err)
		}
	}
}

// StreakAtRisk reports whether a streak survives only if the user studies
// today: the last activity was exactly yesterday (UTC days).
func StreakAtRisk(lastActivity *time.Time, now time.Time) bool {
	if lastActivity == nil {
		return false
	}

	last := lastActivity.UTC().Truncate(24 * time.Hour)
	today := now.UTC().Truncate(24 * time.Hour)
	return today.Sub(last) == 24*time.Hour
}
