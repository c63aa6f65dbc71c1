package services

import (
	"testing"
	"time"
)

func TestStreakAtRisk(t *testing.T) {
	now := time.Date(2026, 8, 28, 19, 0, 0, 0, time.UTC)

	yesterday := now.Add(-24 * time.Hour)
	if !StreakAtRisk(&yesterday, now) {
		t.Errorf("Last activity yesterday should put the streak at risk")
	}

	earlierToday := now.Add(-2 * time.Hour)
	if StreakAtRisk(&earlierToday, now) {
		t.Errorf("Activity earlier today should not be at risk")
	}

	twoDaysAgo := now.Add(-48 * time.Hour)
	if StreakAtRisk(&twoDaysAgo, now) {
		t.Errorf("A streak broken two days ago is already lost, not at risk")
	}

	if StreakAtRisk(nil, now) {
		t.Errorf("No activity means no streak to protect")
	}
}

func TestStreakAtRiskDayBoundary(t *testing.T) {
	// Late-night activity still counts as yesterday's calendar day.
	now := time.Date(2026, 8, 28, 0, 30, 0, 0, time.UTC)
	lateLastNight := time.Date(2026, 8, 27, 23, 45, 0, 0, time.UTC)

	if !StreakAtRisk(&lateLastNight, now) {
		t.Errorf("Activity just before midnight should be at risk the next day")
	}
}
