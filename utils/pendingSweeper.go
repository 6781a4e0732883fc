package utils

import (
	"log"
	"time"

	"lms/config"
	"lms/services/enrollment"

	"github.com/robfig/cron/v3"
)

// InitializePendingSweeper starts the hourly sweep that fails abandoned
// checkouts. Without it, purchases the gateway never settles would sit in
// PENDING forever.
func InitializePendingSweeper() {
	log.Println("[PENDING-SWEEPER] Initializing pending purchase sweeper...")

	c := cron.New()

	c.AddFunc("0 * * * *", func() {
		SweepPendingPurchases()
	})

	c.Start()
	log.Printf("[PENDING-SWEEPER] Sweeper started - fails PENDING purchases older than %dh, runs hourly",
		config.AppConfig.PendingPurchaseTTLHours)
}

// SweepPendingPurchases marks stale PENDING purchases as FAILED
func SweepPendingPurchases() {
	ttl := time.Duration(config.AppConfig.PendingPurchaseTTLHours) * time.Hour

	swept, err := enrollment.Default.SweepStalePending(ttl)
	if err != nil {
		log.Printf("[PENDING-SWEEPER] Error sweeping pending purchases: %v", err)
		return
	}
	if swept > 0 {
		log.Printf("[PENDING-SWEEPER] Marked %d stale pending purchases as failed", swept)
	}
}
