package scheduler

import (
	"log"
	"time"

	"formdrop-backend/internal/form/usecase"
)

// FormExpiryScheduler closes forms whose expiry date has passed
type FormExpiryScheduler struct {
	formUsecase usecase.FormUsecase
	interval    time.Duration
	stopChan    chan struct{}
}

// NewFormExpiryScheduler creates a new scheduler
func NewFormExpiryScheduler(formUsecase usecase.FormUsecase) *FormExpiryScheduler {
	return &FormExpiryScheduler{
		formUsecase: formUsecase,
		interval:    1 * time.Minute, // Check every minute
		stopChan:    make(chan struct{}),
	}
}

// Start begins the scheduler loop
func (s *FormExpiryScheduler) Start() {
	log.Println("[FormExpiry] Starting form expiry scheduler (interval: 1 minute)")

	go func() {
		// Run immediately on start
		s.closeExpired()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.closeExpired()
			case <-s.stopChan:
				log.Println("[FormExpiry] Scheduler stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the scheduler
func (s *FormExpiryScheduler) Stop() {
	close(s.stopChan)
}

func (s *FormExpiryScheduler) closeExpired() {
	closed, err := s.formUsecase.CloseExpiredForms(time.Now())
	if err != nil {
		log.Printf("[FormExpiry] Error closing expired forms: %v", err)
		return
	}
	if closed > 0 {
		log.Printf("[FormExpiry] Closed %d expired forms", closed)
	}
}
