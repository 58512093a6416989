package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"github.com/uzideath/motofacil-engine/internal/config"
	"github.com/uzideath/motofacil-engine/internal/domain"
	"github.com/uzideath/motofacil-engine/internal/engine"
	"github.com/uzideath/motofacil-engine/internal/repository"
)

func main() {
	log.Println("Starting arrears scheduler...")

	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	loanRepo := repository.NewLoanRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	cal := engine.NewCalendar(cfg.BusinessLocation())

	job := &arrearsJob{
		loanRepo:    loanRepo,
		paymentRepo: paymentRepo,
		tracker:     engine.NewTracker(cal),
		location:    cfg.BusinessLocation(),
		threshold:   cfg.Business.DefaultedAfterDays,
	}

	// Initialize cron scheduler in the business timezone
	c := cron.New(cron.WithSeconds(), cron.WithLocation(cfg.BusinessLocation()))

	if _, err := c.AddFunc(cfg.Scheduler.ArrearsCron, job.run); err != nil {
		log.Fatalf("Error scheduling arrears job: %v", err)
	}

	c.Start()
	log.Println("Scheduler started successfully")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down scheduler...")
	c.Stop()
	log.Println("Scheduler stopped")
}

type arrearsJob struct {
	loanRepo    repository.LoanRepository
	paymentRepo repository.PaymentRepository
	tracker     engine.Tracker
	location    *time.Location
	threshold   int
}

// run recomputes arrears for every open loan and marks loans defaulted once
// they are overdue past the configured threshold.
func (j *arrearsJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	today := time.Now().In(j.location)

	loans, err := j.loanRepo.ListActive(ctx)
	if err != nil {
		log.Printf("Arrears job: listing loans failed: %v", err)
		return
	}

	defaulted := 0
	for _, loan := range loans {
		payments, err := j.paymentRepo.GetByLoanID(ctx, loan.LoanID)
		if err != nil {
			log.Printf("Arrears job: payments for loan %s failed: %v", loan.LoanID, err)
			continue
		}

		records := make([]engine.PaymentRecord, 0, len(payments))
		for _, p := range payments {
			records = append(records, engine.PaymentRecord{
				PaymentDate: p.PaymentDate,
				IsLate:      p.IsLate,
				LateDueDate: p.LateDueDate,
			})
		}

		report, err := j.tracker.Track(loan.StartDate, records, today)
		if err != nil {
			log.Printf("Arrears job: tracking loan %s failed: %v", loan.LoanID, err)
			continue
		}

		if report.Status == engine.ArrearsOverdue && report.DaysSince >= j.threshold && loan.Status == domain.LoanStatusActive {
			if err := j.loanRepo.UpdateStatus(ctx, loan.LoanID, domain.LoanStatusDefaulted); err != nil {
				log.Printf("Arrears job: marking loan %s defaulted failed: %v", loan.LoanID, err)
				continue
			}
			defaulted++
		}
	}

	log.Printf("Arrears job: processed %d loans, %d newly defaulted", len(loans), defaulted)
}
