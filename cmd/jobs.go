package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Danieliragi/johnserviceMotel-sub001/app/service"
	"github.com/Danieliragi/johnserviceMotel-sub001/config"
)

var workerMode bool

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Run guest notification jobs",
}

var notifyRemindersCmd = &cobra.Command{
	Use:   "reminders",
	Short: "Send pre-arrival reminders for upcoming check-ins",
	Run: func(_ *cobra.Command, _ []string) {
		runCommand(
			"pre_arrival_reminders",
			func(cfg *config.Config) time.Duration { return cfg.Jobs.ReminderInterval },
			func(s *service.ReservationService, ctx context.Context) error {
				return s.RunPreArrivalReminderBatch(ctx)
			},
		)
	},
}

var notifyThankYouCmd = &cobra.Command{
	Use:   "thank-you",
	Short: "Send post-stay thank-you notes for recent check-outs",
	Run: func(_ *cobra.Command, _ []string) {
		runCommand(
			"post_stay_thank_you",
			func(cfg *config.Config) time.Duration { return cfg.Jobs.ThankYouInterval },
			func(s *service.ReservationService, ctx context.Context) error {
				return s.RunPostStayThankYouBatch(ctx)
			},
		)
	},
}

func init() {
	rootCmd.AddCommand(notifyCmd)
	notifyCmd.AddCommand(notifyRemindersCmd)
	notifyCmd.AddCommand(notifyThankYouCmd)

	rootCmd.PersistentFlags().BoolVar(&workerMode, "worker", false, "Run continuously using configured interval")
}

func runCommand(
	name string,
	intervalResolver func(cfg *config.Config) time.Duration,
	fn func(s *service.ReservationService, ctx context.Context) error,
) {
	cfg, services, cleanup := mustCreateServices()
	defer cleanup()

	if workerMode {
		runWorker(name, intervalResolver(cfg), services.reservationService, fn)
		return
	}

	ctx := context.Background()
	runJob(name, func() error { return fn(services.reservationService, ctx) })
}

func runWorker(
	name string,
	interval time.Duration,
	reservationService *service.ReservationService,
	fn func(s *service.ReservationService, ctx context.Context) error,
) {
	if interval <= 0 {
		logrus.WithField("job", name).Fatal("invalid worker interval")
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runJob(name, func() error { return fn(reservationService, ctx) })

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	for {
		select {
		case <-quit:
			logrus.WithField("job", name).Info("Worker shutdown requested")
			return
		case <-ticker.C:
			runJob(name, func() error { return fn(reservationService, ctx) })
		}
	}
}

func runJob(name string, fn func() error) {
	start := time.Now()
	err := fn()
	latency := time.Since(start)
	if err != nil {
		logrus.WithError(err).WithField("job", name).WithField("latency", latency.String()).Error("job_failed")
		return
	}
	logrus.WithField("job", name).WithField("latency", latency.String()).Info("job_completed")
}
