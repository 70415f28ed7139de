// Package dispatch holds the background jobs that keep the board fresh: the
// expiry sweeper retires listings past their expiry date and the mail relay
// drains notifications that still need an email.
package dispatch

import (
	"context"
	"log/slog"
	"time"

	"mealbridge/internal/httpapi/models"
	"mealbridge/internal/httpapi/repository"
)

type Dispatcher struct {
	repos     repository.Repos
	mailer    Mailer
	pool      *WorkerPool
	batchSize int
	interval  time.Duration
	logger    *slog.Logger
}

func NewDispatcher(repos repository.Repos, mailer Mailer, pool *WorkerPool, batchSize int, interval time.Duration, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		repos:     repos,
		mailer:    mailer,
		pool:      pool,
		batchSize: batchSize,
		interval:  interval,
		logger:    logger,
	}
}

// Run loops until the context is canceled, doing one pass immediately and
// then one per interval.
func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	d.runOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.runOnce(ctx)
		}
	}
}

func (d *Dispatcher) runOnce(ctx context.Context) {
	if err := d.SweepExpired(ctx); err != nil {
		d.logger.Error("expiry_sweep_failed", "error", err)
	}
	if err := d.RelayMail(ctx); err != nil {
		d.logger.Error("mail_relay_failed", "error", err)
	}
}

// SweepExpired retires available listings whose expiry date has passed and
// cancels their still-pending reservations, telling each requester.
func (d *Dispatcher) SweepExpired(ctx context.Context) error {
	expired, err := d.repos.Donations.ExpireBefore(ctx, time.Now())
	if err != nil {
		return err
	}
	if expired == 0 {
		return nil
	}
	d.logger.Info("listings_expired", "count", expired)

	// Reservations on a just-expired listing can only be pending: accepting
	// one would have moved the listing to reserved.
	list, err := d.repos.Donations.ListExpiredWithPending(ctx)
	if err != nil {
		return err
	}
	for i := range list {
		donation := &list[i]
		reservations, err := d.repos.Reservations.ListByDonation(ctx, donation.ID)
		if err != nil {
			return err
		}
		notifs := make([]models.Notification, 0, len(reservations))
		for j := range reservations {
			res := &reservations[j]
			if res.Status != models.ReservationPending {
				continue
			}
			if _, err := d.repos.Reservations.UpdateStatusIf(ctx, res.ID, models.ReservationPending, models.ReservationCanceled, nil); err != nil {
				return err
			}
			notifs = append(notifs, models.Notification{
				UserID:  res.RecipientID,
				Type:    models.NotifReservationCanceled,
				Title:   "Donation expired",
				Message: "A donation you requested passed its expiry date and was taken off the board.",
			})
		}
		if len(notifs) > 0 {
			if err := d.repos.Notifications.CreateBatch(ctx, notifs); err != nil {
				return err
			}
		}
	}
	return nil
}

// RelayMail drains one batch of notifications still waiting for an email,
// fanning deliveries out over the worker pool. A notification is only marked
// sent after its delivery succeeded, so failures retry next pass.
func (d *Dispatcher) RelayMail(ctx context.Context) error {
	pending, err := d.repos.Notifications.ListUnsentEmail(ctx, d.batchSize)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		return nil
	}
	d.logger.Info("relaying_notification_mail", "count", len(pending))

	for i := range pending {
		n := pending[i]
		d.pool.Submit(func(taskCtx context.Context) error {
			if err := d.mailer.Send(taskCtx, &n); err != nil {
				return err
			}
			return d.repos.Notifications.MarkEmailSent(taskCtx, n.ID)
		})
	}
	return nil
}
