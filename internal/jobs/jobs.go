// Package jobs runs the scheduled background work: refreshing the pending
// room-approval gauge and checking for overdue installments.
package jobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/agendaparoquial/server/internal/metrics"
	"github.com/agendaparoquial/server/internal/store"
)

// Scheduler owns the cron runner.
type Scheduler struct {
	cron  *cron.Cron
	store *store.Store
}

func NewScheduler(st *store.Store) *Scheduler {
	return &Scheduler{
		cron:  cron.New(cron.WithSeconds()),
		store: st,
	}
}

// Start registers and launches the jobs. The pending-room refresh runs every
// 30 seconds, matching the polling cadence the admin screen expects; the
// overdue-installment check runs daily after midnight.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("*/30 * * * * *", s.atualizarSalasPendentes); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("0 10 0 * * *", s.verificarParcelasVencidas); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop halts scheduling and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) atualizarSalasPendentes() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	n, err := s.store.Salas.ContarPendentes(ctx)
	if err != nil {
		log.Printf("[ERROR] contar salas pendentes: %v", err)
		return
	}
	metrics.SetSalasPendentes(n)
}

func (s *Scheduler) verificarParcelasVencidas() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := s.store.Reservas.ContarParcelasVencidas(ctx, time.Now())
	if err != nil {
		log.Printf("[ERROR] contar parcelas vencidas: %v", err)
		return
	}
	if n > 0 {
		log.Printf("[WARN] %d parcelas vencidas sem confirmação", n)
	}
}
