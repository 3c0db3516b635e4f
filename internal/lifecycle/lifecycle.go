// Package lifecycle implements C7: the ordered startup and graceful
// shutdown sequence around the job queue, worker pool, background
// driver, and acceptor (spec.md §4.7).
package lifecycle

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/atomic"

	"github.com/grunfink/snac-core/internal/acceptor"
	"github.com/grunfink/snac-core/internal/admin"
	"github.com/grunfink/snac-core/internal/background"
	"github.com/grunfink/snac-core/internal/collab"
	"github.com/grunfink/snac-core/internal/config"
	"github.com/grunfink/snac-core/internal/connhandler"
	"github.com/grunfink/snac-core/internal/queue"
	"github.com/grunfink/snac-core/internal/worker"
	"github.com/grunfink/snac-core/pkg/logger"
)

// ShutdownTimeout bounds how long the admin sidecar is given to drain
// in-flight requests during Shutdown.
const ShutdownTimeout = 10 * time.Second

// Server owns every long-lived component of one running instance.
type Server struct {
	Config   *config.Config
	Users    collab.Users
	Archiver collab.Archiver
	Proc     collab.QueueProcessor
	Cascades connhandler.Cascades

	running   *atomic.Bool
	readiness *atomic.Bool

	queue    *queue.Queue
	acceptor *acceptor.Acceptor
	pool     *worker.Pool
	driver   *background.Driver
	admin    *admin.Sidecar

	driverWG  sync.WaitGroup
	startedAt time.Time
}

// New constructs a Server. Nothing is bound or started until Start is
// called.
func New(cfg *config.Config, users collab.Users, archiver collab.Archiver, proc collab.QueueProcessor, cascades connhandler.Cascades) *Server {
	return &Server{
		Config:    cfg,
		Users:     users,
		Archiver:  archiver,
		Proc:      proc,
		Cascades:  cascades,
		running:   atomic.NewBool(false),
		readiness: atomic.NewBool(false),
	}
}

// Start binds the federation socket, spawns the background driver and
// worker pool, starts the admin sidecar, and blocks in the accept loop
// until a termination signal arrives. It returns once graceful shutdown
// has completed (spec.md §4.7 startup and shutdown steps).
func (s *Server) Start() error {
	s.startedAt = time.Now()

	a, err := acceptor.Bind(s.Config.Address, s.Config.Port)
	if err != nil {
		return err
	}
	s.acceptor = a

	logger.Info("httpd start %s:%d host=%s", s.Config.Address, s.Config.Port, s.Config.Host)
	logRlimit()

	s.queue = queue.New()
	s.running.Store(true)

	// Thread #0 in the source is the background driver; the remaining
	// n_threads-1 are job workers (spec.md §4.7 step 5, §4.2).
	total := worker.ResolveCount(s.Config.NumThreads)
	logger.Debug(0, "using %d threads", total)

	connHandler := &connhandler.Handler{
		Host:     s.Config.Host,
		Prefix:   s.Config.Prefix,
		Cascades: s.Cascades,
		Archiver: s.Archiver,
	}

	s.pool = worker.New(total-1, s.queue, connHandler, s.Proc)
	s.driver = background.New(s.Users, s.Proc, s.queue, s.running)

	s.driverWG.Add(1)
	go func() {
		defer s.driverWG.Done()
		s.driver.Run(context.Background())
	}()

	s.pool.Start()

	s.admin = admin.New(s.Config.AdminListen, s.readiness)
	s.admin.Start()

	s.readiness.Store(true)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("shutdown signal received")
		s.Shutdown()
	}()

	logger.Info("httpd ready, accepting connections")
	s.acceptor.Run(s.queue)

	s.drain(total - 1)

	uptime := time.Since(s.startedAt).Round(time.Second)
	logger.Info("httpd stop %s:%d (run time: %s)", s.Config.Address, s.Config.Port, uptime)

	return nil
}

// Shutdown triggers graceful shutdown: it marks the instance not-ready,
// unblocks the acceptor's Accept loop, and lets Start's post-accept
// sequence join every worker and the background driver (spec.md §4.7
// shutdown steps 1-5).
func (s *Server) Shutdown() {
	s.readiness.Store(false)
	s.running.Store(false)
	if s.acceptor != nil {
		s.acceptor.Stop()
	}
}

// drain posts one sentinel per worker, wakes the background driver so
// it observes running=false without waiting out its idle sleep, joins
// everything, and shuts down the admin sidecar.
func (s *Server) drain(workerCount int) {
	s.running.Store(false)

	for i := 0; i < workerCount; i++ {
		s.queue.Post(queue.Sentinel(), false)
	}
	s.driver.Wake()

	s.pool.Join()
	s.driverWG.Wait()
	s.queue.Close()

	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := s.admin.Shutdown(ctx); err != nil {
		logger.Error("admin sidecar shutdown: %v", err)
	}
}

// logRlimit reproduces original_source/httpd.c's startup diagnostic:
// getrlimit(RLIMIT_NOFILE) logged at debug level right after binding.
func logRlimit() {
	var rl syscall.Rlimit
	if err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rl); err != nil {
		logger.Debug(0, "rlimit: could not read RLIMIT_NOFILE: %v", err)
		return
	}
	logger.Debug(0, "available (rlimit) fds: %d (cur) / %d (max)", rl.Cur, rl.Max)
}
