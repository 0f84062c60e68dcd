package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/Mshel/tetrad/internal/config"
	"github.com/Mshel/tetrad/internal/game"
	"github.com/Mshel/tetrad/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
)

// ipLimiter caps concurrent sessions per remote IP.
type ipLimiter struct {
	mu     sync.Mutex
	counts map[string]int
	max    int
}

func newIPLimiter(limit int) *ipLimiter {
	return &ipLimiter{counts: make(map[string]int), max: limit}
}

// acquire reserves a slot for ip and reports the count including it.
func (l *ipLimiter) acquire(ip string) (int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.counts[ip] >= l.max {
		return l.counts[ip] + 1, false
	}
	l.counts[ip]++
	return l.counts[ip], true
}

func (l *ipLimiter) release(ip string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counts[ip]--
	if l.counts[ip] <= 0 {
		delete(l.counts, ip)
	}
	return l.counts[ip]
}

func getIP(s ssh.Session) string {
	if addr, ok := s.RemoteAddr().(*net.TCPAddr); ok {
		return addr.IP.String()
	}
	return s.RemoteAddr().String()
}

func connectionLimiterMiddleware(limiter *ipLimiter) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(s ssh.Session) {
			ip := getIP(s)

			count, ok := limiter.acquire(ip)
			if !ok {
				log.Warn("Connection denied: IP limit exceeded", "ip", ip, "attempted_count", count, "current_limit", limiter.max)
				errorMessage := fmt.Sprintf("Too many active connections from your IP (%d/%d). Please try again later.\r\n", count, limiter.max)
				s.Write([]byte(errorMessage))
				s.Close()
				return
			}

			log.Info("Connection accepted", "ip", ip, "current_count", count, "limit", limiter.max)
			next(s)
			log.Info("Connection closed and counter decremented", "ip", ip, "count_after", limiter.release(ip))
		}
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration", "error", err)
	}
	log.SetLevel(cfg.Level())

	// resolve the strategy once so a bad name stops the server here
	strategy, release, err := cfg.NewStrategy()
	if err != nil {
		log.Fatal("Failed to load autoplay strategy", "strategy", cfg.Strategy, "error", err)
	}
	release()
	log.Info("Autoplay strategy ready", "strategy", strategy.Name())

	sshServer, serverCreateErr := wish.NewServer(
		wish.WithAddress(cfg.Addr()),
		wish.WithHostKeyPath(cfg.PrivateKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(viewHandler(cfg)),
			logging.Middleware(),
			activeterm.Middleware(),
			connectionLimiterMiddleware(newIPLimiter(cfg.MaxConnectionsPerIP)),
		),
	)
	if serverCreateErr != nil {
		log.Fatal("Failed to create ssh server", "error", serverCreateErr)
	}

	serverDoneChannel := make(chan os.Signal, 1)
	signal.Notify(serverDoneChannel, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	log.Info("Starting SSH server", "address", cfg.Addr())
	go func() {
		if err := sshServer.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Error("Could not start server", "error", err)
			serverDoneChannel <- nil
		}
	}()

	<-serverDoneChannel

	log.Info("Stopping SSH server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := sshServer.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		log.Error("Could not stop server", "error", err)
	}
}

// viewHandler gives every session its own game, generator and strategy.
func viewHandler(cfg config.Config) bubbletea.Handler {
	return func(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
		pty, _, _ := sshSession.Pty()

		gameManager, err := game.NewGameManager(game.DefaultConfig(), cfg.NewGenerator())
		if err != nil {
			log.Error("Failed to create game", "error", err)
			return nil, nil
		}

		strategy, release, err := cfg.NewStrategy()
		if err != nil {
			log.Error("Failed to load autoplay strategy", "strategy", cfg.Strategy, "error", err)
			strategy, release = &game.DefaultStrategy{}, func() {}
		}
		go func() {
			<-sshSession.Context().Done()
			release()
		}()

		controllerModel := ui.NewControllerModel(gameManager, strategy, cfg.FrameInterval, sshSession, pty.Window.Width, pty.Window.Height)
		return controllerModel, []tea.ProgramOption{tea.WithAltScreen()}
	}
}
