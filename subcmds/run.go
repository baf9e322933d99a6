// Copyright (c) 2025 BVK Chaitanya

package subcmds

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/nightlyone/lockfile"
	"github.com/pricemon/pricemon/api"
	"github.com/pricemon/pricemon/cli"
	"github.com/pricemon/pricemon/config"
	"github.com/pricemon/pricemon/ctxutil"
	"github.com/pricemon/pricemon/daemonize"
	"github.com/pricemon/pricemon/extract"
	"github.com/pricemon/pricemon/history"
	"github.com/pricemon/pricemon/httputil"
	"github.com/pricemon/pricemon/logdir"
	"github.com/pricemon/pricemon/monitor"
	"github.com/pricemon/pricemon/notify"
	"github.com/pricemon/pricemon/subcmds/cmdutil"
)

const daemonizeEnvKey = "PRICEMON_DAEMONIZE"

type Run struct {
	cmdutil.ServerFlags

	background bool

	restart         bool
	shutdownTimeout time.Duration

	noPprof      bool
	startMonitor bool

	secretsPath string
	dataDir     string
}

func (c *Run) Command() (*flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("run", flag.ContinueOnError)
	c.ServerFlags.SetFlags(fset)
	fset.BoolVar(&c.background, "background", false, "runs the daemon in background")
	fset.BoolVar(&c.restart, "restart", false, "when true, kills any old instance")
	fset.DurationVar(&c.shutdownTimeout, "shutdown-timeout", 30*time.Second, "max timeout for shutdown when restarting")
	fset.BoolVar(&c.noPprof, "no-pprof", false, "when true net/http/pprof handler is not registered")
	fset.BoolVar(&c.startMonitor, "start-monitor", false, "when true periodic price checks begin immediately")
	fset.StringVar(&c.secretsPath, "secrets-file", "", "path to credentials file")
	fset.StringVar(&c.dataDir, "data-dir", "", "path to the data directory")
	return fset, cli.CmdFunc(c.run)
}

func (c *Run) Synopsis() string {
	return "Runs pricemon in foreground or background"
}

func (c *Run) CommandHelp() string {
	return `

Command "run" starts the pricemon service. The service serves the control API
over HTTP and, once started through the API or with the -start-monitor flag,
checks configured product prices periodically.

SECRETS FILE

Pushover and Telegram notification channels require API credentials. Users
can create a secrets file with the credentials in JSON format. An example
secrets file format is given below:

    {
        "pushover":{
            "application_key":"111111111",
            "user_key":"2222222222"
        },
        "telegram":{
            "token":"123456:aaaabbbb",
            "chat_id":1234567
        }
    }

SMTP credentials for the email channel are read from the SMTP_SENDER_EMAIL,
SMTP_SENDER_PASSWORD and SMTP_RECIPIENT_EMAIL environment variables, which
take precedence over the config file values.

`
}

func (c *Run) run(ctx context.Context, args []string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(c.dataDir) == 0 {
		c.dataDir = filepath.Join(os.Getenv("HOME"), ".pricemon")
	}
	if _, err := os.Stat(c.dataDir); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("could not stat data directory %q: %w", c.dataDir, err)
		}
		if err := os.MkdirAll(c.dataDir, 0700); err != nil {
			return fmt.Errorf("could not create data directory %q: %w", c.dataDir, err)
		}
	}
	dataDir, err := filepath.Abs(c.dataDir)
	if err != nil {
		return fmt.Errorf("could not determine data-dir %q absolute path: %w", c.dataDir, err)
	}

	if len(c.secretsPath) == 0 {
		c.secretsPath = filepath.Join(dataDir, "secrets.json")
	}
	secrets, err := notify.SecretsFromFile(c.secretsPath)
	if err != nil {
		return err
	}

	if ip := net.ParseIP(c.IP); ip == nil {
		return fmt.Errorf("invalid ip address")
	}
	if c.Port <= 0 {
		return fmt.Errorf("invalid port number")
	}
	addr := &net.TCPAddr{
		IP:   net.ParseIP(c.IP),
		Port: c.Port,
	}

	// Health checker for the background process initialization. We need to
	// verify that responding http server is really our child and not an older
	// instance.
	check := func(ctx context.Context, child *os.Process) (bool, error) {
		client := http.Client{Timeout: time.Second}
		resp, err := client.Get(fmt.Sprintf("http://%s/pid", addr.String()))
		if err != nil {
			return true, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return true, fmt.Errorf("http status: %d", resp.StatusCode)
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return true, err
		}
		if pid := string(data); pid != fmt.Sprintf("%d", child.Pid) {
			if !c.restart {
				return false, fmt.Errorf("is another instance already running? pid mismatch: want %d got %s", child.Pid, pid)
			}
			return true, fmt.Errorf("is another instance already running? pid mismatch: want %d got %s", child.Pid, pid)
		}
		return false, nil
	}

	if c.background {
		if err := daemonize.Daemonize(ctx, daemonizeEnvKey, check); err != nil {
			return err
		}
	}

	logsDir := filepath.Join(dataDir, "logs")
	if err := os.MkdirAll(logsDir, 0700); err != nil {
		return fmt.Errorf("could not create logs directory %q: %w", logsDir, err)
	}
	logBackend, err := logdir.New(logsDir, "pricemon")
	if err != nil {
		return err
	}
	defer logBackend.Close()

	var logWriter io.Writer = logBackend
	if v := os.Getenv(daemonizeEnvKey); len(v) == 0 {
		logWriter = io.MultiWriter(os.Stderr, logBackend)
	}
	log.SetOutput(logWriter)
	log.SetFlags(log.Flags() | log.Lmicroseconds)
	slog.SetDefault(slog.New(slog.NewTextHandler(logWriter, nil)))

	log.Printf("using data directory %s and secrets file %s", dataDir, c.secretsPath)

	lockPath := filepath.Join(dataDir, "pricemon.lock")
	flock, err := lockfile.New(lockPath)
	if err != nil {
		return fmt.Errorf("could not create lock file %q: %w", lockPath, err)
	}
	if err := flock.TryLock(); err != nil {
		if !c.restart {
			return fmt.Errorf("could not get lock on file %q: %w", lockPath, err)
		}
		owner, err := flock.GetOwner()
		if err != nil {
			return fmt.Errorf("could not get current owner of the lock file: %w", err)
		}
		if err := owner.Signal(os.Interrupt); err == nil {
			log.Printf("waiting for the previous instance to shutdown")
			if err := ctxutil.RetryTimeout(ctx, time.Second, c.shutdownTimeout, flock.TryLock); err != nil {
				if err := owner.Signal(os.Kill); err != nil {
					return fmt.Errorf("could not kill current owner of the lock file: %w", err)
				}
				ctxutil.Sleep(ctx, time.Millisecond)
			}
		}
		if err := flock.TryLock(); err != nil {
			return fmt.Errorf("could not get lock on file %q after killing previous instance: %w", lockPath, err)
		}
	}
	defer flock.Unlock()

	// Start HTTP server.
	s, err := httputil.New(nil /* opts */)
	if err != nil {
		return err
	}
	defer s.Close()

	tcpServer, err := s.StartTCP(ctx, addr)
	if err != nil {
		return fmt.Errorf("could not start http server on %s: %w", addr, err)
	}
	defer s.Stop(tcpServer)

	if !c.noPprof {
		s.AddHandler("/debug/pprof/heap", pprof.Handler("heap"))
		s.AddHandler("/debug/pprof/goroutine", pprof.Handler("goroutine"))
		s.AddHandler("/debug/pprof/allocs", pprof.Handler("allocs"))
		s.AddHandler("/debug/pprof/block", pprof.Handler("block"))
		s.AddHandler("/debug/pprof/mutex", pprof.Handler("mutex"))
	}

	// Open the data files.
	cfgStore, err := config.Open(config.DefaultPath(dataDir))
	if err != nil {
		return err
	}
	histStore, err := history.Open(history.DefaultPath(dataDir))
	if err != nil {
		return err
	}

	notifier, err := newNotifier(secrets)
	if err != nil {
		return err
	}

	service := monitor.New(cfgStore, histStore, extract.New(nil /* opts */), notifier, nil /* opts */)
	defer service.Close()

	// Add monitor api handlers.
	monitorAPIs := service.HandlerMap()
	for k, v := range monitorAPIs {
		s.AddHandler(k, v)
	}
	defer func() {
		for k := range monitorAPIs {
			s.RemoveHandler(k)
		}
	}()

	s.AddHandler(api.LogsGetPath, httputil.PostJSONHandler(func(ctx context.Context, req *api.LogsGetRequest) (*api.LogsGetResponse, error) {
		if err := req.Check(); err != nil {
			return nil, err
		}
		nlines := req.NumLines
		if nlines == 0 {
			nlines = 100
		}
		lines, err := logdir.Tail(logsDir, "pricemon", nlines)
		if err != nil {
			return nil, err
		}
		return &api.LogsGetResponse{Lines: lines}, nil
	}))

	if c.startMonitor {
		if _, err := service.Start(ctx); err != nil {
			return err
		}
	}

	// Wait for the signals.

	log.Printf("started pricemon server at %s", addr)
	s.AddHandler("/pid", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, fmt.Sprintf("%d", os.Getpid()))
	}))

	<-ctx.Done()
	log.Printf("pricemon server is shutting down")
	return nil
}

// newNotifier builds the notification fan-out from the optional secrets
// file. Email and desktop channels are resolved from the configuration on
// every alert, so only credential-backed channels are registered here.
func newNotifier(secrets *notify.Secrets) (*notify.Service, error) {
	notifier := notify.NewService()

	if secrets.Pushover != nil {
		sender, err := notify.NewPushoverSender(secrets.Pushover)
		if err != nil {
			return nil, fmt.Errorf("could not configure pushover notifications: %w", err)
		}
		notifier.AddSender("pushover", sender)
	}
	if secrets.Telegram != nil {
		sender, err := notify.NewTelegramSender(secrets.Telegram)
		if err != nil {
			return nil, fmt.Errorf("could not configure telegram notifications: %w", err)
		}
		notifier.AddSender("telegram", sender)
	}

	log.Printf("configured %d notification channel(s)", notifier.NumSenders())
	return notifier, nil
}
