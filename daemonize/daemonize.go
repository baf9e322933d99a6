// Copyright (c) 2025 BVK Chaitanya

package daemonize

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"log/syslog"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// Daemonize respawns the current program in the background with the same
// command-line arguments. Daemonize is intended to turn the current program
// invoked from shell into a daemon process. Daemonize function *must* be
// called during the program startup before performing any other significant
// logic, like opening data files, starting servers, etc.
//
// The envKey environment variable distinguishes the parent from the
// respawned child. It is expected to be unique and not used (or set) by any
// other process. Its value in the child holds the parent process pid.
//
// Standard input and standard outputs in the background process are replaced
// with /dev/null and standard library log is redirected to use the syslog
// backend.
//
// Parent process uses the check function to wait for the background process
// to initialize successfully or die unsuccessfully. Check receives the
// background process handle; it returns nil when initialization is complete,
// (true, err) when initialization should be rechecked and (false, err) when
// initialization has failed for good.
//
// When successful, Daemonize returns nil to the background process and exits
// the parent process (i.e., never returns). When unsuccessful, Daemonize
// returns non-nil error to the parent process and exits the background process
// (i.e., never returns).
func Daemonize(ctx context.Context, envKey string, check func(context.Context, *os.Process) (bool, error)) error {
	if v := os.Getenv(envKey); len(v) == 0 {
		if err := daemonizeParent(ctx, envKey, check); err != nil {
			return err
		}
		os.Exit(0)
	}
	if err := daemonizeChild(); err != nil {
		os.Exit(1)
	}
	return nil
}

func daemonizeParent(ctx context.Context, envKey string, check func(context.Context, *os.Process) (bool, error)) error {
	binary, err := exec.LookPath(os.Args[0])
	if err != nil {
		return fmt.Errorf("failed to lookup binary: %w", err)
	}
	binaryPath, err := filepath.Abs(binary)
	if err != nil {
		return fmt.Errorf("could not determine absolute path for binary: %w", err)
	}

	file, err := os.OpenFile("/dev/null", os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("failed to open /dev/null: %w", err)
	}

	// Receive signal when child-process dies.
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGCHLD, os.Interrupt)
	defer stop()

	attr := &os.ProcAttr{
		Dir:   "/",
		Env:   []string{fmt.Sprintf("%s=%d", envKey, os.Getpid())},
		Files: []*os.File{file, file, file},
	}
	child, err := os.StartProcess(binaryPath, os.Args, attr)
	if err != nil {
		return fmt.Errorf("failed to start process: %w", err)
	}

	if check != nil {
		time.Sleep(time.Second)
		for ctx.Err() == nil {
			retry, err := check(ctx, child)
			if err == nil {
				break
			}
			if !retry {
				return err
			}
			slog.WarnContext(ctx, "daemon process not yet initialized (will retry)", "error", err)
			time.Sleep(time.Second)
		}
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("could not initialize the background process: %w", err)
	}
	return nil
}

func daemonizeChild() error {
	syslogger, err := syslog.New(syslog.LOG_INFO, "pricemon")
	if err != nil {
		return fmt.Errorf("could not create syslog: %w", err)
	}
	log.SetOutput(syslogger)

	if _, err := unix.Setsid(); err != nil {
		return fmt.Errorf("could not set session id: %w", err)
	}
	return nil
}
