// Copyright (c) 2025 BVK Chaitanya

package subcmds

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/pricemon/pricemon/cli"
	"github.com/pricemon/pricemon/notify"
	"golang.org/x/term"
)

type Setup struct {
	dataDir     string
	secretsPath string
	skipTesting bool
}

func (c *Setup) Synopsis() string {
	return "Setup prints and/or configures pricemon notification credentials"
}

func (c *Setup) Command() (*flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("setup", flag.ContinueOnError)
	fset.StringVar(&c.dataDir, "data-dir", "", "path to the data directory")
	fset.StringVar(&c.secretsPath, "secrets-file", "", "path to credentials file")
	fset.BoolVar(&c.skipTesting, "skip-testing", false, "don't test the parameters")
	return fset, cli.CmdFunc(c.run)
}

func (c *Setup) CommandHelp() string {
	return `

Command "setup" helps users configure credentials for the Pushover and
Telegram notification channels. Command prints current config when run
without any arguments.

PUSHOVER PARAMETERS

Pushover keys are required to receive notifications on mobile phones through
the Pushover service. They can be configured as follows:

  $ pricemon setup pushover-app=awja5ue...ito7svf pushover-user=uscjs2...tvp4kv

TELEGRAM PARAMETERS

Telegram alerts need a bot token and the destination chat id:

  $ pricemon setup telegram-token=123456:aaaabbbb telegram-chat=1234567

Secret values can be left empty (e.g., "pushover-app=") to be prompted for
them without echoing to the terminal.

`
}

func (c *Setup) run(ctx context.Context, args []string) error {
	if len(c.dataDir) == 0 {
		c.dataDir = filepath.Join(os.Getenv("HOME"), ".pricemon")
	}
	if _, err := os.Stat(c.dataDir); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("could not stat data directory %q: %w", c.dataDir, err)
		}
		if len(args) == 0 {
			return fmt.Errorf("pricemon is not configured")
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

	if len(args) == 0 {
		js, _ := json.MarshalIndent(secrets, "", "  ")
		fmt.Printf("%s\n", js)
		return nil
	}

	validKeys := []string{"pushover-app", "pushover-user", "telegram-token", "telegram-chat"}
	secretKeys := []string{"pushover-app", "telegram-token"}
	kvMap := make(map[string]string)
	// Parse config values from the command-line.
	for _, arg := range args {
		before, after, found := strings.Cut(arg, "=")
		if !found {
			return fmt.Errorf("invalid config argument %q", arg)
		}
		if !slices.Contains(validKeys, before) {
			return fmt.Errorf("invalid/unrecognized config item key %q", before)
		}
		if len(after) == 0 && slices.Contains(secretKeys, before) {
			fmt.Printf("%s: ", before)
			value, err := term.ReadPassword(int(os.Stdin.Fd()))
			fmt.Println()
			if err != nil {
				return fmt.Errorf("could not read %q value: %w", before, err)
			}
			after = string(value)
		}
		if v, ok := kvMap[before]; ok && v != after {
			return fmt.Errorf("config item key %q is found with different values", before)
		}
		kvMap[before] = after
	}

	pushoverApp := kvMap["pushover-app"]
	pushoverUser := kvMap["pushover-user"]
	if len(pushoverUser) != 0 || len(pushoverApp) != 0 {
		if len(pushoverApp) == 0 || len(pushoverUser) == 0 {
			return fmt.Errorf(`both "pushover-app" and "pushover-user" parameters are required`)
		}
		secrets.Pushover = &notify.PushoverKeys{
			ApplicationKey: pushoverApp,
			UserKey:        pushoverUser,
		}
		if !c.skipTesting {
			// Attempt to authenticate with pushover to validate the keys.
			sender, err := notify.NewPushoverSender(secrets.Pushover)
			if err != nil {
				return err
			}
			if err := sender.SendMessage(ctx, time.Now(), "Test message from pricemon setup; please ignore."); err != nil {
				return err
			}
		}
	}

	telegramToken := kvMap["telegram-token"]
	telegramChat := kvMap["telegram-chat"]
	if len(telegramToken) != 0 || len(telegramChat) != 0 {
		if len(telegramToken) == 0 || len(telegramChat) == 0 {
			return fmt.Errorf(`both "telegram-token" and "telegram-chat" parameters are required`)
		}
		chatID, err := strconv.ParseInt(telegramChat, 10, 64)
		if err != nil {
			return fmt.Errorf("could not parse telegram chat id %q: %w", telegramChat, err)
		}
		secrets.Telegram = &notify.TelegramSecrets{
			BotToken: telegramToken,
			ChatID:   chatID,
		}
		if !c.skipTesting {
			// Attempt to send a message to validate the token and chat id.
			sender, err := notify.NewTelegramSender(secrets.Telegram)
			if err != nil {
				return err
			}
			if err := sender.SendMessage(ctx, time.Now(), "Test message from pricemon setup; please ignore."); err != nil {
				return err
			}
		}
	}

	js, err := json.MarshalIndent(secrets, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.secretsPath, js, os.FileMode(0600)); err != nil {
		return err
	}
	return nil
}
