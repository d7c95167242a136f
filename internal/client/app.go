// SPDX-License-Identifier: Apache-2.0

package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/daybook-sync/daybook/internal/adapter"
	"github.com/daybook-sync/daybook/internal/logger"
	"github.com/daybook-sync/daybook/internal/service"
	"github.com/daybook-sync/daybook/internal/workers"
	"github.com/daybook-sync/daybook/models"
)

// App is the interactive daybook client. Every data-changing command lands
// in the durable local queue first; delivery to the server is handled by the
// sync service and the background workers, never by the command itself.
type App struct {
	services *service.ClientServices
	adapter  adapter.ServerAdapter
	workers  *workers.Workers
	logger   *logger.Logger

	in  io.Reader
	out io.Writer
}

func NewApp(services *service.ClientServices, serverAdapter adapter.ServerAdapter, workers *workers.Workers, logger *logger.Logger) (*App, error) {
	if services == nil || serverAdapter == nil || workers == nil {
		return nil, errNilDependency
	}

	return &App{
		services: services,
		adapter:  serverAdapter,
		workers:  workers,
		logger:   logger,
		in:       os.Stdin,
		out:      os.Stdout,
	}, nil
}

// Run starts the background workers and blocks in the command loop until the
// user quits or stdin closes.
func (a *App) Run() error {
	ctx := context.Background()

	a.workers.Run()
	defer a.workers.Stop()

	fmt.Fprintln(a.out, "daybook client. Type 'help' for commands.")

	scanner := bufio.NewScanner(a.in)
	for {
		fmt.Fprint(a.out, "> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		command, args := fields[0], fields[1:]

		if command == "quit" || command == "exit" {
			break
		}

		if err := a.dispatch(ctx, command, args); err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
		}
	}

	return scanner.Err()
}

func (a *App) dispatch(ctx context.Context, command string, args []string) error {
	switch command {
	case "help":
		a.printHelp()
		return nil
	case "register":
		return a.register(ctx, args)
	case "login":
		return a.login(ctx, args)
	case "note":
		return a.note(ctx, args)
	case "react":
		return a.react(ctx, args)
	case "done":
		return a.done(ctx, args)
	case "edit":
		return a.edit(ctx, args)
	case "del":
		return a.del(ctx, args)
	case "pending":
		return a.pending(ctx)
	case "sync":
		return a.sync(ctx)
	case "status":
		return a.status(ctx)
	case "clear":
		return a.clear(ctx)
	default:
		return fmt.Errorf("%w: %s", errUnknownCommand, command)
	}
}

func (a *App) printHelp() {
	fmt.Fprint(a.out, `commands:
  register <login> <password> [name]   create an account
  login <login> <password>             start a session
  note <title> [body...]               queue a new journal entry
  react <entry-id> on|off              queue a reaction end-state
  done <task-id> [undo]                queue a daily-task completion
  edit <entry-id> title|body <text>    queue a partial entry update
  del <entry-id>                       queue an entry soft-delete
  pending                              list queued actions
  sync                                 flush the queue now
  status                               show server-side state summary
  clear                                drop the queue and watermark
  quit                                 exit
`)
}

// enqueue records one action locally and reports it; a kick of the sync
// service is left to connectivity events and the periodic flush.
func (a *App) enqueue(ctx context.Context, actionType models.ActionType, payload any) error {
	action, err := a.services.SyncService.Enqueue(ctx, actionType, payload)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "queued %s (%s)\n", action.Type, action.ID)
	return nil
}
