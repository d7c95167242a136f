// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/daybook-sync/daybook/internal/utils"
	"github.com/daybook-sync/daybook/models"
)

func (a *App) register(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: register <login> <password> [name]", errUsage)
	}

	user := models.User{Login: args[0], Password: args[1]}
	if len(args) > 2 {
		user.Name = strings.Join(args[2:], " ")
	}

	registered, err := a.adapter.Register(ctx, user)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "registered and logged in as %s\n", registered.Login)
	return nil
}

func (a *App) login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: login <login> <password>", errUsage)
	}

	if _, err := a.adapter.Login(ctx, models.User{Login: args[0], Password: args[1]}); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "logged in as %s\n", args[0])
	return nil
}

func (a *App) note(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: note <title> [body...]", errUsage)
	}

	data := models.EntryCreateData{
		Title: args[0],
		// a fresh dedup key per command keeps retried deliveries from
		// creating duplicate entries
		DedupKey: utils.NewUUIDGenerator().Generate(),
	}
	if len(args) > 1 {
		data.Body = strings.Join(args[1:], " ")
	}

	return a.enqueue(ctx, models.ActionEntryCreate, data)
}

func (a *App) react(ctx context.Context, args []string) error {
	if len(args) != 2 || (args[1] != "on" && args[1] != "off") {
		return fmt.Errorf("%w: react <entry-id> on|off", errUsage)
	}

	entryID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("%w: entry id must be a number", errUsage)
	}

	return a.enqueue(ctx, models.ActionReactionToggle, models.ReactionToggleData{
		TargetID: entryID,
		Desired:  args[1] == "on",
	})
}

func (a *App) done(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 || (len(args) == 2 && args[1] != "undo") {
		return fmt.Errorf("%w: done <task-id> [undo]", errUsage)
	}

	return a.enqueue(ctx, models.ActionTaskComplete, models.TaskCompleteData{
		TaskID:    args[0],
		Completed: len(args) == 1,
	})
}

func (a *App) edit(ctx context.Context, args []string) error {
	if len(args) < 3 || (args[1] != "title" && args[1] != "body") {
		return fmt.Errorf("%w: edit <entry-id> title|body <text>", errUsage)
	}

	entryID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("%w: entry id must be a number", errUsage)
	}

	text := strings.Join(args[2:], " ")
	data := models.EntryUpdateData{EntryID: entryID}
	if args[1] == "title" {
		data.Title = &text
	} else {
		data.Body = &text
	}

	return a.enqueue(ctx, models.ActionEntryUpdate, data)
}

func (a *App) del(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: del <entry-id>", errUsage)
	}

	entryID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("%w: entry id must be a number", errUsage)
	}

	return a.enqueue(ctx, models.ActionEntryDelete, models.EntryDeleteData{EntryID: entryID})
}

func (a *App) pending(ctx context.Context) error {
	actions, err := a.services.SyncService.PendingActions(ctx)
	if err != nil {
		return err
	}

	if len(actions) == 0 {
		fmt.Fprintln(a.out, "queue is empty")
		return nil
	}

	for i, action := range actions {
		fmt.Fprintf(a.out, "%3d. %-16s %s  %s\n", i+1, action.Type, action.ID, action.Timestamp.Local().Format("2006-01-02 15:04:05"))
	}

	lastSync, err := a.services.SyncService.LastSyncAt(ctx)
	if err == nil && lastSync != nil {
		fmt.Fprintf(a.out, "last sync: %s\n", lastSync.Local().Format("2006-01-02 15:04:05"))
	}

	return nil
}

func (a *App) sync(ctx context.Context) error {
	if a.adapter.Token() == "" {
		return errNotLoggedIn
	}

	result, err := a.services.SyncService.SyncPendingActions(ctx)
	if err != nil {
		return err
	}

	if result.Total == 0 {
		fmt.Fprintln(a.out, "nothing to sync")
		return nil
	}

	fmt.Fprintf(a.out, "synced %d action(s): %d applied, %d failed\n", result.Total, len(result.Successful), len(result.Failed))
	for _, failure := range result.Failed {
		fmt.Fprintf(a.out, "  failed %s (%s): %s\n", failure.Type, failure.ID, failure.Error)
	}

	return nil
}

func (a *App) status(ctx context.Context) error {
	if a.adapter.Token() == "" {
		return errNotLoggedIn
	}

	syncStatus, err := a.adapter.GetSyncStatus(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "entries: %d  reactions: %d  completed tasks: %d\n",
		syncStatus.EntryCount, syncStatus.ReactionCount, syncStatus.CompletedTaskCount)
	if syncStatus.LastUpdatedAt != nil {
		fmt.Fprintf(a.out, "last server change: %s\n", syncStatus.LastUpdatedAt.Local().Format("2006-01-02 15:04:05"))
	}
	if a.services.ConnectivityMonitor.IsOnline() {
		fmt.Fprintln(a.out, "connectivity: online")
	} else {
		fmt.Fprintln(a.out, "connectivity: offline")
	}

	return nil
}

func (a *App) clear(ctx context.Context) error {
	if err := a.services.SyncService.ClearQueue(ctx); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "queue cleared")
	return nil
}
