package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/focusflow/internal/client/api"
)

var errUsage = errors.New("usage")

func parseID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, errUsage
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", args[0])
	}
	return id, nil
}

// report prints err for the user and hints at logging in when the session
// is gone.
func (a *App) report(err error) error {
	if errors.Is(err, api.ErrUnauthorized) {
		a.userName = ""
		fmt.Fprintln(a.out, "Session expired, please log in again.")
		return err
	}
	fmt.Fprintln(a.out, "Error:", err)
	return err
}

func (a *App) List(ctx context.Context) error {
	list, err := a.api.List(ctx)
	if err != nil {
		return a.report(err)
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No tasks yet.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDONE\tNAME\tDESCRIPTION\tMODIFIED")
	for _, t := range list {
		done := " "
		if t.Done {
			done = "x"
		}
		fmt.Fprintf(tw, "%d\t[%s]\t%s\t%s\t%s\n", t.ID, done, t.Name, t.Description, t.Date)
	}
	return tw.Flush()
}

func (a *App) Add(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Task name", a.out)
	if err != nil {
		return err
	}
	description, err := getSimpleText(a.reader, "Description (optional)", a.out)
	if err != nil {
		return err
	}

	id, err := a.api.Add(ctx, name, description)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Task %d added.\n", id)
	return nil
}

func (a *App) Edit(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return a.usage("edit <id>", err)
	}
	name, err := getSimpleText(a.reader, "New name", a.out)
	if err != nil {
		return err
	}
	description, err := getSimpleText(a.reader, "New description", a.out)
	if err != nil {
		return err
	}

	if err := a.api.Edit(ctx, id, name, description); err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Task %d updated.\n", id)
	return nil
}

func (a *App) SetDone(ctx context.Context, args []string, done bool) error {
	id, err := parseID(args)
	if err != nil {
		if done {
			return a.usage("done <id>", err)
		}
		return a.usage("undone <id>", err)
	}

	if err := a.api.SetDone(ctx, id, done); err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Task %d done set to %t.\n", id, done)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return a.usage("delete <id>", err)
	}

	if err := a.api.Delete(ctx, id); err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Task %d deleted.\n", id)
	return nil
}

func (a *App) Count(ctx context.Context) error {
	stats, err := a.api.Count(ctx)
	if err != nil {
		return a.report(err)
	}
	if stats.Amount == 0 {
		fmt.Fprintln(a.out, "No tasks yet.")
		return nil
	}
	fmt.Fprintf(a.out, "%d task(s), latest id %d.\n", stats.Amount, stats.LatestID)
	return nil
}

func (a *App) usage(syntax string, err error) error {
	if errors.Is(err, errUsage) {
		fmt.Fprintln(a.out, "Usage:", syntax)
	} else {
		fmt.Fprintln(a.out, "Error:", err)
	}
	return err
}
