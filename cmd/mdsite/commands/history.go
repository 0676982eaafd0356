package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"git.home.luguber.info/inful/mdsite/internal/config"
	"git.home.luguber.info/inful/mdsite/internal/errors"
	"git.home.luguber.info/inful/mdsite/internal/history"
)

// HistoryCmd implements the 'history' command: list recent builds recorded
// in the history database, newest first.
type HistoryCmd struct {
	Limit int `help:"Maximum number of builds to list" default:"20"`
}

func (h *HistoryCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	path := cfg.HistoryPath(root.Config)
	if path == "" {
		return errors.ConfigError("history_db is not configured; builds are not being recorded")
	}
	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Recent(context.Background(), h.Limit)
	if err != nil {
		return err
	}
	return renderHistory(os.Stdout, entries)
}

func renderHistory(out io.Writer, entries []history.Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(out, "No builds recorded yet")
		return err
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTARTED\tOUTCOME\tPAGES\tASSETS\tDURATION\tCOMMIT\tERROR")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%s\t%s\n",
			short(e.ID, 8),
			e.Started.Format("2006-01-02 15:04:05"),
			e.Outcome,
			e.Pages,
			e.Assets,
			time.Duration(e.DurationMS)*time.Millisecond,
			short(e.Commit, 8),
			truncate(e.Error, 60),
		)
	}
	return w.Flush()
}

// short cuts s to at most n runes. Used for IDs and commit hashes where a
// prefix is enough to identify the row.
func short(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
