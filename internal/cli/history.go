// ABOUTME: History command for viewing recorded push attempts.
// ABOUTME: Queries local SQLite database with date and text filters.
package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	"github.com/harper/gitpush/internal/db"
	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded push attempts",
		RunE:  runHistory,
	}

	cmd.Flags().IntP("limit", "n", 20, "limit number of rows")
	cmd.Flags().String("since", "", "filter by natural language date (e.g. yesterday)")
	cmd.Flags().String("search", "", "search captured output")
	cmd.Flags().Bool("json", false, "output JSON")

	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		limit = 20
	}

	sinceStr, _ := cmd.Flags().GetString("since")
	search, _ := cmd.Flags().GetString("search")
	asJSON, _ := cmd.Flags().GetBool("json")

	var since *time.Time
	if sinceStr != "" {
		parsed, err := dateparse.ParseLocal(sinceStr)
		if err != nil {
			return fmt.Errorf("parse --since: %w", err)
		}
		since = &parsed
	}

	store, _, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	records, err := store.QueryRuns(cmd.Context(), limit, since, search)
	if err != nil {
		return err
	}

	if asJSON {
		return writeHistoryJSON(cmd, records)
	}
	writeHistoryTable(cmd, records)
	return nil
}

func writeHistoryJSON(cmd *cobra.Command, records []db.RunRecord) error {
	if records == nil {
		records = []db.RunRecord{}
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func writeHistoryTable(cmd *cobra.Command, records []db.RunRecord) {
	if len(records) == 0 {
		cmd.Println("No history found.")
		return
	}
	for _, rec := range records {
		timestamp := rec.StartedAt.Local().Format(time.RFC3339)
		status := "error"
		switch {
		case rec.Succeeded():
			status = "ok"
		case rec.ExitCode != nil:
			status = fmt.Sprintf("exit %d", *rec.ExitCode)
		}
		cmd.Printf("%s [%s] %s %s/%s %s\n", timestamp, rec.RunID, rec.Tool, rec.Remote, rec.Branch, status)
		if rec.Dir != "" {
			cmd.Printf("  Dir: %s\n", rec.Dir)
		}
		if rec.LaunchError != "" {
			cmd.Printf("  Error: %s\n", rec.LaunchError)
		}
		if rec.DurationMS > 0 {
			cmd.Printf("  Duration: %dms\n", rec.DurationMS)
		}
	}
}
