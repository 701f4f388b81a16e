package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/sim4gh/bettershot-go/internal/history"
	"github.com/sim4gh/bettershot-go/internal/util"
)

var (
	historyKind   string
	historySearch string
	historyLimit  string
	historySort   string
	historyPrune  string
	historyRaw    bool
)

func addHistoryCommand() {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List saved captures",
		Long: `List saved captures

Every image bettershot saves is recorded while history is on
("bettershot config set history false" turns it off).

Kinds: shot, monitor, region, edited, region/screen/window (native).

Examples:
  bettershot history --kind monitor      Only per-monitor captures
  bettershot history --search invoice    Paths containing "invoice"
  bettershot history --limit 5 --sort size
  bettershot history --prune 30d         Forget entries older than 30 days
  bettershot history --raw | jq ".[]"    JSON output for scripting`,
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE:    runHistory,
	}

	historyCmd.Flags().StringVarP(&historyKind, "kind", "k", "", "Filter by kind")
	historyCmd.Flags().StringVarP(&historySearch, "search", "s", "", "Search in file path")
	historyCmd.Flags().StringVarP(&historyLimit, "limit", "l", "", "Limit number of results")
	historyCmd.Flags().StringVar(&historySort, "sort", "date", "Sort by: date, size")
	historyCmd.Flags().StringVar(&historyPrune, "prune", "", "Delete entries older than an age (e.g. 7d)")
	historyCmd.Flags().BoolVar(&historyRaw, "raw", false, "Output as JSON (for piping)")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if historyStore == nil {
		return errors.New("history is disabled. Enable it with: bettershot config set history true")
	}

	if historyPrune != "" {
		age, err := util.ParseAge(historyPrune)
		if err != nil {
			return err
		}
		n, err := historyStore.Prune(cmd.Context(), age)
		if err != nil {
			return err
		}
		fmt.Printf("Removed %d entries older than %s\n", n, historyPrune)
		return nil
	}

	entries, err := historyStore.List(cmd.Context(), 0)
	if err != nil {
		return err
	}

	if historyKind != "" {
		entries = filterEntries(entries, func(e history.Entry) bool {
			return strings.EqualFold(e.Kind, historyKind)
		})
	}
	if historySearch != "" {
		q := strings.ToLower(historySearch)
		entries = filterEntries(entries, func(e history.Entry) bool {
			return strings.Contains(strings.ToLower(e.Path), q)
		})
	}

	sortEntries(entries, historySort)

	total := len(entries)
	if historyLimit != "" {
		limit, err := strconv.Atoi(historyLimit)
		if err != nil || limit <= 0 {
			return fmt.Errorf("invalid limit: must be a positive number")
		}
		if limit < len(entries) {
			entries = entries[:limit]
		}
	}

	if historyRaw {
		if entries == nil {
			entries = []history.Entry{}
		}
		return printJSON(entries)
	}

	if len(entries) == 0 {
		fmt.Println("No captures recorded yet.")
		return nil
	}

	fmt.Println()
	displayHistoryTable(entries)

	limitInfo := ""
	if total > len(entries) {
		limitInfo = fmt.Sprintf(" (showing %d of %d)", len(entries), total)
	}
	fmt.Printf("\nTotal: %d captures%s\n", len(entries), limitInfo)
	return nil
}

func filterEntries(entries []history.Entry, keep func(history.Entry) bool) []history.Entry {
	var filtered []history.Entry
	for _, e := range entries {
		if keep(e) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

func sortEntries(entries []history.Entry, field string) {
	switch strings.ToLower(field) {
	case "size":
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Bytes > entries[j].Bytes
		})
	default:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].CreatedAt.After(entries[j].CreatedAt)
		})
	}
}

func displayHistoryTable(entries []history.Entry) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Kind", "File", "Size", "Saved"})
	table.SetBorder(true)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, e := range entries {
		name := filepath.Base(e.Path)
		if !util.FileExists(e.Path) {
			name += " (missing)"
		}
		table.Append([]string{
			strconv.FormatInt(e.ID, 10),
			e.Kind,
			util.Truncate(name, 50),
			util.FormatBytes(e.Bytes),
			util.FormatAge(e.CreatedAt),
		})
	}

	table.Render()
}
