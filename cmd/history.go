/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/valpere/perevod/internal/store"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect past translations",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent translations, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, db *store.Store) error {
			records, err := db.ListRecords(ctx, historyLimit)
			if err != nil {
				return fmt.Errorf("failed to list history: %w", err)
			}

			if len(records) == 0 {
				fmt.Println("History is empty.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TIME\tPAIR\tCACHED\tLATENCY\tSOURCE\tRESULT")
			for _, r := range records {
				result := r.Translation
				if !r.Succeeded() {
					result = fmt.Sprintf("[%s] %s", r.ErrorKind, r.ErrorMessage)
				}
				fmt.Fprintf(w, "%s\t%s→%s\t%v\t%dms\t%s\t%s\n",
					r.Timestamp.Format("2006-01-02 15:04:05"), r.SourceLang, r.TargetLang,
					r.Cached, r.LatencyMs, snippet(r.SourceText, 40), snippet(result, 50))
			}
			return w.Flush()
		})
	},
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show history and translation memory statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, db *store.Store) error {
			stats, err := db.Stats(ctx)
			if err != nil {
				return fmt.Errorf("failed to get stats: %w", err)
			}

			fmt.Printf("Translations:    %d\n", stats.Translations)
			fmt.Printf("Failed:          %d\n", stats.Failed)
			fmt.Printf("Cache hits:      %d\n", stats.CacheHits)
			fmt.Printf("Memory entries:  %d (%d active, %d invalid)\n",
				stats.TotalEntries, stats.ActiveEntries, stats.InvalidEntries)
			fmt.Printf("Memory usage:    %d\n", stats.TotalUsage)
			return nil
		})
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the translation history",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, db *store.Store) error {
			n, err := db.ClearHistory(ctx)
			if err != nil {
				return fmt.Errorf("failed to clear history: %w", err)
			}
			fmt.Printf("Cleared %d history entries.\n", n)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of entries to show (0 = all)")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyStatsCmd)
	historyCmd.AddCommand(historyClearCmd)
}
