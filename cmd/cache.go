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
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/valpere/perevod/internal/store"
)

var errNoDB = errors.New("no database configured (--db)")

// withStore opens the configured database for the duration of fn.
func withStore(fn func(ctx context.Context, db *store.Store) error) error {
	db, err := openStore(cfg.DB)
	if err != nil {
		return err
	}
	if db == nil {
		return errNoDB
	}
	defer db.Close()
	return fn(context.Background(), db)
}

func snippet(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n-3]) + "..."
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the translation memory",
	Long:  `List, inspect, invalidate and clear cached translations.`,
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all translation memory entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, db *store.Store) error {
			entries, err := db.ListMemory(ctx)
			if err != nil {
				return fmt.Errorf("failed to list entries: %w", err)
			}

			if len(entries) == 0 {
				fmt.Println("No entries in translation memory.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tPAIR\tUSED\tLAST USED\tINVALID\tSOURCE\tTRANSLATION")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s→%s\t%d\t%s\t%v\t%s\t%s\n",
					e.ID, e.SourceLang, e.TargetLang,
					e.UsageCount, e.LastUsed.Format("2006-01-02 15:04"),
					e.Invalidated, snippet(e.SourceText, 40), snippet(e.FinalText, 40))
			}
			return w.Flush()
		})
	},
}

var cacheInvalidateCmd = &cobra.Command{
	Use:   "invalidate <id>",
	Short: "Stop serving an entry without deleting it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, db *store.Store) error {
			if err := db.InvalidateMemory(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to invalidate entry: %w", err)
			}
			fmt.Printf("Invalidated entry: %s\n", args[0])
			return nil
		})
	},
}

var cacheDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a translation memory entry by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, db *store.Store) error {
			if err := db.DeleteMemory(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete entry: %w", err)
			}
			fmt.Printf("Deleted entry: %s\n", args[0])
			return nil
		})
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all entries from translation memory",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, db *store.Store) error {
			n, err := db.ClearMemory(ctx)
			if err != nil {
				return fmt.Errorf("failed to clear cache: %w", err)
			}
			fmt.Printf("Cleared %d entries from translation memory.\n", n)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)

	cacheCmd.AddCommand(cacheListCmd)
	cacheCmd.AddCommand(cacheInvalidateCmd)
	cacheCmd.AddCommand(cacheDeleteCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}
