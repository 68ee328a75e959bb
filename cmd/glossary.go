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

	"github.com/valpere/perevod/internal/lang"
	"github.com/valpere/perevod/internal/store"
	"github.com/valpere/perevod/internal/terminology"
)

var glossaryCmd = &cobra.Command{
	Use:   "glossary",
	Short: "Manage the prompt glossary",
	Long: `Add, list, and delete glossary entries.

User entries are appended to the term list of the English → Russian prompt.
They steer the model; the built-in slang corrections applied after
translation are fixed and shown with "glossary list --builtin".`,
}

var (
	glossaryListSource string
	glossaryListTarget string
	glossaryBuiltin    bool
)

var glossaryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List glossary entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		if glossaryBuiltin {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TERM\tREPLACEMENT")
			for _, t := range terminology.Terms {
				fmt.Fprintf(w, "%s\t%s\n", t.Source, t.Replacement)
			}
			return w.Flush()
		}

		return withStore(func(ctx context.Context, db *store.Store) error {
			entries, err := db.ListGlossaryTerms(ctx, glossaryListSource, glossaryListTarget)
			if err != nil {
				return fmt.Errorf("failed to list glossary: %w", err)
			}

			if len(entries) == 0 {
				fmt.Println("Glossary is empty.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tPAIR\tSOURCE TERM\tTARGET TERM")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s→%s\t%s\t%s\n",
					e.ID, e.SourceLang, e.TargetLang, e.SourceTerm, e.TargetTerm)
			}
			return w.Flush()
		})
	},
}

var (
	glossaryAddSource string
	glossaryAddTarget string
)

var glossaryAddCmd = &cobra.Command{
	Use:   "add <source-term> <target-term>",
	Short: "Add or update a glossary entry",
	Long: `Add a glossary entry mapping a source-language term to a target-language term.

Example:
  perevod glossary add "deadline" "дедлайн"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pair, err := lang.ParsePair(glossaryAddSource, glossaryAddTarget)
		if err != nil {
			return err
		}
		if pair.Direction() != lang.ToGenderedTarget {
			fmt.Fprintf(os.Stderr, "Note: only English-source prompts include glossary terms; %s entries are stored but unused.\n", pair)
		}

		return withStore(func(ctx context.Context, db *store.Store) error {
			if err := db.AddGlossaryTerm(ctx, pair.Source.String(), pair.Target.String(), args[0], args[1]); err != nil {
				return fmt.Errorf("failed to add glossary entry: %w", err)
			}
			fmt.Printf("Added: [%s] %q → %q\n", pair, args[0], args[1])
			return nil
		})
	},
}

var glossaryDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a glossary entry by ID",
	Long:  `Delete a glossary entry by its ID (shown in "perevod glossary list").`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, db *store.Store) error {
			if err := db.DeleteGlossaryTerm(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete glossary entry: %w", err)
			}
			fmt.Printf("Deleted glossary entry: %s\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(glossaryCmd)

	glossaryListCmd.Flags().StringVarP(&glossaryListSource, "from", "f", "", "Filter by source language code")
	glossaryListCmd.Flags().StringVarP(&glossaryListTarget, "to", "t", "", "Filter by target language code")
	glossaryListCmd.Flags().BoolVar(&glossaryBuiltin, "builtin", false, "Show the built-in slang corrections instead")

	glossaryAddCmd.Flags().StringVarP(&glossaryAddSource, "from", "f", "en", "Source language code")
	glossaryAddCmd.Flags().StringVarP(&glossaryAddTarget, "to", "t", "ru", "Target language code")

	glossaryCmd.AddCommand(glossaryListCmd)
	glossaryCmd.AddCommand(glossaryAddCmd)
	glossaryCmd.AddCommand(glossaryDeleteCmd)
}
