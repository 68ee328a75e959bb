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
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/valpere/perevod/internal/batch"
)

var (
	batchOutput string
	batchFrom   string
	batchTo     string
	batchSwap   bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Translate every line of a file",
	Long: `Translate each non-empty line of a file as an independent request.

Lines are sent concurrently (--workers, default 4). The output keeps one
line per input line; blank lines stay blank and failed lines are written as
"[error] <message>".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lines, err := readLines(args[0])
		if err != nil {
			return err
		}

		pair, err := resolvePair(nil, batchFrom, batchTo, batchSwap, strings.Join(lines, "\n"))
		if err != nil {
			return err
		}

		db, err := openStore(cfg.DB)
		if err != nil {
			return err
		}
		if db != nil {
			defer db.Close()
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		p := newPipeline(newClient(cfg.HostMode()), db)
		res := batch.New(p, cfg.Batch.Workers, logger).Run(ctx, lines, pair)

		out := make([]string, len(res.Items))
		for i, it := range res.Items {
			switch {
			case it.Skipped:
			case it.Outcome.OK():
				out[i] = it.Outcome.Translation
			default:
				out[i] = "[error] " + it.Outcome.Message()
			}
		}
		if err := writeOutput(batchOutput, strings.Join(out, "\n")); err != nil {
			return err
		}

		fmt.Fprintf(os.Stderr, "Translated %d lines (%s), %d failed, %d blank\n",
			res.Succeeded, pair, res.Failed, res.Skipped)
		if res.Failed > 0 {
			return fmt.Errorf("%d of %d lines failed", res.Failed, res.Succeeded+res.Failed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVarP(&batchOutput, "output", "o", "", "Output file (default stdout)")
	batchCmd.Flags().StringVarP(&batchFrom, "from", "f", "en", "Source language: en, ru or auto")
	batchCmd.Flags().StringVarP(&batchTo, "to", "t", "", "Target language (default: the other one)")
	batchCmd.Flags().BoolVar(&batchSwap, "swap", false, "Swap source and target")
	batchCmd.Flags().Int("workers", v.GetInt("batch.workers"), "Concurrent requests")
	_ = v.BindPFlag("batch.workers", batchCmd.Flags().Lookup("workers"))
}
