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

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/valpere/perevod/internal/detector"
	"github.com/valpere/perevod/internal/pipeline"
	"github.com/valpere/perevod/internal/validator"
)

var (
	inputFile  string
	outputFile string
	sourceLang string
	targetLang string
	swapPair   bool
	noCheck    bool
)

var translateCmd = &cobra.Command{
	Use:   "translate [text...]",
	Short: "Translate text between English and Russian",
	Long: `Translate text given as arguments, from --input, or from stdin.

English → Russian uses the gendered prompt and applies the slang corrections;
Russian → English produces neutral, natural English.

Examples:
  perevod translate "I'm so tired, let's get a snack"
  perevod translate --from ru "Я так устала"
  echo "Hello" | perevod translate --swap --from ru
  perevod translate -i note.txt -o note.ru.txt --from auto`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if inputFile != "" && inputFile == outputFile {
			return fmt.Errorf("input file and output file cannot be the same")
		}

		text, err := readInput(inputFile, args, cmd.InOrStdin())
		if err != nil {
			return err
		}

		// One detector serves both auto-detection and the output check.
		var det *detector.Detector
		if sourceLang == "auto" || !noCheck {
			det = newDetector()
		}

		pair, err := resolvePair(det, sourceLang, targetLang, swapPair, text)
		if err != nil {
			return err
		}

		req, err := pipeline.NewRequest(text, pair)
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
		out, err := p.Translate(ctx, req)
		if err != nil {
			return err
		}

		if !noCheck {
			if verr := validator.New(det).Check(out, pair.Target); verr != nil {
				logger.Warn("translation may be in the wrong language", zap.Error(verr))
			}
		}

		if err := writeOutput(outputFile, out); err != nil {
			return err
		}
		if outputFile != "" {
			fmt.Fprintf(os.Stderr, "Translated %s into %s\n", pair, outputFile)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input file to translate")
	translateCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default stdout)")
	translateCmd.Flags().StringVarP(&sourceLang, "from", "f", "en", "Source language: en, ru or auto")
	translateCmd.Flags().StringVarP(&targetLang, "to", "t", "", "Target language (default: the other one)")
	translateCmd.Flags().BoolVar(&swapPair, "swap", false, "Swap source and target")
	translateCmd.Flags().BoolVar(&noCheck, "no-check", false, "Skip the output language check")
}
