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
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/valpere/perevod/internal/detector"
	"github.com/valpere/perevod/internal/server"
	"github.com/valpere/perevod/internal/translator"
	"github.com/valpere/perevod/internal/validator"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the translation API over HTTP",
	Long: `Start an HTTP server exposing:

  POST /api/translate   {"text": "...", "source": "en|ru|auto", "target": "en|ru"}
  GET  /healthz

Network errors use the browser wording, since clients reach the API from a web page.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Log.Level != "debug" {
			gin.SetMode(gin.ReleaseMode)
		}

		db, err := openStore(cfg.DB)
		if err != nil {
			return err
		}
		if db != nil {
			defer db.Close()
		}

		det := detector.New()
		p := newPipeline(newClient(translator.HostBrowser), db)
		srv := server.New(p,
			server.WithDetector(det),
			server.WithValidator(validator.New(det)),
			server.WithLogger(logger))

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return srv.Run(ctx, cfg.Server.Addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", v.GetString("server.addr"), "Listen address")
	_ = v.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}
