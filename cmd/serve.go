package cmd

import (
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/dsamentor/internal/analysis"
	"github.com/abhisek/dsamentor/internal/scoremodel"
	"github.com/abhisek/dsamentor/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the scoring and analysis HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := current.cfg.Server
		if addr := mustString(cmd, "addr"); addr != "" {
			cfg.Addr = addr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var opts []scoremodel.Option
		if mustBool(cmd, "variance") {
			opts = append(opts, scoremodel.WithRand(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))))
		}
		h := server.NewHandler(scoremodel.New(opts...), analysis.NewPipeline(current.logger))
		srv := server.New(server.Config{Addr: cfg.Addr, Production: cfg.Production}, h, current.logger)
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default from config, :7860)")
	serveCmd.Flags().Bool("variance", false, "Add random variance to timeline predictions")
}
