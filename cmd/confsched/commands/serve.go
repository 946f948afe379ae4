package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"confsched/internal/config"
	appLog "confsched/internal/log"
	"confsched/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Serve the schedule API: day-scoped schedules, grid placements with
conflict flags, the selection store and iCalendar export. The live "now"
indicator for today is refreshed once per minute while the server runs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if debugLog {
			appLog.SetLevel(appLog.LevelDebug)
		}

		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config %s: %w", configPath, err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		appLog.Info("confsched serving",
			"listen", cfg.Listen,
			"timezone", cfg.Timezone,
			"day_start_hour", cfg.DayStartHour,
			"day_end_hour", cfg.DayEndHour,
			"block_minutes", cfg.BlockMinutes,
			"schedule_url", cfg.ScheduleURL,
		)

		srv := web.NewServer(cfg)
		srv.StartLiveRefresh(ctx)
		return srv.ListenAndServe(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
