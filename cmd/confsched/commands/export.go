package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"confsched/internal/export"
	"confsched/internal/schedule"
)

var (
	exportDay string
	exportOut string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write your picked sessions as an iCalendar file",
	Long: `Export the my-schedule projection to an .ics file, one VEVENT per
picked session with the room name as location. Without --day every picked
session across the whole conference is exported.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd.Context())
		if err != nil {
			return err
		}

		selected, err := e.picks.Load()
		if err != nil {
			return fmt.Errorf("load selection: %w", err)
		}

		rooms, sessions := e.norm.Rooms, e.norm.Sessions
		if exportDay != "" {
			day, err := e.resolveDay(exportDay)
			if err != nil {
				return err
			}
			rooms, sessions = schedule.ForDay(rooms, sessions, day)
		}

		mine, myRooms := schedule.Project(sessions, rooms, selected)
		if len(mine) == 0 {
			return fmt.Errorf("no picked sessions to export")
		}

		body, err := export.ICS(mine, myRooms, e.cfg.UIDSuffix)
		if err != nil {
			return err
		}

		if err := os.WriteFile(exportOut, body, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", exportOut, err)
		}

		fmt.Printf("Wrote %d sessions to %s\n", len(mine), exportOut)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportDay, "day", "", "limit export to one day (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&exportOut, "out", "my-schedule.ics", "output file path")
	rootCmd.AddCommand(exportCmd)
}
