package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"confsched/internal/schedule"
)

var daysCmd = &cobra.Command{
	Use:   "days",
	Short: "List the conference days",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd.Context())
		if err != nil {
			return err
		}

		if len(e.cfg.Days) > 0 {
			for _, d := range e.cfg.Days {
				if d.Label != "" {
					fmt.Printf("%s  %s\n", d.Date, d.Label)
				} else {
					fmt.Println(d.Date)
				}
			}
			return nil
		}

		for _, d := range schedule.Days(e.sched.Sessions, e.loc) {
			fmt.Printf("%s  %s\n", d.Format(dayLayout), d.Format("Monday, January 2, 2006"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(daysCmd)
}
