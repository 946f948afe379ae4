package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"confsched/internal/schedule"
)

var pickCmd = &cobra.Command{
	Use:   "pick <session-id>",
	Short: "Add a session to your schedule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd.Context())
		if err != nil {
			return err
		}

		id := args[0]
		s, ok := e.sessionByID(id)
		if !ok {
			return fmt.Errorf("no session with id %q in the schedule", id)
		}

		ids, err := e.picks.Add(id)
		if err != nil {
			return err
		}
		fmt.Printf("Picked %q (%d picked total)\n", s.Title, len(ids))

		if conflicts := schedule.Conflicts(e.norm.Sessions, ids); conflicts[id] {
			color.New(color.FgRed).Printf("Warning: this pick overlaps another of your picks.\n")
		}
		return nil
	},
}

var dropCmd = &cobra.Command{
	Use:   "drop <session-id>",
	Short: "Remove a session from your schedule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd.Context())
		if err != nil {
			return err
		}

		ids, err := e.picks.Remove(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Dropped %q (%d picked total)\n", args[0], len(ids))
		return nil
	},
}

var picksCmd = &cobra.Command{
	Use:   "picks",
	Short: "List your picked sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd.Context())
		if err != nil {
			return err
		}

		selected, err := e.picks.Load()
		if err != nil {
			return err
		}
		if len(selected) == 0 {
			fmt.Println("Nothing picked yet. Use `confsched pick <session-id>`.")
			return nil
		}

		// List in schedule order so the output reads chronologically.
		mine, _ := schedule.Project(e.norm.Sessions, e.norm.Rooms, selected)
		conflicts := schedule.Conflicts(e.norm.Sessions, selected)

		red := color.New(color.FgRed, color.Bold)
		for _, s := range mine {
			line := fmt.Sprintf("%s  %s - %s  %s",
				s.ID,
				s.StartsAt.Format("Mon 15:04"),
				s.EndsAt.Format("15:04"),
				s.Title,
			)
			if conflicts[s.ID] {
				red.Println(line + "  (conflict)")
			} else {
				fmt.Println(line)
			}
		}

		// Picks referencing sessions no longer in the schedule still count
		// toward the stored selection; surface them instead of hiding them.
		known := make(map[string]bool, len(mine))
		for _, s := range mine {
			known[s.ID] = true
		}
		for _, id := range selected {
			if !known[id] {
				fmt.Printf("%s  (not in current schedule)\n", id)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pickCmd)
	rootCmd.AddCommand(dropCmd)
	rootCmd.AddCommand(picksCmd)
}
