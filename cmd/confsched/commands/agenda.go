package commands

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"confsched/internal/model"
	"confsched/internal/schedule"
)

var (
	agendaDay string
	agendaMy  bool
)

const agendaCellWidth = 24

var agendaCmd = &cobra.Command{
	Use:   "agenda",
	Short: "Print the time grid for one conference day",
	Long: `Render a day's schedule as a terminal grid, one column per room.
Your picked sessions are shown green; picks that overlap another pick are
shown red. With --my only your picked sessions and their rooms appear, and
conflict highlighting is off.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd.Context())
		if err != nil {
			return err
		}

		day, err := e.resolveDay(agendaDay)
		if err != nil {
			return err
		}

		selected, err := e.picks.Load()
		if err != nil {
			return fmt.Errorf("load selection: %w", err)
		}

		rooms, sessions := schedule.ForDay(e.norm.Rooms, e.norm.Sessions, day)

		// The my view hides everything unpicked and never runs the
		// conflict detector; it exists for decluttered reading.
		conflicts := map[string]bool{}
		if agendaMy {
			sessions, rooms = schedule.Project(sessions, rooms, selected)
		} else {
			conflicts = schedule.Conflicts(sessions, selected)
		}

		if len(sessions) == 0 {
			fmt.Printf("No sessions on %s.\n", day.Format(dayLayout))
			return nil
		}

		printAgenda(e.grid, day, rooms, sessions, selected, conflicts)
		return nil
	},
}

// printAgenda walks the block grid row by row. Per cell it either starts an
// event (title printed), continues one (vertical bar), or is empty.
func printAgenda(grid schedule.Grid, day time.Time, rooms []model.Room, sessions []model.Session, selectedIDs []string, conflicts map[string]bool) {
	placements := schedule.BuildPlacements(grid, sessions, rooms)

	// Cell index: [block][column] -> placement covering it.
	cells := make([][]*schedule.Placement, grid.BlockCount())
	for i := range cells {
		cells[i] = make([]*schedule.Placement, len(rooms))
	}
	for i := range placements {
		p := &placements[i]
		for b := p.StartBlock; b < p.EndBlock; b++ {
			cells[b][p.RoomColumn] = p
		}
	}

	selected := make(map[string]bool, len(selectedIDs))
	for _, id := range selectedIDs {
		selected[id] = true
	}

	green := color.New(color.FgGreen)
	red := color.New(color.FgRed, color.Bold)
	cyan := color.New(color.FgCyan)

	fmt.Println(day.Format("Monday, January 2, 2006"))

	// Header row.
	fmt.Printf("%8s", "")
	for _, r := range rooms {
		fmt.Printf(" | %-*s", agendaCellWidth, truncate(r.Name, agendaCellWidth))
	}
	fmt.Println()

	nowPos, nowOK := schedule.LivePosition(grid, day, time.Now())

	for b := 0; b < grid.BlockCount(); b++ {
		label := ""
		if _, minute := grid.BlockStart(b); minute%30 == 0 {
			label = grid.BlockLabel(b)
		}
		if nowOK && nowPos.Block == b {
			cyan.Printf("%8s", "now ▶")
		} else {
			fmt.Printf("%8s", label)
		}

		for col := range rooms {
			p := cells[b][col]
			fmt.Print(" | ")
			switch {
			case p == nil:
				fmt.Printf("%-*s", agendaCellWidth, "")
			case p.StartBlock == b:
				text := truncate(p.Session.Title, agendaCellWidth)
				switch {
				case conflicts[p.Session.ID]:
					red.Printf("%-*s", agendaCellWidth, text)
				case selected[p.Session.ID]:
					green.Printf("%-*s", agendaCellWidth, text)
				default:
					fmt.Printf("%-*s", agendaCellWidth, text)
				}
			default:
				fmt.Printf("%-*s", agendaCellWidth, "│")
			}
		}
		fmt.Println()
	}

	if len(conflicts) > 0 {
		red.Printf("\n%d of your picks overlap another pick.\n", len(conflicts))
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

func init() {
	agendaCmd.Flags().StringVar(&agendaDay, "day", "", "day to render (YYYY-MM-DD, default: first conference day)")
	agendaCmd.Flags().BoolVar(&agendaMy, "my", false, "render only your picked sessions")
	rootCmd.AddCommand(agendaCmd)
}
