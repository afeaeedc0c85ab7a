package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"task-management.com/task-management/internal/constants"
	model "task-management.com/task-management/internal/models"
	"task-management.com/task-management/internal/rules"
)

const titleMaxWidth = 40

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	urgentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	normalStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	lowStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print every task, most urgent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}

		taskService, closeCache, err := newTaskService(cfg, logger)
		if err != nil {
			return err
		}
		defer closeCache()

		tasks, err := taskService.ListTasks(cmd.Context())
		if err != nil {
			return err
		}

		if len(tasks) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No tasks found.")
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), formatTaskTable(tasks, time.Now().UTC()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func formatTaskTable(tasks []model.Task, now time.Time) string {
	rows := make([][]string, 0, len(tasks)+1)
	rows = append(rows, []string{
		headerStyle.Render("ID"),
		headerStyle.Render("URGENCY"),
		headerStyle.Render("PRIORITY"),
		headerStyle.Render("STATUS"),
		headerStyle.Render("DUE"),
		headerStyle.Render("TITLE"),
	})

	for _, t := range tasks {
		due := t.DueDate.Format(time.DateTime)
		if rules.IsOverdue(t.DueDate, now) && !t.Status.IsTerminal() {
			due = overdueStyle.Render(due)
		}
		urgency := rules.DeriveUrgency(t.DueDate, now)
		rows = append(rows, []string{
			fmt.Sprintf("%d", t.ID),
			priorityStyle(urgency).Render(string(urgency)),
			priorityStyle(t.Priority).Render(string(t.Priority)),
			string(t.Status),
			due,
			truncate(t.Title, titleMaxWidth),
		})
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	var builder strings.Builder
	for _, row := range rows {
		for i, cell := range row {
			builder.WriteString(cell)
			if i == len(row)-1 {
				builder.WriteByte('\n')
				continue
			}
			builder.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(cell)+2))
		}
	}
	return builder.String()
}

func priorityStyle(p constants.TaskPriority) lipgloss.Style {
	switch p {
	case constants.PriorityUrgent:
		return urgentStyle
	case constants.PriorityNormal:
		return normalStyle
	default:
		return lowStyle
	}
}

func truncate(value string, width int) string {
	value = strings.Join(strings.Fields(value), " ")
	runes := []rune(value)
	if len(runes) <= width {
		return value
	}
	return string(runes[:width-3]) + "..."
}
