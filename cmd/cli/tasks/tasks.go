package tasks

import (
	"errors"
	"fmt"
	"io"

	"github.com/crucial707/task-api/cmd/cli/config"
	"github.com/crucial707/task-api/cmd/cli/output"
	"github.com/crucial707/task-api/internal/dto"
	"github.com/crucial707/task-api/internal/models"
	"github.com/spf13/cobra"
)

// ==========================
// Init Tasks
// ==========================
func InitTasks(rootCmd *cobra.Command) {
	tasksCmd := &cobra.Command{
		Use:   "tasks",
		Short: "Manage your tasks",
	}

	tasksCmd.AddCommand(
		listTasksCmd(),
		getTaskCmd(),
		createTaskCmd(),
		updateTaskCmd(),
		deleteTaskCmd(),
		bulkDeleteCmd(),
	)

	rootCmd.AddCommand(tasksCmd)
}

// ==========================
// LIST
// ==========================
func listTasksCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your tasks, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.AuthedClient()
			if err != nil {
				return err
			}
			tasks, err := c.ListTasks(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return output.RenderJSON(cmd.OutOrStdout(), tasks)
			}
			printTasks(cmd.OutOrStdout(), tasks)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

// ==========================
// GET
// ==========================
func getTaskCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.AuthedClient()
			if err != nil {
				return err
			}
			task, err := c.GetTask(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return output.RenderJSON(cmd.OutOrStdout(), task)
			}
			printTasks(cmd.OutOrStdout(), []models.Task{*task})
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

// ==========================
// CREATE
// ==========================
func createTaskCmd() *cobra.Command {
	var req dto.CreateTaskRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.Title == "" || req.DueDate == "" {
				return errors.New("--title and --due are required")
			}
			c, err := config.AuthedClient()
			if err != nil {
				return err
			}
			task, err := c.CreateTask(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created task %s\n", task.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Title, "title", "", "Task title")
	cmd.Flags().StringVar(&req.Description, "description", "", "Task description")
	cmd.Flags().StringVar(&req.Status, "status", "", "pending, in-progress or done (default pending)")
	cmd.Flags().StringVar(&req.Priority, "priority", "", "low, medium or high (default medium)")
	cmd.Flags().StringVar(&req.DueDate, "due", "", "Due date, YYYY-MM-DD or RFC 3339")
	return cmd
}

// ==========================
// UPDATE
// ==========================
func updateTaskCmd() *cobra.Command {
	var title, description, status, priority, due string

	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Change the given fields of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req dto.UpdateTaskRequest
			set := func(flag string, v *string) *string {
				if cmd.Flags().Changed(flag) {
					return v
				}
				return nil
			}
			req.Title = set("title", &title)
			req.Description = set("description", &description)
			req.Status = set("status", &status)
			req.Priority = set("priority", &priority)
			req.DueDate = set("due", &due)

			c, err := config.AuthedClient()
			if err != nil {
				return err
			}
			task, err := c.UpdateTask(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}
			printTasks(cmd.OutOrStdout(), []models.Task{*task})
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&description, "description", "", "Task description")
	cmd.Flags().StringVar(&status, "status", "", "pending, in-progress or done")
	cmd.Flags().StringVar(&priority, "priority", "", "low, medium or high")
	cmd.Flags().StringVar(&due, "due", "", "Due date, YYYY-MM-DD or RFC 3339")
	return cmd
}

// ==========================
// DELETE
// ==========================
func deleteTaskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.AuthedClient()
			if err != nil {
				return err
			}
			if err := c.DeleteTask(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Task deleted")
			return nil
		},
	}
}

func bulkDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bulk-delete [id...]",
		Short: "Delete several tasks; ids you do not own are skipped",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.AuthedClient()
			if err != nil {
				return err
			}
			n, err := c.BulkDeleteTasks(cmd.Context(), args)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d task(s) deleted\n", n)
			return nil
		},
	}
}

func printTasks(w io.Writer, tasks []models.Task) {
	rows := make([][]interface{}, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []interface{}{t.ID, t.Title, t.Status, t.Priority, t.DueDate.Format("2006-01-02")})
	}
	output.RenderTable(w, []string{"ID", "Title", "Status", "Priority", "Due"}, rows)
}
