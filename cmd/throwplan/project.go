package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/philipparndt/throwplan/internal/app"
	"github.com/philipparndt/throwplan/pkg/store"
	"github.com/spf13/cobra"
)

var (
	projectDB     string
	projectID     string
	projectOutput string
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Save, load and list projects in the project database",
}

var projectSaveCmd = &cobra.Command{
	Use:   "save [name]",
	Short: "Store a project under a name",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectSave,
}

var projectLoadCmd = &cobra.Command{
	Use:   "load [id or name]",
	Short: "Write a stored project to a settings file",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectLoad,
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored projects",
	Args:  cobra.NoArgs,
	RunE:  runProjectList,
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a stored project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectDelete,
}

func init() {
	rootCmd.AddCommand(projectCmd)
	projectCmd.PersistentFlags().StringVar(&projectDB, "db", "", "project database (default from config)")

	projectCmd.AddCommand(projectSaveCmd, projectLoadCmd, projectListCmd, projectDeleteCmd)

	addSessionFlags(projectSaveCmd)
	projectSaveCmd.Flags().StringVar(&projectID, "id", "", "replace the project with this id")
	projectLoadCmd.Flags().StringVarP(&projectOutput, "output", "o", "", "settings file to write (default stdout)")
}

func openStore() (*store.Store, error) {
	path := projectDB
	if path == "" {
		path = cfg.Store.Path
	}
	return store.Open(path)
}

func runProjectSave(cmd *cobra.Command, args []string) error {
	p, err := openSession(cmd.Context(), settingsFile, drawingFile, drawingPage)
	if err != nil {
		return err
	}
	var body bytes.Buffer
	if err := app.EncodeSettings(&body, p.Settings()); err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	id, err := st.Save(cmd.Context(), projectID, args[0], body.Bytes())
	if err != nil {
		return err
	}
	fmt.Printf("Saved %s as %s\n", args[0], id)
	return nil
}

func runProjectLoad(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	project, err := st.Load(ctx, args[0])
	if errors.Is(err, store.ErrNotFound) {
		project, err = st.FindByName(ctx, args[0])
	}
	if err != nil {
		return err
	}

	// validate before handing the body out
	settings, err := app.DecodeSettings(bytes.NewReader(project.Body))
	if err != nil {
		return fmt.Errorf("project %s: %w", project.Name, err)
	}
	if err := newPlanner().ApplySettings(settings); err != nil {
		return fmt.Errorf("project %s: %w", project.Name, err)
	}

	if projectOutput == "" {
		_, err := os.Stdout.Write(project.Body)
		return err
	}
	if err := os.WriteFile(projectOutput, project.Body, 0o644); err != nil {
		return err
	}
	fmt.Printf("Wrote %s to %s\n", project.Name, projectOutput)
	return nil
}

func runProjectList(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	list, err := st.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("No projects")
		return nil
	}
	for _, p := range list {
		fmt.Printf("%s  %-24s  %s\n", p.ID, p.Name, p.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func runProjectDelete(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted %s\n", args[0])
	return nil
}
