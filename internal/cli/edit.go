package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	apperrors "github.com/hydrotools/penstock/pkg/errors"
	netio "github.com/hydrotools/penstock/pkg/io"
	"github.com/hydrotools/penstock/pkg/network"
)

func (c *CLI) editCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "edit [file]",
		Short: "Edit a network topology interactively",
		Long:  `Opens an interactive terminal editor for a network topology. When a file argument is given, the network is loaded from it; otherwise the editor starts empty. Saving writes the network back as JSON.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := network.NewStore()

			var path string
			if len(args) == 1 {
				path = args[0]
				file, err := netio.ImportJSON(path)
				if err != nil {
					return fmt.Errorf("loading network: %w", err)
				}
				store.Load(file.Snapshot(), file.ProjectName)
				c.Logger.Info("loaded network", "path", path,
					"nodes", store.NodeCount(), "edges", store.EdgeCount())
			}
			if output != "" {
				path = output
			}
			if path == "" {
				path = "network.json"
			}
			if err := apperrors.ValidatePath(path); err != nil {
				return err
			}

			model := newEditorModel(store, path)
			program := tea.NewProgram(model, tea.WithAltScreen())
			final, err := program.Run()
			if err != nil {
				return fmt.Errorf("running editor: %w", err)
			}
			if m, ok := final.(editorModel); ok && m.saveErr != nil {
				return m.saveErr
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "file to save the network to")

	return cmd
}
