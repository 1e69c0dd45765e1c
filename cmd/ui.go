package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"task-manager/client"
	"task-manager/ui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the terminal task client",
	Args:  cobra.NoArgs,
	RunE:  runUI,
}

func init() {
	uiCmd.Flags().String("api-url", "", "API base URL, e.g. http://localhost:5000/api")
	_ = viper.BindPFlag("client.api_url", uiCmd.Flags().Lookup("api-url"))

	rootCmd.AddCommand(uiCmd)
}

func runUI(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.ValidateClient(); err != nil {
		return err
	}

	model := ui.New(client.New(cfg.Client.APIURL, nil))
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
