package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show registry version",
		RunE:  versionHandler,
	}
}

func versionHandler(cmd *cobra.Command, args []string) error {
	fmt.Println("registry v0.1.0")
	return nil
}
