package main

import (
	"github.com/spf13/cobra"

	"github.com/HendryAvila/resonanz/internal/server"
)

var version = "dev"

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print resonanz version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(version)
		},
	}
}

func init() {
	server.Version = version
}
