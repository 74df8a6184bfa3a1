package main

import (
	"os"

	"github.com/spf13/cobra"

	"servicedesk/internal/interfaces/cli/policy"
	"servicedesk/internal/interfaces/cli/server"
)

//	@title						Service Desk API
//	@version					1.0
//	@description				Customers submit service requests with attachments; support staff work them to resolution.
//	@BasePath					/
//	@securityDefinitions.apikey	Bearer
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the access token.

func main() {
	rootCmd := &cobra.Command{
		Use:   "servicedesk",
		Short: "Service desk API server",
		Long:  `servicedesk serves the service request API and provides administrative commands.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		policy.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
