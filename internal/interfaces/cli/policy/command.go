// Package policy provides the command that loads the role policy file into
// the casbin_rule table.
package policy

import (
	"fmt"

	"github.com/spf13/cobra"

	"servicedesk/internal/infrastructure/config"
	"servicedesk/internal/infrastructure/database"
	"servicedesk/internal/infrastructure/permission"
	"servicedesk/internal/interfaces/cli/server"
	"servicedesk/internal/shared/logger"
)

var (
	env        string
	policyPath string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed-policies",
		Short: "Load role permissions from the policy file",
		Long: `Replace the stored role policy with the rules in the policy file.
Running the command again with the same file leaves the policy unchanged.`,
		RunE: run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&policyPath, "file", "f", "", "Policy file (default: permission.policy_file from config)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(server.MapEnvToGinMode(env))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(cfg.Logger, cfg.Server.Mode); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger().With("command", "seed-policies", "environment", env)

	path := policyPath
	if path == "" {
		path = cfg.Permission.PolicyFile
	}
	file, err := permission.LoadPolicyFile(path)
	if err != nil {
		return err
	}

	db, err := database.Open(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	defer sqlDB.Close()

	enforcer, err := permission.NewEnforcer(db, log)
	if err != nil {
		return err
	}
	if err := permission.Seed(enforcer, file, log); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "loaded %d rules from %s\n", len(file.Rules()), path)
	return nil
}
