package main

import (
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/composer-update-mr/internal/infrastructure/controllers"
)

func buildRootCommand(updateController *controllers.UpdateController) *cobra.Command {
	bind := updateController.GetBind()
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:           bind.Use,
		Short:         bind.Short,
		Long:          bind.Long,
		Args:          updateController.ValidateArgs,
		RunE:          updateController.Execute,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	updateController.AddFlags(cmd)
	return cmd
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	// Inject controllers via DIG
	updateController := injectUpdateController()
	cobraRoot := buildRootCommand(updateController)

	if err := cobraRoot.Execute(); err != nil {
		logger.Fatalf("Error executing 'composer-update-mr': %s", err)
	}
}
