package main

import (
	"github.com/rios0rios0/composer-update-mr/internal"
	"github.com/rios0rios0/composer-update-mr/internal/infrastructure/controllers"
	"go.uber.org/dig"
)

func injectUpdateController() *controllers.UpdateController {
	container := dig.New()

	if err := internal.RegisterProviders(container); err != nil {
		panic(err)
	}

	var updateController *controllers.UpdateController
	if err := container.Invoke(func(uc *controllers.UpdateController) {
		updateController = uc
	}); err != nil {
		panic(err)
	}

	return updateController
}
