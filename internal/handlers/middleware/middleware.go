package middleware

import (
	"kardetailing/config"
	authController "kardetailing/internal/controllers/auth"

	logger "github.com/Bparsons0904/goLogger"
)

type Middleware struct {
	Config         config.Config
	authController authController.AuthControllerInterface
	log            logger.Logger
}

func New(
	config config.Config,
	authController authController.AuthControllerInterface,
) Middleware {
	return Middleware{
		Config:         config,
		authController: authController,
		log:            logger.New("middleware"),
	}
}
