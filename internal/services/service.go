package services

import (
	"kardetailing/config"
)

type Service struct {
	Password *PasswordService
	Session  *SessionService
}

func New(config config.Config) Service {
	return Service{
		Password: NewPasswordService(config.BcryptCost),
		Session:  NewSessionService(config),
	}
}
