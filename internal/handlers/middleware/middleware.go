package middleware

import (
	"rutinas/pkg/logger"
)

type Middleware struct {
	log logger.Logger
}

func New() Middleware {
	return Middleware{
		log: logger.New("middleware"),
	}
}
