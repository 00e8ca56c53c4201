package controllers

import (
	"rutinas/internal/repositories"
	"rutinas/internal/services"

	ejercicioController "rutinas/internal/controllers/ejercicios"
	rutinaController "rutinas/internal/controllers/rutinas"
)

type Controllers struct {
	Rutina    rutinaController.RutinaControllerInterface
	Ejercicio ejercicioController.EjercicioControllerInterface
}

func New(services services.Service, repos repositories.Repository) Controllers {
	return Controllers{
		Rutina:    rutinaController.New(repos, services),
		Ejercicio: ejercicioController.New(repos, services),
	}
}
