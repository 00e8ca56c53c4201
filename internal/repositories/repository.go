package repositories

type Repository struct {
	Rutina    RutinaRepository
	Ejercicio EjercicioRepository
}

func New() Repository {
	return Repository{
		Rutina:    NewRutinaRepository(),
		Ejercicio: NewEjercicioRepository(),
	}
}
