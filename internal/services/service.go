package services

import (
	"rutinas/internal/database"
)

type Service struct {
	Transaction *TransactionService
}

func New(db database.DB) Service {
	return Service{
		Transaction: NewTransactionService(db),
	}
}
