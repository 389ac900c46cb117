package container

import (
	"time"

	"github.com/Tinclon/transaction-tracker/internal/models"

	"github.com/shopspring/decimal"
)

func txFixture(description string) models.Transaction {
	return models.Transaction{
		Date:        time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		Description: description,
		Amount:      decimal.RequireFromString("-45.67"),
	}
}
