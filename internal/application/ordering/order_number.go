package ordering

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/gestock/backend/internal/domain/ordering"
	"github.com/gestock/backend/internal/domain/shared"
)

const orderNumberAttempts = 5

// generateOrderNumber builds a CMD-<timestamp>-<suffix> number and verifies
// it against the store, retrying on collision. The random suffix makes a
// collision within the same second unlikely but not impossible, so
// uniqueness is always confirmed before use.
func generateOrderNumber(ctx context.Context, repo ordering.OrderRepository, now func() time.Time) (string, error) {
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		number := fmt.Sprintf("CMD-%s-%03d", now().Format("20060102150405"), 100+rand.Intn(900))

		exists, err := repo.ExistsByNumber(ctx, number)
		if err != nil {
			return "", err
		}
		if !exists {
			return number, nil
		}
	}
	return "", shared.NewDomainError("ORDER_NUMBER_EXHAUSTED", "Could not generate a unique order number")
}
