package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vsinha/orderdesk/pkg/application/services"
	"github.com/vsinha/orderdesk/pkg/application/services/allocation"
	"github.com/vsinha/orderdesk/pkg/domain/entities"
	"github.com/vsinha/orderdesk/pkg/infrastructure/events"
	"github.com/vsinha/orderdesk/pkg/infrastructure/repositories/memory"
)

// approve answers yes to every confirmation
type approve struct{}

func (approve) Confirm(_ context.Context, question services.Confirmation) (bool, error) {
	fmt.Printf("❓ %s -> %s\n", question.Message, question.Action)
	return true, nil
}

type printNotifier struct{}

func (printNotifier) Success(message string) { fmt.Printf("✅ %s\n", message) }
func (printNotifier) Error(message string)   { fmt.Printf("❌ %s\n", message) }

func main() {
	ctx := context.Background()

	catalog := memory.NewCatalogRepository(3)
	setupArmory(catalog)
	orders := memory.NewOrderRepository(catalog)
	journal := events.NewInMemoryEventStore(nil)

	composer := services.NewOrderComposer(catalog, orders, approve{}, printNotifier{},
		services.ComposerConfig{Journal: journal, StreamID: "armory-order"})
	if err := composer.Initialize(ctx); err != nil {
		fmt.Printf("❌ Initialize failed: %v\n", err)
		return
	}

	fmt.Println("🛡️  Composing an armory order...")
	first, _ := composer.AddLine()
	second, _ := composer.AddLine()
	must(composer.SelectProduct(first, 1))
	must(composer.SetQuantity(first, "2"))

	// The shield is taken, so the second line sees only what is left.
	choices, _ := composer.RemainingChoices(second)
	for _, product := range choices {
		fmt.Printf("  line %d may pick %d %s\n", second, product.ID, product.Name)
	}

	if err := composer.SelectProduct(second, 1); errors.Is(err, allocation.ErrAlreadyOwned) {
		fmt.Printf("  expected conflict: %v\n", err)
	}

	// Swap line 0 to the hammer; the shield becomes free for line 1.
	must(composer.SelectProduct(first, 2))
	must(composer.SelectProduct(second, 1))
	must(composer.SetQuantity(second, "1"))
	fmt.Printf("Order total: %s\n", composer.OrderTotal())

	confirmation, err := composer.Submit(ctx)
	if err != nil {
		fmt.Printf("❌ Submit failed: %v\n", err)
		return
	}
	fmt.Printf("🧾 Order %s total %s\n", confirmation.ID, confirmation.Total.StringFixed(2))

	journal.Wait()
	history, _ := journal.ReadEvents("armory-order", 1)
	fmt.Printf("📜 %d journal events\n", len(history))
}

func setupArmory(catalog *memory.CatalogRepository) {
	products := []struct {
		id    entities.ProductID
		name  string
		kind  string
		price string
		stock entities.Quantity
	}{
		{1, "Shield", "Armor", "10.00", 5},
		{2, "Hammer", "Weapon", "20.00", 3},
		{3, "Belt", "Gear", "7.50", 10},
	}
	for _, p := range products {
		product, err := entities.NewProductCandidate(p.id, p.name, p.kind, decimal.RequireFromString(p.price), p.stock)
		must(err)
		must(catalog.AddProduct(*product))
	}
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
