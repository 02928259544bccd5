package allocation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	"github.com/vsinha/orderdesk/pkg/domain/entities"
)

type allocationTestContext struct {
	allocator *Allocator
}

func (c *allocationTestContext) reset() {
	c.allocator = NewAllocator()
}

func (c *allocationTestContext) aPoolWithProducts(table *godog.Table) error {
	var candidates []entities.ProductCandidate
	for i, row := range table.Rows {
		if i == 0 {
			continue
		}
		id, err := strconv.ParseInt(row.Cells[0].Value, 10, 64)
		if err != nil {
			return err
		}
		price, err := decimal.NewFromString(row.Cells[2].Value)
		if err != nil {
			return err
		}
		stock, err := strconv.ParseInt(row.Cells[3].Value, 10, 64)
		if err != nil {
			return err
		}
		candidates = append(candidates, entities.ProductCandidate{
			ID:    entities.ProductID(id),
			Name:  row.Cells[1].Value,
			Price: price,
			Stock: entities.Quantity(stock),
		})
	}
	return c.allocator.Initialize(candidates)
}

func (c *allocationTestContext) emptyLines(count int) error {
	for range count {
		c.allocator.AddLine()
	}
	return nil
}

func (c *allocationTestContext) lineSelectsProduct(position, productID int) error {
	return c.allocator.SelectProduct(position, entities.ProductID(productID))
}

func (c *allocationTestContext) lineQuantityIs(position int, quantity string) error {
	return c.allocator.SetQuantity(position, quantity)
}

func (c *allocationTestContext) lineIsRemoved(position int) error {
	return c.allocator.RemoveLine(position)
}

func (c *allocationTestContext) lineMayChooseProducts(position int, expected string) error {
	seq, err := c.allocator.RemainingChoices(position)
	if err != nil {
		return err
	}
	var got []string
	for candidate := range seq {
		got = append(got, strconv.FormatInt(int64(candidate.ID), 10))
	}
	if strings.Join(got, ",") != expected {
		return fmt.Errorf("expected choices %q, got %q", expected, strings.Join(got, ","))
	}
	return nil
}

func (c *allocationTestContext) lineValidity(position int, want bool) error {
	view, err := c.allocator.LineView(position)
	if err != nil {
		return err
	}
	if view.Valid() != want {
		return fmt.Errorf("expected line %d valid=%t, issues %v", position, want, view.Issues)
	}
	return nil
}

func (c *allocationTestContext) lineIsValid(position int) error {
	return c.lineValidity(position, true)
}

func (c *allocationTestContext) lineIsInvalid(position int) error {
	return c.lineValidity(position, false)
}

func (c *allocationTestContext) lineTotalIs(position int, expected string) error {
	view, err := c.allocator.LineView(position)
	if err != nil {
		return err
	}
	if view.Total.String() != expected {
		return fmt.Errorf("expected total %q, got %q", expected, view.Total.String())
	}
	return nil
}

func (c *allocationTestContext) buildingThePayloadFailsForLine(position int) error {
	payload, err := c.allocator.BuildPayload()
	if payload != nil {
		return errors.New("expected no payload")
	}
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		return fmt.Errorf("expected validation error, got %v", err)
	}
	positions := validationErr.Positions()
	if len(positions) != 1 || positions[0] != position {
		return fmt.Errorf("expected failure for line %d, got %v", position, positions)
	}
	return nil
}

func (c *allocationTestContext) thePayloadIs(expected string) error {
	payload, err := c.allocator.BuildPayload()
	if err != nil {
		return err
	}
	var got []string
	for _, line := range payload.OrderLines {
		got = append(got, fmt.Sprintf("%dx%d", line.ProductID, line.Quantity))
	}
	if strings.Join(got, ",") != expected {
		return fmt.Errorf("expected payload %q, got %q", expected, strings.Join(got, ","))
	}
	return nil
}

func (c *allocationTestContext) theOrderTotalIs(expected string) error {
	if got := c.allocator.OrderTotal().String(); got != expected {
		return fmt.Errorf("expected order total %q, got %q", expected, got)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &allocationTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	ctx.Step(`^a pool with products:$`, tc.aPoolWithProducts)
	ctx.Step(`^(\d+) empty lines$`, tc.emptyLines)
	ctx.Step(`^line (\d+) selects product (\d+)$`, tc.lineSelectsProduct)
	ctx.Step(`^line (\d+) quantity is "([^"]*)"$`, tc.lineQuantityIs)
	ctx.Step(`^line (\d+) is removed$`, tc.lineIsRemoved)
	ctx.Step(`^line (\d+) may choose products "([^"]*)"$`, tc.lineMayChooseProducts)
	ctx.Step(`^line (\d+) is valid$`, tc.lineIsValid)
	ctx.Step(`^line (\d+) is invalid$`, tc.lineIsInvalid)
	ctx.Step(`^line (\d+) total is "([^"]*)"$`, tc.lineTotalIs)
	ctx.Step(`^building the payload fails for line (\d+)$`, tc.buildingThePayloadFailsForLine)
	ctx.Step(`^the payload is "([^"]*)"$`, tc.thePayloadIs)
	ctx.Step(`^the order total is "([^"]*)"$`, tc.theOrderTotalIs)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
