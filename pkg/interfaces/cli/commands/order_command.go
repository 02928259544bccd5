package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vsinha/orderdesk/pkg/application/services"
	"github.com/vsinha/orderdesk/pkg/application/services/allocation"
	"github.com/vsinha/orderdesk/pkg/domain/entities"
	domainservices "github.com/vsinha/orderdesk/pkg/domain/services"
	"github.com/vsinha/orderdesk/pkg/infrastructure/events"
	"github.com/vsinha/orderdesk/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/orderdesk/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/orderdesk/pkg/interfaces/cli/output"
)

var errQuit = errors.New("quit")

// Config holds configuration for the order console
type Config struct {
	CatalogFile string
	Format      string
	Verbose     bool
	Help        bool
}

// OrderCommand runs the interactive order console
type OrderCommand struct {
	config  Config
	in      *bufio.Scanner
	out     io.Writer
	logger  *zap.Logger
	printer *output.Printer
}

// NewOrderCommand creates an order console reading stdin and writing stdout
func NewOrderCommand(config Config, logger *zap.Logger) *OrderCommand {
	return NewOrderCommandWithIO(config, os.Stdin, os.Stdout, logger)
}

// NewOrderCommandWithIO creates an order console over the given streams
func NewOrderCommandWithIO(config Config, in io.Reader, out io.Writer, logger *zap.Logger) *OrderCommand {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.Format == "" {
		config.Format = "text"
	}
	return &OrderCommand{
		config: config,
		in:     bufio.NewScanner(in),
		out:    out,
		logger: logger,
	}
}

// Execute loads the catalog and serves console commands until quit or end of input
func (c *OrderCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	printer, err := output.NewPrinter(c.out, c.config.Format)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	c.printer = printer

	products, err := c.loadProducts()
	if err != nil {
		return err
	}

	// Validate the catalog before any line can pick from it
	validation := domainservices.NewCatalogValidator().ValidateCatalog(products)
	if !validation.Valid() {
		return fmt.Errorf("catalog validation failed: %s", strings.Join(validation.Errors, "; "))
	}
	if c.config.Verbose && len(validation.OutOfStock) > 0 {
		fmt.Fprintf(c.out, "⚠️  %d product(s) out of stock: %v\n", len(validation.OutOfStock), validation.OutOfStock)
	}

	catalog := memory.NewCatalogRepository(len(products))
	if err := catalog.LoadProducts(products); err != nil {
		return fmt.Errorf("failed to load products into catalog: %w", err)
	}
	orders := memory.NewOrderRepository(catalog)

	journal := events.NewInMemoryEventStore(c.logger)
	defer journal.Wait()
	if c.config.Verbose {
		_ = journal.Subscribe(events.CompositionEventTypes, &events.HandlerFunc{
			Types: events.CompositionEventTypes,
			Fn: func(e events.Event) error {
				c.logger.Debug("journal",
					zap.String("event_type", e.Type()),
					zap.Int("version", e.Version()),
					zap.Any("data", e.Data()))
				return nil
			},
		})
	}

	composer := services.NewOrderComposer(catalog, orders,
		&consolePrompt{in: c.in, out: c.out},
		&consoleNotifier{out: c.out},
		services.ComposerConfig{Journal: journal, Logger: c.logger})
	if err := composer.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize order: %w", err)
	}

	if c.config.Verbose {
		fmt.Fprintf(c.out, "✅ Catalog loaded: %d product(s) available\n", len(composer.Products()))
	}
	fmt.Fprintf(c.out, "Type 'help' for commands.\n")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "> ")
		if !c.in.Scan() {
			fmt.Fprintln(c.out)
			return c.in.Err()
		}
		fields := strings.Fields(c.in.Text())
		if len(fields) == 0 {
			continue
		}

		err := c.dispatch(ctx, composer, fields[0], fields[1:])
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			c.report(err)
		}
	}
}

func (c *OrderCommand) dispatch(ctx context.Context, composer *services.OrderComposer, name string, args []string) error {
	switch name {
	case "add":
		position, err := composer.AddLine()
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "➕ Added line %d\n", position)
		return nil

	case "remove":
		position, err := intArg(args, 0, "position")
		if err != nil {
			return err
		}
		return composer.RemoveLine(position)

	case "select":
		position, err := intArg(args, 0, "position")
		if err != nil {
			return err
		}
		id, err := intArg(args, 1, "product id")
		if err != nil {
			return err
		}
		return composer.SelectProduct(position, entities.ProductID(id))

	case "deselect":
		position, err := intArg(args, 0, "position")
		if err != nil {
			return err
		}
		return composer.DeselectProduct(position)

	case "qty":
		position, err := intArg(args, 0, "position")
		if err != nil {
			return err
		}
		return composer.SetQuantity(position, strings.Join(args[1:], " "))

	case "choices":
		position, err := intArg(args, 0, "position")
		if err != nil {
			return err
		}
		choices, err := composer.RemainingChoices(position)
		if err != nil {
			return err
		}
		return c.printer.Choices(position, choices)

	case "show":
		return c.printer.Lines(composer.Lines(), composer.OrderTotal())

	case "products":
		condition := entities.AvailableProducts
		if len(args) > 0 {
			parsed, err := entities.ParseStockCondition(args[0])
			if err != nil {
				return err
			}
			condition = parsed
		}
		products, err := composer.ListCatalog(condition)
		if err != nil {
			return err
		}
		return c.printer.Products(condition, products)

	case "submit":
		confirmation, err := composer.Submit(ctx)
		if errors.Is(err, services.ErrDeclined) {
			return nil
		}
		if err != nil {
			return err
		}
		return c.printer.Confirmation(confirmation)

	case "cancel":
		discarded, err := composer.Cancel(ctx)
		if err != nil {
			return err
		}
		if discarded {
			fmt.Fprintf(c.out, "🗑️  Order discarded\n")
		}
		return nil

	case "help":
		c.showCommands()
		return nil

	case "quit", "exit":
		return errQuit

	default:
		return fmt.Errorf("unknown command: %s", name)
	}
}

func (c *OrderCommand) report(err error) {
	var validation *allocation.ValidationError
	if errors.As(err, &validation) {
		if printErr := c.printer.Problems(validation); printErr != nil {
			c.logger.Error("failed to print problems", zap.Error(printErr))
		}
		return
	}
	// Sink failures were already shown by the notifier.
	if errors.Is(err, services.ErrSubmissionFailed) {
		return
	}
	fmt.Fprintf(c.out, "❌ %v\n", err)
}

func (c *OrderCommand) loadProducts() ([]*entities.ProductCandidate, error) {
	if c.config.CatalogFile == "" {
		return demoCatalog(), nil
	}
	if c.config.Verbose {
		fmt.Fprintf(c.out, "📂 Loading catalog from %s...\n", c.config.CatalogFile)
	}
	products, err := csv.NewLoader().LoadProducts(c.config.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("error loading catalog: %w", err)
	}
	return products, nil
}

func intArg(args []string, index int, name string) (int, error) {
	if index >= len(args) {
		return 0, fmt.Errorf("missing %s", name)
	}
	value, err := strconv.Atoi(args[index])
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %s", name, args[index])
	}
	return value, nil
}

// demoCatalog is served when no catalog file is given
func demoCatalog() []*entities.ProductCandidate {
	return []*entities.ProductCandidate{
		{ID: 1, Name: "Vibranium Shield", ProductType: "Armor", Price: decimal.RequireFromString("249.99"), Stock: 4},
		{ID: 2, Name: "Mjolnir Replica", ProductType: "Weapon", Price: decimal.RequireFromString("129.50"), Stock: 2},
		{ID: 3, Name: "Utility Belt", ProductType: "Gear", Price: decimal.RequireFromString("59.00"), Stock: 12},
		{ID: 4, Name: "Invisibility Cloak", ProductType: "Clothing", Price: decimal.RequireFromString("499.00"), Stock: 0},
		{ID: 5, Name: "Grappling Hook", ProductType: "Gear", Price: decimal.RequireFromString("34.75"), Stock: 7},
	}
}

// consolePrompt asks yes/no questions on the console input
type consolePrompt struct {
	in  *bufio.Scanner
	out io.Writer
}

func (p *consolePrompt) Confirm(ctx context.Context, question services.Confirmation) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	fmt.Fprintf(p.out, "❓ %s: %s [%s/No] ", question.Title, question.Message, question.Action)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return false, err
		}
		return false, io.ErrUnexpectedEOF
	}
	answer := strings.ToLower(strings.TrimSpace(p.in.Text()))
	return slices.Contains([]string{"y", "yes", strings.ToLower(question.Action)}, answer), nil
}

type consoleNotifier struct {
	out io.Writer
}

func (n *consoleNotifier) Success(message string) {
	fmt.Fprintf(n.out, "✅ %s\n", message)
}

func (n *consoleNotifier) Error(message string) {
	fmt.Fprintf(n.out, "❌ %s\n", message)
}

func (c *OrderCommand) showCommands() {
	fmt.Fprint(c.out, `COMMANDS:
    add                 Append an empty order line
    remove <n>          Remove line n
    select <n> <id>     Pick product id for line n
    deselect <n>        Clear the product of line n
    qty <n> <value>     Set the quantity of line n
    choices <n>         List products line n may still pick
    show                Show all lines and the order total
    products [cond]     List catalog products: all, available, unavailable
    submit              Create the order
    cancel              Discard the order
    help                Show this list
    quit                Leave the console

Lines are numbered from 0.
`)
}

// showHelp displays the help message
func (c *OrderCommand) showHelp() {
	fmt.Fprintf(c.out, `Order Desk - compose product orders from a stocked catalog

USAGE:
    orderdesk                       # Use the built-in demo catalog
    orderdesk -catalog <file>       # Use a products CSV file

OPTIONS:
    -catalog <file>     Path to products CSV file
    -format <fmt>       Output format: %s (default: text)
    -verbose            Enable verbose output and debug logging
    -help               Show this help message

CSV FILE FORMAT:

products.csv:
    id,name,product_type,price,stock
    1,Vibranium Shield,Armor,249.99,4

`, strings.Join(output.Formats, ", "))
	c.showCommands()
}
