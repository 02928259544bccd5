package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runConsole(t *testing.T, config Config, script ...string) string {
	t.Helper()
	var out bytes.Buffer
	input := strings.NewReader(strings.Join(script, "\n") + "\n")
	cmd := NewOrderCommandWithIO(config, input, &out, nil)
	require.NoError(t, cmd.Execute(context.Background()))
	return out.String()
}

func TestOrderCommand_Help(t *testing.T) {
	out := runConsole(t, Config{Help: true})

	assert.Contains(t, out, "USAGE:")
	assert.Contains(t, out, "-catalog <file>")
	assert.Contains(t, out, "select <n> <id>")
}

func TestOrderCommand_RejectsUnknownFormat(t *testing.T) {
	cmd := NewOrderCommandWithIO(Config{Format: "xml"}, strings.NewReader(""), &bytes.Buffer{}, nil)

	err := cmd.Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format: xml")
}

func TestOrderCommand_ComposeAndSubmit(t *testing.T) {
	out := runConsole(t, Config{},
		"add",
		"select 0 2",
		"qty 0 2",
		"add",
		"choices 1",
		"select 1 3",
		"qty 1 1",
		"show",
		"submit",
		"yes",
		"show",
		"quit",
	)

	assert.Contains(t, out, "Choices for line 1:")
	assert.NotContains(t, out, "Invisibility Cloak")
	assert.Contains(t, out, "Order total: 318")
	assert.Contains(t, out, "Create order: Create current order? [Create/No]")
	assert.Contains(t, out, "✅ Product order was successfully created!")
	assert.Contains(t, out, "Order total: 318.00")
	assert.Contains(t, out, "No order lines yet")
}

func TestOrderCommand_SelectionConflictIsReported(t *testing.T) {
	out := runConsole(t, Config{},
		"add",
		"add",
		"select 0 1",
		"select 1 1",
		"quit",
	)

	assert.Contains(t, out, "❌ product already owned by another line: product 1 held by line 0")
}

func TestOrderCommand_IncompleteOrderListsProblems(t *testing.T) {
	out := runConsole(t, Config{},
		"submit",
		"add",
		"qty 0 abc",
		"submit",
	)

	assert.Contains(t, out, "order must have at least one line")
	assert.Contains(t, out, "line 0: no product selected")
	assert.Contains(t, out, "line 0: quantity must be a whole number")
	assert.NotContains(t, out, "Create current order?")
}

func TestOrderCommand_Cancel(t *testing.T) {
	out := runConsole(t, Config{},
		"add",
		"select 0 1",
		"cancel",
		"no",
		"cancel",
		"confirm",
		"show",
	)

	assert.Equal(t, 2, strings.Count(out, "Confirm cancelation of current order?"))
	assert.Equal(t, 1, strings.Count(out, "Order discarded"))
	assert.Contains(t, out, "No order lines yet")
}

func TestOrderCommand_BadArguments(t *testing.T) {
	out := runConsole(t, Config{},
		"remove",
		"select x 1",
		"remove 3",
		"frobnicate",
		"products sold-out",
	)

	assert.Contains(t, out, "❌ missing position")
	assert.Contains(t, out, "❌ invalid position: x")
	assert.Contains(t, out, "❌ line position out of range")
	assert.Contains(t, out, "❌ unknown command: frobnicate")
	assert.Contains(t, out, "❌ invalid stock condition")
}

func TestOrderCommand_CatalogFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "products.csv")
	require.NoError(t, os.WriteFile(file, []byte(
		"id,name,product_type,price,stock\n"+
			"10,Lasso,Gear,12.00,3\n"+
			"11,Tiara,Armor,80.00,0\n"), 0o644))

	out := runConsole(t, Config{CatalogFile: file, Verbose: true},
		"products all",
		"products unavailable",
	)

	assert.Contains(t, out, "Loading catalog from")
	assert.Contains(t, out, "Catalog loaded: 1 product(s) available")
	assert.Contains(t, out, "Products (all): 2")
	assert.Contains(t, out, "Products (unavailable): 1")
	assert.Contains(t, out, "Tiara")
}

func TestOrderCommand_MissingCatalogFile(t *testing.T) {
	cmd := NewOrderCommandWithIO(Config{CatalogFile: filepath.Join(t.TempDir(), "none.csv")},
		strings.NewReader(""), &bytes.Buffer{}, nil)

	err := cmd.Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error loading catalog")
}

func TestOrderCommand_DuplicateCatalogIDs(t *testing.T) {
	file := filepath.Join(t.TempDir(), "products.csv")
	require.NoError(t, os.WriteFile(file, []byte(
		"id,name,product_type,price,stock\n"+
			"10,Lasso,Gear,12.00,3\n"+
			"10,Lasso Deluxe,Gear,18.00,1\n"), 0o644))

	cmd := NewOrderCommandWithIO(Config{CatalogFile: file}, strings.NewReader(""), &bytes.Buffer{}, nil)

	err := cmd.Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate product ids found: [10]")
}
