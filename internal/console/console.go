// Package console is the interactive operator menu for a storefront.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/F-Fleron-G/bestbuy2/internal/checkout"
	"github.com/F-Fleron-G/bestbuy2/internal/product"
	"github.com/F-Fleron-G/bestbuy2/internal/store"
)

// Console runs the menu loop over a line-oriented reader and a writer.
type Console struct {
	svc     *checkout.Service
	in      *bufio.Scanner
	out     io.Writer
	palette Palette
}

type Option func(*Console)

// WithPalette replaces the default colors. Palette{} prints plain text.
func WithPalette(p Palette) Option {
	return func(c *Console) { c.palette = p }
}

func New(svc *checkout.Service, in io.Reader, out io.Writer, opts ...Option) *Console {
	c := &Console{
		svc:     svc,
		in:      bufio.NewScanner(in),
		out:     out,
		palette: ColorPalette,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run shows the menu until the operator quits or input ends.
func (c *Console) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.menu()

		choice, ok := c.prompt("\nPlease choose a number:")
		if !ok {
			return c.in.Err()
		}
		c.println()

		switch choice {
		case "1":
			c.listProducts(ctx)
		case "2":
			c.showTotal(ctx)
		case "3":
			if !c.makeOrder(ctx) {
				return c.in.Err()
			}
		case "4":
			c.println(c.palette.paint(c.palette.Menu, "COME AGAIN!"))
			return nil
		default:
			c.println(c.palette.paint(c.palette.Error, "INVALID CHOICE! Please select a valid option (1-4)."))
		}
	}
}

func (c *Console) menu() {
	c.title("\nSTORE MENU", c.palette.Menu)
	c.println(c.palette.paint(c.palette.Menu, "1.") + " List all products in store")
	c.println(c.palette.paint(c.palette.Menu, "2.") + " Show total products in store")
	c.println(c.palette.paint(c.palette.Menu, "3.") + " Make an order")
	c.println(c.palette.paint(c.palette.Menu, "4.") + " Quit")
}

// listProducts prints the active catalog and returns the listed products so
// a selection number maps back to exactly the product shown.
func (c *Console) listProducts(ctx context.Context) []product.Product {
	c.title("AVAILABLE PRODUCTS", c.palette.Name)
	products := c.svc.Products(ctx)
	if len(products) == 0 {
		c.println(c.palette.paint(c.palette.Name, "WE ARE OUT OF STOCK!"))
	}
	for i, p := range products {
		c.println(fmt.Sprintf("%d. %s", i+1, c.describe(p.Info())))
	}
	c.println()
	return products
}

func (c *Console) describe(info product.Info) string {
	p := c.palette
	var b strings.Builder
	fmt.Fprintf(&b, "%s: Price: %s", p.paint(p.Name, info.Name), p.paint(p.Value, info.Price.String()))
	if info.StockTracked {
		fmt.Fprintf(&b, ", Quantity: %s", p.paint(p.Value, strconv.Itoa(info.Quantity)))
	} else {
		b.WriteString(", Quantity: Unlimited")
	}
	if info.MaxPerOrder > 0 {
		fmt.Fprintf(&b, ", Max per Order: %s", p.paint(p.Value, strconv.Itoa(info.MaxPerOrder)))
	}
	if info.Promotion != "" {
		fmt.Fprintf(&b, ", Promotion: %s", info.Promotion)
	}
	return b.String()
}

func (c *Console) showTotal(ctx context.Context) {
	c.title("TOTAL PRODUCTS", c.palette.Value)
	total := c.svc.TotalQuantity(ctx)
	c.println(fmt.Sprintf("We have %s products in stock.", c.palette.paint(c.palette.Value, strconv.Itoa(total))))
}

// makeOrder collects selections until "done" and submits them as one order.
// It reports false when input ended before the order was finished.
func (c *Console) makeOrder(ctx context.Context) bool {
	products := c.listProducts(ctx)
	c.title("PLACE YOUR ORDER", c.palette.Name)
	c.println(c.palette.paint(c.palette.Name, "(When done, type 'done' to finish.)") + "\n")

	var (
		order []store.Line
		index = make(map[product.Product]int)
	)
	for {
		selection, ok := c.prompt("Please enter the product number:")
		if !ok {
			return false
		}
		if strings.EqualFold(selection, "done") {
			break
		}

		n, err := strconv.Atoi(selection)
		if err != nil {
			c.println(c.palette.paint(c.palette.Error, "INVALID INPUT! Please enter a number."))
			continue
		}
		if n < 1 || n > len(products) {
			c.println(c.palette.paint(c.palette.Error, "INVALID SELECTION! Please select a valid product number."))
			continue
		}
		selected := products[n-1]
		name := selected.Name()

		raw, ok := c.prompt(fmt.Sprintf("How many '%s' would you like?", name))
		if !ok {
			return false
		}
		quantity, err := strconv.Atoi(raw)
		if err != nil {
			c.println(c.palette.paint(c.palette.Error, "INVALID INPUT! Please enter a valid number."))
			continue
		}
		if quantity <= 0 {
			c.println(c.palette.paint(c.palette.Error, "ATTENTION! Quantity must be a positive number."))
			continue
		}

		if i, seen := index[selected]; seen {
			order[i].Quantity += quantity
		} else {
			index[selected] = len(order)
			order = append(order, store.Line{Product: selected, Quantity: quantity})
		}
		c.println(c.palette.paint(c.palette.Value, fmt.Sprintf("Added %d x %s to your order.", quantity, name)))
		c.println("Continue ordering or type '" + c.palette.paint(c.palette.Name, "done") + "' to finish your order.")
	}

	if len(order) == 0 {
		return true
	}
	receipt, err := c.svc.OrderProducts(ctx, order)
	if err != nil {
		c.println(c.palette.paint(c.palette.Error, "ORDER FAILED! "+err.Error()))
		return true
	}
	c.summary(receipt)
	return true
}

func (c *Console) summary(r *store.Receipt) {
	p := c.palette
	c.title("\nYOUR ORDER SUMMARY", p.Value)
	for _, l := range r.Lines {
		c.println(fmt.Sprintf("%s x %s @ %s each", p.paint(p.Name, l.Name),
			p.paint(p.Value, strconv.Itoa(l.Quantity)), p.paint(p.Value, l.UnitPrice.String())))
		line := "Item Total: " + p.paint(p.Value, l.Total.String())
		if l.Promotion != "" {
			line += " (" + l.Promotion + ")"
		}
		c.println(line)
		c.println()
	}
	c.println("Order Total: " + p.paint(p.Value, r.Total.String()))
}

func (c *Console) title(text, color string) {
	c.println(text)
	c.println(c.palette.paint(color, strings.Repeat("‾", len(strings.TrimLeft(text, "\n")))))
}

func (c *Console) prompt(text string) (string, bool) {
	fmt.Fprint(c.out, c.palette.paint(c.palette.Prompt, text)+" ")
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

func (c *Console) println(lines ...string) {
	if len(lines) == 0 {
		fmt.Fprintln(c.out)
		return
	}
	for _, l := range lines {
		fmt.Fprintln(c.out, l)
	}
}
