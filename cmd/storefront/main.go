package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gamestore/storefront/internal/client/api"
	"github.com/gamestore/storefront/internal/client/cart"
	"github.com/gamestore/storefront/internal/client/catalog"
	"github.com/gamestore/storefront/internal/client/session"
	"github.com/gamestore/storefront/internal/client/storage"
	"github.com/gamestore/storefront/internal/config"
	"github.com/gamestore/storefront/internal/logger"
	"github.com/gamestore/storefront/internal/models"
)

var (
	version   string
	buildDate string
)

const connectivityMsg = "Could not reach the store. Please try again."

// app bundles the wired client pieces the shell commands operate on.
type app struct {
	client  *api.Client
	session *session.Session
	cart    *cart.Cart
}

// repl runs the interactive shell loop.
func repl(a *app) {
	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("storefront> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			printHelp()
		case "login":
			a.login(ctx, scanner)
		case "register":
			a.register(ctx, scanner)
		case "logout":
			a.session.Logout()
			fmt.Println("Logged out")
		case "whoami":
			a.whoami()
		case "products":
			a.listProducts(ctx, catalog.Filter{})
		case "search":
			if len(args) < 2 {
				fmt.Println("Usage: search <term>")
				continue
			}
			a.listProducts(ctx, catalog.Filter{Search: strings.Join(args[1:], " ")})
		case "category":
			if len(args) < 2 {
				fmt.Println("Usage: category <Juego|Consola|Tarjeta|Figura>")
				continue
			}
			a.listProducts(ctx, catalog.Filter{Category: args[1]})
		case "console":
			if len(args) < 2 {
				fmt.Println("Usage: console <name>")
				continue
			}
			a.listProducts(ctx, catalog.Filter{Console: args[1]})
		case "featured":
			a.featured(ctx)
		case "product":
			if len(args) < 2 {
				fmt.Println("Usage: product <id>")
				continue
			}
			a.showProduct(ctx, args[1])
		case "add":
			if len(args) < 2 {
				fmt.Println("Usage: add <product-id>")
				continue
			}
			a.addToCart(ctx, args[1])
		case "cart":
			printCart(a.cart.Snapshot())
		case "qty":
			if len(args) < 3 {
				fmt.Println("Usage: qty <product-id> <quantity>")
				continue
			}
			n, err := strconv.Atoi(args[2])
			if err != nil {
				fmt.Println("Quantity must be a number")
				continue
			}
			a.cart.UpdateQuantity(args[1], n)
			printCart(a.cart.Snapshot())
		case "remove":
			if len(args) < 2 {
				fmt.Println("Usage: remove <product-id>")
				continue
			}
			a.cart.RemoveItem(args[1])
			printCart(a.cart.Snapshot())
		case "clear":
			a.cart.Clear()
			fmt.Println("Cart cleared")
		case "checkout":
			if len(args) < 2 {
				fmt.Println("Usage: checkout <standard|express|pickup>")
				continue
			}
			a.checkout(ctx, args[1])
		case "users":
			a.adminUsers(ctx)
		case "user-rm":
			if len(args) < 2 {
				fmt.Println("Usage: user-rm <id>")
				continue
			}
			a.adminDeleteUser(ctx, args[1])
		case "user-set":
			if len(args) < 4 {
				fmt.Println("Usage: user-set <id> <field> <value>")
				continue
			}
			a.adminUpdateUser(ctx, args[1], args[2], strings.Join(args[3:], " "))
		case "orders":
			a.adminOrders(ctx)
		case "order":
			if len(args) < 2 {
				fmt.Println("Usage: order <id>")
				continue
			}
			a.adminOrderDetail(ctx, args[1])
		case "order-status":
			if len(args) < 3 {
				fmt.Println("Usage: order-status <id> <procesando|enviado|completado|cancelado>")
				continue
			}
			a.adminOrderStatus(ctx, args[1], args[2])
		case "product-add":
			a.adminAddProduct(ctx, scanner)
		case "product-set":
			if len(args) < 4 {
				fmt.Println("Usage: product-set <id> <field> <value>")
				continue
			}
			a.adminUpdateProduct(ctx, args[1], args[2], strings.Join(args[3:], " "))
		case "product-rm":
			if len(args) < 2 {
				fmt.Println("Usage: product-rm <id>")
				continue
			}
			a.adminDeleteProduct(ctx, args[1])
		case "upload-image":
			if len(args) < 3 {
				fmt.Println("Usage: upload-image <product-id> <file>")
				continue
			}
			a.adminUploadImage(ctx, args[1], args[2])
		case "invoice":
			if len(args) < 2 {
				fmt.Println("Usage: invoice <order-id>")
				continue
			}
			a.adminInvoice(ctx, args[1])
		case "report-sales":
			from, to := "", ""
			if len(args) > 1 {
				from = args[1]
			}
			if len(args) > 2 {
				to = args[2]
			}
			a.adminSalesReport(ctx, from, to)
		case "report-inventory":
			a.adminInventoryReport(ctx)
		case "exit":
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

func printHelp() {
	fmt.Println(`Browsing:   products, search <term>, category <c>, console <c>, featured, product <id>
Cart:       add <id>, cart, qty <id> <n>, remove <id>, clear, checkout <method>
Account:    login, register, logout, whoami
Admin:      users, user-rm <id>, user-set <id> <field> <value>
            orders, order <id>, order-status <id> <status>
            product-add, product-set <id> <field> <value>, product-rm <id>
            upload-image <id> <file>, invoice <id>, report-sales [from] [to], report-inventory
Other:      help, exit`)
}

func prompt(scanner *bufio.Scanner, label string) string {
	fmt.Print(label)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}

func (a *app) login(ctx context.Context, scanner *bufio.Scanner) {
	email := prompt(scanner, "Email: ")
	password := prompt(scanner, "Password: ")

	resp, err := a.session.Login(ctx, email, password)
	if err != nil {
		fmt.Println(connectivityMsg)
		return
	}
	if !resp.Success {
		fmt.Println(resp.Message)
		return
	}
	a.whoami()
}

func (a *app) register(ctx context.Context, scanner *bufio.Scanner) {
	profile := models.RegisterRequest{
		FirstName: prompt(scanner, "First name: "),
		LastName:  prompt(scanner, "Last name: "),
		Email:     prompt(scanner, "Email: "),
		Password:  prompt(scanner, "Password: "),
		Phone:     prompt(scanner, "Phone (optional): "),
		Address:   prompt(scanner, "Address (optional): "),
		Country:   prompt(scanner, "Country (optional): "),
	}

	resp, err := a.session.Register(ctx, profile)
	if err != nil {
		fmt.Println(connectivityMsg)
		return
	}
	fmt.Println(resp.Message)
}

func (a *app) whoami() {
	u := a.session.CurrentUser()
	if u == nil {
		fmt.Println("Not logged in")
		return
	}
	fmt.Printf("%s %s <%s> (%s)\n", u.FirstName, u.LastName, u.Email, u.Role)
}

func (a *app) listProducts(ctx context.Context, filter catalog.Filter) {
	products, err := a.client.Products(ctx)
	if err != nil {
		fmt.Println(connectivityMsg)
		return
	}
	printProducts(filter.Apply(products))
}

func (a *app) featured(ctx context.Context) {
	products, err := a.client.Products(ctx)
	if err != nil {
		fmt.Println(connectivityMsg)
		return
	}
	featured := catalog.Featured(products, a.client.BaseURL())
	for page := 0; page < catalog.Pages(len(featured)); page++ {
		fmt.Printf("-- page %d --\n", page+1)
		printProducts(catalog.VisiblePage(featured, page))
	}
}

func (a *app) showProduct(ctx context.Context, id string) {
	p, err := a.client.Product(ctx, id)
	if err != nil {
		fmt.Println(connectivityMsg)
		return
	}
	fmt.Printf("%s  %s\n%s\nCategory: %s  Console: %s  Price: %s  Stock: %d\n",
		p.ID, p.Name, p.Description, p.Category, p.Console, p.Price, p.Stock)
}

func (a *app) addToCart(ctx context.Context, id string) {
	p, err := a.client.Product(ctx, id)
	if err != nil {
		fmt.Println(connectivityMsg)
		return
	}
	a.cart.AddItem(p)
	printCart(a.cart.Snapshot())
}

func (a *app) checkout(ctx context.Context, method string) {
	if !a.session.IsAuthenticated() {
		fmt.Println("Please log in before checking out")
		return
	}
	resp, err := a.cart.Checkout(ctx, method)
	if err != nil {
		fmt.Println(connectivityMsg)
		return
	}
	fmt.Println(resp.Message)
}

func printProducts(products []models.Product) {
	if len(products) == 0 {
		fmt.Println("No products found")
		return
	}
	for _, p := range products {
		fmt.Printf("%-10s %-40s %8s  %s/%s\n", p.ID, p.Name, p.Price, p.Category, p.Console)
	}
}

func printCart(c models.Cart) {
	if len(c.Items) == 0 {
		fmt.Println("Cart is empty")
		return
	}
	for _, item := range c.Items {
		fmt.Printf("%-10s %-40s x%d  %.2f\n", item.ProductID, item.Name, item.Quantity, item.UnitPrice)
	}
	fmt.Printf("Items: %d  Total: %.2f\n", c.TotalItems, c.TotalPrice)
}

// requireAdmin mirrors the admin route guard: a local convenience check,
// the server still enforces the role on every request.
func (a *app) requireAdmin() bool {
	if !a.session.IsAdmin() {
		fmt.Println("Administrator access required")
		return false
	}
	return true
}

func (a *app) adminUsers(ctx context.Context) {
	if !a.requireAdmin() {
		return
	}
	users, err := a.client.Users(ctx)
	if err != nil {
		fmt.Println(connectivityMsg)
		return
	}
	for _, u := range users {
		fmt.Printf("%-10s %-20s %-30s %s\n", u.ID, u.FirstName+" "+u.LastName, u.Email, u.Role)
	}
}

func (a *app) adminDeleteUser(ctx context.Context, id string) {
	if !a.requireAdmin() {
		return
	}
	resp, err := a.client.DeleteUser(ctx, id)
	if err != nil {
		fmt.Println(connectivityMsg)
		return
	}
	fmt.Println(resp.Message)
}

func (a *app) adminUpdateUser(ctx context.Context, id, field, value string) {
	if !a.requireAdmin() {
		return
	}
	resp, err := a.client.UpdateUser(ctx, id, map[string]any{field: value})
	if err != nil {
		fmt.Println(connectivityMsg)
		return
	}
	fmt.Println(resp.Message)
}

func (a *app) adminOrders(ctx context.Context) {
	if !a.requireAdmin() {
		return
	}
	orders, err := a.client.AdminOrders(ctx)
	if err != nil {
		fmt.Println(connectivityMsg)
		return
	}
	for _, o := range orders {
		fmt.Printf("%-10s %-12s %-10s total %.2f  %s\n", o.ID, o.Status, o.ShippingMethod, o.Total, o.PlacedAt)
	}
}

func (a *app) adminOrderDetail(ctx context.Context, id string) {
	if !a.requireAdmin() {
		return
	}
	detail, err := a.client.OrderDetail(ctx, id)
	if err != nil {
		fmt.Println(connectivityMsg)
		return
	}
	fmt.Printf("Order %s  status=%s  shipping=%s (%.2f)  total=%.2f\n",
		detail.ID, detail.Status, detail.ShippingMethod, detail.ShippingCost, detail.Total)
	for _, item := range detail.Items {
		fmt.Printf("  %-40s x%d  %.2f\n", item.Product.Name, item.Quantity, item.UnitPrice)
	}
}

func (a *app) adminOrderStatus(ctx context.Context, id, status string) {
	if !a.requireAdmin() {
		return
	}
	resp, err := a.client.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		fmt.Println(connectivityMsg)
		return
	}
	fmt.Println(resp.Message)
}

func (a *app) adminAddProduct(ctx context.Context, scanner *bufio.Scanner) {
	if !a.requireAdmin() {
		return
	}
	fields := map[string]any{
		"nombre":      prompt(scanner, "Name: "),
		"descripcion": prompt(scanner, "Description: "),
		"precio":      prompt(scanner, "Price: "),
		"categoria":   prompt(scanner, "Category: "),
		"consola":     prompt(scanner, "Console: "),
	}
	if stock, err := strconv.Atoi(prompt(scanner, "Stock: ")); err == nil {
		fields["stock"] = stock
	}

	resp, err := a.client.CreateProduct(ctx, fields)
	if err != nil {
		fmt.Println(connectivityMsg)
		return
	}
	fmt.Println(resp.Message)
}

func (a *app) adminUpdateProduct(ctx context.Context, id, field, value string) {
	if !a.requireAdmin() {
		return
	}
	resp, err := a.client.UpdateProduct(ctx, id, map[string]any{field: value})
	if err != nil {
		fmt.Println(connectivityMsg)
		return
	}
	fmt.Println(resp.Message)
}

func (a *app) adminDeleteProduct(ctx context.Context, id string) {
	if !a.requireAdmin() {
		return
	}
	resp, err := a.client.DeleteProduct(ctx, id)
	if err != nil {
		fmt.Println(connectivityMsg)
		return
	}
	fmt.Println(resp.Message)
}

func (a *app) adminUploadImage(ctx context.Context, id, path string) {
	if !a.requireAdmin() {
		return
	}
	f, err := os.Open(path)
	if err != nil {
		fmt.Println("Cannot open file:", err)
		return
	}
	defer f.Close()

	resp, err := a.client.UploadProductImage(ctx, id, filepath.Base(path), f)
	if err != nil {
		fmt.Println(connectivityMsg)
		return
	}
	fmt.Println(resp.Message)
}

func (a *app) adminInvoice(ctx context.Context, orderID string) {
	if !a.requireAdmin() {
		return
	}
	pdf, err := a.client.InvoicePDF(ctx, orderID)
	if err != nil {
		fmt.Println(connectivityMsg)
		return
	}
	a.writePDF("factura_"+orderID+".pdf", pdf)
}

func (a *app) adminSalesReport(ctx context.Context, from, to string) {
	if !a.requireAdmin() {
		return
	}
	pdf, err := a.client.SalesReportPDF(ctx, from, to)
	if err != nil {
		fmt.Println(connectivityMsg)
		return
	}
	a.writePDF("reporte_ventas.pdf", pdf)
}

func (a *app) adminInventoryReport(ctx context.Context) {
	if !a.requireAdmin() {
		return
	}
	pdf, err := a.client.InventoryReportPDF(ctx)
	if err != nil {
		fmt.Println(connectivityMsg)
		return
	}
	a.writePDF("reporte_inventario.pdf", pdf)
}

func (a *app) writePDF(name string, data []byte) {
	if err := os.WriteFile(name, data, 0o644); err != nil {
		fmt.Println("Cannot write file:", err)
		return
	}
	fmt.Println("Saved", name)
}

func main() {
	opts := config.Parse()

	if opts.ShowVersion {
		fmt.Printf("Storefront Client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	zapLogger, err := logger.New(opts.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zapLogger.Sync() }()

	store := storage.New(opts.StateDir, zapLogger)
	client := api.New(opts.APIBaseURL, func() string {
		tok, _ := store.Get(storage.TokenKey)
		return tok
	}, zapLogger)

	a := &app{
		client:  client,
		session: session.New(client, store, zapLogger),
		cart:    cart.New(client, store, zapLogger),
	}

	repl(a)
}
