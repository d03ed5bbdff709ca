package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"shoplist/internal/api"
	"shoplist/internal/config"
	"shoplist/internal/logging"
	"shoplist/internal/prefs"
	"shoplist/internal/session"
	"shoplist/internal/storage"
	"shoplist/internal/view"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := logging.Setup(cfg.LogLevel, os.Stderr)

	store, err := storage.Open(cfg.DBPath(), cfg.KeyPath())
	if err != nil {
		log.Fatalf("failed to open local store: %v", err)
	}
	defer store.Close()

	client := api.New(api.Config{BaseURL: cfg.APIBaseURL, Timeout: cfg.RequestTimeout})
	accounts := api.NewAccountAPI(client)
	products := api.NewProductAPI(client)
	lists := api.NewListAPI(client)

	app := newApp()

	sess := session.New(store, accounts, app, logger.With("component", "session"))
	client.BindSession(sess)

	banner := view.NewBanner(view.DefaultBannerClear)
	app.sess = sess
	app.prefs = prefs.New(store)
	app.banner = banner
	app.login = view.NewLoginView(sess, banner)
	app.register = view.NewRegisterView(sess, banner)
	app.dashboard = view.NewDashboardView(sess, lists, banner)
	app.catalog = view.NewCatalogView(products, banner)
	app.detail = view.NewListDetailView(lists, products, app, banner)
	app.shopping = view.NewShoppingView(lists, app, banner)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if sess.Authenticated().Get() {
		app.Navigate(session.RouteDashboard)
	} else {
		app.Navigate(session.RouteLogin)
	}

	app.run(ctx)
}

// app is the terminal front end: it owns the current route, reads
// commands and drives the view layer. It implements session.Navigator.
type app struct {
	in    *bufio.Scanner
	route string

	sess      *session.Session
	prefs     *prefs.Prefs
	banner    *view.Banner
	login     *view.LoginView
	register  *view.RegisterView
	dashboard *view.DashboardView
	catalog   *view.CatalogView
	detail    *view.ListDetailView
	shopping  *view.ShoppingView
}

func newApp() *app {
	return &app{in: bufio.NewScanner(os.Stdin)}
}

// Navigate switches the active screen.
func (a *app) Navigate(route string) {
	a.route = route
	fmt.Printf("\n== %s ==\n", strings.TrimPrefix(route, "/"))
}

func (a *app) run(ctx context.Context) {
	fmt.Println("shoplist — type 'help' for commands, 'quit' to exit")
	for {
		if msg, kind := a.banner.Message(); msg != "" {
			if kind == view.BannerError {
				fmt.Println("! " + msg)
			} else {
				fmt.Println("* " + msg)
			}
		}
		fmt.Print("> ")
		if !a.in.Scan() {
			return
		}
		select {
		case <-ctx.Done():
			return
		default:
		}

		line := strings.TrimSpace(a.in.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "quit", "exit":
			return
		case "help":
			a.printHelp()
		case "theme":
			a.handleTheme(args)
		case "logout":
			a.sess.Logout()
		default:
			a.dispatch(ctx, cmd, args)
		}
	}
}

func (a *app) dispatch(ctx context.Context, cmd string, args []string) {
	switch a.route {
	case session.RouteLogin:
		a.loginCommands(ctx, cmd, args)
	case session.RouteDashboard:
		a.dashboardCommands(ctx, cmd, args)
	case "/catalog":
		a.catalogCommands(ctx, cmd, args)
	case "/list":
		a.detailCommands(ctx, cmd, args)
	case "/shopping":
		a.shoppingCommands(ctx, cmd, args)
	default:
		fmt.Println("unknown command; try 'help'")
	}
}

func (a *app) loginCommands(ctx context.Context, cmd string, args []string) {
	switch cmd {
	case "login":
		if len(args) < 2 {
			fmt.Println("usage: login <email> <password>")
			return
		}
		a.login.SetEmail(args[0])
		a.login.SetPassword(args[1])
		a.login.Submit(ctx)
		a.printFieldErrors(a.login.FieldError, "email", "password")
	case "register":
		if len(args) < 4 {
			fmt.Println("usage: register <email> <password> <first> <last>")
			return
		}
		a.register.SetEmail(args[0])
		a.register.SetPassword(args[1])
		a.register.SetConfirmPassword(args[1])
		a.register.SetFirstName(args[2])
		a.register.SetLastName(args[3])
		a.register.Submit(ctx)
		a.printFieldErrors(a.register.FieldError, "email", "password", "firstName", "lastName")
	default:
		fmt.Println("commands: login, register, quit")
	}
}

func (a *app) dashboardCommands(ctx context.Context, cmd string, args []string) {
	switch cmd {
	case "lists":
		a.dashboard.Load(ctx)
		for _, l := range a.dashboard.Lists() {
			flag := " "
			if l.IsArchived {
				flag = "A"
			}
			fmt.Printf("[%s] %d  %s\n", flag, l.ListID, l.Title)
		}
		if msg := a.dashboard.LoadError(); msg != "" {
			fmt.Println("! " + msg)
		}
	case "archived":
		a.dashboard.SetShowArchived(ctx, len(args) == 0 || args[0] != "off")
	case "new":
		if len(args) == 0 {
			fmt.Println("usage: new <title...>")
			return
		}
		a.dashboard.CreateList(ctx, strings.Join(args, " "), "")
	case "rename":
		if len(args) < 2 {
			fmt.Println("usage: rename <id> <title...>")
			return
		}
		id, _ := strconv.ParseInt(args[0], 10, 64)
		a.dashboard.RenameList(ctx, id, strings.Join(args[1:], " "))
	case "archive":
		if len(args) == 0 {
			fmt.Println("usage: archive <id>")
			return
		}
		id, _ := strconv.ParseInt(args[0], 10, 64)
		a.dashboard.ArchiveList(ctx, id, a.confirm)
	case "delete":
		if len(args) == 0 {
			fmt.Println("usage: delete <id>")
			return
		}
		id, _ := strconv.ParseInt(args[0], 10, 64)
		a.dashboard.DeleteList(ctx, id, a.confirm)
	case "open":
		if len(args) == 0 {
			fmt.Println("usage: open <id>")
			return
		}
		a.Navigate("/list")
		a.detail.Activate(ctx, args[0])
	case "shop":
		if len(args) == 0 {
			fmt.Println("usage: shop <id>")
			return
		}
		id, _ := strconv.ParseInt(args[0], 10, 64)
		a.Navigate("/shopping")
		a.shopping.Activate(ctx, id)
	case "catalog":
		a.Navigate("/catalog")
		a.catalog.Load(ctx)
	case "delete-account":
		a.dashboard.DeleteAccount(ctx, a.confirm)
	default:
		fmt.Println("commands: lists, archived [off], new, rename, archive, delete, open, shop, catalog, delete-account, logout")
	}
}

func (a *app) catalogCommands(ctx context.Context, cmd string, args []string) {
	switch cmd {
	case "all":
		a.catalog.Load(ctx)
		a.printProducts()
	case "search":
		a.catalog.SetQuery(ctx, strings.Join(args, " "))
		fmt.Println("(searching...)")
	case "category":
		if len(args) == 0 {
			for _, c := range a.catalog.Categories() {
				fmt.Printf("%d  %s\n", c.ID, c.Name)
			}
			return
		}
		id, _ := strconv.ParseInt(args[0], 10, 64)
		a.catalog.FilterCategory(ctx, id)
		a.printProducts()
	case "back":
		a.Navigate(session.RouteDashboard)
	default:
		fmt.Println("commands: all, search <query>, category [id], back")
	}
}

func (a *app) detailCommands(ctx context.Context, cmd string, args []string) {
	switch cmd {
	case "show":
		if l := a.detail.List(); l != nil {
			fmt.Printf("%s — %s\n", l.Title, l.Description)
		}
		for _, it := range a.detail.Items() {
			mark := " "
			if it.IsChecked {
				mark = "x"
			}
			fmt.Printf("[%s] %d  %.1f %s %s  (%.2f)\n", mark, it.ListItemID, it.Quantity, it.Unit, it.ProductName, it.PriceAtAddition)
		}
		checked, unchecked := a.detail.Progress()
		fmt.Printf("total %.2f — %d checked, %d to go\n", a.detail.Total(), checked, unchecked)
	case "add":
		if len(args) < 2 {
			fmt.Println("usage: add <product-id> <quantity>")
			return
		}
		productID, _ := strconv.ParseInt(args[0], 10, 64)
		qty, _ := strconv.ParseFloat(args[1], 64)
		a.detail.AddItem(ctx, productID, qty)
	case "check":
		if len(args) == 0 {
			fmt.Println("usage: check <item-id>")
			return
		}
		id, _ := strconv.ParseInt(args[0], 10, 64)
		a.detail.ToggleItem(ctx, id)
	case "qty":
		if len(args) < 2 {
			fmt.Println("usage: qty <item-id> <quantity>")
			return
		}
		id, _ := strconv.ParseInt(args[0], 10, 64)
		qty, _ := strconv.ParseFloat(args[1], 64)
		a.detail.UpdateQuantity(ctx, id, qty)
	case "remove":
		if len(args) == 0 {
			fmt.Println("usage: remove <item-id>")
			return
		}
		id, _ := strconv.ParseInt(args[0], 10, 64)
		a.detail.RemoveItem(ctx, id, a.confirm)
	case "archive":
		a.detail.Archive(ctx, a.confirm)
	case "back":
		a.Navigate(session.RouteDashboard)
	default:
		fmt.Println("commands: show, add, check, qty, remove, archive, back")
	}
}

func (a *app) shoppingCommands(ctx context.Context, cmd string, args []string) {
	switch cmd {
	case "show":
		for _, it := range a.shopping.Items() {
			mark := " "
			if it.IsChecked {
				mark = "x"
			}
			fmt.Printf("[%s] %d  %.1f %s %s\n", mark, it.ListItemID, it.Quantity, it.Unit, it.ProductName)
		}
		checked, unchecked := a.shopping.Progress()
		fmt.Printf("%d in the cart, %d to go — %.2f total\n", checked, unchecked, a.shopping.Total())
	case "check":
		if len(args) == 0 {
			fmt.Println("usage: check <item-id>")
			return
		}
		id, _ := strconv.ParseInt(args[0], 10, 64)
		a.shopping.Toggle(ctx, id)
	case "back":
		a.Navigate(session.RouteDashboard)
	default:
		fmt.Println("commands: show, check, back")
	}
}

func (a *app) handleTheme(args []string) {
	if len(args) == 0 {
		fmt.Println("theme:", a.prefs.Theme())
		return
	}
	if err := a.prefs.SetTheme(args[0]); err != nil {
		fmt.Println("! could not save theme")
	}
}

func (a *app) confirm(prompt string) bool {
	fmt.Print(prompt + " [y/N] ")
	if !a.in.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(a.in.Text()))
	return answer == "y" || answer == "yes"
}

func (a *app) printProducts() {
	for _, p := range a.catalog.Products() {
		fmt.Printf("%d  %-30s %8.2f/%s  %s\n", p.ID, p.Name, p.Price, p.Unit, p.CategoryName)
	}
	if msg, _ := a.catalog.Errors(); msg != "" {
		fmt.Println("! " + msg)
	}
}

func (a *app) printFieldErrors(get func(string) string, fields ...string) {
	for _, f := range fields {
		if msg := get(f); msg != "" {
			fmt.Printf("  %s: %s\n", f, msg)
		}
	}
}

func (a *app) printHelp() {
	fmt.Println(`global: help, theme [light|dark], logout, quit
login screen: login <email> <password> | register <email> <password> <first> <last>
dashboard: lists, archived [off], new <title>, rename <id> <title>, archive <id>,
           delete <id>, open <id>, shop <id>, catalog, delete-account
catalog: all, search <query>, category [id], back
list: show, add <product-id> <qty>, check <item-id>, qty <item-id> <n>,
      remove <item-id>, archive, back
shopping: show, check <item-id>, back`)
}
