// Package terminal implements the interactive command loop of the point of
// sale terminal. Screens map one-to-one to routes; navigation between them
// always goes through session.Steer so day gating and role capabilities are
// enforced in a single place, not per screen.
package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/KaanCaman/simple-pos-full-stack/internal/domain/auth"
	"github.com/KaanCaman/simple-pos-full-stack/internal/domain/catalog"
	"github.com/KaanCaman/simple-pos-full-stack/internal/domain/finance"
	"github.com/KaanCaman/simple-pos-full-stack/internal/domain/order"
	"github.com/KaanCaman/simple-pos-full-stack/internal/domain/table"
	"github.com/KaanCaman/simple-pos-full-stack/internal/session"
	"github.com/KaanCaman/simple-pos-full-stack/pkg/connectivity"
	"github.com/KaanCaman/simple-pos-full-stack/pkg/money"
)

// Terminal drives one operator's interaction over a line-oriented stream.
type Terminal struct {
	sess    *session.Session
	network *connectivity.Monitor
	lg      *zap.Logger

	in  *bufio.Scanner
	out io.Writer

	route auth.Route
}

// New builds a terminal reading commands from in and rendering to out.
// network may be nil; the offline banner is then never shown.
func New(sess *session.Session, network *connectivity.Monitor, in io.Reader, out io.Writer, lg *zap.Logger) *Terminal {
	return &Terminal{
		sess:    sess,
		network: network,
		lg:      lg,
		in:      bufio.NewScanner(in),
		out:     out,
		route:   auth.RouteHome,
	}
}

// Run executes the command loop until the input ends, the operator quits,
// or the context is cancelled.
func (t *Terminal) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		t.route = t.sess.Steer(t.route)

		var next auth.Route
		var ok bool
		switch t.route {
		case auth.RouteLogin:
			next, ok = t.loginScreen(ctx)
		case auth.RouteStartDay:
			next, ok = t.startDayScreen(ctx)
		case auth.RouteSystemClosed:
			next, ok = t.systemClosedScreen(ctx)
		case auth.RouteHome:
			next, ok = t.homeScreen(ctx)
		case auth.RouteTables:
			next, ok = t.tablesScreen(ctx)
		case auth.RouteOrder:
			next, ok = t.orderScreen(ctx)
		case auth.RouteCatalogAdmin:
			next, ok = t.catalogScreen(ctx)
		case auth.RouteTableAdmin:
			next, ok = t.tableAdminScreen(ctx)
		case auth.RouteUsers:
			next, ok = t.usersScreen(ctx)
		case auth.RouteExpenses:
			next, ok = t.expensesScreen(ctx)
		case auth.RouteReports:
			next, ok = t.reportsScreen(ctx)
		default:
			// An unhandled route means a capability was added without a
			// screen; fall back to the role landing.
			t.lg.Warn("No screen for route", zap.String("route", string(t.route)))
			next, ok = auth.RouteHome, true
		}
		if !ok {
			return nil
		}
		t.route = next
	}
}

// readLine prompts and reads one trimmed line. ok is false when the input
// stream has ended.
func (t *Terminal) readLine(prompt string) (string, bool) {
	if t.network != nil && !t.network.Online() {
		fmt.Fprintln(t.out, "! backend unreachable, commands may fail")
	}
	fmt.Fprintf(t.out, "%s> ", prompt)
	if !t.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(t.in.Text()), true
}

func (t *Terminal) printf(format string, args ...any) {
	fmt.Fprintf(t.out, format+"\n", args...)
}

func (t *Terminal) printErr(err error) {
	t.printf("error: %s", err)
}

// fields splits a command line into the verb and its arguments.
func fields(line string) (string, []string) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return "", nil
	}
	return parts[0], parts[1:]
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func (t *Terminal) loginScreen(ctx context.Context) (auth.Route, bool) {
	t.printf("-- login --")
	username, ok := t.readLine("username")
	if !ok {
		return "", false
	}
	if username == "quit" {
		return "", false
	}
	password, ok := t.readLine("password")
	if !ok {
		return "", false
	}

	if err := t.sess.Login(ctx, username, password); err != nil {
		t.printErr(err)
		return auth.RouteLogin, true
	}
	return t.sess.Steer(auth.RouteHome), true
}

func (t *Terminal) startDayScreen(ctx context.Context) (auth.Route, bool) {
	t.printf("-- day closed --")
	t.printf("commands: start, logout, quit")
	for {
		line, ok := t.readLine("start-day")
		if !ok {
			return "", false
		}
		switch line {
		case "start":
			if err := t.sess.StartDay(ctx); err != nil {
				t.printErr(err)
				continue
			}
			t.printf("day started")
			return auth.RouteHome, true
		case "logout":
			t.sess.Logout()
			return auth.RouteLogin, true
		case "quit":
			return "", false
		case "":
		default:
			t.printf("unknown command %q", line)
		}
	}
}

func (t *Terminal) systemClosedScreen(ctx context.Context) (auth.Route, bool) {
	t.printf("-- system closed --")
	t.printf("the day has not been started yet; commands: refresh, logout, quit")
	for {
		line, ok := t.readLine("closed")
		if !ok {
			return "", false
		}
		switch line {
		case "refresh":
			if err := t.sess.Day.Refresh(ctx); err != nil {
				t.printErr(err)
				continue
			}
			if t.sess.Day.IsDayOpen() {
				return auth.RouteTables, true
			}
			t.printf("still closed")
		case "logout":
			t.sess.Logout()
			return auth.RouteLogin, true
		case "quit":
			return "", false
		case "":
		default:
			t.printf("unknown command %q", line)
		}
	}
}

func (t *Terminal) homeScreen(ctx context.Context) (auth.Route, bool) {
	t.printf("-- home --")
	t.printf("commands: tables, catalog, layout, users, expenses, reports, endday, logout, quit")
	for {
		line, ok := t.readLine("home")
		if !ok {
			return "", false
		}
		switch line {
		case "tables":
			return auth.RouteTables, true
		case "catalog":
			return auth.RouteCatalogAdmin, true
		case "layout":
			return auth.RouteTableAdmin, true
		case "users":
			return auth.RouteUsers, true
		case "expenses":
			return auth.RouteExpenses, true
		case "reports":
			return auth.RouteReports, true
		case "endday":
			report, err := t.sess.EndDay(ctx)
			if err != nil {
				t.printErr(err)
				continue
			}
			t.printReport(report)
			t.printf("day ended, session closed")
			return auth.RouteLogin, true
		case "logout":
			t.sess.Logout()
			return auth.RouteLogin, true
		case "quit":
			return "", false
		case "":
		default:
			t.printf("unknown command %q", line)
		}
	}
}

func (t *Terminal) tablesScreen(ctx context.Context) (auth.Route, bool) {
	if err := t.sess.Tables.Refresh(ctx); err != nil {
		t.printErr(err)
	}
	t.printTables(t.sess.Tables.Tables())
	t.printf("commands: open <table>, refresh, home, logout, quit")

	for {
		line, ok := t.readLine("tables")
		if !ok {
			return "", false
		}
		verb, args := fields(line)
		switch verb {
		case "open":
			if len(args) != 1 {
				t.printf("usage: open <table>")
				continue
			}
			id, err := parseID(args[0])
			if err != nil {
				t.printErr(err)
				continue
			}
			next, err := t.openTable(ctx, id)
			if err != nil {
				t.printErr(err)
				continue
			}
			return next, true
		case "refresh":
			if err := t.sess.Tables.Refresh(ctx); err != nil {
				t.printErr(err)
				continue
			}
			t.printTables(t.sess.Tables.Tables())
		case "home":
			return auth.RouteHome, true
		case "logout":
			t.sess.Logout()
			return auth.RouteLogin, true
		case "quit":
			return "", false
		case "":
		default:
			t.printf("unknown command %q", verb)
		}
	}
}

// openTable resumes the first open order on the table or creates a new one.
// A failed lookup aborts: guessing here would risk opening a duplicate
// order on an occupied table.
func (t *Terminal) openTable(ctx context.Context, tableID int64) (auth.Route, error) {
	orders, err := t.sess.Orders.TableOrders(ctx, tableID)
	if err != nil {
		return "", err
	}
	if len(orders) > 0 {
		if err := t.sess.Orders.Load(ctx, orders[0].ID); err != nil {
			return "", err
		}
		return auth.RouteOrder, nil
	}

	user := t.sess.Auth.User()
	if user == nil {
		return "", auth.ErrUnauthenticated
	}
	if _, err := t.sess.Orders.Create(ctx, tableID, user.ID); err != nil {
		return "", err
	}
	return auth.RouteOrder, nil
}

func (t *Terminal) orderScreen(ctx context.Context) (auth.Route, bool) {
	cur := t.sess.Orders.Current()
	if cur == nil {
		return auth.RouteTables, true
	}
	t.printOrder(cur)
	t.printf("commands: menu, add <product> <qty> [note], qty <item> <n>, rm <item>,")
	t.printf("          disc percent|amount <value> <reason>, close cash|card, cancel, back")

	for {
		line, ok := t.readLine("order")
		if !ok {
			return "", false
		}
		verb, args := fields(line)
		switch verb {
		case "menu":
			t.printMenu(ctx)
		case "add":
			t.addItem(ctx, args)
		case "qty":
			t.changeQuantity(ctx, args)
		case "rm":
			t.removeItem(ctx, args)
		case "disc":
			t.applyDiscount(ctx, args)
		case "close":
			if done := t.closeOrder(ctx, args); done {
				if t.sess.Orders.Current() == nil {
					return auth.RouteTables, true
				}
				t.printOrder(t.sess.Orders.Current())
			}
		case "cancel":
			confirm, ok := t.readLine("cancel order? y/n")
			if !ok {
				return "", false
			}
			if confirm != "y" {
				continue
			}
			res := t.sess.Orders.Cancel(ctx, t.sess.Orders.Current().ID)
			if res.Err != nil {
				t.printErr(res.Err)
				continue
			}
			t.printf("order cancelled")
			if t.sess.Orders.Current() == nil {
				return auth.RouteTables, true
			}
			t.printOrder(t.sess.Orders.Current())
		case "back":
			t.sess.Orders.Reset()
			return auth.RouteTables, true
		case "quit":
			return "", false
		case "":
		default:
			t.printf("unknown command %q", verb)
		}
	}
}

func (t *Terminal) addItem(ctx context.Context, args []string) {
	if len(args) < 2 {
		t.printf("usage: add <product> <qty> [note]")
		return
	}
	productID, err := parseID(args[0])
	if err != nil {
		t.printErr(err)
		return
	}
	qty, err := strconv.Atoi(args[1])
	if err != nil || qty < 1 {
		t.printf("invalid quantity %q", args[1])
		return
	}
	// When the menu has been loaded, reject ids it does not list before
	// bothering the backend. An empty cache skips the check: the backend
	// validates either way.
	if len(t.sess.Catalog.Products()) > 0 {
		if _, ok := t.sess.Catalog.Product(productID); !ok {
			t.printErr(catalog.ErrProductNotFound)
			return
		}
	}
	note := strings.Join(args[2:], " ")

	res := t.sess.Orders.AddItem(ctx, productID, qty, note)
	if res.Err != nil {
		t.printErr(res.Err)
	}
	if res.Applied && res.Order != nil {
		t.printOrder(res.Order)
	}
}

// changeQuantity treats any target below one as a removal request: the
// order state never holds zero-quantity lines, so the operator is asked to
// confirm deleting the line instead.
func (t *Terminal) changeQuantity(ctx context.Context, args []string) {
	if len(args) != 2 {
		t.printf("usage: qty <item> <n>")
		return
	}
	itemID, err := parseID(args[0])
	if err != nil {
		t.printErr(err)
		return
	}
	qty, err := strconv.Atoi(args[1])
	if err != nil {
		t.printf("invalid quantity %q", args[1])
		return
	}

	if qty < 1 {
		confirm, ok := t.readLine("remove line? y/n")
		if !ok || confirm != "y" {
			return
		}
		res := t.sess.Orders.RemoveItem(ctx, itemID)
		if res.Err != nil {
			t.printErr(res.Err)
			return
		}
		t.printOrder(res.Order)
		return
	}

	res := t.sess.Orders.UpdateItemQuantity(ctx, itemID, qty)
	if res.Err != nil {
		t.printErr(res.Err)
	}
	if res.Applied && res.Order != nil {
		t.printOrder(res.Order)
	}
}

func (t *Terminal) removeItem(ctx context.Context, args []string) {
	if len(args) != 1 {
		t.printf("usage: rm <item>")
		return
	}
	itemID, err := parseID(args[0])
	if err != nil {
		t.printErr(err)
		return
	}
	res := t.sess.Orders.RemoveItem(ctx, itemID)
	if res.Err != nil {
		t.printErr(res.Err)
		return
	}
	t.printOrder(res.Order)
}

// applyDiscount validates the request against the displayed cart total
// before any network call; the backend revalidates on its side.
func (t *Terminal) applyDiscount(ctx context.Context, args []string) {
	if len(args) < 3 {
		t.printf("usage: disc percent|amount <value> <reason>")
		return
	}

	var req order.DiscountRequest
	switch args[0] {
	case "percent":
		value, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			t.printf("invalid percentage %q", args[1])
			return
		}
		req = order.DiscountRequest{Type: order.DiscountPercentage, Value: value}
	case "amount":
		amount, err := money.Parse(args[1])
		if err != nil {
			t.printErr(err)
			return
		}
		req = order.DiscountRequest{Type: order.DiscountAmount, Value: int64(amount)}
	default:
		t.printf("discount type must be percent or amount")
		return
	}
	req.Reason = strings.Join(args[2:], " ")

	if err := req.Validate(t.sess.Orders.CartTotal()); err != nil {
		t.printErr(err)
		return
	}

	res := t.sess.Orders.ApplyDiscount(ctx, req)
	if res.Err != nil {
		t.printErr(res.Err)
	}
	if res.Applied && res.Order != nil {
		t.printOrder(res.Order)
	}
}

func (t *Terminal) closeOrder(ctx context.Context, args []string) bool {
	if len(args) != 1 {
		t.printf("usage: close cash|card")
		return false
	}
	var method order.PaymentMethod
	switch args[0] {
	case "cash":
		method = order.PaymentCash
	case "card":
		method = order.PaymentCreditCard
	default:
		t.printf("payment method must be cash or card")
		return false
	}

	res := t.sess.Orders.Close(ctx, method)
	if res.Err != nil {
		t.printErr(res.Err)
		return false
	}
	t.printf("order closed (%s)", args[0])
	return true
}

func (t *Terminal) expensesScreen(ctx context.Context) (auth.Route, bool) {
	t.printf("-- expenses --")
	t.listExpenses(ctx)
	t.printf("commands: list, add <amount> cash|card <description>, del <id>, back")
	for {
		line, ok := t.readLine("expenses")
		if !ok {
			return "", false
		}
		verb, args := fields(line)
		switch verb {
		case "list":
			t.listExpenses(ctx)
		case "add":
			if len(args) < 3 {
				t.printf("usage: add <amount> cash|card <description>")
				continue
			}
			amount, err := money.Parse(args[0])
			if err != nil {
				t.printErr(err)
				continue
			}
			if amount.IsNegative() {
				t.printf("amount must not be negative")
				continue
			}
			var method finance.PaymentMethod
			switch args[1] {
			case "cash":
				method = finance.PaymentCash
			case "card":
				method = finance.PaymentCreditCard
			default:
				t.printf("payment method must be cash or card")
				continue
			}
			exp, err := t.sess.Expenses.Add(ctx, finance.ExpenseRequest{
				Amount:        amount,
				PaymentMethod: method,
				Description:   strings.Join(args[2:], " "),
			})
			if err != nil {
				t.printErr(err)
				continue
			}
			t.printf("expense #%d recorded: %s", exp.ID, exp.Amount)
		case "del":
			if len(args) != 1 {
				t.printf("usage: del <id>")
				continue
			}
			id, err := parseID(args[0])
			if err != nil {
				t.printErr(err)
				continue
			}
			if err := t.sess.Expenses.Delete(ctx, id); err != nil {
				t.printErr(err)
				continue
			}
			t.printf("expense #%d deleted", id)
		case "back":
			return auth.RouteHome, true
		case "quit":
			return "", false
		case "":
		default:
			t.printf("unknown command %q", verb)
		}
	}
}

func (t *Terminal) listExpenses(ctx context.Context) {
	expenses, err := t.sess.Expenses.List(ctx)
	if err != nil {
		t.printErr(err)
		return
	}
	if len(expenses) == 0 {
		t.printf("no expenses recorded")
		return
	}
	for _, e := range expenses {
		t.printf("#%d  %-8s %-6s %s", e.ID, e.Amount, e.PaymentMethod, e.Description)
	}
}

func (t *Terminal) reportsScreen(ctx context.Context) (auth.Route, bool) {
	t.printf("-- reports --")
	t.printf("commands: today, top, history, back")
	for {
		line, ok := t.readLine("reports")
		if !ok {
			return "", false
		}
		switch line {
		case "today":
			report, err := t.sess.Reports.Daily(ctx, time.Now().Format("2006-01-02"), "active")
			if err != nil {
				t.printErr(err)
				continue
			}
			t.printReport(report)
		case "top":
			stats, err := t.sess.Reports.ProductSales(ctx, time.Now().Format("2006-01-02"), "active")
			if err != nil {
				t.printErr(err)
				continue
			}
			if len(stats) == 0 {
				t.printf("no sales recorded yet")
				continue
			}
			for _, s := range stats {
				t.printf("%-24s sold=%d revenue=%s", s.ProductName, s.QuantitySold, s.TotalRevenue)
			}
		case "history":
			history, err := t.sess.Reports.History(ctx)
			if err != nil {
				t.printErr(err)
				continue
			}
			for _, r := range history {
				t.printf("%s  orders=%d sales=%s net=%s", r.ReportDate, r.TotalOrders, r.TotalSales, r.NetProfit)
			}
		case "back":
			return auth.RouteHome, true
		case "quit":
			return "", false
		case "":
		default:
			t.printf("unknown command %q", line)
		}
	}
}

func (t *Terminal) catalogScreen(ctx context.Context) (auth.Route, bool) {
	t.printf("-- catalog --")
	t.printf("commands: products, categories, addp <category> <name> <price>, delp <id>,")
	t.printf("          addc <name>, delc <id>, back")
	for {
		line, ok := t.readLine("catalog")
		if !ok {
			return "", false
		}
		verb, args := fields(line)
		switch verb {
		case "products":
			t.printMenu(ctx)
		case "categories":
			if err := t.sess.Catalog.Refresh(ctx); err != nil {
				t.printErr(err)
				continue
			}
			for _, c := range t.sess.Catalog.Categories() {
				t.printf("#%d  %s", c.ID, c.Name)
			}
		case "addp":
			if len(args) != 3 {
				t.printf("usage: addp <category> <name> <price>")
				continue
			}
			categoryID, err := parseID(args[0])
			if err != nil {
				t.printErr(err)
				continue
			}
			price, err := money.Parse(args[2])
			if err != nil {
				t.printErr(err)
				continue
			}
			p, err := t.sess.Catalog.CreateProduct(ctx, catalog.ProductRequest{
				CategoryID:  categoryID,
				Name:        args[1],
				Price:       price,
				IsAvailable: true,
			})
			if err != nil {
				t.printErr(err)
				continue
			}
			t.printf("product #%d %s created", p.ID, p.Name)
		case "delp":
			if len(args) != 1 {
				t.printf("usage: delp <id>")
				continue
			}
			id, err := parseID(args[0])
			if err != nil {
				t.printErr(err)
				continue
			}
			if err := t.sess.Catalog.DeleteProduct(ctx, id); err != nil {
				t.printErr(err)
				continue
			}
			t.printf("product #%d deleted", id)
		case "addc":
			if len(args) < 1 {
				t.printf("usage: addc <name>")
				continue
			}
			c, err := t.sess.Catalog.CreateCategory(ctx, catalog.CategoryRequest{
				Name:     strings.Join(args, " "),
				IsActive: true,
			})
			if err != nil {
				t.printErr(err)
				continue
			}
			t.printf("category #%d %s created", c.ID, c.Name)
		case "delc":
			if len(args) != 1 {
				t.printf("usage: delc <id>")
				continue
			}
			id, err := parseID(args[0])
			if err != nil {
				t.printErr(err)
				continue
			}
			if err := t.sess.Catalog.DeleteCategory(ctx, id); err != nil {
				t.printErr(err)
				continue
			}
			t.printf("category #%d deleted", id)
		case "back":
			return auth.RouteHome, true
		case "quit":
			return "", false
		case "":
		default:
			t.printf("unknown command %q", verb)
		}
	}
}

func (t *Terminal) tableAdminScreen(ctx context.Context) (auth.Route, bool) {
	t.printf("-- table layout --")
	t.printTables(t.sess.Tables.Tables())
	t.printf("commands: list, add <name> [section], ren <id> <name>, del <id>, back")
	for {
		line, ok := t.readLine("layout")
		if !ok {
			return "", false
		}
		verb, args := fields(line)
		switch verb {
		case "list":
			if err := t.sess.Tables.Refresh(ctx); err != nil {
				t.printErr(err)
				continue
			}
			t.printTables(t.sess.Tables.Tables())
		case "add":
			if len(args) < 1 {
				t.printf("usage: add <name> [section]")
				continue
			}
			req := table.Request{Name: args[0]}
			if len(args) > 1 {
				req.Section = strings.Join(args[1:], " ")
			}
			tbl, err := t.sess.Tables.Create(ctx, req)
			if err != nil {
				t.printErr(err)
				continue
			}
			t.printf("table #%d %s created", tbl.ID, tbl.Name)
		case "ren":
			if len(args) < 2 {
				t.printf("usage: ren <id> <name>")
				continue
			}
			id, err := parseID(args[0])
			if err != nil {
				t.printErr(err)
				continue
			}
			tbl, err := t.sess.Tables.Update(ctx, id, table.Request{Name: strings.Join(args[1:], " ")})
			if err != nil {
				t.printErr(err)
				continue
			}
			t.printf("table #%d renamed to %s", tbl.ID, tbl.Name)
		case "del":
			if len(args) != 1 {
				t.printf("usage: del <id>")
				continue
			}
			id, err := parseID(args[0])
			if err != nil {
				t.printErr(err)
				continue
			}
			if err := t.sess.Tables.Delete(ctx, id); err != nil {
				t.printErr(err)
				continue
			}
			t.printf("table #%d deleted", id)
		case "back":
			return auth.RouteHome, true
		case "quit":
			return "", false
		case "":
		default:
			t.printf("unknown command %q", verb)
		}
	}
}

func (t *Terminal) usersScreen(ctx context.Context) (auth.Route, bool) {
	t.printf("-- users --")
	t.printf("commands: list, add <name> admin|waiter <pin>, pin <id> <pin>, del <id>, back")
	for {
		line, ok := t.readLine("users")
		if !ok {
			return "", false
		}
		verb, args := fields(line)
		switch verb {
		case "list":
			users, err := t.sess.Users.List(ctx)
			if err != nil {
				t.printErr(err)
				continue
			}
			for _, u := range users {
				active := "active"
				if !u.IsActive {
					active = "inactive"
				}
				t.printf("#%d  %-12s %-6s %s", u.ID, u.Name, u.Role, active)
			}
		case "add":
			if len(args) != 3 {
				t.printf("usage: add <name> admin|waiter <pin>")
				continue
			}
			role := auth.Role(args[1])
			if role != auth.RoleAdmin && role != auth.RoleWaiter {
				t.printf("role must be admin or waiter")
				continue
			}
			u, err := t.sess.Users.Create(ctx, auth.UserRequest{
				Name:     args[0],
				Role:     role,
				PinCode:  args[2],
				IsActive: true,
			})
			if err != nil {
				t.printErr(err)
				continue
			}
			t.printf("user #%d %s created", u.ID, u.Name)
		case "pin":
			if len(args) != 2 {
				t.printf("usage: pin <id> <pin>")
				continue
			}
			id, err := parseID(args[0])
			if err != nil {
				t.printErr(err)
				continue
			}
			if err := t.sess.Users.UpdatePin(ctx, id, args[1]); err != nil {
				t.printErr(err)
				continue
			}
			t.printf("pin updated")
		case "del":
			if len(args) != 1 {
				t.printf("usage: del <id>")
				continue
			}
			id, err := parseID(args[0])
			if err != nil {
				t.printErr(err)
				continue
			}
			if err := t.sess.Users.Delete(ctx, id); err != nil {
				t.printErr(err)
				continue
			}
			t.printf("user #%d deleted", id)
		case "back":
			return auth.RouteHome, true
		case "quit":
			return "", false
		case "":
		default:
			t.printf("unknown command %q", verb)
		}
	}
}

func (t *Terminal) printMenu(ctx context.Context) {
	if len(t.sess.Catalog.Products()) == 0 {
		if err := t.sess.Catalog.Refresh(ctx); err != nil {
			t.printErr(err)
			return
		}
	}
	for _, c := range t.sess.Catalog.Categories() {
		t.printf("[%s]", c.Name)
		for _, p := range t.sess.Catalog.ProductsByCategory(c.ID) {
			marker := ""
			if !p.IsAvailable {
				marker = " (unavailable)"
			}
			t.printf("  #%d  %-24s %s%s", p.ID, p.Name, p.Price, marker)
		}
	}
}

func (t *Terminal) printTables(tables []table.Table) {
	if len(tables) == 0 {
		t.printf("no tables configured")
		return
	}
	for _, tbl := range tables {
		status := string(tbl.Status)
		if tbl.OpenOrderCount > 0 {
			status = fmt.Sprintf("%s (%d open)", status, tbl.OpenOrderCount)
		}
		t.printf("#%d  %-12s %s", tbl.ID, tbl.Name, status)
	}
}

func (t *Terminal) printOrder(o *order.Order) {
	t.printf("-- order %s (table %d) --", o.OrderNumber, o.TableID)
	if len(o.Items) == 0 {
		t.printf("(empty)")
	}
	for _, it := range o.Items {
		note := ""
		if it.Note != "" {
			note = "  [" + it.Note + "]"
		}
		t.printf("#%d  %dx %-20s %s%s", it.ID, it.Quantity, it.ProductName, it.Subtotal, note)
	}
	t.printf("subtotal %s  tax %s", o.Subtotal, o.TaxAmount)
	if o.DiscountAmount > 0 {
		t.printf("discount -%s (%s)", o.DiscountAmount, o.DiscountReason)
	}
	t.printf("total %s", o.TotalAmount)
}

func (t *Terminal) printReport(r *finance.DailyReport) {
	t.printf("-- daily report %s --", r.ReportDate)
	t.printf("orders         %d", r.TotalOrders)
	t.printf("total sales    %s", r.TotalSales)
	t.printf("cash sales     %s", r.CashSales)
	t.printf("card sales     %s", r.PosSales)
	t.printf("expenses       %s", r.TotalExpenses)
	t.printf("net            %s", r.NetProfit)
}
