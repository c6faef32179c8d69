package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"foodhub/config"
	"foodhub/internal/app"
	"foodhub/internal/domain"
	"foodhub/internal/logging"
	"foodhub/internal/metrics"
	"foodhub/internal/push"
	"foodhub/internal/screen/addresses"
	"foodhub/internal/screen/auth"
	"foodhub/internal/screen/cart"
	"foodhub/internal/screen/fooddetails"
	"foodhub/internal/screen/home"
	"foodhub/internal/screen/notifications"
	"foodhub/internal/screen/orders"
	"foodhub/internal/screen/restaurant"
)

const eventWait = time.Minute

type cli struct {
	ctrl        *app.Controller
	cfg         config.Config
	qrPath      string
	deviceID    string
	metricsAddr string
	out         io.Writer
}

func (c *cli) run(ctx context.Context, command string, args []string) error {
	need := func(n int) error {
		if len(args) != n {
			return fmt.Errorf("%s takes %d argument(s): %w", command, n, errUsage)
		}
		return nil
	}

	switch command {
	case "status":
		fmt.Fprintln(c.out, c.ctrl.Launch(ctx))
		return nil
	case "signup":
		if err := need(3); err != nil {
			return err
		}
		return c.signUp(ctx, args[0], args[1], args[2])
	case "signin":
		if err := need(2); err != nil {
			return err
		}
		return c.signIn(ctx, args[0], args[1])
	case "logout":
		route, err := c.ctrl.Logout(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.out, route)
		return nil
	}

	// everything below needs a session
	if c.ctrl.Launch(ctx) != app.RouteHome {
		return errors.New("not signed in, run: foodhub signin <email> <pass>")
	}

	switch command {
	case "home":
		return c.home()
	case "menu":
		if err := need(1); err != nil {
			return err
		}
		return c.menu(args[0])
	case "add":
		if err := need(3); err != nil {
			return err
		}
		quantity, err := atoi(args[2])
		if err != nil {
			return err
		}
		return c.add(ctx, args[0], args[1], quantity)
	case "cart":
		return c.cart()
	case "remove":
		if err := need(1); err != nil {
			return err
		}
		return c.remove(ctx, args[0])
	case "addresses":
		return c.addresses()
	case "locate":
		if err := need(2); err != nil {
			return err
		}
		lat, err := atof(args[0])
		if err != nil {
			return err
		}
		lon, err := atof(args[1])
		if err != nil {
			return err
		}
		return c.locate(lat, lon)
	case "checkout":
		if err := need(1); err != nil {
			return err
		}
		return c.checkout(ctx, args[0])
	case "orders":
		return c.orders()
	case "order":
		if err := need(1); err != nil {
			return err
		}
		return c.order(args[0])
	case "notifications":
		return c.notifications()
	case "read":
		if err := need(1); err != nil {
			return err
		}
		return c.read(ctx, args[0])
	case "listen":
		return c.listen(ctx)
	default:
		return fmt.Errorf("unknown command %q: %w", command, errUsage)
	}
}

// await returns the first event on ch that satisfies done.
func await[E any](ctx context.Context, ch <-chan E, done func(E) bool) (E, error) {
	ctx, cancel := context.WithTimeout(ctx, eventWait)
	defer cancel()
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				var zero E
				return zero, errors.New("screen closed")
			}
			if done(ev) {
				return ev, nil
			}
		case <-ctx.Done():
			var zero E
			return zero, ctx.Err()
		}
	}
}

func authOutcome(ev auth.Event) bool {
	return ev.Kind == auth.NavigateToHome || ev.Kind == auth.ShowErrorDialog
}

func (c *cli) finishAuth(ev auth.Event) error {
	if ev.Kind == auth.ShowErrorDialog {
		return fmt.Errorf("%s: %s", ev.Title, ev.Message)
	}
	fmt.Fprintln(c.out, "signed in")
	return nil
}

func (c *cli) signUp(ctx context.Context, name, email, password string) error {
	screen := c.ctrl.OpenSignUp()
	defer c.ctrl.Close(app.RouteSignUp)

	events := screen.Subscribe(ctx, 1)
	screen.SetName(name)
	screen.SetEmail(email)
	screen.SetPassword(password)
	screen.Submit()

	ev, err := await(ctx, events, authOutcome)
	if err != nil {
		return err
	}
	return c.finishAuth(ev)
}

func (c *cli) signIn(ctx context.Context, email, password string) error {
	screen := c.ctrl.OpenSignIn()
	defer c.ctrl.Close(app.RouteSignIn)

	events := screen.Subscribe(ctx, 1)
	screen.SetEmail(email)
	screen.SetPassword(password)
	screen.Submit()

	ev, err := await(ctx, events, authOutcome)
	if err != nil {
		return err
	}
	return c.finishAuth(ev)
}

func (c *cli) table() *tabwriter.Writer {
	return tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
}

func (c *cli) home() error {
	screen := c.ctrl.OpenHome()
	defer c.ctrl.Close(app.RouteHome)
	screen.Sync()

	st := screen.Current()
	if st.Status != home.StatusSuccess {
		fmt.Fprintln(c.out, "nothing nearby")
		return nil
	}

	w := c.table()
	fmt.Fprintln(w, "CATEGORY\tNAME")
	for _, category := range st.Categories {
		fmt.Fprintf(w, "%s\t%s\n", category.ID, category.Name)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "RESTAURANT\tNAME\tDISTANCE")
	for _, r := range st.Restaurants {
		fmt.Fprintf(w, "%s\t%s\t%.1f km\n", r.ID, r.Name, r.Distance)
	}
	return w.Flush()
}

func (c *cli) menu(restaurantID string) error {
	screen := c.ctrl.OpenRestaurant(restaurantID, "", "")
	defer c.ctrl.Close(app.RouteRestaurant)
	screen.Sync()

	st := screen.Current()
	if st.Status == restaurant.StatusError {
		return fmt.Errorf("%s: %s", st.ErrorTitle, st.ErrorMessage)
	}
	w := c.table()
	fmt.Fprintln(w, "ITEM\tNAME\tPRICE")
	for _, item := range st.FoodItems {
		fmt.Fprintf(w, "%s\t%s\t%s\n", item.ID, item.Name, domain.FormatCurrency(item.Price))
	}
	return w.Flush()
}

func (c *cli) add(ctx context.Context, restaurantID, itemID string, quantity int) error {
	screen := c.ctrl.OpenFoodDetails(domain.FoodItem{ID: itemID, RestaurantID: restaurantID})
	defer c.ctrl.Close(app.RouteFoodDetails)

	events := screen.Subscribe(ctx, 1)
	for i := domain.MinQuantity; i < quantity; i++ {
		screen.Increment()
	}
	screen.AddToCart()

	ev, err := await(ctx, events, func(ev fooddetails.Event) bool {
		return ev.Kind == fooddetails.OnAddToCart || ev.Kind == fooddetails.ShowErrorDialog
	})
	if err != nil {
		return err
	}
	if ev.Kind == fooddetails.ShowErrorDialog {
		return errors.New(ev.Message)
	}

	count := c.ctrl.OpenCart()
	defer c.ctrl.Close(app.RouteCart)
	count.Sync()
	fmt.Fprintf(c.out, "added %d, cart has %d item(s)\n", screen.Current().Quantity, count.ItemCount())
	return nil
}

func (c *cli) printCart(st cart.State) error {
	if st.Status == cart.StatusError {
		return errors.New(st.ErrorMessage)
	}
	w := c.table()
	fmt.Fprintln(w, "LINE\tITEM\tQTY\tTOTAL")
	for _, line := range st.Cart.Items {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", line.ID, line.MenuItem.Name, line.Quantity, domain.FormatCurrency(line.LineTotal()))
	}
	details := st.Cart.CheckoutDetails
	fmt.Fprintf(w, "\t\tsubtotal\t%s\n", domain.FormatCurrency(details.SubTotal))
	fmt.Fprintf(w, "\t\ttax\t%s\n", domain.FormatCurrency(details.Tax))
	fmt.Fprintf(w, "\t\tdelivery\t%s\n", domain.FormatCurrency(details.DeliveryFee))
	fmt.Fprintf(w, "\t\ttotal\t%s\n", domain.FormatCurrency(details.TotalAmount))
	return w.Flush()
}

func (c *cli) cart() error {
	screen := c.ctrl.OpenCart()
	defer c.ctrl.Close(app.RouteCart)
	screen.Sync()
	return c.printCart(screen.Current())
}

func (c *cli) remove(ctx context.Context, cartItemID string) error {
	screen := c.ctrl.OpenCart()
	defer c.ctrl.Close(app.RouteCart)
	screen.Sync()

	for _, line := range screen.Current().Cart.Items {
		if line.ID != cartItemID {
			continue
		}
		events := screen.Subscribe(ctx, 1)
		screen.Remove(line)
		screen.Sync()
		select {
		case ev := <-events:
			if ev.Kind == cart.OnItemRemovedError {
				return fmt.Errorf("%s: %s", ev.Title, ev.Message)
			}
		default:
		}
		return c.printCart(screen.Current())
	}
	return fmt.Errorf("cart line %s not found", cartItemID)
}

func (c *cli) addresses() error {
	screen := c.ctrl.OpenAddressList()
	defer c.ctrl.Close(app.RouteAddressList)
	screen.Sync()

	st := screen.Current()
	if st.Status == addresses.ListError {
		return errors.New(st.ErrorMessage)
	}
	w := c.table()
	fmt.Fprintln(w, "ID\tADDRESS\tCITY\tZIP")
	for _, a := range st.Addresses {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.ID, a.AddressLine1, a.City, a.ZipCode)
	}
	return w.Flush()
}

func (c *cli) locate(lat, lon float64) error {
	screen := c.ctrl.OpenAddAddress()
	defer c.ctrl.Close(app.RouteAddAddress)

	screen.Geocode(lat, lon)
	screen.Store()
	screen.Sync()

	st := screen.Current()
	if st.Status != addresses.AddSuccess {
		return errors.New(st.ErrorMessage)
	}
	fmt.Fprintf(c.out, "stored %s, %s %s\n", st.Address.AddressLine1, st.Address.City, st.Address.ZipCode)
	return nil
}

func (c *cli) checkout(ctx context.Context, addressID string) error {
	list := c.ctrl.OpenAddressList()
	list.Sync()
	var picked *domain.Address
	for _, a := range list.Current().Addresses {
		if a.ID == addressID {
			picked = &a
			break
		}
	}
	if picked == nil {
		c.ctrl.Close(app.RouteAddressList)
		return fmt.Errorf("address %s not found", addressID)
	}
	list.Select(*picked)
	list.Sync()
	c.ctrl.Close(app.RouteAddressList)

	screen := c.ctrl.OpenCart()
	defer c.ctrl.Close(app.RouteCart)
	events := screen.Subscribe(ctx, 4)
	screen.Checkout()

	isOutcome := func(ev cart.Event) bool {
		return ev.Kind == cart.OnInitiatePayment || ev.Kind == cart.OrderSuccess || ev.Kind == cart.ShowErrorDialog
	}
	ev, err := await(ctx, events, isOutcome)
	if err != nil {
		return err
	}
	if ev.Kind == cart.ShowErrorDialog {
		return fmt.Errorf("%s: %s", ev.Title, ev.Message)
	}

	fmt.Fprintf(c.out, "charging %s %s\n", domain.FormatCurrency(ev.Intent.Amount), ev.Intent.Currency)
	screen.PaymentSucceeded()
	if ev, err = await(ctx, events, isOutcome); err != nil {
		return err
	}
	if ev.Kind == cart.ShowErrorDialog {
		return fmt.Errorf("%s: %s", ev.Title, ev.Message)
	}

	success := c.ctrl.OpenOrderSuccess(ev.OrderID)
	defer c.ctrl.Close(app.RouteOrderSuccess)
	success.Sync()
	fmt.Fprintf(c.out, "order %s placed\n", ev.OrderID)

	if c.qrPath != "" && len(success.Current().QRCode) > 0 {
		if err := os.WriteFile(c.qrPath, success.Current().QRCode, 0o644); err != nil {
			return fmt.Errorf("write tracking code: %w", err)
		}
		fmt.Fprintf(c.out, "tracking code written to %s\n", c.qrPath)
	}
	return nil
}

func (c *cli) orders() error {
	screen := c.ctrl.OpenOrders()
	defer c.ctrl.Close(app.RouteOrders)
	screen.Sync()

	st := screen.Current()
	if st.Status == orders.ListError {
		return errors.New(st.ErrorMessage)
	}
	w := c.table()
	for _, tab := range []orders.Tab{orders.Upcoming, orders.History} {
		fmt.Fprintf(w, "%s\n", tab)
		for _, o := range st.Tab(tab) {
			fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", o.ID, o.Restaurant.Name, o.Status, domain.FormatCurrency(o.TotalAmount))
		}
	}
	return w.Flush()
}

func (c *cli) order(orderID string) error {
	screen := c.ctrl.OpenOrderDetails(orderID)
	defer c.ctrl.Close(app.RouteOrderDetails)
	screen.Sync()

	st := screen.Current()
	if st.Status != orders.DetailsSuccess {
		return errors.New(st.ErrorMessage)
	}
	fmt.Fprintf(c.out, "order %s from %s: %s\n", st.Order.ID, st.Order.Restaurant.Name, st.Stage)
	for _, item := range st.Order.Items {
		fmt.Fprintf(c.out, "  %d x %s\n", item.Quantity, item.MenuItemName)
	}
	fmt.Fprintf(c.out, "total %s\n", domain.FormatCurrency(st.Order.TotalAmount))
	return nil
}

func (c *cli) notifications() error {
	screen := c.ctrl.OpenNotifications()
	defer c.ctrl.Close(app.RouteNotifications)
	screen.Sync()

	st := screen.Current()
	if st.Status == notifications.StatusError {
		return errors.New(st.ErrorMessage)
	}
	fmt.Fprintf(c.out, "%d unread\n", screen.UnreadCount())
	w := c.table()
	for _, n := range st.Notifications {
		marker := " "
		if !n.IsRead {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %s\t%s\t%s\n", marker, n.ID, n.Title, n.Message)
	}
	return w.Flush()
}

// read marks a notification read and follows its order deep link.
func (c *cli) read(ctx context.Context, notificationID string) error {
	screen := c.ctrl.OpenNotifications()
	defer c.ctrl.Close(app.RouteNotifications)
	screen.Sync()

	for _, n := range screen.Current().Notifications {
		if n.ID != notificationID {
			continue
		}
		events := screen.Subscribe(ctx, 1)
		screen.Read(n)
		ev, err := await(ctx, events, func(notifications.Event) bool { return true })
		if err != nil {
			return err
		}
		screen.Sync()
		fmt.Fprintf(c.out, "%d unread\n", screen.UnreadCount())
		if ev.OrderID == "" {
			return nil
		}
		return c.order(ev.OrderID)
	}
	return fmt.Errorf("notification %s not found", notificationID)
}

func (c *cli) listen(ctx context.Context) error {
	if c.cfg.KafkaBroker == "" {
		return errors.New("KAFKA_BROKER is not set")
	}
	recipient, err := push.RegisterToken(ctx, c.ctrl.API, c.deviceID)
	if err != nil {
		return err
	}
	reader := c.cfg.NewKafkaReader(c.cfg.PushGroupFor(c.deviceID))
	defer reader.Close()

	if c.metricsAddr != "" {
		srv := &http.Server{Addr: c.metricsAddr, Handler: metrics.Handler()}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logging.New("cli").WithError(err).Warn("metrics endpoint stopped")
			}
		}()
		defer srv.Close()
	}

	events := c.ctrl.Subscribe(ctx, 8)
	go func() {
		for ev := range events {
			fmt.Fprintf(c.out, "tap -> order %s\n", ev.OrderID)
		}
	}()

	consumer := push.NewConsumer(reader, push.NewRouter(push.NewLogNotifier()), recipient)
	consumer.OnRouted = func(n push.LocalNotification) {
		fmt.Fprintf(c.out, "[%s] %s: %s\n", n.Channel, n.Title, n.Body)
		c.ctrl.HandleIntent(ctx, n.Extras)
	}
	consumer.Start(ctx)
	return nil
}
