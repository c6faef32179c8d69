// Command foodhub drives the client screens from a terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"foodhub/config"
	"foodhub/internal/api"
	"foodhub/internal/app"
	"foodhub/internal/logging"
	"foodhub/internal/screen/home"
	"foodhub/internal/screen/ordersuccess"
)

const usage = `usage: foodhub [flags] <command> [args]

commands:
  status                         show the start destination
  signup <name> <email> <pass>   create an account
  signin <email> <pass>          sign in
  logout                         forget the stored session
  home                           categories and nearby restaurants
  menu <restaurant-id>           food items of a restaurant
  add <restaurant-id> <item-id> <qty>
  cart                           show the cart
  remove <cart-item-id>
  addresses                      saved addresses
  locate <lat> <lon>             reverse geocode and store an address
  checkout <address-id>          pay for the cart
  orders                         upcoming and past orders
  order <order-id>               order details
  notifications                  notification inbox
  read <notification-id>         mark a notification read
  listen                         register this device and route its push messages from Kafka
`

func main() {
	cfg := config.Load()
	apiURL := flag.String("api", cfg.APIURL, "backend base URL")
	lat := flag.Float64("lat", home.DefaultLatitude, "device latitude")
	lon := flag.Float64("lon", home.DefaultLongitude, "device longitude")
	qrPath := flag.String("qr", "", "write the order tracking QR code to this PNG file on checkout")
	timeout := flag.Duration("timeout", 30*time.Second, "HTTP client timeout")
	deviceID := flag.String("device", defaultDeviceID(), "push token of this device")
	metricsAddr := flag.String("metrics-addr", "", "serve client metrics on this address while listening")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage); flag.PrintDefaults() }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := cfg.SessionStore()
	client := api.NewClient(*apiURL, &http.Client{Timeout: *timeout}, store)
	ctrl := app.NewController(store, client, app.FixedLocation{Latitude: *lat, Longitude: *lon}, ordersuccess.DefaultQRGenerator{})
	defer ctrl.Shutdown()

	cli := &cli{ctrl: ctrl, cfg: cfg, qrPath: *qrPath, deviceID: *deviceID, metricsAddr: *metricsAddr, out: os.Stdout}
	if err := cli.run(ctx, flag.Arg(0), flag.Args()[1:]); err != nil {
		if errors.Is(err, errUsage) {
			flag.Usage()
			os.Exit(2)
		}
		logging.New("cli").WithError(err).Error("command failed")
		os.Exit(1)
	}
}

var errUsage = errors.New("bad usage")

func defaultDeviceID() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		return "foodhub-cli"
	}
	return host
}

func atoi(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number: %w", s, errUsage)
	}
	return n, nil
}

func atof(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number: %w", s, errUsage)
	}
	return f, nil
}
