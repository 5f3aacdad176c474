package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/op/go-logging"
	"github.com/spf13/cobra"
	"github.com/subosito/gotenv"
	"github.com/tryanzu/cart/core/shell"
	"github.com/tryanzu/cart/deps"
	"github.com/tryanzu/cart/modules/api"
	"github.com/tryanzu/cart/modules/cart"
	"golang.org/x/sync/errgroup"
)

var log = logging.MustGetLogger("main")

func main() {
	// .env values are visible to config env overrides.
	if err := gotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintln(os.Stderr, err)
	}

	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "./config.hjson"
	}

	var rootCmd = &cobra.Command{
		Use:          "cart",
		Short:        "Shopping cart with key-value persistence",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", configFile, "hjson config file")

	var cmdServe = &cobra.Command{
		Use:   "serve [address]",
		Short: "Starts API web server",
		Long: `Starts the cart HTTP API listening
		on http.address or the given address
		`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			container, err := deps.Bootstrap(ctx, configFile)
			if err != nil {
				return err
			}
			defer container.Close()

			bindTo := container.Config().String("http.address")
			if len(args) == 1 {
				bindTo = args[0]
			}

			module, err := api.Populate(container.Cart(), container.Reporter())
			if err != nil {
				return err
			}

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return module.Run(gctx, bindTo)
			})
			g.Go(func() error {
				if err := container.Config().Watch(gctx); err != nil {
					log.Warningf("config changes will not be picked up: %v", err)
				}
				<-gctx.Done()
				return nil
			})
			return g.Wait()
		},
	}

	var cmdShell = &cobra.Command{
		Use:   "shell",
		Short: "Starts interactive shell",
		Long: `Starts cart interactive shell
		with list, add, inc, dec and flush.
		`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := context.WithCancel(context.Background())
			defer stop()

			container, err := deps.Bootstrap(ctx, configFile)
			if err != nil {
				return err
			}
			defer container.Close()

			shell.RunShell(commands(container))
			return nil
		},
	}

	// once boots the cart, runs fn and flushes before exiting.
	once := func(fn func(shell.Commands, []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			ctx, stop := context.WithCancel(context.Background())
			defer stop()

			container, err := deps.Bootstrap(ctx, configFile)
			if err != nil {
				return err
			}
			defer container.Close()

			c := commands(container)
			c.Out = cmd.OutOrStdout()
			if err := fn(c, args); err != nil {
				return err
			}
			return container.Bridge().Flush(ctx)
		}
	}

	var cmdList = &cobra.Command{
		Use:   "list",
		Short: "Prints the cart",
		RunE:  once(shell.Commands.List),
	}

	var cmdAdd = &cobra.Command{
		Use:   "add <id> <price> [title]",
		Short: "Adds a product, or one more unit of it",
		Args:  cobra.RangeArgs(2, 3),
		RunE: once(func(c shell.Commands, args []string) error {
			price, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil || price < 0 {
				return fmt.Errorf("invalid price %q", args[1])
			}
			in := cart.AddInput{ID: args[0], Price: price, Quantity: quantity, Image: image}
			if len(args) == 3 {
				in.Title = args[2]
			}
			items, err := c.Cart.Add(in)
			if err != nil {
				return err
			}
			shell.Render(c.Out, items, c.Currency)
			return nil
		}),
	}
	cmdAdd.Flags().IntVarP(&quantity, "quantity", "q", 1, "units to add for a new product")
	cmdAdd.Flags().StringVar(&image, "image", "", "image url")

	var cmdInc = &cobra.Command{
		Use:   "inc <id>",
		Short: "Adds one unit of a product in the cart",
		Args:  cobra.ExactArgs(1),
		RunE:  once(shell.Commands.Increment),
	}

	var cmdDec = &cobra.Command{
		Use:   "dec <id>",
		Short: "Removes one unit of a product in the cart",
		Args:  cobra.ExactArgs(1),
		RunE:  once(shell.Commands.Decrement),
	}

	rootCmd.AddCommand(cmdServe, cmdShell, cmdList, cmdAdd, cmdInc, cmdDec)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var (
	quantity int
	image    string
)

func commands(container deps.Deps) shell.Commands {
	return shell.Commands{
		Cart:     container.Cart(),
		Storage:  container.Bridge(),
		Currency: container.Config().String("cart.currency"),
		Out:      os.Stdout,
		Reporter: container.Reporter(),
	}
}
