package shell

import (
	"fmt"

	"github.com/abiosoft/ishell"
	"github.com/op/go-logging"
	"github.com/tryanzu/cart/modules/cart"
)

var log = logging.MustGetLogger("shell")

// RunShell blocks on an interactive session over cmd.Cart. ishell runs one
// command at a time, so the cart sees a single actor.
func RunShell(cmd Commands) {
	shell := ishell.New()
	shell.Println("Cart Interactive Shell 0.1")
	cmd.Out = writer{shell}

	handlers := []struct {
		name, help string
		fn         func([]string) error
	}{
		{"list", "Show the cart.", cmd.List},
		{"add", "add <id> <price> [quantity] [title...]: put a product in the cart.", cmd.Add},
		{"inc", "inc <id>: one more unit.", cmd.Increment},
		{"dec", "dec <id>: one less unit, removing the line at zero.", cmd.Decrement},
		{"flush", "Write the cart to storage now.", cmd.Flush},
	}

	for _, h := range handlers {
		name, fn := h.name, h.fn
		shell.AddCmd(&ishell.Cmd{
			Name: h.name,
			Help: h.help,
			Func: func(c *ishell.Context) {
				cmd.Run(name, fn, c.Args)
			},
		})
	}

	// start shell
	shell.Run()
}

// Run executes one command and prints its failure, if any. A panicking
// command is reported and the session goes on.
func (cmd Commands) Run(name string, fn func([]string) error, args []string) {
	defer cmd.Reporter.Recover()

	if err := fn(args); err != nil {
		if cart.IsNotFound(err) {
			fmt.Fprintln(cmd.Out, err.Error())
			return
		}
		log.Errorf("%s: %v", name, err)
		fmt.Fprintln(cmd.Out, "error:", err)
	}
}

type writer struct {
	shell *ishell.Shell
}

func (w writer) Write(p []byte) (int, error) {
	w.shell.Print(string(p))
	return len(p), nil
}
