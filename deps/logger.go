package deps

import (
	"context"
	"os"
	"strings"

	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("deps")

var format = logging.MustStringFormatter(
	`%{color}%{time:15:04:05.000} %{module}	%{shortfile}	▶ %{level:.4s} %{id:03x}%{color:reset} %{message}`,
)

// IgniteLogger sends every module logger to stderr at the configured level
// and re-applies the level whenever the config reloads.
func IgniteLogger(ctx context.Context, container Deps) (Deps, error) {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	formatter := logging.NewBackendFormatter(backend, format)
	leveled := logging.AddModuleLevel(formatter)
	leveled.SetLevel(logging.INFO, "")
	logging.SetBackend(leveled)

	if c := container.Config(); c != nil {
		leveled.SetLevel(parseLevel(c.String("log.level")), "")
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case <-c.Reload:
					level := parseLevel(c.String("log.level"))
					leveled.SetLevel(level, "")
					log.Infof("log level set to %s", level)
				}
			}
		}()
	}

	container.LoggerProvider = log
	return container, nil
}

func parseLevel(lvl string) logging.Level {
	level, err := logging.LogLevel(strings.ToUpper(strings.TrimSpace(lvl)))
	if err != nil {
		return logging.INFO
	}
	return level
}
