package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/lostandfound/lostandfound/internal/database"
	"github.com/lostandfound/lostandfound/internal/ledger"
	"github.com/lostandfound/lostandfound/internal/logger"
	"github.com/lostandfound/lostandfound/internal/matcher"
	"github.com/lostandfound/lostandfound/internal/notifier"
	"github.com/lostandfound/lostandfound/internal/server"
	"github.com/lostandfound/lostandfound/internal/trigger"
	"github.com/muesli/coral"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const dbname = "lostandfound.db"

var (
	version  = "dev"
	revision = "none"
	date     = "unknown"

	cfg    string
	amount int64
)

func main() {
	c := &coral.Command{
		Use:     "lostandfound",
		Short:   "Lost and found item matching server",
		Version: fmt.Sprintf("%s - build %.7s @ %s - %s", version, revision, date, runtime.Version()),
		Args:    coral.ExactArgs(0),
	}
	c.PersistentFlags().StringVarP(&cfg, "config", "c", "", "Configuration file")

	c.AddCommand(initCmd)
	c.AddCommand(reindexCmd)
	c.AddCommand(serverCmd)
	c.AddCommand(triggerCmd)

	awardCmd.Flags().Int64VarP(&amount, "amount", "a", 0, "Points to credit (defaults to ledger.found_award)")
	c.AddCommand(awardCmd)

	if err := c.Execute(); err != nil {
		logrus.Fatalf("%+v", err)
	}
}

func load() (*koanf.Koanf, error) {
	konf := koanf.New(".")
	err := konf.Load(confmap.Provider(map[string]any{
		"address":             "localhost:5000",
		"database_codec":      "msgpack",
		"log.level":           "info",
		"push.provider":       notifier.ProviderLog,
		"push.timeout":        "10s",
		"trigger.interval":    "2s",
		"trigger.batch_size":  100,
		"trigger.concurrency": 4,
		"trigger.deadline":    "1m",
		"trigger.strategy":    matcher.StrategyScan,
		"ledger.found_award":  ledger.FoundItemAward,
	}, "."), nil)
	if err != nil {
		return nil, err
	}

	if cfg != "" {
		if err := konf.Load(file.Provider(cfg), yaml.Parser()); err != nil {
			return nil, errors.Wrap(err, "could not load configuration")
		}
	}

	err = logger.Setup(logger.Config{
		Level:      konf.String("log.level"),
		File:       konf.String("log.file"),
		MaxSize:    konf.Int("log.max_size"),
		MaxBackups: konf.Int("log.max_backups"),
		MaxAge:     konf.Int("log.max_age"),
	})
	return konf, err
}

func dbnameWithPath(path string) string {
	if len(path) == 0 {
		return dbname
	}
	return filepath.Join(path, dbname)
}

func open(konf *koanf.Koanf) (database.Client, error) {
	db, err := database.StormOpen(dbnameWithPath(konf.String("database_path")), konf.String("database_codec"))
	return db, errors.Wrap(err, "could not open database")
}

// controller builds the trigger controller and its notification pipeline.
func controller(konf *koanf.Koanf, db database.Client) (*trigger.Controller, error) {
	finder, err := matcher.New(konf.String("trigger.strategy"))
	if err != nil {
		return nil, err
	}

	pusher, err := notifier.NewPusher(notifier.PusherConfig{
		Provider: konf.String("push.provider"),
		Endpoint: konf.String("push.endpoint"),
		Key:      konf.String("push.key"),
		Timeout:  konf.Duration("push.timeout"),
	})
	if err != nil {
		return nil, err
	}

	return trigger.NewController(db, finder, notifier.NewDispatcher(db, pusher)), nil
}

var (
	initCmd = &coral.Command{
		Use:   "init",
		Short: "Init the database",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			konf, err := load()
			if err != nil {
				return err
			}

			return database.StormInit(dbnameWithPath(konf.String("database_path")), konf.String("database_codec"))
		},
	}

	//
	reindexCmd = &coral.Command{
		Use:   "reindex",
		Short: "Reindex the database",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			konf, err := load()
			if err != nil {
				return err
			}

			return database.StormReIndex(dbnameWithPath(konf.String("database_path")), konf.String("database_codec"))
		},
	}

	//
	//
	serverCmd = &coral.Command{
		Use:   "server",
		Short: "Start server and trigger worker",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			konf, err := load()
			if err != nil {
				return err
			}

			db, err := open(konf)
			if err != nil {
				return err
			}
			defer db.Close()

			ctrl, err := controller(konf, db)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			worker := trigger.NewWorker(db, ctrl, trigger.WorkerConfig{
				BatchSize:   konf.Int("trigger.batch_size"),
				Interval:    konf.Duration("trigger.interval"),
				Concurrency: konf.Int("trigger.concurrency"),
				Deadline:    konf.Duration("trigger.deadline"),
			})
			done := make(chan struct{})
			go func() {
				defer close(done)
				if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					logrus.WithError(err).Error("trigger worker stopped")
				}
			}()

			engine := server.EchoEngine(server.Controller{
				Version:  version,
				Database: db,
				Ledger:   ledger.New(db, konf.Int64("ledger.found_award")),
			})
			engine.HideBanner = true
			server.PrintRoutes(engine)

			go func() {
				<-ctx.Done()
				shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := engine.Shutdown(shutdown); err != nil {
					logrus.WithError(err).Error("could not shutdown server")
				}
			}()

			err = serve(engine.Server, engine.Start, konf.String("address"))
			stop()
			<-done
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return errors.Wrap(err, "could not run server")
		},
	}

	//
	triggerCmd = &coral.Command{
		Use:   "trigger ITEM_ID",
		Short: "Run the matching trigger for an item",
		Args:  coral.ExactArgs(1),
		RunE: func(_ *coral.Command, args []string) error {
			konf, err := load()
			if err != nil {
				return err
			}

			db, err := open(konf)
			if err != nil {
				return err
			}
			defer db.Close()

			ctrl, err := controller(konf, db)
			if err != nil {
				return err
			}

			item, err := db.FindItem(args[0])
			if err != nil {
				return errors.Wrap(err, "could not find item")
			}

			ctx, cancel := context.WithTimeout(context.Background(), konf.Duration("trigger.deadline"))
			defer cancel()

			outcome, err := ctrl.OnItemCreated(ctx, item)
			if err != nil {
				return err
			}

			if !outcome.Matched() {
				fmt.Println("No match")
				return nil
			}
			fmt.Printf("Matched lost item %s (owner: %s, finder: %s)\n", outcome.Match.ID, outcome.Owner, outcome.Finder)
			return nil
		},
	}

	//
	awardCmd = &coral.Command{
		Use:   "award USER_ID",
		Short: "Credit points to a user",
		Args:  coral.ExactArgs(1),
		RunE: func(_ *coral.Command, args []string) error {
			konf, err := load()
			if err != nil {
				return err
			}

			db, err := open(konf)
			if err != nil {
				return err
			}
			defer db.Close()

			l := ledger.New(db, konf.Int64("ledger.found_award"))

			var total int64
			if amount == 0 {
				total, err = l.AwardFoundItem(args[0])
			} else {
				total, err = l.Award(args[0], amount)
			}
			if err != nil {
				return err
			}

			fmt.Println("Points: " + strconv.FormatInt(total, 10))
			return nil
		},
	}
)

func serve(srv *http.Server, start func(string) error, address string) error {
	logrus.Infof("Server listening on %s", address)

	parts := strings.Split(address, ":")
	if len(parts) == 2 && parts[0] == "unix" {
		socketFile := parts[1]
		if _, err := os.Stat(socketFile); err == nil {
			logrus.Infof("Removing existing %s", socketFile)
			os.Remove(socketFile)
		}
		defer os.Remove(socketFile)

		listener, err := net.Listen(parts[0], socketFile)
		if err != nil {
			return err
		}
		return srv.Serve(listener)
	}
	return start(address)
}
