package main

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/mdouchement/anylist/internal/database"
	"github.com/mdouchement/anylist/internal/seed"
	"github.com/mdouchement/anylist/internal/server"
	"github.com/muesli/coral"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const dbname = "anylist.db"

var (
	version  = "dev"
	revision = "none"
	date     = "unknown"

	cfg string
)

func main() {
	c := &coral.Command{
		Use:     "anylist",
		Short:   "Multi-tenant list-keeping server",
		Version: fmt.Sprintf("%s - build %.7s @ %s - %s", version, revision, date, runtime.Version()),
		Args:    coral.ExactArgs(0),
	}
	initCmd.Flags().StringVarP(&cfg, "config", "c", "", "Configuration file")
	c.AddCommand(initCmd)

	reindexCmd.Flags().StringVarP(&cfg, "config", "c", "", "Configuration file")
	c.AddCommand(reindexCmd)

	seedCmd.Flags().StringVarP(&cfg, "config", "c", "", "Configuration file")
	c.AddCommand(seedCmd)

	serverCmd.Flags().StringVarP(&cfg, "config", "c", "", "Configuration file")
	c.AddCommand(serverCmd)

	if err := c.Execute(); err != nil {
		logrus.Fatalf("%+v", err)
	}
}

func konf() (*koanf.Koanf, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(cfg), yaml.Parser()); err != nil {
		return nil, err
	}

	if filename := k.String("log.file"); filename != "" {
		logrus.SetOutput(&lumberjack.Logger{
			Filename:   filename,
			MaxSize:    k.Int("log.max_size"),
			MaxBackups: k.Int("log.max_backups"),
		})
	}

	return k, nil
}

func dbnameWithPath(path string) string {
	if len(path) == 0 {
		return dbname
	}
	return filepath.Join(path, dbname)
}

var (
	initCmd = &coral.Command{
		Use:   "init",
		Short: "Init the database",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			k, err := konf()
			if err != nil {
				return err
			}

			return database.StormInit(dbnameWithPath(k.String("database_path")))
		},
	}

	//
	reindexCmd = &coral.Command{
		Use:   "reindex",
		Short: "Reindex the database",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			k, err := konf()
			if err != nil {
				return err
			}

			return database.StormReIndex(dbnameWithPath(k.String("database_path")))
		},
	}

	//
	seedCmd = &coral.Command{
		Use:   "seed",
		Short: "Wipe the database and load the fixture dataset",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			k, err := konf()
			if err != nil {
				return err
			}

			filename := dbnameWithPath(k.String("database_path"))
			if err := os.Remove(filename); err != nil && !os.IsNotExist(err) {
				return errors.Wrap(err, "could not wipe database")
			}
			if err := database.StormInit(filename); err != nil {
				return err
			}

			db, err := database.StormOpen(filename)
			if err != nil {
				return errors.Wrap(err, "could not open database")
			}
			defer db.Close()

			return seed.New(db, k.String("state")).Execute()
		},
	}

	//
	serverCmd = &coral.Command{
		Use:   "server",
		Short: "Start server",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			k, err := konf()
			if err != nil {
				return err
			}

			if k.String("secret_key") == "" {
				return errors.New("secret_key not found")
			}

			db, err := database.StormOpen(dbnameWithPath(k.String("database_path")))
			if err != nil {
				return errors.Wrap(err, "could not open database")
			}
			defer db.Close()

			engine := server.EchoEngine(server.Controller{
				Version:             version,
				Database:            db,
				NoRegistration:      k.Bool("no_registration"),
				SigningKey:          k.MustBytes("secret_key"),
				TokenExpirationTime: k.MustDuration("token_ttl"),
			})
			server.PrintRoutes(engine)

			address := k.String("address")
			message := "could not run server"
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
				return errors.Wrap(engine.Server.Serve(listener), message)
			}
			return errors.Wrap(engine.Start(address), message)
		},
	}
)
