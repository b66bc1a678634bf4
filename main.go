package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/urfave/cli"

	"github.com/readysethu/huserver/internal/ruleset"
	"github.com/readysethu/huserver/internal/web"
)

func main() {
	app := cli.NewApp()

	// base application info
	app.Name = "hu server"
	app.Version = "0.0.1"
	app.Usage = "Sichuan mahjong scoring server"

	// flags
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Value: "./configs/config.toml",
			Usage: "load configuration from `FILE`",
		},
	}

	app.Action = serve
	app.Run(os.Args)
}

func serve(c *cli.Context) error {
	viper.SetConfigType("toml")
	viper.SetConfigFile(c.String("config"))
	viper.ReadInConfig()

	log.SetFormatter(&log.TextFormatter{DisableColors: true})
	if viper.GetBool("core.debug") {
		log.SetLevel(log.DebugLevel)
	}

	path := viper.GetString("ruleset.path")
	if path == "" {
		path = "./data/rules_winning.json"
	}

	// A partial ruleset must never serve: fail here, not at first use.
	rs, err := ruleset.Load(path)
	if err != nil {
		log.Fatalf("load ruleset: %v", err)
	}
	log.Infof("ruleset loaded: %d hands, %d factors, %d events",
		len(rs.Hands), len(rs.Multipliers.Factors), len(rs.Events))

	web.Startup(rs)
	return nil
}
