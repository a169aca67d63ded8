package main

import (
	"flag"

	"github.com/golang/glog"
	"github.com/spf13/viper"

	"github.com/BeeswaxIO/hexbid/config"
	"github.com/BeeswaxIO/hexbid/router"
	"github.com/BeeswaxIO/hexbid/server"
)

// Rev holds binary revision string
// Set manually at build time using:
//
//	go build -ldflags "-X main.Rev=`git rev-parse --short HEAD`"
var Rev string

func main() {
	flag.Parse() // required for glog flags and testing package flags

	cfg, err := loadConfig()
	if err != nil {
		glog.Exitf("Configuration could not be loaded or did not pass validation: %v", err)
	}

	err = serve(Rev, cfg)
	if err != nil {
		glog.Exitf("hexbid failed: %v", err)
	}
}

const configFileName = "hexbid"

func loadConfig() (*config.Configuration, error) {
	v := viper.New()
	config.SetupViper(v, configFileName)
	return config.New(v)
}

func serve(revision string, cfg *config.Configuration) error {
	r, err := router.New(cfg)
	if err != nil {
		return err
	}
	defer r.Shutdown()

	glog.Infof("Starting hexbid %s (revision %q) with %s scoring", cfg.Agent.Version, revision, cfg.Scoring.Type)
	return server.Listen(cfg, r.Handler(), router.Admin(cfg.Agent.Version, revision), r.MetricsEngine)
}
