// @title Hackathon Scoring API
// @version 1.0
// @description Judge evaluations, round and overall results, and result publication for hackathons

// @securityDefinitions.apikey BearerToken
// @in header
// @name Authorization

// @securityDefinitions.apikey AdminToken
// @in header
// @name x-admin-token
package main

import (
	"github.com/alex-pricope/hackathon-scoring/api"
	_ "github.com/alex-pricope/hackathon-scoring/docs"
	"github.com/alex-pricope/hackathon-scoring/logging"
	"github.com/spf13/viper"
	"strings"
)

func main() {
	// Load env
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logging.Log.Errorf("Failed to read config file: %v", err)
		panic("Failed to read config file: " + err.Error())
	}

	logging.BoostrapLogger(viper.GetString("log.level"))

	// Read config
	config := api.ReadConfig()

	// Start the service (inside the lambda)
	service := api.NewServer(config)
	service.Start()
}
