package api

import (
	"github.com/alex-pricope/hackathon-scoring/logging"
	"github.com/spf13/viper"
	"sync"
)

const (
	StorageDriverDynamo = "dynamo"
	StorageDriverMemory = "memory"
)

type Config struct {
	StorageConfig
	ServerConfig
	AuthConfig
	ScoringConfig
	LogLevel string
}

type StorageConfig struct {
	Driver               string
	Endpoint             string
	SeedFile             string
	TableNameHackathons  string
	TableNameRounds      string
	TableNameCriteria    string
	TableNameTeams       string
	TableNameSubmissions string
	TableNameEvaluations string
	TableNameResults     string
}

type ServerConfig struct {
	Port int
}

type AuthConfig struct {
	JWTSecret  string
	AdminToken string
}

type ScoringConfig struct {
	MaxWorkers      int
	IncludeDrafts   bool
	ConflictRetries int
}

var settingsOnce sync.Once

func ReadConfig() *Config {
	driver := getStringOrDefault("storage.driver", StorageDriverDynamo)

	var conf = &Config{
		StorageConfig: StorageConfig{
			Driver:   driver,
			Endpoint: getStringOrDefault("storage.endpoint", ""),
			SeedFile: getStringOrDefault("storage.seedFile", ""),
		},
		ServerConfig: ServerConfig{
			Port: getIntOrDefault("server.port", 8080),
		},
		AuthConfig: AuthConfig{
			JWTSecret:  getStringOrDefault("auth.jwtSecret", ""),
			AdminToken: getStringOrDefault("ADMIN_TOKEN", ""),
		},
		ScoringConfig: ScoringConfig{
			MaxWorkers:      getIntOrDefault("scoring.maxWorkers", 4),
			IncludeDrafts:   getBoolOrDefault("scoring.includeDrafts", false),
			ConflictRetries: getIntOrDefault("scoring.conflictRetries", 3),
		},
		LogLevel: getStringOrDefault("log.level", "info"),
	}

	// Table names are only required when talking to DynamoDB
	if driver == StorageDriverDynamo {
		conf.TableNameHackathons = getString("storage.TableNameHackathons")
		conf.TableNameRounds = getString("storage.TableNameRounds")
		conf.TableNameCriteria = getString("storage.TableNameCriteria")
		conf.TableNameTeams = getString("storage.TableNameTeams")
		conf.TableNameSubmissions = getString("storage.TableNameSubmissions")
		conf.TableNameEvaluations = getString("storage.TableNameEvaluations")
		conf.TableNameResults = getString("storage.TableNameResults")
	}

	settingsOnce.Do(func() {
		logging.Log.Print("Reading settings!")
	})

	return conf
}

func getString(name string) string {
	if viper.IsSet(name) {
		v := viper.GetString(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Fatalf("required environment variable '%s' is missing", name)
	return ""
}

func getIntOrDefault(name string, def int) int {
	if viper.IsSet(name) {
		v := viper.GetInt(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}

func getBoolOrDefault(name string, def bool) bool {
	if viper.IsSet(name) {
		v := viper.GetBool(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}

func getStringOrDefault(name string, def string) string {
	if viper.IsSet(name) {
		v := viper.GetString(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}
