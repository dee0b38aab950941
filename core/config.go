package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		AppName  string
		Env      string // DEV (default), TEST, QA, PROD
		Build    string
		Debug    bool
		TestMode bool
		WorkDir  string

		SecretKey       string
		AdminAccessCode string

		// PickupDuplicatePolicy decides what happens when a guardian announces
		// arrival while they already have an active notification:
		// "reject" (default), "allow" or "merge".
		PickupDuplicatePolicy string

		Server   ServerConfig
		Database DatabaseConfig
		Welcome  WelcomeConfig

		RollbarToken string
	}

	ServerConfig struct {
		Addr               string
		DebugAddr          string
		ShutdownTimeout    time.Duration
		JWTExpirationDelta time.Duration
	}

	DatabaseConfig struct {
		// Path is the SQLite file holding all collections. ":memory:" is
		// accepted for throwaway runs.
		Path string
	}

	WelcomeConfig struct {
		BaseURL string
		APIKey  string
		Model   string
		Timeout time.Duration
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("appName", "Escola Express")
	v.SetDefault("build", "dev")
	v.SetDefault("debug", true)
	v.SetDefault("secretKey", "x#2z&(qmr)5dk$+wtb7=y@8gn^c4e_vu3h!p6s*j9f%a0l1io")
	v.SetDefault("adminAccessCode", "central")
	v.SetDefault("pickupDuplicatePolicy", "reject")
	v.SetDefault("serverAddr", ":8000")
	v.SetDefault("serverDebugAddr", ":8001")
	v.SetDefault("serverShutdownTimeout", 5*time.Second)
	v.SetDefault("jwtExpirationDelta", 12*time.Hour)
	v.SetDefault("databasePath", "escola_express.db")
	v.SetDefault("welcomeBaseURL", "https://generativelanguage.googleapis.com")
	v.SetDefault("welcomeModel", "gemini-3-flash-preview")
	v.SetDefault("welcomeTimeout", 10*time.Second)

	env := os.Getenv("ENV")
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	wd := Getwd()
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err = godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	return &Config{
		AppName:               v.GetString("appName"),
		Env:                   env,
		Build:                 v.GetString("build"),
		Debug:                 v.GetBool("debug"),
		TestMode:              v.GetBool("testMode"),
		WorkDir:               wd,
		SecretKey:             v.GetString("secretKey"),
		AdminAccessCode:       v.GetString("adminAccessCode"),
		PickupDuplicatePolicy: v.GetString("pickupDuplicatePolicy"),
		Server: ServerConfig{
			Addr:               v.GetString("serverAddr"),
			DebugAddr:          v.GetString("serverDebugAddr"),
			ShutdownTimeout:    v.GetDuration("serverShutdownTimeout"),
			JWTExpirationDelta: v.GetDuration("jwtExpirationDelta"),
		},
		Database: DatabaseConfig{
			Path: v.GetString("databasePath"),
		},
		Welcome: WelcomeConfig{
			BaseURL: v.GetString("welcomeBaseURL"),
			APIKey:  v.GetString("welcomeApiKey"),
			Model:   v.GetString("welcomeModel"),
			Timeout: v.GetDuration("welcomeTimeout"),
		},
		RollbarToken: v.GetString("rollbarToken"),
	}
}

// Getwd walks up from the current directory looking for go.mod.
// go-test changes the working directory to the package being tested,
// which would otherwise break relative paths to config files.
func Getwd() string {
	wd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}
	currDir := wd
	for {
		if _, err = os.Stat(filepath.Join(currDir, "go.mod")); err == nil {
			return currDir
		}
		newDir := filepath.Dir(currDir)
		if newDir == string(os.PathSeparator) || newDir == currDir {
			return wd
		}
		currDir = newDir
	}
}
