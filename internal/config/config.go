package config

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/herohall/registry/pkg/logger"
	"github.com/herohall/registry/pkg/logger/slogx"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	configOnce sync.Once
	config     = &Config{
		Logger: logger.Config{
			Output: "TEXT",
		},
		API: API{
			ListenAddress: ":8080",
		},
		Ledger: Ledger{
			DataDir: "./data",
		},
	}
)

type Config struct {
	Logger logger.Config `mapstructure:"logger"`
	API    API           `mapstructure:"api"`
	Ledger Ledger        `mapstructure:"ledger"`
}

type API struct {
	ListenAddress string `mapstructure:"listen_address"`
}

type Ledger struct {
	// DataDir is the directory the account store lives in.
	DataDir string `mapstructure:"data_dir"`

	// Program is the hex address the registry program is registered at.
	// Generated at startup if empty.
	Program string `mapstructure:"program"`

	// Admin is the hex address of the administrator identity the repository
	// account is derived from. Generated at startup if empty.
	Admin string `mapstructure:"admin"`
}

// BindPFlag binds a cobra flag to a configuration key.
func BindPFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		logger.Panic("Failed to bind flag", slogx.String("key", key), slogx.Error(err))
	}
}

// Load loads the configuration from the config file and environment
// variables.
func Load() Config {
	ctx := logger.WithContext(context.Background(), slog.String("package", "config"))
	configOnce.Do(func() {
		viper.AddConfigPath("./")
		viper.SetConfigName("config")

		viper.AutomaticEnv()
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		if err := viper.ReadInConfig(); err != nil {
			var errNotfound viper.ConfigFileNotFoundError
			if errors.As(err, &errNotfound) {
				logger.WarnContext(ctx, "config file not found, use default value", slogx.Error(err))
			} else {
				logger.PanicContext(ctx, "invalid config file", slogx.Error(err))
			}
		}

		if err := viper.Unmarshal(&config); err != nil {
			logger.PanicContext(ctx, "failed to unmarshal config", slogx.Error(err))
		}
	})

	return *config
}
