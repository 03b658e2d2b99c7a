package providers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"babydbg/internal/structures"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "BABYDBG_LOG_LEVEL")
	viper.BindEnv("upstream.baseURL", "BABYDBG_UPSTREAM_URL")
	viper.BindEnv("offline.version", "BABYDBG_OFFLINE_VERSION")
	viper.BindEnv("offline.size", "BABYDBG_OFFLINE_SIZE")
	viper.BindEnv("offline.saveInterval", "BABYDBG_SAVE_INTERVAL")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	if len(conf.Offline.ShellAssets) == 0 {
		conf.Offline.ShellAssets = []string{
			"/",
			"/static/app.js",
			"/static/icon.png",
			"/static/icon.svg",
			"/static/style.css",
		}
	}

	conf.AppName = "BabyDebuggerGateway"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
