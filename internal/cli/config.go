package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/labels/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"
	envPrefix      = "LABELS"

	cfgKeyInput   = "input"
	cfgKeyOutput  = "output"
	cfgKeyFilter  = "filter"
	cfgKeyBias    = "bias"
	cfgKeyName    = "name"
	cfgKeyRet     = "ret"
	cfgKeyTest    = "test"
	cfgKeyLaunch  = "launch"
	cfgKeyHeader  = "header"
	cfgKeyDataDir = "data_dir"
)

// configFile is the structure written to config.yaml.
type configFile struct {
	types.Options `yaml:",inline"`
	DataDir       string `yaml:"data_dir,omitempty"`
}

// loadConfig reads config.yaml from configDir using Viper, on top of the
// built-in defaults. LABELS_<KEY> environment variables override the file.
// A missing config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	def := types.DefaultOptions()

	v := viper.New()
	v.SetDefault(cfgKeyInput, def.Input)
	v.SetDefault(cfgKeyOutput, def.Output)
	v.SetDefault(cfgKeyFilter, def.Filter)
	v.SetDefault(cfgKeyBias, def.Bias)
	v.SetDefault(cfgKeyName, def.Name)
	v.SetDefault(cfgKeyRet, def.Ret)
	v.SetDefault(cfgKeyTest, def.Test)
	v.SetDefault(cfgKeyLaunch, def.Launch)
	v.SetDefault(cfgKeyHeader, def.Header)
	v.SetDefault(cfgKeyDataDir, "")

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

// optionsFromConfig decodes the label options held by v.
func optionsFromConfig(v *viper.Viper) (types.Options, error) {
	var opts types.Options
	if err := v.Unmarshal(&opts); err != nil {
		return types.Options{}, fmt.Errorf("decode config: %w", err)
	}
	return opts, nil
}

// writeConfig stores opts and dataDir as config.yaml in configDir.
func writeConfig(configDir string, opts types.Options, dataDir string) (string, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(&configFile{Options: opts, DataDir: dataDir})
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}

	path := filepath.Join(configDir, configFileExt)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}
