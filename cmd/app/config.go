package main

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"employeehub/config"
	"employeehub/utils/path"

	"github.com/spf13/viper"
)

// newViper 環境變數一律優先於檔案；--env 與 --config 同時給時只讀 --env
func newViper(envFile, yamlFile string) (*viper.Viper, error) {
	v := viper.NewWithOptions(viper.KeyDelimiter("__"))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "__"))
	v.AutomaticEnv()
	bindEnvs(v, reflect.TypeOf(config.Configuration{}), nil)

	switch {
	case envFile != "":
		v.SetConfigFile(path.Resolve(envFile, ""))
		v.SetConfigType("env")
	case yamlFile != "":
		v.SetConfigFile(path.Resolve(yamlFile, "conf"))
		v.SetConfigType("yaml")
	default:
		fmt.Println("No configuration file specified, using environment variables only.")
		return v, nil
	}

	fmt.Println("load config:", v.ConfigFileUsed())
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config failed: %w", err)
	}
	return v, nil
}

// decodeConfig unmarshal 後補預設值再驗證
func decodeConfig(v *viper.Viper) (*config.Configuration, error) {
	conf := &config.Configuration{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("unmarshal config failed: %w", err)
	}
	// 建置時以 -ldflags "-X main.Version=..." 注入
	if Version != "" {
		conf.App.Version = Version
	}
	conf.ApplyDefaults()
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return conf, nil
}

// bindEnvs 依 mapstructure tag 綁定 APP__PORT 形式的環境變數，並接上舊名稱
func bindEnvs(v *viper.Viper, t reflect.Type, prefix []string) {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	for i := range t.NumField() {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" || tag == "-" {
			tag = field.Name
		}
		keys := append(slices.Clone(prefix), tag)

		ft := field.Type
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if ft.Kind() == reflect.Struct {
			bindEnvs(v, ft, keys)
			continue
		}
		key := strings.Join(keys, "__")
		_ = v.BindEnv(append([]string{key, key}, config.EnvAliases[key]...)...)
	}
}
