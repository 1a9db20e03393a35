package config

import "github.com/spf13/viper"

// Configuration keys.
const (
	KeyTemplatesDir = "templates.dir"
	KeyRenderEngine = "render.engine"
	KeyConcurrency  = "render.concurrency"
	KeyEnvPrefix    = "params.env-prefix"
	KeyLogLevel     = "log.level"
	KeyLogFormat    = "log.format"
)

// ApplyDefaults sets default configuration values in the provided Viper instance.
func ApplyDefaults(v *viper.Viper) {
	v.SetDefault(KeyTemplatesDir, "")
	v.SetDefault(KeyRenderEngine, "strict")
	v.SetDefault(KeyConcurrency, 0) // unbounded
	v.SetDefault(KeyEnvPrefix, "BENCHTMPL_PARAM_")
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, "console")
}
