package config

import (
	"strings"

	"github.com/spf13/viper"
)

// bindEnv overlays MQ_* environment variables onto v. Dots in keys map to
// underscores, so queue.max_messages reads MQ_QUEUE_MAX_MESSAGES.
func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix("MQ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}
