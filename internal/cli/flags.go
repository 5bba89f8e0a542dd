package cli

import (
	"github.com/spf13/pflag"
)

// bind ties a flag to a viper key so an explicit flag overrides the config
// file and environment.
func (a *app) bind(flag *pflag.Flag, key string) {
	if flag == nil {
		panic("cli: binding unknown flag to " + key)
	}
	if err := a.v.BindPFlag(key, flag); err != nil {
		panic("cli: " + err.Error())
	}
}
