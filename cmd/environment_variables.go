// Package cmd holds helpers shared by conwalk binaries.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
)

const (
	EnvironmentVariablePrefix = "CONWALK_"
)

// Each flag can also be set with an env variable whose name starts with
// `CONWALK_`. A variable suffixed `_FILE` names a file whose contents
// become the flag's value, for secrets mounted into containers.
func SetFlagsFromEnvVariables(fs *pflag.FlagSet) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		if strings.HasSuffix(f.Name, "_file") {
			return
		}
		envVar := flagToEnvVarName(f)
		if val, present := os.LookupEnv(envVar); present {
			fs.Set(f.Name, val)
			return
		}
		if path, present := os.LookupEnv(envVar + "_FILE"); present {
			contents, readErr := os.ReadFile(path)
			if readErr != nil {
				err = fmt.Errorf("reading %s: %w", envVar+"_FILE", readErr)
				return
			}
			fs.Set(f.Name, string(contents))
		}
	})
	return err
}

func flagToEnvVarName(f *pflag.Flag) string {
	return fmt.Sprintf("%s%s", EnvironmentVariablePrefix, strings.Replace(strings.ToUpper(f.Name), "-", "_", -1))
}
