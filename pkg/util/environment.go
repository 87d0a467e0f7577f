package util

import (
	"os"
	"strconv"
	"strings"
)

func GetEnvironmentVariables() map[string]string {
	environmentVariables := map[string]string{}

	for _, variable := range os.Environ() {
		pair := strings.SplitN(variable, "=", 2)

		environmentVariables[pair[0]] = pair[1]
	}

	return environmentVariables
}

// GetEnvironmentString returns the named variable or fallback when it is unset or empty
func GetEnvironmentString(env map[string]string, name string, fallback string) string {
	if env[name] != "" {
		return env[name]
	}

	return fallback
}

func GetEnvironmentInt(env map[string]string, name string, fallback int) (int, error) {
	if env[name] == "" {
		return fallback, nil
	}

	return strconv.Atoi(env[name])
}
