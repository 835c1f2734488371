package config

import "os"

func IsDebug() bool {
	return os.Getenv("KARMA_DEBUG") == "1"
}
