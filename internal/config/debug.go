package config

import "os"

func IsDebug() bool {
	return os.Getenv("RAG_DEBUG") == "1"
}
