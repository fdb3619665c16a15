package main

import (
	"IPService/cmd"
	"IPService/internal/pkg/logger"
)

func main() {
	defer logger.Sync()
	cmd.Execute()
}
