//go:build !js

package main

import (
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	logger.Error("the viewer runs in the browser",
		zap.String("build", "GOOS=js GOARCH=wasm go build -o pcdinspector.wasm ."),
		zap.String("cli", "go run ./cmd/pcdinspect"),
	)
}
