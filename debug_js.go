package main

import (
	webgl "github.com/seqsense/webgl-go"
	"go.uber.org/zap"
)

func showDebugInfo(gl *webgl.WebGL, logger *zap.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("failed to get debug info", zap.Any("reason", r))
		}
	}()

	ri, ok := gl.GetExtension("WEBGL_debug_renderer_info")
	if !ok {
		logger.Info("GPU info hidden by the browser privacy setting")
		return
	}
	logger.Info("GPU",
		zap.String("vendor", gl.GetParameter(ri.Get("UNMASKED_VENDOR_WEBGL").Int()).String()),
		zap.String("renderer", gl.GetParameter(ri.Get("UNMASKED_RENDERER_WEBGL").Int()).String()),
		zap.Int("maxTextureSize", gl.GetParameter(gl.JS().Get("MAX_TEXTURE_SIZE").Int()).Int()),
	)
}
