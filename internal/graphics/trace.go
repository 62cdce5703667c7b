package graphics

import (
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"model-viewer/internal/logger"
)

// RouteTraceLog sends raylib's own log output to log. Call before Run.
func RouteTraceLog(log *logger.Logger) {
	if log == nil {
		return
	}
	rl.SetTraceLogCallback(func(level int, text string) {
		text = strings.TrimSpace(text)
		switch rl.TraceLogLevel(level) {
		case rl.LogTrace, rl.LogDebug:
			log.Debugf("raylib: %s", text)
		case rl.LogWarning:
			log.Warnf("raylib: %s", text)
		case rl.LogError, rl.LogFatal:
			log.Errorf("raylib: %s", text)
		default:
			log.Infof("raylib: %s", text)
		}
	})
}
