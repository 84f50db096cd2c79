package system

import (
	"github.com/milk9111/musicstrip/ecs"
	"go.uber.org/zap"
)

// TelemetrySystem drains the world event queue into the logger. It runs last
// so it sees every event pushed during the tick.
type TelemetrySystem struct {
	logger *zap.Logger
}

func NewTelemetrySystem(logger *zap.Logger) *TelemetrySystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TelemetrySystem{logger: logger}
}

func (s *TelemetrySystem) Update(w *ecs.World) {
	for _, evt := range w.Events().Drain() {
		s.log(evt)
	}
}

func (s *TelemetrySystem) log(evt ecs.Event) {
	switch data := evt.Data.(type) {
	case TargetEvent:
		fields := []zap.Field{zap.Bool("active", data.Active), zap.Float64("position", data.Position)}
		if data.Target != "" {
			fields = append(fields, zap.String("target", data.Target))
		}
		if evt.Type == EventCaptionShown || evt.Type == EventCaptionHidden {
			fields = append(fields, zap.Int("slot", data.Slot))
		}
		s.logger.Debug(evt.Type, fields...)
	case AudioEvent:
		fields := []zap.Field{zap.String("source", data.Name), zap.Float64("volume", data.Volume), zap.Float64("position", data.Position)}
		if data.Err != nil {
			s.logger.Warn(evt.Type, append(fields, zap.Error(data.Err))...)
			return
		}
		s.logger.Info(evt.Type, fields...)
	case InterruptEvent:
		fields := []zap.Field{zap.Int("video", data.VideoIndex), zap.Float64("position", data.Position)}
		if data.Node != "" {
			fields = append(fields, zap.String("node", data.Node))
			s.logger.Debug(evt.Type, fields...)
			return
		}
		if data.Active != nil {
			fields = append(fields, zap.Strings("channels", data.Active))
		}
		s.logger.Info(evt.Type, fields...)
	default:
		s.logger.Debug(evt.Type, zap.Any("data", evt.Data))
	}
}
