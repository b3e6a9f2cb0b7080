package logging

import (
	"io"
	"log/slog"
	"strings"
)

// newJSONHandler writes one object per record keyed ts, level and msg.
// Durations are rendered as strings so they read the same as console lines.
func newJSONHandler(w io.Writer, lvl *slog.LevelVar, addSource bool) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       lvl,
		AddSource:   addSource,
		ReplaceAttr: jsonAttr,
	})
}

func jsonAttr(groups []string, attr slog.Attr) slog.Attr {
	if len(groups) == 0 {
		switch attr.Key {
		case slog.TimeKey:
			if attr.Value.Kind() == slog.KindTime {
				return slog.String("ts", formatTimestamp(attr.Value.Time()))
			}
			attr.Key = "ts"
			return attr
		case slog.LevelKey:
			if level, ok := attr.Value.Any().(slog.Level); ok {
				return slog.String("level", strings.ToLower(levelLabel(level)))
			}
			return attr
		case slog.MessageKey:
			attr.Key = "msg"
			return attr
		case slog.SourceKey:
			if src, ok := attr.Value.Any().(*slog.Source); ok && src != nil {
				return slog.String(slog.SourceKey, sourceLabel(src.File, src.Line))
			}
			return attr
		}
	}
	if attr.Value.Kind() == slog.KindDuration {
		attr.Value = slog.StringValue(attr.Value.Duration().String())
	}
	return attr
}
