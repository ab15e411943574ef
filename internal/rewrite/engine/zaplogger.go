package engine

import (
	"go.uber.org/zap"

	"github.com/ritamzico/headerrewrite/internal/rewrite/model"
)

// ZapLogger is the default RuleLogger for rewrite-proxy: it logs one
// structured warning per skipped rule and otherwise never touches the
// stream — a skipped rule never aborts a request.
type ZapLogger struct {
	log *zap.Logger
}

// NewZapLogger wraps log as a RuleLogger.
func NewZapLogger(log *zap.Logger) *ZapLogger {
	return &ZapLogger{log: log}
}

func (l *ZapLogger) LogRuleError(dir model.Direction, rule model.Rule, err error) {
	l.log.Warn("rule skipped",
		zap.String("direction", dir.String()),
		zap.Error(err),
	)
}
