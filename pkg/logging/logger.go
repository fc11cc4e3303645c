package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps otelzap so every entry carries trace_id and span_id when a
// span is active. When a Loki endpoint is configured the entry is also
// shipped there asynchronously.
type Logger struct {
	Logger      *otelzap.Logger
	ServiceName string
	lokiURL     string
	httpClient  *http.Client
}

type lokiEntry struct {
	Streams []lokiStream `json:"streams"`
}

type lokiStream struct {
	Stream map[string]string `json:"stream"`
	Values [][]string        `json:"values"`
}

func NewLogger(serviceName string) (*Logger, error) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.TimeKey = "timestamp"

	zapLogger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create zap logger: %w", err)
	}

	lokiURL := os.Getenv("LOKI_URL")
	if lokiURL != "" {
		lokiURL += "/loki/api/v1/push"
	}

	return &Logger{
		Logger:      otelzap.New(zapLogger),
		ServiceName: serviceName,
		lokiURL:     lokiURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}, nil
}

func (l *Logger) Sync() error {
	return l.Logger.Sync()
}

func (l *Logger) Zap() *zap.Logger {
	return l.Logger.Logger
}

func (l *Logger) Info(ctx context.Context, msg string, fields ...zap.Field) {
	l.log(ctx, zapcore.InfoLevel, msg, fields...)
}

func (l *Logger) Warn(ctx context.Context, msg string, fields ...zap.Field) {
	l.log(ctx, zapcore.WarnLevel, msg, fields...)
}

func (l *Logger) Error(ctx context.Context, msg string, fields ...zap.Field) {
	l.log(ctx, zapcore.ErrorLevel, msg, fields...)
}

func (l *Logger) log(ctx context.Context, level zapcore.Level, msg string, fields ...zap.Field) {
	logFields := append(fields, zap.String("service", l.ServiceName))

	switch level {
	case zapcore.ErrorLevel:
		l.Logger.Ctx(ctx).Error(msg, logFields...)
	case zapcore.WarnLevel:
		l.Logger.Ctx(ctx).Warn(msg, logFields...)
	default:
		l.Logger.Ctx(ctx).Info(msg, logFields...)
	}

	if l.lokiURL != "" {
		go l.ShipToLoki(ctx, level, msg, logFields)
	}
}

// ShipToLoki pushes a single entry to the configured Loki endpoint. Failures
// are dropped; log shipping must never take the request path down.
func (l *Logger) ShipToLoki(ctx context.Context, level zapcore.Level, msg string, fields []zap.Field) {
	if l.lokiURL == "" {
		return
	}

	logData := map[string]interface{}{
		"timestamp": time.Now().Format(time.RFC3339Nano),
		"level":     level.String(),
		"message":   msg,
		"service":   l.ServiceName,
	}

	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		logData["trace_id"] = span.SpanContext().TraceID().String()
		logData["span_id"] = span.SpanContext().SpanID().String()
	}

	for _, field := range fields {
		switch field.Type {
		case zapcore.StringType:
			logData[field.Key] = field.String
		case zapcore.Int64Type:
			logData[field.Key] = field.Integer
		case zapcore.BoolType:
			logData[field.Key] = field.Integer == 1
		case zapcore.DurationType, zapcore.ErrorType, zapcore.Float64Type:
			logData[field.Key] = fmt.Sprintf("%v", field.Interface)
		default:
			logData[field.Key] = fmt.Sprintf("%v", field.Interface)
		}
	}

	jsonBytes, err := json.Marshal(logData)
	if err != nil {
		return
	}

	entry := lokiEntry{
		Streams: []lokiStream{
			{
				Stream: map[string]string{
					"service": l.ServiceName,
					"level":   level.String(),
				},
				Values: [][]string{
					{fmt.Sprintf("%d", time.Now().UnixNano()), string(jsonBytes)},
				},
			},
		},
	}

	l.push(entry)
}

func (l *Logger) push(entry lokiEntry) {
	body, err := json.Marshal(entry)
	if err != nil {
		return
	}

	req, err := http.NewRequest(http.MethodPost, l.lokiURL, bytes.NewReader(body))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return
	}
	defer resp.Body.Close()

	io.Copy(io.Discard, resp.Body)
}
