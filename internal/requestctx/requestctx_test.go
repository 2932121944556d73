package requestctx

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerCarriesRequestID(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, nil))

	Logger(WithRequestID(context.Background(), "req-42"), base).Info("hello")
	if !strings.Contains(buf.String(), "requestId=req-42") {
		t.Fatalf("expected request id in %q", buf.String())
	}

	buf.Reset()
	Logger(context.Background(), base).Info("hello")
	if strings.Contains(buf.String(), "requestId") {
		t.Fatalf("did not expect request id in %q", buf.String())
	}
}
