package instrumentation

import (
	"context"
	"errors"
	"testing"
)

func TestSpanAttributeBuilder(t *testing.T) {
	attrs := NewSpanAttributeBuilder().
		WithTool("mail_rank_unread").
		WithService(ServiceGmail).
		WithOperation(OperationList).
		WithAccount("reader@example.com").
		WithResource("message", "19a4f2c8d3b1").
		WithReadOnly(true).
		Build()

	if len(attrs) != 7 {
		t.Fatalf("expected 7 attributes, got %d", len(attrs))
	}

	attrMap := make(map[string]interface{})
	for _, attr := range attrs {
		attrMap[string(attr.Key)] = attr.Value.AsInterface()
	}

	want := map[string]interface{}{
		SpanAttrTool:         "mail_rank_unread",
		SpanAttrService:      "gmail",
		SpanAttrOperation:    "list",
		SpanAttrAccount:      "reader@example.com",
		SpanAttrResourceType: "message",
		SpanAttrResourceID:   "19a4f2c8d3b1",
		SpanAttrReadOnly:     true,
	}
	for key, expected := range want {
		if attrMap[key] != expected {
			t.Errorf("attribute %s = %v, want %v", key, attrMap[key], expected)
		}
	}
}

func TestSpanAttributeBuilderSkipsEmptyValues(t *testing.T) {
	attrs := NewSpanAttributeBuilder().
		WithTool("mail_list_drafts").
		WithAccount("").
		WithResource("", "").
		Build()

	if len(attrs) != 1 {
		t.Errorf("expected only the tool attribute, got %d attributes", len(attrs))
	}
}

func TestStartSpanHelpers(t *testing.T) {
	_, ctx := newEnabledProvider(t)

	t.Run("StartSpan", func(t *testing.T) {
		spanCtx, span := StartSpan(ctx, "rank-unread")
		defer span.End()

		if spanCtx == nil {
			t.Error("expected context to be non-nil")
		}
		if span == nil {
			t.Error("expected span to be non-nil")
		}
	})

	t.Run("StartToolSpan", func(t *testing.T) {
		spanCtx, span := StartToolSpan(ctx, "mail_unsubscribe")
		defer span.End()

		if spanCtx == nil {
			t.Error("expected context to be non-nil")
		}
		if span == nil {
			t.Error("expected span to be non-nil")
		}
	})

	t.Run("StartGoogleAPISpan", func(t *testing.T) {
		spanCtx, span := StartGoogleAPISpan(ctx, ServiceGmail, OperationSend)
		defer span.End()

		if spanCtx == nil {
			t.Error("expected context to be non-nil")
		}
		if span == nil {
			t.Error("expected span to be non-nil")
		}
	})
}

func TestSpanStatusHelpers(t *testing.T) {
	_, ctx := newEnabledProvider(t)

	_, span := StartSpan(ctx, "resolve-unsubscribe")
	SetSpanError(span, errors.New("no unsubscribe header"))
	SetSpanError(span, nil) // nil error must be a no-op
	SetSpanSuccess(span)
	AddSpanEvent(span, "label-applied")
	span.End()
}

func TestTraceIdentifiersWithoutSpan(t *testing.T) {
	ctx := context.Background()

	if got := GetTraceID(ctx); got != "" {
		t.Errorf("GetTraceID() = %q, want empty", got)
	}
	if got := GetSpanID(ctx); got != "" {
		t.Errorf("GetSpanID() = %q, want empty", got)
	}
	if got := SpanContextString(ctx); got != "" {
		t.Errorf("SpanContextString() = %q, want empty", got)
	}
}
