package conversation

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/hammamikhairi/cookbook/internal/logger"
)

func TestCLINotifierFormatting(t *testing.T) {
	var lines []string
	n := NewCLINotifier(logger.New(logger.LevelOff, nil), func(format string, a ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, a...))
	})
	ctx := context.Background()

	if err := n.Notify(ctx, "exported"); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if err := n.NotifyUrgent(ctx, "export failed"); err != nil {
		t.Fatalf("notify urgent: %v", err)
	}

	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], cyan) || !strings.Contains(lines[0], "exported") {
		t.Errorf("normal notice = %q, want cyan formatting", lines[0])
	}
	if !strings.Contains(lines[1], red) || !strings.Contains(lines[1], "export failed") {
		t.Errorf("urgent notice = %q, want red formatting", lines[1])
	}
	for i, l := range lines {
		if !strings.HasSuffix(l, reset) {
			t.Errorf("line %d does not reset formatting: %q", i, l)
		}
	}
}
