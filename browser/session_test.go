package browser

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	boom := errors.New("net::ERR_NAME_NOT_RESOLVED")

	testCases := []struct {
		name        string
		ctxErr      error
		err         error
		wantTimeout bool
	}{
		{"Visit deadline", context.DeadlineExceeded, context.DeadlineExceeded, true},
		{"Deadline only on ctx", context.DeadlineExceeded, context.Canceled, true},
		{"Wrapped deadline", nil, errors.Join(errors.New("wait"), context.DeadlineExceeded), true},
		{"Navigation error", nil, boom, false},
		{"Caller cancelled", context.Canceled, context.Canceled, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := classify("https://x.test/hotel/a", 60*time.Second, tc.ctxErr, tc.err)

			var navErr *NavigationError
			if !errors.As(err, &navErr) {
				t.Fatalf("classify returned %T; want *NavigationError", err)
			}
			if navErr.URL != "https://x.test/hotel/a" {
				t.Errorf("URL = %q", navErr.URL)
			}
			if got := errors.Is(err, ErrNavigationTimeout); got != tc.wantTimeout {
				t.Errorf("errors.Is(err, ErrNavigationTimeout) = %t; want %t", got, tc.wantTimeout)
			}
		})
	}
}

func TestNavigationErrorMessage(t *testing.T) {
	err := &NavigationError{URL: "https://x.test/s", Timeout: 30 * time.Second, Err: ErrNavigationTimeout}
	if msg := err.Error(); !strings.Contains(msg, "30s") || !strings.Contains(msg, "https://x.test/s") {
		t.Errorf("Error() = %q; want URL and timeout", msg)
	}
}
