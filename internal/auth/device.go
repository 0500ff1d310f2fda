package auth

import (
	"context"
	"fmt"

	"github.com/mssola/useragent"
)

type contextKey string

const deviceContextKey contextKey = "device"

// WithDevice attaches a device display name to the context. The transport
// layer sets it from the User-Agent header so audit events can name the
// device without the session service touching HTTP types.
func WithDevice(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, deviceContextKey, name)
}

// DeviceFromContext returns the attached device display name, or empty.
func DeviceFromContext(ctx context.Context) string {
	if name, ok := ctx.Value(deviceContextKey).(string); ok {
		return name
	}
	return ""
}

// DeviceDisplayName condenses a User-Agent header into a short label for
// audit events ("Chrome on Android", "Firefox on Linux"). Unparseable or
// empty agents read as "Unknown Device".
func DeviceDisplayName(userAgent string) string {
	if userAgent == "" {
		return "Unknown Device"
	}

	ua := useragent.New(userAgent)
	browser, _ := ua.Browser()
	os := ua.OSInfo().Name

	switch {
	case browser != "" && os != "":
		return fmt.Sprintf("%s on %s", browser, os)
	case browser != "":
		return browser
	case os != "":
		return os
	default:
		return "Unknown Device"
	}
}
