package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

// secretKeys are attribute keys whose values are always masked.
var secretKeys = []string{
	"authorization", "proxy-authorization", "cookie", "set-cookie", "x-api-key",
	"password", "secret", "token", "jwt_secret", "dsn",
}

var secretKeyPrefixes = []string{"secret_", "api_key"}

// secretValues catch credentials that slip into free-form values.
var secretValues = []*regexp.Regexp{
	regexp.MustCompile(`(?i)bearer\s+[a-z0-9\-._~+/]+=*`),
	// JWT: three base64url segments of at least ten characters.
	regexp.MustCompile(`[A-Za-z0-9\-_]{10,}\.[A-Za-z0-9\-_]{10,}\.[A-Za-z0-9\-_]{10,}`),
	regexp.MustCompile(`(?i)(api[_\-]?key|apikey)\s*[:=]\s*\S+`),
	// Userinfo in postgres://, redis:// and amqp:// URLs.
	regexp.MustCompile(`(?i)[a-z][a-z0-9+.\-]*://[^\s/:@]+:[^\s/@]+@`),
}

func redactor() func([]string, slog.Attr) slog.Attr {
	opts := make([]masq.Option, 0, len(secretKeys)+len(secretKeyPrefixes)+len(secretValues))
	for _, k := range secretKeys {
		opts = append(opts, masq.WithFieldName(k))
	}
	for _, p := range secretKeyPrefixes {
		opts = append(opts, masq.WithFieldPrefix(p))
	}
	for _, re := range secretValues {
		opts = append(opts, masq.WithRegex(re))
	}
	return masq.New(opts...)
}
