package common

import (
	"strings"

	"github.com/futig/eco-advisor/internal/config"
	pkgHTTP "github.com/futig/eco-advisor/pkg/http"
	"go.uber.org/zap"
)

// NewBaseConnector builds the JSON connector for a bearer-authenticated
// completion API such as Mistral's. The base URL loses its trailing slash so
// that endpoints starting with "/" join cleanly.
func NewBaseConnector(cfg config.HTTPClientConfig, logger *zap.Logger) *pkgHTTP.Connector {
	connCfg := &pkgHTTP.ConnectorConfig{
		Logger:  logger,
		BaseURL: strings.TrimRight(cfg.Url, "/"),
	}

	return pkgHTTP.NewConnector(connCfg, clientOptions(cfg)...)
}

// clientOptions maps the configured timeouts onto the HTTP client. Waiting
// for response headers never outlasts the whole request.
func clientOptions(cfg config.HTTPClientConfig) []pkgHTTP.HttpOpts {
	headerTimeout := cfg.ResponseHeaderTimeout
	if cfg.RequestTimeout > 0 && (headerTimeout <= 0 || headerTimeout > cfg.RequestTimeout) {
		headerTimeout = cfg.RequestTimeout
	}

	return []pkgHTTP.HttpOpts{
		pkgHTTP.WithRequestTimeout(cfg.RequestTimeout),
		pkgHTTP.WithConnClientTimeout(cfg.ConnTimeout),
		pkgHTTP.WithClientKeepAlive(cfg.KeepAlive),
		pkgHTTP.WithTLSHandshakeTimeout(cfg.TLSHandshakeTimeout),
		pkgHTTP.WithIdleConnTimeout(cfg.IdleConnTimeout),
		pkgHTTP.WithResponseHeaderTimeout(headerTimeout),
		pkgHTTP.WithRequestLogging(),
		pkgHTTP.WithAuthToken(cfg.Token),
	}
}
