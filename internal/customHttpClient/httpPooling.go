package customHttpClient

import (
	"net/http"

	"github.com/akolanti/NotebookAPI/internal/config"
)

// shared pooled transport for the page fetcher - one connection pool for
// the whole process instead of a fresh client per request
var customTransport = &http.Transport{
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
}

var pooledClient = &http.Client{
	Transport: customTransport,
	Timeout:   config.PageFetchTimeout,
}

func GetPooledClient() *http.Client {
	return pooledClient
}
