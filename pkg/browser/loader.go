// Package browser implements the page-view controller: it turns an
// address into an installed, laid-out document and runs the interactive
// layer on top of the rendered result.
package browser

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"skiff/pkg/web"
)

// Loader retrieves a resource asynchronously. Exactly one of the two
// callbacks fires, on the controller's logical thread.
type Loader interface {
	Load(addr *web.Address, onSuccess func(data []byte, headers *web.Headers), onError func(message string))
}

const userAgent = "skiff/1.0 (compatible; Go)"

// HTTPLoader fetches http/https resources, serves file: paths from disk,
// and answers about: addresses from built-in resources. Fetches run on
// their own goroutine; completions are marshalled back through Dispatch
// so that all controller state stays on one logical thread.
type HTTPLoader struct {
	Client   *http.Client
	Dispatch func(func())
}

// NewHTTPLoader creates an HTTPLoader whose completions run via dispatch.
// A nil dispatch invokes callbacks synchronously on the fetch goroutine;
// embedders with an event loop should pass their run-on-main hook.
func NewHTTPLoader(dispatch func(func())) *HTTPLoader {
	if dispatch == nil {
		dispatch = func(f func()) { f() }
	}
	return &HTTPLoader{
		Client: &http.Client{
			Timeout: 30 * time.Second,
			// Redirects are followed by the controller, one hop at a
			// time, off the Location response header.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		Dispatch: dispatch,
	}
}

func (l *HTTPLoader) Load(addr *web.Address, onSuccess func([]byte, *web.Headers), onError func(string)) {
	go func() {
		data, headers, err := l.fetch(addr)
		l.Dispatch(func() {
			if err != nil {
				onError(err.Error())
				return
			}
			onSuccess(data, headers)
		})
	}()
}

func (l *HTTPLoader) fetch(addr *web.Address) ([]byte, *web.Headers, error) {
	switch addr.Scheme() {
	case "about":
		return aboutResource(addr)
	case "file":
		data, err := os.ReadFile(addr.Path())
		if err != nil {
			return nil, nil, fmt.Errorf("reading %s: %w", addr.Path(), err)
		}
		return data, web.NewHeaders(), nil
	case "http", "https":
		return l.fetchHTTP(addr)
	}
	return nil, nil, fmt.Errorf("unsupported scheme: %s", addr.Scheme())
}

func (l *HTTPLoader) fetchHTTP(addr *web.Address) ([]byte, *web.Headers, error) {
	req, err := http.NewRequest(http.MethodGet, addr.String(), nil)
	if err != nil {
		return nil, nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := l.Client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching %s: %w", addr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, nil, fmt.Errorf("HTTP %d fetching %s", resp.StatusCode, addr)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("reading response body: %w", err)
	}
	return body, web.HeadersFromHTTP(resp.Header), nil
}

// aboutResource serves the built-in virtual pages.
func aboutResource(addr *web.Address) ([]byte, *web.Headers, error) {
	headers := web.NewHeaders("Content-Type", "text/html")
	switch addr.String() {
	case "about:blank":
		return []byte("<html><body></body></html>"), headers, nil
	case ErrorTemplateAddress:
		return []byte(builtinErrorTemplate), headers, nil
	}
	return nil, nil, fmt.Errorf("no such about page: %s", addr)
}
