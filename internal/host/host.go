package host

import (
	"context"
	"net/http"
	"strings"

	"github.com/amoylab/sessiongate/internal/common/cnst"
	"github.com/amoylab/sessiongate/internal/gate"
	"github.com/gin-gonic/gin"
)

// Filter is the part of *gate.Filter the host drives
type Filter interface {
	Filter(ctx context.Context, req gate.Request, resp gate.Response, chain gate.Chain)
}

// Request resolves http_<name> variables from the request headers
type Request struct {
	header http.Header
}

var _ gate.Request = (*Request)(nil)

// NewRequest wraps the headers of r
func NewRequest(r *http.Request) *Request {
	return &Request{header: r.Header}
}

// Var implements gate.Request. http_x_auth_token maps to header X-Auth-Token.
func (r *Request) Var(name string) (string, bool) {
	if !strings.HasPrefix(name, cnst.VarPrefixHTTP) {
		return "", false
	}
	key := strings.ReplaceAll(strings.TrimPrefix(name, cnst.VarPrefixHTTP), "_", "-")
	vals := r.header.Values(key)
	if len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

// Response buffers what the filter writes until the chain decides
type Response struct {
	status int
	header http.Header
	body   []byte
}

var _ gate.Response = (*Response)(nil)

// NewResponse creates an empty buffered response
func NewResponse() *Response {
	return &Response{header: make(http.Header)}
}

func (r *Response) SetStatus(code int)          { r.status = code }
func (r *Response) SetHeader(key, value string) { r.header.Set(key, value) }
func (r *Response) SetBody(body []byte)         { r.body = body }

// Status returns the buffered status, 0 when unset
func (r *Response) Status() int { return r.status }

// Rejected reports whether the filter asked to stop forwarding
func (r *Response) Rejected() bool { return r.status >= http.StatusBadRequest }

// WriteTo sends the buffered response through c
func (r *Response) WriteTo(c *gin.Context) {
	for k, vals := range r.header {
		for _, v := range vals {
			c.Writer.Header().Add(k, v)
		}
	}
	c.Status(r.status)
	_, _ = c.Writer.Write(r.body)
}

// Chain forwards to next unless the buffered response was rejected, in which
// case it is written and the gin chain aborted.
type Chain struct {
	c    *gin.Context
	next func(c *gin.Context)
}

var _ gate.Chain = (*Chain)(nil)

// NewChain creates a chain continuing with next
func NewChain(c *gin.Context, next func(c *gin.Context)) *Chain {
	return &Chain{c: c, next: next}
}

// Filter implements gate.Chain
func (ch *Chain) Filter(_ context.Context, _ gate.Request, resp gate.Response) {
	if r, ok := resp.(*Response); ok && r.Rejected() {
		r.WriteTo(ch.c)
		ch.c.Abort()
		return
	}
	ch.next(ch.c)
}

// Middleware runs f in front of the remaining gin handlers
func Middleware(f Filter) gin.HandlerFunc {
	return func(c *gin.Context) {
		f.Filter(c.Request.Context(), NewRequest(c.Request), NewResponse(), NewChain(c, (*gin.Context).Next))
	}
}

// Verify answers forward-auth subrequests: 200 with an empty body on success,
// the error envelope otherwise.
func Verify(f Filter) gin.HandlerFunc {
	return func(c *gin.Context) {
		f.Filter(c.Request.Context(), NewRequest(c.Request), NewResponse(), NewChain(c, func(c *gin.Context) {
			c.Status(http.StatusOK)
		}))
	}
}
