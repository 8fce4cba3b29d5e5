package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/portal/internal/logging"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName      = "github.com/dmitrijs2005/portal/catalog"
	maxResponseSize = 4 << 20
)

// Querier runs a single GraphQL operation and decodes its "data" member
// into out.
type Querier interface {
	Query(ctx context.Context, operation, query string, vars map[string]any, out any) error
}

// ClientOptions configures a GraphQLClient. A zero Timeout means no
// client-side timeout.
type ClientOptions struct {
	Endpoint  string
	Timeout   time.Duration
	Transport http.RoundTripper
	UserAgent string
}

// GraphQLClient posts queries to a GraphQL endpoint over HTTP.
type GraphQLClient struct {
	endpoint   string
	userAgent  string
	httpClient *http.Client
	tracer     trace.Tracer
	logger     logging.Logger
}

type graphQLRequest struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors"`
}

func NewGraphQLClient(opts ClientOptions, logger logging.Logger) *GraphQLClient {
	base := opts.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	transport := otelhttp.NewTransport(base,
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return fmt.Sprintf("HTTP %s %s", r.Method, r.URL.Host)
		}),
	)

	ua := opts.UserAgent
	if ua == "" {
		ua = "portal/1.0"
	}

	return &GraphQLClient{
		endpoint:  opts.Endpoint,
		userAgent: ua,
		httpClient: &http.Client{
			Timeout:   opts.Timeout,
			Transport: transport,
		},
		tracer: otel.Tracer(tracerName),
		logger: logger.With("module", "graphql"),
	}
}

// HTTPClient exposes the instrumented client so other downloads share its
// transport.
func (c *GraphQLClient) HTTPClient() *http.Client { return c.httpClient }

// Query implements Querier. Transport failures wrap ErrUnavailable; non-2xx
// statuses and GraphQL error payloads are returned as *UpstreamError.
func (c *GraphQLClient) Query(ctx context.Context, operation, query string, vars map[string]any, out any) (err error) {
	requestID := uuid.NewString()

	ctx, span := c.tracer.Start(ctx, "graphql."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("graphql.operation.name", operation),
			attribute.String("graphql.endpoint", c.endpoint),
			attribute.String("request.id", requestID),
		))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}()

	body, err := json.Marshal(graphQLRequest{Query: query, OperationName: operation, Variables: vars})
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)

	log := c.logger.With("operation", operation, "request_id", requestID)
	log.Debug(ctx, "sending query", "variables", vars)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		log.Error(ctx, "network error", "error", err)
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		log.Error(ctx, "failed to read response", "error", err)
		return fmt.Errorf("%w: failed to read response: %w", ErrUnavailable, err)
	}

	var gr graphQLResponse
	decodeErr := json.Unmarshal(raw, &gr)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		ue := &UpstreamError{Status: resp.StatusCode}
		if decodeErr == nil {
			ue.Errors = gr.Errors
		}
		log.Error(ctx, "upstream error", "status", resp.StatusCode, "error", ue)
		return ue
	}
	if decodeErr != nil {
		log.Error(ctx, "failed to decode response", "error", decodeErr)
		return fmt.Errorf("%w: failed to decode response: %w", ErrUpstream, decodeErr)
	}

	if len(gr.Errors) > 0 {
		for _, ge := range gr.Errors {
			log.Error(ctx, "graphql error", "message", ge.Message, "path", ge.Path, "locations", ge.Locations)
		}
		return &UpstreamError{Status: resp.StatusCode, Errors: gr.Errors}
	}

	if out != nil && len(gr.Data) > 0 {
		if err := json.Unmarshal(gr.Data, out); err != nil {
			return fmt.Errorf("%w: failed to decode data: %w", ErrUpstream, err)
		}
	}

	span.SetAttributes(attribute.Int("http.response_size", len(raw)))
	return nil
}

// IsRemote reports whether err came from the remote service rather than
// from a skip or a cancelled context.
func IsRemote(err error) bool {
	return errors.Is(err, ErrUnavailable) || errors.Is(err, ErrUpstream)
}
