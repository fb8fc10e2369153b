package metaclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/campaign-metrics-sync/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/campaign-metrics-sync/internal/config"
	"golang.org/x/time/rate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	defaultMaxAttempts       = 3
	defaultRetryAfter        = 60 * time.Second
	defaultRequestTimeout    = 30 * time.Second
	maxRateLimitWaits        = 10
	maxErrorBodyInMessageLen = 300
)

// HTTPDoer é o subconjunto de *http.Client usado pelo Fetcher
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// SleepFunc aguarda a duração informada ou o cancelamento do contexto
type SleepFunc func(ctx context.Context, d time.Duration) error

// Page é uma página de resposta da Graph API
type Page struct {
	Data   []jsoniter.RawMessage `json:"data"`
	Paging metadomain.Paging     `json:"paging"`
}

// Fetcher faz GETs paginados na Graph API com retentativa, backoff e um intervalo
// fixo entre requisições para ficar abaixo do rate limit da plataforma.
type Fetcher struct {
	httpClient  HTTPDoer
	limiter     *rate.Limiter
	sleep       SleepFunc
	maxAttempts int
	retryAfter  time.Duration
}

type FetcherOption func(f *Fetcher)

func WithHTTPClient(client HTTPDoer) FetcherOption {
	return func(f *Fetcher) {
		f.httpClient = client
	}
}

func WithSleep(sleep SleepFunc) FetcherOption {
	return func(f *Fetcher) {
		f.sleep = sleep
	}
}

// WithRequestDelay troca o intervalo mínimo entre requisições. Zero desativa o intervalo.
func WithRequestDelay(delay time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.limiter = newLimiter(delay)
	}
}

func NewFetcher(cfg *config.Config, opts ...FetcherOption) *Fetcher {
	timeout := time.Duration(cfg.Meta.RequestTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	maxAttempts := cfg.Meta.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}

	retryAfter := time.Duration(cfg.Meta.DefaultRetryAfterSeconds) * time.Second
	if retryAfter <= 0 {
		retryAfter = defaultRetryAfter
	}

	f := &Fetcher{
		httpClient:  &http.Client{Timeout: timeout},
		limiter:     newLimiter(time.Duration(cfg.Meta.RequestDelayMillis) * time.Millisecond),
		sleep:       sleepContext,
		maxAttempts: maxAttempts,
		retryAfter:  retryAfter,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Fetch faz um GET e devolve a página decodificada.
//
// 429: aguarda o Retry-After inteiro e tenta de novo sem consumir tentativa.
// 401 ou erro OAuth de token: falha imediata com ErrInvalidCredentials.
// Outros status e erros de transporte: backoff de 2^tentativa segundos até maxAttempts.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, params url.Values) (*Page, error) {
	requestURL, err := buildURL(rawURL, params)
	if err != nil {
		return nil, err
	}

	var (
		lastErr        error
		lastStatus     int
		rateLimitWaits int
	)

	for attempt := 0; ; {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		resp, err := f.do(ctx, requestURL)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr, lastStatus = err, 0

		case resp.statusCode == http.StatusOK:
			var page Page
			if err := json.Unmarshal(resp.body, &page); err != nil {
				return nil, fmt.Errorf("meta: erro ao decodificar resposta de %s: %w", redactURL(requestURL), err)
			}
			return &page, nil

		case resp.statusCode == http.StatusTooManyRequests:
			if rateLimitWaits >= maxRateLimitWaits {
				return nil, &FetchError{
					URL:        redactURL(requestURL),
					StatusCode: resp.statusCode,
					Message:    "rate limit persistente",
					Attempts:   attempt + 1,
				}
			}
			rateLimitWaits++

			wait := f.parseRetryAfter(resp.header.Get("Retry-After"))
			logrus.WithFields(logrus.Fields{
				"url":         redactURL(requestURL),
				"retry_after": wait.String(),
			}).Warn("Rate limit atingido. Aguardando para tentar novamente")

			if err := f.sleep(ctx, wait); err != nil {
				return nil, err
			}
			continue

		default:
			apiErr := parseErrorBody(resp.body)
			if resp.statusCode == http.StatusUnauthorized || (apiErr != nil && apiErr.IsTokenExpired()) {
				return nil, fmt.Errorf("%w: %s", ErrInvalidCredentials, apiErr.MessageOr(http.StatusText(resp.statusCode)))
			}
			lastErr = errors.New(apiErr.MessageOr(truncate(string(resp.body))))
			lastStatus = resp.statusCode
		}

		attempt++
		if attempt >= f.maxAttempts {
			message := "erro desconhecido"
			if lastErr != nil {
				message = lastErr.Error()
			}
			return nil, &FetchError{
				URL:        redactURL(requestURL),
				StatusCode: lastStatus,
				Message:    message,
				Attempts:   attempt,
				Err:        lastErr,
			}
		}

		delay := time.Duration(1<<(attempt-1)) * time.Second
		logrus.WithFields(logrus.Fields{
			"url":         redactURL(requestURL),
			"attempt":     attempt,
			"status_code": lastStatus,
			"backoff":     delay.String(),
			"error":       lastErr,
		}).Warn("Erro na requisição à Graph API, tentando novamente")

		if err := f.sleep(ctx, delay); err != nil {
			return nil, err
		}
	}
}

// Pages percorre todas as páginas seguindo paging.next, na ordem da API.
// A sequência só pode ser reiniciada a partir da primeira página.
func (f *Fetcher) Pages(ctx context.Context, rawURL string, params url.Values) iter.Seq2[*Page, error] {
	return func(yield func(*Page, error) bool) {
		next, nextParams := rawURL, params
		for next != "" {
			page, err := f.Fetch(ctx, next, nextParams)
			if err != nil {
				yield(nil, err)
				return
			}

			if !yield(page, nil) {
				return
			}

			// A URL de next já carrega access_token e demais parâmetros
			next, nextParams = page.Paging.Next, nil
		}
	}
}

// FetchAll decodifica todos os itens de todas as páginas em um único slice
func FetchAll[T any](ctx context.Context, f *Fetcher, rawURL string, params url.Values) ([]T, error) {
	items := make([]T, 0)

	for page, err := range f.Pages(ctx, rawURL, params) {
		if err != nil {
			return nil, err
		}

		for _, raw := range page.Data {
			var item T
			if err := json.Unmarshal(raw, &item); err != nil {
				return nil, fmt.Errorf("meta: erro ao decodificar item: %w", err)
			}
			items = append(items, item)
		}
	}

	return items, nil
}

type rawResponse struct {
	statusCode int
	header     http.Header
	body       []byte
}

func (f *Fetcher) do(ctx context.Context, requestURL string) (*rawResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta: %w", err)
	}

	return &rawResponse{statusCode: resp.StatusCode, header: resp.Header, body: body}, nil
}

func (f *Fetcher) parseRetryAfter(value string) time.Duration {
	seconds, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || seconds < 0 {
		return f.retryAfter
	}
	return time.Duration(seconds) * time.Second
}

func parseErrorBody(body []byte) *metadomain.ErrorResponse {
	if len(body) == 0 {
		return nil
	}

	var errorResp metadomain.ErrorResponse
	if err := json.Unmarshal(body, &errorResp); err != nil {
		return nil
	}
	return &errorResp
}

func buildURL(rawURL string, params url.Values) (string, error) {
	if len(params) == 0 {
		return rawURL, nil
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("meta: url inválida: %w", err)
	}

	query := parsed.Query()
	for key, values := range params {
		for _, value := range values {
			query.Add(key, value)
		}
	}
	parsed.RawQuery = query.Encode()

	return parsed.String(), nil
}

// redactURL remove o access_token antes de a URL ir para logs ou erros
func redactURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	query := parsed.Query()
	if query.Has("access_token") {
		query.Set("access_token", "REDACTED")
		parsed.RawQuery = query.Encode()
	}

	return parsed.String()
}

func truncate(s string) string {
	if len(s) <= maxErrorBodyInMessageLen {
		return s
	}
	return s[:maxErrorBodyInMessageLen] + "..."
}

func newLimiter(delay time.Duration) *rate.Limiter {
	if delay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(delay), 1)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
