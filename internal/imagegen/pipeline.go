package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"imagegen/internal/pkg/ctxutil"
	"imagegen/internal/pkg/lobe"
)

// maxLoggedBody 日志中记录的上游响应体最大长度
const maxLoggedBody = 512

// Pipeline 单个服务商的生成流水线：
// settings → validate → map → call → translate，任一步失败立即返回
type Pipeline[Req any, P Payload, Resp any] struct {
	cap       Capability[Req, P, Resp]
	baseURL   string
	client    *http.Client
	timeout   time.Duration
	observers []Observer
}

// NewPipeline 创建流水线
func NewPipeline[Req any, P Payload, Resp any](capability Capability[Req, P, Resp], opts Options) *Pipeline[Req, P, Resp] {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = capability.BaseURL
	}

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{}
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Pipeline[Req, P, Resp]{
		cap:       capability,
		baseURL:   strings.TrimRight(baseURL, "/"),
		client:    client,
		timeout:   timeout,
		observers: opts.Observers,
	}
}

// Descriptor 返回服务商描述（BaseURL 为实际生效值）
func (p *Pipeline[Req, P, Resp]) Descriptor() Descriptor {
	d := p.cap.Descriptor
	d.BaseURL = p.baseURL
	return d
}

// Generate 执行一次生成，返回 Markdown；失败时返回 *Error
func (p *Pipeline[Req, P, Resp]) Generate(ctx context.Context, settings lobe.Settings, body []byte) (markdown string, err error) {
	attempt := Attempt{
		RequestID: ctxutil.RequestID(ctx),
		Provider:  p.cap.ID,
		At:        time.Now(),
	}

	defer func() {
		attempt.Duration = time.Since(attempt.At)
		if err != nil {
			e := AsError(err)
			err = e
			attempt.Outcome = string(e.Kind)
			attempt.Status = e.Status
			p.logFailure(attempt, e)
		} else {
			attempt.Outcome = OutcomeSuccess
			attempt.Status = http.StatusOK
		}
		for _, o := range p.observers {
			o.ObserveAttempt(ctx, attempt)
		}
	}()

	apiKey, err := p.apiKey(settings)
	if err != nil {
		return "", err
	}

	var req Req
	if err := decodeBody(body, &req); err != nil {
		return "", &Error{Kind: KindValidation, Status: http.StatusBadRequest, Message: MsgInvalidBody, Cause: err}
	}

	payload, err := p.cap.Prepare(&req)
	if err != nil {
		return "", err
	}

	summary := payload.Summary()
	attempt.Model = summary.Model
	attempt.Prompt = summary.Prompt

	var resp Resp
	if err := p.call(ctx, apiKey, payload, &resp); err != nil {
		return "", err
	}

	return p.cap.Render(payload, &resp)
}

func (p *Pipeline[Req, P, Resp]) apiKey(settings lobe.Settings) (string, error) {
	if settings == nil {
		return "", SettingsError(MsgSettingsNotFound)
	}
	apiKey := settings.String(p.cap.SettingsKey)
	if apiKey == "" {
		return "", SettingsError(fmt.Sprintf("%s API key is required.", p.cap.Name))
	}
	return apiKey, nil
}

func (p *Pipeline[Req, P, Resp]) call(ctx context.Context, apiKey string, payload P, out *Resp) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	data, err := json.Marshal(payload)
	if err != nil {
		return TransportError(fmt.Errorf("marshal payload: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+GenerationsPath, bytes.NewReader(data))
	if err != nil {
		return TransportError(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return TransportError(fmt.Errorf("%s request failed: %w", p.cap.ID, err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return TransportError(fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		cause := fmt.Errorf("status=%d body=%s", resp.StatusCode, truncate(respBody, maxLoggedBody))
		if resp.StatusCode == http.StatusUnauthorized {
			e := SettingsError(fmt.Sprintf("Invalid %s API key.", p.cap.Name))
			e.Cause = cause
			return e
		}

		message := MsgGenerateFailed
		if p.cap.UpstreamMessage != nil {
			if m := p.cap.UpstreamMessage(respBody); m != "" {
				message = m
			}
		}
		e := UpstreamError(resp.StatusCode, message)
		e.Cause = cause
		return e
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return TransportError(fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func (p *Pipeline[Req, P, Resp]) logFailure(attempt Attempt, e *Error) {
	var event *zerolog.Event
	switch e.Kind {
	case KindSettings, KindValidation:
		event = log.Warn()
	default:
		event = log.Error()
	}

	event.
		Err(e.Cause).
		Str("provider", attempt.Provider).
		Str("kind", string(e.Kind)).
		Int("status", e.Status).
		Str("model", attempt.Model).
		Str("request_id", attempt.RequestID).
		Msg(e.Message)
}

// decodeBody 解析调用方请求体，空请求体视为 {}
func decodeBody(body []byte, dst any) error {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, dst)
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
