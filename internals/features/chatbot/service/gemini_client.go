package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bytedance/sonic"
	gobreaker "github.com/sony/gobreaker/v2"

	"tvdigital_backend/internals/configs"
	"tvdigital_backend/internals/helpers/breaker"
)

const (
	MaxPromptRunes = 2000
	DefaultTimeout = 30 * time.Second
	maxReplyBytes  = 1 << 20
)

var (
	ErrNotConfigured = errors.New("chatbot belum dikonfigurasi")
	ErrEmptyPrompt   = errors.New("pesan tidak boleh kosong")
	ErrPromptTooLong = fmt.Errorf("pesan maksimal %d karakter", MaxPromptRunes)
	ErrEmptyAnswer   = errors.New("chatbot tidak memberi jawaban")
	ErrAnswerBlocked = errors.New("pertanyaan ditolak oleh filter keamanan")
)

// systemPreamble membatasi jawaban ke topik TV digital Indonesia.
const systemPreamble = "Kamu adalah asisten layanan informasi TV digital Indonesia. " +
	"Jawab dalam bahasa Indonesia yang singkat dan jelas, seputar siaran TV digital, " +
	"MUX, set top box, antena, dan wilayah layanan. " +
	"Kalau pertanyaan di luar topik itu, tolak dengan sopan."

// UpstreamError: status non-2xx dari API Gemini.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("gemini: status %d", e.Status)
	}
	return fmt.Sprintf("gemini: status %d: %s", e.Status, e.Message)
}

type Client struct {
	APIKey  string
	Model   string
	BaseURL string
	HTTP    *http.Client
	Timeout time.Duration

	cb *gobreaker.CircuitBreaker[string]
}

func NewClient(apiKey, model, baseURL string) *Client {
	return &Client{
		APIKey:  strings.TrimSpace(apiKey),
		Model:   strings.TrimSpace(model),
		BaseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		HTTP:    &http.Client{Timeout: DefaultTimeout},
		Timeout: DefaultTimeout,
		cb: breaker.New[string](breaker.Config{
			Name:         "gemini",
			IsSuccessful: countsAsSuccess,
		}),
	}
}

func NewClientFromEnv() *Client {
	return NewClient(configs.GeminiAPIKey, configs.GeminiModel, configs.GeminiBaseURL)
}

// countsAsSuccess: error dari input kita (4xx, validasi) tidak membuka breaker.
func countsAsSuccess(err error) bool {
	if err == nil || breaker.Canceled(err) {
		return true
	}
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.Status >= 400 && ue.Status < 500 && ue.Status != http.StatusTooManyRequests
	}
	return errors.Is(err, ErrAnswerBlocked) || errors.Is(err, ErrEmptyAnswer)
}

func (c *Client) Configured() bool {
	return c != nil && c.APIKey != "" && c.Model != "" && c.BaseURL != ""
}

// Ask mengirim satu pertanyaan dan mengembalikan teks jawaban kandidat pertama.
func (c *Client) Ask(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", ErrEmptyPrompt
	}
	if utf8.RuneCountInString(prompt) > MaxPromptRunes {
		return "", ErrPromptTooLong
	}
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := breaker.Detach(ctx, timeout)
	defer cancel()

	return c.cb.Execute(func() (string, error) {
		return c.generate(ctx, prompt)
	})
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	SystemInstruction *content  `json:"systemInstruction,omitempty"`
	Contents          []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func (c *Client) endpoint() string {
	return fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.BaseURL, url.PathEscape(c.Model))
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	body, err := sonic.Marshal(generateRequest{
		SystemInstruction: &content{Parts: []part{{Text: systemPreamble}}},
		Contents:          []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("buat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	// key di header, bukan query, supaya tidak ikut tercetak di log error URL
	req.Header.Set("x-goog-api-key", c.APIKey)

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxReplyBytes))
	if err != nil {
		return "", fmt.Errorf("baca response: %w", err)
	}

	var out generateResponse
	decodeErr := sonic.Unmarshal(raw, &out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		ue := &UpstreamError{Status: resp.StatusCode}
		if decodeErr == nil && out.Error != nil {
			ue.Message = out.Error.Message
		}
		return "", ue
	}
	if decodeErr != nil {
		return "", fmt.Errorf("decode response: %w", decodeErr)
	}
	if out.PromptFeedback.BlockReason != "" {
		return "", ErrAnswerBlocked
	}
	if len(out.Candidates) == 0 {
		return "", ErrEmptyAnswer
	}

	var sb strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	answer := strings.TrimSpace(sb.String())
	if answer == "" {
		if out.Candidates[0].FinishReason == "SAFETY" {
			return "", ErrAnswerBlocked
		}
		return "", ErrEmptyAnswer
	}
	return answer, nil
}
