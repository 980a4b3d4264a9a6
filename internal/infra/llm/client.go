package llm

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/IT-Nick/tutorbot/internal/domain/model"
	"github.com/IT-Nick/tutorbot/internal/infra/metrics"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type Config struct {
	APIKey             string
	BaseURL            string
	ChatModel          string
	TranscriptionModel string
	RequestsPerSecond  float64
	RetryAttempts      int
	InitialWait        time.Duration
	MaxWait            time.Duration
}

// chatClient - часть go-openai клиента, которой пользуется Client
type chatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
	CreateTranscription(ctx context.Context, req openai.AudioRequest) (openai.AudioResponse, error)
}

// Client дает боту языковые возможности: классификацию темы, проверку ответа,
// ответы на вопросы, подготовку лекций и распознавание речи
type Client struct {
	api     chatClient
	cfg     Config
	limiter *rate.Limiter
	log     *zap.Logger
}

// New создает клиента OpenAI (или совместимого API, если задан BaseURL)
func New(cfg Config, log *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai API key is required")
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	return newClient(openai.NewClientWithConfig(config), cfg, log), nil
}

func newClient(api chatClient, cfg Config, log *zap.Logger) *Client {
	if cfg.ChatModel == "" {
		cfg.ChatModel = openai.GPT4o
	}
	if cfg.TranscriptionModel == "" {
		cfg.TranscriptionModel = openai.Whisper1
	}
	if cfg.RetryAttempts <= 0 {
		cfg.RetryAttempts = 3
	}
	if cfg.InitialWait <= 0 {
		cfg.InitialWait = 500 * time.Millisecond
	}
	if cfg.MaxWait <= 0 {
		cfg.MaxWait = 10 * time.Second
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	return &Client{
		api:     api,
		cfg:     cfg,
		limiter: rate.NewLimiter(limit, 1),
		log:     log,
	}
}

// ClassifyTopic определяет тему по органической химии, к которой относится ответ
func (c *Client) ClassifyTopic(ctx context.Context, text string) (string, error) {
	prompt := "Определи тему по органической химии из этого ответа:\n\n" + text

	topic, err := c.chat(ctx, "classify", "", prompt, 0)
	if err != nil {
		return "", err
	}
	topic = capitalize(topic)
	c.log.Info("topic classified", zap.String("topic", topic))
	return topic, nil
}

// Evaluate сверяет ответ ученика с фрагментами учебника и возвращает комментарий учителя
func (c *Client) Evaluate(ctx context.Context, text, topic string, passages []string) (string, error) {
	prompt := fmt.Sprintf(
		"У тебя есть текст учебника по теме «%s»:\n\n%s\n\n"+
			"Ученик дал такой ответ:\n\"%s\"\n\n"+
			"Сверь этот ответ с учебником: отметь, где он точно повторил текст, "+
			"где допустил неточности или упустил важное. Ответь тёплым комментарием от учителя.",
		topic, strings.Join(passages, "\n\n"), text)

	return c.chat(ctx, "evaluate", "", prompt, 0.7)
}

// AnswerQuestion отвечает на вопрос ученика в рамках темы
func (c *Client) AnswerQuestion(ctx context.Context, topic, question string) (string, error) {
	system := fmt.Sprintf("Ты преподаватель по теме «%s». Отвечай очень понятно и коротко.", topic)
	return c.chat(ctx, "answer", system, question, 0.7)
}

const teachSystemPrompt = `Ты опытный преподаватель по органической химии.
Объясняй теорию простыми словами, без приветствий и сложных терминов, с примерами из жизни, как на уроке.
Преобразуй фрагмент учебника в связную часть большой лекции для подготовки к ЕГЭ по химии,
чтобы части курса, прочитанные подряд, складывались в одно целое и не повторялись.
Текст будет отправлен через Телеграм.

ОФОРМЛЕНИЕ:
- короткие абзацы, не больше 3-4 строк;
- формулы и реакции в отдельной строке, обрамленные тройными обратными кавычками;
- важные мысли отмечай эмодзи: 📌, 🔥, ⚡, 💡;
- сложные термины объясняй простым языком.
В конце спроси: Всё ли понятно? Если остались вопросы, обязательно спрашивай!`

// TeachMaterial превращает фрагмент учебника в лекцию для Telegram
func (c *Client) TeachMaterial(ctx context.Context, chunk string) (string, error) {
	return c.chat(ctx, "teach", teachSystemPrompt, chunk, 0.7)
}

// TranscribeChunk распознает один аудиофайл через Whisper
func (c *Client) TranscribeChunk(ctx context.Context, path string) (string, error) {
	var text string
	err := c.call(ctx, "transcribe", func(ctx context.Context) error {
		resp, err := c.api.CreateTranscription(ctx, openai.AudioRequest{
			Model:    c.cfg.TranscriptionModel,
			FilePath: path,
			Format:   openai.AudioResponseFormatText,
		})
		if err != nil {
			return err
		}
		text = strings.TrimSpace(resp.Text)
		return nil
	})
	return text, err
}

func (c *Client) chat(ctx context.Context, capability, system, prompt string, temperature float32) (string, error) {
	var messages []openai.ChatCompletionMessage
	if system != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: system})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: prompt})

	var content string
	err := c.call(ctx, capability, func(ctx context.Context) error {
		resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       c.cfg.ChatModel,
			Messages:    messages,
			Temperature: temperature,
		})
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			return errEmptyResponse
		}
		content = strings.TrimSpace(resp.Choices[0].Message.Content)
		return nil
	})
	return content, err
}

var errEmptyResponse = errors.New("no choices in response")

// call выполняет запрос с ограничением частоты и повторами временных ошибок
// (429, 5xx, сеть) с экспоненциальной задержкой
func (c *Client) call(ctx context.Context, capability string, fn func(ctx context.Context) error) error {
	start := time.Now()
	defer func() {
		metrics.CapabilityDuration.WithLabelValues(capability).Observe(time.Since(start).Seconds())
	}()

	var lastErr error
	for attempt := range c.cfg.RetryAttempts {
		if err := c.limiter.Wait(ctx); err != nil {
			lastErr = err
			break
		}

		err := fn(ctx)
		if err == nil {
			metrics.CapabilityCalls.WithLabelValues(capability, "ok").Inc()
			return nil
		}
		lastErr = err

		if !retryable(err) || attempt == c.cfg.RetryAttempts-1 {
			break
		}

		wait := c.backoff(attempt)
		c.log.Warn("capability call failed, retrying",
			zap.String("capability", capability), zap.Int("attempt", attempt+1),
			zap.Duration("wait", wait), zap.Error(err))

		select {
		case <-ctx.Done():
			lastErr = ctx.Err()
		case <-time.After(wait):
			continue
		}
		break
	}

	metrics.CapabilityCalls.WithLabelValues(capability, "error").Inc()
	return fmt.Errorf("%s: %w: %w", capability, model.ErrCapability, lastErr)
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return transientStatus(apiErr.HTTPStatusCode)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return transientStatus(reqErr.HTTPStatusCode)
	}

	// сеть и пустой ответ
	return true
}

func transientStatus(code int) bool {
	return code == 429 || code >= 500 || code == 0
}

func (c *Client) backoff(attempt int) time.Duration {
	wait := float64(c.cfg.InitialWait) * math.Pow(2, float64(attempt))
	if wait > float64(c.cfg.MaxWait) {
		wait = float64(c.cfg.MaxWait)
	}
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	return time.Duration(wait)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
