package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/maktab-uz/maktab/pkg/api"
)

// Ошибки диспетчера
var (
	// ErrBackendUnavailable — предохранитель открыт, сетевая попытка не делалась
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrNetworkError — ни один кандидат не был достигнут на транспортном уровне
	ErrNetworkError = errors.New("network error")
)

var absoluteURLPattern = regexp.MustCompile(`(?i)^https?://`)

// Client представляет HTTP клиент с адаптивным поиском бэкенда.
// Кандидаты base URL перебираются последовательно до первого хоста,
// приславшего любой HTTP ответ. Достигнутый, но отвечающий ошибкой
// сервер — окончательный ответ, а не повод пробовать следующий хост:
// иначе перебор хостов маскировал бы настоящие ошибки приложения
// (например, неверный пароль).
type Client struct {
	httpClient *http.Client
	resolve    func() []string
	breaker    *Breaker
}

// NewClient создает новый API клиент.
// Предохранитель принадлежит экземпляру клиента, а не пакету:
// независимые клиенты не влияют друг на друга.
func NewClient(probe EnvironmentProbe) *Client {
	return NewClientWithResolver(func() []string {
		return ResolveBaseURLs(probe)
	}, NewBreaker())
}

// NewClientWithResolver создает клиент с внешним источником кандидатов
// и предохранителем. Используется в тестах для детерминированных адресов.
func NewClientWithResolver(resolve func() []string, breaker *Breaker) *Client {
	return &Client{
		resolve: resolve,
		breaker: breaker,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовок Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// Breaker возвращает предохранитель клиента (для тестов)
func (c *Client) Breaker() *Breaker {
	return c.breaker
}

// header — дополнительный заголовок запроса
type header struct {
	name  string
	value string
}

// Dispatch выполняет запрос с перебором кандидатов.
// Возвращает тело успешного ответа. Ошибки различаются по виду:
// ErrBackendUnavailable (предохранитель), ErrNetworkError (все кандидаты
// недостижимы, предохранитель взводится), *api.Error (сервер достигнут,
// но ответил не-2xx).
func (c *Client) Dispatch(ctx context.Context, method, path string, body interface{}, headers ...header) (json.RawMessage, error) {
	if c.breaker.ShortCircuit() {
		return nil, ErrBackendUnavailable
	}

	var jsonBody []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		jsonBody = data
	}

	// Абсолютный URL — единственный кандидат, без перебора хостов
	var urls []string
	if absoluteURLPattern.MatchString(path) {
		urls = []string{path}
	} else {
		for _, baseURL := range c.resolve() {
			urls = append(urls, baseURL+path)
		}
	}

	for _, url := range urls {
		data, err := c.attempt(ctx, method, url, jsonBody, headers)
		if err != nil {
			// Транспортная ошибка: пробуем следующего кандидата.
			// Ошибка сервера (*api.Error) — окончательный результат.
			var apiErr *api.Error
			if errors.As(err, &apiErr) {
				return nil, err
			}
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}
		return data, nil
	}

	c.breaker.TripFor(OfflineWindow)
	return nil, ErrNetworkError
}

// attempt выполняет одну попытку против одного URL
func (c *Client) attempt(ctx context.Context, method, url string, jsonBody []byte, headers []header) (json.RawMessage, error) {
	var bodyReader io.Reader
	if jsonBody != nil {
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if jsonBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		req.Header.Set(h.name, h.value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &api.Error{
			Message:    serverErrorMessage(respBody),
			StatusCode: resp.StatusCode,
		}
	}

	return respBody, nil
}

// serverErrorMessage извлекает сообщение об ошибке из тела ответа.
// Сервер шлет {"message": ...}, но диспетчер терпим к {"error": ...}
// и к сырому не-JSON телу.
func serverErrorMessage(body []byte) string {
	var parsed struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Error != "" {
			return parsed.Error
		}
		if parsed.Message != "" {
			return parsed.Message
		}
	}

	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}

	return "Request failed"
}

// doRequest выполняет запрос и декодирует успешный ответ в result
func (c *Client) doRequest(ctx context.Context, method, path string, body, result interface{}, headers ...header) error {
	data, err := c.Dispatch(ctx, method, path, body, headers...)
	if err != nil {
		return err
	}

	if result != nil && len(data) > 0 {
		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// bearer формирует заголовок Authorization
func bearer(token string) header {
	return header{name: "Authorization", value: "Bearer " + token}
}

// Health проверяет доступность бэкенда
func (c *Client) Health(ctx context.Context) error {
	var resp api.HealthResponse
	if err := c.doRequest(ctx, http.MethodGet, "/health", nil, &resp); err != nil {
		return fmt.Errorf("health request failed: %w", err)
	}
	return nil
}

// Login выполняет аутентификацию пользователя
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.LoginResponse, error) {
	var resp api.LoginResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ChangePassword меняет пароль текущего пользователя
func (c *Client) ChangePassword(ctx context.Context, token string, req api.ChangePasswordRequest) error {
	var resp api.ChangePasswordResponse
	return c.doRequest(ctx, http.MethodPost, "/api/auth/change-password", req, &resp, bearer(token))
}

// SeedAdmin создает первого администратора через общий секрет
func (c *Client) SeedAdmin(ctx context.Context, secret string, req api.SeedAdminRequest) (*api.LoginResponse, error) {
	var resp api.LoginResponse
	err := c.doRequest(ctx, http.MethodPost, "/api/auth/seed-admin", req, &resp,
		header{name: "X-Admin-Secret", value: secret})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// RegisterUser создает новый аккаунт (только администратор)
func (c *Client) RegisterUser(ctx context.Context, token string, req api.RegisterUserRequest) (*api.User, error) {
	var resp api.RegisterUserResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/users/register", req, &resp, bearer(token)); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// ListUsers возвращает всех пользователей (только администратор)
func (c *Client) ListUsers(ctx context.Context, token string) ([]api.User, error) {
	var resp []api.User
	if err := c.doRequest(ctx, http.MethodGet, "/api/users", nil, &resp, bearer(token)); err != nil {
		return nil, err
	}
	return resp, nil
}

// ResetPassword сбрасывает пароль пользователя, возвращает одноразовый пароль
func (c *Client) ResetPassword(ctx context.Context, token, userID string) (string, error) {
	var resp api.ResetPasswordResponse
	path := fmt.Sprintf("/api/users/%s/reset-password", userID)
	if err := c.doRequest(ctx, http.MethodPost, path, nil, &resp, bearer(token)); err != nil {
		return "", err
	}
	return resp.OTP, nil
}

// CreateClass создает класс (только администратор)
func (c *Client) CreateClass(ctx context.Context, token string, req api.CreateClassRequest) (*api.Class, error) {
	var resp api.Class
	if err := c.doRequest(ctx, http.MethodPost, "/api/classes", req, &resp, bearer(token)); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListClasses возвращает все классы (только администратор)
func (c *Client) ListClasses(ctx context.Context, token string) ([]api.Class, error) {
	var resp []api.Class
	if err := c.doRequest(ctx, http.MethodGet, "/api/classes", nil, &resp, bearer(token)); err != nil {
		return nil, err
	}
	return resp, nil
}

// DeleteClass удаляет класс (только администратор)
func (c *Client) DeleteClass(ctx context.Context, token, classID string) error {
	var resp api.SuccessResponse
	path := fmt.Sprintf("/api/classes/%s", classID)
	return c.doRequest(ctx, http.MethodDelete, path, nil, &resp, bearer(token))
}

// CreateSubject создает предмет (только администратор)
func (c *Client) CreateSubject(ctx context.Context, token string, req api.SubjectRequest) (*api.Subject, error) {
	var resp api.Subject
	if err := c.doRequest(ctx, http.MethodPost, "/api/subjects", req, &resp, bearer(token)); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListSubjects возвращает все предметы (только администратор)
func (c *Client) ListSubjects(ctx context.Context, token string) ([]api.Subject, error) {
	var resp []api.Subject
	if err := c.doRequest(ctx, http.MethodGet, "/api/subjects", nil, &resp, bearer(token)); err != nil {
		return nil, err
	}
	return resp, nil
}

// UpdateSubject изменяет названия предмета (только администратор)
func (c *Client) UpdateSubject(ctx context.Context, token, subjectID string, req api.SubjectRequest) (*api.Subject, error) {
	var resp api.Subject
	path := fmt.Sprintf("/api/subjects/%s", subjectID)
	if err := c.doRequest(ctx, http.MethodPut, path, req, &resp, bearer(token)); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteSubject удаляет предмет (только администратор)
func (c *Client) DeleteSubject(ctx context.Context, token, subjectID string) error {
	var resp api.SuccessResponse
	path := fmt.Sprintf("/api/subjects/%s", subjectID)
	return c.doRequest(ctx, http.MethodDelete, path, nil, &resp, bearer(token))
}
