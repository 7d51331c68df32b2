package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ZetoOfficial/vk-friends-cities/internal/config"
	"github.com/ZetoOfficial/vk-friends-cities/internal/models"
	"github.com/sirupsen/logrus"
)

// friends.get отдаёт не больше 5000 друзей за вызов, постраничную выборку не делаем.
const maxFriends = 5000

type VKClient struct {
	AccessToken string
	BaseURL     string
	Lang        string
	Client      *http.Client
}

func NewVKClient(accessToken, lang string) *VKClient {
	return &VKClient{
		AccessToken: accessToken,
		BaseURL:     config.VKBaseURL,
		Lang:        lang,
		Client:      &http.Client{},
	}
}

// APIError описывает ошибку, которую VK API вернул в теле ответа.
type APIError struct {
	Code    int    `json:"error_code"`
	Message string `json:"error_msg"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("vk api error %d: %s", e.Code, e.Message)
}

type envelope struct {
	Response json.RawMessage `json:"response"`
	Error    *APIError       `json:"error"`
}

// makeVKRequest выполняет GET-запрос к VK API и декодирует поле response в response.
func (vk *VKClient) makeVKRequest(ctx context.Context, method string, params url.Values, response interface{}) error {
	params.Set("access_token", vk.AccessToken)
	params.Set("v", config.VKAPIVersion)
	if vk.Lang != "" {
		params.Set("lang", vk.Lang)
	}

	fullURL := fmt.Sprintf("%s%s?%s", vk.BaseURL, method, params.Encode())
	log := logrus.WithField("method", method)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := vk.Client.Do(req)
	if err != nil {
		log.WithError(err).Error("Ошибка выполнения VK API запроса")
		return fmt.Errorf("vk api call: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.WithError(err).Warning("Не удалось закрыть тело ответа")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.WithFields(logrus.Fields{
			"status_code": resp.StatusCode,
			"body":        string(bodyBytes),
		}).Error("Неправильный статус код от VK API")
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		log.WithError(err).Error("Ошибка декодирования JSON ответа от VK API")
		return fmt.Errorf("json decode: %w", err)
	}

	if env.Error != nil {
		log.WithFields(logrus.Fields{
			"error_code": env.Error.Code,
			"error_msg":  env.Error.Message,
		}).Debug("VK API вернул ошибку")
		return env.Error
	}

	if err := json.Unmarshal(env.Response, response); err != nil {
		return fmt.Errorf("json decode response: %w", err)
	}
	return nil
}

// ScreenNameFromURL вытаскивает короткое имя из ссылки вида https://vk.com/durov.
// Голое имя без схемы и хоста возвращается как есть.
func ScreenNameFromURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty profile url")
	}

	if !strings.Contains(raw, "://") && !strings.Contains(raw, "/") {
		return raw, nil
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse profile url: %w", err)
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")
	if host != "vk.com" && host != "vk.ru" {
		return "", fmt.Errorf("not a vk profile url: %s", raw)
	}

	name := strings.Trim(u.Path, "/")
	if name == "" || strings.Contains(name, "/") {
		return "", fmt.Errorf("no profile name in url: %s", raw)
	}
	return name, nil
}

// ResolveScreenName переводит короткое имя (durov или id1) в числовой ID.
func (vk *VKClient) ResolveScreenName(ctx context.Context, name string) (int, error) {
	params := url.Values{}
	params.Set("user_ids", name)

	var users []struct {
		ID int `json:"id"`
	}
	if err := vk.makeVKRequest(ctx, "users.get", params, &users); err != nil {
		return 0, err
	}
	if len(users) == 0 {
		return 0, fmt.Errorf("user %s not found", name)
	}

	logrus.Debugf("Ссылка %s соответствует ID %d", name, users[0].ID)
	return users[0].ID, nil
}

// GetFriendIDs возвращает ID друзей пользователя.
func (vk *VKClient) GetFriendIDs(ctx context.Context, userID int) ([]int, error) {
	params := url.Values{}
	params.Set("user_id", strconv.Itoa(userID))
	params.Set("count", strconv.Itoa(maxFriends))

	var response struct {
		Count int   `json:"count"`
		Items []int `json:"items"`
	}
	if err := vk.makeVKRequest(ctx, "friends.get", params, &response); err != nil {
		return nil, err
	}

	if response.Count > len(response.Items) {
		logrus.Warnf("Получено %d друзей из %d", len(response.Items), response.Count)
	}
	return response.Items, nil
}

// GetFriend возвращает текущий и родной город пользователя; неуказанные поля остаются пустыми.
func (vk *VKClient) GetFriend(ctx context.Context, userID int) (models.Friend, error) {
	params := url.Values{}
	params.Set("user_ids", strconv.Itoa(userID))
	params.Set("fields", "city,home_town")

	var users []struct {
		ID   int `json:"id"`
		City *struct {
			Title string `json:"title"`
		} `json:"city"`
		HomeTown string `json:"home_town"`
	}
	if err := vk.makeVKRequest(ctx, "users.get", params, &users); err != nil {
		return models.Friend{}, err
	}
	if len(users) == 0 {
		return models.Friend{}, fmt.Errorf("empty response for user %d", userID)
	}

	user := users[0]
	friend := models.Friend{ID: userID, HomeTown: user.HomeTown}
	if user.City != nil {
		friend.City = user.City.Title
	}
	return friend, nil
}
