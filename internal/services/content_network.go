package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"cardfeed/internal/utils"
)

// ContentNetworkService 外部内容网络浏览服务（Reddit 风格 JSON API）
type ContentNetworkService struct {
	client    *http.Client
	cache     *utils.Cache
	baseURL   string
	userAgent string
}

// NewContentNetworkService 创建内容网络服务实例
func NewContentNetworkService(cache *utils.Cache, baseURL, userAgent string) *ContentNetworkService {
	httpClient := &http.Client{
		Timeout: 15 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			IdleConnTimeout:     30 * time.Second,
			MaxIdleConnsPerHost: 2,
		},
	}

	return &ContentNetworkService{
		client:    httpClient,
		cache:     cache,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		userAgent: userAgent,
	}
}

// ExternalItem 外部内容条目，前端以卡片形式展示
type ExternalItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	URL       string `json:"url"`
	Permalink string `json:"permalink"`
	Thumbnail string `json:"thumbnail"`
	Score     int    `json:"score"`
}

// listingResponse Reddit 风格的列表响应
type listingResponse struct {
	Data struct {
		Children []struct {
			Data struct {
				ID        string `json:"id"`
				Title     string `json:"title"`
				Author    string `json:"author"`
				URL       string `json:"url"`
				Permalink string `json:"permalink"`
				Thumbnail string `json:"thumbnail"`
				Score     int    `json:"score"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// FetchListing 拉取某板块的热门条目，结果缓存 2 分钟
func (s *ContentNetworkService) FetchListing(feed string, limit int) ([]ExternalItem, error) {
	feed = strings.TrimSpace(feed)
	if feed == "" {
		return nil, fmt.Errorf("feed is required")
	}
	if limit <= 0 || limit > 100 {
		limit = 25
	}

	cacheKey := fmt.Sprintf("listing:%s:%d", feed, limit)
	if cached := s.cache.Get(cacheKey); cached != nil {
		if items, ok := cached.([]ExternalItem); ok {
			return items, nil
		}
	}

	reqURL := fmt.Sprintf("%s/r/%s/hot.json?limit=%d", s.baseURL, feed, limit)
	req, err := http.NewRequest(http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create listing request: %w", err)
	}
	// 部分内容网络要求自定义 UA，否则返回 429
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("content network request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("content network returned status %d", resp.StatusCode)
	}

	var raw listingResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode listing response: %w", err)
	}

	items := make([]ExternalItem, 0, len(raw.Data.Children))
	for _, child := range raw.Data.Children {
		items = append(items, ExternalItem{
			ID:        child.Data.ID,
			Title:     child.Data.Title,
			Author:    child.Data.Author,
			URL:       child.Data.URL,
			Permalink: child.Data.Permalink,
			Thumbnail: child.Data.Thumbnail,
			Score:     child.Data.Score,
		})
	}

	s.cache.Set(cacheKey, items, 2*time.Minute)
	return items, nil
}
