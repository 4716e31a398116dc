package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"cardfeed/internal/utils"
)

// MarketDataService 行情数据服务，对接外部股票行情 API
type MarketDataService struct {
	client  *http.Client
	cache   *utils.Cache
	baseURL string
	apiKey  string
}

// NewMarketDataService 创建行情服务实例
func NewMarketDataService(cache *utils.Cache, baseURL, apiKey string) *MarketDataService {
	// 自定义 HTTP 客户端，设置超时
	httpClient := &http.Client{
		Timeout: 15 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			IdleConnTimeout:     30 * time.Second,
			MaxIdleConnsPerHost: 2,
		},
	}

	return &MarketDataService{
		client:  httpClient,
		cache:   cache,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
	}
}

// Quote 单只股票的实时报价
type Quote struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent string  `json:"change_percent"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Volume        int64   `json:"volume"`
}

// quoteResponse 行情 API 的原始响应结构
type quoteResponse struct {
	GlobalQuote struct {
		Symbol        string `json:"01. symbol"`
		High          string `json:"03. high"`
		Low           string `json:"04. low"`
		Price         string `json:"05. price"`
		Volume        string `json:"06. volume"`
		Change        string `json:"09. change"`
		ChangePercent string `json:"10. change percent"`
	} `json:"Global Quote"`
}

// GetQuote 获取报价，结果缓存 1 分钟，减少外部 API 调用
func (s *MarketDataService) GetQuote(symbol string) (*Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}

	cacheKey := fmt.Sprintf("quote:%s", symbol)
	if cached := s.cache.Get(cacheKey); cached != nil {
		if quote, ok := cached.(*Quote); ok {
			return quote, nil
		}
	}

	reqURL := fmt.Sprintf("%s/query?function=GLOBAL_QUOTE&symbol=%s&apikey=%s",
		s.baseURL, url.QueryEscape(symbol), url.QueryEscape(s.apiKey))

	resp, err := s.client.Get(reqURL)
	if err != nil {
		return nil, fmt.Errorf("market data request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("market data API returned status %d", resp.StatusCode)
	}

	var raw quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode market data response: %w", err)
	}
	if raw.GlobalQuote.Symbol == "" {
		return nil, fmt.Errorf("no quote data for symbol %s", symbol)
	}

	quote := &Quote{
		Symbol:        raw.GlobalQuote.Symbol,
		Price:         parseFloat(raw.GlobalQuote.Price),
		Change:        parseFloat(raw.GlobalQuote.Change),
		ChangePercent: raw.GlobalQuote.ChangePercent,
		High:          parseFloat(raw.GlobalQuote.High),
		Low:           parseFloat(raw.GlobalQuote.Low),
		Volume:        parseInt(raw.GlobalQuote.Volume),
	}

	s.cache.Set(cacheKey, quote, 1*time.Minute)
	return quote, nil
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

func parseInt(s string) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return v
}
