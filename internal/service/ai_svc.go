package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"feedback_flow_v1_202608/internal/config"

	"github.com/go-resty/resty/v2"
)

// aiRequestTimeout 单次摘要请求的超时
const aiRequestTimeout = 60 * time.Second

// ==================== AIService 截图摘要服务 ====================

// AIService 截图摘要服务（Gemini）
// 未配置 ApiKey 时整体停用，采购照常创建，只是没有摘要
type AIService struct {
	Config config.AIConfig

	client *resty.Client
}

// NewAIService 创建 AI 服务
func NewAIService(cfg config.AIConfig) *AIService {
	if cfg.Model == "" {
		cfg.Model = "gemini-3-flash"
	}

	client := resty.New()
	client.SetTimeout(aiRequestTimeout)
	client.SetRetryCount(2)

	return &AIService{
		Config: cfg,
		client: client,
	}
}

// Enabled 是否启用
func (s *AIService) Enabled() bool {
	return s != nil && s.Config.ApiKey != ""
}

// ==================== 摘要生成 ====================

// geminiResponse Gemini generateContent 响应（只取用到的字段）
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// SummarizeScreenshot 为采购截图生成一句话摘要
// screenshot: base64 data URL（data:image/png;base64,...）
func (s *AIService) SummarizeScreenshot(ctx context.Context, screenshot string) (string, error) {
	if !s.Enabled() {
		return "", fmt.Errorf("Gemini API Key 未配置")
	}

	mimeType, data, err := splitDataURL(screenshot)
	if err != nil {
		return "", err
	}

	prompt := "Summarize this purchase screenshot in one short sentence: " +
		"what was bought, the order reference if visible, and the total amount. " +
		"Reply with the sentence only, no markdown."

	url := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s",
		s.Config.Model, s.Config.ApiKey)

	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": []map[string]interface{}{
				{"inline_data": map[string]string{
					"mime_type": mimeType,
					"data":      data,
				}},
				{"text": prompt},
			}},
		},
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(reqBody).
		Post(url)
	if err != nil {
		return "", err
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("Gemini 调用失败: 状态码 %d", resp.StatusCode())
	}

	var parsed geminiResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return "", err
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("Gemini 返回为空")
	}

	return strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text), nil
}

// splitDataURL 拆 data URL，返回 mime 类型和纯 base64 数据
func splitDataURL(dataURL string) (string, string, error) {
	if !strings.HasPrefix(dataURL, "data:") {
		// 没带前缀就当纯 base64 PNG
		return "image/png", dataURL, nil
	}

	rest := strings.TrimPrefix(dataURL, "data:")
	idx := strings.Index(rest, ";base64,")
	if idx < 0 {
		return "", "", fmt.Errorf("截图不是 base64 data URL")
	}
	return rest[:idx], rest[idx+len(";base64,"):], nil
}
