package narration

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Synthesizer 語音合成的抽象，便於測試時替換
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// VoiceRSSClient 透過 VoiceRSS API 合成語音
type VoiceRSSClient struct {
	config *config.Config
	client *resty.Client
}

// NewVoiceRSSClient 創建語音合成客戶端
func NewVoiceRSSClient(cfg *config.Config) *VoiceRSSClient {
	client := resty.New().
		SetBaseURL(cfg.VoiceRSS.BaseURL).
		SetTimeout(cfg.VoiceRSS.Timeout)

	return &VoiceRSSClient{
		config: cfg,
		client: client,
	}
}

// Synthesize 將文字轉為 WAV 音訊
func (c *VoiceRSSClient) Synthesize(ctx context.Context, text string) ([]byte, error) {
	start := time.Now()

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"key": c.config.VoiceRSS.APIKey,
			"hl":  c.config.VoiceRSS.Language,
			"v":   c.config.VoiceRSS.Voice,
			"c":   "WAV",
			"f":   "44khz_16bit_stereo",
			"src": text,
		}).
		Get("/")

	common.LogUpstreamCall("/tts", time.Since(start), err, "")

	if err != nil {
		return nil, fmt.Errorf("failed to send TTS request: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("TTS API returned status %d", resp.StatusCode())
	}

	// VoiceRSS 在請求有誤時仍返回 200，錯誤訊息放在響應本文
	body := resp.Body()
	if strings.HasPrefix(string(body), "ERROR") {
		return nil, fmt.Errorf("TTS API error: %s", string(body))
	}

	common.LogDebug("語音合成完成",
		zap.Int("text_length", len(text)),
		zap.Int("audio_bytes", len(body)),
	)

	return body, nil
}
