package narration

import (
	"recipe-finder/internal/pkg/common"

	"go.uber.org/zap"
)

// NoopSink 在沒有音訊裝置時使用的空實現。
// Start 立即視為播放完成，讓資源照常被釋放。
type NoopSink struct{}

// NewNoopSink 創建空的音訊輸出
func NewNoopSink() *NoopSink {
	return &NoopSink{}
}

// Start 不播放任何內容，直接回報完成
func (s *NoopSink) Start(h *Handle, onDone func()) error {
	common.LogDebug("無音訊裝置，略過播放",
		zap.String("handle_id", h.ID),
		zap.Int("bytes", len(h.Data)),
	)
	onDone()
	return nil
}

// Stop 沒有可中斷的播放
func (s *NoopSink) Stop() {}
