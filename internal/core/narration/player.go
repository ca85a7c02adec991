package narration

import (
	"context"
	"sync"

	"recipe-finder/internal/pkg/common"

	"go.uber.org/zap"
)

// Handle 一段已合成音訊的暫存資源。
// 每個成功取得的 Handle 都必須在播放結束或被替換時以 Unload 釋放。
type Handle struct {
	ID   string
	Data []byte
}

// Sink 音訊輸出端的抽象
type Sink interface {
	// Start 開始播放，播放結束（或被中斷）時呼叫 onDone 一次
	Start(h *Handle, onDone func()) error
	// Stop 中斷目前的播放；沒有播放時呼叫是安全的
	Stop()
}

// Player 負責語音合成請求與暫存音訊資源的生命週期。
// 同一時間最多持有一份存活的 Handle；
// 新的朗讀開始前會先釋放前一份，避免資源累積。
type Player struct {
	synth Synthesizer
	sink  Sink

	mu      sync.Mutex
	current *Handle
}

// NewPlayer 創建朗讀播放器
func NewPlayer(synth Synthesizer, sink Sink) *Player {
	return &Player{
		synth: synth,
		sink:  sink,
	}
}

// Read 合成並播放一段文字。
// 合成或播放失敗時記錄後靜默返回，不播放任何內容。
func (p *Player) Read(ctx context.Context, text string) {
	audio, err := p.synth.Synthesize(ctx, text)
	if err != nil {
		common.LogError("語音合成失敗",
			zap.Error(err),
			zap.Int("text_length", len(text)),
		)
		return
	}

	handle := &Handle{
		ID:   common.GenerateUUID(),
		Data: audio,
	}

	// 替換前先中斷並釋放上一份資源
	p.mu.Lock()
	previous := p.current
	p.current = handle
	p.mu.Unlock()

	if previous != nil {
		p.sink.Stop()
		p.release(previous)
	}

	if err := p.sink.Start(handle, func() { p.Unload(handle) }); err != nil {
		common.LogError("音訊播放失敗",
			zap.Error(err),
			zap.String("handle_id", handle.ID),
		)
		p.Unload(handle)
	}
}

// Unload 釋放指定的音訊資源；重複釋放是安全的
func (p *Player) Unload(h *Handle) {
	p.mu.Lock()
	if p.current == h {
		p.current = nil
	}
	p.mu.Unlock()
	p.release(h)
}

// Close 中斷播放並釋放仍存活的資源，供服務關閉時呼叫
func (p *Player) Close() {
	p.mu.Lock()
	current := p.current
	p.current = nil
	p.mu.Unlock()

	if current != nil {
		p.sink.Stop()
		p.release(current)
	}
}

// release 丟棄音訊數據讓 GC 回收
func (p *Player) release(h *Handle) {
	if h.Data != nil {
		common.LogDebug("音訊資源已釋放",
			zap.String("handle_id", h.ID),
			zap.Int("bytes", len(h.Data)),
		)
		h.Data = nil
	}
}
