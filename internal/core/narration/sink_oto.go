package narration

import (
	"bytes"
	"encoding/binary"
	"errors"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

const (
	sinkSampleRate   = 44100
	sinkChannelCount = 2
)

// OtoSink 透過系統音訊裝置播放 WAV 數據
type OtoSink struct {
	ctx    *oto.Context
	mu     sync.Mutex
	active *oto.Player // 正在播放的 player，閒置時為 nil
}

// NewOtoSink 初始化系統音訊輸出；沒有可用音訊裝置時返回錯誤
func NewOtoSink() (*OtoSink, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sinkSampleRate,
		ChannelCount: sinkChannelCount,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-readyChan

	return &OtoSink{ctx: ctx}, nil
}

// Start 播放一份 WAV 音訊，播放結束或被中斷時呼叫 onDone
func (s *OtoSink) Start(h *Handle, onDone func()) error {
	pcm, err := extractPCM(h.Data)
	if err != nil {
		return err
	}

	player := s.ctx.NewPlayer(bytes.NewReader(pcm))

	s.mu.Lock()
	s.active = player
	s.mu.Unlock()

	player.Play()

	go func() {
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}

		s.mu.Lock()
		if s.active == player {
			s.active = nil
		}
		s.mu.Unlock()

		_ = player.Close()
		onDone()
	}()

	return nil
}

// Stop 中斷目前的播放；沒有播放時呼叫是安全的
func (s *OtoSink) Stop() {
	s.mu.Lock()
	active := s.active
	s.mu.Unlock()

	if active != nil {
		active.Pause()
	}
}

// extractPCM 跳過 WAV/RIFF 標頭，取出原始 PCM 數據
func extractPCM(wav []byte) ([]byte, error) {
	if len(wav) < 44 {
		return nil, errors.New("wav data too short")
	}

	// 驗證 RIFF 標頭
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		return nil, errors.New("not a valid WAV file")
	}

	// 逐一走訪 chunk 找到 "data" 區塊
	pos := 12
	for pos < len(wav)-8 {
		chunkID := string(wav[pos : pos+4])
		chunkSize := int(binary.LittleEndian.Uint32(wav[pos+4 : pos+8]))

		if chunkID == "data" {
			start := pos + 8
			end := start + chunkSize
			if end > len(wav) {
				end = len(wav)
			}
			return wav[start:end], nil
		}

		pos += 8 + chunkSize
		// chunk 按字組對齊
		if chunkSize%2 != 0 {
			pos++
		}
	}

	return nil, errors.New("data chunk not found in WAV")
}
