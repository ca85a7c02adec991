package narration

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSynth 測試用的語音合成替身
type fakeSynth struct {
	audio []byte
	err   error
	calls int
}

func (f *fakeSynth) Synthesize(ctx context.Context, text string) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.audio, nil
}

// fakeSink 記錄播放與中斷次數，可手動觸發播放結束
type fakeSink struct {
	mu         sync.Mutex
	startCalls int
	stopCalls  int
	startErr   error
	lastHandle *Handle
	lastOnDone func()
}

func (f *fakeSink) Start(h *Handle, onDone func()) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.startCalls++
	if f.startErr != nil {
		return f.startErr
	}
	f.lastHandle = h
	f.lastOnDone = onDone
	return nil
}

func (f *fakeSink) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopCalls++
}

func (f *fakeSink) finish() {
	f.mu.Lock()
	onDone := f.lastOnDone
	f.mu.Unlock()
	if onDone != nil {
		onDone()
	}
}

func TestReadPlaysAndReleasesOnCompletion(t *testing.T) {
	sink := &fakeSink{}
	player := NewPlayer(&fakeSynth{audio: []byte("wav-bytes")}, sink)

	player.Read(context.Background(), "hello")

	require.Equal(t, 1, sink.startCalls)
	require.NotNil(t, sink.lastHandle)
	assert.Equal(t, []byte("wav-bytes"), sink.lastHandle.Data)

	sink.finish()

	// 播放結束後資源被釋放
	assert.Nil(t, sink.lastHandle.Data)
}

func TestReadReplacesPreviousHandle(t *testing.T) {
	sink := &fakeSink{}
	player := NewPlayer(&fakeSynth{audio: []byte("audio")}, sink)

	player.Read(context.Background(), "first")
	first := sink.lastHandle
	player.Read(context.Background(), "second")

	// 新朗讀先中斷並釋放上一份
	assert.Equal(t, 1, sink.stopCalls)
	assert.Nil(t, first.Data)
	assert.Equal(t, 2, sink.startCalls)
	assert.NotNil(t, sink.lastHandle.Data)
}

func TestReadSynthesisFailureDoesNotPlay(t *testing.T) {
	sink := &fakeSink{}
	player := NewPlayer(&fakeSynth{err: errors.New("quota exceeded")}, sink)

	player.Read(context.Background(), "hello")

	assert.Equal(t, 0, sink.startCalls)
	assert.Equal(t, 0, sink.stopCalls)
}

func TestReadSinkFailureReleasesHandle(t *testing.T) {
	sink := &fakeSink{startErr: errors.New("no audio device")}
	player := NewPlayer(&fakeSynth{audio: []byte("audio")}, sink)

	player.Read(context.Background(), "hello")

	// 播放失敗後不留存資源，下一次朗讀不需要中斷
	player.sink.(*fakeSink).startErr = nil
	player.Read(context.Background(), "again")
	assert.Equal(t, 0, sink.stopCalls)
}

func TestUnloadIsIdempotent(t *testing.T) {
	sink := &fakeSink{}
	player := NewPlayer(&fakeSynth{audio: []byte("audio")}, sink)

	player.Read(context.Background(), "hello")
	handle := sink.lastHandle

	player.Unload(handle)
	player.Unload(handle)

	assert.Nil(t, handle.Data)
}

func TestCloseStopsAndReleases(t *testing.T) {
	sink := &fakeSink{}
	player := NewPlayer(&fakeSynth{audio: []byte("audio")}, sink)

	player.Read(context.Background(), "hello")
	handle := sink.lastHandle

	player.Close()

	assert.Equal(t, 1, sink.stopCalls)
	assert.Nil(t, handle.Data)

	// 重複關閉是安全的
	player.Close()
	assert.Equal(t, 1, sink.stopCalls)
}
