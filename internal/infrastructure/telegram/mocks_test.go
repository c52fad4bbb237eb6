package telegram

import (
	"context"
	"sync"

	"userbot/internal/domain/plugin"
)

// fakeBot records outgoing calls and lets tests inject errors.
type fakeBot struct {
	mu     sync.Mutex
	nextID int64
	calls  []string
	texts  map[int64]string

	sendErr  func(plain bool) error
	editErr  func(plain bool) error
	deleteFn func(messageID int64) error

	forwardFn       func(toChatID, fromChatID, messageID int64) error
	sendFileFn      func(method string, file InputFile, caption string) error
	getChatFn       func(ref string) (*ChatFullInfo, error)
	getChatMemberFn func(chatID, userID int64) (*ChatMember, error)
}

func newFakeBot() *fakeBot {
	return &fakeBot{nextID: 100, texts: map[int64]string{}}
}

func (f *fakeBot) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeBot) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeBot) send(text string, plain bool) (*Message, error) {
	if f.sendErr != nil {
		if err := f.sendErr(plain); err != nil {
			return nil, err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.texts[f.nextID] = text
	return &Message{MessageID: f.nextID}, nil
}

func (f *fakeBot) SendMessage(_ context.Context, _ int64, text string, _ int64) (*Message, error) {
	f.record("send")
	return f.send(text, false)
}

func (f *fakeBot) SendMessagePlain(_ context.Context, _ int64, text string, _ int64) (*Message, error) {
	f.record("sendPlain")
	return f.send(text, true)
}

func (f *fakeBot) edit(messageID int64, text string, plain bool) error {
	if f.editErr != nil {
		if err := f.editErr(plain); err != nil {
			return err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.texts[messageID] = text
	return nil
}

func (f *fakeBot) EditMessageText(_ context.Context, _, messageID int64, text string) error {
	f.record("edit")
	return f.edit(messageID, text, false)
}

func (f *fakeBot) EditMessageTextPlain(_ context.Context, _, messageID int64, text string) error {
	f.record("editPlain")
	return f.edit(messageID, text, true)
}

func (f *fakeBot) DeleteMessage(_ context.Context, _, messageID int64) error {
	f.record("delete")
	if f.deleteFn != nil {
		if err := f.deleteFn(messageID); err != nil {
			return err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.texts, messageID)
	return nil
}

func (f *fakeBot) ForwardMessage(_ context.Context, toChatID, fromChatID, messageID int64) (*Message, error) {
	f.record("forward")
	if f.forwardFn != nil {
		if err := f.forwardFn(toChatID, fromChatID, messageID); err != nil {
			return nil, err
		}
	}
	return &Message{MessageID: 1}, nil
}

func (f *fakeBot) SendFile(_ context.Context, method string, _ int64, file InputFile, caption string, _ int64) (*Message, error) {
	f.record(method)
	if f.sendFileFn != nil {
		if err := f.sendFileFn(method, file, caption); err != nil {
			return nil, err
		}
	}
	return &Message{MessageID: 1}, nil
}

func (f *fakeBot) GetChat(_ context.Context, ref string) (*ChatFullInfo, error) {
	f.record("getChat")
	if f.getChatFn != nil {
		return f.getChatFn(ref)
	}
	return nil, plugin.ErrNotFound
}

func (f *fakeBot) GetChatMember(_ context.Context, chatID, userID int64) (*ChatMember, error) {
	f.record("getChatMember")
	if f.getChatMemberFn != nil {
		return f.getChatMemberFn(chatID, userID)
	}
	return nil, plugin.ErrNotFound
}

func (f *fakeBot) GetChatMemberCount(_ context.Context, _ int64) (int, error) {
	f.record("getChatMemberCount")
	return 42, nil
}

// fakeUpdateSource serves queued batches of updates.
type fakeUpdateSource struct {
	mu      sync.Mutex
	batches [][]Update
	errs    []error
	offsets []int64
	polled  chan struct{}
}

func (f *fakeUpdateSource) DeleteWebhook(context.Context) error { return nil }

func (f *fakeUpdateSource) GetUpdates(ctx context.Context, offset int64, _ int) ([]Update, error) {
	f.mu.Lock()
	f.offsets = append(f.offsets, offset)
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		f.mu.Unlock()
		return nil, err
	}
	if len(f.batches) > 0 {
		batch := f.batches[0]
		f.batches = f.batches[1:]
		f.mu.Unlock()
		return batch, nil
	}
	f.mu.Unlock()

	select {
	case f.polled <- struct{}{}:
	default:
	}
	<-ctx.Done()
	return nil, ctx.Err()
}

func (f *fakeUpdateSource) Offsets() []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int64(nil), f.offsets...)
}

type fakeUpdateHandler struct {
	mu      sync.Mutex
	handled []int64
	fn      func(u *Update) error
}

func (f *fakeUpdateHandler) HandleUpdate(_ context.Context, u *Update) error {
	f.mu.Lock()
	f.handled = append(f.handled, u.UpdateID)
	f.mu.Unlock()
	if f.fn != nil {
		return f.fn(u)
	}
	return nil
}

func (f *fakeUpdateHandler) Handled() []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int64(nil), f.handled...)
}

type memoryOffsetStore struct {
	mu     sync.Mutex
	offset int64
}

func (m *memoryOffsetStore) GetOffset(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.offset, nil
}

func (m *memoryOffsetStore) SaveOffset(_ context.Context, offset int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.offset = offset
	return nil
}

func (m *memoryOffsetStore) Get() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.offset
}

type countingRecorder struct {
	mu     sync.Mutex
	counts map[string]int
}

func (c *countingRecorder) IncUpdate(source string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.counts == nil {
		c.counts = map[string]int{}
	}
	c.counts[source]++
}

type fakeDispatcher struct {
	mu       sync.Mutex
	messages []*plugin.Message
	fn       func(ctx context.Context, msg *plugin.Message, host plugin.Host)
}

func (d *fakeDispatcher) Dispatch(ctx context.Context, msg *plugin.Message, host plugin.Host) bool {
	d.mu.Lock()
	d.messages = append(d.messages, msg)
	d.mu.Unlock()
	if d.fn != nil {
		d.fn(ctx, msg, host)
	}
	return true
}
