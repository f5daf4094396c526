package dispatch

import (
	"context"
	"io"
	"sync"

	"collabchat/internal/message"
	"collabchat/internal/transport"
)

type UploadStatus string

const (
	UploadPending UploadStatus = "pending"
	UploadSuccess UploadStatus = "success"
	UploadError   UploadStatus = "error"
)

type UploadEntry struct {
	Filename   string
	Status     UploadStatus
	Attachment message.Attachment
	Err        error
}

// UploadList tracks per-file upload state while a message is being composed.
// Each file fails or succeeds on its own; one rejected file never blocks the
// others or the eventual send. The list is private to the composing intent
// and discarded once the message is sent or the compose is abandoned.
type UploadList struct {
	mu      sync.Mutex
	durable transport.Durable
	entries []*UploadEntry
}

func NewUploadList(durable transport.Durable) *UploadList {
	return &UploadList{durable: durable}
}

// Add uploads one file and tracks its outcome. The returned entry is live:
// its status flips when the upload resolves.
func (u *UploadList) Add(ctx context.Context, channelID, filename string, r io.Reader) *UploadEntry {
	entry := &UploadEntry{Filename: filename, Status: UploadPending}
	u.mu.Lock()
	u.entries = append(u.entries, entry)
	u.mu.Unlock()

	att, err := u.durable.Upload(ctx, channelID, filename, r)
	u.mu.Lock()
	defer u.mu.Unlock()
	if err != nil {
		entry.Status = UploadError
		entry.Err = err
		return entry
	}
	entry.Status = UploadSuccess
	entry.Attachment = att
	return entry
}

// Successful returns the attachments eligible to ride a send.
func (u *UploadList) Successful() []message.Attachment {
	u.mu.Lock()
	defer u.mu.Unlock()
	var out []message.Attachment
	for _, e := range u.entries {
		if e.Status == UploadSuccess {
			out = append(out, e.Attachment)
		}
	}
	return out
}

func (u *UploadList) Entries() []*UploadEntry {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]*UploadEntry, len(u.entries))
	copy(out, u.entries)
	return out
}

// Discard drops all tracked state. Called after a send or when the compose
// is abandoned.
func (u *UploadList) Discard() {
	u.mu.Lock()
	u.entries = nil
	u.mu.Unlock()
}
