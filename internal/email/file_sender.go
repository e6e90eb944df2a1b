package email

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/afero"
)

// FileSender writes each email as a file into an outbox directory. It is
// meant for local development where neither logs nor a real provider are
// convenient for clicking reset links.
type FileSender struct {
	fs            afero.Fs
	dir           string
	senderAddress string
	now           func() time.Time

	mu  sync.Mutex
	seq int
}

// NewFileSender creates a FileSender rooted at dir on fs.
func NewFileSender(fs afero.Fs, dir, senderAddress string) *FileSender {
	return &FileSender{fs: fs, dir: dir, senderAddress: senderAddress, now: time.Now}
}

// Send writes the message to <dir>/<timestamp>-<seq>.eml.
func (s *FileSender) Send(to, subject, htmlBody string) error {
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create outbox %s: %w", s.dir, err)
	}

	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	now := s.now().UTC()
	name := filepath.Join(s.dir, fmt.Sprintf("%s-%04d.eml", now.Format("20060102T150405"), seq))

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", s.senderAddress)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	fmt.Fprintf(&b, "Date: %s\r\n", now.Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	b.WriteString(htmlBody)

	if err := afero.WriteFile(s.fs, name, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write email %s: %w", name, err)
	}
	return nil
}
