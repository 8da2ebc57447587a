// Package sms reads SMS backup XML files and supplies raw message bodies to
// the parsing pipeline.
package sms

import (
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/njorogek/pesaflow/internal/common"
)

// DefaultSender is the carrier identity M-Pesa notifications arrive from.
const DefaultSender = "MPESA"

// Message is a single SMS from a backup file.
type Message struct {
	Address string `xml:"address,attr"`
	Body    string `xml:"body,attr"`
	Date    string `xml:"date,attr"` // epoch milliseconds
}

// Backup is the root of the SMS backup XML document.
type Backup struct {
	XMLName  xml.Name  `xml:"smses"`
	Messages []Message `xml:"sms"`
}

// Timestamp converts the epoch-millisecond date attribute to a time.Time.
// Messages with an unparseable date return the zero time.
func (m Message) Timestamp() time.Time {
	ms, err := strconv.ParseInt(m.Date, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(ms/1000, 0)
}

// Options filter which messages a read returns.
type Options struct {
	// Sender keeps only messages from this address. Empty keeps all.
	Sender string
	// MaxCount caps the number of returned messages. Zero means no cap.
	MaxCount int
}

// ReadFile loads a backup file and returns its messages after filtering.
// Exact duplicate rows (same sender, body and timestamp) are dropped;
// backup tools commonly emit them when runs overlap. No ordering or
// cross-message dedup beyond that is guaranteed.
func ReadFile(path string, opts Options) ([]Message, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrBadBackup, err)
	}
	return Read(data, opts)
}

// Read parses backup XML content and applies the same filtering as ReadFile.
func Read(data []byte, opts Options) ([]Message, error) {
	var backup Backup
	if err := xml.Unmarshal(data, &backup); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrBadBackup, err)
	}

	seen := make(map[string]bool, len(backup.Messages))
	messages := make([]Message, 0, len(backup.Messages))

	for _, msg := range backup.Messages {
		if opts.Sender != "" && msg.Address != opts.Sender {
			continue
		}

		signature := fmt.Sprintf("%s|%s|%s", msg.Date, msg.Address, msg.Body)
		if seen[signature] {
			continue
		}
		seen[signature] = true

		messages = append(messages, msg)
		if opts.MaxCount > 0 && len(messages) >= opts.MaxCount {
			break
		}
	}

	return messages, nil
}

// Bodies extracts just the message bodies, in backup order.
func Bodies(messages []Message) []string {
	bodies := make([]string, len(messages))
	for i, msg := range messages {
		bodies[i] = msg.Body
	}
	return bodies
}
