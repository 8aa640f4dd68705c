package document

import (
	"errors"
	"sync"
	"time"
)

// DocType names one of the downloadable facility documents.
type DocType string

const (
	DocRules    DocType = "rules"
	DocPrices   DocType = "prices"
	DocBenefits DocType = "benefits"
	DocSchedule DocType = "schedule"
)

// PDFMimeType is the only accepted upload type.
const PDFMimeType = "application/pdf"

// MaxBytes caps a footer PDF.
const MaxBytes = 20 << 20

// ResetDelay is how long a terminal status stays visible before reverting to idle.
const ResetDelay = 3 * time.Second

// Domain errors
var (
	ErrUnknownDocType = errors.New("unknown document type")
	ErrNotPDF         = errors.New("only PDF files are accepted")
	ErrEmptyFile      = errors.New("file is empty")
	ErrFileTooLarge   = errors.New("file exceeds 20 MiB")
)

// All lists the document types in display order.
var All = []DocType{DocRules, DocPrices, DocBenefits, DocSchedule}

var titles = map[DocType]string{
	DocRules:    "Правила посещения",
	DocPrices:   "Прайс-лист",
	DocBenefits: "Льготы",
	DocSchedule: "Расписание",
}

// ParseDocType validates a raw document type string.
func ParseDocType(s string) (DocType, error) {
	d := DocType(s)
	if _, ok := titles[d]; !ok {
		return "", ErrUnknownDocType
	}
	return d, nil
}

// Title is the Russian display label for the document.
func (d DocType) Title() string {
	return titles[d]
}

// ValidateUpload rejects anything that is not a non-empty PDF within MaxBytes.
// PRE: mimeType is the declared content type of the uploaded part
// POST: returns nil only for application/pdf with 0 < len(data) <= MaxBytes
func ValidateUpload(mimeType string, data []byte) error {
	if mimeType != PDFMimeType {
		return ErrNotPDF
	}
	if len(data) == 0 {
		return ErrEmptyFile
	}
	if len(data) > MaxBytes {
		return ErrFileTooLarge
	}
	return nil
}

// Status is the per-document upload state shown in the admin panel.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusUploading Status = "uploading"
	StatusSuccess   Status = "success"
	StatusError     Status = "error"
)

// IsTerminal reports whether the status schedules a reset to idle.
func (s Status) IsTerminal() bool {
	return s == StatusSuccess || s == StatusError
}

// StatusTracker holds the upload status for every document type.
// INVARIANT: every terminal status reverts to idle after the reset delay unless superseded
type StatusTracker struct {
	mu     sync.Mutex
	delay  time.Duration
	status map[DocType]Status
	timers map[DocType]*time.Timer
}

// NewStatusTracker creates a tracker with all documents idle.
// PRE: delay > 0
func NewStatusTracker(delay time.Duration) *StatusTracker {
	return &StatusTracker{
		delay:  delay,
		status: make(map[DocType]Status),
		timers: make(map[DocType]*time.Timer),
	}
}

// Set records a new status. A pending reset for the same document is cancelled first.
func (t *StatusTracker) Set(d DocType, s Status) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if timer, ok := t.timers[d]; ok {
		timer.Stop()
		delete(t.timers, d)
	}
	t.status[d] = s
	if !s.IsTerminal() {
		return
	}

	var timer *time.Timer
	timer = time.AfterFunc(t.delay, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		// A newer Set replaced this timer.
		if t.timers[d] != timer {
			return
		}
		delete(t.timers, d)
		t.status[d] = StatusIdle
	})
	t.timers[d] = timer
}

// Get returns the current status, idle if never set.
func (t *StatusTracker) Get(d DocType) Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	if s, ok := t.status[d]; ok {
		return s
	}
	return StatusIdle
}

// Snapshot returns the status of every document type.
func (t *StatusTracker) Snapshot() map[DocType]Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[DocType]Status, len(All))
	for _, d := range All {
		s, ok := t.status[d]
		if !ok {
			s = StatusIdle
		}
		out[d] = s
	}
	return out
}

// Stop cancels every pending reset.
func (t *StatusTracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for d, timer := range t.timers {
		timer.Stop()
		delete(t.timers, d)
	}
}
