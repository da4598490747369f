package status

import (
	"fmt"
	"path/filepath"
)

// FileFormatter defines how sample operations and progress should be formatted
type FileFormatter interface {
	// FormatSampleOperation formats a sample operation status message
	FormatSampleOperation(target string, status SampleStatus) string

	// FormatProgress formats a progress message
	FormatProgress(current, total int) string

	// FormatError formats an error message
	FormatError(err error) string
}

// DefaultFileFormatter provides a default implementation of FileFormatter
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatSampleOperation formats a sample operation status message with emojis
func (f *DefaultFileFormatter) FormatSampleOperation(target string, status SampleStatus) string {
	name := filepath.Base(target)
	if target == "" {
		name = ""
	}
	switch status {
	case StatusLinked:
		return fmt.Sprintf("🔗 Linked %s", name)
	case StatusSymlinked:
		return fmt.Sprintf("↪️  Symlinked %s", name)
	case StatusCopied:
		return fmt.Sprintf("✨ Copied %s", name)
	case StatusPlanned:
		return fmt.Sprintf("📝 Planned %s", name)
	case StatusFailed:
		return fmt.Sprintf("❌ Failed %s", name)
	default:
		return fmt.Sprintf("👍 Untouched %s", name)
	}
}

// FormatProgress formats a progress message with percentage
func (f *DefaultFileFormatter) FormatProgress(current, total int) string {
	var percentage float64
	if total == 0 {
		percentage = 0
		if current > 0 {
			percentage = 100
		}
	} else {
		percentage = float64(current) / float64(total) * 100
	}

	if current >= total {
		return fmt.Sprintf("✅ Progress: %d/%d (%.0f%%)", current, total, percentage)
	}
	return fmt.Sprintf("⏳ Progress: %d/%d (%.0f%%)", current, total, percentage)
}

// FormatError formats an error message with emoji
func (f *DefaultFileFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("❌ Error: %v", err)
}
