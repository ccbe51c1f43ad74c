package shortcode

import (
	"time"

	"github.com/goliatone/go-relnotes/pkg/interfaces"
)

// NoOpMetrics returns a metrics recorder that drops every observation.
func NoOpMetrics() interfaces.ShortcodeMetrics {
	return noopMetrics{}
}

type noopMetrics struct{}

func (noopMetrics) ObserveExtractDuration(time.Duration) {}

func (noopMetrics) IncrementParseError() {}

func (noopMetrics) IncrementIssue(string) {}
