package shortcode

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-relnotes/internal/logging"
	parserpkg "github.com/goliatone/go-relnotes/internal/shortcode/parser"
	"github.com/goliatone/go-relnotes/pkg/interfaces"
)

// placeholderFormat is the marker emitted by the parser when extracting shortcodes.
const placeholderFormat = "<!-- shortcode:%d -->"

// Service orchestrates shortcode extraction and definition validation. It
// never renders: parsed invocations describe structure only.
type Service struct {
	registry  interfaces.ShortcodeRegistry
	parser    interfaces.ShortcodeParser
	validator *Validator
	logger    interfaces.Logger
	metrics   interfaces.ShortcodeMetrics
}

// ServiceOption customises service behaviour.
type ServiceOption func(*Service)

// WithLogger attaches a logger used for structured diagnostics.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics wires the metrics recorder used for telemetry.
func WithMetrics(metrics interfaces.ShortcodeMetrics) ServiceOption {
	return func(s *Service) {
		if metrics != nil {
			s.metrics = metrics
		}
	}
}

// WithParser overrides the Markdoc-style parser used to extract shortcodes.
func WithParser(parser interfaces.ShortcodeParser) ServiceOption {
	return func(s *Service) {
		if parser != nil {
			s.parser = parser
		}
	}
}

// WithValidator overrides the parameter validator.
func WithValidator(validator *Validator) ServiceOption {
	return func(s *Service) {
		if validator != nil {
			s.validator = validator
		}
	}
}

// NewService constructs a shortcode service using the supplied registry.
func NewService(registry interfaces.ShortcodeRegistry, opts ...ServiceOption) *Service {
	service := &Service{
		registry:  registry,
		parser:    parserpkg.NewMarkdocParser(),
		validator: NewValidator(),
		logger:    logging.NoOp(),
		metrics:   NoOpMetrics(),
	}

	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Extract replaces shortcode tags with placeholders and returns the parsed invocations.
func (s *Service) Extract(ctx context.Context, content string) (string, []interfaces.ParsedShortcode, error) {
	if strings.TrimSpace(content) == "" {
		return content, nil, nil
	}
	if s.parser == nil {
		return "", nil, fmt.Errorf("shortcode: service not initialised")
	}

	logger := logging.WithFields(s.baseLogger(ctx), map[string]any{
		"operation": "shortcode.extract",
	})

	start := time.Now()
	transformed, parsed, err := s.parser.Extract(content)
	s.metrics.ObserveExtractDuration(time.Since(start))
	if err != nil {
		s.metrics.IncrementParseError()
		logging.WithFields(logger, map[string]any{
			"error": err,
		}).Error("shortcode.service.extract_failed")
		return "", nil, err
	}

	logging.WithFields(logger, map[string]any{
		"shortcodes": len(parsed),
	}).Debug("shortcode.service.extract_completed")
	return transformed, parsed, nil
}

// Validate checks each invocation against its registered definition.
// Unknown shortcodes are reported as issues, not errors, so documents may use
// tags this catalogue does not know about.
func (s *Service) Validate(ctx context.Context, shortcodes []interfaces.ParsedShortcode) []interfaces.ShortcodeIssue {
	if len(shortcodes) == 0 {
		return nil
	}

	logger := logging.WithFields(s.baseLogger(ctx), map[string]any{
		"operation": "shortcode.validate",
	})

	var issues []interfaces.ShortcodeIssue
	for _, sc := range shortcodes {
		def, ok := s.registry.Get(sc.Name)
		if !ok {
			issues = append(issues, interfaces.ShortcodeIssue{
				Name:    sc.Name,
				Line:    sc.Line,
				Message: fmt.Sprintf("unknown shortcode %q", sc.Name),
				Unknown: true,
			})
			s.metrics.IncrementIssue(sc.Name)
			continue
		}

		if !def.AllowInner && strings.TrimSpace(sc.Inner) != "" {
			issues = append(issues, interfaces.ShortcodeIssue{
				Name:    sc.Name,
				Line:    sc.Line,
				Message: fmt.Sprintf("shortcode %q does not allow inner content", sc.Name),
			})
			s.metrics.IncrementIssue(sc.Name)
		}

		if _, err := s.validator.CoerceParams(def, sc.Params); err != nil {
			issues = append(issues, interfaces.ShortcodeIssue{
				Name:    sc.Name,
				Line:    sc.Line,
				Message: err.Error(),
			})
			s.metrics.IncrementIssue(sc.Name)
		}
	}

	if len(issues) > 0 {
		logging.WithFields(logger, map[string]any{
			"issues": len(issues),
		}).Debug("shortcode.service.validate_issues")
	}
	return issues
}

// ValidateDocument extracts and validates every shortcode in the document body.
func (s *Service) ValidateDocument(ctx context.Context, doc *interfaces.Document) ([]interfaces.ShortcodeIssue, error) {
	if doc == nil {
		return nil, fmt.Errorf("shortcode: document is required")
	}

	_, parsed, err := s.Extract(ctx, string(doc.Body))
	if err != nil {
		return nil, err
	}
	return s.Validate(ctx, parsed), nil
}

// Registry exposes the underlying shortcode registry.
func (s *Service) Registry() interfaces.ShortcodeRegistry {
	return s.registry
}

// Ensure Service complies with interfaces.ShortcodeService.
var _ interfaces.ShortcodeService = (*Service)(nil)

type noOpService struct {
	registry *Registry
}

// NewNoOpService returns a shortcode service that reports nothing.
func NewNoOpService() interfaces.ShortcodeService {
	return noOpService{registry: NewRegistry(NewValidator())}
}

func (noOpService) Extract(_ context.Context, content string) (string, []interfaces.ParsedShortcode, error) {
	return content, nil, nil
}

func (noOpService) Validate(_ context.Context, _ []interfaces.ParsedShortcode) []interfaces.ShortcodeIssue {
	return nil
}

func (noOpService) ValidateDocument(_ context.Context, _ *interfaces.Document) ([]interfaces.ShortcodeIssue, error) {
	return nil, nil
}

func (n noOpService) Registry() interfaces.ShortcodeRegistry {
	return n.registry
}

func (s *Service) baseLogger(ctx context.Context) interfaces.Logger {
	logger := s.logger
	if logger == nil {
		logger = logging.NoOp()
	}
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}
	return logger
}
