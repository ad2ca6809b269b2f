package workshop

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	fs "github.com/reoring/formschema"
	"github.com/reoring/formschema/locales"
)

// ErrNoStore is returned by NewService without a Store.
var ErrNoStore = errors.New("workshop: store is required")

// Store persists accepted applications.
type Store interface {
	// Insert saves sub and returns its identifier.
	Insert(ctx context.Context, sub Submission) (string, error)
}

// Service validates and stores workshop applications. It is safe for
// concurrent use.
type Service struct {
	store     Store
	fields    []Field
	validator *fs.Validator
	log       *zap.Logger
	metrics   *metrics
}

type serviceConfig struct {
	log      *zap.Logger
	reg      prometheus.Registerer
	describe []fs.PatternDescriber
}

// Option configures a Service.
type Option func(*serviceConfig)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *serviceConfig) {
		if l != nil {
			c.log = l
		}
	}
}

// WithRegisterer registers the service counters with reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(c *serviceConfig) { c.reg = reg }
}

// WithPatternDescriber explains failed pattern checks in messages. When
// given more than once, earlier describers are asked first.
func WithPatternDescriber(d fs.PatternDescriber) Option {
	return func(c *serviceConfig) { c.describe = append(c.describe, d) }
}

// NewService returns a Service storing into store. langs supplies the
// accepted language codes; nil means locales.Default().
func NewService(store Store, langs locales.Lister, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, ErrNoStore
	}
	if langs == nil {
		langs = locales.Default()
	}
	cfg := serviceConfig{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	m := newMetrics()
	if err := m.register(cfg.reg); err != nil {
		return nil, fmt.Errorf("workshop: register metrics: %w", err)
	}

	fields := Fields(langs.Codes())
	var vopts []fs.Option
	if len(cfg.describe) > 0 {
		vopts = append(vopts, fs.WithPatternDescriber(fs.ChainDescribers(cfg.describe...)))
	}
	return &Service{
		store:     store,
		fields:    fields,
		validator: fs.New(SchemaFor(fields), vopts...),
		log:       cfg.log.Named("workshop"),
		metrics:   m,
	}, nil
}

// Fields returns the fields the service validates.
func (s *Service) Fields() []Field { return s.fields }

// Schema returns the submission schema.
func (s *Service) Schema() *fs.Schema { return s.validator.Schema() }

// Validate checks sub and returns it unchanged, or formschema.Issues.
func (s *Service) Validate(sub Submission) (Submission, error) {
	if _, err := s.validator.Validate(map[string]any(sub)); err != nil {
		return nil, err
	}
	return sub, nil
}

// Submit builds a submission from the posted form and user, validates it and
// stores it. A rejected application returns formschema.Issues, which
// FieldErrors turns into per-field messages.
func (s *Service) Submit(ctx context.Context, form url.Values, user *User) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	sub := SubmissionFromForm(form, user, s.fields)

	if _, err := s.Validate(sub); err != nil {
		s.metrics.submissions.WithLabelValues(OutcomeRejected).Inc()
		if iss, ok := fs.AsIssues(err); ok {
			for _, it := range iss {
				s.metrics.issues.WithLabelValues(it.Code).Inc()
			}
			s.log.Info("submission rejected",
				zap.Int("issues", len(iss)),
				zap.Strings("codes", iss.Codes()),
			)
		}
		return "", err
	}

	id, err := s.store.Insert(ctx, sub)
	if err != nil {
		s.metrics.submissions.WithLabelValues(OutcomeFailed).Inc()
		s.log.Error("submission not stored", zap.Error(err))
		return "", fmt.Errorf("workshop: store submission: %w", err)
	}

	s.metrics.submissions.WithLabelValues(OutcomeAccepted).Inc()
	s.log.Info("submission accepted", zap.String("id", id), zap.String("user", stringField(sub, FieldUserName)))
	return id, nil
}

func stringField(sub Submission, name string) string {
	v, _ := sub[name].(string)
	return v
}
