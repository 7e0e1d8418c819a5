package mockauth

import (
	"errors"

	"github.com/artintellm/mockauth/jwt"
	"github.com/artintellm/mockauth/password"
)

// Builder assembles an [Engine]. Construction is allocation-only; nothing is
// validated until [Builder.Build], and a builder must not be reused after a
// successful Build.
type Builder struct {
	config       Config
	store        AccountStore
	notifierSink NotifierSink
	hasherConfig password.Config

	built bool
}

// New returns a Builder pre-loaded with [DefaultConfig] and default Argon2id
// cost parameters. The signing secret and the account store still have to be
// supplied.
func New() *Builder {
	return &Builder{
		config:       DefaultConfig(),
		hasherConfig: password.DefaultConfig(),
	}
}

// WithConfig replaces the builder's configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithStore injects the account store the engine will drive. Required.
func (b *Builder) WithStore(store AccountStore) *Builder {
	b.store = store
	return b
}

// WithNotifierSink injects the sink that receives verification and reset
// tokens. Without one, notifications are dropped silently.
func (b *Builder) WithNotifierSink(sink NotifierSink) *Builder {
	b.notifierSink = sink
	return b
}

// WithHasherConfig overrides the Argon2id cost parameters. Tests use this to
// trade security margin for speed.
func (b *Builder) WithHasherConfig(cfg password.Config) *Builder {
	b.hasherConfig = cfg
	return b
}

// WithMetricsEnabled toggles the operation counters.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build validates the configuration, constructs the hasher and token codec,
// starts the notification dispatcher, and returns the ready engine.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}
	if b.store == nil {
		return nil, errors.New("account store required")
	}
	if err := b.config.Validate(); err != nil {
		return nil, err
	}

	hasher, err := password.NewArgon2(b.hasherConfig)
	if err != nil {
		return nil, err
	}

	jwtManager, err := jwt.NewManager(jwt.Config{
		Secret:        b.config.JWT.Secret,
		SigningMethod: jwt.SigningMethod(b.config.JWT.Algorithm),
		AccessTTL:     b.config.JWT.AccessTTL,
	})
	if err != nil {
		return nil, err
	}

	b.built = true

	return &Engine{
		config:       b.config,
		store:        b.store,
		passwordHash: hasher,
		jwtManager:   jwtManager,
		notifier:     newNotifyDispatcher(b.config.Notify, b.notifierSink),
		metrics:      NewMetrics(b.config.Metrics),
	}, nil
}
