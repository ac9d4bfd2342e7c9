package profile

import (
	"context"
	"sync"

	"overstats/internal/components/assert"
	"overstats/internal/components/telemetry"

	"golang.org/x/sync/singleflight"
)

const (
	report_profile_load = "profile.load"
)

type buildState int

const (
	stateUnbuilt buildState = iota
	stateBuilding
	stateBuilt
	// stateFailed behaves like stateUnbuilt, the next access builds again
	stateFailed
)

// singleflight key, a Profile only ever builds one thing
const buildKey = "model"

// Profile is a player's profile page. The page is fetched and scraped on the
// first query and cached afterwards, every accessor is safe to call
// concurrently.
type Profile struct {
	provider Provider
	builder  Builder
	tel      telemetry.API

	gate  singleflight.Group
	mu    sync.Mutex
	state buildState
	model Model
	// generation is bumped by every forced Load, a build only commits if the
	// generation it started in is still current
	generation uint64
}

type Options struct {
	// UseDecimal makes ratios exact decimals instead of float64.
	UseDecimal bool
	Telemetry  telemetry.API
}

func NewProfile(provider Provider, opts Options) *Profile {
	assert.NotNil(provider)

	tel := opts.Telemetry
	if tel == nil {
		tel = telemetry.SlogAPI{}
	}

	return &Profile{
		provider: provider,
		builder:  NewBuilder(tel, opts.UseDecimal),
		tel:      telemetry.NewScopedAPI("profile", tel),
	}
}

// Load builds the model if it has not been built yet. With force, the cached
// model is dropped and the page is fetched and scraped again. A build that was
// already running when Load was forced never replaces the new model.
func (p *Profile) Load(ctx context.Context, force bool) error {
	if force {
		p.mu.Lock()
		p.generation++
		p.state = stateUnbuilt
		p.model = Model{}
		p.mu.Unlock()
		// the build in flight belongs to the old generation, new callers must
		// not join it
		p.gate.Forget(buildKey)
	}
	_, err := p.load(ctx)
	return err
}

// Raw returns a copy of the whole model.
func (p *Profile) Raw(ctx context.Context) (Model, error) {
	model, err := p.load(ctx)
	if err != nil {
		return Model{}, err
	}
	return model.Clone(), nil
}

// load returns the cached model, building it if needed. The result is shared
// with every other caller and must not be modified or handed out as is.
func (p *Profile) load(ctx context.Context) (Model, error) {
	p.mu.Lock()
	if p.state == stateBuilt {
		model := p.model
		p.mu.Unlock()
		return model, nil
	}
	p.mu.Unlock()

	result, err, _ := p.gate.Do(buildKey, func() (any, error) {
		return p.build(ctx)
	})
	if err != nil {
		return Model{}, err
	}
	return result.(Model), nil
}

func (p *Profile) build(ctx context.Context) (Model, error) {
	p.mu.Lock()
	// another caller may have committed between the check in load and here
	if p.state == stateBuilt {
		model := p.model
		p.mu.Unlock()
		return model, nil
	}
	generation := p.generation
	p.state = stateBuilding
	p.mu.Unlock()

	model, err := p.fetchAndBuild(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.generation != generation {
		// superseded by a forced Load, the callers that joined this build still
		// get its result but the cache belongs to the newer build
		p.tel.ReportDebug("discarding superseded build", generation)
		if err != nil {
			return Model{}, err
		}
		return model, nil
	}
	if err != nil {
		p.state = stateFailed
		p.model = Model{}
		p.tel.ReportWarning(report_profile_load, err)
		return Model{}, err
	}
	p.state = stateBuilt
	p.model = model
	return model, nil
}

func (p *Profile) fetchAndBuild(ctx context.Context) (Model, error) {
	doc, err := p.provider.Document(ctx)
	if err != nil {
		return Model{}, err
	}
	return p.builder.Build(ctx, doc)
}
