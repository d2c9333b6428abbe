package postindex

import (
	"github.com/goliatone/go-postindex/internal/di"
	"github.com/goliatone/go-postindex/internal/index"
	"github.com/goliatone/go-postindex/internal/scaffold"
	"github.com/goliatone/go-postindex/pkg/interfaces"
)

// IndexService exports the index builder contract for consumers of the postindex package.
type IndexService = index.Service

// ScaffoldService exports the post scaffolder contract.
type ScaffoldService = scaffold.Service

// BuildRequest exports the index build request DTO.
type BuildRequest = index.BuildRequest

// BuildResult exports the index build report.
type BuildResult = index.BuildResult

// ValidateRequest exports the verification request DTO.
type ValidateRequest = index.ValidateRequest

// CreateRequest exports the scaffold request DTO.
type CreateRequest = scaffold.CreateRequest

// CreateResult exports the scaffold report.
type CreateResult = scaffold.CreateResult

// PostSummary exports the per-post record written into the index artifact.
type PostSummary = interfaces.PostSummary

// PostIndex exports the ordered collection of post summaries.
type PostIndex = interfaces.PostIndex

// Module represents the top level runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	if m == nil {
		return nil
	}
	return m.container
}

// Index returns the configured index builder.
func (m *Module) Index() IndexService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.IndexService()
}

// Scaffold returns the configured post scaffolder.
func (m *Module) Scaffold() ScaffoldService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.ScaffoldService()
}

// LoggerProvider returns the resolved logging provider. Nil when the logging
// feature is disabled and no provider override was supplied.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.LoggerProvider()
}
