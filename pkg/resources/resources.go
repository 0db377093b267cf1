package resources

import (
	"dopingscatter/pkg/chart"
	"dopingscatter/pkg/layout"
	"dopingscatter/pkg/livechart"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
)

const (
	ChartPNG = "chart.png"
	ChartSVG = "chart.svg"
	IndexSVG = "index.svg"
)

var ErrNotFound = errors.New("resource not found")

type builder func(p *chart.Plot) ([]byte, error)

type Resource struct {
	name        string
	contentType string
	data        []byte
}

func (r Resource) Name() string {
	return r.name
}

func (r Resource) ContentType() string {
	return r.contentType
}

// Data returns the rendered bytes. Callers must not modify them.
func (r Resource) Data() []byte {
	return r.data
}

type artifact struct {
	name        string
	contentType string
	builder     builder
}

var artifacts = []artifact{
	{name: ChartPNG, contentType: "image/png", builder: layout.BuildChartPNG},
	{name: ChartSVG, contentType: "image/svg+xml", builder: layout.BuildChartSVG},
	{name: IndexSVG, contentType: "image/svg+xml", builder: livechart.RenderSVG},
}

// Set holds every artifact rendered from one plot. It is read only once built.
type Set struct {
	byName map[string]Resource
}

// Build renders all artifacts, stopping at the first failure.
func Build(p *chart.Plot) (*Set, error) {
	s := &Set{byName: make(map[string]Resource, len(artifacts))}
	for _, a := range artifacts {
		data, err := a.builder(p)
		if err != nil {
			return nil, errors.Wrapf(err, "building %s", a.name)
		}
		s.byName[a.name] = Resource{name: a.name, contentType: a.contentType, data: data}
	}
	return s, nil
}

func (s *Set) Get(name string) (Resource, error) {
	r, ok := s.byName[name]
	if !ok {
		return Resource{}, errors.Wrap(ErrNotFound, name)
	}
	return r, nil
}

func (s *Set) Names() []string {
	names := make([]string, 0, len(s.byName))
	for name := range s.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Export writes every artifact into dir, creating it when missing.
func (s *Set) Export(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "creating %s", dir)
	}
	written := make([]string, 0, len(s.byName))
	for _, name := range s.Names() {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, s.byName[name].data, 0644); err != nil {
			return written, errors.Wrapf(err, "writing %s", path)
		}
		written = append(written, path)
	}
	return written, nil
}
