// Package data resolves creature includes and text templates from the
// configured data directories, falling back to the bundled content.
package data

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/user4815162342/monstorr/internal/creature"
)

//go:embed bundled
var bundled embed.FS

// ErrNotFound is returned when no data directory or bundle holds a reference.
var ErrNotFound = errors.New("reference not found")

// BundledPrefix marks source names that come from the embedded bundle.
const BundledPrefix = "bundled:"

// CreatureExts are the extensions tried, in order, for a creature reference.
var CreatureExts = []string{".creature", ".yaml", ".yml"}

// Loader handles reading creature files and templates from the read-only
// data layer. It implements creature.Resolver and
// interpolate.TemplateResolver.
type Loader struct {
	dataDirs []string
	bundle   fs.FS
	logger   *zap.Logger
}

// NewLoader initializes a new Data Loader with the given data directory
// fallback hierarchy. The bundled content is searched last.
func NewLoader(dataDirs []string, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	sub, _ := fs.Sub(bundled, "bundled")
	return &Loader{
		dataDirs: dataDirs,
		bundle:   sub,
		logger:   logger.Named("data"),
	}
}

// Resolve finds the creature file behind an Include reference. A reference
// with an extension is a relative path; otherwise "Goblin Boss" is looked
// up as creatures/goblin-boss with each of CreatureExts.
func (l *Loader) Resolve(ref string) (creature.Source, error) {
	for _, candidate := range creatureCandidates(ref) {
		name, text, err := l.load(candidate)
		if err == nil {
			l.logger.Debug("Resolved creature", zap.String("ref", ref), zap.String("source", name))
			return creature.Source{Name: name, Text: text}, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return creature.Source{}, err
		}
	}
	return creature.Source{}, fmt.Errorf("creature %q: %w", ref, ErrNotFound)
}

// Template returns the text of templates/<ref>.txt.
func (l *Loader) Template(ref string) (string, error) {
	name, text, err := l.load(path.Join("templates", ref+".txt"))
	if err != nil {
		return "", fmt.Errorf("template %q: %w", ref, err)
	}
	l.logger.Debug("Resolved template", zap.String("ref", ref), zap.String("source", name))
	return strings.TrimRight(string(text), "\n"), nil
}

// Creatures lists the creature references available, without extension,
// sorted and without duplicates.
func (l *Loader) Creatures() ([]string, error) {
	seen := map[string]bool{}
	add := func(name string) {
		for _, ext := range CreatureExts {
			if strings.HasSuffix(name, ext) {
				seen[strings.TrimSuffix(name, ext)] = true
			}
		}
	}
	for _, dir := range l.dataDirs {
		entries, err := os.ReadDir(filepath.Join(dir, "creatures"))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", dir, err)
		}
		for _, e := range entries {
			add(e.Name())
		}
	}
	entries, err := fs.ReadDir(l.bundle, "creatures")
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		add(e.Name())
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

func creatureCandidates(ref string) []string {
	if path.Ext(ref) != "" {
		return []string{ref, path.Join("creatures", ref)}
	}
	slug := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(ref)), " ", "-")
	out := make([]string, len(CreatureExts))
	for i, ext := range CreatureExts {
		out[i] = path.Join("creatures", slug+ext)
	}
	return out
}

// load reads ref from the first data directory holding it, then from the
// bundle. The returned name identifies the file for include cycle checks.
func (l *Loader) load(ref string) (string, []byte, error) {
	for _, dir := range l.dataDirs {
		p := filepath.Join(dir, filepath.FromSlash(ref))
		text, err := os.ReadFile(p)
		if err == nil {
			abs, absErr := filepath.Abs(p)
			if absErr != nil {
				abs = p
			}
			return abs, text, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", nil, fmt.Errorf("failed to read %s: %w", p, err)
		}
	}
	text, err := fs.ReadFile(l.bundle, ref)
	if err == nil {
		return BundledPrefix + ref, text, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil, ErrNotFound
	}
	return "", nil, err
}
