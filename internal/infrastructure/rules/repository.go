// Package rules implements the on-disk rule repository: category-scoped
// storage, sequential identity assignment, and the YAML artifact codec.
//
// Numbering is directory-scan based: the next number is one greater than the
// highest leading numeric token observed, so gaps from deleted files are
// preserved, never backfilled. The scan-then-write sequence is guarded by an
// in-process mutex; across processes the repository assumes a single writer
// per category directory.
package rules

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/tastemaker/taste/internal/domain"
	"github.com/tastemaker/taste/internal/ports"
)

var numberedFile = regexp.MustCompile(`^(\d+)-`)

// Repository persists rules under <root>/<category>/.
type Repository struct {
	root     string
	prefixes map[string]string
	mu       sync.Mutex
}

// NewRepository builds a repository rooted at root. The prefix table is
// copied so the repository owns an immutable view of it.
func NewRepository(root string, prefixes map[string]string) *Repository {
	owned := make(map[string]string, len(prefixes))
	for k, v := range prefixes {
		owned[k] = v
	}
	return &Repository{root: root, prefixes: owned}
}

// CategoryDir resolves the storage directory for a category. Unrecognized
// categories are stored literally; only the ID prefix falls back to MISC.
func (r *Repository) CategoryDir(category string) string {
	return filepath.Join(r.root, category)
}

// PrefixFor returns the identifier prefix for a category.
func (r *Repository) PrefixFor(category string) string {
	if prefix, ok := r.prefixes[category]; ok {
		return prefix
	}
	return domain.MiscPrefix
}

// NextNumber returns one greater than the highest leading numeric token
// among the .yaml files in dir. Files without a leading `<digits>-` token
// are ignored, not counted. An absent or empty directory yields 1.
func (r *Repository) NextNumber(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 1, nil
		}
		return 0, fmt.Errorf("%w: scan %s: %v", domain.ErrPersistenceFailed, dir, err)
	}

	highest := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		m := numberedFile.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return highest + 1, nil
}

// Save assigns the rule's final identity and writes its artifact, returning
// the artifact path. The file is written in a single call from a complete
// in-memory buffer; no partial artifact is ever left behind.
func (r *Repository) Save(rule domain.Rule) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	dir := r.CategoryDir(rule.Category)
	number, err := r.NextNumber(dir)
	if err != nil {
		return "", err
	}

	rule.ID = fmt.Sprintf("%s%03d", r.PrefixFor(rule.Category), number)

	data, err := Encode(rule)
	if err != nil {
		return "", fmt.Errorf("%w: encode %s: %v", domain.ErrPersistenceFailed, rule.ID, err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create %s: %v", domain.ErrPersistenceFailed, dir, err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%03d-%s.yaml", number, strings.ToLower(rule.ID)))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("%w: write %s: %v", domain.ErrPersistenceFailed, path, err)
	}
	return path, nil
}

// List walks the rules root and parses every artifact, sorted by rule ID.
// A missing root is an empty repository, not an error.
func (r *Repository) List() ([]domain.StoredRule, error) {
	categories, err := os.ReadDir(r.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: scan %s: %v", domain.ErrPersistenceFailed, r.root, err)
	}

	var stored []domain.StoredRule
	for _, cat := range categories {
		if !cat.IsDir() {
			continue
		}
		dir := filepath.Join(r.root, cat.Name())
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("%w: scan %s: %v", domain.ErrPersistenceFailed, dir, err)
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("%w: read %s: %v", domain.ErrPersistenceFailed, path, err)
			}
			rule, err := Decode(data)
			if err != nil {
				return nil, fmt.Errorf("%w: parse %s: %v", domain.ErrPersistenceFailed, path, err)
			}
			rule.Category = cat.Name()
			stored = append(stored, domain.StoredRule{Rule: rule, Path: path})
		}
	}

	sort.Slice(stored, func(i, j int) bool { return stored[i].ID < stored[j].ID })
	return stored, nil
}

var _ ports.RuleRepository = (*Repository)(nil)
