// Package merge combines per-provider row artifacts into one aggregate
// corpus with run metadata.
package merge

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	gpuprice "github.com/becloudready/gpu-price"
	"github.com/becloudready/gpu-price/fs"
)

// Output artifact names. Files matching these are excluded from input
// enumeration so re-running a merge over its own output directory is
// idempotent.
const (
	AllFileName    = "all.json"
	MetaFileName   = "meta.json"
	metaNameSuffix = "_meta.json"
)

// Meta records one aggregation run. Providers is the sorted distinct set of
// provider tags observed on rows, not the set of source files: a single
// source file may in principle carry rows for more than one provider.
type Meta struct {
	GeneratedAtUTC string   `json:"generated_at_utc"`
	Rows           int      `json:"rows"`
	Providers      []string `json:"providers"`
	Sources        []string `json:"sources"`
}

// Result holds the merged corpus and its metadata. It is created fresh per
// invocation and never mutated after being written.
type Result struct {
	Rows []gpuprice.Row
	Meta Meta
}

// Merger aggregates per-provider JSON artifacts from a directory.
type Merger struct {
	// Reader loads row artifacts. Defaults to fs.NewReader().
	Reader gpuprice.RowReader

	// Now supplies the metadata timestamp. Defaults to time.Now.
	Now func() time.Time
}

// NewMerger creates a Merger with default dependencies.
func NewMerger() *Merger {
	return &Merger{}
}

// Merge loads every provider JSON artifact in dir, in lexicographic order,
// and concatenates their rows preserving intra-source order. Rows missing a
// provider tag are stamped with the source file's stem.
//
// Note: the stem inference means an untagged row in a renamed input file is
// mis-tagged with the new name. This mirrors the merge contract; explicitly
// tagged rows are unaffected.
//
// Returns ENOTFOUND if dir does not exist or is not a directory, and EINVALID
// if a source file is unreadable or holds a row that fails validation.
func (m *Merger) Merge(dir string) (*Result, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, gpuprice.Errorf(gpuprice.ENOTFOUND, "input directory does not exist: %s", dir)
	}

	reader := m.Reader
	if reader == nil {
		reader = fs.NewReader()
	}
	now := m.Now
	if now == nil {
		now = time.Now
	}

	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, gpuprice.Errorf(gpuprice.EINTERNAL, "enumerate %s: %v", dir, err)
	}
	sort.Strings(paths)

	merged := []gpuprice.Row{}
	sources := []string{}
	providerSet := make(map[string]struct{})

	for _, path := range paths {
		base := filepath.Base(path)
		if base == AllFileName || base == MetaFileName || strings.HasSuffix(base, metaNameSuffix) {
			continue
		}

		rows, err := reader.ReadJSON(path)
		if err != nil {
			return nil, gpuprice.Errorf(gpuprice.EINVALID, "failed to load %s: %s", path, gpuprice.ErrorMessage(err))
		}

		stem := strings.TrimSuffix(base, ".json")
		for i := range rows {
			if rows[i].Provider == "" {
				rows[i].Provider = stem
			}
			// Validated after stamping so untagged rows are judged with
			// their inferred provider in place.
			if err := rows[i].Validate(); err != nil {
				return nil, gpuprice.Errorf(gpuprice.EINVALID, "failed to load %s: row %d: %s", path, i, gpuprice.ErrorMessage(err))
			}
			providerSet[rows[i].Provider] = struct{}{}
		}

		merged = append(merged, rows...)
		sources = append(sources, base)
	}

	providers := make([]string, 0, len(providerSet))
	for p := range providerSet {
		providers = append(providers, p)
	}
	sort.Strings(providers)

	return &Result{
		Rows: merged,
		Meta: Meta{
			GeneratedAtUTC: now().UTC().Truncate(time.Second).Format(time.RFC3339),
			Rows:           len(merged),
			Providers:      providers,
			Sources:        sources,
		},
	}, nil
}

// WriteOutputs writes the aggregate corpus to outJSON and the run metadata to
// meta.json in the same directory. Concurrent invocations against the same
// output path are not guaranteed race-free; callers serialize merge runs.
func WriteOutputs(outJSON string, res *Result) error {
	data, err := fs.MarshalRows(res.Rows)
	if err != nil {
		return err
	}

	dir := filepath.Dir(outJSON)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return gpuprice.Errorf(gpuprice.EUNAVAILABLE, "create %s: %v", dir, err)
	}
	if err := os.WriteFile(outJSON, data, 0644); err != nil {
		return gpuprice.Errorf(gpuprice.EUNAVAILABLE, "write %s: %v", outJSON, err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res.Meta); err != nil {
		return gpuprice.Errorf(gpuprice.EINTERNAL, "encode metadata: %v", err)
	}

	metaPath := filepath.Join(dir, MetaFileName)
	if err := os.WriteFile(metaPath, buf.Bytes(), 0644); err != nil {
		return gpuprice.Errorf(gpuprice.EUNAVAILABLE, "write %s: %v", metaPath, err)
	}
	return nil
}
