// Package refdocs holds the static platform reference documents: per-platform
// publishing constraints consulted during scheduling validation. Documents are
// loaded lazily once per process and shared as an immutable snapshot; Reload
// swaps the whole snapshot and is only triggered by an admin endpoint.
package refdocs

import (
	"encoding/json"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
)

type PlatformSpec struct {
	Platform         string   `json:"platform"`
	MaxCaptionLength int      `json:"max_caption_length"`
	MaxMediaItems    int      `json:"max_media_items"`
	AllowedKinds     []string `json:"allowed_kinds"`
}

type Specs struct {
	byPlatform map[string]*PlatformSpec
}

func (s *Specs) Get(platform string) (*PlatformSpec, bool) {
	spec, ok := s.byPlatform[platform]
	return spec, ok
}

func (s *Specs) Platforms() []string {
	platforms := make([]string, 0, len(s.byPlatform))
	for platform := range s.byPlatform {
		platforms = append(platforms, platform)
	}
	return platforms
}

func (spec *PlatformSpec) AllowsKind(kind string) bool {
	for _, allowed := range spec.AllowedKinds {
		if allowed == kind {
			return true
		}
	}
	return false
}

type Store struct {
	path     string
	loadOnce sync.Once
	snapshot atomic.Pointer[Specs]
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Specs returns the current snapshot, loading the document file on first use.
// Readers never see a half-built snapshot; the pointer swap is the only write.
func (st *Store) Specs() *Specs {
	st.loadOnce.Do(func() {
		specs, err := loadFile(st.path)
		if err != nil {
			slog.Info(err.Error())
			specs = builtinSpecs()
		}
		st.snapshot.Store(specs)
	})
	return st.snapshot.Load()
}

// Reload re-reads the document file and replaces the snapshot. On failure the
// previous snapshot stays in place.
func (st *Store) Reload() error {
	st.Specs()

	specs, err := loadFile(st.path)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	st.snapshot.Store(specs)
	return nil
}

func loadFile(path string) (*Specs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var docs []PlatformSpec
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, err
	}

	byPlatform := make(map[string]*PlatformSpec, len(docs))
	for i := range docs {
		byPlatform[docs[i].Platform] = &docs[i]
	}
	return &Specs{byPlatform: byPlatform}, nil
}

func builtinSpecs() *Specs {
	docs := []PlatformSpec{
		{Platform: "instagram", MaxCaptionLength: 2200, MaxMediaItems: 10, AllowedKinds: []string{"ad", "video"}},
		{Platform: "facebook", MaxCaptionLength: 63206, MaxMediaItems: 10, AllowedKinds: []string{"ad", "video"}},
		{Platform: "tiktok", MaxCaptionLength: 2200, MaxMediaItems: 10, AllowedKinds: []string{"video"}},
		{Platform: "linkedin", MaxCaptionLength: 3000, MaxMediaItems: 9, AllowedKinds: []string{"ad", "video"}},
		{Platform: "x", MaxCaptionLength: 280, MaxMediaItems: 4, AllowedKinds: []string{"ad", "video"}},
	}

	byPlatform := make(map[string]*PlatformSpec, len(docs))
	for i := range docs {
		byPlatform[docs[i].Platform] = &docs[i]
	}
	return &Specs{byPlatform: byPlatform}
}
