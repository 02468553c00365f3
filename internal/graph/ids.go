package graph

import "sync"

// PathId is a dense, monotonically assigned identifier for an interned
// path string. Ids are never reused.
type PathId int

// ModuleId is a dense, monotonically assigned identifier for a logical
// module: one per scanned source file, plus one per first-seen external
// package root.
type ModuleId int

// Module is a tiny, copyable value identifying a logical module. Identity
// lives solely in ModuleID; PathID is just the spelling used to reach it at
// a particular call site.
type Module struct {
	PathID   PathId
	ModuleID ModuleId
}

// IdStore interns path strings and modules, and owns the Alias→Module map.
// Path interning and module/alias lookups are read-mostly; writers
// (new paths, newly-seen external deep paths) are serialized under a
// single lock per table.
type IdStore struct {
	pathMu    sync.RWMutex
	paths     []string
	pathIndex map[string]PathId

	aliasMu       sync.RWMutex
	modules       []Module
	aliasToModule map[PathId]Module
}

// NewIdStore creates an empty, ready-to-use store.
func NewIdStore() *IdStore {
	return &IdStore{
		pathIndex:     make(map[string]PathId),
		aliasToModule: make(map[PathId]Module),
	}
}

// InternPath returns the dense PathId for p, assigning a new one the first
// time p is seen. Idempotent and safe for concurrent callers.
func (s *IdStore) InternPath(p string) PathId {
	s.pathMu.RLock()
	if id, ok := s.pathIndex[p]; ok {
		s.pathMu.RUnlock()
		return id
	}
	s.pathMu.RUnlock()

	s.pathMu.Lock()
	defer s.pathMu.Unlock()
	if id, ok := s.pathIndex[p]; ok {
		return id
	}
	id := PathId(len(s.paths))
	s.paths = append(s.paths, p)
	s.pathIndex[p] = id
	return id
}

// TryPathID looks up the PathId for p without interning it.
func (s *IdStore) TryPathID(p string) (PathId, bool) {
	s.pathMu.RLock()
	defer s.pathMu.RUnlock()
	id, ok := s.pathIndex[p]
	return id, ok
}

// PathOf returns the path string for id. Total on any id this store issued.
func (s *IdStore) PathOf(id PathId) string {
	s.pathMu.RLock()
	defer s.pathMu.RUnlock()
	return s.paths[id]
}

// PathCount returns the number of distinct interned paths.
func (s *IdStore) PathCount() int {
	s.pathMu.RLock()
	defer s.pathMu.RUnlock()
	return len(s.paths)
}

// NewSourceModule registers a brand-new Module for a scanned source file.
// Unlike aliases, source modules are never deduplicated against each
// other — the caller (the builder) calls this exactly once per file the
// FileScanner discovered.
func (s *IdStore) NewSourceModule(path string) Module {
	pathID := s.InternPath(path)

	s.aliasMu.Lock()
	defer s.aliasMu.Unlock()
	m := Module{PathID: pathID, ModuleID: ModuleId(len(s.modules))}
	s.modules = append(s.modules, m)
	return m
}

// NewExternalModule returns the Module for an external package root,
// creating it the first time pkgRootPath is seen. Idempotent and safe for
// concurrent callers — the resolver may trigger this from many goroutines
// at once.
func (s *IdStore) NewExternalModule(pkgRootPath string) Module {
	rootID := s.InternPath(pkgRootPath)

	s.aliasMu.Lock()
	defer s.aliasMu.Unlock()
	if m, ok := s.aliasToModule[rootID]; ok {
		return m
	}
	m := Module{PathID: rootID, ModuleID: ModuleId(len(s.modules))}
	s.modules = append(s.modules, m)
	s.aliasToModule[rootID] = m
	return m
}

// RegisterAlias records that path is a valid spelling of m, first-seen
// wins. Used both by the AliasExpander's bulk commit and by the resolver
// when it caches a deep external import path against its package-root
// module.
func (s *IdStore) RegisterAlias(path string, m Module) {
	pathID := s.InternPath(path)

	s.aliasMu.Lock()
	defer s.aliasMu.Unlock()
	if _, ok := s.aliasToModule[pathID]; !ok {
		s.aliasToModule[pathID] = m
	}
}

// TryModuleOfPath looks up the module that the given path spelling
// resolves to, without interning path as a side effect.
func (s *IdStore) TryModuleOfPath(path string) (Module, bool) {
	pathID, ok := s.TryPathID(path)
	if !ok {
		return Module{}, false
	}
	s.aliasMu.RLock()
	defer s.aliasMu.RUnlock()
	m, ok := s.aliasToModule[pathID]
	return m, ok
}

// ModuleOf returns the Module for id. Total on any ModuleId this store
// issued.
func (s *IdStore) ModuleOf(id ModuleId) Module {
	s.aliasMu.RLock()
	defer s.aliasMu.RUnlock()
	return s.modules[id]
}

// ModuleCount returns the number of distinct modules registered so far
// (source files + external package roots).
func (s *IdStore) ModuleCount() int {
	s.aliasMu.RLock()
	defer s.aliasMu.RUnlock()
	return len(s.modules)
}

// AliasEntry pairs one alias spelling with the canonical path of the
// module it resolves to.
type AliasEntry struct {
	Alias      string
	ModulePath string
}

// Aliases returns every entry of the Alias→Module map, each alias
// spelling alongside the canonical path of the module it resolves to.
func (s *IdStore) Aliases() []AliasEntry {
	s.pathMu.RLock()
	s.aliasMu.RLock()
	defer s.aliasMu.RUnlock()
	defer s.pathMu.RUnlock()

	out := make([]AliasEntry, 0, len(s.aliasToModule))
	for pathID, m := range s.aliasToModule {
		out = append(out, AliasEntry{
			Alias:      s.paths[pathID],
			ModulePath: s.paths[m.PathID],
		})
	}
	return out
}
