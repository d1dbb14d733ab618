package trace

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"repotutor/internal/analysis"
	"repotutor/internal/storage"
)

const contentCacheSize = 128

const (
	artifactKeyPrefix = "artifact:"
	fileKeyPrefix     = "file:"
)

// Manager registers artifacts with verified evidence and answers both
// directions of lookup: artifact to code and code to artifacts. One
// manager serves one analysis session; managers never share state.
type Manager struct {
	mu        sync.Mutex
	root      string
	store     storage.Store
	logger    *slog.Logger
	pathIndex map[string]string
	contents  *lru.Cache[string, string]
}

func NewManager(root string, store storage.Store, logger *slog.Logger) (*Manager, error) {
	contents, err := lru.New[string, string](contentCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create content cache: %w", err)
	}
	return &Manager{
		root:      root,
		store:     store,
		logger:    logger,
		pathIndex: buildPathIndex(root),
		contents:  contents,
	}, nil
}

// SetRoot switches the active repository root. The path index and content
// cache are rebuilt only on an actual change.
func (m *Manager) SetRoot(root string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if root == m.root {
		return
	}
	m.root = root
	m.pathIndex = buildPathIndex(root)
	m.contents.Purge()
}

// Register verifies each piece of evidence and stores the trace. Evidence
// that fails verification is dropped individually; when everything is
// dropped the artifact is still recorded, flagged invalid with a reason.
// Re-registering identical inputs yields an identical trace.
func (m *Manager) Register(artifactID, artifactType string, evidence []analysis.CodeEvidence) (ArtifactTrace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	trace := ArtifactTrace{
		ArtifactID:   artifactID,
		ArtifactType: artifactType,
		Valid:        true,
		RegisteredAt: time.Now().UTC().Truncate(time.Second),
	}

	var dropped []string
	for _, ev := range evidence {
		verified, reason := m.verify(ev)
		if reason != "" {
			dropped = append(dropped, fmt.Sprintf("%s:%d: %s", ev.FilePath, ev.LineStart, reason))
			m.logger.Warn("dropping evidence", "artifact", artifactID, "file", ev.FilePath, "reason", reason)
			continue
		}
		trace.Evidence = append(trace.Evidence, verified)
	}

	if len(trace.Evidence) == 0 {
		trace.Valid = false
		if len(evidence) == 0 {
			trace.Reason = "no evidence supplied"
		} else {
			trace.Reason = "all evidence failed verification: " + strings.Join(dropped, "; ")
		}
	}

	// Preserve registration time across idempotent re-registrations so the
	// stored trace compares equal.
	if existing, ok, err := m.load(artifactID); err == nil && ok && sameEvidence(existing.Evidence, trace.Evidence) {
		trace.RegisteredAt = existing.RegisteredAt
		trace.Outdated = existing.Outdated
		trace.LastValidatedAt = existing.LastValidatedAt
	}

	if err := m.persist(trace); err != nil {
		return ArtifactTrace{}, err
	}
	return trace, nil
}

// verify checks one evidence entry against the repository. A non-empty
// snippet lets evidence for a since-deleted file pass the existence check;
// snippets for existing files must still match current content.
func (m *Manager) verify(ev analysis.CodeEvidence) (analysis.CodeEvidence, string) {
	if ev.LineStart < 1 {
		return ev, "line start must be at least 1"
	}
	if ev.LineEnd < ev.LineStart {
		return ev, "line end precedes line start"
	}

	rel, found := m.resolvePath(ev.FilePath)
	if !found {
		if ev.Snippet == "" {
			return ev, "file not found"
		}
		return ev, "" // embedded snippet stands on its own
	}
	ev.FilePath = rel

	content, ok := m.fileContent(rel)
	if !ok {
		if ev.Snippet == "" {
			return ev, "file unreadable"
		}
		return ev, ""
	}
	if ev.Snippet != "" {
		if !strings.Contains(content, ev.Snippet) {
			return ev, "snippet no longer matches file content"
		}
		return ev, ""
	}
	ev.Snippet = snippetFor(content, ev.LineStart, ev.LineEnd)
	return ev, ""
}

// Trace returns the stored trace for an artifact, if any.
func (m *Manager) Trace(artifactID string) (ArtifactTrace, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load(artifactID)
}

// ArtifactsFor returns the IDs of artifacts citing the given file. A zero
// lineEnd (with zero lineStart) means the whole file; otherwise only
// artifacts whose evidence overlaps [lineStart, lineEnd] are returned.
func (m *Manager) ArtifactsFor(file string, lineStart, lineEnd int) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rel, found := m.resolvePath(file)
	if !found {
		rel = filepath.ToSlash(file)
	}
	prefix := fileKeyPrefix + rel + ":"
	keys, err := m.store.List(prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list file keys: %w", err)
	}

	var ids []string
	for _, key := range keys {
		artifactID := strings.TrimPrefix(key, prefix)
		if lineStart == 0 && lineEnd == 0 {
			ids = append(ids, artifactID)
			continue
		}
		raw, ok, err := m.store.Get(key)
		if err != nil || !ok {
			continue
		}
		var spans []evidenceSpan
		if err := json.Unmarshal(raw, &spans); err != nil {
			continue
		}
		for _, span := range spans {
			if span.Start <= lineEnd && span.End >= lineStart {
				ids = append(ids, artifactID)
				break
			}
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// Validate re-checks whether every snippet cited by the artifact is still
// present in the supplied current file text, and records the outcome on the
// stored trace: Valid, Reason and LastValidatedAt are updated in the store.
func (m *Manager) Validate(artifactID, currentFileText string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	trace, ok, err := m.load(artifactID)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	valid := len(trace.Evidence) > 0
	for _, ev := range trace.Evidence {
		if ev.Snippet != "" && !strings.Contains(currentFileText, ev.Snippet) {
			valid = false
			break
		}
	}

	trace.Valid = valid
	trace.LastValidatedAt = time.Now().UTC().Truncate(time.Second)
	if valid {
		trace.Reason = ""
	} else if trace.Reason == "" {
		trace.Reason = "evidence no longer matches current file content"
	}
	if err := m.persist(trace); err != nil {
		return valid, err
	}
	return valid, nil
}

// MarkOutdated flags every artifact citing the file and returns their IDs.
func (m *Manager) MarkOutdated(file string) ([]string, error) {
	ids, err := m.ArtifactsFor(file, 0, 0)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		trace, ok, err := m.load(id)
		if err != nil || !ok {
			continue
		}
		if trace.Outdated {
			continue
		}
		trace.Outdated = true
		if err := m.persist(trace); err != nil {
			return nil, err
		}
	}
	return ids, nil
}

func (m *Manager) load(artifactID string) (ArtifactTrace, bool, error) {
	raw, ok, err := m.store.Get(artifactKeyPrefix + artifactID)
	if err != nil {
		return ArtifactTrace{}, false, fmt.Errorf("failed to load trace: %w", err)
	}
	if !ok {
		return ArtifactTrace{}, false, nil
	}
	var trace ArtifactTrace
	if err := json.Unmarshal(raw, &trace); err != nil {
		return ArtifactTrace{}, false, fmt.Errorf("failed to decode trace: %w", err)
	}
	return trace, true, nil
}

func (m *Manager) persist(trace ArtifactTrace) error {
	prior, hadPrior, err := m.load(trace.ArtifactID)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(trace)
	if err != nil {
		return fmt.Errorf("failed to encode trace: %w", err)
	}
	if err := m.store.Set(artifactKeyPrefix+trace.ArtifactID, raw); err != nil {
		return fmt.Errorf("failed to store trace: %w", err)
	}

	spansByFile := map[string][]evidenceSpan{}
	for _, ev := range trace.Evidence {
		spansByFile[ev.FilePath] = append(spansByFile[ev.FilePath], evidenceSpan{Start: ev.LineStart, End: ev.LineEnd})
	}

	// Evidence can move between files on re-registration. Drop reverse-index
	// keys for files the new trace no longer cites.
	if hadPrior {
		for _, ev := range prior.Evidence {
			if _, cited := spansByFile[ev.FilePath]; cited {
				continue
			}
			key := fileKeyPrefix + ev.FilePath + ":" + trace.ArtifactID
			if err := m.store.Delete(key); err != nil {
				return fmt.Errorf("failed to remove stale file key: %w", err)
			}
		}
	}

	for file, spans := range spansByFile {
		raw, err := json.Marshal(spans)
		if err != nil {
			return fmt.Errorf("failed to encode spans: %w", err)
		}
		key := fileKeyPrefix + file + ":" + trace.ArtifactID
		if err := m.store.Set(key, raw); err != nil {
			return fmt.Errorf("failed to store file key: %w", err)
		}
	}
	return nil
}

func sameEvidence(a, b []analysis.CodeEvidence) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
