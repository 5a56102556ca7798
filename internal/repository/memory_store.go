package repository

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"glosskeep/internal/model"
)

const (
	termsFile      = "terms.json"
	categoriesFile = "categories.json"
)

// MemoryStore keeps every record in memory, loaded from and optionally
// persisted to JSON files. A single RWMutex gives readers a consistent
// point-in-time view while a writer mutates. Ids are assigned from
// monotonically increasing counters and never reused within a process
// lifetime.
type MemoryStore struct {
	mu     sync.RWMutex
	logger *slog.Logger

	dataDir string
	persist bool

	terms      map[int]*model.Term
	categories map[int]*model.Category
	users      map[int]*model.User

	nextTermID     int
	nextCategoryID int
	nextUserID     int

	// Content of each data file as last written or loaded, so the file
	// watcher can tell the store's own saves apart from hand edits.
	fileHash map[string][sha256.Size]byte
}

// NewMemoryStore creates an empty store. Call Load to read the data files.
func NewMemoryStore(dataDir string, persist bool, logger *slog.Logger) *MemoryStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &MemoryStore{
		logger:         logger,
		dataDir:        dataDir,
		persist:        persist,
		terms:          make(map[int]*model.Term),
		categories:     make(map[int]*model.Category),
		users:          make(map[int]*model.User),
		nextTermID:     1,
		nextCategoryID: 1,
		nextUserID:     1,
		fileHash:       make(map[string][sha256.Size]byte),
	}
}

// persistedTerm is the on-disk term shape. Ids are intentionally absent:
// legacy files identify terms by array position and the save path keeps
// that convention for round-trip compatibility.
type persistedTerm struct {
	Term          string         `json:"term"`
	Category      string         `json:"category"`
	Definition    string         `json:"definition"`
	Aliases       []string       `json:"aliases"`
	Related       []string       `json:"related"`
	Tags          []string       `json:"tags"`
	References    []string       `json:"references"`
	LearningPaths map[string]int `json:"learningpaths,omitempty"`
}

type persistedCategory struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Load reads categories.json and terms.json from the data directory. A
// missing file is not an error; the store just starts empty. Records that
// carry an explicit positive id keep it (migration path for id-carrying
// files); all others get position-based ids, exactly like the legacy
// loader.
func (s *MemoryStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reloadLocked()
}

// Reload re-reads the data files after an on-disk edit. Both files must
// parse before anything is swapped in; a failed read leaves the last good
// state untouched. Records that survive the edit keep their ids (matched
// by explicit id, then by name) and the id counters only move forward, so
// an id freed by an edit is never handed out again. Users are untouched;
// they are seeded at startup and not file-backed. Used by the dev-mode
// file watcher.
func (s *MemoryStore) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reloadLocked()
}

func (s *MemoryStore) reloadLocked() error {
	var categories []model.Category
	catSum, catFound, err := s.readDataFile(categoriesFile, &categories)
	if err != nil {
		return err
	}
	var terms []model.Term
	termSum, termsFound, err := s.readDataFile(termsFile, &terms)
	if err != nil {
		return err
	}

	s.installCategoriesLocked(categories)
	s.installTermsLocked(terms)
	if catFound {
		s.fileHash[categoriesFile] = catSum
		s.logger.Info("Categories loaded", "count", len(categories), "path", filepath.Join(s.dataDir, categoriesFile))
	}
	if termsFound {
		s.fileHash[termsFile] = termSum
		s.logger.Info("Terms loaded", "count", len(terms), "path", filepath.Join(s.dataDir, termsFile))
	}
	return nil
}

func (s *MemoryStore) readDataFile(name string, out interface{}) ([sha256.Size]byte, bool, error) {
	var sum [sha256.Size]byte
	path := filepath.Join(s.dataDir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Warn("Data file not found, starting empty", "path", path)
			return sum, false, nil
		}
		return sum, false, err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return sum, false, err
	}
	return sha256.Sum256(data), true, nil
}

func (s *MemoryStore) installCategoriesLocked(records []model.Category) {
	byName := make(map[string]int, len(s.categories))
	for id, category := range s.categories {
		byName[category.Name] = id
	}
	next := make(map[int]*model.Category, len(records))
	for i := range records {
		category := records[i]
		if category.ID <= 0 {
			if id, ok := byName[category.Name]; ok {
				category.ID = id
				delete(byName, category.Name)
			} else {
				category.ID = s.nextCategoryID
			}
		}
		if category.ID >= s.nextCategoryID {
			s.nextCategoryID = category.ID + 1
		}
		next[category.ID] = &category
	}
	s.categories = next
}

func (s *MemoryStore) installTermsLocked(records []model.Term) {
	byName := make(map[string]int, len(s.terms))
	for id, term := range s.terms {
		byName[term.Term] = id
	}
	next := make(map[int]*model.Term, len(records))
	for i := range records {
		term := records[i]
		if term.ID <= 0 {
			if id, ok := byName[term.Term]; ok {
				term.ID = id
				delete(byName, term.Term)
			} else {
				term.ID = s.nextTermID
			}
		}
		if term.ID >= s.nextTermID {
			s.nextTermID = term.ID + 1
		}
		term.Normalize()
		next[term.ID] = &term
	}
	s.terms = next
}

// UpToDate reports whether the named data file's on-disk content matches
// the bytes the store last wrote or loaded. The file watcher uses it to
// tell the store's own saves apart from hand edits.
func (s *MemoryStore) UpToDate(name string) bool {
	s.mu.RLock()
	want, ok := s.fileHash[name]
	path := filepath.Join(s.dataDir, name)
	s.mu.RUnlock()
	if !ok {
		return false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return sha256.Sum256(data) == want
}

// saveTermsLocked writes the term collection back to terms.json in the
// legacy id-less format, ordered by id. Failures are logged and swallowed:
// the in-memory state is the source of truth and a failed save must never
// undo a mutation.
func (s *MemoryStore) saveTermsLocked() {
	if !s.persist {
		return
	}
	records := make([]persistedTerm, 0, len(s.terms))
	for _, term := range s.sortedTermsLocked() {
		records = append(records, persistedTerm{
			Term:          term.Term,
			Category:      term.Category,
			Definition:    term.Definition,
			Aliases:       term.Aliases,
			Related:       term.Related,
			Tags:          term.Tags,
			References:    term.References,
			LearningPaths: term.LearningPaths,
		})
	}
	s.writeFileLocked(termsFile, records)
}

func (s *MemoryStore) saveCategoriesLocked() {
	if !s.persist {
		return
	}
	ids := make([]int, 0, len(s.categories))
	for id := range s.categories {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	records := make([]persistedCategory, 0, len(ids))
	for _, id := range ids {
		category := s.categories[id]
		records = append(records, persistedCategory{Name: category.Name, Description: category.Description})
	}
	s.writeFileLocked(categoriesFile, records)
}

func (s *MemoryStore) writeFileLocked(name string, payload interface{}) {
	path := filepath.Join(s.dataDir, name)
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		s.logger.Error("Error encoding data file", "path", path, "error", err)
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.logger.Error("Error writing data file", "path", path, "error", err)
		return
	}
	s.fileHash[name] = sha256.Sum256(data)
}

func (s *MemoryStore) sortedTermsLocked() []*model.Term {
	terms := make([]*model.Term, 0, len(s.terms))
	for _, term := range s.terms {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool { return terms[i].ID < terms[j].ID })
	return terms
}

func (s *MemoryStore) CreateTerm(ctx context.Context, term *model.Term) (*model.Term, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := term.Clone()
	stored.ID = s.nextTermID
	s.nextTermID++
	stored.Normalize()
	s.terms[stored.ID] = stored
	s.saveTermsLocked()
	return stored.Clone(), nil
}

func (s *MemoryStore) GetTerm(ctx context.Context, id int) (*model.Term, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	term, ok := s.terms[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return term.Clone(), nil
}

func (s *MemoryStore) GetTerms(ctx context.Context) ([]*model.Term, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	terms := s.sortedTermsLocked()
	out := make([]*model.Term, 0, len(terms))
	for _, term := range terms {
		out = append(out, term.Clone())
	}
	return out, nil
}

func (s *MemoryStore) GetTermsByCategory(ctx context.Context, category string) ([]*model.Term, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*model.Term{}
	for _, term := range s.sortedTermsLocked() {
		if term.Category == category {
			out = append(out, term.Clone())
		}
	}
	return out, nil
}

func (s *MemoryStore) UpdateTerm(ctx context.Context, id int, req *model.UpdateTermRequest) (*model.Term, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	term, ok := s.terms[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	applyTermUpdate(term, req)
	s.saveTermsLocked()
	return term.Clone(), nil
}

func (s *MemoryStore) DeleteTerm(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.terms[id]; !ok {
		return false, nil
	}
	delete(s.terms, id)
	s.saveTermsLocked()
	return true, nil
}

func (s *MemoryStore) GetCategories(ctx context.Context) ([]*model.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int, 0, len(s.categories))
	for id := range s.categories {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]*model.Category, 0, len(ids))
	for _, id := range ids {
		category := *s.categories[id]
		out = append(out, &category)
	}
	return out, nil
}

func (s *MemoryStore) GetCategoryByName(ctx context.Context, name string) (*model.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, category := range s.categories {
		if category.Name == name {
			c := *category
			return &c, nil
		}
	}
	return nil, model.ErrNotFound
}

func (s *MemoryStore) CreateCategory(ctx context.Context, category *model.Category) (*model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.categories {
		if existing.Name == category.Name {
			return nil, model.ErrConflict
		}
	}

	stored := *category
	stored.ID = s.nextCategoryID
	s.nextCategoryID++
	s.categories[stored.ID] = &stored
	s.saveCategoriesLocked()
	c := stored
	return &c, nil
}

func (s *MemoryStore) UpdateCategory(ctx context.Context, id int, req *model.UpdateCategoryRequest) (*model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	category, ok := s.categories[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	if req.Name != nil && *req.Name != category.Name {
		for _, existing := range s.categories {
			if existing.Name == *req.Name {
				return nil, model.ErrConflict
			}
		}
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	s.saveCategoriesLocked()
	c := *category
	return &c, nil
}

func (s *MemoryStore) GetUser(ctx context.Context, id int) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	u := *user
	return &u, nil
}

func (s *MemoryStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Username == username {
			u := *user
			return &u, nil
		}
	}
	return nil, model.ErrNotFound
}

func (s *MemoryStore) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == user.Username {
			return nil, model.ErrConflict
		}
	}

	stored := *user
	stored.ID = s.nextUserID
	s.nextUserID++
	s.users[stored.ID] = &stored
	u := stored
	return &u, nil
}
