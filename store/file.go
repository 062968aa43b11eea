package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// FileStore stores each collection as a separate JSON file.
//
// Layout:
//
//	data_dir/
//	  biblioteca.json   # "biblioteca" collection, id -> document
type FileStore struct {
	mu  sync.RWMutex
	fs  afero.Fs
	dir string
}

// NewFileStore creates a FileStore rooted at dir on the OS filesystem.
func NewFileStore(dir string) (*FileStore, error) {
	return NewFileStoreFs(afero.NewOsFs(), dir)
}

// NewFileStoreFs creates a FileStore on an arbitrary afero filesystem.
func NewFileStoreFs(fs afero.Fs, dir string) (*FileStore, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{fs: fs, dir: dir}, nil
}

func (s *FileStore) collectionPath(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

// loadCollection reads a collection file. A missing file is an empty collection.
func (s *FileStore) loadCollection(collection string) (map[string]map[string]any, error) {
	data, err := afero.ReadFile(s.fs, s.collectionPath(collection))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]map[string]any{}, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return map[string]map[string]any{}, nil
	}
	result, err := decodeCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", collection, err)
	}
	return result, nil
}

func (s *FileStore) saveCollection(collection string, coll map[string]map[string]any) error {
	b, err := json.MarshalIndent(coll, "", "  ")
	if err != nil {
		return err
	}
	return afero.WriteFile(s.fs, s.collectionPath(collection), b, 0o644)
}

func (s *FileStore) GetAll(_ context.Context, collection string) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	coll, err := s.loadCollection(collection)
	if err != nil {
		return nil, err
	}
	result := make([]Document, 0, len(coll))
	for id, data := range coll {
		result = append(result, Document{ID: id, Data: data})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *FileStore) Get(_ context.Context, collection, id string) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	coll, err := s.loadCollection(collection)
	if err != nil {
		return nil, err
	}
	data, ok := coll[id]
	if !ok {
		return nil, nil
	}
	return &Document{ID: id, Data: data}, nil
}

func (s *FileStore) Add(_ context.Context, collection string, data map[string]any) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	coll, err := s.loadCollection(collection)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	coll[id] = merge(nil, data)
	if err := s.saveCollection(collection, coll); err != nil {
		return "", err
	}
	return id, nil
}

func (s *FileStore) Update(_ context.Context, collection, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	coll, err := s.loadCollection(collection)
	if err != nil {
		return err
	}
	doc, ok := coll[id]
	if !ok {
		return fmt.Errorf("update %s/%s: %w", collection, id, ErrNotFound)
	}
	coll[id] = merge(doc, fields)
	return s.saveCollection(collection, coll)
}

func (s *FileStore) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	coll, err := s.loadCollection(collection)
	if err != nil {
		return err
	}
	if _, ok := coll[id]; !ok {
		return nil
	}
	delete(coll, id)
	return s.saveCollection(collection, coll)
}

// Ping checks that the data directory is still there.
func (s *FileStore) Ping(context.Context) error {
	_, err := s.fs.Stat(s.dir)
	return err
}

func (s *FileStore) Close() error { return nil }
