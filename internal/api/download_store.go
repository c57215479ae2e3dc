package api

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yuji-8024/t-kento/internal/exporter"
)

type exportDownload struct {
	filePath  string
	fileName  string
	kind      exporter.Kind
	expiresAt time.Time
}

type exportDownloadStore struct {
	mu    sync.Mutex
	items map[string]exportDownload
	now   func() time.Time
}

func newExportDownloadStore() *exportDownloadStore {
	return &exportDownloadStore{
		items: make(map[string]exportDownload),
		now:   time.Now,
	}
}

func (s *exportDownloadStore) put(file exporter.File, ttl time.Duration) (token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(s.now())

	token = uuid.NewString()
	s.items[token] = exportDownload{
		filePath:  file.Path,
		fileName:  file.Name,
		kind:      file.Kind,
		expiresAt: s.now().Add(ttl),
	}
	return token
}

func (s *exportDownloadStore) get(token string) (exportDownload, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(s.now())

	v, ok := s.items[token]
	return v, ok
}

func (s *exportDownloadStore) delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, token)
}

func (s *exportDownloadStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// purgeExpiredLocked 过期的导出文件一并删除
func (s *exportDownloadStore) purgeExpiredLocked(now time.Time) {
	for k, v := range s.items {
		if now.After(v.expiresAt) {
			delete(s.items, k)
			removeExport(v.filePath)
		}
	}
}

// removeExport 删除导出文件；所在的运行目录空了就一并删除
func removeExport(path string) {
	_ = os.Remove(path)
	_ = os.Remove(filepath.Dir(path))
}
