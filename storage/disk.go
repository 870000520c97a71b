package storage

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/vanbenpham/forunime-backend/config"
	"github.com/vanbenpham/forunime-backend/logger"

	"golang.org/x/sys/unix"
)

type DiskStorage struct {
	// BasePath is a directory writable by the current process
	BasePath  string
	dirs      map[string]bool
	dirsMutex sync.Mutex
}

func NewDiskStorage(basePath string) *DiskStorage {
	s := &DiskStorage{
		BasePath: basePath,
		dirs:     map[string]bool{},
	}
	if err := os.MkdirAll(basePath, 0777); err != nil {
		panic(err)
	}
	logger.Infof("photo storage: %s (%d MB free)", basePath, s.FreeSpace()/1024/1024)
	return s
}

func (s *DiskStorage) createDir(dir string) error {
	s.dirsMutex.Lock()
	defer s.dirsMutex.Unlock()

	if ok := s.dirs[dir]; ok {
		return nil
	}
	s.dirs[dir] = true
	return os.MkdirAll(dir, 0777)
}

func (s *DiskStorage) getFullPath(path string) string {
	return s.BasePath + "/" + path
}

func (s *DiskStorage) Save(path string, reader io.Reader) (int64, error) {
	fileName := s.getFullPath(path)
	if err := s.createDir(filepath.Dir(fileName)); err != nil {
		return 0, err
	}
	file, err := os.Create(fileName)
	if err != nil {
		return 0, err
	}
	result, err := io.Copy(file, reader)
	file.Close()
	return result, err
}

func (s *DiskStorage) Delete(path string) error {
	return os.Remove(s.getFullPath(path))
}

func (s *DiskStorage) URL(path string) string {
	return config.PUBLIC_URL + "/uploads/" + path
}

func (s *DiskStorage) FreeSpace() uint64 {
	var stat unix.Statfs_t
	if err := unix.Statfs(s.BasePath, &stat); err != nil {
		return 0
	}
	return stat.Bavail * uint64(stat.Bsize)
}
