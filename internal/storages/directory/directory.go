// Copyright 2023 Greenmask
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package directory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/greenmaskio/schemalink/internal/storages"
)

type Storage struct {
	cwd string
}

func NewStorage(cfg *Config) (*Storage, error) {
	fileInfo, err := os.Stat(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("error getting directory stat: %w", err)
	}
	if !fileInfo.IsDir() {
		return nil, errors.New("received directory path is file")
	}
	return &Storage{
		cwd: cfg.Path,
	}, nil
}

func (s *Storage) GetCwd() string {
	return s.cwd
}

func (s *Storage) Dirname() string {
	return filepath.Base(s.cwd)
}

func (s *Storage) ListDir(ctx context.Context) (files []string, dirs []storages.Storager, err error) {
	entries, err := os.ReadDir(s.cwd)
	if err != nil {
		return nil, nil, err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, &Storage{cwd: path.Join(s.cwd, entry.Name())})
		} else {
			files = append(files, entry.Name())
		}
	}
	return
}

func (s *Storage) GetObject(ctx context.Context, filePath string) (io.ReadCloser, error) {
	f, err := os.Open(path.Join(s.cwd, filePath))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", filePath, storages.ErrFileNotFound)
		}
		return nil, err
	}
	return f, nil
}

func (s *Storage) Exists(ctx context.Context, fileName string) (bool, error) {
	_, err := os.Stat(path.Join(s.cwd, fileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Storage) SubStorage(dp string, relative bool) storages.Storager {
	dirPath := dp
	if relative {
		dirPath = path.Join(s.cwd, dp)
	}
	return &Storage{
		cwd: dirPath,
	}
}
