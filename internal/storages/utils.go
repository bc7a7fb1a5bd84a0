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

package storages

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/rs/zerolog/log"

	"github.com/greenmaskio/schemalink/internal/utils/ioutils"
)

var (
	ErrFileNotFound = errors.New("file not found")
)

func Walk(ctx context.Context, st Storager, parent string) (res []string, err error) {
	files, dirs, err := st.ListDir(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing directory: %w", err)
	}
	for _, f := range files {
		res = append(res, path.Join(parent, f))
	}
	for _, d := range dirs {
		subFiles, err := Walk(ctx, d, d.Dirname())
		if err != nil {
			return nil, fmt.Errorf("error walking through directory: %w", err)
		}
		for _, f := range subFiles {
			res = append(res, path.Join(parent, f))
		}
	}
	return res, nil
}

// ReadObject - reads the whole object. Objects with the .gz extension are decompressed. A missing object
// is reported as ErrFileNotFound.
func ReadObject(ctx context.Context, st Storager, filePath string) ([]byte, error) {
	exists, err := st.Exists(ctx, filePath)
	if err != nil {
		return nil, fmt.Errorf("error checking object existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("object \"%s\" in \"%s\": %w", filePath, st.GetCwd(), ErrFileNotFound)
	}

	r, err := st.GetObject(ctx, filePath)
	if err != nil {
		return nil, fmt.Errorf("error getting object: %w", err)
	}
	data, n, err := ioutils.ReadAll(filePath, r)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Str("Object", filePath).
		Int64("StoredBytes", n).
		Int("Bytes", len(data)).
		Msg("object loaded from storage")
	return data, nil
}
