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

package ioutils

import (
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/pgzip"
	"github.com/rs/zerolog/log"
)

const GzipExtension = ".gz"

type GzipReader struct {
	gz io.ReadCloser
	r  io.ReadCloser
}

// NewGzipReader - wraps r into a parallel gzip decompressor. r is closed when the gzip header cannot be read.
func NewGzipReader(r io.ReadCloser) (*GzipReader, error) {
	gz, err := pgzip.NewReader(r)
	if err != nil {
		if err := r.Close(); err != nil {
			log.Warn().
				Err(err).
				Msg("error closing compressed object")
		}
		return nil, fmt.Errorf("cannot create gzip reader: %w", err)
	}

	return &GzipReader{
		gz: gz,
		r:  r,
	}, nil
}

func (r *GzipReader) Read(p []byte) (n int, err error) {
	return r.gz.Read(p)
}

func (r *GzipReader) Close() error {
	var lastErr error
	if err := r.gz.Close(); err != nil {
		lastErr = fmt.Errorf("error closing gzip reader: %w", err)
		log.Warn().
			Err(err).
			Msg("error closing gzip reader")
	}
	if err := r.r.Close(); err != nil {
		lastErr = fmt.Errorf("error closing compressed object: %w", err)
		log.Warn().
			Err(err).
			Msg("error closing compressed object")
	}
	return lastErr
}

// IsGzip - reports whether the object name carries the gzip extension.
func IsGzip(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), GzipExtension)
}

// ReadAll - reads the whole object and closes it. Objects named *.gz are decompressed on the fly. The
// second value is the number of bytes read from the underlying object before decompression.
func ReadAll(name string, r io.ReadCloser) ([]byte, int64, error) {
	cr := NewReader(r)
	var src io.ReadCloser = cr
	if IsGzip(name) {
		gz, err := NewGzipReader(cr)
		if err != nil {
			return nil, 0, err
		}
		src = gz
	}

	data, err := io.ReadAll(src)
	if closeErr := src.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, cr.GetCount(), fmt.Errorf("cannot read \"%s\": %w", name, err)
	}
	return data, cr.GetCount(), nil
}
