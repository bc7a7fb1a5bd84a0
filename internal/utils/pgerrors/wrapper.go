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

package pgerrors

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// PgError - server side error with the detail and the SQLSTATE code in the message.
type PgError struct {
	Err *pgconn.PgError
}

// Wrap - wraps the server side error found in the err chain. Other errors are returned as is.
func Wrap(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	return &PgError{Err: pgErr}
}

func (e *PgError) Error() string {
	if e.Err.Detail == "" {
		return fmt.Sprintf("%s (code %s)", e.Err.Message, e.Err.Code)
	}
	return fmt.Sprintf("%s %s (code %s)", e.Err.Message, e.Err.Detail, e.Err.Code)
}

func (e *PgError) Unwrap() error {
	return e.Err
}
