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

package tokenizer

import (
	"errors"
	"fmt"
)

const (
	TypeTiktoken = "tiktoken"
	TypeWord     = "word"

	// DefaultEncoding - the GPT-4o family encoding.
	DefaultEncoding = "o200k_base"
)

var errUnknownTokenizerType = errors.New("unknown tokenizer type")

// Tokenizer - counts the tokens a text costs in the prompt of the target model.
type Tokenizer interface {
	Count(text string) int
	Name() string
}

// New - returns the tokenizer of the provided type. Encoding is used by the tiktoken tokenizer only.
func New(typ, encoding string) (Tokenizer, error) {
	switch typ {
	case TypeTiktoken, "":
		return NewTiktoken(encoding)
	case TypeWord:
		return NewWord(), nil
	default:
		return nil, fmt.Errorf("tokenizer \"%s\": %w", typ, errUnknownTokenizerType)
	}
}
