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
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// Tiktoken - BPE tokenizer compatible with the OpenAI models. The BPE ranks are downloaded on the first use
// and cached in TIKTOKEN_CACHE_DIR.
type Tiktoken struct {
	encoding string
	enc      *tiktoken.Tiktoken
}

func NewTiktoken(encoding string) (*Tiktoken, error) {
	if encoding == "" {
		encoding = DefaultEncoding
	}
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("get encoding \"%s\": %w", encoding, err)
	}
	return &Tiktoken{
		encoding: encoding,
		enc:      enc,
	}, nil
}

func (t *Tiktoken) Count(text string) int {
	if text == "" {
		return 0
	}
	return len(t.enc.Encode(text, nil, nil))
}

func (t *Tiktoken) Name() string {
	return fmt.Sprintf("%s:%s", TypeTiktoken, t.encoding)
}
