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
	"regexp"
)

var wordTokenRe = regexp.MustCompile(`[\p{L}\p{N}_]+|[^\p{L}\p{N}_\s]`)

// Word - offline approximation that counts words and punctuation marks. It needs no BPE ranks and is
// stable across library versions.
type Word struct{}

func NewWord() *Word {
	return &Word{}
}

func (w *Word) Count(text string) int {
	return len(wordTokenRe.FindAllStringIndex(text, -1))
}

func (w *Word) Name() string {
	return TypeWord
}
