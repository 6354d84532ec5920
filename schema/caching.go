/**
 * Copyright 2024 Confluent Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package schema

import (
	"github.com/confluentinc/avro-go/cache"
)

// CachingParser memoizes parsed root schemas by their exact JSON text.
// Each miss parses with a fresh one-shot parser, so cached entries never
// share a table; the cache itself is safe for concurrent use.
type CachingParser struct {
	schemas *cache.LRUCache[string, Schema]
	opts    []ParserOption
}

// NewCachingParser creates a CachingParser holding at most capacity
// parsed schemas.
func NewCachingParser(capacity int, opts ...ParserOption) (*CachingParser, error) {
	schemas, err := cache.NewLRUCache[string, Schema](capacity)
	if err != nil {
		return nil, err
	}
	return &CachingParser{schemas: schemas, opts: opts}, nil
}

// Parse returns the cached schema for text, parsing on a miss.
func (p *CachingParser) Parse(text string) (Schema, error) {
	if s, ok := p.schemas.Get(text); ok {
		return s, nil
	}
	s, err := NewParser(p.opts...).Parse(text)
	if err != nil {
		return nil, err
	}
	p.schemas.Put(text, s)
	return s, nil
}

// Len returns the number of schemas currently cached.
func (p *CachingParser) Len() int {
	return p.schemas.Len()
}
