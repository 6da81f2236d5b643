// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package libyaml

import "sync"

// scratch holds the working buffers used while decoding one scalar token.
// A scratch is checked out for the duration of a single scan call and
// returned before the token is queued; token values are copied out of it.
type scratch struct {
	text           []byte
	leadingBreak   []byte
	trailingBreaks []byte
	whitespaces    []byte
}

// scratchMaxRetain bounds the capacity a returned scratch may keep, so a
// single huge scalar does not pin memory in the pool.
const scratchMaxRetain = 64 * 1024

var scratchPool = sync.Pool{
	New: func() any {
		return &scratch{
			text:           make([]byte, 0, 64),
			leadingBreak:   make([]byte, 0, 4),
			trailingBreaks: make([]byte, 0, 16),
			whitespaces:    make([]byte, 0, 16),
		}
	},
}

// acquireScratch returns a cleared scratch from the pool.
func acquireScratch() *scratch {
	sc := scratchPool.Get().(*scratch)
	sc.reset()
	return sc
}

// releaseScratch clears the scratch and returns it to the pool.
func releaseScratch(sc *scratch) {
	if sc == nil {
		return
	}
	if cap(sc.text) > scratchMaxRetain {
		return
	}
	sc.reset()
	scratchPool.Put(sc)
}

func (sc *scratch) reset() {
	sc.text = sc.text[:0]
	sc.leadingBreak = sc.leadingBreak[:0]
	sc.trailingBreaks = sc.trailingBreaks[:0]
	sc.whitespaces = sc.whitespaces[:0]
}
