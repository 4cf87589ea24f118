// PlayNext - Video Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package cache

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/goccy/go-json"
)

// GenerateKey derives a compact cache key from a namespace and a parameter
// value. Params are JSON-encoded so struct field order fixes the key; map
// keys are sorted by the encoder.
func GenerateKey(namespace string, params any) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", namespace, params)
	}
	return namespace + ":" + strconv.FormatUint(xxhash.Sum64(data), 16)
}
