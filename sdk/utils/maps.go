// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

// MergeMaps merges map2 over map1 into a new map, giving precedence to map2.
// Nested maps present on both sides are merged recursively; anything else
// from map2 overwrites.
func MergeMaps(map1, map2 map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{}, len(map1)+len(map2))

	for k, v := range map1 {
		result[k] = v
	}

	for k, v2 := range map2 {
		v1, exists := result[k]
		if exists && isMap(v1) && isMap(v2) {
			result[k] = MergeMaps(v1.(map[string]interface{}), v2.(map[string]interface{}))
			continue
		}
		result[k] = v2
	}

	return result
}

// isMap checks if v is a map[string]interface{}
func isMap(v interface{}) bool {
	_, ok := v.(map[string]interface{})
	return ok
}
