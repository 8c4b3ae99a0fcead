// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"strings"

	"github.com/google/uuid"
)

func UUIDv4NoDash() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

// PartialName is the sibling temp name a download is written to before rename.
func PartialName(target string) string {
	return target + "." + UUIDv4NoDash() + ".part"
}
