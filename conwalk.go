// Package conwalk is a framework for writing browser-driven acceptance
// tests against a cloud/infrastructure management console. It models the
// console's pages as navigable destinations and expands YAML-described
// inventories into parametrized test matrices.
package conwalk

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
)

// alphanumeric alphabet for random names; no lookalike characters so names
// remain legible in test reports.
const alphabet = "abcdefghijkmnopqrstuvwxyz123456789"

// GenerateRandomString generates a random alphanumeric string of the given
// size, suitable for naming resources created during a test run.
func GenerateRandomString(size int) string {
	buf := make([]byte, size)
	for i := 0; i < size; i++ {
		buf[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return string(buf)
}

// NewName returns a prefixed unique name for a resource created during a
// test run. Unlike GenerateRandomString, uniqueness is guaranteed, so
// parallel runs against a shared appliance cannot collide.
func NewName(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString()[:8])
}

// String returns a pointer to the given string.
func String(s string) *string { return &s }

// Diff returns the elements in `a` that aren't in `b`.
func Diff[T comparable](a, b []T) []T {
	mb := make(map[T]struct{}, len(b))
	for _, x := range b {
		mb[x] = struct{}{}
	}
	var diff []T
	for _, x := range a {
		if _, found := mb[x]; !found {
			diff = append(diff, x)
		}
	}
	return diff
}
