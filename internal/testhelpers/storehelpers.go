package testhelpers

import (
	. "github.com/onsi/ginkgo/v2"
	g "github.com/onsi/gomega"

	"pincheck/internal/store"
)

// NewTempFileStore opens a file store rooted in a per-spec temp directory.
func NewTempFileStore() *store.FileStore {
	fs, err := store.OpenFileStore(GinkgoT().TempDir())
	g.Expect(err).NotTo(g.HaveOccurred())
	return fs
}
