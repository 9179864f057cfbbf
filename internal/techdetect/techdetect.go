// Package techdetect identifies the technology set of a repository.
//
// Two signals are combined: language classification of the walked source
// files, and well-known manifest files at the repository root (dependency
// lists, container definitions). The result is a deduplicated, sorted list
// of human-readable labels.
package techdetect

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/src-d/enry/v2"
)

// maxSampleBytes caps how much of a file enry reads for classification.
const maxSampleBytes = 16 * 1024

// Detector discovers technologies in a repository.
type Detector struct{}

// NewDetector creates a technology detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect returns the sorted technology labels for a repository. The files
// argument holds source file paths relative to repoPath, as produced by the
// repository walker. Unreadable files are skipped silently since detection
// is best-effort by design.
func (d *Detector) Detect(repoPath string, files []string) []string {
	found := make(map[string]string) // lowercase key -> display label

	add := func(labels ...string) {
		for _, label := range labels {
			if label == "" {
				continue
			}
			found[strings.ToLower(label)] = label
		}
	}

	for _, rel := range files {
		content := sampleFile(filepath.Join(repoPath, rel))
		if lang := enry.GetLanguage(filepath.Base(rel), content); lang != "" {
			add(lang)
		}
		add(scanImports(rel, content)...)
	}

	add(scanManifests(repoPath)...)

	labels := make([]string, 0, len(found))
	for _, label := range found {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

func sampleFile(path string) []byte {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	buf := make([]byte, maxSampleBytes)
	n, _ := f.Read(buf)
	return buf[:n]
}
