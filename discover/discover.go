// Package discover locates section files on disk and resolves the naming
// conventions OneNote's own exports leave behind.
//
// Exported notebooks commonly contain several copies of the same section,
// each stamped with an export date in the filename, e.g.
// "Notes (On 2-25-26).one". Deduplicate keeps only the newest copy of each
// section.
package discover

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// datePattern matches the "(On m-d-yy)" export stamp, with an optional
// trailing copy number: "(On 2-25-26 - 3)".
var datePattern = regexp.MustCompile(`\s*\(On\s+(\d+)-(\d+)-(\d+)(?:\s*-\s*\d+)?\)`)

// Sections walks root recursively and returns the paths of all .one
// section files found, in lexical walk order.
func Sections(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".one") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return paths, nil
}

// Deduplicate collapses multiple dated copies of the same section, keeping
// the copy with the latest export date. A dated copy always beats an
// undated one. Result order follows the first appearance of each section.
func Deduplicate(paths []string) []string {
	type candidate struct {
		path  string
		stamp exportStamp
	}

	var order []string
	best := map[string]candidate{}

	for _, path := range paths {
		key := sectionKey(path)
		stamp := stampOf(path)

		current, ok := best[key]
		if !ok {
			order = append(order, key)
			best[key] = candidate{path: path, stamp: stamp}
			continue
		}
		if stamp.after(current.stamp) {
			best[key] = candidate{path: path, stamp: stamp}
		}
	}

	result := make([]string, 0, len(order))
	for _, key := range order {
		result = append(result, best[key].path)
	}
	return result
}

// SectionNameFromPath derives a display name from a section file path:
// the filename with its extension, export date stamp and any residual
// ".one" suffix removed. An empty result becomes "Untitled".
func SectionNameFromPath(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	name = datePattern.ReplaceAllString(name, "")
	name = strings.TrimSuffix(name, ".one")
	name = strings.TrimSpace(name)
	if name == "" {
		return "Untitled"
	}
	return name
}

// sectionKey is the dedup identity: the section name, case-folded.
func sectionKey(path string) string {
	return strings.ToLower(SectionNameFromPath(path))
}

// exportStamp is a parsed "(On m-d-yy)" date. The zero value means undated.
type exportStamp struct {
	year, month, day int
}

// after reports whether s is a strictly newer stamp than other. Any date
// beats the undated zero value.
func (s exportStamp) after(other exportStamp) bool {
	if s == (exportStamp{}) {
		return false
	}
	if other == (exportStamp{}) {
		return true
	}
	if s.year != other.year {
		return s.year > other.year
	}
	if s.month != other.month {
		return s.month > other.month
	}
	return s.day > other.day
}

// stampOf extracts the export date from a filename. Two-digit years pivot
// at 70: 70-99 mean 19xx, 00-69 mean 20xx.
func stampOf(path string) exportStamp {
	m := datePattern.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return exportStamp{}
	}
	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if year < 100 {
		if year >= 70 {
			year += 1900
		} else {
			year += 2000
		}
	}
	return exportStamp{year: year, month: month, day: day}
}
