package lsv

import (
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// DropReason tells why a matching file was left out of the analysis.
type DropReason string

const (
	DropExcluded DropReason = "Excluded"
	// DropLast marks the last file in sorted order. Datasets from this
	// instrument end with a reference/background scan that shares the
	// data file pattern.
	DropLast DropReason = "LastInOrder"
)

// DroppedFile is a matching file that will not be analyzed.
type DroppedFile struct {
	Name   string     `json:"name"`
	Reason DropReason `json:"reason"`
}

// Selection is the outcome of SelectFiles. Kept holds base names in
// analysis order.
type Selection struct {
	Dir     string        `json:"dir"`
	Kept    []string      `json:"kept"`
	Dropped []DroppedFile `json:"dropped"`
}

// Path returns the full path of a kept or dropped file name.
func (s Selection) Path(name string) string {
	return filepath.Join(s.Dir, name)
}

// SortNames sorts base names in plain byte order. Zero-padded speed tokens
// therefore sort numerically ("_005_" before "_020_"), unpadded ones do not.
func SortNames(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		return names[i] < names[j]
	})
}

// SelectFiles lists files in dir matching pattern, sorts them, removes the
// excluded names and then, if dropLast is set, the last remaining file.
func SelectFiles(dir, pattern string, exclude []string, dropLast bool) (Selection, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return Selection{}, pkgerrors.Wrapf(err, "invalid file pattern %q", pattern)
	}

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, filepath.Base(m))
	}
	SortNames(names)

	excluded := make(map[string]struct{}, len(exclude))
	for _, e := range exclude {
		excluded[e] = struct{}{}
	}

	sel := Selection{Dir: dir}
	for _, n := range names {
		if _, ok := excluded[n]; ok {
			sel.Dropped = append(sel.Dropped, DroppedFile{Name: n, Reason: DropExcluded})
			continue
		}
		sel.Kept = append(sel.Kept, n)
	}

	if dropLast && len(sel.Kept) > 0 {
		last := sel.Kept[len(sel.Kept)-1]
		sel.Kept = sel.Kept[:len(sel.Kept)-1]
		sel.Dropped = append(sel.Dropped, DroppedFile{Name: last, Reason: DropLast})
	}

	return sel, nil
}

var digitsRe = regexp.MustCompile(`\d+`)

// SweepSpeed extracts the sweep speed (mV/min) from a file name such as
// "CB_LSV_C01_020mVmin_x.txt": the first run of digits in the fourth
// underscore-delimited token. The digits are returned as written.
func SweepSpeed(name string) (string, error) {
	tokens := strings.Split(filepath.Base(name), "_")
	if len(tokens) < 4 {
		return "", pkgerrors.Wrapf(ErrBadFileName, "%s: expected at least 4 underscore-delimited tokens, got %d", name, len(tokens))
	}

	speed := digitsRe.FindString(tokens[3])
	if speed == "" {
		return "", pkgerrors.Wrapf(ErrBadFileName, "%s: no digits in token %q", name, tokens[3])
	}

	return speed, nil
}
