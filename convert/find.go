package convert

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/hashset"
	"github.com/emirpasic/gods/utils"
)

// documentExtensions are the file name extensions of HTML documents,
// in lower case.
var documentExtensions = hashset.New(".html", ".htm", ".xhtml")

// IsDocument is true if path has the extension of a HTML document.
func IsDocument(path string) bool {
	return documentExtensions.Contains(strings.ToLower(filepath.Ext(path)))
}

// FindDocuments returns the paths of all regular HTML files below root,
// in lexical order.
func FindDocuments(root string) ([]string, error) {
	found := arraylist.New()
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() && IsDocument(path) {
			found.Add(path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	found.Sort(utils.StringComparator)
	paths := make([]string, 0, found.Size())
	it := found.Iterator()
	for it.Next() {
		paths = append(paths, it.Value().(string))
	}
	T().Debugf("found %d documents below %s", len(paths), root)
	return paths, nil
}
