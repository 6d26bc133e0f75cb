package site

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	goerrors "github.com/goliatone/go-errors"
)

// templateEngine loads page templates from the template directory and
// caches parsed results for the run. A page template may reference
// blocks from global.html when one exists alongside it.
type templateEngine struct {
	templateDir   string
	templateCache map[string]*template.Template
}

func newTemplateEngine(dir string) *templateEngine {
	return &templateEngine{
		templateDir:   dir,
		templateCache: make(map[string]*template.Template),
	}
}

// get returns the parsed template for filename. A missing template
// file is a not-found error so the builder can decide between skipping
// one page and aborting a per-item batch.
func (te *templateEngine) get(filename string) (*template.Template, error) {
	if t, ok := te.templateCache[filename]; ok {
		return t, nil
	}

	path := filepath.Join(te.templateDir, filename)
	if _, err := os.Stat(path); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryNotFound, fmt.Sprintf("template %q not found", filename))
	}

	files := []string{path}
	global := filepath.Join(te.templateDir, "global.html")
	if _, err := os.Stat(global); err == nil {
		files = append(files, global)
	}

	t, err := template.ParseFiles(files...)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, fmt.Sprintf("parse template %q", filename))
	}

	te.templateCache[filename] = t
	return t, nil
}

// renderToFile executes the named template into path, creating parent
// directories as needed.
func (te *templateEngine) renderToFile(filename, path string, data any) error {
	t, err := te.get(filename)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o775); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, fmt.Sprintf("create %s", filepath.Dir(path)))
	}

	outFile, err := os.Create(path)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, fmt.Sprintf("create %s", path))
	}
	defer outFile.Close()

	if err := t.Execute(outFile, data); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, fmt.Sprintf("render %s", filename))
	}
	return nil
}
