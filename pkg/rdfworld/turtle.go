package rdfworld

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/knakk/rdf"
)

// turtleWorld is the concrete World backed by github.com/knakk/rdf's
// Turtle triple decoder. A bundle directory is loaded by decoding its
// manifest.ttl and then following every rdfs:seeAlso reference (the LV2
// convention for splitting a plugin's own triples out of manifest.ttl),
// exactly as lilv_world_load_bundle does.
type turtleWorld struct {
	*MemWorld
}

// NewTurtleWorld returns a World that loads bundles by parsing Turtle
// documents with github.com/knakk/rdf.
func NewTurtleWorld() World {
	return &turtleWorld{MemWorld: NewMemWorld()}
}

func (w *turtleWorld) LoadBundle(dir string) error {
	manifest := filepath.Join(dir, "manifest.ttl")
	base := dirToFileURI(dir)

	subjectsBefore := len(w.triples)
	if err := w.loadFile(manifest, base); err != nil {
		return fmt.Errorf("rdfworld: loading %s: %w", manifest, err)
	}

	// Follow rdfs:seeAlso from anything the manifest just introduced —
	// this is where a plugin's ports and properties actually live.
	for _, t := range w.triples[subjectsBefore:] {
		if t.Predicate != RDFSSeeAlso || t.Object.IsLiteral {
			continue
		}
		path := fileURIToPath(t.Object.Value)
		if path == "" {
			continue
		}
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		if err := w.loadFile(path, dirToFileURI(filepath.Dir(path))); err != nil {
			return fmt.Errorf("rdfworld: loading %s: %w", path, err)
		}
	}

	// Record the owning bundle for every subject touched by this load.
	for _, t := range w.triples[subjectsBefore:] {
		w.SetBundleDir(t.Subject, dir)
	}
	return nil
}

func (w *turtleWorld) loadFile(path, base string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := rdf.NewTripleDecoder(f, rdf.Turtle)
	for {
		tr, err := dec.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		w.Add(toTriple(tr, base))
	}
	return nil
}

func toTriple(tr rdf.Triple, base string) Triple {
	return Triple{
		Subject:   termValue(tr.Subj, base),
		Predicate: termValue(tr.Pred, base),
		Object:    toTerm(tr.Obj, base),
	}
}

func termValue(t rdf.Term, base string) string {
	switch v := t.(type) {
	case rdf.IRI:
		return resolveIRI(base, v.Val)
	case rdf.Blank:
		return "_:" + v.Val
	default:
		return t.String()
	}
}

func toTerm(t rdf.Term, base string) Term {
	switch v := t.(type) {
	case rdf.IRI:
		return Term{Value: resolveIRI(base, v.Val)}
	case rdf.Blank:
		return Term{Value: "_:" + v.Val}
	case rdf.Literal:
		return Term{Value: v.Val, IsLiteral: true, Datatype: v.DataType.Val}
	default:
		return Term{Value: t.String(), IsLiteral: true}
	}
}

func resolveIRI(base, val string) string {
	if strings.Contains(val, "://") {
		return val
	}
	u, err := url.Parse(val)
	if err != nil || base == "" {
		return val
	}
	b, err := url.Parse(base)
	if err != nil {
		return val
	}
	return b.ResolveReference(u).String()
}

func dirToFileURI(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	abs = filepath.ToSlash(abs)
	if !strings.HasSuffix(abs, "/") {
		abs += "/"
	}
	return "file://" + abs
}

func fileURIToPath(uri string) string {
	if !strings.HasPrefix(uri, "file://") {
		return uri
	}
	return strings.TrimPrefix(uri, "file://")
}

// LoadSystemWide loads every bundle found under the platform's default
// LV2 bundle search path (or $LV2_PATH when set), matching lilv's
// lilv_world_load_all fallback used when no .bundle file is present.
func (w *turtleWorld) LoadSystemWide() error {
	for _, root := range defaultLV2Path() {
		entries, err := os.ReadDir(root)
		if err != nil {
			continue // missing search roots are not an error
		}
		for _, e := range entries {
			if !e.IsDir() || !strings.HasSuffix(e.Name(), ".lv2") {
				continue
			}
			_ = w.LoadBundle(filepath.Join(root, e.Name()))
		}
	}
	return nil
}

func defaultLV2Path() []string {
	if env := os.Getenv("LV2_PATH"); env != "" {
		return filepath.SplitList(env)
	}
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "darwin":
		return []string{
			filepath.Join(home, "Library/Audio/Plug-Ins/LV2"),
			"/Library/Audio/Plug-Ins/LV2",
			"/usr/local/lib/lv2",
		}
	case "windows":
		return []string{
			filepath.Join(os.Getenv("APPDATA"), "LV2"),
			filepath.Join(os.Getenv("COMMONPROGRAMFILES"), "LV2"),
		}
	default:
		return []string{
			filepath.Join(home, ".lv2"),
			"/usr/lib/lv2",
			"/usr/local/lib/lv2",
		}
	}
}
