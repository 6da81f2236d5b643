package yamlstream_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"go.yaml.in/yamlstream"
)

var fuzzSeeds = []string{
	"",
	"a: 1\nb: [true, ~, 1.5]\n",
	"- &x {k: v}\n- *x\n",
	"&A [ *A ]",
	"--- |\n  literal\n--- >\n  folded\n...\n",
	"%YAML 1.2\n%TAG !e! tag:example.com,2000:\n--- !e!thing 'q'\n",
	"? [complex, key]\n: value\n",
	"base: &b {x: 1}\nderived: {<<: *b, y: 2}\n",
}

func setupSeedCorpus(f *testing.F) {
	for _, seed := range fuzzSeeds {
		f.Add([]byte(seed))
	}
	root := filepath.Join("yts", "testdata", "data-2022-01-17")
	if _, err := os.Stat(root); err != nil {
		return
	}
	if err := filepath.WalkDir(root, func(p string, e fs.DirEntry, err error) error {
		if err != nil {
			f.Fatalf("could not read test suite at %q: %s", root, err)
		}
		if e.IsDir() || filepath.Base(p) != "in.yaml" {
			return nil
		}
		b, err := os.ReadFile(p)
		if err != nil {
			f.Fatalf("could not read test case %q: %s", p, err)
		}
		f.Add(b)
		return nil
	}); err != nil {
		f.Fatalf("could not read test suite: %q", root)
	}
}

func FuzzFormat(f *testing.F) {
	setupSeedCorpus(f)
	f.Fuzz(func(t *testing.T, in []byte) {
		events, err := yamlstream.Events(in)
		if err != nil {
			return
		}
		out, err := yamlstream.Format(in)
		if err != nil {
			t.Fatalf("could not format parsed input: %q: %s", in, err)
		}
		again, err := yamlstream.Events(out)
		if err != nil {
			t.Fatalf("could not parse formatted output: %q -> %q: %s", in, out, err)
		}
		if len(again) != len(events) {
			t.Fatalf("formatting changed the event count from %d to %d: %q -> %q", len(events), len(again), in, out)
		}
	})
}

func FuzzLoad(f *testing.F) {
	setupSeedCorpus(f)
	f.Fuzz(func(t *testing.T, in []byte) {
		// Only the absence of panics is checked; limits keep hostile
		// alias graphs bounded.
		_, _ = yamlstream.LoadAll(in, yamlstream.WithMaxDepth(64), yamlstream.WithMaxLength(10000))
		_, _ = yamlstream.Tokens(in)
	})
}
