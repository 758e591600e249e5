package patterns

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"codedoctor/internal/scan"
)

func sorted(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}

func TestFamilyForType(t *testing.T) {
	cases := map[string]Family{
		"js": FamilyJS, "jsx": FamilyJS, "ts": FamilyJS, "tsx": FamilyJS,
		"py":   FamilyPython,
		"java": FamilyJavaKotlin, "kt": FamilyJavaKotlin,
		"go":  FamilyGo,
		"md":  FamilyUnknown,
		"rb":  FamilyUnknown,
		"txt": FamilyUnknown,
	}
	for ext, want := range cases {
		if got := FamilyForType(ext); got != want {
			t.Fatalf("FamilyForType(%q)=%v want %v", ext, got, want)
		}
	}
}

func TestExtractPython(t *testing.T) {
	files := []scan.SampledFile{
		{Path: "a.py", Content: "import os\nclass Foo:\n    def bar(self): pass"},
		{Path: "b.py", Content: "from collections import defaultdict"},
	}
	got := Extract(FamilyPython, files)

	assert.ElementsMatch(t, []string{"os", "collections"}, got["imports"])
	assert.ElementsMatch(t, []string{"Foo"}, got["classes"])
	assert.ElementsMatch(t, []string{"bar"}, got["functions"])
}

func TestExtractJS(t *testing.T) {
	files := []scan.SampledFile{
		{Path: "app.jsx", Content: `
import 'react';
const styles = require("./styles.css");

export default class App extends React.Component {}
export const Header = (props) => {
  return null;
};
export function helper() {}
function Footer() { return null; }
`},
	}
	got := Extract(FamilyJS, files)

	assert.ElementsMatch(t, []string{"react", "./styles.css"}, got["imports"])
	assert.Contains(t, got["exports"], "App")
	assert.Contains(t, got["exports"], "Header")
	assert.Contains(t, got["exports"], "helper")
	assert.Contains(t, got["components"], "App")
	assert.Contains(t, got["components"], "Header")
	assert.Contains(t, got["components"], "Footer")
	assert.NotContains(t, got["components"], "helper")
}

func TestExtractJavaKotlin(t *testing.T) {
	files := []scan.SampledFile{
		{Path: "Main.java", Content: `
import java.util.List;
import com.example.svc.Handler;

public class Main {}
 class Helper {}
`},
	}
	got := Extract(FamilyJavaKotlin, files)

	assert.ElementsMatch(t, []string{"java.util.List", "com.example.svc.Handler"}, got["imports"])
	assert.ElementsMatch(t, []string{"Main", "Helper"}, got["classes"])
}

func TestExtractGo(t *testing.T) {
	files := []scan.SampledFile{
		{Path: "main.go", Content: `package main

import (
	"fmt"
	"net/http"
)

import "os"

func main() {}
func (s *Server) Handle(w http.ResponseWriter) {}
`},
	}
	got := Extract(FamilyGo, files)

	assert.ElementsMatch(t, []string{"fmt", "net/http", "os"}, got["imports"])
	assert.ElementsMatch(t, []string{"main", "Handle"}, got["functions"])
}

func TestExtractDeduplicatesAcrossFiles(t *testing.T) {
	files := []scan.SampledFile{
		{Path: "a.py", Content: "import os\nimport os\ndef run(): pass"},
		{Path: "b.py", Content: "import os\ndef run(): pass"},
	}
	got := Extract(FamilyPython, files)

	assert.Equal(t, []string{"os"}, got["imports"])
	assert.Equal(t, []string{"run"}, got["functions"])
}

func TestImportsPerFile(t *testing.T) {
	if got := Imports(FamilyJS, `import "react"; import "react-dom/client"; require('./local')`); len(got) != 3 {
		t.Fatalf("js imports=%v", got)
	}
	got := Imports(FamilyPython, "import os.path\nfrom collections import abc")
	if !assert.ObjectsAreEqual(sorted([]string{"os.path", "collections"}), sorted(got)) {
		t.Fatalf("py imports=%v", got)
	}
	if got := Imports(FamilyUnknown, "anything"); got != nil {
		t.Fatalf("unknown family imports=%v", got)
	}
}
