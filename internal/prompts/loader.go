// Package prompts holds the model prompt templates compiled into the binary.
//
// Each embedded JSON file maps a prompt key to its template text. Templates use
// {{.Name}} placeholders filled by Format.
package prompts

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
)

//go:embed *.json
var files embed.FS

// Prompt files and keys.
const (
	ATSFile          = "ats.json"
	ATSAnalyzeResume = "analyze-resume"
)

var (
	mu     sync.Mutex
	parsed = map[string]gjson.Result{}
)

// Get returns the template stored under key in filename.
func Get(filename, key string) (string, error) {
	doc, err := document(filename)
	if err != nil {
		return "", err
	}
	var (
		prompt string
		found  bool
	)
	doc.ForEach(func(k, v gjson.Result) bool {
		if k.String() == key {
			prompt, found = v.String(), true
			return false
		}
		return true
	})
	if !found {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return prompt, nil
}

// MustGet is Get for prompts that ship with the binary. It panics when the prompt is missing.
func MustGet(filename, key string) string {
	prompt, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return prompt
}

// Format substitutes {{.Key}} placeholders in a single pass. Placeholders without
// a value stay in the output.
func Format(template string, data map[string]string) string {
	pairs := make([]string, 0, len(data)*2)
	for key, value := range data {
		pairs = append(pairs, "{{."+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

func document(filename string) (gjson.Result, error) {
	mu.Lock()
	defer mu.Unlock()
	if doc, ok := parsed[filename]; ok {
		return doc, nil
	}

	raw, err := files.ReadFile(filename)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	if !gjson.ValidBytes(raw) {
		return gjson.Result{}, fmt.Errorf("failed to parse prompt file %s: invalid JSON", filename)
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return gjson.Result{}, fmt.Errorf("failed to parse prompt file %s: not an object", filename)
	}
	parsed[filename] = doc
	return doc, nil
}
