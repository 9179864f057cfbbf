package parser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janus-clew/clew/schema"
)

const goSample = `package main

import "fmt"

type Greeter struct {
	name string
}

func (g Greeter) Greet(times int) {
	for i := 0; i < times; i++ {
		if i%2 == 0 {
			fmt.Println(g.name)
		}
	}
}
`

const pySample = `class Greeter:
    def __init__(self, name):
        self.name = name

    def greet(self, times):
        for i in range(times):
            if i % 2 == 0:
                print(self.name)
`

const jsSample = `function outer() {
  if (true) {
    console.log("hi");
  }
}

class Greeter {
  greet() {
    return "hello";
  }
}
`

const tsSample = `interface Named {
  name: string;
}

enum Color {
  Red,
  Blue,
}

class Greeter implements Named {
  name: string = "g";

  greet(): string {
    if (this.name) {
      return this.name;
    }
    return "";
  }
}
`

func TestParseGo(t *testing.T) {
	sum, err := ParseFile(context.Background(), "main.go", []byte(goSample))
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Functions)
	assert.Equal(t, 1, sum.Classes)
	// func body > for body > if body
	assert.Equal(t, 3, sum.MaxNesting)
}

func TestParsePython(t *testing.T) {
	sum, err := ParseFile(context.Background(), "greeter.py", []byte(pySample))
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Functions)
	assert.Equal(t, 1, sum.Classes)
	// class suite > method suite > for suite > if suite
	assert.Equal(t, 4, sum.MaxNesting)
}

func TestParseJavaScript(t *testing.T) {
	sum, err := ParseFile(context.Background(), "app.js", []byte(jsSample))
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Functions)
	assert.Equal(t, 1, sum.Classes)
	// deepest chain: function body > if body
	assert.Equal(t, 2, sum.MaxNesting)
}

func TestParseTypeScript(t *testing.T) {
	sum, err := ParseFile(context.Background(), "app.ts", []byte(tsSample))
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Functions)
	assert.Equal(t, 3, sum.Classes)
	assert.GreaterOrEqual(t, sum.MaxNesting, 3)
}

func TestParseMalformedSource(t *testing.T) {
	sum, err := ParseFile(context.Background(), "broken.go", []byte("func   {{{"))
	assert.Error(t, err)
	assert.Equal(t, schema.StructuralSummary{}, sum)
}

func TestParseUnsupportedExtension(t *testing.T) {
	_, err := ParseFile(context.Background(), "notes.txt", []byte("hello"))
	assert.Error(t, err)
}

func TestLanguageFor(t *testing.T) {
	assert.Equal(t, schema.LangGo, LanguageFor("pkg/main.go"))
	assert.Equal(t, schema.LangPython, LanguageFor("script.PY"))
	assert.Equal(t, schema.LangJavaScript, LanguageFor("index.mjs"))
	assert.Equal(t, schema.LangTypeScript, LanguageFor("app.tsx"))
	assert.Equal(t, schema.LangUnknown, LanguageFor("README.md"))
}

func TestSummaryAdd(t *testing.T) {
	total := schema.StructuralSummary{Functions: 2, Classes: 1, MaxNesting: 4}
	total.Add(schema.StructuralSummary{Functions: 3, Classes: 0, MaxNesting: 2})
	assert.Equal(t, 5, total.Functions)
	assert.Equal(t, 1, total.Classes)
	assert.Equal(t, 4, total.MaxNesting)
}
