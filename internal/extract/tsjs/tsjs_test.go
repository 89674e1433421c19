package tsjs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_NamedAndDefaultImports(t *testing.T) {
	src := `import React from "react";
import { useState, useEffect as useFx } from "react";
import * as path from "path";

export function Widget() {
  const [state] = useState(0);
  return state;
}
`
	fa := Extract("src/Widget.tsx", []byte(src))
	require.False(t, fa.ParseFailed)
	require.Len(t, fa.Imports, 3)

	assert.Equal(t, "react", fa.Imports[0].RawSpecifier)
	assert.Equal(t, "React", fa.Imports[0].Symbols[0].Name)

	assert.Equal(t, "react", fa.Imports[1].RawSpecifier)
	var names []string
	for _, s := range fa.Imports[1].Symbols {
		names = append(names, s.Name)
	}
	assert.Contains(t, names, "useState")
	assert.Contains(t, names, "useEffect")

	require.Len(t, fa.Exports, 1)
	assert.Equal(t, "Widget", fa.Exports[0].Name)
}

func TestExtract_TypeOnlyImport(t *testing.T) {
	src := `import type { Config } from "./config";
export const x = 1;
`
	fa := Extract("src/index.ts", []byte(src))
	require.False(t, fa.ParseFailed)
	require.Len(t, fa.Imports, 1)
	assert.True(t, fa.Imports[0].TypeOnly)
}

func TestExtract_ReExportStar(t *testing.T) {
	src := `export * from "./helpers";
`
	fa := Extract("src/index.ts", []byte(src))
	require.Len(t, fa.Imports, 1)
	assert.Equal(t, "./helpers", fa.Imports[0].RawSpecifier)
}

func TestExtract_DynamicImport(t *testing.T) {
	src := `async function load() {
  const mod = await import("./lazy");
  return mod;
}
`
	fa := Extract("src/loader.ts", []byte(src))
	require.Len(t, fa.Imports, 1)
	assert.True(t, fa.Imports[0].DynamicImport)
	assert.Equal(t, "./lazy", fa.Imports[0].RawSpecifier)
}

func TestExtract_RequireCall(t *testing.T) {
	src := `const fs = require("fs");
`
	fa := Extract("src/legacy.js", []byte(src))
	require.Len(t, fa.Imports, 1)
	assert.Equal(t, "fs", fa.Imports[0].RawSpecifier)
}

func TestExtract_InvokeCallRecorded(t *testing.T) {
	src := "import { invoke } from '@tauri-apps/api/core';\n" +
		"async function save() {\n" +
		"  await invoke('save_libraxis_api_key', { key });\n" +
		"}\n"
	fa := Extract("src/api.ts", []byte(src))
	require.Len(t, fa.CommandCalls, 1)
	assert.Equal(t, "save_libraxis_api_key", fa.CommandCalls[0].Name)
	assert.False(t, fa.CommandCalls[0].Dynamic)
}

func TestExtract_InvokeTemplateLiteralRecorded(t *testing.T) {
	src := "invoke(`load_llm_endpoint`);\n"
	fa := Extract("src/api.ts", []byte(src))
	require.Len(t, fa.CommandCalls, 1)
	assert.Equal(t, "load_llm_endpoint", fa.CommandCalls[0].Name)
	assert.False(t, fa.CommandCalls[0].Dynamic)
}

func TestExtract_DynamicInvokeIdentifierMarked(t *testing.T) {
	src := "invoke(commandName);\n"
	fa := Extract("src/api.ts", []byte(src))
	require.Len(t, fa.CommandCalls, 1)
	assert.Equal(t, "commandName", fa.CommandCalls[0].Name)
	assert.True(t, fa.CommandCalls[0].Dynamic)
}

func TestExtract_EmitAndListenRecorded(t *testing.T) {
	src := "import { emit, listen } from '@tauri-apps/api/event';\n" +
		"emit('progress-update', {});\n" +
		"listen('progress-update', (e) => {});\n"
	fa := Extract("src/events.ts", []byte(src))
	require.Len(t, fa.EventEmits, 1)
	assert.Equal(t, "progress-update", fa.EventEmits[0].Name)
	require.Len(t, fa.EventListens, 1)
	assert.Equal(t, "progress-update", fa.EventListens[0].Name)
}

func TestExtract_TopLevelConstLiteralCaptured(t *testing.T) {
	src := "export const PROGRESS_EVENT = 'progress-update';\nconst INTERNAL = `local-only`;\n"
	fa := Extract("src/constants.ts", []byte(src))
	require.Equal(t, "progress-update", fa.TopLevelConsts["PROGRESS_EVENT"])
	require.Equal(t, "local-only", fa.TopLevelConsts["INTERNAL"])

	var exported *struct{ Name, LiteralValue string }
	for _, e := range fa.Exports {
		if e.Name == "PROGRESS_EVENT" {
			exported = &struct{ Name, LiteralValue string }{e.Name, e.LiteralValue}
		}
	}
	require.NotNil(t, exported)
	assert.Equal(t, "progress-update", exported.LiteralValue)
}
