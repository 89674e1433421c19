package rust

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_UseDeclarations(t *testing.T) {
	src := `use crate::db::Pool;
use std::collections::{HashMap, HashSet as Set};
use super::helpers;

pub fn connect() -> Pool {
    unimplemented!()
}
`
	fa := Extract("src/lib.rs", []byte(src))
	require.False(t, fa.ParseFailed)
	require.Len(t, fa.Imports, 3)

	assert.True(t, fa.Imports[0].CrateRelative)
	assert.Equal(t, "Pool", fa.Imports[0].Symbols[0].Name)

	var names []string
	for _, s := range fa.Imports[1].Symbols {
		names = append(names, s.Name)
	}
	assert.Contains(t, names, "HashMap")
	assert.Contains(t, names, "Set")

	assert.True(t, fa.Imports[2].SuperRelative)

	require.NotEmpty(t, fa.Exports)
	assert.Equal(t, "connect", fa.Exports[0].Name)
}

func TestExtract_CfgTestModuleExcludedFromImports(t *testing.T) {
	src := `use std::fmt;

#[cfg(test)]
mod tests {
    use super::*;
    use std::collections::HashMap;

    #[test]
    fn it_works() {}
}
`
	fa := Extract("src/lib.rs", []byte(src))
	require.False(t, fa.ParseFailed)
	require.Len(t, fa.Imports, 1)
	assert.Equal(t, "std::fmt", fa.Imports[0].RawSpecifier)
}

func TestExtract_TauriCommand(t *testing.T) {
	src := `#[tauri::command]
fn greet(name: String) -> String {
    format!("hello {}", name)
}
`
	fa := Extract("src-tauri/src/commands.rs", []byte(src))
	require.Len(t, fa.CommandDefs, 1)
	assert.Equal(t, "greet", fa.CommandDefs[0].Name)
}

func TestExtract_GenerateHandlerRegistersCommands(t *testing.T) {
	src := `fn main() {
    tauri::Builder::default()
        .invoke_handler(tauri::generate_handler![greet, save_settings])
        .run(tauri::generate_context!())
        .expect("error while running tauri application");
}
`
	fa := Extract("src-tauri/src/main.rs", []byte(src))
	require.Len(t, fa.CommandRegistrations, 2)
	assert.Equal(t, "greet", fa.CommandRegistrations[0].Name)
	assert.Equal(t, "save_settings", fa.CommandRegistrations[1].Name)
}
