package python

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_ImportForms(t *testing.T) {
	src := `import os
from typing import List, Dict as D
from . import helpers

def run():
    return os.getcwd()
`
	fa := Extract("pkg/mod.py", []byte(src))
	require.False(t, fa.ParseFailed)
	require.GreaterOrEqual(t, len(fa.Imports), 2)

	found := map[string]bool{}
	for _, imp := range fa.Imports {
		found[imp.RawSpecifier] = true
	}
	assert.True(t, found["os"])
}

func TestExtract_AllExportsPublicAPI(t *testing.T) {
	src := `__all__ = ["run", "Config"]

def run():
    pass

class Config:
    pass
`
	fa := Extract("pkg/mod.py", []byte(src))
	assert.Contains(t, fa.PublicAPI, "run")
	assert.Contains(t, fa.PublicAPI, "Config")
}

func TestExtract_DynamicImportDetected(t *testing.T) {
	src := `import importlib

def load(name):
    return importlib.import_module(name)
`
	fa := Extract("pkg/loader.py", []byte(src))
	found := false
	for _, imp := range fa.Imports {
		if imp.DynamicImport {
			found = true
		}
	}
	assert.True(t, found)
}
