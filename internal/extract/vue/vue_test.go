package vue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrarca/loctree/internal/model"
)

func TestExtract_ScriptSetupTS(t *testing.T) {
	src := `<template>
  <div>{{ count }}</div>
</template>

<script setup lang="ts">
import { ref } from "vue";

const count = ref(0);
</script>
`
	fa := Extract("src/Counter.vue", []byte(src))
	require.False(t, fa.ParseFailed)
	assert.Equal(t, model.LangVue, fa.Language)
	require.NotEmpty(t, fa.Imports)
	assert.Equal(t, "vue", fa.Imports[0].RawSpecifier)
	assert.Greater(t, fa.Imports[0].Line, 1)
}

func TestExtract_NoScriptBlock(t *testing.T) {
	fa := Extract("src/Static.vue", []byte("<template><div/></template>"))
	assert.Empty(t, fa.Imports)
}
