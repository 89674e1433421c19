package dart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract_ImportExportPart(t *testing.T) {
	src := `import 'package:flutter/material.dart';
export 'src/widgets.dart';
part 'mod.g.dart';

class HomePage extends StatelessWidget {
  build() {}
}
`
	fa := Extract("lib/main.dart", []byte(src))

	require := assert.New(t)
	require.Len(fa.Imports, 3)
	require.Equal("package:flutter/material.dart", fa.Imports[0].RawSpecifier)
	require.Equal("src/widgets.dart", fa.Imports[1].RawSpecifier)
	require.Equal("mod.g.dart", fa.Imports[2].RawSpecifier)

	require.Len(fa.Exports, 1)
	require.Equal("HomePage", fa.Exports[0].Name)
}

func TestExtract_PartOfIgnored(t *testing.T) {
	src := `part of my_library;

void helper() {}
`
	fa := Extract("lib/src/helper.dart", []byte(src))
	assert.Empty(t, fa.Imports)
}
