package css

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_ImportRule(t *testing.T) {
	src := `@import "./reset.css";
@import url(./theme.css);

.button { color: red; }
`
	fa := Extract("src/app.css", []byte(src))
	require.False(t, fa.ParseFailed)
	require.NotEmpty(t, fa.Imports)
	assert.Equal(t, "./reset.css", fa.Imports[0].RawSpecifier)
}
